package apiapp

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Beabadoobee-Fanclub/backend-api/internal/config"
	gatewaysvc "github.com/Beabadoobee-Fanclub/backend-api/internal/services/gateway"
	ratesvc "github.com/Beabadoobee-Fanclub/backend-api/internal/services/rate"
	sessionsvc "github.com/Beabadoobee-Fanclub/backend-api/internal/services/session"
	"github.com/Beabadoobee-Fanclub/backend-api/internal/transport/http/handlers"
)

type Dependencies struct {
	SessionService *sessionsvc.Service
	GatewayService *gatewaysvc.Service
	RateLimiter    *ratesvc.Limiter
	Logger         *zap.Logger
	Config         config.Config
}

func RegisterRoutes(r chi.Router, deps Dependencies) {
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(deps.SessionService)
	guildsHandler := handlers.NewGuildsHandler()
	gatewayHandler := handlers.NewGatewayHandler(deps.GatewayService, deps.Config.Gateway.ForwardTimeout, deps.Logger)
	guardMW := AccessGuardMiddleware(deps.Logger)
	throttleMW := ThrottleMiddleware(deps.RateLimiter, deps.Logger)

	r.Get("/healthz", healthHandler.Get)

	r.Route("/auth", func(r chi.Router) {
		r.Use(throttleMW)
		r.Get("/login", authHandler.Login)
		r.Get("/redirect", authHandler.Redirect)
		r.Get("/status", authHandler.Status)
		r.Get("/logout", authHandler.Logout)
	})

	r.Route("/guild", func(r chi.Router) {
		r.Use(guardMW)
		r.Get("/", guildsHandler.List)
		r.HandleFunc("/gateway/{id}", gatewayHandler.Forward)
	})
}
