package apiapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Beabadoobee-Fanclub/backend-api/internal/config"
	"github.com/Beabadoobee-Fanclub/backend-api/internal/jobs/registryprune"
	pgrepo "github.com/Beabadoobee-Fanclub/backend-api/internal/repo/postgres"
	redrepo "github.com/Beabadoobee-Fanclub/backend-api/internal/repo/redis"
	gatewaysvc "github.com/Beabadoobee-Fanclub/backend-api/internal/services/gateway"
	"github.com/Beabadoobee-Fanclub/backend-api/internal/services/identity"
	ratesvc "github.com/Beabadoobee-Fanclub/backend-api/internal/services/rate"
	sessionsvc "github.com/Beabadoobee-Fanclub/backend-api/internal/services/session"
)

type App struct {
	cfg        config.Config
	logger     *zap.Logger
	server     *http.Server
	postgres   *pgxpool.Pool
	redis      *goredis.Client
	pruneStop  context.CancelFunc
	httpRouter http.Handler
}

func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	r := chi.NewRouter()
	ApplyMiddlewares(r, cfg.Server.DashboardURL, log)

	var pool *pgxpool.Pool
	if p, err := pgrepo.NewPool(ctx, cfg.Postgres.DSN); err != nil {
		log.Warn("postgres init failed, continuing in degraded mode", zap.Error(err))
	} else {
		pool = p
	}

	redisClient := redrepo.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	instanceRepo := redrepo.NewInstanceRepo(redisClient)
	rateRepo := redrepo.NewRateRepo(redisClient)
	rateLimiter := ratesvc.NewLimiter(rateRepo, cfg.Throttle.AuthPerMinute, cfg.Throttle.AuthBurst10s)

	redirectURI := cfg.Server.APIHost + "/auth/redirect"
	identityClient := identity.NewClient(
		cfg.Discord.APIBaseURL,
		cfg.Discord.ClientID,
		cfg.Discord.ClientSecret,
		redirectURI,
		cfg.Discord.HTTPTimeout,
	)

	sessionService := sessionsvc.NewService(identityClient, sessionsvc.Config{
		ClientID:     cfg.Discord.ClientID,
		ClientSecret: cfg.Discord.ClientSecret,
		DashboardURL: cfg.Server.DashboardURL,
	}, log)
	sessionService.AttachAudit(pgrepo.NewLoginEventRepo(pool))

	gatewayService := gatewaysvc.NewService(instanceRepo, gatewaysvc.Config{
		LivenessWindow: cfg.Gateway.LivenessWindow,
	}, log)

	pruneCtx, pruneStop := context.WithCancel(context.Background())
	pruneJob := registryprune.New(instanceRepo, cfg.Gateway.LivenessWindow, log)
	go pruneJob.RunPeriodic(pruneCtx, cfg.Gateway.PruneInterval)

	RegisterRoutes(r, Dependencies{
		SessionService: sessionService,
		GatewayService: gatewayService,
		RateLimiter:    rateLimiter,
		Logger:         log,
		Config:         cfg,
	})

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	return &App{
		cfg:        cfg,
		logger:     log,
		server:     server,
		postgres:   pool,
		redis:      redisClient,
		pruneStop:  pruneStop,
		httpRouter: r,
	}, nil
}

func (a *App) Run() error {
	a.logger.Info("api server started", zap.String("addr", a.cfg.HTTP.Addr))
	err := a.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error

	a.pruneStop()
	if err := a.server.Shutdown(ctx); err != nil {
		shutdownErr = err
	}
	if a.postgres != nil {
		a.postgres.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil && shutdownErr == nil {
			shutdownErr = err
		}
	}

	return shutdownErr
}

func (a *App) Handler() http.Handler {
	return a.httpRouter
}
