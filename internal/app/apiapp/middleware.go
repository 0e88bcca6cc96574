package apiapp

import (
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/Beabadoobee-Fanclub/backend-api/internal/services/access"
	ratesvc "github.com/Beabadoobee-Fanclub/backend-api/internal/services/rate"
	httperrors "github.com/Beabadoobee-Fanclub/backend-api/internal/transport/http/errors"
)

func ApplyMiddlewares(r chiRouter, dashboardURL string, log *zap.Logger) {
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{dashboardURL},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "User-Agent"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(requestLogger(log))
}

// AccessGuardMiddleware admits only bot and guild callers, classified by the
// first User-Agent product token. A missing header is a malformed request; a
// present but unrecognized one is a rejected caller.
func AccessGuardMiddleware(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller, err := access.ParseUserAgent(r.Header.Get("User-Agent"))
			if err != nil {
				if log != nil {
					log.Debug("access guard rejected request", zap.Error(err))
				}
				if errors.Is(err, access.ErrMissingUserAgent) {
					httperrors.Write(w, http.StatusBadRequest, httperrors.APIError{
						Code:    "USER_AGENT_REQUIRED",
						Message: "user agent header is required",
					})
					return
				}
				httperrors.Write(w, http.StatusUnauthorized, httperrors.APIError{
					Code:    "UNAUTHORIZED",
					Message: "caller is not allowed",
				})
				return
			}

			next.ServeHTTP(w, r.WithContext(access.WithCaller(r.Context(), caller)))
		})
	}
}

// ThrottleMiddleware rejects clients that exceed the auth request windows.
// The client address comes from RemoteAddr, which RealIP has already rewritten
// to the originating client. A broken limiter store fails open.
func ThrottleMiddleware(limiter *ratesvc.Limiter, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limiter == nil {
				next.ServeHTTP(w, r)
				return
			}

			host := r.RemoteAddr
			if h, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
				host = h
			}

			retryAfter, ok, err := limiter.AllowAuth(r.Context(), host)
			if err != nil {
				if log != nil {
					log.Warn("auth throttle check failed", zap.Error(err))
				}
				next.ServeHTTP(w, r)
				return
			}
			if !ok {
				w.Header().Set("Retry-After", strconv.FormatInt(retryAfter, 10))
				httperrors.Write(w, http.StatusTooManyRequests, httperrors.APIError{
					Code:    "RATE_LIMITED",
					Message: "too many auth requests",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			if log != nil {
				log.Info("http_request",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Duration("duration", time.Since(start)),
				)
			}
		})
	}
}

type chiRouter interface {
	Use(middlewares ...func(http.Handler) http.Handler)
}
