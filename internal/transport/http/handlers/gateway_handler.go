package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	gatewaysvc "github.com/Beabadoobee-Fanclub/backend-api/internal/services/gateway"
	httperrors "github.com/Beabadoobee-Fanclub/backend-api/internal/transport/http/errors"
)

// GatewayHandler forwards gateway requests, WebSocket upgrades included, to
// the durable instance the shard identifier resolves to. The remote response
// is relayed verbatim.
type GatewayHandler struct {
	service        *gatewaysvc.Service
	forwardTimeout time.Duration
	logger         *zap.Logger
}

func NewGatewayHandler(service *gatewaysvc.Service, forwardTimeout time.Duration, logger *zap.Logger) *GatewayHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GatewayHandler{
		service:        service,
		forwardTimeout: forwardTimeout,
		logger:         logger,
	}
}

func (h *GatewayHandler) Forward(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "GATEWAY_SERVICE_UNAVAILABLE", "gateway service is unavailable")
		return
	}

	shardID := chi.URLParam(r, "id")
	handle, err := h.service.Resolve(r.Context(), shardID)
	if err != nil {
		h.writeResolveError(w, shardID, err)
		return
	}

	target := &url.URL{Scheme: "http", Host: handle.Addr}
	proxy := &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.Out.Host = handle.Addr
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			h.logger.Warn("gateway forward failed",
				zap.String("shard_id", shardID),
				zap.String("instance_addr", handle.Addr),
				zap.Error(err),
			)
			httperrors.Write(w, http.StatusBadGateway, httperrors.APIError{
				Code:    "BACKEND_UNREACHABLE",
				Message: "durable instance did not respond",
			})
		},
	}

	// Upgraded connections are long-lived; the deadline only bounds plain
	// request/response forwards.
	if h.forwardTimeout > 0 && !isUpgrade(r) {
		ctx, cancel := context.WithTimeout(r.Context(), h.forwardTimeout)
		defer cancel()
		r = r.WithContext(ctx)
	}

	proxy.ServeHTTP(w, r)
}

func (h *GatewayHandler) writeResolveError(w http.ResponseWriter, shardID string, err error) {
	switch {
	case errors.Is(err, gatewaysvc.ErrInvalidShardID):
		writeBadRequest(w, "INVALID_SHARD_ID", "shard identifier is invalid")
	case errors.Is(err, gatewaysvc.ErrNoInstances):
		httperrors.Write(w, http.StatusServiceUnavailable, httperrors.APIError{
			Code:    "NO_INSTANCE_AVAILABLE",
			Message: "no durable instance is available for this shard",
		})
	case errors.Is(err, gatewaysvc.ErrRegistryUnavailable):
		h.logger.Error("instance registry lookup failed", zap.String("shard_id", shardID), zap.Error(err))
		writeInternal(w, "REGISTRY_UNAVAILABLE", "instance registry lookup failed")
	default:
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
	}
}

func isUpgrade(r *http.Request) bool {
	if !strings.Contains(strings.ToLower(r.Header.Get("Connection")), "upgrade") {
		return false
	}
	return r.Header.Get("Upgrade") != ""
}
