package handlers

import (
	"net/http"

	httperrors "github.com/Beabadoobee-Fanclub/backend-api/internal/transport/http/errors"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Get(w http.ResponseWriter, r *http.Request) {
	httperrors.Write(w, http.StatusOK, map[string]bool{"ok": true})
}
