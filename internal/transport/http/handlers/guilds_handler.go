package handlers

import (
	"net/http"

	httperrors "github.com/Beabadoobee-Fanclub/backend-api/internal/transport/http/errors"
)

type GuildsHandler struct{}

func NewGuildsHandler() *GuildsHandler {
	return &GuildsHandler{}
}

// List is a placeholder until guild enumeration lands.
func (h *GuildsHandler) List(w http.ResponseWriter, r *http.Request) {
	httperrors.Write(w, http.StatusOK, map[string]string{"message": "List of guilds"})
}
