package auth

import (
	"net/http"

	"go.uber.org/zap"

	"curator/internal/httpx"
)

type HTTPHandler struct {
	service *Service
	logger  *zap.Logger
}

func NewHTTPHandler(service *Service, logger *zap.Logger) *HTTPHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPHandler{service: service, logger: logger}
}

// Register handles POST /v1/clients
// @Summary Register a client
// @Description Issue a new client id and bearer token. The client id scopes saved exhibitions and preferences.
// @Tags clients
// @Produce json
// @Success 201 {object} httpx.SuccessResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /v1/clients [post]
func (h *HTTPHandler) Register(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.Register(r.Context())
	if err != nil {
		h.logger.Error("issue client token failed", zap.Error(err))
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	h.logger.Info("client registered", zap.String("client_id", c.ID))
	httpx.JSONSuccessCreated(w, r, c)
}

// Renew handles POST /v1/clients/renew
// @Summary Renew a client token
// @Tags clients
// @Produce json
// @Security BearerAuth
// @Success 200 {object} httpx.SuccessResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Router /v1/clients/renew [post]
func (h *HTTPHandler) Renew(w http.ResponseWriter, r *http.Request) {
	clientID := httpx.ClientIDFrom(r)
	if clientID == "" {
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Missing client token", nil)
		return
	}

	c, err := h.service.Renew(r.Context(), clientID)
	if err != nil {
		h.logger.Error("renew client token failed", zap.String("client_id", clientID), zap.Error(err))
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSONSuccess(w, r, c, nil)
}
