package preferences

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"curator/internal/httpx"
)

type HTTPHandler struct {
	svc    *Service
	logger *zap.Logger
}

func NewHTTPHandler(svc *Service, logger *zap.Logger) *HTTPHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPHandler{svc: svc, logger: logger}
}

type themeRequest struct {
	Theme string `json:"theme" validate:"required,oneof=light dark"`
}

type themeResponse struct {
	Theme Theme `json:"theme"`
}

func (h *HTTPHandler) internal(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("theme preference failed", zap.String("client_id", httpx.ClientIDFrom(r)), zap.Error(err))
	httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
}

// GetTheme handles GET /v1/preferences/theme
// @Summary Get the theme preference
// @Tags preferences
// @Produce json
// @Security BearerAuth
// @Success 200 {object} httpx.SuccessResponse
// @Router /v1/preferences/theme [get]
func (h *HTTPHandler) GetTheme(w http.ResponseWriter, r *http.Request) {
	t, err := h.svc.Theme(r.Context(), httpx.ClientIDFrom(r))
	if err != nil {
		h.internal(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, themeResponse{Theme: t}, nil)
}

// SetTheme handles PUT /v1/preferences/theme
// @Summary Set the theme preference
// @Tags preferences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Router /v1/preferences/theme [put]
func (h *HTTPHandler) SetTheme(w http.ResponseWriter, r *http.Request) {
	var req themeRequest
	if !httpx.DecodeAndValidate(w, r, &req) {
		return
	}

	t := Theme(req.Theme)
	if err := h.svc.SetTheme(r.Context(), httpx.ClientIDFrom(r), t); err != nil {
		if errors.Is(err, ErrInvalidTheme) {
			httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
			return
		}
		h.internal(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, themeResponse{Theme: t}, nil)
}

// ToggleTheme handles POST /v1/preferences/theme/toggle
// @Summary Toggle between light and dark
// @Tags preferences
// @Produce json
// @Security BearerAuth
// @Success 200 {object} httpx.SuccessResponse
// @Router /v1/preferences/theme/toggle [post]
func (h *HTTPHandler) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	t, err := h.svc.ToggleTheme(r.Context(), httpx.ClientIDFrom(r))
	if err != nil {
		h.internal(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, themeResponse{Theme: t}, nil)
}
