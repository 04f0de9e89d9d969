package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"curator/internal/artwork"
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

type artworkResponse struct {
	Artwork artwork.Artwork `json:"artwork"`
	Card    artwork.Card    `json:"card"`
}

// GetArtwork handles GET /v1/artworks/{source}/{id}
// @Summary Get a single artwork
// @Description Fetch one artwork from a museum API and normalize it
// @Tags artworks
// @Produce json
// @Param source path string true "aic, chicago or met"
// @Param id path int true "Artwork id"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 502 {object} httpx.ErrorResponse
// @Router /v1/artworks/{source}/{id} [get]
func (h *HTTPHandler) GetArtwork(w http.ResponseWriter, r *http.Request) {
	source, err := artwork.ParseSource(r.PathValue("source"))
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "INVALID_SOURCE", "Source must be aic or met", nil)
		return
	}
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Artwork id must be a positive integer", nil)
		return
	}

	a, err := h.svc.FetchByID(r.Context(), artwork.Identity{Source: source, ID: id})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Artwork not found", nil)
			return
		}
		h.logger.Warn("artwork fetch failed", zap.String("source", string(source)), zap.Int("id", id), zap.Error(err))
		httpx.JSONError(w, r, http.StatusBadGateway, "UPSTREAM_ERROR", "Museum API unavailable", nil)
		return
	}

	httpx.JSONSuccess(w, r, artworkResponse{Artwork: a, Card: a.Card()}, nil)
}
