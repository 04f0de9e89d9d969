package exhibition

import (
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"curator/internal/artwork"
	"curator/internal/catalog"
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

type nameRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

type artworkRequest struct {
	Source string `json:"source" validate:"required,artwork_source"`
	ID     int    `json:"id" validate:"gt=0"`
}

type exhibitionResponse struct {
	Exhibition
	Cards []artwork.Card `json:"cards"`
}

func present(e Exhibition) exhibitionResponse {
	return exhibitionResponse{Exhibition: e, Cards: artwork.Cards(e.Artworks)}
}

func (h *HTTPHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Exhibition not found", nil)
	case errors.Is(err, catalog.ErrNotFound):
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Artwork not found", nil)
	case errors.Is(err, ErrInvalidName):
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), []httpx.ErrorDetail{{Field: "name", Message: err.Error()}})
	default:
		h.logger.Error("exhibition request failed",
			zap.String("client_id", httpx.ClientIDFrom(r)),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	}
}

// List handles GET /v1/exhibitions
// @Summary List exhibitions
// @Tags exhibitions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} httpx.SuccessResponse
// @Router /v1/exhibitions [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	exs, err := h.svc.Store().Load(r.Context(), httpx.ClientIDFrom(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	out := make([]exhibitionResponse, 0, len(exs))
	for _, e := range exs {
		out = append(out, present(e))
	}
	httpx.JSONSuccess(w, r, out, map[string]any{"total": len(out)})
}

// Create handles POST /v1/exhibitions
// @Summary Create an exhibition
// @Tags exhibitions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Router /v1/exhibitions [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if !httpx.DecodeAndValidate(w, r, &req) {
		return
	}

	e, err := h.svc.Store().Create(r.Context(), httpx.ClientIDFrom(r), httpx.Sanitize(req.Name))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.JSONSuccessCreated(w, r, present(e))
}

// Get handles GET /v1/exhibitions/{id}
// @Summary Get an exhibition
// @Tags exhibitions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Exhibition id"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /v1/exhibitions/{id} [get]
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	e, err := h.svc.Store().Get(r.Context(), httpx.ClientIDFrom(r), ID(r.PathValue("id")))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, present(e), nil)
}

// Rename handles PATCH /v1/exhibitions/{id}
// @Summary Rename an exhibition
// @Tags exhibitions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Exhibition id"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /v1/exhibitions/{id} [patch]
func (h *HTTPHandler) Rename(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if !httpx.DecodeAndValidate(w, r, &req) {
		return
	}

	e, err := h.svc.Store().Rename(r.Context(), httpx.ClientIDFrom(r), ID(r.PathValue("id")), httpx.Sanitize(req.Name))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, present(e), nil)
}

// Delete handles DELETE /v1/exhibitions/{id}
// @Summary Delete an exhibition
// @Tags exhibitions
// @Security BearerAuth
// @Param id path string true "Exhibition id"
// @Success 204
// @Failure 404 {object} httpx.ErrorResponse
// @Router /v1/exhibitions/{id} [delete]
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Store().Delete(r.Context(), httpx.ClientIDFrom(r), ID(r.PathValue("id"))); err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.JSONSuccessNoContent(w)
}

// AddArtwork handles POST /v1/exhibitions/{id}/artworks
// @Summary Save an artwork to an exhibition
// @Description Fetches the full record from the museum API and appends it unless already saved
// @Tags exhibitions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Exhibition id"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 502 {object} httpx.ErrorResponse
// @Router /v1/exhibitions/{id}/artworks [post]
func (h *HTTPHandler) AddArtwork(w http.ResponseWriter, r *http.Request) {
	var req artworkRequest
	if !httpx.DecodeAndValidate(w, r, &req) {
		return
	}
	source, _ := artwork.ParseSource(req.Source)

	e, err := h.svc.SaveArtwork(r.Context(), httpx.ClientIDFrom(r), ID(r.PathValue("id")), artwork.Identity{Source: source, ID: req.ID})
	if err != nil {
		if !errors.Is(err, ErrNotFound) && !errors.Is(err, catalog.ErrNotFound) {
			h.logger.Warn("artwork fetch failed", zap.Error(err))
			httpx.JSONError(w, r, http.StatusBadGateway, "UPSTREAM_ERROR", "Museum API unavailable", nil)
			return
		}
		h.fail(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, present(e), nil)
}

func parseArtworkPath(r *http.Request) (artwork.Identity, bool) {
	source, err := artwork.ParseSource(r.PathValue("source"))
	if err != nil {
		return artwork.Identity{}, false
	}
	id, err := strconv.Atoi(r.PathValue("artworkID"))
	if err != nil || id <= 0 {
		return artwork.Identity{}, false
	}
	return artwork.Identity{Source: source, ID: id}, true
}

// IsSaved handles GET /v1/exhibitions/{id}/artworks/{source}/{artworkID}
// @Summary Check whether an artwork is saved
// @Tags exhibitions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} httpx.SuccessResponse
// @Router /v1/exhibitions/{id}/artworks/{source}/{artworkID} [get]
func (h *HTTPHandler) IsSaved(w http.ResponseWriter, r *http.Request) {
	target, ok := parseArtworkPath(r)
	if !ok {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid artwork source or id", nil)
		return
	}

	saved, err := h.svc.Store().IsSaved(r.Context(), httpx.ClientIDFrom(r), ID(r.PathValue("id")), target)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, map[string]bool{"saved": saved}, nil)
}

// RemoveArtwork handles DELETE /v1/exhibitions/{id}/artworks/{source}/{artworkID}
// @Summary Remove an artwork from an exhibition
// @Tags exhibitions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /v1/exhibitions/{id}/artworks/{source}/{artworkID} [delete]
func (h *HTTPHandler) RemoveArtwork(w http.ResponseWriter, r *http.Request) {
	target, ok := parseArtworkPath(r)
	if !ok {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid artwork source or id", nil)
		return
	}
	namespace := httpx.ClientIDFrom(r)
	id := ID(r.PathValue("id"))

	exs, err := h.svc.Store().RemoveArtwork(r.Context(), namespace, id, target)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	e, found := Find(exs, id)
	if !found {
		h.fail(w, r, ErrNotFound)
		return
	}
	httpx.JSONSuccess(w, r, present(e), nil)
}
