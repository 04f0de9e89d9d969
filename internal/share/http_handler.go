package share

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"curator/internal/artwork"
	"curator/internal/catalog"
	"curator/internal/exhibition"
	"curator/internal/httpx"
)

// ExhibitionGetter looks up one of a client's exhibitions.
type ExhibitionGetter interface {
	Get(ctx context.Context, namespace string, id exhibition.ID) (exhibition.Exhibition, error)
}

type HTTPHandler struct {
	exhibitions ExhibitionGetter
	resolver    *Resolver
	pageURL     string
	logger      *zap.Logger
}

// NewHTTPHandler serves share links pointing at pageURL.
func NewHTTPHandler(exhibitions ExhibitionGetter, resolver *Resolver, pageURL string, logger *zap.Logger) *HTTPHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPHandler{exhibitions: exhibitions, resolver: resolver, pageURL: pageURL, logger: logger}
}

type linkResponse struct {
	Token string `json:"token"`
	URL   string `json:"url"`
	Count int    `json:"count"`
}

type sharedResponse struct {
	Artworks []artwork.Artwork `json:"artworks"`
	Cards    []artwork.Card    `json:"cards"`
}

// CreateLink handles GET /v1/exhibitions/{id}/share
// @Summary Build a share link for an exhibition
// @Tags share
// @Produce json
// @Security BearerAuth
// @Param id path string true "Exhibition id"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 422 {object} httpx.ErrorResponse
// @Router /v1/exhibitions/{id}/share [get]
func (h *HTTPHandler) CreateLink(w http.ResponseWriter, r *http.Request) {
	e, err := h.exhibitions.Get(r.Context(), httpx.ClientIDFrom(r), exhibition.ID(r.PathValue("id")))
	if err != nil {
		if errors.Is(err, exhibition.ErrNotFound) {
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Exhibition not found", nil)
			return
		}
		h.logger.Error("load exhibition for share failed", zap.Error(err))
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	records := Records(e.Artworks)
	if len(records) > MaxRecords {
		httpx.JSONError(w, r, http.StatusUnprocessableEntity, "TOO_MANY_ARTWORKS", ErrTooManyRecords.Error(), nil)
		return
	}

	token := EncodeRecords(records)
	link, err := Link(h.pageURL, token)
	if err != nil {
		h.logger.Error("build share link failed", zap.String("page_url", h.pageURL), zap.Error(err))
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccess(w, r, linkResponse{Token: token, URL: link, Count: len(records)}, nil)
}

// Resolve handles GET /v1/shared
// @Summary Open a shared exhibition
// @Description Decodes the share token and fetches every artwork. Any failed fetch fails the request.
// @Tags share
// @Produce json
// @Param data query string true "Share token"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 502 {object} httpx.ErrorResponse
// @Router /v1/shared [get]
func (h *HTTPHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get(QueryParam)
	if token == "" {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Missing data parameter", nil)
		return
	}

	records, err := Decode(token)
	if err != nil {
		h.logger.Info("undecodable share token", zap.Error(err))
		httpx.JSONError(w, r, http.StatusBadRequest, "DECODE_ERROR", "Share link could not be decoded", nil)
		return
	}

	artworks, err := h.resolver.Resolve(r.Context(), records)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Shared artwork not found", nil)
			return
		}
		h.logger.Warn("share resolution failed", zap.Int("records", len(records)), zap.Error(err))
		httpx.JSONError(w, r, http.StatusBadGateway, "UPSTREAM_ERROR", "Museum API unavailable", nil)
		return
	}

	httpx.JSONSuccess(w, r, sharedResponse{Artworks: artworks, Cards: artwork.Cards(artworks)}, map[string]any{"total": len(artworks)})
}
