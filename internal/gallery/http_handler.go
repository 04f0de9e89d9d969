package gallery

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"curator/internal/artwork"
	"curator/internal/httpx"
)

type HTTPHandler struct {
	controllers map[artwork.Source]*Controller
	catalog     Catalog
	pageSize    int
	logger      *zap.Logger
}

func NewHTTPHandler(catalog Catalog, pageSize int, logger *zap.Logger, controllers ...*Controller) *HTTPHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &HTTPHandler{
		controllers: make(map[artwork.Source]*Controller, len(controllers)),
		catalog:     catalog,
		pageSize:    pageSize,
		logger:      logger,
	}
	for _, c := range controllers {
		h.controllers[c.Source()] = c
	}
	return h
}

func (h *HTTPHandler) parseQuery(values url.Values) (Query, []httpx.ErrorDetail) {
	var details []httpx.ErrorDetail

	field, err := ParseField(values.Get("filter"))
	if err != nil {
		details = append(details, httpx.ErrorDetail{Field: "filter", Message: "filter must be artist or origin"})
	}
	order, err := ParseSortOrder(values.Get("sort"))
	if err != nil {
		details = append(details, httpx.ErrorDetail{Field: "sort", Message: "sort must be Newest or Oldest"})
	}

	page, _ := strconv.Atoi(values.Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(values.Get("page_size"))
	if pageSize <= 0 || pageSize > 100 {
		pageSize = h.pageSize
	}

	return Query{
		Field:    field,
		Value:    values.Get("value"),
		Sort:     order,
		Page:     page,
		PageSize: pageSize,
	}, details
}

func (h *HTTPHandler) controller(w http.ResponseWriter, r *http.Request) (*Controller, bool) {
	source, err := artwork.ParseSource(r.PathValue("source"))
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "INVALID_SOURCE", "Source must be aic or met", nil)
		return nil, false
	}
	c, ok := h.controllers[source]
	if !ok {
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Gallery not found", nil)
		return nil, false
	}
	return c, true
}

func pageMeta(p Page) map[string]any {
	return map[string]any{
		"page":        p.Query.Page,
		"page_size":   p.Query.PageSize,
		"total":       p.TotalItems,
		"total_pages": p.TotalPages,
	}
}

// Get handles GET /v1/galleries/{source}
// @Summary Browse a museum gallery
// @Description Featured listing, or search results when q is set, filtered, sorted and paginated
// @Tags galleries
// @Produce json
// @Param source path string true "aic, chicago or met"
// @Param q query string false "Search term"
// @Param filter query string false "artist or origin" default(artist)
// @Param value query string false "Filter value" default(All)
// @Param sort query string false "Newest or Oldest" default(Newest)
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Items per page" default(12)
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 502 {object} httpx.ErrorResponse
// @Router /v1/galleries/{source} [get]
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, ok := h.controller(w, r)
	if !ok {
		return
	}
	values := r.URL.Query()
	q, details := h.parseQuery(values)
	if len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query", details)
		return
	}

	if term := strings.TrimSpace(values.Get("q")); term != "" {
		artworks, err := h.catalog.Search(r.Context(), c.Source(), term)
		if err != nil {
			h.logger.Warn("gallery search failed", zap.String("source", string(c.Source())), zap.String("q", term), zap.Error(err))
			httpx.JSONError(w, r, http.StatusBadGateway, "UPSTREAM_ERROR", "Museum API unavailable", nil)
			return
		}
		p := Apply(artworks, q)
		httpx.JSONSuccess(w, r, View{Source: c.Source(), State: StateReady, Search: term, Page: p}, pageMeta(p))
		return
	}

	v := c.ViewWith(q)
	if v.State == StateError {
		httpx.JSONError(w, r, http.StatusBadGateway, "UPSTREAM_ERROR", "Gallery failed to load", nil)
		return
	}
	httpx.JSONSuccess(w, r, v, pageMeta(v.Page))
}

// Refresh handles POST /v1/galleries/{source}/refresh
// @Summary Reload a featured gallery
// @Tags galleries
// @Produce json
// @Param source path string true "aic, chicago or met"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 409 {object} httpx.ErrorResponse
// @Failure 502 {object} httpx.ErrorResponse
// @Router /v1/galleries/{source}/refresh [post]
func (h *HTTPHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	c, ok := h.controller(w, r)
	if !ok {
		return
	}

	if err := c.Load(r.Context()); err != nil {
		if errors.Is(err, ErrStale) {
			httpx.JSONError(w, r, http.StatusConflict, "SUPERSEDED", "A newer refresh is in progress", nil)
			return
		}
		httpx.JSONError(w, r, http.StatusBadGateway, "UPSTREAM_ERROR", "Gallery failed to load", nil)
		return
	}

	v := c.View()
	httpx.JSONSuccess(w, r, v, pageMeta(v.Page))
}
