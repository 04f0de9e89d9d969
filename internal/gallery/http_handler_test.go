package gallery

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"curator/internal/artwork"
	"curator/internal/testutil"
)

func newGalleryHandler(t *testing.T, cat *fakeCatalog) (*HTTPHandler, *Controller) {
	t.Helper()
	c := NewController(artwork.SourceMet, cat, 6, nil)
	return NewHTTPHandler(cat, 6, nil, c), c
}

func serveGallery(h http.HandlerFunc, method, target, source string) testutil.RecordResponse {
	r := httptest.NewRequest(method, target, nil)
	r.SetPathValue("source", source)
	w := httptest.NewRecorder()
	h(w, r)
	return testutil.RecordHTTPResponse(w)
}

func TestHTTPHandler_Get(t *testing.T) {
	arts := make([]artwork.Artwork, 0, 13)
	for i := 1; i <= 13; i++ {
		arts = append(arts, metArt(i, "A", "", 1900+i))
	}
	h, c := newGalleryHandler(t, staticCatalog(arts))
	require.NoError(t, c.Load(context.Background()))

	res := serveGallery(h.Get, http.MethodGet, "/v1/galleries/met?page=3&sort=Oldest", "met")
	require.Equal(t, http.StatusOK, res.Code)
	meta := res.Body["meta"].(map[string]any)
	assert.Equal(t, float64(3), meta["total_pages"])
	assert.Equal(t, float64(3), meta["page"])
	page := res.Data()["page"].(map[string]any)
	assert.Len(t, page["items"], 1)

	assert.Equal(t, 1, c.View().Page.Query.Page, "request queries do not move the shared view")
}

func TestHTTPHandler_GetSearch(t *testing.T) {
	cat := staticCatalog(nil)
	var gotQuery string
	cat.search = func(_ context.Context, q string) ([]artwork.Artwork, error) {
		gotQuery = q
		return []artwork.Artwork{metArt(7, "Hokusai", "Japanese", 1831)}, nil
	}
	h, _ := newGalleryHandler(t, cat)

	res := serveGallery(h.Get, http.MethodGet, "/v1/galleries/met?q=+wave+", "met")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "wave", gotQuery)
	assert.Equal(t, "wave", res.Data()["search"])
}

func TestHTTPHandler_GetErrors(t *testing.T) {
	cat := staticCatalog(nil)
	cat.featured = func(context.Context) ([]artwork.Artwork, error) { return nil, errors.New("down") }
	cat.search = func(context.Context, string) ([]artwork.Artwork, error) { return nil, errors.New("down") }
	h, c := newGalleryHandler(t, cat)

	assert.Equal(t, http.StatusBadRequest, serveGallery(h.Get, http.MethodGet, "/v1/galleries/louvre", "louvre").Code)
	assert.Equal(t, http.StatusNotFound, serveGallery(h.Get, http.MethodGet, "/v1/galleries/aic", "aic").Code)
	assert.Equal(t, http.StatusBadRequest, serveGallery(h.Get, http.MethodGet, "/v1/galleries/met?sort=random", "met").Code)
	assert.Equal(t, http.StatusBadGateway, serveGallery(h.Get, http.MethodGet, "/v1/galleries/met?q=x", "met").Code)

	require.Error(t, c.Load(context.Background()))
	assert.Equal(t, http.StatusBadGateway, serveGallery(h.Get, http.MethodGet, "/v1/galleries/met", "met").Code)
}

func TestHTTPHandler_Refresh(t *testing.T) {
	h, c := newGalleryHandler(t, staticCatalog([]artwork.Artwork{metArt(1, "A", "", 2000)}))
	assert.Equal(t, StateIdle, c.View().State)

	res := serveGallery(h.Refresh, http.MethodPost, "/v1/galleries/met/refresh", "met")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "ready", res.Data()["state"])
	assert.Equal(t, StateReady, c.View().State)
}
