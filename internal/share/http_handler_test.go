package share

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"curator/internal/artwork"
	"curator/internal/catalog"
	"curator/internal/exhibition"
	"curator/internal/storage"
	"curator/internal/testutil"
)

const pageURL = "https://curator.example/v1/shared"

func newShareHandler(t *testing.T) (*HTTPHandler, *MockFetcher, *exhibition.Store) {
	t.Helper()
	ctrl := gomock.NewController(t)
	fetcher := NewMockFetcher(ctrl)
	store := exhibition.NewStore(storage.NewService(storage.NewMemoryStore()), nil)
	return NewHTTPHandler(store, NewResolver(fetcher, 4), pageURL, nil), fetcher, store
}

func TestHTTPHandler_CreateLinkThenResolve(t *testing.T) {
	h, fetcher, store := newShareHandler(t)
	ctx := context.Background()

	exs, err := store.Load(ctx, testutil.TestClientID)
	require.NoError(t, err)
	id := exs[0].ID
	_, err = store.AddArtwork(ctx, testutil.TestClientID, id, testutil.StarryNight)
	require.NoError(t, err)
	_, err = store.AddArtwork(ctx, testutil.TestClientID, id, testutil.WheatField)
	require.NoError(t, err)

	r := testutil.NewClientRequest(http.MethodGet, "/v1/exhibitions/"+string(id)+"/share", nil, testutil.TestClientID)
	r.SetPathValue("id", string(id))
	w := httptest.NewRecorder()
	h.CreateLink(w, r)

	res := testutil.RecordHTTPResponse(w)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, float64(2), res.Data()["count"])
	link, _ := res.Data()["url"].(string)
	require.NotEmpty(t, link)

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "/v1/shared", u.Path)

	fetcher.EXPECT().FetchByID(gomock.Any(), testutil.StarryNight.Identity()).Return(testutil.StarryNight, nil)
	fetcher.EXPECT().FetchByID(gomock.Any(), testutil.WheatField.Identity()).Return(testutil.WheatField, nil)

	w = httptest.NewRecorder()
	h.Resolve(w, httptest.NewRequest(http.MethodGet, u.RequestURI(), nil))

	res = testutil.RecordHTTPResponse(w)
	require.Equal(t, http.StatusOK, res.Code)
	cards, _ := res.Data()["cards"].([]any)
	require.Len(t, cards, 2)
	assert.Equal(t, "Starry Night", cards[0].(map[string]any)["title"])
	assert.Equal(t, "Metropolitan Museum of Art", cards[1].(map[string]any)["museum"])
}

func TestHTTPHandler_CreateLinkUnknownExhibition(t *testing.T) {
	h, _, _ := newShareHandler(t)

	r := testutil.NewClientRequest(http.MethodGet, "/", nil, testutil.TestClientID)
	r.SetPathValue("id", "missing")
	w := httptest.NewRecorder()
	h.CreateLink(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHTTPHandler_CreateLinkTooManyArtworks(t *testing.T) {
	h, _, store := newShareHandler(t)
	ctx := context.Background()

	exs, err := store.Load(ctx, testutil.TestClientID)
	require.NoError(t, err)
	id := exs[0].ID
	for i := 1; i <= MaxRecords+1; i++ {
		a := testutil.Bare
		a.ID = i
		_, err = store.AddArtwork(ctx, testutil.TestClientID, id, a)
		require.NoError(t, err)
	}

	r := testutil.NewClientRequest(http.MethodGet, "/", nil, testutil.TestClientID)
	r.SetPathValue("id", string(id))
	w := httptest.NewRecorder()
	h.CreateLink(w, r)

	res := testutil.RecordHTTPResponse(w)
	assert.Equal(t, http.StatusUnprocessableEntity, res.Code)
	assert.Equal(t, "TOO_MANY_ARTWORKS", res.ErrorCode())
}

func TestHTTPHandler_ResolveErrors(t *testing.T) {
	h, fetcher, _ := newShareHandler(t)

	serve := func(query string) testutil.RecordResponse {
		w := httptest.NewRecorder()
		h.Resolve(w, httptest.NewRequest(http.MethodGet, "/v1/shared"+query, nil))
		return testutil.RecordHTTPResponse(w)
	}

	t.Run("missing token", func(t *testing.T) {
		res := serve("")
		assert.Equal(t, http.StatusBadRequest, res.Code)
		assert.Equal(t, "BAD_REQUEST", res.ErrorCode())
	})

	t.Run("garbage token", func(t *testing.T) {
		res := serve("?data=%21%21%21")
		assert.Equal(t, http.StatusBadRequest, res.Code)
		assert.Equal(t, "DECODE_ERROR", res.ErrorCode())
	})

	t.Run("oversized token fetches nothing", func(t *testing.T) {
		records := make([]Record, MaxRecords+1)
		for i := range records {
			records[i] = Record{ID: i + 1, Source: artwork.SourceMet}
		}
		res := serve("?data=" + EncodeRecords(records))
		assert.Equal(t, http.StatusBadRequest, res.Code)
		assert.Equal(t, "DECODE_ERROR", res.ErrorCode())
	})

	t.Run("null payload", func(t *testing.T) {
		res := serve("?data=bnVsbA%3D%3D")
		assert.Equal(t, http.StatusBadRequest, res.Code)
		assert.Equal(t, "DECODE_ERROR", res.ErrorCode())
	})

	t.Run("missing artwork", func(t *testing.T) {
		missing := artwork.Identity{Source: artwork.SourceAIC, ID: 404}
		fetcher.EXPECT().FetchByID(gomock.Any(), missing).Return(artwork.Artwork{}, fmt.Errorf("%w: %s", catalog.ErrNotFound, missing))

		res := serve("?data=" + EncodeRecords([]Record{{ID: 404, Source: artwork.SourceAIC}}))
		assert.Equal(t, http.StatusNotFound, res.Code)
	})

	t.Run("upstream failure", func(t *testing.T) {
		fetcher.EXPECT().FetchByID(gomock.Any(), gomock.Any()).Return(artwork.Artwork{}, errors.New("timeout"))

		res := serve("?data=" + EncodeRecords([]Record{{ID: 9, Source: artwork.SourceMet}}))
		assert.Equal(t, http.StatusBadGateway, res.Code)
		assert.Equal(t, "UPSTREAM_ERROR", res.ErrorCode())
	})
}
