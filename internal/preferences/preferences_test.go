package preferences

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"curator/internal/storage"
	"curator/internal/testutil"
)

func newService() (*Service, *storage.Service) {
	st := storage.NewService(storage.NewMemoryStore())
	return NewService(st), st
}

func TestService_Theme(t *testing.T) {
	ctx := context.Background()
	svc, st := newService()

	got, err := svc.Theme(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, Light, got, "default")

	require.NoError(t, svc.SetTheme(ctx, "c1", Dark))
	got, err = svc.Theme(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, Dark, got)

	got, err = svc.Theme(ctx, "c2")
	require.NoError(t, err)
	assert.Equal(t, Light, got, "namespaces are separate")

	require.NoError(t, st.Set(ctx, "c1", ThemeKey, "sepia"))
	got, err = svc.Theme(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, Light, got, "unknown stored values fall back")

	assert.ErrorIs(t, svc.SetTheme(ctx, "c1", Theme("sepia")), ErrInvalidTheme)
}

func TestService_ToggleAndSubscribe(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	var seen []Theme
	unsubscribe := svc.SubscribeTheme(func(namespace string, th Theme) {
		assert.Equal(t, "c1", namespace)
		seen = append(seen, th)
	})

	next, err := svc.ToggleTheme(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, Dark, next)

	next, err = svc.ToggleTheme(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, Light, next)

	unsubscribe()
	_, err = svc.ToggleTheme(ctx, "c1")
	require.NoError(t, err)

	assert.Equal(t, []Theme{Dark, Light}, seen)
}

func TestHTTPHandler(t *testing.T) {
	svc, _ := newService()
	h := NewHTTPHandler(svc, nil)

	serve := func(fn http.HandlerFunc, r *http.Request) testutil.RecordResponse {
		w := httptest.NewRecorder()
		fn(w, r)
		return testutil.RecordHTTPResponse(w)
	}

	res := serve(h.GetTheme, testutil.NewClientRequest(http.MethodGet, "/v1/preferences/theme", nil, testutil.TestClientID))
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "light", res.Data()["theme"])

	res = serve(h.SetTheme, testutil.NewClientRequest(http.MethodPut, "/v1/preferences/theme", map[string]string{"theme": "dark"}, testutil.TestClientID))
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "dark", res.Data()["theme"])

	res = serve(h.SetTheme, testutil.NewClientRequest(http.MethodPut, "/v1/preferences/theme", map[string]string{"theme": "neon"}, testutil.TestClientID))
	assert.Equal(t, http.StatusBadRequest, res.Code)

	res = serve(h.ToggleTheme, testutil.NewClientRequest(http.MethodPost, "/v1/preferences/theme/toggle", nil, testutil.TestClientID))
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "light", res.Data()["theme"])
}
