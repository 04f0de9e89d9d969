package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"curator/internal/artwork"
	"curator/internal/httpx"
	"curator/internal/platform/crypto"
)

// TestClientID is the namespace used by handler tests.
const TestClientID = "test-client-id-123"

func intPtr(n int) *int { return &n }

// StarryNight is an aic artwork with every optional field set.
var StarryNight = artwork.Artwork{
	ID:     27992,
	Source: artwork.SourceAIC,
	Title:  "Starry Night",
	AIC: &artwork.AICDetails{
		ArtistTitle:   "Vincent van Gogh",
		DateEnd:       intPtr(1889),
		PlaceOfOrigin: "Netherlands",
		ImageID:       "e966799b-97ee-1cc6-bd2f-a94b4b8bb8f9",
	},
}

// WheatField is a met artwork with every optional field set.
var WheatField = artwork.Artwork{
	ID:     436535,
	Source: artwork.SourceMet,
	Title:  "Wheat Field with Cypresses",
	Met: &artwork.MetDetails{
		ArtistDisplayName: "Vincent van Gogh",
		AccessionYear:     intPtr(1993),
		ArtistNationality: "Dutch",
		PrimaryImage:      "https://images.metmuseum.org/CRDImages/ep/original/DT1567.jpg",
	},
}

// Bare is a met artwork with no optional fields.
var Bare = artwork.Artwork{
	ID:     1,
	Source: artwork.SourceMet,
	Title:  "Untitled",
	Met:    &artwork.MetDetails{},
}

// GenerateTestToken generates a client token for testing
func GenerateTestToken(secret, clientID string) string {
	token, _, _ := crypto.GenerateToken(secret, clientID, time.Hour)
	return token
}

// GenerateExpiredToken generates an expired client token for testing
func GenerateExpiredToken(secret, clientID string) string {
	c := crypto.Claims{
		Sub: clientID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    crypto.Issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	token, _ := t.SignedString([]byte(secret))
	return token
}

// NewRequest creates a new HTTP request for testing
func NewRequest(method, path string, body any) *http.Request {
	var r *http.Request
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		r = httptest.NewRequest(method, path, bytes.NewReader(bodyBytes))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	return r
}

// NewClientRequest creates a request that already passed the auth middleware
// as clientID.
func NewClientRequest(method, path string, body any, clientID string) *http.Request {
	r := NewRequest(method, path, body)
	return r.WithContext(httpx.ContextWithClient(r.Context(), clientID))
}

// RecordResponse records the HTTP response for testing
type RecordResponse struct {
	Code   int
	Header http.Header
	Body   map[string]any
}

// RecordHTTPResponse records the HTTP response
func RecordHTTPResponse(w *httptest.ResponseRecorder) RecordResponse {
	result := w.Result()
	defer result.Body.Close()

	bodyBytes, _ := io.ReadAll(result.Body)

	var bodyMap map[string]any
	if len(bodyBytes) > 0 {
		_ = json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&bodyMap)
	}

	return RecordResponse{
		Code:   result.StatusCode,
		Header: result.Header,
		Body:   bodyMap,
	}
}

// Data returns the envelope's data object, or nil.
func (r RecordResponse) Data() map[string]any {
	data, _ := r.Body["data"].(map[string]any)
	return data
}

// ErrorCode returns the envelope's error code, or "".
func (r RecordResponse) ErrorCode() string {
	e, _ := r.Body["error"].(map[string]any)
	code, _ := e["code"].(string)
	return code
}
