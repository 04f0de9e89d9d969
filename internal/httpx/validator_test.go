package httpx

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type testPayload struct {
	Name   string `json:"name" validate:"required,min=1,max=10"`
	Source string `json:"source" validate:"required,artwork_source"`
	ID     int    `json:"id" validate:"gt=0"`
}

func TestValidateStruct_ValidInput(t *testing.T) {
	errs := ValidateStruct(testPayload{Name: "Show", Source: "chicago", ID: 4})
	if len(errs) != 0 {
		t.Errorf("Expected no validation errors, got %v", errs)
	}
}

func TestValidateStruct_Messages(t *testing.T) {
	errs := ValidateStruct(testPayload{Source: "louvre"})

	want := map[string]string{
		"name":   "required",
		"source": "aic or met",
		"id":     "greater than",
	}
	if len(errs) != len(want) {
		t.Fatalf("Expected %d errors, got %v", len(want), errs)
	}
	for _, e := range errs {
		frag, ok := want[e.Field]
		if !ok {
			t.Errorf("Unexpected field %q", e.Field)
			continue
		}
		if !strings.Contains(e.Message, frag) {
			t.Errorf("Expected %q in message for %s, got %q", frag, e.Field, e.Message)
		}
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{in: "  Impressionists ", want: "Impressionists"},
		{in: "<script>alert(1)</script>Room", want: "Room"},
		{in: "<b>Bold</b> picks", want: "Bold picks"},
		{in: "Tom & Jerry", want: "Tom & Jerry"},
	}
	for _, tt := range tests {
		if got := Sanitize(tt.in); got != tt.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDecodeAndValidate(t *testing.T) {
	t.Run("malformed json", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{"))
		var p testPayload
		if DecodeAndValidate(w, r, &p) {
			t.Fatal("Expected decode failure")
		}
		if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "BAD_REQUEST") {
			t.Errorf("Expected BAD_REQUEST, got %d %s", w.Code, w.Body.String())
		}
	})

	t.Run("invalid fields", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x","source":"nope","id":1}`))
		var p testPayload
		if DecodeAndValidate(w, r, &p) {
			t.Fatal("Expected validation failure")
		}
		if !strings.Contains(w.Body.String(), "VALIDATION_ERROR") {
			t.Errorf("Expected VALIDATION_ERROR, got %s", w.Body.String())
		}
	})

	t.Run("valid", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x","source":"met","id":1}`))
		var p testPayload
		if !DecodeAndValidate(w, r, &p) {
			t.Fatalf("Expected success, got %s", w.Body.String())
		}
		if p.Source != "met" {
			t.Errorf("Expected decoded payload, got %+v", p)
		}
	})
}
