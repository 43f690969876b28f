package respond

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/fxamacker/cbor/v2"
	"github.com/go-chi/chi/v5"
)

type testProblem struct {
	Schema string              `json:"$schema,omitempty"`
	Title  string              `json:"title,omitempty"`
	Status int                 `json:"status,omitempty"`
	Detail string              `json:"detail,omitempty"`
	Errors []*huma.ErrorDetail `json:"errors,omitempty"`
}

func TestNotFoundHandlerReturnsProblemDetails(t *testing.T) {
	router := chi.NewRouter()
	router.NotFound(NotFoundHandler())

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/missing", nil))

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); ct != contentTypeProblemJSON {
		t.Fatalf("expected %s, got %q", contentTypeProblemJSON, ct)
	}
	if link := resp.Header().Get("Link"); !strings.Contains(link, schemaPath) || !strings.Contains(link, "describedBy") {
		t.Fatalf("expected Link header with schema, got %q", link)
	}

	var p testProblem
	if err := json.Unmarshal(resp.Body.Bytes(), &p); err != nil {
		t.Fatalf("failed to unmarshal problem: %v", err)
	}
	if p.Status != http.StatusNotFound || p.Title != "Not Found" || p.Detail != "resource not found" {
		t.Fatalf("unexpected problem: %+v", p)
	}
	if !strings.HasSuffix(p.Schema, schemaPath) {
		t.Fatalf("expected $schema, got %q", p.Schema)
	}
}

func TestMethodNotAllowedHandlerSetsAllow(t *testing.T) {
	router := chi.NewRouter()
	router.MethodNotAllowed(MethodNotAllowedHandler())
	router.Get("/profile", func(w http.ResponseWriter, r *http.Request) {})
	router.Post("/profile", func(w http.ResponseWriter, r *http.Request) {})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodDelete, "/profile", nil))

	if resp.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", resp.Code)
	}
	allow := resp.Header().Get("Allow")
	if !strings.Contains(allow, http.MethodGet) || !strings.Contains(allow, http.MethodPost) {
		t.Fatalf("expected Allow to list GET and POST, got %q", allow)
	}

	var p testProblem
	if err := json.Unmarshal(resp.Body.Bytes(), &p); err != nil {
		t.Fatalf("failed to unmarshal problem: %v", err)
	}
	if !strings.Contains(p.Detail, http.MethodDelete) {
		t.Fatalf("expected detail to mention DELETE, got %q", p.Detail)
	}
}

func TestWriteProblemCBOR(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	req.Header.Set("Accept", "application/cbor")
	resp := httptest.NewRecorder()

	WriteProblem(resp, req, http.StatusBadRequest, "Profile not found", &huma.ErrorDetail{Location: "path.userId", Message: "Profile not found"})

	if ct := resp.Header().Get("Content-Type"); ct != contentTypeProblemCBOR {
		t.Fatalf("expected %s, got %q", contentTypeProblemCBOR, ct)
	}
	var p testProblem
	if err := cbor.Unmarshal(resp.Body.Bytes(), &p); err != nil {
		t.Fatalf("failed to unmarshal CBOR problem: %v", err)
	}
	if p.Status != http.StatusBadRequest || len(p.Errors) != 1 || p.Errors[0].Location != "path.userId" {
		t.Fatalf("unexpected problem: %+v", p)
	}
}

func TestAcceptsCBOR(t *testing.T) {
	tests := []struct {
		accept string
		want   bool
	}{
		{"", false},
		{"application/json", false},
		{"*/*", false},
		{"application/cbor", true},
		{"application/problem+cbor", true},
		{"application/json;q=0.5, application/cbor;q=1.0", true},
		{"application/cbor;q=0.2, application/json", false},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tt.accept != "" {
			req.Header.Set("Accept", tt.accept)
		}
		if got := acceptsCBOR(req); got != tt.want {
			t.Errorf("acceptsCBOR(%q) = %v, want %v", tt.accept, got, tt.want)
		}
	}
}

func TestRecovererReturnsProblemDetails(t *testing.T) {
	router := chi.NewRouter()
	router.Use(Recoverer())
	router.Get("/panic", func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/panic", nil))

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
	var p testProblem
	if err := json.Unmarshal(resp.Body.Bytes(), &p); err != nil {
		t.Fatalf("failed to unmarshal problem: %v", err)
	}
	if p.Detail != MsgInternal {
		t.Fatalf("expected %q, got %q", MsgInternal, p.Detail)
	}
	if strings.Contains(resp.Body.String(), "boom") {
		t.Fatal("panic value must not leak to the client")
	}
}

func TestRecovererRePanicsOnErrAbortHandler(t *testing.T) {
	router := chi.NewRouter()
	router.Use(Recoverer())
	router.Get("/abort", func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	})

	defer func() {
		err, ok := recover().(error)
		if !ok || !errors.Is(err, http.ErrAbortHandler) {
			t.Fatalf("expected http.ErrAbortHandler to propagate, got %v", err)
		}
	}()

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/abort", nil))
	t.Fatal("expected panic to propagate")
}

func TestRecovererKeepsPartialResponse(t *testing.T) {
	router := chi.NewRouter()
	router.Use(Recoverer())
	router.Get("/partial", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("partial"))
		panic("late")
	})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/partial", nil))

	if resp.Code != http.StatusOK || resp.Body.String() != "partial" {
		t.Fatalf("expected partial response preserved, got %d %q", resp.Code, resp.Body.String())
	}
}
