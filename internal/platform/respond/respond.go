// Package respond renders RFC 9457 problem details outside of Huma operations
// (router fallbacks and panic recovery), matching the bodies Huma produces.
package respond

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/negotiation"
	"github.com/fxamacker/cbor/v2"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/janisto/devconnector-api/internal/platform/logging"
)

const (
	contentTypeProblemJSON = "application/problem+json"
	contentTypeProblemCBOR = "application/problem+cbor"

	schemaPath = "/schemas/ErrorModel.json"

	// MsgInternal is the only detail a client ever sees for an unexpected failure.
	MsgInternal = "Server internal error"
)

var problemFormats = []string{
	"application/json",
	contentTypeProblemJSON,
	"application/cbor",
	contentTypeProblemCBOR,
}

type problem struct {
	Schema string `json:"$schema,omitempty" cbor:"$schema,omitempty"`
	*huma.ErrorModel
}

// acceptsCBOR reports whether the client prefers a CBOR rendering.
func acceptsCBOR(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	if accept == "" {
		return false
	}
	return strings.HasSuffix(negotiation.SelectQValueFast(accept, problemFormats), "cbor")
}

func schemaURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + schemaPath
}

// WriteProblem writes a problem details body for status with the given detail.
func WriteProblem(w http.ResponseWriter, r *http.Request, status int, detail string, errs ...*huma.ErrorDetail) {
	body := problem{
		Schema: schemaURL(r),
		ErrorModel: &huma.ErrorModel{
			Title:  http.StatusText(status),
			Status: status,
			Detail: detail,
			Errors: errs,
		},
	}

	w.Header().Set("Link", fmt.Sprintf(`<%s>; rel="describedBy"`, body.Schema))

	var (
		payload []byte
		err     error
	)
	if acceptsCBOR(r) {
		w.Header().Set("Content-Type", contentTypeProblemCBOR)
		payload, err = cbor.Marshal(body)
	} else {
		w.Header().Set("Content-Type", contentTypeProblemJSON)
		payload, err = marshalJSON(body)
	}
	if err != nil {
		logging.LogError(r.Context(), "failed to encode problem details", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(status)
	if _, err := w.Write(payload); err != nil {
		logging.LogWarn(r.Context(), "failed to write problem details", zap.Error(err))
	}
}

// NotFoundHandler renders 404 problem details for unmatched routes.
func NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteProblem(w, r, http.StatusNotFound, "resource not found")
	}
}

// MethodNotAllowedHandler renders 405 problem details and advertises the Allow header.
func MethodNotAllowedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if allow := allowedMethods(r); len(allow) > 0 {
			w.Header().Set("Allow", strings.Join(allow, ", "))
		}
		WriteProblem(w, r, http.StatusMethodNotAllowed, fmt.Sprintf("method %s not allowed", r.Method))
	}
}

type responseWriter struct {
	http.ResponseWriter
	wroteHeader bool
}

func (rw *responseWriter) WriteHeader(status int) {
	rw.wroteHeader = true
	rw.ResponseWriter.WriteHeader(status)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	return rw.ResponseWriter.Write(b)
}

func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// Recoverer turns panics into 500 problem details and logs the stack.
// http.ErrAbortHandler is re-panicked so net/http can abort the connection.
func Recoverer() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := &responseWriter{ResponseWriter: w}
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}
				logging.LogError(r.Context(), "panic recovered", nil,
					zap.Any("panic", rec),
					zap.ByteString("stack", debug.Stack()),
				)
				if rw.wroteHeader {
					return
				}
				WriteProblem(rw, r, http.StatusInternalServerError, MsgInternal)
			}()
			next.ServeHTTP(rw, r)
		})
	}
}

// allowedMethods asks chi which methods match the current path.
func allowedMethods(r *http.Request) []string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil || rctx.Routes == nil {
		return nil
	}
	routePath := rctx.RoutePath
	if routePath == "" {
		routePath = r.URL.Path
	}

	var allowed []string
	for _, method := range []string{
		http.MethodGet,
		http.MethodHead,
		http.MethodPost,
		http.MethodPut,
		http.MethodPatch,
		http.MethodDelete,
		http.MethodOptions,
	} {
		if rctx.Routes.Match(chi.NewRouteContext(), method, routePath) {
			allowed = append(allowed, method)
		}
	}
	return allowed
}
