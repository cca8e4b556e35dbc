// Package middleware decodes HTTP request bodies against jsoner descriptors.
// The echo and gin adapters live in nested modules and build on it.
package middleware

import (
	"context"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/reoring/jsoner"
)

// ctxKeyDecoded is a typed context key for storing the decoded body.
type ctxKeyDecoded struct{}

// ContextWithDecoded attaches a decoded body to the context.
func ContextWithDecoded(ctx context.Context, v any) context.Context {
	return context.WithValue(ctx, ctxKeyDecoded{}, v)
}

// DecodedFromContext retrieves the decoded body from the context as T.
func DecodedFromContext[T any](ctx context.Context) (T, bool) {
	v, ok := ctx.Value(ctxKeyDecoded{}).(T)
	return v, ok
}

// DefaultParseOpt returns a recommended default for HTTP JSON boundaries:
// duplicate keys are errors and bodies are capped at 1 MiB.
func DefaultParseOpt() jsoner.ParseOpt {
	return jsoner.ParseOpt{
		Strictness: jsoner.Strictness{OnDuplicateKey: jsoner.Error},
		MaxBytes:   1 << 20,
	}
}

// OrDefault returns DefaultParseOpt when opt is the zero value.
func OrDefault(opt jsoner.ParseOpt) jsoner.ParseOpt {
	if opt.Strictness.OnDuplicateKey == jsoner.Ignore && opt.MaxDepth == 0 && opt.MaxBytes == 0 && opt.OnWarning == nil {
		return DefaultParseOpt()
	}
	return opt
}

// DecodeRequest deserializes the request body as t with the default Jsoner.
func DecodeRequest(r *http.Request, t jsoner.Type, opt jsoner.ParseOpt) (any, error) {
	return jsoner.FromJSONReader(t, r.Body, opt)
}

// ErrorPayload shapes a conversion failure for JSON responses.
func ErrorPayload(err error) map[string]any {
	ce, ok := jsoner.AsConversionError(err)
	if !ok {
		return map[string]any{"error": map[string]any{"message": err.Error()}}
	}
	body := map[string]any{"code": ce.Code, "message": ce.Message}
	if ce.Path != "" {
		body["path"] = ce.Path
	}
	return map[string]any{"error": body}
}

// Handler decodes every request body as t before calling next. Failures are
// answered with 400 and an ErrorPayload; next reads the value with
// DecodedFromContext.
func Handler(t jsoner.Type, opt jsoner.ParseOpt, next http.Handler) http.Handler {
	opt = OrDefault(opt)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v, err := DecodeRequest(r, t, opt)
		if err != nil {
			WriteJSON(w, http.StatusBadRequest, ErrorPayload(err))
			return
		}
		next.ServeHTTP(w, r.WithContext(ContextWithDecoded(r.Context(), v)))
	})
}

// WriteJSON writes body as a JSON response.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	b, err := json.Marshal(body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(b)
}
