package jsoner

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/reoring/jsoner/i18n"
)

// Error codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType     = "invalid_type"
	CodeNullNotAllowed  = "null_not_allowed"
	CodePattern         = "pattern"
	CodeInvalidEnum     = "invalid_enum"
	CodeFieldType       = "field_type"
	CodeUnionNoMatch    = "union_no_match"
	CodeNoCodec         = "no_codec"
	CodeInvalidShape    = "invalid_shape"
	CodeUnsupportedKey  = "unsupported_key"
	CodeInvalidFormat   = "invalid_format"
	CodeCaseCount       = "case_count"
	CodeCaseUnknown     = "case_unknown"
	CodeDiscMissing     = "discriminator_missing"
	CodeDiscUnknown     = "discriminator_unknown"
	CodeDiscShape       = "discriminator_shape"
	CodeUnknownField    = "unknown_field"
	CodeParseError      = "parse_error"
	CodeDuplicateKey    = "duplicate_key"
	CodeTruncated       = "truncated"
	CodeConversionError = "conversion"
)

// TypeMismatch is returned by the Validator when a value does not conform to
// a descriptor.
type TypeMismatch struct {
	Code     string
	Expected string // descriptor shape, e.g. Array[Integer]
	Kind     string // runtime kind of the offending value
	Var      string // variable or field name; empty for anonymous checks
	Value    any
	// Detail carries extra template data (pattern, member list).
	Detail map[string]string
}

func (e *TypeMismatch) Error() string {
	data := map[string]string{
		"expected": e.Expected,
		"kind":     e.Kind,
		"value":    inspect(e.Value),
		"var":      e.Var,
	}
	for k, v := range e.Detail {
		data[k] = v
	}
	return i18n.T(e.Code, data)
}

// ConversionError is the single error kind surfaced by Serialize and
// Deserialize. Path is a JSON Pointer to the failing node ("" for the root).
type ConversionError struct {
	Code    string
	Path    string
	Message string
	Cause   error
}

func (e *ConversionError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return e.Message + " (at " + e.Path + ")"
}

func (e *ConversionError) Unwrap() error { return e.Cause }

// ArgumentError reports a violated construction contract: unknown record
// fields, a tagged union given zero or several cases, or an undeclared case.
type ArgumentError struct {
	Code    string
	Message string
}

func (e *ArgumentError) Error() string { return e.Message }

// Is matches sentinels by code so callers can use errors.Is(err, ErrCaseCount).
func (e *ArgumentError) Is(target error) bool {
	t, ok := target.(*ArgumentError)
	return ok && t.Code == e.Code
}

var (
	ErrUnknownField = &ArgumentError{Code: CodeUnknownField, Message: "unknown field"}
	ErrCaseCount    = &ArgumentError{Code: CodeCaseCount, Message: "tagged union requires exactly one case"}
	ErrUnknownCase  = &ArgumentError{Code: CodeCaseUnknown, Message: "unknown tagged union case"}
)

// AsTypeMismatch extracts a *TypeMismatch from an error chain.
func AsTypeMismatch(err error) (*TypeMismatch, bool) {
	var tm *TypeMismatch
	if errors.As(err, &tm) {
		return tm, true
	}
	return nil, false
}

// AsConversionError extracts a *ConversionError from an error chain.
func AsConversionError(err error) (*ConversionError, bool) {
	var ce *ConversionError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

func newConversionError(code string, data map[string]string) *ConversionError {
	return &ConversionError{Code: code, Message: i18n.T(code, data)}
}

// toConversionError wraps err into a *ConversionError preserving its message.
// Errors that already are conversion errors pass through unchanged.
func toConversionError(err error) *ConversionError {
	var ce *ConversionError
	if errors.As(err, &ce) {
		return ce
	}
	code := CodeConversionError
	var tm *TypeMismatch
	var ae *ArgumentError
	switch {
	case errors.As(err, &tm):
		code = tm.Code
	case errors.As(err, &ae):
		code = ae.Code
	}
	return &ConversionError{Code: code, Message: err.Error(), Cause: err}
}

// atPath prefixes the error path with a JSON Pointer token for a child
// position (field, key or index).
func atPath(err error, token string) error {
	ce := toConversionError(err)
	out := *ce
	out.Path = "/" + escapePointer(token) + ce.Path
	return &out
}

func atIndex(err error, i int) error { return atPath(err, strconv.Itoa(i)) }

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func escapePointer(s string) string { return pointerEscaper.Replace(s) }

func mismatch(code string, t Type, v any) *TypeMismatch {
	return &TypeMismatch{Code: code, Expected: typeName(t), Kind: kindOf(v), Value: v}
}

func typeName(t Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}

// inspect renders a value for error messages, truncating long renditions.
func inspect(v any) string {
	var s string
	switch x := v.(type) {
	case nil:
		s = "null"
	case string:
		s = strconv.Quote(x)
	case fmt.Stringer:
		s = x.String()
	default:
		s = fmt.Sprintf("%v", x)
	}
	const maxLen = 64
	if len(s) > maxLen {
		s = s[:maxLen] + "..."
	}
	return s
}
