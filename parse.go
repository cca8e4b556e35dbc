package jsoner

import (
	"errors"
	"io"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/reoring/jsoner/i18n"
	eng "github.com/reoring/jsoner/internal/engine"
)

// ToJSON serializes v as t and prints the result.
func (j *Jsoner) ToJSON(t Type, v any) ([]byte, error) {
	wire, err := j.Serialize(t, v)
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(wire)
	if err != nil {
		return nil, &ConversionError{Code: CodeConversionError, Message: err.Error(), Cause: err}
	}
	return b, nil
}

// FromJSON parses one JSON document and deserializes it as t.
func (j *Jsoner) FromJSON(t Type, data []byte, opts ...ParseOpt) (any, error) {
	opt := lastOpt(opts)
	if opt.MaxBytes > 0 && int64(len(data)) > opt.MaxBytes {
		return nil, truncated(opt.MaxBytes)
	}
	return j.FromSource(t, JSONBytes(data), opt)
}

// FromJSONReader is FromJSON over a reader. With MaxBytes set the input is
// capped before any token is read.
func (j *Jsoner) FromJSONReader(t Type, r io.Reader, opts ...ParseOpt) (any, error) {
	opt := lastOpt(opts)
	if opt.MaxBytes > 0 {
		data, err := io.ReadAll(io.LimitReader(r, opt.MaxBytes+1))
		if err != nil {
			return nil, parseError(err)
		}
		return j.FromJSON(t, data, opt)
	}
	return j.FromSource(t, JSONReader(r), opt)
}

// FromSource decodes one JSON document from src and deserializes it as t.
func (j *Jsoner) FromSource(t Type, src Source, opts ...ParseOpt) (any, error) {
	wire, err := DecodeJSON(src, opts...)
	if err != nil {
		return nil, err
	}
	return j.Deserialize(t, wire)
}

// DecodeJSON reads one JSON document from src into a JSON value (nil, bool,
// string, json.Number, []any, map[string]any) under the enforcement options.
func DecodeJSON(src Source, opts ...ParseOpt) (any, error) {
	opt := lastOpt(opts)
	var sink func(eng.SimpleIssue)
	if opt.OnWarning != nil {
		sink = func(si eng.SimpleIssue) { opt.OnWarning(fromIssue(si)) }
	}
	enforced := eng.WrapWithEnforcement(engineView(src), eng.EnforceOptions{
		OnDuplicate: toEngineDup(opt.Strictness.OnDuplicateKey),
		MaxDepth:    opt.MaxDepth,
		MaxBytes:    opt.MaxBytes,
		IssueSink:   sink,
	})
	v, err := eng.DecodeDocument(enforced)
	if err != nil {
		var ie eng.IssueError
		if errors.As(err, &ie) {
			return nil, fromIssue(ie.SimpleIssue)
		}
		return nil, parseError(err)
	}
	return v, nil
}

// ToJSON serializes v with the default Jsoner.
func ToJSON(t Type, v any) ([]byte, error) { return defaultJsoner.ToJSON(t, v) }

// FromJSON deserializes data with the default Jsoner.
func FromJSON(t Type, data []byte, opts ...ParseOpt) (any, error) {
	return defaultJsoner.FromJSON(t, data, opts...)
}

// FromJSONReader deserializes the contents of r with the default Jsoner.
func FromJSONReader(t Type, r io.Reader, opts ...ParseOpt) (any, error) {
	return defaultJsoner.FromJSONReader(t, r, opts...)
}

func toEngineDup(s Severity) eng.DuplicateStrictness {
	switch s {
	case Warn:
		return eng.DupWarn
	case Error:
		return eng.DupError
	default:
		return eng.DupIgnore
	}
}

func fromIssue(si eng.SimpleIssue) *ConversionError {
	code := si.Code
	msg := si.Message
	switch code {
	case CodeParseError:
		msg = i18n.T(code, map[string]string{"detail": si.Message})
	case CodeDuplicateKey, CodeTruncated:
		msg = i18n.T(code, nil) + ": " + si.Message
	}
	return &ConversionError{Code: code, Path: si.Path, Message: msg, Cause: eng.IssueError{SimpleIssue: si}}
}

func parseError(err error) *ConversionError {
	return &ConversionError{
		Code:    CodeParseError,
		Message: i18n.T(CodeParseError, map[string]string{"detail": err.Error()}),
		Cause:   err,
	}
}

func truncated(limit int64) *ConversionError {
	return &ConversionError{
		Code:    CodeTruncated,
		Message: i18n.T(CodeTruncated, nil) + ": input exceeds " + strconv.FormatInt(limit, 10) + " bytes",
	}
}
