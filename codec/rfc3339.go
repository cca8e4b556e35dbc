package codec

import (
	"time"

	"github.com/reoring/jsoner"
	js "github.com/reoring/jsoner/jsonschema"
)

// TimestampType describes zone-aware instants carried as time.Time.
type TimestampType struct{}

// Timestamp is the descriptor served by RFC3339.
var Timestamp = &TimestampType{}

func (*TimestampType) String() string { return "Timestamp" }

func (t *TimestampType) Check(v any) error {
	if _, ok := v.(time.Time); ok {
		return nil
	}
	code := jsoner.CodeInvalidType
	if v == nil {
		code = jsoner.CodeNullNotAllowed
	}
	return &jsoner.TypeMismatch{Code: code, Expected: t.String(), Kind: kindName(v), Value: v}
}

func (*TimestampType) Equal(o jsoner.Type) bool {
	_, ok := o.(*TimestampType)
	return ok
}

// JSONSchema describes the wire form.
func (*TimestampType) JSONSchema() (*js.Schema, error) {
	return &js.Schema{Type: "string", Format: "date-time"}, nil
}

// RFC3339 returns a codec converting Timestamp values to RFC 3339 strings.
// Instants are written in UTC with trailing zeros trimmed; any offset is
// accepted when reading.
func RFC3339() jsoner.Codec {
	return Func(
		func(t jsoner.Type) bool { _, ok := t.(*TimestampType); return ok },
		func(_ jsoner.Dispatcher, t jsoner.Type, v any) (any, error) {
			if err := t.Check(v); err != nil {
				return nil, err
			}
			return formatRFC3339Canonical(v.(time.Time)), nil
		},
		func(_ jsoner.Dispatcher, t jsoner.Type, wire any) (any, error) {
			s, err := jsoner.Check(jsoner.String, wire)
			if err != nil {
				return nil, err
			}
			ts, err := parseRFC3339(s.(string))
			if err != nil {
				return nil, &jsoner.ConversionError{Code: jsoner.CodeInvalidFormat, Message: "invalid RFC3339 time " + s.(string), Cause: err}
			}
			return ts, nil
		},
	)
}

func parseRFC3339(s string) (time.Time, error) {
	// RFC3339Nano also accepts inputs without fractional seconds.
	return time.Parse(time.RFC3339Nano, s)
}

func formatRFC3339Canonical(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
