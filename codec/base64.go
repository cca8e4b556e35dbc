package codec

import (
	"encoding/base64"
	"fmt"

	"github.com/reoring/jsoner"
	js "github.com/reoring/jsoner/jsonschema"
)

// BytesType describes binary payloads carried as []byte.
type BytesType struct{}

// Bytes is the descriptor served by Base64.
var Bytes = &BytesType{}

func (*BytesType) String() string { return "Bytes" }

func (b *BytesType) Check(v any) error {
	if _, ok := v.([]byte); ok {
		return nil
	}
	code := jsoner.CodeInvalidType
	if v == nil {
		code = jsoner.CodeNullNotAllowed
	}
	return &jsoner.TypeMismatch{Code: code, Expected: b.String(), Kind: kindName(v), Value: v}
}

func (*BytesType) Equal(o jsoner.Type) bool {
	_, ok := o.(*BytesType)
	return ok
}

// JSONSchema describes the wire form.
func (*BytesType) JSONSchema() (*js.Schema, error) {
	return &js.Schema{Type: "string", Format: "byte"}, nil
}

// Base64 returns a codec converting Bytes values to standard, padded base64
// strings.
func Base64() jsoner.Codec {
	return Func(
		func(t jsoner.Type) bool { _, ok := t.(*BytesType); return ok },
		func(_ jsoner.Dispatcher, t jsoner.Type, v any) (any, error) {
			if err := t.Check(v); err != nil {
				return nil, err
			}
			return base64.StdEncoding.EncodeToString(v.([]byte)), nil
		},
		func(_ jsoner.Dispatcher, _ jsoner.Type, wire any) (any, error) {
			s, err := jsoner.Check(jsoner.String, wire)
			if err != nil {
				return nil, err
			}
			b, err := base64.StdEncoding.DecodeString(s.(string))
			if err != nil {
				return nil, &jsoner.ConversionError{Code: jsoner.CodeInvalidFormat, Message: "invalid base64 payload", Cause: err}
			}
			return b, nil
		},
	)
}

func kindName(v any) string {
	if v == nil {
		return "Null"
	}
	return fmt.Sprintf("%T", v)
}
