package jsoner

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/reoring/jsoner/i18n"
)

// primitiveCodec serves String, Integer, Number, Bool and Null with exact
// kind matching in both directions.
type primitiveCodec struct{}

func (primitiveCodec) Applicable(t Type) bool {
	p, ok := t.(*PrimitiveType)
	return ok && p.kind != KindFloat
}

func (primitiveCodec) Deserialize(_ Dispatcher, t Type, wire any) (any, error) {
	p := t.(*PrimitiveType)
	if wire == nil {
		return Check(p, wire)
	}
	switch p.kind {
	case KindInteger:
		if i, ok := wireInt(wire); ok {
			return i, nil
		}
	case KindNumber:
		if i, ok := wireInt(wire); ok {
			return i, nil
		}
		if f, ok := wireFloat(wire); ok {
			return f, nil
		}
	case KindString:
		if _, isNum := wire.(json.Number); !isNum {
			if rv := reflect.ValueOf(wire); rv.Kind() == reflect.String {
				return rv.String(), nil
			}
		}
	default:
		return primitiveOut(p, wire)
	}
	return nil, mismatch(CodeInvalidType, p, wire)
}

func (primitiveCodec) Serialize(_ Dispatcher, t Type, v any) (any, error) {
	return primitiveOut(t.(*PrimitiveType), v)
}

// primitiveOut validates v and normalizes it to a plain JSON scalar.
func primitiveOut(p *PrimitiveType, v any) (any, error) {
	if _, err := Check(p, v); err != nil {
		return nil, err
	}
	switch {
	case v == nil:
		return nil, nil
	case p.kind == KindString:
		return reflect.ValueOf(v).String(), nil
	}
	pv, _ := plainValue(v)
	return pv, nil
}

// floatCodec decodes integer or floating JSON numbers into float64 but
// only encodes values that already are floating point.
type floatCodec struct{}

var floatWire = Union(Float, Integer)

func (floatCodec) Applicable(t Type) bool { return t == Type(Float) }

func (floatCodec) Deserialize(_ Dispatcher, t Type, wire any) (any, error) {
	if wire == nil {
		return Check(t, wire)
	}
	if f, ok := wireFloat(wire); ok {
		return f, nil
	}
	return nil, mismatch(CodeInvalidType, floatWire, wire)
}

func (floatCodec) Serialize(_ Dispatcher, t Type, v any) (any, error) {
	if _, err := Check(Float, v); err != nil {
		return nil, err
	}
	return reflect.ValueOf(v).Float(), nil
}

// wireInt reads an integral JSON number. Numbers written with a fraction or
// exponent are floating, even when their value is integral.
func wireInt(wire any) (int, bool) {
	if n, ok := wire.(json.Number); ok {
		if strings.ContainsAny(string(n), ".eE") {
			return 0, false
		}
		i, err := strconv.ParseInt(string(n), 10, strconv.IntSize)
		return int(i), err == nil
	}
	rv := reflect.ValueOf(wire)
	switch k := rv.Kind(); {
	case k >= reflect.Int && k <= reflect.Int64:
		if i := rv.Int(); i >= math.MinInt && i <= math.MaxInt {
			return int(i), true
		}
	case k >= reflect.Uint && k <= reflect.Uint64:
		if u := rv.Uint(); u <= math.MaxInt {
			return int(u), true
		}
	}
	return 0, false
}

func wireFloat(wire any) (float64, bool) {
	if n, ok := wire.(json.Number); ok {
		f, err := n.Float64()
		return f, err == nil
	}
	rv := reflect.ValueOf(wire)
	switch k := rv.Kind(); {
	case isFloatKind(k):
		return rv.Float(), true
	case k >= reflect.Int && k <= reflect.Int64:
		return float64(rv.Int()), true
	case k >= reflect.Uint && k <= reflect.Uint64:
		return float64(rv.Uint()), true
	}
	return 0, false
}

// patternCodec enforces the pattern both ways; the pattern itself is never
// part of the wire form.
type patternCodec struct{}

func (patternCodec) Applicable(t Type) bool { _, ok := t.(*PatternType); return ok }

func (patternCodec) Deserialize(_ Dispatcher, t Type, wire any) (any, error) {
	if _, isNum := wire.(json.Number); isNum {
		return nil, mismatch(CodeInvalidType, t, wire)
	}
	return plainString(t, wire)
}

func (patternCodec) Serialize(_ Dispatcher, t Type, v any) (any, error) {
	return plainString(t, v)
}

func plainString(t Type, v any) (any, error) {
	if _, err := Check(t, v); err != nil {
		return nil, err
	}
	return reflect.ValueOf(v).String(), nil
}

// enumCodec: the wire form of a constant is its plain value. Decoding returns
// the declared constant so typed constants survive a round trip.
type enumCodec struct{}

func (enumCodec) Applicable(t Type) bool { _, ok := t.(*EnumType); return ok }

func (enumCodec) Deserialize(_ Dispatcher, t Type, wire any) (any, error) {
	e := t.(*EnumType)
	if wire == nil {
		return Check(e, wire)
	}
	c, ok := e.constantFor(wire)
	if !ok {
		return nil, mismatch(CodeInvalidEnum, e, wire)
	}
	return c, nil
}

func (enumCodec) Serialize(_ Dispatcher, t Type, v any) (any, error) {
	if _, err := Check(t, v); err != nil {
		return nil, err
	}
	pv, _ := plainValue(v)
	return pv, nil
}

// unknownCodec passes values through untouched.
type unknownCodec struct{}

func (unknownCodec) Applicable(t Type) bool { _, ok := t.(*UnknownType); return ok }

func (unknownCodec) Deserialize(_ Dispatcher, _ Type, wire any) (any, error) { return wire, nil }
func (unknownCodec) Serialize(_ Dispatcher, _ Type, v any) (any, error)      { return v, nil }

// dateCodec uses the fixed YYYY-MM-DD form.
type dateCodec struct{}

func (dateCodec) Applicable(t Type) bool { return t == Type(Date) }

func (dateCodec) Deserialize(_ Dispatcher, t Type, wire any) (any, error) {
	s, err := Check(String, wire)
	if err != nil {
		return nil, err
	}
	d, perr := ParseDate(s.(string))
	if perr != nil {
		return nil, formatError(t, wire, "YYYY-MM-DD", perr)
	}
	return d, nil
}

func (dateCodec) Serialize(_ Dispatcher, t Type, v any) (any, error) {
	if _, err := Check(t, v); err != nil {
		return nil, err
	}
	return v.(LocalDate).String(), nil
}

// dateTimeCodec uses the fixed YYYY-MM-DDTHH:MM:SS form in UTC. Zoned
// values are converted to UTC before formatting.
type dateTimeCodec struct{}

func (dateTimeCodec) Applicable(t Type) bool { return t == Type(DateTime) }

func (dateTimeCodec) Deserialize(_ Dispatcher, t Type, wire any) (any, error) {
	s, err := Check(String, wire)
	if err != nil {
		return nil, err
	}
	// time.Parse tolerates fractional seconds the layout does not name.
	if len(s.(string)) != len(DateTimeLayout) {
		return nil, formatError(t, wire, "YYYY-MM-DDTHH:MM:SS", nil)
	}
	ts, perr := time.ParseInLocation(DateTimeLayout, s.(string), time.UTC)
	if perr != nil {
		return nil, formatError(t, wire, "YYYY-MM-DDTHH:MM:SS", perr)
	}
	return ts, nil
}

func (dateTimeCodec) Serialize(_ Dispatcher, t Type, v any) (any, error) {
	if _, err := Check(t, v); err != nil {
		return nil, err
	}
	return v.(time.Time).UTC().Format(DateTimeLayout), nil
}

func formatError(t Type, wire any, format string, cause error) *ConversionError {
	return &ConversionError{
		Code:    CodeInvalidFormat,
		Message: i18n.T(CodeInvalidFormat, map[string]string{"expected": typeName(t), "value": inspect(wire), "format": format}),
		Cause:   cause,
	}
}
