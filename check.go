package jsoner

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"time"
)

// Check validates v against t and returns v unchanged on success. Failures
// are *TypeMismatch values naming the descriptor and the runtime kind of v.
func Check(t Type, v any) (any, error) {
	if t == nil {
		return nil, &TypeMismatch{Code: CodeInvalidType, Expected: "<nil>", Kind: kindOf(v), Value: v}
	}
	if err := t.Check(v); err != nil {
		return nil, err
	}
	return v, nil
}

// CheckVar is Check for a named variable; the failure names the variable and
// the declared type.
func CheckVar(name string, t Type, v any) (any, error) {
	if _, err := Check(t, v); err != nil {
		return nil, &TypeMismatch{Code: CodeFieldType, Expected: typeName(t), Kind: kindOf(v), Var: name, Value: v}
	}
	return v, nil
}

// InstanceOf reports whether v conforms to t.
func InstanceOf(t Type, v any) bool {
	_, err := Check(t, v)
	return err == nil
}

// kindOf names the runtime kind of v for error messages.
func kindOf(v any) string {
	switch x := v.(type) {
	case nil:
		return "Null"
	case *Record:
		return x.typ.name
	case *UnionValue:
		return x.typ.name
	case LocalDate:
		return "Date"
	case time.Time:
		return "DateTime"
	case json.Number:
		return "Number"
	case Object:
		return "Object"
	}
	switch k := reflect.TypeOf(v).Kind(); {
	case k == reflect.String:
		return "String"
	case k == reflect.Bool:
		return "Boolean"
	case isIntegerKind(k):
		return "Integer"
	case isFloatKind(k):
		return "Float"
	case k == reflect.Slice || k == reflect.Array:
		return "Array"
	case k == reflect.Map:
		return "Map"
	}
	return fmt.Sprintf("%T", v)
}

// plainValue reduces a scalar to its plain form: string, int64, float64 or
// bool. json.Number is resolved to int64 when integral.
func plainValue(v any) (any, bool) {
	if n, ok := v.(json.Number); ok {
		if i, err := strconv.ParseInt(string(n), 10, 64); err == nil {
			return i, true
		}
		f, err := n.Float64()
		return f, err == nil
	}
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	switch k := rv.Kind(); {
	case k == reflect.String:
		return rv.String(), true
	case k == reflect.Bool:
		return rv.Bool(), true
	case k >= reflect.Int && k <= reflect.Int64:
		return rv.Int(), true
	case k >= reflect.Uint && k <= reflect.Uint64:
		if rv.Uint() > math.MaxInt64 {
			return nil, false
		}
		return int64(rv.Uint()), true
	case isFloatKind(k):
		return rv.Float(), true
	}
	return nil, false
}

// plainEqual compares plain scalars, treating integral floats and integers
// as equal numbers.
func plainEqual(a, b any) bool {
	switch x := a.(type) {
	case int64:
		switch y := b.(type) {
		case int64:
			return x == y
		case float64:
			return float64(x) == y
		}
	case float64:
		switch y := b.(type) {
		case int64:
			return x == float64(y)
		case float64:
			return x == y
		}
	}
	return a == b
}

// valuesEqual compares in-memory values structurally. Records and tagged
// union values use their own equality; times compare as instants.
func valuesEqual(a, b any) bool {
	switch x := a.(type) {
	case *Record:
		y, ok := b.(*Record)
		return ok && x.Equal(y)
	case *UnionValue:
		y, ok := b.(*UnionValue)
		return ok && x.Equal(y)
	case time.Time:
		y, ok := b.(time.Time)
		return ok && x.Equal(y)
	case []any:
		y, ok := b.([]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !valuesEqual(x[i], y[i]) {
				return false
			}
		}
		return true
	case map[string]any:
		y, ok := b.(map[string]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for k, xv := range x {
			yv, ok := y[k]
			if !ok || !valuesEqual(xv, yv) {
				return false
			}
		}
		return true
	}
	if isNumeric(a) && isNumeric(b) {
		pa, _ := plainValue(a)
		pb, _ := plainValue(b)
		return plainEqual(pa, pb)
	}
	return reflect.DeepEqual(a, b)
}

func isNumeric(v any) bool {
	if v == nil {
		return false
	}
	k := reflect.TypeOf(v).Kind()
	return isIntegerKind(k) && fitsInt64(v) || isFloatKind(k)
}

// asObject reports whether a wire value is a JSON object and returns a
// lookup over its members.
func asObject(v any) (lookup func(string) (any, bool), keys []string, ok bool) {
	switch o := v.(type) {
	case map[string]any:
		keys = make([]string, 0, len(o))
		for k := range o {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return func(k string) (any, bool) {
			x, ok := o[k]
			return x, ok
		}, keys, true
	case Object:
		keys = make([]string, len(o))
		for i, m := range o {
			keys[i] = m.Name
		}
		return o.Get, keys, true
	}
	return nil, nil, false
}
