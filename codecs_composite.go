package jsoner

import (
	"errors"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/reoring/jsoner/i18n"
)

// optionalCodec maps null to nil and delegates everything else.
type optionalCodec struct{}

func (optionalCodec) Applicable(t Type) bool { _, ok := t.(*OptionalType); return ok }

func (optionalCodec) Deserialize(d Dispatcher, t Type, wire any) (any, error) {
	if wire == nil {
		return nil, nil
	}
	return d.Deserialize(t.(*OptionalType).inner, wire)
}

func (optionalCodec) Serialize(d Dispatcher, t Type, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	return d.Serialize(t.(*OptionalType).inner, v)
}

// arrayCodec converts every item through the dispatcher.
type arrayCodec struct{}

func (arrayCodec) Applicable(t Type) bool { _, ok := t.(*ArrayType); return ok }

func (arrayCodec) Deserialize(d Dispatcher, t Type, wire any) (any, error) {
	return convertItems(t.(*ArrayType), wire, d.Deserialize)
}

func (arrayCodec) Serialize(d Dispatcher, t Type, v any) (any, error) {
	return convertItems(t.(*ArrayType), v, d.Serialize)
}

func convertItems(a *ArrayType, v any, conv func(Type, any) (any, error)) (any, error) {
	if v == nil {
		return nil, mismatch(CodeNullNotAllowed, a, v)
	}
	if _, isObject := v.(Object); isObject {
		return nil, shapeError(v, "Array")
	}
	rv := reflect.ValueOf(v)
	if k := rv.Kind(); k != reflect.Slice && k != reflect.Array {
		return nil, shapeError(v, "Array")
	}
	out := make([]any, rv.Len())
	for i := range out {
		item, err := conv(a.item, rv.Index(i).Interface())
		if err != nil {
			return nil, atIndex(err, i)
		}
		out[i] = item
	}
	return out, nil
}

// mapCodec converts string-keyed maps. Keys are validated against the key
// descriptor and kept as they are; values go through the dispatcher.
type mapCodec struct{}

func (mapCodec) Applicable(t Type) bool { _, ok := t.(*MapType); return ok }

func (mapCodec) Deserialize(d Dispatcher, t Type, wire any) (any, error) {
	m := t.(*MapType)
	if err := checkMapKey(m); err != nil {
		return nil, err
	}
	if wire == nil {
		return nil, mismatch(CodeNullNotAllowed, m, wire)
	}
	lookup, keys, ok := asObject(wire)
	if !ok {
		return nil, shapeError(wire, "Object")
	}
	out := make(map[string]any, len(keys))
	for _, k := range keys {
		raw, _ := lookup(k)
		v, err := convertEntry(d.Deserialize, m, k, raw)
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}

func (mapCodec) Serialize(d Dispatcher, t Type, v any) (any, error) {
	m := t.(*MapType)
	if err := checkMapKey(m); err != nil {
		return nil, err
	}
	if v == nil {
		return nil, mismatch(CodeNullNotAllowed, m, v)
	}
	if o, ok := v.(Object); ok {
		out := make(map[string]any, len(o))
		for _, mem := range o {
			jv, err := convertEntry(d.Serialize, m, mem.Name, mem.Value)
			if err != nil {
				return nil, err
			}
			out[mem.Name] = jv
		}
		return out, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, mismatch(CodeInvalidType, m, v)
	}
	keys := rv.MapKeys()
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	out := make(map[string]any, len(keys))
	for _, k := range keys {
		name := k.String()
		jv, err := convertEntry(d.Serialize, m, name, rv.MapIndex(k).Interface())
		if err != nil {
			return nil, err
		}
		out[name] = jv
	}
	return out, nil
}

func checkMapKey(m *MapType) error {
	if stringKeyed(m.key) {
		return nil
	}
	return newConversionError(CodeUnsupportedKey, map[string]string{"expected": typeName(m.key)})
}

func convertEntry(conv func(Type, any) (any, error), m *MapType, key string, v any) (any, error) {
	if _, err := Check(m.key, key); err != nil {
		return nil, atPath(err, key)
	}
	out, err := conv(m.value, v)
	if err != nil {
		return nil, atPath(err, key)
	}
	return out, nil
}

// unionCodec tries the members in declaration order; the first success wins.
type unionCodec struct{}

func (unionCodec) Applicable(t Type) bool { _, ok := t.(*UnionType); return ok }

func (unionCodec) Deserialize(d Dispatcher, t Type, wire any) (any, error) {
	u := t.(*UnionType)
	errs := make([]error, 0, len(u.members))
	for _, m := range u.members {
		v, err := d.Deserialize(m, wire)
		if err == nil {
			return v, nil
		}
		errs = append(errs, err)
	}
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	msg := i18n.T(CodeUnionNoMatch, map[string]string{"value": inspect(wire), "expected": joinTypes(u.members)})
	if len(msgs) > 0 {
		msg += ": " + strings.Join(msgs, "; ")
	}
	return nil, &ConversionError{Code: CodeUnionNoMatch, Message: msg, Cause: errors.Join(errs...)}
}

func (unionCodec) Serialize(d Dispatcher, t Type, v any) (any, error) {
	u := t.(*UnionType)
	m := u.match(v)
	if m == nil {
		return nil, mismatch(CodeInvalidType, u, v)
	}
	return d.Serialize(m, v)
}

// recordCodec maps records to JSON objects. Unknown JSON members are ignored
// and absent members read as null.
type recordCodec struct{}

func (recordCodec) Applicable(t Type) bool { _, ok := t.(*RecordType); return ok }

func (recordCodec) Deserialize(d Dispatcher, t Type, wire any) (any, error) {
	rt := t.(*RecordType)
	if wire == nil {
		return nil, mismatch(CodeNullNotAllowed, rt, wire)
	}
	lookup, _, ok := asObject(wire)
	if !ok {
		return nil, shapeError(wire, "Object")
	}
	values := make(map[string]any, len(rt.fields))
	for _, f := range rt.fields {
		raw, _ := lookup(f.Name)
		v, err := d.Deserialize(f.Type, raw)
		if err != nil {
			return nil, atPath(err, f.Name)
		}
		values[f.Name] = v
	}
	return rt.New(values)
}

func (recordCodec) Serialize(d Dispatcher, t Type, v any) (any, error) {
	rt := t.(*RecordType)
	if err := rt.Check(v); err != nil {
		return nil, err
	}
	r := v.(*Record)
	out := make(Object, 0, len(rt.fields))
	for i, f := range rt.fields {
		jv, err := d.Serialize(f.Type, r.values[i])
		if err != nil {
			return nil, atPath(err, f.Name)
		}
		out = append(out, Member{Name: f.Name, Value: jv})
	}
	return out, nil
}

// taggedUnionCodec handles both wire layouts of a tagged union.
type taggedUnionCodec struct{}

func (taggedUnionCodec) Applicable(t Type) bool { _, ok := t.(*TaggedUnionType); return ok }

func (taggedUnionCodec) Deserialize(d Dispatcher, t Type, wire any) (any, error) {
	tu := t.(*TaggedUnionType)
	if wire == nil {
		return nil, mismatch(CodeNullNotAllowed, tu, wire)
	}
	lookup, keys, ok := asObject(wire)
	if !ok {
		return nil, shapeError(wire, "Object")
	}
	if tu.discriminator != "" {
		return decodeDiscriminated(d, tu, wire, lookup)
	}
	if len(keys) != 1 {
		return nil, newConversionError(CodeCaseCount, map[string]string{"expected": tu.name, "count": strconv.Itoa(len(keys))})
	}
	name := keys[0]
	ct, ok := tu.Case(name)
	if !ok {
		return nil, newConversionError(CodeCaseUnknown, map[string]string{"expected": tu.name, "key": name})
	}
	raw, _ := lookup(name)
	v, err := d.Deserialize(ct, raw)
	if err != nil {
		return nil, atPath(err, name)
	}
	return tu.Of(name, v)
}

// decodeDiscriminated decodes the whole object, discriminator included, as
// the case named by the discriminator member.
func decodeDiscriminated(d Dispatcher, tu *TaggedUnionType, wire any, lookup func(string) (any, bool)) (any, error) {
	raw, ok := lookup(tu.discriminator)
	if !ok {
		return nil, newConversionError(CodeDiscMissing, map[string]string{"field": tu.discriminator})
	}
	name, isString := raw.(string)
	ct, known := tu.Case(name)
	if !isString || !known {
		return nil, newConversionError(CodeDiscUnknown, map[string]string{"expected": tu.name, "field": tu.discriminator, "value": inspect(raw)})
	}
	v, err := d.Deserialize(ct, wire)
	if err != nil {
		return nil, err
	}
	return tu.Of(name, v)
}

func (taggedUnionCodec) Serialize(d Dispatcher, t Type, v any) (any, error) {
	tu := t.(*TaggedUnionType)
	if err := tu.Check(v); err != nil {
		return nil, err
	}
	u := v.(*UnionValue)
	ct, _ := tu.Case(u.tag)
	encoded, err := d.Serialize(ct, u.value)
	if tu.discriminator == "" {
		if err != nil {
			return nil, atPath(err, u.tag)
		}
		return Object{{Name: u.tag, Value: encoded}}, nil
	}
	if err != nil {
		return nil, err
	}
	var obj Object
	switch x := encoded.(type) {
	case Object:
		obj = x
	case map[string]any:
		obj = objectOf(x)
	default:
		return nil, newConversionError(CodeDiscShape, map[string]string{"expected": tu.name, "key": u.tag, "field": tu.discriminator})
	}
	return obj.With(tu.discriminator, u.tag), nil
}

// objectOf orders a map's members by key.
func objectOf(m map[string]any) Object {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make(Object, len(keys))
	for i, k := range keys {
		out[i] = Member{Name: k, Value: m[k]}
	}
	return out
}

func shapeError(v any, expected string) *ConversionError {
	return newConversionError(CodeInvalidShape, map[string]string{"kind": kindOf(v), "expected": expected})
}
