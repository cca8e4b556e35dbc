package jsoner

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strings"
	"time"
)

// Type describes the shape of a value. Descriptors are created once at
// declaration time and are immutable afterwards, so they can be shared freely.
//
// The built-in descriptors are dispatched by the codec engine directly; user
// defined descriptors implement Type and are served by codecs added with
// Register.
type Type interface {
	// String renders the human-readable shape used in error messages.
	String() string
	// Check validates an in-memory value, returning a *TypeMismatch on failure.
	Check(v any) error
	// Equal reports whether two descriptors describe the same shape.
	Equal(other Type) bool
}

// PrimitiveKind enumerates the primitive descriptor kinds.
type PrimitiveKind int

const (
	KindString PrimitiveKind = iota
	KindInteger
	KindFloat
	KindNumber
	KindBoolean
	KindNull
)

// PrimitiveType requires an exact kind match.
type PrimitiveType struct{ kind PrimitiveKind }

var (
	String  = &PrimitiveType{kind: KindString}
	Integer = &PrimitiveType{kind: KindInteger}
	// Float decodes from integer or floating JSON numbers but only encodes
	// floating-point values.
	Float = &PrimitiveType{kind: KindFloat}
	// Number accepts integer and floating values alike.
	Number = &PrimitiveType{kind: KindNumber}
	Bool   = &PrimitiveType{kind: KindBoolean}
	// Null accepts nothing but nil.
	Null = &PrimitiveType{kind: KindNull}
)

func (p *PrimitiveType) Kind() PrimitiveKind { return p.kind }

func (p *PrimitiveType) String() string {
	switch p.kind {
	case KindString:
		return "String"
	case KindInteger:
		return "Integer"
	case KindFloat:
		return "Float"
	case KindNumber:
		return "Number"
	case KindBoolean:
		return "Boolean"
	default:
		return "Null"
	}
}

func (p *PrimitiveType) Check(v any) error {
	if v == nil {
		if p.kind == KindNull {
			return nil
		}
		return mismatch(CodeNullNotAllowed, p, v)
	}
	var ok bool
	switch k := reflect.TypeOf(v).Kind(); p.kind {
	case KindString:
		ok = k == reflect.String
	case KindInteger:
		ok = isIntegerKind(k) && fitsInt64(v)
	case KindFloat:
		ok = isFloatKind(k)
	case KindNumber:
		ok = isIntegerKind(k) && fitsInt64(v) || isFloatKind(k)
	case KindBoolean:
		ok = k == reflect.Bool
	}
	if !ok {
		return mismatch(CodeInvalidType, p, v)
	}
	return nil
}

func (p *PrimitiveType) Equal(other Type) bool {
	o, ok := other.(*PrimitiveType)
	return ok && o.kind == p.kind
}

// OptionalType accepts nil or a value conforming to the inner descriptor.
type OptionalType struct{ inner Type }

// Optional wraps t so that nil is accepted.
func Optional(t Type) *OptionalType {
	requireTypes("Optional", t)
	return &OptionalType{inner: t}
}

func (o *OptionalType) Inner() Type    { return o.inner }
func (o *OptionalType) String() string { return "Optional[" + typeName(o.inner) + "]" }

func (o *OptionalType) Check(v any) error {
	if v == nil {
		return nil
	}
	return o.inner.Check(v)
}

func (o *OptionalType) Equal(other Type) bool {
	x, ok := other.(*OptionalType)
	return ok && x.inner.Equal(o.inner)
}

// ArrayType is an ordered sequence whose items all conform to Item.
type ArrayType struct{ item Type }

// ArrayOf declares a sequence of item values.
func ArrayOf(item Type) *ArrayType {
	requireTypes("ArrayOf", item)
	return &ArrayType{item: item}
}

func (a *ArrayType) Item() Type     { return a.item }
func (a *ArrayType) String() string { return "Array[" + typeName(a.item) + "]" }

func (a *ArrayType) Check(v any) error {
	if v == nil {
		return mismatch(CodeNullNotAllowed, a, v)
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return mismatch(CodeInvalidType, a, v)
	}
	for i := 0; i < rv.Len(); i++ {
		if err := a.item.Check(rv.Index(i).Interface()); err != nil {
			return err
		}
	}
	return nil
}

func (a *ArrayType) Equal(other Type) bool {
	x, ok := other.(*ArrayType)
	return ok && x.item.Equal(a.item)
}

// MapType is a string-keyed dictionary. Only string-like key descriptors can
// be converted to JSON; others are rejected by the codec at conversion time.
type MapType struct {
	key   Type
	value Type
}

// MapOf declares a dictionary with the given key and value descriptors.
func MapOf(key, value Type) *MapType {
	requireTypes("MapOf", key, value)
	return &MapType{key: key, value: value}
}

func (m *MapType) Key() Type   { return m.key }
func (m *MapType) Value() Type { return m.value }

func (m *MapType) String() string {
	return "Map[" + typeName(m.key) + ", " + typeName(m.value) + "]"
}

func (m *MapType) Check(v any) error {
	if v == nil {
		return mismatch(CodeNullNotAllowed, m, v)
	}
	if o, ok := v.(Object); ok {
		for _, mem := range o {
			if err := m.key.Check(mem.Name); err != nil {
				return err
			}
			if err := m.value.Check(mem.Value); err != nil {
				return err
			}
		}
		return nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map {
		return mismatch(CodeInvalidType, m, v)
	}
	iter := rv.MapRange()
	for iter.Next() {
		if err := m.key.Check(iter.Key().Interface()); err != nil {
			return err
		}
		if err := m.value.Check(iter.Value().Interface()); err != nil {
			return err
		}
	}
	return nil
}

func (m *MapType) Equal(other Type) bool {
	x, ok := other.(*MapType)
	return ok && x.key.Equal(m.key) && x.value.Equal(m.value)
}

// stringKeyed reports whether values of t are always strings.
func stringKeyed(t Type) bool {
	switch k := t.(type) {
	case *PrimitiveType:
		return k.kind == KindString
	case *PatternType:
		return true
	}
	return false
}

// UnionType accepts a value conforming to at least one member. Member order
// is significant: the first match wins for both directions of conversion.
type UnionType struct{ members []Type }

// Union declares an untagged union of plain types.
func Union(members ...Type) *UnionType {
	requireTypes("Union", members...)
	return &UnionType{members: append([]Type(nil), members...)}
}

// Members returns a copy of the member descriptors in declaration order.
func (u *UnionType) Members() []Type { return append([]Type(nil), u.members...) }

func (u *UnionType) String() string { return "Union[" + joinTypes(u.members) + "]" }

func (u *UnionType) Check(v any) error {
	if u.match(v) != nil {
		return nil
	}
	return mismatch(CodeInvalidType, u, v)
}

// match returns the first member v conforms to, or nil.
func (u *UnionType) match(v any) Type {
	for _, m := range u.members {
		if InstanceOf(m, v) {
			return m
		}
	}
	return nil
}

// Equal is set equality over the members; order and repetition are ignored.
func (u *UnionType) Equal(other Type) bool {
	x, ok := other.(*UnionType)
	if !ok {
		return false
	}
	return containsAll(u.members, x.members) && containsAll(x.members, u.members)
}

func containsAll(set, sub []Type) bool {
	for _, s := range sub {
		found := false
		for _, t := range set {
			if t.Equal(s) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// PatternType is a string that fully matches a regular expression.
type PatternType struct {
	expr string
	re   *regexp.Regexp
}

// NewPattern compiles expr; the whole string must match.
func NewPattern(expr string) (*PatternType, error) {
	re, err := regexp.Compile(`^(?:` + expr + `)$`)
	if err != nil {
		return nil, fmt.Errorf("jsoner: invalid pattern %q: %w", expr, err)
	}
	return &PatternType{expr: expr, re: re}, nil
}

// MustPattern is like NewPattern but panics on an invalid expression.
func MustPattern(expr string) *PatternType {
	p, err := NewPattern(expr)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *PatternType) Expr() string   { return p.expr }
func (p *PatternType) String() string { return "Pattern<" + p.expr + ">" }

func (p *PatternType) Check(v any) error {
	if v == nil {
		return mismatch(CodeNullNotAllowed, p, v)
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.String {
		return mismatch(CodeInvalidType, p, v)
	}
	if !p.re.MatchString(rv.String()) {
		tm := mismatch(CodePattern, p, v)
		tm.Detail = map[string]string{"pattern": p.expr}
		return tm
	}
	return nil
}

func (p *PatternType) Equal(other Type) bool {
	x, ok := other.(*PatternType)
	return ok && x.expr == p.expr
}

// UnknownType is the opaque escape hatch: any non-null value validates and
// the codec passes values through untouched in both directions.
type UnknownType struct{}

var (
	Unknown = &UnknownType{}
	// NilableUnknown accepts anything, including null.
	NilableUnknown = Optional(Unknown)
	// UUID is a lower-case canonical UUID string.
	UUID = MustPattern(`[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`)
)

func (*UnknownType) String() string { return "Unknown" }

func (u *UnknownType) Check(v any) error {
	if v == nil {
		return mismatch(CodeNullNotAllowed, u, v)
	}
	return nil
}

func (*UnknownType) Equal(other Type) bool {
	_, ok := other.(*UnknownType)
	return ok
}

// EnumType is a finite set of named constants. Constants are compared
// exactly in memory; on the wire each constant is its plain underlying value.
type EnumType struct {
	name      string
	constants []any
}

// NewEnum declares an enum. Constants must be non-nil and have a string,
// integer, float or bool underlying kind.
func NewEnum(name string, constants ...any) (*EnumType, error) {
	if name == "" {
		return nil, errors.New("jsoner: enum name is required")
	}
	if len(constants) == 0 {
		return nil, fmt.Errorf("jsoner: enum %s has no constants", name)
	}
	for _, c := range constants {
		if _, ok := plainValue(c); !ok {
			return nil, fmt.Errorf("jsoner: enum %s constant %v (%T) is not a plain scalar", name, c, c)
		}
	}
	return &EnumType{name: name, constants: append([]any(nil), constants...)}, nil
}

// MustEnum is like NewEnum but panics on an invalid declaration.
func MustEnum(name string, constants ...any) *EnumType {
	e, err := NewEnum(name, constants...)
	if err != nil {
		panic(err)
	}
	return e
}

func (e *EnumType) Name() string { return e.name }

// Constants returns the declared constants in declaration order.
func (e *EnumType) Constants() []any { return append([]any(nil), e.constants...) }

func (e *EnumType) String() string { return e.name }

// Equal is nominal: an enum only equals its own declaration.
func (e *EnumType) Equal(o Type) bool { return o == Type(e) }

func (e *EnumType) isMember(v any) bool {
	for _, c := range e.constants {
		if c == v {
			return true
		}
	}
	return false
}

func (e *EnumType) Check(v any) error {
	if v == nil {
		return mismatch(CodeNullNotAllowed, e, v)
	}
	if !e.isMember(v) {
		return mismatch(CodeInvalidEnum, e, v)
	}
	return nil
}

// constantFor finds the declared constant whose plain value equals wire.
func (e *EnumType) constantFor(wire any) (any, bool) {
	pw, ok := plainValue(wire)
	if !ok {
		return nil, false
	}
	for _, c := range e.constants {
		pc, _ := plainValue(c)
		if plainEqual(pc, pw) {
			return c, true
		}
	}
	return nil, false
}

// DateType is a calendar date without time or zone, carried as LocalDate.
// Only existing days in years 0 through 9999 conform.
type DateType struct{}

// DateTimeType is a timestamp with second precision, carried as time.Time.
// The wire form is UTC; zones and fractional seconds are not represented.
type DateTimeType struct{}

var (
	Date     = &DateType{}
	DateTime = &DateTimeType{}
)

func (*DateType) String() string { return "Date" }

func (d *DateType) Check(v any) error {
	if v == nil {
		return mismatch(CodeNullNotAllowed, d, v)
	}
	ld, ok := v.(LocalDate)
	if !ok {
		return mismatch(CodeInvalidType, d, v)
	}
	if ld.Year < 0 || ld.Year > 9999 || !ld.IsValid() {
		tm := mismatch(CodeInvalidFormat, d, v)
		tm.Detail = map[string]string{"format": "YYYY-MM-DD"}
		return tm
	}
	return nil
}

func (*DateType) Equal(o Type) bool {
	_, ok := o.(*DateType)
	return ok
}

func (*DateTimeType) String() string { return "DateTime" }

func (d *DateTimeType) Check(v any) error {
	if v == nil {
		return mismatch(CodeNullNotAllowed, d, v)
	}
	if _, ok := v.(time.Time); !ok {
		return mismatch(CodeInvalidType, d, v)
	}
	return nil
}

func (*DateTimeType) Equal(o Type) bool {
	_, ok := o.(*DateTimeType)
	return ok
}

// requireTypes panics when a composite descriptor is declared over a nil
// descriptor.
func requireTypes(ctor string, ts ...Type) {
	for i, t := range ts {
		if t == nil {
			panic(fmt.Sprintf("jsoner: %s: descriptor %d is nil", ctor, i))
		}
	}
}

func joinTypes(ts []Type) string {
	names := make([]string, len(ts))
	for i, t := range ts {
		names[i] = typeName(t)
	}
	return strings.Join(names, ", ")
}

func isIntegerKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func isFloatKind(k reflect.Kind) bool { return k == reflect.Float32 || k == reflect.Float64 }

// fitsInt64 reports whether an integer value is representable as int64.
// Integers travel as int64, so larger unsigned values are not Integers.
func fitsInt64(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Uint, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() <= math.MaxInt64
	}
	return true
}
