package jsoner

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/reoring/jsoner/i18n"
)

// Field declares one named, independently typed record field.
type Field struct {
	Name string
	Type Type
}

// RecordType is a fixed-shape aggregate of declared fields. It doubles as the
// descriptor of its values and as their constructor.
type RecordType struct {
	name   string
	fields []Field
	index  map[string]int
}

// NewRecordType declares a record. Field order is kept for construction
// checks and for the encoded member order.
func NewRecordType(name string, fields ...Field) (*RecordType, error) {
	if name == "" {
		return nil, errors.New("jsoner: record name is required")
	}
	t := &RecordType{name: name, fields: make([]Field, 0, len(fields)), index: make(map[string]int, len(fields))}
	for _, f := range fields {
		if f.Name == "" {
			return nil, fmt.Errorf("jsoner: record %s: empty field name", name)
		}
		if f.Type == nil {
			return nil, fmt.Errorf("jsoner: record %s: field %s has no type", name, f.Name)
		}
		if _, dup := t.index[f.Name]; dup {
			return nil, fmt.Errorf("jsoner: record %s: duplicate field %s", name, f.Name)
		}
		t.index[f.Name] = len(t.fields)
		t.fields = append(t.fields, f)
	}
	return t, nil
}

// MustRecord is like NewRecordType but panics on an invalid declaration.
func MustRecord(name string, fields ...Field) *RecordType {
	t, err := NewRecordType(name, fields...)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *RecordType) Name() string   { return t.name }
func (t *RecordType) String() string { return t.name }

// Fields returns the declared fields in declaration order.
func (t *RecordType) Fields() []Field { return append([]Field(nil), t.fields...) }

// Field returns the descriptor of a declared field.
func (t *RecordType) Field(name string) (Type, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.fields[i].Type, true
}

// Check accepts only records constructed by this declaration.
func (t *RecordType) Check(v any) error {
	if v == nil {
		return mismatch(CodeNullNotAllowed, t, v)
	}
	r, ok := v.(*Record)
	if !ok || r == nil || r.typ != t {
		return mismatch(CodeInvalidType, t, v)
	}
	return nil
}

// Equal is nominal: a record type only equals itself.
func (t *RecordType) Equal(other Type) bool { return other == Type(t) }

// New validates every declared field, in declaration order, and only then
// builds the record. Absent keys read as nil, so only Optional fields may be
// left out. Keys that are not declared fields are rejected.
func (t *RecordType) New(values map[string]any) (*Record, error) {
	if err := t.checkKeys(values); err != nil {
		return nil, err
	}
	out := make([]any, len(t.fields))
	for i, f := range t.fields {
		v, err := CheckVar(f.Name, f.Type, values[f.Name])
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return &Record{typ: t, values: out}, nil
}

// MustNew is like New but panics on invalid input.
func (t *RecordType) MustNew(values map[string]any) *Record {
	r, err := t.New(values)
	if err != nil {
		panic(err)
	}
	return r
}

func (t *RecordType) checkKeys(values map[string]any) error {
	var unknown []string
	for k := range values {
		if _, ok := t.index[k]; !ok {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return &ArgumentError{
		Code:    CodeUnknownField,
		Message: i18n.T(CodeUnknownField, map[string]string{"expected": t.name, "field": strings.Join(unknown, ", ")}),
	}
}

// Record is an immutable value of a RecordType.
type Record struct {
	typ    *RecordType
	values []any
}

func (r *Record) Type() *RecordType { return r.typ }

// Get returns the value of a declared field. ok is false for undeclared names.
func (r *Record) Get(name string) (v any, ok bool) {
	i, ok := r.typ.index[name]
	if !ok {
		return nil, false
	}
	return r.values[i], true
}

// Values returns the fields as a fresh map.
func (r *Record) Values() map[string]any {
	m := make(map[string]any, len(r.values))
	for i, f := range r.typ.fields {
		m[f.Name] = r.values[i]
	}
	return m
}

// Equal reports whether both records share a declaration and hold equal
// values in every field.
func (r *Record) Equal(other *Record) bool {
	if r == nil || other == nil {
		return r == other
	}
	if r.typ != other.typ {
		return false
	}
	for i := range r.values {
		if !valuesEqual(r.values[i], other.values[i]) {
			return false
		}
	}
	return true
}

// Copy returns a new record with the given fields replaced. Override keys
// are checked before anything is constructed; the result goes through the
// same validation as New.
func (r *Record) Copy(overrides map[string]any) (*Record, error) {
	if err := r.typ.checkKeys(overrides); err != nil {
		return nil, err
	}
	merged := r.Values()
	for k, v := range overrides {
		merged[k] = v
	}
	return r.typ.New(merged)
}

func (r *Record) String() string {
	var b strings.Builder
	b.WriteString(r.typ.name)
	b.WriteByte('{')
	for i, f := range r.typ.fields {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f.Name)
		b.WriteString(": ")
		b.WriteString(inspect(r.values[i]))
	}
	b.WriteByte('}')
	return b.String()
}

// MarshalJSON encodes the record with the default Jsoner.
func (r *Record) MarshalJSON() ([]byte, error) { return ToJSON(r.typ, r) }
