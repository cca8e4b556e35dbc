package jsoner

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/reoring/jsoner/i18n"
)

// Case declares one named alternative of a tagged union.
type Case struct {
	Name string
	Type Type
}

// TaggedUnionType is a sum type: every value holds exactly one declared case.
//
// Without a discriminator the wire form is a single-key wrapper object
// {"case": value}. With a discriminator the case value must encode as an
// object and the discriminator member is merged into it.
type TaggedUnionType struct {
	name          string
	discriminator string
	cases         []Case
	index         map[string]int
}

// NewTaggedUnionType declares a tagged union. discriminator may be empty.
func NewTaggedUnionType(name, discriminator string, cases ...Case) (*TaggedUnionType, error) {
	if name == "" {
		return nil, errors.New("jsoner: tagged union name is required")
	}
	if len(cases) == 0 {
		return nil, fmt.Errorf("jsoner: tagged union %s declares no cases", name)
	}
	t := &TaggedUnionType{name: name, discriminator: discriminator, index: make(map[string]int, len(cases))}
	for _, c := range cases {
		if c.Name == "" {
			return nil, fmt.Errorf("jsoner: tagged union %s: empty case name", name)
		}
		if c.Type == nil {
			return nil, fmt.Errorf("jsoner: tagged union %s: case %s has no type", name, c.Name)
		}
		if _, dup := t.index[c.Name]; dup {
			return nil, fmt.Errorf("jsoner: tagged union %s: duplicate case %s", name, c.Name)
		}
		t.index[c.Name] = len(t.cases)
		t.cases = append(t.cases, c)
	}
	return t, nil
}

// MustTaggedUnion is like NewTaggedUnionType but panics on an invalid
// declaration.
func MustTaggedUnion(name, discriminator string, cases ...Case) *TaggedUnionType {
	t, err := NewTaggedUnionType(name, discriminator, cases...)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *TaggedUnionType) Name() string          { return t.name }
func (t *TaggedUnionType) String() string        { return t.name }
func (t *TaggedUnionType) Discriminator() string { return t.discriminator }

// Cases returns the declared cases in declaration order.
func (t *TaggedUnionType) Cases() []Case { return append([]Case(nil), t.cases...) }

// Case returns the descriptor of a declared case.
func (t *TaggedUnionType) Case(name string) (Type, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.cases[i].Type, true
}

// Check accepts only values constructed by this declaration.
func (t *TaggedUnionType) Check(v any) error {
	if v == nil {
		return mismatch(CodeNullNotAllowed, t, v)
	}
	u, ok := v.(*UnionValue)
	if !ok || u == nil || u.typ != t {
		return mismatch(CodeInvalidType, t, v)
	}
	return nil
}

// Equal is structural: same discriminator and the same case names mapped to
// equal descriptors, regardless of declaration order.
func (t *TaggedUnionType) Equal(other Type) bool {
	o, ok := other.(*TaggedUnionType)
	if !ok {
		return false
	}
	if o == t {
		return true
	}
	if o.discriminator != t.discriminator || len(o.cases) != len(t.cases) {
		return false
	}
	for _, c := range t.cases {
		ot, ok := o.Case(c.Name)
		if !ok || !c.Type.Equal(ot) {
			return false
		}
	}
	return true
}

// New builds a value from exactly one case assignment. Zero or several
// assignments fail with ErrCaseCount, undeclared names with ErrUnknownCase.
func (t *TaggedUnionType) New(cases map[string]any) (*UnionValue, error) {
	if len(cases) != 1 {
		return nil, &ArgumentError{
			Code:    CodeCaseCount,
			Message: i18n.T(CodeCaseCount, map[string]string{"expected": t.name, "count": strconv.Itoa(len(cases))}),
		}
	}
	for name, v := range cases {
		return t.Of(name, v)
	}
	panic("unreachable")
}

// Of builds a value of the named case.
func (t *TaggedUnionType) Of(name string, v any) (*UnionValue, error) {
	ct, ok := t.Case(name)
	if !ok {
		return nil, &ArgumentError{
			Code:    CodeCaseUnknown,
			Message: i18n.T(CodeCaseUnknown, map[string]string{"expected": t.name, "key": name}),
		}
	}
	cv, err := CheckVar(name, ct, v)
	if err != nil {
		return nil, err
	}
	return &UnionValue{typ: t, tag: name, value: cv}, nil
}

// MustOf is like Of but panics on invalid input.
func (t *TaggedUnionType) MustOf(name string, v any) *UnionValue {
	u, err := t.Of(name, v)
	if err != nil {
		panic(err)
	}
	return u
}

// UnionValue is an immutable value of a TaggedUnionType.
type UnionValue struct {
	typ   *TaggedUnionType
	tag   string
	value any
}

func (u *UnionValue) Type() *TaggedUnionType { return u.typ }

// Case returns the name of the active case.
func (u *UnionValue) Case() string { return u.tag }

// Value returns the value of the active case.
func (u *UnionValue) Value() any { return u.value }

// Get returns the value of the named case; every inactive case reads as
// absent.
func (u *UnionValue) Get(name string) (any, bool) {
	if name != u.tag {
		return nil, false
	}
	return u.value, true
}

// Equal reports whether both values share a declaration, an active case and
// an equal case value.
func (u *UnionValue) Equal(other *UnionValue) bool {
	if u == nil || other == nil {
		return u == other
	}
	return u.typ == other.typ && u.tag == other.tag && valuesEqual(u.value, other.value)
}

func (u *UnionValue) String() string {
	return u.typ.name + "." + u.tag + "(" + inspect(u.value) + ")"
}

// MarshalJSON encodes the value with the default Jsoner.
func (u *UnionValue) MarshalJSON() ([]byte, error) { return ToJSON(u.typ, u) }
