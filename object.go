package jsoner

import (
	"bytes"

	"github.com/goccy/go-json"
)

// Member is a JSON object member.
type Member struct {
	Name  string
	Value any
}

// Object is a JSON object whose members keep their order. Records and tagged
// unions serialize to Object so that printed JSON follows declaration order.
type Object []Member

// Get returns the value of the first member called name.
func (o Object) Get(name string) (any, bool) {
	for _, m := range o {
		if m.Name == name {
			return m.Value, true
		}
	}
	return nil, false
}

// With returns a copy of o where name is set to v. An existing member keeps
// its position; a new one is appended.
func (o Object) With(name string, v any) Object {
	out := make(Object, len(o), len(o)+1)
	copy(out, o)
	for i := range out {
		if out[i].Name == name {
			out[i].Value = v
			return out
		}
	}
	return append(out, Member{Name: name, Value: v})
}

// Map converts o into an unordered map; nested objects are converted too.
func (o Object) Map() map[string]any {
	m := make(map[string]any, len(o))
	for _, mem := range o {
		m[mem.Name] = unorder(mem.Value)
	}
	return m
}

func unorder(v any) any {
	switch x := v.(type) {
	case Object:
		return x.Map()
	case []any:
		out := make([]any, len(x))
		for i := range x {
			out[i] = unorder(x[i])
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, vv := range x {
			out[k] = unorder(vv)
		}
		return out
	}
	return v
}

// MarshalJSON encodes the members in order.
func (o Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(m.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(m.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
