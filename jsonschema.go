package jsoner

import (
	js "github.com/reoring/jsoner/jsonschema"
)

// SchemaProvider is implemented by user-defined descriptors that can describe
// their wire form as JSON Schema.
type SchemaProvider interface {
	JSONSchema() (*js.Schema, error)
}

// JSONSchema projects t onto a JSON Schema (draft 2020-12) describing the
// JSON values that Deserialize accepts for t. Descriptors that are neither
// built in nor SchemaProvider fail with no_codec.
func JSONSchema(t Type) (*js.Schema, error) {
	s, err := projectSchema(t)
	if err != nil {
		return nil, err
	}
	out := *s
	out.Schema = js.Draft202012
	return &out, nil
}

const dateTimePattern = `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}$`

func projectSchema(t Type) (*js.Schema, error) {
	switch x := t.(type) {
	case *PrimitiveType:
		switch x.kind {
		case KindString:
			return &js.Schema{Type: "string"}, nil
		case KindInteger:
			return &js.Schema{Type: "integer"}, nil
		case KindFloat, KindNumber:
			return &js.Schema{Type: "number"}, nil
		case KindBoolean:
			return &js.Schema{Type: "boolean"}, nil
		}
		return &js.Schema{Type: "null"}, nil
	case *OptionalType:
		inner, err := projectSchema(x.inner)
		if err != nil {
			return nil, err
		}
		return &js.Schema{AnyOf: []*js.Schema{{Type: "null"}, inner}}, nil
	case *ArrayType:
		item, err := projectSchema(x.item)
		if err != nil {
			return nil, err
		}
		return &js.Schema{Type: "array", Items: item}, nil
	case *MapType:
		if err := checkMapKey(x); err != nil {
			return nil, err
		}
		value, err := projectSchema(x.value)
		if err != nil {
			return nil, err
		}
		s := &js.Schema{Type: "object", AdditionalProperties: value}
		if p, ok := x.key.(*PatternType); ok {
			s.PropertyNames = &js.Schema{Pattern: anchored(p.expr)}
		}
		return s, nil
	case *UnionType:
		members := make([]*js.Schema, 0, len(x.members))
		for _, m := range x.members {
			ms, err := projectSchema(m)
			if err != nil {
				return nil, err
			}
			members = append(members, ms)
		}
		return &js.Schema{AnyOf: members}, nil
	case *PatternType:
		return &js.Schema{Type: "string", Pattern: anchored(x.expr)}, nil
	case *UnknownType:
		return &js.Schema{}, nil
	case *EnumType:
		values := make([]any, len(x.constants))
		for i, c := range x.constants {
			values[i], _ = plainValue(c)
		}
		return &js.Schema{Title: x.name, Enum: values}, nil
	case *DateType:
		return &js.Schema{Type: "string", Format: "date"}, nil
	case *DateTimeType:
		return &js.Schema{Type: "string", Pattern: dateTimePattern}, nil
	case *RecordType:
		return recordSchema(x)
	case *TaggedUnionType:
		return taggedUnionSchema(x)
	case SchemaProvider:
		return x.JSONSchema()
	}
	return nil, newConversionError(CodeNoCodec, map[string]string{"expected": typeName(t), "direction": "JSON Schema projection"})
}

// recordSchema requires the fields that cannot read an absent member as null.
func recordSchema(r *RecordType) (*js.Schema, error) {
	s := &js.Schema{Type: "object", Title: r.name, Properties: make(map[string]*js.Schema, len(r.fields))}
	for _, f := range r.fields {
		fs, err := projectSchema(f.Type)
		if err != nil {
			return nil, err
		}
		s.Properties[f.Name] = fs
		if !InstanceOf(f.Type, nil) {
			s.Required = append(s.Required, f.Name)
		}
	}
	return s, nil
}

func taggedUnionSchema(u *TaggedUnionType) (*js.Schema, error) {
	s := &js.Schema{Title: u.name, OneOf: make([]*js.Schema, 0, len(u.cases))}
	for _, c := range u.cases {
		cs, err := projectSchema(c.Type)
		if err != nil {
			return nil, err
		}
		if u.discriminator == "" {
			s.OneOf = append(s.OneOf, &js.Schema{
				Type:                 "object",
				Properties:           map[string]*js.Schema{c.Name: cs},
				Required:             []string{c.Name},
				AdditionalProperties: false,
			})
			continue
		}
		tag := &js.Schema{
			Type:       "object",
			Properties: map[string]*js.Schema{u.discriminator: js.ConstOf(c.Name)},
			Required:   []string{u.discriminator},
		}
		s.OneOf = append(s.OneOf, &js.Schema{AllOf: []*js.Schema{cs, tag}})
	}
	return s, nil
}

func anchored(expr string) string { return "^(?:" + expr + ")$" }
