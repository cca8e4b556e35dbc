package jsoner

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// FromYAML parses a YAML document into a JSON value and deserializes it as t.
// Mappings keep their member order; timestamps stay as their literal text so
// Date and DateTime parse them like JSON strings. An empty document is null.
func (j *Jsoner) FromYAML(t Type, data []byte) (any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, parseError(err)
	}
	wire, err := yamlValue(&doc)
	if err != nil {
		return nil, parseError(err)
	}
	return j.Deserialize(t, wire)
}

// ToYAML serializes v as t and prints the result as YAML.
func (j *Jsoner) ToYAML(t Type, v any) ([]byte, error) {
	wire, err := j.Serialize(t, v)
	if err != nil {
		return nil, err
	}
	b, err := yaml.Marshal(wire)
	if err != nil {
		return nil, &ConversionError{Code: CodeConversionError, Message: err.Error(), Cause: err}
	}
	return b, nil
}

// FromYAML deserializes data with the default Jsoner.
func FromYAML(t Type, data []byte) (any, error) { return defaultJsoner.FromYAML(t, data) }

// ToYAML serializes v with the default Jsoner.
func ToYAML(t Type, v any) ([]byte, error) { return defaultJsoner.ToYAML(t, v) }

// MarshalYAML emits the members as a mapping in order.
func (o Object) MarshalYAML() (any, error) {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, m := range o {
		var v yaml.Node
		if err := v.Encode(m.Value); err != nil {
			return nil, err
		}
		n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: m.Name}, &v)
	}
	return n, nil
}

func yamlValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case 0:
		// empty input
		return nil, nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return yamlValue(n.Content[0])
	case yaml.AliasNode:
		return yamlValue(n.Alias)
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := yamlValue(c)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.MappingNode:
		out := make(Object, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			if k.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping keys must be scalars", k.Line)
			}
			v, err := yamlValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			out = out.With(k.Value, v)
		}
		return out, nil
	case yaml.ScalarNode:
		return yamlScalar(n)
	}
	return nil, fmt.Errorf("line %d: unsupported YAML node", n.Line)
}

func yamlScalar(n *yaml.Node) (any, error) {
	switch n.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		err := n.Decode(&b)
		return b, err
	case "!!int":
		var i int64
		err := n.Decode(&i)
		return i, err
	case "!!float":
		var f float64
		err := n.Decode(&f)
		return f, err
	}
	return n.Value, nil
}
