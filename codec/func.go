// Package codec provides ready-made extension codecs for jsoner.
//
// Register them on a Jsoner (or the default one) before converting:
//
//	jsoner.Register(codec.RFC3339())
//	jsoner.Register(codec.Base64())
package codec

import (
	"github.com/reoring/jsoner"
)

// Func builds a codec from closures. Nil serialize or deserialize functions
// pass values through unchanged.
func Func(
	applicable func(t jsoner.Type) bool,
	serialize func(d jsoner.Dispatcher, t jsoner.Type, v any) (any, error),
	deserialize func(d jsoner.Dispatcher, t jsoner.Type, wire any) (any, error),
) jsoner.Codec {
	return &funcCodec{applicable: applicable, serialize: serialize, deserialize: deserialize}
}

// For builds a codec serving exactly the descriptor t.
func For(
	t jsoner.Type,
	serialize func(v any) (any, error),
	deserialize func(wire any) (any, error),
) jsoner.Codec {
	c := &funcCodec{applicable: func(x jsoner.Type) bool { return x == t }}
	if serialize != nil {
		c.serialize = func(_ jsoner.Dispatcher, _ jsoner.Type, v any) (any, error) { return serialize(v) }
	}
	if deserialize != nil {
		c.deserialize = func(_ jsoner.Dispatcher, _ jsoner.Type, wire any) (any, error) { return deserialize(wire) }
	}
	return c
}

type funcCodec struct {
	applicable  func(jsoner.Type) bool
	serialize   func(jsoner.Dispatcher, jsoner.Type, any) (any, error)
	deserialize func(jsoner.Dispatcher, jsoner.Type, any) (any, error)
}

func (c *funcCodec) Applicable(t jsoner.Type) bool {
	return c.applicable != nil && c.applicable(t)
}

func (c *funcCodec) Serialize(d jsoner.Dispatcher, t jsoner.Type, v any) (any, error) {
	if c.serialize == nil {
		return v, nil
	}
	return c.serialize(d, t, v)
}

func (c *funcCodec) Deserialize(d jsoner.Dispatcher, t jsoner.Type, wire any) (any, error) {
	if c.deserialize == nil {
		return wire, nil
	}
	return c.deserialize(d, t, wire)
}
