package jsoner

import (
	"sync"
)

// Codec converts between in-memory values and JSON values for the
// descriptors it is applicable to. Nested values must be converted through
// the Dispatcher, never by calling the codec recursively, so that registered
// codecs can intercept nested conversions as well.
type Codec interface {
	Applicable(t Type) bool
	Serialize(d Dispatcher, t Type, v any) (any, error)
	Deserialize(d Dispatcher, t Type, wire any) (any, error)
}

// Dispatcher is the re-entry point handed to codecs.
type Dispatcher interface {
	Serialize(t Type, v any) (any, error)
	Deserialize(t Type, wire any) (any, error)
}

// Jsoner dispatches conversions to codecs. Registered extension codecs are
// consulted first, most recent registration first; the closed set of
// built-in descriptors is dispatched directly afterwards.
//
// Registration is meant for program initialization. Conversions are pure
// and safe for concurrent use.
type Jsoner struct {
	mu         sync.RWMutex
	extensions []Codec
}

// New returns a Jsoner with only the built-in codecs.
func New() *Jsoner { return &Jsoner{} }

var defaultJsoner = New()

// Default returns the process-wide Jsoner used by the package-level functions.
func Default() *Jsoner { return defaultJsoner }

// Register puts c in front of every previously registered codec and of the
// built-ins. Registering again is harmless: the latest registration wins.
func (j *Jsoner) Register(c Codec) {
	if c == nil {
		return
	}
	j.mu.Lock()
	j.extensions = append([]Codec{c}, j.extensions...)
	j.mu.Unlock()
}

// Find returns the codec serving t, or nil when none applies.
func (j *Jsoner) Find(t Type) Codec {
	if t == nil {
		return nil
	}
	j.mu.RLock()
	ext := j.extensions
	j.mu.RUnlock()
	for _, c := range ext {
		if c.Applicable(t) {
			return c
		}
	}
	return builtin(t)
}

// Serialize converts an in-memory value into a JSON value. Every failure is
// reported as a *ConversionError.
func (j *Jsoner) Serialize(t Type, v any) (any, error) {
	c := j.Find(t)
	if c == nil {
		return nil, newConversionError(CodeNoCodec, map[string]string{"expected": typeName(t), "direction": "serialization"})
	}
	out, err := c.Serialize(j, t, v)
	if err != nil {
		return nil, toConversionError(err)
	}
	return out, nil
}

// Deserialize converts a JSON value into an in-memory value conforming to t.
// Every failure is reported as a *ConversionError.
func (j *Jsoner) Deserialize(t Type, wire any) (any, error) {
	c := j.Find(t)
	if c == nil {
		return nil, newConversionError(CodeNoCodec, map[string]string{"expected": typeName(t), "direction": "deserialization"})
	}
	out, err := c.Deserialize(j, t, wire)
	if err != nil {
		return nil, toConversionError(err)
	}
	return out, nil
}

// Register adds c to the default Jsoner.
func Register(c Codec) { defaultJsoner.Register(c) }

// Find looks up the codec for t in the default Jsoner.
func Find(t Type) Codec { return defaultJsoner.Find(t) }

// Serialize converts v with the default Jsoner.
func Serialize(t Type, v any) (any, error) { return defaultJsoner.Serialize(t, v) }

// Deserialize converts wire with the default Jsoner.
func Deserialize(t Type, wire any) (any, error) { return defaultJsoner.Deserialize(t, wire) }

// builtin dispatches the closed set of built-in descriptors.
func builtin(t Type) Codec {
	switch x := t.(type) {
	case *PrimitiveType:
		if x.kind == KindFloat {
			return floatCodec{}
		}
		return primitiveCodec{}
	case *OptionalType:
		return optionalCodec{}
	case *ArrayType:
		return arrayCodec{}
	case *MapType:
		return mapCodec{}
	case *UnionType:
		return unionCodec{}
	case *PatternType:
		return patternCodec{}
	case *UnknownType:
		return unknownCodec{}
	case *EnumType:
		return enumCodec{}
	case *RecordType:
		return recordCodec{}
	case *TaggedUnionType:
		return taggedUnionCodec{}
	case *DateType:
		return dateCodec{}
	case *DateTimeType:
		return dateTimeCodec{}
	}
	return nil
}
