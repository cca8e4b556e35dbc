package dsl

import (
	"github.com/reoring/jsoner"
)

// Scalar lists the underlying kinds an enum constant may have.
type Scalar interface {
	~string | ~bool |
		~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// EnumOf declares an enum over typed constants. Decoding yields values of T.
func EnumOf[T Scalar](name string, values ...T) (*jsoner.EnumType, error) {
	constants := make([]any, len(values))
	for i, v := range values {
		constants[i] = v
	}
	return jsoner.NewEnum(name, constants...)
}

// MustEnumOf is like EnumOf but panics on an invalid declaration.
func MustEnumOf[T Scalar](name string, values ...T) *jsoner.EnumType {
	e, err := EnumOf(name, values...)
	if err != nil {
		panic(err)
	}
	return e
}
