package dsl

import (
	"github.com/reoring/jsoner"
)

type recordBuilder struct {
	name   string
	fields []jsoner.Field
}

// Record starts a record declaration.
func Record(name string) *recordBuilder { return &recordBuilder{name: name} }

// Field appends a field. Field order is the encoded member order.
func (b *recordBuilder) Field(name string, t jsoner.Type) *recordBuilder {
	b.fields = append(b.fields, jsoner.Field{Name: name, Type: t})
	return b
}

// Optional appends a field that may be null or absent.
func (b *recordBuilder) Optional(name string, t jsoner.Type) *recordBuilder {
	return b.Field(name, jsoner.Optional(t))
}

// Build declares the record.
func (b *recordBuilder) Build() (*jsoner.RecordType, error) {
	return jsoner.NewRecordType(b.name, b.fields...)
}

// MustBuild is like Build but panics on an invalid declaration.
func (b *recordBuilder) MustBuild() *jsoner.RecordType {
	t, err := b.Build()
	if err != nil {
		panic(err)
	}
	return t
}
