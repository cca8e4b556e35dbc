package dsl

import (
	"fmt"

	"github.com/reoring/jsoner"
)

type taggedUnionBuilder struct {
	name          string
	discriminator string
	cases         []jsoner.Case
	err           error
}

// TaggedUnion starts a tagged union declaration.
func TaggedUnion(name string) *taggedUnionBuilder { return &taggedUnionBuilder{name: name} }

// Case appends a named case.
func (b *taggedUnionBuilder) Case(name string, t jsoner.Type) *taggedUnionBuilder {
	b.cases = append(b.cases, jsoner.Case{Name: name, Type: t})
	return b
}

// Discriminator switches the wire form from a single-key wrapper to an
// object carrying the case name in member d.
func (b *taggedUnionBuilder) Discriminator(d string) *taggedUnionBuilder {
	if d == "" && b.err == nil {
		b.err = fmt.Errorf("dsl: tagged union %s: empty discriminator", b.name)
	}
	b.discriminator = d
	return b
}

// Build declares the tagged union.
func (b *taggedUnionBuilder) Build() (*jsoner.TaggedUnionType, error) {
	if b.err != nil {
		return nil, b.err
	}
	return jsoner.NewTaggedUnionType(b.name, b.discriminator, b.cases...)
}

// MustBuild is like Build but panics on an invalid declaration.
func (b *taggedUnionBuilder) MustBuild() *jsoner.TaggedUnionType {
	t, err := b.Build()
	if err != nil {
		panic(err)
	}
	return t
}
