// Package dsl provides a fluent declaration surface for jsoner descriptors.
//
// Entry points
//   - Record(name): chain Field/Optional, then Build or MustBuild.
//   - TaggedUnion(name): chain Case and optionally Discriminator, then Build or MustBuild.
//   - EnumOf(name, values...): typed enum declaration; decoding returns values of T.
//
// Example
//
//	circle := dsl.Record("Circle").Field("radius", jsoner.Integer).MustBuild()
//	square := dsl.Record("Square").Field("side", jsoner.Integer).MustBuild()
//	shape := dsl.TaggedUnion("Shape").
//	    Case("circle", circle).
//	    Case("square", square).
//	    Discriminator("_type").
//	    MustBuild()
//
// Builders collect the first declaration error and report it from Build.
package dsl
