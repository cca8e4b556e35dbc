// Package jsoner converts between typed in-memory values and JSON values,
// driven by runtime type descriptors.
//
//   - Descriptors (String, ArrayOf(Integer), Union(...), records, tagged unions)
//     describe shapes and validate values through Check.
//   - A Jsoner dispatches each conversion to a Codec: registered extension
//     codecs first, then the built-in ones. Nested values re-enter the
//     dispatcher, so extensions can intercept them too.
//   - Failures carry a stable Code, a JSON Pointer Path and a localized
//     Message (see package i18n).
//
// Typical usage:
//
//	circle := jsoner.MustRecord("Circle", jsoner.Field{Name: "radius", Type: jsoner.Integer})
//	shape := jsoner.MustTaggedUnion("Shape", "_type", jsoner.Case{Name: "circle", Type: circle})
//
//	v := shape.MustOf("circle", circle.MustNew(map[string]any{"radius": 123}))
//	b, err := jsoner.ToJSON(shape, v) // {"radius":123,"_type":"circle"}
//	back, err := jsoner.FromJSON(shape, b)
//
// Token drivers live under source/; packages dsl and codec provide a builder
// surface and ready-made extension codecs.
package jsoner
