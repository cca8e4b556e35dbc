// Package jsonv2 provides a token driver backed by the JSON v2 experiment
// (github.com/go-json-experiment/json).
//
// The document is decoded in one pass and replayed as tokens, so input
// offsets are unknown. Object members are replayed in key order. Duplicate
// member names are rejected by the decoder itself. Numbers pass through
// float64, so 3.0 replays as 3.
package jsonv2

import (
	"io"
	"math"
	"sort"
	"strconv"

	v2json "github.com/go-json-experiment/json"

	"github.com/reoring/jsoner"
)

// Driver returns a jsoner.JSONDriver backed by the JSON v2 experiment.
func Driver() jsoner.JSONDriver { return driverV2{} }

type driverV2 struct{}

func (driverV2) NewReader(r io.Reader) jsoner.Source {
	data, err := io.ReadAll(r)
	if err != nil {
		return &v2Source{err: err}
	}
	return newSource(data)
}

func (driverV2) NewBytes(b []byte) jsoner.Source { return newSource(b) }
func (driverV2) Name() string                     { return "json/v2" }

// v2Source replays the tokens of a decoded document.
type v2Source struct {
	tokens []jsoner.Token
	idx    int
	err    error
}

func newSource(b []byte) *v2Source {
	var v any
	if err := v2json.Unmarshal(b, &v); err != nil {
		return &v2Source{err: err}
	}
	return &v2Source{tokens: appendTokens(make([]jsoner.Token, 0, 64), v)}
}

func (s *v2Source) NextToken() (jsoner.Token, error) {
	if s.err != nil {
		return jsoner.Token{}, s.err
	}
	if s.idx >= len(s.tokens) {
		return jsoner.Token{}, io.EOF
	}
	t := s.tokens[s.idx]
	s.idx++
	return t, nil
}

func (s *v2Source) Location() int64 { return -1 }

func appendTokens(out []jsoner.Token, v any) []jsoner.Token {
	switch x := v.(type) {
	case map[string]any:
		out = append(out, jsoner.Token{Kind: jsoner.TokenBeginObject, Offset: -1})
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			out = append(out, jsoner.Token{Kind: jsoner.TokenKey, String: k, Offset: -1})
			out = appendTokens(out, x[k])
		}
		return append(out, jsoner.Token{Kind: jsoner.TokenEndObject, Offset: -1})
	case []any:
		out = append(out, jsoner.Token{Kind: jsoner.TokenBeginArray, Offset: -1})
		for _, e := range x {
			out = appendTokens(out, e)
		}
		return append(out, jsoner.Token{Kind: jsoner.TokenEndArray, Offset: -1})
	case string:
		return append(out, jsoner.Token{Kind: jsoner.TokenString, String: x, Offset: -1})
	case bool:
		return append(out, jsoner.Token{Kind: jsoner.TokenBool, Bool: x, Offset: -1})
	case float64:
		return append(out, jsoner.Token{Kind: jsoner.TokenNumber, Number: numberText(x), Offset: -1})
	}
	return append(out, jsoner.Token{Kind: jsoner.TokenNull, Offset: -1})
}

// numberText renders integral values without exponent so they still read as
// integers.
func numberText(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
