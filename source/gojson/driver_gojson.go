// Package gojson provides a token driver backed by github.com/goccy/go-json.
//
//	jsoner.SetJSONDriver(gojson.Driver())
package gojson

import (
	"bytes"
	"io"

	j "github.com/goccy/go-json"

	"github.com/reoring/jsoner"
	eng "github.com/reoring/jsoner/internal/engine"
)

// Driver returns a jsoner.JSONDriver backed by goccy/go-json.
func Driver() jsoner.JSONDriver { return driverGoJSON{} }

type driverGoJSON struct{}

func (driverGoJSON) NewReader(r io.Reader) jsoner.Source { return jsoner.SourceFromEngine(NewReader(r)) }
func (driverGoJSON) NewBytes(b []byte) jsoner.Source     { return jsoner.SourceFromEngine(NewBytes(b)) }
func (driverGoJSON) Name() string                        { return "go-json" }

type frame struct {
	object       bool
	expectingKey bool
}

type source struct {
	dec   *j.Decoder
	stack []frame
}

// NewReader wraps an io.Reader into an engine.TokenSource using go-json.
func NewReader(r io.Reader) eng.TokenSource {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	return &source{dec: dec}
}

// NewBytes wraps a byte slice into an engine.TokenSource using go-json.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

func (s *source) NextToken() (eng.Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		return eng.Token{}, err
	}
	switch v := tok.(type) {
	case j.Delim:
		switch v {
		case '{':
			s.stack = append(s.stack, frame{object: true, expectingKey: true})
			return eng.Token{Kind: eng.KindBeginObject, Offset: -1}, nil
		case '[':
			s.stack = append(s.stack, frame{})
			return eng.Token{Kind: eng.KindBeginArray, Offset: -1}, nil
		case '}':
			s.pop()
			return s.value(eng.Token{Kind: eng.KindEndObject}), nil
		case ']':
			s.pop()
			return s.value(eng.Token{Kind: eng.KindEndArray}), nil
		}
	case string:
		if n := len(s.stack); n > 0 && s.stack[n-1].object && s.stack[n-1].expectingKey {
			s.stack[n-1].expectingKey = false
			return eng.Token{Kind: eng.KindKey, String: v, Offset: -1}, nil
		}
		return s.value(eng.Token{Kind: eng.KindString, String: v}), nil
	case bool:
		return s.value(eng.Token{Kind: eng.KindBool, Bool: v}), nil
	case j.Number:
		return s.value(eng.Token{Kind: eng.KindNumber, Number: string(v)}), nil
	}
	return s.value(eng.Token{Kind: eng.KindNull}), nil
}

func (s *source) pop() {
	if n := len(s.stack); n > 0 {
		s.stack = s.stack[:n-1]
	}
}

func (s *source) value(t eng.Token) eng.Token {
	if n := len(s.stack); n > 0 && s.stack[n-1].object {
		s.stack[n-1].expectingKey = true
	}
	t.Offset = -1
	return t
}

// Location is unknown: the go-json decoder does not expose input offsets.
func (s *source) Location() int64 { return -1 }
