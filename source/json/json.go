// Package json is the default token driver, built on encoding/json.Decoder.
package json

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"

	eng "github.com/reoring/jsoner/internal/engine"
)

type frame struct {
	object       bool
	expectingKey bool
}

type jsonSource struct {
	dec        *json.Decoder
	stack      []frame
	lastOffset int64
}

// NewReader wraps an io.Reader into an engine.TokenSource for JSON.
func NewReader(r io.Reader) eng.TokenSource {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &jsonSource{dec: dec, lastOffset: -1}
}

// NewBytes wraps a byte slice into an engine.TokenSource for JSON.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

func (s *jsonSource) NextToken() (eng.Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		return eng.Token{}, err
	}
	s.lastOffset = s.dec.InputOffset()

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			s.stack = append(s.stack, frame{object: true, expectingKey: true})
			return s.token(eng.Token{Kind: eng.KindBeginObject}), nil
		case '[':
			s.stack = append(s.stack, frame{})
			return s.token(eng.Token{Kind: eng.KindBeginArray}), nil
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
			return s.token(eng.Token{Kind: eng.KindKey, String: v}), nil
		}
		return s.value(eng.Token{Kind: eng.KindString, String: v}), nil
	case bool:
		return s.value(eng.Token{Kind: eng.KindBool, Bool: v}), nil
	case json.Number:
		return s.value(eng.Token{Kind: eng.KindNumber, Number: string(v)}), nil
	case float64:
		return s.value(eng.Token{Kind: eng.KindNumber, Number: strconv.FormatFloat(v, 'g', -1, 64)}), nil
	}
	return s.value(eng.Token{Kind: eng.KindNull}), nil
}

func (s *jsonSource) pop() {
	if n := len(s.stack); n > 0 {
		s.stack = s.stack[:n-1]
	}
}

// value marks the enclosing object as waiting for its next key.
func (s *jsonSource) value(t eng.Token) eng.Token {
	if n := len(s.stack); n > 0 && s.stack[n-1].object {
		s.stack[n-1].expectingKey = true
	}
	return s.token(t)
}

func (s *jsonSource) token(t eng.Token) eng.Token {
	t.Offset = s.lastOffset
	return t
}

func (s *jsonSource) Location() int64 { return s.lastOffset }
