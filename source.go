package jsoner

import (
	"io"
	"sync"

	eng "github.com/reoring/jsoner/internal/engine"
	jsonsrc "github.com/reoring/jsoner/source/json"
)

// TokenKind enumerates JSON token kinds.
type TokenKind int

const (
	TokenBeginObject TokenKind = iota
	TokenEndObject
	TokenBeginArray
	TokenEndArray
	TokenKey
	TokenString
	TokenNumber
	TokenBool
	TokenNull
)

// Token describes a token in the input stream. Offset records the byte position
// when known (-1 otherwise).
type Token struct {
	Kind   TokenKind
	String string // key and string tokens
	Number string // literal number text
	Bool   bool
	Offset int64
}

// Source is a stream of JSON tokens. NextToken returns io.EOF once the input
// is exhausted.
type Source interface {
	NextToken() (Token, error)
	Location() int64 // byte offset; -1 if unknown
}

// JSONDriver turns raw JSON into a Source. The default implementation is based
// on encoding/json and may be swapped with SetJSONDriver.
type JSONDriver interface {
	NewReader(r io.Reader) Source
	NewBytes(b []byte) Source
	Name() string
}

var (
	jsonDriverMu      sync.RWMutex
	currentJSONDriver JSONDriver = defaultJSONDriver{}
)

// SetJSONDriver replaces the global JSON driver; nil values are ignored.
func SetJSONDriver(d JSONDriver) {
	if d == nil {
		return
	}
	jsonDriverMu.Lock()
	currentJSONDriver = d
	jsonDriverMu.Unlock()
}

// UseDefaultJSONDriver restores the encoding/json-backed driver.
func UseDefaultJSONDriver() { SetJSONDriver(defaultJSONDriver{}) }

// CurrentJSONDriver returns the driver used by JSONBytes and JSONReader.
func CurrentJSONDriver() JSONDriver {
	jsonDriverMu.RLock()
	d := currentJSONDriver
	jsonDriverMu.RUnlock()
	return d
}

type defaultJSONDriver struct{}

func (defaultJSONDriver) NewReader(r io.Reader) Source { return SourceFromEngine(jsonsrc.NewReader(r)) }
func (defaultJSONDriver) NewBytes(b []byte) Source     { return SourceFromEngine(jsonsrc.NewBytes(b)) }
func (defaultJSONDriver) Name() string                 { return "encoding/json" }

// JSONReader wraps an io.Reader as a JSON Source using the current driver.
func JSONReader(r io.Reader) Source { return CurrentJSONDriver().NewReader(r) }

// JSONBytes wraps a byte slice as a JSON Source using the current driver.
func JSONBytes(b []byte) Source { return CurrentJSONDriver().NewBytes(b) }

// SourceFromEngine exposes an engine token stream as a Source. It is meant
// for the drivers under source/.
func SourceFromEngine(inner eng.TokenSource) Source { return &engineSource{inner: inner} }

type engineSource struct{ inner eng.TokenSource }

func (s *engineSource) NextToken() (Token, error) {
	t, err := s.inner.NextToken()
	if err != nil {
		return Token{}, err
	}
	return Token{Kind: TokenKind(t.Kind), String: t.String, Number: t.Number, Bool: t.Bool, Offset: t.Offset}, nil
}

func (s *engineSource) Location() int64 { return s.inner.Location() }

// engineView returns the engine view of s, unwrapping engine-backed sources.
func engineView(s Source) eng.TokenSource {
	if es, ok := s.(*engineSource); ok {
		return es.inner
	}
	return &sourceTokens{inner: s}
}

type sourceTokens struct{ inner Source }

func (a *sourceTokens) NextToken() (eng.Token, error) {
	t, err := a.inner.NextToken()
	if err != nil {
		return eng.Token{}, err
	}
	return eng.Token{Kind: eng.Kind(t.Kind), String: t.String, Number: t.Number, Bool: t.Bool, Offset: t.Offset}, nil
}

func (a *sourceTokens) Location() int64 { return a.inner.Location() }
