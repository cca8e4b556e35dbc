package compare_test

import (
	"bytes"
	"strconv"
	"testing"

	"github.com/reoring/jsoner"
	"github.com/reoring/jsoner/dsl"
)

// shared fixtures

var metaRecord = dsl.Record("Meta").Field("score", jsoner.Integer).MustBuild()

var userRecord = dsl.Record("User").
	Field("id", jsoner.String).
	Field("name", jsoner.String).
	Field("age", jsoner.Integer).
	Field("active", jsoner.Bool).
	Field("meta", metaRecord).
	MustBuild()

var looseMap = jsoner.MapOf(jsoner.String, jsoner.NilableUnknown)

func smallUserJSON() []byte {
	return []byte(`{"id":"u_1","name":"alice","age":30,"active":true,"meta":{"score":7}}`)
}

func generateHugeJSONArray(numObjects int, extraFields int) []byte {
	var buf bytes.Buffer
	buf.Grow(numObjects * (64 + extraFields*16))
	buf.WriteByte('[')
	for i := 0; i < numObjects; i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(`{"id":"obj_`)
		buf.WriteString(strconv.Itoa(i))
		buf.WriteString(`","name":"n`)
		buf.WriteString(strconv.Itoa(i))
		buf.WriteString(`","age":`)
		buf.WriteString(strconv.Itoa(i))
		if i%2 == 0 {
			buf.WriteString(`,"active":true`)
		} else {
			buf.WriteString(`,"active":false`)
		}
		buf.WriteString(`,"meta":{"score":`)
		buf.WriteString(strconv.Itoa(i))
		buf.WriteByte('}')
		for k := 0; k < extraFields; k++ {
			buf.WriteString(`,"k`)
			buf.WriteString(strconv.Itoa(k))
			buf.WriteString(`":"v`)
			buf.WriteString(strconv.Itoa(i))
			buf.WriteByte('_')
			buf.WriteString(strconv.Itoa(k))
			buf.WriteByte('"')
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')
	return buf.Bytes()
}

// generateDeepNested builds {"a":{"a":{...{"z":1}...}}}.
func generateDeepNested(depth int) []byte {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i := 0; i < depth; i++ {
		buf.WriteString(`"a":{`)
	}
	buf.WriteString(`"z":1`)
	for i := 0; i < depth; i++ {
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return buf.Bytes()
}

const (
	cmpHugeN = 10000
	cmpHugeK = 8
)

func benchBytes(b *testing.B, data []byte, fn func() error) {
	b.Helper()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := fn(); err != nil {
			b.Fatal(err)
		}
	}
}
