package compare_test

import (
	"encoding/json"
	"testing"

	sonic "github.com/bytedance/sonic"
	gojson "github.com/goccy/go-json"
	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fastjson"

	"github.com/reoring/jsoner"
	drvgojson "github.com/reoring/jsoner/source/gojson"
)

// ---- ParseOnly: bytes -> memory structure (no descriptor checks) ----

func Benchmark_ParseOnly_stdlib_Small(b *testing.B) {
	data := smallUserJSON()
	benchBytes(b, data, func() error {
		var v map[string]any
		return json.Unmarshal(data, &v)
	})
}

func Benchmark_ParseOnly_gojson_Small(b *testing.B) {
	data := smallUserJSON()
	benchBytes(b, data, func() error {
		var v map[string]any
		return gojson.Unmarshal(data, &v)
	})
}

func Benchmark_ParseOnly_jsoniter_Small(b *testing.B) {
	data := smallUserJSON()
	ji := jsoniter.ConfigCompatibleWithStandardLibrary
	benchBytes(b, data, func() error {
		var v map[string]any
		return ji.Unmarshal(data, &v)
	})
}

func Benchmark_ParseOnly_sonic_Small(b *testing.B) {
	data := smallUserJSON()
	benchBytes(b, data, func() error {
		var v map[string]any
		return sonic.Unmarshal(data, &v)
	})
}

func Benchmark_ParseOnly_fastjson_Small(b *testing.B) {
	data := smallUserJSON()
	benchBytes(b, data, func() error {
		var p fastjson.Parser
		_, err := p.ParseBytes(data)
		return err
	})
}

func Benchmark_ParseOnly_jsoner_Small(b *testing.B) {
	data := smallUserJSON()
	benchBytes(b, data, func() error {
		_, err := jsoner.FromJSON(looseMap, data)
		return err
	})
}

// ---- ParseAndCheck: decode into a typed record ----

func Benchmark_ParseAndCheck_stdlib_Small(b *testing.B) {
	data := smallUserJSON()
	benchBytes(b, data, func() error {
		var v struct {
			ID     string `json:"id"`
			Name   string `json:"name"`
			Age    int    `json:"age"`
			Active bool   `json:"active"`
			Meta   struct {
				Score int `json:"score"`
			} `json:"meta"`
		}
		return json.Unmarshal(data, &v)
	})
}

func Benchmark_ParseAndCheck_jsoner_Small(b *testing.B) {
	data := smallUserJSON()
	benchBytes(b, data, func() error {
		_, err := jsoner.FromJSON(userRecord, data)
		return err
	})
}

func Benchmark_ParseAndCheck_jsoner_gojson_Small(b *testing.B) {
	jsoner.SetJSONDriver(drvgojson.Driver())
	defer jsoner.UseDefaultJSONDriver()
	data := smallUserJSON()
	benchBytes(b, data, func() error {
		_, err := jsoner.FromJSON(userRecord, data)
		return err
	})
}

// ---- Huge array ----

func Benchmark_ParseOnly_stdlib_HugeArray(b *testing.B) {
	data := generateHugeJSONArray(cmpHugeN, cmpHugeK)
	benchBytes(b, data, func() error {
		var v []map[string]any
		return json.Unmarshal(data, &v)
	})
}

func Benchmark_ParseOnly_gojson_HugeArray(b *testing.B) {
	data := generateHugeJSONArray(cmpHugeN, cmpHugeK)
	benchBytes(b, data, func() error {
		var v []map[string]any
		return gojson.Unmarshal(data, &v)
	})
}

func Benchmark_ParseOnly_jsoniter_HugeArray(b *testing.B) {
	data := generateHugeJSONArray(cmpHugeN, cmpHugeK)
	ji := jsoniter.ConfigCompatibleWithStandardLibrary
	benchBytes(b, data, func() error {
		var v []map[string]any
		return ji.Unmarshal(data, &v)
	})
}

func Benchmark_ParseOnly_sonic_HugeArray(b *testing.B) {
	data := generateHugeJSONArray(cmpHugeN, cmpHugeK)
	benchBytes(b, data, func() error {
		var v []map[string]any
		return sonic.Unmarshal(data, &v)
	})
}

func Benchmark_ParseOnly_fastjson_HugeArray(b *testing.B) {
	data := generateHugeJSONArray(cmpHugeN, cmpHugeK)
	benchBytes(b, data, func() error {
		var p fastjson.Parser
		_, err := p.ParseBytes(data)
		return err
	})
}

func Benchmark_ParseOnly_jsoner_HugeArray(b *testing.B) {
	data := generateHugeJSONArray(cmpHugeN, cmpHugeK)
	s := jsoner.ArrayOf(looseMap)
	benchBytes(b, data, func() error {
		_, err := jsoner.FromJSON(s, data)
		return err
	})
}

func Benchmark_ParseAndCheck_jsoner_HugeArray(b *testing.B) {
	data := generateHugeJSONArray(cmpHugeN, cmpHugeK)
	s := jsoner.ArrayOf(userRecord)
	benchBytes(b, data, func() error {
		_, err := jsoner.FromJSON(s, data)
		return err
	})
}

// ---- Deep nesting ----

func Benchmark_ParseOnly_stdlib_DeepNested(b *testing.B) {
	data := generateDeepNested(64)
	benchBytes(b, data, func() error {
		var v map[string]any
		return json.Unmarshal(data, &v)
	})
}

func Benchmark_ParseOnly_jsoner_DeepNested(b *testing.B) {
	data := generateDeepNested(64)
	opt := jsoner.ParseOpt{MaxDepth: 128}
	benchBytes(b, data, func() error {
		_, err := jsoner.FromJSON(looseMap, data, opt)
		return err
	})
}

// ---- Serialize ----

func Benchmark_Serialize_jsoner_Small(b *testing.B) {
	v, err := jsoner.FromJSON(userRecord, smallUserJSON())
	if err != nil {
		b.Fatal(err)
	}
	data := smallUserJSON()
	benchBytes(b, data, func() error {
		_, err := jsoner.ToJSON(userRecord, v)
		return err
	})
}

func Benchmark_Serialize_sonic_Small(b *testing.B) {
	var v map[string]any
	if err := sonic.Unmarshal(smallUserJSON(), &v); err != nil {
		b.Fatal(err)
	}
	data := smallUserJSON()
	benchBytes(b, data, func() error {
		_, err := sonic.Marshal(v)
		return err
	})
}
