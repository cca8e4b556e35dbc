package jsoner_test

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/reoring/jsoner"
)

// moneyType is a user-defined descriptor for amounts kept in cents.
type moneyType struct{}

func (moneyType) String() string { return "Money" }
func (m moneyType) Check(v any) error {
	if _, ok := v.(int64); !ok {
		return &jsoner.TypeMismatch{Code: jsoner.CodeInvalidType, Expected: m.String(), Kind: "other", Value: v}
	}
	return nil
}
func (moneyType) Equal(o jsoner.Type) bool { _, ok := o.(moneyType); return ok }

var money = moneyType{}

// moneyCodec writes cents as a "12.34" string.
type moneyCodec struct{}

func (moneyCodec) Applicable(t jsoner.Type) bool { return t == jsoner.Type(money) }

func (moneyCodec) Serialize(_ jsoner.Dispatcher, t jsoner.Type, v any) (any, error) {
	if err := t.Check(v); err != nil {
		return nil, err
	}
	return formatCents(v.(int64)), nil
}

func (moneyCodec) Deserialize(d jsoner.Dispatcher, _ jsoner.Type, wire any) (any, error) {
	s, err := d.Deserialize(jsoner.MustPattern(`\d+\.\d{2}`), wire)
	if err != nil {
		return nil, err
	}
	return strconv.ParseInt(strings.Replace(s.(string), ".", "", 1), 10, 64)
}

func formatCents(c int64) string { return fmt.Sprintf("%d.%02d", c/100, c%100) }

// upperString intercepts every String conversion.
type upperString struct{}

func (upperString) Applicable(t jsoner.Type) bool { return t == jsoner.Type(jsoner.String) }
func (upperString) Serialize(_ jsoner.Dispatcher, _ jsoner.Type, v any) (any, error) {
	return strings.ToUpper(v.(string)), nil
}
func (upperString) Deserialize(_ jsoner.Dispatcher, _ jsoner.Type, wire any) (any, error) {
	return strings.ToLower(wire.(string)), nil
}

func TestJsoner_NoCodec(t *testing.T) {
	j := jsoner.New()
	_, err := j.Serialize(money, int64(1))
	ce := mustConversionError(t, err, jsoner.CodeNoCodec)
	if !strings.Contains(ce.Message, "Money") || !strings.Contains(ce.Message, "serialization") {
		t.Fatalf("message should name the type and direction: %s", ce.Message)
	}
	_, err = j.Deserialize(money, "1.00")
	mustConversionError(t, err, jsoner.CodeNoCodec)
	if j.Find(money) != nil {
		t.Fatalf("no codec should be found")
	}
	_, err = jsoner.JSONSchema(money)
	mustConversionError(t, err, jsoner.CodeNoCodec)
}

func TestJsoner_RegisteredCodec(t *testing.T) {
	j := jsoner.New()
	j.Register(moneyCodec{})
	item := jsoner.MustRecord("Item",
		jsoner.Field{Name: "name", Type: jsoner.String},
		jsoner.Field{Name: "price", Type: money},
	)
	r := item.MustNew(map[string]any{"name": "tea", "price": int64(1205)})
	b, err := j.ToJSON(item, r)
	if err != nil || string(b) != `{"name":"tea","price":"12.05"}` {
		t.Fatalf("got %s %v", b, err)
	}
	back, err := j.FromJSON(item, b)
	if err != nil || !back.(*jsoner.Record).Equal(r) {
		t.Fatalf("round trip failed: %v %v", back, err)
	}
	_, err = j.FromJSON(item, []byte(`{"name":"tea","price":"12"}`))
	ce := mustConversionError(t, err, jsoner.CodePattern)
	if ce.Path != "/price" {
		t.Fatalf("want /price, got %q", ce.Path)
	}
	// the default Jsoner is untouched
	if _, err := jsoner.ToJSON(item, r); err == nil {
		t.Fatalf("default Jsoner should not know Money")
	}
}

func TestJsoner_RegisteredCodecOverridesBuiltinsWhenNested(t *testing.T) {
	j := jsoner.New()
	j.Register(upperString{})
	list := jsoner.ArrayOf(jsoner.MapOf(jsoner.String, jsoner.String))
	b, err := j.ToJSON(list, []any{map[string]any{"k": "abc"}})
	if err != nil || string(b) != `[{"k":"ABC"}]` {
		t.Fatalf("nested conversions must go through the registered codec, got %s %v", b, err)
	}
	v, err := j.FromJSON(list, []byte(`[{"k":"XyZ"}]`))
	if err != nil || v.([]any)[0].(map[string]any)["k"] != "xyz" {
		t.Fatalf("got %v %v", v, err)
	}
}

func TestJsoner_LastRegistrationWins(t *testing.T) {
	j := jsoner.New()
	j.Register(upperString{})
	j.Register(moneyCodec{})
	j.Register(upperString{})
	if _, ok := j.Find(jsoner.String).(upperString); !ok {
		t.Fatalf("want upperString for String")
	}
	if _, ok := j.Find(money).(moneyCodec); !ok {
		t.Fatalf("want moneyCodec for Money")
	}
	j.Register(nil)
	if j.Find(jsoner.Integer) == nil {
		t.Fatalf("built-ins are still served")
	}
}

func TestJsoner_ErrorsAreWrapped(t *testing.T) {
	_, err := jsoner.Serialize(jsoner.Integer, "x")
	ce := mustConversionError(t, err, jsoner.CodeInvalidType)
	if _, ok := jsoner.AsTypeMismatch(ce); !ok {
		t.Fatalf("the original TypeMismatch stays reachable")
	}
	if ce.Message != ce.Cause.Error() {
		t.Fatalf("message is preserved: %q vs %q", ce.Message, ce.Cause.Error())
	}
}

func TestJsoner_ConcurrentConversions(t *testing.T) {
	j := jsoner.New()
	j.Register(moneyCodec{})
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := j.Deserialize(money, formatCents(int64(i)))
			if err != nil || v != int64(i) {
				t.Errorf("goroutine %d: got %v %v", i, v, err)
			}
		}(i)
	}
	wg.Wait()
}
