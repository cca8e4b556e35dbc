package jsoner_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/reoring/jsoner"
)

type Color string

const (
	Red   Color = "red"
	Green Color = "green"
)

func TestCheck_Descriptors(t *testing.T) {
	cases := []struct {
		name string
		typ  jsoner.Type
		v    any
		code string // empty when v conforms
	}{
		{"string", jsoner.String, "x", ""},
		{"string_rejects_int", jsoner.String, 1, jsoner.CodeInvalidType},
		{"string_rejects_nil", jsoner.String, nil, jsoner.CodeNullNotAllowed},
		{"integer_sized", jsoner.Integer, int8(1), ""},
		{"integer_rejects_float", jsoner.Integer, 1.0, jsoner.CodeInvalidType},
		{"float", jsoner.Float, 1.5, ""},
		{"float_rejects_int", jsoner.Float, 1, jsoner.CodeInvalidType},
		{"number_int", jsoner.Number, 1, ""},
		{"number_float", jsoner.Number, 2.5, ""},
		{"bool", jsoner.Bool, true, ""},
		{"null", jsoner.Null, nil, ""},
		{"null_rejects_zero", jsoner.Null, 0, jsoner.CodeInvalidType},
		{"optional_nil", jsoner.Optional(jsoner.String), nil, ""},
		{"optional_inner", jsoner.Optional(jsoner.String), 3, jsoner.CodeInvalidType},
		{"array", jsoner.ArrayOf(jsoner.Integer), []any{1, 2}, ""},
		{"array_typed_slice", jsoner.ArrayOf(jsoner.String), []string{"a"}, ""},
		{"array_bad_item", jsoner.ArrayOf(jsoner.Integer), []any{1, "x"}, jsoner.CodeInvalidType},
		{"array_not_sequence", jsoner.ArrayOf(jsoner.Integer), "x", jsoner.CodeInvalidType},
		{"map", jsoner.MapOf(jsoner.String, jsoner.Integer), map[string]int{"a": 1}, ""},
		{"map_bad_value", jsoner.MapOf(jsoner.String, jsoner.Integer), map[string]any{"a": "x"}, jsoner.CodeInvalidType},
		{"union_second_member", jsoner.Union(jsoner.Integer, jsoner.String), "x", ""},
		{"union_miss", jsoner.Union(jsoner.Integer, jsoner.String), true, jsoner.CodeInvalidType},
		{"union_with_null", jsoner.Union(jsoner.Null, jsoner.String), nil, ""},
		{"pattern", jsoner.UUID, "123e4567-e89b-12d3-a456-426614174000", ""},
		{"pattern_miss", jsoner.UUID, "nope", jsoner.CodePattern},
		{"pattern_non_string", jsoner.UUID, 7, jsoner.CodeInvalidType},
		{"unknown_any", jsoner.Unknown, struct{}{}, ""},
		{"unknown_rejects_nil", jsoner.Unknown, nil, jsoner.CodeNullNotAllowed},
		{"nilable_unknown", jsoner.NilableUnknown, nil, ""},
		{"enum_typed", jsoner.MustEnum("Color", Red, Green), Red, ""},
		{"enum_untyped_value", jsoner.MustEnum("Color", Red, Green), "red", jsoner.CodeInvalidEnum},
		{"date", jsoner.Date, jsoner.LocalDate{Year: 2024, Month: time.May, Day: 1}, ""},
		{"date_rejects_text", jsoner.Date, "2024-05-01", jsoner.CodeInvalidType},
		{"datetime", jsoner.DateTime, time.Now(), ""},
		{"datetime_rejects_text", jsoner.DateTime, "2024-01-01T00:00:00", jsoner.CodeInvalidType},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := jsoner.Check(tc.typ, tc.v)
			if tc.code == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if !jsoner.InstanceOf(tc.typ, got) {
					t.Fatalf("checked value should be an instance")
				}
				return
			}
			tm, ok := jsoner.AsTypeMismatch(err)
			if !ok {
				t.Fatalf("want TypeMismatch, got %v", err)
			}
			if tm.Code != tc.code {
				t.Fatalf("want code %s, got %s (%v)", tc.code, tm.Code, err)
			}
		})
	}
}

func TestCheck_MessageNamesShapeAndKind(t *testing.T) {
	_, err := jsoner.Check(jsoner.ArrayOf(jsoner.Integer), "x")
	tm, ok := jsoner.AsTypeMismatch(err)
	if !ok {
		t.Fatalf("want TypeMismatch, got %v", err)
	}
	if tm.Expected != "Array[Integer]" || tm.Kind != "String" {
		t.Fatalf("want Array[Integer]/String, got %s/%s", tm.Expected, tm.Kind)
	}
	if msg := err.Error(); !strings.Contains(msg, "Array[Integer]") || !strings.Contains(msg, "String") {
		t.Fatalf("message should name shape and kind: %s", msg)
	}
}

func TestCheckVar_NamesVariable(t *testing.T) {
	_, err := jsoner.CheckVar("age", jsoner.Integer, "old")
	tm, ok := jsoner.AsTypeMismatch(err)
	if !ok || tm.Code != jsoner.CodeFieldType || tm.Var != "age" {
		t.Fatalf("want field_type naming age, got %v", err)
	}
	if !strings.Contains(err.Error(), "age") || !strings.Contains(err.Error(), "Integer") {
		t.Fatalf("message should name variable and type: %s", err)
	}
}

func TestEqual_Structural(t *testing.T) {
	cases := []struct {
		name string
		a, b jsoner.Type
		want bool
	}{
		{"primitive", jsoner.String, jsoner.String, true},
		{"primitive_kinds", jsoner.String, jsoner.Integer, false},
		{"optional_array", jsoner.Optional(jsoner.ArrayOf(jsoner.String)), jsoner.Optional(jsoner.ArrayOf(jsoner.String)), true},
		{"array_items", jsoner.ArrayOf(jsoner.String), jsoner.ArrayOf(jsoner.Integer), false},
		{"map", jsoner.MapOf(jsoner.String, jsoner.Integer), jsoner.MapOf(jsoner.String, jsoner.Integer), true},
		{"map_values", jsoner.MapOf(jsoner.String, jsoner.Integer), jsoner.MapOf(jsoner.String, jsoner.Float), false},
		{"union_order_ignored", jsoner.Union(jsoner.String, jsoner.Integer), jsoner.Union(jsoner.Integer, jsoner.String, jsoner.String), true},
		{"union_members", jsoner.Union(jsoner.String), jsoner.Union(jsoner.String, jsoner.Bool), false},
		{"pattern", jsoner.MustPattern("a+"), jsoner.MustPattern("a+"), true},
		{"pattern_expr", jsoner.MustPattern("a+"), jsoner.MustPattern("b+"), false},
		{"unknown", jsoner.Unknown, jsoner.Unknown, true},
		{"date_vs_datetime", jsoner.Date, jsoner.DateTime, false},
	}
	for _, tc := range cases {
		if got := tc.a.Equal(tc.b); got != tc.want {
			t.Fatalf("%s: want %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestEqual_NominalDeclarations(t *testing.T) {
	e1 := jsoner.MustEnum("Color", Red)
	e2 := jsoner.MustEnum("Color", Red)
	if e1.Equal(e2) || !e1.Equal(e1) {
		t.Fatalf("enums are nominal")
	}
	r1 := jsoner.MustRecord("P", jsoner.Field{Name: "x", Type: jsoner.Integer})
	r2 := jsoner.MustRecord("P", jsoner.Field{Name: "x", Type: jsoner.Integer})
	if r1.Equal(r2) || !r1.Equal(r1) {
		t.Fatalf("records are nominal")
	}
}

func TestNewPattern_Invalid(t *testing.T) {
	if _, err := jsoner.NewPattern("("); err == nil {
		t.Fatalf("expected compile error")
	}
	if !jsoner.InstanceOf(jsoner.MustPattern("a|b"), "b") {
		t.Fatalf("alternation must be anchored as a whole")
	}
	if jsoner.InstanceOf(jsoner.MustPattern("a|b"), "ab") {
		t.Fatalf("pattern must match the whole string")
	}
}

func TestNewEnum_Invalid(t *testing.T) {
	if _, err := jsoner.NewEnum(""); err == nil {
		t.Fatalf("expected error for empty name")
	}
	if _, err := jsoner.NewEnum("E"); err == nil {
		t.Fatalf("expected error for no constants")
	}
	if _, err := jsoner.NewEnum("E", []int{1}); err == nil {
		t.Fatalf("expected error for non-scalar constant")
	}
}

func TestLocalDate(t *testing.T) {
	d, err := jsoner.ParseDate("2024-02-29")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.String() != "2024-02-29" || !d.IsValid() {
		t.Fatalf("got %v", d)
	}
	if (jsoner.LocalDate{Year: 2023, Month: time.February, Day: 29}).IsValid() {
		t.Fatalf("2023-02-29 does not exist")
	}
	if _, err := jsoner.ParseDate("2023-02-29"); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestCompositeDescriptors_RejectNil(t *testing.T) {
	ctors := map[string]func(){
		"optional":  func() { jsoner.Optional(nil) },
		"array":     func() { jsoner.ArrayOf(nil) },
		"map_key":   func() { jsoner.MapOf(nil, jsoner.String) },
		"map_value": func() { jsoner.MapOf(jsoner.String, nil) },
		"union":     func() { jsoner.Union(jsoner.String, nil) },
	}
	for name, ctor := range ctors {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if r := recover(); r == nil || !strings.Contains(fmt.Sprint(r), "nil") {
					t.Fatalf("want a panic naming the nil descriptor, got %v", r)
				}
			}()
			ctor()
		})
	}
}
