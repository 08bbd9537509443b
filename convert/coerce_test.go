package convert

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/structml/go-structml/ir"
)

func coerceJSON(t *testing.T, in string) string {
	t.Helper()
	d, err := json.Marshal(Coerce(in))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(d)
}

func TestCoerce(t *testing.T) {
	tcs := []struct {
		name string
		in   string
		want string
	}{
		{"int", "42", `42`},
		{"negative", "-17", `-17`},
		{"float", "3.25", `3.25`},
		{"exponent", "1e-3", `0.001`},
		{"leading zeros", "007", `7`},
		{"vector", "1 2 3", `[1,2,3]`},
		{"mixed vector", "1 2.5", `[1,2.5]`},
		{"matrix", "1 2\n3 4", `[[1,2],[3,4]]`},
		{"escaped rows", `1 2\n3 4`, `[[1,2],[3,4]]`},
		{"ragged matrix", "1 2\n3", `[[1,2],[3]]`},
		{"pi", "pi", `3.141592653589793`},
		{"negative pi", "-pi", `-3.141592653589793`},
		{"words", "abc", `"abc"`},
		{"trailing letters", "12abc", `"12abc"`},
		{"comma separated", "1,2", `"1,2"`},
		{"imaginary", "3i", `"3i"`},
		{"imaginary vector", "1 2 3i", `"1 2 3i"`},
		{"bare exponent marker", "e", `"e"`},
		{"infinity spelled out", "Infinity", `"Infinity"`},
		{"empty", "", `""`},
		{"blank", "   ", `"   "`},
		{"date", "2024-01-02", `"2024-01-02"`},
		{"version", "1.2.3", `"1.2.3"`},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			got := coerceJSON(t, tc.in)
			if got != tc.want {
				t.Errorf("Coerce(%q) = %s, want %s", tc.in, got, tc.want)
			}
		})
	}
}

func TestCoerceNonFinite(t *testing.T) {
	v := Coerce("Inf -Inf NaN")
	if v.Type != ir.ArrayType || len(v.Values) != 3 {
		t.Fatalf("want 3-element array, got %v", v.Type)
	}
	for i, check := range []func(float64) bool{
		func(f float64) bool { return math.IsInf(f, 1) },
		func(f float64) bool { return math.IsInf(f, -1) },
		math.IsNaN,
	} {
		el := v.Values[i]
		if el.Type != ir.NumberType || el.Float64 == nil || !check(*el.Float64) {
			t.Errorf("element %d: got %+v", i, el)
		}
	}
}
