package ir

import (
	"testing"
)

func TestIsUniform(t *testing.T) {
	tests := []struct {
		name string
		arr  *Node
		want bool
	}{
		{"empty", FromSlice(nil), true},
		{"single object", FromSlice([]*Node{
			FromKeyVals([]KeyVal{{Key: "a", Val: FromInt(1)}}),
		}), true},
		{"same fields", FromSlice([]*Node{
			FromKeyVals([]KeyVal{{Key: "a", Val: FromInt(1)}, {Key: "b", Val: FromInt(2)}}),
			FromKeyVals([]KeyVal{{Key: "a", Val: FromInt(3)}, {Key: "b", Val: FromInt(4)}}),
		}), true},
		{"different order", FromSlice([]*Node{
			FromKeyVals([]KeyVal{{Key: "a", Val: FromInt(1)}, {Key: "b", Val: FromInt(2)}}),
			FromKeyVals([]KeyVal{{Key: "b", Val: FromInt(4)}, {Key: "a", Val: FromInt(3)}}),
		}), false},
		{"missing field", FromSlice([]*Node{
			FromKeyVals([]KeyVal{{Key: "a", Val: FromInt(1)}, {Key: "b", Val: FromInt(2)}}),
			FromKeyVals([]KeyVal{{Key: "a", Val: FromInt(3)}}),
		}), false},
		{"scalar element", FromSlice([]*Node{
			FromKeyVals([]KeyVal{{Key: "a", Val: FromInt(1)}}),
			FromInt(7),
		}), false},
		{"not an array", FromString("x"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUniform(tt.arr); got != tt.want {
				t.Errorf("IsUniform() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFillUniform(t *testing.T) {
	arr := FromSlice([]*Node{
		FromKeyVals([]KeyVal{{Key: "a", Val: FromInt(1)}, {Key: "b", Val: FromInt(2)}}),
		FromKeyVals([]KeyVal{{Key: "a", Val: FromInt(3)}, {Key: "c", Val: FromInt(4)}}),
	})
	FillUniform(arr)
	if !IsUniform(arr) {
		t.Fatalf("array not uniform after fill")
	}
	want := []string{"a", "b", "c"}
	for i, name := range want {
		if arr.Values[0].Fields[i].String != name {
			t.Errorf("union field %d = %q, want %q", i, arr.Values[0].Fields[i].String, name)
		}
	}
	if v := Get(arr.Values[0], "c"); v.Type != NullType {
		t.Errorf("filled field c on first element = %s, want Null", v.Type)
	}
	if v := Get(arr.Values[1], "b"); v.Type != NullType {
		t.Errorf("filled field b on second element = %s, want Null", v.Type)
	}
	if v := Get(arr.Values[1], "a"); *v.Int64 != 3 {
		t.Errorf("existing value lost in fill")
	}
}

func TestFillUniformMixedLeavesAlone(t *testing.T) {
	arr := FromSlice([]*Node{
		FromKeyVals([]KeyVal{{Key: "a", Val: FromInt(1)}}),
		FromString("scalar"),
	})
	FillUniform(arr)
	if arr.Values[1].Type != StringType {
		t.Errorf("mixed array was rewritten")
	}
}
