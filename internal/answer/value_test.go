package answer

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestDecode_Kinds(t *testing.T) {
	tests := []struct {
		raw  string
		want Kind
	}{
		{`2`, Index},
		{`2.5`, Number},
		{`"B"`, Letter},
		{`"b"`, Letter},
		{`"Paris"`, Text},
		{`[0,2]`, IndexList},
		{`["A","C"]`, LetterList},
		{`[]`, IndexList}, // empty list canonicalizes to an empty selection
		{`["A",1]`, Invalid},
		{`{"a":1}`, Invalid},
		{`null`, Invalid},
		{`garbage`, Invalid},
	}
	for _, tc := range tests {
		got := Decode(json.RawMessage(tc.raw))
		if got.Kind != tc.want {
			t.Errorf("Decode(%s).Kind = %v, want %v", tc.raw, got.Kind, tc.want)
		}
	}
}

func TestCanonical(t *testing.T) {
	tests := []struct {
		raw  string
		want []int
		ok   bool
	}{
		{`2`, []int{2}, true},
		{`"C"`, []int{2}, true},
		{`[2,0,1]`, []int{2, 0, 1}, true},
		{`["B","B","A"]`, []int{1, 1, 0}, true},
		{`"Paris"`, nil, false},
		{`2.5`, nil, false},
		{`null`, nil, false},
	}
	for _, tc := range tests {
		got, ok := Decode(json.RawMessage(tc.raw)).Canonical()
		if ok != tc.ok {
			t.Errorf("Canonical(%s) ok = %v, want %v", tc.raw, ok, tc.ok)
			continue
		}
		if ok && !reflect.DeepEqual(got, tc.want) {
			t.Errorf("Canonical(%s) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}
