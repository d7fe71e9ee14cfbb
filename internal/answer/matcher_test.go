package answer

import (
	"encoding/json"
	"testing"
)

func check(t *testing.T, submitted, correct, exerciseType string) bool {
	t.Helper()
	return Check(json.RawMessage(submitted), json.RawMessage(correct), exerciseType)
}

func TestCheck_QCMIndices(t *testing.T) {
	tests := []struct {
		submitted string
		correct   string
		want      bool
	}{
		{`[2,0,1]`, `[2,0,1]`, true},
		{`[1,2,3]`, `[2,0,1]`, false},
		{`[2,0]`, `[2,0,1]`, false}, // length mismatch fails closed
		{`[2,0,1,3]`, `[2,0,1]`, false},
		{`1`, `1`, true},
		{`1`, `[1]`, true}, // scalar wraps into a one-element list
		{`[1]`, `1`, true},
		{`0`, `1`, false},
	}
	for _, tc := range tests {
		got := check(t, tc.submitted, tc.correct, "qcm")
		if got != tc.want {
			t.Errorf("Check(%s, %s, qcm) = %v, want %v", tc.submitted, tc.correct, got, tc.want)
		}
	}
}

func TestCheck_QCMLetters(t *testing.T) {
	tests := []struct {
		submitted string
		correct   string
		want      bool
	}{
		{`[1,1,0]`, `["B","B","A"]`, true},
		{`[1,2,3]`, `["B","B","A"]`, false},
		{`["B","B","A"]`, `[1,1,0]`, true},
		{`["b","b","a"]`, `[1,1,0]`, true}, // lowercase letters accepted
		{`"C"`, `2`, true},
		{`"C"`, `["C"]`, true},
		{`"E"`, `4`, false}, // beyond D: not a letter
		{`["A","B"]`, `["A","B","C"]`, false},
	}
	for _, tc := range tests {
		got := check(t, tc.submitted, tc.correct, "qcm")
		if got != tc.want {
			t.Errorf("Check(%s, %s, qcm) = %v, want %v", tc.submitted, tc.correct, got, tc.want)
		}
	}
}

func TestCheck_QCMMalformed(t *testing.T) {
	tests := []struct {
		submitted string
		correct   string
	}{
		{`null`, `[1]`},
		{`{}`, `[1]`},
		{`[1]`, `null`},
		{`"hello"`, `[0]`},
		{`[[0],[1]]`, `[0,1]`},
		{`[1.5]`, `[1.5]`},
		{`not json`, `[0]`},
		{``, `[0]`},
	}
	for _, tc := range tests {
		if check(t, tc.submitted, tc.correct, "qcm") {
			t.Errorf("Check(%s, %s, qcm) = true, want false", tc.submitted, tc.correct)
		}
	}
}

func TestCheck_Text(t *testing.T) {
	tests := []struct {
		submitted string
		correct   string
		want      bool
	}{
		{`"Paris"`, `"paris"`, true},
		{`"  Paris "`, `"PARIS"`, true},
		{`"Lyon"`, `"Paris"`, false},
		{`42`, `"42"`, false}, // non-string submission is not a match
		{`null`, `"paris"`, false},
	}
	for _, tc := range tests {
		got := check(t, tc.submitted, tc.correct, "text")
		if got != tc.want {
			t.Errorf("Check(%s, %s, text) = %v, want %v", tc.submitted, tc.correct, got, tc.want)
		}
	}
}

func TestCheck_Number(t *testing.T) {
	tests := []struct {
		submitted string
		correct   string
		want      bool
	}{
		{`42`, `42`, true},
		{`42`, `42.0`, true},
		{`"42"`, `42`, true}, // numeric string coerces
		{`" 3.5 "`, `3.5`, true},
		{`"abc"`, `42`, false}, // non-numeric is a non-match, not an error
		{`43`, `42`, false},
		{`null`, `42`, false},
	}
	for _, tc := range tests {
		got := check(t, tc.submitted, tc.correct, "number")
		if got != tc.want {
			t.Errorf("Check(%s, %s, number) = %v, want %v", tc.submitted, tc.correct, got, tc.want)
		}
	}
}

func TestCheck_Structural(t *testing.T) {
	tests := []struct {
		exerciseType string
		submitted    string
		correct      string
		want         bool
	}{
		{"matching", `{"a":"1","b":"2"}`, `{"b":"2","a":"1"}`, true},
		{"matching", `{"a":"1"}`, `{"a":"2"}`, false},
		{"ordering", `[3,1,2]`, `[3,1,2]`, true},
		{"ordering", `[3,1,2]`, `[1,2,3]`, false},
		{"fill_blank", `["le","la"]`, `["le","la"]`, true},
		{"fill_blank", `["le"]`, `["le","la"]`, false},
		{"matching", `null`, `null`, false},
	}
	for _, tc := range tests {
		got := check(t, tc.submitted, tc.correct, tc.exerciseType)
		if got != tc.want {
			t.Errorf("Check(%s, %s, %s) = %v, want %v", tc.submitted, tc.correct, tc.exerciseType, got, tc.want)
		}
	}
}

func TestCheck_UnknownTypeFailsClosed(t *testing.T) {
	if check(t, `[0]`, `[0]`, "essay") {
		t.Error("unknown exercise type must never match")
	}
	if check(t, `"x"`, `"x"`, "") {
		t.Error("empty exercise type must never match")
	}
}

func FuzzCheckNeverPanics(f *testing.F) {
	seeds := []string{`[0,1]`, `"A"`, `null`, `{}`, `[[1],[2]]`, `"été"`, `1e308`, `not json`, ``}
	for _, s := range seeds {
		for _, c := range seeds {
			f.Add(s, c, "qcm")
			f.Add(s, c, "text")
		}
	}
	f.Fuzz(func(t *testing.T, submitted, correct, exerciseType string) {
		// Totality: any input combination must return without panicking.
		Check(json.RawMessage(submitted), json.RawMessage(correct), exerciseType)
	})
}
