// Package answer decides whether a submitted answer matches the stored
// correct answer for an exercise. It is a pure predicate: malformed input of
// any shape degrades to "not correct", it never errors and never panics.
package answer

import (
	"encoding/json"
	"reflect"
	"strconv"
	"strings"
)

// Check evaluates a submitted answer against the stored correct answer for
// the given exercise type. Both operands are raw JSON in whatever shape the
// client or a past generation produced.
func Check(submitted, correct json.RawMessage, exerciseType string) bool {
	switch exerciseType {
	case "qcm":
		return checkQCM(submitted, correct)
	case "text":
		return checkText(submitted, correct)
	case "number":
		return checkNumber(submitted, correct)
	case "matching", "fill_blank", "ordering":
		return structuralEqual(submitted, correct)
	}
	// Unknown type: fail closed.
	return false
}

// checkQCM normalizes both operands to 0-based index lists before comparing.
// A length mismatch between the normalized lists is a non-match, not an
// error: a three-question QCM answered with two selections is simply wrong.
func checkQCM(submitted, correct json.RawMessage) bool {
	s, ok := Decode(submitted).Canonical()
	if !ok {
		return false
	}
	c, ok := Decode(correct).Canonical()
	if !ok {
		return false
	}
	if len(s) != len(c) {
		return false
	}
	for i := range s {
		if s[i] != c[i] {
			return false
		}
	}
	return true
}

func checkText(submitted, correct json.RawMessage) bool {
	s, ok := asString(submitted)
	if !ok {
		return false
	}
	c, ok := asString(correct)
	if !ok {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(s), strings.TrimSpace(c))
}

func checkNumber(submitted, correct json.RawMessage) bool {
	s, ok := asFloat(submitted)
	if !ok {
		return false
	}
	c, ok := asFloat(correct)
	if !ok {
		return false
	}
	return s == c
}

// structuralEqual compares both operands after a JSON round-trip, so that
// formatting differences and int/float encodings do not matter.
func structuralEqual(a, b json.RawMessage) bool {
	var av, bv interface{}
	if err := json.Unmarshal(a, &av); err != nil {
		return false
	}
	if err := json.Unmarshal(b, &bv); err != nil {
		return false
	}
	if av == nil || bv == nil {
		return false
	}
	return reflect.DeepEqual(av, bv)
}

func asString(raw json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// asFloat coerces a JSON number or a numeric string. Anything else is a
// non-match for number exercises.
func asFloat(raw json.RawMessage) (float64, bool) {
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, false
	}
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
