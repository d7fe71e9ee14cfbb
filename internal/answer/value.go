package answer

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Kind tags the decoded shape of an answer payload. Stored answers are not
// uniformly shaped across generations: the same logical QCM selection appears
// as a bare index, a letter, or a list of either. Decoding into an explicit
// variant keeps the normalization rules in one place instead of scattering
// runtime type checks.
type Kind uint8

const (
	Invalid Kind = iota
	Index
	IndexList
	Letter
	LetterList
	Text
	Number
)

// Value is a decoded answer operand.
type Value struct {
	Kind    Kind
	Index   int
	Indices []int
	Letter  byte
	Letters []byte
	Text    string
	Number  float64
}

// Decode classifies a raw JSON answer. It never fails: anything that does not
// fit a known shape comes back with Kind Invalid.
func Decode(raw json.RawMessage) Value {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return Value{Kind: Invalid}
	}
	return classify(v)
}

func classify(v interface{}) Value {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return Value{Kind: Index, Index: int(i)}
		}
		if f, err := t.Float64(); err == nil {
			return Value{Kind: Number, Number: f}
		}
	case string:
		if b, ok := letterByte(t); ok {
			return Value{Kind: Letter, Letter: b}
		}
		return Value{Kind: Text, Text: t}
	case []interface{}:
		return classifyList(t)
	}
	return Value{Kind: Invalid}
}

func classifyList(items []interface{}) Value {
	indices := make([]int, 0, len(items))
	letters := make([]byte, 0, len(items))
	allIndices, allLetters := true, true
	for _, item := range items {
		switch t := item.(type) {
		case json.Number:
			allLetters = false
			i, err := t.Int64()
			if err != nil {
				allIndices = false
			} else {
				indices = append(indices, int(i))
			}
		case string:
			allIndices = false
			b, ok := letterByte(t)
			if !ok {
				allLetters = false
			} else {
				letters = append(letters, b)
			}
		default:
			allIndices, allLetters = false, false
		}
	}
	switch {
	case allIndices:
		return Value{Kind: IndexList, Indices: indices}
	case allLetters:
		return Value{Kind: LetterList, Letters: letters}
	}
	return Value{Kind: Invalid}
}

// letterByte reports whether s is a single option letter A-D (either case).
func letterByte(s string) (byte, bool) {
	s = strings.TrimSpace(s)
	if len(s) != 1 {
		return 0, false
	}
	c := s[0]
	switch {
	case c >= 'A' && c <= 'D':
		return c, true
	case c >= 'a' && c <= 'd':
		return c - 'a' + 'A', true
	}
	return 0, false
}

// Canonical converts a choice answer to its canonical form, a 0-based index
// list: scalars wrap into a one-element list, letters map A=0..D=3. Text,
// non-integral numbers and invalid shapes have no canonical form.
func (v Value) Canonical() ([]int, bool) {
	switch v.Kind {
	case Index:
		return []int{v.Index}, true
	case Letter:
		return []int{int(v.Letter - 'A')}, true
	case IndexList:
		return v.Indices, true
	case LetterList:
		out := make([]int, len(v.Letters))
		for i, b := range v.Letters {
			out[i] = int(b - 'A')
		}
		return out, true
	}
	return nil, false
}
