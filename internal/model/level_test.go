package model

import (
	"reflect"
	"testing"
)

func TestNormalizeLevel(t *testing.T) {
	cases := []struct {
		input, want string
	}{
		{"6ème", "sixieme"},
		{"6eme", "sixieme"},
		{"6e", "sixieme"},
		{"Sixième", "sixieme"},
		{"sixieme", "sixieme"},
		{"  CM2  ", "cm2"},
		{"2nde", "seconde"},
		{"2de", "seconde"},
		{"1ère", "premiere"},
		{"1ere", "premiere"},
		{"Première", "premiere"},
		{"Tle", "terminale"},
		{"term", "terminale"},
		{"Terminale", "terminale"},
		{"3E", "troisieme"},
		// Unknown input lowercases and passes through.
		{"Licence 1", "licence 1"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := NormalizeLevel(tc.input); got != tc.want {
			t.Errorf("NormalizeLevel(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestLevelLabel(t *testing.T) {
	if got := LevelLabel("sixieme"); got != "6ème" {
		t.Errorf("LevelLabel(sixieme) = %q", got)
	}
	if got := LevelLabel("inconnu"); got != "inconnu" {
		t.Errorf("unknown code should fall back to itself, got %q", got)
	}
}

func TestAllowedLevels(t *testing.T) {
	got := AllowedLevels("cm1")
	want := []string{"cp1", "cp2", "ce1", "ce2", "cm1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AllowedLevels(cm1) = %v, want %v", got, want)
	}

	if got := AllowedLevels("cp1"); !reflect.DeepEqual(got, []string{"cp1"}) {
		t.Errorf("AllowedLevels(cp1) = %v", got)
	}
	if got := AllowedLevels("terminale"); len(got) != len(LevelCodes) {
		t.Errorf("terminale should see every level, got %d of %d", len(got), len(LevelCodes))
	}
	if got := AllowedLevels("inconnu"); got != nil {
		t.Errorf("unknown level should see nothing, got %v", got)
	}
	if got := AllowedLevels(""); got != nil {
		t.Errorf("empty level should see nothing, got %v", got)
	}
}
