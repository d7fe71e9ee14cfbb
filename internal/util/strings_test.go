package util

import "testing"

func TestFoldAccents(t *testing.T) {
	cases := []struct {
		input, want string
	}{
		{"Mathématiques", "Mathematiques"},
		{"Français", "Francais"},
		{"Histoire-Géographie", "Histoire-Geographie"},
		{"élève", "eleve"},
		{"NOËL", "NOEL"},
		{"cœur", "coeur"},
		{"plain ascii", "plain ascii"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := FoldAccents(tc.input); got != tc.want {
			t.Errorf("FoldAccents(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		input, want string
	}{
		{"Mathématiques", "mathematiques"},
		{"Histoire-Géographie", "histoire-geographie"},
		{"Sciences de la Vie", "sciences-de-la-vie"},
		{"  Français  ", "francais"},
		{"Déjà__vu!!", "deja-vu"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := Slugify(tc.input); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}
