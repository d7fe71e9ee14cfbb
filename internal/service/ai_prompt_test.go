package service

import (
	"strings"
	"testing"
)

func TestBuildExercisePromptQCM(t *testing.T) {
	system, user := BuildExercisePrompt(GeneratePromptRequest{
		Subject:    "Mathématiques",
		Level:      "6ème",
		Topic:      "les fractions",
		Difficulty: "easy",
		Type:       "qcm",
		Language:   "fr",
	})

	if !strings.Contains(system, "générateur d'exercices") {
		t.Errorf("system prompt missing generator persona: %q", system)
	}
	for _, want := range []string{
		"Génère un exercice de Mathématiques pour un niveau 6ème sur le thème 'les fractions'.",
		"Difficulté: Facile.",
		"Type: qcm.",
		"notation LaTeX",
		"'options' qui est une liste de 4 choix",
		"correct_option",
	} {
		if !strings.Contains(user, want) {
			t.Errorf("user prompt missing %q", want)
		}
	}
}

func TestBuildExercisePromptClassicNoMath(t *testing.T) {
	_, user := BuildExercisePrompt(GeneratePromptRequest{
		Subject:    "Français",
		Level:      "CM2",
		Topic:      "la conjugaison",
		Difficulty: "hard",
		Type:       "classic",
		Language:   "fr",
	})

	if strings.Contains(user, "LaTeX") {
		t.Error("non-math subject should not carry the LaTeX clause")
	}
	if !strings.Contains(user, "Difficulté: Difficile.") {
		t.Error("hard should label as Difficile in French")
	}
	if !strings.Contains(user, "EXACTEMENT le même nombre d'éléments") {
		t.Error("classic format must require answer/question count parity")
	}
}

func TestBuildExercisePromptLanguageSubjectOverride(t *testing.T) {
	cases := []struct {
		subject string
		want    string
	}{
		{"Anglais", "en ANGLAIS"},
		{"English", "en ANGLAIS"},
		{"Espagnol", "en ESPAGNOL"},
		{"Allemand", "en ALLEMAND"},
	}
	for _, tc := range cases {
		_, user := BuildExercisePrompt(GeneratePromptRequest{
			Subject: tc.subject, Level: "5ème", Topic: "vocabulaire",
			Difficulty: "medium", Type: "qcm", Language: "fr",
		})
		if !strings.Contains(user, tc.want) {
			t.Errorf("subject %s: prompt should force content %s", tc.subject, tc.want)
		}
	}
}

func TestDifficultyLabel(t *testing.T) {
	cases := []struct {
		difficulty, language, want string
	}{
		{"easy", "fr", "Facile"},
		{"medium", "fr", "Moyen"},
		{"hard", "fr", "Difficile"},
		{"easy", "en", "Easy"},
		{"hard", "en", "Hard"},
		{"extreme", "fr", "extreme"}, // unknown passes through
	}
	for _, tc := range cases {
		if got := DifficultyLabel(tc.difficulty, tc.language); got != tc.want {
			t.Errorf("DifficultyLabel(%q, %q) = %q, want %q", tc.difficulty, tc.language, got, tc.want)
		}
	}
}
