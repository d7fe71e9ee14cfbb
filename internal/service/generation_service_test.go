package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/Abdoul1995/TUTEUR-INTELLIGENT-2026/internal/model"
	"github.com/Abdoul1995/TUTEUR-INTELLIGENT-2026/internal/util"
)

func seedSubjects() []model.Subject {
	return []model.Subject{
		{Name: "Anglais", Slug: "anglais"},
		{Name: "Français", Slug: "francais"},
		{Name: "Histoire-Géographie", Slug: "histoire-geographie"},
		{Name: "Mathématiques", Slug: "mathematiques"},
		{Name: "Sciences", Slug: "sciences"},
	}
}

func TestResolveSubject(t *testing.T) {
	subjects := seedSubjects()

	cases := []struct {
		query string
		want  string
	}{
		{"Mathématiques", "Mathématiques"},
		{"mathématiques", "Mathématiques"},
		{"mathematiques", "Mathématiques"}, // accent-folded exact match
		{"MATHEMATIQUES", "Mathématiques"},
		{"math", "Mathématiques"},   // substring
		{"histoire", "Histoire-Géographie"},
		{"géo", "Histoire-Géographie"},
		{"francais", "Français"},
		{"histoire-geographie", "Histoire-Géographie"}, // slug
		{"  Sciences  ", "Sciences"},
	}
	for _, tc := range cases {
		got, err := resolveSubject(subjects, tc.query)
		if err != nil {
			t.Errorf("resolveSubject(%q): unexpected error %v", tc.query, err)
			continue
		}
		if got.Name != tc.want {
			t.Errorf("resolveSubject(%q) = %q, want %q", tc.query, got.Name, tc.want)
		}
	}
}

func TestResolveSubjectExactBeatsSubstring(t *testing.T) {
	subjects := []model.Subject{
		{Name: "Sciences de la vie", Slug: "sciences-de-la-vie"},
		{Name: "Sciences", Slug: "sciences"},
	}
	got, err := resolveSubject(subjects, "sciences")
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Sciences" {
		t.Errorf("exact match should win over substring, got %q", got.Name)
	}
}

func TestResolveSubjectNotFound(t *testing.T) {
	for _, query := range []string{"philosophie", "", "   "} {
		if _, err := resolveSubject(seedSubjects(), query); !errors.Is(err, util.ErrSubjectNotFound) {
			t.Errorf("resolveSubject(%q): want ErrSubjectNotFound, got %v", query, err)
		}
	}
}

func qcmPayload() *ExercisePayload {
	return &ExercisePayload{
		Title:          "Les fractions",
		Type:           "qcm",
		Difficulty:     "easy",
		Content:        json.RawMessage(`{"questions":[{"question":"1/2 + 1/2 ?","options":["0","1","2","1/4"],"correct_option":1}]}`),
		CorrectAnswers: json.RawMessage(`[1]`),
		Explanation:    "Deux moitiés font un entier.",
		Hints:          []string{"Pense à un gâteau."},
		Points:         json.Number("10"),
	}
}

func TestValidatePayloadQCM(t *testing.T) {
	if err := ValidatePayload(qcmPayload(), model.ExerciseTypeQCM); err != nil {
		t.Fatalf("valid qcm payload rejected: %v", err)
	}
}

func TestValidatePayloadQCMLetterAnswers(t *testing.T) {
	p := qcmPayload()
	p.CorrectAnswers = json.RawMessage(`["B"]`)
	if err := ValidatePayload(p, model.ExerciseTypeQCM); err != nil {
		t.Fatalf("letter answers should canonicalize: %v", err)
	}
}

func TestValidatePayloadQCMRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*ExercisePayload)
	}{
		{"no title", func(p *ExercisePayload) { p.Title = "" }},
		{"three options", func(p *ExercisePayload) {
			p.Content = json.RawMessage(`{"questions":[{"question":"q","options":["a","b","c"]}]}`)
		}},
		{"answer count mismatch", func(p *ExercisePayload) { p.CorrectAnswers = json.RawMessage(`[1,2]`) }},
		{"answer out of range", func(p *ExercisePayload) { p.CorrectAnswers = json.RawMessage(`[7]`) }},
		{"free-text answer", func(p *ExercisePayload) { p.CorrectAnswers = json.RawMessage(`["une réponse"]`) }},
		{"no questions", func(p *ExercisePayload) { p.Content = json.RawMessage(`{"questions":[]}`) }},
		{"content not json object", func(p *ExercisePayload) { p.Content = json.RawMessage(`"oops"`) }},
	}
	for _, tc := range cases {
		p := qcmPayload()
		tc.mutate(p)
		if err := ValidatePayload(p, model.ExerciseTypeQCM); err == nil {
			t.Errorf("%s: want validation error, got nil", tc.name)
		}
	}
}

func TestValidatePayloadClassic(t *testing.T) {
	p := &ExercisePayload{
		Title:          "Conjugaison",
		Type:           "classic",
		Content:        json.RawMessage(`{"text":"Conjugue les verbes.","questions":["manger au présent","finir au futur"]}`),
		CorrectAnswers: json.RawMessage(`["je mange...","je finirai..."]`),
	}
	if err := ValidatePayload(p, model.ExerciseTypeClassic); err != nil {
		t.Fatalf("valid classic payload rejected: %v", err)
	}

	// The correction must cover every question, including the last one.
	p.CorrectAnswers = json.RawMessage(`["je mange..."]`)
	if err := ValidatePayload(p, model.ExerciseTypeClassic); err == nil {
		t.Error("classic with missing correction should be rejected")
	}

	// A worksheet is nothing without its instruction text.
	p.CorrectAnswers = json.RawMessage(`["je mange...","je finirai..."]`)
	p.Content = json.RawMessage(`{"text":"","questions":["manger au présent","finir au futur"]}`)
	if err := ValidatePayload(p, model.ExerciseTypeClassic); err == nil {
		t.Error("classic with empty text should be rejected")
	}
}

func TestCanonicalAnswerRepresentations(t *testing.T) {
	cases := []struct {
		raw  string
		want string
		ok   bool
	}{
		{`[1]`, "[1]", true},
		{`["B"]`, "[1]", true},
		{`2`, "[2]", true},
		{`"C"`, "[2]", true},
		{`["B","D"]`, "[1 3]", true},
		{`["une réponse"]`, "", false},
		{`{"oops":1}`, "", false},
	}
	for _, tc := range cases {
		got, ok := canonicalAnswers(json.RawMessage(tc.raw))
		if ok != tc.ok {
			t.Errorf("canonicalAnswers(%s) ok = %v, want %v", tc.raw, ok, tc.ok)
			continue
		}
		if ok && fmt.Sprint(got) != tc.want {
			t.Errorf("canonicalAnswers(%s) = %v, want %s", tc.raw, got, tc.want)
		}
	}
}

func TestBuildExerciseNormalizesQCMAnswers(t *testing.T) {
	p := qcmPayload()
	p.CorrectAnswers = json.RawMessage(`["B"]`)

	exercise, err := BuildExercise(p, 3, "sixieme", 42)
	if err != nil {
		t.Fatal(err)
	}
	if string(exercise.CorrectAnswers) != "[1]" {
		t.Errorf("letter answer should be stored canonically, got %s", exercise.CorrectAnswers)
	}
	if !exercise.IsAIGenerated {
		t.Error("generated exercise must be flagged is_ai_generated")
	}
	if exercise.CreatorID == nil || *exercise.CreatorID != 42 {
		t.Error("generated exercise must record its creator")
	}
	if exercise.Level != "sixieme" {
		t.Errorf("level = %q, want sixieme", exercise.Level)
	}
}

func TestBuildExercisePointsDefault(t *testing.T) {
	cases := []struct {
		points json.Number
		want   uint
	}{
		{"", 10},
		{"15", 15},
		{"0", 10},
		{"-5", 10},
		{"abc", 10},
	}
	for _, tc := range cases {
		p := qcmPayload()
		p.Points = tc.points
		exercise, err := BuildExercise(p, 1, "cm2", 1)
		if err != nil {
			t.Fatalf("points %q: %v", tc.points, err)
		}
		if exercise.Points != tc.want {
			t.Errorf("points %q: got %d, want %d", tc.points, exercise.Points, tc.want)
		}
	}
}
