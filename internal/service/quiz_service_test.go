package service

import (
	"encoding/json"
	"testing"

	"github.com/Abdoul1995/TUTEUR-INTELLIGENT-2026/internal/model"
)

func quizFixture() *model.Quiz {
	ex := func(id uint, points uint, correct string) model.Exercise {
		e := model.Exercise{
			ExerciseType:   model.ExerciseTypeQCM,
			Points:         points,
			CorrectAnswers: json.RawMessage(correct),
		}
		e.ID = id
		return e
	}
	return &model.Quiz{
		PassingScore: 50,
		Exercises: []model.Exercise{
			ex(1, 10, `[2]`),
			ex(2, 10, `[0]`),
			ex(3, 20, `[1,3]`),
		},
	}
}

func TestScoreQuizAllCorrect(t *testing.T) {
	score, total, percentage, passed := scoreQuiz(quizFixture(), map[uint]json.RawMessage{
		1: json.RawMessage(`[2]`),
		2: json.RawMessage(`"A"`),
		3: json.RawMessage(`["B","D"]`),
	})
	if score != 40 || total != 40 || percentage != 100 || !passed {
		t.Errorf("got score=%d total=%d pct=%d passed=%v, want 40/40 100%% passed", score, total, percentage, passed)
	}
}

func TestScoreQuizPartial(t *testing.T) {
	// One of three correct: 10/40 = 25%, below a 50% bar.
	score, total, percentage, passed := scoreQuiz(quizFixture(), map[uint]json.RawMessage{
		1: json.RawMessage(`[2]`),
		2: json.RawMessage(`[1]`),
	})
	if score != 10 || total != 40 {
		t.Errorf("score=%d total=%d, want 10/40", score, total)
	}
	if percentage != 25 {
		t.Errorf("percentage = %d, want 25", percentage)
	}
	if passed {
		t.Error("25%% should not pass a 50%% bar")
	}
}

func TestScoreQuizPercentageFloors(t *testing.T) {
	quiz := quizFixture()
	// 10 of 40 would be 25; 10 of 30 is 33.33 and must floor to 33.
	quiz.Exercises = quiz.Exercises[:2]
	quiz.Exercises = append(quiz.Exercises, func() model.Exercise {
		e := model.Exercise{ExerciseType: model.ExerciseTypeQCM, Points: 10, CorrectAnswers: json.RawMessage(`[1]`)}
		e.ID = 3
		return e
	}())
	score, total, percentage, _ := scoreQuiz(quiz, map[uint]json.RawMessage{
		1: json.RawMessage(`[2]`),
	})
	if score != 10 || total != 30 {
		t.Fatalf("score=%d total=%d, want 10/30", score, total)
	}
	if percentage != 33 {
		t.Errorf("percentage = %d, want floored 33", percentage)
	}
}

func TestScoreQuizPassIsInclusive(t *testing.T) {
	quiz := quizFixture()
	// Exactly 50%: 20 of 40.
	_, _, percentage, passed := scoreQuiz(quiz, map[uint]json.RawMessage{
		3: json.RawMessage(`[1,3]`),
	})
	if percentage != 50 {
		t.Fatalf("percentage = %d, want 50", percentage)
	}
	if !passed {
		t.Error("exactly the passing score must pass")
	}
}

func TestScoreQuizEmptyQuiz(t *testing.T) {
	quiz := &model.Quiz{PassingScore: 50}
	score, total, percentage, passed := scoreQuiz(quiz, nil)
	if score != 0 || total != 0 || percentage != 0 {
		t.Errorf("empty quiz should score 0/0 at 0%%, got %d/%d %d%%", score, total, percentage)
	}
	if passed {
		t.Error("an empty quiz at 0%% should not pass a 50%% bar")
	}
}

func TestScoreQuizUnansweredCountTowardTotal(t *testing.T) {
	_, total, _, _ := scoreQuiz(quizFixture(), map[uint]json.RawMessage{})
	if total != 40 {
		t.Errorf("total = %d, want 40 regardless of answers submitted", total)
	}
}

func TestScoreQuizUnknownExerciseIDIgnored(t *testing.T) {
	score, _, _, _ := scoreQuiz(quizFixture(), map[uint]json.RawMessage{
		99: json.RawMessage(`[0]`),
	})
	if score != 0 {
		t.Errorf("answers to exercises outside the quiz must not score, got %d", score)
	}
}
