package service

import (
	"fmt"
	"strings"

	"github.com/Abdoul1995/TUTEUR-INTELLIGENT-2026/internal/model"
	"github.com/Abdoul1995/TUTEUR-INTELLIGENT-2026/internal/util"
)

// GeneratePromptRequest carries the criteria a generation prompt is built
// from. Subject is the display name, Level the human-readable label.
type GeneratePromptRequest struct {
	Subject    string
	Level      string
	Topic      string
	Difficulty string
	Type       string
	Language   string
}

const qcmFormatInstructions = "- type: 'qcm'\n" +
	"- content: Un objet JSON contenant 'questions' (une liste d'objets, chaque objet ayant 'question' et 'options' qui est une liste de 4 choix)\n" +
	"- correct_answers: Une liste contenant les index des bonnes réponses (ex: [0, 1]) correspondant à chaque question dans 'content.questions'\n" +
	"IMPORTANT pour QCM: Chaque objet question dans 'content.questions' DOIT aussi avoir une clé 'correct_option' (int, 0-3) pour la validation immédiate sur mobile.\n"

const classicFormatInstructions = "- type: 'classic'\n" +
	"- content: Un objet JSON contenant 'text' (l'énoncé détaillé de l'exercice) et 'questions' (une liste de strings pour les sous-questions)\n" +
	"IMPORTANT pour Classic: 'correct_answers' DOIT OBLIGATOIREMENT être une liste (array) contenant EXACTEMENT le même nombre d'éléments que la liste 'content.questions'. " +
	"N'oubliez aucune question dans la correction, surtout la toute dernière. Chaque élément de 'correct_answers' doit être la correction détaillée de la question correspondante au même index.\n"

const mathInstruction = "IMPORTANT: Puisque c'est un exercice de mathématiques, utilise la notation LaTeX pour toutes les expressions mathématiques (ex: $x^2$, $\\frac{1}{2}$, $\\sqrt{x}$). Toutes les formules doivent être entourées de symboles $.\n"

var difficultyLabelsFR = map[string]string{
	model.DifficultyEasy:   "Facile",
	model.DifficultyMedium: "Moyen",
	model.DifficultyHard:   "Difficile",
}

var difficultyLabelsEN = map[string]string{
	model.DifficultyEasy:   "Easy",
	model.DifficultyMedium: "Medium",
	model.DifficultyHard:   "Hard",
}

// DifficultyLabel maps a difficulty code to its display label in the given
// language, falling back to the raw code for unknown values.
func DifficultyLabel(difficulty, language string) string {
	labels := difficultyLabelsFR
	if language == "en" {
		labels = difficultyLabelsEN
	}
	if label, ok := labels[difficulty]; ok {
		return label
	}
	return difficulty
}

// languageInstruction picks the output-language clause. Language subjects
// (anglais, espagnol, allemand) override the requesting user's language:
// an English exercise stays in English even for a French student.
func languageInstruction(subjectFolded, language string) string {
	switch {
	case strings.Contains(subjectFolded, "anglais"), strings.Contains(subjectFolded, "english"):
		return "IMPORTANT: Le contenu de l'exercice (texte, questions, choix) DOIT être en ANGLAIS. Seules les consignes peuvent être en français si nécessaire."
	case strings.Contains(subjectFolded, "espagnol"):
		return "IMPORTANT: Le contenu de l'exercice DOIT être en ESPAGNOL."
	case strings.Contains(subjectFolded, "allemand"):
		return "IMPORTANT: Le contenu de l'exercice DOIT être en ALLEMAND."
	}
	langName := "Français"
	if language == "en" {
		langName = "Anglais"
	}
	return fmt.Sprintf("IMPORTANT: L'exercice (titre, description, questions, options, explications) DOIT être rédigé entièrement en %s.", langName)
}

// BuildExercisePrompt renders the system and user messages for exercise
// generation. Pure function: everything the prompt depends on is in req.
func BuildExercisePrompt(req GeneratePromptRequest) (system, user string) {
	subjectFolded := strings.ToLower(util.FoldAccents(req.Subject))

	formatInstructions := classicFormatInstructions
	if req.Type == model.ExerciseTypeQCM {
		formatInstructions = qcmFormatInstructions
	}

	math := ""
	if strings.Contains(subjectFolded, "math") {
		math = mathInstruction
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Génère un exercice de %s pour un niveau %s sur le thème '%s'.\n", req.Subject, req.Level, req.Topic)
	fmt.Fprintf(&b, "Difficulté: %s.\n", DifficultyLabel(req.Difficulty, req.Language))
	fmt.Fprintf(&b, "Type: %s.\n", req.Type)
	b.WriteString(languageInstruction(subjectFolded, req.Language))
	b.WriteString("\n")
	b.WriteString(math)
	b.WriteString("\n")
	b.WriteString("Tu DOIS répondre avec un JSON valide respectant cette structure exacte :\n")
	b.WriteString("{\n")
	b.WriteString("  \"title\": \"Titre de l'exercice\",\n")
	b.WriteString("  \"description\": \"Brève description ou consigne\",\n")
	fmt.Fprintf(&b, "  \"type\": %q,\n", req.Type)
	fmt.Fprintf(&b, "  \"difficulty\": %q,\n", req.Difficulty)
	b.WriteString("  \"content\": { ... voir le format spécifique ... },\n")
	b.WriteString("  \"correct_answers\": [ ... ],\n")
	b.WriteString("  \"explanation\": \"Explication pédagogique\",\n")
	b.WriteString("  \"hints\": [\"Indice 1\", \"Indice 2\"],\n")
	b.WriteString("  \"points\": 10\n")
	b.WriteString("}\n\n")
	b.WriteString("Format spécifique pour 'content' :\n")
	b.WriteString(formatInstructions)
	b.WriteString("\nRéponds UNIQUEMENT avec le JSON, pas de texte superflu.")

	return "Tu es un générateur d'exercices scolaires. Tu réponds uniquement en JSON valide.", b.String()
}
