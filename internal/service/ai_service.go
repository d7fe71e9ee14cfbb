package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Abdoul1995/TUTEUR-INTELLIGENT-2026/internal/config"
	"github.com/Abdoul1995/TUTEUR-INTELLIGENT-2026/internal/util"
)

// AIService talks to an OpenAI-compatible chat completion endpoint (Groq in
// production). It holds no database handle: callers own persistence, and no
// transaction is ever open across a completion call.
type AIService struct {
	config config.AIConfig
	client *http.Client
}

func NewAIService(cfg config.AIConfig) *AIService {
	return &AIService{
		config: cfg,
		client: &http.Client{Timeout: cfg.RequestTimeout},
	}
}

func (s *AIService) IsConfigured() bool {
	return s.config.APIKey != ""
}

func (s *AIService) Model() string {
	return s.config.Model
}

// Reconfigure swaps the AI settings on config hot-reload.
func (s *AIService) Reconfigure(cfg config.AIConfig) {
	s.config = cfg
	s.client = &http.Client{Timeout: cfg.RequestTimeout}
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model          string          `json:"model"`
	Messages       []AIChatMessage `json:"messages"`
	Temperature    float64         `json:"temperature,omitempty"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

const tutorSystemPrompt = "Tu es un tuteur intelligent pour des élèves de primaire et collège. " +
	"Tu es patient, encourageant et pédagogique. " +
	"Tes réponses doivent être adaptées au niveau de l'élève. " +
	"N'hésite pas à utiliser des émojis pour être plus convivial."

// Chat answers a student conversation with the tutor persona. The caller's
// history is passed through as-is; a system message is prepended when absent.
func (s *AIService) Chat(ctx context.Context, messages []AIChatMessage) (string, error) {
	if !s.IsConfigured() {
		return "", util.ErrAINotConfigured
	}

	if len(messages) == 0 || messages[0].Role != "system" {
		messages = append([]AIChatMessage{{Role: "system", Content: tutorSystemPrompt}}, messages...)
	}

	resp, err := s.complete(ctx, chatCompletionRequest{
		Model:       s.config.Model,
		Messages:    messages,
		Temperature: 0.7,
		MaxTokens:   1024,
	})
	if err != nil {
		return "", err
	}
	return resp, nil
}

// ExercisePayload is the structured output expected from the model for a
// generated exercise. Content and CorrectAnswers stay raw: their shape is
// validated by the ingestion pipeline per exercise type.
type ExercisePayload struct {
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Type           string          `json:"type"`
	Difficulty     string          `json:"difficulty"`
	Content        json.RawMessage `json:"content"`
	CorrectAnswers json.RawMessage `json:"correct_answers"`
	Explanation    string          `json:"explanation"`
	Hints          []string        `json:"hints"`
	Points         json.Number     `json:"points"`
}

// GenerateExercise builds the generation prompt and parses the model's JSON
// reply. A missing credential fails before any network call; a malformed
// reply is surfaced, never substituted with defaults.
func (s *AIService) GenerateExercise(ctx context.Context, req GeneratePromptRequest) (*ExercisePayload, error) {
	if !s.IsConfigured() {
		return nil, util.ErrAINotConfigured
	}

	system, user := BuildExercisePrompt(req)

	raw, err := s.complete(ctx, chatCompletionRequest{
		Model: s.config.Model,
		Messages: []AIChatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature:    0.7,
		ResponseFormat: &responseFormat{Type: "json_object"},
	})
	if err != nil {
		return nil, err
	}

	var payload ExercisePayload
	if err := json.Unmarshal([]byte(cleanJSONContent(raw)), &payload); err != nil {
		return nil, fmt.Errorf("AI returned invalid JSON: %w", err)
	}
	return &payload, nil
}

// complete performs the completion call. Transport failures are retried once;
// HTTP errors and malformed bodies are not, since resending the same request
// will not fix them.
func (s *AIService) complete(ctx context.Context, reqBody chatCompletionRequest) (string, error) {
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost,
			s.config.BaseURL+"/chat/completions", bytes.NewReader(jsonData))
		if err != nil {
			return "", err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

		resp, err := s.client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			lastErr = err
			continue
		}
		return parseCompletion(resp)
	}
	return "", fmt.Errorf("AI request failed: %w", lastErr)
}

func parseCompletion(resp *http.Response) (string, error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading AI response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result chatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("parsing AI response: %w", err)
	}
	if result.Error != nil {
		return "", fmt.Errorf("AI API error: %s", result.Error.Message)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("AI returned no choices")
	}
	return result.Choices[0].Message.Content, nil
}

// cleanJSONContent strips the markdown code fences some models wrap around
// JSON despite the json_object response format.
func cleanJSONContent(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
	}
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
	}
	if strings.HasSuffix(content, "```") {
		content = strings.TrimSuffix(content, "```")
	}
	return strings.TrimSpace(content)
}
