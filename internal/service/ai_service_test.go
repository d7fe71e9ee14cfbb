package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Abdoul1995/TUTEUR-INTELLIGENT-2026/internal/config"
	"github.com/Abdoul1995/TUTEUR-INTELLIGENT-2026/internal/util"
)

func newTestAIService(baseURL string) *AIService {
	return NewAIService(config.AIConfig{
		BaseURL:        baseURL,
		APIKey:         "test-key",
		Model:          "llama-3.3-70b-versatile",
		RequestTimeout: 5 * time.Second,
	})
}

func completionBody(content string) string {
	b, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"role": "assistant", "content": content}},
		},
	})
	return string(b)
}

func TestChatNotConfigured(t *testing.T) {
	svc := NewAIService(config.AIConfig{})
	if _, err := svc.Chat(context.Background(), nil); !errors.Is(err, util.ErrAINotConfigured) {
		t.Errorf("want ErrAINotConfigured, got %v", err)
	}
}

func TestChatPrependsSystemPrompt(t *testing.T) {
	var got chatCompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatal(err)
		}
		w.Write([]byte(completionBody("Bonjour ! 😊")))
	}))
	defer server.Close()

	svc := newTestAIService(server.URL)
	reply, err := svc.Chat(context.Background(), []AIChatMessage{
		{Role: "user", Content: "Bonjour"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if reply != "Bonjour ! 😊" {
		t.Errorf("reply = %q", reply)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != "system" {
		t.Fatalf("expected a prepended system message, got %+v", got.Messages)
	}
	if got.Messages[0].Content != tutorSystemPrompt {
		t.Error("system message should carry the tutor persona")
	}
}

func TestGenerateExerciseStripsCodeFences(t *testing.T) {
	payload := `{"title":"Test","type":"qcm","content":{"questions":[]},"correct_answers":[0]}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		if req.ResponseFormat == nil || req.ResponseFormat.Type != "json_object" {
			t.Error("generation must request a json_object response")
		}
		w.Write([]byte(completionBody("```json\n" + payload + "\n```")))
	}))
	defer server.Close()

	svc := newTestAIService(server.URL)
	got, err := svc.GenerateExercise(context.Background(), GeneratePromptRequest{
		Subject: "Mathématiques", Level: "6ème", Topic: "fractions",
		Difficulty: "easy", Type: "qcm", Language: "fr",
	})
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "Test" {
		t.Errorf("title = %q", got.Title)
	}
}

func TestGenerateExerciseInvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(completionBody("Voici votre exercice : pas du JSON")))
	}))
	defer server.Close()

	svc := newTestAIService(server.URL)
	if _, err := svc.GenerateExercise(context.Background(), GeneratePromptRequest{Type: "qcm"}); err == nil {
		t.Error("non-JSON model reply must be an error")
	}
}

func TestCompleteRetriesTransportErrorOnce(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			// Kill the connection to simulate a transport failure.
			hj, ok := w.(http.Hijacker)
			if !ok {
				t.Fatal("recorder does not support hijacking")
			}
			conn, _, _ := hj.Hijack()
			conn.Close()
			return
		}
		w.Write([]byte(completionBody("ok")))
	}))
	defer server.Close()

	svc := newTestAIService(server.URL)
	reply, err := svc.Chat(context.Background(), []AIChatMessage{{Role: "user", Content: "hi"}})
	if err != nil {
		t.Fatalf("second attempt should have succeeded: %v", err)
	}
	if reply != "ok" || calls != 2 {
		t.Errorf("reply=%q calls=%d, want ok after exactly one retry", reply, calls)
	}
}

func TestCompleteDoesNotRetryHTTPErrors(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, `{"error":{"message":"rate limited"}}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	svc := newTestAIService(server.URL)
	if _, err := svc.Chat(context.Background(), []AIChatMessage{{Role: "user", Content: "hi"}}); err == nil {
		t.Fatal("HTTP error status must surface as an error")
	}
	if calls != 1 {
		t.Errorf("calls = %d, HTTP-level failures must not be retried", calls)
	}
}

func TestChatHonorsContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The request context only observes client disconnects once the
		// body has been consumed.
		io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	svc := newTestAIService(server.URL)
	if _, err := svc.Chat(ctx, []AIChatMessage{{Role: "user", Content: "hi"}}); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("want context.DeadlineExceeded, got %v", err)
	}
}
