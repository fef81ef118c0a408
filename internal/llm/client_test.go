package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newCompletionServer(t *testing.T, content string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Fatalf("unexpected authorization header: %s", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []interface{}{
				map[string]interface{}{
					"message": map[string]interface{}{
						"role":    "assistant",
						"content": content,
					},
				},
			},
		})
	}))
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	if _, err := NewClient(Config{}); err == nil {
		t.Fatalf("expected config error")
	}
}

func TestCompleteJSON(t *testing.T) {
	server := newCompletionServer(t, `{"subject":"Hi","body":"Hello"}`, http.StatusOK)
	defer server.Close()

	client, err := NewClient(Config{APIKey: "sk-test", APIBaseURL: server.URL})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	result, err := client.CompleteJSON(context.Background(), "system", "user")
	if err != nil {
		t.Fatalf("complete json failed: %v", err)
	}
	if result["subject"] != "Hi" {
		t.Fatalf("unexpected subject: %v", result["subject"])
	}
	if result["body"] != "Hello" {
		t.Fatalf("unexpected body: %v", result["body"])
	}
}

func TestCompleteJSONInvalidContent(t *testing.T) {
	server := newCompletionServer(t, "not-json", http.StatusOK)
	defer server.Close()

	client, err := NewClient(Config{APIKey: "sk-test", APIBaseURL: server.URL})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	if _, err := client.CompleteJSON(context.Background(), "system", "user"); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestCompleteTextUpstreamError(t *testing.T) {
	server := newCompletionServer(t, "irrelevant", http.StatusInternalServerError)
	defer server.Close()

	client, err := NewClient(Config{APIKey: "sk-test", APIBaseURL: server.URL})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	if _, err := client.CompleteText(context.Background(), "system", "user"); err == nil {
		t.Fatalf("expected upstream error")
	}
}

func TestCompleteText(t *testing.T) {
	server := newCompletionServer(t, "plain answer", http.StatusOK)
	defer server.Close()

	client, err := NewClient(Config{APIKey: "sk-test", APIBaseURL: server.URL})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	text, err := client.CompleteText(context.Background(), "system", "user")
	if err != nil {
		t.Fatalf("complete text failed: %v", err)
	}
	if text != "plain answer" {
		t.Fatalf("unexpected text: %s", text)
	}
}
