package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func completionBody(content string) map[string]any {
	return map[string]any{
		"choices": []map[string]any{
			{"message": map[string]string{"content": content}},
		},
	}
}

func TestRecommendParsesValidResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header: %s", got)
		}
		content := `{"reasoning":"Consistency over intensity.","habits":[{"name":"Daily review","description":"Ten minutes of flashcards","daysOfWeek":["Mon","Wed","Fri"],"rationale":"Spaced repetition"}]}`
		_ = json.NewEncoder(w).Encode(completionBody(content))
	}))
	defer srv.Close()

	c := New("test-key")
	c.Endpoint = srv.URL
	resp, err := c.Recommend(context.Background(), "Learn Spanish", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Reasoning != "Consistency over intensity." {
		t.Fatalf("unexpected reasoning: %s", resp.Reasoning)
	}
	if len(resp.Habits) != 1 || resp.Habits[0].Name != "Daily review" {
		t.Fatalf("unexpected habits: %+v", resp.Habits)
	}
}

func TestRecommendRejectsMalformedHabit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		content := `{"reasoning":"ok","habits":[{"name":"No days","description":"x","daysOfWeek":[],"rationale":"y"}]}`
		_ = json.NewEncoder(w).Encode(completionBody(content))
	}))
	defer srv.Close()

	c := New("test-key")
	c.Endpoint = srv.URL
	if _, err := c.Recommend(context.Background(), "Goal", "Desc"); err == nil {
		t.Fatal("expected validation error for habit without days")
	}
}

func TestRecommendSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(map[string]any{"error": map[string]string{"message": "rate limited"}})
	}))
	defer srv.Close()

	c := New("test-key")
	c.Endpoint = srv.URL
	_, err := c.Recommend(context.Background(), "Goal", "")
	if err == nil || !strings.Contains(err.Error(), "rate limited") {
		t.Fatalf("expected rate limited error, got %v", err)
	}
}

func TestRecommendRequiresKey(t *testing.T) {
	c := New("")
	if _, err := c.Recommend(context.Background(), "Goal", ""); err == nil {
		t.Fatal("expected configuration error without API key")
	}
}
