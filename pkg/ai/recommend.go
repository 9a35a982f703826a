// Package ai calls the recommendation collaborator that suggests habits for
// a goal. The call is fallible and possibly slow; callers decide whether to
// retry or skip.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	defaultEndpoint = "https://api.openai.com/v1/chat/completions"
	model           = "gpt-5"

	systemPrompt = "You are a helpful productivity coach that suggests specific, actionable habits. " +
		"Always respond with valid JSON matching the requested format exactly."
)

// CandidateHabit is one suggested habit from the recommender.
type CandidateHabit struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	DaysOfWeek  []string `json:"daysOfWeek"`
	Rationale   string   `json:"rationale"`
}

// Response is the recommender's answer for one goal.
type Response struct {
	Reasoning string           `json:"reasoning"`
	Habits    []CandidateHabit `json:"habits"`
}

// Recommender produces habit suggestions for a goal.
type Recommender interface {
	Recommend(ctx context.Context, goalTitle, goalDescription string) (*Response, error)
}

// Client talks to the OpenAI chat-completions endpoint.
type Client struct {
	APIKey     string
	Endpoint   string
	HTTPClient *http.Client
}

var _ Recommender = (*Client)(nil)

// New returns a recommender client. The key may be empty; Recommend will
// then fail with a configuration error.
func New(apiKey string) *Client {
	return &Client{
		APIKey:     apiKey,
		Endpoint:   defaultEndpoint,
		HTTPClient: &http.Client{},
	}
}

// Recommend asks for 3-5 habits supporting the goal. The response is
// validated strictly; malformed payloads are an error, never silently
// partial.
func (c *Client) Recommend(ctx context.Context, goalTitle, goalDescription string) (*Response, error) {
	if strings.TrimSpace(c.APIKey) == "" {
		return nil, errors.New("ai: API key is not configured")
	}

	payload := map[string]any{
		"model": model,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": buildPrompt(goalTitle, goalDescription)},
		},
		"max_completion_tokens": 1000,
		"response_format":       map[string]string{"type": "json_object"},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("ai: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("ai: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ai: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apiError(resp)
	}

	var completion struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return nil, fmt.Errorf("ai: decode response: %w", err)
	}
	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return nil, errors.New("ai: no content in response")
	}

	var parsed Response
	if err := json.Unmarshal([]byte(completion.Choices[0].Message.Content), &parsed); err != nil {
		return nil, fmt.Errorf("ai: parse recommendation: %w", err)
	}
	if err := validate(&parsed); err != nil {
		return nil, err
	}
	return &parsed, nil
}

func validate(r *Response) error {
	if strings.TrimSpace(r.Reasoning) == "" {
		return errors.New("ai: response missing reasoning")
	}
	if len(r.Habits) == 0 {
		return errors.New("ai: response contains no habits")
	}
	for i, h := range r.Habits {
		if h.Name == "" || h.Description == "" || len(h.DaysOfWeek) == 0 || h.Rationale == "" {
			return fmt.Errorf("ai: habit %d is missing required fields", i)
		}
	}
	return nil
}

func apiError(resp *http.Response) error {
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if data, err := io.ReadAll(resp.Body); err == nil {
		if json.Unmarshal(data, &payload) == nil && payload.Error.Message != "" {
			return fmt.Errorf("ai: %s", payload.Error.Message)
		}
	}
	return fmt.Errorf("ai: request failed with status %d", resp.StatusCode)
}

func buildPrompt(goalTitle, goalDescription string) string {
	if strings.TrimSpace(goalDescription) == "" {
		goalDescription = "No additional description provided"
	}
	var b strings.Builder
	b.WriteString("You are a personal productivity coach helping someone achieve their goal. ")
	b.WriteString("Based on the goal information below, suggest 3-5 specific, actionable habits that will help them achieve this goal.\n\n")
	fmt.Fprintf(&b, "Goal Title: %q\n", goalTitle)
	fmt.Fprintf(&b, "Goal Description: %q\n\n", goalDescription)
	b.WriteString("For each habit, provide:\n")
	b.WriteString("1. A clear, specific name (e.g., \"30-minute morning run\")\n")
	b.WriteString("2. A brief description of what to do\n")
	b.WriteString("3. Recommended days of the week (as an array of day codes: Mon, Tue, Wed, Thu, Fri, Sat, Sun)\n")
	b.WriteString("4. A rationale explaining WHY this habit helps achieve the goal\n\n")
	b.WriteString("Also provide a brief reasoning (2-3 sentences, max 100 tokens) explaining your overall approach to helping achieve this goal.\n\n")
	b.WriteString("Return your response as JSON in this exact format:\n")
	b.WriteString(`{"reasoning": "...", "habits": [{"name": "...", "description": "...", "daysOfWeek": ["Mon", "Wed", "Fri"], "rationale": "..."}]}`)
	b.WriteString("\n\nGuidelines:\n")
	b.WriteString("- Be specific and actionable\n")
	b.WriteString("- Consider frequency and sustainability\n")
	b.WriteString("- Habits should directly contribute to the goal\n")
	b.WriteString("- Recommend realistic schedules (don't overload every day)\n")
	b.WriteString("- Keep names concise (under 50 characters)\n")
	b.WriteString("- Keep descriptions brief (under 150 characters)\n")
	b.WriteString("- Keep rationales brief (under 100 characters)")
	return b.String()
}
