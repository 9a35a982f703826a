package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDoDecodesBackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "title is required"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.CreateGoal(context.Background(), CreateGoalRequest{})
	apiErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T: %v", err, err)
	}
	if apiErr.Status != http.StatusBadRequest || apiErr.Message != "title is required" {
		t.Fatalf("unexpected error: %+v", apiErr)
	}
}

func TestSingleResourceNotFoundIsNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := New(srv.URL)
	g, err := c.GoalByID(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g != nil {
		t.Fatalf("expected nil goal, got %+v", g)
	}
	u, err := c.UserByProvider(context.Background(), "github", "nobody")
	if err != nil || u != nil {
		t.Fatalf("expected (nil, nil), got (%v, %v)", u, err)
	}
}

func TestTasksByDateRangeQuery(t *testing.T) {
	var gotPath, gotStart, gotEnd string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotStart = r.URL.Query().Get("startDate")
		gotEnd = r.URL.Query().Get("endDate")
		_ = json.NewEncoder(w).Encode([]map[string]any{{"id": 1, "name": "Run - Monday", "date": "2025-06-02"}})
	}))
	defer srv.Close()

	c := New(srv.URL)
	tasks, err := c.TasksByDateRange(context.Background(), 7, "2025-06-01", "2025-06-07")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/tasks/user/7/week" {
		t.Fatalf("unexpected path: %s", gotPath)
	}
	if gotStart != "2025-06-01" || gotEnd != "2025-06-07" {
		t.Fatalf("unexpected range: %s..%s", gotStart, gotEnd)
	}
	if len(tasks) != 1 || tasks[0].Name != "Run - Monday" {
		t.Fatalf("unexpected tasks: %+v", tasks)
	}
}

func TestCountEndpointsDecodePayload(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode(map[string]int64{"count": 4})
	}))
	defer srv.Close()

	c := New(srv.URL)
	n, err := c.CountHabitsByUser(context.Background(), 7)
	if err != nil || n != 4 {
		t.Fatalf("habit count = (%d, %v), want 4", n, err)
	}
	if gotPath != "/habits/user/7/count" {
		t.Fatalf("unexpected path: %s", gotPath)
	}
	n, err = c.CountNotesByGoal(context.Background(), 3)
	if err != nil || n != 4 {
		t.Fatalf("note count = (%d, %v), want 4", n, err)
	}
	if gotPath != "/notes/goal/3/count" {
		t.Fatalf("unexpected path: %s", gotPath)
	}
}

func TestToggleTaskUsesPatch(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode(map[string]any{"id": 9, "completed": true})
	}))
	defer srv.Close()

	c := New(srv.URL)
	task, err := c.ToggleTask(context.Background(), 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotMethod != http.MethodPatch || gotPath != "/tasks/9/toggle" {
		t.Fatalf("unexpected request: %s %s", gotMethod, gotPath)
	}
	if !task.Completed {
		t.Fatal("expected toggled task to be completed")
	}
}
