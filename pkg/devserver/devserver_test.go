package devserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tableflip.dev/mercury/pkg/goal"
	"tableflip.dev/mercury/pkg/habit"
	"tableflip.dev/mercury/pkg/note"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	store := NewStore()
	store.SetNow(func() time.Time { return time.Date(2025, time.June, 5, 12, 0, 0, 0, time.UTC) })
	return NewServer(Config{Addr: ":0"}, store)
}

func request(t *testing.T, s *Server, method, path string, body, out any) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := s.App().Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	if out != nil && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s %s: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

func seedGoalAndHabit(t *testing.T, s *Server) (goal.Goal, habit.Habit) {
	t.Helper()
	var g goal.Goal
	status := request(t, s, http.MethodPost, "/api/goals", map[string]any{
		"title":     "Run a 5k",
		"startDate": "2025-06-01",
		"endDate":   "2025-08-31",
		"userId":    1,
	}, &g)
	if status != http.StatusCreated {
		t.Fatalf("create goal status = %d", status)
	}

	var h habit.Habit
	status = request(t, s, http.MethodPost, "/api/habits", map[string]any{
		"name":        "Morning run",
		"description": "Easy pace",
		"daysOfWeek":  "Mon, Wed, Fri",
		"startDate":   "2025-06-01",
		"endDate":     "2025-08-31",
		"color":       "#FF6B6B",
		"goalId":      g.ID,
		"userId":      1,
	}, &h)
	if status != http.StatusCreated {
		t.Fatalf("create habit status = %d", status)
	}
	return g, h
}

func TestGoalValidationRejected(t *testing.T) {
	s := newTestServer(t)
	status := request(t, s, http.MethodPost, "/api/goals", map[string]any{
		"title":     "   ",
		"startDate": "2025-06-01",
		"endDate":   "2025-08-31",
	}, nil)
	if status != http.StatusBadRequest {
		t.Errorf("blank title status = %d, want 400", status)
	}

	status = request(t, s, http.MethodPost, "/api/goals", map[string]any{
		"title":     "Backwards",
		"startDate": "2025-08-31",
		"endDate":   "2025-06-01",
	}, nil)
	if status != http.StatusBadRequest {
		t.Errorf("backwards dates status = %d, want 400", status)
	}
}

func TestUserUpsertByProviderIdentity(t *testing.T) {
	s := newTestServer(t)
	body := map[string]any{
		"provider": "github", "providerId": "42", "username": "casey", "email": "c@example.com",
	}
	var first, second map[string]any
	request(t, s, http.MethodPost, "/api/users", body, &first)
	body["username"] = "casey2"
	request(t, s, http.MethodPost, "/api/users", body, &second)

	if first["id"] != second["id"] {
		t.Errorf("upsert created a second user: %v vs %v", first["id"], second["id"])
	}
	if second["username"] != "casey2" {
		t.Errorf("upsert did not update username: %v", second["username"])
	}

	var fetched map[string]any
	status := request(t, s, http.MethodGet, "/api/users/provider/github/42", nil, &fetched)
	if status != http.StatusOK || fetched["username"] != "casey2" {
		t.Errorf("provider lookup = %d %v", status, fetched)
	}
	if status := request(t, s, http.MethodGet, "/api/users/provider/github/7", nil, nil); status != http.StatusNotFound {
		t.Errorf("unknown provider id status = %d, want 404", status)
	}
}

func TestWeekRangeQuery(t *testing.T) {
	s := newTestServer(t)
	_, h := seedGoalAndHabit(t, s)

	for _, date := range []string{"2025-05-31", "2025-06-02", "2025-06-04", "2025-06-08"} {
		status := request(t, s, http.MethodPost, "/api/tasks", map[string]any{
			"name": "Morning run - " + date, "date": date, "habitId": h.ID, "userId": 1,
		}, nil)
		if status != http.StatusCreated {
			t.Fatalf("create task status = %d", status)
		}
	}

	var tasks []habit.Task
	path := "/api/tasks/user/1/week?startDate=2025-06-01&endDate=2025-06-07"
	if status := request(t, s, http.MethodGet, path, nil, &tasks); status != http.StatusOK {
		t.Fatalf("week status = %d", status)
	}
	if len(tasks) != 2 {
		t.Fatalf("week returned %d tasks, want 2: %+v", len(tasks), tasks)
	}
	if tasks[0].Date != "2025-06-02" || tasks[1].Date != "2025-06-04" {
		t.Errorf("week not ordered by date: %+v", tasks)
	}
	if tasks[0].HabitName != "Morning run" || tasks[0].Color != "#FF6B6B" {
		t.Errorf("tasks not enriched from habit: %+v", tasks[0])
	}
}

func TestToggleRecalculatesStreak(t *testing.T) {
	s := newTestServer(t)
	_, h := seedGoalAndHabit(t, s)

	var ids []int64
	for _, date := range []string{"2025-06-02", "2025-06-04", "2025-06-06"} {
		var task habit.Task
		request(t, s, http.MethodPost, "/api/tasks", map[string]any{
			"name": "Morning run", "date": date, "habitId": h.ID, "userId": 1,
		}, &task)
		ids = append(ids, task.ID)
	}

	toggle := func(id int64) habit.Task {
		var task habit.Task
		status := request(t, s, http.MethodPatch, fmt.Sprintf("/api/tasks/%d/toggle", id), nil, &task)
		if status != http.StatusOK {
			t.Fatalf("toggle status = %d", status)
		}
		return task
	}
	streak := func() int {
		var got habit.Habit
		request(t, s, http.MethodGet, fmt.Sprintf("/api/habits/%d", h.ID), nil, &got)
		return got.StreakStatus
	}

	// Completing the two most recent tasks gives a streak of two; the
	// earliest stays open so the count stops there.
	toggle(ids[2])
	toggle(ids[1])
	if got := streak(); got != 2 {
		t.Errorf("streak = %d, want 2", got)
	}

	// Untoggling the latest breaks the run immediately.
	if task := toggle(ids[2]); task.Completed {
		t.Error("second toggle should flip back to open")
	}
	if got := streak(); got != 0 {
		t.Errorf("streak after break = %d, want 0", got)
	}
}

func TestNotesNewestFirstAndCascadeDelete(t *testing.T) {
	s := newTestServer(t)
	g, h := seedGoalAndHabit(t, s)

	request(t, s, http.MethodPost, "/api/tasks", map[string]any{
		"name": "Morning run", "date": "2025-06-02", "habitId": h.ID, "userId": 1,
	}, nil)

	for i, content := range []string{"first", "second"} {
		s.store.SetNow(func() time.Time {
			return time.Date(2025, time.June, 5, 12, i, 0, 0, time.UTC)
		})
		if status := request(t, s, http.MethodPost, "/api/notes", map[string]any{
			"content": content, "goalId": g.ID, "userId": 1,
		}, nil); status != http.StatusCreated {
			t.Fatalf("create note status = %d", status)
		}
	}

	var notes []note.Note
	request(t, s, http.MethodGet, fmt.Sprintf("/api/notes/goal/%d", g.ID), nil, &notes)
	if len(notes) != 2 || notes[0].Content != "second" {
		t.Errorf("notes not newest first: %+v", notes)
	}

	if status := request(t, s, http.MethodPost, "/api/notes", map[string]any{
		"content": "  ", "goalId": g.ID,
	}, nil); status != http.StatusBadRequest {
		t.Errorf("blank note status = %d, want 400", status)
	}

	// Deleting the goal removes its habits, tasks, and notes.
	if status := request(t, s, http.MethodDelete, fmt.Sprintf("/api/goals/%d", g.ID), nil, nil); status != http.StatusNoContent {
		t.Fatalf("delete goal status = %d", status)
	}
	if status := request(t, s, http.MethodGet, fmt.Sprintf("/api/habits/%d", h.ID), nil, nil); status != http.StatusNotFound {
		t.Errorf("habit survived goal delete: %d", status)
	}
	var tasks []habit.Task
	request(t, s, http.MethodGet, "/api/tasks/user/1", nil, &tasks)
	if len(tasks) != 0 {
		t.Errorf("tasks survived goal delete: %+v", tasks)
	}
}

func TestStatusListingsAndCounts(t *testing.T) {
	s := newTestServer(t)
	g, h := seedGoalAndHabit(t, s)

	// A second goal that ended before the pinned clock and was never
	// finished shows up as overdue.
	var stale goal.Goal
	request(t, s, http.MethodPost, "/api/goals", map[string]any{
		"title": "Old project", "startDate": "2025-01-01", "endDate": "2025-03-31", "userId": 1,
	}, &stale)
	request(t, s, http.MethodPatch, fmt.Sprintf("/api/goals/%d/status", g.ID),
		map[string]any{"status": "completed"}, nil)

	var completed []goal.Goal
	request(t, s, http.MethodGet, "/api/goals/user/1/completed", nil, &completed)
	if len(completed) != 1 || completed[0].ID != g.ID {
		t.Errorf("completed goals = %+v, want goal %d", completed, g.ID)
	}

	var overdue []goal.Goal
	request(t, s, http.MethodGet, "/api/goals/user/1/overdue", nil, &overdue)
	if len(overdue) != 1 || overdue[0].ID != stale.ID {
		t.Errorf("overdue goals = %+v, want goal %d", overdue, stale.ID)
	}

	var done, open habit.Task
	request(t, s, http.MethodPost, "/api/tasks", map[string]any{
		"name": "Morning run", "date": "2025-06-02", "habitId": h.ID, "userId": 1,
	}, &done)
	request(t, s, http.MethodPost, "/api/tasks", map[string]any{
		"name": "Morning run", "date": "2025-06-04", "habitId": h.ID, "userId": 1,
	}, &open)
	request(t, s, http.MethodPatch, fmt.Sprintf("/api/tasks/%d/toggle", done.ID), nil, nil)

	var completedTasks, pendingTasks []habit.Task
	request(t, s, http.MethodGet, "/api/tasks/user/1/completed", nil, &completedTasks)
	request(t, s, http.MethodGet, "/api/tasks/user/1/pending", nil, &pendingTasks)
	if len(completedTasks) != 1 || completedTasks[0].ID != done.ID {
		t.Errorf("completed tasks = %+v", completedTasks)
	}
	if len(pendingTasks) != 1 || pendingTasks[0].ID != open.ID {
		t.Errorf("pending tasks = %+v", pendingTasks)
	}

	var habitCount, noteCount map[string]int64
	request(t, s, http.MethodGet, "/api/habits/user/1/count", nil, &habitCount)
	if habitCount["count"] != 1 {
		t.Errorf("habit count = %d, want 1", habitCount["count"])
	}
	request(t, s, http.MethodPost, "/api/notes", map[string]any{
		"content": "halfway there", "goalId": g.ID, "userId": 1,
	}, nil)
	request(t, s, http.MethodGet, fmt.Sprintf("/api/notes/goal/%d/count", g.ID), nil, &noteCount)
	if noteCount["count"] != 1 {
		t.Errorf("note count = %d, want 1", noteCount["count"])
	}
}

func TestGoalStatusPatchAndActiveFilter(t *testing.T) {
	s := newTestServer(t)
	g, _ := seedGoalAndHabit(t, s)

	var updated goal.Goal
	status := request(t, s, http.MethodPatch, fmt.Sprintf("/api/goals/%d/status", g.ID),
		map[string]any{"status": "completed"}, &updated)
	if status != http.StatusOK || updated.Status != goal.StatusCompleted {
		t.Fatalf("status patch = %d %v", status, updated.Status)
	}

	var active []goal.Goal
	request(t, s, http.MethodGet, "/api/goals/user/1/active", nil, &active)
	if len(active) != 0 {
		t.Errorf("completed goal listed as active: %+v", active)
	}

	var all []goal.Goal
	request(t, s, http.MethodGet, "/api/goals/user/1", nil, &all)
	if len(all) != 1 {
		t.Errorf("all goals = %d, want 1", len(all))
	}

	if status := request(t, s, http.MethodPatch, fmt.Sprintf("/api/goals/%d/status", g.ID),
		map[string]any{"status": "bogus"}, nil); status != http.StatusBadRequest {
		t.Errorf("bogus status = %d, want 400", status)
	}
}
