package teaui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/muesli/reflow/ansi"

	"tableflip.dev/mercury/pkg/api"
	"tableflip.dev/mercury/pkg/app"
	"tableflip.dev/mercury/pkg/goal"
	"tableflip.dev/mercury/pkg/habit"
	"tableflip.dev/mercury/pkg/note"
	"tableflip.dev/mercury/pkg/session"
)

func stripANSI(s string) string {
	var b strings.Builder
	ansiSeq := false
	for _, r := range s {
		if r == ansi.Marker {
			ansiSeq = true
			continue
		}
		if ansiSeq {
			if ansi.IsTerminator(r) {
				ansiSeq = false
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

type fakeBackend struct {
	mu sync.Mutex

	tasks     []habit.Task
	toggleErr error

	goalCalls  int
	habitCalls int
}

func (f *fakeBackend) TasksByDateRange(ctx context.Context, userID int64, start, end string) ([]habit.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []habit.Task
	for _, t := range f.tasks {
		if t.Date >= start && t.Date <= end {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeBackend) ToggleTask(ctx context.Context, id int64) (*habit.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.toggleErr != nil {
		return nil, f.toggleErr
	}
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks[i].Completed = !f.tasks[i].Completed
			t := f.tasks[i]
			return &t, nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeBackend) HabitsByUser(ctx context.Context, userID int64) ([]habit.Habit, error) {
	return nil, nil
}

func (f *fakeBackend) GoalsByUser(ctx context.Context, userID int64) ([]goal.Goal, error) {
	return nil, nil
}

func (f *fakeBackend) ActiveGoalsByUser(ctx context.Context, userID int64) ([]goal.Goal, error) {
	return nil, nil
}

func (f *fakeBackend) UpdateGoal(ctx context.Context, id int64, req api.UpdateGoalRequest) (*goal.Goal, error) {
	return nil, nil
}

func (f *fakeBackend) UpdateGoalStatus(ctx context.Context, id int64, status goal.Status) (*goal.Goal, error) {
	return nil, nil
}

func (f *fakeBackend) DeleteGoal(ctx context.Context, id int64) error  { return nil }
func (f *fakeBackend) DeleteHabit(ctx context.Context, id int64) error { return nil }

func (f *fakeBackend) CreateNote(ctx context.Context, req api.CreateNoteRequest) (*note.Note, error) {
	return nil, nil
}

func (f *fakeBackend) NotesByGoal(ctx context.Context, goalID int64) ([]note.Note, error) {
	return nil, nil
}

func (f *fakeBackend) UpdateNote(ctx context.Context, id int64, content string) (*note.Note, error) {
	return nil, nil
}

func (f *fakeBackend) DeleteNote(ctx context.Context, id int64) error { return nil }

func (f *fakeBackend) CreateGoal(ctx context.Context, req api.CreateGoalRequest) (*goal.Goal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.goalCalls++
	return &goal.Goal{ID: 7, Title: req.Title, StartDate: req.StartDate, EndDate: req.EndDate}, nil
}

func (f *fakeBackend) CreateHabit(ctx context.Context, req api.CreateHabitRequest) (*habit.Habit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.habitCalls++
	return &habit.Habit{ID: int64(f.habitCalls), Name: req.Name}, nil
}

func (f *fakeBackend) CreateTask(ctx context.Context, req api.CreateTaskRequest) (*habit.Task, error) {
	return &habit.Task{ID: 1, Name: req.Name, Date: req.Date}, nil
}

func newTestModel(backend *fakeBackend) *Model {
	svc := &app.Service{Backend: backend, Creator: backend, UserID: 3}
	m := New(svc, session.Session{State: session.Authenticated, User: &api.User{ID: 3, Username: "casey"}})
	// Thursday inside the week starting Sunday 2025-06-01.
	m.SetNow(func() time.Time { return time.Date(2025, time.June, 5, 9, 0, 0, 0, time.UTC) })
	m.termWidth = 98
	m.termHeight = 28
	m.grid.SetSize(98, 25)
	return m
}

func deliver(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg := cmd()
	if msg == nil {
		return
	}
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			deliver(t, m, c)
		}
		return
	}
	m.Update(msg)
}

func TestViewRendersWeekAndFooter(t *testing.T) {
	backend := &fakeBackend{tasks: []habit.Task{
		{ID: 1, Name: "Morning run", Date: "2025-06-02", HabitID: 4},
		{ID: 2, Name: "Vocab", Date: "2025-06-04", HabitID: 5, Completed: true},
	}}
	m := newTestModel(backend)
	deliver(t, m, m.loadWeek())

	view := stripANSI(m.View())
	for _, want := range []string{"Jun 1 – Jun 7, 2025", "○ Morning run", "✓ Vocab", "space toggle", "casey"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q\n%s", want, view)
		}
	}
}

func TestStaleWeekLoadDropped(t *testing.T) {
	backend := &fakeBackend{tasks: []habit.Task{
		{ID: 1, Name: "Old week task", Date: "2025-06-02"},
	}}
	m := newTestModel(backend)

	stale := m.loadWeek()
	m.Update(tea.KeyPressMsg{Text: "]", Code: ']'})

	// The fetch for the week the user already left must not land.
	m.Update(stale())
	if view := stripANSI(m.View()); strings.Contains(view, "Old week task") {
		t.Fatalf("stale week fetch applied\n%s", view)
	}
}

func TestToggleOptimisticFlipAndRollback(t *testing.T) {
	backend := &fakeBackend{tasks: []habit.Task{
		{ID: 1, Name: "Morning run", Date: "2025-06-02"},
	}}
	m := newTestModel(backend)
	deliver(t, m, m.loadWeek())

	// Move onto Monday's task.
	m.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	backend.toggleErr = errors.New("backend unreachable")

	_, cmd := m.Update(tea.KeyPressMsg{Text: " ", Code: tea.KeySpace})
	if view := stripANSI(m.View()); !strings.Contains(view, "✓ Morning run") {
		t.Fatalf("toggle did not flip optimistically\n%s", view)
	}

	deliver(t, m, cmd)
	view := stripANSI(m.View())
	if !strings.Contains(view, "○ Morning run") {
		t.Errorf("failed toggle did not roll back\n%s", view)
	}
	if !strings.Contains(view, "ERR: toggle") {
		t.Errorf("rollback should surface the error\n%s", view)
	}
}

func TestToggleAppliesServerTask(t *testing.T) {
	backend := &fakeBackend{tasks: []habit.Task{
		{ID: 1, Name: "Morning run", Date: "2025-06-02"},
	}}
	m := newTestModel(backend)
	deliver(t, m, m.loadWeek())

	m.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	_, cmd := m.Update(tea.KeyPressMsg{Text: " ", Code: tea.KeySpace})
	deliver(t, m, cmd)

	if view := stripANSI(m.View()); !strings.Contains(view, "✓ Morning run") {
		t.Errorf("confirmed toggle lost\n%s", view)
	}
}

func TestWizardGuardBlocksEmptyTitle(t *testing.T) {
	m := newTestModel(&fakeBackend{})
	m.Update(tea.KeyPressMsg{Text: "n", Code: 'n'})

	view := stripANSI(m.View())
	if !strings.Contains(view, "New Goal · Title") {
		t.Fatalf("wizard did not open\n%s", view)
	}

	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if view := stripANSI(m.View()); !strings.Contains(view, "Title is required") {
		t.Errorf("empty title advanced\n%s", view)
	}
}

func TestWizardFullFlowWithoutAI(t *testing.T) {
	backend := &fakeBackend{}
	m := newTestModel(backend)
	m.Update(tea.KeyPressMsg{Text: "n", Code: 'n'})

	m.input.SetValue("Run a 5k")
	enter := tea.KeyPressMsg{Code: tea.KeyEnter}
	m.Update(enter) // Title → Description
	m.Update(enter) // Description → Emoji
	m.Update(enter) // Emoji → Image
	m.Update(enter) // Image → Dates
	m.Update(enter) // Dates (pre-filled) → AI review, skipped without a key

	view := stripANSI(m.View())
	if !strings.Contains(view, "No habit suggestions.") {
		t.Fatalf("AI step without a recommender should settle skipped\n%s", view)
	}

	m.Update(enter) // AI review → Review
	if view := stripANSI(m.View()); !strings.Contains(view, "Run a 5k") {
		t.Fatalf("review step missing title\n%s", view)
	}

	_, cmd := m.Update(enter) // submit
	deliver(t, m, cmd)

	if backend.goalCalls != 1 {
		t.Errorf("goalCalls = %d, want 1", backend.goalCalls)
	}
	if m.mode != modeNormal {
		t.Error("wizard did not close after submit")
	}
	if !strings.Contains(stripANSI(m.View()), `Created goal "Run a 5k"`) {
		t.Errorf("missing created status\n%s", stripANSI(m.View()))
	}
}

func TestWizardEscCancels(t *testing.T) {
	m := newTestModel(&fakeBackend{})
	m.Update(tea.KeyPressMsg{Text: "n", Code: 'n'})
	m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})

	if m.mode != modeNormal {
		t.Error("esc did not close the wizard")
	}
	if m.wiz != nil {
		t.Error("wizard state should be discarded on cancel")
	}
}
