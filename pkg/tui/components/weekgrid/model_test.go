package weekgrid

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/muesli/reflow/ansi"

	"tableflip.dev/mercury/pkg/habit"
	"tableflip.dev/mercury/pkg/tui/theme"
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

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newTestGrid() *Model {
	m := NewModel(theme.Default().Week)
	// Thursday inside the week starting Sunday 2025-06-01.
	m.SetNow(fixedClock(time.Date(2025, time.June, 5, 9, 0, 0, 0, time.UTC)))
	m.SetSize(98, 20)
	return m
}

func weekTasks() []habit.Task {
	return []habit.Task{
		{ID: 1, Name: "Morning run", Date: "2025-06-02", Completed: true},
		{ID: 2, Name: "Vocab", Date: "2025-06-02"},
		{ID: 3, Name: "Stretch", Date: "2025-06-04"},
	}
}

func TestViewRendersDayColumnsAndMarks(t *testing.T) {
	m := newTestGrid()
	m.SetTasks(weekTasks())

	view := stripANSI(m.View())
	for _, want := range []string{"Sun 1", "Mon 2", "Wed 4", "Sat 7", "Thu 5 •"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing day header %q\n%s", want, view)
		}
	}
	if !strings.Contains(view, "✓ Morning run") {
		t.Errorf("completed task not marked done\n%s", view)
	}
	if !strings.Contains(view, "○ Vocab") {
		t.Errorf("pending task not marked open\n%s", view)
	}
	if !strings.Contains(view, "none") {
		t.Errorf("empty days should render a placeholder\n%s", view)
	}
}

func TestCursorMovementAndSelection(t *testing.T) {
	m := newTestGrid()
	m.SetTasks(weekTasks())

	// Day 0 (Sunday) is empty.
	if got := m.SelectedTask(); got != nil {
		t.Fatalf("selection on empty day = %+v, want nil", got)
	}

	m.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	if got := m.SelectedTask(); got == nil || got.Name != "Morning run" {
		t.Fatalf("after right, selected = %+v, want Morning run", got)
	}

	m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if got := m.SelectedTask(); got == nil || got.Name != "Vocab" {
		t.Fatalf("after down, selected = %+v, want Vocab", got)
	}

	// Row clamps at the end of the day.
	m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if got := m.SelectedTask(); got == nil || got.Name != "Vocab" {
		t.Fatalf("down past the end moved selection: %+v", got)
	}

	// Moving onto Wednesday clamps the row onto its single task.
	m.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	m.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	if got := m.SelectedTask(); got == nil || got.Name != "Stretch" {
		t.Fatalf("after moving to Wednesday, selected = %+v, want Stretch", got)
	}
}

func TestApplyToggleUpdatesStoredTask(t *testing.T) {
	m := newTestGrid()
	m.SetTasks(weekTasks())

	m.ApplyToggle(habit.Task{ID: 3, Name: "Stretch", Date: "2025-06-04", Completed: true})

	view := stripANSI(m.View())
	if !strings.Contains(view, "✓ Stretch") {
		t.Errorf("toggle not applied\n%s", view)
	}
}

func TestOfflineLabel(t *testing.T) {
	m := newTestGrid()
	m.SetTasks(nil)
	m.SetOffline(time.Date(2025, time.June, 4, 18, 30, 0, 0, time.UTC))

	view := stripANSI(m.View())
	if !strings.Contains(view, "offline, snapshot from Jun 4 18:30") {
		t.Errorf("offline label missing\n%s", view)
	}

	m.ClearOffline()
	if strings.Contains(stripANSI(m.View()), "offline") {
		t.Error("offline label should clear")
	}
}

func TestSetWindowResetsCursor(t *testing.T) {
	m := newTestGrid()
	m.SetTasks(weekTasks())
	m.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	m.Update(tea.KeyPressMsg{Code: tea.KeyDown})

	m.SetWindow(m.Window().Next())
	m.SetTasks(nil)
	if got := m.SelectedTask(); got != nil {
		t.Errorf("cursor survived window change: %+v", got)
	}
	view := stripANSI(m.View())
	if !strings.Contains(view, "Sun 8") {
		t.Errorf("next week header missing\n%s", view)
	}
}
