// Package weekgrid renders one week of tasks as seven day columns with a
// movable cursor.
package weekgrid

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/mercury/pkg/habit"
	"tableflip.dev/mercury/pkg/timeutil"
	"tableflip.dev/mercury/pkg/tracker"
	"tableflip.dev/mercury/pkg/tui/theme"
	"tableflip.dev/mercury/pkg/tui/ui"
)

var _ ui.Component = (*Model)(nil)

const minColumnWidth = 12

// Model holds the grid state: the window, its tasks bucketed by date, and a
// cursor addressed by day column and row within the day.
type Model struct {
	window timeutil.Window
	ctrl   tracker.Controller

	day int
	row int

	width  int
	height int

	offline   bool
	fetchedAt time.Time

	now   func() time.Time
	theme theme.WeekTheme
}

// NewModel constructs an empty grid anchored on the current week.
func NewModel(th theme.WeekTheme) *Model {
	m := &Model{
		theme: th,
		now:   time.Now,
	}
	m.ctrl.SetTasks(nil)
	m.window = timeutil.WindowFor(m.now())
	return m
}

// SetNow overrides the clock, mostly for tests.
func (m *Model) SetNow(now func() time.Time) {
	if now != nil {
		m.now = now
		m.window = timeutil.WindowFor(now())
	}
}

// Window returns the rendered window.
func (m *Model) Window() timeutil.Window {
	return m.window
}

// SetWindow moves the grid to another week and resets the cursor.
func (m *Model) SetWindow(w timeutil.Window) {
	m.window = w
	m.day = 0
	m.row = 0
}

// SetTasks replaces the grid's tasks, re-bucketing by date. The cursor is
// clamped onto the nearest populated position.
func (m *Model) SetTasks(tasks []habit.Task) {
	m.ctrl.SetTasks(tasks)
	m.clamp()
}

// SetOffline labels the grid as showing a snapshot taken at the given time.
func (m *Model) SetOffline(fetchedAt time.Time) {
	m.offline = true
	m.fetchedAt = fetchedAt
}

// ClearOffline removes the snapshot label.
func (m *Model) ClearOffline() {
	m.offline = false
}

// SetSize updates the rendered dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SelectedTask returns the task under the cursor, or nil on an empty day.
func (m *Model) SelectedTask() *habit.Task {
	tasks := m.dayTasks(m.day)
	if m.row < 0 || m.row >= len(tasks) {
		return nil
	}
	t := tasks[m.row]
	return &t
}

// ApplyToggle replaces the stored copy of a task, e.g. after a completion
// flip round-trips.
func (m *Model) ApplyToggle(updated habit.Task) {
	m.ctrl.Apply(updated)
}

// Init implements ui.Component.
func (m *Model) Init() tea.Cmd { return nil }

// Update moves the cursor on arrow and vi keys.
func (m *Model) Update(msg tea.Msg) (ui.Component, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "left", "h":
		m.moveDay(-1)
	case "right", "l":
		m.moveDay(1)
	case "up", "k":
		m.moveRow(-1)
	case "down", "j":
		m.moveRow(1)
	}
	return m, nil
}

func (m *Model) moveDay(delta int) {
	m.day += delta
	if m.day < 0 {
		m.day = 0
	}
	if m.day > 6 {
		m.day = 6
	}
	m.clamp()
}

func (m *Model) moveRow(delta int) {
	m.row += delta
	m.clamp()
}

func (m *Model) clamp() {
	tasks := m.dayTasks(m.day)
	if len(tasks) == 0 {
		m.row = 0
		return
	}
	if m.row < 0 {
		m.row = 0
	}
	if m.row >= len(tasks) {
		m.row = len(tasks) - 1
	}
}

func (m *Model) dayKeys() []string {
	days := m.window.Days()
	keys := make([]string, len(days))
	for i, d := range days {
		keys[i] = timeutil.DateKey(d)
	}
	return keys
}

func (m *Model) dayTasks(day int) []habit.Task {
	keys := m.dayKeys()
	if day < 0 || day >= len(keys) {
		return nil
	}
	return m.ctrl.Index().On(keys[day])
}

// View renders the seven day columns side by side.
func (m *Model) View() string {
	width := m.width
	if width <= 0 {
		width = 7 * minColumnWidth
	}
	col := width / 7
	if col < minColumnWidth {
		col = minColumnWidth
	}

	todayKey := timeutil.DateKey(m.now())
	days := m.window.Days()

	columns := make([]string, 0, len(days))
	for i, day := range days {
		columns = append(columns, m.renderDay(i, day, todayKey, col))
	}

	grid := lipgloss.JoinHorizontal(lipgloss.Top, columns...)
	if m.offline {
		label := m.theme.Offline.Render(
			fmt.Sprintf("offline, snapshot from %s", m.fetchedAt.Format("Jan 2 15:04")))
		return grid + "\n" + label
	}
	return grid
}

func (m *Model) renderDay(i int, day time.Time, todayKey string, col int) string {
	key := timeutil.DateKey(day)
	header := fmt.Sprintf("%s %d", day.Weekday().String()[:3], day.Day())
	style := m.theme.DayHeader
	if key == todayKey {
		style = m.theme.Today
		header += " •"
	}

	lines := []string{style.Render(truncate.String(header, uint(col-1)))}

	tasks := m.ctrl.Index().On(key)
	if len(tasks) == 0 {
		lines = append(lines, m.theme.Empty.Render("none"))
	}
	for row, t := range tasks {
		mark := "○"
		taskStyle := m.theme.TaskPending
		if t.Completed {
			mark = "✓"
			taskStyle = m.theme.TaskDone
		}
		line := truncate.String(fmt.Sprintf("%s %s", mark, t.Name), uint(col-1))
		if i == m.day && row == m.row {
			line = m.theme.Selected.Render(line)
		} else {
			line = taskStyle.Render(line)
		}
		lines = append(lines, line)
	}

	column := strings.Join(lines, "\n")
	return lipgloss.NewStyle().Width(col).Render(column)
}
