// Package teaui hosts the Bubble Tea program for the mercury TUI.
package teaui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/mercury/pkg/app"
	"tableflip.dev/mercury/pkg/habit"
	"tableflip.dev/mercury/pkg/schedule"
	"tableflip.dev/mercury/pkg/session"
	"tableflip.dev/mercury/pkg/store"
	"tableflip.dev/mercury/pkg/timeutil"
	"tableflip.dev/mercury/pkg/tui/components/weekgrid"
	"tableflip.dev/mercury/pkg/tui/theme"
	wizardview "tableflip.dev/mercury/pkg/tui/views/wizard"
	"tableflip.dev/mercury/pkg/wizard"
)

type mode int

const (
	modeNormal mode = iota
	modeWizard
)

// messages
type errMsg struct{ err error }

type weekLoadedMsg struct {
	gen    uint64
	result *app.WeekResult
}

type toggleDoneMsg struct {
	prev habit.Task
	task *habit.Task
	err  error
}

type recsFetchedMsg struct{ err error }

type submitDoneMsg struct {
	result *wizard.SubmitResult
	err    error
}

type watchStartedMsg struct {
	ch     <-chan store.Event
	cancel context.CancelFunc
	err    error
}

type watchEventMsg struct{ event store.Event }

type watchStoppedMsg struct{}

// Model is the root UI state: the week cursor, its grid, and the goal
// wizard overlay.
type Model struct {
	svc    *app.Service
	sess   session.Session
	ctx    context.Context
	cancel context.CancelFunc

	mode mode
	nav  *schedule.Navigator
	grid *weekgrid.Model

	wiz     *wizard.GoalWizard
	overlay *wizardview.Model
	input   textinput.Model

	watchCh     <-chan store.Event
	watchCancel context.CancelFunc

	termWidth  int
	termHeight int

	now    func() time.Time
	status string
	theme  theme.Theme
}

// New creates a new UI model backed by the Service.
func New(svc *app.Service, sess session.Session) *Model {
	th := theme.Default()

	ti := textinput.New()
	ti.Placeholder = "Type here"
	ti.CharLimit = 256
	ti.Prompt = ""
	ti.Focus()

	ctx, cancel := context.WithCancel(context.Background())

	m := &Model{
		svc:     svc,
		sess:    sess,
		ctx:     ctx,
		cancel:  cancel,
		mode:    modeNormal,
		nav:     schedule.NewNavigator(),
		grid:    weekgrid.NewModel(th.Week),
		overlay: wizardview.New(th),
		input:   ti,
		now:     time.Now,
		theme:   th,
	}
	m.grid.SetWindow(m.nav.Window())
	return m
}

// SetNow pins the clock for the navigator and grid, for tests.
func (m *Model) SetNow(now func() time.Time) {
	if now != nil {
		m.now = now
	}
	m.nav.SetNow(now)
	m.grid.SetNow(now)
	m.grid.SetWindow(m.nav.Window())
}

// Init kicks off the first week fetch and the cache watcher.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadWeek(), startWatchCmd(m.ctx, m.svc))
}

func (m *Model) loadWeek() tea.Cmd {
	gen := m.nav.Generation()
	window := m.nav.Window()
	svc := m.svc
	ctx := m.ctx
	return func() tea.Msg {
		result, err := svc.Week(ctx, window)
		if err != nil {
			return errMsg{err}
		}
		return weekLoadedMsg{gen: gen, result: result}
	}
}

func (m *Model) toggleSelected() tea.Cmd {
	task := m.grid.SelectedTask()
	if task == nil {
		return nil
	}
	prev := *task

	// Flip locally before the round trip so the mark responds instantly.
	flipped := prev
	flipped.Completed = !flipped.Completed
	m.grid.ApplyToggle(flipped)

	svc := m.svc
	ctx := m.ctx
	return func() tea.Msg {
		updated, err := svc.Toggle(ctx, prev.ID)
		return toggleDoneMsg{prev: prev, task: updated, err: err}
	}
}

func (m *Model) fetchRecommendations() tea.Cmd {
	wiz := m.wiz
	ctx := m.ctx
	return func() tea.Msg {
		return recsFetchedMsg{err: wiz.FetchRecommendations(ctx)}
	}
}

func (m *Model) submitWizard() tea.Cmd {
	wiz := m.wiz
	svc := m.svc
	ctx := m.ctx
	return func() tea.Msg {
		result, err := wiz.Submit(ctx, svc.Creator, svc.Creator, svc.UserID)
		return submitDoneMsg{result: result, err: err}
	}
}

func startWatchCmd(parent context.Context, svc *app.Service) tea.Cmd {
	if svc == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		ch, err := svc.Watch(ctx)
		if err != nil {
			cancel()
			return watchStartedMsg{err: err}
		}
		return watchStartedMsg{ch: ch, cancel: cancel}
	}
}

func (m *Model) waitForWatch() tea.Cmd {
	if m.watchCh == nil {
		return nil
	}
	ch := m.watchCh
	return func() tea.Msg {
		if ev, ok := <-ch; ok {
			return watchEventMsg{event: ev}
		}
		return watchStoppedMsg{}
	}
}

func (m *Model) stopWatch() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	m.watchCh = nil
}

// Update routes messages and keys.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.grid.SetSize(msg.Width, msg.Height-3)
		m.overlay.SetSize(msg.Width, msg.Height)
	case errMsg:
		m.status = "ERR: " + msg.err.Error()
	case weekLoadedMsg:
		// A stale response for a window the user already left is dropped.
		if !m.nav.Current(msg.gen) {
			break
		}
		m.grid.SetTasks(msg.result.Tasks)
		if msg.result.Offline {
			m.grid.SetOffline(msg.result.FetchedAt)
		} else {
			m.grid.ClearOffline()
		}
	case toggleDoneMsg:
		if msg.err != nil {
			m.grid.ApplyToggle(msg.prev)
			m.status = "ERR: toggle: " + msg.err.Error()
			break
		}
		m.grid.ApplyToggle(*msg.task)
		m.status = ""
	case recsFetchedMsg:
		m.overlay.Fetching = false
		m.overlay.CandidateIndex = 0
		if msg.err != nil {
			m.overlay.Status = ""
		}
	case submitDoneMsg:
		m.overlay.Submitting = false
		if msg.err != nil {
			m.overlay.Status = msg.err.Error()
			break
		}
		m.closeWizard()
		created := len(msg.result.Created)
		m.status = fmt.Sprintf("Created goal %q with %d habits", msg.result.Goal.Title, created)
		if n := len(msg.result.HabitErrors); n > 0 {
			m.status += fmt.Sprintf(" (%d failed)", n)
		}
		cmds = append(cmds, m.loadWeek())
	case watchStartedMsg:
		if msg.err != nil {
			m.status = "ERR: watch " + msg.err.Error()
			break
		}
		m.stopWatch()
		m.watchCh = msg.ch
		m.watchCancel = msg.cancel
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case watchEventMsg:
		if msg.event.Kind == "week" || msg.event.Type == store.EventCacheInvalidated {
			cmds = append(cmds, m.loadWeek())
		}
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case watchStoppedMsg:
		m.stopWatch()
		cmds = append(cmds, startWatchCmd(m.ctx, m.svc))
	case tea.KeyPressMsg:
		m.handleKeyPress(msg, &cmds)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKeyPress(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	if m.mode == modeWizard {
		m.handleWizardKey(msg, cmds)
		return
	}
	switch msg.String() {
	case "q", "ctrl+c":
		m.stopWatch()
		m.cancel()
		*cmds = append(*cmds, tea.Quit)
	case "[", "p":
		m.grid.SetWindow(m.nav.PreviousWeek())
		*cmds = append(*cmds, m.loadWeek())
	case "]":
		m.grid.SetWindow(m.nav.NextWeek())
		*cmds = append(*cmds, m.loadWeek())
	case "t":
		m.grid.SetWindow(m.nav.JumpToToday())
		*cmds = append(*cmds, m.loadWeek())
	case "r":
		*cmds = append(*cmds, m.loadWeek())
	case "space", "enter":
		if cmd := m.toggleSelected(); cmd != nil {
			*cmds = append(*cmds, cmd)
		}
	case "n":
		m.openWizard()
	default:
		m.grid.Update(msg)
	}
}

func (m *Model) openWizard() {
	m.wiz = wizard.NewGoalWizard(m.svc.AI)
	now := m.now()
	m.wiz.StartDate = timeutil.DateKey(now)
	m.wiz.EndDate = timeutil.DateKey(now.AddDate(0, 3, 0))

	m.overlay.Active = true
	m.overlay.Wizard = m.wiz
	m.overlay.Status = ""
	m.overlay.CandidateIndex = 0
	m.overlay.DateFocus = 0
	m.overlay.Fetching = false
	m.overlay.Submitting = false
	m.loadInput()
	m.mode = modeWizard
}

func (m *Model) closeWizard() {
	m.overlay.Active = false
	m.overlay.Wizard = nil
	m.wiz = nil
	m.mode = modeNormal
}

func (m *Model) handleWizardKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	w := m.wiz
	switch msg.String() {
	case "esc":
		m.closeWizard()
		return
	case "ctrl+c":
		m.stopWatch()
		m.cancel()
		*cmds = append(*cmds, tea.Quit)
		return
	case "ctrl+b":
		w.Back()
		m.overlay.Status = ""
		m.loadInput()
		return
	case "ctrl+s":
		if err := w.Skip(); err != nil {
			m.overlay.Status = err.Error()
			return
		}
		m.overlay.Status = ""
		m.loadInput()
		return
	case "enter":
		m.advanceWizard(cmds)
		return
	}

	switch w.Step {
	case wizard.StepDates:
		if msg.String() == "tab" {
			m.overlay.DateFocus = 1 - m.overlay.DateFocus
			m.loadInput()
			return
		}
	case wizard.StepAIReview:
		switch msg.String() {
		case "up", "k":
			m.overlay.MoveCandidate(-1)
			return
		case "down", "j":
			m.overlay.MoveCandidate(1)
			return
		case "space":
			w.ToggleCandidate(m.overlay.CandidateIndex)
			return
		case "r":
			if w.AIError() != nil {
				w.RetryRecommendations()
				m.overlay.Fetching = true
				*cmds = append(*cmds, m.fetchRecommendations())
			}
			return
		}
	case wizard.StepReview:
		return
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if cmd != nil {
		*cmds = append(*cmds, cmd)
	}
	m.storeInput()
}

func (m *Model) advanceWizard(cmds *[]tea.Cmd) {
	w := m.wiz
	if w.Step == wizard.StepReview {
		if m.overlay.Submitting {
			return
		}
		m.overlay.Submitting = true
		m.overlay.Status = ""
		*cmds = append(*cmds, m.submitWizard())
		return
	}

	m.storeInput()
	if err := w.Next(); err != nil {
		m.overlay.Status = strings.TrimPrefix(err.Error(), "wizard: ")
		return
	}
	m.overlay.Status = ""
	m.loadInput()

	if w.NeedsRecommendations() {
		if m.svc.AI == nil {
			w.SkipRecommendations()
			return
		}
		m.overlay.Fetching = true
		*cmds = append(*cmds, m.fetchRecommendations())
	}
}

// loadInput seeds the text input with the active step's stored value.
func (m *Model) loadInput() {
	w := m.wiz
	if w == nil {
		return
	}
	switch w.Step {
	case wizard.StepTitle:
		m.input.SetValue(w.Title)
	case wizard.StepDescription:
		m.input.SetValue(w.Description)
	case wizard.StepEmoji:
		m.input.SetValue(w.Emoji)
	case wizard.StepImage:
		m.input.SetValue(w.ImageURL)
	case wizard.StepDates:
		if m.overlay.DateFocus == 0 {
			m.input.SetValue(w.StartDate)
		} else {
			m.input.SetValue(w.EndDate)
		}
	default:
		m.input.SetValue("")
	}
	m.input.CursorEnd()
}

// storeInput writes the text input back into the active step's field.
func (m *Model) storeInput() {
	w := m.wiz
	if w == nil {
		return
	}
	switch w.Step {
	case wizard.StepTitle:
		w.Title = m.input.Value()
	case wizard.StepDescription:
		w.Description = m.input.Value()
	case wizard.StepEmoji:
		w.Emoji = m.input.Value()
	case wizard.StepImage:
		w.ImageURL = m.input.Value()
	case wizard.StepDates:
		if m.overlay.DateFocus == 0 {
			w.StartDate = m.input.Value()
		} else {
			w.EndDate = m.input.Value()
		}
	}
}

// View renders the grid or the wizard overlay plus the footer.
func (m *Model) View() string {
	var sections []string

	if m.mode == modeWizard && m.overlay.Active {
		m.overlay.SetSize(m.termWidth, m.termHeight)
		m.overlay.SetInputView(m.input.View())
		if overlay := m.overlay.View(); strings.TrimSpace(overlay) != "" {
			sections = append(sections, overlay)
		}
	} else {
		sections = append(sections, m.headerLine())
		sections = append(sections, m.grid.View())
	}

	sections = append(sections, m.footerLine())
	return strings.Join(sections, "\n")
}

func (m *Model) headerLine() string {
	w := m.nav.Window()
	header := fmt.Sprintf("%s – %s", w.Start.Format("Jan 2"), w.End().Format("Jan 2, 2006"))
	if w.Contains(m.now()) {
		header += " (this week)"
	}
	return lipgloss.NewStyle().Bold(true).Render(header)
}

func (m *Model) footerLine() string {
	help := "←/→ days · ↑/↓ tasks · space toggle · [/] weeks · t today · n new goal · q quit"
	if m.mode == modeWizard {
		help = "Enter next · ctrl+b back · Esc cancel"
	}
	parts := []string{m.theme.Footer.Help.Render(help)}
	if m.sess.State == session.Authenticated && m.sess.User != nil {
		parts = append(parts, m.theme.Footer.Status.Render(m.sess.User.Username))
	}
	if m.status != "" {
		style := m.theme.Footer.Status
		if strings.HasPrefix(m.status, "ERR:") {
			style = m.theme.Footer.Error
		}
		parts = append(parts, style.Render(m.status))
	}
	return strings.Join(parts, "  ")
}

// Run launches the interactive TUI program.
func Run(svc *app.Service, sess session.Session) error {
	p := tea.NewProgram(New(svc, sess), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
