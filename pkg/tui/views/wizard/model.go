package wizard

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/mercury/pkg/tui/theme"
	"tableflip.dev/mercury/pkg/tui/ui"
	goalwizard "tableflip.dev/mercury/pkg/wizard"
)

// Ensure Model satisfies the Component interface.
var _ ui.Component = (*Model)(nil)

// Model renders the goal wizard as a centered modal. It is a passive view:
// the root app owns the wizard state machine and the text input, and pushes
// both in here before rendering.
type Model struct {
	Active bool
	Wizard *goalwizard.GoalWizard

	// CandidateIndex is the cursor position on the habit suggestion list.
	CandidateIndex int
	// DateFocus selects which of the two date fields holds the input: 0 is
	// start, 1 is end.
	DateFocus int
	// Fetching is set while the recommendation call is in flight.
	Fetching bool
	// Submitting is set while the create calls are in flight.
	Submitting bool
	// Status carries a one-line guard or submit error below the body.
	Status string

	width          int
	height         int
	overlayReserve int
	inputView      string

	theme theme.Theme
}

// New constructs a wizard overlay view.
func New(th theme.Theme) *Model {
	return &Model{theme: th}
}

// Init implements ui.Component.
func (m *Model) Init() tea.Cmd { return nil }

// Update implements ui.Component.
func (m *Model) Update(msg tea.Msg) (ui.Component, tea.Cmd) { return m, nil }

// SetSize stores the available viewport size.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetInputView updates the rendered text input line for the active step.
func (m *Model) SetInputView(view string) {
	m.inputView = strings.TrimSuffix(view, "\n")
}

// MoveCandidate moves the suggestion cursor, clamped to the list.
func (m *Model) MoveCandidate(delta int) {
	if m.Wizard == nil {
		return
	}
	m.CandidateIndex += delta
	if m.CandidateIndex < 0 {
		m.CandidateIndex = 0
	}
	if last := len(m.Wizard.Candidates) - 1; m.CandidateIndex > last && last >= 0 {
		m.CandidateIndex = last
	}
}

// View renders the wizard overlay.
func (m *Model) View() string {
	if !m.Active || m.Wizard == nil {
		m.overlayReserve = 0
		return ""
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	height := m.height
	if height <= 0 {
		height = 24
	}

	w := m.Wizard
	title := fmt.Sprintf("New Goal · %s (%d/%d)", w.Step, int(w.Step)+1, len(goalwizard.Steps()))
	lines := []string{m.theme.Modal.Title.Render(title), ""}
	lines = append(lines, m.stepLines()...)

	if m.Status != "" {
		lines = append(lines, "", m.theme.Footer.Error.Render(m.Status))
	}

	content := strings.Join(lines, "\n")
	modalWidth := m.idealModalWidth(width)
	frame := m.theme.Modal.Frame.Width(modalWidth)
	panel := frame.Render(content)
	m.overlayReserve = strings.Count(panel, "\n") + 1
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, panel)
}

// OverlayReserve reports the number of lines consumed by the overlay.
func (m *Model) OverlayReserve() int {
	if !m.Active {
		return 0
	}
	return m.overlayReserve
}

func (m *Model) stepLines() []string {
	w := m.Wizard
	body := m.theme.Modal.Body
	faint := m.theme.Modal.Faint

	var lines []string
	switch w.Step {
	case goalwizard.StepTitle:
		lines = append(lines, body.Render("What do you want to achieve?"))
		lines = append(lines, body.Render(m.inputView))
		lines = append(lines, "", faint.Render("Enter next · Esc cancel"))
	case goalwizard.StepDescription:
		lines = append(lines, body.Render("Describe it (optional)"))
		lines = append(lines, body.Render(m.inputView))
		lines = append(lines, "", faint.Render("Enter next · ctrl+b back · ctrl+s skip · Esc cancel"))
	case goalwizard.StepEmoji:
		lines = append(lines, body.Render("Pick an emoji (optional)"))
		lines = append(lines, body.Render(m.inputView))
		lines = append(lines, "", faint.Render("Enter next · ctrl+b back · ctrl+s skip · Esc cancel"))
	case goalwizard.StepImage:
		lines = append(lines, body.Render("Image URL (optional)"))
		lines = append(lines, body.Render(m.inputView))
		lines = append(lines, "", faint.Render("Enter next · ctrl+b back · ctrl+s skip · Esc cancel"))
	case goalwizard.StepDates:
		lines = append(lines, m.dateLine("Start", w.StartDate, m.DateFocus == 0))
		lines = append(lines, m.dateLine("End", w.EndDate, m.DateFocus == 1))
		lines = append(lines, "", faint.Render("Tab switch field · Enter next · ctrl+b back · Esc cancel"))
	case goalwizard.StepAIReview:
		lines = append(lines, m.aiLines()...)
	case goalwizard.StepReview:
		lines = append(lines, m.reviewLines()...)
	}
	return lines
}

func (m *Model) dateLine(label, value string, focused bool) string {
	body := m.theme.Modal.Body
	if focused {
		return body.Render(fmt.Sprintf("%s: %s", label, m.inputView))
	}
	if value == "" {
		value = "YYYY-MM-DD"
	}
	return m.theme.Modal.Faint.Render(fmt.Sprintf("%s: %s", label, value))
}

func (m *Model) aiLines() []string {
	w := m.Wizard
	body := m.theme.Modal.Body
	faint := m.theme.Modal.Faint

	if m.Fetching {
		return []string{
			body.Render("Asking for habit suggestions…"),
			"",
			faint.Render("ctrl+s skip · Esc cancel"),
		}
	}
	if err := w.AIError(); err != nil {
		return []string{
			m.theme.Footer.Error.Render("Suggestions failed: " + err.Error()),
			"",
			faint.Render("r retry · ctrl+s skip · Esc cancel"),
		}
	}
	if !w.AISettled() || len(w.Candidates) == 0 {
		return []string{
			body.Render("No habit suggestions."),
			"",
			faint.Render("Enter next · ctrl+b back · Esc cancel"),
		}
	}

	var lines []string
	if strings.TrimSpace(w.Reasoning) != "" {
		lines = append(lines, faint.Render(w.Reasoning), "")
	}
	lines = append(lines, body.Render("Suggested habits"))
	for i, c := range w.Candidates {
		marker := "  "
		if i == m.CandidateIndex {
			marker = "→ "
		}
		check := "[ ]"
		if c.Accepted {
			check = "[x]"
		}
		line := fmt.Sprintf("%s%s %s (%s)", marker, check, c.Name, strings.Join(c.DaysOfWeek, ", "))
		if i == m.CandidateIndex {
			lines = append(lines, m.theme.Modal.Accent.Render(line))
		} else {
			lines = append(lines, body.Render(line))
		}
	}
	lines = append(lines, "", faint.Render("↑/↓ move · Space toggle · Enter next · ctrl+b back · Esc cancel"))
	return lines
}

func (m *Model) reviewLines() []string {
	w := m.Wizard
	body := m.theme.Modal.Body
	faint := m.theme.Modal.Faint

	display := w.Title
	if w.Emoji != "" {
		display = w.Emoji + " " + display
	}
	lines := []string{body.Render(display)}
	if strings.TrimSpace(w.Description) != "" {
		lines = append(lines, faint.Render(w.Description))
	}
	lines = append(lines, body.Render(fmt.Sprintf("%s → %s", w.StartDate, w.EndDate)))
	switch n := w.AcceptedCount(); n {
	case 0:
		lines = append(lines, faint.Render("No habits will be created."))
	case 1:
		lines = append(lines, body.Render("1 habit will be created."))
	default:
		lines = append(lines, body.Render(fmt.Sprintf("%d habits will be created.", n)))
	}
	if m.Submitting {
		lines = append(lines, "", faint.Render("Creating…"))
	} else {
		lines = append(lines, "", faint.Render("Enter create · ctrl+b back · Esc cancel"))
	}
	return lines
}

func (m *Model) idealModalWidth(width int) int {
	modalWidth := width - 8
	if modalWidth > 64 {
		modalWidth = 64
	}
	if modalWidth < 24 {
		modalWidth = width - 4
		if modalWidth < 20 {
			modalWidth = 20
		}
	}
	return modalWidth
}
