package printers

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	isatty "github.com/mattn/go-isatty"

	"tableflip.dev/mercury/pkg/goal"
	"tableflip.dev/mercury/pkg/habit"
	"tableflip.dev/mercury/pkg/note"
)

func init() {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		color.NoColor = true
	}
}

type PrettyPrint struct {
	ShowID bool
}

var (
	spacing = strings.Repeat(" ", len("171717  "))
)

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Println(title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int, noun string) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Print(title)
	_, _ = c.Printf(" - %d %s", count, noun)
	if count != 1 {
		_, _ = c.Print("s")
	}
	_, _ = c.Println("")
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	if pp.ShowID {
		_, _ = f.Print(spacing)
	}
	_, _ = f.Print(" none\n\n")
}

// Goals renders one row per goal: emoji, title, status, and date range.
func (pp *PrettyPrint) Goals(goals ...goal.Goal) {
	if len(goals) == 0 {
		pp.none()
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, g := range goals {
		row := make([]interface{}, 0, 5)
		if pp.ShowID {
			row = append(row, faintID(g.ID))
		}
		emoji := g.Emoji
		if emoji == "" {
			emoji = " "
		}
		row = append(row, emoji, g.Title, statusCell(g.Status), fmt.Sprintf("%s → %s", g.StartDate, g.EndDate))
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
	fmt.Println("")
}

// Habits renders one row per habit: name, schedule, streak, and parent goal.
func (pp *PrettyPrint) Habits(habits ...habit.Habit) {
	if len(habits) == 0 {
		pp.none()
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, h := range habits {
		row := make([]interface{}, 0, 5)
		if pp.ShowID {
			row = append(row, faintID(h.ID))
		}
		row = append(row, h.Name, h.DaysOfWeek, streakCell(h.StreakStatus))
		if h.GoalTitle != "" {
			row = append(row, color.New(color.Faint).Sprint(h.GoalTitle))
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
	fmt.Println("")
}

// Tasks renders one row per task with a completion mark.
func (pp *PrettyPrint) Tasks(tasks ...habit.Task) {
	if len(tasks) == 0 {
		pp.none()
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, t := range tasks {
		row := make([]interface{}, 0, 4)
		if pp.ShowID {
			row = append(row, faintID(t.ID))
		}
		row = append(row, completionMark(t.Completed), taskName(t))
		if t.HabitName != "" {
			row = append(row, color.New(color.Faint).Sprint(t.HabitName))
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
	fmt.Println("")
}

// Notes renders progress notes newest first.
func (pp *PrettyPrint) Notes(notes ...note.Note) {
	if len(notes) == 0 {
		pp.none()
		return
	}

	f := color.New(color.Faint)
	for _, n := range notes {
		if pp.ShowID {
			_, _ = fmt.Fprint(color.Output, faintID(n.ID), "  ")
		}
		_, _ = fmt.Fprintln(color.Output, n.Content)
		if n.CreatedAt != "" {
			_, _ = f.Fprintln(color.Output, "  "+n.CreatedAt)
		}
	}
	fmt.Println("")
}

func faintID(id int64) string {
	return color.New(color.FgHiYellow, color.Italic, color.Faint).Sprintf("%-6d", id)
}

func completionMark(done bool) string {
	if done {
		return color.New(color.FgGreen).Sprint("✔")
	}
	return color.New(color.Faint).Sprint("·")
}

func taskName(t habit.Task) string {
	if t.Completed {
		return color.New(color.Faint, color.CrossedOut).Sprint(t.Name)
	}
	return t.Name
}

func statusCell(s goal.Status) string {
	switch s {
	case goal.StatusCompleted:
		return color.New(color.FgGreen).Sprint("completed")
	case goal.StatusInProgress:
		return color.New(color.FgCyan).Sprint("in progress")
	case goal.StatusPaused:
		return color.New(color.FgYellow).Sprint("paused")
	case goal.StatusCancelled:
		return color.New(color.Faint).Sprint("cancelled")
	default:
		return color.New(color.Faint).Sprint("not started")
	}
}

func streakCell(streak int) string {
	if streak <= 0 {
		return color.New(color.Faint).Sprint("—")
	}
	return color.New(color.FgHiRed).Sprintf("%d🔥", streak)
}
