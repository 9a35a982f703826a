// Package wizard holds the form state machines behind goal and habit
// creation: a linear stepped wizard for goals (with AI-suggested habits)
// and a single-gate form for standalone habits.
package wizard

import (
	"context"
	"fmt"
	"strings"

	"tableflip.dev/mercury/pkg/ai"
	"tableflip.dev/mercury/pkg/goal"
)

// Step identifies the active wizard stage.
type Step int

// Wizard steps, in order.
const (
	StepTitle Step = iota
	StepDescription
	StepEmoji
	StepImage
	StepDates
	StepAIReview
	StepReview
)

func (s Step) String() string {
	switch s {
	case StepTitle:
		return "Title"
	case StepDescription:
		return "Description"
	case StepEmoji:
		return "Emoji"
	case StepImage:
		return "Image"
	case StepDates:
		return "Dates"
	case StepAIReview:
		return "Habits"
	case StepReview:
		return "Review"
	default:
		return fmt.Sprintf("Step(%d)", int(s))
	}
}

// Steps lists all stages in order.
func Steps() []Step {
	return []Step{StepTitle, StepDescription, StepEmoji, StepImage, StepDates, StepAIReview, StepReview}
}

// Candidate is an AI-suggested habit plus the user's accept/deny choice.
// Candidates start accepted.
type Candidate struct {
	ai.CandidateHabit
	Accepted bool
}

// GoalWizard is the linear goal-creation machine: Title → Description →
// Emoji → Image → Dates → AI habit review → Review/submit. Guards gate
// Next; Back always works; Skip only crosses guard-free steps.
type GoalWizard struct {
	Step Step

	Title       string
	Description string
	Emoji       string
	ImageURL    string
	StartDate   string
	EndDate     string

	Reasoning  string
	Candidates []Candidate

	recommender ai.Recommender
	aiRequested bool
	aiSettled   bool
	aiSkipped   bool
	aiErr       error
}

// NewGoalWizard starts at the title step.
func NewGoalWizard(recommender ai.Recommender) *GoalWizard {
	return &GoalWizard{Step: StepTitle, recommender: recommender}
}

// CanAdvance reports whether the guard for the given step is satisfied. The
// returned reason is empty when advancing is allowed.
func (w *GoalWizard) CanAdvance(step Step) (bool, string) {
	switch step {
	case StepTitle:
		if err := goal.ValidateTitle(w.Title); err != nil {
			return false, "Title is required (up to 100 characters)"
		}
	case StepDescription:
		if err := goal.ValidateDescription(w.Description); err != nil {
			return false, "Description is too long (up to 500 characters)"
		}
	case StepDates:
		if err := goal.ValidateDates(w.StartDate, w.EndDate); err != nil {
			return false, "Both dates are required, start on or before end"
		}
	case StepAIReview:
		if !w.AISettled() {
			return false, "Waiting for habit suggestions (retry or skip)"
		}
	}
	return true, ""
}

// Next advances one step when the current guard allows it.
func (w *GoalWizard) Next() error {
	if ok, reason := w.CanAdvance(w.Step); !ok {
		return fmt.Errorf("wizard: %s", reason)
	}
	if w.Step < StepReview {
		w.Step++
	}
	return nil
}

// Back retreats one step. Never guarded.
func (w *GoalWizard) Back() {
	if w.Step > StepTitle {
		w.Step--
	}
}

// Skip advances past an optional step. On the AI step it marks the fetch
// skipped, which also suppresses a re-fetch on re-entry.
func (w *GoalWizard) Skip() error {
	if w.Step == StepAIReview {
		w.SkipRecommendations()
	}
	return w.Next()
}

// NeedsRecommendations reports whether entering the AI step should trigger
// the one-shot recommendation fetch.
func (w *GoalWizard) NeedsRecommendations() bool {
	return w.Step == StepAIReview && !w.aiRequested && !w.aiSkipped
}

// AISettled reports whether the recommendation fetch reached success,
// error, or explicit skip.
func (w *GoalWizard) AISettled() bool {
	return w.aiSettled || w.aiSkipped
}

// AIError returns the recommendation failure, if any.
func (w *GoalWizard) AIError() error {
	return w.aiErr
}

// FetchRecommendations performs the recommendation call and records the
// settled outcome. Candidates default to accepted.
func (w *GoalWizard) FetchRecommendations(ctx context.Context) error {
	w.aiRequested = true
	resp, err := w.recommender.Recommend(ctx, strings.TrimSpace(w.Title), strings.TrimSpace(w.Description))
	if err != nil {
		w.aiSettled = true
		w.aiErr = err
		return err
	}
	w.aiSettled = true
	w.aiErr = nil
	w.Reasoning = resp.Reasoning
	w.Candidates = make([]Candidate, len(resp.Habits))
	for i, h := range resp.Habits {
		w.Candidates[i] = Candidate{CandidateHabit: h, Accepted: true}
	}
	return nil
}

// RetryRecommendations clears the failed state so FetchRecommendations can
// run again. No-op unless the previous attempt failed.
func (w *GoalWizard) RetryRecommendations() {
	if w.aiErr == nil {
		return
	}
	w.aiRequested = false
	w.aiSettled = false
	w.aiErr = nil
}

// SkipRecommendations settles the AI step without suggestions and
// suppresses re-fetch on re-entry.
func (w *GoalWizard) SkipRecommendations() {
	w.aiSkipped = true
	w.Candidates = nil
	w.Reasoning = ""
	w.aiErr = nil
}

// ToggleCandidate flips acceptance for one suggestion.
func (w *GoalWizard) ToggleCandidate(index int) {
	if index >= 0 && index < len(w.Candidates) {
		w.Candidates[index].Accepted = !w.Candidates[index].Accepted
	}
}

// AcceptedCount reports how many suggestions will become habits on submit.
func (w *GoalWizard) AcceptedCount() int {
	n := 0
	for _, c := range w.Candidates {
		if c.Accepted {
			n++
		}
	}
	return n
}
