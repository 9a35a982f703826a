// Package goals provides the runner logic for goal lifecycle operations.
package goals

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/mercury/pkg/ai"
	"tableflip.dev/mercury/pkg/printers"
	"tableflip.dev/mercury/pkg/wizard"
)

// New drives the goal wizard non-interactively: flags fill the steps, AI
// suggestions are fetched unless skipped, and every suggestion is accepted.
type New struct {
	Title       string
	Description string
	Emoji       string
	ImageURL    string
	StartDate   string
	EndDate     string

	// SkipAI submits without habit suggestions.
	SkipAI bool

	UserID      int64
	Recommender ai.Recommender
	Goals       wizard.GoalCreator
	Habits      wizard.HabitCreator
}

func (n *New) Do(ctx context.Context) error {
	if n.Goals == nil || n.Habits == nil {
		return errors.New("can not create goal, no backend")
	}
	if n.EndDate == "" && n.StartDate == "" {
		// Sensible default range: today through three months out.
		now := time.Now()
		n.StartDate = now.Format("2006-01-02")
		n.EndDate = now.AddDate(0, 3, 0).Format("2006-01-02")
	}

	w := wizard.NewGoalWizard(n.Recommender)
	w.Title = n.Title
	w.Description = n.Description
	w.Emoji = n.Emoji
	w.ImageURL = n.ImageURL
	w.StartDate = n.StartDate
	w.EndDate = n.EndDate

	if n.SkipAI || n.Recommender == nil {
		w.SkipRecommendations()
	} else {
		w.Step = wizard.StepAIReview
		if err := w.FetchRecommendations(ctx); err != nil {
			f := color.New(color.Faint, color.Italic)
			_, _ = f.Printf("habit suggestions unavailable: %v\n", err)
		}
	}

	result, err := w.Submit(ctx, n.Goals, n.Habits, n.UserID)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	fmt.Println("")
	if w.Reasoning != "" {
		f := color.New(color.Faint)
		_, _ = f.Println(w.Reasoning)
		fmt.Println("")
	}
	pp.Title("Created")
	pp.Goals(*result.Goal)
	if len(result.Created) > 0 {
		pp.TitleWithCount("Habits", len(result.Created), "habit")
		pp.Habits(result.Created...)
	}
	for _, herr := range result.HabitErrors {
		_, _ = color.New(color.FgYellow).Printf("skipped: %v\n", herr)
	}

	return nil
}
