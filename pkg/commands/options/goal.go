package options

import (
	"github.com/spf13/cobra"
)

// GoalOptions captures goal selection and creation flags.
type GoalOptions struct {
	GoalID      int64
	Active      bool
	Title       string
	Description string
	Emoji       string
	ImageURL    string
	StartDate   string
	EndDate     string
	SkipAI      bool
}

// AddGoalArgs wires the goal selection flag.
func AddGoalArgs(cmd *cobra.Command, o *GoalOptions) {
	cmd.Flags().Int64VarP(&o.GoalID, "goal", "g", 0,
		"Specify the goal id.")
}

// AddActiveArg limits goal listings to active ones.
func AddActiveArg(cmd *cobra.Command, o *GoalOptions) {
	cmd.Flags().BoolVar(&o.Active, "active", false,
		"Only goals still being worked.")
}

// AddGoalEditFieldArgs wires the goal edit flags. Unset flags leave the
// stored values alone.
func AddGoalEditFieldArgs(cmd *cobra.Command, o *GoalOptions) {
	cmd.Flags().StringVar(&o.Title, "title", "",
		"New title (up to 100 characters).")
	cmd.Flags().StringVar(&o.Description, "description", "",
		"New description (up to 500 characters).")
	cmd.Flags().StringVar(&o.Emoji, "emoji", "",
		"New emoji for the goal card.")
	cmd.Flags().StringVar(&o.ImageURL, "image", "",
		"New image URL for the goal card.")
	cmd.Flags().StringVar(&o.StartDate, "start", "",
		"New start date, YYYY-MM-DD.")
	cmd.Flags().StringVar(&o.EndDate, "end", "",
		"New end date, YYYY-MM-DD.")
}

// AddGoalFieldArgs wires the goal creation flags.
func AddGoalFieldArgs(cmd *cobra.Command, o *GoalOptions) {
	cmd.Flags().StringVar(&o.Description, "description", "",
		"Describe the goal (up to 500 characters).")
	cmd.Flags().StringVar(&o.Emoji, "emoji", "",
		"An emoji for the goal card.")
	cmd.Flags().StringVar(&o.ImageURL, "image", "",
		"An image URL for the goal card.")
	cmd.Flags().StringVar(&o.StartDate, "start", "",
		"Start date, YYYY-MM-DD.")
	cmd.Flags().StringVar(&o.EndDate, "end", "",
		"End date, YYYY-MM-DD.")
	cmd.Flags().BoolVar(&o.SkipAI, "no-ai", false,
		"Skip habit suggestions.")
}
