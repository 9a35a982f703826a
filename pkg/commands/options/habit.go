package options

import (
	"github.com/spf13/cobra"
)

// HabitOptions captures habit creation flags.
type HabitOptions struct {
	Description string
	Color       string
	Days        []string
	StartDate   string
	EndDate     string
}

// AddHabitFieldArgs wires the habit creation flags.
func AddHabitFieldArgs(cmd *cobra.Command, o *HabitOptions) {
	cmd.Flags().StringVar(&o.Description, "description", "",
		"Describe the habit.")
	cmd.Flags().StringVar(&o.Color, "color", "",
		"Hex color for the habit, defaults to the palette.")
	cmd.Flags().StringSliceVarP(&o.Days, "days", "d", nil,
		"Weekday codes the habit repeats on, example: -d Mon,Wed,Fri.")
	cmd.Flags().StringVar(&o.StartDate, "start", "",
		"Start date, YYYY-MM-DD.")
	cmd.Flags().StringVar(&o.EndDate, "end", "",
		"End date, YYYY-MM-DD.")
}
