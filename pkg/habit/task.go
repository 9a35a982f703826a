package habit

// Task is a single-day occurrence of a habit. Date is a YYYY-MM-DD key; the
// color is inherited from the parent habit for display.
type Task struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
	Date      string `json:"date"`
	HabitID   int64  `json:"habitId"`
	HabitName string `json:"habitName,omitempty"`
	Color     string `json:"color,omitempty"`
	UserID    int64  `json:"userId"`
	Username  string `json:"username,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}
