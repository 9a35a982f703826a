// Package devserver is an in-memory stand-in for the goal-tracking backend,
// serving the same REST surface the api client consumes. It exists so the
// CLI and TUI can run end to end without the real service.
package devserver

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"tableflip.dev/mercury/pkg/api"
	"tableflip.dev/mercury/pkg/goal"
	"tableflip.dev/mercury/pkg/habit"
	"tableflip.dev/mercury/pkg/note"
)

// ErrNotFound reports a lookup miss for any record kind.
var ErrNotFound = errors.New("devserver: not found")

// Store holds all records in memory behind one lock. IDs are assigned
// sequentially per kind and never reused within a process.
type Store struct {
	mu sync.RWMutex

	users  map[int64]api.User
	goals  map[int64]goal.Goal
	habits map[int64]habit.Habit
	tasks  map[int64]habit.Task
	notes  map[int64]note.Note

	nextUser  int64
	nextGoal  int64
	nextHabit int64
	nextTask  int64
	nextNote  int64

	now func() time.Time
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		users:  make(map[int64]api.User),
		goals:  make(map[int64]goal.Goal),
		habits: make(map[int64]habit.Habit),
		tasks:  make(map[int64]habit.Task),
		notes:  make(map[int64]note.Note),
		now:    time.Now,
	}
}

// SetNow overrides the timestamp clock, for tests.
func (s *Store) SetNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

func (s *Store) stamp() string {
	return s.now().UTC().Format(time.RFC3339)
}

// UpsertUser creates or updates the user keyed by provider identity.
func (s *Store) UpsertUser(req api.CreateUserRequest) api.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, u := range s.users {
		if u.Provider == req.Provider && u.ProviderID == req.ProviderID {
			u.Username = req.Username
			u.Email = req.Email
			u.Name = req.Name
			u.AvatarURL = req.AvatarURL
			u.UpdatedAt = s.stamp()
			s.users[id] = u
			return u
		}
	}

	s.nextUser++
	u := api.User{
		ID:         s.nextUser,
		Provider:   req.Provider,
		ProviderID: req.ProviderID,
		Username:   req.Username,
		Email:      req.Email,
		Name:       req.Name,
		AvatarURL:  req.AvatarURL,
		CreatedAt:  s.stamp(),
		UpdatedAt:  s.stamp(),
	}
	s.users[u.ID] = u
	return u
}

// UserByProvider finds a user by OAuth identity.
func (s *Store) UserByProvider(provider, providerID string) (api.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Provider == provider && u.ProviderID == providerID {
			return u, nil
		}
	}
	return api.User{}, ErrNotFound
}

// User returns a user by id.
func (s *Store) User(id int64) (api.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return api.User{}, ErrNotFound
	}
	return u, nil
}

// CreateGoal stores a new goal. Status defaults to NOT_STARTED.
func (s *Store) CreateGoal(req api.CreateGoalRequest) goal.Goal {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextGoal++
	status := req.Status
	if status == "" {
		status = goal.StatusNotStarted
	}
	g := goal.Goal{
		ID:          s.nextGoal,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Emoji:       req.Emoji,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      status,
		UserID:      req.UserID,
		CreatedAt:   s.stamp(),
		UpdatedAt:   s.stamp(),
	}
	s.goals[g.ID] = g
	return g
}

// Goal returns a goal by id.
func (s *Store) Goal(id int64) (goal.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.goals[id]
	if !ok {
		return goal.Goal{}, ErrNotFound
	}
	return g, nil
}

// GoalsByUser lists a user's goals ordered by id.
func (s *Store) GoalsByUser(userID int64, activeOnly bool) []goal.Goal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []goal.Goal
	for _, g := range s.goals {
		if g.UserID != userID {
			continue
		}
		if activeOnly && g.Status != goal.StatusNotStarted && g.Status != goal.StatusInProgress {
			continue
		}
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// CompletedGoalsByUser lists a user's finished goals ordered by id.
func (s *Store) CompletedGoalsByUser(userID int64) []goal.Goal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []goal.Goal
	for _, g := range s.goals {
		if g.UserID == userID && g.Status == goal.StatusCompleted {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// OverdueGoalsByUser lists unfinished goals whose end date has passed.
func (s *Store) OverdueGoalsByUser(userID int64) []goal.Goal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	today := s.now().Format("2006-01-02")
	var out []goal.Goal
	for _, g := range s.goals {
		if g.UserID != userID || g.Status == goal.StatusCompleted || g.Status == goal.StatusCancelled {
			continue
		}
		if g.EndDate != "" && g.EndDate < today {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// UpdateGoal replaces the editable goal fields.
func (s *Store) UpdateGoal(id int64, req api.UpdateGoalRequest) (goal.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.goals[id]
	if !ok {
		return goal.Goal{}, ErrNotFound
	}
	g.Title = strings.TrimSpace(req.Title)
	g.Description = req.Description
	g.ImageURL = req.ImageURL
	g.Emoji = req.Emoji
	g.StartDate = req.StartDate
	g.EndDate = req.EndDate
	if req.Status != "" {
		g.Status = req.Status
	}
	g.UpdatedAt = s.stamp()
	s.goals[id] = g
	return g, nil
}

// SetGoalStatus patches the status field in isolation.
func (s *Store) SetGoalStatus(id int64, status goal.Status) (goal.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.goals[id]
	if !ok {
		return goal.Goal{}, ErrNotFound
	}
	g.Status = status
	g.UpdatedAt = s.stamp()
	s.goals[id] = g
	return g, nil
}

// DeleteGoal removes a goal and cascades to its habits, tasks, and notes.
func (s *Store) DeleteGoal(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.goals[id]; !ok {
		return ErrNotFound
	}
	delete(s.goals, id)
	for hid, h := range s.habits {
		if h.GoalID == id {
			delete(s.habits, hid)
			s.deleteTasksForHabit(hid)
		}
	}
	for nid, n := range s.notes {
		if n.GoalID == id {
			delete(s.notes, nid)
		}
	}
	return nil
}

// CreateHabit stores a new habit under an existing goal.
func (s *Store) CreateHabit(req api.CreateHabitRequest) (habit.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.goals[req.GoalID]; !ok {
		return habit.Habit{}, ErrNotFound
	}
	s.nextHabit++
	h := habit.Habit{
		ID:          s.nextHabit,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Color:       req.Color,
		DaysOfWeek:  req.DaysOfWeek,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		GoalID:      req.GoalID,
		UserID:      req.UserID,
		CreatedAt:   s.stamp(),
		UpdatedAt:   s.stamp(),
	}
	s.habits[h.ID] = h
	return h, nil
}

// Habit returns a habit by id with its goal title filled in.
func (s *Store) Habit(id int64) (habit.Habit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.habits[id]
	if !ok {
		return habit.Habit{}, ErrNotFound
	}
	return s.enrichHabit(h), nil
}

// HabitsByUser lists a user's habits ordered by id.
func (s *Store) HabitsByUser(userID int64) []habit.Habit {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []habit.Habit
	for _, h := range s.habits {
		if h.UserID == userID {
			out = append(out, s.enrichHabit(h))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// HabitsByGoal lists the habits under one goal ordered by id.
func (s *Store) HabitsByGoal(goalID int64) []habit.Habit {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []habit.Habit
	for _, h := range s.habits {
		if h.GoalID == goalID {
			out = append(out, s.enrichHabit(h))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// CountHabitsByUser reports the user's habit total.
func (s *Store) CountHabitsByUser(userID int64) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, h := range s.habits {
		if h.UserID == userID {
			n++
		}
	}
	return n
}

// UpdateHabit applies a partial habit edit.
func (s *Store) UpdateHabit(id int64, req api.UpdateHabitRequest) (habit.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.habits[id]
	if !ok {
		return habit.Habit{}, ErrNotFound
	}
	if req.Name != "" {
		h.Name = strings.TrimSpace(req.Name)
	}
	if req.Description != "" {
		h.Description = req.Description
	}
	if req.Color != "" {
		h.Color = req.Color
	}
	if req.DaysOfWeek != "" {
		h.DaysOfWeek = req.DaysOfWeek
	}
	if req.StartDate != "" {
		h.StartDate = req.StartDate
	}
	if req.EndDate != "" {
		h.EndDate = req.EndDate
	}
	h.UpdatedAt = s.stamp()
	s.habits[id] = h
	return s.enrichHabit(h), nil
}

// DeleteHabit removes a habit and its tasks.
func (s *Store) DeleteHabit(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.habits[id]; !ok {
		return ErrNotFound
	}
	delete(s.habits, id)
	s.deleteTasksForHabit(id)
	return nil
}

func (s *Store) deleteTasksForHabit(habitID int64) {
	for tid, t := range s.tasks {
		if t.HabitID == habitID {
			delete(s.tasks, tid)
		}
	}
}

func (s *Store) enrichHabit(h habit.Habit) habit.Habit {
	if g, ok := s.goals[h.GoalID]; ok {
		h.GoalTitle = g.Title
	}
	return h
}

// CreateTask stores a new single-day task under an existing habit.
func (s *Store) CreateTask(req api.CreateTaskRequest) (habit.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.habits[req.HabitID]; !ok {
		return habit.Task{}, ErrNotFound
	}
	s.nextTask++
	t := habit.Task{
		ID:        s.nextTask,
		Name:      strings.TrimSpace(req.Name),
		Date:      req.Date,
		HabitID:   req.HabitID,
		UserID:    req.UserID,
		CreatedAt: s.stamp(),
		UpdatedAt: s.stamp(),
	}
	s.tasks[t.ID] = t
	return s.enrichTask(t), nil
}

// Task returns a task by id.
func (s *Store) Task(id int64) (habit.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tasks[id]
	if !ok {
		return habit.Task{}, ErrNotFound
	}
	return s.enrichTask(t), nil
}

// TasksByUser lists a user's tasks ordered by date then id.
func (s *Store) TasksByUser(userID int64) []habit.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []habit.Task
	for _, t := range s.tasks {
		if t.UserID == userID {
			out = append(out, s.enrichTask(t))
		}
	}
	sortTasks(out)
	return out
}

// TasksByHabit lists the tasks under one habit ordered by date then id.
func (s *Store) TasksByHabit(habitID int64) []habit.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []habit.Task
	for _, t := range s.tasks {
		if t.HabitID == habitID {
			out = append(out, s.enrichTask(t))
		}
	}
	sortTasks(out)
	return out
}

// TasksByDateRange lists a user's tasks within [startDate, endDate],
// inclusive. Dates are YYYY-MM-DD keys, so string comparison is
// chronological.
func (s *Store) TasksByDateRange(userID int64, startDate, endDate string) []habit.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []habit.Task
	for _, t := range s.tasks {
		if t.UserID == userID && t.Date >= startDate && t.Date <= endDate {
			out = append(out, s.enrichTask(t))
		}
	}
	sortTasks(out)
	return out
}

// CompletedTasksByUser lists a user's finished tasks ordered by date then id.
func (s *Store) CompletedTasksByUser(userID int64) []habit.Task {
	return s.tasksByCompletion(userID, true)
}

// PendingTasksByUser lists a user's unfinished tasks ordered by date then id.
func (s *Store) PendingTasksByUser(userID int64) []habit.Task {
	return s.tasksByCompletion(userID, false)
}

func (s *Store) tasksByCompletion(userID int64, completed bool) []habit.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []habit.Task
	for _, t := range s.tasks {
		if t.UserID == userID && t.Completed == completed {
			out = append(out, s.enrichTask(t))
		}
	}
	sortTasks(out)
	return out
}

// ToggleTask flips a task's completed flag and recalculates the owning
// habit's streak.
func (s *Store) ToggleTask(id int64) (habit.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return habit.Task{}, ErrNotFound
	}
	t.Completed = !t.Completed
	t.UpdatedAt = s.stamp()
	s.tasks[id] = t
	s.recalcStreak(t.HabitID)
	return s.enrichTask(t), nil
}

// UpdateTask applies a partial task edit.
func (s *Store) UpdateTask(id int64, req api.UpdateTaskRequest) (habit.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return habit.Task{}, ErrNotFound
	}
	if req.Name != "" {
		t.Name = strings.TrimSpace(req.Name)
	}
	if req.Date != "" {
		t.Date = req.Date
	}
	if req.Completed != nil {
		t.Completed = *req.Completed
	}
	t.UpdatedAt = s.stamp()
	s.tasks[id] = t
	if req.Completed != nil {
		s.recalcStreak(t.HabitID)
	}
	return s.enrichTask(t), nil
}

func sortTasks(tasks []habit.Task) {
	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].Date != tasks[j].Date {
			return tasks[i].Date < tasks[j].Date
		}
		return tasks[i].ID < tasks[j].ID
	})
}

// DeleteTask removes a task and recalculates the habit's streak.
func (s *Store) DeleteTask(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return ErrNotFound
	}
	delete(s.tasks, id)
	s.recalcStreak(t.HabitID)
	return nil
}

// recalcStreak counts completed tasks backwards from the habit's most
// recent task, stopping at the first incomplete one. Callers hold the lock.
func (s *Store) recalcStreak(habitID int64) {
	h, ok := s.habits[habitID]
	if !ok {
		return
	}

	var tasks []habit.Task
	for _, t := range s.tasks {
		if t.HabitID == habitID {
			tasks = append(tasks, t)
		}
	}
	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].Date != tasks[j].Date {
			return tasks[i].Date > tasks[j].Date
		}
		return tasks[i].ID > tasks[j].ID
	})

	streak := 0
	for _, t := range tasks {
		if !t.Completed {
			break
		}
		streak++
	}
	h.StreakStatus = streak
	s.habits[habitID] = h
}

func (s *Store) enrichTask(t habit.Task) habit.Task {
	if h, ok := s.habits[t.HabitID]; ok {
		t.HabitName = h.Name
		t.Color = h.Color
	}
	return t
}

// CreateNote stores a new note under an existing goal.
func (s *Store) CreateNote(req api.CreateNoteRequest) (note.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.goals[req.GoalID]; !ok {
		return note.Note{}, ErrNotFound
	}
	s.nextNote++
	n := note.Note{
		ID:        s.nextNote,
		Content:   req.Content,
		GoalID:    req.GoalID,
		CreatedAt: s.stamp(),
	}
	s.notes[n.ID] = n
	return n, nil
}

// NotesByGoal lists the notes on one goal, newest first.
func (s *Store) NotesByGoal(goalID int64) []note.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []note.Note
	for _, n := range s.notes {
		if n.GoalID == goalID {
			out = append(out, n)
		}
	}
	note.SortNewestFirst(out)
	return out
}

// CountNotesByGoal reports how many notes a goal carries.
func (s *Store) CountNotesByGoal(goalID int64) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, nt := range s.notes {
		if nt.GoalID == goalID {
			n++
		}
	}
	return n
}

// UpdateNote replaces a note's content.
func (s *Store) UpdateNote(id int64, content string) (note.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notes[id]
	if !ok {
		return note.Note{}, ErrNotFound
	}
	n.Content = content
	s.notes[id] = n
	return n, nil
}

// DeleteNote removes a note.
func (s *Store) DeleteNote(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.notes[id]; !ok {
		return ErrNotFound
	}
	delete(s.notes, id)
	return nil
}
