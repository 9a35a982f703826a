package app

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"tableflip.dev/mercury/pkg/api"
	"tableflip.dev/mercury/pkg/goal"
	"tableflip.dev/mercury/pkg/habit"
	"tableflip.dev/mercury/pkg/note"
	"tableflip.dev/mercury/pkg/store"
	"tableflip.dev/mercury/pkg/timeutil"
)

type fakeBackend struct {
	offline bool

	tasks  []habit.Task
	habits []habit.Habit
	goals  []goal.Goal
	notes  []note.Note

	toggled   []int64
	ranges    [][2]string
	goalEdits []api.UpdateGoalRequest
}

var errOffline = errors.New("connection refused")

func (f *fakeBackend) TasksByDateRange(ctx context.Context, userID int64, startDate, endDate string) ([]habit.Task, error) {
	if f.offline {
		return nil, errOffline
	}
	f.ranges = append(f.ranges, [2]string{startDate, endDate})
	return f.tasks, nil
}

func (f *fakeBackend) ToggleTask(ctx context.Context, id int64) (*habit.Task, error) {
	if f.offline {
		return nil, errOffline
	}
	f.toggled = append(f.toggled, id)
	return &habit.Task{ID: id, Completed: true}, nil
}

func (f *fakeBackend) HabitsByUser(ctx context.Context, userID int64) ([]habit.Habit, error) {
	if f.offline {
		return nil, errOffline
	}
	return f.habits, nil
}

func (f *fakeBackend) GoalsByUser(ctx context.Context, userID int64) ([]goal.Goal, error) {
	if f.offline {
		return nil, errOffline
	}
	return f.goals, nil
}

func (f *fakeBackend) ActiveGoalsByUser(ctx context.Context, userID int64) ([]goal.Goal, error) {
	if f.offline {
		return nil, errOffline
	}
	active := make([]goal.Goal, 0, len(f.goals))
	for _, g := range f.goals {
		if g.Status == goal.StatusInProgress || g.Status == goal.StatusNotStarted {
			active = append(active, g)
		}
	}
	return active, nil
}

func (f *fakeBackend) UpdateGoal(ctx context.Context, id int64, req api.UpdateGoalRequest) (*goal.Goal, error) {
	if f.offline {
		return nil, errOffline
	}
	f.goalEdits = append(f.goalEdits, req)
	return &goal.Goal{ID: id, Title: req.Title, Description: req.Description, StartDate: req.StartDate, EndDate: req.EndDate}, nil
}

func (f *fakeBackend) UpdateGoalStatus(ctx context.Context, id int64, status goal.Status) (*goal.Goal, error) {
	if f.offline {
		return nil, errOffline
	}
	return &goal.Goal{ID: id, Status: status}, nil
}

func (f *fakeBackend) DeleteGoal(ctx context.Context, id int64) error {
	if f.offline {
		return errOffline
	}
	return nil
}

func (f *fakeBackend) DeleteHabit(ctx context.Context, id int64) error {
	if f.offline {
		return errOffline
	}
	return nil
}

func (f *fakeBackend) CreateNote(ctx context.Context, req api.CreateNoteRequest) (*note.Note, error) {
	if f.offline {
		return nil, errOffline
	}
	n := note.Note{ID: int64(len(f.notes) + 1), Content: req.Content, GoalID: req.GoalID}
	f.notes = append(f.notes, n)
	return &n, nil
}

func (f *fakeBackend) NotesByGoal(ctx context.Context, goalID int64) ([]note.Note, error) {
	if f.offline {
		return nil, errOffline
	}
	return f.notes, nil
}

func (f *fakeBackend) UpdateNote(ctx context.Context, id int64, content string) (*note.Note, error) {
	if f.offline {
		return nil, errOffline
	}
	return &note.Note{ID: id, Content: content}, nil
}

func (f *fakeBackend) DeleteNote(ctx context.Context, id int64) error {
	if f.offline {
		return errOffline
	}
	return nil
}

type testConfig struct{ path string }

func (t testConfig) BasePath() string { return t.path }

func newService(t *testing.T, backend *fakeBackend) *Service {
	t.Helper()
	cache, err := store.Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load cache: %v", err)
	}
	return &Service{Backend: backend, Cache: cache, UserID: 42}
}

func TestServiceWeekOnlineCachesAndOfflineFallsBack(t *testing.T) {
	backend := &fakeBackend{tasks: []habit.Task{
		{ID: 1, Name: "Morning run - Monday", Date: "2025-06-02"},
	}}
	svc := newService(t, backend)
	w := timeutil.WindowFor(time.Date(2025, time.June, 5, 12, 0, 0, 0, time.UTC))

	res, err := svc.Week(context.Background(), w)
	if err != nil {
		t.Fatal(err)
	}
	if res.Offline {
		t.Error("online fetch marked offline")
	}
	if len(backend.ranges) != 1 || backend.ranges[0] != [2]string{"2025-06-01", "2025-06-07"} {
		t.Errorf("ranges = %v, want one 2025-06-01..2025-06-07", backend.ranges)
	}

	backend.offline = true
	res, err = svc.Week(context.Background(), w)
	if err != nil {
		t.Fatalf("offline fallback failed: %v", err)
	}
	if !res.Offline {
		t.Error("cache hit not marked offline")
	}
	if len(res.Tasks) != 1 || res.Tasks[0].Name != "Morning run - Monday" {
		t.Errorf("cached tasks = %+v", res.Tasks)
	}
	if res.FetchedAt.IsZero() {
		t.Error("offline result missing fetch time")
	}
}

func TestServiceWeekOfflineWithoutSnapshotFails(t *testing.T) {
	svc := newService(t, &fakeBackend{offline: true})
	w := timeutil.WindowFor(time.Date(2025, time.June, 5, 12, 0, 0, 0, time.UTC))
	if _, err := svc.Week(context.Background(), w); !errors.Is(err, errOffline) {
		t.Errorf("err = %v, want the backend failure", err)
	}
}

func TestServiceGoalsActiveFiltering(t *testing.T) {
	backend := &fakeBackend{goals: []goal.Goal{
		{ID: 1, Title: "Learn Spanish", Status: goal.StatusInProgress},
		{ID: 2, Title: "Old goal", Status: goal.StatusCompleted},
	}}
	svc := newService(t, backend)

	all, _, err := svc.Goals(context.Background(), false)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Errorf("all goals = %d, want 2", len(all))
	}

	active, _, err := svc.Goals(context.Background(), true)
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != 1 || active[0].Title != "Learn Spanish" {
		t.Errorf("active goals = %+v", active)
	}
}

func TestServiceToggleRequiresBackend(t *testing.T) {
	backend := &fakeBackend{}
	svc := newService(t, backend)

	got, err := svc.Toggle(context.Background(), 9)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Completed || len(backend.toggled) != 1 || backend.toggled[0] != 9 {
		t.Errorf("toggle did not reach backend: %+v %v", got, backend.toggled)
	}

	backend.offline = true
	if _, err := svc.Toggle(context.Background(), 9); err == nil {
		t.Error("offline toggle should fail, never serve from cache")
	}
}

func TestServiceAddNoteRejectsEmpty(t *testing.T) {
	backend := &fakeBackend{}
	svc := newService(t, backend)
	if _, err := svc.AddNote(context.Background(), 1, "   "); err == nil {
		t.Error("blank note accepted")
	}
	if len(backend.notes) != 0 {
		t.Errorf("blank note reached backend: %+v", backend.notes)
	}
	if _, err := svc.AddNote(context.Background(), 1, "Week one went well"); err != nil {
		t.Fatal(err)
	}
}

func TestServiceEditGoalValidatesFields(t *testing.T) {
	backend := &fakeBackend{}
	svc := newService(t, backend)

	long := strings.Repeat("x", goal.MaxTitleLen+1)
	if _, err := svc.EditGoal(context.Background(), 7, api.UpdateGoalRequest{Title: long}); err == nil {
		t.Error("oversized title accepted")
	}
	if _, err := svc.EditGoal(context.Background(), 7, api.UpdateGoalRequest{StartDate: "2025-09-01", EndDate: "2025-06-01"}); err == nil {
		t.Error("inverted dates accepted")
	}
	if len(backend.goalEdits) != 0 {
		t.Errorf("invalid edits reached backend: %+v", backend.goalEdits)
	}

	g, err := svc.EditGoal(context.Background(), 7, api.UpdateGoalRequest{Title: "Read more fiction"})
	if err != nil {
		t.Fatal(err)
	}
	if g.Title != "Read more fiction" || len(backend.goalEdits) != 1 {
		t.Errorf("edit did not round-trip: %+v %v", g, backend.goalEdits)
	}
}

func TestServiceEditNoteRejectsEmpty(t *testing.T) {
	backend := &fakeBackend{}
	svc := newService(t, backend)

	if _, err := svc.EditNote(context.Background(), 12, "  "); err == nil {
		t.Error("blank edit accepted")
	}
	n, err := svc.EditNote(context.Background(), 12, "Second week went better")
	if err != nil {
		t.Fatal(err)
	}
	if n.ID != 12 || n.Content != "Second week went better" {
		t.Errorf("edited note = %+v", n)
	}
}

func TestServiceSyncPopulatesCache(t *testing.T) {
	backend := &fakeBackend{
		goals:  []goal.Goal{{ID: 1, Title: "Read more"}},
		habits: []habit.Habit{{ID: 2, Name: "Nightly chapter"}},
	}
	svc := newService(t, backend)
	now := time.Date(2025, time.June, 5, 12, 0, 0, 0, time.UTC)

	if err := svc.Sync(context.Background(), now); err != nil {
		t.Fatal(err)
	}

	weeks := svc.Cache.CachedWeeks(context.Background(), 42)
	want := []string{"2025-05-25", "2025-06-01", "2025-06-08"}
	if len(weeks) != len(want) {
		t.Fatalf("cached weeks = %v, want %v", weeks, want)
	}
	for i := range want {
		if weeks[i] != want[i] {
			t.Errorf("cached weeks = %v, want %v", weeks, want)
			break
		}
	}

	backend.offline = true
	goals, offline, err := svc.Goals(context.Background(), false)
	if err != nil || !offline || len(goals) != 1 {
		t.Errorf("goals after sync: %v %v %v", goals, offline, err)
	}
	habits, offline, err := svc.Habits(context.Background())
	if err != nil || !offline || len(habits) != 1 {
		t.Errorf("habits after sync: %v %v %v", habits, offline, err)
	}
}
