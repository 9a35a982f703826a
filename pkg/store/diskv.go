// Package store keeps the last fetched backend data on disk so the CLI can
// show the week grid, goals, and habits while offline. Snapshots are
// write-through: every successful fetch overwrites the previous one.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/mercury/pkg/goal"
	"tableflip.dev/mercury/pkg/habit"
)

// ErrNoSnapshot is returned when nothing has been cached under a key yet.
var ErrNoSnapshot = errors.New("store: no snapshot")

// Config locates the cache on disk.
type Config interface {
	BasePath() string
}

// Snapshots is the offline cache contract. Reads return the snapshot plus
// the time it was taken so callers can label stale data.
type Snapshots interface {
	SaveWeek(userID int64, weekStart string, tasks []habit.Task) error
	Week(userID int64, weekStart string) ([]habit.Task, time.Time, error)
	SaveHabits(userID int64, habits []habit.Habit) error
	Habits(userID int64) ([]habit.Habit, time.Time, error)
	SaveGoals(userID int64, goals []goal.Goal) error
	Goals(userID int64) ([]goal.Goal, time.Time, error)
	CachedWeeks(ctx context.Context, userID int64) []string
	Forget(ctx context.Context, userID int64) error
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Snapshots cache backed by diskv at the configured path.
func Load(cfg Config) (Snapshots, error) {
	if cfg == nil {
		return nil, errors.New("store: config required")
	}
	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: cache path required")
	}
	return &snapshots{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

type snapshots struct {
	d        *diskv.Diskv
	basePath string
}

// envelope wraps every snapshot with the fetch time.
type envelope struct {
	FetchedAt time.Time       `json:"fetchedAt"`
	Data      json.RawMessage `json:"data"`
}

func (s *snapshots) write(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", key, err)
	}
	env, err := json.Marshal(envelope{FetchedAt: time.Now(), Data: data})
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", key, err)
	}
	if err := s.d.Write(key, env); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

func (s *snapshots) read(key string, v interface{}) (time.Time, error) {
	raw, err := s.d.Read(key)
	if err != nil {
		return time.Time{}, ErrNoSnapshot
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return time.Time{}, fmt.Errorf("store: decode %s: %w", key, err)
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		return time.Time{}, fmt.Errorf("store: decode %s: %w", key, err)
	}
	return env.FetchedAt, nil
}

func (s *snapshots) SaveWeek(userID int64, weekStart string, tasks []habit.Task) error {
	return s.write(weekKey(userID, weekStart), tasks)
}

func (s *snapshots) Week(userID int64, weekStart string) ([]habit.Task, time.Time, error) {
	var tasks []habit.Task
	at, err := s.read(weekKey(userID, weekStart), &tasks)
	if err != nil {
		return nil, time.Time{}, err
	}
	return tasks, at, nil
}

func (s *snapshots) SaveHabits(userID int64, habits []habit.Habit) error {
	return s.write(habitsKey(userID), habits)
}

func (s *snapshots) Habits(userID int64) ([]habit.Habit, time.Time, error) {
	var habits []habit.Habit
	at, err := s.read(habitsKey(userID), &habits)
	if err != nil {
		return nil, time.Time{}, err
	}
	return habits, at, nil
}

func (s *snapshots) SaveGoals(userID int64, goals []goal.Goal) error {
	return s.write(goalsKey(userID), goals)
}

func (s *snapshots) Goals(userID int64) ([]goal.Goal, time.Time, error) {
	var goals []goal.Goal
	at, err := s.read(goalsKey(userID), &goals)
	if err != nil {
		return nil, time.Time{}, err
	}
	return goals, at, nil
}

// CachedWeeks lists the week-start dates with a stored snapshot, oldest
// first.
func (s *snapshots) CachedWeeks(ctx context.Context, userID int64) []string {
	prefix := fmt.Sprintf("week-%d-", userID)
	weeks := make([]string, 0)
	for key := range s.d.Keys(ctx.Done()) {
		if strings.HasPrefix(key, prefix) {
			weeks = append(weeks, strings.TrimPrefix(key, prefix))
		}
	}
	sort.Strings(weeks)
	return weeks
}

// Forget drops every snapshot belonging to a user, e.g. on sign-out.
func (s *snapshots) Forget(ctx context.Context, userID int64) error {
	marker := fmt.Sprintf("-%d-", userID)
	for key := range s.d.Keys(ctx.Done()) {
		if !strings.Contains(key, marker) {
			continue
		}
		if err := s.d.Erase(key); err != nil {
			return fmt.Errorf("store: erase %s: %w", key, err)
		}
	}
	return nil
}

func weekKey(userID int64, weekStart string) string {
	return fmt.Sprintf("week-%d-%s", userID, weekStart)
}

func habitsKey(userID int64) string {
	return fmt.Sprintf("habits-%d-all", userID)
}

func goalsKey(userID int64) string {
	return fmt.Sprintf("goals-%d-all", userID)
}

// Keys nest on dashes, so week-42-2025-06-01 lands under week/42/2025/06/01
// and transforms back losslessly.
func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}
