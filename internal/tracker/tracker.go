// Package tracker holds the study-task lifecycle and activity-tracking
// store. All records live in memory; every successful mutation is written
// to a store.Store before it returns and then announced to listeners.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nhle/studytrack/internal/model"
	"github.com/nhle/studytrack/internal/store"
)

// Tracker is the single owner of all user and task records.
type Tracker struct {
	mu            sync.Mutex
	store         store.Store
	users         []model.User
	tasks         []model.Task
	currentUserID string

	loginFallback bool
	now           func() time.Time
	newID         func() string
	log           *zap.Logger
	hub           *hub
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(t *Tracker) {
		if l != nil {
			t.log = l
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		if now != nil {
			t.now = now
		}
	}
}

// WithIDGenerator replaces the UUID task id generator.
func WithIDGenerator(gen func() string) Option {
	return func(t *Tracker) {
		if gen != nil {
			t.newID = gen
		}
	}
}

// WithLoginFallback makes Login select the first user when the username
// is unknown instead of failing.
func WithLoginFallback(enabled bool) Option {
	return func(t *Tracker) { t.loginFallback = enabled }
}

// Open builds a tracker from the snapshot persisted in st. A missing,
// malformed or incompatible snapshot is logged and replaced by the seed
// dataset; Open itself never fails.
func Open(ctx context.Context, st store.Store, opts ...Option) *Tracker {
	t := &Tracker{
		store: st,
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.hub = newHub(t.log)

	snap, err := st.Load(ctx)
	switch {
	case err == nil:
		t.restore(*snap)
	case errors.Is(err, store.ErrNoSnapshot):
		t.log.Info("no saved state, using seed data")
		t.restore(SeedSnapshot(t.now()))
	default:
		t.log.Warn("discarding unreadable saved state, using seed data", zap.Error(err))
		t.restore(SeedSnapshot(t.now()))
	}
	return t
}

// restore replaces the in-memory state with snap and repairs any
// currentActivity that disagrees with the active tasks.
func (t *Tracker) restore(snap model.Snapshot) {
	t.users = make([]model.User, len(snap.Users))
	for i, u := range snap.Users {
		t.users[i] = u.Clone()
	}
	t.tasks = make([]model.Task, len(snap.Tasks))
	for i, task := range snap.Tasks {
		t.tasks[i] = task.Clone()
	}

	t.currentUserID = ""
	if snap.CurrentUser != nil {
		if t.userIndex(snap.CurrentUser.ID) >= 0 {
			t.currentUserID = snap.CurrentUser.ID
		} else {
			t.log.Warn("saved session user no longer exists", zap.String("user_id", snap.CurrentUser.ID))
		}
	}

	for i := range t.users {
		t.reconcileActivity(i)
	}
}

// reconcileActivity derives users[i].CurrentActivity from the user's
// active tasks.
func (t *Tracker) reconcileActivity(i int) {
	u := &t.users[i]
	var active []int
	for j := range t.tasks {
		if t.tasks[j].UserID == u.ID && t.tasks[j].Status == model.StatusActive {
			active = append(active, j)
		}
	}

	switch len(active) {
	case 0:
		if u.CurrentActivity != nil {
			t.log.Warn("clearing activity without an active task", zap.String("user_id", u.ID))
			u.CurrentActivity = nil
		}
	case 1:
		task := t.tasks[active[0]]
		if u.CurrentActivity == nil || u.CurrentActivity.TaskID != task.ID {
			u.CurrentActivity = activityFor(task, t.now())
		}
	default:
		t.log.Warn("user has several active tasks", zap.String("user_id", u.ID), zap.Int("active", len(active)))
	}
}

func activityFor(task model.Task, fallback time.Time) *model.Activity {
	started := fallback
	if task.StartedAt != nil {
		started = *task.StartedAt
	}
	return &model.Activity{
		TaskID:    task.ID,
		TaskName:  task.Name,
		Subject:   task.Subject,
		StartedAt: started,
	}
}

// Subscribe registers fn for change events and returns a func that
// removes it. Calling the returned func more than once is harmless.
func (t *Tracker) Subscribe(fn Listener) (unsubscribe func()) {
	return t.hub.subscribe(fn)
}

// mutate runs fn under the lock, persists the result and notifies
// listeners. fn must validate before it changes anything so that a
// rejected operation leaves no trace.
func (t *Tracker) mutate(ctx context.Context, fn func() (Event, error)) error {
	t.mu.Lock()
	ev, err := fn()
	if err != nil {
		t.mu.Unlock()
		return err
	}
	saveErr := t.store.Save(ctx, t.snapshotLocked())
	t.mu.Unlock()

	if saveErr != nil {
		t.log.Error("persisting state", zap.String("event", string(ev.Kind)), zap.Error(saveErr))
	}
	t.hub.publish(ev)

	if saveErr != nil {
		return fmt.Errorf("persisting state: %w", saveErr)
	}
	return nil
}

// Snapshot returns a deep copy of the current state.
func (t *Tracker) Snapshot() model.Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked()
}

func (t *Tracker) snapshotLocked() model.Snapshot {
	snap := model.Snapshot{
		SchemaVersion: model.SchemaVersion,
		Users:         t.copyUsers(),
		Tasks:         make([]model.Task, len(t.tasks)),
	}
	for i, task := range t.tasks {
		snap.Tasks[i] = task.Clone()
	}
	if i := t.userIndex(t.currentUserID); i >= 0 {
		u := t.users[i].Clone()
		snap.CurrentUser = &u
	}
	return snap
}

func (t *Tracker) copyUsers() []model.User {
	out := make([]model.User, len(t.users))
	for i, u := range t.users {
		out[i] = u.Clone()
	}
	return out
}

func (t *Tracker) userIndex(id string) int {
	if id == "" {
		return -1
	}
	for i := range t.users {
		if t.users[i].ID == id {
			return i
		}
	}
	return -1
}

func (t *Tracker) taskIndex(id string) int {
	for i := range t.tasks {
		if t.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// actor resolves the acting user's index. It runs with the lock held.
type actor func(t *Tracker) (int, error)

func sessionActor(t *Tracker) (int, error) {
	i := t.userIndex(t.currentUserID)
	if i < 0 {
		return -1, ErrNoSession
	}
	return i, nil
}

func userActor(userID string) actor {
	return func(t *Tracker) (int, error) {
		i := t.userIndex(userID)
		if i < 0 {
			return -1, ErrUserNotFound
		}
		return i, nil
	}
}
