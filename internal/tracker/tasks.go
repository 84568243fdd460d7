package tracker

import (
	"context"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nhle/studytrack/internal/model"
)

// NewTask carries the caller-supplied fields of a task to create.
type NewTask struct {
	Name             string
	Subject          model.Subject
	EstimatedMinutes int
	Date             string
}

func (n NewTask) validate() error {
	if strings.TrimSpace(n.Name) == "" {
		return invalidf("task name must not be empty")
	}
	if !n.Subject.Valid() {
		return invalidf("unknown subject %q", n.Subject)
	}
	if n.EstimatedMinutes <= 0 {
		return invalidf("estimated minutes must be positive, got %d", n.EstimatedMinutes)
	}
	if _, err := time.Parse(model.DateLayout, n.Date); err != nil {
		return invalidf("date %q is not YYYY-MM-DD", n.Date)
	}
	return nil
}

// AddTask creates a pending task owned by the session user.
func (t *Tracker) AddTask(ctx context.Context, in NewTask) (model.Task, error) {
	return t.addTask(ctx, sessionActor, in)
}

// AddTaskFor creates a pending task owned by userID.
func (t *Tracker) AddTaskFor(ctx context.Context, userID string, in NewTask) (model.Task, error) {
	return t.addTask(ctx, userActor(userID), in)
}

func (t *Tracker) addTask(ctx context.Context, who actor, in NewTask) (model.Task, error) {
	var created model.Task
	err := t.mutate(ctx, func() (Event, error) {
		ui, err := who(t)
		if err != nil {
			return Event{}, err
		}
		if err := in.validate(); err != nil {
			return Event{}, err
		}

		created = model.Task{
			ID:               t.newID(),
			UserID:           t.users[ui].ID,
			Name:             strings.TrimSpace(in.Name),
			Subject:          in.Subject,
			EstimatedMinutes: in.EstimatedMinutes,
			ActualMinutes:    0,
			Status:           model.StatusPending,
			Date:             in.Date,
		}
		t.tasks = append(t.tasks, created)
		return Event{Kind: EventTaskAdded, UserID: created.UserID, TaskID: created.ID}, nil
	})
	if err != nil && created.ID == "" {
		return model.Task{}, err
	}
	t.log.Debug("task added", zap.String("task_id", created.ID), zap.String("user_id", created.UserID))
	return created.Clone(), err
}

// ownedTask resolves the actor and a task the actor owns.
// It runs with the lock held.
func (t *Tracker) ownedTask(who actor, taskID string) (ui, ti int, err error) {
	ui, err = who(t)
	if err != nil {
		return -1, -1, err
	}
	ti = t.taskIndex(taskID)
	if ti < 0 {
		return -1, -1, ErrTaskNotFound
	}
	if t.tasks[ti].UserID != t.users[ui].ID {
		return -1, -1, ErrTaskNotOwned
	}
	return ui, ti, nil
}

// StartTask moves a pending task of the session user to active.
func (t *Tracker) StartTask(ctx context.Context, taskID string) (model.Task, error) {
	return t.startTask(ctx, sessionActor, taskID)
}

// StartTaskFor moves a pending task owned by userID to active.
func (t *Tracker) StartTaskFor(ctx context.Context, userID, taskID string) (model.Task, error) {
	return t.startTask(ctx, userActor(userID), taskID)
}

func (t *Tracker) startTask(ctx context.Context, who actor, taskID string) (model.Task, error) {
	var started model.Task
	err := t.mutate(ctx, func() (Event, error) {
		ui, ti, err := t.ownedTask(who, taskID)
		if err != nil {
			return Event{}, err
		}
		task := &t.tasks[ti]
		if task.Status != model.StatusPending {
			return Event{}, transitionf("task %s is %s, only pending tasks can start", task.ID, task.Status)
		}
		for j := range t.tasks {
			if t.tasks[j].UserID == task.UserID && t.tasks[j].Status == model.StatusActive {
				return Event{}, ErrActiveTaskExists
			}
		}

		now := t.now()
		task.Status = model.StatusActive
		task.StartedAt = &now
		t.users[ui].CurrentActivity = activityFor(*task, now)

		started = task.Clone()
		return Event{Kind: EventTaskStarted, UserID: task.UserID, TaskID: task.ID}, nil
	})
	if err != nil && started.ID == "" {
		return model.Task{}, err
	}
	t.log.Debug("task started", zap.String("task_id", started.ID))
	return started, err
}

// CompleteTask finishes the session user's active task. The task becomes
// delayed when minutesTaken exceeds its estimate, completed otherwise.
func (t *Tracker) CompleteTask(ctx context.Context, taskID string, minutesTaken int) (model.Task, error) {
	return t.completeTask(ctx, sessionActor, taskID, minutesTaken)
}

// CompleteTaskFor finishes an active task owned by userID.
func (t *Tracker) CompleteTaskFor(ctx context.Context, userID, taskID string, minutesTaken int) (model.Task, error) {
	return t.completeTask(ctx, userActor(userID), taskID, minutesTaken)
}

func (t *Tracker) completeTask(ctx context.Context, who actor, taskID string, minutesTaken int) (model.Task, error) {
	var done model.Task
	err := t.mutate(ctx, func() (Event, error) {
		ui, ti, err := t.ownedTask(who, taskID)
		if err != nil {
			return Event{}, err
		}
		if minutesTaken < 0 {
			return Event{}, invalidf("minutes taken must not be negative, got %d", minutesTaken)
		}
		task := &t.tasks[ti]
		if task.Status != model.StatusActive {
			return Event{}, transitionf("task %s is %s, only active tasks can complete", task.ID, task.Status)
		}

		now := t.now()
		task.Status = CompletionStatus(task.EstimatedMinutes, minutesTaken)
		task.CompletedAt = &now
		task.ActualMinutes = minutesTaken

		u := &t.users[ui]
		u.CurrentActivity = nil
		u.TasksCompleted++
		u.TotalStudyMinutes += minutesTaken
		u.SuccessRate = SuccessRate(t.tasks, u.ID)

		done = task.Clone()
		return Event{Kind: EventTaskCompleted, UserID: u.ID, TaskID: task.ID}, nil
	})
	if err != nil && done.ID == "" {
		return model.Task{}, err
	}
	t.log.Debug("task completed",
		zap.String("task_id", done.ID),
		zap.String("status", string(done.Status)),
		zap.Int("minutes", done.ActualMinutes),
	)
	return done, err
}

// SkipTask marks a pending task of the session user as skipped.
func (t *Tracker) SkipTask(ctx context.Context, taskID string) (model.Task, error) {
	return t.skipTask(ctx, sessionActor, taskID)
}

// SkipTaskFor marks a pending task owned by userID as skipped.
func (t *Tracker) SkipTaskFor(ctx context.Context, userID, taskID string) (model.Task, error) {
	return t.skipTask(ctx, userActor(userID), taskID)
}

func (t *Tracker) skipTask(ctx context.Context, who actor, taskID string) (model.Task, error) {
	var skipped model.Task
	err := t.mutate(ctx, func() (Event, error) {
		_, ti, err := t.ownedTask(who, taskID)
		if err != nil {
			return Event{}, err
		}
		task := &t.tasks[ti]
		if task.Status != model.StatusPending {
			return Event{}, transitionf("task %s is %s, only pending tasks can be skipped", task.ID, task.Status)
		}
		task.Status = model.StatusSkipped
		skipped = task.Clone()
		return Event{Kind: EventTaskSkipped, UserID: task.UserID, TaskID: task.ID}, nil
	})
	if err != nil && skipped.ID == "" {
		return model.Task{}, err
	}
	return skipped, err
}

// CompletionStatus applies the estimate rule: over the estimate is
// delayed, anything up to and including it is completed.
func CompletionStatus(estimatedMinutes, minutesTaken int) model.TaskStatus {
	if minutesTaken > estimatedMinutes {
		return model.StatusDelayed
	}
	return model.StatusCompleted
}

// SuccessRate is the rounded percentage of a user's finished tasks that
// ended completed rather than delayed. It is 0 with no finished tasks.
func SuccessRate(tasks []model.Task, userID string) int {
	finished, completed := 0, 0
	for _, task := range tasks {
		if task.UserID != userID || !task.Status.Finished() {
			continue
		}
		finished++
		if task.Status == model.StatusCompleted {
			completed++
		}
	}
	if finished == 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(finished)))
}
