package tracker

import (
	"math"
	"sort"
	"time"

	"github.com/nhle/studytrack/internal/model"
)

// Users returns copies of every user in stored order.
func (t *Tracker) Users() []model.User {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.copyUsers()
}

// User returns a copy of the user with the given id.
func (t *Tracker) User(id string) (model.User, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	i := t.userIndex(id)
	if i < 0 {
		return model.User{}, false
	}
	return t.users[i].Clone(), true
}

// TasksForDate returns the user's tasks scheduled on date, in creation order.
func (t *Tracker) TasksForDate(userID, date string) []model.Task {
	t.mu.Lock()
	defer t.mu.Unlock()
	var out []model.Task
	for _, task := range t.tasks {
		if task.UserID == userID && task.Date == date {
			out = append(out, task.Clone())
		}
	}
	return out
}

// Task returns a copy of the task with the given id.
func (t *Tracker) Task(id string) (model.Task, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	i := t.taskIndex(id)
	if i < 0 {
		return model.Task{}, false
	}
	return t.tasks[i].Clone(), true
}

// ActiveTask returns the user's active task, if any.
func (t *Tracker) ActiveTask(userID string) (model.Task, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, task := range t.tasks {
		if task.UserID == userID && task.Status == model.StatusActive {
			return task.Clone(), true
		}
	}
	return model.Task{}, false
}

// Leaderboard returns all users sorted by tasks completed, highest first.
// Ties keep stored order.
func (t *Tracker) Leaderboard() []model.User {
	t.mu.Lock()
	users := t.copyUsers()
	t.mu.Unlock()

	sort.SliceStable(users, func(i, j int) bool {
		return users[i].TasksCompleted > users[j].TasksCompleted
	})
	return users
}

// Rank is the user's 1-based leaderboard position, or 0 if unknown.
func (t *Tracker) Rank(userID string) int {
	for i, u := range t.Leaderboard() {
		if u.ID == userID {
			return i + 1
		}
	}
	return 0
}

// Progress summarises one user's tasks for one day.
type Progress struct {
	Total    int
	Finished int
	Percent  int
}

// DailyProgress counts the user's finished tasks on date.
func (t *Tracker) DailyProgress(userID, date string) Progress {
	var p Progress
	for _, task := range t.TasksForDate(userID, date) {
		p.Total++
		if task.Status.Finished() {
			p.Finished++
		}
	}
	if p.Total > 0 {
		p.Percent = int(math.Round(100 * float64(p.Finished) / float64(p.Total)))
	}
	return p
}

// DayCount is the number of finished tasks planned for one date.
type DayCount struct {
	Date     string
	Finished int
}

// FinishedByDay returns one entry per day for the days ending on end,
// oldest first. Days without finished tasks count 0.
func (t *Tracker) FinishedByDay(userID string, end time.Time, days int) []DayCount {
	if days <= 0 {
		return nil
	}
	out := make([]DayCount, days)
	index := make(map[string]int, days)
	for i := range out {
		date := model.Today(end.AddDate(0, 0, i-days+1))
		out[i].Date = date
		index[date] = i
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	for _, task := range t.tasks {
		if task.UserID != userID || !task.Status.Finished() {
			continue
		}
		if i, ok := index[task.Date]; ok {
			out[i].Finished++
		}
	}
	return out
}
