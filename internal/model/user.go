package model

import (
	"strings"
	"time"
)

// Activity describes the task a user is running right now.
type Activity struct {
	TaskID    string    `json:"taskId"`
	TaskName  string    `json:"taskName"`
	Subject   Subject   `json:"subject"`
	StartedAt time.Time `json:"startedAt"`
}

// User is a tracked member of the study group.
type User struct {
	// ID is the unique identifier for this user.
	ID string `json:"id"`

	// Username is unique and used for login lookup.
	Username string `json:"username"`

	DisplayName string `json:"displayName"`

	// AvatarColor is a hex color such as "#00f5ff".
	AvatarColor string `json:"avatarColor"`

	// Streak is a display value set externally; nothing recomputes it.
	Streak int `json:"streak"`

	TotalStudyMinutes int `json:"totalStudyMinutes"`
	TasksCompleted    int `json:"tasksCompleted"`

	// SuccessRate is a rounded percentage in [0, 100].
	SuccessRate int `json:"successRate"`

	IsOnline bool `json:"isOnline"`

	// CurrentActivity is set iff the user has exactly one active task.
	CurrentActivity *Activity `json:"currentActivity,omitempty"`
}

// Clone returns a copy that shares no pointers with u.
func (u User) Clone() User {
	if u.CurrentActivity != nil {
		a := *u.CurrentActivity
		u.CurrentActivity = &a
	}
	return u
}

// Equal reports whether u and o hold the same values, comparing the
// activity by content.
func (u User) Equal(o User) bool {
	if (u.CurrentActivity == nil) != (o.CurrentActivity == nil) {
		return false
	}
	if u.CurrentActivity != nil && !u.CurrentActivity.Equal(*o.CurrentActivity) {
		return false
	}
	return u.ID == o.ID &&
		u.Username == o.Username &&
		u.DisplayName == o.DisplayName &&
		u.AvatarColor == o.AvatarColor &&
		u.Streak == o.Streak &&
		u.TotalStudyMinutes == o.TotalStudyMinutes &&
		u.TasksCompleted == o.TasksCompleted &&
		u.SuccessRate == o.SuccessRate &&
		u.IsOnline == o.IsOnline
}

// Equal reports whether a and o describe the same running task.
func (a Activity) Equal(o Activity) bool {
	return a.TaskID == o.TaskID &&
		a.TaskName == o.TaskName &&
		a.Subject == o.Subject &&
		a.StartedAt.Equal(o.StartedAt)
}

// Initials returns the first two letters of the display name, upper-cased.
func (u User) Initials() string {
	r := []rune(u.DisplayName)
	if len(r) > 2 {
		r = r[:2]
	}
	return strings.ToUpper(string(r))
}

// StudyHours returns total study time rounded to whole hours.
func (u User) StudyHours() int {
	return (u.TotalStudyMinutes + 30) / 60
}
