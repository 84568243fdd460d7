package tracker

import (
	"context"

	"go.uber.org/zap"

	"github.com/nhle/studytrack/internal/model"
)

// Login makes the user with the exact username the session user.
// An unknown username returns ErrUserNotFound and leaves the session
// unchanged, unless login fallback is enabled, in which case the first
// user is selected.
func (t *Tracker) Login(ctx context.Context, username string) (model.User, error) {
	var user model.User
	err := t.mutate(ctx, func() (Event, error) {
		i := -1
		for j := range t.users {
			if t.users[j].Username == username {
				i = j
				break
			}
		}
		if i < 0 {
			if !t.loginFallback || len(t.users) == 0 {
				return Event{}, ErrUserNotFound
			}
			t.log.Info("unknown username, falling back to first user",
				zap.String("username", username),
				zap.String("user_id", t.users[0].ID),
			)
			i = 0
		}
		t.currentUserID = t.users[i].ID
		user = t.users[i].Clone()
		return Event{Kind: EventLogin, UserID: user.ID}, nil
	})
	if err != nil && user.ID == "" {
		return model.User{}, err
	}
	t.log.Info("logged in", zap.String("user_id", user.ID))
	return user, err
}

// Logout clears the session user.
func (t *Tracker) Logout(ctx context.Context) error {
	var userID string
	err := t.mutate(ctx, func() (Event, error) {
		userID = t.currentUserID
		t.currentUserID = ""
		return Event{Kind: EventLogout, UserID: userID}, nil
	})
	t.log.Info("logged out", zap.String("user_id", userID))
	return err
}

// CurrentUser returns a copy of the session user.
func (t *Tracker) CurrentUser() (model.User, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	i := t.userIndex(t.currentUserID)
	if i < 0 {
		return model.User{}, false
	}
	return t.users[i].Clone(), true
}
