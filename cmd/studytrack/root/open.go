package root

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/nhle/studytrack/internal/logger"
	"github.com/nhle/studytrack/internal/model"
	"github.com/nhle/studytrack/internal/store"
	"github.com/nhle/studytrack/internal/theme"
	"github.com/nhle/studytrack/internal/tracker"
)

// session bundles everything a command needs to talk to the tracker.
type session struct {
	cfg     *model.AppConfig
	log     *zap.Logger
	tracker *tracker.Tracker
}

// openSession loads config, applies the theme, builds the logger, opens
// the configured store and restores the tracker from it. cleanup closes
// the store and flushes the log.
func openSession(ctx context.Context, configPath string) (*session, func(), error) {
	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}
	theme.Apply(cfg.Display.Theme)

	log, closeLog, err := logger.New(cfg.Log)
	if err != nil {
		return nil, nil, err
	}

	st, err := store.Open(cfg.Storage)
	if err != nil {
		_ = closeLog()
		return nil, nil, err
	}

	tr := tracker.Open(ctx, st,
		tracker.WithLogger(log),
		tracker.WithLoginFallback(cfg.Session.LoginFallback),
	)

	cleanup := func() {
		if err := st.Close(); err != nil {
			log.Warn("closing store", zap.Error(err))
		}
		_ = closeLog()
	}
	return &session{cfg: cfg, log: log, tracker: tr}, cleanup, nil
}

// requireUser returns the logged-in user or an error telling the caller
// how to log in.
func (s *session) requireUser() (model.User, error) {
	u, ok := s.tracker.CurrentUser()
	if !ok {
		return model.User{}, errors.New("not logged in (run: studytrack login <username>)")
	}
	return u, nil
}
