package tracker

import (
	"time"

	"github.com/nhle/studytrack/internal/model"
)

// SeedSnapshot returns the built-in dataset used when nothing valid has
// been persisted: three users and two tasks for the given day.
func SeedSnapshot(now time.Time) model.Snapshot {
	today := model.Today(now)
	return model.Snapshot{
		SchemaVersion: model.SchemaVersion,
		Users: []model.User{
			{
				ID:                "u1",
				Username:          "topper_01",
				DisplayName:       "Aravind",
				AvatarColor:       "#00f5ff",
				Streak:            22,
				TotalStudyMinutes: 2280,
				TasksCompleted:    45,
				SuccessRate:       92,
				IsOnline:          true,
			},
			{
				ID:                "u2",
				Username:          "jee_aspirant",
				DisplayName:       "Priya",
				AvatarColor:       "#bf5af2",
				Streak:            15,
				TotalStudyMinutes: 2100,
				TasksCompleted:    40,
				SuccessRate:       88,
			},
			{
				ID:                "u3",
				Username:          "physics_lover",
				DisplayName:       "Rahul",
				AvatarColor:       "#30d158",
				Streak:            8,
				TotalStudyMinutes: 1920,
				TasksCompleted:    38,
				SuccessRate:       85,
				IsOnline:          true,
			},
		},
		Tasks: []model.Task{
			{
				ID:               "t1",
				UserID:           "u1",
				Name:             "Integration Calculus",
				Subject:          model.SubjectMaths,
				EstimatedMinutes: 60,
				ActualMinutes:    55,
				Status:           model.StatusCompleted,
				Date:             today,
			},
			{
				ID:               "t2",
				UserID:           "u1",
				Name:             "Electrostatics Theory",
				Subject:          model.SubjectPhysics,
				EstimatedMinutes: 90,
				Status:           model.StatusPending,
				Date:             today,
			},
		},
	}
}
