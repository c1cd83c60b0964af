package testutil

import (
	"time"

	"github.com/mcoot/battlebots/internal/model"
)

// NewJob returns a valid job for the given user and bot
func NewJob(id, userID, botID string) *model.Job {
	return &model.Job{
		ID:         model.JobID(id),
		UserID:     model.UserID(userID),
		BotID:      botID,
		EnqueuedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// AcceptedResult returns an accepted result for userID with the given average
func AcceptedResult(userID string, average float64) *model.BotResult {
	job := NewJob("job-"+userID, userID, "bot-"+userID)
	return model.NewAcceptedResult(job, average, time.Date(2024, 1, 1, 0, 1, 0, 0, time.UTC))
}

// RejectedResult returns a rejected result for userID that timed out
func RejectedResult(userID string) *model.BotResult {
	job := NewJob("job-"+userID, userID, "bot-"+userID)
	failure := model.NewTimeoutFailure(model.NewShotBoard().String())
	return model.NewRejectedResult(job, failure, time.Date(2024, 1, 1, 0, 1, 0, 0, time.UTC))
}
