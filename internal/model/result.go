package model

import "time"

// ResultStatus is the outcome of evaluating a bot
type ResultStatus string

const (
	ResultAccepted ResultStatus = "accepted"
	ResultRejected ResultStatus = "rejected"
)

// BotResult is the latest evaluation outcome for a user
type BotResult struct {
	UserID UserID       `json:"user_id"`
	BotID  string       `json:"bot_id"`
	JobID  JobID        `json:"job_id"`
	Status ResultStatus `json:"status"`

	// AverageMoves is the tournament score, set when accepted
	AverageMoves float64 `json:"average_moves,omitempty"`
	// Failure is the rejection reason, set when rejected
	Failure *BotFailure `json:"failure,omitempty"`

	CompletedAt time.Time `json:"completed_at"`
}

// NewAcceptedResult records a bot that completed every game of its tournament
func NewAcceptedResult(job *Job, average float64, completedAt time.Time) *BotResult {
	return &BotResult{
		UserID:       job.UserID,
		BotID:        job.BotID,
		JobID:        job.ID,
		Status:       ResultAccepted,
		AverageMoves: average,
		CompletedAt:  completedAt,
	}
}

// NewRejectedResult records a bot that failed during its tournament
func NewRejectedResult(job *Job, failure *BotFailure, completedAt time.Time) *BotResult {
	return &BotResult{
		UserID:      job.UserID,
		BotID:       job.BotID,
		JobID:       job.ID,
		Status:      ResultRejected,
		Failure:     failure,
		CompletedAt: completedAt,
	}
}
