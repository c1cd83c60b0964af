package storage

import (
	"context"

	"github.com/mcoot/battlebots/internal/model"
)

// JobQueue supplies bots to evaluate, one job at a time
type JobQueue interface {
	PushJob(ctx context.Context, job *model.Job) error
	// PopJob blocks until a job is available or ctx is done
	PopJob(ctx context.Context) (*model.Job, error)
	QueueLength(ctx context.Context) (int64, error)
}

// ResultStore keeps the latest evaluation result for each user
type ResultStore interface {
	// SaveResult replaces any previous result for the same user
	SaveResult(ctx context.Context, result *model.BotResult) error
	GetResult(ctx context.Context, userID model.UserID) (*model.BotResult, error)
	// Leaderboard returns accepted results, fewest average moves first
	Leaderboard(ctx context.Context, limit int) ([]*model.BotResult, error)
}

// Storage is a backend that provides both the queue and the result store
type Storage interface {
	JobQueue
	ResultStore
}
