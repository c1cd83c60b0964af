package submission

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mcoot/battlebots/internal/dependencies/clock"
	"github.com/mcoot/battlebots/internal/model"
	"github.com/mcoot/battlebots/internal/storage"
)

// Service accepts bot submissions and answers result queries
type Service struct {
	queue   storage.JobQueue
	results storage.ResultStore
	clock   clock.Clock
	newID   func() string
	logger  *slog.Logger
}

// New creates a new submission Service
func New(queue storage.JobQueue, results storage.ResultStore, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		queue:   queue,
		results: results,
		clock:   clk,
		newID:   uuid.NewString,
		logger:  logger.With(slog.String("component", "submission")),
	}
}

// Submit validates and enqueues a job to evaluate botID for userID. It
// returns the job and the queue length after enqueueing.
func (s *Service) Submit(ctx context.Context, userID model.UserID, botID string) (*model.Job, int64, error) {
	job := &model.Job{
		ID:         model.JobID(s.newID()),
		UserID:     userID,
		BotID:      botID,
		EnqueuedAt: s.clock.Now(),
	}
	if err := job.Validate(); err != nil {
		return nil, 0, err
	}

	if err := s.queue.PushJob(ctx, job); err != nil {
		return nil, 0, fmt.Errorf("enqueue job: %w", err)
	}

	length, err := s.queue.QueueLength(ctx)
	if err != nil {
		return nil, 0, err
	}

	s.logger.Info("job submitted",
		slog.String("job_id", string(job.ID)),
		slog.String("user_id", string(userID)),
		slog.String("bot_id", botID),
		slog.Int64("queue_length", length),
	)
	return job, length, nil
}

// Result returns the latest result for userID
func (s *Service) Result(ctx context.Context, userID model.UserID) (*model.BotResult, error) {
	return s.results.GetResult(ctx, userID)
}

// Leaderboard returns accepted results, best average first
func (s *Service) Leaderboard(ctx context.Context, limit int) ([]*model.BotResult, error) {
	return s.results.Leaderboard(ctx, limit)
}

// QueueLength returns the number of jobs waiting
func (s *Service) QueueLength(ctx context.Context) (int64, error) {
	return s.queue.QueueLength(ctx)
}
