package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/mcoot/battlebots/internal/dependencies/clock"
	"github.com/mcoot/battlebots/internal/model"
	"github.com/mcoot/battlebots/internal/storage"
)

// Tournament scores one bot over a number of games
type Tournament interface {
	Play(ctx context.Context, botPath string, numGames int) (float64, error)
}

// Config controls where bots are found and how hard they are tested
type Config struct {
	BotDir   string
	NumGames int
}

// Worker takes evaluation jobs off the queue and records their results
type Worker struct {
	queue      storage.JobQueue
	results    storage.ResultStore
	tournament Tournament
	clock      clock.Clock
	cfg        Config
	logger     *slog.Logger
}

// New creates a new Worker
func New(queue storage.JobQueue, results storage.ResultStore, tournament Tournament, clk clock.Clock, cfg Config, logger *slog.Logger) *Worker {
	return &Worker{
		queue:      queue,
		results:    results,
		tournament: tournament,
		clock:      clk,
		cfg:        cfg,
		logger:     logger.With(slog.String("component", "worker")),
	}
}

// Run processes jobs until ctx is cancelled, then returns nil. Any other
// error stops the loop and is returned.
func (w *Worker) Run(ctx context.Context) error {
	w.logger.Info("worker started",
		slog.String("bot_dir", w.cfg.BotDir),
		slog.Int("num_games", w.cfg.NumGames),
	)

	for {
		job, err := w.queue.PopJob(ctx)
		if err != nil {
			if ctx.Err() != nil {
				w.logger.Info("worker stopped")
				return nil
			}
			return fmt.Errorf("pop job: %w", err)
		}

		if err := w.Process(ctx, job); err != nil {
			if ctx.Err() != nil {
				w.logger.Info("worker stopped")
				return nil
			}
			return err
		}
	}
}

// Process evaluates a single job and saves the result. Bot failures are
// results, not errors. If ctx is cancelled mid-tournament the job goes back
// on the queue and ctx's error is returned.
func (w *Worker) Process(ctx context.Context, job *model.Job) error {
	logger := w.logger.With(
		slog.String("job_id", string(job.ID)),
		slog.String("user_id", string(job.UserID)),
		slog.String("bot_id", job.BotID),
	)

	if job.UserID == "" {
		logger.Warn("discarding job without a user")
		return nil
	}

	if !model.ValidBotID(job.BotID) {
		cause := fmt.Errorf("%w: bad bot id %q", model.ErrInvalidJob, job.BotID)
		failure := model.NewErrorFailure(model.NewShotBoard().String(), cause)
		logger.Info("rejecting job with invalid bot id")
		return w.save(ctx, model.NewRejectedResult(job, failure, w.clock.Now()))
	}

	started := w.clock.Now()
	botPath := filepath.Join(w.cfg.BotDir, job.BotID)
	average, err := w.tournament.Play(ctx, botPath, w.cfg.NumGames)

	var failure *model.BotFailure
	switch {
	case err == nil:
		logger.Info("bot accepted",
			slog.Float64("average_moves", average),
			slog.Duration("elapsed", w.clock.Since(started)),
		)
		return w.save(ctx, model.NewAcceptedResult(job, average, w.clock.Now()))

	case errors.As(err, &failure):
		logger.Info("bot rejected",
			slog.String("kind", string(failure.Kind)),
			slog.String("reason", failure.Error()),
			slog.Duration("elapsed", w.clock.Since(started)),
		)
		return w.save(ctx, model.NewRejectedResult(job, failure, w.clock.Now()))

	case ctx.Err() != nil:
		// The queue must still accept the job after shutdown has begun
		if pushErr := w.queue.PushJob(context.WithoutCancel(ctx), job); pushErr != nil {
			logger.Error("failed to requeue interrupted job", slog.String("error", pushErr.Error()))
			return errors.Join(ctx.Err(), pushErr)
		}
		logger.Info("requeued interrupted job")
		return ctx.Err()

	default:
		logger.Error("evaluation failed", slog.String("error", err.Error()))
		return fmt.Errorf("evaluate job %s: %w", job.ID, err)
	}
}

func (w *Worker) save(ctx context.Context, result *model.BotResult) error {
	if err := w.results.SaveResult(context.WithoutCancel(ctx), result); err != nil {
		return fmt.Errorf("save result for %s: %w", result.UserID, err)
	}
	return nil
}
