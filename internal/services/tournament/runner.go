package tournament

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/mcoot/battlebots/internal/dependencies/random"
	"github.com/mcoot/battlebots/internal/model"
)

// GamePlayer plays one complete game of a bot
type GamePlayer interface {
	Play(ctx context.Context, botPath string, rnd random.Random) (*model.GameResult, error)
}

// Runner plays batches of games for a single bot and scores them
type Runner struct {
	games  GamePlayer
	random random.Random
	logger *slog.Logger
}

// NewRunner creates a tournament Runner. rnd supplies every game's ship
// layout; give each worker its own source.
func NewRunner(games GamePlayer, rnd random.Random, logger *slog.Logger) *Runner {
	return &Runner{
		games:  games,
		random: rnd,
		logger: logger.With(slog.String("component", "tournament")),
	}
}

// Play runs numGames games one after another and returns the average number
// of moves the bot needed to win. The first failing game aborts the
// tournament and its error is returned; earlier games are discarded.
func (r *Runner) Play(ctx context.Context, botPath string, numGames int) (float64, error) {
	if numGames < 1 {
		return 0, fmt.Errorf("%w: got %d", model.ErrInvalidGameCount, numGames)
	}

	botID := filepath.Base(botPath)
	r.logger.Info("bot started tournament",
		slog.String("bot_id", botID),
		slog.Int("num_games", numGames),
	)

	total := 0
	for i := range numGames {
		result, err := r.games.Play(ctx, botPath, r.random)
		if err != nil {
			r.logger.Info("bot tournament aborted",
				slog.String("bot_id", botID),
				slog.Int("game", i+1),
				slog.String("error", err.Error()),
			)
			return 0, err
		}
		total += result.NumMoves()

		r.logger.Debug("bot completed game of tournament",
			slog.String("bot_id", botID),
			slog.Int("game", i+1),
			slog.Int("num_games", numGames),
			slog.Int("moves", result.NumMoves()),
		)
	}

	average := float64(total) / float64(numGames)
	r.logger.Info("bot completed tournament",
		slog.String("bot_id", botID),
		slog.Int("num_games", numGames),
		slog.Float64("average_moves", average),
	)
	return average, nil
}
