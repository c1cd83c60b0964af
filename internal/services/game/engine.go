package game

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/mcoot/battlebots/internal/dependencies/random"
	"github.com/mcoot/battlebots/internal/model"
	"github.com/mcoot/battlebots/internal/services/placement"
)

// MoveSource produces the bot's next validated move and applies it to the boards
type MoveSource interface {
	NextMove(ctx context.Context, botPath string, ships *model.ShipBoard, shots *model.ShotBoard) (model.MoveRecord, error)
}

// Engine plays single games of a bot against a random ship layout
type Engine struct {
	moves  MoveSource
	logger *slog.Logger
}

// NewEngine creates a new game Engine
func NewEngine(moves MoveSource, logger *slog.Logger) *Engine {
	return &Engine{
		moves:  moves,
		logger: logger.With(slog.String("component", "game-engine")),
	}
}

// Play arranges the fleet with rnd and asks the bot for moves until every
// ship cell has been hit. Failures from the move source are returned
// unchanged and end the game.
func (e *Engine) Play(ctx context.Context, botPath string, rnd random.Random) (*model.GameResult, error) {
	botID := filepath.Base(botPath)
	e.logger.Debug("bot started game", slog.String("bot_id", botID))

	ships := model.NewShipBoard()
	shots := model.NewShotBoard()
	if err := placement.Arrange(ships, rnd); err != nil {
		return nil, fmt.Errorf("arrange fleet: %w", err)
	}

	target := model.FleetCells()
	moves := make([]model.MoveRecord, 0, model.GridCells)
	for shots.Count(model.Hit) < target {
		if len(moves) >= model.GridCells {
			return nil, fmt.Errorf("%d hits after %d moves: %w", shots.Count(model.Hit), len(moves), model.ErrGameStalled)
		}
		rec, err := e.moves.NextMove(ctx, botPath, ships, shots)
		if err != nil {
			return nil, err
		}
		moves = append(moves, rec)
	}

	e.logger.Debug("bot completed game",
		slog.String("bot_id", botID),
		slog.Int("moves", len(moves)),
	)

	return &model.GameResult{
		Moves: moves,
		Ships: ships.Cells(),
	}, nil
}
