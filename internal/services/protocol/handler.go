package protocol

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mcoot/battlebots/internal/model"
)

// DefaultMoveTimeout is the wall-clock limit a bot has to return one move
const DefaultMoveTimeout = 10 * time.Second

// MaxRecordedMoveBytes caps the raw output kept in an illegal move failure
const MaxRecordedMoveBytes = 256

// Handler obtains validated moves from bot processes
type Handler struct {
	runner  Runner
	timeout time.Duration
	logger  *slog.Logger
}

// NewHandler creates a Handler. A non-positive timeout means DefaultMoveTimeout.
func NewHandler(runner Runner, timeout time.Duration, logger *slog.Logger) *Handler {
	if timeout <= 0 {
		timeout = DefaultMoveTimeout
	}
	return &Handler{
		runner:  runner,
		timeout: timeout,
		logger:  logger.With(slog.String("component", "move-protocol")),
	}
}

// Timeout returns the per-move deadline
func (h *Handler) Timeout() time.Duration {
	return h.timeout
}

// NextMove asks the bot for its next shot given the current shot board,
// validates it, and plays it against the ship board. Bot misbehaviour is
// returned as a *model.BotFailure. If ctx itself is cancelled its error is
// returned as is.
func (h *Handler) NextMove(ctx context.Context, botPath string, ships *model.ShipBoard, shots *model.ShotBoard) (model.MoveRecord, error) {
	state := shots.String()

	moveCtx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	out, err := h.runner.Run(moveCtx, botPath, state)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return model.MoveRecord{}, ctxErr
		}
		if errors.Is(moveCtx.Err(), context.DeadlineExceeded) {
			h.logger.Info("bot move timed out",
				slog.String("bot_id", filepath.Base(botPath)),
				slog.Duration("timeout", h.timeout),
			)
			return model.MoveRecord{}, model.NewTimeoutFailure(state)
		}
		h.logBotError(botPath, err)
		return model.MoveRecord{}, model.NewErrorFailure(state, err)
	}

	move, err := parseMove(out)
	if err != nil {
		return model.MoveRecord{}, model.NewIllegalMoveFailure(state, truncate(string(out), MaxRecordedMoveBytes))
	}

	if !model.ValidIndex(move) {
		return model.MoveRecord{}, model.NewIllegalIndexFailure(state, move)
	}
	x, y := model.IndexToCoord(move)
	if shot, err := shots.Get(x, y); err != nil || shot != model.Unknown {
		return model.MoveRecord{}, model.NewIllegalIndexFailure(state, move)
	}

	return play(ships, shots, move)
}

// play fires at a validated move and records the outcome on the shot board
func play(ships *model.ShipBoard, shots *model.ShotBoard, move int) (model.MoveRecord, error) {
	x, y := model.IndexToCoord(move)

	ship, err := ships.Get(x, y)
	if err != nil {
		return model.MoveRecord{}, fmt.Errorf("resolve move %d: %w", move, err)
	}

	outcome := model.Miss
	if ship == model.Ship {
		outcome = model.Hit
	}
	if err := shots.Put(x, y, outcome); err != nil {
		return model.MoveRecord{}, fmt.Errorf("record move %d: %w", move, err)
	}

	return model.MoveRecord{Move: move, Outcome: outcome}, nil
}

// parseMove reads a base-10 integer, ignoring surrounding whitespace
func parseMove(out []byte) (int, error) {
	return strconv.Atoi(strings.TrimSpace(string(out)))
}

func (h *Handler) logBotError(botPath string, err error) {
	attrs := []any{
		slog.String("bot_id", filepath.Base(botPath)),
		slog.String("error", err.Error()),
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
		attrs = append(attrs, slog.String("stderr", truncate(string(exitErr.Stderr), 1024)))
	}
	h.logger.Info("bot process failed", attrs...)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
