package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/mcoot/battlebots/internal/dependencies/random"
	"github.com/mcoot/battlebots/internal/model"
	"github.com/mcoot/battlebots/internal/services/game"
	"github.com/mcoot/battlebots/internal/services/protocol"
	"github.com/mcoot/battlebots/internal/services/tournament"
)

// ErrBotRejected is returned by play when the bot fails its tournament
var ErrBotRejected = errors.New("bot rejected")

func newPlayCmd() *cobra.Command {
	var (
		games   int
		timeout time.Duration
		seed    uint64
	)

	cmd := &cobra.Command{
		Use:   "play <bot-path>",
		Short: "Run a tournament locally against a bot executable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if games < 1 {
				return fmt.Errorf("--games must be at least 1")
			}
			if timeout <= 0 {
				return fmt.Errorf("--timeout must be positive")
			}

			botPath, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			if _, err := os.Stat(botPath); err != nil {
				return err
			}

			if seed == 0 {
				seed = random.CryptoSeed()
			}

			level := slog.LevelWarn
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			handler := protocol.NewHandler(protocol.NewExecRunner(), timeout, logger)
			engine := game.NewEngine(handler, logger)
			runner := tournament.NewRunner(engine, random.NewSeeded(seed), logger)

			start := time.Now()
			average, err := runner.Play(cmd.Context(), botPath, games)
			result := PlayResult{
				BotPath: botPath,
				Games:   games,
				Seed:    seed,
				Elapsed: time.Since(start),
			}

			var failure *model.BotFailure
			switch {
			case err == nil:
				result.Status = string(model.ResultAccepted)
				result.AverageMoves = &average
			case errors.As(err, &failure):
				result.Status = string(model.ResultRejected)
				result.Failure = &Failure{
					Kind:      string(failure.Kind),
					Message:   failure.Error(),
					GameState: failure.GameState,
					Move:      failure.Move,
				}
			default:
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)

			if result.Failure != nil {
				return ErrBotRejected
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&games, "games", 100, "Number of games to play")
	cmd.Flags().DurationVar(&timeout, "timeout", protocol.DefaultMoveTimeout, "Time allowed for each move")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for ship placement (0 for random)")

	return cmd
}
