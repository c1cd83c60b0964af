package tournament

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/battlebots/internal/dependencies/mocks"
	"github.com/mcoot/battlebots/internal/dependencies/random"
	"github.com/mcoot/battlebots/internal/model"
	"github.com/mcoot/battlebots/internal/services/game"
	"github.com/mcoot/battlebots/internal/services/protocol"
	"github.com/mcoot/battlebots/internal/testutil"
)

// scriptedGames returns games with the queued move counts, or the queued error
type scriptedGames struct {
	moves  []int
	errAt  int
	err    error
	played int
}

func (g *scriptedGames) Play(ctx context.Context, botPath string, rnd random.Random) (*model.GameResult, error) {
	g.played++
	if g.err != nil && g.played == g.errAt {
		return nil, g.err
	}
	n := g.moves[(g.played-1)%len(g.moves)]
	return &model.GameResult{Moves: make([]model.MoveRecord, n)}, nil
}

type RunnerSuite struct {
	suite.Suite
	ctx context.Context
}

func TestRunnerSuite(t *testing.T) {
	suite.Run(t, new(RunnerSuite))
}

func (s *RunnerSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *RunnerSuite) TestAverageOfMoveCounts() {
	games := &scriptedGames{moves: []int{20, 30, 31}}
	runner := NewRunner(games, random.NewSeeded(1), testutil.NopLogger())

	avg, err := runner.Play(s.ctx, "bot", 3)
	s.Require().NoError(err)
	s.InDelta(27.0, avg, 1e-9)
	s.Equal(3, games.played)
}

func (s *RunnerSuite) TestSingleGame() {
	games := &scriptedGames{moves: []int{57}}
	avg, err := NewRunner(games, random.NewSeeded(1), testutil.NopLogger()).Play(s.ctx, "bot", 1)
	s.Require().NoError(err)
	s.Equal(57.0, avg)
}

func (s *RunnerSuite) TestFirstFailureAbortsTournament() {
	illegal := model.NewIllegalIndexFailure("state", 5)
	games := &scriptedGames{moves: []int{40}, errAt: 3, err: illegal}

	avg, err := NewRunner(games, random.NewSeeded(1), testutil.NopLogger()).Play(s.ctx, "bot", 10)

	s.Same(illegal, err)
	s.Zero(avg)
	s.Equal(3, games.played)
}

func (s *RunnerSuite) TestEngineDefectPropagates() {
	defect := errors.New("boom")
	games := &scriptedGames{moves: []int{40}, errAt: 1, err: defect}

	_, err := NewRunner(games, random.NewSeeded(1), testutil.NopLogger()).Play(s.ctx, "bot", 2)
	s.ErrorIs(err, defect)
}

func (s *RunnerSuite) TestRejectsFewerThanOneGame() {
	games := &scriptedGames{moves: []int{40}}
	runner := NewRunner(games, random.NewSeeded(1), testutil.NopLogger())

	for _, n := range []int{0, -3} {
		_, err := runner.Play(s.ctx, "bot", n)
		s.ErrorIs(err, model.ErrInvalidGameCount)
	}
	s.Zero(games.played)
}

func (s *RunnerSuite) TestDeterministicBotAveragesExactMoveCount() {
	const numGames = 4

	// Same row layout every game: the scanning bot always needs 42 moves
	rnd := mocks.NewMockRandom()
	for range numGames {
		for y := range len(model.Fleet) {
			rnd.QueueIntn(0, y, 0)
		}
	}

	bot := testutil.WriteBot(s.T(), s.T().TempDir(), "scan", testutil.ScanBotScript)
	logger := testutil.NopLogger()
	engine := game.NewEngine(protocol.NewHandler(protocol.NewExecRunner(), 5*time.Second, logger), logger)

	avg, err := NewRunner(engine, rnd, logger).Play(s.ctx, bot, numGames)
	s.Require().NoError(err)
	s.Equal(42.0, avg)
	s.Equal(0, rnd.Remaining())
}

func (s *RunnerSuite) TestGamesUseIndependentLayouts() {
	logger := testutil.NopLogger()
	engine := game.NewEngine(protocol.NewHandler(scanBot, time.Second, logger), logger)

	var layouts []string
	recording := gamePlayerFunc(func(ctx context.Context, botPath string, rnd random.Random) (*model.GameResult, error) {
		result, err := engine.Play(ctx, botPath, rnd)
		if err == nil {
			layouts = append(layouts, fmt.Sprint(result.Ships))
		}
		return result, err
	})

	_, err := NewRunner(recording, random.NewSeeded(7), logger).Play(s.ctx, "scan", 5)
	s.Require().NoError(err)
	s.Require().Len(layouts, 5)

	distinct := map[string]bool{}
	for _, l := range layouts {
		distinct[l] = true
	}
	s.Greater(len(distinct), 1)
}

// scanBot fires at the first unknown cell of the board it is given
var scanBot = protocol.RunnerFunc(func(ctx context.Context, botPath string, arg string) ([]byte, error) {
	for i, cell := range strings.Split(arg, ",") {
		if cell == "0" {
			return []byte(strconv.Itoa(i)), nil
		}
	}
	return nil, errors.New("no unknown cells")
})

type gamePlayerFunc func(ctx context.Context, botPath string, rnd random.Random) (*model.GameResult, error)

func (f gamePlayerFunc) Play(ctx context.Context, botPath string, rnd random.Random) (*model.GameResult, error) {
	return f(ctx, botPath, rnd)
}
