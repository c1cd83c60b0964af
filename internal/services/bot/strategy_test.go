package bot_test

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/battlebots/internal/dependencies/mocks"
	"github.com/mcoot/battlebots/internal/dependencies/random"
	"github.com/mcoot/battlebots/internal/model"
	"github.com/mcoot/battlebots/internal/services/bot"
	"github.com/mcoot/battlebots/internal/services/game"
	"github.com/mcoot/battlebots/internal/services/protocol"
	"github.com/mcoot/battlebots/internal/testutil"
)

type StrategySuite struct {
	suite.Suite
	mockRandom *mocks.MockRandom
}

func TestStrategySuite(t *testing.T) {
	suite.Run(t, new(StrategySuite))
}

func (s *StrategySuite) SetupTest() {
	s.mockRandom = mocks.NewMockRandom()
}

// board builds a shot board from index/value pairs
func (s *StrategySuite) board(cells map[int]model.ShotCell) *model.ShotBoard {
	b := model.NewShotBoard()
	for i, c := range cells {
		x, y := model.IndexToCoord(i)
		s.Require().NoError(b.Put(x, y, c))
	}
	return b
}

func (s *StrategySuite) TestRandom_EmptyBoard() {
	s.mockRandom.QueueIntn(42)
	move := bot.NewRandomStrategy(s.mockRandom).ChooseMove(model.NewShotBoard())
	s.Equal(42, move)
}

func (s *StrategySuite) TestRandom_SkipsFiredCells() {
	// Cells 0-97 fired upon, leaving 98 and 99
	cells := map[int]model.ShotCell{}
	for i := range 98 {
		cells[i] = model.Miss
	}
	s.mockRandom.QueueIntn(1) // Pick second unknown cell

	move := bot.NewRandomStrategy(s.mockRandom).ChooseMove(s.board(cells))
	s.Equal(99, move)
}

func (s *StrategySuite) TestHunt_ChecksParityCellsFirst() {
	s.mockRandom.QueueIntn(0, 1)
	strategy := bot.NewHuntStrategy(s.mockRandom)

	s.Equal(0, strategy.ChooseMove(model.NewShotBoard()))
	// Second parity cell in index order is (2,0)
	s.Equal(2, strategy.ChooseMove(model.NewShotBoard()))
}

func (s *StrategySuite) TestHunt_TargetsNeighboursOfHit() {
	// Hit at (5,5); its unknown neighbours in index order are 45, 54, 56, 65
	s.mockRandom.QueueIntn(2)
	move := bot.NewHuntStrategy(s.mockRandom).ChooseMove(s.board(map[int]model.ShotCell{55: model.Hit}))
	s.Equal(56, move)
}

func (s *StrategySuite) TestHunt_ExtendsLineOfHits() {
	// Hits at (3,2) and (4,2) with a miss at (5,2): continue to (2,2)
	shots := s.board(map[int]model.ShotCell{23: model.Hit, 24: model.Hit, 25: model.Miss})
	move := bot.NewHuntStrategy(s.mockRandom).ChooseMove(shots)
	s.Equal(22, move)
}

func (s *StrategySuite) TestHunt_ExtendsVerticalLine() {
	// Hits at (7,0) and (7,1): continue down to (7,2)
	shots := s.board(map[int]model.ShotCell{7: model.Hit, 17: model.Hit})
	move := bot.NewHuntStrategy(s.mockRandom).ChooseMove(shots)
	s.Equal(27, move)
}

func (s *StrategySuite) TestRespondRejectsBadBoards() {
	_, err := bot.Respond("1,2,3", bot.NewRandomStrategy(s.mockRandom))
	s.ErrorIs(err, model.ErrInvalidBoard)

	full := model.NewGrid(model.Miss)
	_, err = bot.Respond(full.String(), bot.NewRandomStrategy(s.mockRandom))
	s.ErrorIs(err, bot.ErrNoMovesLeft)
}

func (s *StrategySuite) TestNewStrategy() {
	for _, name := range []string{"random", "hunt"} {
		strategy, err := bot.NewStrategy(name, s.mockRandom)
		s.NoError(err)
		s.NotNil(strategy)
	}
	_, err := bot.NewStrategy("psychic", s.mockRandom)
	s.Error(err)
}

// Strategies must win every game without an illegal move
func (s *StrategySuite) TestStrategiesWinGames() {
	logger := testutil.NopLogger()

	for _, name := range []string{"random", "hunt"} {
		strategy, err := bot.NewStrategy(name, random.NewSeeded(99))
		s.Require().NoError(err)

		runner := protocol.RunnerFunc(func(ctx context.Context, botPath string, arg string) ([]byte, error) {
			move, err := bot.Respond(arg, strategy)
			if err != nil {
				return nil, errors.New("bot failed: " + err.Error())
			}
			return []byte(strconv.Itoa(move)), nil
		})
		engine := game.NewEngine(protocol.NewHandler(runner, time.Second, logger), logger)

		total := 0
		for seed := range uint64(20) {
			result, err := engine.Play(context.Background(), name, random.NewSeeded(seed))
			s.Require().NoError(err, "%s seed %d", name, seed)
			total += result.NumMoves()
		}
		s.LessOrEqual(total, 20*model.GridCells, name)
	}
}
