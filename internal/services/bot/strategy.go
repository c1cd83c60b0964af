// Package bot implements reference battleship bots that speak the move
// protocol: they receive a serialized shot board and answer with a cell index.
package bot

import (
	"errors"
	"fmt"

	"github.com/mcoot/battlebots/internal/dependencies/random"
	"github.com/mcoot/battlebots/internal/model"
)

// ErrNoMovesLeft is returned when every cell has already been fired upon
var ErrNoMovesLeft = errors.New("no unknown cells left")

// Strategy defines how a bot chooses where to fire
type Strategy interface {
	// ChooseMove returns the index of an Unknown cell on shots
	ChooseMove(shots *model.ShotBoard) int
}

// Respond decodes a serialized shot board and returns the strategy's move
func Respond(state string, strategy Strategy) (int, error) {
	shots, err := model.ParseShotBoard(state)
	if err != nil {
		return 0, err
	}
	if shots.Count(model.Unknown) == 0 {
		return 0, ErrNoMovesLeft
	}
	return strategy.ChooseMove(shots), nil
}

// NewStrategy returns the named strategy: "random" or "hunt"
func NewStrategy(name string, rnd random.Random) (Strategy, error) {
	switch name {
	case "random":
		return NewRandomStrategy(rnd), nil
	case "hunt":
		return NewHuntStrategy(rnd), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", name)
	}
}

// unknownCells returns the indexes of cells not yet fired upon
func unknownCells(shots *model.ShotBoard, keep func(i int) bool) []int {
	var cells []int
	for i, c := range shots.Cells() {
		if c == model.Unknown && (keep == nil || keep(i)) {
			cells = append(cells, i)
		}
	}
	return cells
}
