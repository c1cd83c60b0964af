package bot

import (
	"github.com/mcoot/battlebots/internal/dependencies/random"
	"github.com/mcoot/battlebots/internal/model"
)

// HuntStrategy fires on a checkerboard until it scores a hit, then works
// outwards from the hit to finish the ship
type HuntStrategy struct {
	random random.Random
}

// NewHuntStrategy creates a new HuntStrategy
func NewHuntStrategy(rnd random.Random) *HuntStrategy {
	return &HuntStrategy{random: rnd}
}

var directions = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// ChooseMove targets cells next to hits, extending a line of hits first.
// With no open hit it picks a random checkerboard cell, falling back to any
// unknown cell.
func (s *HuntStrategy) ChooseMove(shots *model.ShotBoard) int {
	cells := shots.Cells()

	if move, ok := extendLine(cells); ok {
		return move
	}

	if targets := unknownCells(shots, func(i int) bool { return touchesHit(cells, i) }); len(targets) > 0 {
		return targets[s.random.Intn(len(targets))]
	}

	// Every ship is at least two long, so half the board covers them all
	parity := unknownCells(shots, func(i int) bool {
		x, y := model.IndexToCoord(i)
		return (x+y)%2 == 0
	})
	if len(parity) > 0 {
		return parity[s.random.Intn(len(parity))]
	}

	unknown := unknownCells(shots, nil)
	if len(unknown) == 0 {
		return 0
	}
	return unknown[s.random.Intn(len(unknown))]
}

// extendLine finds two adjacent hits and returns the next unknown cell past
// either end of their line
func extendLine(cells []model.ShotCell) (int, bool) {
	for i, c := range cells {
		if c != model.Hit {
			continue
		}
		x, y := model.IndexToCoord(i)
		for _, d := range directions {
			nx, ny := x+d[0], y+d[1]
			if !model.ValidCoord(nx, ny) || cells[model.CoordToIndex(nx, ny)] != model.Hit {
				continue
			}
			// Walk forward past the run of hits
			for model.ValidCoord(nx, ny) && cells[model.CoordToIndex(nx, ny)] == model.Hit {
				nx, ny = nx+d[0], ny+d[1]
			}
			if model.ValidCoord(nx, ny) && cells[model.CoordToIndex(nx, ny)] == model.Unknown {
				return model.CoordToIndex(nx, ny), true
			}
			// And backward
			bx, by := x-d[0], y-d[1]
			for model.ValidCoord(bx, by) && cells[model.CoordToIndex(bx, by)] == model.Hit {
				bx, by = bx-d[0], by-d[1]
			}
			if model.ValidCoord(bx, by) && cells[model.CoordToIndex(bx, by)] == model.Unknown {
				return model.CoordToIndex(bx, by), true
			}
		}
	}
	return 0, false
}

// touchesHit reports whether cell i is orthogonally next to a hit
func touchesHit(cells []model.ShotCell, i int) bool {
	x, y := model.IndexToCoord(i)
	for _, d := range directions {
		nx, ny := x+d[0], y+d[1]
		if model.ValidCoord(nx, ny) && cells[model.CoordToIndex(nx, ny)] == model.Hit {
			return true
		}
	}
	return false
}
