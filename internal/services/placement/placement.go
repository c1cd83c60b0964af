package placement

import (
	"fmt"

	"github.com/mcoot/battlebots/internal/dependencies/random"
	"github.com/mcoot/battlebots/internal/model"
)

// MaxPlacementAttempts bounds the retries for a single ship. An empty board
// places the whole fleet in a handful of attempts, so hitting this means the
// board has no room left.
const MaxPlacementAttempts = 10000

// Orientation of a ship run.
//
// The names are historical and read backwards:
// Vertical advances x along a row, Horizontal advances y down a column.
type Orientation int

const (
	Vertical   Orientation = 0 // cells (x0..x0+L-1, y0)
	Horizontal Orientation = 1 // cells (x0, y0..y0+L-1)
)

// Arrange places every ship of the fleet on board, largest first, at
// uniformly random origins and orientations. Ships never overlap and never
// leave the board.
func Arrange(board *model.ShipBoard, rnd random.Random) error {
	for _, length := range model.Fleet {
		if err := placeShip(board, rnd, length); err != nil {
			return err
		}
	}
	return nil
}

func placeShip(board *model.ShipBoard, rnd random.Random, length int) error {
	if length < 1 || length > model.GridSize {
		return fmt.Errorf("ship of length %d: %w", length, model.ErrShipTooLong)
	}

	for range MaxPlacementAttempts {
		x0, y0 := board.RandomCell(rnd)
		orientation := Orientation(rnd.Intn(2))
		cells := Run(x0, y0, length, orientation)
		if TryPlace(board, cells) {
			return nil
		}
	}
	return fmt.Errorf("ship of length %d after %d attempts: %w", length, MaxPlacementAttempts, model.ErrPlacementFailed)
}

// Run returns the cells a ship of the given length would occupy from (x0, y0)
func Run(x0, y0, length int, orientation Orientation) [][2]int {
	cells := make([][2]int, 0, length)
	for i := range length {
		if orientation == Vertical {
			cells = append(cells, [2]int{x0 + i, y0})
		} else {
			cells = append(cells, [2]int{x0, y0 + i})
		}
	}
	return cells
}

// TryPlace marks cells as Ship if every one of them is on the board and
// currently Sea. The board is left untouched otherwise.
func TryPlace(board *model.ShipBoard, cells [][2]int) bool {
	for _, c := range cells {
		val, err := board.Get(c[0], c[1])
		if err != nil || val != model.Sea {
			return false
		}
	}
	for _, c := range cells {
		if err := board.Put(c[0], c[1], model.Ship); err != nil {
			return false
		}
	}
	return true
}
