package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mcoot/battlebots/internal/dependencies/random"
)

// GridSize is the width and height of every board
const GridSize = 10

// GridCells is the number of cells on a board
const GridCells = GridSize * GridSize

// ShipCell is the state of a ship board cell
type ShipCell int

const (
	Sea  ShipCell = 0
	Ship ShipCell = 1
)

// ShotCell is the state of a shot board cell
type ShotCell int

const (
	Unknown ShotCell = 0
	Miss    ShotCell = -1
	Hit     ShotCell = 1
)

// Grid is a GridSize x GridSize board stored row-major: index = y*GridSize + x
type Grid[T ~int] struct {
	cells []T
}

// ShipBoard records which cells are occupied by ships. It is never shown to a bot.
type ShipBoard = Grid[ShipCell]

// ShotBoard records which cells have been fired upon and the outcome
type ShotBoard = Grid[ShotCell]

// NewGrid creates a board with every cell set to init
func NewGrid[T ~int](init T) *Grid[T] {
	cells := make([]T, GridCells)
	for i := range cells {
		cells[i] = init
	}
	return &Grid[T]{cells: cells}
}

// NewShipBoard creates an all-sea ship board
func NewShipBoard() *ShipBoard {
	return NewGrid(Sea)
}

// NewShotBoard creates a shot board with nothing fired upon
func NewShotBoard() *ShotBoard {
	return NewGrid(Unknown)
}

// Get returns the cell at (x, y)
func (g *Grid[T]) Get(x, y int) (T, error) {
	if !ValidCoord(x, y) {
		var zero T
		return zero, fmt.Errorf("get (%d,%d): %w", x, y, ErrInvalidPosition)
	}
	return g.cells[CoordToIndex(x, y)], nil
}

// Put sets the cell at (x, y)
func (g *Grid[T]) Put(x, y int, val T) error {
	if !ValidCoord(x, y) {
		return fmt.Errorf("put (%d,%d): %w", x, y, ErrInvalidPosition)
	}
	g.cells[CoordToIndex(x, y)] = val
	return nil
}

// ValidCoord returns true if the coordinates are on the board
func (g *Grid[T]) ValidCoord(x, y int) bool {
	return ValidCoord(x, y)
}

// RandomCell returns uniformly random coordinates on the board
func (g *Grid[T]) RandomCell(rnd random.Random) (x, y int) {
	x = rnd.Intn(GridSize)
	y = rnd.Intn(GridSize)
	return x, y
}

// Count returns the number of cells holding val
func (g *Grid[T]) Count(val T) int {
	count := 0
	for _, c := range g.cells {
		if c == val {
			count++
		}
	}
	return count
}

// Cells returns a copy of the cells in index order
func (g *Grid[T]) Cells() []T {
	result := make([]T, len(g.cells))
	copy(result, g.cells)
	return result
}

// String encodes the cells in index order as comma-separated integers.
// This is the board argument handed to bot processes.
func (g *Grid[T]) String() string {
	var sb strings.Builder
	sb.Grow(len(g.cells) * 3)
	for i, c := range g.cells {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(int(c)))
	}
	return sb.String()
}

// ParseShotBoard decodes the form produced by String. Surrounding
// whitespace on each cell is ignored.
func ParseShotBoard(s string) (*ShotBoard, error) {
	parts := strings.Split(s, ",")
	if len(parts) != GridCells {
		return nil, fmt.Errorf("%w: %d cells, want %d", ErrInvalidBoard, len(parts), GridCells)
	}

	board := NewShotBoard()
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("%w: cell %d: %q", ErrInvalidBoard, i, p)
		}
		switch cell := ShotCell(n); cell {
		case Unknown, Miss, Hit:
			board.cells[i] = cell
		default:
			return nil, fmt.Errorf("%w: cell %d: %d", ErrInvalidBoard, i, n)
		}
	}
	return board, nil
}

// ValidCoord returns true if both coordinates are in [0, GridSize)
func ValidCoord(x, y int) bool {
	return x >= 0 && x < GridSize && y >= 0 && y < GridSize
}

// ValidIndex returns true if i addresses a cell
func ValidIndex(i int) bool {
	return i >= 0 && i < GridCells
}

// IndexToCoord converts a cell index to (x, y)
func IndexToCoord(i int) (x, y int) {
	return i % GridSize, i / GridSize
}

// CoordToIndex converts (x, y) to a cell index
func CoordToIndex(x, y int) int {
	return y*GridSize + x
}
