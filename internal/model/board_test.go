package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/battlebots/internal/dependencies/mocks"
)

func TestIndexToCoordRoundTrip(t *testing.T) {
	for y := 0; y < GridSize; y++ {
		for x := 0; x < GridSize; x++ {
			gx, gy := IndexToCoord(y*GridSize + x)
			assert.Equal(t, x, gx)
			assert.Equal(t, y, gy)
			assert.Equal(t, y*GridSize+x, CoordToIndex(gx, gy))
		}
	}
}

func TestIndexToCoordUsesIntegerDivision(t *testing.T) {
	cases := []struct {
		index int
		x, y  int
	}{
		{0, 0, 0},
		{9, 9, 0},
		{10, 0, 1},
		{19, 9, 1},
		{55, 5, 5},
		{99, 9, 9},
	}
	for _, tc := range cases {
		x, y := IndexToCoord(tc.index)
		assert.Equal(t, tc.x, x, "x for index %d", tc.index)
		assert.Equal(t, tc.y, y, "y for index %d", tc.index)
	}
}

func TestNewGridInitialisesEveryCell(t *testing.T) {
	ships := NewShipBoard()
	shots := NewShotBoard()

	assert.Len(t, ships.Cells(), GridCells)
	assert.Equal(t, GridCells, ships.Count(Sea))
	assert.Equal(t, GridCells, shots.Count(Unknown))
}

func TestGetAndPut(t *testing.T) {
	g := NewShotBoard()

	require.NoError(t, g.Put(3, 7, Hit))

	val, err := g.Get(3, 7)
	require.NoError(t, err)
	assert.Equal(t, Hit, val)

	// (3,7) is index 73
	assert.Equal(t, Hit, g.Cells()[73])
}

func TestGetAndPutRejectOutOfBounds(t *testing.T) {
	g := NewShipBoard()

	for _, c := range [][2]int{{-1, 0}, {0, -1}, {GridSize, 0}, {0, GridSize}, {GridSize, GridSize}} {
		_, err := g.Get(c[0], c[1])
		assert.ErrorIs(t, err, ErrInvalidPosition)
		assert.ErrorIs(t, g.Put(c[0], c[1], Ship), ErrInvalidPosition)
	}
	assert.Equal(t, GridCells, g.Count(Sea))
}

func TestValidCoord(t *testing.T) {
	g := NewShipBoard()
	assert.True(t, g.ValidCoord(0, 0))
	assert.True(t, g.ValidCoord(9, 9))
	assert.False(t, g.ValidCoord(10, 0))
	assert.False(t, g.ValidCoord(0, -1))
}

func TestValidIndex(t *testing.T) {
	assert.True(t, ValidIndex(0))
	assert.True(t, ValidIndex(99))
	assert.False(t, ValidIndex(-1))
	assert.False(t, ValidIndex(100))
}

func TestRandomCellUsesSource(t *testing.T) {
	rnd := mocks.NewMockRandom()
	rnd.QueueIntn(4, 8)

	x, y := NewShipBoard().RandomCell(rnd)
	assert.Equal(t, 4, x)
	assert.Equal(t, 8, y)
}

func TestStringSerialisesInIndexOrder(t *testing.T) {
	g := NewShotBoard()
	require.NoError(t, g.Put(0, 0, Miss))
	require.NoError(t, g.Put(1, 0, Hit))
	require.NoError(t, g.Put(9, 9, Miss))

	s := g.String()
	parts := strings.Split(s, ",")
	require.Len(t, parts, GridCells)
	assert.Equal(t, "-1", parts[0])
	assert.Equal(t, "1", parts[1])
	assert.Equal(t, "0", parts[2])
	assert.Equal(t, "-1", parts[99])
	assert.True(t, strings.HasPrefix(s, "-1,1,0,0"))
}

func TestStringIsDeterministic(t *testing.T) {
	a := NewShotBoard()
	b := NewShotBoard()
	for _, g := range []*ShotBoard{a, b} {
		require.NoError(t, g.Put(2, 3, Hit))
		require.NoError(t, g.Put(5, 5, Miss))
	}

	assert.Equal(t, a.String(), a.String())
	assert.Equal(t, a.String(), b.String())
}

func TestCellsReturnsCopy(t *testing.T) {
	g := NewShipBoard()
	cells := g.Cells()
	cells[0] = Ship

	val, err := g.Get(0, 0)
	require.NoError(t, err)
	assert.Equal(t, Sea, val)
}

func TestFleetCells(t *testing.T) {
	assert.Equal(t, 17, FleetCells())
}

func TestParseShotBoardReadsString(t *testing.T) {
	board := NewShotBoard()
	require.NoError(t, board.Put(3, 0, Hit))
	require.NoError(t, board.Put(9, 9, Miss))

	parsed, err := ParseShotBoard(board.String())
	require.NoError(t, err)
	assert.Equal(t, board.Cells(), parsed.Cells())
}

func TestParseShotBoardToleratesWhitespace(t *testing.T) {
	cells := strings.Split(NewShotBoard().String(), ",")
	cells[0] = " 1"
	cells[99] = "-1\n"

	parsed, err := ParseShotBoard(strings.Join(cells, ","))
	require.NoError(t, err)
	assert.Equal(t, Hit, parsed.Cells()[0])
	assert.Equal(t, Miss, parsed.Cells()[99])
}

func TestParseShotBoardRejectsMalformedInput(t *testing.T) {
	valid := strings.Split(NewShotBoard().String(), ",")

	withCell := func(v string) string {
		cells := append([]string(nil), valid...)
		cells[50] = v
		return strings.Join(cells, ",")
	}

	for name, input := range map[string]string{
		"empty":      "",
		"too short":  strings.Join(valid[:99], ","),
		"too long":   strings.Join(append(valid, "0"), ","),
		"not a cell": withCell("x"),
		"bad value":  withCell("2"),
	} {
		_, err := ParseShotBoard(input)
		assert.ErrorIs(t, err, ErrInvalidBoard, name)
	}
}
