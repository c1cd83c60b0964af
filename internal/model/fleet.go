package model

// Fleet is the ship lengths placed at the start of every game, largest first
var Fleet = [...]int{
	5, // aircraft carrier
	4, // battleship
	3, // submarine
	3, // destroyer
	2, // patrol boat
}

// FleetCells returns the number of cells the whole fleet occupies
func FleetCells() int {
	total := 0
	for _, length := range Fleet {
		total += length
	}
	return total
}
