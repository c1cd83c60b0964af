package model

// MoveRecord is one legal move and its outcome (Hit or Miss)
type MoveRecord struct {
	Move    int      `json:"move"`
	Outcome ShotCell `json:"outcome"`
}

// GameResult summarises a completed game
type GameResult struct {
	// Moves in the order they were played
	Moves []MoveRecord `json:"moves"`
	// Ships is the final ship board, in index order
	Ships []ShipCell `json:"ships"`
}

// NumMoves returns the number of moves the bot needed to win
func (r *GameResult) NumMoves() int {
	return len(r.Moves)
}
