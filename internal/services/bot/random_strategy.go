package bot

import (
	"github.com/mcoot/battlebots/internal/dependencies/random"
	"github.com/mcoot/battlebots/internal/model"
)

// RandomStrategy fires at a uniformly random unknown cell
type RandomStrategy struct {
	random random.Random
}

// NewRandomStrategy creates a new RandomStrategy
func NewRandomStrategy(rnd random.Random) *RandomStrategy {
	return &RandomStrategy{random: rnd}
}

// ChooseMove picks a random unknown cell, or 0 if there is none
func (s *RandomStrategy) ChooseMove(shots *model.ShotBoard) int {
	unknown := unknownCells(shots, nil)
	if len(unknown) == 0 {
		return 0
	}
	return unknown[s.random.Intn(len(unknown))]
}
