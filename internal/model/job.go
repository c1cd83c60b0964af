package model

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// UserID identifies the owner of a bot
type UserID string

// JobID uniquely identifies a queued evaluation
type JobID string

// Job asks the worker to evaluate one user's bot
type Job struct {
	ID         JobID     `json:"id"`
	UserID     UserID    `json:"user_id"`
	BotID      string    `json:"bot_id"` // File name of the bot executable in the bot directory
	EnqueuedAt time.Time `json:"enqueued_at"`
}

// Validate checks the job has an owner and a bot id that names a plain file
func (j *Job) Validate() error {
	if j.UserID == "" {
		return fmt.Errorf("%w: user id is required", ErrInvalidJob)
	}
	if !ValidBotID(j.BotID) {
		return fmt.Errorf("%w: bad bot id %q", ErrInvalidJob, j.BotID)
	}
	return nil
}

// ValidBotID returns true if id is a single path element, so it cannot escape the bot directory
func ValidBotID(id string) bool {
	if id == "" || id == "." || id == ".." {
		return false
	}
	return !strings.ContainsAny(id, `/\`) && filepath.Base(id) == id
}
