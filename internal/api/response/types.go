package response

import (
	"time"

	"github.com/mcoot/battlebots/internal/model"
)

// SubmitResponse is the response for a queued submission
type SubmitResponse struct {
	JobID       string `json:"job_id"`
	QueueLength int64  `json:"queue_length"`
}

// Failure describes why a bot was rejected
type Failure struct {
	Kind      string  `json:"kind"`
	Message   string  `json:"message"`
	GameState string  `json:"game_state"`
	Move      *string `json:"move,omitempty"`
}

// FailureFromModel converts a model.BotFailure
func FailureFromModel(f *model.BotFailure) *Failure {
	if f == nil {
		return nil
	}
	return &Failure{
		Kind:      string(f.Kind),
		Message:   f.Error(),
		GameState: f.GameState,
		Move:      f.Move,
	}
}

// Result is a user's latest evaluation
type Result struct {
	UserID       string    `json:"user_id"`
	BotID        string    `json:"bot_id"`
	JobID        string    `json:"job_id"`
	Status       string    `json:"status"`
	AverageMoves *float64  `json:"average_moves,omitempty"`
	Failure      *Failure  `json:"failure,omitempty"`
	CompletedAt  time.Time `json:"completed_at"`
}

// ResultFromModel converts a model.BotResult
func ResultFromModel(r *model.BotResult) Result {
	res := Result{
		UserID:      string(r.UserID),
		BotID:       r.BotID,
		JobID:       string(r.JobID),
		Status:      string(r.Status),
		Failure:     FailureFromModel(r.Failure),
		CompletedAt: r.CompletedAt,
	}
	if r.Status == model.ResultAccepted {
		avg := r.AverageMoves
		res.AverageMoves = &avg
	}
	return res
}

// LeaderboardEntry is one ranked bot
type LeaderboardEntry struct {
	Rank         int       `json:"rank"`
	UserID       string    `json:"user_id"`
	BotID        string    `json:"bot_id"`
	AverageMoves float64   `json:"average_moves"`
	CompletedAt  time.Time `json:"completed_at"`
}

// Leaderboard is the ranked list of accepted bots
type Leaderboard struct {
	Entries []LeaderboardEntry `json:"entries"`
}

// LeaderboardFromModel ranks results in the order given, starting at 1
func LeaderboardFromModel(results []*model.BotResult) Leaderboard {
	entries := make([]LeaderboardEntry, len(results))
	for i, r := range results {
		entries[i] = LeaderboardEntry{
			Rank:         i + 1,
			UserID:       string(r.UserID),
			BotID:        r.BotID,
			AverageMoves: r.AverageMoves,
			CompletedAt:  r.CompletedAt,
		}
	}
	return Leaderboard{Entries: entries}
}

// Health is the response for the health check
type Health struct {
	Status      string `json:"status"`
	QueueLength int64  `json:"queue_length"`
}
