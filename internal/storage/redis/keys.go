package redis

import (
	"fmt"

	"github.com/mcoot/battlebots/internal/model"
)

// Key prefix for all evaluation data
const keyPrefix = "bbots"

// queueKey returns the Redis key for the LIST of pending jobs
func queueKey() string {
	return fmt.Sprintf("%s:queue", keyPrefix)
}

// resultKey returns the Redis key for a user's latest BotResult
func resultKey(userID model.UserID) string {
	return fmt.Sprintf("%s:result:%s", keyPrefix, userID)
}

// leaderboardKey returns the Redis key for the ZSET of accepted users scored by average moves
func leaderboardKey() string {
	return fmt.Sprintf("%s:leaderboard", keyPrefix)
}
