package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/battlebots/internal/model"
	"github.com/mcoot/battlebots/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return NewWithClient(client, cfg), nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	if cfg.PopTimeout <= 0 {
		cfg.PopTimeout = DefaultConfig().PopTimeout
	}
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Queue operations

func (s *Storage) PushJob(ctx context.Context, job *model.Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return s.client.RPush(ctx, queueKey(), data).Err()
}

// PopJob polls with BLPOP in PopTimeout slices so that cancellation of ctx
// is noticed even if the client does not abort blocked reads
func (s *Storage) PopJob(ctx context.Context) (*model.Job, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		vals, err := s.client.BLPop(ctx, s.cfg.PopTimeout, queueKey()).Result()
		if errors.Is(err, redis.Nil) {
			continue // Timed out with an empty queue
		}
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			return nil, err
		}

		// BLPOP replies with [key, value]
		if len(vals) != 2 {
			return nil, fmt.Errorf("unexpected BLPOP reply of length %d", len(vals))
		}

		var job model.Job
		if err := json.Unmarshal([]byte(vals[1]), &job); err != nil {
			return nil, fmt.Errorf("decode job: %w", err)
		}
		return &job, nil
	}
}

func (s *Storage) QueueLength(ctx context.Context) (int64, error) {
	return s.client.LLen(ctx, queueKey()).Result()
}

// Result operations

func (s *Storage) SaveResult(ctx context.Context, result *model.BotResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}

	// Result and leaderboard entry change together
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, resultKey(result.UserID), data, s.cfg.ResultTTL)
	if result.Status == model.ResultAccepted {
		pipe.ZAdd(ctx, leaderboardKey(), redis.Z{
			Score:  result.AverageMoves,
			Member: string(result.UserID),
		})
	} else {
		pipe.ZRem(ctx, leaderboardKey(), string(result.UserID))
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetResult(ctx context.Context, userID model.UserID) (*model.BotResult, error) {
	data, err := s.client.Get(ctx, resultKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrResultNotFound
		}
		return nil, err
	}

	var result model.BotResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *Storage) Leaderboard(ctx context.Context, limit int) ([]*model.BotResult, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}

	// Ascending score, ties ordered by member
	userIDs, err := s.client.ZRange(ctx, leaderboardKey(), 0, stop).Result()
	if err != nil {
		return nil, err
	}

	if len(userIDs) == 0 {
		return []*model.BotResult{}, nil
	}

	keys := make([]string, len(userIDs))
	for i, id := range userIDs {
		keys[i] = resultKey(model.UserID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	results := make([]*model.BotResult, 0, len(values))
	for _, val := range values {
		str, ok := val.(string)
		if !ok {
			continue // Result may have expired
		}
		var result model.BotResult
		if err := json.Unmarshal([]byte(str), &result); err != nil {
			continue // Skip invalid data
		}
		results = append(results, &result)
	}

	return results, nil
}
