package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/mcoot/battlebots/internal/model"
	"github.com/mcoot/battlebots/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.Mutex

	jobs     []*model.Job
	jobReady chan struct{}
	results  map[model.UserID]*model.BotResult
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		jobReady: make(chan struct{}, 1),
		results:  make(map[model.UserID]*model.BotResult),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Queue operations

func (s *Storage) PushJob(ctx context.Context, job *model.Job) error {
	s.mu.Lock()
	jobCopy := *job
	s.jobs = append(s.jobs, &jobCopy)
	s.mu.Unlock()

	// Wake a waiting PopJob; a pending signal already covers this job
	select {
	case s.jobReady <- struct{}{}:
	default:
	}
	return nil
}

func (s *Storage) PopJob(ctx context.Context) (*model.Job, error) {
	for {
		if job := s.tryPop(); job != nil {
			return job, nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-s.jobReady:
		}
	}
}

func (s *Storage) tryPop() *model.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.jobs) == 0 {
		return nil
	}
	job := s.jobs[0]
	s.jobs[0] = nil
	s.jobs = s.jobs[1:]
	if len(s.jobs) > 0 {
		// Pass the wake-up on to the next waiter
		select {
		case s.jobReady <- struct{}{}:
		default:
		}
	}
	return job
}

func (s *Storage) QueueLength(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.jobs)), nil
}

// Result operations

func (s *Storage) SaveResult(ctx context.Context, result *model.BotResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	resultCopy := *result
	s.results[result.UserID] = &resultCopy
	return nil
}

func (s *Storage) GetResult(ctx context.Context, userID model.UserID) (*model.BotResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result, ok := s.results[userID]
	if !ok {
		return nil, model.ErrResultNotFound
	}
	resultCopy := *result
	return &resultCopy, nil
}

func (s *Storage) Leaderboard(ctx context.Context, limit int) ([]*model.BotResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	board := make([]*model.BotResult, 0, len(s.results))
	for _, r := range s.results {
		if r.Status != model.ResultAccepted {
			continue
		}
		resultCopy := *r
		board = append(board, &resultCopy)
	}

	slices.SortFunc(board, func(a, b *model.BotResult) int {
		switch {
		case a.AverageMoves < b.AverageMoves:
			return -1
		case a.AverageMoves > b.AverageMoves:
			return 1
		default:
			return strings.Compare(string(a.UserID), string(b.UserID))
		}
	})

	if limit > 0 && len(board) > limit {
		board = board[:limit]
	}
	return board, nil
}
