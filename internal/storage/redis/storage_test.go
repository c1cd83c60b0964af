package redis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/battlebots/internal/model"
	"github.com/mcoot/battlebots/internal/testutil"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.PopTimeout = time.Second
	cfg.ResultTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// Queue tests

func (s *StorageSuite) TestPopReturnsJobsInPushOrder() {
	for _, id := range []string{"a", "b", "c"} {
		s.Require().NoError(s.storage.PushJob(s.ctx, testutil.NewJob(id, "user-"+id, "bot")))
	}

	length, err := s.storage.QueueLength(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(3), length)

	for _, id := range []string{"a", "b", "c"} {
		job, err := s.storage.PopJob(s.ctx)
		s.Require().NoError(err)
		s.Equal(model.JobID(id), job.ID)
		s.Equal(model.UserID("user-"+id), job.UserID)
	}
}

func (s *StorageSuite) TestJobsAreStoredAsJSON() {
	s.Require().NoError(s.storage.PushJob(s.ctx, testutil.NewJob("a", "alice", "bot")))

	items, err := s.mini.List(queueKey())
	s.Require().NoError(err)
	s.Require().Len(items, 1)

	var job model.Job
	s.Require().NoError(json.Unmarshal([]byte(items[0]), &job))
	s.Equal(model.UserID("alice"), job.UserID)
}

func (s *StorageSuite) TestPopOnEmptyQueueHonoursCancellation() {
	ctx, cancel := context.WithCancel(s.ctx)
	time.AfterFunc(200*time.Millisecond, cancel)

	job, err := s.storage.PopJob(ctx)
	s.Nil(job)
	s.ErrorIs(err, context.Canceled)
}

func (s *StorageSuite) TestPopWaitsForPush() {
	done := make(chan *model.Job, 1)
	go func() {
		job, err := s.storage.PopJob(s.ctx)
		if err == nil {
			done <- job
		}
	}()

	time.Sleep(150 * time.Millisecond)
	s.Require().NoError(s.storage.PushJob(s.ctx, testutil.NewJob("late", "user", "bot")))

	select {
	case job := <-done:
		s.Equal(model.JobID("late"), job.ID)
	case <-time.After(3 * time.Second):
		s.Fail("PopJob did not return the pushed job")
	}
}

// Result tests

func (s *StorageSuite) TestSaveAndGetResult() {
	s.Require().NoError(s.storage.SaveResult(s.ctx, testutil.AcceptedResult("alice", 45.5)))

	result, err := s.storage.GetResult(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.ResultAccepted, result.Status)
	s.Equal(45.5, result.AverageMoves)
	s.Equal(model.JobID("job-alice"), result.JobID)
}

func (s *StorageSuite) TestGetResultNotFound() {
	_, err := s.storage.GetResult(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrResultNotFound)
}

func (s *StorageSuite) TestRejectedResultKeepsFailure() {
	s.Require().NoError(s.storage.SaveResult(s.ctx, testutil.RejectedResult("alice")))

	result, err := s.storage.GetResult(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.ResultRejected, result.Status)
	s.Require().NotNil(result.Failure)
	s.Equal(model.FailureTimeout, result.Failure.Kind)
	s.ErrorIs(result.Failure, model.ErrMoveTimeout)
	s.Equal(model.NewShotBoard().String(), result.Failure.GameState)
}

func (s *StorageSuite) TestResultTTL() {
	s.Require().NoError(s.storage.SaveResult(s.ctx, testutil.AcceptedResult("alice", 40)))

	s.mini.FastForward(2 * time.Hour)

	_, err := s.storage.GetResult(s.ctx, "alice")
	s.ErrorIs(err, model.ErrResultNotFound)

	// Leaderboard skips expired results
	board, err := s.storage.Leaderboard(s.ctx, 0)
	s.Require().NoError(err)
	s.Empty(board)
}

func (s *StorageSuite) TestRejectionRemovesLeaderboardEntry() {
	s.Require().NoError(s.storage.SaveResult(s.ctx, testutil.AcceptedResult("alice", 45)))
	s.Require().NoError(s.storage.SaveResult(s.ctx, testutil.RejectedResult("alice")))

	board, err := s.storage.Leaderboard(s.ctx, 0)
	s.Require().NoError(err)
	s.Empty(board)
}

func (s *StorageSuite) TestLeaderboardOrdering() {
	s.Require().NoError(s.storage.SaveResult(s.ctx, testutil.AcceptedResult("carol", 50)))
	s.Require().NoError(s.storage.SaveResult(s.ctx, testutil.AcceptedResult("bob", 42)))
	s.Require().NoError(s.storage.SaveResult(s.ctx, testutil.AcceptedResult("alice", 50)))
	s.Require().NoError(s.storage.SaveResult(s.ctx, testutil.RejectedResult("dave")))

	board, err := s.storage.Leaderboard(s.ctx, 0)
	s.Require().NoError(err)

	var users []model.UserID
	for _, r := range board {
		users = append(users, r.UserID)
	}
	s.Equal([]model.UserID{"bob", "alice", "carol"}, users)

	top, err := s.storage.Leaderboard(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(top, 1)
	s.Equal(42.0, top[0].AverageMoves)
}

func (s *StorageSuite) TestLeaderboardEmpty() {
	board, err := s.storage.Leaderboard(s.ctx, 10)
	s.Require().NoError(err)
	s.NotNil(board)
	s.Empty(board)
}
