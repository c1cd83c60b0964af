package factory

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/mcoot/battlebots/internal/config"
	"github.com/mcoot/battlebots/internal/dependencies/clock"
	"github.com/mcoot/battlebots/internal/dependencies/random"
	"github.com/mcoot/battlebots/internal/services/game"
	"github.com/mcoot/battlebots/internal/services/protocol"
	"github.com/mcoot/battlebots/internal/services/submission"
	"github.com/mcoot/battlebots/internal/services/tournament"
	"github.com/mcoot/battlebots/internal/services/worker"
	"github.com/mcoot/battlebots/internal/storage"
	"github.com/mcoot/battlebots/internal/storage/memory"
	redisstorage "github.com/mcoot/battlebots/internal/storage/redis"
	"github.com/mcoot/battlebots/internal/storage/sqlite"
)

// App contains all wired application components
type App struct {
	// Storage
	Queue   storage.JobQueue
	Results storage.ResultStore

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	MoveHandler       *protocol.Handler
	Engine            *game.Engine
	Tournament        *tournament.Runner
	Worker            *worker.Worker
	SubmissionService *submission.Service

	closers []io.Closer
}

// Dependencies are the swappable parts of an App
type Dependencies struct {
	Queue   storage.JobQueue
	Results storage.ResultStore
	Clock   clock.Clock
	Random  random.Random
	Runner  protocol.Runner
}

// Options are the tunables of an App
type Options struct {
	BotDir      string
	NumGames    int
	MoveTimeout time.Duration
	Logger      *slog.Logger
}

// New creates a new application with all dependencies wired from cfg
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	// Use no-op logger if not provided
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var (
		closers []io.Closer
		redis   *redisstorage.Storage
	)
	closeAll := func() {
		for _, c := range closers {
			_ = c.Close()
		}
	}

	if cfg.UsesRedis() {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.Storage.RedisURL
		r, err := redisstorage.New(redisCfg)
		if err != nil {
			return nil, err
		}
		redis = r
		closers = append(closers, r)
	}

	// Memory queue and results share one instance
	mem := memory.New()

	var queue storage.JobQueue
	switch cfg.Storage.Queue {
	case config.StorageMemory:
		queue = mem
	case config.StorageRedis:
		queue = redis
	default:
		closeAll()
		return nil, errors.New("invalid queue storage: must be 'memory' or 'redis'")
	}

	var results storage.ResultStore
	switch cfg.Storage.Results {
	case config.StorageMemory:
		results = mem
	case config.StorageRedis:
		results = redis
	case config.StorageSQLite:
		store, err := sqlite.New(cfg.Storage.SQLitePath)
		if err != nil {
			closeAll()
			return nil, err
		}
		results = store
		closers = append(closers, store)
	default:
		closeAll()
		return nil, errors.New("invalid results storage: must be 'memory', 'redis' or 'sqlite'")
	}

	// Each worker owns its random source
	seed := cfg.Seed
	if seed == 0 {
		seed = random.CryptoSeed()
	}
	logger.Info("random source seeded", slog.Uint64("seed", seed))

	app := newWithDependencies(Dependencies{
		Queue:   queue,
		Results: results,
		Clock:   clock.New(),
		Random:  random.NewSeeded(seed),
		Runner:  protocol.NewExecRunner(),
	}, Options{
		BotDir:      cfg.BotPath,
		NumGames:    cfg.NumGamesPerTournament,
		MoveTimeout: cfg.MoveTimeout,
		Logger:      logger,
	})
	app.closers = closers
	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(deps Dependencies, opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	handler := protocol.NewHandler(deps.Runner, opts.MoveTimeout, logger)
	engine := game.NewEngine(handler, logger)
	runner := tournament.NewRunner(engine, deps.Random, logger)
	w := worker.New(deps.Queue, deps.Results, runner, deps.Clock, worker.Config{
		BotDir:   opts.BotDir,
		NumGames: opts.NumGames,
	}, logger)
	submissions := submission.New(deps.Queue, deps.Results, deps.Clock, logger)

	return &App{
		Queue:             deps.Queue,
		Results:           deps.Results,
		Clock:             deps.Clock,
		Random:            deps.Random,
		MoveHandler:       handler,
		Engine:            engine,
		Tournament:        runner,
		Worker:            w,
		SubmissionService: submissions,
	}
}

// Close releases storage connections
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
