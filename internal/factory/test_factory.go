package factory

import (
	"time"

	"github.com/mcoot/battlebots/internal/dependencies/mocks"
	"github.com/mcoot/battlebots/internal/services/protocol"
	"github.com/mcoot/battlebots/internal/storage/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Store backs both the queue and the results
	Store *memory.Storage

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// Bots are looked up in botDir and run as real processes.
func NewTestApp(botDir string, numGames int) *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(Dependencies{
		Queue:   store,
		Results: store,
		Clock:   mockClock,
		Random:  mockRandom,
		Runner:  protocol.NewExecRunner(),
	}, Options{
		BotDir:      botDir,
		NumGames:    numGames,
		MoveTimeout: 5 * time.Second,
	})

	return &TestApp{
		App:        app,
		Store:      store,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// QueueRowLayouts makes the next n games place ship i along row i from x=0
func (t *TestApp) QueueRowLayouts(n, fleetSize int) {
	for range n {
		for y := range fleetSize {
			t.MockRandom.QueueIntn(0, y, 0)
		}
	}
}
