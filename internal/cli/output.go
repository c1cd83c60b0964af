package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mcoot/battlebots/internal/model"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case SubmitResult:
		o.printSubmitResult(v)
	case Result:
		o.printResult(v)
	case Leaderboard:
		o.printLeaderboard(v)
	case HealthResult:
		o.printHealthResult(v)
	case PlayResult:
		o.printPlayResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// SubmitResult response type (matches API)
type SubmitResult struct {
	JobID       string `json:"job_id"`
	QueueLength int64  `json:"queue_length"`
}

// Failure response type
type Failure struct {
	Kind      string  `json:"kind"`
	Message   string  `json:"message"`
	GameState string  `json:"game_state"`
	Move      *string `json:"move,omitempty"`
}

// Result response type
type Result struct {
	UserID       string    `json:"user_id"`
	BotID        string    `json:"bot_id"`
	JobID        string    `json:"job_id"`
	Status       string    `json:"status"`
	AverageMoves *float64  `json:"average_moves,omitempty"`
	Failure      *Failure  `json:"failure,omitempty"`
	CompletedAt  time.Time `json:"completed_at"`
}

// LeaderboardEntry response type
type LeaderboardEntry struct {
	Rank         int       `json:"rank"`
	UserID       string    `json:"user_id"`
	BotID        string    `json:"bot_id"`
	AverageMoves float64   `json:"average_moves"`
	CompletedAt  time.Time `json:"completed_at"`
}

// Leaderboard response type
type Leaderboard struct {
	Entries []LeaderboardEntry `json:"entries"`
}

// HealthResult response type
type HealthResult struct {
	Status      string `json:"status"`
	QueueLength int64  `json:"queue_length"`
}

// PlayResult is the outcome of a local tournament
type PlayResult struct {
	BotPath      string        `json:"bot_path"`
	Games        int           `json:"games"`
	Seed         uint64        `json:"seed"`
	Status       string        `json:"status"`
	AverageMoves *float64      `json:"average_moves,omitempty"`
	Failure      *Failure      `json:"failure,omitempty"`
	Elapsed      time.Duration `json:"elapsed_ns"`
}

func (o *Output) printSubmitResult(s SubmitResult) {
	fmt.Fprintf(o.w, "Job: %s\n", s.JobID)
	fmt.Fprintf(o.w, "Queue length: %d\n", s.QueueLength)
}

func (o *Output) printResult(r Result) {
	fmt.Fprintf(o.w, "User: %s\n", r.UserID)
	fmt.Fprintf(o.w, "Bot: %s\n", r.BotID)
	fmt.Fprintf(o.w, "Job: %s\n", r.JobID)
	fmt.Fprintf(o.w, "Status: %s\n", r.Status)
	if r.AverageMoves != nil {
		fmt.Fprintf(o.w, "Average moves: %.2f\n", *r.AverageMoves)
	}
	if !r.CompletedAt.IsZero() {
		fmt.Fprintf(o.w, "Completed: %s\n", r.CompletedAt.Format(time.RFC3339))
	}
	if r.Failure != nil {
		o.printFailure(r.Failure)
	}
}

func (o *Output) printFailure(f *Failure) {
	fmt.Fprintf(o.w, "Failure: %s\n", f.Kind)
	fmt.Fprintf(o.w, "Reason: %s\n", f.Message)
	if f.Move != nil {
		fmt.Fprintf(o.w, "Move: %q\n", *f.Move)
	}
	fmt.Fprintln(o.w, "\nBoard at failure:")
	o.printShotBoard(f.GameState)
}

// printShotBoard renders a serialized shot board as a grid, x across and y down
func (o *Output) printShotBoard(state string) {
	cells := strings.Split(state, ",")
	if len(cells) != model.GridCells {
		fmt.Fprintf(o.w, "  %s\n", state)
		return
	}

	size := model.GridSize

	// Print column headers
	fmt.Fprint(o.w, "    ")
	for x := 0; x < size; x++ {
		fmt.Fprintf(o.w, " %d ", x)
	}
	fmt.Fprintln(o.w)

	// Print top border
	fmt.Fprint(o.w, "   +")
	for x := 0; x < size; x++ {
		fmt.Fprint(o.w, "---")
	}
	fmt.Fprintln(o.w, "+")

	// Print rows
	for y := 0; y < size; y++ {
		fmt.Fprintf(o.w, " %d |", y)
		for x := 0; x < size; x++ {
			switch cells[model.CoordToIndex(x, y)] {
			case "1":
				fmt.Fprint(o.w, " X ")
			case "-1":
				fmt.Fprint(o.w, " o ")
			default:
				fmt.Fprint(o.w, " . ")
			}
		}
		fmt.Fprintln(o.w, "|")
	}

	// Print bottom border
	fmt.Fprint(o.w, "   +")
	for x := 0; x < size; x++ {
		fmt.Fprint(o.w, "---")
	}
	fmt.Fprintln(o.w, "+")
}

func (o *Output) printLeaderboard(l Leaderboard) {
	if len(l.Entries) == 0 {
		fmt.Fprintln(o.w, "No accepted bots yet")
		return
	}
	fmt.Fprintf(o.w, "%-5s %-20s %-20s %s\n", "RANK", "USER", "BOT", "AVG MOVES")
	for _, e := range l.Entries {
		fmt.Fprintf(o.w, "%-5d %-20s %-20s %.2f\n", e.Rank, e.UserID, e.BotID, e.AverageMoves)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Fprintf(o.w, "Status: %s\n", h.Status)
	fmt.Fprintf(o.w, "Queue length: %d\n", h.QueueLength)
}

func (o *Output) printPlayResult(p PlayResult) {
	fmt.Fprintf(o.w, "Bot: %s\n", p.BotPath)
	fmt.Fprintf(o.w, "Games: %d (seed %d)\n", p.Games, p.Seed)
	fmt.Fprintf(o.w, "Status: %s\n", p.Status)
	if p.AverageMoves != nil {
		fmt.Fprintf(o.w, "Average moves: %.2f\n", *p.AverageMoves)
	}
	fmt.Fprintf(o.w, "Elapsed: %s\n", p.Elapsed.Round(time.Millisecond))
	if p.Failure != nil {
		o.printFailure(p.Failure)
	}
}
