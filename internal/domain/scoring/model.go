package scoring

import (
	"github.com/Tejas544/gully-scorer/internal/domain/ball"
	"github.com/Tejas544/gully-scorer/internal/domain/match"
)

// MaxWickets ends an innings in the one-batter format.
const MaxWickets = 1

const (
	MessageChased   = "Chased down successfully!"
	MessageDefended = "Defended the target!"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// Result is a decided match. An empty WinnerTeamID is a tie.
type Result struct {
	WinnerTeamID string
	Message      string
}

func (r Result) IsTie() bool {
	return r.WinnerTeamID == ""
}

// State is the scoreboard of the innings currently in play.
type State struct {
	MatchID       string
	InningsID     string
	SeasonID      string
	BattingTeamID string
	BowlingTeamID string
	Phase         match.Phase
	InningsNumber int
	// Target is zero when no chase is on.
	Target       int
	TotalRuns    int
	TotalWickets int
	LegalBalls   int
	History      []ball.Ball
	Status       Status
	Result       *Result
}

// Transition describes what a recorded delivery changed.
type Transition struct {
	Ball          ball.Ball
	InningsOver   bool
	MatchFinished bool
	Result        *Result
}

func (s State) Totals() ball.Totals {
	return ball.Totals{Runs: s.TotalRuns, Wickets: s.TotalWickets, LegalBalls: s.LegalBalls}
}

func (s State) IsCompleted() bool {
	return s.Status == StatusCompleted
}

// BallsRemaining is the number of legal deliveries left in the innings.
func (s State) BallsRemaining() int {
	left := s.Phase.BallLimit() - s.LegalBalls
	if left < 0 {
		return 0
	}
	return left
}

// RunsNeeded is how many more runs the chasing side needs, zero outside a chase.
func (s State) RunsNeeded() int {
	if s.Target == 0 || s.TotalRuns >= s.Target {
		return 0
	}
	return s.Target - s.TotalRuns
}

// Clone returns a copy whose history and result do not alias the receiver.
func (s State) Clone() State {
	out := s
	out.History = make([]ball.Ball, len(s.History))
	copy(out.History, s.History)
	if s.Result != nil {
		res := *s.Result
		out.Result = &res
	}
	return out
}
