package playerstats

import "time"

// MatchPlayerStats is one player's line for one finished match.
type MatchPlayerStats struct {
	MatchID          string
	PlayerID         string
	TeamID           string
	RunsScored       int
	BallsFaced       int
	IsOut            bool
	RunsConceded     int
	WicketsTaken     int
	LegalBallsBowled int
}

// Batted reports whether the player took guard in the match.
func (s MatchPlayerStats) Batted() bool {
	return s.BallsFaced > 0 || s.IsOut
}

func (s MatchPlayerStats) Bowled() bool {
	return s.LegalBallsBowled > 0
}

// Career is the lifetime summary shown on a player profile.
type Career struct {
	Matches int

	BattingInnings int
	Runs           int
	HighScore      int
	NotOuts        int
	Average        float64
	StrikeRate     float64

	BowlingInnings int
	Wickets        int
	RunsConceded   int
	BallsBowled    int
	Economy        float64
	BestWickets    int
	BestRuns       int
	HasBestFigures bool
}

type Result string

const (
	ResultWin  Result = "W"
	ResultLoss Result = "L"
	ResultTie  Result = "T"
)

// MatchLogEntry is one row of a player's match history.
type MatchLogEntry struct {
	MatchID      string
	SeasonID     string
	Round        int
	PlayedAt     time.Time
	OpponentName string
	Runs         int
	Wickets      int
	Result       Result
}

// Summary is the compact line used by the players directory.
type Summary struct {
	PlayerID string
	Name     string
	Matches  int
	Runs     int
	Wickets  int
	Outs     int
}
