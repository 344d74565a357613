package standing

import (
	"github.com/Tejas544/gully-scorer/internal/domain/innings"
	"github.com/Tejas544/gully-scorer/internal/domain/match"
)

const (
	PointsWin  = 2
	PointsDraw = 1

	// AllOutBallQuota is charged to an innings that lost its wicket, for net run rate only.
	AllOutBallQuota = 12
)

// MatchWithInnings pairs a match with its innings rows.
type MatchWithInnings struct {
	Match   match.Match
	Innings []innings.Innings
}

// TeamRow is one line of the points table.
type TeamRow struct {
	TeamID       string
	Name         string
	Played       int
	Won          int
	Lost         int
	Draw         int
	Points       int
	RunsScored   int
	BallsFaced   int
	RunsConceded int
	BallsBowled  int
	NRR          float64
}

type BattingRow struct {
	TeamID       string
	Name         string
	Innings      int
	Runs         int
	Balls        int
	StrikeRate   float64
	HighestScore int
	NotOuts      int
}

type BowlingRow struct {
	TeamID      string
	Name        string
	Innings     int
	Wickets     int
	Runs        int
	Balls       int
	Economy     float64
	BestWickets int
	BestRuns    int
}

// Table is the season leaderboard.
type Table struct {
	Standings []TeamRow
	Batting   []BattingRow
	Bowling   []BowlingRow
}

// TopTwo returns the first two standings rows when the table has them.
func (t Table) TopTwo() (TeamRow, TeamRow, bool) {
	if len(t.Standings) < 2 {
		return TeamRow{}, TeamRow{}, false
	}
	return t.Standings[0], t.Standings[1], true
}
