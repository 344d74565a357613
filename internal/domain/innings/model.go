package innings

import (
	"fmt"

	"github.com/Tejas544/gully-scorer/internal/domain/ball"
)

// Innings is one side's turn at the crease.
type Innings struct {
	ID            string
	MatchID       string
	Number        int
	BattingTeamID string
	TotalRuns     int
	TotalWickets  int
	LegalBalls    int
	IsCompleted   bool
}

func (i Innings) Validate() error {
	if i.ID == "" {
		return fmt.Errorf("innings id is required")
	}
	if i.MatchID == "" {
		return fmt.Errorf("innings match id is required")
	}
	if i.Number != 1 && i.Number != 2 {
		return fmt.Errorf("innings number must be 1 or 2, got %d", i.Number)
	}
	if i.BattingTeamID == "" {
		return fmt.Errorf("innings batting team id is required")
	}

	return nil
}

func (i Innings) Totals() ball.Totals {
	return ball.Totals{Runs: i.TotalRuns, Wickets: i.TotalWickets, LegalBalls: i.LegalBalls}
}

// WithTotals returns a copy carrying the given summary.
func (i Innings) WithTotals(t ball.Totals, completed bool) Innings {
	i.TotalRuns = t.Runs
	i.TotalWickets = t.Wickets
	i.LegalBalls = t.LegalBalls
	i.IsCompleted = completed
	return i
}

// Pair returns the first and second innings of a match when present.
func Pair(items []Innings) (first, second *Innings) {
	for idx := range items {
		item := items[idx]
		switch item.Number {
		case 1:
			first = &item
		case 2:
			second = &item
		}
	}
	return first, second
}
