package tournament

import (
	"time"

	"github.com/Tejas544/gully-scorer/internal/domain/match"
	"github.com/Tejas544/gully-scorer/internal/domain/standing"
	"github.com/Tejas544/gully-scorer/internal/domain/team"
)

type Action string

const (
	ActionNone          Action = "none"
	ActionCreateFinal   Action = "create_final"
	ActionCreateBowlOut Action = "create_bowl_out"
)

// Snapshot is everything progression needs to know about a season.
type Snapshot struct {
	SeasonID string
	Matches  []standing.MatchWithInnings
	Teams    []team.Team
}

// Decision is the single step progression should take next.
type Decision struct {
	Action  Action
	Round   int
	TeamAID string
	TeamBID string
	Note    string
	Reason  string
}

func (d Decision) HasAction() bool {
	return d.Action != ActionNone
}

// Match materializes the decision as a new fixture of the season.
func (d Decision) Match(id, seasonID string, now time.Time) match.Match {
	return match.Match{
		ID:         id,
		SeasonID:   seasonID,
		Round:      d.Round,
		TeamAID:    d.TeamAID,
		TeamBID:    d.TeamBID,
		ResultNote: d.Note,
		CreatedAt:  now,
	}
}
