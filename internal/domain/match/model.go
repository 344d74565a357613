package match

import (
	"fmt"
	"time"
)

const (
	NoteGrandFinal     = "GRAND FINAL"
	NoteBowlOutDecider = "Bowl Out Decider"
	NoteSuperOver      = "SUPER OVER"
	NoteWonByBowlOut   = "Won by Bowl Out"
	NoteBowlOutTied    = "Bowl Out Tied"
)

// Match is one fixture between two teams of a season.
type Match struct {
	ID           string
	SeasonID     string
	Round        int
	TeamAID      string
	TeamBID      string
	WinnerTeamID string
	IsCompleted  bool
	ResultNote   string
	CreatedAt    time.Time
}

func (m Match) Phase() (Phase, error) {
	return PhaseFromRound(m.Round)
}

func (m Match) HasTeam(teamID string) bool {
	return teamID != "" && (m.TeamAID == teamID || m.TeamBID == teamID)
}

// Opponent returns the other side of the match, or "" when teamID is not playing.
func (m Match) Opponent(teamID string) string {
	switch teamID {
	case m.TeamAID:
		return m.TeamBID
	case m.TeamBID:
		return m.TeamAID
	default:
		return ""
	}
}

// IsTied reports a completed match that produced no winner.
func (m Match) IsTied() bool {
	return m.IsCompleted && m.WinnerTeamID == ""
}

func (m Match) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("match id is required")
	}
	if m.SeasonID == "" {
		return fmt.Errorf("match season id is required")
	}
	if m.TeamAID == "" || m.TeamBID == "" {
		return fmt.Errorf("match teams are required")
	}
	if m.TeamAID == m.TeamBID {
		return fmt.Errorf("match teams must differ")
	}
	if _, err := m.Phase(); err != nil {
		return err
	}
	if m.WinnerTeamID != "" && !m.HasTeam(m.WinnerTeamID) {
		return fmt.Errorf("winner %s is not playing match %s", m.WinnerTeamID, m.ID)
	}

	return nil
}

// Outcome is the persisted result written when a match finishes or is reopened.
type Outcome struct {
	WinnerTeamID string
	IsCompleted  bool
	ResultNote   string
}

// ScheduledNote is the note a fixture of this phase carries before it has a result.
func (p Phase) ScheduledNote() string {
	switch p.Kind {
	case PhaseFinal:
		return NoteGrandFinal
	case PhaseBowlOut, PhaseBowlOutDecider:
		return NoteBowlOutDecider
	case PhaseSuperOver:
		return NoteSuperOver
	default:
		return ""
	}
}
