package usecase

import (
	"context"
	"time"

	"github.com/Tejas544/gully-scorer/internal/domain/match"
)

// MatchEvent announces a result change on a match.
type MatchEvent struct {
	SeasonID     string    `json:"season_id"`
	MatchID      string    `json:"match_id"`
	Round        int       `json:"round"`
	WinnerTeamID string    `json:"winner_team_id,omitempty"`
	ResultNote   string    `json:"result_note,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}

func (e MatchEvent) Tied() bool {
	return e.WinnerTeamID == ""
}

func newMatchEvent(m match.Match, at time.Time) MatchEvent {
	return MatchEvent{
		SeasonID:     m.SeasonID,
		MatchID:      m.ID,
		Round:        m.Round,
		WinnerTeamID: m.WinnerTeamID,
		ResultNote:   m.ResultNote,
		OccurredAt:   at.UTC(),
	}
}

// EventPublisher fans match result changes out to background consumers.
type EventPublisher interface {
	PublishMatchCompleted(ctx context.Context, event MatchEvent) error
	PublishMatchReopened(ctx context.Context, event MatchEvent) error
}

type nopPublisher struct{}

func (nopPublisher) PublishMatchCompleted(context.Context, MatchEvent) error { return nil }
func (nopPublisher) PublishMatchReopened(context.Context, MatchEvent) error  { return nil }

// ScoringMetrics records scoring activity. A nil value disables metrics.
type ScoringMetrics interface {
	BallRecorded(kind string)
	MatchCompleted(phase string, tied bool)
	PersistenceFailed(operation string)
}

type nopMetrics struct{}

func (nopMetrics) BallRecorded(string)         {}
func (nopMetrics) MatchCompleted(string, bool) {}
func (nopMetrics) PersistenceFailed(string)    {}

// sessionEvictor drops cached scoring sessions after a match is changed elsewhere.
type sessionEvictor interface {
	Forget(matchIDs ...string)
}
