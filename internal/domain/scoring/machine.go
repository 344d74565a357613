package scoring

import (
	"errors"
	"fmt"

	"github.com/Tejas544/gully-scorer/internal/domain/ball"
	"github.com/Tejas544/gully-scorer/internal/domain/innings"
	"github.com/Tejas544/gully-scorer/internal/domain/match"
)

var (
	ErrInningsMismatch   = errors.New("innings does not belong to match")
	ErrNotFirstInnings   = errors.New("second innings can only follow the first")
	ErrInningsUnderway   = errors.New("first innings is still in progress")
	ErrMissingFirstScore = errors.New("first innings is required to set a target")
)

// Initialize rebuilds the scoreboard of current from its ball log. first is required
// when current is the second innings. Totals come from the log, not from the stored summary.
func Initialize(m match.Match, current innings.Innings, history []ball.Ball, first *innings.Innings) (State, error) {
	phase, err := m.Phase()
	if err != nil {
		return State{}, err
	}
	if current.MatchID != m.ID {
		return State{}, fmt.Errorf("%w: innings %s match %s", ErrInningsMismatch, current.ID, m.ID)
	}
	bowling := m.Opponent(current.BattingTeamID)
	if bowling == "" {
		return State{}, fmt.Errorf("%w: batting team %s", ErrInningsMismatch, current.BattingTeamID)
	}

	totals := ball.Fold(history)
	state := State{
		MatchID:       m.ID,
		InningsID:     current.ID,
		SeasonID:      m.SeasonID,
		BattingTeamID: current.BattingTeamID,
		BowlingTeamID: bowling,
		Phase:         phase,
		InningsNumber: current.Number,
		TotalRuns:     totals.Runs,
		TotalWickets:  totals.Wickets,
		LegalBalls:    totals.LegalBalls,
		History:       append(make([]ball.Ball, 0, len(history)), history...),
		Status:        StatusActive,
	}
	if current.IsCompleted {
		state.Status = StatusCompleted
	}

	if current.Number == 2 {
		if first == nil {
			return State{}, ErrMissingFirstScore
		}
		state.Target = first.TotalRuns + 1
	}

	if m.IsCompleted {
		state.Status = StatusCompleted
		state.Result = &Result{WinnerTeamID: m.WinnerTeamID, Message: m.ResultNote}
	}

	return state, nil
}

// Record applies one delivery. It reports false and leaves the state untouched once the
// innings is over or the match is decided.
func (s State) Record(in ball.Input, ballID string) (State, Transition, bool) {
	if s.IsCompleted() || s.Result != nil {
		return s, Transition{}, false
	}

	delivery := ball.Resolve(in).Ball(ballID, s.InningsID, len(s.History))
	totals := s.Totals().Apply(delivery)

	over := totals.Wickets >= MaxWickets || totals.LegalBalls >= s.Phase.BallLimit()
	var result *Result
	if s.InningsNumber == 2 && s.Target > 0 {
		switch {
		case totals.Runs >= s.Target:
			over = true
			result = &Result{WinnerTeamID: s.BattingTeamID, Message: MessageChased}
		case over && totals.Runs == s.Target-1:
			result = &Result{Message: s.Phase.TieMessage()}
		case over:
			result = &Result{WinnerTeamID: s.BowlingTeamID, Message: MessageDefended}
		}
	}

	next := s.Clone()
	next.History = append(next.History, delivery)
	next.TotalRuns = totals.Runs
	next.TotalWickets = totals.Wickets
	next.LegalBalls = totals.LegalBalls
	next.Result = result
	if over {
		next.Status = StatusCompleted
	}

	return next, Transition{
		Ball:          delivery,
		InningsOver:   over,
		MatchFinished: result != nil,
		Result:        result,
	}, true
}

// Undo removes the last delivery, reopens the innings and clears any result.
func (s State) Undo() (State, ball.Ball, bool) {
	if len(s.History) == 0 {
		return s, ball.Ball{}, false
	}

	last := s.History[len(s.History)-1]
	totals := s.Totals().Revert(last)

	next := s.Clone()
	next.History = next.History[:len(next.History)-1]
	next.TotalRuns = totals.Runs
	next.TotalWickets = totals.Wickets
	next.LegalBalls = totals.LegalBalls
	next.Status = StatusActive
	next.Result = nil

	return next, last, true
}

// SecondInnings swaps sides once the first innings is complete.
func (s State) SecondInnings(newInningsID string) (State, error) {
	if s.InningsNumber != 1 {
		return s, ErrNotFirstInnings
	}
	if !s.IsCompleted() {
		return s, ErrInningsUnderway
	}

	return State{
		MatchID:       s.MatchID,
		InningsID:     newInningsID,
		SeasonID:      s.SeasonID,
		BattingTeamID: s.BowlingTeamID,
		BowlingTeamID: s.BattingTeamID,
		Phase:         s.Phase,
		InningsNumber: 2,
		Target:        s.TotalRuns + 1,
		History:       []ball.Ball{},
		Status:        StatusActive,
	}, nil
}

// Innings renders the state as the innings summary row to persist.
func (s State) Innings() innings.Innings {
	return innings.Innings{
		ID:            s.InningsID,
		MatchID:       s.MatchID,
		Number:        s.InningsNumber,
		BattingTeamID: s.BattingTeamID,
		TotalRuns:     s.TotalRuns,
		TotalWickets:  s.TotalWickets,
		LegalBalls:    s.LegalBalls,
		IsCompleted:   s.IsCompleted(),
	}
}
