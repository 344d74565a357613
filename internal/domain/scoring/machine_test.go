package scoring

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Tejas544/gully-scorer/internal/domain/ball"
	"github.com/Tejas544/gully-scorer/internal/domain/innings"
	"github.com/Tejas544/gully-scorer/internal/domain/match"
)

func newState(t *testing.T, round int) State {
	t.Helper()

	m := match.Match{ID: "m1", SeasonID: "s1", Round: round, TeamAID: "A", TeamBID: "B"}
	first := innings.Innings{ID: "i1", MatchID: "m1", Number: 1, BattingTeamID: "A"}
	state, err := Initialize(m, first, nil, nil)
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}
	return state
}

func chaseState(t *testing.T, round, firstInningsRuns int) State {
	t.Helper()

	m := match.Match{ID: "m1", SeasonID: "s1", Round: round, TeamAID: "A", TeamBID: "B"}
	first := innings.Innings{ID: "i1", MatchID: "m1", Number: 1, BattingTeamID: "A", TotalRuns: firstInningsRuns, LegalBalls: 12, IsCompleted: true}
	second := innings.Innings{ID: "i2", MatchID: "m1", Number: 2, BattingTeamID: "B"}
	state, err := Initialize(m, second, nil, &first)
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}
	return state
}

func record(t *testing.T, s State, inputs ...ball.Input) State {
	t.Helper()

	for i, in := range inputs {
		next, _, ok := s.Record(in, fmt.Sprintf("b%d", len(s.History)))
		if !ok {
			t.Fatalf("input %d (%+v) was rejected", i, in)
		}
		s = next
	}
	return s
}

var (
	dot    = ball.Input{Kind: ball.KindRuns, Runs: 0}
	single = ball.Input{Kind: ball.KindRuns, Runs: 1}
	wide   = ball.Input{Kind: ball.KindWide}
	noBall = ball.Input{Kind: ball.KindNoBall}
	out    = ball.Input{Kind: ball.KindWicket, Dismissal: ball.DismissalCaught}
)

func TestInitialize_SecondInningsTarget(t *testing.T) {
	t.Parallel()

	state := chaseState(t, 1, 7)
	if state.Target != 8 {
		t.Fatalf("target got %d want 8", state.Target)
	}
	if state.BattingTeamID != "B" || state.BowlingTeamID != "A" {
		t.Fatalf("unexpected sides: batting=%s bowling=%s", state.BattingTeamID, state.BowlingTeamID)
	}
}

func TestInitialize_TotalsComeFromHistory(t *testing.T) {
	t.Parallel()

	m := match.Match{ID: "m1", SeasonID: "s1", Round: 1, TeamAID: "A", TeamBID: "B"}
	stale := innings.Innings{ID: "i1", MatchID: "m1", Number: 1, BattingTeamID: "A", TotalRuns: 99}
	history := []ball.Ball{
		{ID: "b0", InningsID: "i1", Index: 0, RunsBatter: 1},
		{ID: "b1", InningsID: "i1", Index: 1, Extras: 1, IsWide: true},
	}

	state, err := Initialize(m, stale, history, nil)
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if diff := cmp.Diff(ball.Totals{Runs: 2, LegalBalls: 1}, state.Totals()); diff != "" {
		t.Fatalf("totals mismatch (-want +got):\n%s", diff)
	}
}

func TestInitialize_CompletedMatchCarriesResult(t *testing.T) {
	t.Parallel()

	m := match.Match{ID: "m1", Round: 3, TeamAID: "A", TeamBID: "B", IsCompleted: true, ResultNote: "Match Tied (1 pt each)"}
	first := innings.Innings{ID: "i1", MatchID: "m1", Number: 1, BattingTeamID: "A", TotalRuns: 4, IsCompleted: true}
	second := innings.Innings{ID: "i2", MatchID: "m1", Number: 2, BattingTeamID: "B", TotalRuns: 4, IsCompleted: true}

	state, err := Initialize(m, second, nil, &first)
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if state.Result == nil || !state.Result.IsTie() {
		t.Fatalf("expected tie result, got %+v", state.Result)
	}
	if _, _, ok := state.Record(single, "x"); ok {
		t.Fatalf("expected record to be rejected on a decided match")
	}
}

func TestInitialize_RejectsForeignInnings(t *testing.T) {
	t.Parallel()

	m := match.Match{ID: "m1", Round: 1, TeamAID: "A", TeamBID: "B"}
	_, err := Initialize(m, innings.Innings{ID: "i1", MatchID: "m1", Number: 1, BattingTeamID: "Z"}, nil, nil)
	if !errors.Is(err, ErrInningsMismatch) {
		t.Fatalf("expected ErrInningsMismatch, got %v", err)
	}
}

func TestRecord_AppendsGaplessBalls(t *testing.T) {
	t.Parallel()

	state := record(t, newState(t, 1), single, wide, noBall, dot)
	for i, b := range state.History {
		if b.Index != i {
			t.Fatalf("ball %d has index %d", i, b.Index)
		}
		if b.InningsID != "i1" {
			t.Fatalf("ball %d innings got %s", i, b.InningsID)
		}
	}
	if diff := cmp.Diff(ball.Fold(state.History), state.Totals()); diff != "" {
		t.Fatalf("fold invariant broken (-fold +state):\n%s", diff)
	}
	if diff := cmp.Diff(ball.Totals{Runs: 3, LegalBalls: 2}, state.Totals()); diff != "" {
		t.Fatalf("totals mismatch (-want +got):\n%s", diff)
	}
}

func TestRecord_DoesNotMutateReceiver(t *testing.T) {
	t.Parallel()

	before := record(t, newState(t, 1), single)
	snapshot := before.Clone()
	_, _, _ = before.Record(single, "x")

	if diff := cmp.Diff(snapshot, before); diff != "" {
		t.Fatalf("receiver mutated (-before +after):\n%s", diff)
	}
}

func TestRecord_InningsTermination(t *testing.T) {
	t.Parallel()

	t.Run("wicket ends innings", func(t *testing.T) {
		t.Parallel()

		state, tr, ok := record(t, newState(t, 1), single).Record(out, "w")
		if !ok || !tr.InningsOver || !state.IsCompleted() {
			t.Fatalf("expected innings over after wicket, got %+v %+v", state.Status, tr)
		}
		if tr.MatchFinished {
			t.Fatalf("first innings must not finish the match")
		}
		if state.History[1].Dismissal != ball.DismissalCaught {
			t.Fatalf("dismissal not carried: %+v", state.History[1])
		}
	})

	t.Run("ball limit ends innings", func(t *testing.T) {
		t.Parallel()

		for _, tc := range []struct {
			round int
			limit int
		}{{round: 1, limit: 12}, {round: 100, limit: 12}, {round: 101, limit: 6}, {round: 9001, limit: 6}} {
			state := newState(t, tc.round)
			for i := 0; i < tc.limit-1; i++ {
				state = record(t, state, wide, dot)
			}
			if state.IsCompleted() {
				t.Fatalf("round %d: innings closed early after %d legal balls", tc.round, state.LegalBalls)
			}
			state = record(t, state, dot)
			if !state.IsCompleted() || state.LegalBalls != tc.limit {
				t.Fatalf("round %d: expected innings over at %d legal balls, got %d", tc.round, tc.limit, state.LegalBalls)
			}
			if _, _, ok := state.Record(single, "late"); ok {
				t.Fatalf("round %d: ball accepted after innings ended", tc.round)
			}
		}
	})
}

func TestRecord_ChaseOutcomes(t *testing.T) {
	t.Parallel()

	t.Run("chased down", func(t *testing.T) {
		t.Parallel()

		state := chaseState(t, 1, 1)
		state = record(t, state, single)
		next, tr, ok := state.Record(single, "b")
		if !ok || !tr.MatchFinished {
			t.Fatalf("expected chase to finish the match")
		}
		if next.Result.WinnerTeamID != "B" || next.Result.Message != MessageChased {
			t.Fatalf("unexpected result: %+v", next.Result)
		}
		if !next.IsCompleted() {
			t.Fatalf("innings must close on a successful chase")
		}
	})

	t.Run("no ball can win the chase", func(t *testing.T) {
		t.Parallel()

		state := chaseState(t, 1, 0)
		next, tr, _ := state.Record(noBall, "nb")
		if !tr.MatchFinished || next.Result.WinnerTeamID != "B" {
			t.Fatalf("expected extra to complete chase, got %+v", next.Result)
		}
	})

	t.Run("defended", func(t *testing.T) {
		t.Parallel()

		state := chaseState(t, 1, 5)
		next, tr, _ := record(t, state, single).Record(out, "w")
		if !tr.MatchFinished || next.Result.WinnerTeamID != "A" || next.Result.Message != MessageDefended {
			t.Fatalf("unexpected result: %+v", next.Result)
		}
	})
}

func TestRecord_TieMessagePerPhase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		round int
		want  string
	}{
		{round: 4, want: "Match Tied (1 pt each)"},
		{round: 91, want: "Match Tied! (Super Over needed)"},
		{round: 100, want: "Match Tied! (Super Over needed)"},
		{round: 101, want: "Bowl Out Needed!"},
		{round: 9001, want: "Bowl Out Needed!"},
	}

	for _, tc := range tests {
		state := chaseState(t, tc.round, 2)
		state = record(t, state, single, single)
		next, tr, ok := state.Record(out, "w")
		if !ok || !tr.MatchFinished {
			t.Fatalf("round %d: expected finished match", tc.round)
		}
		if !next.Result.IsTie() || next.Result.Message != tc.want {
			t.Fatalf("round %d: got %+v want tie %q", tc.round, next.Result, tc.want)
		}
	}
}

func TestUndo_InverseOfRecord(t *testing.T) {
	t.Parallel()

	inputs := []ball.Input{single, wide, dot, noBall, single, out}
	for _, start := range []State{newState(t, 1), chaseState(t, 100, 2)} {
		state := start
		for i, in := range inputs {
			before := state
			next, _, ok := state.Record(in, fmt.Sprintf("b%d", i))
			if !ok {
				break
			}
			undone, removed, ok := next.Undo()
			if !ok {
				t.Fatalf("undo rejected after input %d", i)
			}
			if removed.ID != fmt.Sprintf("b%d", i) {
				t.Fatalf("undo removed %s", removed.ID)
			}
			if diff := cmp.Diff(before, undone); diff != "" {
				t.Fatalf("undo is not the inverse of record %d (-before +undone):\n%s", i, diff)
			}
			state = next
		}
	}
}

func TestUndo_EmptyHistory(t *testing.T) {
	t.Parallel()

	state := newState(t, 1)
	if _, _, ok := state.Undo(); ok {
		t.Fatalf("expected undo on empty history to be rejected")
	}
}

func TestSecondInnings(t *testing.T) {
	t.Parallel()

	state := newState(t, 1)
	if _, err := state.SecondInnings("i2"); !errors.Is(err, ErrInningsUnderway) {
		t.Fatalf("expected ErrInningsUnderway, got %v", err)
	}

	state = record(t, state, single, single, out)
	second, err := state.SecondInnings("i2")
	if err != nil {
		t.Fatalf("second innings: %v", err)
	}
	if second.Target != 3 || second.InningsNumber != 2 || second.BattingTeamID != "B" || second.BowlingTeamID != "A" {
		t.Fatalf("unexpected second innings state: %+v", second)
	}
	if second.TotalRuns != 0 || len(second.History) != 0 || second.IsCompleted() {
		t.Fatalf("second innings must start fresh: %+v", second)
	}
	if _, err := second.SecondInnings("i3"); !errors.Is(err, ErrNotFirstInnings) {
		t.Fatalf("expected ErrNotFirstInnings, got %v", err)
	}
}
