package match

import (
	"errors"
	"testing"
)

func TestPhaseFromRound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		round     int
		kind      PhaseKind
		ballLimit int
		tie       string
	}{
		{round: 1, kind: PhaseLeague, ballLimit: 12, tie: "Match Tied (1 pt each)"},
		{round: 18, kind: PhaseLeague, ballLimit: 12, tie: "Match Tied (1 pt each)"},
		{round: 91, kind: PhaseQualifier1, ballLimit: 12, tie: "Match Tied! (Super Over needed)"},
		{round: 92, kind: PhaseQualifier2, ballLimit: 12, tie: "Match Tied! (Super Over needed)"},
		{round: 100, kind: PhaseFinal, ballLimit: 12, tie: "Match Tied! (Super Over needed)"},
		{round: 101, kind: PhaseBowlOut, ballLimit: 6, tie: "Bowl Out Needed!"},
		{round: 9001, kind: PhaseSuperOver, ballLimit: 6, tie: "Bowl Out Needed!"},
		{round: 9012, kind: PhaseBowlOutDecider, ballLimit: 6, tie: "Bowl Out Needed!"},
	}

	for _, tc := range tests {
		phase, err := PhaseFromRound(tc.round)
		if err != nil {
			t.Fatalf("round %d: unexpected error: %v", tc.round, err)
		}
		if phase.Kind != tc.kind {
			t.Fatalf("round %d: kind got %s want %s", tc.round, phase.Kind, tc.kind)
		}
		if got := phase.BallLimit(); got != tc.ballLimit {
			t.Fatalf("round %d: ball limit got %d want %d", tc.round, got, tc.ballLimit)
		}
		if got := phase.TieMessage(); got != tc.tie {
			t.Fatalf("round %d: tie message got %q want %q", tc.round, got, tc.tie)
		}
	}
}

func TestPhaseFromRound_Unknown(t *testing.T) {
	t.Parallel()

	for _, round := range []int{0, -3, 102, 500, 9000, 9003, 9010} {
		if _, err := PhaseFromRound(round); !errors.Is(err, ErrUnknownRound) {
			t.Fatalf("round %d: expected ErrUnknownRound, got %v", round, err)
		}
	}
}

func TestPhase_LeagueStageIncludesQualifiers(t *testing.T) {
	t.Parallel()

	for _, round := range []int{1, 91, 92, 99} {
		phase, _ := PhaseFromRound(round)
		if !phase.IsLeagueStage() {
			t.Fatalf("round %d should be league stage", round)
		}
	}
	for _, round := range []int{100, 101, 9001} {
		phase, _ := PhaseFromRound(round)
		if phase.IsLeagueStage() {
			t.Fatalf("round %d should not be league stage", round)
		}
	}
}

func TestNextTieBreakRounds(t *testing.T) {
	t.Parallel()

	if got := NextSuperOverRound(nil); got != 9001 {
		t.Fatalf("first super over round got %d want 9001", got)
	}
	if got := NextBowlOutDeciderRound([]int{1, 2, 100, 101}); got != 9002 {
		t.Fatalf("first decider round got %d want 9002", got)
	}

	existing := []int{3, 100, 101, 9001, 9012}
	got := NextSuperOverRound(existing)
	if got != 9021 {
		t.Fatalf("next super over round got %d want 9021", got)
	}
	phase, err := PhaseFromRound(got)
	if err != nil || phase.Kind != PhaseSuperOver {
		t.Fatalf("round %d should decode as super over, got %v %v", got, phase.Kind, err)
	}
	if got := NextBowlOutDeciderRound(existing); got != 9022 {
		t.Fatalf("next decider round got %d want 9022", got)
	}
}

func TestMatchValidate(t *testing.T) {
	t.Parallel()

	valid := Match{ID: "m1", SeasonID: "s1", Round: 1, TeamAID: "a", TeamBID: "b"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	same := valid
	same.TeamBID = "a"
	if err := same.Validate(); err == nil {
		t.Fatalf("expected error for identical teams")
	}

	outsider := valid
	outsider.WinnerTeamID = "c"
	if err := outsider.Validate(); err == nil {
		t.Fatalf("expected error for winner outside the match")
	}

	badRound := valid
	badRound.Round = 500
	if err := badRound.Validate(); !errors.Is(err, ErrUnknownRound) {
		t.Fatalf("expected ErrUnknownRound, got %v", err)
	}
}

func TestPhase_ScheduledNote(t *testing.T) {
	t.Parallel()

	cases := map[int]string{
		3:    "",
		91:   "",
		100:  NoteGrandFinal,
		101:  NoteBowlOutDecider,
		9001: NoteSuperOver,
		9002: NoteBowlOutDecider,
	}
	for round, want := range cases {
		phase, err := PhaseFromRound(round)
		if err != nil {
			t.Fatalf("PhaseFromRound(%d) error: %v", round, err)
		}
		if got := phase.ScheduledNote(); got != want {
			t.Fatalf("round %d note = %q, want %q", round, got, want)
		}
	}
}
