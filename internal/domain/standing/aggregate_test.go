package standing

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/Tejas544/gully-scorer/internal/domain/innings"
	"github.com/Tejas544/gully-scorer/internal/domain/match"
	"github.com/Tejas544/gully-scorer/internal/domain/team"
)

func sampleTeams() []team.Team {
	return []team.Team{
		{ID: "A", SeasonID: "s1", Name: "Alpha"},
		{ID: "B", SeasonID: "s1", Name: "Bravo"},
		{ID: "C", SeasonID: "s1", Name: "Charlie"},
	}
}

func TestAggregate_NoCompletedMatchesKeepsTeamOrder(t *testing.T) {
	t.Parallel()

	pending := MatchWithInnings{
		Match: match.Match{ID: "m1", SeasonID: "s1", Round: 1, TeamAID: "C", TeamBID: "A"},
		Innings: []innings.Innings{
			{ID: "i1", MatchID: "m1", Number: 1, BattingTeamID: "C", TotalRuns: 9, LegalBalls: 12, IsCompleted: true},
		},
	}

	table := Aggregate([]MatchWithInnings{pending}, sampleTeams())

	gotOrder := make([]string, 0, len(table.Standings))
	for _, row := range table.Standings {
		gotOrder = append(gotOrder, row.TeamID)
		if row.Played != 0 || row.Points != 0 || row.NRR != 0 {
			t.Fatalf("expected empty row for %s, got %+v", row.TeamID, row)
		}
	}
	if diff := cmp.Diff([]string{"A", "B", "C"}, gotOrder); diff != "" {
		t.Fatalf("standings order mismatch (-want +got):\n%s", diff)
	}
	if table.Batting[0].TeamID != "A" || table.Bowling[0].TeamID != "A" {
		t.Fatalf("expected leaderboards to keep team order on ties")
	}
}

func TestAggregate_Season(t *testing.T) {
	t.Parallel()

	matches := []MatchWithInnings{
		{
			Match: match.Match{ID: "m1", Round: 1, TeamAID: "A", TeamBID: "B", WinnerTeamID: "A", IsCompleted: true},
			Innings: []innings.Innings{
				{Number: 1, BattingTeamID: "A", TotalRuns: 10, LegalBalls: 12, IsCompleted: true},
				{Number: 2, BattingTeamID: "B", TotalRuns: 8, TotalWickets: 1, LegalBalls: 7, IsCompleted: true},
			},
		},
		{
			Match: match.Match{ID: "m2", Round: 2, TeamAID: "B", TeamBID: "C", IsCompleted: true},
			Innings: []innings.Innings{
				{Number: 1, BattingTeamID: "B", TotalRuns: 5, LegalBalls: 12, IsCompleted: true},
				{Number: 2, BattingTeamID: "C", TotalRuns: 5, LegalBalls: 12, IsCompleted: true},
			},
		},
		{
			Match: match.Match{ID: "m3", Round: 3, TeamAID: "A", TeamBID: "C"},
			Innings: []innings.Innings{
				{Number: 1, BattingTeamID: "A", TotalRuns: 40, LegalBalls: 3},
			},
		},
	}

	table := Aggregate(matches, sampleTeams())

	wantStandings := []TeamRow{
		{TeamID: "A", Name: "Alpha", Played: 1, Won: 1, Points: 2, RunsScored: 10, BallsFaced: 12, RunsConceded: 8, BallsBowled: 12, NRR: 1},
		{TeamID: "C", Name: "Charlie", Played: 1, Draw: 1, Points: 1, RunsScored: 5, BallsFaced: 12, RunsConceded: 5, BallsBowled: 12, NRR: 0},
		{TeamID: "B", Name: "Bravo", Played: 2, Lost: 1, Draw: 1, Points: 1, RunsScored: 13, BallsFaced: 24, RunsConceded: 15, BallsBowled: 24, NRR: -0.5},
	}
	if diff := cmp.Diff(wantStandings, table.Standings); diff != "" {
		t.Fatalf("standings mismatch (-want +got):\n%s", diff)
	}

	wantBatting := []BattingRow{
		{TeamID: "B", Name: "Bravo", Innings: 2, Runs: 13, Balls: 19, StrikeRate: 13.0 / 19.0 * 100, HighestScore: 8, NotOuts: 1},
		{TeamID: "A", Name: "Alpha", Innings: 1, Runs: 10, Balls: 12, StrikeRate: 10.0 / 12.0 * 100, HighestScore: 10, NotOuts: 1},
		{TeamID: "C", Name: "Charlie", Innings: 1, Runs: 5, Balls: 12, StrikeRate: 5.0 / 12.0 * 100, HighestScore: 5, NotOuts: 1},
	}
	if diff := cmp.Diff(wantBatting, table.Batting, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Fatalf("batting mismatch (-want +got):\n%s", diff)
	}

	gotBowling := make([]string, 0, len(table.Bowling))
	for _, row := range table.Bowling {
		gotBowling = append(gotBowling, row.TeamID)
	}
	if diff := cmp.Diff([]string{"A", "C", "B"}, gotBowling); diff != "" {
		t.Fatalf("bowling order mismatch (-want +got):\n%s", diff)
	}
	if got := table.Bowling[0].BestFigures(); got != "1/8" {
		t.Fatalf("best figures got %q want 1/8", got)
	}
	if got := table.Bowling[2].Economy; got != 3.75 {
		t.Fatalf("economy got %v want 3.75", got)
	}

	first, second, ok := table.TopTwo()
	if !ok || first.TeamID != "A" || second.TeamID != "C" {
		t.Fatalf("top two got %s,%s ok=%v", first.TeamID, second.TeamID, ok)
	}
}

func TestAggregate_NRRTieBreaksEqualPoints(t *testing.T) {
	t.Parallel()

	teams := []team.Team{{ID: "A", Name: "Alpha"}, {ID: "B", Name: "Bravo"}}
	matches := []MatchWithInnings{
		{
			Match: match.Match{ID: "m1", Round: 1, TeamAID: "A", TeamBID: "B", WinnerTeamID: "A", IsCompleted: true},
			Innings: []innings.Innings{
				{Number: 1, BattingTeamID: "B", TotalRuns: 3, LegalBalls: 12},
				{Number: 2, BattingTeamID: "A", TotalRuns: 4, LegalBalls: 2},
			},
		},
		{
			Match: match.Match{ID: "m2", Round: 2, TeamAID: "B", TeamBID: "A", WinnerTeamID: "B", IsCompleted: true},
			Innings: []innings.Innings{
				{Number: 1, BattingTeamID: "B", TotalRuns: 12, LegalBalls: 12},
				{Number: 2, BattingTeamID: "A", TotalRuns: 2, TotalWickets: 1, LegalBalls: 3},
			},
		},
	}

	table := Aggregate(matches, teams)
	if table.Standings[0].Points != table.Standings[1].Points {
		t.Fatalf("expected equal points, got %+v", table.Standings)
	}
	if table.Standings[0].NRR < table.Standings[1].NRR {
		t.Fatalf("expected higher NRR first, got %+v", table.Standings)
	}
}
