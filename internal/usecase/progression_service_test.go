package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Tejas544/gully-scorer/internal/domain/match"
	"github.com/Tejas544/gully-scorer/internal/domain/tournament"
)

func (e *testEnv) completeLeague(t *testing.T, detail SeasonDetail) {
	t.Helper()
	for _, m := range detail.Matches {
		e.play(t, m, 1, 0)
	}
}

func (e *testEnv) scheduleFinal(t *testing.T, seasonID string) match.Match {
	t.Helper()

	result, err := e.progression.Check(context.Background(), seasonID)
	if err != nil {
		t.Fatalf("check progression: %v", err)
	}
	if result.Created == nil {
		t.Fatalf("expected a final to be scheduled, got %+v", result.Decision)
	}
	return *result.Created
}

func TestProgressionService_IdleWhileLeaguePending(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	detail := env.createSeason(t, "Summer", "Rahul", "Aman", "Vikram")
	env.play(t, detail.Matches[0], 1, 0)

	result, err := env.progression.Check(context.Background(), detail.Season.ID)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if result.Created != nil || result.Decision.Reason != tournament.ReasonLeaguePending {
		t.Fatalf("expected no action while league is pending, got %+v", result)
	}
}

func TestProgressionService_SchedulesFinalOnce(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	detail := env.createSeason(t, "Summer", "Rahul", "Aman")
	env.completeLeague(t, detail)

	final := env.scheduleFinal(t, detail.Season.ID)
	if final.Round != match.RoundFinal || final.ResultNote != match.NoteGrandFinal {
		t.Fatalf("unexpected final %+v", final)
	}
	if final.IsCompleted {
		t.Fatalf("a new final must be open")
	}

	again, err := env.progression.Check(context.Background(), detail.Season.ID)
	if err != nil {
		t.Fatalf("second check: %v", err)
	}
	if again.Created != nil || again.Decision.Reason != tournament.ReasonFinalPending {
		t.Fatalf("expected idempotent check, got %+v", again)
	}

	matches, err := env.seasons.ListMatches(context.Background(), detail.Season.ID)
	if err != nil {
		t.Fatalf("list matches: %v", err)
	}
	if len(matches) != len(detail.Matches)+1 {
		t.Fatalf("expected exactly one extra fixture, got %d matches", len(matches))
	}
}

func TestProgressionService_ConcurrentChecksScheduleOneFinal(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	detail := env.createSeason(t, "Summer", "Rahul", "Aman")
	env.completeLeague(t, detail)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := env.progression.Check(context.Background(), detail.Season.ID); err != nil {
				t.Errorf("check: %v", err)
			}
		}()
	}
	wg.Wait()

	matches, err := env.seasons.ListMatches(context.Background(), detail.Season.ID)
	if err != nil {
		t.Fatalf("list matches: %v", err)
	}
	finals := 0
	for _, m := range matches {
		if m.Round == match.RoundFinal {
			finals++
		}
	}
	if finals != 1 {
		t.Fatalf("expected one final, got %d", finals)
	}
}

func TestProgressionService_TiedFinal(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	detail := env.createSeason(t, "Summer", "Rahul", "Aman")
	env.completeLeague(t, detail)
	final := env.scheduleFinal(t, detail.Season.ID)
	env.play(t, final, 0, 0)

	if _, err := env.progression.CreateBowlOutDecider(context.Background(), final.ID); !errors.Is(err, ErrConflict) {
		t.Fatalf("a final tie is not settled by a bowl-out decider, got %v", err)
	}

	result, err := env.progression.Check(context.Background(), detail.Season.ID)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if result.Created == nil || result.Created.Round != match.RoundBowlOut {
		t.Fatalf("expected a bowl out after the tied final, got %+v", result)
	}
	if result.Created.TeamAID != final.TeamAID || result.Created.TeamBID != final.TeamBID {
		t.Fatalf("bowl out must replay the finalists, got %+v", result.Created)
	}

	superOver, err := env.progression.CreateSuperOver(context.Background(), final.ID)
	if err != nil {
		t.Fatalf("create super over: %v", err)
	}
	wantRound := match.NextSuperOverRound([]int{1, 2, match.RoundFinal, match.RoundBowlOut})
	if superOver.Round != wantRound {
		t.Fatalf("unexpected super over round: got=%d want=%d", superOver.Round, wantRound)
	}
	if superOver.TeamAID != final.TeamBID {
		t.Fatalf("the side that chased bats first in the super over, got %+v", superOver)
	}
	if superOver.ResultNote != match.NoteSuperOver {
		t.Fatalf("unexpected super over note %q", superOver.ResultNote)
	}
}

func TestProgressionService_RecordBowlOut(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	detail := env.createSeason(t, "Summer", "Rahul", "Aman")
	env.completeLeague(t, detail)
	final := env.scheduleFinal(t, detail.Season.ID)
	env.play(t, final, 0, 0)
	bowlOut := env.scheduleFinal(t, detail.Season.ID)
	env.play(t, bowlOut, 0, 0)

	ctx := context.Background()
	if _, err := env.progression.RecordBowlOut(ctx, BowlOutInput{MatchID: bowlOut.ID, TeamAScore: -1, TeamBScore: 2}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for a negative score, got %v", err)
	}
	if _, err := env.progression.RecordBowlOut(ctx, BowlOutInput{MatchID: final.ID, TeamAScore: 1, TeamBScore: 0}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for a final, got %v", err)
	}

	completedBefore, _ := env.events.counts()
	settled, err := env.progression.RecordBowlOut(ctx, BowlOutInput{MatchID: bowlOut.ID, TeamAScore: 1, TeamBScore: 3})
	if err != nil {
		t.Fatalf("record bowl out: %v", err)
	}
	if settled.WinnerTeamID != bowlOut.TeamBID || settled.ResultNote != match.NoteWonByBowlOut {
		t.Fatalf("unexpected settled match %+v", settled)
	}
	if completed, _ := env.events.counts(); completed != completedBefore+1 {
		t.Fatalf("expected a completed event for the bowl out")
	}

	stored := env.getMatch(t, bowlOut.ID)
	if stored.WinnerTeamID != bowlOut.TeamBID || !stored.IsCompleted {
		t.Fatalf("unexpected stored bowl out %+v", stored)
	}

	view, err := env.scoring.Get(ctx, bowlOut.ID)
	if err != nil {
		t.Fatalf("get bowl out: %v", err)
	}
	if view.Match.WinnerTeamID != bowlOut.TeamBID {
		t.Fatalf("expected scoring session reloaded with the bowl-out winner, got %+v", view.Match)
	}

	result, err := env.progression.Check(ctx, detail.Season.ID)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if result.Created != nil || result.Decision.Reason != tournament.ReasonBowlOutExists {
		t.Fatalf("expected no further progression, got %+v", result)
	}
}

func TestProgressionService_LevelBowlOutStaysTied(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	detail := env.createSeason(t, "Summer", "Rahul", "Aman")
	env.completeLeague(t, detail)
	final := env.scheduleFinal(t, detail.Season.ID)
	env.play(t, final, 0, 0)
	bowlOut := env.scheduleFinal(t, detail.Season.ID)
	env.play(t, bowlOut, 0, 0)

	ctx := context.Background()
	level, err := env.progression.RecordBowlOut(ctx, BowlOutInput{MatchID: bowlOut.ID, TeamAScore: 2, TeamBScore: 2})
	if err != nil {
		t.Fatalf("record level bowl out: %v", err)
	}
	if !level.IsTied() || level.ResultNote != match.NoteBowlOutTied {
		t.Fatalf("expected a tied bowl out, got %+v", level)
	}

	stored := env.getMatch(t, bowlOut.ID)
	if !stored.IsTied() || stored.ResultNote != match.NoteBowlOutTied {
		t.Fatalf("unexpected stored bowl out %+v", stored)
	}

	decider, err := env.progression.CreateBowlOutDecider(ctx, bowlOut.ID)
	if err != nil {
		t.Fatalf("create decider after level bowl out: %v", err)
	}
	if phase, _ := decider.Phase(); phase.Kind != match.PhaseBowlOutDecider {
		t.Fatalf("expected a bowl-out decider, got round %d", decider.Round)
	}

	settled, err := env.progression.RecordBowlOut(ctx, BowlOutInput{MatchID: bowlOut.ID, TeamAScore: 3, TeamBScore: 1})
	if err != nil {
		t.Fatalf("re-record bowl out: %v", err)
	}
	if settled.WinnerTeamID != bowlOut.TeamAID || settled.ResultNote != match.NoteWonByBowlOut {
		t.Fatalf("unexpected settled match %+v", settled)
	}
}

func TestProgressionService_TieBreakValidation(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	detail := env.createSeason(t, "Summer", "Rahul", "Aman")
	ctx := context.Background()

	tied := detail.Matches[0]
	env.play(t, tied, 0, 0)
	if _, err := env.progression.CreateSuperOver(ctx, tied.ID); !errors.Is(err, ErrConflict) {
		t.Fatalf("a league tie does not go to a super over, got %v", err)
	}

	decided := detail.Matches[1]
	env.play(t, decided, 1, 0)
	if _, err := env.progression.CreateSuperOver(ctx, decided.ID); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for a decided match, got %v", err)
	}

	if _, err := env.progression.CreateSuperOver(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := env.progression.Check(ctx, " "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
