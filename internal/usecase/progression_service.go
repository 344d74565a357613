package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Tejas544/gully-scorer/internal/domain/innings"
	"github.com/Tejas544/gully-scorer/internal/domain/match"
	"github.com/Tejas544/gully-scorer/internal/domain/season"
	"github.com/Tejas544/gully-scorer/internal/domain/team"
	"github.com/Tejas544/gully-scorer/internal/domain/tournament"
	idgen "github.com/Tejas544/gully-scorer/internal/platform/id"
	"github.com/Tejas544/gully-scorer/internal/platform/logging"
	"github.com/Tejas544/gully-scorer/internal/platform/resilience"
)

// ProgressionResult reports what a progression check decided and what it scheduled.
type ProgressionResult struct {
	SeasonID string
	Decision tournament.Decision
	// Created is nil when nothing was scheduled.
	Created *match.Match
}

type BowlOutInput struct {
	MatchID    string
	TeamAScore int
	TeamBScore int
}

// ProgressionService moves a season from league to knockouts and tie-breaks.
type ProgressionService struct {
	reader   seasonReader
	idGen    idgen.Generator
	sessions sessionEvictor
	cache    seasonCacheInvalidator
	events   EventPublisher
	logger   *logging.Logger
	now      func() time.Time
	flight   resilience.Flight[ProgressionResult]
}

func NewProgressionService(
	seasonRepo season.Repository,
	teamRepo team.Repository,
	matchRepo match.Repository,
	inningsRepo innings.Repository,
	idGen idgen.Generator,
	sessions sessionEvictor,
	cache seasonCacheInvalidator,
	events EventPublisher,
	logger *logging.Logger,
) *ProgressionService {
	if events == nil {
		events = nopPublisher{}
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &ProgressionService{
		reader:   seasonReader{seasons: seasonRepo, teams: teamRepo, matches: matchRepo, innings: inningsRepo},
		idGen:    idGen,
		sessions: sessions,
		cache:    cache,
		events:   events,
		logger:   logger,
		now:      time.Now,
	}
}

// Check schedules the next knockout fixture of a season when one is due. Concurrent
// checks of one season share a single run.
func (s *ProgressionService) Check(ctx context.Context, seasonID string) (ProgressionResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProgressionService.Check", seasonAttr(seasonID))
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return ProgressionResult{}, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}

	result, err, _ := s.flight.Do(seasonID, func() (ProgressionResult, error) {
		return s.check(ctx, seasonID)
	})
	return result, err
}

func (s *ProgressionService) check(ctx context.Context, seasonID string) (ProgressionResult, error) {
	snap, err := s.reader.snapshot(ctx, seasonID)
	if err != nil {
		return ProgressionResult{}, err
	}

	decision := tournament.Decide(snap)
	result := ProgressionResult{SeasonID: seasonID, Decision: decision}
	if !decision.HasAction() {
		s.logger.DebugContext(ctx, "progression idle", "season_id", seasonID, "reason", decision.Reason)
		return result, nil
	}

	// Another process may have scheduled the round since the snapshot was taken.
	exists, err := s.reader.matches.ExistsByRound(ctx, seasonID, decision.Round)
	if err != nil {
		return ProgressionResult{}, classifyStoreError(fmt.Errorf("check round %d: %w", decision.Round, err))
	}
	if exists {
		result.Decision = tournament.Decision{Action: tournament.ActionNone, Reason: "round already scheduled"}
		return result, nil
	}

	matchID, err := s.idGen.NewID()
	if err != nil {
		return ProgressionResult{}, fmt.Errorf("generate match id: %w", err)
	}
	created := decision.Match(matchID, seasonID, s.now().UTC())
	if err := s.reader.matches.Insert(ctx, created); err != nil {
		return ProgressionResult{}, classifyStoreError(fmt.Errorf("insert %s: %w", decision.Action, err))
	}

	s.logger.InfoContext(ctx, "knockout fixture scheduled",
		"season_id", seasonID,
		"match_id", created.ID,
		"round", created.Round,
		"team_a_id", created.TeamAID,
		"team_b_id", created.TeamBID,
		"reason", decision.Reason,
	)
	result.Created = &created
	return result, nil
}

// CreateSuperOver schedules a one-over replay of a tied knockout. The side that chased
// bats first.
func (s *ProgressionService) CreateSuperOver(ctx context.Context, matchID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProgressionService.CreateSuperOver", matchAttr(matchID))
	defer span.End()

	tied, phase, err := s.tiedMatch(ctx, matchID)
	if err != nil {
		return match.Match{}, err
	}
	if !phase.AllowsSuperOver() {
		return match.Match{}, fmt.Errorf("%w: a %s tie does not go to a super over", ErrConflict, phase.Label())
	}

	teamA, teamB := tied.TeamAID, tied.TeamBID
	rows, err := s.reader.innings.ListByMatch(ctx, tied.ID)
	if err != nil {
		return match.Match{}, classifyStoreError(fmt.Errorf("list innings: %w", err))
	}
	if _, second := innings.Pair(rows); second != nil {
		teamA, teamB = second.BattingTeamID, tied.Opponent(second.BattingTeamID)
	}

	return s.createTieBreak(ctx, tied, teamA, teamB, match.NextSuperOverRound, match.NoteSuperOver)
}

// CreateBowlOutDecider schedules a bowl-out decider for a tied bowl out or super over.
func (s *ProgressionService) CreateBowlOutDecider(ctx context.Context, matchID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProgressionService.CreateBowlOutDecider", matchAttr(matchID))
	defer span.End()

	tied, phase, err := s.tiedMatch(ctx, matchID)
	if err != nil {
		return match.Match{}, err
	}
	if !phase.AllowsBowlOut() {
		return match.Match{}, fmt.Errorf("%w: a %s tie does not go to a bowl out", ErrConflict, phase.Label())
	}

	return s.createTieBreak(ctx, tied, tied.TeamAID, tied.TeamBID, match.NextBowlOutDeciderRound, match.NoteBowlOutDecider)
}

func (s *ProgressionService) createTieBreak(ctx context.Context, tied match.Match, teamA, teamB string, nextRound func([]int) int, note string) (match.Match, error) {
	siblings, err := s.reader.matches.ListBySeason(ctx, tied.SeasonID)
	if err != nil {
		return match.Match{}, classifyStoreError(fmt.Errorf("list matches: %w", err))
	}
	rounds := make([]int, 0, len(siblings))
	for _, m := range siblings {
		rounds = append(rounds, m.Round)
	}

	matchID, err := s.idGen.NewID()
	if err != nil {
		return match.Match{}, fmt.Errorf("generate match id: %w", err)
	}
	created := match.Match{
		ID:         matchID,
		SeasonID:   tied.SeasonID,
		Round:      nextRound(rounds),
		TeamAID:    teamA,
		TeamBID:    teamB,
		ResultNote: note,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.reader.matches.Insert(ctx, created); err != nil {
		return match.Match{}, classifyStoreError(fmt.Errorf("insert tie-break: %w", err))
	}

	s.logger.InfoContext(ctx, "tie-break scheduled",
		"season_id", created.SeasonID,
		"tied_match_id", tied.ID,
		"match_id", created.ID,
		"round", created.Round,
	)
	return created, nil
}

// RecordBowlOut settles a tied bowl out, super over or decider by bowl-out hits. Level
// hits keep the match tied with a "Bowl Out Tied" note so a decider can follow.
func (s *ProgressionService) RecordBowlOut(ctx context.Context, input BowlOutInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProgressionService.RecordBowlOut", matchAttr(input.MatchID))
	defer span.End()

	if input.TeamAScore < 0 || input.TeamBScore < 0 {
		return match.Match{}, fmt.Errorf("%w: bowl out scores cannot be negative", ErrInvalidInput)
	}
	tied, phase, err := s.tiedMatch(ctx, input.MatchID)
	if err != nil {
		return match.Match{}, err
	}
	if !phase.AllowsBowlOut() {
		return match.Match{}, fmt.Errorf("%w: a %s tie is not settled by bowl out", ErrConflict, phase.Label())
	}

	outcome := bowlOutOutcome(tied, input)
	winner := outcome.WinnerTeamID
	if err := s.reader.matches.UpdateOutcome(ctx, tied.ID, outcome); err != nil {
		return match.Match{}, classifyStoreError(fmt.Errorf("update match: %w", err))
	}

	settled := tied
	settled.WinnerTeamID = outcome.WinnerTeamID
	settled.ResultNote = outcome.ResultNote

	if s.sessions != nil {
		s.sessions.Forget(settled.ID)
	}
	if s.cache != nil {
		s.cache.InvalidateSeason(ctx, settled.SeasonID)
	}
	if err := s.events.PublishMatchCompleted(ctx, newMatchEvent(settled, s.now())); err != nil {
		s.logger.WarnContext(ctx, "publish match completed failed", "match_id", settled.ID, "error", err)
	}

	s.logger.InfoContext(ctx, "bowl out recorded",
		"match_id", settled.ID,
		"winner_team_id", winner,
		"team_a_score", input.TeamAScore,
		"team_b_score", input.TeamBScore,
	)
	return settled, nil
}

func bowlOutOutcome(tied match.Match, input BowlOutInput) match.Outcome {
	switch {
	case input.TeamAScore > input.TeamBScore:
		return match.Outcome{WinnerTeamID: tied.TeamAID, IsCompleted: true, ResultNote: match.NoteWonByBowlOut}
	case input.TeamBScore > input.TeamAScore:
		return match.Outcome{WinnerTeamID: tied.TeamBID, IsCompleted: true, ResultNote: match.NoteWonByBowlOut}
	default:
		return match.Outcome{IsCompleted: true, ResultNote: match.NoteBowlOutTied}
	}
}

func (s *ProgressionService) tiedMatch(ctx context.Context, matchID string) (match.Match, match.Phase, error) {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Match{}, match.Phase{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	m, exists, err := s.reader.matches.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, match.Phase{}, classifyStoreError(fmt.Errorf("get match: %w", err))
	}
	if !exists {
		return match.Match{}, match.Phase{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	if !m.IsTied() {
		return match.Match{}, match.Phase{}, fmt.Errorf("%w: match %s is not a completed tie", ErrConflict, m.ID)
	}

	phase, err := m.Phase()
	if err != nil {
		return match.Match{}, match.Phase{}, fmt.Errorf("%w: %v", ErrConflict, err)
	}
	return m, phase, nil
}
