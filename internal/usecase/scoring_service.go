package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/Tejas544/gully-scorer/internal/domain/ball"
	"github.com/Tejas544/gully-scorer/internal/domain/innings"
	"github.com/Tejas544/gully-scorer/internal/domain/match"
	"github.com/Tejas544/gully-scorer/internal/domain/player"
	"github.com/Tejas544/gully-scorer/internal/domain/playerstats"
	"github.com/Tejas544/gully-scorer/internal/domain/scoring"
	idgen "github.com/Tejas544/gully-scorer/internal/platform/id"
	"github.com/Tejas544/gully-scorer/internal/platform/logging"
	"github.com/Tejas544/gully-scorer/internal/platform/resilience"
)

type TossDecision string

const (
	TossBat  TossDecision = "bat"
	TossBowl TossDecision = "bowl"
)

type TossInput struct {
	MatchID string
	// WinnerTeamID is optional; an empty value flips a virtual coin.
	WinnerTeamID string
	Decision     TossDecision
}

type TossResult struct {
	WinnerTeamID  string
	Decision      TossDecision
	BattingTeamID string
	Session       SessionSnapshot
}

// ScoringRepositories are the stores a scoring session reads and writes.
type ScoringRepositories struct {
	Matches match.Repository
	Innings innings.Repository
	Balls   ball.Repository
	Players player.Repository
	Stats   playerstats.Repository
}

// ScoringService keeps one MatchSession per match for the lifetime of the process.
type ScoringService struct {
	matches match.Repository
	innings innings.Repository
	balls   ball.Repository
	players player.Repository
	stats   playerstats.Repository

	idGen   idgen.Generator
	events  EventPublisher
	breaker *resilience.Breaker
	metrics ScoringMetrics
	logger  *logging.Logger
	now     func() time.Time
	flip    func() bool

	mu       sync.Mutex
	sessions map[string]*MatchSession
}

func NewScoringService(
	repos ScoringRepositories,
	idGen idgen.Generator,
	events EventPublisher,
	breaker *resilience.Breaker,
	metrics ScoringMetrics,
	logger *logging.Logger,
) *ScoringService {
	if events == nil {
		events = nopPublisher{}
	}
	if breaker == nil {
		breaker = resilience.NewBreaker("store", resilience.BreakerConfig{Enabled: false})
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &ScoringService{
		matches:  repos.Matches,
		innings:  repos.Innings,
		balls:    repos.Balls,
		players:  repos.Players,
		stats:    repos.Stats,
		idGen:    idGen,
		events:   events,
		breaker:  breaker,
		metrics:  metrics,
		logger:   logger,
		now:      time.Now,
		flip:     func() bool { return rand.IntN(2) == 0 },
		sessions: make(map[string]*MatchSession),
	}
}

// Session returns the live session of a match, loading it on first use.
func (s *ScoringService) Session(ctx context.Context, matchID string) (*MatchSession, error) {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return nil, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	s.mu.Lock()
	session, ok := s.sessions[matchID]
	if !ok {
		session = &MatchSession{matchID: matchID, deps: s}
		s.sessions[matchID] = session
	}
	s.mu.Unlock()

	session.mu.Lock()
	err := session.ensureLoadedLocked(ctx)
	session.mu.Unlock()
	if err != nil {
		s.mu.Lock()
		if s.sessions[matchID] == session {
			delete(s.sessions, matchID)
		}
		s.mu.Unlock()
		return nil, err
	}
	return session, nil
}

// Forget drops sessions so the next access reloads them from the store.
func (s *ScoringService) Forget(matchIDs ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range matchIDs {
		delete(s.sessions, id)
	}
}

// MatchView is a match with its live scoreboard. State is nil before the toss.
type MatchView struct {
	Match     match.Match
	State     *scoring.State
	SyncError string
}

func (s *ScoringService) Get(ctx context.Context, matchID string) (MatchView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.Get", matchAttr(matchID))
	defer span.End()

	session, err := s.Session(ctx, matchID)
	switch {
	case err == nil:
		snap := session.Snapshot()
		return MatchView{Match: snap.Match, State: &snap.State, SyncError: snap.SyncError}, nil
	case errors.Is(err, ErrConflict):
		m, err := s.getMatch(ctx, matchID)
		if err != nil {
			return MatchView{}, err
		}
		return MatchView{Match: m}, nil
	default:
		return MatchView{}, err
	}
}

// Toss decides who bats first and opens the first innings.
func (s *ScoringService) Toss(ctx context.Context, input TossInput) (TossResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.Toss", matchAttr(input.MatchID))
	defer span.End()

	input.MatchID = strings.TrimSpace(input.MatchID)
	input.WinnerTeamID = strings.TrimSpace(input.WinnerTeamID)
	if input.MatchID == "" {
		return TossResult{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	if input.Decision != TossBat && input.Decision != TossBowl {
		return TossResult{}, fmt.Errorf("%w: toss decision must be bat or bowl", ErrInvalidInput)
	}

	m, err := s.getMatch(ctx, input.MatchID)
	if err != nil {
		return TossResult{}, err
	}
	if m.IsCompleted {
		return TossResult{}, fmt.Errorf("%w: match %s is already completed", ErrConflict, m.ID)
	}

	winner := input.WinnerTeamID
	switch {
	case winner == "":
		winner = m.TeamAID
		if !s.flip() {
			winner = m.TeamBID
		}
	case !m.HasTeam(winner):
		return TossResult{}, fmt.Errorf("%w: team %s is not playing match %s", ErrInvalidInput, winner, m.ID)
	}

	batting := winner
	if input.Decision == TossBowl {
		batting = m.Opponent(winner)
	}

	inningsID, err := s.idGen.NewID()
	if err != nil {
		return TossResult{}, fmt.Errorf("generate innings id: %w", err)
	}
	first := innings.Innings{ID: inningsID, MatchID: m.ID, Number: 1, BattingTeamID: batting}

	err = s.breaker.Do(ctx, func(ctx context.Context) error {
		existing, err := s.innings.ListByMatch(ctx, m.ID)
		if err != nil {
			return fmt.Errorf("list innings: %w", err)
		}
		if len(existing) > 0 {
			return nil
		}
		return s.innings.Insert(ctx, first)
	})
	if err != nil {
		return TossResult{}, classifyStoreError(err)
	}

	s.Forget(m.ID)
	session, err := s.Session(ctx, m.ID)
	if err != nil {
		return TossResult{}, err
	}
	snap := session.Snapshot()
	if snap.State.InningsID != first.ID {
		return TossResult{}, fmt.Errorf("%w: toss already taken for match %s", ErrConflict, m.ID)
	}

	s.logger.InfoContext(ctx, "toss taken", "match_id", m.ID, "winner_team_id", winner, "decision", input.Decision, "batting_team_id", batting)
	return TossResult{WinnerTeamID: winner, Decision: input.Decision, BattingTeamID: batting, Session: snap}, nil
}

func (s *ScoringService) RecordBall(ctx context.Context, matchID string, input ball.Input) (SessionSnapshot, scoring.Transition, error) {
	session, err := s.Session(ctx, matchID)
	if err != nil {
		return SessionSnapshot{}, scoring.Transition{}, err
	}
	return session.RecordBall(ctx, input)
}

func (s *ScoringService) Undo(ctx context.Context, matchID string) (SessionSnapshot, error) {
	session, err := s.Session(ctx, matchID)
	if err != nil {
		return SessionSnapshot{}, err
	}
	return session.Undo(ctx)
}

func (s *ScoringService) StartSecondInnings(ctx context.Context, matchID string) (SessionSnapshot, error) {
	session, err := s.Session(ctx, matchID)
	if err != nil {
		return SessionSnapshot{}, err
	}
	return session.StartSecondInnings(ctx)
}

func (s *ScoringService) Reload(ctx context.Context, matchID string) (SessionSnapshot, error) {
	session, err := s.Session(ctx, matchID)
	if err != nil {
		return SessionSnapshot{}, err
	}
	return session.Reload(ctx)
}

func (s *ScoringService) getMatch(ctx context.Context, matchID string) (match.Match, error) {
	var (
		m      match.Match
		exists bool
	)
	err := s.breaker.Do(ctx, func(ctx context.Context) error {
		var err error
		m, exists, err = s.matches.GetByID(ctx, matchID)
		return err
	})
	if err != nil {
		return match.Match{}, classifyStoreError(fmt.Errorf("get match: %w", err))
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	return m, nil
}
