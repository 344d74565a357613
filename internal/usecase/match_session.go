package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Tejas544/gully-scorer/internal/domain/ball"
	"github.com/Tejas544/gully-scorer/internal/domain/innings"
	"github.com/Tejas544/gully-scorer/internal/domain/match"
	"github.com/Tejas544/gully-scorer/internal/domain/playerstats"
	"github.com/Tejas544/gully-scorer/internal/domain/scoring"
	"go.opentelemetry.io/otel/attribute"
)

// SyncFailureMessage is shown to the scorer when a delivery could not be saved.
const SyncFailureMessage = "Failed to save ball. Please check internet."

// MatchSession owns the live scoreboard of one match. Calls are serialized; the in-memory
// state only advances after the store accepted the change.
type MatchSession struct {
	mu      sync.Mutex
	matchID string
	deps    *ScoringService

	loaded  bool
	match   match.Match
	state   scoring.State
	syncErr string
}

// SessionSnapshot is a read-only copy of a session.
type SessionSnapshot struct {
	Match     match.Match
	State     scoring.State
	SyncError string
}

func (s *MatchSession) Snapshot() SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *MatchSession) snapshotLocked() SessionSnapshot {
	return SessionSnapshot{Match: s.match, State: s.state.Clone(), SyncError: s.syncErr}
}

// Err is the last persistence failure shown to the scorer, empty after a successful save.
func (s *MatchSession) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.syncErr
}

// Reload discards in-memory state and rebuilds it from the store.
func (s *MatchSession) Reload(ctx context.Context) (SessionSnapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchSession.Reload", matchAttr(s.matchID))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.reloadLocked(ctx); err != nil {
		return SessionSnapshot{}, err
	}
	return s.snapshotLocked(), nil
}

func (s *MatchSession) reloadLocked(ctx context.Context) error {
	var (
		m      match.Match
		exists bool
		rows   []innings.Innings
	)
	err := s.deps.breaker.Do(ctx, func(ctx context.Context) error {
		var err error
		m, exists, err = s.deps.matches.GetByID(ctx, s.matchID)
		if err != nil {
			return fmt.Errorf("get match: %w", err)
		}
		if !exists {
			return nil
		}
		rows, err = s.deps.innings.ListByMatch(ctx, s.matchID)
		if err != nil {
			return fmt.Errorf("list innings: %w", err)
		}
		return nil
	})
	if err != nil {
		return classifyStoreError(err)
	}
	if !exists {
		return fmt.Errorf("%w: match=%s", ErrNotFound, s.matchID)
	}

	var current innings.Innings
	first, second := innings.Pair(rows)
	switch {
	case second != nil:
		current = *second
	case first != nil:
		current, first = *first, nil
	default:
		return fmt.Errorf("%w: toss has not been taken for match %s", ErrConflict, s.matchID)
	}

	var history []ball.Ball
	err = s.deps.breaker.Do(ctx, func(ctx context.Context) error {
		var err error
		history, err = s.deps.balls.ListByInnings(ctx, current.ID)
		return err
	})
	if err != nil {
		return classifyStoreError(fmt.Errorf("list balls: %w", err))
	}

	state, err := scoring.Initialize(m, current, history, first)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}

	s.match = m
	s.state = state
	s.syncErr = ""
	s.loaded = true
	return nil
}

func (s *MatchSession) ensureLoadedLocked(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	return s.reloadLocked(ctx)
}

// RecordBall scores one delivery. On a store failure the inserted ball is removed, the
// previous state is kept and an ErrDependencyUnavailable error is returned.
func (s *MatchSession) RecordBall(ctx context.Context, input ball.Input) (SessionSnapshot, scoring.Transition, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchSession.RecordBall",
		matchAttr(s.matchID),
		attribute.String("ball.kind", string(input.Kind)),
	)
	defer span.End()

	if err := input.Validate(); err != nil {
		return SessionSnapshot{}, scoring.Transition{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return SessionSnapshot{}, scoring.Transition{}, err
	}

	ballID, err := s.deps.idGen.NewID()
	if err != nil {
		return SessionSnapshot{}, scoring.Transition{}, fmt.Errorf("generate ball id: %w", err)
	}

	committed := s.state
	next, tr, ok := committed.Record(input, ballID)
	if !ok {
		return SessionSnapshot{}, scoring.Transition{}, fmt.Errorf("%w: innings %s is over", ErrConflict, committed.InningsID)
	}

	outcome := match.Outcome{}
	if tr.MatchFinished {
		outcome = match.Outcome{WinnerTeamID: tr.Result.WinnerTeamID, IsCompleted: true, ResultNote: tr.Result.Message}
	}

	if err := s.persistBall(ctx, committed, next, tr, outcome); err != nil {
		s.syncErr = SyncFailureMessage
		s.deps.metrics.PersistenceFailed("record_ball")
		span.RecordError(err)
		s.deps.logger.WarnContext(ctx, "persist ball failed",
			"match_id", s.matchID,
			"innings_id", committed.InningsID,
			"ball_index", tr.Ball.Index,
			"error", err,
		)
		return SessionSnapshot{}, scoring.Transition{}, fmt.Errorf("%w: %s: %v", ErrDependencyUnavailable, SyncFailureMessage, err)
	}

	s.state = next
	s.syncErr = ""
	s.deps.metrics.BallRecorded(string(input.Kind))

	if tr.MatchFinished {
		s.match.WinnerTeamID = outcome.WinnerTeamID
		s.match.IsCompleted = true
		s.match.ResultNote = outcome.ResultNote
		s.finishMatch(ctx, next)
	}

	return s.snapshotLocked(), tr, nil
}

func (s *MatchSession) persistBall(ctx context.Context, committed, next scoring.State, tr scoring.Transition, outcome match.Outcome) error {
	inserted, updatedInnings := false, false
	err := s.deps.breaker.Do(ctx, func(ctx context.Context) error {
		if err := s.deps.balls.Insert(ctx, tr.Ball); err != nil {
			return fmt.Errorf("insert ball: %w", err)
		}
		inserted = true

		if err := s.deps.innings.Update(ctx, next.Innings()); err != nil {
			return fmt.Errorf("update innings: %w", err)
		}
		updatedInnings = true

		if tr.MatchFinished {
			if err := s.deps.matches.UpdateOutcome(ctx, s.matchID, outcome); err != nil {
				return fmt.Errorf("update match: %w", err)
			}
		}
		return nil
	})
	if err == nil {
		return nil
	}

	// Best effort: put the store back where the committed state says it is.
	cleanup := context.WithoutCancel(ctx)
	if updatedInnings {
		if rbErr := s.deps.innings.Update(cleanup, committed.Innings()); rbErr != nil {
			s.deps.logger.WarnContext(ctx, "restore innings failed", "innings_id", committed.InningsID, "error", rbErr)
		}
	}
	if inserted {
		if rbErr := s.deps.balls.Delete(cleanup, tr.Ball.ID); rbErr != nil {
			s.deps.logger.WarnContext(ctx, "remove orphan ball failed", "ball_id", tr.Ball.ID, "error", rbErr)
		}
	}
	return err
}

// finishMatch writes career stats and announces the result. Failures are logged only.
func (s *MatchSession) finishMatch(ctx context.Context, final scoring.State) {
	if err := s.writeCareerStats(ctx, final); err != nil {
		s.deps.metrics.PersistenceFailed("career_stats")
		s.deps.logger.WarnContext(ctx, "write career stats failed", "match_id", s.matchID, "error", err)
	}

	s.deps.metrics.MatchCompleted(string(final.Phase.Kind), final.Result.IsTie())
	event := newMatchEvent(s.match, s.deps.now())
	if err := s.deps.events.PublishMatchCompleted(ctx, event); err != nil {
		s.deps.logger.WarnContext(ctx, "publish match completed failed", "match_id", s.matchID, "error", err)
	}
}

func (s *MatchSession) writeCareerStats(ctx context.Context, final scoring.State) error {
	rows, err := s.deps.innings.ListByMatch(ctx, s.matchID)
	if err != nil {
		return fmt.Errorf("list innings: %w", err)
	}
	first, _ := innings.Pair(rows)
	if first == nil || final.InningsNumber != 2 {
		return fmt.Errorf("match %s finished without two innings", s.matchID)
	}

	links, err := s.deps.players.ListTeamLinks(ctx, []string{s.match.TeamAID, s.match.TeamBID})
	if err != nil {
		return fmt.Errorf("list team players: %w", err)
	}

	lines, err := playerstats.BuildMatchStats(s.match, *first, final.Innings(), links)
	if err != nil {
		return err
	}
	if err := s.deps.stats.Insert(ctx, lines...); err != nil {
		return fmt.Errorf("insert match stats: %w", err)
	}
	return nil
}

// Undo removes the last delivery of the current innings. When the match had a result it
// is reopened and its career stats are removed. On a store failure the session reloads.
func (s *MatchSession) Undo(ctx context.Context) (SessionSnapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchSession.Undo", matchAttr(s.matchID))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return SessionSnapshot{}, err
	}

	committed := s.state
	next, removed, ok := committed.Undo()
	if !ok {
		return SessionSnapshot{}, fmt.Errorf("%w: no delivery to undo in innings %s", ErrConflict, committed.InningsID)
	}
	hadResult := committed.Result != nil || s.match.IsCompleted
	reopened := match.Outcome{ResultNote: committed.Phase.ScheduledNote()}

	err := s.deps.breaker.Do(ctx, func(ctx context.Context) error {
		if err := s.deps.balls.Delete(ctx, removed.ID); err != nil {
			return fmt.Errorf("delete ball: %w", err)
		}
		if err := s.deps.innings.Update(ctx, next.Innings()); err != nil {
			return fmt.Errorf("update innings: %w", err)
		}
		if hadResult {
			if err := s.deps.matches.UpdateOutcome(ctx, s.matchID, reopened); err != nil {
				return fmt.Errorf("reset match: %w", err)
			}
			if err := s.deps.stats.DeleteByMatch(ctx, s.matchID); err != nil {
				return fmt.Errorf("delete match stats: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		s.deps.metrics.PersistenceFailed("undo")
		span.RecordError(err)
		s.deps.logger.WarnContext(ctx, "undo failed, reloading match", "match_id", s.matchID, "error", err)
		s.loaded = false
		if reloadErr := s.reloadLocked(context.WithoutCancel(ctx)); reloadErr != nil {
			s.deps.logger.ErrorContext(ctx, "reload after failed undo", "match_id", s.matchID, "error", reloadErr)
		}
		return SessionSnapshot{}, fmt.Errorf("%w: undo: %v", ErrDependencyUnavailable, err)
	}

	s.state = next
	s.syncErr = ""
	if hadResult {
		previous := s.match
		s.match.WinnerTeamID = ""
		s.match.IsCompleted = false
		s.match.ResultNote = reopened.ResultNote

		event := newMatchEvent(previous, s.deps.now())
		if err := s.deps.events.PublishMatchReopened(ctx, event); err != nil {
			s.deps.logger.WarnContext(ctx, "publish match reopened failed", "match_id", s.matchID, "error", err)
		}
	}

	return s.snapshotLocked(), nil
}

// StartSecondInnings opens the chase once the first innings is over.
func (s *MatchSession) StartSecondInnings(ctx context.Context) (SessionSnapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchSession.StartSecondInnings", matchAttr(s.matchID))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return SessionSnapshot{}, err
	}

	inningsID, err := s.deps.idGen.NewID()
	if err != nil {
		return SessionSnapshot{}, fmt.Errorf("generate innings id: %w", err)
	}

	next, err := s.state.SecondInnings(inningsID)
	if err != nil {
		return SessionSnapshot{}, fmt.Errorf("%w: %v", ErrConflict, err)
	}

	err = s.deps.breaker.Do(ctx, func(ctx context.Context) error {
		return s.deps.innings.Insert(ctx, next.Innings())
	})
	if err != nil {
		s.deps.metrics.PersistenceFailed("second_innings")
		return SessionSnapshot{}, classifyStoreError(fmt.Errorf("insert innings: %w", err))
	}

	s.state = next
	s.syncErr = ""
	return s.snapshotLocked(), nil
}

// classifyStoreError keeps usecase sentinels and marks everything else as a dependency failure.
func classifyStoreError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrConflict), errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrDependencyUnavailable):
		return err
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return fmt.Errorf("%w: %v", ErrDependencyUnavailable, err)
	}
}
