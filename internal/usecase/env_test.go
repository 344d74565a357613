package usecase

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Tejas544/gully-scorer/internal/domain/ball"
	"github.com/Tejas544/gully-scorer/internal/domain/innings"
	"github.com/Tejas544/gully-scorer/internal/domain/match"
	"github.com/Tejas544/gully-scorer/internal/domain/standing"
	"github.com/Tejas544/gully-scorer/internal/infrastructure/repository/memory"
	"github.com/Tejas544/gully-scorer/internal/platform/cache"
	idgen "github.com/Tejas544/gully-scorer/internal/platform/id"
	"github.com/Tejas544/gully-scorer/internal/platform/logging"
)

var errStoreDown = errors.New("store: connection reset by peer")

type recordingPublisher struct {
	mu        sync.Mutex
	completed []MatchEvent
	reopened  []MatchEvent
}

func (p *recordingPublisher) PublishMatchCompleted(_ context.Context, event MatchEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.completed = append(p.completed, event)
	return nil
}

func (p *recordingPublisher) PublishMatchReopened(_ context.Context, event MatchEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reopened = append(p.reopened, event)
	return nil
}

func (p *recordingPublisher) counts() (int, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.completed), len(p.reopened)
}

type countingMetrics struct {
	mu        sync.Mutex
	balls     map[string]int
	completed int
	failures  map[string]int
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{balls: map[string]int{}, failures: map[string]int{}}
}

func (m *countingMetrics) BallRecorded(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balls[kind]++
}

func (m *countingMetrics) MatchCompleted(string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.completed++
}

func (m *countingMetrics) PersistenceFailed(operation string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[operation]++
}

// flakyBalls fails inserts while failInsert is set.
type flakyBalls struct {
	ball.Repository
	failInsert atomic.Bool
}

func (r *flakyBalls) Insert(ctx context.Context, item ball.Ball) error {
	if r.failInsert.Load() {
		return errStoreDown
	}
	return r.Repository.Insert(ctx, item)
}

// flakyInnings fails updates while failUpdate is set.
type flakyInnings struct {
	innings.Repository
	failUpdate atomic.Bool
}

func (r *flakyInnings) Update(ctx context.Context, item innings.Innings) error {
	if r.failUpdate.Load() {
		return errStoreDown
	}
	return r.Repository.Update(ctx, item)
}

type testEnv struct {
	store   *memory.Store
	balls   *flakyBalls
	innings *flakyInnings
	events  *recordingPublisher
	metrics *countingMetrics

	seasons     *SeasonService
	scoring     *ScoringService
	standings   *StandingsService
	progression *ProgressionService
	careers     *CareerService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := memory.NewStore()
	env := &testEnv{
		store:   store,
		balls:   &flakyBalls{Repository: memory.NewBallRepository(store)},
		innings: &flakyInnings{Repository: memory.NewInningsRepository(store)},
		events:  &recordingPublisher{},
		metrics: newCountingMetrics(),
	}

	seasonRepo := memory.NewSeasonRepository(store)
	teamRepo := memory.NewTeamRepository(store)
	playerRepo := memory.NewPlayerRepository(store)
	matchRepo := memory.NewMatchRepository(store)
	statsRepo := memory.NewPlayerStatsRepository(store)
	ids := idgen.NewSequence("id")
	logger := logging.NewNop()

	env.scoring = NewScoringService(ScoringRepositories{
		Matches: matchRepo,
		Innings: env.innings,
		Balls:   env.balls,
		Players: playerRepo,
		Stats:   statsRepo,
	}, ids, env.events, nil, env.metrics, logger)
	env.standings = NewStandingsService(seasonRepo, teamRepo, matchRepo, env.innings, cache.NewStore[standing.Table](time.Minute), logger)
	env.seasons = NewSeasonService(seasonRepo, teamRepo, playerRepo, matchRepo, ids, env.scoring, env.standings, logger)
	env.progression = NewProgressionService(seasonRepo, teamRepo, matchRepo, env.innings, ids, env.scoring, env.standings, env.events, logger)
	env.careers = NewCareerService(playerRepo, statsRepo, matchRepo, teamRepo, logger)
	return env
}

func (e *testEnv) createSeason(t *testing.T, name string, teams ...string) SeasonDetail {
	t.Helper()

	detail, err := e.seasons.Create(context.Background(), CreateSeasonInput{Name: name, TeamNames: teams})
	if err != nil {
		t.Fatalf("create season %q: %v", name, err)
	}
	return detail
}

func (e *testEnv) toss(t *testing.T, m match.Match) TossResult {
	t.Helper()

	result, err := e.scoring.Toss(context.Background(), TossInput{MatchID: m.ID, WinnerTeamID: m.TeamAID, Decision: TossBat})
	if err != nil {
		t.Fatalf("toss %s: %v", m.ID, err)
	}
	return result
}

func (e *testEnv) record(t *testing.T, matchID string, inputs ...ball.Input) SessionSnapshot {
	t.Helper()

	var snap SessionSnapshot
	for i, in := range inputs {
		var err error
		snap, _, err = e.scoring.RecordBall(context.Background(), matchID, in)
		if err != nil {
			t.Fatalf("record ball %d of %s: %v", i, matchID, err)
		}
	}
	return snap
}

func (e *testEnv) secondInnings(t *testing.T, matchID string) SessionSnapshot {
	t.Helper()

	snap, err := e.scoring.StartSecondInnings(context.Background(), matchID)
	if err != nil {
		t.Fatalf("start second innings of %s: %v", matchID, err)
	}
	return snap
}

var (
	single = ball.Input{Kind: ball.KindRuns, Runs: 1}
	dot    = ball.Input{Kind: ball.KindRuns}
	out    = ball.Input{Kind: ball.KindWicket, Dismissal: ball.DismissalBowled}
)

// play runs a match where team A bats first and scores firstRuns before getting out, then
// team B scores secondRuns before getting out or reaching the target.
func (e *testEnv) play(t *testing.T, m match.Match, firstRuns, secondRuns int) SessionSnapshot {
	t.Helper()

	e.toss(t, m)
	for i := 0; i < firstRuns; i++ {
		e.record(t, m.ID, single)
	}
	e.record(t, m.ID, out)
	e.secondInnings(t, m.ID)

	var snap SessionSnapshot
	for i := 0; i < secondRuns; i++ {
		snap = e.record(t, m.ID, single)
	}
	if secondRuns <= firstRuns {
		snap = e.record(t, m.ID, out)
	}
	return snap
}

func (e *testEnv) getMatch(t *testing.T, matchID string) match.Match {
	t.Helper()

	m, ok, err := memory.NewMatchRepository(e.store).GetByID(context.Background(), matchID)
	if err != nil || !ok {
		t.Fatalf("get match %s: ok=%v err=%v", matchID, ok, err)
	}
	return m
}
