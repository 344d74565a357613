package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/sourcegraph/conc/pool"

	"github.com/Tejas544/gully-scorer/internal/domain/innings"
	"github.com/Tejas544/gully-scorer/internal/domain/match"
	"github.com/Tejas544/gully-scorer/internal/domain/season"
	"github.com/Tejas544/gully-scorer/internal/domain/standing"
	"github.com/Tejas544/gully-scorer/internal/domain/team"
	"github.com/Tejas544/gully-scorer/internal/domain/tournament"
	"github.com/Tejas544/gully-scorer/internal/platform/cache"
	"github.com/Tejas544/gully-scorer/internal/platform/logging"
)

const standingsCachePrefix = "standings:"

// seasonReader loads a whole season in one go for standings and progression.
type seasonReader struct {
	seasons season.Repository
	teams   team.Repository
	matches match.Repository
	innings innings.Repository
}

func (r seasonReader) snapshot(ctx context.Context, seasonID string) (tournament.Snapshot, error) {
	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return tournament.Snapshot{}, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}

	var (
		exists  bool
		teams   []team.Team
		matches []match.Match
	)
	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		var err error
		_, exists, err = r.seasons.GetByID(ctx, seasonID)
		if err != nil {
			return fmt.Errorf("get season: %w", err)
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		var err error
		teams, err = r.teams.ListBySeason(ctx, seasonID)
		if err != nil {
			return fmt.Errorf("list teams: %w", err)
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		var err error
		matches, err = r.matches.ListBySeason(ctx, seasonID)
		if err != nil {
			return fmt.Errorf("list matches: %w", err)
		}
		return nil
	})
	if err := p.Wait(); err != nil {
		return tournament.Snapshot{}, classifyStoreError(err)
	}
	if !exists {
		return tournament.Snapshot{}, fmt.Errorf("%w: season=%s", ErrNotFound, seasonID)
	}

	sortMatches(matches)
	matchIDs := make([]string, 0, len(matches))
	for _, m := range matches {
		matchIDs = append(matchIDs, m.ID)
	}
	rows, err := r.innings.ListByMatchIDs(ctx, matchIDs)
	if err != nil {
		return tournament.Snapshot{}, classifyStoreError(fmt.Errorf("list innings: %w", err))
	}

	byMatch := make(map[string][]innings.Innings, len(matches))
	for _, row := range rows {
		byMatch[row.MatchID] = append(byMatch[row.MatchID], row)
	}
	entries := make([]standing.MatchWithInnings, 0, len(matches))
	for _, m := range matches {
		entries = append(entries, standing.MatchWithInnings{Match: m, Innings: byMatch[m.ID]})
	}

	return tournament.Snapshot{SeasonID: seasonID, Matches: entries, Teams: teams}, nil
}

// StandingsService serves the points table and stat leaderboards of a season.
type StandingsService struct {
	reader seasonReader
	cache  *cache.Store[standing.Table]
	logger *logging.Logger
}

// NewStandingsService builds the service. A nil store disables caching.
func NewStandingsService(
	seasonRepo season.Repository,
	teamRepo team.Repository,
	matchRepo match.Repository,
	inningsRepo innings.Repository,
	store *cache.Store[standing.Table],
	logger *logging.Logger,
) *StandingsService {
	if logger == nil {
		logger = logging.Default()
	}
	return &StandingsService{
		reader: seasonReader{seasons: seasonRepo, teams: teamRepo, matches: matchRepo, innings: inningsRepo},
		cache:  store,
		logger: logger,
	}
}

func (s *StandingsService) Get(ctx context.Context, seasonID string) (standing.Table, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.Get", seasonAttr(seasonID))
	defer span.End()

	load := func(ctx context.Context) (standing.Table, error) {
		snap, err := s.reader.snapshot(ctx, seasonID)
		if err != nil {
			return standing.Table{}, err
		}
		return standing.Aggregate(snap.Matches, snap.Teams), nil
	}
	if s.cache == nil {
		return load(ctx)
	}
	return s.cache.GetOrLoad(ctx, standingsCachePrefix+strings.TrimSpace(seasonID), load)
}

// InvalidateSeason drops the cached table of a season.
func (s *StandingsService) InvalidateSeason(ctx context.Context, seasonID string) {
	if s.cache == nil {
		return
	}
	s.cache.Delete(ctx, standingsCachePrefix+seasonID)
	s.logger.DebugContext(ctx, "standings cache invalidated", "season_id", seasonID)
}
