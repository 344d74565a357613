package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Tejas544/gully-scorer/internal/domain/fixture"
	"github.com/Tejas544/gully-scorer/internal/domain/match"
	"github.com/Tejas544/gully-scorer/internal/domain/player"
	"github.com/Tejas544/gully-scorer/internal/domain/season"
	"github.com/Tejas544/gully-scorer/internal/domain/team"
	idgen "github.com/Tejas544/gully-scorer/internal/platform/id"
	"github.com/Tejas544/gully-scorer/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

type CreateSeasonInput struct {
	Name      string
	TeamNames []string
}

// SeasonDetail is a season with its entrants and fixtures.
type SeasonDetail struct {
	Season  season.Season
	Teams   []team.Team
	Matches []match.Match
}

type seasonCacheInvalidator interface {
	InvalidateSeason(ctx context.Context, seasonID string)
}

type SeasonService struct {
	seasonRepo season.Repository
	teamRepo   team.Repository
	playerRepo player.Repository
	matchRepo  match.Repository
	idGen      idgen.Generator
	sessions   sessionEvictor
	cache      seasonCacheInvalidator
	logger     *logging.Logger
	now        func() time.Time
}

func NewSeasonService(
	seasonRepo season.Repository,
	teamRepo team.Repository,
	playerRepo player.Repository,
	matchRepo match.Repository,
	idGen idgen.Generator,
	sessions sessionEvictor,
	cache seasonCacheInvalidator,
	logger *logging.Logger,
) *SeasonService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SeasonService{
		seasonRepo: seasonRepo,
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		matchRepo:  matchRepo,
		idGen:      idGen,
		sessions:   sessions,
		cache:      cache,
		logger:     logger,
		now:        time.Now,
	}
}

// Create registers a season, one team and player per name, and the double round robin.
func (s *SeasonService) Create(ctx context.Context, input CreateSeasonInput) (SeasonDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.Create", attribute.Int("season.teams", len(input.TeamNames)))
	defer span.End()

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return SeasonDetail{}, fmt.Errorf("%w: season name is required", ErrInvalidInput)
	}
	names, err := normalizeTeamNames(input.TeamNames)
	if err != nil {
		return SeasonDetail{}, err
	}

	now := s.now().UTC()
	seasonID, err := s.idGen.NewID()
	if err != nil {
		return SeasonDetail{}, fmt.Errorf("generate season id: %w", err)
	}
	item := season.Season{ID: seasonID, Name: name, CreatedAt: now}
	if err := s.seasonRepo.Insert(ctx, item); err != nil {
		return SeasonDetail{}, classifyStoreError(fmt.Errorf("insert season: %w", err))
	}

	detail, err := s.populate(ctx, item, names, now)
	if err != nil {
		if cleanupErr := s.seasonRepo.Delete(context.WithoutCancel(ctx), seasonID); cleanupErr != nil {
			s.logger.WarnContext(ctx, "remove partial season failed", "season_id", seasonID, "error", cleanupErr)
		}
		return SeasonDetail{}, err
	}

	s.logger.InfoContext(ctx, "season created", "season_id", seasonID, "teams", len(detail.Teams), "matches", len(detail.Matches))
	return detail, nil
}

func (s *SeasonService) populate(ctx context.Context, item season.Season, names []string, now time.Time) (SeasonDetail, error) {
	teams := make([]team.Team, 0, len(names))
	for _, name := range names {
		teamID, err := s.idGen.NewID()
		if err != nil {
			return SeasonDetail{}, fmt.Errorf("generate team id: %w", err)
		}
		teams = append(teams, team.Team{ID: teamID, SeasonID: item.ID, Name: name, CreatedAt: now})
	}
	if err := s.teamRepo.Insert(ctx, teams...); err != nil {
		return SeasonDetail{}, classifyStoreError(fmt.Errorf("insert teams: %w", err))
	}

	for _, t := range teams {
		p, err := s.playerByName(ctx, t.Name, now)
		if err != nil {
			return SeasonDetail{}, err
		}
		if err := s.playerRepo.LinkTeam(ctx, player.TeamPlayer{TeamID: t.ID, PlayerID: p.ID}); err != nil {
			return SeasonDetail{}, classifyStoreError(fmt.Errorf("link team player: %w", err))
		}
	}

	teamIDs := make([]string, 0, len(teams))
	for _, t := range teams {
		teamIDs = append(teamIDs, t.ID)
	}
	schedule := fixture.Generate(teamIDs)
	matches := make([]match.Match, 0, len(schedule))
	for _, f := range schedule {
		matchID, err := s.idGen.NewID()
		if err != nil {
			return SeasonDetail{}, fmt.Errorf("generate match id: %w", err)
		}
		matches = append(matches, match.Match{
			ID:        matchID,
			SeasonID:  item.ID,
			Round:     f.Round,
			TeamAID:   f.HomeTeamID,
			TeamBID:   f.AwayTeamID,
			CreatedAt: now,
		})
	}
	if len(matches) > 0 {
		if err := s.matchRepo.Insert(ctx, matches...); err != nil {
			return SeasonDetail{}, classifyStoreError(fmt.Errorf("insert matches: %w", err))
		}
	}

	return SeasonDetail{Season: item, Teams: teams, Matches: matches}, nil
}

// playerByName reuses the player with exactly this name or registers a new one.
func (s *SeasonService) playerByName(ctx context.Context, name string, now time.Time) (player.Player, error) {
	existing, ok, err := s.playerRepo.GetByName(ctx, name)
	if err != nil {
		return player.Player{}, classifyStoreError(fmt.Errorf("get player by name: %w", err))
	}
	if ok {
		return existing, nil
	}

	playerID, err := s.idGen.NewID()
	if err != nil {
		return player.Player{}, fmt.Errorf("generate player id: %w", err)
	}
	created := player.Player{ID: playerID, Name: name, CreatedAt: now}
	if err := s.playerRepo.Insert(ctx, created); err != nil {
		return player.Player{}, classifyStoreError(fmt.Errorf("insert player: %w", err))
	}
	return created, nil
}

func normalizeTeamNames(raw []string) ([]string, error) {
	if len(raw) < season.MinTeams || len(raw) > season.MaxTeams {
		return nil, fmt.Errorf("%w: a season needs %d to %d teams, got %d", ErrInvalidInput, season.MinTeams, season.MaxTeams, len(raw))
	}

	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for i, name := range raw {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("%w: team name %d is empty", ErrInvalidInput, i+1)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: team name %q is used twice", ErrInvalidInput, name)
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out, nil
}

func (s *SeasonService) List(ctx context.Context) ([]season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.List")
	defer span.End()

	items, err := s.seasonRepo.List(ctx)
	if err != nil {
		return nil, classifyStoreError(fmt.Errorf("list seasons: %w", err))
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (s *SeasonService) Get(ctx context.Context, seasonID string) (SeasonDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.Get", seasonAttr(seasonID))
	defer span.End()

	item, err := s.getSeason(ctx, seasonID)
	if err != nil {
		return SeasonDetail{}, err
	}
	teams, err := s.teamRepo.ListBySeason(ctx, item.ID)
	if err != nil {
		return SeasonDetail{}, classifyStoreError(fmt.Errorf("list teams: %w", err))
	}
	matches, err := s.listMatches(ctx, item.ID)
	if err != nil {
		return SeasonDetail{}, err
	}
	return SeasonDetail{Season: item, Teams: teams, Matches: matches}, nil
}

func (s *SeasonService) ListMatches(ctx context.Context, seasonID string) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.ListMatches", seasonAttr(seasonID))
	defer span.End()

	item, err := s.getSeason(ctx, seasonID)
	if err != nil {
		return nil, err
	}
	return s.listMatches(ctx, item.ID)
}

// Delete removes a season and everything recorded under it.
func (s *SeasonService) Delete(ctx context.Context, seasonID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.Delete", seasonAttr(seasonID))
	defer span.End()

	item, err := s.getSeason(ctx, seasonID)
	if err != nil {
		return err
	}
	matches, err := s.matchRepo.ListBySeason(ctx, item.ID)
	if err != nil {
		return classifyStoreError(fmt.Errorf("list matches: %w", err))
	}
	if err := s.seasonRepo.Delete(ctx, item.ID); err != nil {
		return classifyStoreError(fmt.Errorf("delete season: %w", err))
	}

	if s.sessions != nil {
		ids := make([]string, 0, len(matches))
		for _, m := range matches {
			ids = append(ids, m.ID)
		}
		s.sessions.Forget(ids...)
	}
	if s.cache != nil {
		s.cache.InvalidateSeason(ctx, item.ID)
	}

	s.logger.InfoContext(ctx, "season deleted", "season_id", item.ID, "matches", len(matches))
	return nil
}

func (s *SeasonService) getSeason(ctx context.Context, seasonID string) (season.Season, error) {
	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return season.Season{}, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}
	item, exists, err := s.seasonRepo.GetByID(ctx, seasonID)
	if err != nil {
		return season.Season{}, classifyStoreError(fmt.Errorf("get season: %w", err))
	}
	if !exists {
		return season.Season{}, fmt.Errorf("%w: season=%s", ErrNotFound, seasonID)
	}
	return item, nil
}

func (s *SeasonService) listMatches(ctx context.Context, seasonID string) ([]match.Match, error) {
	items, err := s.matchRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return nil, classifyStoreError(fmt.Errorf("list matches: %w", err))
	}
	sortMatches(items)
	return items, nil
}

// sortMatches orders fixtures by round, then creation time.
func sortMatches(items []match.Match) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Round != items[j].Round {
			return items[i].Round < items[j].Round
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
}
