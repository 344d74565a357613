package usecase

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/Tejas544/gully-scorer/internal/domain/match"
	"github.com/Tejas544/gully-scorer/internal/domain/player"
	"github.com/Tejas544/gully-scorer/internal/domain/playerstats"
	"github.com/Tejas544/gully-scorer/internal/domain/team"
	"github.com/Tejas544/gully-scorer/internal/platform/logging"
)

// PlayerProfile is a player's career summary and match log.
type PlayerProfile struct {
	Player player.Player
	Career playerstats.Career
	Log    []playerstats.MatchLogEntry
}

type CareerService struct {
	playerRepo player.Repository
	statsRepo  playerstats.Repository
	matchRepo  match.Repository
	teamRepo   team.Repository
	logger     *logging.Logger
}

func NewCareerService(
	playerRepo player.Repository,
	statsRepo playerstats.Repository,
	matchRepo match.Repository,
	teamRepo team.Repository,
	logger *logging.Logger,
) *CareerService {
	if logger == nil {
		logger = logging.Default()
	}
	return &CareerService{
		playerRepo: playerRepo,
		statsRepo:  statsRepo,
		matchRepo:  matchRepo,
		teamRepo:   teamRepo,
		logger:     logger,
	}
}

// ListPlayers returns every registered player ranked by career runs.
func (s *CareerService) ListPlayers(ctx context.Context) ([]playerstats.Summary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CareerService.ListPlayers")
	defer span.End()

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, classifyStoreError(fmt.Errorf("list players: %w", err))
	}
	lines, err := s.statsRepo.List(ctx)
	if err != nil {
		return nil, classifyStoreError(fmt.Errorf("list player stats: %w", err))
	}

	names := make(map[string]string, len(players))
	for _, p := range players {
		names[p.ID] = p.Name
	}
	return playerstats.Summaries(names, lines), nil
}

func (s *CareerService) Profile(ctx context.Context, playerID string) (PlayerProfile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CareerService.Profile", attribute.String("player.id", playerID))
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return PlayerProfile{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	p, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return PlayerProfile{}, classifyStoreError(fmt.Errorf("get player: %w", err))
	}
	if !exists {
		return PlayerProfile{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	lines, err := s.statsRepo.ListByPlayer(ctx, p.ID)
	if err != nil {
		return PlayerProfile{}, classifyStoreError(fmt.Errorf("list player stats: %w", err))
	}
	if len(lines) == 0 {
		career, log := playerstats.Summarize(nil)
		return PlayerProfile{Player: p, Career: career, Log: log}, nil
	}

	matchIDs := make([]string, 0, len(lines))
	for _, line := range lines {
		matchIDs = append(matchIDs, line.MatchID)
	}
	matches, err := s.matchRepo.ListByIDs(ctx, matchIDs)
	if err != nil {
		return PlayerProfile{}, classifyStoreError(fmt.Errorf("list matches: %w", err))
	}
	byID := make(map[string]match.Match, len(matches))
	opponentIDs := make([]string, 0, len(matches))
	for _, m := range matches {
		byID[m.ID] = m
	}
	for _, line := range lines {
		if m, ok := byID[line.MatchID]; ok {
			if id := m.Opponent(line.TeamID); id != "" {
				opponentIDs = append(opponentIDs, id)
			}
		}
	}

	opponents, err := s.teamRepo.ListByIDs(ctx, opponentIDs)
	if err != nil {
		return PlayerProfile{}, classifyStoreError(fmt.Errorf("list opponents: %w", err))
	}
	names := team.NamesByID(opponents)

	appearances := make([]playerstats.Appearance, 0, len(lines))
	for _, line := range lines {
		m, ok := byID[line.MatchID]
		if !ok {
			s.logger.WarnContext(ctx, "stat line without match", "player_id", p.ID, "match_id", line.MatchID)
			continue
		}
		appearances = append(appearances, playerstats.Appearance{
			Stats:        line,
			Match:        m,
			OpponentName: names[m.Opponent(line.TeamID)],
		})
	}

	career, log := playerstats.Summarize(appearances)
	return PlayerProfile{Player: p, Career: career, Log: log}, nil
}
