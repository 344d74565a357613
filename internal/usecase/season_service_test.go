package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/mock"

	"github.com/Tejas544/gully-scorer/internal/domain/match"
	"github.com/Tejas544/gully-scorer/internal/domain/season"
	"github.com/Tejas544/gully-scorer/internal/infrastructure/repository/memory"
	matchmock "github.com/Tejas544/gully-scorer/internal/mocks/domain/match"
	playermock "github.com/Tejas544/gully-scorer/internal/mocks/domain/player"
	seasonmock "github.com/Tejas544/gully-scorer/internal/mocks/domain/season"
	teammock "github.com/Tejas544/gully-scorer/internal/mocks/domain/team"
	idgen "github.com/Tejas544/gully-scorer/internal/platform/id"
	"github.com/Tejas544/gully-scorer/internal/platform/logging"
)

func TestSeasonService_CreateBuildsDoubleRoundRobin(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	detail := env.createSeason(t, " Summer Cup ", "Rahul", " Aman ", "Vikram")

	if detail.Season.Name != "Summer Cup" {
		t.Fatalf("expected trimmed season name, got %q", detail.Season.Name)
	}
	gotNames := make([]string, 0, len(detail.Teams))
	for _, item := range detail.Teams {
		gotNames = append(gotNames, item.Name)
	}
	if diff := cmp.Diff([]string{"Rahul", "Aman", "Vikram"}, gotNames); diff != "" {
		t.Fatalf("team names mismatch (-want +got):\n%s", diff)
	}
	if len(detail.Matches) != 6 {
		t.Fatalf("expected 6 fixtures for 3 teams, got %d", len(detail.Matches))
	}

	pairs := make(map[[2]string]int)
	for _, m := range detail.Matches {
		phase, err := m.Phase()
		if err != nil || !phase.IsLeagueStage() {
			t.Fatalf("expected league fixture, got round %d (%v)", m.Round, err)
		}
		pairs[[2]string{m.TeamAID, m.TeamBID}]++
	}
	for pair, n := range pairs {
		if n != 1 || pairs[[2]string{pair[1], pair[0]}] != 1 {
			t.Fatalf("expected each pairing home and away once, got %v", pairs)
		}
	}

	players, err := memory.NewPlayerRepository(env.store).List(context.Background())
	if err != nil {
		t.Fatalf("list players: %v", err)
	}
	if len(players) != 3 {
		t.Fatalf("expected one player per team, got %d", len(players))
	}
}

func TestSeasonService_CreateReusesPlayersByName(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.createSeason(t, "Summer", "Rahul", "Aman")
	env.createSeason(t, "Winter", "Rahul", "Sameer")

	players, err := memory.NewPlayerRepository(env.store).List(context.Background())
	if err != nil {
		t.Fatalf("list players: %v", err)
	}
	if len(players) != 3 {
		t.Fatalf("expected Rahul to be registered once, got %d players", len(players))
	}
}

func TestSeasonService_CreateValidation(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	tests := []struct {
		name  string
		input CreateSeasonInput
	}{
		{name: "missing name", input: CreateSeasonInput{Name: " ", TeamNames: []string{"A", "B"}}},
		{name: "one team", input: CreateSeasonInput{Name: "S", TeamNames: []string{"A"}}},
		{name: "too many teams", input: CreateSeasonInput{Name: "S", TeamNames: []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11"}}},
		{name: "blank team", input: CreateSeasonInput{Name: "S", TeamNames: []string{"A", " "}}},
		{name: "duplicate team", input: CreateSeasonInput{Name: "S", TeamNames: []string{"A", "B", "A"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := env.seasons.Create(context.Background(), tt.input); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}

	list, err := env.seasons.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("rejected seasons must not be stored, got %d", len(list))
	}
}

func TestSeasonService_CreateRemovesPartialSeason(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	seasonRepo := seasonmock.NewRepository(t)
	teamRepo := teammock.NewRepository(t)
	playerRepo := playermock.NewRepository(t)
	matchRepo := matchmock.NewRepository(t)

	seasonRepo.On("Insert", mock.Anything, mock.MatchedBy(func(item season.Season) bool {
		return item.ID == "s-1" && item.Name == "Summer"
	})).Return(nil).Once()
	teamRepo.On("Insert", mock.Anything, mock.Anything, mock.Anything).Return(errStoreDown).Once()
	seasonRepo.On("Delete", mock.Anything, "s-1").Return(nil).Once()

	service := NewSeasonService(seasonRepo, teamRepo, playerRepo, matchRepo, idgen.NewSequence("s"), nil, nil, logging.NewNop())
	_, err := service.Create(ctx, CreateSeasonInput{Name: "Summer", TeamNames: []string{"Rahul", "Aman"}})
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestSeasonService_ListNewestFirst(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	clock := base
	env.seasons.now = func() time.Time { return clock }

	env.createSeason(t, "Old", "A", "B")
	clock = base.Add(time.Hour)
	env.createSeason(t, "New", "C", "D")

	list, err := env.seasons.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].Name != "New" || list[1].Name != "Old" {
		t.Fatalf("expected newest season first, got %+v", list)
	}
}

func TestSeasonService_GetAndListMatches(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	detail := env.createSeason(t, "Summer", "Rahul", "Aman", "Vikram", "Sameer")

	got, err := env.seasons.Get(context.Background(), detail.Season.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Teams) != 4 || len(got.Matches) != 12 {
		t.Fatalf("unexpected season detail: %d teams, %d matches", len(got.Teams), len(got.Matches))
	}
	for i := 1; i < len(got.Matches); i++ {
		if got.Matches[i-1].Round > got.Matches[i].Round {
			t.Fatalf("matches must be ordered by round: %d before %d", got.Matches[i-1].Round, got.Matches[i].Round)
		}
	}

	if _, err := env.seasons.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := env.seasons.ListMatches(context.Background(), ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSeasonService_DeleteCascades(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	detail := env.createSeason(t, "Summer", "Rahul", "Aman")
	keep := env.createSeason(t, "Winter", "Vikram", "Sameer")
	played := detail.Matches[0]
	env.play(t, played, 1, 0)

	if err := env.seasons.Delete(context.Background(), detail.Season.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := env.seasons.Get(context.Background(), detail.Season.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected deleted season to be gone, got %v", err)
	}
	if _, err := env.scoring.Get(context.Background(), played.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected scoring session dropped with the season, got %v", err)
	}
	if _, err := env.standings.Get(context.Background(), detail.Season.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected standings gone with the season, got %v", err)
	}

	lines, err := memory.NewPlayerStatsRepository(env.store).List(context.Background())
	if err != nil {
		t.Fatalf("list stats: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("expected stats removed with the season, got %d", len(lines))
	}

	if _, err := env.seasons.Get(context.Background(), keep.Season.ID); err != nil {
		t.Fatalf("other seasons must survive: %v", err)
	}
	if err := env.seasons.Delete(context.Background(), detail.Season.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestSeasonService_DeleteStoreFailure(t *testing.T) {
	t.Parallel()

	seasonRepo := seasonmock.NewRepository(t)
	matchRepo := matchmock.NewRepository(t)

	seasonRepo.On("GetByID", mock.Anything, "s1").Return(season.Season{ID: "s1", Name: "Summer"}, true, nil).Once()
	matchRepo.On("ListBySeason", mock.Anything, "s1").Return([]match.Match{{ID: "m1", SeasonID: "s1", Round: 1}}, nil).Once()
	seasonRepo.On("Delete", mock.Anything, "s1").Return(errStoreDown).Once()

	service := NewSeasonService(seasonRepo, teammock.NewRepository(t), playermock.NewRepository(t), matchRepo, idgen.NewSequence("s"), nil, nil, logging.NewNop())
	if err := service.Delete(context.Background(), "s1"); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}
