package cache

import (
	"context"
	"testing"
	"time"

	"github.com/Tejas544/gully-scorer/internal/domain/season"
	"github.com/Tejas544/gully-scorer/internal/domain/team"
	"github.com/Tejas544/gully-scorer/internal/infrastructure/repository/memory"
	basecache "github.com/Tejas544/gully-scorer/internal/platform/cache"
)

type countingSeasons struct {
	season.Repository
	lists int
}

func (c *countingSeasons) List(ctx context.Context) ([]season.Season, error) {
	c.lists++
	return c.Repository.List(ctx)
}

func TestSeasonRepositoryCachesListUntilWrite(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := memory.NewStore()
	inner := &countingSeasons{Repository: memory.NewSeasonRepository(store)}
	repo := NewSeasonRepository(inner, basecache.NewStore[any](time.Minute))

	if _, err := repo.List(ctx); err != nil {
		t.Fatalf("list: %v", err)
	}
	if _, err := repo.List(ctx); err != nil {
		t.Fatalf("list: %v", err)
	}
	if inner.lists != 1 {
		t.Fatalf("expected one store read, got %d", inner.lists)
	}

	if err := repo.Insert(ctx, season.Season{ID: "s1", Name: "Summer", CreatedAt: time.Now()}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	items, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 || inner.lists != 2 {
		t.Fatalf("insert must invalidate the list: items=%d reads=%d", len(items), inner.lists)
	}
}

func TestSeasonDeleteDropsCachedTeams(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := memory.NewStore()
	shared := basecache.NewStore[any](time.Minute)
	seasons := NewSeasonRepository(memory.NewSeasonRepository(store), shared)
	teams := NewTeamRepository(memory.NewTeamRepository(store), shared)

	if err := seasons.Insert(ctx, season.Season{ID: "s1", Name: "Summer"}); err != nil {
		t.Fatalf("insert season: %v", err)
	}
	if err := teams.Insert(ctx, team.Team{ID: "t1", SeasonID: "s1", Name: "Rahul"}, team.Team{ID: "t2", SeasonID: "s1", Name: "Aman"}); err != nil {
		t.Fatalf("insert teams: %v", err)
	}
	if got, _ := teams.ListBySeason(ctx, "s1"); len(got) != 2 {
		t.Fatalf("teams = %+v", got)
	}

	if err := seasons.Delete(ctx, "s1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got, _ := teams.ListBySeason(ctx, "s1"); len(got) != 0 {
		t.Fatalf("stale teams served after delete: %+v", got)
	}
	if _, ok, _ := seasons.GetByID(ctx, "s1"); ok {
		t.Fatalf("stale season served after delete")
	}
}
