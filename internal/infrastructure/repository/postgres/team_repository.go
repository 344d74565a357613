package postgres

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/Tejas544/gully-scorer/internal/domain/team"
	qb "github.com/Tejas544/gully-scorer/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) ListBySeason(ctx context.Context, seasonID string) ([]team.Team, error) {
	return r.list(ctx, "list teams by season", qb.Eq("season_public_id", seasonID))
}

func (r *TeamRepository) ListByIDs(ctx context.Context, teamIDs []string) ([]team.Team, error) {
	if len(teamIDs) == 0 {
		return []team.Team{}, nil
	}
	return r.list(ctx, "list teams by ids", qb.AnyText("public_id", teamIDs))
}

func (r *TeamRepository) list(ctx context.Context, op string, where ...qb.Condition) ([]team.Team, error) {
	query, args, err := qb.Select("*").From("teams").Where(where...).OrderBy("id").ToSQL()
	if err != nil {
		return nil, crerr.Wrapf(err, "build %s query", op)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrap(err, op)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row))
	}
	return out, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From("teams").Where(qb.Eq("public_id", teamID)).ToSQL()
	if err != nil {
		return team.Team{}, false, crerr.Wrap(err, "build get team query")
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, crerr.Wrap(err, "get team")
	}
	return teamFromRow(row), true, nil
}

// Insert writes every team in one statement, so the batch lands whole or not at all.
func (r *TeamRepository) Insert(ctx context.Context, items ...team.Team) error {
	if len(items) == 0 {
		return nil
	}
	models := make([]teamInsertModel, 0, len(items))
	for _, item := range items {
		models = append(models, teamInsertModel{
			PublicID:  item.ID,
			SeasonID:  item.SeasonID,
			Name:      item.Name,
			CreatedAt: utc(item.CreatedAt),
		})
	}

	query, args, err := qb.InsertModels("teams", models, "")
	if err != nil {
		return crerr.Wrap(err, "build insert teams query")
	}
	_, err = r.db.ExecContext(ctx, query, args...)
	return wrapExec(err, "insert teams")
}

func teamFromRow(row teamTableModel) team.Team {
	return team.Team{ID: row.PublicID, SeasonID: row.SeasonID, Name: row.Name, CreatedAt: row.CreatedAt}
}
