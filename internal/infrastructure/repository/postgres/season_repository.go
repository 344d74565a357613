package postgres

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/Tejas544/gully-scorer/internal/domain/season"
	qb "github.com/Tejas544/gully-scorer/internal/platform/querybuilder"
)

type SeasonRepository struct {
	db *sqlx.DB
}

func NewSeasonRepository(db *sqlx.DB) *SeasonRepository {
	return &SeasonRepository{db: db}
}

func (r *SeasonRepository) List(ctx context.Context) ([]season.Season, error) {
	query, args, err := qb.Select("*").From("seasons").OrderBy("created_at DESC", "id DESC").ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build list seasons query")
	}

	var rows []seasonTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrap(err, "list seasons")
	}

	out := make([]season.Season, 0, len(rows))
	for _, row := range rows {
		out = append(out, seasonFromRow(row))
	}
	return out, nil
}

func (r *SeasonRepository) GetByID(ctx context.Context, seasonID string) (season.Season, bool, error) {
	query, args, err := qb.Select("*").From("seasons").Where(qb.Eq("public_id", seasonID)).ToSQL()
	if err != nil {
		return season.Season{}, false, crerr.Wrap(err, "build get season query")
	}

	var row seasonTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return season.Season{}, false, nil
		}
		return season.Season{}, false, crerr.Wrap(err, "get season")
	}
	return seasonFromRow(row), true, nil
}

func (r *SeasonRepository) Insert(ctx context.Context, item season.Season) error {
	query, args, err := qb.InsertModel("seasons", seasonInsertModel{
		PublicID:  item.ID,
		Name:      item.Name,
		CreatedAt: utc(item.CreatedAt),
	}, "")
	if err != nil {
		return crerr.Wrap(err, "build insert season query")
	}
	_, err = r.db.ExecContext(ctx, query, args...)
	return wrapExec(err, "insert season")
}

// Delete relies on ON DELETE CASCADE for every child table.
func (r *SeasonRepository) Delete(ctx context.Context, seasonID string) error {
	query, args, err := qb.DeleteFrom("seasons").Where(qb.Eq("public_id", seasonID)).ToSQL()
	if err != nil {
		return crerr.Wrap(err, "build delete season query")
	}
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return crerr.Wrap(err, "delete season")
	}
	return expectRows(result, "season "+seasonID)
}

func seasonFromRow(row seasonTableModel) season.Season {
	return season.Season{ID: row.PublicID, Name: row.Name, CreatedAt: row.CreatedAt}
}
