package postgres

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/Tejas544/gully-scorer/internal/domain/ball"
	qb "github.com/Tejas544/gully-scorer/internal/platform/querybuilder"
)

type BallRepository struct {
	db *sqlx.DB
}

func NewBallRepository(db *sqlx.DB) *BallRepository {
	return &BallRepository{db: db}
}

func (r *BallRepository) ListByInnings(ctx context.Context, inningsID string) ([]ball.Ball, error) {
	query, args, err := qb.Select("*").From("balls").
		Where(qb.Eq("innings_public_id", inningsID)).
		OrderBy("ball_index").
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build list balls query")
	}

	var rows []ballTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrap(err, "list balls")
	}

	out := make([]ball.Ball, 0, len(rows))
	for _, row := range rows {
		out = append(out, ball.Ball{
			ID:         row.PublicID,
			InningsID:  row.InningsID,
			Index:      row.Index,
			RunsBatter: row.RunsBatter,
			Extras:     row.Extras,
			IsWide:     row.IsWide,
			IsNoBall:   row.IsNoBall,
			IsWicket:   row.IsWicket,
			Dismissal:  ball.Dismissal(row.Dismissal),
		})
	}
	return out, nil
}

// Insert fails with ErrDuplicate when the index is already taken.
func (r *BallRepository) Insert(ctx context.Context, item ball.Ball) error {
	query, args, err := qb.InsertModel("balls", ballInsertModel{
		PublicID:   item.ID,
		InningsID:  item.InningsID,
		Index:      item.Index,
		RunsBatter: item.RunsBatter,
		Extras:     item.Extras,
		IsWide:     item.IsWide,
		IsNoBall:   item.IsNoBall,
		IsWicket:   item.IsWicket,
		Dismissal:  string(item.Dismissal),
	}, "")
	if err != nil {
		return crerr.Wrap(err, "build insert ball query")
	}
	_, err = r.db.ExecContext(ctx, query, args...)
	return wrapExec(err, "insert ball")
}

func (r *BallRepository) Delete(ctx context.Context, ballID string) error {
	query, args, err := qb.DeleteFrom("balls").Where(qb.Eq("public_id", ballID)).ToSQL()
	if err != nil {
		return crerr.Wrap(err, "build delete ball query")
	}
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return crerr.Wrap(err, "delete ball")
	}
	return expectRows(result, "ball "+ballID)
}
