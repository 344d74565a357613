package postgres

import (
	"context"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/Tejas544/gully-scorer/internal/domain/innings"
	qb "github.com/Tejas544/gully-scorer/internal/platform/querybuilder"
)

type InningsRepository struct {
	db *sqlx.DB
}

func NewInningsRepository(db *sqlx.DB) *InningsRepository {
	return &InningsRepository{db: db}
}

func (r *InningsRepository) ListByMatch(ctx context.Context, matchID string) ([]innings.Innings, error) {
	return r.list(ctx, "list innings by match", qb.Eq("match_public_id", matchID))
}

func (r *InningsRepository) ListByMatchIDs(ctx context.Context, matchIDs []string) ([]innings.Innings, error) {
	if len(matchIDs) == 0 {
		return []innings.Innings{}, nil
	}
	return r.list(ctx, "list innings by matches", qb.AnyText("match_public_id", matchIDs))
}

func (r *InningsRepository) list(ctx context.Context, op string, where qb.Condition) ([]innings.Innings, error) {
	query, args, err := qb.Select("*").From("innings").Where(where).OrderBy("match_public_id", "innings_number").ToSQL()
	if err != nil {
		return nil, crerr.Wrapf(err, "build %s query", op)
	}

	var rows []inningsTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrap(err, op)
	}

	out := make([]innings.Innings, 0, len(rows))
	for _, row := range rows {
		out = append(out, innings.Innings{
			ID:            row.PublicID,
			MatchID:       row.MatchID,
			Number:        row.Number,
			BattingTeamID: row.BattingTeamID,
			TotalRuns:     row.TotalRuns,
			TotalWickets:  row.TotalWickets,
			LegalBalls:    row.LegalBalls,
			IsCompleted:   row.IsCompleted,
		})
	}
	return out, nil
}

func (r *InningsRepository) Insert(ctx context.Context, item innings.Innings) error {
	query, args, err := qb.InsertModel("innings", inningsInsertModel{
		PublicID:      item.ID,
		MatchID:       item.MatchID,
		Number:        item.Number,
		BattingTeamID: item.BattingTeamID,
		TotalRuns:     item.TotalRuns,
		TotalWickets:  item.TotalWickets,
		LegalBalls:    item.LegalBalls,
		IsCompleted:   item.IsCompleted,
	}, "")
	if err != nil {
		return crerr.Wrap(err, "build insert innings query")
	}
	_, err = r.db.ExecContext(ctx, query, args...)
	return wrapExec(err, "insert innings")
}

// Update writes the running totals; the identity columns never change.
func (r *InningsRepository) Update(ctx context.Context, item innings.Innings) error {
	query, args, err := qb.Update("innings").
		Set("total_runs", item.TotalRuns).
		Set("total_wickets", item.TotalWickets).
		Set("legal_balls", item.LegalBalls).
		Set("is_completed", item.IsCompleted).
		Set("updated_at", time.Now().UTC()).
		Where(qb.Eq("public_id", item.ID)).
		ToSQL()
	if err != nil {
		return crerr.Wrap(err, "build update innings query")
	}
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return crerr.Wrap(err, "update innings")
	}
	return expectRows(result, "innings "+item.ID)
}
