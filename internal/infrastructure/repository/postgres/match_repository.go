package postgres

import (
	"context"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/Tejas544/gully-scorer/internal/domain/match"
	qb "github.com/Tejas544/gully-scorer/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	query, args, err := qb.Select("*").From("matches").Where(qb.Eq("public_id", matchID)).ToSQL()
	if err != nil {
		return match.Match{}, false, crerr.Wrap(err, "build get match query")
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, crerr.Wrap(err, "get match")
	}
	return matchFromRow(row), true, nil
}

func (r *MatchRepository) ListBySeason(ctx context.Context, seasonID string) ([]match.Match, error) {
	return r.list(ctx, "list matches by season", qb.Eq("season_public_id", seasonID))
}

func (r *MatchRepository) ListByIDs(ctx context.Context, matchIDs []string) ([]match.Match, error) {
	if len(matchIDs) == 0 {
		return []match.Match{}, nil
	}
	return r.list(ctx, "list matches by ids", qb.AnyText("public_id", matchIDs))
}

func (r *MatchRepository) list(ctx context.Context, op string, where qb.Condition) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").Where(where).OrderBy("round_number", "id").ToSQL()
	if err != nil {
		return nil, crerr.Wrapf(err, "build %s query", op)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrap(err, op)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromRow(row))
	}
	return out, nil
}

func (r *MatchRepository) ExistsByRound(ctx context.Context, seasonID string, round int) (bool, error) {
	query, args, err := qb.Select("COUNT(1)").From("matches").
		Where(
			qb.Eq("season_public_id", seasonID),
			qb.Eq("round_number", round),
		).
		ToSQL()
	if err != nil {
		return false, crerr.Wrap(err, "build count matches by round query")
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return false, crerr.Wrap(err, "count matches by round")
	}
	return count > 0, nil
}

func (r *MatchRepository) Insert(ctx context.Context, items ...match.Match) error {
	if len(items) == 0 {
		return nil
	}
	models := make([]matchInsertModel, 0, len(items))
	for _, item := range items {
		models = append(models, matchInsertModel{
			PublicID:     item.ID,
			SeasonID:     item.SeasonID,
			Round:        item.Round,
			TeamAID:      item.TeamAID,
			TeamBID:      item.TeamBID,
			WinnerTeamID: nullString(item.WinnerTeamID),
			IsCompleted:  item.IsCompleted,
			ResultNote:   item.ResultNote,
			CreatedAt:    utc(item.CreatedAt),
		})
	}

	query, args, err := qb.InsertModels("matches", models, "")
	if err != nil {
		return crerr.Wrap(err, "build insert matches query")
	}
	_, err = r.db.ExecContext(ctx, query, args...)
	return wrapExec(err, "insert matches")
}

func (r *MatchRepository) UpdateOutcome(ctx context.Context, matchID string, outcome match.Outcome) error {
	query, args, err := qb.Update("matches").
		Set("winner_team_public_id", nullString(outcome.WinnerTeamID)).
		Set("is_completed", outcome.IsCompleted).
		Set("result_note", outcome.ResultNote).
		Set("updated_at", time.Now().UTC()).
		Where(qb.Eq("public_id", matchID)).
		ToSQL()
	if err != nil {
		return crerr.Wrap(err, "build update match outcome query")
	}
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return crerr.Wrap(err, "update match outcome")
	}
	return expectRows(result, "match "+matchID)
}

func matchFromRow(row matchTableModel) match.Match {
	return match.Match{
		ID:           row.PublicID,
		SeasonID:     row.SeasonID,
		Round:        row.Round,
		TeamAID:      row.TeamAID,
		TeamBID:      row.TeamBID,
		WinnerTeamID: row.WinnerTeamID.String,
		IsCompleted:  row.IsCompleted,
		ResultNote:   row.ResultNote,
		CreatedAt:    row.CreatedAt,
	}
}
