package postgres

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/Tejas544/gully-scorer/internal/domain/playerstats"
	qb "github.com/Tejas544/gully-scorer/internal/platform/querybuilder"
)

type PlayerStatsRepository struct {
	db *sqlx.DB
}

func NewPlayerStatsRepository(db *sqlx.DB) *PlayerStatsRepository {
	return &PlayerStatsRepository{db: db}
}

func (r *PlayerStatsRepository) Insert(ctx context.Context, items ...playerstats.MatchPlayerStats) error {
	if len(items) == 0 {
		return nil
	}
	models := make([]playerStatsInsertModel, 0, len(items))
	for _, item := range items {
		models = append(models, playerStatsInsertModel{
			MatchID:          item.MatchID,
			PlayerID:         item.PlayerID,
			TeamID:           item.TeamID,
			RunsScored:       item.RunsScored,
			BallsFaced:       item.BallsFaced,
			IsOut:            item.IsOut,
			RunsConceded:     item.RunsConceded,
			WicketsTaken:     item.WicketsTaken,
			LegalBallsBowled: item.LegalBallsBowled,
		})
	}

	query, args, err := qb.InsertModels("match_player_stats", models, `ON CONFLICT (match_public_id, player_public_id)
DO UPDATE SET
    team_public_id = EXCLUDED.team_public_id,
    runs_scored = EXCLUDED.runs_scored,
    balls_faced = EXCLUDED.balls_faced,
    is_out = EXCLUDED.is_out,
    runs_conceded = EXCLUDED.runs_conceded,
    wickets_taken = EXCLUDED.wickets_taken,
    legal_balls_bowled = EXCLUDED.legal_balls_bowled`)
	if err != nil {
		return crerr.Wrap(err, "build upsert match player stats query")
	}
	_, err = r.db.ExecContext(ctx, query, args...)
	return wrapExec(err, "upsert match player stats")
}

func (r *PlayerStatsRepository) DeleteByMatch(ctx context.Context, matchID string) error {
	query, args, err := qb.DeleteFrom("match_player_stats").Where(qb.Eq("match_public_id", matchID)).ToSQL()
	if err != nil {
		return crerr.Wrap(err, "build delete match player stats query")
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return crerr.Wrap(err, "delete match player stats")
	}
	return nil
}

func (r *PlayerStatsRepository) ListByPlayer(ctx context.Context, playerID string) ([]playerstats.MatchPlayerStats, error) {
	return r.list(ctx, "list player stats", qb.Eq("player_public_id", playerID))
}

func (r *PlayerStatsRepository) List(ctx context.Context) ([]playerstats.MatchPlayerStats, error) {
	return r.list(ctx, "list all player stats")
}

func (r *PlayerStatsRepository) list(ctx context.Context, op string, where ...qb.Condition) ([]playerstats.MatchPlayerStats, error) {
	query, args, err := qb.Select("*").From("match_player_stats").Where(where...).OrderBy("id").ToSQL()
	if err != nil {
		return nil, crerr.Wrapf(err, "build %s query", op)
	}

	var rows []playerStatsTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrap(err, op)
	}

	out := make([]playerstats.MatchPlayerStats, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerstats.MatchPlayerStats{
			MatchID:          row.MatchID,
			PlayerID:         row.PlayerID,
			TeamID:           row.TeamID,
			RunsScored:       row.RunsScored,
			BallsFaced:       row.BallsFaced,
			IsOut:            row.IsOut,
			RunsConceded:     row.RunsConceded,
			WicketsTaken:     row.WicketsTaken,
			LegalBallsBowled: row.LegalBallsBowled,
		})
	}
	return out, nil
}
