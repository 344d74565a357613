package postgres

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/Tejas544/gully-scorer/internal/domain/player"
	qb "github.com/Tejas544/gully-scorer/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	query, args, err := qb.Select("*").From("players").OrderBy("name", "id").ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build list players query")
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrap(err, "list players")
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromRow(row))
	}
	return out, nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	return r.get(ctx, "get player", qb.Eq("public_id", playerID))
}

func (r *PlayerRepository) GetByName(ctx context.Context, name string) (player.Player, bool, error) {
	return r.get(ctx, "get player by name", qb.Eq("name", name))
}

func (r *PlayerRepository) get(ctx context.Context, op string, where qb.Condition) (player.Player, bool, error) {
	query, args, err := qb.Select("*").From("players").Where(where).ToSQL()
	if err != nil {
		return player.Player{}, false, crerr.Wrapf(err, "build %s query", op)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, crerr.Wrap(err, op)
	}
	return playerFromRow(row), true, nil
}

func (r *PlayerRepository) Insert(ctx context.Context, item player.Player) error {
	query, args, err := qb.InsertModel("players", playerInsertModel{
		PublicID:  item.ID,
		Name:      item.Name,
		CreatedAt: utc(item.CreatedAt),
	}, "")
	if err != nil {
		return crerr.Wrap(err, "build insert player query")
	}
	_, err = r.db.ExecContext(ctx, query, args...)
	return wrapExec(err, "insert player")
}

func (r *PlayerRepository) LinkTeam(ctx context.Context, link player.TeamPlayer) error {
	query, args, err := qb.InsertModel("team_players", teamPlayerInsertModel{
		TeamID:   link.TeamID,
		PlayerID: link.PlayerID,
	}, "ON CONFLICT (team_public_id, player_public_id) DO NOTHING")
	if err != nil {
		return crerr.Wrap(err, "build link team player query")
	}
	_, err = r.db.ExecContext(ctx, query, args...)
	return wrapExec(err, "link team player")
}

func (r *PlayerRepository) ListTeamLinks(ctx context.Context, teamIDs []string) ([]player.TeamPlayer, error) {
	if len(teamIDs) == 0 {
		return []player.TeamPlayer{}, nil
	}
	return r.listLinks(ctx, "list team players", qb.AnyText("team_public_id", teamIDs))
}

func (r *PlayerRepository) ListTeamLinksByPlayer(ctx context.Context, playerID string) ([]player.TeamPlayer, error) {
	return r.listLinks(ctx, "list team players by player", qb.Eq("player_public_id", playerID))
}

func (r *PlayerRepository) listLinks(ctx context.Context, op string, where qb.Condition) ([]player.TeamPlayer, error) {
	query, args, err := qb.Select("*").From("team_players").Where(where).OrderBy("id").ToSQL()
	if err != nil {
		return nil, crerr.Wrapf(err, "build %s query", op)
	}

	var rows []teamPlayerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrap(err, op)
	}

	out := make([]player.TeamPlayer, 0, len(rows))
	for _, row := range rows {
		out = append(out, player.TeamPlayer{TeamID: row.TeamID, PlayerID: row.PlayerID})
	}
	return out, nil
}

func playerFromRow(row playerTableModel) player.Player {
	return player.Player{ID: row.PublicID, Name: row.Name, CreatedAt: row.CreatedAt}
}
