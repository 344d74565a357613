package postgres

import (
	"database/sql"
	"time"
)

type seasonTableModel struct {
	ID        int64     `db:"id"`
	PublicID  string    `db:"public_id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type seasonInsertModel struct {
	PublicID  string    `db:"public_id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

type teamTableModel struct {
	ID        int64     `db:"id"`
	PublicID  string    `db:"public_id"`
	SeasonID  string    `db:"season_public_id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type teamInsertModel struct {
	PublicID  string    `db:"public_id"`
	SeasonID  string    `db:"season_public_id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

type playerTableModel struct {
	ID        int64     `db:"id"`
	PublicID  string    `db:"public_id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type playerInsertModel struct {
	PublicID  string    `db:"public_id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

type teamPlayerTableModel struct {
	ID        int64     `db:"id"`
	TeamID    string    `db:"team_public_id"`
	PlayerID  string    `db:"player_public_id"`
	CreatedAt time.Time `db:"created_at"`
}

type teamPlayerInsertModel struct {
	TeamID   string `db:"team_public_id"`
	PlayerID string `db:"player_public_id"`
}

type matchTableModel struct {
	ID           int64          `db:"id"`
	PublicID     string         `db:"public_id"`
	SeasonID     string         `db:"season_public_id"`
	Round        int            `db:"round_number"`
	TeamAID      string         `db:"team_a_public_id"`
	TeamBID      string         `db:"team_b_public_id"`
	WinnerTeamID sql.NullString `db:"winner_team_public_id"`
	IsCompleted  bool           `db:"is_completed"`
	ResultNote   string         `db:"result_note"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

type matchInsertModel struct {
	PublicID     string         `db:"public_id"`
	SeasonID     string         `db:"season_public_id"`
	Round        int            `db:"round_number"`
	TeamAID      string         `db:"team_a_public_id"`
	TeamBID      string         `db:"team_b_public_id"`
	WinnerTeamID sql.NullString `db:"winner_team_public_id"`
	IsCompleted  bool           `db:"is_completed"`
	ResultNote   string         `db:"result_note"`
	CreatedAt    time.Time      `db:"created_at"`
}

type inningsTableModel struct {
	ID            int64     `db:"id"`
	PublicID      string    `db:"public_id"`
	MatchID       string    `db:"match_public_id"`
	Number        int       `db:"innings_number"`
	BattingTeamID string    `db:"batting_team_public_id"`
	TotalRuns     int       `db:"total_runs"`
	TotalWickets  int       `db:"total_wickets"`
	LegalBalls    int       `db:"legal_balls"`
	IsCompleted   bool      `db:"is_completed"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

type inningsInsertModel struct {
	PublicID      string `db:"public_id"`
	MatchID       string `db:"match_public_id"`
	Number        int    `db:"innings_number"`
	BattingTeamID string `db:"batting_team_public_id"`
	TotalRuns     int    `db:"total_runs"`
	TotalWickets  int    `db:"total_wickets"`
	LegalBalls    int    `db:"legal_balls"`
	IsCompleted   bool   `db:"is_completed"`
}

type ballTableModel struct {
	ID         int64     `db:"id"`
	PublicID   string    `db:"public_id"`
	InningsID  string    `db:"innings_public_id"`
	Index      int       `db:"ball_index"`
	RunsBatter int       `db:"runs_batter"`
	Extras     int       `db:"extras"`
	IsWide     bool      `db:"is_wide"`
	IsNoBall   bool      `db:"is_no_ball"`
	IsWicket   bool      `db:"is_wicket"`
	Dismissal  string    `db:"dismissal_kind"`
	CreatedAt  time.Time `db:"created_at"`
}

type ballInsertModel struct {
	PublicID   string `db:"public_id"`
	InningsID  string `db:"innings_public_id"`
	Index      int    `db:"ball_index"`
	RunsBatter int    `db:"runs_batter"`
	Extras     int    `db:"extras"`
	IsWide     bool   `db:"is_wide"`
	IsNoBall   bool   `db:"is_no_ball"`
	IsWicket   bool   `db:"is_wicket"`
	Dismissal  string `db:"dismissal_kind"`
}

type playerStatsTableModel struct {
	ID               int64     `db:"id"`
	MatchID          string    `db:"match_public_id"`
	PlayerID         string    `db:"player_public_id"`
	TeamID           string    `db:"team_public_id"`
	RunsScored       int       `db:"runs_scored"`
	BallsFaced       int       `db:"balls_faced"`
	IsOut            bool      `db:"is_out"`
	RunsConceded     int       `db:"runs_conceded"`
	WicketsTaken     int       `db:"wickets_taken"`
	LegalBallsBowled int       `db:"legal_balls_bowled"`
	CreatedAt        time.Time `db:"created_at"`
}

type playerStatsInsertModel struct {
	MatchID          string `db:"match_public_id"`
	PlayerID         string `db:"player_public_id"`
	TeamID           string `db:"team_public_id"`
	RunsScored       int    `db:"runs_scored"`
	BallsFaced       int    `db:"balls_faced"`
	IsOut            bool   `db:"is_out"`
	RunsConceded     int    `db:"runs_conceded"`
	WicketsTaken     int    `db:"wickets_taken"`
	LegalBallsBowled int    `db:"legal_balls_bowled"`
}
