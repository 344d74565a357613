package httpapi

import (
	"strconv"
	"time"

	"github.com/Tejas544/gully-scorer/internal/domain/ball"
	"github.com/Tejas544/gully-scorer/internal/domain/match"
	"github.com/Tejas544/gully-scorer/internal/domain/player"
	"github.com/Tejas544/gully-scorer/internal/domain/playerstats"
	"github.com/Tejas544/gully-scorer/internal/domain/scoring"
	"github.com/Tejas544/gully-scorer/internal/domain/season"
	"github.com/Tejas544/gully-scorer/internal/domain/standing"
	"github.com/Tejas544/gully-scorer/internal/domain/team"
	"github.com/Tejas544/gully-scorer/internal/usecase"
)

type createSeasonRequest struct {
	Name      string   `json:"name" validate:"required,max=100"`
	TeamNames []string `json:"team_names" validate:"required,min=2,max=10,dive,required,max=60"`
}

type tossRequest struct {
	WinnerTeamID string `json:"winner_team_id"`
	Decision     string `json:"decision" validate:"required,oneof=bat bowl"`
}

type recordBallRequest struct {
	Kind          string `json:"kind" validate:"required,oneof=runs wide no_ball wicket"`
	Runs          int    `json:"runs" validate:"min=0,max=1"`
	DismissalKind string `json:"dismissal_kind" validate:"omitempty,oneof=bowled caught run_out hit_six_out stumped"`
}

type bowlOutRequest struct {
	TeamAScore *int `json:"team_a_score" validate:"required,min=0"`
	TeamBScore *int `json:"team_b_score" validate:"required,min=0"`
}

type seasonDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type teamDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type matchDTO struct {
	ID           string    `json:"id"`
	SeasonID     string    `json:"season_id"`
	Round        int       `json:"round"`
	Phase        string    `json:"phase"`
	Label        string    `json:"label"`
	TeamAID      string    `json:"team_a_id"`
	TeamBID      string    `json:"team_b_id"`
	WinnerTeamID string    `json:"winner_team_id,omitempty"`
	IsCompleted  bool      `json:"is_completed"`
	ResultNote   string    `json:"result_note,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type seasonDetailDTO struct {
	seasonDTO
	Teams   []teamDTO  `json:"teams"`
	Matches []matchDTO `json:"matches"`
}

type ballDTO struct {
	ID            string `json:"id"`
	InningsID     string `json:"innings_id"`
	BallIndex     int    `json:"ball_index"`
	RunsBatter    int    `json:"runs_batter"`
	Extras        int    `json:"extras"`
	IsWide        bool   `json:"is_wide"`
	IsNoBall      bool   `json:"is_no_ball"`
	IsWicket      bool   `json:"is_wicket"`
	DismissalKind string `json:"dismissal_kind,omitempty"`
}

type resultDTO struct {
	WinnerTeamID string `json:"winner_team_id,omitempty"`
	Message      string `json:"message"`
	Tied         bool   `json:"tied"`
}

type scoreboardDTO struct {
	InningsID      string     `json:"innings_id"`
	InningsNumber  int        `json:"innings_number"`
	BattingTeamID  string     `json:"batting_team_id"`
	BowlingTeamID  string     `json:"bowling_team_id"`
	Target         int        `json:"target,omitempty"`
	TotalRuns      int        `json:"total_runs"`
	TotalWickets   int        `json:"total_wickets"`
	LegalBalls     int        `json:"legal_balls"`
	Overs          string     `json:"overs"`
	BallsRemaining int        `json:"balls_remaining"`
	Status         string     `json:"status"`
	Result         *resultDTO `json:"result,omitempty"`
	History        []ballDTO  `json:"history"`
}

type matchViewDTO struct {
	Match      matchDTO       `json:"match"`
	Scoreboard *scoreboardDTO `json:"scoreboard,omitempty"`
	SyncError  string         `json:"sync_error,omitempty"`
}

type recordBallResponseDTO struct {
	Ball          ballDTO       `json:"ball"`
	InningsOver   bool          `json:"innings_over"`
	MatchFinished bool          `json:"match_finished"`
	Scoreboard    scoreboardDTO `json:"scoreboard"`
}

type tossResponseDTO struct {
	WinnerTeamID  string        `json:"winner_team_id"`
	Decision      string        `json:"decision"`
	BattingTeamID string        `json:"batting_team_id"`
	Scoreboard    scoreboardDTO `json:"scoreboard"`
}

type progressionDTO struct {
	SeasonID string    `json:"season_id"`
	Action   string    `json:"action"`
	Reason   string    `json:"reason,omitempty"`
	Created  *matchDTO `json:"created,omitempty"`
}

type standingRowDTO struct {
	TeamID       string  `json:"team_id"`
	Name         string  `json:"name"`
	Played       int     `json:"played"`
	Won          int     `json:"won"`
	Lost         int     `json:"lost"`
	Draw         int     `json:"draw"`
	Points       int     `json:"points"`
	RunsScored   int     `json:"runs_scored"`
	BallsFaced   int     `json:"balls_faced"`
	RunsConceded int     `json:"runs_conceded"`
	BallsBowled  int     `json:"balls_bowled"`
	NRR          float64 `json:"nrr"`
}

type battingRowDTO struct {
	TeamID       string  `json:"team_id"`
	Name         string  `json:"name"`
	Innings      int     `json:"innings"`
	Runs         int     `json:"runs"`
	Balls        int     `json:"balls"`
	StrikeRate   float64 `json:"strike_rate"`
	HighestScore int     `json:"highest_score"`
	NotOuts      int     `json:"not_outs"`
}

type bowlingRowDTO struct {
	TeamID      string  `json:"team_id"`
	Name        string  `json:"name"`
	Innings     int     `json:"innings"`
	Wickets     int     `json:"wickets"`
	Runs        int     `json:"runs"`
	Balls       int     `json:"balls"`
	Economy     float64 `json:"economy"`
	BestFigures string  `json:"best_figures"`
}

type standingsDTO struct {
	Standings []standingRowDTO `json:"standings"`
	Batting   []battingRowDTO  `json:"batting"`
	Bowling   []bowlingRowDTO  `json:"bowling"`
}

type playerSummaryDTO struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Matches        int    `json:"matches"`
	Runs           int    `json:"runs"`
	Wickets        int    `json:"wickets"`
	AverageDisplay string `json:"average"`
}

type careerDTO struct {
	Matches        int     `json:"matches"`
	BattingInnings int     `json:"batting_innings"`
	Runs           int     `json:"runs"`
	HighScore      int     `json:"high_score"`
	NotOuts        int     `json:"not_outs"`
	Average        float64 `json:"average"`
	StrikeRate     float64 `json:"strike_rate"`
	BowlingInnings int     `json:"bowling_innings"`
	Wickets        int     `json:"wickets"`
	RunsConceded   int     `json:"runs_conceded"`
	BallsBowled    int     `json:"balls_bowled"`
	Economy        float64 `json:"economy"`
	BestBowling    string  `json:"best_bowling"`
}

type matchLogDTO struct {
	MatchID      string    `json:"match_id"`
	SeasonID     string    `json:"season_id"`
	Round        int       `json:"round"`
	PlayedAt     time.Time `json:"played_at"`
	OpponentName string    `json:"opponent_name"`
	Runs         int       `json:"runs"`
	Wickets      int       `json:"wickets"`
	Result       string    `json:"result"`
}

type playerProfileDTO struct {
	ID     string        `json:"id"`
	Name   string        `json:"name"`
	Career careerDTO     `json:"career"`
	Log    []matchLogDTO `json:"log"`
}

func seasonToDTO(item season.Season) seasonDTO {
	return seasonDTO{ID: item.ID, Name: item.Name, CreatedAt: item.CreatedAt}
}

func seasonDetailToDTO(detail usecase.SeasonDetail) seasonDetailDTO {
	teams := make([]teamDTO, 0, len(detail.Teams))
	for _, item := range detail.Teams {
		teams = append(teams, teamToDTO(item))
	}
	return seasonDetailDTO{
		seasonDTO: seasonToDTO(detail.Season),
		Teams:     teams,
		Matches:   matchesToDTO(detail.Matches),
	}
}

func teamToDTO(item team.Team) teamDTO {
	return teamDTO{ID: item.ID, Name: item.Name}
}

func matchToDTO(item match.Match) matchDTO {
	out := matchDTO{
		ID:           item.ID,
		SeasonID:     item.SeasonID,
		Round:        item.Round,
		TeamAID:      item.TeamAID,
		TeamBID:      item.TeamBID,
		WinnerTeamID: item.WinnerTeamID,
		IsCompleted:  item.IsCompleted,
		ResultNote:   item.ResultNote,
		CreatedAt:    item.CreatedAt,
	}
	if phase, err := item.Phase(); err == nil {
		out.Phase = string(phase.Kind)
		out.Label = phase.Label()
	}
	return out
}

func matchesToDTO(items []match.Match) []matchDTO {
	out := make([]matchDTO, 0, len(items))
	for _, item := range items {
		out = append(out, matchToDTO(item))
	}
	return out
}

func ballToDTO(item ball.Ball) ballDTO {
	return ballDTO{
		ID:            item.ID,
		InningsID:     item.InningsID,
		BallIndex:     item.Index,
		RunsBatter:    item.RunsBatter,
		Extras:        item.Extras,
		IsWide:        item.IsWide,
		IsNoBall:      item.IsNoBall,
		IsWicket:      item.IsWicket,
		DismissalKind: string(item.Dismissal),
	}
}

func resultToDTO(result *scoring.Result) *resultDTO {
	if result == nil {
		return nil
	}
	return &resultDTO{WinnerTeamID: result.WinnerTeamID, Message: result.Message, Tied: result.IsTie()}
}

func scoreboardToDTO(state scoring.State) scoreboardDTO {
	history := make([]ballDTO, 0, len(state.History))
	for _, item := range state.History {
		history = append(history, ballToDTO(item))
	}
	return scoreboardDTO{
		InningsID:      state.InningsID,
		InningsNumber:  state.InningsNumber,
		BattingTeamID:  state.BattingTeamID,
		BowlingTeamID:  state.BowlingTeamID,
		Target:         state.Target,
		TotalRuns:      state.TotalRuns,
		TotalWickets:   state.TotalWickets,
		LegalBalls:     state.LegalBalls,
		Overs:          formatOvers(state.LegalBalls),
		BallsRemaining: state.BallsRemaining(),
		Status:         string(state.Status),
		Result:         resultToDTO(state.Result),
		History:        history,
	}
}

// formatOvers renders legal balls the cricket way, 8 balls as "1.2".
func formatOvers(legalBalls int) string {
	return strconv.Itoa(legalBalls/6) + "." + strconv.Itoa(legalBalls%6)
}

func matchViewToDTO(view usecase.MatchView) matchViewDTO {
	out := matchViewDTO{Match: matchToDTO(view.Match), SyncError: view.SyncError}
	if view.State != nil {
		board := scoreboardToDTO(*view.State)
		out.Scoreboard = &board
	}
	return out
}

func progressionToDTO(result usecase.ProgressionResult) progressionDTO {
	out := progressionDTO{
		SeasonID: result.SeasonID,
		Action:   string(result.Decision.Action),
		Reason:   result.Decision.Reason,
	}
	if result.Created != nil {
		created := matchToDTO(*result.Created)
		out.Created = &created
	}
	return out
}

func standingsToDTO(table standing.Table) standingsDTO {
	out := standingsDTO{
		Standings: make([]standingRowDTO, 0, len(table.Standings)),
		Batting:   make([]battingRowDTO, 0, len(table.Batting)),
		Bowling:   make([]bowlingRowDTO, 0, len(table.Bowling)),
	}
	for _, row := range table.Standings {
		out.Standings = append(out.Standings, standingRowDTO(row))
	}
	for _, row := range table.Batting {
		out.Batting = append(out.Batting, battingRowDTO(row))
	}
	for _, row := range table.Bowling {
		out.Bowling = append(out.Bowling, bowlingRowDTO{
			TeamID:      row.TeamID,
			Name:        row.Name,
			Innings:     row.Innings,
			Wickets:     row.Wickets,
			Runs:        row.Runs,
			Balls:       row.Balls,
			Economy:     row.Economy,
			BestFigures: strconv.Itoa(row.BestWickets) + "/" + strconv.Itoa(row.BestRuns),
		})
	}
	return out
}

func playerSummariesToDTO(items []playerstats.Summary) []playerSummaryDTO {
	out := make([]playerSummaryDTO, 0, len(items))
	for _, item := range items {
		out = append(out, playerSummaryDTO{
			ID:             item.PlayerID,
			Name:           item.Name,
			Matches:        item.Matches,
			Runs:           item.Runs,
			Wickets:        item.Wickets,
			AverageDisplay: item.AverageDisplay(),
		})
	}
	return out
}

func playerProfileToDTO(p player.Player, career playerstats.Career, log []playerstats.MatchLogEntry) playerProfileDTO {
	entries := make([]matchLogDTO, 0, len(log))
	for _, entry := range log {
		entries = append(entries, matchLogDTO{
			MatchID:      entry.MatchID,
			SeasonID:     entry.SeasonID,
			Round:        entry.Round,
			PlayedAt:     entry.PlayedAt,
			OpponentName: entry.OpponentName,
			Runs:         entry.Runs,
			Wickets:      entry.Wickets,
			Result:       string(entry.Result),
		})
	}
	return playerProfileDTO{
		ID:   p.ID,
		Name: p.Name,
		Career: careerDTO{
			Matches:        career.Matches,
			BattingInnings: career.BattingInnings,
			Runs:           career.Runs,
			HighScore:      career.HighScore,
			NotOuts:        career.NotOuts,
			Average:        career.Average,
			StrikeRate:     career.StrikeRate,
			BowlingInnings: career.BowlingInnings,
			Wickets:        career.Wickets,
			RunsConceded:   career.RunsConceded,
			BallsBowled:    career.BallsBowled,
			Economy:        career.Economy,
			BestBowling:    career.BestBowling(),
		},
		Log: entries,
	}
}
