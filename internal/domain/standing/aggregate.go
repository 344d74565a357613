package standing

import (
	"fmt"
	"sort"

	"github.com/Tejas544/gully-scorer/internal/domain/team"
)

// Aggregate folds every completed match into the standings and player leaderboards.
// Rows keep the order of teams for equal sort keys.
func Aggregate(matches []MatchWithInnings, teams []team.Team) Table {
	teamRows := make([]TeamRow, len(teams))
	batting := make([]BattingRow, len(teams))
	bowling := make([]BowlingRow, len(teams))
	index := make(map[string]int, len(teams))
	for i, item := range teams {
		index[item.ID] = i
		teamRows[i] = TeamRow{TeamID: item.ID, Name: item.Name}
		batting[i] = BattingRow{TeamID: item.ID, Name: item.Name}
		bowling[i] = BowlingRow{TeamID: item.ID, Name: item.Name}
	}

	for _, entry := range matches {
		m := entry.Match
		if !m.IsCompleted {
			continue
		}

		a, okA := index[m.TeamAID]
		b, okB := index[m.TeamBID]
		if okA && okB {
			teamRows[a].Played++
			teamRows[b].Played++
			switch m.WinnerTeamID {
			case m.TeamAID:
				teamRows[a].Won++
				teamRows[a].Points += PointsWin
				teamRows[b].Lost++
			case m.TeamBID:
				teamRows[b].Won++
				teamRows[b].Points += PointsWin
				teamRows[a].Lost++
			default:
				teamRows[a].Draw++
				teamRows[b].Draw++
				teamRows[a].Points += PointsDraw
				teamRows[b].Points += PointsDraw
			}
		}

		for _, inn := range entry.Innings {
			nrrBalls := inn.LegalBalls
			if inn.TotalWickets >= 1 {
				nrrBalls = AllOutBallQuota
			}

			if i, ok := index[inn.BattingTeamID]; ok {
				row := &batting[i]
				row.Innings++
				row.Runs += inn.TotalRuns
				row.Balls += inn.LegalBalls
				if inn.TotalRuns > row.HighestScore {
					row.HighestScore = inn.TotalRuns
				}
				if inn.TotalWickets == 0 {
					row.NotOuts++
				}

				teamRows[i].RunsScored += inn.TotalRuns
				teamRows[i].BallsFaced += nrrBalls
			}

			if i, ok := index[m.Opponent(inn.BattingTeamID)]; ok {
				row := &bowling[i]
				row.Innings++
				row.Runs += inn.TotalRuns
				row.Wickets += inn.TotalWickets
				row.Balls += inn.LegalBalls
				if inn.TotalWickets > row.BestWickets ||
					(inn.TotalWickets == row.BestWickets && inn.TotalRuns < row.BestRuns) {
					row.BestWickets = inn.TotalWickets
					row.BestRuns = inn.TotalRuns
				}

				teamRows[i].RunsConceded += inn.TotalRuns
				teamRows[i].BallsBowled += nrrBalls
			}
		}
	}

	for i := range teamRows {
		row := &teamRows[i]
		row.NRR = NRR(row.RunsScored, row.BallsFaced, row.RunsConceded, row.BallsBowled)
	}
	for i := range batting {
		batting[i].StrikeRate = StrikeRate(batting[i].Runs, batting[i].Balls)
	}
	for i := range bowling {
		bowling[i].Economy = Economy(bowling[i].Runs, bowling[i].Balls)
	}

	sort.SliceStable(teamRows, func(i, j int) bool {
		if teamRows[i].Points != teamRows[j].Points {
			return teamRows[i].Points > teamRows[j].Points
		}
		return teamRows[i].NRR > teamRows[j].NRR
	})
	sort.SliceStable(batting, func(i, j int) bool {
		return batting[i].Runs > batting[j].Runs
	})
	sort.SliceStable(bowling, func(i, j int) bool {
		if bowling[i].Wickets != bowling[j].Wickets {
			return bowling[i].Wickets > bowling[j].Wickets
		}
		return bowling[i].Economy < bowling[j].Economy
	})

	return Table{Standings: teamRows, Batting: batting, Bowling: bowling}
}

func StrikeRate(runs, balls int) float64 {
	if balls <= 0 {
		return 0
	}
	return float64(runs) / float64(balls) * 100
}

func Economy(runs, balls int) float64 {
	if balls <= 0 {
		return 0
	}
	return float64(runs) / (float64(balls) / ballsPerOver)
}

// BestFigures renders bowling figures as "wickets/runs".
func (r BowlingRow) BestFigures() string {
	return fmt.Sprintf("%d/%d", r.BestWickets, r.BestRuns)
}
