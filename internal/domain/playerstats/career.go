package playerstats

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/Tejas544/gully-scorer/internal/domain/match"
)

// Appearance joins a stat line with the match it was recorded in.
type Appearance struct {
	Stats        MatchPlayerStats
	Match        match.Match
	OpponentName string
}

// Summarize computes a career profile and a newest-first match log.
func Summarize(items []Appearance) (Career, []MatchLogEntry) {
	career := Career{Matches: len(items)}
	ballsFaced := 0
	log := make([]MatchLogEntry, 0, len(items))

	for _, item := range items {
		s := item.Stats
		ballsFaced += s.BallsFaced

		if s.Batted() {
			career.BattingInnings++
			career.Runs += s.RunsScored
			if s.RunsScored > career.HighScore {
				career.HighScore = s.RunsScored
			}
			if !s.IsOut {
				career.NotOuts++
			}
		}

		if s.Bowled() {
			career.BowlingInnings++
			career.Wickets += s.WicketsTaken
			career.RunsConceded += s.RunsConceded
			career.BallsBowled += s.LegalBallsBowled
			if !career.HasBestFigures || s.WicketsTaken > career.BestWickets ||
				(s.WicketsTaken == career.BestWickets && s.RunsConceded < career.BestRuns) {
				career.BestWickets = s.WicketsTaken
				career.BestRuns = s.RunsConceded
				career.HasBestFigures = true
			}
		}

		log = append(log, MatchLogEntry{
			MatchID:      s.MatchID,
			SeasonID:     item.Match.SeasonID,
			Round:        item.Match.Round,
			PlayedAt:     item.Match.CreatedAt,
			OpponentName: opponentName(item.OpponentName),
			Runs:         s.RunsScored,
			Wickets:      s.WicketsTaken,
			Result:       resultFor(item.Match, s.TeamID),
		})
	}

	outs := career.BattingInnings - career.NotOuts
	if outs > 0 {
		career.Average = round2(float64(career.Runs) / float64(outs))
	} else {
		career.Average = float64(career.Runs)
	}
	if ballsFaced > 0 {
		career.StrikeRate = round2(float64(career.Runs) / float64(ballsFaced) * 100)
	}
	if career.BallsBowled > 0 {
		career.Economy = round2(float64(career.RunsConceded) / (float64(career.BallsBowled) / 6))
	}

	sort.SliceStable(log, func(i, j int) bool {
		return log[i].PlayedAt.After(log[j].PlayedAt)
	})

	return career, log
}

// BestBowling renders the best figures as "wickets/runs", "0/0" before any bowling.
func (c Career) BestBowling() string {
	if !c.HasBestFigures {
		return "0/0"
	}
	return fmt.Sprintf("%d/%d", c.BestWickets, c.BestRuns)
}

// Summaries rolls stat lines up per player. Players without lines get an empty summary.
// The result is ordered by runs, highest first.
func Summaries(players map[string]string, lines []MatchPlayerStats) []Summary {
	byPlayer := make(map[string]*Summary, len(players))
	out := make([]Summary, 0, len(players))
	ids := make([]string, 0, len(players))
	for id := range players {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if players[ids[i]] != players[ids[j]] {
			return players[ids[i]] < players[ids[j]]
		}
		return ids[i] < ids[j]
	})
	for _, id := range ids {
		out = append(out, Summary{PlayerID: id, Name: players[id]})
	}
	for i := range out {
		byPlayer[out[i].PlayerID] = &out[i]
	}

	for _, line := range lines {
		item, ok := byPlayer[line.PlayerID]
		if !ok {
			continue
		}
		item.Matches++
		item.Runs += line.RunsScored
		item.Wickets += line.WicketsTaken
		if line.IsOut {
			item.Outs++
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Runs > out[j].Runs
	})
	return out
}

// AverageDisplay renders the batting average with one decimal, "∞" when never dismissed.
func (s Summary) AverageDisplay() string {
	switch {
	case s.Outs > 0:
		return strconv.FormatFloat(float64(s.Runs)/float64(s.Outs), 'f', 1, 64)
	case s.Runs > 0:
		return "∞"
	default:
		return "0.0"
	}
}

func resultFor(m match.Match, teamID string) Result {
	switch m.WinnerTeamID {
	case "":
		return ResultTie
	case teamID:
		return ResultWin
	default:
		return ResultLoss
	}
}

func opponentName(name string) string {
	if name == "" {
		return "Unknown"
	}
	return name
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
