package playerstats

import (
	"errors"
	"fmt"

	"github.com/Tejas544/gully-scorer/internal/domain/innings"
	"github.com/Tejas544/gully-scorer/internal/domain/match"
	"github.com/Tejas544/gully-scorer/internal/domain/player"
)

var ErrMissingParticipants = errors.New("match participants not found")

// BuildMatchStats derives both players' lines from the two innings of a finished match.
// The player who batted first bowled the second innings and vice versa.
func BuildMatchStats(m match.Match, first, second innings.Innings, links []player.TeamPlayer) ([]MatchPlayerStats, error) {
	firstBatting := first.BattingTeamID
	secondBatting := m.Opponent(firstBatting)
	if secondBatting == "" {
		return nil, fmt.Errorf("%w: team %s is not playing match %s", ErrMissingParticipants, firstBatting, m.ID)
	}

	playerByTeam := make(map[string]string, len(links))
	for _, link := range links {
		playerByTeam[link.TeamID] = link.PlayerID
	}
	firstPlayer, okFirst := playerByTeam[firstBatting]
	secondPlayer, okSecond := playerByTeam[secondBatting]
	if !okFirst || !okSecond {
		return nil, fmt.Errorf("%w: match %s", ErrMissingParticipants, m.ID)
	}

	return []MatchPlayerStats{
		{
			MatchID:          m.ID,
			PlayerID:         firstPlayer,
			TeamID:           firstBatting,
			RunsScored:       first.TotalRuns,
			BallsFaced:       first.LegalBalls,
			IsOut:            first.TotalWickets > 0,
			RunsConceded:     second.TotalRuns,
			WicketsTaken:     second.TotalWickets,
			LegalBallsBowled: second.LegalBalls,
		},
		{
			MatchID:          m.ID,
			PlayerID:         secondPlayer,
			TeamID:           secondBatting,
			RunsScored:       second.TotalRuns,
			BallsFaced:       second.LegalBalls,
			IsOut:            second.TotalWickets > 0,
			RunsConceded:     first.TotalRuns,
			WicketsTaken:     first.TotalWickets,
			LegalBallsBowled: first.LegalBalls,
		},
	}, nil
}
