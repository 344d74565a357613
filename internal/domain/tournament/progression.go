package tournament

import (
	"github.com/Tejas544/gully-scorer/internal/domain/match"
	"github.com/Tejas544/gully-scorer/internal/domain/standing"
)

const (
	ReasonBowlOutExists   = "bowl out already scheduled"
	ReasonFinalPending    = "final not completed"
	ReasonFinalDecided    = "final decided"
	ReasonFinalTied       = "final tied"
	ReasonNoLeague        = "no league matches"
	ReasonLeaguePending   = "league matches outstanding"
	ReasonNotEnoughTeams  = "fewer than two teams in standings"
	ReasonLeagueCompleted = "league completed"
)

// Decide returns the next knockout fixture to schedule, if any. It is idempotent:
// once the fixture it asks for exists, it asks for nothing.
func Decide(s Snapshot) Decision {
	var final *match.Match
	for i := range s.Matches {
		m := s.Matches[i].Match
		switch m.Round {
		case match.RoundBowlOut:
			return none(ReasonBowlOutExists)
		case match.RoundFinal:
			if final == nil {
				final = &m
			}
		}
	}

	if final != nil {
		switch {
		case !final.IsCompleted:
			return none(ReasonFinalPending)
		case final.WinnerTeamID != "":
			return none(ReasonFinalDecided)
		}
		return Decision{
			Action:  ActionCreateBowlOut,
			Round:   match.RoundBowlOut,
			TeamAID: final.TeamAID,
			TeamBID: final.TeamBID,
			Note:    match.NoteBowlOutDecider,
			Reason:  ReasonFinalTied,
		}
	}

	leagueCount := 0
	for _, entry := range s.Matches {
		phase, err := entry.Match.Phase()
		if err != nil || !phase.IsLeagueStage() {
			continue
		}
		leagueCount++
		if !entry.Match.IsCompleted {
			return none(ReasonLeaguePending)
		}
	}
	if leagueCount == 0 {
		return none(ReasonNoLeague)
	}

	first, second, ok := standing.Aggregate(s.Matches, s.Teams).TopTwo()
	if !ok {
		return none(ReasonNotEnoughTeams)
	}

	return Decision{
		Action:  ActionCreateFinal,
		Round:   match.RoundFinal,
		TeamAID: first.TeamID,
		TeamBID: second.TeamID,
		Note:    match.NoteGrandFinal,
		Reason:  ReasonLeagueCompleted,
	}
}

func none(reason string) Decision {
	return Decision{Action: ActionNone, Reason: reason}
}
