package match

import (
	"errors"
	"fmt"
)

// PhaseKind tags the tournament stage a match belongs to.
type PhaseKind string

const (
	PhaseLeague         PhaseKind = "league"
	PhaseQualifier1     PhaseKind = "qualifier_1"
	PhaseQualifier2     PhaseKind = "qualifier_2"
	PhaseFinal          PhaseKind = "final"
	PhaseBowlOut        PhaseKind = "bowl_out"
	PhaseSuperOver      PhaseKind = "super_over"
	PhaseBowlOutDecider PhaseKind = "bowl_out_decider"
)

// Persisted round numbers. The round column is the only place the phase is stored.
const (
	RoundQualifier1   = 91
	RoundQualifier2   = 92
	RoundFinal        = 100
	RoundBowlOut      = 101
	tieBreakThreshold = 9000

	tieBreakSuffixSuperOver = 1
	tieBreakSuffixBowlOut   = 2
)

const (
	StandardBallLimit  = 12
	SuperOverBallLimit = 6
)

var ErrUnknownRound = errors.New("unknown round number")

// Phase is the decoded form of a round number.
type Phase struct {
	Kind  PhaseKind
	Round int
}

func PhaseFromRound(round int) (Phase, error) {
	switch {
	case round == RoundQualifier1:
		return Phase{Kind: PhaseQualifier1, Round: round}, nil
	case round == RoundQualifier2:
		return Phase{Kind: PhaseQualifier2, Round: round}, nil
	case round >= 1 && round < RoundFinal:
		return Phase{Kind: PhaseLeague, Round: round}, nil
	case round == RoundFinal:
		return Phase{Kind: PhaseFinal, Round: round}, nil
	case round == RoundBowlOut:
		return Phase{Kind: PhaseBowlOut, Round: round}, nil
	case round > tieBreakThreshold && round%10 == tieBreakSuffixSuperOver:
		return Phase{Kind: PhaseSuperOver, Round: round}, nil
	case round > tieBreakThreshold && round%10 == tieBreakSuffixBowlOut:
		return Phase{Kind: PhaseBowlOutDecider, Round: round}, nil
	default:
		return Phase{}, fmt.Errorf("%w: %d", ErrUnknownRound, round)
	}
}

func LeaguePhase(round int) Phase {
	return Phase{Kind: PhaseLeague, Round: round}
}

func FinalPhase() Phase {
	return Phase{Kind: PhaseFinal, Round: RoundFinal}
}

func BowlOutPhase() Phase {
	return Phase{Kind: PhaseBowlOut, Round: RoundBowlOut}
}

// IsLeagueStage reports whether the match counts towards the league table gate
// that must be complete before a Final is scheduled.
func (p Phase) IsLeagueStage() bool {
	return p.Round > 0 && p.Round < RoundFinal
}

// IsKnockout reports whether a tie in this phase cannot stand.
func (p Phase) IsKnockout() bool {
	return p.Kind != PhaseLeague
}

func (p Phase) BallLimit() int {
	switch p.Kind {
	case PhaseBowlOut, PhaseSuperOver, PhaseBowlOutDecider:
		return SuperOverBallLimit
	default:
		return StandardBallLimit
	}
}

func (p Phase) TieMessage() string {
	switch p.Kind {
	case PhaseLeague:
		return "Match Tied (1 pt each)"
	case PhaseQualifier1, PhaseQualifier2, PhaseFinal:
		return "Match Tied! (Super Over needed)"
	default:
		return "Bowl Out Needed!"
	}
}

// AllowsSuperOver reports whether a tied match in this phase may be replayed as a Super Over.
func (p Phase) AllowsSuperOver() bool {
	switch p.Kind {
	case PhaseQualifier1, PhaseQualifier2, PhaseFinal, PhaseBowlOut, PhaseSuperOver:
		return true
	default:
		return false
	}
}

// AllowsBowlOut reports whether the phase may be settled by a counted bowl-out.
func (p Phase) AllowsBowlOut() bool {
	switch p.Kind {
	case PhaseBowlOut, PhaseSuperOver, PhaseBowlOutDecider:
		return true
	default:
		return false
	}
}

func (p Phase) Label() string {
	switch p.Kind {
	case PhaseLeague:
		return fmt.Sprintf("Round %d", p.Round)
	case PhaseQualifier1:
		return "Qualifier 1"
	case PhaseQualifier2:
		return "Qualifier 2"
	case PhaseFinal:
		return "Grand Final"
	case PhaseBowlOut:
		return "Bowl Out"
	case PhaseSuperOver:
		return "Super Over"
	case PhaseBowlOutDecider:
		return "Bowl Out Decider"
	default:
		return "Unknown"
	}
}

// NextSuperOverRound returns a fresh Super Over round above every tie-break round in use.
func NextSuperOverRound(existing []int) int {
	return nextTieBreakRound(existing, tieBreakSuffixSuperOver)
}

// NextBowlOutDeciderRound returns a fresh bowl-out decider round above every tie-break round in use.
func NextBowlOutDeciderRound(existing []int) int {
	return nextTieBreakRound(existing, tieBreakSuffixBowlOut)
}

func nextTieBreakRound(existing []int, suffix int) int {
	block := tieBreakThreshold/10 - 1
	for _, round := range existing {
		if round <= tieBreakThreshold {
			continue
		}
		if round/10 > block {
			block = round / 10
		}
	}
	return (block+1)*10 + suffix
}
