package ball

import "fmt"

// Kind is the scoring input tag entered by the scorer for one delivery.
type Kind string

const (
	KindRuns   Kind = "runs"
	KindWide   Kind = "wide"
	KindNoBall Kind = "no_ball"
	KindWicket Kind = "wicket"
)

// Dismissal is how the batter got out. Empty unless the delivery took a wicket.
type Dismissal string

const (
	DismissalBowled    Dismissal = "bowled"
	DismissalCaught    Dismissal = "caught"
	DismissalRunOut    Dismissal = "run_out"
	DismissalHitSixOut Dismissal = "hit_six_out"
	DismissalStumped   Dismissal = "stumped"
)

var AllDismissals = map[Dismissal]struct{}{
	DismissalBowled:    {},
	DismissalCaught:    {},
	DismissalRunOut:    {},
	DismissalHitSixOut: {},
	DismissalStumped:   {},
}

// Input is one keypad entry.
type Input struct {
	Kind      Kind
	Runs      int
	Dismissal Dismissal
}

func (in Input) Validate() error {
	switch in.Kind {
	case KindRuns:
		if in.Runs != 0 && in.Runs != 1 {
			return fmt.Errorf("runs must be 0 or 1, got %d", in.Runs)
		}
	case KindWide, KindNoBall:
	case KindWicket:
		if in.Dismissal == "" {
			return nil
		}
		if _, ok := AllDismissals[in.Dismissal]; !ok {
			return fmt.Errorf("unknown dismissal kind %q", in.Dismissal)
		}
	default:
		return fmt.Errorf("unknown ball kind %q", in.Kind)
	}

	return nil
}

// Ball is one persisted delivery of an innings.
type Ball struct {
	ID         string
	InningsID  string
	Index      int
	RunsBatter int
	Extras     int
	IsWide     bool
	IsNoBall   bool
	IsWicket   bool
	Dismissal  Dismissal
}

func (b Ball) IsLegal() bool {
	return !b.IsWide && !b.IsNoBall
}

// Runs is everything the delivery added to the innings total.
func (b Ball) Runs() int {
	return b.RunsBatter + b.Extras
}
