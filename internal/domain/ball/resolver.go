package ball

// Outcome is the delta a single delivery applies to an innings.
type Outcome struct {
	RunsBatter int
	Extras     int
	IsWide     bool
	IsNoBall   bool
	IsWicket   bool
	IsLegal    bool
	Dismissal  Dismissal
}

// Resolve maps a scoring input to its delta. The runs range is not checked here;
// callers validate the input first.
func Resolve(in Input) Outcome {
	switch in.Kind {
	case KindWide:
		return Outcome{Extras: 1, IsWide: true}
	case KindNoBall:
		return Outcome{Extras: 1, IsNoBall: true}
	case KindWicket:
		return Outcome{IsWicket: true, IsLegal: true, Dismissal: in.Dismissal}
	default:
		return Outcome{RunsBatter: in.Runs, IsLegal: true}
	}
}

// Ball materializes the outcome as the delivery at index within an innings.
func (o Outcome) Ball(id, inningsID string, index int) Ball {
	b := Ball{
		ID:         id,
		InningsID:  inningsID,
		Index:      index,
		RunsBatter: o.RunsBatter,
		Extras:     o.Extras,
		IsWide:     o.IsWide,
		IsNoBall:   o.IsNoBall,
		IsWicket:   o.IsWicket,
	}
	if o.IsWicket {
		b.Dismissal = o.Dismissal
	}
	return b
}

// Totals is the innings summary derived from its ball log.
type Totals struct {
	Runs       int
	Wickets    int
	LegalBalls int
}

func (t Totals) Apply(b Ball) Totals {
	t.Runs += b.Runs()
	if b.IsWicket {
		t.Wickets++
	}
	if b.IsLegal() {
		t.LegalBalls++
	}
	return t
}

func (t Totals) Revert(b Ball) Totals {
	t.Runs -= b.Runs()
	if b.IsWicket {
		t.Wickets--
	}
	if b.IsLegal() {
		t.LegalBalls--
	}
	return t
}

// Fold recomputes innings totals from its deliveries.
func Fold(balls []Ball) Totals {
	var out Totals
	for _, b := range balls {
		out = out.Apply(b)
	}
	return out
}
