package model

// State identifies one subproblem: T is the elapsed period index, N the
// inventory on hand.
type State struct {
	T int
	N int
}

// Decision is the optimal price for a state and the expected discounted
// profit from that state onward. Price is 0 when no decision is made.
type Decision struct {
	Price float64 `json:"price"`
	Value float64 `json:"value"`
}

// Policy is a fully solved decision table over t in [0, Horizon] and
// n in [0, Inventory].
type Policy struct {
	Horizon   int
	Inventory int

	// Decisions is indexed t + (Horizon+1)*n.
	Decisions []Decision
}

func NewPolicy(horizon, inventory int) *Policy {
	return &Policy{
		Horizon:   horizon,
		Inventory: inventory,
		Decisions: make([]Decision, (horizon+1)*(inventory+1)),
	}
}

// Contains reports whether (t, n) is inside the table.
func (p *Policy) Contains(t, n int) bool {
	return p != nil && t >= 0 && n >= 0 && t <= p.Horizon && n <= p.Inventory
}

// At returns the decision for (t, n); ok is false when out of range.
func (p *Policy) At(t, n int) (Decision, bool) {
	if !p.Contains(t, n) {
		return Decision{}, false
	}
	return p.Decisions[t+(p.Horizon+1)*n], true
}

func (p *Policy) Set(t, n int, d Decision) {
	p.Decisions[t+(p.Horizon+1)*n] = d
}

// PriceAt returns the price to charge at (t, n), or 0 outside the table.
func (p *Policy) PriceAt(t, n int) float64 {
	d, _ := p.At(t, n)
	return d.Price
}

// Rows returns the table as [t][n] for JSON/CSV output.
func (p *Policy) Rows() [][]Decision {
	out := make([][]Decision, p.Horizon+1)
	for t := range out {
		out[t] = make([]Decision, p.Inventory+1)
		for n := range out[t] {
			out[t][n], _ = p.At(t, n)
		}
	}
	return out
}
