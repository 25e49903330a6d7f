package strategy

import "dynamic-pricing/internal/model"

type Context struct {
	// Period is the elapsed period index t.
	Period    int
	Inventory int
	LastPrice float64
}

// Strategy picks a price for each period. A zero price withholds the
// product for that period.
type Strategy interface {
	Name() string
	Decide(ctx Context) model.Decision
}
