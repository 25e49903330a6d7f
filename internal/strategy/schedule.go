package strategy

import (
	"fmt"

	"dynamic-pricing/internal/model"

	"gonum.org/v1/gonum/floats"
)

// ScheduleParams implements a simple markdown calendar:
// - Charge FullPrice during periods [0, MarkdownStart)
// - Charge MarkdownPrice from MarkdownStart until the horizon
//
// Zero values are resolved against the price grid and horizon on the first
// Decide call.
type ScheduleParams struct {
	FullPrice     float64 // default: highest grid price
	MarkdownPrice float64 // default: lowest grid price
	MarkdownStart int     // default: Horizon / 2
}

type ScheduleStrategy struct {
	Params  ScheduleParams
	Grid    []float64
	Horizon int

	initialized bool
	full        float64
	markdown    float64
	start       int
}

func (s *ScheduleStrategy) Name() string { return "schedule" }

func (s *ScheduleStrategy) Decide(ctx Context) model.Decision {
	if !s.initialized {
		if err := s.init(); err != nil {
			panic(err)
		}
	}
	if ctx.Inventory <= 0 {
		return model.Decision{}
	}
	if ctx.Period < s.start {
		return model.Decision{Price: s.full}
	}
	return model.Decision{Price: s.markdown}
}

func (s *ScheduleStrategy) init() error {
	lo, hi := gridBounds(s.Grid)
	s.full = s.Params.FullPrice
	if s.full == 0 {
		s.full = hi
	}
	s.markdown = s.Params.MarkdownPrice
	if s.markdown == 0 {
		s.markdown = lo
	}
	if s.full <= 0 || s.markdown <= 0 {
		return fmt.Errorf("schedule strategy needs positive prices (full=%v markdown=%v)", s.full, s.markdown)
	}
	if s.markdown > s.full {
		return fmt.Errorf("markdown price %v above full price %v", s.markdown, s.full)
	}
	s.start = s.Params.MarkdownStart
	if s.start <= 0 {
		s.start = s.Horizon / 2
	}
	s.initialized = true
	return nil
}

// FixedStrategy charges the same price every period.
type FixedStrategy struct {
	Price float64
}

func (s *FixedStrategy) Name() string { return "fixed" }

func (s *FixedStrategy) Decide(ctx Context) model.Decision {
	if ctx.Inventory <= 0 {
		return model.Decision{}
	}
	return model.Decision{Price: s.Price}
}

func gridBounds(grid []float64) (lo, hi float64) {
	if len(grid) == 0 {
		return 0, 0
	}
	return floats.Min(grid), floats.Max(grid)
}
