package pricing

import "dynamic-pricing/internal/model"

type cacheSlot struct {
	decision model.Decision
	computed bool
}

// valueCache is a dense (T+1)x(N+1) table of solved states. A slot is
// written at most once; the computed flag, not the stored value, marks it
// as filled.
type valueCache struct {
	horizon   int
	inventory int
	slots     []cacheSlot

	hits int
}

func newValueCache(horizon, inventory int) *valueCache {
	return &valueCache{
		horizon:   horizon,
		inventory: inventory,
		slots:     make([]cacheSlot, (horizon+1)*(inventory+1)),
	}
}

func (c *valueCache) index(t, n int) int {
	return t + (c.horizon+1)*n
}

// get is a memoised lookup and counts hits.
func (c *valueCache) get(t, n int) (model.Decision, bool) {
	d, ok := c.lookup(t, n)
	if ok {
		c.hits++
	}
	return d, ok
}

func (c *valueCache) lookup(t, n int) (model.Decision, bool) {
	s := c.slots[c.index(t, n)]
	return s.decision, s.computed
}

// put stores d unless the slot is already filled, and returns the stored value.
func (c *valueCache) put(t, n int, d model.Decision) model.Decision {
	s := &c.slots[c.index(t, n)]
	if s.computed {
		return s.decision
	}
	s.decision = d
	s.computed = true
	return d
}

func (c *valueCache) computed() int {
	count := 0
	for _, s := range c.slots {
		if s.computed {
			count++
		}
	}
	return count
}
