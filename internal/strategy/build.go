package strategy

import (
	"fmt"
	"strings"

	"dynamic-pricing/internal/model"

	"github.com/rs/zerolog"
)

// Names lists the strategies Build understands.
var Names = []string{"optimal", "fixed", "schedule"}

// Build constructs a named strategy for the given problem. params holds the
// strategy-specific settings from YAML or JSON.
func Build(name string, params map[string]any, p model.PricingParams, log zerolog.Logger) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "optimal":
		return NewOptimalStrategy(p, log)
	case "fixed":
		_, hi := gridBounds(p.PriceGrid)
		price := Num(params, "price", hi)
		if price <= 0 {
			return nil, fmt.Errorf("fixed strategy needs a positive price, got %v", price)
		}
		return &FixedStrategy{Price: price}, nil
	case "schedule":
		s := &ScheduleStrategy{
			Params: ScheduleParams{
				FullPrice:     Num(params, "full_price", 0),
				MarkdownPrice: Num(params, "markdown_price", 0),
				MarkdownStart: int(Num(params, "markdown_start", 0)),
			},
			Grid:    p.PriceGrid,
			Horizon: p.Horizon,
		}
		if err := s.init(); err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported strategy: %q", name)
	}
}

// Num reads a numeric param, accepting the shapes YAML and JSON decode to.
func Num(m map[string]any, key string, def float64) float64 {
	if v, ok := m[key]; ok && v != nil {
		switch x := v.(type) {
		case float64:
			return x
		case float32:
			return float64(x)
		case int:
			return float64(x)
		case int64:
			return float64(x)
		}
	}
	return def
}
