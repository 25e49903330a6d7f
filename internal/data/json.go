package data

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"
)

// CompetitorObservation is one observed competitor shelf price.
type CompetitorObservation struct {
	Competitor string    `json:"competitor"`
	Price      float64   `json:"price"`
	ObservedAt time.Time `json:"observed_at"`
}

// CompetitorFile matches the JSON shape of a competitor price scrape.
//
// Example:
//
//	{
//	  "product": "widget",
//	  "observations": [ {"competitor": "a", "price": 1.5, "observed_at": "..."} ]
//	}
type CompetitorFile struct {
	Product      string                  `json:"product"`
	Observations []CompetitorObservation `json:"observations"`
}

func LoadCompetitorJSON(path string) (*CompetitorFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f CompetitorFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &f, nil
}

// GroupByCompetitor splits observations into competitor-keyed slices.
func GroupByCompetitor(f *CompetitorFile) map[string][]CompetitorObservation {
	out := map[string][]CompetitorObservation{}
	if f == nil {
		return out
	}
	for _, o := range f.Observations {
		out[o.Competitor] = append(out[o.Competitor], o)
	}
	return out
}

// LatestPrices returns each competitor's most recent price, sorted by
// competitor name. Observations without a positive price are skipped.
func LatestPrices(f *CompetitorFile) []float64 {
	byComp := GroupByCompetitor(f)
	names := make([]string, 0, len(byComp))
	for name := range byComp {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]float64, 0, len(names))
	for _, name := range names {
		var latest *CompetitorObservation
		for i, o := range byComp[name] {
			if o.Price <= 0 {
				continue
			}
			if latest == nil || !o.ObservedAt.Before(latest.ObservedAt) {
				latest = &byComp[name][i]
			}
		}
		if latest != nil {
			out = append(out, latest.Price)
		}
	}
	return out
}
