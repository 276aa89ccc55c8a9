package types

import "encoding/json"

// MarketHistoryPoint is a single probability sample for a market outcome.
// T is epoch seconds, P is a probability fraction in [0, 1].
type MarketHistoryPoint struct {
	T int64   `json:"t"`
	P float64 `json:"p"`
}

// Market is one tradable outcome within a market group. History is ordered
// chronologically and that order must be preserved downstream (it feeds a
// time-ordered chart series).
type Market struct {
	Title   string               `json:"title"`
	History []MarketHistoryPoint `json:"history"`
}

// MarketGroup is a scalar market as returned by GET /markets. Expiry is kept
// raw because the API serves it either as an epoch number or as an ISO date
// string; parsing happens in the series package.
type MarketGroup struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Subtitle    string          `json:"subtitle"`
	MinRange    float64         `json:"min_range"`
	MaxRange    float64         `json:"max_range"`
	MarkPrice   float64         `json:"mark_price"`
	OraclePrice float64         `json:"oracle_price"`
	Expiry      json.RawMessage `json:"expiry"`
	TickSize    float64         `json:"tick_size"`
	Unit        string          `json:"unit"`
	Markets     []Market        `json:"markets"`
}

// MarketTitles returns the outcome titles in group order. These are the
// selectable bet categories in the entry form.
func (g *MarketGroup) MarketTitles() []string {
	titles := make([]string, 0, len(g.Markets))
	for _, m := range g.Markets {
		titles = append(titles, m.Title)
	}
	return titles
}
