// Package series converts raw market history into chart-ready time series and
// derives the countdown to market expiry from the group's opaque expiry value.
package series

import (
	"github.com/scalarlabs/scalar-terminal/pkg/types"
)

// ChartSeries is one chart line: a named, time-ordered sequence of
// [timestamp_ms, value_percent] points.
type ChartSeries struct {
	Name string       `json:"name"`
	Data [][2]float64 `json:"data"`
}

// Build produces one chart series per market in the group. The mapping is 1:1
// with the input history (no resampling, no interpolation): each point
// (t, p) becomes (t*1000, p*100), preserving input order.
func Build(group *types.MarketGroup) []ChartSeries {
	out := make([]ChartSeries, 0, len(group.Markets))
	for _, m := range group.Markets {
		s := ChartSeries{
			Name: m.Title,
			Data: make([][2]float64, 0, len(m.History)),
		}
		for _, h := range m.History {
			s.Data = append(s.Data, [2]float64{float64(h.T) * 1000, h.P * 100})
		}
		out = append(out, s)
	}

	SeriesBuiltTotal.Inc()
	return out
}
