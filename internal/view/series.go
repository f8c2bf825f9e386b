package view

import (
	"sort"

	"codeberg.org/veland/scrubmon/internal/reading"
)

// Point is one chart sample.
type Point struct {
	X int64   `json:"x"` // milliseconds since epoch
	Y float64 `json:"y"`
}

// Series is the ordered point sequence of one channel for one metric.
type Series struct {
	Channel string  `json:"channel"`
	Label   string  `json:"label"`
	Points  []Point `json:"points"`
}

// BuildSeries projects the set onto one metric, window-filtered and grouped
// by channel. Readings without a value for the metric are skipped, leaving
// a gap: consumers must break the line there, never draw zero. Output
// ordering is deterministic: series sorted by channel, points ascending by
// timestamp.
func BuildSeries(set reading.Set, windowStart, windowEnd int64, metric Selector, labelFn func(string) string) []Series {
	grouped := make(map[string][]Point)

	for _, r := range set.Window(windowStart, windowEnd) {
		y, ok := metric(r)
		if !ok {
			continue
		}
		grouped[r.Channel] = append(grouped[r.Channel], Point{X: r.Timestamp, Y: y})
	}

	out := make([]Series, 0, len(grouped))
	for channel, points := range grouped {
		// The set is timestamp-ordered already; equal timestamps keep
		// their identity order from the set.
		out = append(out, Series{
			Channel: channel,
			Label:   labelFn(channel),
			Points:  points,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Channel < out[j].Channel })

	return out
}
