package view

import "codeberg.org/veland/scrubmon/internal/reading"

// Snapshot is the latest known reading of one logical channel. The shape
// is fixed: a channel with no data still yields a Snapshot, with a nil
// timestamp and nil measurements, so status tiles never deal with a
// missing record.
type Snapshot struct {
	Channel     string   `json:"channel"`
	Timestamp   *int64   `json:"timestamp"`
	CO2         *float64 `json:"co2"`
	Temperature *float64 `json:"temperature"`
	Humidity    *float64 `json:"humidity"`
	Mode        *int     `json:"mode"`
}

// LatestPerChannel finds the most recent reading for each requested
// logical channel, scanning the full retained set: "latest known" is
// independent of the chart window. Aliased physical channels share one
// bucket, keeping whichever reading has the greater timestamp.
func LatestPerChannel(set reading.Set, channels []Logical) map[string]Snapshot {
	bucket := make(map[string]string, 8) // physical id -> logical name
	out := make(map[string]Snapshot, len(channels))

	for _, ch := range channels {
		out[ch.Name] = Snapshot{Channel: ch.Name}
		for _, alias := range ch.Aliases {
			bucket[alias] = ch.Name
		}
	}

	for _, r := range set {
		name, ok := bucket[r.Channel]
		if !ok {
			continue
		}

		current := out[name]
		if current.Timestamp != nil && *current.Timestamp >= r.Timestamp {
			continue
		}

		ts := r.Timestamp
		out[name] = Snapshot{
			Channel:     name,
			Timestamp:   &ts,
			CO2:         r.CO2,
			Temperature: r.Temperature,
			Humidity:    r.Humidity,
			Mode:        r.Mode,
		}
	}

	return out
}

// ModeText formats the current-mode display string from the control
// channel's latest snapshot.
func ModeText(snap Snapshot) string {
	if snap.Mode != nil {
		if name, ok := ModeName(*snap.Mode); ok {
			return "Mode: " + name
		}
	}

	return "Mode: -"
}
