// Package view derives render-ready projections from the retained set:
// per-channel metric series, mode bands for chart overlays and latest-value
// snapshots for status tiles. Everything here is a pure function of its
// inputs; no view keeps state between calls.
package view

import "codeberg.org/veland/scrubmon/internal/reading"

// ControlChannel is the logical source of the operating mode. The 4C
// interlock also reports under its legacy numeric channel id, so both names
// must resolve to the same logical source.
const ControlChannel = "interlock_4c"

// controlAliases holds every physical channel id carrying the control
// signal.
var controlAliases = map[string]bool{
	ControlChannel: true,
	"4":            true,
}

// IsControlChannel reports whether a raw channel id carries the operating
// mode.
func IsControlChannel(channel string) bool {
	return controlAliases[channel]
}

// Logical is one logical channel with the physical ids that feed it.
type Logical struct {
	Name    string
	Aliases []string
}

// TrackedChannels returns the logical channels shown on the status tiles.
func TrackedChannels() []Logical {
	return []Logical{
		{Name: "before_scrub", Aliases: []string{"before_scrub"}},
		{Name: "after_scrub", Aliases: []string{"after_scrub"}},
		{Name: ControlChannel, Aliases: []string{ControlChannel, "4"}},
	}
}

var channelLabels = map[string]string{
	"before_scrub": "Before scrubber",
	"after_scrub":  "After scrubber",
	ControlChannel: "Interlock 4C",
	"4":            "Interlock 4C",
}

// ChannelLabel maps a raw channel id to its display name. Unknown channels
// get a fallback label carrying the raw id so no series is silently
// dropped.
func ChannelLabel(channel string) string {
	if label, ok := channelLabels[channel]; ok {
		return label
	}

	return "Channel " + channel
}

// Selector extracts one metric from a reading. The boolean is false when
// the reading carries no usable value for this metric, which renders as a
// gap rather than a zero.
type Selector func(r reading.Reading) (float64, bool)

// Metric selectors for the three charted measurements.
var (
	CO2         Selector = func(r reading.Reading) (float64, bool) { return reading.Value(r.CO2) }
	Temperature Selector = func(r reading.Reading) (float64, bool) { return reading.Value(r.Temperature) }
	Humidity    Selector = func(r reading.Reading) (float64, bool) { return reading.Value(r.Humidity) }
)
