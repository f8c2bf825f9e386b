package view

import "codeberg.org/veland/scrubmon/internal/reading"

// Band is a maximal run of one classified operating mode on the control
// channel, rendered as a colored interval behind every metric chart.
type Band struct {
	From  int64  `json:"from"`
	To    int64  `json:"to"`
	Mode  int    `json:"mode"`
	Color string `json:"color"`
}

// modePalette maps classified modes to overlay colors. Modes outside this
// palette are valid telemetry but draw no band.
var modePalette = map[int]string{
	0: "#9e9e9e", // standby
	1: "#4caf50", // scrubbing
	2: "#2196f3", // regenerating
	3: "#ff9800", // purging
	4: "#ffeb3b", // maintenance
	5: "#f44336", // fault
}

var modeNames = map[int]string{
	0: "Standby",
	1: "Scrubbing",
	2: "Regenerating",
	3: "Purging",
	4: "Maintenance",
	5: "Fault",
}

// ModeColor returns the overlay color for a mode, false when the mode is
// unclassified for banding purposes.
func ModeColor(mode int) (string, bool) {
	c, ok := modePalette[mode]
	return c, ok
}

// ModeName returns the display label for a mode.
func ModeName(mode int) (string, bool) {
	n, ok := modeNames[mode]
	return n, ok
}

// BuildBands segments the control channel inside the window into maximal
// runs of identical classified mode. A reading with no mode, or a mode
// outside the palette, closes any open run. A run still open after the
// last reading is flushed to the window's right edge: the control state is
// assumed to persist until contradicted. Bands come out in time order and
// never overlap.
func BuildBands(set reading.Set, windowStart, windowEnd int64) []Band {
	var bands []Band

	open := false
	var openMode int
	var openStart int64

	emit := func(to int64) {
		bands = append(bands, Band{
			From:  openStart,
			To:    to,
			Mode:  openMode,
			Color: modePalette[openMode],
		})
		open = false
	}

	for _, r := range set.Window(windowStart, windowEnd) {
		if !IsControlChannel(r.Channel) {
			continue
		}

		classified := false
		mode := 0
		if r.Mode != nil {
			if _, ok := modePalette[*r.Mode]; ok {
				classified = true
				mode = *r.Mode
			}
		}

		switch {
		case !classified:
			if open {
				emit(r.Timestamp)
			}
		case !open:
			// No zero-width band: the run is emitted once it ends.
			open = true
			openMode = mode
			openStart = r.Timestamp
		case mode != openMode:
			start := r.Timestamp
			emit(r.Timestamp)
			open = true
			openMode = mode
			openStart = start
		}
	}

	if open {
		emit(windowEnd)
	}

	return bands
}
