// Package reading holds the telemetry sample model and the retained set:
// the deduplicated, time-bounded collection every derived view is computed
// from.
package reading

import (
	"encoding/json"
	"math"
	"strconv"
)

// Reading is one telemetry sample from a sensor channel. Measurement
// fields are pointers: nil means the sensor reported no value at this
// instant, which is not the same as zero.
type Reading struct {
	ID          string   `json:"id,omitempty"`
	Channel     string   `json:"channel"`
	Timestamp   int64    `json:"timestamp"` // milliseconds since epoch
	CO2         *float64 `json:"co2,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
	Humidity    *float64 `json:"humidity,omitempty"`
	Mode        *int     `json:"mode,omitempty"`
}

// Identity returns the dedup key: the explicit id when present, else a
// channel+timestamp composite.
func (r Reading) Identity() string {
	if r.ID != "" {
		return r.ID
	}

	return r.Channel + "@" + strconv.FormatInt(r.Timestamp, 10)
}

// wireReading mirrors Reading on the fetch payload, accepting the legacy
// "temp" field name still emitted by older firmware.
type wireReading struct {
	ID          string   `json:"id"`
	Channel     string   `json:"channel"`
	Timestamp   int64    `json:"timestamp"`
	CO2         *float64 `json:"co2"`
	Temperature *float64 `json:"temperature"`
	Temp        *float64 `json:"temp"`
	Humidity    *float64 `json:"humidity"`
	Mode        *int     `json:"mode"`
}

// UnmarshalJSON decodes a reading, folding the legacy "temp" field into
// Temperature when the current name is absent.
func (r *Reading) UnmarshalJSON(data []byte) error {
	var w wireReading
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	r.ID = w.ID
	r.Channel = w.Channel
	r.Timestamp = w.Timestamp
	r.CO2 = w.CO2
	r.Temperature = w.Temperature
	if r.Temperature == nil {
		r.Temperature = w.Temp
	}
	r.Humidity = w.Humidity
	r.Mode = w.Mode

	return nil
}

// DecodeBatch parses a JSON array of readings as delivered by one fetch.
func DecodeBatch(data []byte) ([]Reading, error) {
	var batch []Reading
	if err := json.Unmarshal(data, &batch); err != nil {
		return nil, err
	}

	return batch, nil
}

// Value dereferences an optional measurement, reporting whether a usable
// number is present. NaN counts as absent.
func Value(v *float64) (float64, bool) {
	if v == nil || math.IsNaN(*v) {
		return 0, false
	}

	return *v, true
}
