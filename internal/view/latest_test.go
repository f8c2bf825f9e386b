package view_test

import (
	"testing"

	"codeberg.org/veland/scrubmon/internal/reading"
	"codeberg.org/veland/scrubmon/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatestPerChannelFallback(t *testing.T) {
	snapshots := view.LatestPerChannel(nil, view.TrackedChannels())

	require.Len(t, snapshots, len(view.TrackedChannels()))
	for _, ch := range view.TrackedChannels() {
		snap, ok := snapshots[ch.Name]
		require.True(t, ok, "Every requested channel gets a record, never missing")
		assert.Equal(t, ch.Name, snap.Channel)
		assert.Nil(t, snap.Timestamp, "Fallback snapshot has a nil timestamp")
		assert.Nil(t, snap.CO2)
		assert.Nil(t, snap.Temperature)
		assert.Nil(t, snap.Humidity)
		assert.Nil(t, snap.Mode)
	}
}

func TestLatestPerChannelAliasUnification(t *testing.T) {
	set := buildSet(t, []reading.Reading{
		{ID: "a", Channel: "interlock_4c", Timestamp: 1000, Mode: m(1)},
		{ID: "b", Channel: "4", Timestamp: 2000, Mode: m(3)},
	})

	snapshots := view.LatestPerChannel(set, view.TrackedChannels())

	snap := snapshots[view.ControlChannel]
	require.NotNil(t, snap.Timestamp, "Aliased channels merge into one logical bucket")
	assert.Equal(t, int64(2000), *snap.Timestamp)
	require.NotNil(t, snap.Mode)
	assert.Equal(t, 3, *snap.Mode)
}

func TestLatestPerChannelKeepsNewest(t *testing.T) {
	set := buildSet(t, []reading.Reading{
		{ID: "a", Channel: "before_scrub", Timestamp: 1000, CO2: f(500)},
		{ID: "b", Channel: "before_scrub", Timestamp: 3000, CO2: f(520)},
		{ID: "c", Channel: "before_scrub", Timestamp: 2000, CO2: f(510)},
	})

	snapshots := view.LatestPerChannel(set, view.TrackedChannels())

	snap := snapshots["before_scrub"]
	require.NotNil(t, snap.Timestamp)
	assert.Equal(t, int64(3000), *snap.Timestamp)
	require.NotNil(t, snap.CO2)
	assert.InDelta(t, 520, *snap.CO2, 0.001)
}

func TestLatestPerChannelIgnoresUntracked(t *testing.T) {
	set := buildSet(t, []reading.Reading{
		{ID: "a", Channel: "mystery", Timestamp: 1000, CO2: f(900)},
	})

	snapshots := view.LatestPerChannel(set, view.TrackedChannels())

	_, ok := snapshots["mystery"]
	assert.False(t, ok, "Only requested channels appear in the result")
}

func TestModeText(t *testing.T) {
	mode := 1
	ts := int64(1000)
	assert.Equal(t, "Mode: Scrubbing", view.ModeText(view.Snapshot{Timestamp: &ts, Mode: &mode}))

	unknown := 9
	assert.Equal(t, "Mode: -", view.ModeText(view.Snapshot{Timestamp: &ts, Mode: &unknown}),
		"A mode outside the label table renders as dash")

	assert.Equal(t, "Mode: -", view.ModeText(view.Snapshot{}), "No mode renders as dash")
}

func TestModeColor(t *testing.T) {
	for mode := 0; mode <= 5; mode++ {
		color, ok := view.ModeColor(mode)
		require.True(t, ok, "Modes 0-5 are classified")
		assert.NotEmpty(t, color)
	}

	_, ok := view.ModeColor(6)
	assert.False(t, ok)
	_, ok = view.ModeColor(-1)
	assert.False(t, ok)
}
