package reading_test

import (
	"testing"

	"codeberg.org/veland/scrubmon/internal/reading"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func TestMergeIdempotence(t *testing.T) {
	existing := reading.Set{
		{ID: "a", Channel: "before_scrub", Timestamp: 1000, CO2: f(400)},
		{ID: "b", Channel: "after_scrub", Timestamp: 2000, CO2: f(300)},
	}
	batch := []reading.Reading{
		{ID: "b", Channel: "after_scrub", Timestamp: 2000, CO2: f(310)},
		{ID: "c", Channel: "after_scrub", Timestamp: 3000, CO2: f(305)},
	}

	once := reading.Merge(existing, batch, 0)
	twice := reading.Merge(once, batch, 0)

	assert.Equal(t, once, twice, "Merging the same batch twice must be a no-op")
}

func TestMergePruneInvariant(t *testing.T) {
	existing := reading.Set{
		{ID: "old", Channel: "before_scrub", Timestamp: 500},
		{ID: "kept", Channel: "before_scrub", Timestamp: 1500},
	}
	batch := []reading.Reading{
		{ID: "stale", Channel: "after_scrub", Timestamp: 900},
		{ID: "fresh", Channel: "after_scrub", Timestamp: 2000},
	}

	merged := reading.Merge(existing, batch, 1000)

	require.Len(t, merged, 2)
	for _, r := range merged {
		assert.GreaterOrEqual(t, r.Timestamp, int64(1000), "No retained reading may predate the cutoff")
	}
}

func TestMergeIncomingWinsOnCollision(t *testing.T) {
	existing := reading.Set{
		{ID: "a", Channel: "before_scrub", Timestamp: 1000, CO2: f(400)},
	}
	batch := []reading.Reading{
		{ID: "a", Channel: "before_scrub", Timestamp: 1000, CO2: f(450)},
	}

	merged := reading.Merge(existing, batch, 0)

	require.Len(t, merged, 1)
	require.NotNil(t, merged[0].CO2)
	assert.InDelta(t, 450, *merged[0].CO2, 0.001, "Incoming reading must overwrite existing on identity collision")
}

func TestMergeDuplicateWithinBatch(t *testing.T) {
	// Same id twice in one batch: the last arrival wins.
	now := int64(1_700_000_000_000)
	batch := []reading.Reading{
		{ID: "a", Channel: "before_scrub", Timestamp: now - 1000, CO2: f(500)},
		{ID: "a", Channel: "before_scrub", Timestamp: now - 1000, CO2: f(520)},
	}

	merged := reading.Merge(nil, batch, now-30*60*1000)

	require.Len(t, merged, 1, "One reading per identity")
	require.NotNil(t, merged[0].CO2)
	assert.InDelta(t, 520, *merged[0].CO2, 0.001)
}

func TestMergeEmptyIncomingPrunesOnly(t *testing.T) {
	existing := reading.Set{
		{ID: "old", Channel: "before_scrub", Timestamp: 100},
		{ID: "kept", Channel: "before_scrub", Timestamp: 900},
	}

	merged := reading.Merge(existing, nil, 500)

	require.Len(t, merged, 1)
	assert.Equal(t, "kept", merged[0].ID)
}

func TestMergeAllExistingAgedOut(t *testing.T) {
	existing := reading.Set{
		{ID: "old1", Channel: "before_scrub", Timestamp: 100},
		{ID: "old2", Channel: "before_scrub", Timestamp: 200},
	}
	batch := []reading.Reading{
		{ID: "new", Channel: "after_scrub", Timestamp: 5000},
	}

	merged := reading.Merge(existing, batch, 1000)

	require.Len(t, merged, 1)
	assert.Equal(t, "new", merged[0].ID)
}

func TestMergeOrdering(t *testing.T) {
	batch := []reading.Reading{
		{ID: "z", Channel: "after_scrub", Timestamp: 2000},
		{ID: "a", Channel: "before_scrub", Timestamp: 2000},
		{ID: "m", Channel: "before_scrub", Timestamp: 1000},
	}

	merged := reading.Merge(nil, batch, 0)

	require.Len(t, merged, 3)
	assert.Equal(t, "m", merged[0].ID, "Ascending by timestamp")
	assert.Equal(t, "a", merged[1].ID, "Equal timestamps ordered by identity")
	assert.Equal(t, "z", merged[2].ID)
}

func TestWindow(t *testing.T) {
	set := reading.Merge(nil, []reading.Reading{
		{ID: "a", Channel: "c", Timestamp: 100},
		{ID: "b", Channel: "c", Timestamp: 200},
		{ID: "c", Channel: "c", Timestamp: 300},
		{ID: "d", Channel: "c", Timestamp: 400},
	}, 0)

	windowed := set.Window(200, 300)

	require.Len(t, windowed, 2, "Window bounds are inclusive on both ends")
	assert.Equal(t, "b", windowed[0].ID)
	assert.Equal(t, "c", windowed[1].ID)

	assert.Empty(t, set.Window(500, 600))
	assert.Empty(t, set.Window(300, 200))
}
