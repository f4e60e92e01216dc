package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCatalog_PriceOf(t *testing.T) {
	c := Default()

	tests := []struct {
		series Series
		want   int64
	}{
		{SeriesT, 1000},
		{SeriesS, 3000},
		{SeriesE, 3500},
		{SeriesV, 4000},
		{Series("X"), 0},
		{Series(""), 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, c.PriceOf(tt.series), "series %q", tt.series)
	}
}

func TestCatalog_RoomsOf(t *testing.T) {
	c := Default()

	assert.Equal(t, []string{"S1", "S2", "S3", "S4", "S5"}, c.RoomsOf(SeriesS))
	assert.Nil(t, c.RoomsOf(Series("X")))

	// Callers cannot mutate the catalog through the returned slice.
	rooms := c.RoomsOf(SeriesT)
	rooms[0] = "hacked"
	assert.Equal(t, "T1", c.RoomsOf(SeriesT)[0])
}

func TestCatalog_RoomUniqueness(t *testing.T) {
	c := Default()

	seen := make(map[string]Series)
	for _, s := range AllSeries {
		for _, id := range c.RoomsOf(s) {
			prev, dup := seen[id]
			assert.False(t, dup, "room %s appears in both %s and %s", id, prev, s)
			seen[id] = s
			assert.Equal(t, s, SeriesOfRoom(id))
		}
	}
}

func TestCatalog_HasRoom(t *testing.T) {
	c := Default()

	assert.True(t, c.HasRoom("S3"))
	assert.True(t, c.HasRoom("V4"))
	assert.False(t, c.HasRoom("S9"))
	assert.False(t, c.HasRoom("X1"))
	assert.False(t, c.HasRoom(""))
}
