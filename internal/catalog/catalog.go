// Package catalog holds the static room inventory and per-series pricing.
package catalog

// Series is one of the four room categories.
type Series string

const (
	SeriesT Series = "T"
	SeriesS Series = "S"
	SeriesE Series = "E"
	SeriesV Series = "V"
)

// AllSeries lists every known series in display order.
var AllSeries = []Series{SeriesT, SeriesS, SeriesE, SeriesV}

// Catalog maps each series to its unit price and room identifiers.
// Immutable after construction.
type Catalog struct {
	prices map[Series]int64 // cents per guest-night
	rooms  map[Series][]string
}

// New builds a catalog from explicit price and room tables. Inputs are copied.
func New(prices map[Series]int64, rooms map[Series][]string) *Catalog {
	c := &Catalog{
		prices: make(map[Series]int64, len(prices)),
		rooms:  make(map[Series][]string, len(rooms)),
	}
	for s, p := range prices {
		c.prices[s] = p
	}
	for s, ids := range rooms {
		c.rooms[s] = append([]string(nil), ids...)
	}
	return c
}

// Default returns the shipped resort catalog.
func Default() *Catalog {
	return New(
		map[Series]int64{
			SeriesT: 1000,
			SeriesS: 3000,
			SeriesE: 3500,
			SeriesV: 4000,
		},
		map[Series][]string{
			SeriesT: {"T1", "T2", "T3", "T4"},
			SeriesS: {"S1", "S2", "S3", "S4", "S5"},
			SeriesE: {"E1", "E2", "E3"},
			SeriesV: {"V1", "V2", "V3", "V4"},
		},
	)
}

// PriceOf returns the unit price in cents for a series.
// Unknown series price as zero; callers treat that as a zero-cost fallback.
func (c *Catalog) PriceOf(s Series) int64 {
	return c.prices[s]
}

// RoomsOf returns the room ids of a series in catalog order,
// or nil for an unknown series.
func (c *Catalog) RoomsOf(s Series) []string {
	ids, ok := c.rooms[s]
	if !ok {
		return nil
	}
	return append([]string(nil), ids...)
}

// SeriesOfRoom derives the series from a room id. The series is the
// first character of the id; an empty id yields an empty series.
func SeriesOfRoom(roomID string) Series {
	if roomID == "" {
		return ""
	}
	return Series(roomID[:1])
}

// HasRoom reports whether roomID is listed in the catalog.
func (c *Catalog) HasRoom(roomID string) bool {
	for _, id := range c.rooms[SeriesOfRoom(roomID)] {
		if id == roomID {
			return true
		}
	}
	return false
}
