package service

import (
	"net/url"

	"github.com/Dtgosha/est92-resort2/internal/booking"
	"github.com/Dtgosha/est92-resort2/internal/catalog"
)

// Prefill seeds initial form state from request parameters. It is a
// presentation-layer convenience and takes no part in the lifecycle.
type Prefill struct {
	Kind   booking.Kind
	Series catalog.Series
	RoomID string
}

// ResolvePrefill picks the initial booking kind, series and room from
// query parameters. service=restaurant|conference select those kinds;
// otherwise the kind is room and the first matching room parameter wins,
// in priority order Troom, Sroom, Vroom, Eroom, then the generic type
// parameter (series only), then the T-series default.
func ResolvePrefill(params url.Values) Prefill {
	switch params.Get("service") {
	case "restaurant":
		return Prefill{Kind: booking.KindRestaurant}
	case "conference":
		return Prefill{Kind: booking.KindConference}
	}

	roomParams := []struct {
		name   string
		series catalog.Series
	}{
		{"Troom", catalog.SeriesT},
		{"Sroom", catalog.SeriesS},
		{"Vroom", catalog.SeriesV},
		{"Eroom", catalog.SeriesE},
	}
	for _, p := range roomParams {
		if id := params.Get(p.name); id != "" {
			return Prefill{Kind: booking.KindRoom, Series: p.series, RoomID: id}
		}
	}

	if t := params.Get("type"); t != "" {
		return Prefill{Kind: booking.KindRoom, Series: catalog.Series(t)}
	}
	return Prefill{Kind: booking.KindRoom, Series: catalog.SeriesT}
}
