// Package stats computes the aggregates behind the dashboard charts. Every
// computation is a pure function of the subset it is given; thresholds and
// baselines are never carried over from a previous filter state.
package stats

import (
	"sort"

	"github.com/inmodata/pisos-dashboard/internal/geo"
	"github.com/inmodata/pisos-dashboard/internal/model"
)

// Summary holds the scalar values shown alongside each view.
type Summary struct {
	Empty            bool    `json:"empty"`
	Count            int     `json:"count"`
	MinPrice         float64 `json:"min_price"`
	MaxPrice         float64 `json:"max_price"`
	MeanPrice        float64 `json:"mean_price"`
	MeanPricePerArea float64 `json:"mean_price_per_area"`
}

// Summarize computes the scalar summary of a subset. An empty subset yields
// the zero summary with Empty set, never an error.
func Summarize(listings []model.Listing) Summary {
	if len(listings) == 0 {
		return Summary{Empty: true}
	}
	s := Summary{
		Count:    len(listings),
		MinPrice: listings[0].Price,
		MaxPrice: listings[0].Price,
	}
	var priceSum, ppaSum float64
	for _, l := range listings {
		priceSum += l.Price
		ppaSum += l.PricePerArea
		if l.Price < s.MinPrice {
			s.MinPrice = l.Price
		}
		if l.Price > s.MaxPrice {
			s.MaxPrice = l.Price
		}
	}
	n := float64(len(listings))
	s.MeanPrice = priceSum / n
	s.MeanPricePerArea = ppaSum / n
	return s
}

// ProvinceAggregate is one map/table row: listing count and mean price for a
// province, with its centroid when the lookup table has one.
type ProvinceAggregate struct {
	Province  string  `json:"province"`
	Count     int     `json:"count"`
	MeanPrice float64 `json:"mean_price"`
	Located   bool    `json:"located"`
	Lat       float64 `json:"lat,omitempty"`
	Lon       float64 `json:"lon,omitempty"`
}

// ByProvince groups a subset by province with count and mean price, joined to
// the centroid table. Provinces without a centroid keep their aggregate row
// with Located=false; MapRows drops them for the map.
func ByProvince(listings []model.Listing) []ProvinceAggregate {
	type acc struct {
		count int
		sum   float64
	}
	groups := make(map[string]*acc)
	for _, l := range listings {
		g, ok := groups[l.Province]
		if !ok {
			g = &acc{}
			groups[l.Province] = g
		}
		g.count++
		g.sum += l.Price
	}

	out := make([]ProvinceAggregate, 0, len(groups))
	for province, g := range groups {
		row := ProvinceAggregate{
			Province:  province,
			Count:     g.count,
			MeanPrice: g.sum / float64(g.count),
		}
		if pt, ok := geo.Centroid(province); ok {
			row.Located = true
			row.Lon = pt.X()
			row.Lat = pt.Y()
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Province < out[j].Province })
	return out
}

// MapRows keeps only aggregates with a resolved centroid.
func MapRows(rows []ProvinceAggregate) []ProvinceAggregate {
	out := make([]ProvinceAggregate, 0, len(rows))
	for _, r := range rows {
		if r.Located {
			out = append(out, r)
		}
	}
	return out
}

// RoomsAggregate is one bar of the rooms-vs-price chart.
type RoomsAggregate struct {
	Rooms     int     `json:"rooms"`
	Count     int     `json:"count"`
	MeanPrice float64 `json:"mean_price"`
}

// ByRooms computes the mean price per distinct room count, ascending.
func ByRooms(listings []model.Listing) []RoomsAggregate {
	type acc struct {
		count int
		sum   float64
	}
	groups := make(map[int]*acc)
	for _, l := range listings {
		g, ok := groups[l.Rooms]
		if !ok {
			g = &acc{}
			groups[l.Rooms] = g
		}
		g.count++
		g.sum += l.Price
	}

	out := make([]RoomsAggregate, 0, len(groups))
	for rooms, g := range groups {
		out = append(out, RoomsAggregate{
			Rooms:     rooms,
			Count:     g.count,
			MeanPrice: g.sum / float64(g.count),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Rooms < out[j].Rooms })
	return out
}

// ScatterPoint feeds the price-vs-area correlation chart.
type ScatterPoint struct {
	ID    string  `json:"id"`
	Area  float64 `json:"area"`
	Price float64 `json:"price"`
}

// ScatterPriceArea extracts (area, price) pairs from a subset.
func ScatterPriceArea(listings []model.Listing) []ScatterPoint {
	out := make([]ScatterPoint, 0, len(listings))
	for _, l := range listings {
		out = append(out, ScatterPoint{ID: l.ID, Area: l.Area, Price: l.Price})
	}
	return out
}
