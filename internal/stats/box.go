package stats

import (
	"sort"

	"github.com/inmodata/pisos-dashboard/internal/model"
)

// BoxRow is the five-number summary of price per m² for one province,
// feeding the clients-view box plot.
type BoxRow struct {
	Province string  `json:"province"`
	Count    int     `json:"count"`
	Min      float64 `json:"min"`
	Q1       float64 `json:"q1"`
	Median   float64 `json:"median"`
	Q3       float64 `json:"q3"`
	Max      float64 `json:"max"`
}

// BoxByProvince computes per-province quartiles of price per m², provinces
// sorted alphabetically. Quartiles use linear interpolation between ranks.
func BoxByProvince(listings []model.Listing) []BoxRow {
	groups := make(map[string][]float64)
	for _, l := range listings {
		groups[l.Province] = append(groups[l.Province], l.PricePerArea)
	}

	out := make([]BoxRow, 0, len(groups))
	for province, values := range groups {
		sort.Float64s(values)
		out = append(out, BoxRow{
			Province: province,
			Count:    len(values),
			Min:      values[0],
			Q1:       percentile(values, 0.25),
			Median:   percentile(values, 0.5),
			Q3:       percentile(values, 0.75),
			Max:      values[len(values)-1],
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Province < out[j].Province })
	return out
}

// percentile interpolates linearly between the two nearest ranks of an
// already-sorted slice.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := p * float64(len(sorted)-1)
	lo := int(pos)
	frac := pos - float64(lo)
	if lo+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}
