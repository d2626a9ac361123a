// Package compare builds the side-by-side comparison of two listings.
// Resolution runs against the unfiltered base table, so a selection stays
// valid even after the view's filters change underneath it.
package compare

import (
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/inmodata/pisos-dashboard/internal/model"
)

// Row is one shared attribute with both listings' values.
type Row struct {
	Attribute string `json:"attribute"`
	A         string `json:"a"`
	B         string `json:"b"`
}

// Comparison is the transposed two-column attribute table.
type Comparison struct {
	IDA  string `json:"id_a"`
	IDB  string `json:"id_b"`
	Rows []Row  `json:"rows"`
}

// Resolve looks up both ids in the base table and returns the comparison.
// Selecting the same id twice is not an error; the columns are simply
// identical. An unknown id is the only failure.
func Resolve(table *model.Table, idA, idB string) (*Comparison, error) {
	a, ok := table.ByID(idA)
	if !ok {
		return nil, eris.Errorf("compare: unknown listing id %q", idA)
	}
	b, ok := table.ByID(idB)
	if !ok {
		return nil, eris.Errorf("compare: unknown listing id %q", idB)
	}

	return &Comparison{
		IDA: a.ID,
		IDB: b.ID,
		Rows: []Row{
			{Attribute: "title", A: a.Title, B: b.Title},
			{Attribute: "price", A: formatFloat(a.Price), B: formatFloat(b.Price)},
			{Attribute: "rooms", A: strconv.Itoa(a.Rooms), B: strconv.Itoa(b.Rooms)},
			{Attribute: "area", A: formatFloat(a.Area), B: formatFloat(b.Area)},
			{Attribute: "baths", A: strconv.Itoa(a.Baths), B: strconv.Itoa(b.Baths)},
			{Attribute: "province", A: a.Province, B: b.Province},
		},
	}, nil
}

// LabelIndex maps display titles to listing ids for clients that still select
// by label. Duplicate titles resolve last-write-wins, matching the original
// widget's behavior; ids are the preferred selection key.
func LabelIndex(listings []model.Listing) map[string]string {
	idx := make(map[string]string, len(listings))
	for _, l := range listings {
		idx[l.Title] = l.ID
	}
	return idx
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
