package model

// TransactionType distinguishes sale offers from rental offers.
type TransactionType string

const (
	TransactionSale TransactionType = "Sale"
	TransactionRent TransactionType = "Rent"
)

// Listing represents one property record from the cleaned dataset.
type Listing struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Province     string          `json:"province"`
	Transaction  TransactionType `json:"transaction"`
	Price        float64         `json:"price"`
	Area         float64         `json:"area"` // usable floor area in m²
	Rooms        int             `json:"rooms"`
	Baths        int             `json:"baths"`
	Link         string          `json:"link"`
	PricePerArea float64         `json:"price_per_area"` // 0 when area is unknown
}

// Table is the immutable base dataset. Filter steps derive new slices from it
// and never mutate rows in place.
type Table struct {
	Listings []Listing `json:"listings"`
}

// ByID returns the listing with the given id from the base table.
func (t *Table) ByID(id string) (Listing, bool) {
	for _, l := range t.Listings {
		if l.ID == id {
			return l, true
		}
	}
	return Listing{}, false
}

// DistinctProvinces returns the distinct provinces of an arbitrary subset,
// in first-seen order.
func DistinctProvinces(listings []Listing) []string {
	seen := make(map[string]struct{}, 64)
	var out []string
	for _, l := range listings {
		if _, ok := seen[l.Province]; ok {
			continue
		}
		seen[l.Province] = struct{}{}
		out = append(out, l.Province)
	}
	return out
}
