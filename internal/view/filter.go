// Package view derives the per-interaction listing subsets behind the
// dashboard views. Every function is pure: it reads the base slice, never
// mutates it, and recomputes any data-dependent threshold on each call.
package view

import "github.com/inmodata/pisos-dashboard/internal/model"

// UsersParams selects the "Usuarios" view subset.
type UsersParams struct {
	Province    string
	Transaction model.TransactionType
	// MinPrice/MaxPrice are the user-selected price range. Nil means "use the
	// observed bound of the upstream subset".
	MinPrice *float64
	MaxPrice *float64
}

// ClientsParams selects the "Clientes" view subset.
type ClientsParams struct {
	Transaction model.TransactionType
	// Provinces is the multi-select inclusion set. Empty selects every
	// province present, matching the widget's default.
	Provinces []string
}

// Bounds is the selectable price range: the observed min/max of the subset
// filtered by province and transaction type alone. The {0, 1} fallback for an
// empty subset mirrors the original slider defaults.
type Bounds struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// PriceBounds computes slider bounds over a subset.
func PriceBounds(listings []model.Listing) Bounds {
	if len(listings) == 0 {
		return Bounds{Min: 0, Max: 1}
	}
	b := Bounds{Min: listings[0].Price, Max: listings[0].Price}
	for _, l := range listings[1:] {
		if l.Price < b.Min {
			b.Min = l.Price
		}
		if l.Price > b.Max {
			b.Max = l.Price
		}
	}
	return b
}

// Users applies the users-view pipeline in its fixed order: province and
// transaction type, then the rent floor, then the user price range. Bounds
// are computed before the range step so the slider always reflects the
// upstream subset.
func Users(listings []model.Listing, p UsersParams, minRent float64) ([]model.Listing, Bounds) {
	subset := filter(listings, func(l model.Listing) bool {
		return l.Province == p.Province && l.Transaction == p.Transaction
	})
	subset = applyRentFloor(subset, p.Transaction, minRent)

	bounds := PriceBounds(subset)

	lo := bounds.Min
	hi := bounds.Max
	if p.MinPrice != nil {
		lo = *p.MinPrice
	}
	if p.MaxPrice != nil {
		hi = *p.MaxPrice
	}
	subset = filter(subset, func(l model.Listing) bool {
		return l.Price >= lo && l.Price <= hi
	})
	return subset, bounds
}

// ClientsBase filters by transaction type and the rent floor. The result
// feeds both the price-per-m² analysis and the per-province correlation
// charts.
func ClientsBase(listings []model.Listing, transaction model.TransactionType, minRent float64) []model.Listing {
	subset := filter(listings, func(l model.Listing) bool {
		return l.Transaction == transaction
	})
	return applyRentFloor(subset, transaction, minRent)
}

// ClientsPriceArea narrows a clients-view base subset for the price-per-m²
// box plot: province multi-select, zero exclusion, then the half-mean floor.
// The floor is the mean of the already-narrowed subset divided by two,
// computed exactly once; when that subset is empty the floor step is skipped.
func ClientsPriceArea(base []model.Listing, provinces []string) []model.Listing {
	subset := base
	if len(provinces) > 0 {
		include := make(map[string]struct{}, len(provinces))
		for _, p := range provinces {
			include[p] = struct{}{}
		}
		subset = filter(subset, func(l model.Listing) bool {
			_, ok := include[l.Province]
			return ok
		})
	}

	subset = filter(subset, func(l model.Listing) bool {
		return l.PricePerArea > 0
	})
	if len(subset) == 0 {
		return subset
	}

	var sum float64
	for _, l := range subset {
		sum += l.PricePerArea
	}
	floor := sum / float64(len(subset)) / 2

	return filter(subset, func(l model.Listing) bool {
		return l.PricePerArea >= floor
	})
}

// ByProvince narrows a subset to a single province (correlation charts).
func ByProvince(listings []model.Listing, province string) []model.Listing {
	return filter(listings, func(l model.Listing) bool {
		return l.Province == province
	})
}

func applyRentFloor(listings []model.Listing, transaction model.TransactionType, minRent float64) []model.Listing {
	if transaction != model.TransactionRent {
		return listings
	}
	return filter(listings, func(l model.Listing) bool {
		return l.Price >= minRent
	})
}

func filter(listings []model.Listing, keep func(model.Listing) bool) []model.Listing {
	out := make([]model.Listing, 0, len(listings))
	for _, l := range listings {
		if keep(l) {
			out = append(out, l)
		}
	}
	return out
}
