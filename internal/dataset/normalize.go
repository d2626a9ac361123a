package dataset

import (
	"math"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/inmodata/pisos-dashboard/internal/model"
)

var titleCaser = cases.Title(language.Spanish)

// normalizeRow applies the post-load normalization: province title-cased per
// word, transaction type mapped to the Sale/Rent domain values, and price per
// m² derived when the source column is absent. Division by zero or an unknown
// area coerces the derived value to zero rather than leaving it undefined.
func normalizeRow(rec row, hasPricePerArea bool) model.Listing {
	l := model.Listing{
		ID:          strings.TrimSpace(rec.ID),
		Title:       strings.TrimSpace(rec.Title),
		Province:    titleCaser.String(strings.TrimSpace(rec.Province)),
		Transaction: normalizeTransaction(rec.Transaction),
		Price:       rec.Price,
		Area:        rec.Area,
		Rooms:       rec.Rooms,
		Baths:       rec.Baths,
		Link:        strings.TrimSpace(rec.Link),
	}

	if hasPricePerArea {
		l.PricePerArea = rec.PricePerArea
	} else if l.Area > 0 {
		l.PricePerArea = l.Price / l.Area
	}
	if l.PricePerArea < 0 || math.IsNaN(l.PricePerArea) || math.IsInf(l.PricePerArea, 0) {
		l.PricePerArea = 0
	}
	return l
}

// normalizeTransaction capitalizes the raw value and maps the dataset's
// Spanish labels onto the domain transaction types.
func normalizeTransaction(raw string) model.TransactionType {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch s {
	case "venta", "sale":
		return model.TransactionSale
	case "alquiler", "rent":
		return model.TransactionRent
	}
	if s == "" {
		return ""
	}
	return model.TransactionType(strings.ToUpper(s[:1]) + s[1:])
}
