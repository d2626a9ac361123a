// Package dataset loads the cleaned listings CSV into an immutable in-memory
// table. The loader caches the parsed table for the life of the process;
// Invalidate drops the cache if a live reload is ever needed.
package dataset

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/inmodata/pisos-dashboard/internal/model"
)

// requiredColumns are the normalized header names the CSV must carry.
// "precio por m²" is optional and derived when absent.
var requiredColumns = []string{
	"id", "título", "provincia", "venta/alquiler", "precio",
	"superficie útil", "habitaciones", "baños", "enlace",
}

const pricePerAreaColumn = "precio por m²"

// row mirrors one CSV record with the original Spanish headers.
type row struct {
	ID           string  `csv:"id"`
	Title        string  `csv:"título"`
	Province     string  `csv:"provincia"`
	Transaction  string  `csv:"venta/alquiler"`
	Price        float64 `csv:"precio"`
	Area         float64 `csv:"superficie útil"`
	Rooms        int     `csv:"habitaciones"`
	Baths        int     `csv:"baños"`
	Link         string  `csv:"enlace"`
	PricePerArea float64 `csv:"precio por m²"`
}

// LoadReport summarizes a completed load for inspection.
type LoadReport struct {
	Rows             int  `json:"rows"`
	SaleCount        int  `json:"sale_count"`
	RentCount        int  `json:"rent_count"`
	Provinces        int  `json:"provinces"`
	DerivedColumn    bool `json:"derived_price_per_area"`
	ZeroPricePerArea int  `json:"zero_price_per_area_rows"`
}

// Loader reads and caches the listings table. Construct one at process start
// and share it; the parse runs at most once per cache generation even under
// concurrent first requests.
type Loader struct {
	path  string
	delim rune

	mu     sync.RWMutex
	table  *model.Table
	report *LoadReport

	group singleflight.Group
}

// New creates a loader for the given file path and field delimiter.
// An empty delimiter defaults to ";" to match the source dataset.
func New(path, delimiter string) *Loader {
	delim := ';'
	if delimiter != "" {
		delim = []rune(delimiter)[0]
	}
	return &Loader{path: path, delim: delim}
}

// Load returns the cached table, parsing the file on first use.
func (l *Loader) Load(ctx context.Context) (*model.Table, error) {
	l.mu.RLock()
	if t := l.table; t != nil {
		l.mu.RUnlock()
		return t, nil
	}
	l.mu.RUnlock()

	v, err, _ := l.group.Do("load", func() (any, error) {
		if err := ctx.Err(); err != nil {
			return nil, eris.Wrap(err, "dataset: load cancelled")
		}

		table, report, err := l.parse()
		if err != nil {
			return nil, err
		}

		l.mu.Lock()
		l.table = table
		l.report = report
		l.mu.Unlock()

		zap.L().Info("dataset loaded",
			zap.String("path", l.path),
			zap.Int("rows", report.Rows),
			zap.Bool("derived_price_per_area", report.DerivedColumn),
		)
		return table, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.Table), nil
}

// Report returns the load report of the cached table, or nil before Load.
func (l *Loader) Report() *LoadReport {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.report
}

// Invalidate drops the cached table so the next Load re-reads the file.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	l.table = nil
	l.report = nil
	l.mu.Unlock()
	zap.L().Info("dataset cache invalidated", zap.String("path", l.path))
}

func (l *Loader) parse() (*model.Table, *LoadReport, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, nil, eris.Wrap(err, "dataset: open file")
	}
	defer f.Close() //nolint:errcheck

	return parseReader(f, l.delim)
}

func parseReader(r io.Reader, delim rune) (*model.Table, *LoadReport, error) {
	cr := csv.NewReader(r)
	cr.Comma = delim
	cr.FieldsPerRecord = -1

	rawHeader, err := cr.Read()
	if err != nil {
		return nil, nil, eris.Wrap(err, "dataset: read header")
	}

	header := make([]string, len(rawHeader))
	for i, h := range rawHeader {
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}

	// A wrong delimiter collapses the header into one malformed column, which
	// surfaces here as missing required columns.
	if missing := missingColumns(header); len(missing) > 0 {
		return nil, nil, eris.Errorf("dataset: missing required columns %v (check the delimiter)", missing)
	}
	hasPricePerArea := false
	for _, h := range header {
		if h == pricePerAreaColumn {
			hasPricePerArea = true
			break
		}
	}

	dec, err := csvutil.NewDecoder(cr, header...)
	if err != nil {
		return nil, nil, eris.Wrap(err, "dataset: create decoder")
	}

	report := &LoadReport{DerivedColumn: !hasPricePerArea}
	var listings []model.Listing
	for {
		var rec row
		if err := dec.Decode(&rec); err == io.EOF {
			break
		} else if err != nil {
			return nil, nil, eris.Wrap(err, "dataset: decode row")
		}

		listing := normalizeRow(rec, hasPricePerArea)
		if listing.PricePerArea == 0 {
			report.ZeroPricePerArea++
		}
		switch listing.Transaction {
		case model.TransactionSale:
			report.SaleCount++
		case model.TransactionRent:
			report.RentCount++
		}
		listings = append(listings, listing)
	}

	table := &model.Table{Listings: listings}
	report.Rows = len(listings)
	report.Provinces = len(model.DistinctProvinces(listings))
	return table, report, nil
}

func missingColumns(header []string) []string {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}
	var missing []string
	for _, c := range requiredColumns {
		if !present[c] {
			missing = append(missing, c)
		}
	}
	return missing
}
