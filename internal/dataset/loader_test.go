package dataset

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inmodata/pisos-dashboard/internal/model"
)

const sampleCSV = `id;título;provincia;venta/alquiler;precio;superficie útil;habitaciones;baños;enlace
1;Piso céntrico;madrid;venta;100000;100;3;2;https://example.com/1
2;Ático con terraza;barcelona;venta;300000;150;4;2;https://example.com/2
3;Estudio pequeño;madrid;alquiler;500;;1;1;https://example.com/3
`

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "listings.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_NormalizesRows(t *testing.T) {
	loader := New(writeTempCSV(t, sampleCSV), ";")
	table, err := loader.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, table.Listings, 3)

	first := table.Listings[0]
	assert.Equal(t, "Madrid", first.Province)
	assert.Equal(t, model.TransactionSale, first.Transaction)
	assert.Equal(t, "Piso céntrico", first.Title)
	assert.InDelta(t, 1000.0, first.PricePerArea, 1e-9)

	rent := table.Listings[2]
	assert.Equal(t, model.TransactionRent, rent.Transaction)
	// Unknown area coerces the derived column to zero, never NaN.
	assert.Equal(t, 0.0, rent.PricePerArea)
}

func TestLoad_PricePerAreaNeverNegative(t *testing.T) {
	loader := New(writeTempCSV(t, sampleCSV), ";")
	table, err := loader.Load(context.Background())
	require.NoError(t, err)

	for _, l := range table.Listings {
		assert.GreaterOrEqual(t, l.PricePerArea, 0.0)
		if l.Area > 0 {
			assert.InDelta(t, l.Price/l.Area, l.PricePerArea, 1e-9)
		} else {
			assert.Equal(t, 0.0, l.PricePerArea)
		}
	}
}

func TestLoad_HeaderNormalization(t *testing.T) {
	upper := strings.Replace(sampleCSV, "id;título;provincia", "ID; TÍTULO ;Provincia", 1)
	loader := New(writeTempCSV(t, upper), ";")
	table, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Piso céntrico", table.Listings[0].Title)
}

func TestLoad_ExistingPricePerAreaColumnKept(t *testing.T) {
	csv := `id;título;provincia;venta/alquiler;precio;superficie útil;habitaciones;baños;enlace;precio por m²
1;Piso;madrid;venta;100000;100;3;2;x;999
`
	loader := New(writeTempCSV(t, csv), ";")
	table, err := loader.Load(context.Background())
	require.NoError(t, err)

	// The column is used as-is, not recomputed.
	assert.Equal(t, 999.0, table.Listings[0].PricePerArea)
	assert.False(t, loader.Report().DerivedColumn)
}

func TestLoad_WrongDelimiterReportsMissingColumns(t *testing.T) {
	loader := New(writeTempCSV(t, sampleCSV), ",")
	_, err := loader.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required columns")
}

func TestLoad_MissingFile(t *testing.T) {
	loader := New(filepath.Join(t.TempDir(), "nope.csv"), ";")
	_, err := loader.Load(context.Background())
	require.Error(t, err)
}

func TestLoad_CachesUntilInvalidated(t *testing.T) {
	path := writeTempCSV(t, sampleCSV)
	loader := New(path, ";")

	table, err := loader.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, table.Listings, 3)

	// Shrink the file; the cached table is served until invalidation.
	lines := strings.SplitN(sampleCSV, "\n", 3)
	require.NoError(t, os.WriteFile(path, []byte(lines[0]+"\n"+lines[1]+"\n"), 0o644))

	table, err = loader.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, table.Listings, 3, "stale read is the accepted behavior")

	loader.Invalidate()
	table, err = loader.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, table.Listings, 1)
}

func TestLoad_Report(t *testing.T) {
	loader := New(writeTempCSV(t, sampleCSV), ";")
	_, err := loader.Load(context.Background())
	require.NoError(t, err)

	report := loader.Report()
	require.NotNil(t, report)
	assert.Equal(t, 3, report.Rows)
	assert.Equal(t, 2, report.SaleCount)
	assert.Equal(t, 1, report.RentCount)
	assert.Equal(t, 2, report.Provinces)
	assert.True(t, report.DerivedColumn)
	assert.Equal(t, 1, report.ZeroPricePerArea)
}

func TestNormalizeTransaction(t *testing.T) {
	assert.Equal(t, model.TransactionSale, normalizeTransaction(" Venta "))
	assert.Equal(t, model.TransactionRent, normalizeTransaction("ALQUILER"))
	assert.Equal(t, model.TransactionSale, normalizeTransaction("sale"))
	assert.Equal(t, model.TransactionType("Traspaso"), normalizeTransaction("traspaso"))
	assert.Equal(t, model.TransactionType(""), normalizeTransaction(""))
}
