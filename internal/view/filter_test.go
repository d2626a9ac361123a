package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inmodata/pisos-dashboard/internal/model"
)

const minRent = 300

func sale(id, province string, price, area float64) model.Listing {
	l := model.Listing{ID: id, Province: province, Transaction: model.TransactionSale, Price: price, Area: area}
	if area > 0 {
		l.PricePerArea = price / area
	}
	return l
}

func rent(id, province string, price, area float64) model.Listing {
	l := sale(id, province, price, area)
	l.Transaction = model.TransactionRent
	return l
}

func TestUsers_RentFloor(t *testing.T) {
	listings := []model.Listing{
		rent("1", "Madrid", 250, 40),
		rent("2", "Madrid", 300, 50),
		rent("3", "Madrid", 800, 70),
		sale("4", "Madrid", 100, 30), // cheap sales are untouched by the floor
	}

	subset, _ := Users(listings, UsersParams{Province: "Madrid", Transaction: model.TransactionRent}, minRent)
	require.Len(t, subset, 2)
	for _, l := range subset {
		assert.GreaterOrEqual(t, l.Price, float64(minRent))
	}

	subset, _ = Users(listings, UsersParams{Province: "Madrid", Transaction: model.TransactionSale}, minRent)
	require.Len(t, subset, 1)
	assert.Equal(t, "4", subset[0].ID)
}

func TestUsers_BoundsBeforeRange(t *testing.T) {
	listings := []model.Listing{
		sale("1", "Madrid", 100000, 100),
		sale("2", "Madrid", 300000, 150),
		sale("3", "Madrid", 500000, 200),
	}

	// Bounds reflect the province/type subset even when the user range
	// narrows the result.
	lo, hi := 150000.0, 400000.0
	subset, bounds := Users(listings, UsersParams{
		Province:    "Madrid",
		Transaction: model.TransactionSale,
		MinPrice:    &lo,
		MaxPrice:    &hi,
	}, minRent)

	assert.Equal(t, Bounds{Min: 100000, Max: 500000}, bounds)
	require.Len(t, subset, 1)
	assert.Equal(t, "2", subset[0].ID)
}

func TestUsers_RangeInclusive(t *testing.T) {
	listings := []model.Listing{
		sale("1", "Madrid", 100000, 100),
		sale("2", "Madrid", 300000, 150),
	}
	lo, hi := 100000.0, 300000.0
	subset, _ := Users(listings, UsersParams{
		Province:    "Madrid",
		Transaction: model.TransactionSale,
		MinPrice:    &lo,
		MaxPrice:    &hi,
	}, minRent)
	assert.Len(t, subset, 2)
}

func TestUsers_EmptySubsetBounds(t *testing.T) {
	subset, bounds := Users(nil, UsersParams{Province: "Madrid", Transaction: model.TransactionSale}, minRent)
	assert.Empty(t, subset)
	assert.Equal(t, Bounds{Min: 0, Max: 1}, bounds)
}

func TestClientsPriceArea_HalfMeanFloor(t *testing.T) {
	// Price/m² values 9, 30, 100, 101: mean 60, floor 30, so 30 survives.
	// A second pass over the survivors would give floor 38.5 and drop it;
	// the floor must come from a single mean computation.
	listings := []model.Listing{
		withPPA(sale("1", "Madrid", 900, 100), 9),
		withPPA(sale("2", "Madrid", 3000, 100), 30),
		withPPA(sale("3", "Madrid", 10000, 100), 100),
		withPPA(sale("4", "Madrid", 10100, 100), 101),
	}

	got := ClientsPriceArea(listings, nil)
	require.Len(t, got, 3)
	ids := []string{got[0].ID, got[1].ID, got[2].ID}
	assert.Equal(t, []string{"2", "3", "4"}, ids)
}

func TestClientsPriceArea_ZeroExcludedBeforeMean(t *testing.T) {
	listings := []model.Listing{
		withPPA(sale("1", "Madrid", 1000, 0), 0), // unknown area
		withPPA(sale("2", "Madrid", 2000, 100), 20),
		withPPA(sale("3", "Madrid", 3000, 100), 20),
	}

	// Zero rows are dropped before the mean; floor = 20/2 = 10.
	got := ClientsPriceArea(listings, nil)
	assert.Len(t, got, 2)
}

func TestClientsPriceArea_EmptySkipsFloor(t *testing.T) {
	listings := []model.Listing{
		withPPA(sale("1", "Madrid", 1000, 0), 0),
	}
	got := ClientsPriceArea(listings, nil)
	assert.Empty(t, got)

	got = ClientsPriceArea(nil, nil)
	assert.Empty(t, got)
}

func TestClientsPriceArea_ProvinceMultiSelect(t *testing.T) {
	listings := []model.Listing{
		withPPA(sale("1", "Madrid", 1000, 100), 10),
		withPPA(sale("2", "Barcelona", 1000, 100), 10),
		withPPA(sale("3", "Sevilla", 1000, 100), 10),
	}

	got := ClientsPriceArea(listings, []string{"Madrid", "Sevilla"})
	require.Len(t, got, 2)
	assert.Equal(t, "Madrid", got[0].Province)
	assert.Equal(t, "Sevilla", got[1].Province)

	// Empty selection means every province, matching the widget default.
	got = ClientsPriceArea(listings, nil)
	assert.Len(t, got, 3)
}

func TestClientsBase_TypeAndRentFloor(t *testing.T) {
	listings := []model.Listing{
		rent("1", "Madrid", 200, 40),
		rent("2", "Madrid", 500, 50),
		sale("3", "Madrid", 100000, 100),
	}

	got := ClientsBase(listings, model.TransactionRent, minRent)
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)

	got = ClientsBase(listings, model.TransactionSale, minRent)
	require.Len(t, got, 1)
	assert.Equal(t, "3", got[0].ID)
}

func TestByProvince(t *testing.T) {
	listings := []model.Listing{
		sale("1", "Madrid", 1, 1),
		sale("2", "Barcelona", 1, 1),
	}
	got := ByProvince(listings, "Barcelona")
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)
}

func withPPA(l model.Listing, ppa float64) model.Listing {
	l.PricePerArea = ppa
	return l
}
