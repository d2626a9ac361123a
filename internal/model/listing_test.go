package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableByID(t *testing.T) {
	table := &Table{Listings: []Listing{
		{ID: "1", Title: "Piso"},
		{ID: "2", Title: "Chalet"},
	}}

	l, ok := table.ByID("2")
	require.True(t, ok)
	assert.Equal(t, "Chalet", l.Title)

	_, ok = table.ByID("missing")
	assert.False(t, ok)
}

func TestDistinctProvinces(t *testing.T) {
	listings := []Listing{
		{Province: "Madrid"},
		{Province: "Barcelona"},
		{Province: "Madrid"},
	}
	assert.Equal(t, []string{"Madrid", "Barcelona"}, DistinctProvinces(listings))
	assert.Empty(t, DistinctProvinces(nil))
}
