package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCentroid_Madrid(t *testing.T) {
	pt, ok := Centroid("Madrid")
	require.True(t, ok)
	assert.InDelta(t, 40.4168, pt.Y(), 1e-9)
	assert.InDelta(t, -3.7038, pt.X(), 1e-9)
}

func TestCentroid_DiacriticsInsensitive(t *testing.T) {
	accented, ok := Centroid("Almería")
	require.True(t, ok)
	plain, ok := Centroid("almeria")
	require.True(t, ok)
	assert.Equal(t, plain.FlatCoords(), accented.FlatCoords())

	_, ok = Centroid("A Coruña")
	assert.True(t, ok)
}

func TestCentroid_Unmatched(t *testing.T) {
	_, ok := Centroid("Atlantis")
	assert.False(t, ok)
}

func TestNormalizeKey(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Madrid", "madrid"},
		{"  Santa Cruz  De Tenerife ", "santa cruz de tenerife"},
		{"Castellón/Castelló", "castellon castello"},
		{"Álava-Araba", "alava araba"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeKey(tc.in), "input %q", tc.in)
	}
}
