package reports

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func float64Ptr(v float64) *float64 { return &v }

func TestDeriveGeoPoint_LongitudeFirst(t *testing.T) {
	loc := &Location{
		Latitude:  float64Ptr(14.5995),
		Longitude: float64Ptr(120.9842),
	}

	point := DeriveGeoPoint(loc)
	require.NotNil(t, point)
	require.Equal(t, "Point", point.Type)
	// GeoJSON is longitude-first, the inverse of Location's field order
	require.Equal(t, []float64{120.9842, 14.5995}, point.Coordinates)
}

func TestDeriveGeoPoint_AbsentCoordinates(t *testing.T) {
	require.Nil(t, DeriveGeoPoint(nil))
	require.Nil(t, DeriveGeoPoint(&Location{}))
	require.Nil(t, DeriveGeoPoint(&Location{Latitude: float64Ptr(14.5)}))
	require.Nil(t, DeriveGeoPoint(&Location{Longitude: float64Ptr(120.9)}))

	// Address alone does not produce a geo point
	require.Nil(t, DeriveGeoPoint(&Location{Address: &Address{City: "Manila"}}))
}

func TestDeriveGeoPoint_ZeroIsAValidCoordinate(t *testing.T) {
	point := DeriveGeoPoint(&Location{
		Latitude:  float64Ptr(0),
		Longitude: float64Ptr(0),
	})
	require.NotNil(t, point)
	require.Equal(t, []float64{0, 0}, point.Coordinates)
}
