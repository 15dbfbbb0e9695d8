package reports

// GeoPoint is a GeoJSON Point backing the 2dsphere index on reports.
// Coordinates are longitude-first per the GeoJSON convention, the inverse
// of Location's latitude-first fields.
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"` // [longitude, latitude]
}

// NewGeoPoint builds a GeoJSON Point from a longitude/latitude pair
func NewGeoPoint(longitude, latitude float64) *GeoPoint {
	return &GeoPoint{
		Type:        "Point",
		Coordinates: []float64{longitude, latitude},
	}
}

// DeriveGeoPoint computes the GeoJSON point for a location. It returns nil
// when either coordinate is absent, so geoLocation exists exactly when the
// client supplied coordinates.
func DeriveGeoPoint(loc *Location) *GeoPoint {
	if !loc.HasCoordinates() {
		return nil
	}
	return NewGeoPoint(*loc.Longitude, *loc.Latitude)
}
