package reports

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MediaType classifies the evidence attached to a noise report
type MediaType string

const (
	MediaTypeAudio MediaType = "audio"
	MediaTypeVideo MediaType = "video"
)

// IsValid reports whether the media type is one of the allowed values
func (m MediaType) IsValid() bool {
	return m == MediaTypeAudio || m == MediaTypeVideo
}

// Address is a structured place description attached by the mobile client's
// reverse geocoder. All fields are optional; an address may be present
// without coordinates and vice versa.
type Address struct {
	Name       string `bson:"name,omitempty" json:"name,omitempty"`
	Street     string `bson:"street,omitempty" json:"street,omitempty"`
	City       string `bson:"city,omitempty" json:"city,omitempty"`
	Region     string `bson:"region,omitempty" json:"region,omitempty"`
	Country    string `bson:"country,omitempty" json:"country,omitempty"`
	PostalCode string `bson:"postalCode,omitempty" json:"postalCode,omitempty"`
}

// Location is the client-reported position of the disturbance. Latitude and
// longitude are pointers so "coordinate absent" is distinguishable from 0,0.
type Location struct {
	Latitude  *float64 `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude *float64 `bson:"longitude,omitempty" json:"longitude,omitempty"`
	Address   *Address `bson:"address,omitempty" json:"address,omitempty"`
	Timestamp int64    `bson:"timestamp,omitempty" json:"timestamp,omitempty"`
}

// HasCoordinates reports whether both latitude and longitude are present
func (l *Location) HasCoordinates() bool {
	return l != nil && l.Latitude != nil && l.Longitude != nil
}

// NoiseReport is the persisted record of one noise complaint submission.
// Records are write-once: no operation mutates them after creation.
type NoiseReport struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	MediaURL      string             `bson:"mediaUrl" json:"mediaUrl"`
	MediaPublicID string             `bson:"mediaPublicId,omitempty" json:"-"`
	MediaType     MediaType          `bson:"mediaType" json:"mediaType"`
	Reason        string             `bson:"reason" json:"reason"`
	Comment       string             `bson:"comment,omitempty" json:"comment"`
	Location      *Location          `bson:"location,omitempty" json:"location,omitempty"`
	GeoLocation   *GeoPoint          `bson:"geoLocation,omitempty" json:"geoLocation,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

// NoiseReportInput is the payload the store accepts for creation. The store
// assigns ID, CreatedAt, and the derived GeoLocation.
type NoiseReportInput struct {
	MediaURL      string
	MediaPublicID string
	MediaType     MediaType
	Reason        string
	Comment       string
	Location      *Location
}

// ListFilter narrows List results. Reason keeps records whose reason
// contains the given substring (case-sensitive).
type ListFilter struct {
	Reason string
	Page   int
	Limit  int
}
