package reports

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	apperrors "github.com/soundwatch/soundwatch-api/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository is the Report Store: durable storage and retrieval of
// NoiseReport records with predicate filtering and spatial queries.
type Repository struct {
	collection *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	return &Repository{
		collection: db.Collection("reports"),
	}
}

// EnsureIndexes creates the 2dsphere index backing NearLocation queries.
// Safe to call on every startup; Mongo treats it as a no-op when present.
func (r *Repository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "geoLocation", Value: "2dsphere"}},
	})
	if err != nil {
		return fmt.Errorf("create 2dsphere index: %w", err)
	}
	return nil
}

// Create validates the input and persists one new report. The server
// assigns the ID and CreatedAt; geoLocation is derived from the location
// coordinates when present, longitude-first.
func (r *Repository) Create(ctx context.Context, input *NoiseReportInput) (*NoiseReport, error) {
	if err := ValidateInput(input); err != nil {
		return nil, err
	}

	report := &NoiseReport{
		MediaURL:      input.MediaURL,
		MediaPublicID: input.MediaPublicID,
		MediaType:     input.MediaType,
		Reason:        input.Reason,
		Comment:       input.Comment,
		Location:      input.Location,
		GeoLocation:   DeriveGeoPoint(input.Location),
		CreatedAt:     time.Now().UTC(),
	}

	result, err := r.collection.InsertOne(ctx, report)
	if err != nil {
		return nil, fmt.Errorf("%w: insert report: %v", apperrors.ErrStorage, err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		report.ID = oid
	}
	return report, nil
}

// List returns reports matching the filter along with the total match
// count. A reason filter keeps case-sensitive substring matches. Limit 0
// returns the full result set; insertion order is not guaranteed.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]NoiseReport, int64, error) {
	query := listQuery(filter)

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: count reports: %v", apperrors.ErrStorage, err)
	}

	findOpts := options.Find()
	if filter.Limit > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		findOpts.SetSkip(int64((page - 1) * filter.Limit))
		findOpts.SetLimit(int64(filter.Limit))
	}

	cursor, err := r.collection.Find(ctx, query, findOpts)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: find reports: %v", apperrors.ErrStorage, err)
	}
	defer cursor.Close(ctx)

	reports := []NoiseReport{}
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, 0, fmt.Errorf("%w: decode reports: %v", apperrors.ErrStorage, err)
	}
	return reports, total, nil
}

// listQuery builds the List filter document. Reason matching is a
// case-sensitive substring match, so the literal text is regex-quoted.
func listQuery(filter ListFilter) bson.M {
	query := bson.M{}
	if filter.Reason != "" {
		query["reason"] = bson.M{"$regex": regexp.QuoteMeta(filter.Reason)}
	}
	return query
}

// NearLocation returns reports whose geoLocation lies within
// maxDistanceMeters of the given point, nearest first.
func (r *Repository) NearLocation(ctx context.Context, longitude, latitude, maxDistanceMeters float64) ([]NoiseReport, error) {
	if latitude < -90 || latitude > 90 {
		return nil, fmt.Errorf("%w: latitude must be between -90 and 90", apperrors.ErrValidation)
	}
	if longitude < -180 || longitude > 180 {
		return nil, fmt.Errorf("%w: longitude must be between -180 and 180", apperrors.ErrValidation)
	}
	if maxDistanceMeters <= 0 {
		return nil, fmt.Errorf("%w: maxDistance must be positive", apperrors.ErrValidation)
	}

	query := bson.M{
		"geoLocation": bson.M{
			"$near": bson.M{
				"$geometry":    NewGeoPoint(longitude, latitude),
				"$maxDistance": maxDistanceMeters,
			},
		},
	}

	cursor, err := r.collection.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: near query: %v", apperrors.ErrStorage, err)
	}
	defer cursor.Close(ctx)

	reports := []NoiseReport{}
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, fmt.Errorf("%w: decode reports: %v", apperrors.ErrStorage, err)
	}
	return reports, nil
}

// GetByID looks up a single report
func (r *Repository) GetByID(ctx context.Context, id primitive.ObjectID) (*NoiseReport, error) {
	var report NoiseReport
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&report)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: report %s", apperrors.ErrNotFound, id.Hex())
		}
		return nil, fmt.Errorf("%w: get report: %v", apperrors.ErrStorage, err)
	}
	return &report, nil
}

// Delete removes a report. This is an administrative capability, not part
// of the submission flow; records are otherwise write-once.
func (r *Repository) Delete(ctx context.Context, id primitive.ObjectID) (*NoiseReport, error) {
	var report NoiseReport
	err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&report)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: report %s", apperrors.ErrNotFound, id.Hex())
		}
		return nil, fmt.Errorf("%w: delete report: %v", apperrors.ErrStorage, err)
	}
	return &report, nil
}
