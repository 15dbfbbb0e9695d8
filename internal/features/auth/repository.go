package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/soundwatch/soundwatch-api/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository struct {
	collection *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	return &Repository{
		collection: db.Collection("users"),
	}
}

func (r *Repository) Create(ctx context.Context, user *User) error {
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	if user.Role == "" {
		user.Role = "user"
	}

	result, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: email already registered", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("%w: insert user: %v", apperrors.ErrStorage, err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return nil
}

// FindByEmail returns nil, nil when no user exists with the given email
func (r *Repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: find user: %v", apperrors.ErrStorage, err)
	}
	return &user, nil
}

func (r *Repository) FindByID(ctx context.Context, id string) (*User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user id", apperrors.ErrValidation)
	}

	var user User
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: find user: %v", apperrors.ErrStorage, err)
	}
	return &user, nil
}

// MarkVerified flips the verified flag for the user holding the given
// verification token and clears the token.
func (r *Repository) MarkVerified(ctx context.Context, verificationToken string) (*User, error) {
	var user User
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"verificationToken": verificationToken},
		bson.M{
			"$set":   bson.M{"verified": true, "updatedAt": time.Now().UTC()},
			"$unset": bson.M{"verificationToken": ""},
		},
	).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: verification token", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("%w: verify user: %v", apperrors.ErrStorage, err)
	}
	user.Verified = true
	return &user, nil
}

func (r *Repository) GetAll(ctx context.Context) ([]User, error) {
	return r.findUsers(ctx, bson.M{})
}

// GetAllByRole returns every account carrying the given role
func (r *Repository) GetAllByRole(ctx context.Context, role string) ([]User, error) {
	return r.findUsers(ctx, bson.M{"role": role})
}

func (r *Repository) CountByRole(ctx context.Context, role string) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"role": role})
	if err != nil {
		return 0, fmt.Errorf("%w: count users: %v", apperrors.ErrStorage, err)
	}
	return count, nil
}

func (r *Repository) findUsers(ctx context.Context, query bson.M) ([]User, error) {
	cursor, err := r.collection.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: find users: %v", apperrors.ErrStorage, err)
	}
	defer cursor.Close(ctx)

	users := []User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("%w: decode users: %v", apperrors.ErrStorage, err)
	}
	return users, nil
}

// EnsureIndexes creates the unique index on email
func (r *Repository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create email index: %w", err)
	}
	return nil
}
