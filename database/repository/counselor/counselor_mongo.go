package counselorRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mindhaven/database"
	"mindhaven/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCounselorRepo implements CounselorRepository using MongoDB.
type MongoCounselorRepo struct {
	coll *mongo.Collection
}

// NewMongoCounselorRepo creates a new instance of CounselorRepository using MongoDB.
func NewMongoCounselorRepo() CounselorRepository {
	return &MongoCounselorRepo{coll: database.Collection("users")}
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// GetByID retrieves a counselor by id. Documents without the counselor
// role are reported as not found rather than leaked.
func (r *MongoCounselorRepo) GetByID(id string) (*models.Counselor, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id, "role": models.RoleCounselor}
	var counselor models.Counselor
	if err := r.coll.FindOne(ctx, filter).Decode(&counselor); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch counselor with id %s: %w", id, err)
	}
	return &counselor, nil
}

// ListApproved returns approved counselors for the public directory.
func (r *MongoCounselorRepo) ListApproved(filter models.CounselorFilter) ([]models.Counselor, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	query := bson.M{"role": models.RoleCounselor, "isApproved": true}
	if filter.Specialization != "" {
		query["specialization"] = bson.M{"$regex": filter.Specialization, "$options": "i"}
	}
	if filter.MinExperience > 0 {
		query["experience"] = bson.M{"$gte": filter.MinExperience}
	}

	proj := bson.M{
		"id": 1, "name": 1, "email": 1, "profileImage": 1,
		"role": 1, "specialization": 1, "experience": 1, "isApproved": 1,
	}
	cursor, err := r.coll.Find(ctx, query, options.Find().
		SetProjection(proj).
		SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list counselors: %w", err)
	}
	defer cursor.Close(ctx)

	var counselors []models.Counselor
	if err := cursor.All(ctx, &counselors); err != nil {
		return nil, fmt.Errorf("failed to decode counselors: %w", err)
	}
	return counselors, nil
}

// GetAvailability returns the counselor's declared availability mapping.
func (r *MongoCounselorRepo) GetAvailability(counselorID string) (models.Availability, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": counselorID, "role": models.RoleCounselor}
	opts := options.FindOne().SetProjection(bson.M{"availability": 1})

	var counselor models.Counselor
	if err := r.coll.FindOne(ctx, filter, opts).Decode(&counselor); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch availability for %s: %w", counselorID, err)
	}
	if counselor.Availability == nil {
		return models.Availability{}, nil
	}
	return counselor.Availability, nil
}

// ReplaceAvailability overwrites the availability field (full replace, not merge).
func (r *MongoCounselorRepo) ReplaceAvailability(counselorID string, avail models.Availability) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": counselorID, "role": models.RoleCounselor}
	update := bson.M{"$set": bson.M{
		"availability": avail,
		"updatedAt":    time.Now(),
	}}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to replace availability for %s: %w", counselorID, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
