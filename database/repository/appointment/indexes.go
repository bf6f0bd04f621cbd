// FILE: database/repository/appointment/indexes.go
package appointmentRepo

import (
	"fmt"
	"time"

	"mindhaven/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the appointments collection.
func (r *MongoAppointmentRepo) EnsureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		// Unique index on appointment ID
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// The no-double-booking invariant lives here: at most one active
		// appointment per (counselor, date, timeSlot). Cancelled bookings
		// fall outside the partial filter and free the slot for rebooking.
		{
			Keys: bson.D{
				{Key: "counselorId", Value: 1},
				{Key: "date", Value: 1},
				{Key: "timeSlot", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetName("unique_active_slot").
				SetPartialFilterExpression(bson.M{
					"status": bson.M{"$in": models.ActiveStatuses},
				}),
		},
		// Counselor schedule and resolver queries
		{
			Keys:    bson.D{{Key: "counselorId", Value: 1}, {Key: "date", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("counselor_date_status_idx"),
		},
		// Client booking listings
		{
			Keys:    bson.D{{Key: "clientId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetName("client_date_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create appointment indexes: %w", err)
	}
	return nil
}
