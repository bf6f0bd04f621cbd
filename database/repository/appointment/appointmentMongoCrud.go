// File: database/repository/appointment/appointmentMongoCrud.go
package appointmentRepo

import (
	"errors"
	"fmt"
	"time"

	"mindhaven/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Create inserts a new appointment document. The partial unique index on
// (counselorId, date, timeSlot) turns a lost race into ErrDuplicateSlot
// instead of a double-booking.
func (r *MongoAppointmentRepo) Create(appt *models.Appointment) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	appt.CreatedAt = now
	appt.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, appt)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateSlot
		}
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

// GetByID retrieves an appointment by its unique ID.
func (r *MongoAppointmentRepo) GetByID(id string) (*models.Appointment, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var appt models.Appointment
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&appt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch appointment with id %s: %w", id, err)
	}
	return &appt, nil
}

// GetOwnedByCounselor retrieves an appointment only if it belongs to the counselor.
func (r *MongoAppointmentRepo) GetOwnedByCounselor(id, counselorID string) (*models.Appointment, error) {
	return r.getOwned(bson.M{"id": id, "counselorId": counselorID})
}

// GetOwnedByClient retrieves an appointment only if it belongs to the client.
func (r *MongoAppointmentRepo) GetOwnedByClient(id, clientID string) (*models.Appointment, error) {
	return r.getOwned(bson.M{"id": id, "clientId": clientID})
}

func (r *MongoAppointmentRepo) getOwned(filter bson.M) (*models.Appointment, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var appt models.Appointment
	if err := r.coll.FindOne(ctx, filter).Decode(&appt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch appointment: %w", err)
	}
	return &appt, nil
}

// Update modifies an existing appointment document.
func (r *MongoAppointmentRepo) Update(appt *models.Appointment) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	appt.UpdatedAt = time.Now()
	filter := bson.M{"id": appt.ID}
	update := bson.M{"$set": appt}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update appointment with id %s: %w", appt.ID, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkReminderSent stamps the reminderSentAt field.
func (r *MongoAppointmentRepo) MarkReminderSent(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	update := bson.M{"$set": bson.M{"reminderSentAt": now, "updatedAt": now}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to mark reminder sent for %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
