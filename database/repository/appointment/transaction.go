package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"mindhaven/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ReplaceAvailabilityGuarded applies a counselor's availability replacement
// inside a single transaction. The holding appointments are re-read within
// the session so a booking created between the caller's check and this
// write still aborts the replace; the check-then-act gap of the original
// design does not exist here.
func (r *MongoAppointmentRepo) ReplaceAvailabilityGuarded(
	ctx context.Context,
	counselorID, fromDate string,
	avail models.Availability,
	validate func([]models.Appointment) error,
) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		cursor, err := r.coll.Find(sc, holdingFutureFilter(counselorID, fromDate),
			options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
		if err != nil {
			return fmt.Errorf("failed to list holding appointments: %w", err)
		}
		var holding []models.Appointment
		if err := cursor.All(sc, &holding); err != nil {
			return fmt.Errorf("failed to decode holding appointments: %w", err)
		}

		if err := validate(holding); err != nil {
			return err
		}

		update := bson.M{"$set": bson.M{
			"availability": avail,
			"updatedAt":    time.Now(),
		}}
		res, err := r.userColl.UpdateOne(sc, bson.M{"id": counselorID}, update)
		if err != nil {
			return fmt.Errorf("failed to replace availability: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrNotFound
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return err
	}

	return nil
}
