// File: database/repository/appointment/appointmentMongoQueries.go
package appointmentRepo

import (
	"fmt"
	"time"

	"mindhaven/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ExistsActive reports whether an active appointment occupies the exact
// (counselor, date, timeSlot) triple. Advisory only; the unique index
// makes the final call on insert.
func (r *MongoAppointmentRepo) ExistsActive(counselorID, date, timeSlot string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"counselorId": counselorID,
		"date":        date,
		"timeSlot":    timeSlot,
		"status":      bson.M{"$in": models.ActiveStatuses},
	}
	count, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check slot occupancy: %w", err)
	}
	return count > 0, nil
}

// ListActiveByCounselorDate returns active appointments for one counselor
// and date, in slot insertion order of creation.
func (r *MongoAppointmentRepo) ListActiveByCounselorDate(counselorID, date string) ([]models.Appointment, error) {
	filter := bson.M{
		"counselorId": counselorID,
		"date":        date,
		"status":      bson.M{"$in": models.ActiveStatuses},
	}
	return r.list(filter, bson.D{{Key: "createdAt", Value: 1}})
}

// ListHoldingFuture returns pending/scheduled appointments dated fromDate
// or later for the slot mutation guard.
func (r *MongoAppointmentRepo) ListHoldingFuture(counselorID, fromDate string) ([]models.Appointment, error) {
	filter := holdingFutureFilter(counselorID, fromDate)
	return r.list(filter, bson.D{{Key: "date", Value: 1}})
}

func holdingFutureFilter(counselorID, fromDate string) bson.M {
	return bson.M{
		"counselorId": counselorID,
		"status":      bson.M{"$in": models.HoldingStatuses},
		"date":        bson.M{"$gte": fromDate},
	}
}

// ListByCounselor returns all of a counselor's appointments, date ascending.
func (r *MongoAppointmentRepo) ListByCounselor(counselorID string, filter ListFilter) ([]models.Appointment, error) {
	q := bson.M{"counselorId": counselorID}
	applyListFilter(q, filter)
	return r.list(q, bson.D{{Key: "date", Value: 1}, {Key: "timeSlot", Value: 1}})
}

// ListByClient returns all of a client's appointments, date ascending.
func (r *MongoAppointmentRepo) ListByClient(clientID string, filter ListFilter) ([]models.Appointment, error) {
	q := bson.M{"clientId": clientID}
	applyListFilter(q, filter)
	return r.list(q, bson.D{{Key: "date", Value: 1}})
}

// ListByParty returns appointments where the id is either the client or the
// counselor, date descending. Used for the billing views.
func (r *MongoAppointmentRepo) ListByParty(partyID string, filter ListFilter) ([]models.Appointment, error) {
	q := bson.M{"$or": bson.A{
		bson.M{"clientId": partyID},
		bson.M{"counselorId": partyID},
	}}
	applyListFilter(q, filter)
	return r.list(q, bson.D{{Key: "date", Value: -1}})
}

// ListAll returns every appointment, newest first. Admin view.
func (r *MongoAppointmentRepo) ListAll() ([]models.Appointment, error) {
	return r.list(bson.M{}, bson.D{{Key: "createdAt", Value: -1}})
}

func applyListFilter(q bson.M, filter ListFilter) {
	if filter.Status != "" {
		q["status"] = filter.Status
	}
	if filter.PaymentStatus != "" {
		q["paymentStatus"] = filter.PaymentStatus
	}
}

func (r *MongoAppointmentRepo) list(filter bson.M, sort bson.D) ([]models.Appointment, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("failed to decode appointments: %w", err)
	}
	return appts, nil
}

// CounselorStats aggregates dashboard KPIs over a counselor's non-cancelled
// appointments in a single pipeline.
func (r *MongoAppointmentRepo) CounselorStats(counselorID string) (*models.CounselorStats, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	pipeline := []bson.M{
		{"$match": bson.M{
			"counselorId": counselorID,
			"status":      bson.M{"$ne": models.StatusCancelled},
		}},
		{"$group": bson.M{
			"_id":     nil,
			"clients": bson.M{"$addToSet": "$clientId"},
			"scheduled": bson.M{"$sum": bson.M{
				"$cond": bson.A{bson.M{"$eq": bson.A{"$status", models.StatusScheduled}}, 1, 0},
			}},
			"completed": bson.M{"$sum": bson.M{
				"$cond": bson.A{bson.M{"$eq": bson.A{"$status", models.StatusCompleted}}, 1, 0},
			}},
		}},
		{"$project": bson.M{
			"totalClients":   bson.M{"$size": "$clients"},
			"totalScheduled": "$scheduled",
			"totalCompleted": "$completed",
		}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate counselor stats: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		TotalClients   int `bson:"totalClients"`
		TotalScheduled int `bson:"totalScheduled"`
		TotalCompleted int `bson:"totalCompleted"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode counselor stats: %w", err)
	}

	stats := &models.CounselorStats{}
	if len(results) > 0 {
		stats.TotalClients = results[0].TotalClients
		stats.TotalScheduled = results[0].TotalScheduled
		stats.TotalCompleted = results[0].TotalCompleted
	}
	return stats, nil
}
