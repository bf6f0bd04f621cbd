package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"mindhaven/database"

	"go.mongodb.org/mongo-driver/mongo"
)

// MongoAppointmentRepo implements AppointmentRepository using MongoDB.
// It also holds the users collection because the guarded availability
// replace spans both collections in one transaction.
type MongoAppointmentRepo struct {
	coll     *mongo.Collection
	userColl *mongo.Collection
}

// NewMongoAppointmentRepo creates a new instance of AppointmentRepository using MongoDB.
func NewMongoAppointmentRepo() AppointmentRepository {
	repo := &MongoAppointmentRepo{
		coll:     database.Collection("appointments"),
		userColl: database.Collection("users"),
	}

	if err := repo.EnsureIndexes(); err != nil {
		fmt.Printf("failed to create appointment indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}
