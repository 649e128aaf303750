package appointmentRepo

import (
	"context"
	"fmt"

	"appointify/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// CreateIfFree inserts the appointment inside a transaction that first
// re-checks the agent's calendar for overlapping pending or confirmed
// appointments. Two concurrent bookings of the same slot serialize here;
// the loser gets ErrSlotTaken instead of a silent double booking.
func (r *MongoAppointmentRepo) CreateIfFree(ctx context.Context, appt *models.Appointment) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		filter := occupyingFilter(appt.AgentID, appt.ScheduledAt, appt.EndsAt)
		n, err := r.coll.CountDocuments(sc, filter)
		if err != nil {
			return fmt.Errorf("overlap check failed: %w", err)
		}
		if n > 0 {
			return ErrSlotTaken
		}

		if _, err := r.coll.InsertOne(sc, appt); err != nil {
			return fmt.Errorf("insert appointment failed: %w", err)
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
		if err == ErrSlotTaken {
			return ErrSlotTaken
		}
		return fmt.Errorf("booking transaction failed: %w", err)
	}

	return nil
}
