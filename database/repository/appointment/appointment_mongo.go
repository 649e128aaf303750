package appointmentRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"appointify/database"
	"appointify/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrNotFound is returned when no appointment matches the query.
	ErrNotFound = errors.New("appointment not found")
	// ErrSlotTaken is returned when a concurrent booking already occupies
	// the requested time range. Callers should treat it as retryable.
	ErrSlotTaken = errors.New("slot already taken")
)

// MongoAppointmentRepo implements AppointmentRepository using MongoDB.
type MongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo creates a new AppointmentRepository using MongoDB.
func NewMongoAppointmentRepo() AppointmentRepository {
	coll := database.DB().Collection("appointments")
	repo := &MongoAppointmentRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoAppointmentRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "agent_id", Value: 1}, {Key: "scheduled_at", Value: 1}}},
		{Keys: bson.D{{Key: "client_id", Value: 1}, {Key: "scheduled_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "ends_at", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves an appointment by its unique ID.
func (r *MongoAppointmentRepo) GetByID(id string) (*models.Appointment, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var appt models.Appointment
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&appt); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch appointment with id %s: %w", id, err)
	}
	return &appt, nil
}

// Update modifies an existing appointment record.
func (r *MongoAppointmentRepo) Update(appt *models.Appointment) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": appt.ID}, appt)
	if err != nil {
		return fmt.Errorf("failed to update appointment %s: %w", appt.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an appointment record by its ID.
func (r *MongoAppointmentRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete appointment %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// List retrieves appointments matching the filter, newest first.
func (r *MongoAppointmentRepo) List(filter models.AppointmentFilter) ([]models.Appointment, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.AgentID != "" {
		query["agent_id"] = filter.AgentID
	}
	if filter.ClientID != "" {
		query["client_id"] = filter.ClientID
	}
	scheduled := bson.M{}
	if !filter.DateFrom.IsZero() {
		scheduled["$gte"] = filter.DateFrom
	}
	if !filter.DateTo.IsZero() {
		scheduled["$lt"] = filter.DateTo
	}
	if len(scheduled) > 0 {
		query["scheduled_at"] = scheduled
	}

	opts := options.Find().SetSort(bson.D{{Key: "scheduled_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, query, opts)
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

// ListOccupyingInRange retrieves the agent's pending and confirmed
// appointments overlapping [from, to).
func (r *MongoAppointmentRepo) ListOccupyingInRange(agentID string, from, to time.Time) ([]models.Appointment, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := occupyingFilter(agentID, from, to)
	opts := options.Find().SetSort(bson.D{{Key: "scheduled_at", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments for agent %s: %w", agentID, err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("failed to decode appointments: %w", err)
	}
	return appts, nil
}

// ListUpcoming retrieves the agent's appointments starting after the given
// instant, soonest first.
func (r *MongoAppointmentRepo) ListUpcoming(agentID string, after time.Time, limit int64) ([]models.Appointment, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{"agent_id": agentID, "scheduled_at": bson.M{"$gt": after}}
	opts := options.Find().SetSort(bson.D{{Key: "scheduled_at", Value: 1}}).SetLimit(limit)
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming appointments for agent %s: %w", agentID, err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("failed to decode appointments: %w", err)
	}
	return appts, nil
}

// occupyingFilter matches pending/confirmed appointments for the agent whose
// half-open [scheduled_at, ends_at) range intersects [from, to).
func occupyingFilter(agentID string, from, to time.Time) bson.M {
	return bson.M{
		"agent_id":     agentID,
		"status":       bson.M{"$in": bson.A{models.StatusPending, models.StatusConfirmed}},
		"scheduled_at": bson.M{"$lt": to},
		"ends_at":      bson.M{"$gt": from},
	}
}

// CompleteFinished transitions confirmed appointments that ended before now
// to completed.
func (r *MongoAppointmentRepo) CompleteFinished(now time.Time) (int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	res, err := r.coll.UpdateMany(ctx,
		bson.M{"status": models.StatusConfirmed, "ends_at": bson.M{"$lt": now}},
		bson.M{"$set": bson.M{"status": models.StatusCompleted, "updated_at": now}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to complete finished appointments: %w", err)
	}
	return res.ModifiedCount, nil
}

// ExpirePending cancels pending appointments created before the cutoff so
// abandoned holds do not block slots forever.
func (r *MongoAppointmentRepo) ExpirePending(now, cutoff time.Time) (int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	res, err := r.coll.UpdateMany(ctx,
		bson.M{"status": models.StatusPending, "created_at": bson.M{"$lt": cutoff}},
		bson.M{"$set": bson.M{"status": models.StatusCancelled, "updated_at": now}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to expire pending appointments: %w", err)
	}
	return res.ModifiedCount, nil
}

// Stats computes the admin dashboard aggregates with one pipeline per figure.
func (r *MongoAppointmentRepo) Stats(monthStart time.Time) (*DashboardStats, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to count appointments: %w", err)
	}

	totalRevenue, err := r.sumCompleted(ctx, bson.M{"status": models.StatusCompleted})
	if err != nil {
		return nil, err
	}
	monthlyRevenue, err := r.sumCompleted(ctx, bson.M{
		"status":     models.StatusCompleted,
		"created_at": bson.M{"$gte": monthStart},
	})
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		TotalAppointments: total,
		TotalRevenue:      totalRevenue,
		MonthlyRevenue:    monthlyRevenue,
	}, nil
}

func (r *MongoAppointmentRepo) sumCompleted(ctx context.Context, match bson.M) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$amount"}}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to aggregate revenue: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, fmt.Errorf("failed to decode revenue aggregate: %w", err)
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}

// Recent retrieves the most recently created appointments.
func (r *MongoAppointmentRepo) Recent(limit int64) ([]models.Appointment, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit)
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("failed to decode appointments: %w", err)
	}
	return appts, nil
}
