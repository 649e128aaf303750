package availabilityRepo

import (
	"context"
	"fmt"
	"time"

	"appointify/database"
	"appointify/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAvailabilityRepo implements AvailabilityRepository using MongoDB.
type MongoAvailabilityRepo struct {
	ruleColl    *mongo.Collection
	blockedColl *mongo.Collection
}

// NewMongoAvailabilityRepo creates a new AvailabilityRepository using MongoDB.
func NewMongoAvailabilityRepo() AvailabilityRepository {
	db := database.DB()
	repo := &MongoAvailabilityRepo{
		ruleColl:    db.Collection("availability_rules"),
		blockedColl: db.Collection("blocked_intervals"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoAvailabilityRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	// One rule per agent per weekday.
	_, err := r.ruleColl.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "agent_id", Value: 1}, {Key: "day_of_week", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create rule index: %w", err)
	}

	_, err = r.blockedColl.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "agent_id", Value: 1}, {Key: "start_time", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create blocked index: %w", err)
	}
	return nil
}

// GetRuleForDay retrieves the agent's rule for one weekday key.
func (r *MongoAvailabilityRepo) GetRuleForDay(agentID, dayOfWeek string) (*models.AvailabilityRule, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var rule models.AvailabilityRule
	err := r.ruleColl.FindOne(ctx, bson.M{"agent_id": agentID, "day_of_week": dayOfWeek}).Decode(&rule)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch rule for agent %s on %s: %w", agentID, dayOfWeek, err)
	}
	return &rule, nil
}

// ListRules retrieves all of an agent's weekly rules.
func (r *MongoAvailabilityRepo) ListRules(agentID string) ([]models.AvailabilityRule, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.ruleColl.Find(ctx, bson.M{"agent_id": agentID})
	if err != nil {
		return nil, fmt.Errorf("failed to list rules for agent %s: %w", agentID, err)
	}
	defer cursor.Close(ctx)

	var rules []models.AvailabilityRule
	if err := cursor.All(ctx, &rules); err != nil {
		return nil, fmt.Errorf("failed to decode rules: %w", err)
	}
	return rules, nil
}

// ReplaceWeek deletes the agent's existing rules and inserts the given set.
func (r *MongoAvailabilityRepo) ReplaceWeek(agentID string, rules []models.AvailabilityRule) error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	if _, err := r.ruleColl.DeleteMany(ctx, bson.M{"agent_id": agentID}); err != nil {
		return fmt.Errorf("failed to clear rules for agent %s: %w", agentID, err)
	}
	if len(rules) == 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(rules))
	for i := range rules {
		docs = append(docs, rules[i])
	}
	if _, err := r.ruleColl.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert rules for agent %s: %w", agentID, err)
	}
	return nil
}

// CreateBlocked inserts a blocked interval.
func (r *MongoAvailabilityRepo) CreateBlocked(blocked *models.BlockedInterval) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.blockedColl.InsertOne(ctx, blocked); err != nil {
		return fmt.Errorf("failed to create blocked interval: %w", err)
	}
	return nil
}

// ListBlockedInRange retrieves the agent's blocked intervals overlapping
// [from, to), half-open on both sides of the comparison.
func (r *MongoAvailabilityRepo) ListBlockedInRange(agentID string, from, to time.Time) ([]models.BlockedInterval, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{
		"agent_id":   agentID,
		"start_time": bson.M{"$lt": to},
		"end_time":   bson.M{"$gt": from},
	}
	cursor, err := r.blockedColl.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list blocked intervals for agent %s: %w", agentID, err)
	}
	defer cursor.Close(ctx)

	var blocked []models.BlockedInterval
	if err := cursor.All(ctx, &blocked); err != nil {
		return nil, fmt.Errorf("failed to decode blocked intervals: %w", err)
	}
	return blocked, nil
}
