package activityRepo

import (
	"context"
	"errors"
	"fmt"

	"vcarpool/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Record appends an entry and returns its ID.
func (r *MongoActivityRepo) Record(ctx context.Context, record models.ActivityRecord) (string, error) {
	if record.Action == "" {
		return "", errors.New("activity action is required")
	}
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = r.now().UTC()
	}

	if _, err := r.coll.InsertOne(ctx, record); err != nil {
		return "", fmt.Errorf("insert activity: %w", err)
	}
	return record.ID, nil
}

// Recent returns the newest entries first.
func (r *MongoActivityRepo) Recent(ctx context.Context, limit int) ([]models.ActivityRecord, error) {
	return r.find(ctx, bson.M{}, limit)
}

// ByActor returns one user's newest entries first.
func (r *MongoActivityRepo) ByActor(ctx context.Context, actorID string, limit int) ([]models.ActivityRecord, error) {
	return r.find(ctx, bson.M{"actorId": actorID}, limit)
}

func (r *MongoActivityRepo) find(ctx context.Context, filter bson.M, limit int) ([]models.ActivityRecord, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(clampLimit(limit))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []models.ActivityRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
