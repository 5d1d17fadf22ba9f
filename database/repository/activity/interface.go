package activityRepo

import (
	"context"
	"time"

	"vcarpool/database"
	"vcarpool/models"

	"go.mongodb.org/mongo-driver/mongo"
)

const collectionName = "dashboard_activity"

// DefaultLimit and MaxLimit bound Recent and ByActor page sizes.
const (
	DefaultLimit = 50
	MaxLimit     = 500
)

type ActivityRepository interface {
	Record(ctx context.Context, record models.ActivityRecord) (string, error)
	Recent(ctx context.Context, limit int) ([]models.ActivityRecord, error)
	ByActor(ctx context.Context, actorID string, limit int) ([]models.ActivityRecord, error)
	EnsureIndexes(ctx context.Context) error
}

type MongoActivityRepo struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewMongoActivityRepo uses the configured dashboard database.
func NewMongoActivityRepo() *MongoActivityRepo {
	return NewActivityRepo(database.Database().Collection(collectionName))
}

func NewActivityRepo(coll *mongo.Collection) *MongoActivityRepo {
	return &MongoActivityRepo{coll: coll, now: time.Now}
}

func clampLimit(limit int) int64 {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	}
	return int64(limit)
}

var _ ActivityRepository = (*MongoActivityRepo)(nil)
