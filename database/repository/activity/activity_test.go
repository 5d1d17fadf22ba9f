package activityRepo

import (
	"context"
	"testing"
	"time"

	"vcarpool/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestRecord(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("assigns id and timestamp", func(mt *mtest.T) {
		repo := NewActivityRepo(mt.Coll)
		fixed := time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC)
		repo.now = func() time.Time { return fixed }
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		id, err := repo.Record(context.Background(), models.ActivityRecord{ActorID: "u1", Action: models.ActionLogin})
		require.NoError(mt, err)
		assert.NotEmpty(mt, id)
	})

	mt.Run("rejects empty action", func(mt *mtest.T) {
		repo := NewActivityRepo(mt.Coll)
		_, err := repo.Record(context.Background(), models.ActivityRecord{ActorID: "u1"})
		assert.Error(mt, err)
	})

	mt.Run("surfaces write errors", func(mt *mtest.T) {
		repo := NewActivityRepo(mt.Coll)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key"}))

		_, err := repo.Record(context.Background(), models.ActivityRecord{ID: "dup", Action: models.ActionLogout})
		assert.ErrorContains(mt, err, "insert activity")
	})
}

func TestRecent(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("decodes newest first", func(mt *mtest.T) {
		repo := NewActivityRepo(mt.Coll)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		newer := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
		older := newer.Add(-time.Hour)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "id", Value: "a2"}, {Key: "actorId", Value: "u1"}, {Key: "actorRole", Value: "ADMIN"}, {Key: "action", Value: models.ActionUserCreate}, {Key: "createdAt", Value: newer}},
			bson.D{{Key: "id", Value: "a1"}, {Key: "actorId", Value: "u2"}, {Key: "actorRole", Value: "PARENT"}, {Key: "action", Value: models.ActionLogin}, {Key: "createdAt", Value: older}},
		))

		records, err := repo.Recent(context.Background(), 0)
		require.NoError(mt, err)
		require.Len(mt, records, 2)
		assert.Equal(mt, "a2", records[0].ID)
		assert.Equal(mt, models.RoleAdmin, records[0].ActorRole)
		assert.True(mt, records[0].CreatedAt.Equal(newer))
	})

	mt.Run("empty result is an empty slice", func(mt *mtest.T) {
		repo := NewActivityRepo(mt.Coll)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		records, err := repo.ByActor(context.Background(), "nobody", 10)
		require.NoError(mt, err)
		assert.NotNil(mt, records)
		assert.Empty(mt, records)
	})
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, int64(DefaultLimit), clampLimit(0))
	assert.Equal(t, int64(DefaultLimit), clampLimit(-3))
	assert.Equal(t, int64(20), clampLimit(20))
	assert.Equal(t, int64(MaxLimit), clampLimit(10_000))
}
