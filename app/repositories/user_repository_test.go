package repositories_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/shashiranjanraj/cuisineai/app/models"
	"github.com/shashiranjanraj/cuisineai/app/repositories"
)

func TestUserRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("find by email hit", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(1, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "name", Value: "Ada"},
			{Key: "email", Value: "ada@example.com"},
			{Key: "password", Value: "$2a$10$hash"},
		}))

		repo := repositories.NewUserRepository(mt.Coll)
		user, err := repo.FindByEmail(context.Background(), "ada@example.com")

		require.NoError(mt, err)
		assert.Equal(mt, id, user.ID)
		assert.Equal(mt, "Ada", user.Name)
		assert.Equal(mt, "$2a$10$hash", user.Password)
	})

	mt.Run("find by email miss", func(mt *mtest.T) {
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		repo := repositories.NewUserRepository(mt.Coll)
		_, err := repo.FindByEmail(context.Background(), "nobody@example.com")

		assert.ErrorIs(mt, err, repositories.ErrUserNotFound)
	})

	mt.Run("find by email store fault", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    11600,
			Name:    "InterruptedAtShutdown",
			Message: "shutting down",
		}))

		repo := repositories.NewUserRepository(mt.Coll)
		_, err := repo.FindByEmail(context.Background(), "ada@example.com")

		require.Error(mt, err)
		assert.NotErrorIs(mt, err, repositories.ErrUserNotFound)
	})

	mt.Run("create assigns id and timestamp", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		repo := repositories.NewUserRepository(mt.Coll)
		user := &models.User{Name: "Ada", Email: "ada@example.com", Password: "hash"}
		require.NoError(mt, repo.Create(context.Background(), user))

		assert.False(mt, user.ID.IsZero())
		assert.False(mt, user.CreatedAt.IsZero())
	})

	mt.Run("create store fault", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    121,
			Message: "document failed validation",
		}))

		repo := repositories.NewUserRepository(mt.Coll)
		err := repo.Create(context.Background(), &models.User{Email: "x@example.com"})
		assert.Error(mt, err)
	})
}
