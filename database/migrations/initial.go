// Package migrations registers every schema change for the cuisineai
// database. It is blank-imported by the CLI so init() runs before migrate.
package migrations

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/cuisineai/app/models"
	"github.com/shashiranjanraj/cuisineai/pkg/logger"
	"github.com/shashiranjanraj/cuisineai/pkg/migration"
)

func init() {
	migration.Register("20260101000000_users_email_index", &UsersEmailIndex{})
	migration.Register("20260101000001_logs_time_index", &LogsTimeIndex{})
}

// -------- 0001: users.email --------

// UsersEmailIndex serves login and check-email lookups. It is not unique:
// registration does not reject duplicate emails.
type UsersEmailIndex struct{}

const usersEmailIndex = "users_email"

func (m *UsersEmailIndex) Up(ctx context.Context, db *mongo.Database) error {
	return migration.EnsureIndex(ctx, db.Collection(models.UsersCollection), "email", usersEmailIndex, false)
}

func (m *UsersEmailIndex) Down(ctx context.Context, db *mongo.Database) error {
	return migration.DropIndex(ctx, db.Collection(models.UsersCollection), usersEmailIndex)
}

// -------- 0002: logs.time --------

type LogsTimeIndex struct{}

func (m *LogsTimeIndex) Up(ctx context.Context, db *mongo.Database) error {
	return logger.EnsureLogIndexes(ctx, db.Collection(logger.LogsCollection))
}

func (m *LogsTimeIndex) Down(ctx context.Context, db *mongo.Database) error {
	return migration.DropIndex(ctx, db.Collection(logger.LogsCollection), "time_-1")
}
