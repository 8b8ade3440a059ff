// Package migration applies versioned, idempotent changes (indexes, backfills)
// to the Mongo database and records what ran in a tracking collection.
//
// Register migrations from init() in database/migrations:
//
//	func init() {
//	    migration.Register("20260101000000_users_email_index", &UsersEmailIndex{})
//	}
//
// Run from the CLI:
//
//	cuisineai migrate
//	cuisineai migrate:status
//	cuisineai migrate:rollback
package migration

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/cuisineai/pkg/logger"
)

// TrackingCollection stores one document per applied migration.
const TrackingCollection = "schema_migrations"

// Migration is one reversible change.
type Migration interface {
	Up(ctx context.Context, db *mongo.Database) error
	Down(ctx context.Context, db *mongo.Database) error
}

type record struct {
	Name  string    `bson:"_id"`
	Batch int       `bson:"batch"`
	RunAt time.Time `bson:"run_at"`
}

type entry struct {
	name string
	m    Migration
}

var registry []entry

// ErrNoMigrations is returned by Run when nothing is registered.
var ErrNoMigrations = errors.New("migration: no migrations registered")

// Register adds m under name. Names are timestamp-prefixed and applied in
// lexical order.
func Register(name string, m Migration) {
	registry = append(registry, entry{name: name, m: m})
}

// Runner executes and tracks migrations against one database.
type Runner struct {
	db  *mongo.Database
	out io.Writer
}

func New(db *mongo.Database, out io.Writer) *Runner {
	return &Runner{db: db, out: out}
}

func (r *Runner) tracking() *mongo.Collection {
	return r.db.Collection(TrackingCollection)
}

func (r *Runner) applied(ctx context.Context) (map[string]record, error) {
	cur, err := r.tracking().Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("migration: list applied: %w", err)
	}
	var recs []record
	if err := cur.All(ctx, &recs); err != nil {
		return nil, fmt.Errorf("migration: decode applied: %w", err)
	}

	out := make(map[string]record, len(recs))
	for _, rec := range recs {
		out[rec.Name] = rec
	}
	return out, nil
}

// pendingOf returns the registered entries missing from ran, sorted by name.
func pendingOf(entries []entry, ran map[string]record) []entry {
	var pending []entry
	for _, e := range entries {
		if _, ok := ran[e.name]; !ok {
			pending = append(pending, e)
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].name < pending[j].name })
	return pending
}

func nextBatch(ran map[string]record) int {
	max := 0
	for _, rec := range ran {
		if rec.Batch > max {
			max = rec.Batch
		}
	}
	return max + 1
}

// Run applies every pending migration as one batch.
func (r *Runner) Run(ctx context.Context) error {
	if len(registry) == 0 {
		return ErrNoMigrations
	}

	ran, err := r.applied(ctx)
	if err != nil {
		return err
	}

	pending := pendingOf(registry, ran)
	if len(pending) == 0 {
		fmt.Fprintln(r.out, "Nothing to migrate.")
		return nil
	}

	batch := nextBatch(ran)
	for _, e := range pending {
		logger.Info("migration: running", "name", e.name, "batch", batch)
		if err := e.m.Up(ctx, r.db); err != nil {
			return fmt.Errorf("migration: %s up: %w", e.name, err)
		}
		rec := record{Name: e.name, Batch: batch, RunAt: time.Now().UTC()}
		if _, err := r.tracking().InsertOne(ctx, rec); err != nil {
			return fmt.Errorf("migration: record %s: %w", e.name, err)
		}
		fmt.Fprintf(r.out, "  migrated  %s\n", e.name)
	}
	return nil
}

// Rollback reverses the most recent batch, newest first.
func (r *Runner) Rollback(ctx context.Context) error {
	ran, err := r.applied(ctx)
	if err != nil {
		return err
	}
	last := nextBatch(ran) - 1
	if last == 0 {
		fmt.Fprintln(r.out, "Nothing to roll back.")
		return nil
	}

	byName := make(map[string]Migration, len(registry))
	for _, e := range registry {
		byName[e.name] = e.m
	}

	var names []string
	for name, rec := range ran {
		if rec.Batch == last {
			names = append(names, name)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))

	for _, name := range names {
		m, ok := byName[name]
		if !ok {
			return fmt.Errorf("migration: cannot roll back %s: not registered", name)
		}
		if err := m.Down(ctx, r.db); err != nil {
			return fmt.Errorf("migration: %s down: %w", name, err)
		}
		if _, err := r.tracking().DeleteOne(ctx, bson.D{{Key: "_id", Value: name}}); err != nil {
			return fmt.Errorf("migration: unrecord %s: %w", name, err)
		}
		fmt.Fprintf(r.out, "  rolled back  %s\n", name)
	}
	return nil
}

// Status prints every registered migration and whether it ran.
func (r *Runner) Status(ctx context.Context) error {
	ran, err := r.applied(ctx)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(registry))
	for _, e := range registry {
		names = append(names, e.name)
	}
	sort.Strings(names)

	fmt.Fprintf(r.out, "%-50s  %-8s  %s\n", "MIGRATION", "STATUS", "BATCH")
	for _, name := range names {
		if rec, ok := ran[name]; ok {
			fmt.Fprintf(r.out, "%-50s  %-8s  %d\n", name, "ran", rec.Batch)
		} else {
			fmt.Fprintf(r.out, "%-50s  %-8s  -\n", name, "pending")
		}
	}
	return nil
}

// EnsureIndex creates an ascending single-field index with the given name.
// Shared by migrations so they stay one-liners.
func EnsureIndex(ctx context.Context, col *mongo.Collection, field, name string, unique bool) error {
	_, err := col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: field, Value: 1}},
		Options: options.Index().SetName(name).SetUnique(unique),
	})
	return err
}

// DropIndex removes a named index; a missing index is not an error.
func DropIndex(ctx context.Context, col *mongo.Collection, name string) error {
	_, err := col.Indexes().DropOne(ctx, name)
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && cmdErr.Name == "IndexNotFound" {
		return nil
	}
	return err
}
