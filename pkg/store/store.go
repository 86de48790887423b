// Package store is the storage port shared by the MySQL and in-memory adapters.
package store

import (
	"context"
	"errors"

	"VideoTube.com/pkg/pipeline"
)

var (
	// ErrNotFound is returned when a single-document operation matches nothing.
	ErrNotFound = errors.New("store: document not found")
	// ErrDuplicate is returned when an insert violates a unique index.
	ErrDuplicate = errors.New("store: duplicate key")
)

// Update describes a single-document modification applied by the storage
// engine itself, so the read of the previous value never leaves the engine.
type Update struct {
	// Set assigns fields.
	Set pipeline.Doc
	// Inc adds to numeric fields.
	Inc map[string]int64
	// Not flips boolean fields.
	Not []string
	// AddToSet appends a value to an array field unless already present.
	AddToSet map[string]any
	// Pull removes every occurrence of a value from an array field.
	Pull map[string]any
}

// Store is everything the services need from storage.
type Store interface {
	pipeline.Source
	pipeline.Aggregator

	// FindOne returns the first document matching filter or ErrNotFound.
	FindOne(ctx context.Context, collection string, filter pipeline.Expr) (pipeline.Doc, error)
	Exists(ctx context.Context, collection string, filter pipeline.Expr) (bool, error)
	// Insert stores doc, which must carry its id. It returns ErrDuplicate on a
	// unique index violation.
	Insert(ctx context.Context, collection string, doc pipeline.Doc) error
	// UpdateOne applies upd to the first match and returns the updated
	// document, or ErrNotFound.
	UpdateOne(ctx context.Context, collection string, filter pipeline.Expr, upd Update) (pipeline.Doc, error)
	// DeleteOne removes the first match and returns it, or ErrNotFound.
	DeleteOne(ctx context.Context, collection string, filter pipeline.Expr) (pipeline.Doc, error)
	DeleteMany(ctx context.Context, collection string, filter pipeline.Expr) (int64, error)
	Ping(ctx context.Context) error
}
