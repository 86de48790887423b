// Package toggle flips the existence of an association document between two
// entities, such as a like or a subscription.
package toggle

import (
	"context"
	"errors"

	"VideoTube.com/pkg/pipeline"
	"VideoTube.com/pkg/store"
)

// Association names the pair being toggled.
type Association struct {
	Collection string
	// Pair selects the association document, e.g. liked_by + target.
	Pair pipeline.Expr
	// New builds the document inserted when the pair is not associated.
	New func() pipeline.Doc
}

type Result struct {
	Associated bool
}

// Toggle deletes the association if present, otherwise inserts it. A unique
// index violation on insert means a concurrent toggle already associated the
// pair, so the pair is reported as associated.
func Toggle(ctx context.Context, s store.Store, a Association) (Result, error) {
	_, err := s.DeleteOne(ctx, a.Collection, a.Pair)
	switch {
	case err == nil:
		return Result{Associated: false}, nil
	case !errors.Is(err, store.ErrNotFound):
		return Result{}, err
	}

	err = s.Insert(ctx, a.Collection, a.New())
	switch {
	case err == nil, errors.Is(err, store.ErrDuplicate):
		return Result{Associated: true}, nil
	}
	return Result{}, err
}
