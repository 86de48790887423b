// Package memory is an in-process Store used by tests and by the memory store
// driver. Documents keep insertion order and unique indexes are enforced like
// the MySQL ones.
package memory

import (
	"context"
	"fmt"
	"sync"

	"VideoTube.com/pkg/pipeline"
	"VideoTube.com/pkg/store"
)

type Store struct {
	mu          sync.RWMutex
	collections map[string][]pipeline.Doc
	unique      map[string][][]string
	exec        *pipeline.Executor
}

type Option func(*Store)

// WithUnique declares a unique index over fields of collection.
func WithUnique(collection string, fields ...string) Option {
	return func(s *Store) {
		s.unique[collection] = append(s.unique[collection], fields)
	}
}

func New(opts ...Option) *Store {
	s := &Store{
		collections: make(map[string][]pipeline.Doc),
		unique:      make(map[string][][]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.exec = pipeline.NewExecutor(s)
	return s
}

var (
	_ store.Store       = (*Store)(nil)
	_ pipeline.Querier = (*Store)(nil)
)

func (s *Store) Find(ctx context.Context, collection string, filter pipeline.Expr) ([]pipeline.Doc, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]pipeline.Doc, 0)
	for _, d := range s.collections[collection] {
		if filter == nil || filter.Matches(d) {
			out = append(out, d.Clone())
		}
	}
	return out, nil
}

// Query runs a window over collection. Sorting is stable over insertion order.
func (s *Store) Query(ctx context.Context, collection string, w pipeline.Window) ([]pipeline.Doc, error) {
	docs, err := s.Find(ctx, collection, w.Filter)
	if err != nil {
		return nil, err
	}
	return pipeline.ApplyWindow(docs, pipeline.Window{Sort: w.Sort, Skip: w.Skip, Limit: w.Limit}), nil
}

func (s *Store) Count(ctx context.Context, collection string, filter pipeline.Expr) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, d := range s.collections[collection] {
		if filter == nil || filter.Matches(d) {
			n++
		}
	}
	return n, nil
}

func (s *Store) Aggregate(ctx context.Context, p *pipeline.Pipeline) ([]pipeline.Doc, error) {
	return s.exec.Aggregate(ctx, p)
}

func (s *Store) FindOne(ctx context.Context, collection string, filter pipeline.Expr) (pipeline.Doc, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(collection, filter); i >= 0 {
		return s.collections[collection][i].Clone(), nil
	}
	return nil, store.ErrNotFound
}

func (s *Store) Exists(ctx context.Context, collection string, filter pipeline.Expr) (bool, error) {
	_, err := s.FindOne(ctx, collection, filter)
	switch err {
	case nil:
		return true, nil
	case store.ErrNotFound:
		return false, nil
	}
	return false, err
}

func (s *Store) Insert(ctx context.Context, collection string, doc pipeline.Doc) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if doc["id"] == nil {
		return fmt.Errorf("memory: insert into %s without id", collection)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conflicts(collection, doc, -1) {
		return store.ErrDuplicate
	}
	s.collections[collection] = append(s.collections[collection], doc.Clone())
	return nil
}

func (s *Store) UpdateOne(ctx context.Context, collection string, filter pipeline.Expr, upd store.Update) (pipeline.Doc, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(collection, filter)
	if i < 0 {
		return nil, store.ErrNotFound
	}
	nd := apply(s.collections[collection][i], upd)
	if s.conflicts(collection, nd, i) {
		return nil, store.ErrDuplicate
	}
	s.collections[collection][i] = nd
	return nd.Clone(), nil
}

func (s *Store) DeleteOne(ctx context.Context, collection string, filter pipeline.Expr) (pipeline.Doc, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(collection, filter)
	if i < 0 {
		return nil, store.ErrNotFound
	}
	docs := s.collections[collection]
	removed := docs[i]
	s.collections[collection] = append(docs[:i:i], docs[i+1:]...)
	return removed, nil
}

func (s *Store) DeleteMany(ctx context.Context, collection string, filter pipeline.Expr) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	docs := s.collections[collection]
	kept := make([]pipeline.Doc, 0, len(docs))
	var n int64
	for _, d := range docs {
		if filter == nil || filter.Matches(d) {
			n++
			continue
		}
		kept = append(kept, d)
	}
	s.collections[collection] = kept
	return n, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// indexOf must be called with the lock held.
func (s *Store) indexOf(collection string, filter pipeline.Expr) int {
	for i, d := range s.collections[collection] {
		if filter == nil || filter.Matches(d) {
			return i
		}
	}
	return -1
}

// conflicts reports whether doc collides with another document on id or on a
// unique index. skip is the position of doc itself during updates.
func (s *Store) conflicts(collection string, doc pipeline.Doc, skip int) bool {
	indexes := append([][]string{{"id"}}, s.unique[collection]...)
	for i, other := range s.collections[collection] {
		if i == skip {
			continue
		}
		for _, fields := range indexes {
			same := true
			for _, f := range fields {
				if !pipeline.Equal(doc[f], other[f]) {
					same = false
					break
				}
			}
			if same {
				return true
			}
		}
	}
	return false
}

func apply(d pipeline.Doc, upd store.Update) pipeline.Doc {
	nd := d.Clone()
	for k, v := range upd.Set {
		nd[k] = v
	}
	for k, by := range upd.Inc {
		cur, _ := pipeline.Int64(nd[k])
		nd[k] = cur + by
	}
	for _, k := range upd.Not {
		b, _ := nd[k].(bool)
		nd[k] = !b
	}
	for k, v := range upd.AddToSet {
		items, _ := pipeline.Items(nd[k])
		next := make([]any, 0, len(items)+1)
		present := false
		for _, item := range items {
			if pipeline.Equal(item, v) {
				present = true
			}
			next = append(next, item)
		}
		if !present {
			next = append(next, v)
		}
		nd[k] = next
	}
	for k, v := range upd.Pull {
		items, _ := pipeline.Items(nd[k])
		next := make([]any, 0, len(items))
		for _, item := range items {
			if !pipeline.Equal(item, v) {
				next = append(next, item)
			}
		}
		nd[k] = next
	}
	return nd
}
