package db

import (
	"context"
	"fmt"
	"math"

	"VideoTube.com/pkg/pipeline"
	"VideoTube.com/pkg/store"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store runs documents and pipelines against MySQL through gorm. Leading
// filters become WHERE clauses, joins are executed as batched IN queries.
type Store struct {
	DB   *gorm.DB
	exec *pipeline.Executor
}

var (
	_ store.Store       = (*Store)(nil)
	_ pipeline.Querier = (*Store)(nil)
)

func NewStore(db *gorm.DB) *Store {
	s := &Store{DB: db}
	s.exec = pipeline.NewExecutor(s)
	return s
}

func lookupTable(collection string) (table, error) {
	t, ok := tables[collection]
	if !ok {
		return nil, fmt.Errorf("db: unknown collection %q", collection)
	}
	return t, nil
}

// where applies filter to tx.
func where(tx *gorm.DB, t table, filter pipeline.Expr) (*gorm.DB, error) {
	sql, args, err := translate(filter, t.columns())
	if err != nil {
		return nil, err
	}
	tx = tx.Model(t.newModel())
	if sql != "" {
		tx = tx.Where(sql, args...)
	}
	return tx, nil
}

// scope applies filter to tx. Rows keep id order, which follows creation time
// for object ids.
func scope(tx *gorm.DB, t table, filter pipeline.Expr) (*gorm.DB, error) {
	tx, err := where(tx, t, filter)
	if err != nil {
		return nil, err
	}
	return tx.Order("id"), nil
}

func (s *Store) Find(ctx context.Context, collection string, filter pipeline.Expr) ([]pipeline.Doc, error) {
	t, err := lookupTable(collection)
	if err != nil {
		return nil, err
	}
	tx, err := scope(s.DB.WithContext(ctx), t, filter)
	if err != nil {
		return nil, err
	}
	docs, err := t.find(tx)
	if err != nil {
		return nil, errors.Wrapf(err, "find %s", collection)
	}
	return docs, nil
}

// Query runs the window as one SELECT ... ORDER BY ... LIMIT ... OFFSET. Ties
// are broken by id like the in-process sort.
func (s *Store) Query(ctx context.Context, collection string, w pipeline.Window) ([]pipeline.Doc, error) {
	t, err := lookupTable(collection)
	if err != nil {
		return nil, err
	}
	if w.Limit == 0 {
		return []pipeline.Doc{}, nil
	}
	tx, err := where(s.DB.WithContext(ctx), t, w.Filter)
	if err != nil {
		return nil, err
	}
	for _, k := range w.Sort {
		if !columnName.MatchString(k.Field) || !t.columns()[k.Field] {
			return nil, fmt.Errorf("db: cannot sort on %q", k.Field)
		}
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: k.Field}, Desc: k.Desc})
	}
	tx = tx.Order("id")
	switch {
	case w.Limit > 0:
		tx = tx.Limit(w.Limit)
	case w.Skip > 0:
		// MySQL 不支持单独的 OFFSET
		tx = tx.Limit(math.MaxInt32)
	}
	if w.Skip > 0 {
		tx = tx.Offset(w.Skip)
	}
	docs, err := t.find(tx)
	if err != nil {
		return nil, errors.Wrapf(err, "query %s", collection)
	}
	return docs, nil
}

// Count runs SELECT COUNT(*) for filter.
func (s *Store) Count(ctx context.Context, collection string, filter pipeline.Expr) (int64, error) {
	t, err := lookupTable(collection)
	if err != nil {
		return 0, err
	}
	tx, err := where(s.DB.WithContext(ctx), t, filter)
	if err != nil {
		return 0, err
	}
	var n int64
	if err = tx.Count(&n).Error; err != nil {
		return 0, errors.Wrapf(err, "count %s", collection)
	}
	return n, nil
}

func (s *Store) Aggregate(ctx context.Context, p *pipeline.Pipeline) ([]pipeline.Doc, error) {
	return s.exec.Aggregate(ctx, p)
}

func first(tx *gorm.DB, t table, filter pipeline.Expr, lock bool) (pipeline.Doc, error) {
	q, err := scope(tx, t, filter)
	if err != nil {
		return nil, err
	}
	if lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	docs, err := t.find(q.Limit(1))
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, store.ErrNotFound
	}
	return docs[0], nil
}

func (s *Store) FindOne(ctx context.Context, collection string, filter pipeline.Expr) (pipeline.Doc, error) {
	t, err := lookupTable(collection)
	if err != nil {
		return nil, err
	}
	d, err := first(s.DB.WithContext(ctx), t, filter, false)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, errors.Wrapf(err, "find one %s", collection)
	}
	return d, err
}

func (s *Store) Exists(ctx context.Context, collection string, filter pipeline.Expr) (bool, error) {
	_, err := s.FindOne(ctx, collection, filter)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, store.ErrNotFound):
		return false, nil
	}
	return false, err
}

func (s *Store) Insert(ctx context.Context, collection string, doc pipeline.Doc) error {
	t, err := lookupTable(collection)
	if err != nil {
		return err
	}
	if err = t.create(s.DB.WithContext(ctx), doc); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return store.ErrDuplicate
		}
		return errors.Wrapf(err, "insert into %s", collection)
	}
	return nil
}

func (s *Store) UpdateOne(ctx context.Context, collection string, filter pipeline.Expr, upd store.Update) (pipeline.Doc, error) {
	t, err := lookupTable(collection)
	if err != nil {
		return nil, err
	}
	var updated pipeline.Doc
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cur, err := first(tx, t, filter, true)
		if err != nil {
			return err
		}
		values, err := columnUpdates(t, cur, upd)
		if err != nil {
			return err
		}
		if len(values) > 0 {
			if err = tx.Model(t.newModel()).Where("id = ?", cur["id"]).Updates(values).Error; err != nil {
				return err
			}
		}
		updated, err = first(tx, t, pipeline.Eq("id", cur["id"]), false)
		return err
	})
	switch {
	case err == nil:
		return updated, nil
	case errors.Is(err, store.ErrNotFound):
		return nil, store.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return nil, store.ErrDuplicate
	}
	return nil, errors.Wrapf(err, "update %s", collection)
}

// columnUpdates maps upd onto column assignments. Increments and negations stay
// SQL expressions; array edits are computed from the locked row.
func columnUpdates(t table, cur pipeline.Doc, upd store.Update) (map[string]any, error) {
	values := make(map[string]any)
	cols := t.columns()
	check := func(name string) error {
		if !columnName.MatchString(name) || (!cols[name] && !t.arrays()[name]) {
			return fmt.Errorf("db: cannot update %q", name)
		}
		return nil
	}
	for k, v := range upd.Set {
		if err := check(k); err != nil {
			return nil, err
		}
		if items, ok := pipeline.Items(v); ok && t.arrays()[k] {
			enc, err := t.encodeArray(items)
			if err != nil {
				return nil, err
			}
			values[k] = enc
			continue
		}
		values[k] = v
	}
	for k, by := range upd.Inc {
		if err := check(k); err != nil {
			return nil, err
		}
		values[k] = gorm.Expr(k+" + ?", by)
	}
	for _, k := range upd.Not {
		if err := check(k); err != nil {
			return nil, err
		}
		values[k] = gorm.Expr("NOT " + k)
	}
	edit := func(k string, keep func(items []any) []any) error {
		if !t.arrays()[k] {
			return fmt.Errorf("db: %q is not a list column", k)
		}
		items, _ := pipeline.Items(cur[k])
		enc, err := t.encodeArray(keep(items))
		if err != nil {
			return err
		}
		values[k] = enc
		return nil
	}
	for k, v := range upd.AddToSet {
		err := edit(k, func(items []any) []any {
			for _, item := range items {
				if pipeline.Equal(item, v) {
					return items
				}
			}
			return append(items, v)
		})
		if err != nil {
			return nil, err
		}
	}
	for k, v := range upd.Pull {
		err := edit(k, func(items []any) []any {
			kept := make([]any, 0, len(items))
			for _, item := range items {
				if !pipeline.Equal(item, v) {
					kept = append(kept, item)
				}
			}
			return kept
		})
		if err != nil {
			return nil, err
		}
	}
	return values, nil
}

func (s *Store) DeleteOne(ctx context.Context, collection string, filter pipeline.Expr) (pipeline.Doc, error) {
	t, err := lookupTable(collection)
	if err != nil {
		return nil, err
	}
	var removed pipeline.Doc
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cur, err := first(tx, t, filter, true)
		if err != nil {
			return err
		}
		res := tx.Where("id = ?", cur["id"]).Delete(t.newModel())
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return store.ErrNotFound
		}
		removed = cur
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, errors.Wrapf(err, "delete from %s", collection)
	}
	return removed, nil
}

func (s *Store) DeleteMany(ctx context.Context, collection string, filter pipeline.Expr) (int64, error) {
	t, err := lookupTable(collection)
	if err != nil {
		return 0, err
	}
	sql, args, err := translate(filter, t.columns())
	if err != nil {
		return 0, err
	}
	tx := s.DB.WithContext(ctx)
	if sql == "" {
		tx = tx.Session(&gorm.Session{AllowGlobalUpdate: true})
	} else {
		tx = tx.Where(sql, args...)
	}
	res := tx.Delete(t.newModel())
	if res.Error != nil {
		return 0, errors.Wrapf(res.Error, "delete many from %s", collection)
	}
	return res.RowsAffected, nil
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return errors.WithMessage(sqlDB.PingContext(ctx), "ping mysql")
}
