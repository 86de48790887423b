package memory

import (
	"context"
	"testing"

	"github.com/cloudwego/hertz/pkg/common/test/assert"

	"VideoTube.com/pkg/pipeline"
	"VideoTube.com/pkg/store"
)

func TestInsertEnforcesUniqueIndexes(t *testing.T) {
	ctx := context.Background()
	s := New(WithUnique("likes", "video", "liked_by"))

	assert.Nil(t, s.Insert(ctx, "likes", pipeline.Doc{"id": "l1", "video": "v1", "liked_by": "u1"}))
	assert.DeepEqual(t, store.ErrDuplicate, s.Insert(ctx, "likes", pipeline.Doc{"id": "l2", "video": "v1", "liked_by": "u1"}))
	assert.DeepEqual(t, store.ErrDuplicate, s.Insert(ctx, "likes", pipeline.Doc{"id": "l1", "video": "v9", "liked_by": "u9"}))
	assert.Nil(t, s.Insert(ctx, "likes", pipeline.Doc{"id": "l3", "video": "v1", "liked_by": "u2"}))
	assert.NotNil(t, s.Insert(ctx, "likes", pipeline.Doc{"video": "v2"}))

	docs, err := s.Find(ctx, "likes", pipeline.Eq("video", "v1"))
	assert.Nil(t, err)
	assert.DeepEqual(t, 2, len(docs))
}

func TestFindReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := New()
	assert.Nil(t, s.Insert(ctx, "videos", pipeline.Doc{"id": "v1", "title": "a"}))

	d, err := s.FindOne(ctx, "videos", pipeline.Eq("id", "v1"))
	assert.Nil(t, err)
	d["title"] = "changed"

	again, _ := s.FindOne(ctx, "videos", pipeline.Eq("id", "v1"))
	assert.DeepEqual(t, "a", again["title"])

	_, err = s.FindOne(ctx, "videos", pipeline.Eq("id", "nope"))
	assert.DeepEqual(t, store.ErrNotFound, err)
}

func TestUpdateOne(t *testing.T) {
	ctx := context.Background()
	s := New(WithUnique("users", "username"))
	assert.Nil(t, s.Insert(ctx, "users", pipeline.Doc{"id": "u1", "username": "alice"}))
	assert.Nil(t, s.Insert(ctx, "users", pipeline.Doc{"id": "u2", "username": "bob"}))
	assert.Nil(t, s.Insert(ctx, "videos", pipeline.Doc{"id": "v1", "views": int64(0), "is_published": true}))
	assert.Nil(t, s.Insert(ctx, "playlists", pipeline.Doc{"id": "p1", "videos": []any{}}))

	t.Run("inc and not", func(t *testing.T) {
		d, err := s.UpdateOne(ctx, "videos", pipeline.Eq("id", "v1"), store.Update{
			Inc: map[string]int64{"views": 2},
			Not: []string{"is_published"},
		})
		assert.Nil(t, err)
		assert.DeepEqual(t, int64(2), d["views"])
		assert.DeepEqual(t, false, d["is_published"])
	})

	t.Run("add to set is idempotent and pull removes", func(t *testing.T) {
		add := store.Update{AddToSet: map[string]any{"videos": "v1"}}
		_, err := s.UpdateOne(ctx, "playlists", pipeline.Eq("id", "p1"), add)
		assert.Nil(t, err)
		d, err := s.UpdateOne(ctx, "playlists", pipeline.Eq("id", "p1"), add)
		assert.Nil(t, err)
		assert.DeepEqual(t, []any{"v1"}, d["videos"])

		d, err = s.UpdateOne(ctx, "playlists", pipeline.Eq("id", "p1"), store.Update{Pull: map[string]any{"videos": "v1"}})
		assert.Nil(t, err)
		assert.DeepEqual(t, []any{}, d["videos"])
	})

	t.Run("unique violation leaves the document untouched", func(t *testing.T) {
		_, err := s.UpdateOne(ctx, "users", pipeline.Eq("id", "u2"), store.Update{Set: map[string]any{"username": "alice"}})
		assert.DeepEqual(t, store.ErrDuplicate, err)
		d, _ := s.FindOne(ctx, "users", pipeline.Eq("id", "u2"))
		assert.DeepEqual(t, "bob", d["username"])
	})

	t.Run("missing document", func(t *testing.T) {
		_, err := s.UpdateOne(ctx, "users", pipeline.Eq("id", "u9"), store.Update{Set: map[string]any{"username": "x"}})
		assert.DeepEqual(t, store.ErrNotFound, err)
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	s := New()
	for _, id := range []string{"c1", "c2", "c3"} {
		assert.Nil(t, s.Insert(ctx, "comments", pipeline.Doc{"id": id, "video": "v1"}))
	}

	removed, err := s.DeleteOne(ctx, "comments", pipeline.Eq("id", "c2"))
	assert.Nil(t, err)
	assert.DeepEqual(t, "c2", removed["id"])

	_, err = s.DeleteOne(ctx, "comments", pipeline.Eq("id", "c2"))
	assert.DeepEqual(t, store.ErrNotFound, err)

	n, err := s.DeleteMany(ctx, "comments", pipeline.Eq("video", "v1"))
	assert.Nil(t, err)
	assert.DeepEqual(t, int64(2), n)

	ok, err := s.Exists(ctx, "comments", nil)
	assert.Nil(t, err)
	assert.False(t, ok)
}

func TestAggregateRunsOverTheStore(t *testing.T) {
	ctx := context.Background()
	s := New()
	assert.Nil(t, s.Insert(ctx, "users", pipeline.Doc{"id": "u1", "username": "alice"}))
	assert.Nil(t, s.Insert(ctx, "videos", pipeline.Doc{"id": "v1", "owner": "u1"}))

	p := pipeline.From("videos").
		Lookup(pipeline.Lookup{From: "users", LocalField: "owner", ForeignField: "id", As: "owner", Single: true})
	docs, err := s.Aggregate(ctx, p)
	assert.Nil(t, err)
	assert.DeepEqual(t, 1, len(docs))
	owner, _ := docs[0]["owner"].(pipeline.Doc)
	assert.DeepEqual(t, "alice", owner["username"])
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := New()
	assert.DeepEqual(t, context.Canceled, s.Insert(ctx, "users", pipeline.Doc{"id": "u1"}))
	assert.DeepEqual(t, context.Canceled, s.Ping(ctx))
}

func TestQueryAndCount(t *testing.T) {
	ctx := context.Background()
	s := New()
	for i, title := range []string{"c", "a", "d", "b", "e"} {
		assert.Nil(t, s.Insert(ctx, "videos", pipeline.Doc{"id": title, "n": i, "is_published": i != 2}))
	}
	published := pipeline.Eq("is_published", true)

	docs, err := s.Query(ctx, "videos", pipeline.Window{Filter: published, Sort: []pipeline.SortKey{pipeline.Asc("id")}, Skip: 1, Limit: 2})
	assert.Nil(t, err)
	assert.DeepEqual(t, 2, len(docs))
	assert.DeepEqual(t, "b", docs[0]["id"])
	assert.DeepEqual(t, "c", docs[1]["id"])

	docs, err = s.Query(ctx, "videos", pipeline.Window{Filter: published, Skip: 10, Limit: -1})
	assert.Nil(t, err)
	assert.DeepEqual(t, 0, len(docs))

	n, err := s.Count(ctx, "videos", published)
	assert.Nil(t, err)
	assert.DeepEqual(t, int64(4), n)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = s.Count(cancelled, "videos", nil)
	assert.DeepEqual(t, context.Canceled, err)
}
