package pipeline

import (
	"context"
	"fmt"
	"testing"

	"github.com/cloudwego/hertz/pkg/common/test/assert"
)

type fakeSource struct {
	data  map[string][]Doc
	finds int
}

func (f *fakeSource) Find(_ context.Context, collection string, filter Expr) ([]Doc, error) {
	f.finds++
	out := make([]Doc, 0)
	for _, d := range f.data[collection] {
		if filter == nil || filter.Matches(d) {
			out = append(out, d.Clone())
		}
	}
	return out, nil
}

func newSource() *fakeSource {
	return &fakeSource{data: map[string][]Doc{
		"users": {
			{"id": "u1", "username": "alice", "password": "x"},
			{"id": "u2", "username": "bob", "password": "y"},
		},
		"videos": {
			{"id": "v1", "owner": "u1", "title": "Go tour", "views": int64(3), "tags": []any{"go", "web"}},
			{"id": "v2", "owner": "u2", "title": "Rust intro", "views": int64(7), "tags": []any{}},
			{"id": "v3", "owner": "ghost", "title": "Lost", "views": int64(1)},
		},
		"likes": {
			{"id": "l1", "video": "v1", "liked_by": "u2"},
			{"id": "l2", "video": "v1", "liked_by": "u1"},
		},
	}}
}

func ids(docs []Doc) []any {
	out := make([]any, len(docs))
	for i, d := range docs {
		out[i] = d["id"]
	}
	return out
}

func TestAggregateMatchSortLimit(t *testing.T) {
	src := newSource()
	e := NewExecutor(src)
	p := From("videos").
		Match(Or(ContainsFold("title", "GO"), ContainsFold("title", "lost"))).
		Sort(Desc("views")).
		Limit(2)

	docs, err := e.Aggregate(context.Background(), p)
	assert.Nil(t, err)
	assert.DeepEqual(t, []any{"v1", "v3"}, ids(docs))
	assert.DeepEqual(t, 1, src.finds)
}

func TestAggregateSingleLookupKeepsDanglingAsNil(t *testing.T) {
	e := NewExecutor(newSource())
	p := From("videos").
		Lookup(Lookup{From: "users", LocalField: "owner", ForeignField: "id", As: "owner", Single: true,
			Pipeline: []Stage{Project{Fields: []string{"username"}}}}).
		Sort(Asc("id"))

	docs, err := e.Aggregate(context.Background(), p)
	assert.Nil(t, err)
	assert.DeepEqual(t, 3, len(docs))
	assert.DeepEqual(t, Doc{"id": "u1", "username": "alice"}, docs[0]["owner"])
	assert.Nil(t, docs[2]["owner"])
}

func TestAggregateCountsAndFlags(t *testing.T) {
	e := NewExecutor(newSource())
	p := From("videos").
		Match(Eq("id", "v1")).
		Lookup(Lookup{From: "likes", LocalField: "id", ForeignField: "video", As: "likes"}).
		AddFields(
			Set("likes_count", Size("likes")),
			Set("is_liked", Has("likes.liked_by", "u2")),
			Set("tag_count", Size("tags")),
		).
		Unset("likes")

	docs, err := e.Aggregate(context.Background(), p)
	assert.Nil(t, err)
	assert.DeepEqual(t, 1, len(docs))
	assert.DeepEqual(t, int64(2), docs[0]["likes_count"])
	assert.DeepEqual(t, true, docs[0]["is_liked"])
	assert.DeepEqual(t, int64(2), docs[0]["tag_count"])
	_, present := docs[0]["likes"]
	assert.False(t, present)
}

func TestAggregateUnwindReplaceRootCount(t *testing.T) {
	e := NewExecutor(newSource())

	t.Run("unwind drops empty arrays", func(t *testing.T) {
		docs, err := e.Aggregate(context.Background(), From("videos").Unwind("tags"))
		assert.Nil(t, err)
		assert.DeepEqual(t, 2, len(docs))
		assert.DeepEqual(t, "go", docs[0]["tags"])
		assert.DeepEqual(t, "web", docs[1]["tags"])
	})

	t.Run("replace root", func(t *testing.T) {
		p := From("likes").
			Lookup(Lookup{From: "videos", LocalField: "video", ForeignField: "id", As: "video", Single: true}).
			ReplaceRoot("video")
		docs, err := e.Aggregate(context.Background(), p)
		assert.Nil(t, err)
		assert.DeepEqual(t, []any{"v1", "v1"}, ids(docs))
	})

	t.Run("count", func(t *testing.T) {
		p := From("videos").With(Count{As: "total"})
		docs, err := e.Aggregate(context.Background(), p)
		assert.Nil(t, err)
		assert.DeepEqual(t, []Doc{{"total": int64(3)}}, docs)

		empty := From("videos").With(Match{Filter: Eq("id", "nope")}, Count{As: "total"})
		docs, err = e.Aggregate(context.Background(), empty)
		assert.Nil(t, err)
		assert.DeepEqual(t, 0, len(docs))
	})

	t.Run("skip past the end", func(t *testing.T) {
		docs, err := e.Aggregate(context.Background(), From("videos").With(Skip{N: 10}))
		assert.Nil(t, err)
		assert.DeepEqual(t, 0, len(docs))
	})
}

func TestAggregateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewExecutor(newSource()).Aggregate(ctx, From("videos").Sort(Asc("id")))
	assert.DeepEqual(t, context.Canceled, err)
}

func TestExprs(t *testing.T) {
	d := Doc{"id": "a", "n": int64(2), "tags": []any{"x", "y"}, "sub": Doc{"k": "v"}, "nil": nil}

	assert.True(t, Eq("n", 2).Matches(d))
	assert.True(t, Eq("n", 2.0).Matches(d))
	assert.True(t, Eq("tags", "y").Matches(d))
	assert.True(t, Eq("sub.k", "v").Matches(d))
	assert.True(t, Eq("missing", nil).Matches(d))
	assert.False(t, Exists("nil").Matches(d))
	assert.True(t, Exists("sub.k").Matches(d))
	assert.True(t, In("tags", []any{"z", "x"}).Matches(d))
	assert.False(t, And(Eq("id", "a"), Eq("n", 3)).Matches(d))
	assert.True(t, Or(Eq("id", "b"), Eq("n", 2)).Matches(d))
	assert.Nil(t, And(nil, nil))
}

func TestCompareOrdersByKind(t *testing.T) {
	assert.DeepEqual(t, -1, Compare(nil, 1))
	assert.DeepEqual(t, -1, Compare(1, "a"))
	assert.DeepEqual(t, 0, Compare(int32(4), 4.0))
	assert.DeepEqual(t, 1, Compare("b", "a"))
	assert.DeepEqual(t, -1, Compare(false, true))
}

func TestSumMixesIntsAndFloats(t *testing.T) {
	d := Doc{"items": []any{Doc{"v": int64(2)}, Doc{"v": 1.5}}}
	assert.DeepEqual(t, 3.5, Sum("items.v").Eval(d))
	assert.DeepEqual(t, int64(0), Sum("none").Eval(d))
}

func stageNames(stages []Stage) []string {
	out := make([]string, len(stages))
	for i, s := range stages {
		out[i] = s.stageName()
	}
	return out
}

func TestNormalize(t *testing.T) {
	owner := Lookup{From: "users", LocalField: "owner", ForeignField: "id", As: "owner", Single: true}

	t.Run("sort and window move ahead of lookups", func(t *testing.T) {
		got := normalize([]Stage{Match{}, owner, Sort{Keys: []SortKey{Desc("views")}}, Skip{N: 20}, Limit{N: 10}})
		assert.DeepEqual(t, []string{"match", "sort", "skip", "limit", "lookup"}, stageNames(got))
	})

	t.Run("sort stays behind the stage that sets its key", func(t *testing.T) {
		got := normalize([]Stage{owner, AddFields{Fields: []Field{Set("likes_count", Size("likes"))}}, Sort{Keys: []SortKey{Desc("likes_count")}}, Limit{N: 5}})
		assert.DeepEqual(t, []string{"lookup", "addFields", "sort", "limit"}, stageNames(got))
	})

	t.Run("sort on a looked up field stays put", func(t *testing.T) {
		got := normalize([]Stage{owner, Sort{Keys: []SortKey{Asc("owner.username")}}})
		assert.DeepEqual(t, []string{"lookup", "sort"}, stageNames(got))
	})

	t.Run("count drops row preserving stages", func(t *testing.T) {
		got := normalize([]Stage{Match{}, owner, Sort{Keys: []SortKey{Asc("id")}}, Unset{Fields: []string{"x"}}, Count{As: "n"}})
		assert.DeepEqual(t, []string{"match", "count"}, stageNames(got))
	})

	t.Run("unwind blocks the window", func(t *testing.T) {
		got := normalize([]Stage{Unwind{Field: "tags"}, Limit{N: 1}})
		assert.DeepEqual(t, []string{"unwind", "limit"}, stageNames(got))
	})
}

func TestWindowFoldsSkipAfterLimit(t *testing.T) {
	w, rest, folded := window(Window{}, []Stage{Sort{Keys: []SortKey{Asc("id")}}, Limit{N: 10}, Skip{N: 3}, Unwind{Field: "tags"}})
	assert.True(t, folded)
	assert.DeepEqual(t, 3, w.Skip)
	assert.DeepEqual(t, 7, w.Limit)
	assert.DeepEqual(t, 1, len(rest))

	_, _, folded = window(Window{}, []Stage{Unwind{Field: "tags"}})
	assert.False(t, folded)
}

// windowSource answers windowed queries and counts the rows it returns.
type windowSource struct {
	*fakeSource
	rows, counts int
}

func (w *windowSource) Find(ctx context.Context, collection string, filter Expr) ([]Doc, error) {
	docs, err := w.fakeSource.Find(ctx, collection, filter)
	w.rows += len(docs)
	return docs, err
}

func (w *windowSource) Query(ctx context.Context, collection string, win Window) ([]Doc, error) {
	docs, err := w.fakeSource.Find(ctx, collection, win.Filter)
	if err != nil {
		return nil, err
	}
	docs = ApplyWindow(docs, Window{Sort: win.Sort, Skip: win.Skip, Limit: win.Limit})
	w.rows += len(docs)
	return docs, nil
}

func (w *windowSource) Count(ctx context.Context, collection string, filter Expr) (int64, error) {
	w.counts++
	docs, err := w.fakeSource.Find(ctx, collection, filter)
	return int64(len(docs)), err
}

func TestAggregatePushesWindowToQuerier(t *testing.T) {
	big := &fakeSource{data: map[string][]Doc{}}
	for i := 0; i < 1000; i++ {
		big.data["users"] = append(big.data["users"], Doc{"id": fmt.Sprintf("u%04d", i), "username": fmt.Sprintf("user%04d", i)})
		big.data["videos"] = append(big.data["videos"], Doc{
			"id": fmt.Sprintf("v%04d", i), "owner": fmt.Sprintf("u%04d", i),
			"created_at": int64(i), "is_published": i%2 == 0,
		})
	}
	listing := From("videos").
		Match(Eq("is_published", true)).
		Lookup(Lookup{From: "users", LocalField: "owner", ForeignField: "id", As: "owner", Single: true}).
		Sort(Desc("created_at"))
	ctx := context.Background()

	src := &windowSource{fakeSource: big}
	page, err := NewExecutor(src).Aggregate(ctx, listing.With(Skip{N: 10}, Limit{N: 10}))
	assert.Nil(t, err)
	assert.DeepEqual(t, 20, src.rows)

	plain, err := NewExecutor(big).Aggregate(ctx, listing.With(Skip{N: 10}, Limit{N: 10}))
	assert.Nil(t, err)
	assert.DeepEqual(t, plain, page)
	assert.DeepEqual(t, "v0978", page[0]["id"])

	counted, err := NewExecutor(src).Aggregate(ctx, listing.With(Count{As: "total"}))
	assert.Nil(t, err)
	assert.DeepEqual(t, []Doc{{"total": int64(500)}}, counted)
	assert.DeepEqual(t, 1, src.counts)
	assert.DeepEqual(t, 20, src.rows)
}
