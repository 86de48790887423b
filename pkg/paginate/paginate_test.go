package paginate

import (
	"context"
	"fmt"
	"math"
	"testing"

	"VideoTube.com/pkg/pipeline"
	"VideoTube.com/pkg/store/memory"
	"github.com/cloudwego/hertz/pkg/common/test/assert"
)

func TestParseQuery(t *testing.T) {
	cases := []struct {
		name, page, limit string
		def               int
		want              Query
	}{
		{"defaults", "", "", DefaultLimit, Query{1, 10}},
		{"garbage falls back", "abc", "x", DefaultLimit, Query{1, 10}},
		{"negative page", "-3", "5", DefaultLimit, Query{1, 5}},
		{"zero limit", "2", "0", SubscriberLimit, Query{2, 20}},
		{"capped", "1", "1000", DefaultLimit, Query{1, MaxLimit}},
		{"huge page", "1000000000000000000", "10", DefaultLimit, Query{MaxPage, 10}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.DeepEqual(t, c.want, ParseQuery(c.page, c.limit, c.def))
		})
	}
}

func seed(t *testing.T, n int) *memory.Store {
	s := memory.New()
	for i := 0; i < n; i++ {
		err := s.Insert(context.Background(), "videos", pipeline.Doc{"id": fmt.Sprintf("v%02d", i), "n": i})
		assert.Nil(t, err)
	}
	return s
}

func TestPaginate(t *testing.T) {
	ctx := context.Background()
	s := seed(t, 25)
	p := pipeline.From("videos").Sort(pipeline.Asc("n"))

	t.Run("middle page", func(t *testing.T) {
		page, err := Paginate(ctx, s, p, Query{Page: 2, Limit: 10})
		assert.Nil(t, err)
		assert.DeepEqual(t, 10, len(page.Docs))
		assert.DeepEqual(t, "v10", page.Docs[0]["id"])
		assert.DeepEqual(t, int64(25), page.TotalDocs)
		assert.DeepEqual(t, int64(3), page.TotalPages)
		assert.DeepEqual(t, int64(11), page.PagingCounter)
		assert.True(t, page.HasPrevPage)
		assert.True(t, page.HasNextPage)
		assert.DeepEqual(t, 1, *page.PrevPage)
		assert.DeepEqual(t, 3, *page.NextPage)
	})

	t.Run("last partial page", func(t *testing.T) {
		page, err := Paginate(ctx, s, p, Query{Page: 3, Limit: 10})
		assert.Nil(t, err)
		assert.DeepEqual(t, 5, len(page.Docs))
		assert.False(t, page.HasNextPage)
		assert.Nil(t, page.NextPage)
	})

	t.Run("beyond the end", func(t *testing.T) {
		page, err := Paginate(ctx, s, p, Query{Page: 9, Limit: 10})
		assert.Nil(t, err)
		assert.DeepEqual(t, 0, len(page.Docs))
		assert.DeepEqual(t, int64(25), page.TotalDocs)
		assert.False(t, page.HasNextPage)
	})

	t.Run("empty collection", func(t *testing.T) {
		page, err := Paginate(ctx, memory.New(), pipeline.From("videos"), Query{Page: 1, Limit: 10})
		assert.Nil(t, err)
		assert.NotNil(t, page.Docs)
		assert.DeepEqual(t, int64(0), page.TotalDocs)
		assert.DeepEqual(t, int64(0), page.TotalPages)
		assert.False(t, page.HasPrevPage)
		assert.False(t, page.HasNextPage)
	})

	t.Run("pipeline is reusable", func(t *testing.T) {
		before := len(p.Stages)
		_, err := Paginate(ctx, s, p, Query{Page: 1, Limit: 3})
		assert.Nil(t, err)
		assert.DeepEqual(t, before, len(p.Stages))
	})
}

func TestPaginateHugePage(t *testing.T) {
	s := seed(t, 25)
	p := pipeline.From("videos").Sort(pipeline.Asc("n"))

	page, err := Paginate(context.Background(), s, p, ParseQuery("1000000000000000000", "10", DefaultLimit))
	assert.Nil(t, err)
	assert.DeepEqual(t, 0, len(page.Docs))
	assert.DeepEqual(t, int64(3), page.TotalPages)
	assert.False(t, page.HasNextPage)
	assert.True(t, page.PagingCounter > 0)

	// callers passing a raw Query are clamped too
	page, err = Paginate(context.Background(), s, p, Query{Page: math.MaxInt, Limit: math.MaxInt})
	assert.Nil(t, err)
	assert.DeepEqual(t, 0, len(page.Docs))
	assert.DeepEqual(t, MaxLimit, page.Limit)
}

// pulling counts the documents the store hands to the executor.
type pulling struct {
	*memory.Store
	rows int
}

func (p *pulling) Find(ctx context.Context, collection string, filter pipeline.Expr) ([]pipeline.Doc, error) {
	docs, err := p.Store.Find(ctx, collection, filter)
	p.rows += len(docs)
	return docs, err
}

func (p *pulling) Query(ctx context.Context, collection string, w pipeline.Window) ([]pipeline.Doc, error) {
	docs, err := p.Store.Query(ctx, collection, w)
	p.rows += len(docs)
	return docs, err
}

func TestPaginateWindowsAtTheStore(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	for i := 0; i < 1000; i++ {
		assert.Nil(t, s.Insert(ctx, "users", pipeline.Doc{"id": fmt.Sprintf("u%03d", i), "username": fmt.Sprintf("user%03d", i)}))
		assert.Nil(t, s.Insert(ctx, "videos", pipeline.Doc{"id": fmt.Sprintf("v%03d", i), "owner": fmt.Sprintf("u%03d", i), "n": i}))
	}
	src := &pulling{Store: s}
	p := pipeline.From("videos").
		Lookup(pipeline.Lookup{From: "users", LocalField: "owner", ForeignField: "id", As: "owner", Single: true}).
		Sort(pipeline.Desc("n")).
		Project("owner", "n")

	page, err := Paginate(ctx, pipeline.NewExecutor(src), p, Query{Page: 2, Limit: 10})
	assert.Nil(t, err)
	assert.DeepEqual(t, int64(1000), page.TotalDocs)
	assert.DeepEqual(t, 10, len(page.Docs))
	assert.DeepEqual(t, "v989", page.Docs[0]["id"])
	owner, _ := page.Docs[0]["owner"].(pipeline.Doc)
	assert.DeepEqual(t, "user989", owner["username"])
	// 10 videos and their 10 owners
	assert.DeepEqual(t, 20, src.rows)
}
