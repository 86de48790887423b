// Package paginate slices any pipeline into pages and reports the totals.
package paginate

import (
	"context"
	"math"
	"strconv"

	"VideoTube.com/pkg/pipeline"
)

const (
	DefaultLimit    = 10
	SubscriberLimit = 20
	MaxLimit        = 100

	// MaxPage keeps (page-1)*limit inside int for any limit up to MaxLimit.
	MaxPage = math.MaxInt / MaxLimit
)

// Query is a validated page request, 1 <= Page <= MaxPage and 1 <= Limit <= MaxLimit.
type Query struct {
	Page  int
	Limit int
}

// ParseQuery reads raw page and limit query values. Anything unparseable or out
// of range falls back to the defaults.
func ParseQuery(page, limit string, defaultLimit int) Query {
	if defaultLimit <= 0 {
		defaultLimit = DefaultLimit
	}
	q := Query{Page: 1, Limit: defaultLimit}
	if n, err := strconv.Atoi(page); err == nil && n > 1 {
		q.Page = n
	}
	if n, err := strconv.Atoi(limit); err == nil && n > 0 {
		q.Limit = n
	}
	return q.clamp()
}

func (q Query) clamp() Query {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Page > MaxPage {
		q.Page = MaxPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	return q
}

// Page is the envelope of a paginated list.
type Page struct {
	Docs          []pipeline.Doc `json:"docs"`
	TotalDocs     int64          `json:"total_docs"`
	Limit         int            `json:"limit"`
	Page          int            `json:"page"`
	TotalPages    int64          `json:"total_pages"`
	PagingCounter int64          `json:"paging_counter"`
	HasPrevPage   bool           `json:"has_prev_page"`
	HasNextPage   bool           `json:"has_next_page"`
	PrevPage      *int           `json:"prev_page"`
	NextPage      *int           `json:"next_page"`
}

const countField = "total"

// Paginate runs p twice: once counted, once windowed. The total never depends
// on the window.
func Paginate(ctx context.Context, agg pipeline.Aggregator, p *pipeline.Pipeline, q Query) (*Page, error) {
	q = q.clamp()

	counted, err := agg.Aggregate(ctx, p.With(pipeline.Count{As: countField}))
	if err != nil {
		return nil, err
	}
	var total int64
	if len(counted) > 0 {
		total, _ = pipeline.Int64(counted[0][countField])
	}

	page := build([]pipeline.Doc{}, total, q)
	if int64(q.Page) > page.TotalPages {
		return page, nil
	}
	docs, err := agg.Aggregate(ctx, p.With(
		pipeline.Skip{N: (q.Page - 1) * q.Limit},
		pipeline.Limit{N: q.Limit},
	))
	if err != nil {
		return nil, err
	}
	if docs != nil {
		page.Docs = docs
	}
	return page, nil
}

func build(docs []pipeline.Doc, total int64, q Query) *Page {
	limit := int64(q.Limit)
	totalPages := (total + limit - 1) / limit
	page := &Page{
		Docs:          docs,
		TotalDocs:     total,
		Limit:         q.Limit,
		Page:          q.Page,
		TotalPages:    totalPages,
		PagingCounter: int64(q.Page-1)*limit + 1,
		HasPrevPage:   q.Page > 1,
		HasNextPage:   int64(q.Page) < totalPages,
	}
	if page.HasPrevPage {
		prev := q.Page - 1
		page.PrevPage = &prev
	}
	if page.HasNextPage {
		next := q.Page + 1
		page.NextPage = &next
	}
	return page
}
