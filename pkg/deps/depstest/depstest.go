// Package depstest builds a Deps backed by in-process adapters for service tests.
package depstest

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"VideoTube.com/cmd/dal"
	"VideoTube.com/cmd/model"
	"VideoTube.com/pkg/deps"
	"VideoTube.com/pkg/mq"
	"VideoTube.com/pkg/oss"
	"VideoTube.com/pkg/pipeline"
	"VideoTube.com/pkg/store"
	"VideoTube.com/pkg/utils"
)

type Env struct {
	*deps.Deps
	Counter *Counting
	Media   *oss.LocalStore
	Events  *mq.Recorder

	t    *testing.T
	base time.Time
	seq  int
}

// New returns an empty environment. Media durations probe as 42.5 seconds.
func New(t *testing.T) *Env {
	t.Helper()
	counter := &Counting{Store: dal.NewMemoryStore()}
	media := oss.NewLocalStore("http://media.local")
	events := &mq.Recorder{}
	return &Env{
		Deps: &deps.Deps{
			Store:  counter,
			Media:  media,
			Events: events,
			Prober: utils.StaticProber{Seconds: 42.5},
		},
		Counter: counter,
		Media:   media,
		Events:  events,
		t:       t,
		base:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (e *Env) at() time.Time {
	e.seq++
	return e.base.Add(time.Duration(e.seq) * time.Minute)
}

func (e *Env) insert(doc model.Document) {
	e.t.Helper()
	if err := e.Store.Insert(context.Background(), doc.TableName(), doc.ToDoc()); err != nil {
		e.t.Fatalf("seed %s: %v", doc.TableName(), err)
	}
}

func (e *Env) User(username string) string {
	u := &model.User{
		ID:        utils.NewObjectID(),
		Username:  username,
		Email:     username + "@example.com",
		FullName:  username,
		Avatar:    "http://media.local/picture/avatar/" + username + ".png",
		CreatedAt: e.at(),
	}
	u.UpdatedAt = u.CreatedAt
	e.insert(u)
	return u.ID
}

func (e *Env) Video(owner, title string, published bool) string {
	v := &model.Video{
		ID:          utils.NewObjectID(),
		Owner:       owner,
		Title:       title,
		Description: title + " description",
		VideoFile:   "http://media.local/video/" + title + ".mp4",
		Thumbnail:   "http://media.local/picture/thumbnail/" + title + ".png",
		Duration:    10,
		IsPublished: published,
		CreatedAt:   e.at(),
	}
	v.UpdatedAt = v.CreatedAt
	e.insert(v)
	return v.ID
}

func (e *Env) Comment(video, owner, content string) string {
	c := &model.Comment{ID: utils.NewObjectID(), Video: video, Owner: owner, Content: content, CreatedAt: e.at()}
	c.UpdatedAt = c.CreatedAt
	e.insert(c)
	return c.ID
}

func (e *Env) Tweet(owner, content string) string {
	tw := &model.Tweet{ID: utils.NewObjectID(), Owner: owner, Content: content, CreatedAt: e.at()}
	tw.UpdatedAt = tw.CreatedAt
	e.insert(tw)
	return tw.ID
}

func (e *Env) Like(by string, target model.LikeTarget) {
	e.insert(model.NewLike(utils.NewObjectID(), by, target, e.at()))
}

func (e *Env) Subscribe(subscriber, channel string) {
	e.insert(&model.Subscription{ID: utils.NewObjectID(), Subscriber: subscriber, Channel: channel, CreatedAt: e.at()})
}

func (e *Env) Playlist(owner, name string, videos ...string) string {
	p := &model.Playlist{ID: utils.NewObjectID(), Owner: owner, Name: name, Videos: videos, CreatedAt: e.at()}
	p.UpdatedAt = p.CreatedAt
	e.insert(p)
	return p.ID
}

// Get loads a document straight from the store, or nil.
func (e *Env) Get(collection, id string) pipeline.Doc {
	doc, err := e.Store.FindOne(context.Background(), collection, pipeline.Eq("id", id))
	if err != nil {
		return nil
	}
	return doc
}

// Count returns how many documents of collection match filter.
func (e *Env) Count(collection string, filter pipeline.Expr) int {
	docs, err := e.Store.Find(context.Background(), collection, filter)
	if err != nil {
		e.t.Fatalf("count %s: %v", collection, err)
	}
	return len(docs)
}

// File writes content to a temporary file called name and returns its path.
func (e *Env) File(name, content string) string {
	e.t.Helper()
	p := filepath.Join(e.t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		e.t.Fatalf("write %s: %v", p, err)
	}
	return p
}

// Counting counts every call that reaches the wrapped store.
type Counting struct {
	store.Store
	calls atomic.Int64
}

func (c *Counting) Calls() int64 { return c.calls.Load() }

func (c *Counting) Reset() { c.calls.Store(0) }

func (c *Counting) Find(ctx context.Context, collection string, filter pipeline.Expr) ([]pipeline.Doc, error) {
	c.calls.Add(1)
	return c.Store.Find(ctx, collection, filter)
}

func (c *Counting) Aggregate(ctx context.Context, p *pipeline.Pipeline) ([]pipeline.Doc, error) {
	c.calls.Add(1)
	return c.Store.Aggregate(ctx, p)
}

func (c *Counting) FindOne(ctx context.Context, collection string, filter pipeline.Expr) (pipeline.Doc, error) {
	c.calls.Add(1)
	return c.Store.FindOne(ctx, collection, filter)
}

func (c *Counting) Exists(ctx context.Context, collection string, filter pipeline.Expr) (bool, error) {
	c.calls.Add(1)
	return c.Store.Exists(ctx, collection, filter)
}

func (c *Counting) Insert(ctx context.Context, collection string, doc pipeline.Doc) error {
	c.calls.Add(1)
	return c.Store.Insert(ctx, collection, doc)
}

func (c *Counting) UpdateOne(ctx context.Context, collection string, filter pipeline.Expr, upd store.Update) (pipeline.Doc, error) {
	c.calls.Add(1)
	return c.Store.UpdateOne(ctx, collection, filter, upd)
}

func (c *Counting) DeleteOne(ctx context.Context, collection string, filter pipeline.Expr) (pipeline.Doc, error) {
	c.calls.Add(1)
	return c.Store.DeleteOne(ctx, collection, filter)
}

func (c *Counting) DeleteMany(ctx context.Context, collection string, filter pipeline.Expr) (int64, error) {
	c.calls.Add(1)
	return c.Store.DeleteMany(ctx, collection, filter)
}
