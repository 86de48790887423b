package db

import (
	"encoding/json"

	"VideoTube.com/cmd/model"
	"VideoTube.com/pkg/pipeline"
	"gorm.io/gorm"
)

// table adapts one gorm model to documents.
type table interface {
	columns() map[string]bool
	// arrays are the json encoded list columns
	arrays() map[string]bool
	newModel() any
	find(tx *gorm.DB) ([]pipeline.Doc, error)
	create(tx *gorm.DB, d pipeline.Doc) error
	encodeArray(items []any) (string, error)
}

type gormTable[T any, PT interface {
	*T
	model.Document
}] struct {
	cols map[string]bool
	arrs map[string]bool
}

func newTable[T any, PT interface {
	*T
	model.Document
}]() table {
	t := gormTable[T, PT]{cols: map[string]bool{}, arrs: map[string]bool{}}
	for k, v := range PT(new(T)).ToDoc() {
		if _, isArray := v.([]any); isArray {
			t.arrs[k] = true
			continue
		}
		t.cols[k] = true
	}
	return t
}

func (t gormTable[T, PT]) columns() map[string]bool { return t.cols }

func (t gormTable[T, PT]) arrays() map[string]bool { return t.arrs }

func (t gormTable[T, PT]) newModel() any { return PT(new(T)) }

func (t gormTable[T, PT]) find(tx *gorm.DB) ([]pipeline.Doc, error) {
	var rows []T
	if err := tx.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]pipeline.Doc, len(rows))
	for i := range rows {
		out[i] = PT(&rows[i]).ToDoc()
	}
	return out, nil
}

func (t gormTable[T, PT]) create(tx *gorm.DB, d pipeline.Doc) error {
	m := PT(new(T))
	m.FromDoc(d)
	return tx.Create(m).Error
}

func (t gormTable[T, PT]) encodeArray(items []any) (string, error) {
	b, err := json.Marshal(items)
	return string(b), err
}

var tables = map[string]table{
	model.Users:         newTable[model.User](),
	model.Videos:        newTable[model.Video](),
	model.Comments:      newTable[model.Comment](),
	model.Likes:         newTable[model.Like](),
	model.Subscriptions: newTable[model.Subscription](),
	model.Tweets:        newTable[model.Tweet](),
	model.Playlists:     newTable[model.Playlist](),
}

// Models lists every table for AutoMigrate.
func Models() []any {
	return []any{
		&model.User{}, &model.Video{}, &model.Comment{}, &model.Like{},
		&model.Subscription{}, &model.Tweet{}, &model.Playlist{},
	}
}
