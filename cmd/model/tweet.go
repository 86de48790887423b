package model

import (
	"time"

	"VideoTube.com/pkg/pipeline"
)

type Tweet struct {
	ID        string    `gorm:"primaryKey;size:24" json:"id"`
	Owner     string    `gorm:"size:24;not null;index" json:"owner"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Tweet) TableName() string { return Tweets }

func (t *Tweet) ToDoc() pipeline.Doc {
	return pipeline.Doc{
		"id":         t.ID,
		"owner":      t.Owner,
		"content":    t.Content,
		"created_at": t.CreatedAt,
		"updated_at": t.UpdatedAt,
	}
}

func (t *Tweet) FromDoc(d pipeline.Doc) {
	t.ID = str(d, "id")
	t.Owner = str(d, "owner")
	t.Content = str(d, "content")
	t.CreatedAt = stamp(d, "created_at")
	t.UpdatedAt = stamp(d, "updated_at")
}
