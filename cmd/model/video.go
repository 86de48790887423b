package model

import (
	"time"

	"VideoTube.com/pkg/pipeline"
)

type Video struct {
	ID           string    `gorm:"primaryKey;size:24" json:"id"`
	Owner        string    `gorm:"size:24;not null;index" json:"owner"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	VideoFile    string    `gorm:"size:512;not null" json:"video_file"`
	VideoFileKey string    `gorm:"size:255" json:"video_file_key"`
	Thumbnail    string    `gorm:"size:512;not null" json:"thumbnail"`
	ThumbnailKey string    `gorm:"size:255" json:"thumbnail_key"`
	Duration     float64   `json:"duration"`
	Views        int64     `gorm:"not null;default:0" json:"views"`
	IsPublished  bool      `gorm:"not null;index" json:"is_published"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Video) TableName() string { return Videos }

func (v *Video) ToDoc() pipeline.Doc {
	return pipeline.Doc{
		"id":             v.ID,
		"owner":          v.Owner,
		"title":          v.Title,
		"description":    v.Description,
		"video_file":     v.VideoFile,
		"video_file_key": v.VideoFileKey,
		"thumbnail":      v.Thumbnail,
		"thumbnail_key":  v.ThumbnailKey,
		"duration":       v.Duration,
		"views":          v.Views,
		"is_published":   v.IsPublished,
		"created_at":     v.CreatedAt,
		"updated_at":     v.UpdatedAt,
	}
}

func (v *Video) FromDoc(d pipeline.Doc) {
	v.ID = str(d, "id")
	v.Owner = str(d, "owner")
	v.Title = str(d, "title")
	v.Description = str(d, "description")
	v.VideoFile = str(d, "video_file")
	v.VideoFileKey = str(d, "video_file_key")
	v.Thumbnail = str(d, "thumbnail")
	v.ThumbnailKey = str(d, "thumbnail_key")
	v.Duration = num(d, "duration")
	v.Views = integer(d, "views")
	v.IsPublished = boolean(d, "is_published")
	v.CreatedAt = stamp(d, "created_at")
	v.UpdatedAt = stamp(d, "updated_at")
}
