package model

import (
	"time"

	"VideoTube.com/pkg/pipeline"
)

// Playlist keeps its videos in insertion order.
type Playlist struct {
	ID          string    `gorm:"primaryKey;size:24" json:"id"`
	Owner       string    `gorm:"size:24;not null;index" json:"owner"`
	Name        string    `gorm:"size:128;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Videos      []string  `gorm:"serializer:json;type:json" json:"videos"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Playlist) TableName() string { return Playlists }

func (p *Playlist) ToDoc() pipeline.Doc {
	videos := p.Videos
	if videos == nil {
		videos = []string{}
	}
	return pipeline.Doc{
		"id":          p.ID,
		"owner":       p.Owner,
		"name":        p.Name,
		"description": p.Description,
		"videos":      anys(videos),
		"created_at":  p.CreatedAt,
		"updated_at":  p.UpdatedAt,
	}
}

func (p *Playlist) FromDoc(d pipeline.Doc) {
	p.ID = str(d, "id")
	p.Owner = str(d, "owner")
	p.Name = str(d, "name")
	p.Description = str(d, "description")
	p.Videos = strs(d, "videos")
	p.CreatedAt = stamp(d, "created_at")
	p.UpdatedAt = stamp(d, "updated_at")
}
