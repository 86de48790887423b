package model

import (
	"time"

	"VideoTube.com/pkg/pipeline"
)

type Comment struct {
	ID        string    `gorm:"primaryKey;size:24" json:"id"`
	Video     string    `gorm:"size:24;not null;index" json:"video"`
	Owner     string    `gorm:"size:24;not null;index" json:"owner"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Comment) TableName() string { return Comments }

func (c *Comment) ToDoc() pipeline.Doc {
	return pipeline.Doc{
		"id":         c.ID,
		"video":      c.Video,
		"owner":      c.Owner,
		"content":    c.Content,
		"created_at": c.CreatedAt,
		"updated_at": c.UpdatedAt,
	}
}

func (c *Comment) FromDoc(d pipeline.Doc) {
	c.ID = str(d, "id")
	c.Video = str(d, "video")
	c.Owner = str(d, "owner")
	c.Content = str(d, "content")
	c.CreatedAt = stamp(d, "created_at")
	c.UpdatedAt = stamp(d, "updated_at")
}

// 点赞对象的类型
const (
	VideoTarget   = "video"
	CommentTarget = "comment"
	TweetTarget   = "tweet"
)

// LikeTarget is the one thing a like points at.
type LikeTarget struct {
	Kind string
	ID   string
}

// Collection is where the liked entity lives.
func (t LikeTarget) Collection() string {
	switch t.Kind {
	case CommentTarget:
		return Comments
	case TweetTarget:
		return Tweets
	}
	return Videos
}

// Filter selects the likes of this target.
func (t LikeTarget) Filter() pipeline.Expr {
	return pipeline.And(pipeline.Eq("target_kind", t.Kind), pipeline.Eq("target_id", t.ID))
}

type Like struct {
	ID         string    `gorm:"primaryKey;size:24" json:"id"`
	LikedBy    string    `gorm:"size:24;not null;uniqueIndex:idx_likes_pair,priority:1" json:"liked_by"`
	TargetKind string    `gorm:"size:16;not null;uniqueIndex:idx_likes_pair,priority:2" json:"target_kind"`
	TargetID   string    `gorm:"size:24;not null;uniqueIndex:idx_likes_pair,priority:3;index" json:"target_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Like) TableName() string { return Likes }

func NewLike(id, likedBy string, target LikeTarget, at time.Time) *Like {
	return &Like{ID: id, LikedBy: likedBy, TargetKind: target.Kind, TargetID: target.ID, CreatedAt: at}
}

func (l *Like) ToDoc() pipeline.Doc {
	return pipeline.Doc{
		"id":          l.ID,
		"liked_by":    l.LikedBy,
		"target_kind": l.TargetKind,
		"target_id":   l.TargetID,
		"created_at":  l.CreatedAt,
	}
}

func (l *Like) FromDoc(d pipeline.Doc) {
	l.ID = str(d, "id")
	l.LikedBy = str(d, "liked_by")
	l.TargetKind = str(d, "target_kind")
	l.TargetID = str(d, "target_id")
	l.CreatedAt = stamp(d, "created_at")
}
