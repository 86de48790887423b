package model

import (
	"time"

	"VideoTube.com/pkg/pipeline"
)

// Subscription 订阅关系, subscriber 订阅了 channel
type Subscription struct {
	ID         string    `gorm:"primaryKey;size:24" json:"id"`
	Subscriber string    `gorm:"size:24;not null;uniqueIndex:idx_subscriptions_pair,priority:1" json:"subscriber"`
	Channel    string    `gorm:"size:24;not null;uniqueIndex:idx_subscriptions_pair,priority:2;index" json:"channel"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Subscription) TableName() string { return Subscriptions }

func (s *Subscription) ToDoc() pipeline.Doc {
	return pipeline.Doc{
		"id":         s.ID,
		"subscriber": s.Subscriber,
		"channel":    s.Channel,
		"created_at": s.CreatedAt,
	}
}

func (s *Subscription) FromDoc(d pipeline.Doc) {
	s.ID = str(d, "id")
	s.Subscriber = str(d, "subscriber")
	s.Channel = str(d, "channel")
	s.CreatedAt = stamp(d, "created_at")
}
