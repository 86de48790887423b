package mq

import (
	"time"

	"github.com/google/uuid"
)

// 交换机与路由键
const (
	InteractionExchange = "videotube_events"
	InteractionQueue    = "videotube_event_queue"

	VideoLiked      = "like.video"
	CommentLiked    = "like.comment"
	TweetLiked      = "like.tweet"
	Subscribed      = "subscription.toggle"
	CommentCreated  = "comment.created"
	VideoPublished  = "video.published"
	VideoDeleted    = "video.deleted"
	PlaylistChanged = "playlist.changed"
)

// Event 交互事件
type Event struct {
	EventID   string `json:"event_id"`
	Type      string `json:"type"`      // 路由键, 比如 like.video
	ActorID   string `json:"actor_id"`  // 操作用户ID
	TargetID  string `json:"target_id"` // 视频/评论/频道ID
	Active    bool   `json:"active"`    // 点赞或订阅后的状态
	Timestamp int64  `json:"timestamp"`
}

func NewEvent(typ, actor, target string, active bool) *Event {
	return &Event{
		EventID:   uuid.NewString(),
		Type:      typ,
		ActorID:   actor,
		TargetID:  target,
		Active:    active,
		Timestamp: time.Now().UnixMilli(),
	}
}
