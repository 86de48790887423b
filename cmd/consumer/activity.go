package main

import (
	"context"

	"VideoTube.com/pkg/metrics"
	"VideoTube.com/pkg/mq"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

var known = map[string]bool{
	mq.VideoLiked:      true,
	mq.CommentLiked:    true,
	mq.TweetLiked:      true,
	mq.Subscribed:      true,
	mq.CommentCreated:  true,
	mq.VideoPublished:  true,
	mq.VideoDeleted:    true,
	mq.PlaylistChanged: true,
}

// activityHandler 记录每条交互事件的指标与日志
type activityHandler struct{}

func (activityHandler) HandleEvent(ctx context.Context, event *mq.Event) error {
	typ := event.Type
	if !known[typ] {
		hlog.CtxWarnf(ctx, "unknown event type %q (event %s)", typ, event.EventID)
		typ = "unknown"
	}
	metrics.RecordEvent(typ, event.Active)
	hlog.CtxInfof(ctx, "event %s: actor=%s target=%s active=%t", typ, event.ActorID, event.TargetID, event.Active)
	return nil
}
