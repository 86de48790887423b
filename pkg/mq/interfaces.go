package mq

import "context"

// Publisher 消息生产者接口
type Publisher interface {
	Publish(ctx context.Context, event *Event) error
	Close() error
}

var (
	_ Publisher = (*Producer)(nil)
	_ Publisher = Nop{}
	_ Publisher = (*Recorder)(nil)
)
