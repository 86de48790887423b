package mq

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
	"github.com/rabbitmq/amqp091-go"
)

// Handler 处理一条交互事件. 返回错误时消息会重新入队
type Handler interface {
	HandleEvent(ctx context.Context, event *Event) error
}

type HandlerFunc func(ctx context.Context, event *Event) error

func (f HandlerFunc) HandleEvent(ctx context.Context, event *Event) error {
	return f(ctx, event)
}

type Consumer struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
}

func NewConsumer(rabbitmqURL string, prefetch int) (*Consumer, error) {
	conn, err := amqp091.Dial(rabbitmqURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	// 设置QoS，限制未确认消息数量
	if err = ch.Qos(prefetch, 0, false); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to set QoS: %w", err)
	}

	if err = declareTopology(ch); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to setup topology: %w", err)
	}

	return &Consumer{conn: conn, channel: ch}, nil
}

// Consume delivers every event of the interaction queue to handler until ctx
// is cancelled or the channel closes.
func (c *Consumer) Consume(ctx context.Context, handler Handler) error {
	msgs, err := c.channel.Consume(
		InteractionQueue,
		"",    // consumer
		false, // auto-ack (手动确认)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("failed to register a consumer: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			hlog.Info("Event consumer context cancelled")
			return nil
		case d, ok := <-msgs:
			if !ok {
				hlog.Info("Event consumer channel closed")
				return errors.New("amqp delivery channel closed")
			}
			Deliver(ctx, d, handler)
		}
	}
}

// Deliver decodes one delivery and hands it to handler. Undecodable messages
// are dropped, failed ones requeued.
func Deliver(ctx context.Context, d amqp091.Delivery, handler Handler) {
	event, err := Decode(d.Body)
	if err != nil {
		hlog.CtxErrorf(ctx, "Failed to decode event %s: %v", d.MessageId, err)
		d.Nack(false, false) // 拒绝消息，不重新入队
		return
	}

	if err := handler.HandleEvent(ctx, event); err != nil {
		hlog.CtxErrorf(ctx, "Failed to handle %s event: %v", event.Type, err)
		d.Nack(false, !d.Redelivered) // 只重试一次
		return
	}

	d.Ack(false)
	hlog.CtxDebugf(ctx, "Successfully processed event: %+v", event)
}

// Decode parses an event body. Events without an id or routing key are invalid.
func Decode(body []byte) (*Event, error) {
	var event Event
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, errors.Wrap(err, "unmarshal event")
	}
	if event.EventID == "" || event.Type == "" {
		return nil, errors.New("event is missing event_id or type")
	}
	return &event, nil
}

func (c *Consumer) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
