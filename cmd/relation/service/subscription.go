package service

import (
	"context"
	"time"

	"VideoTube.com/cmd/model"
	"VideoTube.com/cmd/pipelines"
	"VideoTube.com/pkg/deps"
	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/metrics"
	"VideoTube.com/pkg/mq"
	"VideoTube.com/pkg/paginate"
	"VideoTube.com/pkg/pipeline"
	"VideoTube.com/pkg/toggle"
	"VideoTube.com/pkg/utils"
)

type RelationService struct {
	ctx context.Context
	d   *deps.Deps
}

func NewRelationService(ctx context.Context, d *deps.Deps) *RelationService {
	return &RelationService{ctx: ctx, d: d}
}

// ToggleSubscription subscribes actor to channelID, or unsubscribes.
func (service *RelationService) ToggleSubscription(actor, channelID string) (bool, error) {
	if err := deps.ValidID(channelID, "channel"); err != nil {
		return false, err
	}
	if actor == channelID {
		return false, errno.MalformedInputErr.WithMessage("You cannot subscribe to your own channel")
	}
	if err := service.d.MustExist(service.ctx, model.Users, channelID, "channel"); err != nil {
		return false, err
	}

	res, err := toggle.Toggle(service.ctx, service.d.Store, toggle.Association{
		Collection: model.Subscriptions,
		Pair:       pipeline.And(pipeline.Eq("subscriber", actor), pipeline.Eq("channel", channelID)),
		New: func() pipeline.Doc {
			sub := &model.Subscription{
				ID:         utils.NewObjectID(),
				Subscriber: actor,
				Channel:    channelID,
				CreatedAt:  time.Now(),
			}
			return sub.ToDoc()
		},
	})
	if err != nil {
		return false, deps.StoreErr(service.ctx, "toggling the subscription", err)
	}
	metrics.RecordToggle("subscription", res.Associated)
	service.d.Publish(service.ctx, mq.NewEvent(mq.Subscribed, actor, channelID, res.Associated))
	return res.Associated, nil
}

func (service *RelationService) ChannelSubscribers(channelID, page, limit string) (*paginate.Page, error) {
	if err := deps.ValidID(channelID, "channel"); err != nil {
		return nil, err
	}
	if err := service.d.MustExist(service.ctx, model.Users, channelID, "channel"); err != nil {
		return nil, err
	}
	p, err := paginate.Paginate(service.ctx, service.d.Store, pipelines.ChannelSubscribers(channelID),
		paginate.ParseQuery(page, limit, paginate.SubscriberLimit))
	if err != nil {
		return nil, deps.StoreErr(service.ctx, "fetching the subscribers", err)
	}
	return p, nil
}

func (service *RelationService) SubscribedChannels(subscriberID, page, limit string) (*paginate.Page, error) {
	if err := deps.ValidID(subscriberID, "subscriber"); err != nil {
		return nil, err
	}
	if err := service.d.MustExist(service.ctx, model.Users, subscriberID, "subscriber"); err != nil {
		return nil, err
	}
	p, err := paginate.Paginate(service.ctx, service.d.Store, pipelines.SubscribedChannels(subscriberID),
		paginate.ParseQuery(page, limit, paginate.SubscriberLimit))
	if err != nil {
		return nil, deps.StoreErr(service.ctx, "fetching the subscribed channels", err)
	}
	return p, nil
}
