package service

import (
	"context"
	"strings"
	"time"

	"VideoTube.com/cmd/model"
	"VideoTube.com/cmd/pipelines"
	"VideoTube.com/pkg/deps"
	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/paginate"
	"VideoTube.com/pkg/pipeline"
	"VideoTube.com/pkg/store"
	"VideoTube.com/pkg/utils"
)

type TweetService struct {
	ctx context.Context
	d   *deps.Deps
}

func NewTweetService(ctx context.Context, d *deps.Deps) *TweetService {
	return &TweetService{ctx: ctx, d: d}
}

func (service *TweetService) CreateTweet(actor, content string) (pipeline.Doc, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errno.MalformedInputErr.WithMessage("Tweet content is required")
	}
	now := time.Now()
	tweet := &model.Tweet{ID: utils.NewObjectID(), Owner: actor, Content: content, CreatedAt: now, UpdatedAt: now}
	doc := tweet.ToDoc()
	if err := service.d.Store.Insert(service.ctx, model.Tweets, doc); err != nil {
		return nil, deps.StoreErr(service.ctx, "creating the tweet", err)
	}
	return doc, nil
}

// UserTweets lists userID's tweets with like counts as seen by viewerID.
func (service *TweetService) UserTweets(userID, viewerID, page, limit string) (*paginate.Page, error) {
	if err := deps.ValidID(userID, "user"); err != nil {
		return nil, err
	}
	if err := service.d.MustExist(service.ctx, model.Users, userID, "user"); err != nil {
		return nil, err
	}
	p, err := paginate.Paginate(service.ctx, service.d.Store, pipelines.UserTweets(userID, viewerID),
		paginate.ParseQuery(page, limit, paginate.DefaultLimit))
	if err != nil {
		return nil, deps.StoreErr(service.ctx, "fetching the tweets", err)
	}
	return p, nil
}

func (service *TweetService) UpdateTweet(actor, tweetID, content string) (pipeline.Doc, error) {
	if err := deps.ValidID(tweetID, "tweet"); err != nil {
		return nil, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errno.MalformedInputErr.WithMessage("Tweet content is required")
	}
	if _, err := service.d.Owned(service.ctx, model.Tweets, tweetID, actor, "tweet"); err != nil {
		return nil, err
	}
	doc, err := service.d.Store.UpdateOne(service.ctx, model.Tweets, pipeline.Eq("id", tweetID), store.Update{
		Set: pipeline.Doc{"content": content, "updated_at": time.Now()},
	})
	if err != nil {
		return nil, deps.StoreErr(service.ctx, "updating the tweet", err)
	}
	return doc, nil
}

func (service *TweetService) DeleteTweet(actor, tweetID string) (pipeline.Doc, error) {
	if err := deps.ValidID(tweetID, "tweet"); err != nil {
		return nil, err
	}
	tweet, err := service.d.Owned(service.ctx, model.Tweets, tweetID, actor, "tweet")
	if err != nil {
		return nil, err
	}
	if _, err = service.d.Store.DeleteOne(service.ctx, model.Tweets, pipeline.Eq("id", tweetID)); err != nil {
		return nil, deps.StoreErr(service.ctx, "deleting the tweet", err)
	}
	target := model.LikeTarget{Kind: model.TweetTarget, ID: tweetID}
	if _, err = service.d.Store.DeleteMany(service.ctx, model.Likes, target.Filter()); err != nil {
		return nil, deps.StoreErr(service.ctx, "deleting the tweet likes", err)
	}
	return tweet, nil
}
