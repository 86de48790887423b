package handlers

import (
	"context"

	"VideoTube.com/cmd/api/handlers/common"
	"VideoTube.com/cmd/tweet/service"
	"VideoTube.com/pkg/deps"
	"VideoTube.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
)

type Handler struct {
	d *deps.Deps
}

func New(d *deps.Deps) *Handler {
	return &Handler{d: d}
}

type TweetParam struct {
	Content string `json:"content" form:"content"`
}

type PageParam struct {
	Page  string `query:"page"`
	Limit string `query:"limit"`
}

func (h *Handler) CreateTweet(ctx context.Context, c *app.RequestContext) {
	var param TweetParam
	if err := c.BindAndValidate(&param); err != nil {
		errno.SendResponse(c, common.BindErr(err), nil)
		return
	}
	tweet, err := service.NewTweetService(ctx, h.d).CreateTweet(common.ActorID(c), param.Content)
	errno.SendResponse(c, err, tweet)
}

func (h *Handler) UserTweets(ctx context.Context, c *app.RequestContext) {
	var param PageParam
	if err := c.BindAndValidate(&param); err != nil {
		errno.SendResponse(c, common.BindErr(err), nil)
		return
	}
	page, err := service.NewTweetService(ctx, h.d).UserTweets(c.Param("userId"), common.ActorID(c), param.Page, param.Limit)
	errno.SendResponse(c, err, page)
}

func (h *Handler) UpdateTweet(ctx context.Context, c *app.RequestContext) {
	var param TweetParam
	if err := c.BindAndValidate(&param); err != nil {
		errno.SendResponse(c, common.BindErr(err), nil)
		return
	}
	tweet, err := service.NewTweetService(ctx, h.d).UpdateTweet(common.ActorID(c), c.Param("tweetId"), param.Content)
	errno.SendResponse(c, err, tweet)
}

func (h *Handler) DeleteTweet(ctx context.Context, c *app.RequestContext) {
	tweet, err := service.NewTweetService(ctx, h.d).DeleteTweet(common.ActorID(c), c.Param("tweetId"))
	errno.SendResponse(c, err, tweet)
}
