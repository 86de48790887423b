package handlers

import (
	"context"

	"VideoTube.com/cmd/api/handlers/common"
	"VideoTube.com/cmd/relation/service"
	"VideoTube.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
)

func (h *Handler) ChannelSubscribers(ctx context.Context, c *app.RequestContext) {
	var param PageParam
	if err := c.BindAndValidate(&param); err != nil {
		errno.SendResponse(c, common.BindErr(err), nil)
		return
	}
	page, err := service.NewRelationService(ctx, h.d).ChannelSubscribers(c.Param("channelId"), param.Page, param.Limit)
	errno.SendResponse(c, err, page)
}

func (h *Handler) SubscribedChannels(ctx context.Context, c *app.RequestContext) {
	var param PageParam
	if err := c.BindAndValidate(&param); err != nil {
		errno.SendResponse(c, common.BindErr(err), nil)
		return
	}
	page, err := service.NewRelationService(ctx, h.d).SubscribedChannels(c.Param("subscriberId"), param.Page, param.Limit)
	errno.SendResponse(c, err, page)
}
