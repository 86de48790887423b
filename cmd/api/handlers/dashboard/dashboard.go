package handlers

import (
	"context"

	"VideoTube.com/cmd/api/handlers/common"
	"VideoTube.com/cmd/dashboard/service"
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

func (h *Handler) ChannelStats(ctx context.Context, c *app.RequestContext) {
	stats, err := service.NewDashboardService(ctx, h.d).ChannelStats(common.ActorID(c))
	errno.SendResponse(c, err, stats)
}

func (h *Handler) ChannelVideos(ctx context.Context, c *app.RequestContext) {
	videos, err := service.NewDashboardService(ctx, h.d).ChannelVideos(common.ActorID(c))
	errno.SendResponse(c, err, videos)
}
