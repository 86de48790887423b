package handlers

import (
	"context"

	"VideoTube.com/cmd/api/handlers/common"
	"VideoTube.com/cmd/relation/service"
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

type PageParam struct {
	Page  string `query:"page"`
	Limit string `query:"limit"`
}

func (h *Handler) ToggleSubscription(ctx context.Context, c *app.RequestContext) {
	subscribed, err := service.NewRelationService(ctx, h.d).ToggleSubscription(common.ActorID(c), c.Param("channelId"))
	errno.SendResponse(c, err, map[string]bool{"is_subscribed": subscribed})
}
