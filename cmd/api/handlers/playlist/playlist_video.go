package handlers

import (
	"context"

	"VideoTube.com/cmd/api/handlers/common"
	"VideoTube.com/cmd/playlist/service"
	"VideoTube.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
)

func (h *Handler) AddVideo(ctx context.Context, c *app.RequestContext) {
	playlist, err := service.NewPlaylistService(ctx, h.d).AddVideo(common.ActorID(c), c.Param("playlistId"), c.Param("videoId"))
	errno.SendResponse(c, err, playlist)
}

func (h *Handler) RemoveVideo(ctx context.Context, c *app.RequestContext) {
	playlist, err := service.NewPlaylistService(ctx, h.d).RemoveVideo(common.ActorID(c), c.Param("playlistId"), c.Param("videoId"))
	errno.SendResponse(c, err, playlist)
}
