package handlers

import (
	"context"

	"VideoTube.com/cmd/api/handlers/common"
	"VideoTube.com/cmd/video/service"
	"VideoTube.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
)

func (h *Handler) DeleteVideo(ctx context.Context, c *app.RequestContext) {
	video, err := service.NewVideoService(ctx, h.d).DeleteVideo(common.ActorID(c), c.Param("videoId"))
	errno.SendResponse(c, err, video)
}
