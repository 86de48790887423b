package handlers

import (
	"context"

	"VideoTube.com/cmd/api/handlers/common"
	"VideoTube.com/cmd/video/service"
	"VideoTube.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
)

func (h *Handler) GetVideo(ctx context.Context, c *app.RequestContext) {
	video, err := service.NewVideoService(ctx, h.d).GetVideo(c.Param("videoId"), common.ActorID(c))
	errno.SendResponse(c, err, video)
}
