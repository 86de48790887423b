package handlers

import (
	"context"

	"VideoTube.com/cmd/api/handlers/common"
	"VideoTube.com/cmd/video/service"
	"VideoTube.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
)

func (h *Handler) UpdateVideo(ctx context.Context, c *app.RequestContext) {
	var param UpdateVideoParam
	if err := c.BindAndValidate(&param); err != nil {
		errno.SendResponse(c, common.BindErr(err), nil)
		return
	}
	uploads := common.NewUploads(h.uploadDir)
	defer uploads.Cleanup()

	thumbnail, err := uploads.Save(ctx, c, "thumbnail")
	if err != nil {
		errno.SendResponse(c, err, nil)
		return
	}
	video, err := service.NewVideoService(ctx, h.d).UpdateVideo(&service.UpdateVideoRequest{
		Actor:       common.ActorID(c),
		VideoID:     param.VideoId,
		Title:       param.Title,
		Description: param.Description,
		Thumbnail:   thumbnail,
	})
	errno.SendResponse(c, err, video)
}

func (h *Handler) TogglePublish(ctx context.Context, c *app.RequestContext) {
	published, err := service.NewVideoService(ctx, h.d).TogglePublish(common.ActorID(c), c.Param("videoId"))
	errno.SendResponse(c, err, map[string]bool{"is_published": published})
}
