package handlers

import (
	"context"

	"VideoTube.com/cmd/api/handlers/common"
	"VideoTube.com/cmd/video/service"
	"VideoTube.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
)

func (h *Handler) PublishVideo(ctx context.Context, c *app.RequestContext) {
	var param PublishVideoParam
	if err := c.BindAndValidate(&param); err != nil {
		errno.SendResponse(c, common.BindErr(err), nil)
		return
	}
	uploads := common.NewUploads(h.uploadDir)
	defer uploads.Cleanup()

	videoFile, err := uploads.Save(ctx, c, "videoFile")
	if err != nil {
		errno.SendResponse(c, err, nil)
		return
	}
	thumbnail, err := uploads.Save(ctx, c, "thumbnail")
	if err != nil {
		errno.SendResponse(c, err, nil)
		return
	}
	video, err := service.NewVideoService(ctx, h.d).PublishVideo(&service.PublishVideoRequest{
		Owner:       common.ActorID(c),
		Title:       param.Title,
		Description: param.Description,
		VideoFile:   videoFile,
		Thumbnail:   thumbnail,
	})
	errno.SendResponse(c, err, video)
}
