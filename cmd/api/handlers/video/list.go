package handlers

import (
	"context"

	"VideoTube.com/cmd/api/handlers/common"
	"VideoTube.com/cmd/video/service"
	"VideoTube.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
)

func (h *Handler) ListVideos(ctx context.Context, c *app.RequestContext) {
	var param ListVideoParam
	if err := c.BindAndValidate(&param); err != nil {
		errno.SendResponse(c, common.BindErr(err), nil)
		return
	}
	page, err := service.NewVideoService(ctx, h.d).ListVideos(&service.ListVideosRequest{
		Page:     param.Page,
		Limit:    param.Limit,
		Query:    param.Query,
		SortBy:   param.SortBy,
		SortType: param.SortType,
		UserID:   param.UserId,
	})
	errno.SendResponse(c, err, page)
}
