package handlers

import (
	"context"

	"VideoTube.com/cmd/api/handlers/common"
	"VideoTube.com/cmd/interaction/service"
	"VideoTube.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
)

func (h *Handler) ListComments(ctx context.Context, c *app.RequestContext) {
	var param PageParam
	if err := c.BindAndValidate(&param); err != nil {
		errno.SendResponse(c, common.BindErr(err), nil)
		return
	}
	page, err := service.NewCommentService(ctx, h.d).ListComments(c.Param("videoId"), param.Page, param.Limit)
	errno.SendResponse(c, err, page)
}
