package handlers

import (
	"context"

	"VideoTube.com/cmd/api/handlers/common"
	"VideoTube.com/cmd/interaction/service"
	"VideoTube.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
)

func (h *Handler) AddComment(ctx context.Context, c *app.RequestContext) {
	var param CommentParam
	if err := c.BindAndValidate(&param); err != nil {
		errno.SendResponse(c, common.BindErr(err), nil)
		return
	}
	comment, err := service.NewCommentService(ctx, h.d).AddComment(common.ActorID(c), c.Param("videoId"), param.Content)
	errno.SendResponse(c, err, comment)
}

func (h *Handler) UpdateComment(ctx context.Context, c *app.RequestContext) {
	var param CommentParam
	if err := c.BindAndValidate(&param); err != nil {
		errno.SendResponse(c, common.BindErr(err), nil)
		return
	}
	comment, err := service.NewCommentService(ctx, h.d).UpdateComment(common.ActorID(c), c.Param("commentId"), param.Content)
	errno.SendResponse(c, err, comment)
}
