package handlers

import (
	"context"

	"VideoTube.com/cmd/api/handlers/common"
	"VideoTube.com/cmd/interaction/service"
	"VideoTube.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
)

func (h *Handler) DeleteComment(ctx context.Context, c *app.RequestContext) {
	comment, err := service.NewCommentService(ctx, h.d).DeleteComment(common.ActorID(c), c.Param("commentId"))
	errno.SendResponse(c, err, comment)
}
