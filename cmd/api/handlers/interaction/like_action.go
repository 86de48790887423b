package handlers

import (
	"context"

	"VideoTube.com/cmd/api/handlers/common"
	"VideoTube.com/cmd/interaction/service"
	"VideoTube.com/cmd/model"
	"VideoTube.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
)

// ToggleLike serves the like toggles of one target kind; param is the route
// parameter carrying the target id.
func (h *Handler) ToggleLike(kind, param string) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		liked, err := service.NewLikeService(ctx, h.d).ToggleLike(common.ActorID(c), model.LikeTarget{
			Kind: kind,
			ID:   c.Param(param),
		})
		errno.SendResponse(c, err, map[string]bool{"is_liked": liked})
	}
}

func (h *Handler) LikedVideos(ctx context.Context, c *app.RequestContext) {
	var param PageParam
	if err := c.BindAndValidate(&param); err != nil {
		errno.SendResponse(c, common.BindErr(err), nil)
		return
	}
	page, err := service.NewLikeService(ctx, h.d).LikedVideos(common.ActorID(c), param.Page, param.Limit)
	errno.SendResponse(c, err, page)
}
