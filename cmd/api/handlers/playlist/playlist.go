package handlers

import (
	"context"

	"VideoTube.com/cmd/api/handlers/common"
	"VideoTube.com/cmd/playlist/service"
	"VideoTube.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
)

func (h *Handler) CreatePlaylist(ctx context.Context, c *app.RequestContext) {
	var param PlaylistParam
	if err := c.BindAndValidate(&param); err != nil {
		errno.SendResponse(c, common.BindErr(err), nil)
		return
	}
	playlist, err := service.NewPlaylistService(ctx, h.d).CreatePlaylist(common.ActorID(c), param.Name, param.Description)
	errno.SendResponse(c, err, playlist)
}

func (h *Handler) UserPlaylists(ctx context.Context, c *app.RequestContext) {
	var param PageParam
	if err := c.BindAndValidate(&param); err != nil {
		errno.SendResponse(c, common.BindErr(err), nil)
		return
	}
	page, err := service.NewPlaylistService(ctx, h.d).UserPlaylists(c.Param("userId"), param.Page, param.Limit)
	errno.SendResponse(c, err, page)
}

func (h *Handler) GetPlaylist(ctx context.Context, c *app.RequestContext) {
	playlist, err := service.NewPlaylistService(ctx, h.d).GetPlaylist(c.Param("playlistId"))
	errno.SendResponse(c, err, playlist)
}

func (h *Handler) UpdatePlaylist(ctx context.Context, c *app.RequestContext) {
	var param PlaylistParam
	if err := c.BindAndValidate(&param); err != nil {
		errno.SendResponse(c, common.BindErr(err), nil)
		return
	}
	playlist, err := service.NewPlaylistService(ctx, h.d).UpdatePlaylist(common.ActorID(c), c.Param("playlistId"), param.Name, param.Description)
	errno.SendResponse(c, err, playlist)
}

func (h *Handler) DeletePlaylist(ctx context.Context, c *app.RequestContext) {
	playlist, err := service.NewPlaylistService(ctx, h.d).DeletePlaylist(common.ActorID(c), c.Param("playlistId"))
	errno.SendResponse(c, err, playlist)
}
