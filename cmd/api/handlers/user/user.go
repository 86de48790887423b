package handlers

import (
	"context"

	"VideoTube.com/cmd/api/handlers/common"
	"VideoTube.com/cmd/user/service"
	"VideoTube.com/pkg/deps"
	"VideoTube.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
)

type Handler struct {
	d         *deps.Deps
	uploadDir string
}

func New(d *deps.Deps, uploadDir string) *Handler {
	return &Handler{d: d, uploadDir: uploadDir}
}

type RegisterParam struct {
	Username string `json:"username" form:"username"`
	Email    string `json:"email" form:"email"`
	FullName string `json:"full_name" form:"full_name"`
	Password string `json:"password" form:"password"`
}

func (h *Handler) Register(ctx context.Context, c *app.RequestContext) {
	var param RegisterParam
	if err := c.BindAndValidate(&param); err != nil {
		errno.SendResponse(c, common.BindErr(err), nil)
		return
	}
	uploads := common.NewUploads(h.uploadDir)
	defer uploads.Cleanup()
	avatar, err := uploads.Save(ctx, c, "avatar")
	if err != nil {
		errno.SendResponse(c, err, nil)
		return
	}
	user, err := service.NewUserService(ctx, h.d).Register(&service.RegisterRequest{
		Username: param.Username,
		Email:    param.Email,
		FullName: param.FullName,
		Password: param.Password,
		Avatar:   avatar,
	})
	errno.SendResponse(c, err, user)
}

func (h *Handler) Me(ctx context.Context, c *app.RequestContext) {
	user, err := service.NewUserService(ctx, h.d).Me(common.ActorID(c))
	errno.SendResponse(c, err, user)
}
