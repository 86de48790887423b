package service

import (
	"errors"
	"strings"
	"time"

	"VideoTube.com/cmd/model"
	"VideoTube.com/pkg/deps"
	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/metrics"
	"VideoTube.com/pkg/oss"
	"VideoTube.com/pkg/pipeline"
	"VideoTube.com/pkg/store"
	"VideoTube.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

type RegisterRequest struct {
	Username string
	Email    string
	FullName string
	Password string
	Avatar   *oss.LocalFile
}

func (service *UserService) Register(req *RegisterRequest) (pipeline.Doc, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	email := strings.ToLower(strings.TrimSpace(req.Email))
	fullName := strings.TrimSpace(req.FullName)
	if username == "" || email == "" || fullName == "" || req.Password == "" {
		return nil, errno.MalformedInputErr.WithMessage("All fields are required")
	}
	if !utils.IsValidEmail(email) {
		return nil, errno.MalformedInputErr.WithMessage("Invalid email")
	}
	if req.Avatar != nil && !strings.HasPrefix(req.Avatar.ContentType, "image/") {
		return nil, errno.MalformedInputErr.WithMessage("Avatar must be an image")
	}

	taken, err := service.d.Store.Exists(service.ctx, model.Users,
		pipeline.Or(pipeline.Eq("username", username), pipeline.Eq("email", email)))
	if err != nil {
		return nil, deps.StoreErr(service.ctx, "checking the user", err)
	}
	if taken {
		return nil, errUserExists
	}

	hashed, err := utils.Crypt(req.Password)
	if err != nil {
		hlog.CtxErrorf(service.ctx, "crypt password: %v", err)
		return nil, errno.ServiceErr.WithMessage("Something went wrong while registering the user")
	}

	now := time.Now()
	user := &model.User{
		ID:        utils.NewObjectID(),
		Username:  username,
		Email:     email,
		FullName:  fullName,
		Password:  hashed,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.Avatar != nil {
		obj, err := service.d.Media.Upload(service.ctx, oss.AvatarFolder, req.Avatar.Path, req.Avatar.ContentType)
		metrics.RecordUpload(oss.AvatarFolder, err)
		if err != nil {
			hlog.CtxErrorf(service.ctx, "upload avatar: %v", err)
			return nil, errno.UpstreamErr.WithMessage("Uploading the avatar failed")
		}
		user.Avatar, user.AvatarKey = obj.URL, obj.Key
	}

	doc := user.ToDoc()
	if err = service.d.Store.Insert(service.ctx, model.Users, doc); err != nil {
		if user.AvatarKey != "" {
			_ = service.d.Media.Remove(service.ctx, user.AvatarKey)
		}
		// 并发注册时由唯一索引兜底
		if errors.Is(err, store.ErrDuplicate) {
			return nil, errUserExists
		}
		return nil, deps.StoreErr(service.ctx, "registering the user", err)
	}
	hlog.CtxInfof(service.ctx, "user %s registered", username)
	return publicUser(doc), nil
}

var errUserExists = errno.MalformedInputErr.WithMessage("User with email or username already exists")
