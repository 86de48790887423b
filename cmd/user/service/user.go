package service

import (
	"context"

	"VideoTube.com/pkg/deps"
	"VideoTube.com/pkg/pipeline"
)

type UserService struct {
	ctx context.Context
	d   *deps.Deps
}

func NewUserService(ctx context.Context, d *deps.Deps) *UserService {
	return &UserService{ctx: ctx, d: d}
}

// publicUser strips the credential fields before a user leaves the service.
func publicUser(d pipeline.Doc) pipeline.Doc {
	out := d.Clone()
	delete(out, "password")
	delete(out, "avatar_key")
	return out
}
