package service

import (
	"context"

	"VideoTube.com/pkg/deps"
)

type VideoService struct {
	ctx context.Context
	d   *deps.Deps
}

func NewVideoService(ctx context.Context, d *deps.Deps) *VideoService {
	return &VideoService{ctx: ctx, d: d}
}
