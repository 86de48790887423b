package handlers

import (
	"VideoTube.com/pkg/deps"
)

type Handler struct {
	d *deps.Deps
}

func New(d *deps.Deps) *Handler {
	return &Handler{d: d}
}

type PageParam struct {
	Page  string `query:"page"`
	Limit string `query:"limit"`
}

type CommentParam struct {
	Content string `json:"content" form:"content"`
}
