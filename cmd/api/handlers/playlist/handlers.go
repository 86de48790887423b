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

type PlaylistParam struct {
	Name        string `json:"name" form:"name"`
	Description string `json:"description" form:"description"`
}

type PageParam struct {
	Page  string `query:"page"`
	Limit string `query:"limit"`
}
