package handlers

import (
	"VideoTube.com/pkg/deps"
)

type Handler struct {
	d         *deps.Deps
	uploadDir string
}

func New(d *deps.Deps, uploadDir string) *Handler {
	return &Handler{d: d, uploadDir: uploadDir}
}

type ListVideoParam struct {
	Page     string `query:"page"`
	Limit    string `query:"limit"`
	Query    string `query:"query"`
	SortBy   string `query:"sortBy"`
	SortType string `query:"sortType"`
	UserId   string `query:"userId"`
}

type PublishVideoParam struct {
	Title       string `form:"title"`
	Description string `form:"description"`
}

type UpdateVideoParam struct {
	VideoId     string `path:"videoId"`
	Title       string `form:"title"`
	Description string `form:"description"`
}
