package service

import (
	"VideoTube.com/cmd/model"
	"VideoTube.com/cmd/pipelines"
	"VideoTube.com/pkg/deps"
	"VideoTube.com/pkg/paginate"
)

type ListVideosRequest struct {
	Page     string
	Limit    string
	Query    string
	SortBy   string
	SortType string
	UserID   string
}

// ListVideos 公开视频列表, 支持按标题/描述搜索和按作者过滤
func (service *VideoService) ListVideos(req *ListVideosRequest) (*paginate.Page, error) {
	if req.UserID != "" {
		if err := deps.ValidID(req.UserID, "user"); err != nil {
			return nil, err
		}
		if err := service.d.MustExist(service.ctx, model.Users, req.UserID, "user"); err != nil {
			return nil, err
		}
	}

	p := pipelines.VideoListing(pipelines.VideoQuery{
		Owner:  req.UserID,
		Search: req.Query,
		Sort:   pipelines.ParseSort(req.SortBy, req.SortType),
	})
	page, err := paginate.Paginate(service.ctx, service.d.Store, p, paginate.ParseQuery(req.Page, req.Limit, paginate.DefaultLimit))
	if err != nil {
		return nil, deps.StoreErr(service.ctx, "fetching the videos", err)
	}
	return page, nil
}
