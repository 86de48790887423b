package service

import (
	"context"

	"VideoTube.com/cmd/pipelines"
	"VideoTube.com/pkg/deps"
	"VideoTube.com/pkg/pipeline"
)

type DashboardService struct {
	ctx context.Context
	d   *deps.Deps
}

func NewDashboardService(ctx context.Context, d *deps.Deps) *DashboardService {
	return &DashboardService{ctx: ctx, d: d}
}

var emptyStats = pipeline.Doc{
	"total_videos":      int64(0),
	"total_comments":    int64(0),
	"total_likes":       int64(0),
	"total_views":       int64(0),
	"total_subscribers": int64(0),
}

// ChannelStats 频道统计: 视频数, 评论数, 点赞数, 播放量和订阅数
func (service *DashboardService) ChannelStats(actor string) (pipeline.Doc, error) {
	if err := deps.ValidID(actor, "user"); err != nil {
		return nil, err
	}
	docs, err := service.d.Store.Aggregate(service.ctx, pipelines.ChannelStats(actor))
	if err != nil {
		return nil, deps.StoreErr(service.ctx, "fetching the channel stats", err)
	}
	if len(docs) == 0 {
		return emptyStats.Clone(), nil
	}
	stats := docs[0]
	delete(stats, "id")
	return stats, nil
}

// ChannelVideos lists every video of the actor, unpublished ones included.
func (service *DashboardService) ChannelVideos(actor string) ([]pipeline.Doc, error) {
	if err := deps.ValidID(actor, "user"); err != nil {
		return nil, err
	}
	docs, err := service.d.Store.Aggregate(service.ctx, pipelines.ChannelVideos(actor))
	if err != nil {
		return nil, deps.StoreErr(service.ctx, "fetching the channel videos", err)
	}
	return docs, nil
}
