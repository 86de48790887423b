package service

import (
	"errors"

	"VideoTube.com/cmd/model"
	"VideoTube.com/cmd/pipelines"
	"VideoTube.com/pkg/deps"
	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/metrics"
	"VideoTube.com/pkg/pipeline"
	"VideoTube.com/pkg/store"
)

// GetVideo counts one view and returns the video as seen by viewerID, which
// is empty for anonymous requests.
func (service *VideoService) GetVideo(videoID, viewerID string) (pipeline.Doc, error) {
	if err := deps.ValidID(videoID, "video"); err != nil {
		return nil, err
	}

	// 由存储层完成 views = views + 1, 并发请求不会丢失计数
	_, err := service.d.Store.UpdateOne(service.ctx, model.Videos, pipeline.Eq("id", videoID), store.Update{
		Inc: map[string]int64{"views": 1},
	})
	if errors.Is(err, store.ErrNotFound) {
		return nil, errno.NotFoundErr.WithMessage("Video not found")
	}
	if err != nil {
		return nil, deps.StoreErr(service.ctx, "counting the view", err)
	}
	metrics.ViewsTotal.Inc()

	docs, err := service.d.Store.Aggregate(service.ctx, pipelines.VideoDetail(videoID, viewerID))
	if err != nil {
		return nil, deps.StoreErr(service.ctx, "fetching the video", err)
	}
	if len(docs) == 0 {
		return nil, errno.NotFoundErr.WithMessage("Video not found")
	}
	return docs[0], nil
}
