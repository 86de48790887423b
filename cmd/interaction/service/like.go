package service

import (
	"context"
	"time"

	"VideoTube.com/cmd/model"
	"VideoTube.com/cmd/pipelines"
	"VideoTube.com/pkg/deps"
	"VideoTube.com/pkg/metrics"
	"VideoTube.com/pkg/mq"
	"VideoTube.com/pkg/paginate"
	"VideoTube.com/pkg/pipeline"
	"VideoTube.com/pkg/toggle"
	"VideoTube.com/pkg/utils"
)

type LikeService struct {
	ctx context.Context
	d   *deps.Deps
}

func NewLikeService(ctx context.Context, d *deps.Deps) *LikeService {
	return &LikeService{ctx: ctx, d: d}
}

var likeEvents = map[string]string{
	model.VideoTarget:   mq.VideoLiked,
	model.CommentTarget: mq.CommentLiked,
	model.TweetTarget:   mq.TweetLiked,
}

// ToggleLike likes target for actor, or takes the like back. It reports
// whether actor likes the target afterwards.
func (service *LikeService) ToggleLike(actor string, target model.LikeTarget) (bool, error) {
	if err := deps.ValidID(target.ID, target.Kind); err != nil {
		return false, err
	}
	if err := service.d.MustExist(service.ctx, target.Collection(), target.ID, target.Kind); err != nil {
		return false, err
	}

	res, err := toggle.Toggle(service.ctx, service.d.Store, toggle.Association{
		Collection: model.Likes,
		Pair:       pipeline.And(pipeline.Eq("liked_by", actor), target.Filter()),
		New: func() pipeline.Doc {
			return model.NewLike(utils.NewObjectID(), actor, target, time.Now()).ToDoc()
		},
	})
	if err != nil {
		return false, deps.StoreErr(service.ctx, "toggling the like", err)
	}

	metrics.RecordToggle("like_"+target.Kind, res.Associated)
	service.d.Publish(service.ctx, mq.NewEvent(likeEvents[target.Kind], actor, target.ID, res.Associated))
	return res.Associated, nil
}

func (service *LikeService) LikedVideos(actor, page, limit string) (*paginate.Page, error) {
	p, err := paginate.Paginate(service.ctx, service.d.Store, pipelines.LikedVideos(actor),
		paginate.ParseQuery(page, limit, paginate.DefaultLimit))
	if err != nil {
		return nil, deps.StoreErr(service.ctx, "fetching the liked videos", err)
	}
	return p, nil
}
