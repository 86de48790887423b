package service

import (
	"VideoTube.com/cmd/model"
	"VideoTube.com/pkg/deps"
	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/mq"
	"VideoTube.com/pkg/pipeline"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// DeleteVideo removes the video, its media objects, its likes and its comments.
func (service *VideoService) DeleteVideo(actor, videoID string) (pipeline.Doc, error) {
	if err := deps.ValidID(videoID, "video"); err != nil {
		return nil, err
	}
	video, err := service.d.Owned(service.ctx, model.Videos, videoID, actor, "video")
	if err != nil {
		return nil, err
	}

	for _, field := range []string{"video_file_key", "thumbnail_key"} {
		if key, _ := video[field].(string); key != "" {
			if err := service.d.Media.Remove(service.ctx, key); err != nil {
				hlog.CtxErrorf(service.ctx, "remove %s: %v", key, err)
				return nil, errno.UpstreamErr.WithMessage("Something went wrong while deleting the media files")
			}
		}
	}

	if _, err = service.d.Store.DeleteOne(service.ctx, model.Videos, pipeline.Eq("id", videoID)); err != nil {
		return nil, deps.StoreErr(service.ctx, "deleting the video", err)
	}

	comments, err := service.d.Store.Find(service.ctx, model.Comments, pipeline.Eq("video", videoID))
	if err != nil {
		return nil, deps.StoreErr(service.ctx, "deleting the comments", err)
	}
	commentIDs := make([]any, 0, len(comments))
	for _, c := range comments {
		commentIDs = append(commentIDs, c["id"])
	}
	cleanups := []struct {
		collection string
		filter     pipeline.Expr
	}{
		{model.Likes, model.LikeTarget{Kind: model.VideoTarget, ID: videoID}.Filter()},
		{model.Likes, pipeline.And(pipeline.Eq("target_kind", model.CommentTarget), pipeline.In("target_id", commentIDs))},
		{model.Comments, pipeline.Eq("video", videoID)},
	}
	for _, c := range cleanups {
		if _, err := service.d.Store.DeleteMany(service.ctx, c.collection, c.filter); err != nil {
			return nil, deps.StoreErr(service.ctx, "deleting what belongs to the video", err)
		}
	}

	service.d.Publish(service.ctx, mq.NewEvent(mq.VideoDeleted, actor, videoID, false))
	return publicVideo(video), nil
}
