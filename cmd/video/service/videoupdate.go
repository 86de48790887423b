package service

import (
	"strings"
	"time"

	"VideoTube.com/cmd/model"
	"VideoTube.com/pkg/deps"
	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/metrics"
	"VideoTube.com/pkg/mq"
	"VideoTube.com/pkg/oss"
	"VideoTube.com/pkg/pipeline"
	"VideoTube.com/pkg/store"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

type UpdateVideoRequest struct {
	Actor       string
	VideoID     string
	Title       string
	Description string
	Thumbnail   *oss.LocalFile
}

func (service *VideoService) UpdateVideo(req *UpdateVideoRequest) (pipeline.Doc, error) {
	if err := deps.ValidID(req.VideoID, "video"); err != nil {
		return nil, err
	}
	title, description := strings.TrimSpace(req.Title), strings.TrimSpace(req.Description)
	if title == "" && description == "" && req.Thumbnail == nil {
		return nil, errno.MalformedInputErr.WithMessage("At least one field should be there to update")
	}
	if req.Thumbnail != nil && !strings.HasPrefix(req.Thumbnail.ContentType, "image/") {
		return nil, errno.MalformedInputErr.WithMessage("Thumbnail must be an image")
	}
	current, err := service.d.Owned(service.ctx, model.Videos, req.VideoID, req.Actor, "video")
	if err != nil {
		return nil, err
	}

	set := pipeline.Doc{"updated_at": time.Now()}
	if title != "" {
		set["title"] = title
	}
	if description != "" {
		set["description"] = description
	}

	var newThumb *oss.Object
	if req.Thumbnail != nil {
		obj, err := service.d.Media.Upload(service.ctx, oss.ThumbnailFolder, req.Thumbnail.Path, req.Thumbnail.ContentType)
		metrics.RecordUpload(oss.ThumbnailFolder, err)
		if err != nil {
			hlog.CtxErrorf(service.ctx, "upload thumbnail: %v", err)
			return nil, errno.UpstreamErr.WithMessage("Uploading the thumbnail failed")
		}
		newThumb = &obj
		set["thumbnail"] = obj.URL
		set["thumbnail_key"] = obj.Key
	}

	updated, err := service.d.Store.UpdateOne(service.ctx, model.Videos, pipeline.Eq("id", req.VideoID), store.Update{Set: set})
	if err != nil {
		if newThumb != nil {
			_ = service.d.Media.Remove(service.ctx, newThumb.Key)
		}
		return nil, deps.StoreErr(service.ctx, "updating the video", err)
	}

	// 新封面保存成功之后再删除旧封面
	if newThumb != nil {
		if old, _ := current["thumbnail_key"].(string); old != "" {
			if err := service.d.Media.Remove(service.ctx, old); err != nil {
				hlog.CtxWarnf(service.ctx, "remove previous thumbnail %s: %v", old, err)
			}
		}
	}
	return publicVideo(updated), nil
}

// TogglePublish flips is_published inside the store and reports the new state.
func (service *VideoService) TogglePublish(actor, videoID string) (bool, error) {
	if err := deps.ValidID(videoID, "video"); err != nil {
		return false, err
	}
	if _, err := service.d.Owned(service.ctx, model.Videos, videoID, actor, "video"); err != nil {
		return false, err
	}
	updated, err := service.d.Store.UpdateOne(service.ctx, model.Videos, pipeline.Eq("id", videoID), store.Update{
		Not: []string{"is_published"},
		Set: pipeline.Doc{"updated_at": time.Now()},
	})
	if err != nil {
		return false, deps.StoreErr(service.ctx, "toggling the publish status", err)
	}
	published, _ := updated["is_published"].(bool)
	service.d.Publish(service.ctx, mq.NewEvent(mq.VideoPublished, actor, videoID, published))
	return published, nil
}
