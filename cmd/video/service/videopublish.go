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
	"VideoTube.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

type PublishVideoRequest struct {
	Owner       string
	Title       string
	Description string
	VideoFile   *oss.LocalFile
	Thumbnail   *oss.LocalFile
}

// PublishVideo uploads both media files, probes the duration and stores the
// video. Nothing stays in the media store when a later step fails.
func (service *VideoService) PublishVideo(req *PublishVideoRequest) (pipeline.Doc, error) {
	title, description := strings.TrimSpace(req.Title), strings.TrimSpace(req.Description)
	if title == "" || description == "" {
		return nil, errno.MalformedInputErr.WithMessage("All fields are required")
	}
	if req.VideoFile == nil {
		return nil, errno.MalformedInputErr.WithMessage("Video file not found")
	}
	if req.Thumbnail == nil {
		return nil, errno.MalformedInputErr.WithMessage("Thumbnail not found")
	}
	if !strings.HasPrefix(req.VideoFile.ContentType, "video/") {
		return nil, errno.MalformedInputErr.WithMessage("Video file must be a video")
	}
	if !strings.HasPrefix(req.Thumbnail.ContentType, "image/") {
		return nil, errno.MalformedInputErr.WithMessage("Thumbnail must be an image")
	}

	var uploaded []string
	rollback := func() {
		for _, key := range uploaded {
			if err := service.d.Media.Remove(service.ctx, key); err != nil {
				hlog.CtxWarnf(service.ctx, "remove orphan object %s: %v", key, err)
			}
		}
	}

	videoObj, err := service.d.Media.Upload(service.ctx, oss.VideoFolder, req.VideoFile.Path, req.VideoFile.ContentType)
	metrics.RecordUpload(oss.VideoFolder, err)
	if err != nil {
		hlog.CtxErrorf(service.ctx, "upload video: %v", err)
		return nil, errno.UpstreamErr.WithMessage("Uploading the video failed")
	}
	uploaded = append(uploaded, videoObj.Key)

	thumbObj, err := service.d.Media.Upload(service.ctx, oss.ThumbnailFolder, req.Thumbnail.Path, req.Thumbnail.ContentType)
	metrics.RecordUpload(oss.ThumbnailFolder, err)
	if err != nil {
		rollback()
		hlog.CtxErrorf(service.ctx, "upload thumbnail: %v", err)
		return nil, errno.UpstreamErr.WithMessage("Uploading the thumbnail failed")
	}
	uploaded = append(uploaded, thumbObj.Key)

	duration, err := service.d.Prober.Duration(service.ctx, req.VideoFile.Path)
	if err != nil {
		hlog.CtxWarnf(service.ctx, "probe duration of %s: %v", videoObj.Key, err)
		duration = 0
	}

	now := time.Now()
	video := &model.Video{
		ID:           utils.NewObjectID(),
		Owner:        req.Owner,
		Title:        title,
		Description:  description,
		VideoFile:    videoObj.URL,
		VideoFileKey: videoObj.Key,
		Thumbnail:    thumbObj.URL,
		ThumbnailKey: thumbObj.Key,
		Duration:     duration,
		IsPublished:  true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	doc := video.ToDoc()
	if err = service.d.Store.Insert(service.ctx, model.Videos, doc); err != nil {
		rollback()
		return nil, deps.StoreErr(service.ctx, "saving the video", err)
	}

	service.d.Publish(service.ctx, mq.NewEvent(mq.VideoPublished, req.Owner, video.ID, true))
	hlog.CtxInfof(service.ctx, "video %s published by %s", video.ID, req.Owner)
	return publicVideo(doc), nil
}

func publicVideo(d pipeline.Doc) pipeline.Doc {
	out := d.Clone()
	delete(out, "video_file_key")
	delete(out, "thumbnail_key")
	return out
}
