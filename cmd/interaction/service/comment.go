package service

import (
	"context"
	"strings"
	"time"

	"VideoTube.com/cmd/model"
	"VideoTube.com/cmd/pipelines"
	"VideoTube.com/pkg/deps"
	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/mq"
	"VideoTube.com/pkg/paginate"
	"VideoTube.com/pkg/pipeline"
	"VideoTube.com/pkg/store"
	"VideoTube.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

type CommentService struct {
	ctx context.Context
	d   *deps.Deps
}

func NewCommentService(ctx context.Context, d *deps.Deps) *CommentService {
	return &CommentService{ctx: ctx, d: d}
}

// ListComments 获取视频评论, 最新的在前
func (service *CommentService) ListComments(videoID, page, limit string) (*paginate.Page, error) {
	if err := deps.ValidID(videoID, "video"); err != nil {
		return nil, err
	}
	if err := service.d.MustExist(service.ctx, model.Videos, videoID, "video"); err != nil {
		return nil, err
	}
	p, err := paginate.Paginate(service.ctx, service.d.Store, pipelines.CommentsForVideo(videoID),
		paginate.ParseQuery(page, limit, paginate.DefaultLimit))
	if err != nil {
		return nil, deps.StoreErr(service.ctx, "fetching the comments", err)
	}
	return p, nil
}

func (service *CommentService) AddComment(actor, videoID, content string) (pipeline.Doc, error) {
	if err := deps.ValidID(videoID, "video"); err != nil {
		return nil, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errno.MalformedInputErr.WithMessage("Comment content is required")
	}
	if err := service.d.MustExist(service.ctx, model.Videos, videoID, "video"); err != nil {
		return nil, err
	}

	now := time.Now()
	comment := &model.Comment{
		ID:        utils.NewObjectID(),
		Video:     videoID,
		Owner:     actor,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	doc := comment.ToDoc()
	if err := service.d.Store.Insert(service.ctx, model.Comments, doc); err != nil {
		return nil, deps.StoreErr(service.ctx, "adding the comment", err)
	}
	service.d.Publish(service.ctx, mq.NewEvent(mq.CommentCreated, actor, videoID, true))
	return doc, nil
}

func (service *CommentService) UpdateComment(actor, commentID, content string) (pipeline.Doc, error) {
	if err := deps.ValidID(commentID, "comment"); err != nil {
		return nil, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errno.MalformedInputErr.WithMessage("Comment content is required")
	}
	if _, err := service.d.Owned(service.ctx, model.Comments, commentID, actor, "comment"); err != nil {
		return nil, err
	}
	updated, err := service.d.Store.UpdateOne(service.ctx, model.Comments, pipeline.Eq("id", commentID), store.Update{
		Set: pipeline.Doc{"content": content, "updated_at": time.Now()},
	})
	if err != nil {
		return nil, deps.StoreErr(service.ctx, "updating the comment", err)
	}
	return updated, nil
}

// DeleteComment removes the comment together with its likes.
func (service *CommentService) DeleteComment(actor, commentID string) (pipeline.Doc, error) {
	if err := deps.ValidID(commentID, "comment"); err != nil {
		return nil, err
	}
	comment, err := service.d.Owned(service.ctx, model.Comments, commentID, actor, "comment")
	if err != nil {
		return nil, err
	}
	if _, err = service.d.Store.DeleteOne(service.ctx, model.Comments, pipeline.Eq("id", commentID)); err != nil {
		return nil, deps.StoreErr(service.ctx, "deleting the comment", err)
	}
	target := model.LikeTarget{Kind: model.CommentTarget, ID: commentID}
	n, err := service.d.Store.DeleteMany(service.ctx, model.Likes, target.Filter())
	if err != nil {
		return nil, deps.StoreErr(service.ctx, "deleting the comment likes", err)
	}
	hlog.CtxInfof(service.ctx, "comment %s deleted with %d likes", commentID, n)
	return comment, nil
}
