package service

import (
	"context"
	"errors"
	"testing"

	"VideoTube.com/cmd/model"
	"VideoTube.com/pkg/deps/depstest"
	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/oss"
	"VideoTube.com/pkg/pipeline"
	"VideoTube.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/test/assert"
)

func code(err error) int64 {
	return errno.ConvertErr(err).ErrCode
}

func TestListVideos(t *testing.T) {
	env := depstest.New(t)
	alice := env.User("alice")
	bob := env.User("bob")
	env.Video(alice, "Go tutorial", true)
	env.Video(alice, "draft", false)
	env.Video(bob, "cooking pasta", true)
	s := NewVideoService(context.Background(), env.Deps)

	t.Run("unpublished videos are never listed", func(t *testing.T) {
		page, err := s.ListVideos(&ListVideosRequest{})
		assert.Nil(t, err)
		assert.DeepEqual(t, int64(2), page.TotalDocs)
		for _, d := range page.Docs {
			assert.True(t, d["is_published"] == true)
			_, hasKey := d["video_file_key"]
			assert.False(t, hasKey)
		}
	})

	t.Run("search and owner filter", func(t *testing.T) {
		page, err := s.ListVideos(&ListVideosRequest{Query: "GO"})
		assert.Nil(t, err)
		assert.DeepEqual(t, 1, len(page.Docs))
		assert.DeepEqual(t, "Go tutorial", page.Docs[0]["title"])

		page, err = s.ListVideos(&ListVideosRequest{UserID: bob})
		assert.Nil(t, err)
		assert.DeepEqual(t, 1, len(page.Docs))
		owner := page.Docs[0]["owner"].(pipeline.Doc)
		assert.DeepEqual(t, "bob", owner["username"])
	})

	t.Run("sort by title ascending", func(t *testing.T) {
		page, err := s.ListVideos(&ListVideosRequest{SortBy: "title", SortType: "asc"})
		assert.Nil(t, err)
		assert.DeepEqual(t, "Go tutorial", page.Docs[0]["title"])
		assert.DeepEqual(t, "cooking pasta", page.Docs[1]["title"])
	})

	t.Run("bad user id", func(t *testing.T) {
		env.Counter.Reset()
		_, err := s.ListVideos(&ListVideosRequest{UserID: "nope"})
		assert.DeepEqual(t, int64(errno.MalformedInputCode), code(err))
		assert.DeepEqual(t, int64(0), env.Counter.Calls())

		_, err = s.ListVideos(&ListVideosRequest{UserID: utils.NewObjectID()})
		assert.DeepEqual(t, int64(errno.NotFoundCode), code(err))
	})
}

func TestGetVideo(t *testing.T) {
	env := depstest.New(t)
	alice := env.User("alice")
	bob := env.User("bob")
	vid := env.Video(alice, "intro", true)
	env.Like(bob, model.LikeTarget{Kind: model.VideoTarget, ID: vid})
	env.Subscribe(bob, alice)
	env.Comment(vid, bob, "nice")
	s := NewVideoService(context.Background(), env.Deps)

	doc, err := s.GetVideo(vid, bob)
	assert.Nil(t, err)
	assert.DeepEqual(t, int64(1), doc["views"])
	assert.DeepEqual(t, int64(1), doc["likes"])
	assert.True(t, doc["is_liked"] == true)
	owner := doc["owner"].(pipeline.Doc)
	assert.DeepEqual(t, int64(1), owner["subscribers_count"])
	assert.True(t, owner["is_subscribed"] == true)
	assert.DeepEqual(t, 1, len(doc["comments"].([]any)))

	t.Run("each fetch counts exactly one view", func(t *testing.T) {
		doc, err := s.GetVideo(vid, "")
		assert.Nil(t, err)
		assert.DeepEqual(t, int64(2), doc["views"])
		assert.False(t, doc["is_liked"] == true)
		assert.False(t, doc["owner"].(pipeline.Doc)["is_subscribed"] == true)
		assert.DeepEqual(t, int64(2), env.Get(model.Videos, vid)["views"])
	})

	t.Run("malformed id never reaches the store", func(t *testing.T) {
		env.Counter.Reset()
		_, err := s.GetVideo("123", "")
		assert.DeepEqual(t, int64(errno.MalformedInputCode), code(err))
		assert.DeepEqual(t, int64(0), env.Counter.Calls())
	})

	t.Run("missing video", func(t *testing.T) {
		_, err := s.GetVideo(utils.NewObjectID(), "")
		assert.DeepEqual(t, int64(errno.NotFoundCode), code(err))
	})
}

type failingMedia struct {
	oss.MediaStore
	failFolder string
}

func (f failingMedia) Upload(ctx context.Context, folder, filePath, contentType string) (oss.Object, error) {
	if folder == f.failFolder {
		return oss.Object{}, errors.New("bucket offline")
	}
	return f.MediaStore.Upload(ctx, folder, filePath, contentType)
}

func TestPublishVideo(t *testing.T) {
	env := depstest.New(t)
	alice := env.User("alice")
	req := func() *PublishVideoRequest {
		return &PublishVideoRequest{
			Owner:       alice,
			Title:       " My first video ",
			Description: "hello",
			VideoFile:   &oss.LocalFile{Path: env.File("clip.mp4", "video-bytes"), ContentType: "video/mp4"},
			Thumbnail:   &oss.LocalFile{Path: env.File("thumb.png", "png-bytes"), ContentType: "image/png"},
		}
	}

	t.Run("success", func(t *testing.T) {
		s := NewVideoService(context.Background(), env.Deps)
		doc, err := s.PublishVideo(req())
		assert.Nil(t, err)
		assert.DeepEqual(t, "My first video", doc["title"])
		assert.DeepEqual(t, 42.5, doc["duration"])
		assert.True(t, doc["is_published"] == true)
		_, hasKey := doc["thumbnail_key"]
		assert.False(t, hasKey)
		assert.DeepEqual(t, 2, len(env.Media.Keys()))
		assert.DeepEqual(t, 1, len(env.Events.Events()))
	})

	t.Run("validation", func(t *testing.T) {
		s := NewVideoService(context.Background(), env.Deps)
		r := req()
		r.Title = "  "
		_, err := s.PublishVideo(r)
		assert.DeepEqual(t, int64(errno.MalformedInputCode), code(err))

		r = req()
		r.Thumbnail.ContentType = "video/mp4"
		_, err = s.PublishVideo(r)
		assert.DeepEqual(t, int64(errno.MalformedInputCode), code(err))

		r = req()
		r.VideoFile = nil
		_, err = s.PublishVideo(r)
		assert.DeepEqual(t, int64(errno.MalformedInputCode), code(err))
	})

	t.Run("failed thumbnail upload removes the video object", func(t *testing.T) {
		before := len(env.Media.Keys())
		d := *env.Deps
		d.Media = failingMedia{MediaStore: env.Media, failFolder: oss.ThumbnailFolder}
		s := NewVideoService(context.Background(), &d)
		_, err := s.PublishVideo(req())
		assert.DeepEqual(t, int64(errno.UpstreamFailureCode), code(err))
		assert.DeepEqual(t, before, len(env.Media.Keys()))
	})

	t.Run("probe failure keeps the video with zero duration", func(t *testing.T) {
		d := *env.Deps
		d.Prober = utils.StaticProber{Err: errors.New("ffprobe missing")}
		s := NewVideoService(context.Background(), &d)
		doc, err := s.PublishVideo(req())
		assert.Nil(t, err)
		assert.DeepEqual(t, float64(0), doc["duration"])
	})
}

func TestUpdateAndTogglePublish(t *testing.T) {
	env := depstest.New(t)
	alice := env.User("alice")
	bob := env.User("bob")
	vid := env.Video(alice, "old", true)
	s := NewVideoService(context.Background(), env.Deps)

	_, err := s.UpdateVideo(&UpdateVideoRequest{Actor: alice, VideoID: vid})
	assert.DeepEqual(t, int64(errno.MalformedInputCode), code(err))

	_, err = s.UpdateVideo(&UpdateVideoRequest{Actor: bob, VideoID: vid, Title: "hijack"})
	assert.DeepEqual(t, int64(errno.UnauthorizedCode), code(err))

	doc, err := s.UpdateVideo(&UpdateVideoRequest{
		Actor:     alice,
		VideoID:   vid,
		Title:     "new",
		Thumbnail: &oss.LocalFile{Path: env.File("t.jpg", "jpg"), ContentType: "image/jpeg"},
	})
	assert.Nil(t, err)
	assert.DeepEqual(t, "new", doc["title"])
	assert.DeepEqual(t, 1, len(env.Media.Keys()))

	published, err := s.TogglePublish(alice, vid)
	assert.Nil(t, err)
	assert.False(t, published)
	published, err = s.TogglePublish(alice, vid)
	assert.Nil(t, err)
	assert.True(t, published)

	_, err = s.TogglePublish(bob, vid)
	assert.DeepEqual(t, int64(errno.UnauthorizedCode), code(err))
}

func TestDeleteVideo(t *testing.T) {
	env := depstest.New(t)
	alice := env.User("alice")
	bob := env.User("bob")
	s := NewVideoService(context.Background(), env.Deps)
	doc, err := s.PublishVideo(&PublishVideoRequest{
		Owner:       alice,
		Title:       "gone soon",
		Description: "bye",
		VideoFile:   &oss.LocalFile{Path: env.File("a.mp4", "v"), ContentType: "video/mp4"},
		Thumbnail:   &oss.LocalFile{Path: env.File("a.png", "p"), ContentType: "image/png"},
	})
	assert.Nil(t, err)
	vid := doc["id"].(string)
	cid := env.Comment(vid, bob, "first")
	env.Like(bob, model.LikeTarget{Kind: model.VideoTarget, ID: vid})
	env.Like(alice, model.LikeTarget{Kind: model.CommentTarget, ID: cid})

	_, err = s.DeleteVideo(bob, vid)
	assert.DeepEqual(t, int64(errno.UnauthorizedCode), code(err))

	_, err = s.DeleteVideo(alice, vid)
	assert.Nil(t, err)
	assert.Nil(t, env.Get(model.Videos, vid))
	assert.DeepEqual(t, 0, len(env.Media.Keys()))
	assert.DeepEqual(t, 0, env.Count(model.Comments, nil))
	assert.DeepEqual(t, 0, env.Count(model.Likes, nil))

	_, err = s.DeleteVideo(alice, vid)
	assert.DeepEqual(t, int64(errno.NotFoundCode), code(err))
}
