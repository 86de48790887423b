package service

import (
	"context"
	"testing"

	"VideoTube.com/cmd/model"
	"VideoTube.com/pkg/deps/depstest"
	"VideoTube.com/pkg/pipeline"
	"VideoTube.com/pkg/store"
	"VideoTube.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/test/assert"
)

func TestChannelStats(t *testing.T) {
	env := depstest.New(t)
	ctx := context.Background()
	alice := env.User("alice")
	bob := env.User("bob")
	v1 := env.Video(alice, "one", true)
	v2 := env.Video(alice, "two", false)
	env.Video(bob, "other", true)
	_, err := env.Store.UpdateOne(ctx, model.Videos, pipeline.Eq("id", v1), store.Update{Inc: map[string]int64{"views": 7}})
	assert.Nil(t, err)
	_, err = env.Store.UpdateOne(ctx, model.Videos, pipeline.Eq("id", v2), store.Update{Inc: map[string]int64{"views": 3}})
	assert.Nil(t, err)
	env.Like(bob, model.LikeTarget{Kind: model.VideoTarget, ID: v1})
	env.Like(alice, model.LikeTarget{Kind: model.VideoTarget, ID: v1})
	env.Comment(v2, bob, "hi")
	env.Subscribe(bob, alice)
	s := NewDashboardService(ctx, env.Deps)

	stats, err := s.ChannelStats(alice)
	assert.Nil(t, err)
	assert.DeepEqual(t, pipeline.Doc{
		"total_videos":      int64(2),
		"total_comments":    int64(1),
		"total_likes":       int64(2),
		"total_views":       int64(10),
		"total_subscribers": int64(1),
	}, stats)

	t.Run("unknown channel has zero totals", func(t *testing.T) {
		stats, err := s.ChannelStats(utils.NewObjectID())
		assert.Nil(t, err)
		assert.DeepEqual(t, int64(0), stats["total_videos"])
	})

	t.Run("channel videos include unpublished", func(t *testing.T) {
		docs, err := s.ChannelVideos(alice)
		assert.Nil(t, err)
		assert.DeepEqual(t, 2, len(docs))
		assert.DeepEqual(t, "two", docs[0]["title"])
		assert.False(t, docs[0]["is_published"] == true)
	})
}
