package model

import (
	"sync"
	"testing"
	"time"

	"VideoTube.com/pkg/pipeline"
	"github.com/cloudwego/hertz/pkg/common/test/assert"
	"gorm.io/gorm/schema"
)

func TestVideoDoc(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	v := &Video{ID: "a", Owner: "o", Title: "t", Duration: 3.5, Views: 7, IsPublished: true, CreatedAt: now}
	d := v.ToDoc()
	assert.DeepEqual(t, int64(7), d["views"])

	// numeric values coming back from arithmetic may change type
	d["views"] = 8
	var back Video
	back.FromDoc(d)
	assert.DeepEqual(t, int64(8), back.Views)
	assert.DeepEqual(t, 3.5, back.Duration)
	assert.DeepEqual(t, now, back.CreatedAt)
}

func TestPlaylistVideosOrder(t *testing.T) {
	var p Playlist
	p.FromDoc(pipeline.Doc{"id": "p", "videos": []any{"v2", "v1", "v3"}})
	assert.DeepEqual(t, []string{"v2", "v1", "v3"}, p.Videos)
	assert.DeepEqual(t, []any{"v2", "v1", "v3"}, p.ToDoc()["videos"])

	empty := (&Playlist{ID: "q"}).ToDoc()
	assert.DeepEqual(t, []any{}, empty["videos"])
}

func TestLikeTarget(t *testing.T) {
	assert.DeepEqual(t, Comments, LikeTarget{Kind: CommentTarget}.Collection())
	assert.DeepEqual(t, Tweets, LikeTarget{Kind: TweetTarget}.Collection())
	assert.DeepEqual(t, Videos, LikeTarget{Kind: VideoTarget}.Collection())

	f := LikeTarget{Kind: VideoTarget, ID: "v1"}.Filter()
	assert.True(t, f.Matches(pipeline.Doc{"target_kind": "video", "target_id": "v1"}))
	assert.False(t, f.Matches(pipeline.Doc{"target_kind": "comment", "target_id": "v1"}))
}

// gorm leaves zero values of defaulted columns out of INSERT.
func TestBoolColumnsHaveNoDefault(t *testing.T) {
	s, err := schema.Parse(&Video{}, &sync.Map{}, schema.NamingStrategy{})
	assert.Nil(t, err)
	f := s.LookUpField("is_published")
	assert.NotNil(t, f)
	assert.False(t, f.HasDefaultValue)
	assert.DeepEqual(t, "", f.DefaultValue)
}
