// Package pipelines holds the join shapes the API serves. Every single-valued
// join goes through a primary key, so collapsing it to the first match is
// deterministic.
package pipelines

import (
	"strings"

	"VideoTube.com/cmd/model"
	"VideoTube.com/pkg/pipeline"
)

// internal storage keys never leave the service
var mediaKeys = []string{"video_file_key", "thumbnail_key"}

// joinUser embeds the user referenced by localField under as, restricted to fields.
func joinUser(localField, as string, fields ...string) pipeline.Lookup {
	return pipeline.Lookup{
		From:         model.Users,
		LocalField:   localField,
		ForeignField: "id",
		Pipeline:     []pipeline.Stage{pipeline.Project{Fields: fields}},
		As:           as,
		Single:       true,
	}
}

func likesOf(kind string) pipeline.Lookup {
	return pipeline.Lookup{
		From:         model.Likes,
		LocalField:   "id",
		ForeignField: "target_id",
		Where:        pipeline.Eq("target_kind", kind),
		As:           "likes",
	}
}

// viewer turns an anonymous viewer into a value that matches nothing.
func viewer(id string) any {
	if id == "" {
		return nil
	}
	return id
}

func CommentsForVideo(videoID string) *pipeline.Pipeline {
	return pipeline.From(model.Comments).
		Match(pipeline.Eq("video", videoID)).
		Lookup(joinUser("owner", "owner", "username", "avatar")).
		Sort(pipeline.Desc("created_at"), pipeline.Desc("id")).
		Project("content", "owner", "created_at", "updated_at")
}

func ChannelStats(userID string) *pipeline.Pipeline {
	return pipeline.From(model.Users).
		Match(pipeline.Eq("id", userID)).
		Lookup(pipeline.Lookup{
			From:         model.Videos,
			LocalField:   "id",
			ForeignField: "owner",
			As:           "videos",
			Pipeline: []pipeline.Stage{
				likesOf(model.VideoTarget),
				pipeline.Lookup{From: model.Comments, LocalField: "id", ForeignField: "video", As: "comments"},
				pipeline.AddFields{Fields: []pipeline.Field{
					pipeline.Set("likes", pipeline.Size("likes")),
					pipeline.Set("comments", pipeline.Size("comments")),
				}},
				pipeline.Project{Fields: []string{"views", "likes", "comments"}},
			},
		}).
		Lookup(pipeline.Lookup{
			From:         model.Subscriptions,
			LocalField:   "id",
			ForeignField: "channel",
			As:           "subscribers",
			Pipeline:     []pipeline.Stage{pipeline.Project{}},
		}).
		AddFields(
			pipeline.Set("total_videos", pipeline.Size("videos")),
			pipeline.Set("total_comments", pipeline.Sum("videos.comments")),
			pipeline.Set("total_likes", pipeline.Sum("videos.likes")),
			pipeline.Set("total_views", pipeline.Sum("videos.views")),
			pipeline.Set("total_subscribers", pipeline.Size("subscribers")),
		).
		Project("total_videos", "total_comments", "total_likes", "total_views", "total_subscribers")
}

// VideoDetail joins the latest comments, the like count and the owner's
// channel summary, all from the point of view of viewerID (may be empty).
func VideoDetail(videoID, viewerID string) *pipeline.Pipeline {
	who := viewer(viewerID)
	return pipeline.From(model.Videos).
		Match(pipeline.Eq("id", videoID)).
		Lookup(pipeline.Lookup{
			From:         model.Comments,
			LocalField:   "id",
			ForeignField: "video",
			As:           "comments",
			Pipeline: []pipeline.Stage{
				pipeline.Sort{Keys: []pipeline.SortKey{pipeline.Desc("created_at"), pipeline.Desc("id")}},
				pipeline.Limit{N: 10},
				joinUser("owner", "owner", "username", "avatar"),
			},
		}).
		Lookup(likesOf(model.VideoTarget)).
		Lookup(pipeline.Lookup{
			From:         model.Users,
			LocalField:   "owner",
			ForeignField: "id",
			As:           "owner",
			Single:       true,
			Pipeline: []pipeline.Stage{
				pipeline.Lookup{From: model.Subscriptions, LocalField: "id", ForeignField: "channel", As: "subscribers"},
				pipeline.AddFields{Fields: []pipeline.Field{
					pipeline.Set("subscribers_count", pipeline.Size("subscribers")),
					pipeline.Set("is_subscribed", pipeline.Has("subscribers.subscriber", who)),
				}},
				pipeline.Project{Fields: []string{"username", "avatar", "full_name", "subscribers_count", "is_subscribed"}},
			},
		}).
		AddFields(
			pipeline.Set("is_liked", pipeline.Has("likes.liked_by", who)),
			pipeline.Set("likes", pipeline.Size("likes")),
		).
		Unset(mediaKeys...)
}

// VideoQuery filters the public video listing.
type VideoQuery struct {
	Owner  string
	Search string
	Sort   pipeline.SortKey
}

var sortFields = map[string]string{
	"created_at": "created_at",
	"createdAt":  "created_at",
	"updated_at": "updated_at",
	"updatedAt":  "updated_at",
	"title":      "title",
	"views":      "views",
	"duration":   "duration",
}

// ParseSort maps user supplied sortBy/sortType onto a whitelisted key. Unknown
// fields sort by creation time, anything but "asc" sorts descending.
func ParseSort(sortBy, sortType string) pipeline.SortKey {
	field, ok := sortFields[sortBy]
	if !ok {
		field = "created_at"
	}
	return pipeline.SortKey{Field: field, Desc: !strings.EqualFold(sortType, "asc")}
}

func VideoListing(q VideoQuery) *pipeline.Pipeline {
	filter := []pipeline.Expr{pipeline.Eq("is_published", true)}
	if q.Owner != "" {
		filter = append(filter, pipeline.Eq("owner", q.Owner))
	}
	if s := strings.TrimSpace(q.Search); s != "" {
		filter = append(filter, pipeline.Or(pipeline.ContainsFold("title", s), pipeline.ContainsFold("description", s)))
	}
	if q.Sort.Field == "" {
		q.Sort = pipeline.Desc("created_at")
	}
	return pipeline.From(model.Videos).
		Match(pipeline.And(filter...)).
		Lookup(joinUser("owner", "owner", "username", "avatar")).
		Sort(q.Sort, pipeline.Desc("id")).
		Unset(mediaKeys...)
}

func ChannelSubscribers(channelID string) *pipeline.Pipeline {
	return pipeline.From(model.Subscriptions).
		Match(pipeline.Eq("channel", channelID)).
		Sort(pipeline.Desc("created_at"), pipeline.Desc("id")).
		Lookup(joinUser("subscriber", "subscriber", "username", "avatar", "full_name")).
		Project("subscriber", "created_at")
}

func SubscribedChannels(subscriberID string) *pipeline.Pipeline {
	return pipeline.From(model.Subscriptions).
		Match(pipeline.Eq("subscriber", subscriberID)).
		Sort(pipeline.Desc("created_at"), pipeline.Desc("id")).
		Lookup(joinUser("channel", "channel", "username", "avatar", "full_name")).
		Project("channel", "created_at")
}

// LikedVideos lists the videos userID liked, most recent like first. Likes of
// deleted videos are skipped.
func LikedVideos(userID string) *pipeline.Pipeline {
	return pipeline.From(model.Likes).
		Match(pipeline.And(pipeline.Eq("liked_by", userID), pipeline.Eq("target_kind", model.VideoTarget), pipeline.Exists("target_id"))).
		Sort(pipeline.Desc("created_at"), pipeline.Desc("id")).
		Lookup(pipeline.Lookup{
			From:         model.Videos,
			LocalField:   "target_id",
			ForeignField: "id",
			As:           "video",
			Single:       true,
		}).
		Unwind("video").
		ReplaceRoot("video").
		Project("video_file", "thumbnail", "owner", "title", "description", "created_at", "duration", "views")
}

// ChannelVideos is the owner's own view: unpublished videos included.
func ChannelVideos(userID string) *pipeline.Pipeline {
	return pipeline.From(model.Videos).
		Match(pipeline.Eq("owner", userID)).
		Project("video_file", "thumbnail", "title", "description", "duration", "views", "is_published", "created_at").
		Sort(pipeline.Desc("created_at"), pipeline.Desc("id"))
}

func UserPlaylists(userID string) *pipeline.Pipeline {
	return pipeline.From(model.Playlists).
		Match(pipeline.Eq("owner", userID)).
		AddFields(pipeline.Set("total_videos", pipeline.Size("videos"))).
		Sort(pipeline.Desc("updated_at"), pipeline.Desc("id")).
		Project("name", "description", "owner", "videos", "total_videos", "created_at", "updated_at")
}

// PlaylistDetail keeps the playlist order and drops unpublished or deleted videos.
func PlaylistDetail(playlistID string) *pipeline.Pipeline {
	return pipeline.From(model.Playlists).
		Match(pipeline.Eq("id", playlistID)).
		Lookup(pipeline.Lookup{
			From:         model.Videos,
			LocalField:   "videos",
			ForeignField: "id",
			Where:        pipeline.Eq("is_published", true),
			As:           "videos",
			Pipeline: []pipeline.Stage{
				joinUser("owner", "owner", "username", "avatar"),
				pipeline.Project{Fields: []string{"video_file", "thumbnail", "title", "description", "duration", "views", "owner", "created_at"}},
			},
		}).
		Lookup(joinUser("owner", "owner", "username", "avatar", "full_name")).
		AddFields(
			pipeline.Set("total_videos", pipeline.Size("videos")),
			pipeline.Set("total_views", pipeline.Sum("videos.views")),
		)
}

func UserTweets(userID, viewerID string) *pipeline.Pipeline {
	return pipeline.From(model.Tweets).
		Match(pipeline.Eq("owner", userID)).
		Lookup(joinUser("owner", "owner", "username", "avatar")).
		Lookup(likesOf(model.TweetTarget)).
		AddFields(
			pipeline.Set("is_liked", pipeline.Has("likes.liked_by", viewer(viewerID))),
			pipeline.Set("likes", pipeline.Size("likes")),
		).
		Sort(pipeline.Desc("created_at"), pipeline.Desc("id"))
}
