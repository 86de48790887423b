package main

import (
	dashboardHandlers "VideoTube.com/cmd/api/handlers/dashboard"
	healthHandlers "VideoTube.com/cmd/api/handlers/health"
	interactionHandlers "VideoTube.com/cmd/api/handlers/interaction"
	playlistHandlers "VideoTube.com/cmd/api/handlers/playlist"
	relationHandlers "VideoTube.com/cmd/api/handlers/relation"
	tweetHandlers "VideoTube.com/cmd/api/handlers/tweet"
	userHandlers "VideoTube.com/cmd/api/handlers/user"
	videoHandlers "VideoTube.com/cmd/api/handlers/video"
	"VideoTube.com/cmd/api/mw"
	"VideoTube.com/cmd/model"
	"VideoTube.com/pkg/deps"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func register(r *server.Hertz, d *deps.Deps, auth *mw.Auth, uploadDir string) {
	required := auth.Required()
	optional := auth.Optional()

	health := healthHandlers.New(d)
	r.GET("/healthcheck", health.HealthCheck)
	r.GET("/metrics", adaptor.HertzHandler(promhttp.Handler()))

	v1 := r.Group("/api/v1")

	user := userHandlers.New(d, uploadDir)
	users := v1.Group("/users")
	users.POST("/register", mw.Limit(mw.RegisterResource), user.Register)
	users.POST("/login", auth.LoginHandler())
	users.POST("/refresh-token", auth.RefreshHandler())
	users.GET("/me", required, user.Me)

	video := videoHandlers.New(d, uploadDir)
	videos := v1.Group("/videos")
	videos.GET("", video.ListVideos)
	videos.POST("/publish", required, mw.Limit(mw.PublishResource), video.PublishVideo)
	videos.GET("/:videoId", optional, video.GetVideo)
	videos.PATCH("/:videoId", required, video.UpdateVideo)
	videos.DELETE("/:videoId", required, video.DeleteVideo)
	videos.PATCH("/toggle-publish/:videoId", required, video.TogglePublish)

	interaction := interactionHandlers.New(d)
	comments := v1.Group("/comments")
	comments.GET("/:videoId", interaction.ListComments)
	comments.POST("/:videoId", required, mw.Limit(mw.CommentResource), interaction.AddComment)
	comments.PATCH("/c/:commentId", required, interaction.UpdateComment)
	comments.DELETE("/c/:commentId", required, interaction.DeleteComment)

	likes := v1.Group("/likes", required)
	likes.POST("/toggle/v/:videoId", interaction.ToggleLike(model.VideoTarget, "videoId"))
	likes.POST("/toggle/c/:commentId", interaction.ToggleLike(model.CommentTarget, "commentId"))
	likes.POST("/toggle/t/:tweetId", interaction.ToggleLike(model.TweetTarget, "tweetId"))
	likes.GET("/videos", interaction.LikedVideos)

	relation := relationHandlers.New(d)
	subscriptions := v1.Group("/subscriptions")
	subscriptions.POST("/toggle/:channelId", required, relation.ToggleSubscription)
	subscriptions.GET("/subscribers/:channelId", relation.ChannelSubscribers)
	subscriptions.GET("/channels/:subscriberId", required, relation.SubscribedChannels)

	dashboard := dashboardHandlers.New(d)
	stats := v1.Group("/dashboard", required)
	stats.GET("/stats", dashboard.ChannelStats)
	stats.GET("/videos", dashboard.ChannelVideos)

	playlist := playlistHandlers.New(d)
	playlists := v1.Group("/playlists")
	playlists.POST("", required, playlist.CreatePlaylist)
	playlists.GET("/user/:userId", playlist.UserPlaylists)
	playlists.GET("/:playlistId", playlist.GetPlaylist)
	playlists.PATCH("/:playlistId", required, playlist.UpdatePlaylist)
	playlists.DELETE("/:playlistId", required, playlist.DeletePlaylist)
	playlists.PATCH("/add/:playlistId/:videoId", required, playlist.AddVideo)
	playlists.PATCH("/remove/:playlistId/:videoId", required, playlist.RemoveVideo)

	tweet := tweetHandlers.New(d)
	tweets := v1.Group("/tweets")
	tweets.POST("", required, tweet.CreateTweet)
	tweets.GET("/user/:userId", optional, tweet.UserTweets)
	tweets.PATCH("/:tweetId", required, tweet.UpdateTweet)
	tweets.DELETE("/:tweetId", required, tweet.DeleteTweet)
}
