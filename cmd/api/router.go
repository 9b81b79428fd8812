package main

import (
	"VidTube.com/cmd/api/router/authfunc"
	"VidTube.com/cmd/dal/db"
	"VidTube.com/cmd/model"
	"VidTube.com/cmd/service"

	health "VidTube.com/cmd/api/handlers/health"
	interaction "VidTube.com/cmd/api/handlers/interaction"
	playlist "VidTube.com/cmd/api/handlers/playlist"
	relation "VidTube.com/cmd/api/handlers/relation"
	tweet "VidTube.com/cmd/api/handlers/tweet"
	user "VidTube.com/cmd/api/handlers/user"
	video "VidTube.com/cmd/api/handlers/video"

	"github.com/cloudwego/hertz/pkg/common/adaptor"
	"github.com/cloudwego/hertz/pkg/route"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// deps 外部组件 未配置的组件保持nil接口
type deps struct {
	store    *db.Store
	media    service.MediaStore
	index    service.VideoIndex
	events   service.EventPublisher
	locker   service.Locker
	limiter  service.RateLimiter
	revoker  service.TokenRevoker
	denylist authfunc.Denylist
	probe    service.DurationProber
	jwt      authfunc.Config
	tempDir  string
}

type routes struct {
	auth        *authfunc.Auth
	health      *health.Handler
	user        *user.Handler
	video       *video.Handler
	interaction *interaction.Handler
	tweet       *tweet.Handler
	playlist    *playlist.Handler
	relation    *relation.Handler
}

func newRoutes(d deps) (*routes, error) {
	auth, err := authfunc.NewAuth(d.jwt, d.store, d.denylist)
	if err != nil {
		return nil, err
	}
	composer := service.NewComposer(d.store, d.index)
	interactions := service.NewInteractionService(d.store, composer, d.locker, d.events)
	return &routes{
		auth:        auth,
		health:      health.New(d.store),
		user:        user.New(service.NewUserService(d.store, d.media, auth, d.revoker), composer, d.tempDir),
		video:       video.New(service.NewVideoService(d.store, d.media, composer, d.index, d.events, d.probe), d.tempDir),
		interaction: interaction.New(service.NewCommentService(d.store, composer, d.limiter, d.events), interactions),
		tweet:       tweet.New(service.NewTweetService(d.store, composer)),
		playlist:    playlist.New(service.NewPlaylistService(d.store, composer)),
		relation:    relation.New(interactions),
	}, nil
}

func register(r *route.Engine, rt *routes) {
	r.GET("/metrics", adaptor.HertzHandler(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	v1.GET("/healthcheck", rt.health.Check)

	users := v1.Group("/users")
	users.POST("/register", rt.user.Register)
	users.POST("/login", rt.user.Login)
	users.POST("/refresh-token", rt.user.RefreshToken)
	users.GET("/c/:username", rt.auth.OptionalAuth(), rt.user.ChannelProfile)
	securedUsers := users.Group("", rt.auth.Auth()...)
	securedUsers.POST("/logout", rt.user.Logout)
	securedUsers.POST("/change-password", rt.user.ChangePassword)
	securedUsers.GET("/current-user", rt.user.CurrentUser)
	securedUsers.PATCH("/update-account", rt.user.UpdateAccount)
	securedUsers.PATCH("/avatar", rt.user.UpdateAvatar)
	securedUsers.PATCH("/cover-image", rt.user.UpdateCoverImage)
	securedUsers.GET("/history", rt.user.WatchHistory)

	videos := v1.Group("/videos")
	videos.GET("", rt.video.List)
	videos.GET("/:videoId", rt.auth.OptionalAuth(), rt.video.Get)
	securedVideos := videos.Group("", rt.auth.Auth()...)
	securedVideos.POST("", rt.video.Publish)
	securedVideos.PATCH("/:videoId", rt.video.Update)
	securedVideos.DELETE("/:videoId", rt.video.Delete)
	securedVideos.PATCH("/toggle/publish/:videoId", rt.video.TogglePublish)

	comments := v1.Group("/comments")
	comments.GET("/:videoId", rt.interaction.ListComments)
	securedComments := comments.Group("", rt.auth.Auth()...)
	securedComments.POST("/:videoId", rt.interaction.AddComment)
	securedComments.PATCH("/c/:commentId", rt.interaction.UpdateComment)
	securedComments.DELETE("/c/:commentId", rt.interaction.DeleteComment)

	likes := v1.Group("/likes", rt.auth.Auth()...)
	likes.POST("/toggle/v/:videoId", rt.interaction.LikeAction(model.LikeVideo, "videoId"))
	likes.POST("/toggle/c/:commentId", rt.interaction.LikeAction(model.LikeComment, "commentId"))
	likes.POST("/toggle/t/:tweetId", rt.interaction.LikeAction(model.LikeTweet, "tweetId"))
	likes.GET("/videos", rt.interaction.LikedVideos)

	tweets := v1.Group("/tweets", rt.auth.Auth()...)
	tweets.POST("", rt.tweet.Create)
	tweets.GET("/user/:userId", rt.tweet.ListByUser)
	tweets.PATCH("/:tweetId", rt.tweet.Update)
	tweets.DELETE("/:tweetId", rt.tweet.Delete)

	playlists := v1.Group("/playlist", rt.auth.Auth()...)
	playlists.POST("", rt.playlist.Create)
	playlists.GET("/user/:userId", rt.playlist.ListByUser)
	playlists.GET("/:playlistId", rt.playlist.Detail)
	playlists.PATCH("/:playlistId", rt.playlist.Update)
	playlists.DELETE("/:playlistId", rt.playlist.Delete)
	playlists.PATCH("/add/:videoId/:playlistId", rt.playlist.AddVideo)
	playlists.PATCH("/remove/:videoId/:playlistId", rt.playlist.RemoveVideo)

	subscriptions := v1.Group("/subscriptions", rt.auth.Auth()...)
	subscriptions.POST("/c/:channelId", rt.relation.ToggleSubscription)
	subscriptions.GET("/c/:channelId", rt.relation.Subscribers)
	subscriptions.GET("/u/:subscriberId", rt.relation.SubscribedChannels)
}
