package service_test

import (
	"context"
	"testing"

	"VidTube.com/cmd/service"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/mq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func videoUpdate(title string) service.UpdateVideoParam {
	return service.UpdateVideoParam{Title: title}
}

func TestPublishAndWatch(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	alice := e.user(t, "alice")
	bob := e.user(t, "bob")

	video, err := e.videos.Publish(ctx, alice.ID, service.PublishVideoParam{
		Title:         "Go tour",
		Description:   "basics",
		VideoPath:     "/tmp/tour.mp4",
		ThumbnailPath: "/tmp/tour.png",
	})
	require.NoError(t, err)
	assert.True(t, video.IsPublished)
	assert.Equal(t, "http://cdn//tmp/tour.mp4", video.VideoFile)
	assert.Contains(t, e.events.types(), mq.EventVideoUpload)

	detail, err := e.videos.Get(ctx, video.ID.String(), bob.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, detail.Views)
	assert.Equal(t, "alice", detail.Owner.Username)
	assert.False(t, detail.IsLiked)

	_, err = e.videos.Get(ctx, video.ID.String(), bob.ID)
	require.NoError(t, err)
	history, err := e.composer.WatchHistory(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, video.ID, history[0].ID)

	_, err = e.videos.Get(ctx, video.ID.String(), "")
	require.NoError(t, err)
	stored, err := e.store.GetVideo(ctx, video.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, stored.Views)
}

func TestPublishCompensatesOnThumbnailFailure(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	alice := e.user(t, "alice")
	e.media.failUpload["/tmp/bad.png"] = true

	_, err := e.videos.Publish(ctx, alice.ID, service.PublishVideoParam{
		Title: "t", Description: "d", VideoPath: "/tmp/ok.mp4", ThumbnailPath: "/tmp/bad.png",
	})
	assertCode(t, err, errno.ParamErrCode)
	require.Len(t, e.media.uploaded, 1)
	assert.Equal(t, []string{e.media.uploaded[0].ID}, e.media.deleted)

	_, err = e.videos.Publish(ctx, alice.ID, service.PublishVideoParam{Title: "t", Description: "d"})
	assertCode(t, err, errno.ParamErrCode)
}

func TestUnpublishedVideoHiddenFromOthers(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	alice := e.user(t, "alice")
	bob := e.user(t, "bob")
	video := e.video(t, alice, "draft")
	_, err := e.videos.TogglePublish(ctx, alice.ID, video.ID.String())
	require.NoError(t, err)

	_, err = e.videos.Get(ctx, video.ID.String(), bob.ID)
	assertCode(t, err, errno.NotFoundErrCode)
	_, err = e.videos.Get(ctx, video.ID.String(), alice.ID)
	require.NoError(t, err)

	page, err := e.videos.List(ctx, service.VideoListQuery{Query: "draft"})
	require.NoError(t, err)
	assert.Empty(t, page.Videos)
}

func TestListVideosPaged(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	alice := e.user(t, "alice")
	bob := e.user(t, "bob")
	for _, title := range []string{"a", "b", "c"} {
		e.video(t, alice, title)
	}
	e.video(t, bob, "d")

	page, err := e.videos.List(ctx, service.VideoListQuery{Page: 1, PageSize: 2, UserID: alice.ID.String(), SortBy: "title", SortType: "asc"})
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.TotalVideos)
	assert.EqualValues(t, 2, page.TotalPages)
	require.Len(t, page.Videos, 2)
	assert.Equal(t, "a", page.Videos[0].Title)
	assert.Equal(t, "alice", page.Videos[0].Owner.Username)

	_, err = e.videos.List(ctx, service.VideoListQuery{UserID: "x"})
	assertCode(t, err, errno.ParamErrCode)
}

func TestUpdateVideoReplacesThumbnail(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	alice := e.user(t, "alice")
	video := e.video(t, alice, "old")
	require.NoError(t, e.store.UpdateVideo(ctx, video.ID, map[string]interface{}{"thumbnail_id": "thumb-old"}))

	updated, err := e.videos.Update(ctx, alice.ID, video.ID.String(), service.UpdateVideoParam{
		Title: "new", ThumbnailPath: "/tmp/new.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "new", updated.Title)
	assert.Equal(t, "http://cdn//tmp/new.png", updated.Thumbnail)
	assert.Equal(t, []string{"thumb-old"}, e.media.deleted)

	_, err = e.videos.Update(ctx, alice.ID, video.ID.String(), service.UpdateVideoParam{})
	assertCode(t, err, errno.ParamErrCode)
}
