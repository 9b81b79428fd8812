package service_test

import (
	"context"
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"VidTube.com/cmd/model"
	"VidTube.com/pkg/errno"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVideoCommentsPagination(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	alice := e.user(t, "alice")
	video := e.video(t, alice, "talk")

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 25; i++ {
		c := &model.Comment{
			ID:        model.NewID(),
			Content:   fmt.Sprintf("c%02d", i),
			VideoID:   video.ID,
			OwnerID:   alice.ID,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, e.store.CreateComment(ctx, c))
	}

	var seen []string
	for page, want := range map[int]int{1: 10, 2: 10, 3: 5, 4: 0} {
		got, err := e.composer.VideoComments(ctx, video.ID.String(), page, 10)
		require.NoError(t, err)
		assert.Len(t, got.Comments, want, "page %d", page)
		assert.EqualValues(t, 25, got.TotalComments)
		assert.EqualValues(t, 3, got.TotalPages)
		assert.NotNil(t, got.Comments)
		for _, c := range got.Comments {
			require.NotNil(t, c.Owner)
			assert.Equal(t, "alice", c.Owner.Username)
			seen = append(seen, c.Content)
		}
	}
	assert.Len(t, seen, 25)

	first, err := e.composer.VideoComments(ctx, video.ID.String(), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Page)
	assert.Equal(t, 10, first.PageSize)
	assert.Equal(t, "c00", first.Comments[0].Content)
	assert.Equal(t, "c09", first.Comments[9].Content)

	far, err := e.composer.VideoComments(ctx, video.ID.String(), math.MaxInt/5, 10)
	require.NoError(t, err)
	assert.NotNil(t, far.Comments)
	assert.Empty(t, far.Comments)
	assert.EqualValues(t, 25, far.TotalComments)

	_, err = e.composer.VideoComments(ctx, "nope", 1, 10)
	assertCode(t, err, errno.ParamErrCode)
}

func TestVideoCommentsMissingOwnerOmitted(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	alice := e.user(t, "alice")
	video := e.video(t, alice, "talk")
	require.NoError(t, e.store.CreateComment(ctx, &model.Comment{
		ID: model.NewID(), Content: "orphan", VideoID: video.ID, OwnerID: model.NewID(),
	}))

	page, err := e.composer.VideoComments(ctx, video.ID.String(), 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Comments, 1)
	assert.Nil(t, page.Comments[0].Owner)
}

func TestChannelProfileUnknown(t *testing.T) {
	e := newEnv(t)
	_, err := e.composer.ChannelProfile(context.Background(), "ghost", "")
	assertCode(t, err, errno.NotFoundErrCode)
	_, err = e.composer.ChannelProfile(context.Background(), "  ", "")
	assertCode(t, err, errno.ParamErrCode)
}

func TestPlaylistComposition(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	alice := e.user(t, "alice")
	bob := e.user(t, "bob")
	v1 := e.video(t, bob, "v1")
	v2 := e.video(t, alice, "v2")

	playlist, err := e.playlists.Create(ctx, alice.ID, "mix", "things")
	require.NoError(t, err)
	_, err = e.playlists.Create(ctx, alice.ID, "empty", "nothing yet")
	require.NoError(t, err)
	_, err = e.playlists.Create(ctx, alice.ID, "nameless", "  ")
	assertCode(t, err, errno.ParamErrCode)
	_, err = e.playlists.Create(ctx, alice.ID, "", "no name")
	assertCode(t, err, errno.ParamErrCode)
	_, err = e.playlists.AddVideo(ctx, alice.ID, v1.ID.String(), playlist.ID.String())
	require.NoError(t, err)
	detail, err := e.playlists.AddVideo(ctx, alice.ID, v2.ID.String(), playlist.ID.String())
	require.NoError(t, err)

	require.Len(t, detail.Videos, 2)
	assert.Equal(t, v1.ID, detail.Videos[0].ID)
	assert.Equal(t, "bob", detail.Videos[0].Owner.Username)
	assert.Equal(t, "alice", detail.Videos[1].Owner.Username)
	require.NotNil(t, detail.CreatedBy)
	assert.Equal(t, alice.ID, detail.CreatedBy.ID)

	lists, err := e.playlists.ListByUser(ctx, alice.ID.String(), alice.ID)
	require.NoError(t, err)
	require.Len(t, lists, 2)
	for _, l := range lists {
		assert.NotNil(t, l.Videos)
		assert.Equal(t, "alice", l.CreatedBy.Username)
	}

	_, err = e.playlists.Detail(ctx, model.NewID().String(), alice.ID)
	assertCode(t, err, errno.NotFoundErrCode)
	_, err = e.playlists.ListByUser(ctx, "bad", alice.ID)
	assertCode(t, err, errno.ParamErrCode)
}

func TestPlaylistMembershipIdempotence(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	alice := e.user(t, "alice")
	video := e.video(t, alice, "clip")
	playlist, err := e.playlists.Create(ctx, alice.ID, "once", "single entry")
	require.NoError(t, err)

	_, err = e.playlists.AddVideo(ctx, alice.ID, video.ID.String(), playlist.ID.String())
	require.NoError(t, err)
	_, err = e.playlists.AddVideo(ctx, alice.ID, video.ID.String(), playlist.ID.String())
	assertCode(t, err, errno.ParamErrCode)

	detail, err := e.playlists.Detail(ctx, playlist.ID.String(), alice.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Videos, 1)

	detail, err = e.playlists.RemoveVideo(ctx, alice.ID, video.ID.String(), playlist.ID.String())
	require.NoError(t, err)
	assert.Empty(t, detail.Videos)
	_, err = e.playlists.RemoveVideo(ctx, alice.ID, video.ID.String(), playlist.ID.String())
	assertCode(t, err, errno.ParamErrCode)

	_, err = e.playlists.AddVideo(ctx, alice.ID, model.NewID().String(), playlist.ID.String())
	assertCode(t, err, errno.NotFoundErrCode)
}

func TestSubscriptionListsAndTweets(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	alice := e.user(t, "alice")
	bob := e.user(t, "bob")
	carol := e.user(t, "carol")
	for _, u := range []*model.User{bob, carol} {
		_, err := e.interactions.ToggleSubscription(ctx, u.ID, alice.ID.String())
		require.NoError(t, err)
	}

	subscribers, err := e.interactions.Subscribers(ctx, alice.ID.String())
	require.NoError(t, err)
	require.Len(t, subscribers, 2)
	names := []string{subscribers[0].User.Username, subscribers[1].User.Username}
	assert.ElementsMatch(t, []string{"bob", "carol"}, names)

	channels, err := e.interactions.SubscribedChannels(ctx, bob.ID.String())
	require.NoError(t, err)
	require.Len(t, channels, 1)
	assert.Equal(t, alice.ID, channels[0].User.ID)

	tweet, err := e.tweets.Create(ctx, alice.ID, "hi all")
	require.NoError(t, err)
	_, err = e.interactions.ToggleLike(ctx, bob.ID, model.LikeTweet, tweet.ID.String())
	require.NoError(t, err)
	tweets, err := e.tweets.ListByUser(ctx, alice.ID.String())
	require.NoError(t, err)
	require.Len(t, tweets, 1)
	assert.EqualValues(t, 1, tweets[0].LikesCount)
	assert.Equal(t, "alice", tweets[0].Owner.Username)

	_, err = e.tweets.Create(ctx, alice.ID, "   ")
	assertCode(t, err, errno.ParamErrCode)
	long, err := e.tweets.Create(ctx, alice.ID, strings.Repeat("long thread ", 100))
	require.NoError(t, err)
	assert.Len(t, long.Content, 1199)
}

func TestUnpublishedVideoDroppedFromCollections(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	alice := e.user(t, "alice")
	bob := e.user(t, "bob")
	video := e.video(t, bob, "draft")

	playlist, err := e.playlists.Create(ctx, alice.ID, "watch later", "queue")
	require.NoError(t, err)
	_, err = e.playlists.AddVideo(ctx, alice.ID, video.ID.String(), playlist.ID.String())
	require.NoError(t, err)
	_, err = e.interactions.ToggleLike(ctx, alice.ID, model.LikeVideo, video.ID.String())
	require.NoError(t, err)
	require.NoError(t, e.store.AddWatchHistory(ctx, alice.ID, video.ID))

	toggled, err := e.videos.TogglePublish(ctx, bob.ID, video.ID.String())
	require.NoError(t, err)
	require.False(t, toggled.IsPublished)

	detail, err := e.playlists.Detail(ctx, playlist.ID.String(), alice.ID)
	require.NoError(t, err)
	assert.Empty(t, detail.Videos)
	lists, err := e.playlists.ListByUser(ctx, alice.ID.String(), "")
	require.NoError(t, err)
	require.Len(t, lists, 1)
	assert.Empty(t, lists[0].Videos)

	liked, err := e.interactions.LikedVideos(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, liked)
	history, err := e.composer.WatchHistory(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, history)

	_, err = e.interactions.ToggleLike(ctx, alice.ID, model.LikeVideo, video.ID.String())
	assertCode(t, err, errno.NotFoundErrCode)
	_, err = e.comments.Add(ctx, alice.ID, video.ID.String(), "hello?")
	assertCode(t, err, errno.NotFoundErrCode)
	other, err := e.playlists.Create(ctx, alice.ID, "second", "another")
	require.NoError(t, err)
	_, err = e.playlists.AddVideo(ctx, alice.ID, video.ID.String(), other.ID.String())
	assertCode(t, err, errno.NotFoundErrCode)

	// 作者本人仍然可以看到并操作自己的未发布视频
	own, err := e.playlists.Create(ctx, bob.ID, "drafts", "unfinished")
	require.NoError(t, err)
	ownDetail, err := e.playlists.AddVideo(ctx, bob.ID, video.ID.String(), own.ID.String())
	require.NoError(t, err)
	require.Len(t, ownDetail.Videos, 1)
	_, err = e.comments.Add(ctx, bob.ID, video.ID.String(), "note to self")
	require.NoError(t, err)

	_, err = e.videos.TogglePublish(ctx, bob.ID, video.ID.String())
	require.NoError(t, err)
	liked, err = e.interactions.LikedVideos(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, liked, 1)
	assert.Equal(t, video.ID, liked[0].Video.ID)
}
