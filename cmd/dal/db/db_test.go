package db_test

import (
	"context"
	"math"
	"testing"
	"time"

	"VidTube.com/cmd/dal/db"
	"VidTube.com/cmd/dal/db/dbtest"
	"VidTube.com/cmd/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, store *db.Store, name string) *model.User {
	t.Helper()
	u := &model.User{
		ID:       model.NewID(),
		Username: name,
		Email:    name + "@example.com",
		FullName: name,
		Avatar:   "http://cdn/" + name,
		Password: "hash",
	}
	require.NoError(t, store.CreateUser(context.Background(), u))
	return u
}

func seedVideo(t *testing.T, store *db.Store, owner model.ID, title string) *model.Video {
	t.Helper()
	v := &model.Video{
		ID:          model.NewID(),
		OwnerID:     owner,
		Title:       title,
		VideoFile:   "http://cdn/v",
		Thumbnail:   "http://cdn/t",
		IsPublished: true,
	}
	require.NoError(t, store.CreateVideo(context.Background(), v))
	return v
}

func TestChannelProfile(t *testing.T) {
	ctx := context.Background()
	store := dbtest.NewStore(t)
	alice := seedUser(t, store, "alice")
	bob := seedUser(t, store, "bob")
	carol := seedUser(t, store, "carol")

	for _, sub := range []*model.Subscription{
		{ID: model.NewID(), SubscriberID: bob.ID, ChannelID: alice.ID},
		{ID: model.NewID(), SubscriberID: carol.ID, ChannelID: alice.ID},
		{ID: model.NewID(), SubscriberID: alice.ID, ChannelID: bob.ID},
	} {
		require.NoError(t, store.CreateSubscription(ctx, sub))
	}

	profile, err := store.ChannelProfile(ctx, "alice", bob.ID)
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, alice.ID, profile.ID)
	assert.EqualValues(t, 2, profile.SubscriberCount)
	assert.EqualValues(t, 1, profile.SubscribedToCount)
	assert.True(t, profile.IsSubscribedByViewer)
	assert.False(t, profile.CreatedAt.IsZero())

	profile, err = store.ChannelProfile(ctx, "alice", "")
	require.NoError(t, err)
	assert.False(t, profile.IsSubscribedByViewer)

	profile, err = store.ChannelProfile(ctx, "nobody", bob.ID)
	require.NoError(t, err)
	assert.Nil(t, profile)
}

func TestDuplicateEdgesRejected(t *testing.T) {
	ctx := context.Background()
	store := dbtest.NewStore(t)
	alice := seedUser(t, store, "alice")
	video := seedVideo(t, store, alice.ID, "v1")

	target, err := model.NewLikeTarget(model.LikeVideo, video.ID)
	require.NoError(t, err)
	require.NoError(t, store.CreateLike(ctx, &model.Like{ID: model.NewID(), LikedByID: alice.ID, TargetKind: target.Kind(), TargetID: target.ID()}))
	err = store.CreateLike(ctx, &model.Like{ID: model.NewID(), LikedByID: alice.ID, TargetKind: target.Kind(), TargetID: target.ID()})
	assert.True(t, db.IsDuplicate(err))

	err = store.CreateUser(ctx, &model.User{ID: model.NewID(), Username: "alice", Email: "other@example.com", FullName: "x", Avatar: "a", Password: "p"})
	assert.True(t, db.IsDuplicate(err))
}

func TestWatchHistoryKeepsFirstPosition(t *testing.T) {
	ctx := context.Background()
	store := dbtest.NewStore(t)
	alice := seedUser(t, store, "alice")
	v1 := seedVideo(t, store, alice.ID, "v1")
	v2 := seedVideo(t, store, alice.ID, "v2")

	require.NoError(t, store.AddWatchHistory(ctx, alice.ID, v1.ID))
	require.NoError(t, store.AddWatchHistory(ctx, alice.ID, v2.ID))
	require.NoError(t, store.AddWatchHistory(ctx, alice.ID, v1.ID))

	ids, err := store.ListWatchHistory(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []model.ID{v1.ID, v2.ID}, ids)
}

func TestDeleteVideoCascades(t *testing.T) {
	ctx := context.Background()
	store := dbtest.NewStore(t)
	alice := seedUser(t, store, "alice")
	video := seedVideo(t, store, alice.ID, "v1")

	comment := &model.Comment{ID: model.NewID(), Content: "hi", VideoID: video.ID, OwnerID: alice.ID}
	require.NoError(t, store.CreateComment(ctx, comment))
	require.NoError(t, store.CreateLike(ctx, &model.Like{ID: model.NewID(), LikedByID: alice.ID, TargetKind: model.LikeComment, TargetID: comment.ID}))
	require.NoError(t, store.CreateLike(ctx, &model.Like{ID: model.NewID(), LikedByID: alice.ID, TargetKind: model.LikeVideo, TargetID: video.ID}))
	playlist := &model.Playlist{ID: model.NewID(), Name: "p", OwnerID: alice.ID}
	require.NoError(t, store.CreatePlaylist(ctx, playlist))
	require.NoError(t, store.AddPlaylistVideo(ctx, playlist.ID, video.ID))
	require.NoError(t, store.AddWatchHistory(ctx, alice.ID, video.ID))

	require.NoError(t, store.DeleteVideo(ctx, video.ID))

	var likes int64
	require.NoError(t, store.DB().Model(&model.Like{}).Count(&likes).Error)
	assert.Zero(t, likes)
	exists, err := store.CommentExists(ctx, comment.ID)
	require.NoError(t, err)
	assert.False(t, exists)
	member, err := store.IsPlaylistMember(ctx, playlist.ID, video.ID)
	require.NoError(t, err)
	assert.False(t, member)
	history, err := store.ListWatchHistory(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, history)

	assert.ErrorIs(t, store.DeleteVideo(ctx, video.ID), db.ErrNoRowsAffected)
}

func TestListVideos(t *testing.T) {
	ctx := context.Background()
	store := dbtest.NewStore(t)
	alice := seedUser(t, store, "alice")
	bob := seedUser(t, store, "bob")
	for i, title := range []string{"golang basics", "cooking pasta", "golang generics"} {
		v := seedVideo(t, store, alice.ID, title)
		require.NoError(t, store.UpdateVideo(ctx, v.ID, map[string]interface{}{"views": int64(i * 10)}))
	}
	hidden := seedVideo(t, store, bob.ID, "golang drafts")
	require.NoError(t, store.UpdateVideo(ctx, hidden.ID, map[string]interface{}{"is_published": false}))

	videos, total, err := store.ListVideos(ctx, db.VideoQuery{Page: 1, PageSize: 10, Query: "golang", SortBy: "views", SortType: "asc"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, videos, 2)
	assert.Equal(t, "golang basics", videos[0].Title)

	videos, total, err = store.ListVideos(ctx, db.VideoQuery{Page: 2, PageSize: 2, OwnerID: alice.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, videos, 1)

	videos, _, err = store.ListVideos(ctx, db.VideoQuery{Page: 1, PageSize: 10, IDs: []model.ID{}})
	require.NoError(t, err)
	assert.Empty(t, videos)

	videos, total, err = store.ListVideos(ctx, db.VideoQuery{Page: math.MaxInt / 2, PageSize: 50, OwnerID: alice.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.NotNil(t, videos)
	assert.Empty(t, videos)

	require.NoError(t, store.IncrementViews(ctx, hidden.ID))
	got, err := store.GetVideo(ctx, hidden.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, got.Views)

	_, err = store.GetVideo(ctx, model.NewID())
	assert.True(t, db.IsNotFound(err))
}

func TestCommentsPagedInCreationOrder(t *testing.T) {
	ctx := context.Background()
	store := dbtest.NewStore(t)
	alice := seedUser(t, store, "alice")
	video := seedVideo(t, store, alice.ID, "v1")
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		c := &model.Comment{ID: model.NewID(), Content: string(rune('a' + i)), VideoID: video.ID, OwnerID: alice.ID, CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		require.NoError(t, store.CreateComment(ctx, c))
	}

	page, err := store.ListCommentsByVideo(ctx, video.ID, 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "c", page[0].Content)
	assert.Equal(t, "d", page[1].Content)

	count, err := store.CountCommentsByVideo(ctx, video.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 5, count)
}

func TestPageOffset(t *testing.T) {
	for _, tc := range []struct {
		page, size int
		want       int
		ok         bool
	}{
		{1, 10, 0, true},
		{3, 10, 20, true},
		{0, 10, 0, false},
		{1, 0, 0, false},
		{math.MaxInt, 10, 0, false},
		{math.MaxInt/10 + 2, 10, 0, false},
		{math.MaxInt/10 + 1, 10, math.MaxInt / 10 * 10, true},
	} {
		got, ok := db.PageOffset(tc.page, tc.size)
		assert.Equal(t, tc.ok, ok, "page=%d size=%d", tc.page, tc.size)
		assert.Equal(t, tc.want, got, "page=%d size=%d", tc.page, tc.size)
	}
}

func TestVideoVisibility(t *testing.T) {
	ctx := context.Background()
	store := dbtest.NewStore(t)
	alice := seedUser(t, store, "alice")
	bob := seedUser(t, store, "bob")
	public := seedVideo(t, store, bob.ID, "public")
	draft := seedVideo(t, store, bob.ID, "draft")
	require.NoError(t, store.UpdateVideo(ctx, draft.ID, map[string]interface{}{"is_published": false}))

	for _, tc := range []struct {
		viewer model.ID
		id     model.ID
		want   bool
	}{
		{alice.ID, public.ID, true},
		{alice.ID, draft.ID, false},
		{"", draft.ID, false},
		{bob.ID, draft.ID, true},
		{bob.ID, model.NewID(), false},
	} {
		ok, err := store.VisibleVideoExists(ctx, tc.id, tc.viewer)
		require.NoError(t, err)
		assert.Equal(t, tc.want, ok, "viewer=%s id=%s", tc.viewer, tc.id)
	}

	ids := []model.ID{public.ID, draft.ID}
	byID, err := store.GetVisibleVideosByIDs(ctx, ids, alice.ID)
	require.NoError(t, err)
	assert.Len(t, byID, 1)
	assert.Contains(t, byID, public.ID)

	byID, err = store.GetVisibleVideosByIDs(ctx, ids, bob.ID)
	require.NoError(t, err)
	assert.Len(t, byID, 2)
}
