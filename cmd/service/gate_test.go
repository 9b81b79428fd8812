package service_test

import (
	"context"
	"testing"

	"VidTube.com/cmd/model"
	"VidTube.com/pkg/errno"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOwnershipGate(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	alice := e.user(t, "alice")
	bob := e.user(t, "bob")
	video := e.video(t, alice, "mine")
	comment, err := e.comments.Add(ctx, alice.ID, video.ID.String(), "original")
	require.NoError(t, err)
	tweet, err := e.tweets.Create(ctx, alice.ID, "original")
	require.NoError(t, err)
	playlist, err := e.playlists.Create(ctx, alice.ID, "favs", "best of")
	require.NoError(t, err)

	t.Run("non owner is forbidden", func(t *testing.T) {
		_, err := e.comments.Update(ctx, bob.ID, comment.ID.String(), "hijacked")
		assertCode(t, err, errno.ForbiddenErrCode)
		assertCode(t, e.comments.Delete(ctx, bob.ID, comment.ID.String()), errno.ForbiddenErrCode)

		_, err = e.tweets.Update(ctx, bob.ID, tweet.ID.String(), "hijacked")
		assertCode(t, err, errno.ForbiddenErrCode)
		assertCode(t, e.tweets.Delete(ctx, bob.ID, tweet.ID.String()), errno.ForbiddenErrCode)

		_, err = e.playlists.Update(ctx, bob.ID, playlist.ID.String(), "hijacked", "")
		assertCode(t, err, errno.ForbiddenErrCode)
		assertCode(t, e.playlists.Delete(ctx, bob.ID, playlist.ID.String()), errno.ForbiddenErrCode)
		_, err = e.playlists.AddVideo(ctx, bob.ID, video.ID.String(), playlist.ID.String())
		assertCode(t, err, errno.ForbiddenErrCode)

		_, err = e.videos.Update(ctx, bob.ID, video.ID.String(), videoUpdate("hijacked"))
		assertCode(t, err, errno.ForbiddenErrCode)
		_, err = e.videos.TogglePublish(ctx, bob.ID, video.ID.String())
		assertCode(t, err, errno.ForbiddenErrCode)
		assertCode(t, e.videos.Delete(ctx, bob.ID, video.ID.String()), errno.ForbiddenErrCode)
	})

	t.Run("state unchanged after rejection", func(t *testing.T) {
		c, err := e.store.GetComment(ctx, comment.ID)
		require.NoError(t, err)
		assert.Equal(t, "original", c.Content)
		tw, err := e.store.GetTweet(ctx, tweet.ID)
		require.NoError(t, err)
		assert.Equal(t, "original", tw.Content)
		p, err := e.store.GetPlaylist(ctx, playlist.ID)
		require.NoError(t, err)
		assert.Equal(t, "favs", p.Name)
		v, err := e.store.GetVideo(ctx, video.ID)
		require.NoError(t, err)
		assert.Equal(t, "mine", v.Title)
		assert.True(t, v.IsPublished)
	})

	t.Run("missing entity is not found before ownership", func(t *testing.T) {
		missing := model.NewID().String()
		_, err := e.comments.Update(ctx, bob.ID, missing, "x")
		assertCode(t, err, errno.NotFoundErrCode)
		assertCode(t, e.tweets.Delete(ctx, bob.ID, missing), errno.NotFoundErrCode)
		assertCode(t, e.playlists.Delete(ctx, bob.ID, missing), errno.NotFoundErrCode)
		assertCode(t, e.videos.Delete(ctx, bob.ID, missing), errno.NotFoundErrCode)
	})

	t.Run("malformed id is a bad request", func(t *testing.T) {
		assertCode(t, e.comments.Delete(ctx, alice.ID, "zzz"), errno.ParamErrCode)
		_, err := e.videos.TogglePublish(ctx, alice.ID, "zzz")
		assertCode(t, err, errno.ParamErrCode)
	})

	t.Run("owner succeeds", func(t *testing.T) {
		updated, err := e.comments.Update(ctx, alice.ID, comment.ID.String(), "edited")
		require.NoError(t, err)
		assert.Equal(t, "edited", updated.Content)
		require.NoError(t, e.tweets.Delete(ctx, alice.ID, tweet.ID.String()))
		_, err = e.store.GetTweet(ctx, tweet.ID)
		assert.Error(t, err)

		toggled, err := e.videos.TogglePublish(ctx, alice.ID, video.ID.String())
		require.NoError(t, err)
		assert.False(t, toggled.IsPublished)
		require.NoError(t, e.videos.Delete(ctx, alice.ID, video.ID.String()))
		exists, err := e.store.CommentExists(ctx, comment.ID)
		require.NoError(t, err)
		assert.False(t, exists)
	})
}
