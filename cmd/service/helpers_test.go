package service_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"VidTube.com/cmd/dal/db"
	"VidTube.com/cmd/dal/db/dbtest"
	"VidTube.com/cmd/model"
	"VidTube.com/cmd/service"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/mq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMedia struct {
	mu         sync.Mutex
	failUpload map[string]bool
	failDelete bool
	uploaded   []*model.Asset
	deleted    []string
}

func newFakeMedia() *fakeMedia {
	return &fakeMedia{failUpload: map[string]bool{}}
}

func (m *fakeMedia) Upload(_ context.Context, localPath string) (*model.Asset, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if localPath == "" || m.failUpload[localPath] {
		return nil, false
	}
	a := &model.Asset{ID: fmt.Sprintf("asset-%d-%s", len(m.uploaded), localPath), URL: "http://cdn/" + localPath}
	m.uploaded = append(m.uploaded, a)
	return a, true
}

func (m *fakeMedia) Delete(_ context.Context, assetID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, assetID)
	return !m.failDelete
}

type fakeEvents struct {
	mu     sync.Mutex
	events []*mq.InteractionEvent
}

func (e *fakeEvents) Publish(_ context.Context, event *mq.InteractionEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, event)
	return nil
}

func (e *fakeEvents) types() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, 0, len(e.events))
	for _, ev := range e.events {
		out = append(out, ev.Type)
	}
	return out
}

type fakeTokens struct{}

func (fakeTokens) IssueAccessToken(id model.ID) (string, time.Time, error) {
	return "access." + id.String() + "." + model.NewID().String(), time.Now().Add(time.Hour), nil
}

func (fakeTokens) IssueRefreshToken(id model.ID) (string, time.Time, error) {
	return "refresh." + id.String() + "." + model.NewID().String(), time.Now().Add(24 * time.Hour), nil
}

func (fakeTokens) ParseRefreshToken(token string) (model.ID, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 || parts[0] != "refresh" {
		return "", fmt.Errorf("bad token")
	}
	return model.ID(parts[1]), nil
}

type env struct {
	store        *db.Store
	media        *fakeMedia
	events       *fakeEvents
	composer     *service.Composer
	users        *service.UserService
	videos       *service.VideoService
	comments     *service.CommentService
	tweets       *service.TweetService
	playlists    *service.PlaylistService
	interactions *service.InteractionService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := dbtest.NewStore(t)
	media := newFakeMedia()
	events := &fakeEvents{}
	composer := service.NewComposer(store, nil)
	return &env{
		store:        store,
		media:        media,
		events:       events,
		composer:     composer,
		users:        service.NewUserService(store, media, fakeTokens{}, nil),
		videos:       service.NewVideoService(store, media, composer, nil, events, nil),
		comments:     service.NewCommentService(store, composer, nil, events),
		tweets:       service.NewTweetService(store, composer),
		playlists:    service.NewPlaylistService(store, composer),
		interactions: service.NewInteractionService(store, composer, nil, events),
	}
}

func (e *env) user(t *testing.T, name string) *model.User {
	t.Helper()
	u := &model.User{
		ID:       model.NewID(),
		Username: name,
		Email:    name + "@example.com",
		FullName: "Full " + name,
		Avatar:   "http://cdn/" + name + ".png",
		Password: "unused",
	}
	require.NoError(t, e.store.CreateUser(context.Background(), u))
	return u
}

func (e *env) video(t *testing.T, owner *model.User, title string) *model.Video {
	t.Helper()
	v := &model.Video{
		ID:          model.NewID(),
		OwnerID:     owner.ID,
		Title:       title,
		Description: title + " description",
		VideoFile:   "http://cdn/" + title + ".mp4",
		Thumbnail:   "http://cdn/" + title + ".png",
		IsPublished: true,
	}
	require.NoError(t, e.store.CreateVideo(context.Background(), v))
	return v
}

func assertCode(t *testing.T, err error, code int64) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, code, errno.ConvertErr(err).ErrCode, err.Error())
}
