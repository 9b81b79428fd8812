package service

import (
	"context"
	"strings"

	"VidTube.com/cmd/dal/db"
	"VidTube.com/cmd/model"
)

type PlaylistService struct {
	store    *db.Store
	composer *Composer
}

func NewPlaylistService(store *db.Store, composer *Composer) *PlaylistService {
	return &PlaylistService{store: store, composer: composer}
}

func (s *PlaylistService) Create(ctx context.Context, principal model.ID, name, description string) (*model.Playlist, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	if name == "" || description == "" {
		return nil, paramErr("name and description are required")
	}
	playlist := &model.Playlist{
		ID:          model.NewID(),
		Name:        name,
		Description: description,
		OwnerID:     principal,
	}
	if err := s.store.CreatePlaylist(ctx, playlist); err != nil {
		return nil, err
	}
	return playlist, nil
}

func (s *PlaylistService) ListByUser(ctx context.Context, rawUserID string, viewer model.ID) ([]*model.PlaylistView, error) {
	return s.composer.UserPlaylists(ctx, rawUserID, viewer)
}

func (s *PlaylistService) Detail(ctx context.Context, rawPlaylistID string, viewer model.ID) (*model.PlaylistView, error) {
	return s.composer.PlaylistDetail(ctx, rawPlaylistID, viewer)
}

func (s *PlaylistService) loadOwned(ctx context.Context, principal model.ID, rawPlaylistID string) (*model.Playlist, error) {
	playlistID, err := parseID(rawPlaylistID, "playlist")
	if err != nil {
		return nil, err
	}
	playlist, err := s.store.GetPlaylist(ctx, playlistID)
	if err != nil {
		return nil, storeErr(err, "playlist")
	}
	if err = authorizeOwner(principal, playlist.OwnerID); err != nil {
		return nil, err
	}
	return playlist, nil
}

func (s *PlaylistService) Update(ctx context.Context, principal model.ID, rawPlaylistID, name, description string) (*model.PlaylistView, error) {
	playlist, err := s.loadOwned(ctx, principal, rawPlaylistID)
	if err != nil {
		return nil, err
	}
	fields := map[string]interface{}{}
	if name = strings.TrimSpace(name); name != "" {
		fields["name"] = name
	}
	if description = strings.TrimSpace(description); description != "" {
		fields["description"] = description
	}
	if len(fields) == 0 {
		return nil, paramErr("name or description is required")
	}
	if err = s.store.UpdatePlaylist(ctx, playlist.ID, fields); err != nil {
		return nil, mutationErr(err, "update playlist")
	}
	return s.composer.PlaylistDetail(ctx, playlist.ID.String(), principal)
}

func (s *PlaylistService) Delete(ctx context.Context, principal model.ID, rawPlaylistID string) error {
	playlist, err := s.loadOwned(ctx, principal, rawPlaylistID)
	if err != nil {
		return err
	}
	return mutationErr(s.store.DeletePlaylist(ctx, playlist.ID), "delete playlist")
}

// AddVideo 顺序: 列表存在 -> 所有权 -> 视频存在 -> 是否已在列表中
func (s *PlaylistService) AddVideo(ctx context.Context, principal model.ID, rawVideoID, rawPlaylistID string) (*model.PlaylistView, error) {
	videoID, err := parseID(rawVideoID, "video")
	if err != nil {
		return nil, err
	}
	playlist, err := s.loadOwned(ctx, principal, rawPlaylistID)
	if err != nil {
		return nil, err
	}
	exists, err := s.store.VisibleVideoExists(ctx, videoID, principal)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, storeErr(errNotFound, "video")
	}
	member, err := s.store.IsPlaylistMember(ctx, playlist.ID, videoID)
	if err != nil {
		return nil, err
	}
	if member {
		return nil, paramErr("video already in playlist")
	}
	if err = s.store.AddPlaylistVideo(ctx, playlist.ID, videoID); err != nil {
		if db.IsDuplicate(err) {
			return nil, paramErr("video already in playlist")
		}
		return nil, err
	}
	return s.composer.PlaylistDetail(ctx, playlist.ID.String(), principal)
}

func (s *PlaylistService) RemoveVideo(ctx context.Context, principal model.ID, rawVideoID, rawPlaylistID string) (*model.PlaylistView, error) {
	videoID, err := parseID(rawVideoID, "video")
	if err != nil {
		return nil, err
	}
	playlist, err := s.loadOwned(ctx, principal, rawPlaylistID)
	if err != nil {
		return nil, err
	}
	removed, err := s.store.RemovePlaylistVideo(ctx, playlist.ID, videoID)
	if err != nil {
		return nil, err
	}
	if removed == 0 {
		return nil, paramErr("video not in playlist")
	}
	return s.composer.PlaylistDetail(ctx, playlist.ID.String(), principal)
}
