package db

import (
	"context"

	"VidTube.com/cmd/model"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

func (s *Store) CreatePlaylist(ctx context.Context, playlist *model.Playlist) error {
	if err := s.db.WithContext(ctx).Create(playlist).Error; err != nil {
		return errors.Wrapf(err, "create playlist %s", playlist.Name)
	}
	return nil
}

func (s *Store) GetPlaylist(ctx context.Context, id model.ID) (*model.Playlist, error) {
	var playlist model.Playlist
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&playlist).Error; err != nil {
		return nil, errors.Wrapf(err, "get playlist %s", id)
	}
	return &playlist, nil
}

func (s *Store) UpdatePlaylist(ctx context.Context, id model.ID, fields map[string]interface{}) error {
	tx := s.db.WithContext(ctx).Model(&model.Playlist{}).Where("id = ?", id).Updates(fields)
	return mustAffect(tx, "update playlist")
}

func (s *Store) DeletePlaylist(ctx context.Context, id model.ID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("playlist_id = ?", id).Delete(&model.PlaylistVideo{}).Error; err != nil {
			return errors.WithMessage(err, "delete playlist entries")
		}
		return mustAffect(tx.Where("id = ?", id).Delete(&model.Playlist{}), "delete playlist")
	})
}

func (s *Store) ListPlaylistsByOwner(ctx context.Context, ownerID model.ID) ([]*model.Playlist, error) {
	playlists := make([]*model.Playlist, 0)
	err := s.db.WithContext(ctx).Where("owner_id = ?", ownerID).
		Order("created_at DESC").Order("id").
		Find(&playlists).Error
	if err != nil {
		return nil, errors.WithMessage(err, "list playlists")
	}
	return playlists, nil
}

func (s *Store) IsPlaylistMember(ctx context.Context, playlistID, videoID model.ID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.PlaylistVideo{}).
		Where("playlist_id = ? AND video_id = ?", playlistID, videoID).
		Count(&count).Error
	if err != nil {
		return false, errors.WithMessage(err, "check playlist member")
	}
	return count > 0, nil
}

// AddPlaylistVideo 重复添加时返回 gorm.ErrDuplicatedKey
func (s *Store) AddPlaylistVideo(ctx context.Context, playlistID, videoID model.ID) error {
	entry := &model.PlaylistVideo{PlaylistID: playlistID, VideoID: videoID}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(entry).Error; err != nil {
			return err
		}
		return tx.Model(&model.Playlist{}).Where("id = ?", playlistID).
			UpdateColumn("updated_at", entry.CreatedAt).Error
	})
	if err != nil {
		return errors.Wrapf(err, "add video %s to playlist %s", videoID, playlistID)
	}
	return nil
}

func (s *Store) RemovePlaylistVideo(ctx context.Context, playlistID, videoID model.ID) (int64, error) {
	tx := s.db.WithContext(ctx).
		Where("playlist_id = ? AND video_id = ?", playlistID, videoID).
		Delete(&model.PlaylistVideo{})
	if tx.Error != nil {
		return 0, errors.Wrapf(tx.Error, "remove video %s from playlist %s", videoID, playlistID)
	}
	return tx.RowsAffected, nil
}

// ListPlaylistVideoIDs 批量读取多个播放列表的视频 保持加入顺序
func (s *Store) ListPlaylistVideoIDs(ctx context.Context, playlistIDs []model.ID) (map[model.ID][]model.ID, error) {
	out := make(map[model.ID][]model.ID, len(playlistIDs))
	playlistIDs = dedupe(playlistIDs)
	if len(playlistIDs) == 0 {
		return out, nil
	}
	var entries []*model.PlaylistVideo
	err := s.db.WithContext(ctx).Where("playlist_id IN ?", playlistIDs).
		Order("seq ASC").Find(&entries).Error
	if err != nil {
		return nil, errors.WithMessage(err, "list playlist videos")
	}
	for _, e := range entries {
		out[e.PlaylistID] = append(out[e.PlaylistID], e.VideoID)
	}
	return out, nil
}
