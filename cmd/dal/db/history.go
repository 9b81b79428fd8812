package db

import (
	"context"

	"VidTube.com/cmd/model"
	"github.com/pkg/errors"
	"gorm.io/gorm/clause"
)

// AddWatchHistory 已存在的记录保持原位置不变
func (s *Store) AddWatchHistory(ctx context.Context, userID, videoID model.ID) error {
	entry := &model.WatchHistory{UserID: userID, VideoID: videoID}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(entry).Error
	if err != nil {
		return errors.Wrapf(err, "add watch history %s", videoID)
	}
	return nil
}

func (s *Store) ListWatchHistory(ctx context.Context, userID model.ID) ([]model.ID, error) {
	ids := make([]model.ID, 0)
	err := s.db.WithContext(ctx).Model(&model.WatchHistory{}).
		Where("user_id = ?", userID).
		Order("seq ASC").
		Pluck("video_id", &ids).Error
	if err != nil {
		return nil, errors.WithMessage(err, "list watch history")
	}
	return ids, nil
}
