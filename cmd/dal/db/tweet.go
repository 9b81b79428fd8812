package db

import (
	"context"

	"VidTube.com/cmd/model"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

func (s *Store) CreateTweet(ctx context.Context, tweet *model.Tweet) error {
	if err := s.db.WithContext(ctx).Create(tweet).Error; err != nil {
		return errors.Wrap(err, "create tweet")
	}
	return nil
}

func (s *Store) GetTweet(ctx context.Context, id model.ID) (*model.Tweet, error) {
	var tweet model.Tweet
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&tweet).Error; err != nil {
		return nil, errors.Wrapf(err, "get tweet %s", id)
	}
	return &tweet, nil
}

func (s *Store) TweetExists(ctx context.Context, id model.ID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Tweet{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, errors.WithMessage(err, "check tweet exists")
	}
	return count > 0, nil
}

func (s *Store) UpdateTweetContent(ctx context.Context, id model.ID, content string) error {
	tx := s.db.WithContext(ctx).Model(&model.Tweet{}).Where("id = ?", id).Update("content", content)
	return mustAffect(tx, "update tweet")
}

func (s *Store) DeleteTweet(ctx context.Context, id model.ID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("target_kind = ? AND target_id = ?", model.LikeTweet, id).
			Delete(&model.Like{}).Error; err != nil {
			return errors.WithMessage(err, "delete tweet likes")
		}
		return mustAffect(tx.Where("id = ?", id).Delete(&model.Tweet{}), "delete tweet")
	})
}

func (s *Store) ListTweetsByOwner(ctx context.Context, ownerID model.ID) ([]*model.Tweet, error) {
	tweets := make([]*model.Tweet, 0)
	err := s.db.WithContext(ctx).Where("owner_id = ?", ownerID).
		Order("created_at DESC").Order("id").
		Find(&tweets).Error
	if err != nil {
		return nil, errors.WithMessage(err, "list tweets")
	}
	return tweets, nil
}
