package db

import (
	"context"

	"VidTube.com/cmd/model"
	"github.com/pkg/errors"
)

// GetSubscription 不存在时返回 (nil, nil)
func (s *Store) GetSubscription(ctx context.Context, subscriber, channel model.ID) (*model.Subscription, error) {
	var subs []*model.Subscription
	err := s.db.WithContext(ctx).
		Where("subscriber_id = ? AND channel_id = ?", subscriber, channel).
		Limit(1).Find(&subs).Error
	if err != nil {
		return nil, errors.Wrapf(err, "get subscription %s -> %s", subscriber, channel)
	}
	if len(subs) == 0 {
		return nil, nil
	}
	return subs[0], nil
}

func (s *Store) CreateSubscription(ctx context.Context, sub *model.Subscription) error {
	if err := s.db.WithContext(ctx).Create(sub).Error; err != nil {
		return errors.Wrapf(err, "create subscription %s -> %s", sub.SubscriberID, sub.ChannelID)
	}
	return nil
}

func (s *Store) DeleteSubscription(ctx context.Context, id model.ID) (int64, error) {
	tx := s.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Subscription{})
	if tx.Error != nil {
		return 0, errors.Wrapf(tx.Error, "delete subscription %s", id)
	}
	return tx.RowsAffected, nil
}

func (s *Store) ListSubscribers(ctx context.Context, channel model.ID) ([]*model.Subscription, error) {
	subs := make([]*model.Subscription, 0)
	err := s.db.WithContext(ctx).Where("channel_id = ?", channel).
		Order("created_at DESC").Order("id").
		Find(&subs).Error
	if err != nil {
		return nil, errors.WithMessage(err, "list subscribers")
	}
	return subs, nil
}

func (s *Store) ListSubscriptions(ctx context.Context, subscriber model.ID) ([]*model.Subscription, error) {
	subs := make([]*model.Subscription, 0)
	err := s.db.WithContext(ctx).Where("subscriber_id = ?", subscriber).
		Order("created_at DESC").Order("id").
		Find(&subs).Error
	if err != nil {
		return nil, errors.WithMessage(err, "list subscriptions")
	}
	return subs, nil
}
