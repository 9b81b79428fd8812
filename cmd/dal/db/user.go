package db

import (
	"context"

	"VidTube.com/cmd/model"
	"github.com/pkg/errors"
)

func (s *Store) CreateUser(ctx context.Context, user *model.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return errors.Wrapf(err, "create user %s", user.Username)
	}
	return nil
}

func (s *Store) GetUserByID(ctx context.Context, id model.ID) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, errors.Wrapf(err, "get user %s", id)
	}
	return &user, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, errors.Wrapf(err, "get user %s", username)
	}
	return &user, nil
}

// FindUserForLogin 用户名或邮箱任意一个匹配即可
func (s *Store) FindUserForLogin(ctx context.Context, username, email string) (*model.User, error) {
	var user model.User
	query := s.db.WithContext(ctx).Model(&model.User{})
	switch {
	case username != "" && email != "":
		query = query.Where("username = ? OR email = ?", username, email)
	case username != "":
		query = query.Where("username = ?", username)
	default:
		query = query.Where("email = ?", email)
	}
	if err := query.First(&user).Error; err != nil {
		return nil, errors.WithMessage(err, "find user for login")
	}
	return &user, nil
}

func (s *Store) UserExists(ctx context.Context, username, email string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error
	if err != nil {
		return false, errors.WithMessage(err, "check user exists")
	}
	return count > 0, nil
}

func (s *Store) UserIDExists(ctx context.Context, id model.ID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, errors.WithMessage(err, "check user exists")
	}
	return count > 0, nil
}

func (s *Store) UpdateUser(ctx context.Context, id model.ID, fields map[string]interface{}) error {
	tx := s.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(fields)
	return mustAffect(tx, "update user")
}

// SetRefreshToken 可以写入空串用于登出
func (s *Store) SetRefreshToken(ctx context.Context, id model.ID, token string) error {
	tx := s.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("refresh_token", token)
	return mustAffect(tx, "set refresh token")
}

// GetOwners 批量查询用户投影 只选取白名单字段
func (s *Store) GetOwners(ctx context.Context, ids []model.ID) (map[model.ID]*model.OwnerView, error) {
	owners := make(map[model.ID]*model.OwnerView, len(ids))
	ids = dedupe(ids)
	if len(ids) == 0 {
		return owners, nil
	}
	var users []*model.User
	err := s.db.WithContext(ctx).Model(&model.User{}).
		Select(model.OwnerColumns).
		Where("id IN ?", ids).
		Find(&users).Error
	if err != nil {
		return nil, errors.WithMessage(err, "get owners")
	}
	for _, u := range users {
		owners[u.ID] = u.Owner()
	}
	return owners, nil
}

type channelProfileRow struct {
	ID                model.ID
	Username          string
	FullName          string
	Email             string
	Avatar            string
	CoverImage        string
	CreatedAt         scanTime
	SubscriberCount   int64
	SubscribedToCount int64
	IsSubscribed      int64
}

const channelProfileSQL = `SELECT u.id, u.username, u.full_name, u.email, u.avatar, u.cover_image, u.created_at,
	(SELECT COUNT(*) FROM subscriptions s WHERE s.channel_id = u.id) AS subscriber_count,
	(SELECT COUNT(*) FROM subscriptions s WHERE s.subscriber_id = u.id) AS subscribed_to_count,
	(CASE WHEN EXISTS (SELECT 1 FROM subscriptions s WHERE s.channel_id = u.id AND s.subscriber_id = ?) THEN 1 ELSE 0 END) AS is_subscribed
FROM users u WHERE u.username = ? LIMIT 1`

// ChannelProfile 单条语句计算订阅数、关注数以及当前观看者是否已订阅
func (s *Store) ChannelProfile(ctx context.Context, username string, viewer model.ID) (*model.ChannelProfile, error) {
	var row channelProfileRow
	tx := s.db.WithContext(ctx).Raw(channelProfileSQL, viewer, username).Scan(&row)
	if tx.Error != nil {
		return nil, errors.Wrapf(tx.Error, "channel profile %s", username)
	}
	if tx.RowsAffected == 0 || row.ID.IsZero() {
		return nil, nil
	}
	return &model.ChannelProfile{
		ID:                   row.ID,
		Username:             row.Username,
		FullName:             row.FullName,
		Email:                row.Email,
		Avatar:               row.Avatar,
		CoverImage:           row.CoverImage,
		SubscriberCount:      row.SubscriberCount,
		SubscribedToCount:    row.SubscribedToCount,
		IsSubscribedByViewer: row.IsSubscribed != 0,
		CreatedAt:            row.CreatedAt.Time,
	}, nil
}

func dedupe(ids []model.ID) []model.ID {
	seen := make(map[model.ID]struct{}, len(ids))
	out := make([]model.ID, 0, len(ids))
	for _, id := range ids {
		if id.IsZero() {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
