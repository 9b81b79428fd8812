package db

import (
	"context"

	"VidTube.com/cmd/model"
	"github.com/pkg/errors"
)

// GetLike 不存在时返回 (nil, nil)
func (s *Store) GetLike(ctx context.Context, actor model.ID, target model.LikeTarget) (*model.Like, error) {
	var likes []*model.Like
	err := s.db.WithContext(ctx).
		Where("liked_by_id = ? AND target_kind = ? AND target_id = ?", actor, target.Kind(), target.ID()).
		Limit(1).Find(&likes).Error
	if err != nil {
		return nil, errors.Wrapf(err, "get like %s", target)
	}
	if len(likes) == 0 {
		return nil, nil
	}
	return likes[0], nil
}

func (s *Store) CreateLike(ctx context.Context, like *model.Like) error {
	if err := s.db.WithContext(ctx).Create(like).Error; err != nil {
		return errors.Wrapf(err, "create like %s", like.Target())
	}
	return nil
}

// DeleteLike 返回实际删除的行数 由调用方判断是否发生了并发删除
func (s *Store) DeleteLike(ctx context.Context, id model.ID) (int64, error) {
	tx := s.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Like{})
	if tx.Error != nil {
		return 0, errors.Wrapf(tx.Error, "delete like %s", id)
	}
	return tx.RowsAffected, nil
}

// ListLikesByUser 最近的点赞在前
func (s *Store) ListLikesByUser(ctx context.Context, actor model.ID, kind model.LikeKind) ([]*model.Like, error) {
	likes := make([]*model.Like, 0)
	err := s.db.WithContext(ctx).
		Where("liked_by_id = ? AND target_kind = ?", actor, kind).
		Order("created_at DESC").Order("id").
		Find(&likes).Error
	if err != nil {
		return nil, errors.WithMessage(err, "list likes")
	}
	return likes, nil
}

func (s *Store) CountLikes(ctx context.Context, target model.LikeTarget) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Like{}).
		Where("target_kind = ? AND target_id = ?", target.Kind(), target.ID()).
		Count(&count).Error
	if err != nil {
		return 0, errors.WithMessage(err, "count likes")
	}
	return count, nil
}

type likeCountRow struct {
	TargetID model.ID
	Total    int64
}

// CountLikesByTargets 一次分组查询得到多个目标的点赞数
func (s *Store) CountLikesByTargets(ctx context.Context, kind model.LikeKind, ids []model.ID) (map[model.ID]int64, error) {
	counts := make(map[model.ID]int64, len(ids))
	ids = dedupe(ids)
	if len(ids) == 0 {
		return counts, nil
	}
	var rows []likeCountRow
	err := s.db.WithContext(ctx).Model(&model.Like{}).
		Select("target_id, COUNT(*) AS total").
		Where("target_kind = ? AND target_id IN ?", kind, ids).
		Group("target_id").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.WithMessage(err, "count likes by targets")
	}
	for _, row := range rows {
		counts[row.TargetID] = row.Total
	}
	return counts, nil
}
