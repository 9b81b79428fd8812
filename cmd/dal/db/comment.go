package db

import (
	"context"

	"VidTube.com/cmd/model"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

func (s *Store) CreateComment(ctx context.Context, comment *model.Comment) error {
	if err := s.db.WithContext(ctx).Create(comment).Error; err != nil {
		return errors.Wrapf(err, "create comment on video %s", comment.VideoID)
	}
	return nil
}

func (s *Store) GetComment(ctx context.Context, id model.ID) (*model.Comment, error) {
	var comment model.Comment
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&comment).Error; err != nil {
		return nil, errors.Wrapf(err, "get comment %s", id)
	}
	return &comment, nil
}

func (s *Store) CommentExists(ctx context.Context, id model.ID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Comment{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, errors.WithMessage(err, "check comment exists")
	}
	return count > 0, nil
}

func (s *Store) UpdateCommentContent(ctx context.Context, id model.ID, content string) error {
	tx := s.db.WithContext(ctx).Model(&model.Comment{}).Where("id = ?", id).Update("content", content)
	return mustAffect(tx, "update comment")
}

// DeleteComment 同时删除评论上的点赞
func (s *Store) DeleteComment(ctx context.Context, id model.ID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("target_kind = ? AND target_id = ?", model.LikeComment, id).
			Delete(&model.Like{}).Error; err != nil {
			return errors.WithMessage(err, "delete comment likes")
		}
		return mustAffect(tx.Where("id = ?", id).Delete(&model.Comment{}), "delete comment")
	})
}

func (s *Store) CountCommentsByVideo(ctx context.Context, videoID model.ID) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Comment{}).Where("video_id = ?", videoID).Count(&count).Error
	if err != nil {
		return 0, errors.WithMessage(err, "count comments")
	}
	return count, nil
}

// ListCommentsByVideo 按创建时间升序分页
func (s *Store) ListCommentsByVideo(ctx context.Context, videoID model.ID, offset, limit int) ([]*model.Comment, error) {
	comments := make([]*model.Comment, 0, limit)
	err := s.db.WithContext(ctx).Model(&model.Comment{}).
		Where("video_id = ?", videoID).
		Order("created_at ASC").Order("id ASC").
		Offset(offset).Limit(limit).
		Find(&comments).Error
	if err != nil {
		return nil, errors.WithMessage(err, "list comments")
	}
	return comments, nil
}
