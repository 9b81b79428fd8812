package db

import (
	"context"
	"strings"

	"VidTube.com/cmd/model"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type VideoQuery struct {
	Page     int
	PageSize int
	Query    string
	SortBy   string
	SortType string
	OwnerID  model.ID
	// IDs 不为空时只在这些视频中查询(来自搜索引擎的结果)
	IDs []model.ID
}

var videoSortColumns = map[string]string{
	"createdAt": "created_at",
	"views":     "views",
	"duration":  "duration",
	"title":     "title",
}

func (s *Store) CreateVideo(ctx context.Context, video *model.Video) error {
	if err := s.db.WithContext(ctx).Create(video).Error; err != nil {
		return errors.Wrapf(err, "create video %s", video.Title)
	}
	return nil
}

func (s *Store) GetVideo(ctx context.Context, id model.ID) (*model.Video, error) {
	var video model.Video
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&video).Error; err != nil {
		return nil, errors.Wrapf(err, "get video %s", id)
	}
	return &video, nil
}

// visibleTo 已发布的视频对所有人可见 未发布的只对作者可见
func visibleTo(tx *gorm.DB, viewer model.ID) *gorm.DB {
	if viewer.IsZero() {
		return tx.Where("is_published = ?", true)
	}
	return tx.Where("(is_published = ? OR owner_id = ?)", true, viewer)
}

// VisibleVideoExists 视频不存在或对viewer不可见时返回false
func (s *Store) VisibleVideoExists(ctx context.Context, id, viewer model.ID) (bool, error) {
	var count int64
	err := visibleTo(s.db.WithContext(ctx).Model(&model.Video{}).Where("id = ?", id), viewer).Count(&count).Error
	if err != nil {
		return false, errors.WithMessage(err, "check video exists")
	}
	return count > 0, nil
}

// GetVisibleVideosByIDs 批量查询 不存在或对viewer不可见的ID不会出现在结果中
func (s *Store) GetVisibleVideosByIDs(ctx context.Context, ids []model.ID, viewer model.ID) (map[model.ID]*model.Video, error) {
	videos := make(map[model.ID]*model.Video, len(ids))
	ids = dedupe(ids)
	if len(ids) == 0 {
		return videos, nil
	}
	var list []*model.Video
	if err := visibleTo(s.db.WithContext(ctx).Where("id IN ?", ids), viewer).Find(&list).Error; err != nil {
		return nil, errors.WithMessage(err, "get videos")
	}
	for _, v := range list {
		videos[v.ID] = v
	}
	return videos, nil
}

func (s *Store) UpdateVideo(ctx context.Context, id model.ID, fields map[string]interface{}) error {
	tx := s.db.WithContext(ctx).Model(&model.Video{}).Where("id = ?", id).Updates(fields)
	return mustAffect(tx, "update video")
}

func (s *Store) IncrementViews(ctx context.Context, id model.ID) error {
	tx := s.db.WithContext(ctx).Model(&model.Video{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1))
	return mustAffect(tx, "increment views")
}

// DeleteVideo 删除视频以及依附于它的评论、点赞、播放列表项和观看记录
func (s *Store) DeleteVideo(ctx context.Context, id model.ID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var commentIDs []model.ID
		if err := tx.Model(&model.Comment{}).Where("video_id = ?", id).Pluck("id", &commentIDs).Error; err != nil {
			return errors.WithMessage(err, "list video comments")
		}
		if len(commentIDs) > 0 {
			if err := tx.Where("target_kind = ? AND target_id IN ?", model.LikeComment, commentIDs).
				Delete(&model.Like{}).Error; err != nil {
				return errors.WithMessage(err, "delete comment likes")
			}
		}
		steps := []struct {
			what  string
			query *gorm.DB
			value interface{}
		}{
			{"delete comments", tx.Where("video_id = ?", id), &model.Comment{}},
			{"delete video likes", tx.Where("target_kind = ? AND target_id = ?", model.LikeVideo, id), &model.Like{}},
			{"delete playlist entries", tx.Where("video_id = ?", id), &model.PlaylistVideo{}},
			{"delete watch history", tx.Where("video_id = ?", id), &model.WatchHistory{}},
		}
		for _, step := range steps {
			if err := step.query.Delete(step.value).Error; err != nil {
				return errors.WithMessage(err, step.what)
			}
		}
		return mustAffect(tx.Where("id = ?", id).Delete(&model.Video{}), "delete video")
	})
}

// ListVideos 只返回已发布的视频
func (s *Store) ListVideos(ctx context.Context, q VideoQuery) ([]*model.Video, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.Video{}).Where("is_published = ?", true)
	if !q.OwnerID.IsZero() {
		query = query.Where("owner_id = ?", q.OwnerID)
	}
	if q.IDs != nil {
		if len(q.IDs) == 0 {
			return []*model.Video{}, 0, nil
		}
		query = query.Where("id IN ?", q.IDs)
	} else if text := strings.TrimSpace(q.Query); text != "" {
		like := "%" + text + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.WithMessage(err, "count videos")
	}

	offset, ok := PageOffset(q.Page, q.PageSize)
	if !ok || int64(offset) >= total {
		return []*model.Video{}, total, nil
	}

	column, ok := videoSortColumns[q.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if strings.EqualFold(q.SortType, "asc") {
		direction = "ASC"
	}

	videos := make([]*model.Video, 0, q.PageSize)
	err := query.Order(column + " " + direction).Order("id").
		Offset(offset).Limit(q.PageSize).
		Find(&videos).Error
	if err != nil {
		return nil, 0, errors.WithMessage(err, "list videos")
	}
	return videos, total, nil
}
