package service

import (
	"context"
	"strings"

	"VidTube.com/cmd/dal/db"
	"VidTube.com/cmd/model"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/mq"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

type VideoService struct {
	store    *db.Store
	media    MediaStore
	composer *Composer
	index    VideoIndex
	events   EventPublisher
	probe    DurationProber
}

func NewVideoService(store *db.Store, media MediaStore, composer *Composer, index VideoIndex, events EventPublisher, probe DurationProber) *VideoService {
	return &VideoService{store: store, media: media, composer: composer, index: index, events: events, probe: probe}
}

type PublishVideoParam struct {
	Title         string
	Description   string
	VideoPath     string
	ThumbnailPath string
}

// Publish 时长在上传前读取 因为上传后本地文件会被删除
func (s *VideoService) Publish(ctx context.Context, principal model.ID, p PublishVideoParam) (*model.Video, error) {
	title := strings.TrimSpace(p.Title)
	description := strings.TrimSpace(p.Description)
	if title == "" || description == "" {
		return nil, paramErr("title and description are required")
	}
	if p.VideoPath == "" || p.ThumbnailPath == "" {
		return nil, paramErr("video file and thumbnail are required")
	}

	var duration float64
	if s.probe != nil {
		d, err := s.probe(p.VideoPath)
		if err != nil {
			hlog.CtxWarnf(ctx, "probe duration of %s failed: %v", p.VideoPath, err)
		} else {
			duration = d
		}
	}

	videoFile, ok := s.media.Upload(ctx, p.VideoPath)
	if !ok {
		return nil, paramErr("error while uploading video file")
	}
	thumbnail, ok := s.media.Upload(ctx, p.ThumbnailPath)
	if !ok {
		compensate(ctx, s.media, videoFile)
		return nil, paramErr("error while uploading thumbnail")
	}

	video := &model.Video{
		ID:          model.NewID(),
		OwnerID:     principal,
		Title:       title,
		Description: description,
		VideoFile:   videoFile.URL,
		VideoFileID: videoFile.ID,
		Thumbnail:   thumbnail.URL,
		ThumbnailID: thumbnail.ID,
		Duration:    duration,
		IsPublished: true,
	}
	if err := s.store.CreateVideo(ctx, video); err != nil {
		compensate(ctx, s.media, videoFile, thumbnail)
		hlog.CtxErrorf(ctx, "create video failed: %v", err)
		return nil, errno.ServiceErr.WithMessage("something went wrong while publishing the video")
	}
	s.reindex(ctx, video)
	publish(ctx, s.events, mq.NewInteractionEvent(mq.EventVideoUpload, principal.String(), string(model.LikeVideo), video.ID.String()))
	return video, nil
}

func (s *VideoService) reindex(ctx context.Context, video *model.Video) {
	if s.index == nil {
		return
	}
	if err := s.index.Index(ctx, video); err != nil {
		hlog.CtxWarnf(ctx, "index video %s failed: %v", video.ID, err)
	}
}

func (s *VideoService) List(ctx context.Context, q VideoListQuery) (*model.VideoPage, error) {
	return s.composer.ListVideos(ctx, q)
}

// Get 已登录用户观看时记录观看历史并增加播放量
func (s *VideoService) Get(ctx context.Context, rawVideoID string, viewer model.ID) (*model.VideoDetail, error) {
	videoID, err := parseID(rawVideoID, "video")
	if err != nil {
		return nil, err
	}
	video, err := s.store.GetVideo(ctx, videoID)
	if err != nil {
		return nil, storeErr(err, "video")
	}
	if !video.IsPublished && !viewer.Equal(video.OwnerID) {
		return nil, errno.NotFoundErr.WithMessage("video not found")
	}
	if err = s.store.IncrementViews(ctx, videoID); err != nil {
		hlog.CtxWarnf(ctx, "increment views of %s failed: %v", videoID, err)
	} else {
		video.Views++
	}
	if !viewer.IsZero() {
		if err = s.store.AddWatchHistory(ctx, viewer, videoID); err != nil {
			hlog.CtxWarnf(ctx, "add watch history failed: %v", err)
		}
	}
	return s.composer.VideoDetail(ctx, video, viewer)
}

// loadOwned 加载视频并校验所有权
func (s *VideoService) loadOwned(ctx context.Context, principal model.ID, rawVideoID string) (*model.Video, error) {
	videoID, err := parseID(rawVideoID, "video")
	if err != nil {
		return nil, err
	}
	video, err := s.store.GetVideo(ctx, videoID)
	if err != nil {
		return nil, storeErr(err, "video")
	}
	if err = authorizeOwner(principal, video.OwnerID); err != nil {
		return nil, err
	}
	return video, nil
}

type UpdateVideoParam struct {
	Title         string
	Description   string
	ThumbnailPath string
}

func (s *VideoService) Update(ctx context.Context, principal model.ID, rawVideoID string, p UpdateVideoParam) (*model.Video, error) {
	video, err := s.loadOwned(ctx, principal, rawVideoID)
	if err != nil {
		return nil, err
	}
	fields := map[string]interface{}{}
	if title := strings.TrimSpace(p.Title); title != "" {
		fields["title"] = title
	}
	if description := strings.TrimSpace(p.Description); description != "" {
		fields["description"] = description
	}
	var thumbnail *model.Asset
	if p.ThumbnailPath != "" {
		var ok bool
		if thumbnail, ok = s.media.Upload(ctx, p.ThumbnailPath); !ok {
			return nil, paramErr("error while uploading thumbnail")
		}
		fields["thumbnail"] = thumbnail.URL
		fields["thumbnail_id"] = thumbnail.ID
	}
	if len(fields) == 0 {
		return nil, paramErr("nothing to update")
	}
	if err = s.store.UpdateVideo(ctx, video.ID, fields); err != nil {
		compensate(ctx, s.media, thumbnail)
		return nil, mutationErr(err, "update video")
	}
	if thumbnail != nil && video.ThumbnailID != "" && !s.media.Delete(ctx, video.ThumbnailID) {
		hlog.CtxWarnf(ctx, "delete old thumbnail %s failed", video.ThumbnailID)
	}
	updated, err := s.store.GetVideo(ctx, video.ID)
	if err != nil {
		return nil, storeErr(err, "video")
	}
	s.reindex(ctx, updated)
	return updated, nil
}

// Delete 删除视频及其依附数据 对象存储中的文件尽力删除
func (s *VideoService) Delete(ctx context.Context, principal model.ID, rawVideoID string) error {
	video, err := s.loadOwned(ctx, principal, rawVideoID)
	if err != nil {
		return err
	}
	if err = s.store.DeleteVideo(ctx, video.ID); err != nil {
		return mutationErr(err, "delete video")
	}
	for _, assetID := range []string{video.VideoFileID, video.ThumbnailID} {
		if assetID != "" && !s.media.Delete(ctx, assetID) {
			hlog.CtxWarnf(ctx, "delete asset %s of video %s failed", assetID, video.ID)
		}
	}
	if s.index != nil {
		if err = s.index.Remove(ctx, video.ID); err != nil {
			hlog.CtxWarnf(ctx, "remove video %s from index failed: %v", video.ID, err)
		}
	}
	publish(ctx, s.events, mq.NewInteractionEvent(mq.EventVideoDeleted, principal.String(), string(model.LikeVideo), video.ID.String()))
	return nil
}

func (s *VideoService) TogglePublish(ctx context.Context, principal model.ID, rawVideoID string) (*model.Video, error) {
	video, err := s.loadOwned(ctx, principal, rawVideoID)
	if err != nil {
		return nil, err
	}
	video.IsPublished = !video.IsPublished
	if err = s.store.UpdateVideo(ctx, video.ID, map[string]interface{}{"is_published": video.IsPublished}); err != nil {
		return nil, mutationErr(err, "toggle publish status")
	}
	s.reindex(ctx, video)
	return video, nil
}
