package handlers

import (
	"context"

	"VidTube.com/cmd/api/pack"
	"VidTube.com/cmd/api/router/authfunc"
	"VidTube.com/cmd/service"
	"VidTube.com/pkg/errno"

	"github.com/cloudwego/hertz/pkg/app"
)

type Handler struct {
	videos  *service.VideoService
	tempDir string
}

func New(videos *service.VideoService, tempDir string) *Handler {
	return &Handler{videos: videos, tempDir: tempDir}
}

type ListVideoParam struct {
	Page     int    `query:"page" vd:"$>=0"`
	Limit    int    `query:"limit" vd:"$>=0"`
	Query    string `query:"query"`
	SortBy   string `query:"sortBy"`
	SortType string `query:"sortType"`
	UserID   string `query:"userId"`
}

type VideoParam struct {
	Title       string `form:"title" json:"title" vd:"len($)>0"`
	Description string `form:"description" json:"description" vd:"len($)>0"`
}

type UpdateVideoParam struct {
	Title       string `form:"title" json:"title"`
	Description string `form:"description" json:"description"`
}

func (h *Handler) List(ctx context.Context, c *app.RequestContext) {
	var req ListVideoParam
	if err := c.BindAndValidate(&req); err != nil {
		pack.SendError(ctx, c, errno.ParamErr.WithMessage(err.Error()))
		return
	}
	page, err := h.videos.List(ctx, service.VideoListQuery{
		Page:     req.Page,
		PageSize: req.Limit,
		Query:    req.Query,
		SortBy:   req.SortBy,
		SortType: req.SortType,
		UserID:   req.UserID,
	})
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	pack.SendResponse(c, page, "Videos fetched successfully")
}

func (h *Handler) Publish(ctx context.Context, c *app.RequestContext) {
	var req VideoParam
	if err := c.BindAndValidate(&req); err != nil {
		pack.SendError(ctx, c, errno.ParamErr.WithMessage(err.Error()))
		return
	}
	videoPath, err := pack.SaveUpload(c, "videoFile", h.tempDir)
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	thumbnailPath, err := pack.SaveUpload(c, "thumbnail", h.tempDir)
	defer pack.RemoveUploads(videoPath, thumbnailPath)
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}

	video, err := h.videos.Publish(ctx, authfunc.Principal(c), service.PublishVideoParam{
		Title:         req.Title,
		Description:   req.Description,
		VideoPath:     videoPath,
		ThumbnailPath: thumbnailPath,
	})
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	pack.SendCreated(c, video, "Video published successfully")
}

func (h *Handler) Get(ctx context.Context, c *app.RequestContext) {
	video, err := h.videos.Get(ctx, c.Param("videoId"), authfunc.Principal(c))
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	pack.SendResponse(c, video, "Video fetched successfully")
}

func (h *Handler) Update(ctx context.Context, c *app.RequestContext) {
	var req UpdateVideoParam
	if err := c.BindAndValidate(&req); err != nil {
		pack.SendError(ctx, c, errno.ParamErr.WithMessage(err.Error()))
		return
	}
	thumbnailPath, err := pack.SaveUpload(c, "thumbnail", h.tempDir)
	defer pack.RemoveUploads(thumbnailPath)
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	video, err := h.videos.Update(ctx, authfunc.Principal(c), c.Param("videoId"), service.UpdateVideoParam{
		Title:         req.Title,
		Description:   req.Description,
		ThumbnailPath: thumbnailPath,
	})
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	pack.SendResponse(c, video, "Video updated successfully")
}

func (h *Handler) Delete(ctx context.Context, c *app.RequestContext) {
	if err := h.videos.Delete(ctx, authfunc.Principal(c), c.Param("videoId")); err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	pack.SendResponse(c, struct{}{}, "Video deleted successfully")
}

func (h *Handler) TogglePublish(ctx context.Context, c *app.RequestContext) {
	video, err := h.videos.TogglePublish(ctx, authfunc.Principal(c), c.Param("videoId"))
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	pack.SendResponse(c, video, "Publish status toggled successfully")
}
