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
	playlists *service.PlaylistService
}

func New(playlists *service.PlaylistService) *Handler {
	return &Handler{playlists: playlists}
}

type PlaylistParam struct {
	Name        string `form:"name" json:"name" vd:"len($)>0"`
	Description string `form:"description" json:"description" vd:"len($)>0"`
}

// UpdatePlaylistParam 部分更新 至少一个字段非空由service校验
type UpdatePlaylistParam struct {
	Name        string `form:"name" json:"name"`
	Description string `form:"description" json:"description"`
}

func (h *Handler) Create(ctx context.Context, c *app.RequestContext) {
	var req PlaylistParam
	if err := c.BindAndValidate(&req); err != nil {
		pack.SendError(ctx, c, errno.ParamErr.WithMessage(err.Error()))
		return
	}
	playlist, err := h.playlists.Create(ctx, authfunc.Principal(c), req.Name, req.Description)
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	pack.SendCreated(c, playlist, "Playlist created successfully")
}

func (h *Handler) ListByUser(ctx context.Context, c *app.RequestContext) {
	playlists, err := h.playlists.ListByUser(ctx, c.Param("userId"), authfunc.Principal(c))
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	pack.SendResponse(c, playlists, "Playlists fetched successfully")
}

func (h *Handler) Detail(ctx context.Context, c *app.RequestContext) {
	playlist, err := h.playlists.Detail(ctx, c.Param("playlistId"), authfunc.Principal(c))
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	pack.SendResponse(c, playlist, "Playlist fetched successfully")
}

func (h *Handler) Update(ctx context.Context, c *app.RequestContext) {
	var req UpdatePlaylistParam
	if err := c.BindAndValidate(&req); err != nil {
		pack.SendError(ctx, c, errno.ParamErr.WithMessage(err.Error()))
		return
	}
	playlist, err := h.playlists.Update(ctx, authfunc.Principal(c), c.Param("playlistId"), req.Name, req.Description)
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	pack.SendResponse(c, playlist, "Playlist updated successfully")
}

func (h *Handler) Delete(ctx context.Context, c *app.RequestContext) {
	if err := h.playlists.Delete(ctx, authfunc.Principal(c), c.Param("playlistId")); err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	pack.SendResponse(c, struct{}{}, "Playlist deleted successfully")
}

func (h *Handler) AddVideo(ctx context.Context, c *app.RequestContext) {
	playlist, err := h.playlists.AddVideo(ctx, authfunc.Principal(c), c.Param("videoId"), c.Param("playlistId"))
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	pack.SendResponse(c, playlist, "Video added to playlist successfully")
}

func (h *Handler) RemoveVideo(ctx context.Context, c *app.RequestContext) {
	playlist, err := h.playlists.RemoveVideo(ctx, authfunc.Principal(c), c.Param("videoId"), c.Param("playlistId"))
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	pack.SendResponse(c, playlist, "Video removed from playlist successfully")
}
