package handlers

import (
	"context"

	"VidTube.com/cmd/api/pack"
	"VidTube.com/cmd/api/router/authfunc"
	"VidTube.com/cmd/model"
	"VidTube.com/cmd/service"
	"VidTube.com/pkg/errno"

	"github.com/cloudwego/hertz/pkg/app"
)

type Handler struct {
	comments     *service.CommentService
	interactions *service.InteractionService
}

func New(comments *service.CommentService, interactions *service.InteractionService) *Handler {
	return &Handler{comments: comments, interactions: interactions}
}

type ListCommentParam struct {
	Page  int `query:"page" vd:"$>=0"`
	Limit int `query:"limit" vd:"$>=0"`
}

type CommentParam struct {
	Content string `form:"content" json:"content" vd:"len($)>0"`
}

func (h *Handler) ListComments(ctx context.Context, c *app.RequestContext) {
	var req ListCommentParam
	if err := c.BindAndValidate(&req); err != nil {
		pack.SendError(ctx, c, errno.ParamErr.WithMessage(err.Error()))
		return
	}
	page, err := h.comments.List(ctx, c.Param("videoId"), req.Page, req.Limit)
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	pack.SendResponse(c, page, "Comments fetched successfully")
}

func (h *Handler) AddComment(ctx context.Context, c *app.RequestContext) {
	var req CommentParam
	if err := c.BindAndValidate(&req); err != nil {
		pack.SendError(ctx, c, errno.ParamErr.WithMessage(err.Error()))
		return
	}
	comment, err := h.comments.Add(ctx, authfunc.Principal(c), c.Param("videoId"), req.Content)
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	pack.SendCreated(c, comment, "Comment added successfully")
}

func (h *Handler) UpdateComment(ctx context.Context, c *app.RequestContext) {
	var req CommentParam
	if err := c.BindAndValidate(&req); err != nil {
		pack.SendError(ctx, c, errno.ParamErr.WithMessage(err.Error()))
		return
	}
	comment, err := h.comments.Update(ctx, authfunc.Principal(c), c.Param("commentId"), req.Content)
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	pack.SendResponse(c, comment, "Comment updated successfully")
}

func (h *Handler) DeleteComment(ctx context.Context, c *app.RequestContext) {
	if err := h.comments.Delete(ctx, authfunc.Principal(c), c.Param("commentId")); err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	pack.SendResponse(c, struct{}{}, "Comment deleted successfully")
}

// LikeAction 按路由绑定点赞对象类型
func (h *Handler) LikeAction(kind model.LikeKind, param string) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		res, err := h.interactions.ToggleLike(ctx, authfunc.Principal(c), kind, c.Param(param))
		if err != nil {
			pack.SendError(ctx, c, err)
			return
		}
		if res.Created {
			pack.SendCreated(c, res, "Liked successfully")
			return
		}
		pack.SendResponse(c, res, "Like removed successfully")
	}
}

func (h *Handler) LikedVideos(ctx context.Context, c *app.RequestContext) {
	videos, err := h.interactions.LikedVideos(ctx, authfunc.Principal(c))
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	pack.SendResponse(c, videos, "Liked videos fetched successfully")
}
