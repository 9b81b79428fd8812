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
	tweets *service.TweetService
}

func New(tweets *service.TweetService) *Handler {
	return &Handler{tweets: tweets}
}

type TweetParam struct {
	Content string `form:"content" json:"content" vd:"len($)>0"`
}

func (h *Handler) Create(ctx context.Context, c *app.RequestContext) {
	var req TweetParam
	if err := c.BindAndValidate(&req); err != nil {
		pack.SendError(ctx, c, errno.ParamErr.WithMessage(err.Error()))
		return
	}
	tweet, err := h.tweets.Create(ctx, authfunc.Principal(c), req.Content)
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	pack.SendCreated(c, tweet, "Tweet created successfully")
}

func (h *Handler) ListByUser(ctx context.Context, c *app.RequestContext) {
	tweets, err := h.tweets.ListByUser(ctx, c.Param("userId"))
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	pack.SendResponse(c, tweets, "Tweets fetched successfully")
}

func (h *Handler) Update(ctx context.Context, c *app.RequestContext) {
	var req TweetParam
	if err := c.BindAndValidate(&req); err != nil {
		pack.SendError(ctx, c, errno.ParamErr.WithMessage(err.Error()))
		return
	}
	tweet, err := h.tweets.Update(ctx, authfunc.Principal(c), c.Param("tweetId"), req.Content)
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	pack.SendResponse(c, tweet, "Tweet updated successfully")
}

func (h *Handler) Delete(ctx context.Context, c *app.RequestContext) {
	if err := h.tweets.Delete(ctx, authfunc.Principal(c), c.Param("tweetId")); err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	pack.SendResponse(c, struct{}{}, "Tweet deleted successfully")
}
