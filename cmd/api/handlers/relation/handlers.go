package handlers

import (
	"context"

	"VidTube.com/cmd/api/pack"
	"VidTube.com/cmd/api/router/authfunc"
	"VidTube.com/cmd/service"

	"github.com/cloudwego/hertz/pkg/app"
)

type Handler struct {
	interactions *service.InteractionService
}

func New(interactions *service.InteractionService) *Handler {
	return &Handler{interactions: interactions}
}

func (h *Handler) ToggleSubscription(ctx context.Context, c *app.RequestContext) {
	res, err := h.interactions.ToggleSubscription(ctx, authfunc.Principal(c), c.Param("channelId"))
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	if res.Created {
		pack.SendCreated(c, res, "Subscribed successfully")
		return
	}
	pack.SendResponse(c, res, "Unsubscribed successfully")
}

func (h *Handler) Subscribers(ctx context.Context, c *app.RequestContext) {
	subscribers, err := h.interactions.Subscribers(ctx, c.Param("channelId"))
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	pack.SendResponse(c, subscribers, "Subscribers fetched successfully")
}

func (h *Handler) SubscribedChannels(ctx context.Context, c *app.RequestContext) {
	channels, err := h.interactions.SubscribedChannels(ctx, c.Param("subscriberId"))
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	pack.SendResponse(c, channels, "Subscribed channels fetched successfully")
}
