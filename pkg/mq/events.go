package mq

import (
	"time"

	"github.com/google/uuid"
)

// 事件类型 同时作为路由键
const (
	EventSubscribed   = "subscription.created"
	EventUnsubscribed = "subscription.removed"
	EventLiked        = "like.created"
	EventUnliked      = "like.removed"
	EventCommented    = "comment.created"
	EventVideoUpload  = "video.published"
	EventVideoDeleted = "video.deleted"
)

// InteractionEvent 用户交互事件
type InteractionEvent struct {
	EventID    string `json:"event_id"`
	Type       string `json:"type"`
	ActorID    string `json:"actor_id"`
	TargetKind string `json:"target_kind"`
	TargetID   string `json:"target_id"`
	Timestamp  int64  `json:"timestamp"`
}

func NewInteractionEvent(eventType, actorID, targetKind, targetID string) *InteractionEvent {
	return &InteractionEvent{
		EventID:    uuid.NewString(),
		Type:       eventType,
		ActorID:    actorID,
		TargetKind: targetKind,
		TargetID:   targetID,
		Timestamp:  time.Now().Unix(),
	}
}
