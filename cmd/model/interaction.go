package model

import (
	"time"

	"github.com/pkg/errors"
)

type LikeKind string

const (
	LikeVideo   LikeKind = "video"
	LikeComment LikeKind = "comment"
	LikeTweet   LikeKind = "tweet"
)

func (k LikeKind) Valid() bool {
	switch k {
	case LikeVideo, LikeComment, LikeTweet:
		return true
	}
	return false
}

// LikeTarget 点赞对象 只能通过NewLikeTarget构造 保证恰好指向一个实体
type LikeTarget struct {
	kind LikeKind
	id   ID
}

func NewLikeTarget(kind LikeKind, id ID) (LikeTarget, error) {
	if !kind.Valid() {
		return LikeTarget{}, errors.Errorf("unknown like target kind %q", kind)
	}
	if id.IsZero() {
		return LikeTarget{}, errors.WithMessage(ErrInvalidID, "like target")
	}
	return LikeTarget{kind: kind, id: id}, nil
}

func (t LikeTarget) Kind() LikeKind { return t.kind }
func (t LikeTarget) ID() ID         { return t.id }

func (t LikeTarget) String() string {
	return string(t.kind) + ":" + string(t.id)
}

type Like struct {
	ID         ID       `gorm:"type:varchar(36);primaryKey"`
	LikedByID  ID       `gorm:"type:varchar(36);not null;uniqueIndex:idx_like_edge,priority:1"`
	TargetKind LikeKind `gorm:"type:varchar(16);not null;uniqueIndex:idx_like_edge,priority:2;index:idx_like_target,priority:1"`
	TargetID   ID       `gorm:"type:varchar(36);not null;uniqueIndex:idx_like_edge,priority:3;index:idx_like_target,priority:2"`
	CreatedAt  time.Time
}

func (Like) TableName() string {
	return "likes"
}

func (l *Like) Target() LikeTarget {
	return LikeTarget{kind: l.TargetKind, id: l.TargetID}
}

// Subscription 订阅关系 subscriber订阅了channel
type Subscription struct {
	ID           ID `gorm:"type:varchar(36);primaryKey"`
	SubscriberID ID `gorm:"type:varchar(36);not null;uniqueIndex:idx_subscription_edge,priority:1"`
	ChannelID    ID `gorm:"type:varchar(36);not null;uniqueIndex:idx_subscription_edge,priority:2;index"`
	CreatedAt    time.Time
}

func (Subscription) TableName() string {
	return "subscriptions"
}

// ToggleResult 开关操作的结果 Created为true表示新建了关系
type ToggleResult struct {
	Created bool `json:"created"`
	Active  bool `json:"active"`
}
