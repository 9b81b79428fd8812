package service

import (
	"context"

	"VidTube.com/cmd/dal/db"
	"VidTube.com/cmd/model"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/metrics"
	"VidTube.com/pkg/mq"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// 创建与删除之间发生并发冲突时的最大重试次数
const maxToggleAttempts = 3

// InteractionService 订阅与点赞的开关操作
type InteractionService struct {
	store    *db.Store
	composer *Composer
	locker   Locker
	events   EventPublisher
}

func NewInteractionService(store *db.Store, composer *Composer, locker Locker, events EventPublisher) *InteractionService {
	return &InteractionService{store: store, composer: composer, locker: locker, events: events}
}

type edge struct {
	kind   string
	key    string
	find   func(ctx context.Context) (model.ID, bool, error)
	create func(ctx context.Context) error
	remove func(ctx context.Context, id model.ID) (int64, error)
}

// toggle 存在则删除 不存在则创建
// 唯一索引保证同一对(actor, target)至多一条边 锁只用于减少冲突
func (s *InteractionService) toggle(ctx context.Context, e edge) (*model.ToggleResult, error) {
	if s.locker != nil {
		unlock, err := s.locker.Lock(ctx, e.key)
		if err != nil {
			hlog.CtxWarnf(ctx, "toggle lock %s unavailable, relying on unique index: %v", e.key, err)
		} else {
			defer unlock()
		}
	}

	for attempt := 0; attempt < maxToggleAttempts; attempt++ {
		id, found, err := e.find(ctx)
		if err != nil {
			return nil, err
		}
		if !found {
			err = e.create(ctx)
			if db.IsDuplicate(err) {
				continue
			}
			if err != nil {
				return nil, err
			}
			metrics.ToggleTotal.WithLabelValues(e.kind, "created").Inc()
			return &model.ToggleResult{Created: true, Active: true}, nil
		}
		n, err := e.remove(ctx, id)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			continue
		}
		metrics.ToggleTotal.WithLabelValues(e.kind, "removed").Inc()
		return &model.ToggleResult{Created: false, Active: false}, nil
	}
	return nil, errno.ServiceErr.WithMessage("toggle conflicted with concurrent requests")
}

func (s *InteractionService) ToggleSubscription(ctx context.Context, principal model.ID, rawChannelID string) (*model.ToggleResult, error) {
	channelID, err := parseID(rawChannelID, "channel")
	if err != nil {
		return nil, err
	}
	if channelID.Equal(principal) {
		return nil, paramErr("cannot subscribe to your own channel")
	}
	exists, err := s.store.UserIDExists(ctx, channelID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errno.NotFoundErr.WithMessage("channel not found")
	}

	res, err := s.toggle(ctx, edge{
		kind: "subscription",
		key:  "subscription:" + principal.String() + ":" + channelID.String(),
		find: func(ctx context.Context) (model.ID, bool, error) {
			sub, err := s.store.GetSubscription(ctx, principal, channelID)
			if err != nil || sub == nil {
				return "", false, err
			}
			return sub.ID, true, nil
		},
		create: func(ctx context.Context) error {
			return s.store.CreateSubscription(ctx, &model.Subscription{ID: model.NewID(), SubscriberID: principal, ChannelID: channelID})
		},
		remove: s.store.DeleteSubscription,
	})
	if err != nil {
		return nil, err
	}
	eventType := mq.EventUnsubscribed
	if res.Created {
		eventType = mq.EventSubscribed
	}
	publish(ctx, s.events, mq.NewInteractionEvent(eventType, principal.String(), "channel", channelID.String()))
	return res, nil
}

// targetExists 未发布的视频对非作者视为不存在
func (s *InteractionService) targetExists(ctx context.Context, principal model.ID, target model.LikeTarget) (bool, error) {
	switch target.Kind() {
	case model.LikeVideo:
		return s.store.VisibleVideoExists(ctx, target.ID(), principal)
	case model.LikeComment:
		return s.store.CommentExists(ctx, target.ID())
	case model.LikeTweet:
		return s.store.TweetExists(ctx, target.ID())
	}
	return false, nil
}

// ToggleLike kind决定rawID指向的实体类型
func (s *InteractionService) ToggleLike(ctx context.Context, principal model.ID, kind model.LikeKind, rawID string) (*model.ToggleResult, error) {
	id, err := parseID(rawID, string(kind))
	if err != nil {
		return nil, err
	}
	target, err := model.NewLikeTarget(kind, id)
	if err != nil {
		return nil, paramErr(err.Error())
	}
	exists, err := s.targetExists(ctx, principal, target)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errno.NotFoundErr.WithMessage(string(kind) + " not found")
	}

	res, err := s.toggle(ctx, edge{
		kind: "like_" + string(kind),
		key:  "like:" + principal.String() + ":" + target.String(),
		find: func(ctx context.Context) (model.ID, bool, error) {
			like, err := s.store.GetLike(ctx, principal, target)
			if err != nil || like == nil {
				return "", false, err
			}
			return like.ID, true, nil
		},
		create: func(ctx context.Context) error {
			return s.store.CreateLike(ctx, &model.Like{
				ID:         model.NewID(),
				LikedByID:  principal,
				TargetKind: target.Kind(),
				TargetID:   target.ID(),
			})
		},
		remove: s.store.DeleteLike,
	})
	if err != nil {
		return nil, err
	}
	eventType := mq.EventUnliked
	if res.Created {
		eventType = mq.EventLiked
	}
	publish(ctx, s.events, mq.NewInteractionEvent(eventType, principal.String(), string(kind), id.String()))
	return res, nil
}

func (s *InteractionService) LikedVideos(ctx context.Context, principal model.ID) ([]*model.LikedVideo, error) {
	return s.composer.LikedVideos(ctx, principal)
}

func (s *InteractionService) Subscribers(ctx context.Context, rawChannelID string) ([]*model.SubscriptionView, error) {
	return s.composer.ChannelSubscribers(ctx, rawChannelID)
}

func (s *InteractionService) SubscribedChannels(ctx context.Context, rawSubscriberID string) ([]*model.SubscriptionView, error) {
	return s.composer.SubscribedChannels(ctx, rawSubscriberID)
}
