package service

import (
	"context"
	"time"

	"VidTube.com/cmd/model"
	"VidTube.com/pkg/mq"
)

// MediaStore 对象存储 上传失败返回 (nil, false)
type MediaStore interface {
	Upload(ctx context.Context, localPath string) (*model.Asset, bool)
	Delete(ctx context.Context, assetID string) bool
}

type EventPublisher interface {
	Publish(ctx context.Context, event *mq.InteractionEvent) error
}

// Locker returns an unlock func once the named lock is held.
type Locker interface {
	Lock(ctx context.Context, key string) (func(), error)
}

type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type VideoIndex interface {
	Index(ctx context.Context, v *model.Video) error
	Remove(ctx context.Context, id model.ID) error
	Search(ctx context.Context, text string) ([]model.ID, error)
}

// TokenIssuer 由jwt中间件实现 避免service依赖http层
type TokenIssuer interface {
	IssueAccessToken(userID model.ID) (string, time.Time, error)
	IssueRefreshToken(userID model.ID) (string, time.Time, error)
	ParseRefreshToken(token string) (model.ID, error)
}

type TokenRevoker interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
}

// DurationProber reads a media file's duration in seconds.
type DurationProber func(path string) (float64, error)

// TokenPair 登录与刷新时返回给客户端
type TokenPair struct {
	AccessToken     string    `json:"accessToken"`
	AccessExpireAt  time.Time `json:"-"`
	RefreshToken    string    `json:"refreshToken"`
	RefreshExpireAt time.Time `json:"-"`
}
