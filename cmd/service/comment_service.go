package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"VidTube.com/cmd/dal/db"
	"VidTube.com/cmd/model"
	"VidTube.com/pkg/mq"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

const MaxCommentLength = 1000

type CommentService struct {
	store    *db.Store
	composer *Composer
	limiter  RateLimiter
	events   EventPublisher
}

func NewCommentService(store *db.Store, composer *Composer, limiter RateLimiter, events EventPublisher) *CommentService {
	return &CommentService{store: store, composer: composer, limiter: limiter, events: events}
}

// validateContent max为0时不限制长度
func validateContent(content string, max int) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", paramErr("content is required")
	}
	if max > 0 && utf8.RuneCountInString(content) > max {
		return "", paramErr("content is too long")
	}
	return content, nil
}

// checkRateLimit redis不可用时放行
func (s *CommentService) checkRateLimit(ctx context.Context, principal model.ID) error {
	if s.limiter == nil {
		return nil
	}
	ok, err := s.limiter.Allow(ctx, principal.String())
	if err != nil {
		hlog.CtxWarnf(ctx, "Failed to check rate limit for user %s: %v", principal, err)
		return nil
	}
	if !ok {
		return paramErr("comment rate limit exceeded, please try again later")
	}
	return nil
}

func (s *CommentService) List(ctx context.Context, rawVideoID string, page, pageSize int) (*model.CommentPage, error) {
	return s.composer.VideoComments(ctx, rawVideoID, page, pageSize)
}

func (s *CommentService) Add(ctx context.Context, principal model.ID, rawVideoID, content string) (*model.Comment, error) {
	videoID, err := parseID(rawVideoID, "video")
	if err != nil {
		return nil, err
	}
	if content, err = validateContent(content, MaxCommentLength); err != nil {
		return nil, err
	}
	exists, err := s.store.VisibleVideoExists(ctx, videoID, principal)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, storeErr(errNotFound, "video")
	}
	if err = s.checkRateLimit(ctx, principal); err != nil {
		return nil, err
	}
	comment := &model.Comment{
		ID:      model.NewID(),
		Content: content,
		VideoID: videoID,
		OwnerID: principal,
	}
	if err = s.store.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	publish(ctx, s.events, mq.NewInteractionEvent(mq.EventCommented, principal.String(), string(model.LikeVideo), videoID.String()))
	return comment, nil
}

func (s *CommentService) loadOwned(ctx context.Context, principal model.ID, rawCommentID string) (*model.Comment, error) {
	commentID, err := parseID(rawCommentID, "comment")
	if err != nil {
		return nil, err
	}
	comment, err := s.store.GetComment(ctx, commentID)
	if err != nil {
		return nil, storeErr(err, "comment")
	}
	if err = authorizeOwner(principal, comment.OwnerID); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) Update(ctx context.Context, principal model.ID, rawCommentID, content string) (*model.Comment, error) {
	comment, err := s.loadOwned(ctx, principal, rawCommentID)
	if err != nil {
		return nil, err
	}
	if content, err = validateContent(content, MaxCommentLength); err != nil {
		return nil, err
	}
	if err = s.store.UpdateCommentContent(ctx, comment.ID, content); err != nil {
		return nil, mutationErr(err, "update comment")
	}
	return s.store.GetComment(ctx, comment.ID)
}

func (s *CommentService) Delete(ctx context.Context, principal model.ID, rawCommentID string) error {
	comment, err := s.loadOwned(ctx, principal, rawCommentID)
	if err != nil {
		return err
	}
	return mutationErr(s.store.DeleteComment(ctx, comment.ID), "delete comment")
}
