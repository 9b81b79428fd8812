package service

import (
	"context"

	"VidTube.com/cmd/dal/db"
	"VidTube.com/cmd/model"
)

type TweetService struct {
	store    *db.Store
	composer *Composer
}

func NewTweetService(store *db.Store, composer *Composer) *TweetService {
	return &TweetService{store: store, composer: composer}
}

func (s *TweetService) Create(ctx context.Context, principal model.ID, content string) (*model.Tweet, error) {
	content, err := validateContent(content, 0)
	if err != nil {
		return nil, err
	}
	tweet := &model.Tweet{ID: model.NewID(), Content: content, OwnerID: principal}
	if err = s.store.CreateTweet(ctx, tweet); err != nil {
		return nil, err
	}
	return tweet, nil
}

func (s *TweetService) ListByUser(ctx context.Context, rawUserID string) ([]*model.TweetView, error) {
	return s.composer.UserTweets(ctx, rawUserID)
}

func (s *TweetService) loadOwned(ctx context.Context, principal model.ID, rawTweetID string) (*model.Tweet, error) {
	tweetID, err := parseID(rawTweetID, "tweet")
	if err != nil {
		return nil, err
	}
	tweet, err := s.store.GetTweet(ctx, tweetID)
	if err != nil {
		return nil, storeErr(err, "tweet")
	}
	if err = authorizeOwner(principal, tweet.OwnerID); err != nil {
		return nil, err
	}
	return tweet, nil
}

func (s *TweetService) Update(ctx context.Context, principal model.ID, rawTweetID, content string) (*model.Tweet, error) {
	tweet, err := s.loadOwned(ctx, principal, rawTweetID)
	if err != nil {
		return nil, err
	}
	if content, err = validateContent(content, 0); err != nil {
		return nil, err
	}
	if err = s.store.UpdateTweetContent(ctx, tweet.ID, content); err != nil {
		return nil, mutationErr(err, "update tweet")
	}
	return s.store.GetTweet(ctx, tweet.ID)
}

func (s *TweetService) Delete(ctx context.Context, principal model.ID, rawTweetID string) error {
	tweet, err := s.loadOwned(ctx, principal, rawTweetID)
	if err != nil {
		return err
	}
	return mutationErr(s.store.DeleteTweet(ctx, tweet.ID), "delete tweet")
}
