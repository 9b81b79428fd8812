package model

import "time"

// 以下为组合读模型 由service层拼装后直接序列化返回

type VideoView struct {
	*Video
	Owner *OwnerView `json:"owner,omitempty"`
}

type VideoDetail struct {
	VideoView
	LikesCount int64 `json:"likesCount"`
	IsLiked    bool  `json:"isLiked"`
}

type CommentView struct {
	*Comment
	Owner *OwnerView `json:"owner,omitempty"`
}

type TweetView struct {
	*Tweet
	Owner      *OwnerView `json:"owner,omitempty"`
	LikesCount int64      `json:"likesCount"`
}

type CommentPage struct {
	Comments      []*CommentView `json:"comments"`
	TotalComments int64          `json:"totalComments"`
	TotalPages    int64          `json:"totalPages"`
	Page          int            `json:"page"`
	PageSize      int            `json:"pageSize"`
}

type VideoPage struct {
	Videos      []*VideoView `json:"videos"`
	TotalVideos int64        `json:"totalVideos"`
	TotalPages  int64        `json:"totalPages"`
	Page        int          `json:"page"`
	PageSize    int          `json:"pageSize"`
}

type ChannelProfile struct {
	ID                   ID        `json:"_id"`
	Username             string    `json:"username"`
	FullName             string    `json:"fullName"`
	Email                string    `json:"email"`
	Avatar               string    `json:"avatar"`
	CoverImage           string    `json:"coverImage"`
	SubscriberCount      int64     `json:"subscriberCount"`
	SubscribedToCount    int64     `json:"subscribedToCount"`
	IsSubscribedByViewer bool      `json:"isSubscribed"`
	CreatedAt            time.Time `json:"createdAt"`
}

type PlaylistView struct {
	ID          ID           `json:"_id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Videos      []*VideoView `json:"videos"`
	CreatedBy   *OwnerView   `json:"createdBy,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// SubscriptionView 订阅边 User为对端用户的投影
type SubscriptionView struct {
	ID           ID         `json:"_id"`
	User         *OwnerView `json:"user,omitempty"`
	SubscribedAt time.Time  `json:"subscribedAt"`
}

type LikedVideo struct {
	LikedAt time.Time  `json:"likedAt"`
	Video   *VideoView `json:"video"`
}
