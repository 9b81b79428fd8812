package model

import "time"

type Video struct {
	ID          ID        `gorm:"type:varchar(36);primaryKey" json:"_id"`
	OwnerID     ID        `gorm:"type:varchar(36);not null;index" json:"ownerId"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	VideoFile   string    `gorm:"type:varchar(512);not null" json:"videoFile"`
	VideoFileID string    `gorm:"type:varchar(255)" json:"-"`
	Thumbnail   string    `gorm:"type:varchar(512);not null" json:"thumbnail"`
	ThumbnailID string    `gorm:"type:varchar(255)" json:"-"`
	Duration    float64   `gorm:"not null;default:0" json:"duration"`
	Views       int64     `gorm:"not null;default:0" json:"views"`
	IsPublished bool      `gorm:"not null;default:true;index" json:"isPublished"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Video) TableName() string {
	return "videos"
}

type Comment struct {
	ID        ID        `gorm:"type:varchar(36);primaryKey" json:"_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	VideoID   ID        `gorm:"type:varchar(36);not null;index" json:"videoId"`
	OwnerID   ID        `gorm:"type:varchar(36);not null;index" json:"ownerId"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Comment) TableName() string {
	return "comments"
}

type Tweet struct {
	ID        ID        `gorm:"type:varchar(36);primaryKey" json:"_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	OwnerID   ID        `gorm:"type:varchar(36);not null;index" json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Tweet) TableName() string {
	return "tweets"
}

// 播放列表
type Playlist struct {
	ID          ID        `gorm:"type:varchar(36);primaryKey" json:"_id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	OwnerID     ID        `gorm:"type:varchar(36);not null;index" json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Playlist) TableName() string {
	return "playlists"
}

// 播放列表中的视频 同一视频在列表中至多出现一次
type PlaylistVideo struct {
	Seq        uint64 `gorm:"primaryKey;autoIncrement"`
	PlaylistID ID     `gorm:"type:varchar(36);not null;uniqueIndex:idx_playlist_video,priority:1"`
	VideoID    ID     `gorm:"type:varchar(36);not null;uniqueIndex:idx_playlist_video,priority:2;index"`
	CreatedAt  time.Time
}

func (PlaylistVideo) TableName() string {
	return "playlist_videos"
}
