package model

import "time"

type User struct {
	ID           ID        `gorm:"type:varchar(36);primaryKey"`
	Username     string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	Email        string    `gorm:"type:varchar(128);uniqueIndex;not null"`
	FullName     string    `gorm:"type:varchar(128);index;not null"`
	Avatar       string    `gorm:"type:varchar(512);not null"`
	AvatarID     string    `gorm:"type:varchar(255)"`
	CoverImage   string    `gorm:"type:varchar(512)"`
	CoverImageID string    `gorm:"type:varchar(255)"`
	Password     string    `gorm:"type:varchar(255);not null" json:"-"`
	RefreshToken string    `gorm:"type:varchar(1024)" json:"-"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (User) TableName() string {
	return "users"
}

// PublicUser 对外暴露的用户信息 不包含密码与refresh token
type PublicUser struct {
	ID         ID        `json:"_id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FullName   string    `json:"fullName"`
	Avatar     string    `json:"avatar"`
	CoverImage string    `json:"coverImage"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// OwnerView is the whitelisted projection attached to joined reads.
type OwnerView struct {
	ID       ID     `json:"_id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Avatar   string `json:"avatar"`
}

// OwnerColumns are the only user columns a join may select.
var OwnerColumns = []string{"id", "username", "full_name", "avatar"}

func (u *User) Public() *PublicUser {
	if u == nil {
		return nil
	}
	return &PublicUser{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		FullName:   u.FullName,
		Avatar:     u.Avatar,
		CoverImage: u.CoverImage,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

func (u *User) Owner() *OwnerView {
	if u == nil {
		return nil
	}
	return &OwnerView{
		ID:       u.ID,
		Username: u.Username,
		FullName: u.FullName,
		Avatar:   u.Avatar,
	}
}

// WatchHistory 观看记录 Seq保证首次观看的顺序
type WatchHistory struct {
	Seq       uint64 `gorm:"primaryKey;autoIncrement"`
	UserID    ID     `gorm:"type:varchar(36);not null;uniqueIndex:idx_watch_user_video,priority:1"`
	VideoID   ID     `gorm:"type:varchar(36);not null;uniqueIndex:idx_watch_user_video,priority:2;index"`
	CreatedAt time.Time
}

func (WatchHistory) TableName() string {
	return "watch_histories"
}

// Asset 对象存储中的文件 ID用于删除 URL用于展示
type Asset struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}
