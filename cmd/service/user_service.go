package service

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"VidTube.com/cmd/dal/db"
	"VidTube.com/cmd/model"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/metrics"
	"VidTube.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
)

type UserService struct {
	store   *db.Store
	media   MediaStore
	tokens  TokenIssuer
	revoker TokenRevoker
}

func NewUserService(store *db.Store, media MediaStore, tokens TokenIssuer, revoker TokenRevoker) *UserService {
	return &UserService{store: store, media: media, tokens: tokens, revoker: revoker}
}

type RegisterParam struct {
	FullName   string
	Email      string
	Username   string
	Password   string
	AvatarPath string
	CoverPath  string
}

func (p *RegisterParam) normalize() {
	p.FullName = strings.TrimSpace(p.FullName)
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	p.Username = strings.ToLower(strings.TrimSpace(p.Username))
}

func (p *RegisterParam) validate() error {
	if p.FullName == "" || p.Email == "" || p.Username == "" || strings.TrimSpace(p.Password) == "" {
		return paramErr("all fields are required")
	}
	if _, err := mail.ParseAddress(p.Email); err != nil {
		return paramErr("invalid email")
	}
	return nil
}

// compensate 写库失败后删除已上传的文件 只尝试一次 失败仅记录日志
func (s *UserService) compensate(ctx context.Context, assets ...*model.Asset) {
	compensate(ctx, s.media, assets...)
}

func compensate(ctx context.Context, media MediaStore, assets ...*model.Asset) {
	for _, a := range assets {
		if a == nil {
			continue
		}
		if !media.Delete(ctx, a.ID) {
			metrics.CompensationFailures.Inc()
			hlog.CtxErrorf(ctx, "compensating delete of asset %s failed, manual cleanup required", a.ID)
		}
	}
}

// Register 头像必传 封面可选 用户写入失败时删除已上传的文件
func (s *UserService) Register(ctx context.Context, p RegisterParam) (*model.PublicUser, error) {
	p.normalize()
	if err := p.validate(); err != nil {
		return nil, err
	}
	exists, err := s.store.UserExists(ctx, p.Username, p.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, paramErr("user with email or username already exists")
	}
	if p.AvatarPath == "" {
		return nil, paramErr("avatar file is required")
	}

	avatar, ok := s.media.Upload(ctx, p.AvatarPath)
	if !ok {
		return nil, paramErr("avatar file is required")
	}
	var cover *model.Asset
	if p.CoverPath != "" {
		if cover, ok = s.media.Upload(ctx, p.CoverPath); !ok {
			s.compensate(ctx, avatar)
			return nil, errno.ServiceErr.WithMessage("failed to upload cover image")
		}
	}

	hashed, err := utils.Crypt(p.Password)
	if err != nil {
		s.compensate(ctx, avatar, cover)
		return nil, errors.Wrap(err, "hash password")
	}
	user := &model.User{
		ID:       model.NewID(),
		Username: p.Username,
		Email:    p.Email,
		FullName: p.FullName,
		Avatar:   avatar.URL,
		AvatarID: avatar.ID,
		Password: hashed,
	}
	if cover != nil {
		user.CoverImage = cover.URL
		user.CoverImageID = cover.ID
	}
	if err = s.store.CreateUser(ctx, user); err != nil {
		s.compensate(ctx, avatar, cover)
		if db.IsDuplicate(err) {
			return nil, paramErr("user with email or username already exists")
		}
		hlog.CtxErrorf(ctx, "create user %s failed: %v", p.Username, err)
		return nil, errno.ServiceErr.WithMessage("something went wrong while registering the user")
	}
	return user.Public(), nil
}

type LoginResult struct {
	User   *model.PublicUser `json:"user"`
	Tokens TokenPair         `json:"-"`
}

func (s *UserService) Login(ctx context.Context, username, email, password string) (*LoginResult, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" && email == "" {
		return nil, paramErr("username or email is required")
	}
	user, err := s.store.FindUserForLogin(ctx, username, email)
	if err != nil {
		return nil, storeErr(err, "user")
	}
	if !utils.VerifyPassword(password, user.Password) {
		return nil, errno.AuthorizationFailedErr.WithMessage("invalid user credentials")
	}
	tokens, err := s.issueTokens(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: user.Public(), Tokens: *tokens}, nil
}

func (s *UserService) issueTokens(ctx context.Context, userID model.ID) (*TokenPair, error) {
	access, accessExp, err := s.tokens.IssueAccessToken(userID)
	if err != nil {
		return nil, errors.Wrap(err, "issue access token")
	}
	refresh, refreshExp, err := s.tokens.IssueRefreshToken(userID)
	if err != nil {
		return nil, errors.Wrap(err, "issue refresh token")
	}
	if err = s.store.SetRefreshToken(ctx, userID, refresh); err != nil {
		return nil, mutationErr(err, "store refresh token")
	}
	return &TokenPair{
		AccessToken:     access,
		AccessExpireAt:  accessExp,
		RefreshToken:    refresh,
		RefreshExpireAt: refreshExp,
	}, nil
}

// Logout 清空refresh token 并在access token过期前拒绝它
func (s *UserService) Logout(ctx context.Context, principal model.ID, accessToken string, accessExpireAt time.Time) error {
	if err := s.store.SetRefreshToken(ctx, principal, ""); err != nil {
		return mutationErr(err, "logout")
	}
	if s.revoker != nil && accessToken != "" {
		if err := s.revoker.Revoke(ctx, accessToken, time.Until(accessExpireAt)); err != nil {
			hlog.CtxWarnf(ctx, "revoke access token failed: %v", err)
		}
	}
	return nil
}

// RefreshAccessToken 只接受与库中保存一致的refresh token
func (s *UserService) RefreshAccessToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if refreshToken == "" {
		return nil, errno.AuthorizationFailedErr.WithMessage("unauthorized request")
	}
	userID, err := s.tokens.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, errno.AuthorizationFailedErr.WithMessage("invalid refresh token")
	}
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, errno.AuthorizationFailedErr.WithMessage("invalid refresh token")
		}
		return nil, err
	}
	if user.RefreshToken == "" || user.RefreshToken != refreshToken {
		return nil, errno.AuthorizationFailedErr.WithMessage("refresh token is expired or used")
	}
	return s.issueTokens(ctx, user.ID)
}

func (s *UserService) ChangePassword(ctx context.Context, principal model.ID, oldPassword, newPassword string) error {
	if strings.TrimSpace(newPassword) == "" {
		return paramErr("new password is required")
	}
	user, err := s.store.GetUserByID(ctx, principal)
	if err != nil {
		return storeErr(err, "user")
	}
	if !utils.VerifyPassword(oldPassword, user.Password) {
		return paramErr("invalid old password")
	}
	hashed, err := utils.Crypt(newPassword)
	if err != nil {
		return errors.Wrap(err, "hash password")
	}
	return mutationErr(s.store.UpdateUser(ctx, principal, map[string]interface{}{"password": hashed}), "change password")
}

func (s *UserService) CurrentUser(ctx context.Context, principal model.ID) (*model.PublicUser, error) {
	user, err := s.store.GetUserByID(ctx, principal)
	if err != nil {
		return nil, storeErr(err, "user")
	}
	return user.Public(), nil
}

func (s *UserService) UpdateAccount(ctx context.Context, principal model.ID, fullName, email string) (*model.PublicUser, error) {
	fullName = strings.TrimSpace(fullName)
	email = strings.ToLower(strings.TrimSpace(email))
	if fullName == "" || email == "" {
		return nil, paramErr("all fields are required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, paramErr("invalid email")
	}
	err := s.store.UpdateUser(ctx, principal, map[string]interface{}{"full_name": fullName, "email": email})
	if db.IsDuplicate(err) {
		return nil, paramErr("email is already in use")
	}
	if err != nil {
		return nil, mutationErr(err, "update account")
	}
	return s.CurrentUser(ctx, principal)
}

// UpdateAvatar 新文件写库成功后再删除旧文件
func (s *UserService) UpdateAvatar(ctx context.Context, principal model.ID, localPath string) (*model.PublicUser, error) {
	return s.replaceImage(ctx, principal, localPath, "avatar", "avatar_id", "avatar")
}

func (s *UserService) UpdateCoverImage(ctx context.Context, principal model.ID, localPath string) (*model.PublicUser, error) {
	return s.replaceImage(ctx, principal, localPath, "cover_image", "cover_image_id", "cover image")
}

func (s *UserService) replaceImage(ctx context.Context, principal model.ID, localPath, urlColumn, idColumn, what string) (*model.PublicUser, error) {
	if localPath == "" {
		return nil, paramErr(what + " file is missing")
	}
	user, err := s.store.GetUserByID(ctx, principal)
	if err != nil {
		return nil, storeErr(err, "user")
	}
	asset, ok := s.media.Upload(ctx, localPath)
	if !ok {
		return nil, paramErr("error while uploading " + what)
	}
	err = s.store.UpdateUser(ctx, principal, map[string]interface{}{urlColumn: asset.URL, idColumn: asset.ID})
	if err != nil {
		s.compensate(ctx, asset)
		return nil, mutationErr(err, "update "+what)
	}

	oldID := user.AvatarID
	if idColumn == "cover_image_id" {
		oldID = user.CoverImageID
	}
	if oldID != "" && !s.media.Delete(ctx, oldID) {
		hlog.CtxWarnf(ctx, "delete old %s %s failed", what, oldID)
	}
	return s.CurrentUser(ctx, principal)
}
