package handlers

import (
	"context"
	"time"

	"VidTube.com/cmd/api/pack"
	"VidTube.com/cmd/api/router/authfunc"
	"VidTube.com/cmd/model"
	"VidTube.com/cmd/service"
	"VidTube.com/pkg/errno"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol"
)

type Handler struct {
	users    *service.UserService
	composer *service.Composer
	tempDir  string
}

func New(users *service.UserService, composer *service.Composer, tempDir string) *Handler {
	return &Handler{users: users, composer: composer, tempDir: tempDir}
}

type RegisterParam struct {
	FullName string `form:"fullName" json:"fullName" vd:"len($)>0"`
	Email    string `form:"email" json:"email" vd:"len($)>0"`
	Username string `form:"username" json:"username" vd:"len($)>0"`
	Password string `form:"password" json:"password" vd:"len($)>0"`
}

type LoginParam struct {
	Username string `form:"username" json:"username"`
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

type RefreshParam struct {
	RefreshToken string `form:"refreshToken" json:"refreshToken"`
}

type ChangePasswordParam struct {
	OldPassword string `form:"oldPassword" json:"oldPassword" vd:"len($)>0"`
	NewPassword string `form:"newPassword" json:"newPassword" vd:"len($)>0"`
}

type UpdateAccountParam struct {
	FullName string `form:"fullName" json:"fullName" vd:"len($)>0"`
	Email    string `form:"email" json:"email" vd:"len($)>0"`
}

type tokenData struct {
	User         interface{} `json:"user,omitempty"`
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
}

func setTokenCookies(c *app.RequestContext, tokens *service.TokenPair) {
	c.SetCookie(authfunc.AccessTokenCookie, tokens.AccessToken, maxAge(tokens.AccessExpireAt), "/", "", protocol.CookieSameSiteLaxMode, true, true)
	c.SetCookie(authfunc.RefreshTokenCookie, tokens.RefreshToken, maxAge(tokens.RefreshExpireAt), "/", "", protocol.CookieSameSiteLaxMode, true, true)
}

func clearTokenCookies(c *app.RequestContext) {
	c.SetCookie(authfunc.AccessTokenCookie, "", -1, "/", "", protocol.CookieSameSiteLaxMode, true, true)
	c.SetCookie(authfunc.RefreshTokenCookie, "", -1, "/", "", protocol.CookieSameSiteLaxMode, true, true)
}

func maxAge(expireAt time.Time) int {
	if expireAt.IsZero() {
		return 0
	}
	return int(time.Until(expireAt).Seconds())
}

func (h *Handler) Register(ctx context.Context, c *app.RequestContext) {
	var req RegisterParam
	if err := c.BindAndValidate(&req); err != nil {
		pack.SendError(ctx, c, errno.ParamErr.WithMessage(err.Error()))
		return
	}
	avatar, err := pack.SaveUpload(c, "avatar", h.tempDir)
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	cover, err := pack.SaveUpload(c, "coverImage", h.tempDir)
	defer pack.RemoveUploads(avatar, cover)
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}

	user, err := h.users.Register(ctx, service.RegisterParam{
		FullName:   req.FullName,
		Email:      req.Email,
		Username:   req.Username,
		Password:   req.Password,
		AvatarPath: avatar,
		CoverPath:  cover,
	})
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	pack.SendCreated(c, user, "User registered successfully")
}

func (h *Handler) Login(ctx context.Context, c *app.RequestContext) {
	var req LoginParam
	if err := c.BindAndValidate(&req); err != nil {
		pack.SendError(ctx, c, errno.ParamErr.WithMessage(err.Error()))
		return
	}
	res, err := h.users.Login(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	setTokenCookies(c, &res.Tokens)
	pack.SendResponse(c, tokenData{
		User:         res.User,
		AccessToken:  res.Tokens.AccessToken,
		RefreshToken: res.Tokens.RefreshToken,
	}, "User logged in successfully")
}

func (h *Handler) Logout(ctx context.Context, c *app.RequestContext) {
	token, expireAt := authfunc.AccessToken(ctx, c)
	if err := h.users.Logout(ctx, authfunc.Principal(c), token, expireAt); err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	clearTokenCookies(c)
	pack.SendResponse(c, struct{}{}, "User logged out")
}

// RefreshToken cookie优先 其次请求体
func (h *Handler) RefreshToken(ctx context.Context, c *app.RequestContext) {
	var req RefreshParam
	_ = c.Bind(&req)
	token := string(c.Cookie(authfunc.RefreshTokenCookie))
	if token == "" {
		token = req.RefreshToken
	}
	tokens, err := h.users.RefreshAccessToken(ctx, token)
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	setTokenCookies(c, tokens)
	pack.SendResponse(c, tokenData{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, "Access token refreshed")
}

func (h *Handler) ChangePassword(ctx context.Context, c *app.RequestContext) {
	var req ChangePasswordParam
	if err := c.BindAndValidate(&req); err != nil {
		pack.SendError(ctx, c, errno.ParamErr.WithMessage(err.Error()))
		return
	}
	if err := h.users.ChangePassword(ctx, authfunc.Principal(c), req.OldPassword, req.NewPassword); err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	pack.SendResponse(c, struct{}{}, "Password changed successfully")
}

func (h *Handler) CurrentUser(ctx context.Context, c *app.RequestContext) {
	user, err := h.users.CurrentUser(ctx, authfunc.Principal(c))
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	pack.SendResponse(c, user, "User fetched successfully")
}

func (h *Handler) UpdateAccount(ctx context.Context, c *app.RequestContext) {
	var req UpdateAccountParam
	if err := c.BindAndValidate(&req); err != nil {
		pack.SendError(ctx, c, errno.ParamErr.WithMessage(err.Error()))
		return
	}
	user, err := h.users.UpdateAccount(ctx, authfunc.Principal(c), req.FullName, req.Email)
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	pack.SendResponse(c, user, "Account details updated successfully")
}

func (h *Handler) UpdateAvatar(ctx context.Context, c *app.RequestContext) {
	h.replaceImage(ctx, c, "avatar", h.users.UpdateAvatar, "Avatar updated successfully")
}

func (h *Handler) UpdateCoverImage(ctx context.Context, c *app.RequestContext) {
	h.replaceImage(ctx, c, "coverImage", h.users.UpdateCoverImage, "Cover image updated successfully")
}

type imageUpdater func(ctx context.Context, principal model.ID, localPath string) (*model.PublicUser, error)

func (h *Handler) replaceImage(ctx context.Context, c *app.RequestContext, field string, update imageUpdater, message string) {
	path, err := pack.SaveUpload(c, field, h.tempDir)
	defer pack.RemoveUploads(path)
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	user, err := update(ctx, authfunc.Principal(c), path)
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	pack.SendResponse(c, user, message)
}

// ChannelProfile 匿名访问时isSubscribed为false
func (h *Handler) ChannelProfile(ctx context.Context, c *app.RequestContext) {
	profile, err := h.composer.ChannelProfile(ctx, c.Param("username"), authfunc.Principal(c))
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	pack.SendResponse(c, profile, "User channel fetched successfully")
}

func (h *Handler) WatchHistory(ctx context.Context, c *app.RequestContext) {
	history, err := h.composer.WatchHistory(ctx, authfunc.Principal(c))
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	pack.SendResponse(c, history, "Watch history fetched successfully")
}
