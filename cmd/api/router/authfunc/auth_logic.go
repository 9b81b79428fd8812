package authfunc

import (
	"context"
	"strings"
	"time"

	"VidTube.com/cmd/api/pack"
	"VidTube.com/cmd/dal/db"
	"VidTube.com/cmd/model"
	"VidTube.com/pkg/errno"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/google/uuid"
	"github.com/hertz-contrib/jwt"
	"github.com/pkg/errors"
)

const (
	IdentityKey        = "_id"
	PrincipalKey       = "principal"
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"

	tokenTypeKey = "typ"
	typeAccess   = "access"
	typeRefresh  = "refresh"
)

type Config struct {
	AccessSecret  string
	AccessTTL     time.Duration
	RefreshSecret string
	RefreshTTL    time.Duration
}

// Denylist 登出的access token
type Denylist interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// Auth 双token: access token 用于鉴权 refresh token 只用于换发
type Auth struct {
	access   *jwt.HertzJWTMiddleware
	refresh  *jwt.HertzJWTMiddleware
	store    *db.Store
	denylist Denylist
}

// NewAuth denylist 可以为nil
func NewAuth(cfg Config, store *db.Store, denylist Denylist) (*Auth, error) {
	a := &Auth{store: store, denylist: denylist}

	var err error
	a.access, err = jwt.New(&jwt.HertzJWTMiddleware{
		Realm:         "vidtube",
		Key:           []byte(cfg.AccessSecret),
		Timeout:       cfg.AccessTTL,
		MaxRefresh:    cfg.AccessTTL,
		IdentityKey:   IdentityKey,
		TokenLookup:   "header: Authorization, cookie: " + AccessTokenCookie,
		TokenHeadName: "Bearer",
		TimeFunc:      time.Now,
		PayloadFunc:   payload(typeAccess),
		IdentityHandler: func(ctx context.Context, c *app.RequestContext) interface{} {
			claims := jwt.ExtractClaims(ctx, c)
			if claims[tokenTypeKey] != typeAccess {
				return nil
			}
			return claims[IdentityKey]
		},
		Authorizator: func(data interface{}, ctx context.Context, c *app.RequestContext) bool {
			raw, _ := data.(string)
			id, ok := a.authorize(ctx, raw, jwt.GetToken(ctx, c))
			if ok {
				c.Set(PrincipalKey, id)
			}
			return ok
		},
		Unauthorized: func(ctx context.Context, c *app.RequestContext, code int, message string) {
			hlog.CtxDebugf(ctx, "unauthorized request %s: %d %s", c.Path(), code, message)
			pack.SendError(ctx, c, errno.TokenInvalidErr.WithMessage("Invalid Access Token"))
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "init access token middleware")
	}

	a.refresh, err = jwt.New(&jwt.HertzJWTMiddleware{
		Realm:       "vidtube",
		Key:         []byte(cfg.RefreshSecret),
		Timeout:     cfg.RefreshTTL,
		MaxRefresh:  cfg.RefreshTTL,
		IdentityKey: IdentityKey,
		TimeFunc:    time.Now,
		PayloadFunc: payload(typeRefresh),
	})
	if err != nil {
		return nil, errors.Wrap(err, "init refresh token middleware")
	}
	return a, nil
}

// payload jti 保证同一秒内签发的token也不相同
func payload(tokenType string) func(data interface{}) jwt.MapClaims {
	return func(data interface{}) jwt.MapClaims {
		if id, ok := data.(model.ID); ok {
			return jwt.MapClaims{
				IdentityKey:  id.String(),
				tokenTypeKey: tokenType,
				"jti":        uuid.NewString(),
			}
		}
		return jwt.MapClaims{}
	}
}

// authorize 校验token未被注销且用户仍然存在
func (a *Auth) authorize(ctx context.Context, rawID, token string) (model.ID, bool) {
	id, err := model.ParseID(rawID)
	if err != nil {
		return "", false
	}
	if a.denylist != nil && token != "" {
		revoked, err := a.denylist.IsRevoked(ctx, token)
		if err != nil {
			hlog.CtxWarnf(ctx, "check token denylist failed: %v", err)
		} else if revoked {
			return "", false
		}
	}
	exists, err := a.store.UserIDExists(ctx, id)
	if err != nil {
		hlog.CtxErrorf(ctx, "load principal %s failed: %v", id, err)
		return "", false
	}
	return id, exists
}

// Auth 必须登录
func (a *Auth) Auth() []app.HandlerFunc {
	return append(make([]app.HandlerFunc, 0),
		a.access.MiddlewareFunc(),
	)
}

// OptionalAuth 有合法token时设置principal 否则按匿名继续
func (a *Auth) OptionalAuth() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		if token := lookupAccessToken(c); token != "" {
			if id, err := a.parse(a.access, token, typeAccess); err == nil {
				if principal, ok := a.authorize(ctx, id.String(), token); ok {
					c.Set(PrincipalKey, principal)
				}
			}
		}
		c.Next(ctx)
	}
}

func lookupAccessToken(c *app.RequestContext) string {
	header := string(c.GetHeader("Authorization"))
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return string(c.Cookie(AccessTokenCookie))
}

func (a *Auth) parse(mw *jwt.HertzJWTMiddleware, token, tokenType string) (model.ID, error) {
	parsed, err := mw.ParseTokenString(token)
	if err != nil {
		return "", errors.Wrap(err, "parse token")
	}
	if !parsed.Valid {
		return "", errors.New("token is not valid")
	}
	claims := jwt.ExtractClaimsFromToken(parsed)
	if claims[tokenTypeKey] != tokenType {
		return "", errors.New("unexpected token type")
	}
	raw, _ := claims[IdentityKey].(string)
	return model.ParseID(raw)
}

func (a *Auth) IssueAccessToken(userID model.ID) (string, time.Time, error) {
	return a.access.TokenGenerator(userID)
}

func (a *Auth) IssueRefreshToken(userID model.ID) (string, time.Time, error) {
	return a.refresh.TokenGenerator(userID)
}

func (a *Auth) ParseRefreshToken(token string) (model.ID, error) {
	return a.parse(a.refresh, token, typeRefresh)
}

// Principal 当前登录用户 匿名时为零值
func Principal(c *app.RequestContext) model.ID {
	if v, ok := c.Get(PrincipalKey); ok {
		if id, ok := v.(model.ID); ok {
			return id
		}
	}
	return ""
}

// AccessToken 当前请求携带的access token及其过期时间 用于登出时注销
func AccessToken(ctx context.Context, c *app.RequestContext) (string, time.Time) {
	token := jwt.GetToken(ctx, c)
	if token == "" {
		token = lookupAccessToken(c)
	}
	var expireAt time.Time
	if exp, ok := jwt.ExtractClaims(ctx, c)["exp"].(float64); ok {
		expireAt = time.Unix(int64(exp), 0)
	}
	return token, expireAt
}
