package mw

import (
	"context"
	"time"

	"VideoTube.com/cmd/api/handlers/common"
	userService "VideoTube.com/cmd/user/service"
	"VideoTube.com/pkg/deps"
	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/pipeline"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/hertz-contrib/jwt"
)

const (
	loginUserKey = "login_user"
	authErrKey   = "auth_err"
)

type AuthOptions struct {
	Secret     string
	Timeout    time.Duration
	MaxRefresh time.Duration
}

type LoginParam struct {
	Account  string `json:"username" form:"username"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// Auth wraps the jwt middleware: Required guards a route, Optional only
// identifies the caller when a valid token is sent.
type Auth struct {
	jwt *jwt.HertzJWTMiddleware
}

func NewAuth(d *deps.Deps, opts AuthOptions) (*Auth, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = 24 * time.Hour
	}
	if opts.MaxRefresh <= 0 {
		opts.MaxRefresh = opts.Timeout
	}
	m, err := jwt.New(&jwt.HertzJWTMiddleware{
		Realm:         "videotube",
		Key:           []byte(opts.Secret),
		Timeout:       opts.Timeout,
		MaxRefresh:    opts.MaxRefresh,
		IdentityKey:   common.IdentityKey,
		TokenLookup:   "header: Authorization, query: token, cookie: accessToken",
		TokenHeadName: "Bearer",
		TimeFunc:      time.Now,
		Authenticator: func(ctx context.Context, c *app.RequestContext) (interface{}, error) {
			var param LoginParam
			if err := c.Bind(&param); err != nil {
				c.Set(authErrKey, common.BindErr(err))
				return nil, err
			}
			account := param.Account
			if account == "" {
				account = param.Email
			}
			user, err := userService.NewUserService(ctx, d).Login(account, param.Password)
			if err != nil {
				c.Set(authErrKey, err)
				return nil, err
			}
			c.Set(loginUserKey, user)
			return user, nil
		},
		PayloadFunc: func(data interface{}) jwt.MapClaims {
			if user, ok := data.(pipeline.Doc); ok {
				return jwt.MapClaims{common.IdentityKey: user["id"]}
			}
			return jwt.MapClaims{}
		},
		IdentityHandler: func(ctx context.Context, c *app.RequestContext) interface{} {
			claims := jwt.ExtractClaims(ctx, c)
			id, _ := claims[common.IdentityKey].(string)
			return id
		},
		LoginResponse: func(ctx context.Context, c *app.RequestContext, code int, token string, expire time.Time) {
			user, _ := c.Get(loginUserKey)
			errno.SendResponse(c, nil, map[string]interface{}{
				"user":         user,
				"access_token": token,
				"expire":       expire.Format(time.RFC3339),
			})
		},
		RefreshResponse: func(ctx context.Context, c *app.RequestContext, code int, token string, expire time.Time) {
			errno.SendResponse(c, nil, map[string]interface{}{
				"access_token": token,
				"expire":       expire.Format(time.RFC3339),
			})
		},
		Unauthorized: func(ctx context.Context, c *app.RequestContext, code int, message string) {
			if v, ok := c.Get(authErrKey); ok {
				if err, isErr := v.(error); isErr {
					errno.SendResponse(c, err, nil)
					return
				}
			}
			hlog.CtxDebugf(ctx, "jwt rejected request: %s", message)
			errno.SendResponse(c, errno.TokenInvalidErr.WithMessage("Unauthorized request").WithErrors(message), nil)
		},
		HTTPStatusMessageFunc: func(e error, ctx context.Context, c *app.RequestContext) string {
			return errno.ConvertErr(e).ErrMsg
		},
	})
	if err != nil {
		return nil, err
	}
	return &Auth{jwt: m}, nil
}

func (a *Auth) Required() app.HandlerFunc {
	return a.jwt.MiddlewareFunc()
}

// Optional identifies the caller if possible and never rejects the request.
func (a *Auth) Optional() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		claims, err := a.jwt.GetClaimsFromJWT(ctx, c)
		if err == nil {
			if exp, ok := claims["exp"].(float64); ok && int64(exp) >= a.jwt.TimeFunc().Unix() {
				c.Set("JWT_PAYLOAD", claims)
				if id, _ := claims[common.IdentityKey].(string); id != "" {
					c.Set(common.IdentityKey, id)
				}
			}
		}
		c.Next(ctx)
	}
}

func (a *Auth) LoginHandler() app.HandlerFunc {
	return a.jwt.LoginHandler
}

func (a *Auth) RefreshHandler() app.HandlerFunc {
	return a.jwt.RefreshHandler
}
