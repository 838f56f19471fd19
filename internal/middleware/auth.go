package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/questmaster/backend/internal/entity"
	"github.com/questmaster/backend/internal/model"
	"github.com/questmaster/backend/internal/repository"
	"github.com/questmaster/backend/pkg/errorx"
	"github.com/questmaster/backend/pkg/jwt"
	"github.com/questmaster/backend/pkg/router"
	"github.com/questmaster/backend/pkg/xcontext"
	"gorm.io/gorm"
)

func getAccessToken(ctx context.Context) string {
	req := xcontext.HTTPRequest(ctx)
	if req == nil {
		return ""
	}

	authorization := req.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(authorization, "Bearer "); ok {
		return token
	}

	cookie, err := req.Cookie(xcontext.Configs(ctx).Auth.AccessTokenName)
	if err != nil {
		return ""
	}

	return cookie.Value
}

func verifyAccessToken(ctx context.Context) (string, error) {
	token := getAccessToken(ctx)
	if token == "" {
		return "", errorx.New(errorx.Unauthenticated, "Require an access token")
	}

	cfg := xcontext.Configs(ctx)
	engine := jwt.NewEngine[model.AccessToken](cfg.Auth.TokenSecret, cfg.Auth.Expiration)
	accessToken, err := engine.Verify(token)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot verify the access token: %v", err)
		return "", errorx.New(errorx.Unauthenticated, "Invalid access token")
	}

	return accessToken.ID, nil
}

// Authenticate rejects requests without a valid access token.
func Authenticate() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		userID, err := verifyAccessToken(ctx)
		if err != nil {
			return nil, err
		}

		return xcontext.WithRequestUserID(ctx, userID), nil
	}
}

// OptionalAuthenticate identifies the requester when a valid token is
// present and lets the request through otherwise.
func OptionalAuthenticate() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		userID, err := verifyAccessToken(ctx)
		if err != nil {
			return ctx, nil
		}

		return xcontext.WithRequestUserID(ctx, userID), nil
	}
}

// OnlyAdmin rejects requests whose authenticated user is not an admin. It
// must run after Authenticate.
func OnlyAdmin(userRepo repository.UserRepository) router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		userID := xcontext.RequestUserID(ctx)
		if userID == "" {
			return nil, errorx.New(errorx.Unauthenticated, "Require an authenticated user")
		}

		user, err := userRepo.GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
			}

			xcontext.Logger(ctx).Errorf("Cannot get the user: %v", err)
			return nil, errorx.Unknown
		}

		if user.Role != entity.AdminRole {
			return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
		}

		return ctx, nil
	}
}
