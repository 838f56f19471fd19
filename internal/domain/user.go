package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	slugify "github.com/gosimple/slug"
	"github.com/questmaster/backend/internal/entity"
	"github.com/questmaster/backend/internal/model"
	"github.com/questmaster/backend/internal/repository"
	"github.com/questmaster/backend/pkg/api/discord"
	"github.com/questmaster/backend/pkg/errorx"
	"github.com/questmaster/backend/pkg/jwt"
	"github.com/questmaster/backend/pkg/xcontext"
	"github.com/questmaster/backend/pkg/xredis"
	"gorm.io/gorm"
)

const avatarCacheTTL = 5 * time.Minute

type UserDomain interface {
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	GetMe(ctx context.Context, req *model.GetMeRequest) (*model.GetMeResponse, error)
	GetUser(ctx context.Context, req *model.GetUserRequest) (*model.GetUserResponse, error)
	RefreshProfile(ctx context.Context, req *model.RefreshProfileRequest) (*model.RefreshProfileResponse, error)
	MarkNotPlayer(ctx context.Context, req *model.MarkNotPlayerRequest) (*model.MarkNotPlayerResponse, error)
	ClearNotPlayer(ctx context.Context, req *model.ClearNotPlayerRequest) (*model.ClearNotPlayerResponse, error)
}

type userDomain struct {
	userRepo        repository.UserRepository
	discordEndpoint discord.IEndpoint
	redisClient     xredis.Client
	jwtEngine       *jwt.Engine[model.AccessToken]
}

func NewUserDomain(
	userRepo repository.UserRepository,
	discordEndpoint discord.IEndpoint,
	redisClient xredis.Client,
	jwtEngine *jwt.Engine[model.AccessToken],
) *userDomain {
	return &userDomain{
		userRepo:        userRepo,
		discordEndpoint: discordEndpoint,
		redisClient:     redisClient,
		jwtEngine:       jwtEngine,
	}
}

// Login resolves a guild member by its Discord id, synchronizes the local
// profile with the guild state and issues an access token.
func (d *userDomain) Login(
	ctx context.Context, req *model.LoginRequest,
) (*model.LoginResponse, error) {
	if !entity.IsDiscordID(req.UserID) {
		return nil, errorx.New(errorx.BadRequest, "Invalid user id")
	}

	member, err := d.discordEndpoint.GetMember(ctx, req.UserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get the guild member: %v", err)
		return nil, errorx.New(errorx.Unauthenticated, "User is not a member of the guild")
	}

	user, err := d.syncProfile(ctx, member)
	if err != nil {
		return nil, err
	}

	token, err := d.jwtEngine.Generate(user.ID, model.AccessToken{
		ID:   user.ID,
		Role: user.Role,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate the access token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.LoginResponse{
		AccessToken: token,
		User:        model.ConvertUser(user, d.avatarOf(ctx, member)),
	}, nil
}

func (d *userDomain) GetMe(
	ctx context.Context, req *model.GetMeRequest,
) (*model.GetMeResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "Require an authenticated user")
	}

	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get the user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetMeResponse{User: model.ConvertUser(user, d.cachedAvatar(ctx, user.ID))}, nil
}

func (d *userDomain) GetUser(
	ctx context.Context, req *model.GetUserRequest,
) (*model.GetUserResponse, error) {
	if req.ID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty id")
	}

	user, err := d.userRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get the user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetUserResponse{User: model.ConvertUser(user, d.cachedAvatar(ctx, user.ID))}, nil
}

// RefreshProfile re-reads the guild member and updates the local username,
// slug and role.
func (d *userDomain) RefreshProfile(
	ctx context.Context, req *model.RefreshProfileRequest,
) (*model.RefreshProfileResponse, error) {
	userID := req.ID
	if userID == "" {
		userID = xcontext.RequestUserID(ctx)
	}

	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "Require an authenticated user")
	}

	member, err := d.discordEndpoint.GetMember(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get the guild member: %v", err)
		return nil, errorx.New(errorx.NotFound, "User is not a member of the guild")
	}

	if err := d.redisClient.Del(ctx, avatarCacheKey(userID)); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot invalidate the avatar cache: %v", err)
	}

	user, err := d.syncProfile(ctx, member)
	if err != nil {
		return nil, err
	}

	return &model.RefreshProfileResponse{User: model.ConvertUser(user, d.avatarOf(ctx, member))}, nil
}

// MarkNotPlayer flags a profile whose member left the guild. Reserved to
// admins.
func (d *userDomain) MarkNotPlayer(
	ctx context.Context, req *model.MarkNotPlayerRequest,
) (*model.MarkNotPlayerResponse, error) {
	if req.ID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty id")
	}

	if _, err := d.userRepo.GetByID(ctx, req.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get the user: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.userRepo.MarkNotPlayer(ctx, req.ID, time.Now()); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot mark the user as not player: %v", err)
		return nil, errorx.Unknown
	}

	return &model.MarkNotPlayerResponse{}, nil
}

// ClearNotPlayer reverses MarkNotPlayer when a member comes back to the
// guild.
func (d *userDomain) ClearNotPlayer(
	ctx context.Context, req *model.ClearNotPlayerRequest,
) (*model.ClearNotPlayerResponse, error) {
	if req.ID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty id")
	}

	if err := d.userRepo.ClearNotPlayer(ctx, req.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot clear the not player flag: %v", err)
		return nil, errorx.Unknown
	}

	return &model.ClearNotPlayerResponse{}, nil
}

// syncProfile upserts the local user from the guild member. An ADMIN role
// set locally is never downgraded by the guild state.
func (d *userDomain) syncProfile(ctx context.Context, member discord.Member) (*entity.User, error) {
	username := member.Nick
	if username == "" {
		username = member.Username
	}

	role := entity.UserRole
	gmRoleID := xcontext.Configs(ctx).Discord.GMRoleID
	for _, roleID := range member.Roles {
		if roleID == gmRoleID {
			role = entity.GMRole
			break
		}
	}

	existing, err := d.userRepo.GetByID(ctx, member.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get the user: %v", err)
		return nil, errorx.Unknown
	}

	if existing != nil && existing.Role == entity.AdminRole {
		role = entity.AdminRole
	}

	user := &entity.User{
		Base:     entity.Base{ID: member.ID},
		Username: username,
		SlugName: slugify.Make(username),
		Role:     role,
	}

	if err := d.userRepo.Upsert(ctx, user); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upsert the user: %v", err)
		return nil, errorx.Unknown
	}

	if existing != nil && existing.Role != role {
		if err := d.userRepo.UpdateByID(ctx, user.ID, &entity.User{Role: role}); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot update the user role: %v", err)
			return nil, errorx.Unknown
		}
	}

	return d.userRepo.GetByID(ctx, user.ID)
}

func avatarCacheKey(userID string) string {
	return "profile:" + userID
}

func avatarURL(member discord.Member) string {
	if member.Avatar == "" {
		return ""
	}

	return fmt.Sprintf("https://cdn.discordapp.com/avatars/%s/%s.png", member.ID, member.Avatar)
}

// avatarOf caches the avatar url of a freshly fetched member.
func (d *userDomain) avatarOf(ctx context.Context, member discord.Member) string {
	url := avatarURL(member)
	if err := d.redisClient.SetObj(ctx, avatarCacheKey(member.ID), url, avatarCacheTTL); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot cache the avatar of user %s: %v", member.ID, err)
	}

	return url
}

// cachedAvatar returns the cached avatar url, falling back to the guild on a
// cache miss.
func (d *userDomain) cachedAvatar(ctx context.Context, userID string) string {
	var url string
	if err := d.redisClient.GetObj(ctx, avatarCacheKey(userID), &url); err == nil {
		return url
	}

	member, err := d.discordEndpoint.GetMember(ctx, userID)
	if err != nil {
		return ""
	}

	return d.avatarOf(ctx, member)
}
