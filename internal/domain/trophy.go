package domain

import (
	"context"
	"errors"

	"github.com/gosimple/slug"
	"github.com/questmaster/backend/internal/domain/trophy"
	"github.com/questmaster/backend/internal/entity"
	"github.com/questmaster/backend/internal/model"
	"github.com/questmaster/backend/internal/repository"
	"github.com/questmaster/backend/pkg/errorx"
	"github.com/questmaster/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type TrophyDomain interface {
	Create(ctx context.Context, req *model.CreateTrophyRequest) (*model.CreateTrophyResponse, error)
	GetList(ctx context.Context, req *model.GetTrophiesRequest) (*model.GetTrophiesResponse, error)
	Award(ctx context.Context, req *model.AwardTrophyRequest) (*model.AwardTrophyResponse, error)
	GetUserTrophies(ctx context.Context, req *model.GetUserTrophiesRequest) (*model.GetUserTrophiesResponse, error)
	GetLeaderboard(ctx context.Context, req *model.GetTrophyLeaderboardRequest) (*model.GetTrophyLeaderboardResponse, error)
}

type trophyDomain struct {
	trophyRepo    repository.TrophyRepository
	userRepo      repository.UserRepository
	trophyManager *trophy.Manager
}

func NewTrophyDomain(
	trophyRepo repository.TrophyRepository,
	userRepo repository.UserRepository,
	trophyManager *trophy.Manager,
) *trophyDomain {
	return &trophyDomain{
		trophyRepo:    trophyRepo,
		userRepo:      userRepo,
		trophyManager: trophyManager,
	}
}

func (d *trophyDomain) Create(
	ctx context.Context, req *model.CreateTrophyRequest,
) (*model.CreateTrophyResponse, error) {
	if req.Name == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty name")
	}

	t := &entity.Trophy{
		Base:   entity.Base{ID: slug.Make(req.Name)},
		Name:   req.Name,
		Unique: req.Unique,
		Icon:   req.Icon,
	}

	if err := d.trophyRepo.Create(ctx, t); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create the trophy: %v", err)
		return nil, errorx.New(errorx.AlreadyExists, "The trophy already exists")
	}

	return &model.CreateTrophyResponse{Trophy: model.ConvertTrophy(t)}, nil
}

func (d *trophyDomain) GetList(
	ctx context.Context, req *model.GetTrophiesRequest,
) (*model.GetTrophiesResponse, error) {
	trophies, err := d.trophyRepo.GetAll(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get list of trophies: %v", err)
		return nil, errorx.Unknown
	}

	converted := []model.Trophy{}
	for i := range trophies {
		converted = append(converted, model.ConvertTrophy(&trophies[i]))
	}

	return &model.GetTrophiesResponse{Trophies: converted}, nil
}

func (d *trophyDomain) Award(
	ctx context.Context, req *model.AwardTrophyRequest,
) (*model.AwardTrophyResponse, error) {
	if req.UserID == "" || req.TrophyID == "" {
		return nil, errorx.New(errorx.BadRequest, "Require a user id and a trophy id")
	}

	if _, err := d.userRepo.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get the user: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.trophyManager.Award(ctx, req.UserID, req.TrophyID, req.Amount); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found trophy")
		}

		xcontext.Logger(ctx).Errorf("Cannot award the trophy: %v", err)
		return nil, errorx.Unknown
	}

	return &model.AwardTrophyResponse{}, nil
}

func (d *trophyDomain) GetUserTrophies(
	ctx context.Context, req *model.GetUserTrophiesRequest,
) (*model.GetUserTrophiesResponse, error) {
	userID := req.UserID
	if userID == "" {
		userID = xcontext.RequestUserID(ctx)
	}

	if userID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty user id")
	}

	userTrophies, err := d.trophyRepo.GetUserTrophies(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get trophies of user %s: %v", userID, err)
		return nil, errorx.Unknown
	}

	converted := []model.UserTrophy{}
	for i := range userTrophies {
		converted = append(converted, model.ConvertUserTrophy(&userTrophies[i]))
	}

	return &model.GetUserTrophiesResponse{Trophies: converted}, nil
}

const defaultLeaderboardLimit = 10

// GetLeaderboard ranks users by the total quantity of badges they hold,
// optionally restricted to a single trophy.
func (d *trophyDomain) GetLeaderboard(
	ctx context.Context, req *model.GetTrophyLeaderboardRequest,
) (*model.GetTrophyLeaderboardResponse, error) {
	if req.TrophyID != "" {
		if _, err := d.trophyRepo.GetByID(ctx, req.TrophyID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errorx.New(errorx.NotFound, "Not found trophy")
			}

			xcontext.Logger(ctx).Errorf("Cannot get the trophy: %v", err)
			return nil, errorx.Unknown
		}
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultLeaderboardLimit
	}

	entries, err := d.trophyRepo.GetLeaderboard(ctx, req.TrophyID, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get the trophy leaderboard: %v", err)
		return nil, errorx.Unknown
	}

	userIDs := []string{}
	for _, entry := range entries {
		userIDs = append(userIDs, entry.UserID)
	}

	users, err := d.userRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get users of the leaderboard: %v", err)
		return nil, errorx.Unknown
	}

	userMap := map[string]*entity.User{}
	for i := range users {
		userMap[users[i].ID] = &users[i]
	}

	converted := []model.TrophyLeaderboardEntry{}
	for _, entry := range entries {
		user, ok := userMap[entry.UserID]
		if !ok {
			continue
		}

		converted = append(converted, model.TrophyLeaderboardEntry{
			User:  model.ConvertUser(user, ""),
			Total: entry.Total,
		})
	}

	return &model.GetTrophyLeaderboardResponse{Entries: converted}, nil
}
