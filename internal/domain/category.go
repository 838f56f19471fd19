package domain

import (
	"context"

	"github.com/questmaster/backend/internal/entity"
	"github.com/questmaster/backend/internal/model"
	"github.com/questmaster/backend/internal/repository"
	"github.com/questmaster/backend/pkg/api/discord"
	"github.com/questmaster/backend/pkg/enum"
	"github.com/questmaster/backend/pkg/errorx"
	"github.com/questmaster/backend/pkg/xcontext"
)

type CategoryDomain interface {
	Create(ctx context.Context, req *model.CreateCategoryRequest) (*model.CreateCategoryResponse, error)
	GetList(ctx context.Context, req *model.GetCategoriesRequest) (*model.GetCategoriesResponse, error)
	Delete(ctx context.Context, req *model.DeleteCategoryRequest) (*model.DeleteCategoryResponse, error)
}

type categoryDomain struct {
	categoryRepo    repository.CategoryRepository
	discordEndpoint discord.IEndpoint
}

func NewCategoryDomain(
	categoryRepo repository.CategoryRepository,
	discordEndpoint discord.IEndpoint,
) *categoryDomain {
	return &categoryDomain{
		categoryRepo:    categoryRepo,
		discordEndpoint: discordEndpoint,
	}
}

// Create registers an existing Discord category channel as a placement
// target for game channels.
func (d *categoryDomain) Create(
	ctx context.Context, req *model.CreateCategoryRequest,
) (*model.CreateCategoryResponse, error) {
	if req.ID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty id")
	}

	gameType, err := enum.ToEnum[entity.GameType](req.Type)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid game type %s", req.Type)
	}

	if _, err := d.discordEndpoint.GetChannel(ctx, req.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get the category channel: %v", err)
		return nil, errorx.New(errorx.NotFound, "Not found category channel")
	}

	category := &entity.Category{
		Base: entity.Base{ID: req.ID},
		Type: gameType,
	}

	if err := d.categoryRepo.Create(ctx, category); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create the category: %v", err)
		return nil, errorx.New(errorx.AlreadyExists, "The category already exists")
	}

	return &model.CreateCategoryResponse{Category: model.ConvertCategory(category)}, nil
}

func (d *categoryDomain) GetList(
	ctx context.Context, req *model.GetCategoriesRequest,
) (*model.GetCategoriesResponse, error) {
	categories, err := d.categoryRepo.GetAll(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get list of categories: %v", err)
		return nil, errorx.Unknown
	}

	converted := []model.Category{}
	for i := range categories {
		converted = append(converted, model.ConvertCategory(&categories[i]))
	}

	return &model.GetCategoriesResponse{Categories: converted}, nil
}

func (d *categoryDomain) Delete(
	ctx context.Context, req *model.DeleteCategoryRequest,
) (*model.DeleteCategoryResponse, error) {
	if req.ID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty id")
	}

	if err := d.categoryRepo.Delete(ctx, req.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete the category: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteCategoryResponse{}, nil
}
