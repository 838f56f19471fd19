package repository

import (
	"context"

	"github.com/questmaster/backend/internal/entity"
	"github.com/questmaster/backend/pkg/xcontext"
)

type SystemRepository interface {
	Create(ctx context.Context, system *entity.System) error
	GetByID(ctx context.Context, id string) (*entity.System, error)
	GetAll(ctx context.Context) ([]entity.System, error)
	Delete(ctx context.Context, id string) error
}

type systemRepository struct{}

func NewSystemRepository() *systemRepository {
	return &systemRepository{}
}

func (r *systemRepository) Create(ctx context.Context, system *entity.System) error {
	return xcontext.DB(ctx).Create(system).Error
}

func (r *systemRepository) GetByID(ctx context.Context, id string) (*entity.System, error) {
	result := &entity.System{}
	if err := xcontext.DB(ctx).Take(result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *systemRepository) GetAll(ctx context.Context) ([]entity.System, error) {
	result := []entity.System{}
	if err := xcontext.DB(ctx).Order("name ASC").Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *systemRepository) Delete(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Delete(&entity.System{}, "id=?", id).Error
}
