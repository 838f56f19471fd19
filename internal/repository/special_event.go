package repository

import (
	"context"

	"github.com/questmaster/backend/internal/entity"
	"github.com/questmaster/backend/pkg/xcontext"
)

type SpecialEventRepository interface {
	Create(ctx context.Context, event *entity.SpecialEvent) error
	GetByID(ctx context.Context, id string) (*entity.SpecialEvent, error)
	GetAll(ctx context.Context) ([]entity.SpecialEvent, error)
	GetActive(ctx context.Context) ([]entity.SpecialEvent, error)
	Update(ctx context.Context, event *entity.SpecialEvent) error
	Delete(ctx context.Context, id string) error
}

type specialEventRepository struct{}

func NewSpecialEventRepository() *specialEventRepository {
	return &specialEventRepository{}
}

func (r *specialEventRepository) Create(ctx context.Context, event *entity.SpecialEvent) error {
	return xcontext.DB(ctx).Create(event).Error
}

func (r *specialEventRepository) GetByID(ctx context.Context, id string) (*entity.SpecialEvent, error) {
	result := &entity.SpecialEvent{}
	if err := xcontext.DB(ctx).Take(result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *specialEventRepository) GetAll(ctx context.Context) ([]entity.SpecialEvent, error) {
	result := []entity.SpecialEvent{}
	if err := xcontext.DB(ctx).Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *specialEventRepository) GetActive(ctx context.Context) ([]entity.SpecialEvent, error) {
	result := []entity.SpecialEvent{}
	if err := xcontext.DB(ctx).Where("active=?", true).Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *specialEventRepository) Update(ctx context.Context, event *entity.SpecialEvent) error {
	return xcontext.DB(ctx).Save(event).Error
}

func (r *specialEventRepository) Delete(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Delete(&entity.SpecialEvent{}, "id=?", id).Error
}
