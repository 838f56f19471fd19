package repository

import (
	"context"

	"github.com/questmaster/backend/internal/entity"
	"github.com/questmaster/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	GetAll(ctx context.Context) ([]entity.Category, error)
	GetSmallestByType(ctx context.Context, gameType entity.GameType) (*entity.Category, error)
	IncreaseSize(ctx context.Context, id string, delta int) error
	Delete(ctx context.Context, id string) error
}

type categoryRepository struct{}

func NewCategoryRepository() *categoryRepository {
	return &categoryRepository{}
}

func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	return xcontext.DB(ctx).Create(category).Error
}

func (r *categoryRepository) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	result := &entity.Category{}
	if err := xcontext.DB(ctx).Take(result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *categoryRepository) GetAll(ctx context.Context) ([]entity.Category, error) {
	result := []entity.Category{}
	if err := xcontext.DB(ctx).Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

// GetSmallestByType returns the category of the given type holding the
// fewest game channels. New channels are placed there to spread them out.
func (r *categoryRepository) GetSmallestByType(
	ctx context.Context, gameType entity.GameType,
) (*entity.Category, error) {
	result := &entity.Category{}
	err := xcontext.DB(ctx).
		Where("type=?", gameType).
		Order("size ASC").
		Take(result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// IncreaseSize adjusts the channel count of a category. A negative delta
// never drives the size below zero.
func (r *categoryRepository) IncreaseSize(ctx context.Context, id string, delta int) error {
	if delta >= 0 {
		return xcontext.DB(ctx).Model(&entity.Category{}).
			Where("id=?", id).
			Update("size", gorm.Expr("size+?", delta)).Error
	}

	return xcontext.DB(ctx).Model(&entity.Category{}).
		Where("id=?", id).
		Update("size", gorm.Expr("CASE WHEN size+? < 0 THEN 0 ELSE size+? END", delta, delta)).Error
}

func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Delete(&entity.Category{}, "id=?", id).Error
}
