package repository

import (
	"context"

	"github.com/questmaster/backend/internal/entity"
	"github.com/questmaster/backend/pkg/xcontext"
)

type VttRepository interface {
	Create(ctx context.Context, vtt *entity.Vtt) error
	GetByID(ctx context.Context, id string) (*entity.Vtt, error)
	GetAll(ctx context.Context) ([]entity.Vtt, error)
	Delete(ctx context.Context, id string) error
}

type vttRepository struct{}

func NewVttRepository() *vttRepository {
	return &vttRepository{}
}

func (r *vttRepository) Create(ctx context.Context, vtt *entity.Vtt) error {
	return xcontext.DB(ctx).Create(vtt).Error
}

func (r *vttRepository) GetByID(ctx context.Context, id string) (*entity.Vtt, error) {
	result := &entity.Vtt{}
	if err := xcontext.DB(ctx).Take(result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *vttRepository) GetAll(ctx context.Context) ([]entity.Vtt, error) {
	result := []entity.Vtt{}
	if err := xcontext.DB(ctx).Order("name ASC").Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *vttRepository) Delete(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Delete(&entity.Vtt{}, "id=?", id).Error
}
