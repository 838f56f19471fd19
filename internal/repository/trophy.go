package repository

import (
	"context"

	"github.com/questmaster/backend/internal/entity"
	"github.com/questmaster/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type TrophyLeaderboardEntry struct {
	UserID string
	Total  int
}

type TrophyRepository interface {
	Create(ctx context.Context, trophy *entity.Trophy) error
	GetByID(ctx context.Context, id string) (*entity.Trophy, error)
	GetAll(ctx context.Context) ([]entity.Trophy, error)
	Delete(ctx context.Context, id string) error

	GetUserTrophy(ctx context.Context, userID, trophyID string) (*entity.UserTrophy, error)
	GetUserTrophies(ctx context.Context, userID string) ([]entity.UserTrophy, error)
	CreateUserTrophy(ctx context.Context, userTrophy *entity.UserTrophy) error
	IncreaseQuantity(ctx context.Context, userID, trophyID string, amount int) error
	GetLeaderboard(ctx context.Context, trophyID string, limit int) ([]TrophyLeaderboardEntry, error)
}

type trophyRepository struct{}

func NewTrophyRepository() *trophyRepository {
	return &trophyRepository{}
}

func (r *trophyRepository) Create(ctx context.Context, trophy *entity.Trophy) error {
	return xcontext.DB(ctx).Create(trophy).Error
}

func (r *trophyRepository) GetByID(ctx context.Context, id string) (*entity.Trophy, error) {
	result := &entity.Trophy{}
	if err := xcontext.DB(ctx).Take(result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *trophyRepository) GetAll(ctx context.Context) ([]entity.Trophy, error) {
	result := []entity.Trophy{}
	if err := xcontext.DB(ctx).Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *trophyRepository) Delete(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Delete(&entity.Trophy{}, "id=?", id).Error
}

func (r *trophyRepository) GetUserTrophy(ctx context.Context, userID, trophyID string) (*entity.UserTrophy, error) {
	result := &entity.UserTrophy{}
	err := xcontext.DB(ctx).
		Where("user_id=? AND trophy_id=?", userID, trophyID).
		Take(result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *trophyRepository) GetUserTrophies(ctx context.Context, userID string) ([]entity.UserTrophy, error) {
	result := []entity.UserTrophy{}
	err := xcontext.DB(ctx).
		Preload("Trophy").
		Where("user_id=?", userID).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *trophyRepository) CreateUserTrophy(ctx context.Context, userTrophy *entity.UserTrophy) error {
	return xcontext.DB(ctx).Create(userTrophy).Error
}

func (r *trophyRepository) IncreaseQuantity(ctx context.Context, userID, trophyID string, amount int) error {
	return xcontext.DB(ctx).Model(&entity.UserTrophy{}).
		Where("user_id=? AND trophy_id=?", userID, trophyID).
		Update("quantity", gorm.Expr("quantity+?", amount)).Error
}

func (r *trophyRepository) GetLeaderboard(
	ctx context.Context, trophyID string, limit int,
) ([]TrophyLeaderboardEntry, error) {
	db := xcontext.DB(ctx).Model(&entity.UserTrophy{}).
		Select("user_id, SUM(quantity) AS total")

	if trophyID != "" {
		db = db.Where("trophy_id=?", trophyID)
	}

	result := []TrophyLeaderboardEntry{}
	err := db.Group("user_id").
		Order("total DESC").
		Limit(limit).
		Scan(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
