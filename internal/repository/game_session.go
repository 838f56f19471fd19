package repository

import (
	"context"
	"time"

	"github.com/questmaster/backend/internal/entity"
	"github.com/questmaster/backend/pkg/xcontext"
)

type GameSessionRepository interface {
	Create(ctx context.Context, session *entity.GameSession) error
	GetByID(ctx context.Context, id string) (*entity.GameSession, error)
	GetByGameID(ctx context.Context, gameID string) ([]entity.GameSession, error)
	GetOverlapped(ctx context.Context, gameID string, start, end time.Time, excludedID string) ([]entity.GameSession, error)
	Update(ctx context.Context, session *entity.GameSession) error
	Delete(ctx context.Context, id string) error
}

type gameSessionRepository struct{}

func NewGameSessionRepository() *gameSessionRepository {
	return &gameSessionRepository{}
}

func (r *gameSessionRepository) Create(ctx context.Context, session *entity.GameSession) error {
	return xcontext.DB(ctx).Create(session).Error
}

func (r *gameSessionRepository) GetByID(ctx context.Context, id string) (*entity.GameSession, error) {
	result := &entity.GameSession{}
	if err := xcontext.DB(ctx).Take(result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *gameSessionRepository) GetByGameID(ctx context.Context, gameID string) ([]entity.GameSession, error) {
	result := []entity.GameSession{}
	err := xcontext.DB(ctx).
		Where("game_id=?", gameID).
		Order("start ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// GetOverlapped returns the sessions of a game whose time range intersects
// [start, end). Touching ranges do not count as an overlap.
func (r *gameSessionRepository) GetOverlapped(
	ctx context.Context, gameID string, start, end time.Time, excludedID string,
) ([]entity.GameSession, error) {
	db := xcontext.DB(ctx).
		Where("game_id=?", gameID).
		Where("NOT (`end` <= ? OR `start` >= ?)", start, end)

	if excludedID != "" {
		db = db.Where("id <> ?", excludedID)
	}

	result := []entity.GameSession{}
	if err := db.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *gameSessionRepository) Update(ctx context.Context, session *entity.GameSession) error {
	return xcontext.DB(ctx).Omit("Game").Save(session).Error
}

func (r *gameSessionRepository) Delete(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Delete(&entity.GameSession{}, "id=?", id).Error
}
