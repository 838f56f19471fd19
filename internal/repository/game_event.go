package repository

import (
	"context"

	"github.com/questmaster/backend/internal/entity"
	"github.com/questmaster/backend/pkg/xcontext"
)

type GameEventFilter struct {
	GameID string
	Action entity.EventActionType
	Offset int
	Limit  int
}

type GameEventRepository interface {
	Create(ctx context.Context, event *entity.GameEvent) error
	GetList(ctx context.Context, filter GameEventFilter) ([]entity.GameEvent, error)
}

type gameEventRepository struct{}

func NewGameEventRepository() *gameEventRepository {
	return &gameEventRepository{}
}

func (r *gameEventRepository) Create(ctx context.Context, event *entity.GameEvent) error {
	return xcontext.DB(ctx).Create(event).Error
}

func (r *gameEventRepository) GetList(ctx context.Context, filter GameEventFilter) ([]entity.GameEvent, error) {
	db := xcontext.DB(ctx).Model(&entity.GameEvent{})
	if filter.GameID != "" {
		db = db.Where("game_id=?", filter.GameID)
	}

	if filter.Action != "" {
		db = db.Where("action=?", filter.Action)
	}

	if filter.Limit > 0 {
		db = db.Offset(filter.Offset).Limit(filter.Limit)
	}

	result := []entity.GameEvent{}
	if err := db.Order("created_at DESC").Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}
