package repository

import (
	"context"

	"github.com/questmaster/backend/internal/entity"
	"github.com/questmaster/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type GameFilter struct {
	Status         entity.GameStatusType
	Type           entity.GameType
	Restriction    entity.RestrictionType
	Name           string
	GMID           string
	PlayerID       string
	SystemID       string
	VttID          string
	SpecialEventID string
	Offset         int
	Limit          int

	// Draft rows are only listed for their own GM, unless AllDrafts is set.
	// An empty DraftsVisibleTo hides drafts entirely.
	DraftsVisibleTo string
	AllDrafts       bool
}

type GameRepository interface {
	Create(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Game, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Game, error)
	GetList(ctx context.Context, filter GameFilter) ([]entity.Game, error)
	Update(ctx context.Context, game *entity.Game) error
	Delete(ctx context.Context, id string) error
	GetSlugsLike(ctx context.Context, prefix string) ([]string, error)

	AddPlayer(ctx context.Context, player *entity.GamePlayer) error
	RemovePlayer(ctx context.Context, gameID, userID string) error
	GetPlayers(ctx context.Context, gameID string) ([]entity.User, error)
	CountPlayers(ctx context.Context, gameID string) (int64, error)
	HasPlayer(ctx context.Context, gameID, userID string) (bool, error)
}

type gameRepository struct{}

func NewGameRepository() *gameRepository {
	return &gameRepository{}
}

func (r *gameRepository) Create(ctx context.Context, game *entity.Game) error {
	return xcontext.DB(ctx).Create(game).Error
}

func (r *gameRepository) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	result := &entity.Game{}
	err := xcontext.DB(ctx).
		Preload("GM").
		Preload("System").
		Preload("Vtt").
		Preload("SpecialEvent").
		Take(result, "id=?", id).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *gameRepository) GetBySlug(ctx context.Context, slug string) (*entity.Game, error) {
	result := &entity.Game{}
	err := xcontext.DB(ctx).
		Preload("GM").
		Preload("System").
		Preload("Vtt").
		Preload("SpecialEvent").
		Take(result, "slug=?", slug).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// GetForUpdate takes a row lock on the game until the current transaction
// ends. Callers must run inside a transaction. The lock clause is only
// supported by mysql; sqlite serializes writers on its own.
func (r *gameRepository) GetForUpdate(ctx context.Context, id string) (*entity.Game, error) {
	db := xcontext.DB(ctx)
	if db.Dialector.Name() == "mysql" {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	result := &entity.Game{}
	if err := db.Take(result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *gameRepository) GetList(ctx context.Context, filter GameFilter) ([]entity.Game, error) {
	db := xcontext.DB(ctx).Model(&entity.Game{}).
		Preload("GM").
		Preload("System").
		Preload("Vtt").
		Preload("SpecialEvent")

	if filter.Status != "" {
		db = db.Where("games.status=?", filter.Status)
	}

	if filter.Type != "" {
		db = db.Where("games.type=?", filter.Type)
	}

	if filter.Restriction != "" {
		db = db.Where("games.restriction=?", filter.Restriction)
	}

	if filter.Name != "" {
		db = db.Where("games.name LIKE ?", "%"+filter.Name+"%")
	}

	if filter.GMID != "" {
		db = db.Where("games.gm_id=?", filter.GMID)
	}

	if filter.SystemID != "" {
		db = db.Where("games.system_id=?", filter.SystemID)
	}

	if filter.VttID != "" {
		db = db.Where("games.vtt_id=?", filter.VttID)
	}

	if filter.SpecialEventID != "" {
		db = db.Where("games.special_event_id=?", filter.SpecialEventID)
	}

	if !filter.AllDrafts {
		if filter.DraftsVisibleTo != "" {
			db = db.Where("games.status <> ? OR games.gm_id = ?",
				entity.GameDraft, filter.DraftsVisibleTo)
		} else {
			db = db.Where("games.status <> ?", entity.GameDraft)
		}
	}

	if filter.PlayerID != "" {
		db = db.Joins("JOIN game_players ON game_players.game_id=games.id").
			Where("game_players.user_id=?", filter.PlayerID)
	}

	if filter.Limit > 0 {
		db = db.Offset(filter.Offset).Limit(filter.Limit)
	}

	result := []entity.Game{}
	if err := db.Order("games.created_at DESC").Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *gameRepository) Update(ctx context.Context, game *entity.Game) error {
	return xcontext.DB(ctx).
		Omit("GM", "System", "Vtt", "SpecialEvent").
		Save(game).Error
}

func (r *gameRepository) Delete(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Delete(&entity.Game{}, "id=?", id).Error
}

func (r *gameRepository) GetSlugsLike(ctx context.Context, prefix string) ([]string, error) {
	result := []string{}
	err := xcontext.DB(ctx).Model(&entity.Game{}).
		Where("slug LIKE ?", prefix+"%").
		Pluck("slug", &result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *gameRepository) AddPlayer(ctx context.Context, player *entity.GamePlayer) error {
	return xcontext.DB(ctx).Create(player).Error
}

func (r *gameRepository) RemovePlayer(ctx context.Context, gameID, userID string) error {
	return xcontext.DB(ctx).
		Where("game_id=? AND user_id=?", gameID, userID).
		Delete(&entity.GamePlayer{}).Error
}

func (r *gameRepository) GetPlayers(ctx context.Context, gameID string) ([]entity.User, error) {
	result := []entity.User{}
	err := xcontext.DB(ctx).Model(&entity.User{}).
		Joins("JOIN game_players ON game_players.user_id=users.id").
		Where("game_players.game_id=?", gameID).
		Order("game_players.created_at ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *gameRepository) CountPlayers(ctx context.Context, gameID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.GamePlayer{}).
		Where("game_id=?", gameID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *gameRepository) HasPlayer(ctx context.Context, gameID, userID string) (bool, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.GamePlayer{}).
		Where("game_id=? AND user_id=?", gameID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
