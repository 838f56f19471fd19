package trophy

import (
	"context"
	"errors"

	"github.com/questmaster/backend/internal/entity"
	"github.com/questmaster/backend/internal/repository"
	"gorm.io/gorm"
)

// Manager implements the trophy awarding rules shared by the trophy domain
// and the game archiving flow.
type Manager struct {
	trophyRepo repository.TrophyRepository
}

func NewManager(trophyRepo repository.TrophyRepository) *Manager {
	return &Manager{trophyRepo: trophyRepo}
}

// Award gives amount units of a trophy to a user. A unique trophy is only
// ever held once, awarding it again is a no-op. A non-positive amount counts
// as one.
func (m *Manager) Award(ctx context.Context, userID, trophyID string, amount int) error {
	trophy, err := m.trophyRepo.GetByID(ctx, trophyID)
	if err != nil {
		return err
	}

	if amount <= 0 {
		amount = 1
	}

	_, err = m.trophyRepo.GetUserTrophy(ctx, userID, trophyID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		quantity := amount
		if trophy.Unique {
			quantity = 1
		}

		return m.trophyRepo.CreateUserTrophy(ctx, &entity.UserTrophy{
			UserID:   userID,
			TrophyID: trophyID,
			Quantity: quantity,
		})
	}

	if trophy.Unique {
		// Already held, nothing to do.
		return nil
	}

	return m.trophyRepo.IncreaseQuantity(ctx, userID, trophyID, amount)
}
