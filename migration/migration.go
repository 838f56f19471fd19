package migration

import (
	"context"

	"github.com/questmaster/backend/internal/entity"
	"github.com/questmaster/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

// When this migrator is called, no need to call other migrators.
func AutoMigrate(ctx context.Context) error {
	if err := xcontext.DB(ctx).AutoMigrate(
		&entity.User{},
		&entity.System{},
		&entity.Vtt{},
		&entity.SpecialEvent{},
		&entity.Game{},
		&entity.GamePlayer{},
		&entity.GameSession{},
		&entity.GameEvent{},
		&entity.Trophy{},
		&entity.UserTrophy{},
		&entity.Category{},
	); err != nil {
		return err
	}

	return seedTrophies(ctx)
}

func seedTrophies(ctx context.Context) error {
	cfg := xcontext.Configs(ctx).Trophy
	trophies := []entity.Trophy{
		{Base: entity.Base{ID: cfg.OneshotPlayer}, Name: "Badge OS", Icon: "/static/img/os.png"},
		{Base: entity.Base{ID: cfg.OneshotGM}, Name: "Badge OS GM", Icon: "/static/img/os_gm.png"},
		{Base: entity.Base{ID: cfg.CampaignPlayer}, Name: "Badge Campagne", Icon: "/static/img/campaign.png"},
		{Base: entity.Base{ID: cfg.CampaignGM}, Name: "Badge Campagne GM", Icon: "/static/img/campaign_gm.png"},
	}

	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&trophies).Error
}
