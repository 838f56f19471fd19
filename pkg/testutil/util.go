package testutil

import (
	"context"
	"time"

	"github.com/questmaster/backend/config"
	"github.com/questmaster/backend/migration"
	"github.com/questmaster/backend/pkg/logger"
	"github.com/questmaster/backend/pkg/xcontext"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	cfg := config.Configs{
		Env:         "test",
		SiteBaseURL: "http://localhost:8080",
		Auth: config.AuthConfigs{
			TokenSecret:     "secret",
			AccessTokenName: "access_token",
			Expiration:      time.Minute,
		},
		Discord: config.DiscordConfigs{
			GuildID:               "guild",
			PostsChannelID:        "posts-channel",
			LogsChannelID:         "logs-channel",
			GMRoleID:              "gm-role",
			PlayerRolePermissions: "563362270661696",
			GMRolePermissions:     "2815265163693120",
		},
		Trophy: config.TrophyConfigs{
			OneshotGM:      "badge-os-gm",
			OneshotPlayer:  "badge-os",
			CampaignGM:     "badge-campaign-gm",
			CampaignPlayer: "badge-campaign",
		},
		LogLevel: logger.SILENCE,
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(cfg.LogLevel))
	ctx = xcontext.WithDB(ctx, db)

	if err := migration.AutoMigrate(ctx); err != nil {
		panic(err)
	}

	return ctx
}

func MockContextWithUserID(userID string) context.Context {
	return xcontext.WithRequestUserID(MockContext(), userID)
}
