package testutil

import (
	"context"
	"database/sql"

	"github.com/questmaster/backend/internal/entity"
	"github.com/questmaster/backend/internal/repository"
)

var (
	Admin = entity.User{
		Base:     entity.Base{ID: "100000000000000001"},
		Username: "alice",
		SlugName: "alice",
		Role:     entity.AdminRole,
	}

	GM1 = entity.User{
		Base:     entity.Base{ID: "100000000000000002"},
		Username: "bob",
		SlugName: "bob",
		Role:     entity.GMRole,
	}

	Player1 = entity.User{
		Base:     entity.Base{ID: "100000000000000003"},
		Username: "carol",
		SlugName: "carol",
		Role:     entity.UserRole,
	}

	Player2 = entity.User{
		Base:     entity.Base{ID: "100000000000000004"},
		Username: "dave",
		SlugName: "dave",
		Role:     entity.UserRole,
	}

	Player3 = entity.User{
		Base:     entity.Base{ID: "100000000000000005"},
		Username: "erin",
		SlugName: "erin",
		Role:     entity.UserRole,
	}

	System1 = entity.System{
		Base: entity.Base{ID: "donjons-et-dragons"},
		Name: "Donjons et Dragons",
	}

	Vtt1 = entity.Vtt{
		Base: entity.Base{ID: "foundry"},
		Name: "Foundry",
	}

	SpecialEvent1 = entity.SpecialEvent{
		Base:   entity.Base{ID: "halloween"},
		Name:   "Halloween",
		Emoji:  ":jack_o_lantern:",
		Color:  15158332,
		Active: true,
	}

	CategoryOneshot = entity.Category{
		Base: entity.Base{ID: "category-oneshot"},
		Type: entity.Oneshot,
	}

	CategoryCampaign = entity.Category{
		Base: entity.Base{ID: "category-campaign"},
		Type: entity.Campaign,
	}

	// Game1 is open for registration with two free seats.
	Game1 = entity.Game{
		Base:        entity.Base{ID: "game1"},
		Name:        "La tombe des rois",
		Slug:        "la-tombe-des-rois-par-bob",
		Type:        entity.Oneshot,
		Status:      entity.GameOpen,
		GMID:        GM1.ID,
		SystemID:    sql.NullString{Valid: true, String: System1.ID},
		Restriction: entity.AllAudiences,
		PartySize:   2,
		ChannelID:   "game1-channel",
		RoleID:      "game1-role",
		MsgID:       "game1-msg",
	}

	// Game2 is an unpublished campaign draft.
	Game2 = entity.Game{
		Base:        entity.Base{ID: "game2"},
		Name:        "Les cendres du nord",
		Slug:        "les-cendres-du-nord-par-bob",
		Type:        entity.Campaign,
		Status:      entity.GameDraft,
		GMID:        GM1.ID,
		SystemID:    sql.NullString{Valid: true, String: System1.ID},
		Restriction: entity.Sixteen,
		PartySize:   4,
	}
)

// InsertFixtures loads the sample dataset into the context database.
func InsertFixtures(ctx context.Context) {
	userRepo := repository.NewUserRepository()
	for _, user := range []entity.User{Admin, GM1, Player1, Player2, Player3} {
		user := user
		if err := userRepo.Create(ctx, &user); err != nil {
			panic(err)
		}
	}

	if err := repository.NewSystemRepository().Create(ctx, &System1); err != nil {
		panic(err)
	}

	if err := repository.NewVttRepository().Create(ctx, &Vtt1); err != nil {
		panic(err)
	}

	if err := repository.NewSpecialEventRepository().Create(ctx, &SpecialEvent1); err != nil {
		panic(err)
	}

	categoryRepo := repository.NewCategoryRepository()
	for _, category := range []entity.Category{CategoryOneshot, CategoryCampaign} {
		category := category
		if err := categoryRepo.Create(ctx, &category); err != nil {
			panic(err)
		}
	}

	gameRepo := repository.NewGameRepository()
	for _, game := range []entity.Game{Game1, Game2} {
		game := game
		if err := gameRepo.Create(ctx, &game); err != nil {
			panic(err)
		}
	}
}
