package domain

import (
	"context"
	"testing"
	"time"

	"github.com/questmaster/backend/internal/domain/trophy"
	"github.com/questmaster/backend/internal/entity"
	"github.com/questmaster/backend/internal/model"
	"github.com/questmaster/backend/internal/repository"
	"github.com/questmaster/backend/pkg/api/discord"
	"github.com/questmaster/backend/pkg/errorx"
	"github.com/questmaster/backend/pkg/testutil"
	"github.com/questmaster/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newTestGameDomain(endpoint *testutil.MockDiscordEndpoint) GameDomain {
	if endpoint == nil {
		endpoint = &testutil.MockDiscordEndpoint{}
	}

	trophyRepo := repository.NewTrophyRepository()
	return NewGameDomain(
		repository.NewGameRepository(),
		repository.NewUserRepository(),
		repository.NewGameSessionRepository(),
		repository.NewGameEventRepository(),
		repository.NewCategoryRepository(),
		trophy.NewManager(trophyRepo),
		endpoint,
	)
}

func Test_gameDomain_Create(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.GM1.ID)
	testutil.InsertFixtures(ctx)

	gameDomain := newTestGameDomain(nil)

	date := time.Date(2024, 4, 5, 21, 0, 0, 0, time.UTC)
	resp, err := gameDomain.Create(ctx, &model.CreateGameRequest{
		Name:        "La tombe des rois",
		Type:        "oneshot",
		SystemID:    testutil.System1.ID,
		Restriction: "all",
		Date:        &date,
	})
	require.NoError(t, err)
	require.Equal(t, "draft", resp.Game.Status)
	require.Equal(t, 4, resp.Game.PartySize)
	require.NotNil(t, resp.Game.Date)
	require.True(t, date.Equal(*resp.Game.Date))

	// The slug of the fixture game is already taken, a numeric suffix is
	// appended.
	require.Equal(t, "la-tombe-des-rois-par-bob-2", resp.Game.Slug)

	events, err := repository.NewGameEventRepository().GetList(ctx, repository.GameEventFilter{
		GameID: resp.Game.ID,
	})
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, entity.EventCreate, events[0].Action)
	require.Equal(t, "Annonce créée avec le statut draft.", events[0].Description)
}

func Test_gameDomain_Create_requiresGM(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Player1.ID)
	testutil.InsertFixtures(ctx)

	gameDomain := newTestGameDomain(nil)

	_, err := gameDomain.Create(ctx, &model.CreateGameRequest{
		Name:        "Partie interdite",
		Type:        "oneshot",
		SystemID:    testutil.System1.ID,
		Restriction: "all",
	})
	require.Error(t, err)
	require.Equal(t, errorx.PermissionDenied, err.(errorx.Error).Code)
}

func Test_gameDomain_GetList_draftVisibility(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertFixtures(ctx)

	gameDomain := newTestGameDomain(nil)

	// Anonymous visitors never see drafts.
	resp, err := gameDomain.GetList(ctx, &model.GetGamesRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Games, 1)
	require.Equal(t, testutil.Game1.ID, resp.Games[0].ID)

	// The GM sees its own draft.
	gmCtx := xcontext.WithRequestUserID(ctx, testutil.GM1.ID)
	resp, err = gameDomain.GetList(gmCtx, &model.GetGamesRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Games, 2)

	// Another player does not.
	playerCtx := xcontext.WithRequestUserID(ctx, testutil.Player1.ID)
	resp, err = gameDomain.GetList(playerCtx, &model.GetGamesRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Games, 1)

	// Admins see every draft.
	adminCtx := xcontext.WithRequestUserID(ctx, testutil.Admin.ID)
	resp, err = gameDomain.GetList(adminCtx, &model.GetGamesRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Games, 2)
}

func Test_gameDomain_GetList_filters(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.GM1.ID)
	testutil.InsertFixtures(ctx)

	gameDomain := newTestGameDomain(nil)

	resp, err := gameDomain.GetList(ctx, &model.GetGamesRequest{Name: "tombe"})
	require.NoError(t, err)
	require.Len(t, resp.Games, 1)
	require.Equal(t, testutil.Game1.ID, resp.Games[0].ID)

	resp, err = gameDomain.GetList(ctx, &model.GetGamesRequest{Type: "campaign"})
	require.NoError(t, err)
	require.Len(t, resp.Games, 1)
	require.Equal(t, testutil.Game2.ID, resp.Games[0].ID)

	resp, err = gameDomain.GetList(ctx, &model.GetGamesRequest{Restriction: "16+"})
	require.NoError(t, err)
	require.Len(t, resp.Games, 1)
	require.Equal(t, testutil.Game2.ID, resp.Games[0].ID)

	_, err = gameDomain.GetList(ctx, &model.GetGamesRequest{Restriction: "no-such"})
	require.Error(t, err)
	require.Equal(t, errorx.BadRequest, err.(errorx.Error).Code)
}

func Test_gameDomain_Delete_onlyDraft(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.GM1.ID)
	testutil.InsertFixtures(ctx)

	gameDomain := newTestGameDomain(nil)

	_, err := gameDomain.Delete(ctx, &model.DeleteGameRequest{ID: testutil.Game1.ID})
	require.Error(t, err)
	require.Equal(t, errorx.BadRequest, err.(errorx.Error).Code)

	_, err = gameDomain.Delete(ctx, &model.DeleteGameRequest{ID: testutil.Game2.ID})
	require.NoError(t, err)
}

func Test_gameDomain_Publish(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.GM1.ID)
	testutil.InsertFixtures(ctx)

	gameDomain := newTestGameDomain(nil)

	resp, err := gameDomain.Publish(ctx, &model.PublishGameRequest{ID: testutil.Game2.ID})
	require.NoError(t, err)
	require.Equal(t, "open", resp.Game.Status)
	require.NotEmpty(t, resp.Game.RoleID)
	require.NotEmpty(t, resp.Game.ChannelID)
	require.NotEmpty(t, resp.Game.MsgID)

	// The channel went into the campaign category.
	category, err := repository.NewCategoryRepository().GetByID(ctx, testutil.CategoryCampaign.ID)
	require.NoError(t, err)
	require.Equal(t, 1, category.Size)
}

func Test_gameDomain_Publish_alreadyPublished(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.GM1.ID)
	testutil.InsertFixtures(ctx)

	gameDomain := newTestGameDomain(nil)

	_, err := gameDomain.Publish(ctx, &model.PublishGameRequest{ID: testutil.Game1.ID})
	require.Error(t, err)
	require.Equal(t, "Game is already published", err.Error())
}

func Test_gameDomain_Publish_fullGame(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.GM1.ID)
	testutil.InsertFixtures(ctx)

	gameRepo := repository.NewGameRepository()
	require.NoError(t, gameRepo.AddPlayer(ctx, &entity.GamePlayer{
		GameID: testutil.Game2.ID, UserID: testutil.Player1.ID,
	}))
	require.NoError(t, gameRepo.AddPlayer(ctx, &entity.GamePlayer{
		GameID: testutil.Game2.ID, UserID: testutil.Player2.ID,
	}))
	require.NoError(t, gameRepo.AddPlayer(ctx, &entity.GamePlayer{
		GameID: testutil.Game2.ID, UserID: testutil.Player3.ID,
	}))
	require.NoError(t, gameRepo.AddPlayer(ctx, &entity.GamePlayer{
		GameID: testutil.Game2.ID, UserID: testutil.Admin.ID,
	}))

	gameDomain := newTestGameDomain(nil)

	_, err := gameDomain.Publish(ctx, &model.PublishGameRequest{ID: testutil.Game2.ID})
	require.Error(t, err)
	require.Equal(t, "Cannot publish a full game", err.Error())
}

func Test_gameDomain_Publish_silent(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.GM1.ID)
	testutil.InsertFixtures(ctx)

	gameDomain := newTestGameDomain(nil)

	resp, err := gameDomain.Publish(ctx, &model.PublishGameRequest{
		ID:     testutil.Game2.ID,
		Silent: true,
	})
	require.NoError(t, err)
	require.Equal(t, "closed", resp.Game.Status)
	require.Empty(t, resp.Game.MsgID)
}

func Test_gameDomain_CloseAndReopen(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.GM1.ID)
	testutil.InsertFixtures(ctx)

	gameDomain := newTestGameDomain(nil)

	closeResp, err := gameDomain.Close(ctx, &model.CloseGameRequest{ID: testutil.Game1.ID})
	require.NoError(t, err)
	require.Equal(t, "closed", closeResp.Game.Status)

	reopenResp, err := gameDomain.Reopen(ctx, &model.ReopenGameRequest{ID: testutil.Game1.ID})
	require.NoError(t, err)
	require.Equal(t, "open", reopenResp.Game.Status)
}

func Test_gameDomain_Close_permissionDenied(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Player1.ID)
	testutil.InsertFixtures(ctx)

	gameDomain := newTestGameDomain(nil)

	_, err := gameDomain.Close(ctx, &model.CloseGameRequest{ID: testutil.Game1.ID})
	require.Error(t, err)
	require.Equal(t, "Permission denied", err.Error())
}

func Test_gameDomain_Archive(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.GM1.ID)
	testutil.InsertFixtures(ctx)

	gameRepo := repository.NewGameRepository()
	require.NoError(t, gameRepo.AddPlayer(ctx, &entity.GamePlayer{
		GameID: testutil.Game1.ID, UserID: testutil.Player1.ID,
	}))

	gameDomain := newTestGameDomain(nil)

	// Archiving an open game is refused.
	_, err := gameDomain.Archive(ctx, &model.ArchiveGameRequest{ID: testutil.Game1.ID})
	require.Error(t, err)
	require.Equal(t, "Only a closed game can be archived", err.Error())

	_, err = gameDomain.Close(ctx, &model.CloseGameRequest{ID: testutil.Game1.ID})
	require.NoError(t, err)

	resp, err := gameDomain.Archive(ctx, &model.ArchiveGameRequest{
		ID:           testutil.Game1.ID,
		WithTrophies: true,
	})
	require.NoError(t, err)
	require.Equal(t, "archived", resp.Game.Status)

	// The GM and the player each got their oneshot badge.
	trophyRepo := repository.NewTrophyRepository()
	cfg := xcontext.Configs(ctx).Trophy
	gmTrophy, err := trophyRepo.GetUserTrophy(ctx, testutil.GM1.ID, cfg.OneshotGM)
	require.NoError(t, err)
	require.Equal(t, 1, gmTrophy.Quantity)

	playerTrophy, err := trophyRepo.GetUserTrophy(ctx, testutil.Player1.ID, cfg.OneshotPlayer)
	require.NoError(t, err)
	require.Equal(t, 1, playerTrophy.Quantity)

	events, err := repository.NewGameEventRepository().GetList(ctx, repository.GameEventFilter{
		GameID: testutil.Game1.ID,
		Action: entity.EventDelete,
	})
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, "Annonce archivée. Badges distribués.", events[0].Description)
}

func Test_gameDomain_Archive_withoutTrophies(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.GM1.ID)
	testutil.InsertFixtures(ctx)

	gameDomain := newTestGameDomain(nil)

	_, err := gameDomain.Close(ctx, &model.CloseGameRequest{ID: testutil.Game1.ID})
	require.NoError(t, err)

	_, err = gameDomain.Archive(ctx, &model.ArchiveGameRequest{ID: testutil.Game1.ID})
	require.NoError(t, err)

	events, err := repository.NewGameEventRepository().GetList(ctx, repository.GameEventFilter{
		GameID: testutil.Game1.ID,
		Action: entity.EventDelete,
	})
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, "Annonce archivée. Badges non-distribués.", events[0].Description)
}

func Test_gameDomain_Register(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Player1.ID)
	testutil.InsertFixtures(ctx)

	gameDomain := newTestGameDomain(nil)

	resp, err := gameDomain.Register(ctx, &model.RegisterGameRequest{ID: testutil.Game1.ID})
	require.NoError(t, err)
	require.Len(t, resp.Game.Players, 1)
	require.Equal(t, testutil.Player1.ID, resp.Game.Players[0].ID)
}

func Test_gameDomain_Register_duplicate(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Player1.ID)
	testutil.InsertFixtures(ctx)

	gameDomain := newTestGameDomain(nil)

	_, err := gameDomain.Register(ctx, &model.RegisterGameRequest{ID: testutil.Game1.ID})
	require.NoError(t, err)

	_, err = gameDomain.Register(ctx, &model.RegisterGameRequest{ID: testutil.Game1.ID})
	require.Error(t, err)
	require.Equal(t, errorx.DuplicateRegistration, err.(errorx.Error).Code)
}

func Test_gameDomain_Register_autoClose(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Player1.ID)
	testutil.InsertFixtures(ctx)

	gameDomain := newTestGameDomain(nil)

	_, err := gameDomain.Register(ctx, &model.RegisterGameRequest{ID: testutil.Game1.ID})
	require.NoError(t, err)

	// The second registration fills the two-seat party and closes the game.
	ctx2 := xcontext.WithRequestUserID(ctx, testutil.Player2.ID)
	resp, err := gameDomain.Register(ctx2, &model.RegisterGameRequest{ID: testutil.Game1.ID})
	require.NoError(t, err)
	require.Equal(t, "closed", resp.Game.Status)

	events, err := repository.NewGameEventRepository().GetList(ctx, repository.GameEventFilter{
		GameID: testutil.Game1.ID,
		Action: entity.EventEdit,
	})
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t,
		"Annonce fermée automatiquement après avoir atteint le nombre max de joueur·euses (2).",
		events[0].Description)

	// The capacity check runs before the status check, a third registration
	// bounces on the full party.
	ctx3 := xcontext.WithRequestUserID(ctx, testutil.Player3.ID)
	_, err = gameDomain.Register(ctx3, &model.RegisterGameRequest{ID: testutil.Game1.ID})
	require.Error(t, err)
	require.Equal(t, errorx.GameFull, err.(errorx.Error).Code)
}

func Test_gameDomain_Register_closedNotFull(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.GM1.ID)
	testutil.InsertFixtures(ctx)

	gameDomain := newTestGameDomain(nil)

	_, err := gameDomain.Close(ctx, &model.CloseGameRequest{ID: testutil.Game1.ID})
	require.NoError(t, err)

	playerCtx := xcontext.WithRequestUserID(ctx, testutil.Player1.ID)
	_, err = gameDomain.Register(playerCtx, &model.RegisterGameRequest{ID: testutil.Game1.ID})
	require.Error(t, err)
	require.Equal(t, errorx.GameClosed, err.(errorx.Error).Code)
}

func Test_gameDomain_Register_full(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Player1.ID)
	testutil.InsertFixtures(ctx)

	// With party selection the game stays open once full, the capacity
	// check alone refuses the extra registration.
	gameRepo := repository.NewGameRepository()
	game, err := gameRepo.GetByID(ctx, testutil.Game1.ID)
	require.NoError(t, err)
	game.PartySelection = true
	require.NoError(t, gameRepo.Update(ctx, game))

	gameDomain := newTestGameDomain(nil)

	_, err = gameDomain.Register(ctx, &model.RegisterGameRequest{ID: testutil.Game1.ID})
	require.NoError(t, err)

	ctx2 := xcontext.WithRequestUserID(ctx, testutil.Player2.ID)
	_, err = gameDomain.Register(ctx2, &model.RegisterGameRequest{ID: testutil.Game1.ID})
	require.NoError(t, err)

	ctx3 := xcontext.WithRequestUserID(ctx, testutil.Player3.ID)
	_, err = gameDomain.Register(ctx3, &model.RegisterGameRequest{ID: testutil.Game1.ID})
	require.Error(t, err)
	require.Equal(t, errorx.GameFull, err.(errorx.Error).Code)

	game, err = gameRepo.GetByID(ctx, testutil.Game1.ID)
	require.NoError(t, err)
	require.Equal(t, entity.GameOpen, game.Status)
}

func Test_gameDomain_Register_force(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Player1.ID)
	testutil.InsertFixtures(ctx)

	gameDomain := newTestGameDomain(nil)

	_, err := gameDomain.Register(ctx, &model.RegisterGameRequest{ID: testutil.Game1.ID})
	require.NoError(t, err)

	ctx2 := xcontext.WithRequestUserID(ctx, testutil.Player2.ID)
	_, err = gameDomain.Register(ctx2, &model.RegisterGameRequest{ID: testutil.Game1.ID})
	require.NoError(t, err)

	// A player cannot force a registration on a full game.
	ctx3 := xcontext.WithRequestUserID(ctx, testutil.Player3.ID)
	_, err = gameDomain.Register(ctx3, &model.RegisterGameRequest{
		ID:    testutil.Game1.ID,
		Force: true,
	})
	require.Error(t, err)
	require.Equal(t, "Permission denied", err.Error())

	// The GM can.
	gmCtx := xcontext.WithRequestUserID(ctx, testutil.GM1.ID)
	resp, err := gameDomain.Register(gmCtx, &model.RegisterGameRequest{
		ID:     testutil.Game1.ID,
		UserID: testutil.Player3.ID,
		Force:  true,
	})
	require.NoError(t, err)
	require.Len(t, resp.Game.Players, 3)
}

func Test_gameDomain_Unregister(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Player1.ID)
	testutil.InsertFixtures(ctx)

	gameDomain := newTestGameDomain(nil)

	_, err := gameDomain.Unregister(ctx, &model.UnregisterGameRequest{ID: testutil.Game1.ID})
	require.Error(t, err)
	require.Equal(t, "User is not registered for this game", err.Error())

	_, err = gameDomain.Register(ctx, &model.RegisterGameRequest{ID: testutil.Game1.ID})
	require.NoError(t, err)

	resp, err := gameDomain.Unregister(ctx, &model.UnregisterGameRequest{ID: testutil.Game1.ID})
	require.NoError(t, err)
	require.Empty(t, resp.Game.Players)
}

func Test_gameDomain_Unregister_autoReopen(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Player1.ID)
	testutil.InsertFixtures(ctx)

	gameDomain := newTestGameDomain(nil)

	_, err := gameDomain.Register(ctx, &model.RegisterGameRequest{ID: testutil.Game1.ID})
	require.NoError(t, err)

	ctx2 := xcontext.WithRequestUserID(ctx, testutil.Player2.ID)
	resp, err := gameDomain.Register(ctx2, &model.RegisterGameRequest{ID: testutil.Game1.ID})
	require.NoError(t, err)
	require.Equal(t, "closed", resp.Game.Status)

	unregResp, err := gameDomain.Unregister(ctx, &model.UnregisterGameRequest{ID: testutil.Game1.ID})
	require.NoError(t, err)
	require.Equal(t, "open", unregResp.Game.Status)
}

func Test_gameDomain_Clone(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.GM1.ID)
	testutil.InsertFixtures(ctx)

	gameDomain := newTestGameDomain(nil)

	resp, err := gameDomain.Clone(ctx, &model.CloneGameRequest{ID: testutil.Game1.ID})
	require.NoError(t, err)
	require.NotEqual(t, testutil.Game1.ID, resp.Game.ID)
	require.Equal(t, "draft", resp.Game.Status)
	require.Equal(t, "la-tombe-des-rois-par-bob-2", resp.Game.Slug)
	require.Empty(t, resp.Game.ChannelID)
	require.Empty(t, resp.Game.RoleID)
	require.Empty(t, resp.Game.MsgID)
}

func Test_gameDomain_Alert(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Player1.ID)
	testutil.InsertFixtures(ctx)

	sentTo := ""
	endpoint := &testutil.MockDiscordEndpoint{
		SendMessageFunc: func(ctx context.Context, channelID, content string, embed *discord.Embed) (discord.Message, error) {
			sentTo = channelID
			return discord.Message{ID: "message", ChannelID: channelID}, nil
		},
	}
	gameDomain := newTestGameDomain(endpoint)

	_, err := gameDomain.Alert(ctx, &model.AlertGameRequest{
		ID:      testutil.Game1.ID,
		Message: "Le MJ ne répond plus.",
	})
	require.NoError(t, err)
	require.Equal(t, xcontext.Configs(ctx).Discord.LogsChannelID, sentTo)

	events, err := repository.NewGameEventRepository().GetList(ctx, repository.GameEventFilter{
		GameID: testutil.Game1.ID,
		Action: entity.EventAlert,
	})
	require.NoError(t, err)
	require.Len(t, events, 1)
}
