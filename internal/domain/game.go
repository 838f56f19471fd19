package domain

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	slugify "github.com/gosimple/slug"
	"github.com/google/uuid"
	"github.com/questmaster/backend/internal/domain/trophy"
	"github.com/questmaster/backend/internal/entity"
	"github.com/questmaster/backend/internal/model"
	"github.com/questmaster/backend/internal/repository"
	"github.com/questmaster/backend/pkg/api/discord"
	"github.com/questmaster/backend/pkg/enum"
	"github.com/questmaster/backend/pkg/errorx"
	"github.com/questmaster/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type GameDomain interface {
	Create(ctx context.Context, req *model.CreateGameRequest) (*model.CreateGameResponse, error)
	Get(ctx context.Context, req *model.GetGameRequest) (*model.GetGameResponse, error)
	GetList(ctx context.Context, req *model.GetGamesRequest) (*model.GetGamesResponse, error)
	Update(ctx context.Context, req *model.UpdateGameRequest) (*model.UpdateGameResponse, error)
	Delete(ctx context.Context, req *model.DeleteGameRequest) (*model.DeleteGameResponse, error)
	Publish(ctx context.Context, req *model.PublishGameRequest) (*model.PublishGameResponse, error)
	Close(ctx context.Context, req *model.CloseGameRequest) (*model.CloseGameResponse, error)
	Reopen(ctx context.Context, req *model.ReopenGameRequest) (*model.ReopenGameResponse, error)
	Archive(ctx context.Context, req *model.ArchiveGameRequest) (*model.ArchiveGameResponse, error)
	Clone(ctx context.Context, req *model.CloneGameRequest) (*model.CloneGameResponse, error)
	Register(ctx context.Context, req *model.RegisterGameRequest) (*model.RegisterGameResponse, error)
	Unregister(ctx context.Context, req *model.UnregisterGameRequest) (*model.UnregisterGameResponse, error)
	Alert(ctx context.Context, req *model.AlertGameRequest) (*model.AlertGameResponse, error)
}

type gameDomain struct {
	gameRepo        repository.GameRepository
	userRepo        repository.UserRepository
	sessionRepo     repository.GameSessionRepository
	eventRepo       repository.GameEventRepository
	categoryRepo    repository.CategoryRepository
	trophyManager   *trophy.Manager
	discordEndpoint discord.IEndpoint
}

func NewGameDomain(
	gameRepo repository.GameRepository,
	userRepo repository.UserRepository,
	sessionRepo repository.GameSessionRepository,
	eventRepo repository.GameEventRepository,
	categoryRepo repository.CategoryRepository,
	trophyManager *trophy.Manager,
	discordEndpoint discord.IEndpoint,
) *gameDomain {
	return &gameDomain{
		gameRepo:        gameRepo,
		userRepo:        userRepo,
		sessionRepo:     sessionRepo,
		eventRepo:       eventRepo,
		categoryRepo:    categoryRepo,
		trophyManager:   trophyManager,
		discordEndpoint: discordEndpoint,
	}
}

func (d *gameDomain) Create(
	ctx context.Context, req *model.CreateGameRequest,
) (*model.CreateGameResponse, error) {
	if req.Name == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty name")
	}

	gameType, err := enum.ToEnum[entity.GameType](req.Type)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid game type %s", req.Type)
	}

	restriction, err := enum.ToEnum[entity.RestrictionType](req.Restriction)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid restriction %s", req.Restriction)
	}

	if req.SystemID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty system")
	}

	gm, err := d.requireGM(ctx)
	if err != nil {
		return nil, err
	}

	partySize := req.PartySize
	if partySize <= 0 {
		partySize = 4
	}

	// Every special event game runs as a oneshot.
	if req.SpecialEventID != "" {
		gameType = entity.Oneshot
	}

	game := &entity.Game{
		Base:            entity.Base{ID: uuid.NewString()},
		Name:            req.Name,
		Type:            gameType,
		Status:          entity.GameDraft,
		GMID:            gm.ID,
		SystemID:        sql.NullString{Valid: true, String: req.SystemID},
		VttID:           toNullString(req.VttID),
		SpecialEventID:  toNullString(req.SpecialEventID),
		Description:     req.Description,
		Length:          req.Length,
		SessionLength:   req.SessionLength,
		Frequency:       req.Frequency,
		Characters:      req.Characters,
		Classification:  req.Classification,
		Ambience:        req.Ambience,
		Complement:      req.Complement,
		Restriction:     restriction,
		RestrictionTags: req.RestrictionTags,
		PartySize:       partySize,
		PartySelection:  req.PartySelection,
		Pregen:          req.Pregen,
		ImageURL:        req.ImageURL,
		Date:            toNullTime(req.Date),
	}

	game.Slug, err = d.generateSlug(ctx, req.Name, gm.Username)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate the slug: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.gameRepo.Create(ctx, game); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create the game: %v", err)
		return nil, errorx.Unknown
	}

	err = d.logEvent(ctx, entity.EventCreate, game.ID, gm.ID,
		fmt.Sprintf("Annonce créée avec le statut %s.", game.Status))
	if err != nil {
		return nil, err
	}

	xcontext.WithCommitDBTransaction(ctx)

	resp, err := d.convertGame(ctx, game.ID)
	if err != nil {
		return nil, err
	}

	return &model.CreateGameResponse{Game: resp}, nil
}

func (d *gameDomain) Get(
	ctx context.Context, req *model.GetGameRequest,
) (*model.GetGameResponse, error) {
	var game *entity.Game
	var err error
	switch {
	case req.ID != "":
		game, err = d.gameRepo.GetByID(ctx, req.ID)
	case req.Slug != "":
		game, err = d.gameRepo.GetBySlug(ctx, req.Slug)
	default:
		return nil, errorx.New(errorx.BadRequest, "Require either an id or a slug")
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found game")
		}

		xcontext.Logger(ctx).Errorf("Cannot get the game: %v", err)
		return nil, errorx.Unknown
	}

	resp, err := d.convertGame(ctx, game.ID)
	if err != nil {
		return nil, err
	}

	return &model.GetGameResponse{Game: resp}, nil
}

func (d *gameDomain) GetList(
	ctx context.Context, req *model.GetGamesRequest,
) (*model.GetGamesResponse, error) {
	filter := repository.GameFilter{
		Name:           req.Name,
		GMID:           req.GMID,
		PlayerID:       req.PlayerID,
		SystemID:       req.SystemID,
		VttID:          req.VttID,
		SpecialEventID: req.SpecialEventID,
		Offset:         req.Offset,
		Limit:          req.Limit,
	}

	// Drafts are private to their GM until published, admins see them all.
	userID := xcontext.RequestUserID(ctx)
	filter.DraftsVisibleTo = userID
	if userID != "" {
		if user, err := d.userRepo.GetByID(ctx, userID); err == nil && user.Role == entity.AdminRole {
			filter.AllDrafts = true
		}
	}

	if req.Status != "" {
		status, err := enum.ToEnum[entity.GameStatusType](req.Status)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid status %s", req.Status)
		}
		filter.Status = status
	}

	if req.Type != "" {
		gameType, err := enum.ToEnum[entity.GameType](req.Type)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid game type %s", req.Type)
		}
		filter.Type = gameType
	}

	if req.Restriction != "" {
		restriction, err := enum.ToEnum[entity.RestrictionType](req.Restriction)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid restriction %s", req.Restriction)
		}
		filter.Restriction = restriction
	}

	games, err := d.gameRepo.GetList(ctx, filter)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get list of games: %v", err)
		return nil, errorx.Unknown
	}

	converted := []model.Game{}
	for i := range games {
		game, err := d.convertGame(ctx, games[i].ID)
		if err != nil {
			return nil, err
		}

		converted = append(converted, game)
	}

	return &model.GetGamesResponse{Games: converted}, nil
}

func (d *gameDomain) Update(
	ctx context.Context, req *model.UpdateGameRequest,
) (*model.UpdateGameResponse, error) {
	game, err := d.loadGame(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if err := d.requireGameManager(ctx, game); err != nil {
		return nil, err
	}

	// Name and type are frozen once the game left the draft status.
	if game.Status == entity.GameDraft {
		if req.Name != "" {
			game.Name = req.Name
		}

		game.SpecialEventID = toNullString(req.SpecialEventID)
	}

	if req.SystemID != "" {
		game.SystemID = sql.NullString{Valid: true, String: req.SystemID}
	}

	if req.Restriction != "" {
		restriction, err := enum.ToEnum[entity.RestrictionType](req.Restriction)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid restriction %s", req.Restriction)
		}
		game.Restriction = restriction
	}

	game.VttID = toNullString(req.VttID)
	game.Description = req.Description
	game.Length = req.Length
	game.SessionLength = req.SessionLength
	game.Frequency = req.Frequency
	game.Characters = req.Characters
	game.Classification = req.Classification
	game.Ambience = req.Ambience
	game.Complement = req.Complement
	game.RestrictionTags = req.RestrictionTags
	game.PartySelection = req.PartySelection
	game.Pregen = req.Pregen
	game.ImageURL = req.ImageURL
	if req.Date != nil {
		game.Date = toNullTime(req.Date)
	}
	if req.PartySize > 0 {
		game.PartySize = req.PartySize
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.gameRepo.Update(ctx, game); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update the game: %v", err)
		return nil, errorx.Unknown
	}

	err = d.logEvent(ctx, entity.EventEdit, game.ID, xcontext.RequestUserID(ctx),
		"Le contenu de l'annonce a été édité.")
	if err != nil {
		return nil, err
	}

	xcontext.WithCommitDBTransaction(ctx)

	refreshAnnouncement(ctx, d.discordEndpoint, game, d.nextSession(ctx, game.ID))

	resp, err := d.convertGame(ctx, game.ID)
	if err != nil {
		return nil, err
	}

	return &model.UpdateGameResponse{Game: resp}, nil
}

func (d *gameDomain) Delete(
	ctx context.Context, req *model.DeleteGameRequest,
) (*model.DeleteGameResponse, error) {
	game, err := d.loadGame(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if err := d.requireGameManager(ctx, game); err != nil {
		return nil, err
	}

	// Published games are archived, not deleted, so their history survives.
	if game.Status != entity.GameDraft {
		return nil, errorx.New(errorx.BadRequest, "Only a draft game can be deleted")
	}

	if err := d.gameRepo.Delete(ctx, game.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete the game: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteGameResponse{}, nil
}

func (d *gameDomain) Publish(
	ctx context.Context, req *model.PublishGameRequest,
) (*model.PublishGameResponse, error) {
	game, err := d.loadGame(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if err := d.requireGameManager(ctx, game); err != nil {
		return nil, err
	}

	if game.MsgID != "" {
		return nil, errorx.New(errorx.BadRequest, "Game is already published")
	}

	playerCount, err := d.gameRepo.CountPlayers(ctx, game.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count players: %v", err)
		return nil, errorx.Unknown
	}

	if playerCount >= int64(game.PartySize) {
		return nil, errorx.New(errorx.BadRequest, "Cannot publish a full game")
	}

	if req.Silent {
		game.Status = entity.GameClosed
	} else {
		game.Status = entity.GameOpen
	}

	createdResources := false
	if game.RoleID == "" || game.ChannelID == "" {
		if err := d.setupGameResources(ctx, game); err != nil {
			return nil, err
		}
		createdResources = true
	}

	if !req.Silent {
		cfg := xcontext.Configs(ctx)
		embed := buildAnnouncementEmbed(game, d.nextSession(ctx, game.ID), cfg.SiteBaseURL)
		msg, err := d.discordEndpoint.SendMessage(ctx, cfg.Discord.PostsChannelID, "", embed)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot send the announcement: %v", err)
			if createdResources {
				d.rollbackGameResources(ctx, game)
			}
			return nil, errorx.Unknown
		}

		game.MsgID = msg.ID
	}

	description := "L'annonce a été publiée et ouverte."
	if req.Silent {
		description = "L'annonce a été ouverte silencieusement."
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.gameRepo.Update(ctx, game); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update the game: %v", err)
		if createdResources {
			d.rollbackGameResources(ctx, game)
		}
		return nil, errorx.Unknown
	}

	err = d.logEvent(ctx, entity.EventEdit, game.ID, xcontext.RequestUserID(ctx), description)
	if err != nil {
		if createdResources {
			d.rollbackGameResources(ctx, game)
		}
		return nil, err
	}

	xcontext.WithCommitDBTransaction(ctx)

	resp, err := d.convertGame(ctx, game.ID)
	if err != nil {
		return nil, err
	}

	return &model.PublishGameResponse{Game: resp}, nil
}

func (d *gameDomain) Close(
	ctx context.Context, req *model.CloseGameRequest,
) (*model.CloseGameResponse, error) {
	game, err := d.changeStatus(ctx, req.ID, entity.GameClosed)
	if err != nil {
		return nil, err
	}

	return &model.CloseGameResponse{Game: *game}, nil
}

func (d *gameDomain) Reopen(
	ctx context.Context, req *model.ReopenGameRequest,
) (*model.ReopenGameResponse, error) {
	game, err := d.changeStatus(ctx, req.ID, entity.GameOpen)
	if err != nil {
		return nil, err
	}

	return &model.ReopenGameResponse{Game: *game}, nil
}

func (d *gameDomain) changeStatus(
	ctx context.Context, id string, status entity.GameStatusType,
) (*model.Game, error) {
	game, err := d.loadGame(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := d.requireGameManager(ctx, game); err != nil {
		return nil, err
	}

	if game.Status == entity.GameArchived {
		return nil, errorx.New(errorx.BadRequest, "Cannot change status of an archived game")
	}

	game.Status = status

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.gameRepo.Update(ctx, game); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update the game: %v", err)
		return nil, errorx.Unknown
	}

	err = d.logEvent(ctx, entity.EventEdit, game.ID, xcontext.RequestUserID(ctx),
		fmt.Sprintf("Le statut de l'annonce à changé en %s.", status))
	if err != nil {
		return nil, err
	}

	xcontext.WithCommitDBTransaction(ctx)

	refreshAnnouncement(ctx, d.discordEndpoint, game, d.nextSession(ctx, game.ID))

	resp, err := d.convertGame(ctx, game.ID)
	if err != nil {
		return nil, err
	}

	return &resp, nil
}

func (d *gameDomain) Archive(
	ctx context.Context, req *model.ArchiveGameRequest,
) (*model.ArchiveGameResponse, error) {
	game, err := d.loadGame(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if err := d.requireGameManager(ctx, game); err != nil {
		return nil, err
	}

	if game.Status != entity.GameClosed {
		return nil, errorx.New(errorx.BadRequest, "Only a closed game can be archived")
	}

	game.Status = entity.GameArchived

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.gameRepo.Update(ctx, game); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update the game: %v", err)
		return nil, errorx.Unknown
	}

	err = d.logEvent(ctx, entity.EventEdit, game.ID, xcontext.RequestUserID(ctx),
		fmt.Sprintf("Le statut de l'annonce à changé en %s.", entity.GameArchived))
	if err != nil {
		return nil, err
	}

	description := "Annonce archivée."
	if req.WithTrophies {
		d.awardGameTrophies(ctx, game)
		description += " Badges distribués."
	} else {
		description += " Badges non-distribués."
	}

	if err := d.logEvent(ctx, entity.EventDelete, game.ID, xcontext.RequestUserID(ctx), description); err != nil {
		return nil, err
	}

	xcontext.WithCommitDBTransaction(ctx)

	d.cleanupGameResources(ctx, game)
	d.deleteAnnouncement(ctx, game)

	resp, err := d.convertGame(ctx, game.ID)
	if err != nil {
		return nil, err
	}

	return &model.ArchiveGameResponse{Game: resp}, nil
}

// Clone creates a new draft copy of a game under the same GM, with a fresh
// slug and no Discord resources.
func (d *gameDomain) Clone(
	ctx context.Context, req *model.CloneGameRequest,
) (*model.CloneGameResponse, error) {
	game, err := d.loadGame(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if err := d.requireGameManager(ctx, game); err != nil {
		return nil, err
	}

	gm, err := d.userRepo.GetByID(ctx, game.GMID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get the gm: %v", err)
		return nil, errorx.Unknown
	}

	clone := *game
	clone.Base = entity.Base{ID: uuid.NewString()}
	clone.Status = entity.GameDraft
	clone.ChannelID = ""
	clone.RoleID = ""
	clone.MsgID = ""

	clone.Slug, err = d.generateSlug(ctx, clone.Name, gm.Username)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate the slug: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.gameRepo.Create(ctx, &clone); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create the cloned game: %v", err)
		return nil, errorx.Unknown
	}

	err = d.logEvent(ctx, entity.EventCreate, clone.ID, xcontext.RequestUserID(ctx),
		fmt.Sprintf("Annonce créée avec le statut %s.", clone.Status))
	if err != nil {
		return nil, err
	}

	xcontext.WithCommitDBTransaction(ctx)

	resp, err := d.convertGame(ctx, clone.ID)
	if err != nil {
		return nil, err
	}

	return &model.CloneGameResponse{Game: resp}, nil
}

func (d *gameDomain) Register(
	ctx context.Context, req *model.RegisterGameRequest,
) (*model.RegisterGameResponse, error) {
	userID := req.UserID
	if userID == "" {
		userID = xcontext.RequestUserID(ctx)
	}

	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "Require an authenticated user")
	}

	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get the user: %v", err)
		return nil, errorx.Unknown
	}

	// Registering someone else, or bypassing the checks, is reserved to
	// the GM of the game and admins.
	game, err := d.loadGame(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Force || user.ID != xcontext.RequestUserID(ctx) {
		if err := d.requireGameManager(ctx, game); err != nil {
			return nil, err
		}
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	game, err = d.gameRepo.GetForUpdate(ctx, game.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found game")
		}

		xcontext.Logger(ctx).Errorf("Cannot lock the game: %v", err)
		return nil, errorx.Unknown
	}

	registered, err := d.gameRepo.HasPlayer(ctx, game.ID, user.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check the registration: %v", err)
		return nil, errorx.Unknown
	}

	if registered {
		return nil, errorx.New(errorx.DuplicateRegistration, "User is already registered for this game")
	}

	count, err := d.gameRepo.CountPlayers(ctx, game.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count players: %v", err)
		return nil, errorx.Unknown
	}

	if count >= int64(game.PartySize) && !req.Force {
		return nil, errorx.New(errorx.GameFull, "Game is full").
			With("max_players", game.PartySize)
	}

	if game.Status != entity.GameOpen && !req.Force {
		return nil, errorx.New(errorx.GameClosed, "Game is closed for registration")
	}

	err = d.gameRepo.AddPlayer(ctx, &entity.GamePlayer{GameID: game.ID, UserID: user.ID})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot add the player: %v", err)
		return nil, errorx.Unknown
	}

	autoClosed := false
	if count+1 >= int64(game.PartySize) && !game.PartySelection && game.Status != entity.GameClosed {
		game.Status = entity.GameClosed
		if err := d.gameRepo.Update(ctx, game); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot close the game: %v", err)
			return nil, errorx.Unknown
		}

		err = d.logEvent(ctx, entity.EventEdit, game.ID, "",
			fmt.Sprintf("Annonce fermée automatiquement après avoir atteint le nombre max de joueur·euses (%d).", game.PartySize))
		if err != nil {
			return nil, err
		}

		autoClosed = true
	}

	description := fmt.Sprintf("<@%s> s'est inscrit sur l'annonce.", user.ID)
	if req.Force {
		description = fmt.Sprintf("<@%s> a été inscrit à l'annonce par le MJ ou un admin.", user.ID)
	}

	if err := d.logEvent(ctx, entity.EventRegister, game.ID, user.ID, description); err != nil {
		return nil, err
	}

	xcontext.WithCommitDBTransaction(ctx)

	// The locked row carries no associations, reload before rendering.
	game, err = d.gameRepo.GetByID(ctx, game.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get the game: %v", err)
		return nil, errorx.Unknown
	}

	if game.RoleID != "" {
		if err := d.discordEndpoint.GiveRole(ctx, user.ID, game.RoleID); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot give the game role to user %s: %v", user.ID, err)
		}
	}

	if autoClosed {
		refreshAnnouncement(ctx, d.discordEndpoint, game, d.nextSession(ctx, game.ID))
	}

	if game.ChannelID != "" {
		_, err := d.discordEndpoint.SendMessage(ctx, game.ChannelID, "", buildRegisterEmbed(user.ID))
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot send the registration embed: %v", err)
		}
	}

	resp, err := d.convertGame(ctx, game.ID)
	if err != nil {
		return nil, err
	}

	return &model.RegisterGameResponse{Game: resp}, nil
}

func (d *gameDomain) Unregister(
	ctx context.Context, req *model.UnregisterGameRequest,
) (*model.UnregisterGameResponse, error) {
	userID := req.UserID
	if userID == "" {
		userID = xcontext.RequestUserID(ctx)
	}

	game, err := d.loadGame(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if userID != xcontext.RequestUserID(ctx) {
		if err := d.requireGameManager(ctx, game); err != nil {
			return nil, err
		}
	}

	reopened := false
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	// Same row lock as Register, so a concurrent registration cannot slip
	// between the removal and the reopen decision.
	game, err = d.gameRepo.GetForUpdate(ctx, game.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found game")
		}

		xcontext.Logger(ctx).Errorf("Cannot lock the game: %v", err)
		return nil, errorx.Unknown
	}

	registered, err := d.gameRepo.HasPlayer(ctx, game.ID, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check the registration: %v", err)
		return nil, errorx.Unknown
	}

	if !registered {
		return nil, errorx.New(errorx.BadRequest, "User is not registered for this game")
	}

	if err := d.gameRepo.RemovePlayer(ctx, game.ID, userID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot remove the player: %v", err)
		return nil, errorx.Unknown
	}

	count, err := d.gameRepo.CountPlayers(ctx, game.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count players: %v", err)
		return nil, errorx.Unknown
	}

	if game.Status == entity.GameClosed && count < int64(game.PartySize) && !game.PartySelection {
		game.Status = entity.GameOpen
		if err := d.gameRepo.Update(ctx, game); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot reopen the game: %v", err)
			return nil, errorx.Unknown
		}

		err = d.logEvent(ctx, entity.EventEdit, game.ID, "",
			"Annonce rouverte automatiquement après désinscription.")
		if err != nil {
			return nil, err
		}

		reopened = true
	}

	err = d.logEvent(ctx, entity.EventUnregister, game.ID, userID,
		fmt.Sprintf("<@%s> a été désinscrit de l'annonce.", userID))
	if err != nil {
		return nil, err
	}

	xcontext.WithCommitDBTransaction(ctx)

	// The locked row carries no associations, reload before rendering.
	game, err = d.gameRepo.GetByID(ctx, game.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get the game: %v", err)
		return nil, errorx.Unknown
	}

	if game.RoleID != "" {
		if err := d.discordEndpoint.TakeRole(ctx, userID, game.RoleID); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot take the game role from user %s: %v", userID, err)
		}
	}

	if reopened {
		refreshAnnouncement(ctx, d.discordEndpoint, game, d.nextSession(ctx, game.ID))
	}

	resp, err := d.convertGame(ctx, game.ID)
	if err != nil {
		return nil, err
	}

	return &model.UnregisterGameResponse{Game: resp}, nil
}

// Alert forwards a participant report about a game to the admin logs
// channel.
func (d *gameDomain) Alert(
	ctx context.Context, req *model.AlertGameRequest,
) (*model.AlertGameResponse, error) {
	if req.Message == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty message")
	}

	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "Require an authenticated user")
	}

	game, err := d.loadGame(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	cfg := xcontext.Configs(ctx)
	embed := buildAlertEmbed(game, userID, req.Message, cfg.SiteBaseURL)
	if _, err := d.discordEndpoint.SendMessage(ctx, cfg.Discord.LogsChannelID, "", embed); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot send the alert: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.logEvent(ctx, entity.EventAlert, game.ID, userID, "Un signalement a été envoyé aux admins."); err != nil {
		return nil, err
	}

	return &model.AlertGameResponse{}, nil
}

func (d *gameDomain) loadGame(ctx context.Context, id string) (*entity.Game, error) {
	if id == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty id")
	}

	game, err := d.gameRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found game")
		}

		xcontext.Logger(ctx).Errorf("Cannot get the game: %v", err)
		return nil, errorx.Unknown
	}

	return game, nil
}

// requireGM loads the requesting user and checks they can run games.
func (d *gameDomain) requireGM(ctx context.Context) (*entity.User, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "Require an authenticated user")
	}

	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get the user: %v", err)
		return nil, errorx.Unknown
	}

	if user.Role != entity.GMRole && user.Role != entity.AdminRole {
		return nil, errorx.New(errorx.PermissionDenied, "Only a GM can create a game")
	}

	return user, nil
}

// requireGameManager checks the requesting user is the GM of the game or an
// admin.
func (d *gameDomain) requireGameManager(ctx context.Context, game *entity.Game) error {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return errorx.New(errorx.Unauthenticated, "Require an authenticated user")
	}

	if userID == game.GMID {
		return nil
	}

	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorx.New(errorx.PermissionDenied, "Permission denied")
		}

		xcontext.Logger(ctx).Errorf("Cannot get the user: %v", err)
		return errorx.Unknown
	}

	if user.Role != entity.AdminRole {
		return errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	return nil
}

func (d *gameDomain) generateSlug(ctx context.Context, name, gmName string) (string, error) {
	base := slugify.Make(fmt.Sprintf("%s-par-%s", name, gmName))
	existing, err := d.gameRepo.GetSlugsLike(ctx, base)
	if err != nil {
		return "", err
	}

	taken := map[string]bool{}
	for _, s := range existing {
		taken[s] = true
	}

	result := base
	for i := 2; taken[result]; i++ {
		result = fmt.Sprintf("%s-%d", base, i)
	}

	return result, nil
}

func (d *gameDomain) logEvent(
	ctx context.Context, action entity.EventActionType, gameID, userID, description string,
) error {
	err := d.eventRepo.Create(ctx, &entity.GameEvent{
		Base:        entity.Base{ID: uuid.NewString()},
		Action:      action,
		GameID:      gameID,
		UserID:      toNullString(userID),
		Description: description,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot log the game event: %v", err)
		return errorx.Unknown
	}

	return nil
}

// setupGameResources creates the Discord role and channel of a game. The
// role is named after the slug, the channel goes under the least loaded
// category of the game type.
func (d *gameDomain) setupGameResources(ctx context.Context, game *entity.Game) error {
	cfg := xcontext.Configs(ctx)

	role, err := d.discordEndpoint.CreateRole(ctx, "PJ_"+game.Slug, cfg.Discord.PlayerRolePermissions)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create the game role: %v", err)
		return errorx.Unknown
	}

	game.RoleID = role.ID

	category, err := d.categoryRepo.GetSmallestByType(ctx, game.Type)
	if err != nil {
		d.rollbackGameResources(ctx, game)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorx.New(errorx.NotFound, "No category available for %s games", game.Type)
		}

		xcontext.Logger(ctx).Errorf("Cannot get the category: %v", err)
		return errorx.Unknown
	}

	overwrites := []discord.PermissionOverwrite{
		{ID: game.RoleID, Type: discord.OverwriteRole, Allow: cfg.Discord.PlayerRolePermissions},
		// Hide the channel from @everyone.
		{ID: cfg.Discord.GuildID, Type: discord.OverwriteRole, Deny: "1024"},
		{ID: game.GMID, Type: discord.OverwriteMember, Allow: cfg.Discord.GMRolePermissions},
	}

	channel, err := d.discordEndpoint.CreateChannel(ctx, strings.ToLower(game.Slug), category.ID, overwrites)
	if err != nil {
		d.rollbackGameResources(ctx, game)
		xcontext.Logger(ctx).Errorf("Cannot create the game channel: %v", err)
		return errorx.Unknown
	}

	game.ChannelID = channel.ID

	if err := d.categoryRepo.IncreaseSize(ctx, category.ID, 1); err != nil {
		d.rollbackGameResources(ctx, game)
		xcontext.Logger(ctx).Errorf("Cannot increase the category size: %v", err)
		return errorx.Unknown
	}

	welcome := buildChannelWelcomeEmbed(game, cfg.SiteBaseURL)
	if _, err := d.discordEndpoint.SendMessage(ctx, game.ChannelID, "", welcome); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot send the welcome message: %v", err)
	}

	return nil
}

func (d *gameDomain) rollbackGameResources(ctx context.Context, game *entity.Game) {
	if game.ChannelID != "" {
		if err := d.discordEndpoint.DeleteChannel(ctx, game.ChannelID); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot delete the channel %s: %v", game.ChannelID, err)
		} else {
			game.ChannelID = ""
		}
	}

	if game.RoleID != "" {
		if err := d.discordEndpoint.DeleteRole(ctx, game.RoleID); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot delete the role %s: %v", game.RoleID, err)
		} else {
			game.RoleID = ""
		}
	}
}

func (d *gameDomain) awardGameTrophies(ctx context.Context, game *entity.Game) {
	cfg := xcontext.Configs(ctx)
	trophyMap := map[entity.GameType][2]string{
		entity.Oneshot:  {cfg.Trophy.OneshotGM, cfg.Trophy.OneshotPlayer},
		entity.Campaign: {cfg.Trophy.CampaignGM, cfg.Trophy.CampaignPlayer},
	}

	trophies, ok := trophyMap[game.Type]
	if !ok {
		return
	}

	if err := d.trophyManager.Award(ctx, game.GMID, trophies[0], 1); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot award the gm trophy for game %s: %v", game.ID, err)
		return
	}

	players, err := d.gameRepo.GetPlayers(ctx, game.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get players of game %s: %v", game.ID, err)
		return
	}

	for _, player := range players {
		if err := d.trophyManager.Award(ctx, player.ID, trophies[1], 1); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot award the player trophy for game %s: %v", game.ID, err)
		}
	}
}

// cleanupGameResources removes the Discord channel and role of an archived
// game. Each deletion failure is logged and skipped, archiving never blocks
// on Discord.
func (d *gameDomain) cleanupGameResources(ctx context.Context, game *entity.Game) {
	d.adjustCategorySize(ctx, game)

	if game.ChannelID != "" {
		if err := d.discordEndpoint.DeleteChannel(ctx, game.ChannelID); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot delete the channel of game %s: %v", game.ID, err)
		}
	}

	if game.RoleID != "" {
		if err := d.discordEndpoint.DeleteRole(ctx, game.RoleID); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot delete the role of game %s: %v", game.ID, err)
		}
	}
}

func (d *gameDomain) adjustCategorySize(ctx context.Context, game *entity.Game) {
	if game.ChannelID == "" {
		return
	}

	channel, err := d.discordEndpoint.GetChannel(ctx, game.ChannelID)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot get the channel of game %s: %v", game.ID, err)
		return
	}

	if channel.ParentID == "" {
		return
	}

	if err := d.categoryRepo.IncreaseSize(ctx, channel.ParentID, -1); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot decrease the category size: %v", err)
	}
}

func (d *gameDomain) deleteAnnouncement(ctx context.Context, game *entity.Game) {
	if game.MsgID == "" {
		return
	}

	cfg := xcontext.Configs(ctx)
	if err := d.discordEndpoint.DeleteMessage(ctx, cfg.Discord.PostsChannelID, game.MsgID); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot delete the announcement of game %s: %v", game.ID, err)
		return
	}

	game.MsgID = ""
	if err := d.gameRepo.Update(ctx, game); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot clear the announcement id of game %s: %v", game.ID, err)
	}
}

// nextSession returns the earliest session of a game, used as the announced
// date. A game with no session yet simply has no date field in its embed.
func (d *gameDomain) nextSession(ctx context.Context, gameID string) *entity.GameSession {
	sessions, err := d.sessionRepo.GetByGameID(ctx, gameID)
	if err != nil || len(sessions) == 0 {
		return nil
	}

	return &sessions[0]
}

func (d *gameDomain) convertGame(ctx context.Context, gameID string) (model.Game, error) {
	game, err := d.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get the game: %v", err)
		return model.Game{}, errorx.Unknown
	}

	players, err := d.gameRepo.GetPlayers(ctx, game.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get players of game %s: %v", game.ID, err)
		return model.Game{}, errorx.Unknown
	}

	sessions, err := d.sessionRepo.GetByGameID(ctx, game.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get sessions of game %s: %v", game.ID, err)
		return model.Game{}, errorx.Unknown
	}

	return model.ConvertGame(game, players, sessions), nil
}

func toNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}

	return sql.NullString{Valid: true, String: s}
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}

	return sql.NullTime{Valid: true, Time: *t}
}
