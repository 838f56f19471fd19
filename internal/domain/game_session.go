package domain

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/questmaster/backend/internal/entity"
	"github.com/questmaster/backend/internal/model"
	"github.com/questmaster/backend/internal/repository"
	"github.com/questmaster/backend/pkg/api/discord"
	"github.com/questmaster/backend/pkg/errorx"
	"github.com/questmaster/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type GameSessionDomain interface {
	Create(ctx context.Context, req *model.CreateGameSessionRequest) (*model.CreateGameSessionResponse, error)
	GetList(ctx context.Context, req *model.GetGameSessionsRequest) (*model.GetGameSessionsResponse, error)
	Update(ctx context.Context, req *model.UpdateGameSessionRequest) (*model.UpdateGameSessionResponse, error)
	Delete(ctx context.Context, req *model.DeleteGameSessionRequest) (*model.DeleteGameSessionResponse, error)
}

type gameSessionDomain struct {
	gameRepo        repository.GameRepository
	userRepo        repository.UserRepository
	sessionRepo     repository.GameSessionRepository
	eventRepo       repository.GameEventRepository
	discordEndpoint discord.IEndpoint
}

func NewGameSessionDomain(
	gameRepo repository.GameRepository,
	userRepo repository.UserRepository,
	sessionRepo repository.GameSessionRepository,
	eventRepo repository.GameEventRepository,
	discordEndpoint discord.IEndpoint,
) *gameSessionDomain {
	return &gameSessionDomain{
		gameRepo:        gameRepo,
		userRepo:        userRepo,
		sessionRepo:     sessionRepo,
		eventRepo:       eventRepo,
		discordEndpoint: discordEndpoint,
	}
}

func (d *gameSessionDomain) Create(
	ctx context.Context, req *model.CreateGameSessionRequest,
) (*model.CreateGameSessionResponse, error) {
	if !req.Start.Before(req.End) {
		return nil, errorx.New(errorx.BadRequest, "The session must end after it starts")
	}

	game, err := d.loadGame(ctx, req.GameID)
	if err != nil {
		return nil, err
	}

	if err := d.requireManager(ctx, game); err != nil {
		return nil, err
	}

	overlapped, err := d.sessionRepo.GetOverlapped(ctx, game.ID, req.Start, req.End, "")
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check overlapping sessions: %v", err)
		return nil, errorx.Unknown
	}

	if len(overlapped) > 0 {
		return nil, errorx.New(errorx.SessionConflict, "The session overlaps another one").
			With("conflicting_session_id", overlapped[0].ID)
	}

	session := &entity.GameSession{
		Base:   entity.Base{ID: uuid.NewString()},
		GameID: game.ID,
		Start:  req.Start,
		End:    req.End,
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.sessionRepo.Create(ctx, session); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create the session: %v", err)
		return nil, errorx.Unknown
	}

	err = d.logEvent(ctx, entity.EventCreateSession, game.ID,
		fmt.Sprintf("Session ajoutée : du %s au %s.",
			session.Start.Format(humanTimeFormat), session.End.Format(humanTimeFormat)))
	if err != nil {
		return nil, err
	}

	xcontext.WithCommitDBTransaction(ctx)

	if game.ChannelID != "" {
		cfg := xcontext.Configs(ctx)
		embed := buildAddSessionEmbed(game, session.Start, session.End, cfg.SiteBaseURL)
		if _, err := d.discordEndpoint.SendMessage(ctx, game.ChannelID, "", embed); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot notify the new session: %v", err)
		}
	}

	refreshAnnouncement(ctx, d.discordEndpoint, game, d.nextSession(ctx, game.ID))

	return &model.CreateGameSessionResponse{Session: model.ConvertGameSession(session)}, nil
}

func (d *gameSessionDomain) GetList(
	ctx context.Context, req *model.GetGameSessionsRequest,
) (*model.GetGameSessionsResponse, error) {
	if req.GameID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty game id")
	}

	sessions, err := d.sessionRepo.GetByGameID(ctx, req.GameID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get sessions of game %s: %v", req.GameID, err)
		return nil, errorx.Unknown
	}

	converted := []model.GameSession{}
	for i := range sessions {
		converted = append(converted, model.ConvertGameSession(&sessions[i]))
	}

	return &model.GetGameSessionsResponse{Sessions: converted}, nil
}

func (d *gameSessionDomain) Update(
	ctx context.Context, req *model.UpdateGameSessionRequest,
) (*model.UpdateGameSessionResponse, error) {
	if !req.Start.Before(req.End) {
		return nil, errorx.New(errorx.BadRequest, "The session must end after it starts")
	}

	session, err := d.loadSession(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	game, err := d.loadGame(ctx, session.GameID)
	if err != nil {
		return nil, err
	}

	if err := d.requireManager(ctx, game); err != nil {
		return nil, err
	}

	overlapped, err := d.sessionRepo.GetOverlapped(ctx, game.ID, req.Start, req.End, session.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check overlapping sessions: %v", err)
		return nil, errorx.Unknown
	}

	if len(overlapped) > 0 {
		return nil, errorx.New(errorx.SessionConflict, "The session overlaps another one").
			With("conflicting_session_id", overlapped[0].ID)
	}

	oldStart := session.Start
	session.Start = req.Start
	session.End = req.End

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.sessionRepo.Update(ctx, session); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update the session: %v", err)
		return nil, errorx.Unknown
	}

	err = d.logEvent(ctx, entity.EventEditSession, game.ID,
		fmt.Sprintf("Session du %s décalée au %s.",
			oldStart.Format(humanTimeFormat), session.Start.Format(humanTimeFormat)))
	if err != nil {
		return nil, err
	}

	xcontext.WithCommitDBTransaction(ctx)

	if game.ChannelID != "" {
		embed := buildEditSessionEmbed(game, oldStart, session.Start)
		if _, err := d.discordEndpoint.SendMessage(ctx, game.ChannelID, "", embed); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot notify the session change: %v", err)
		}
	}

	refreshAnnouncement(ctx, d.discordEndpoint, game, d.nextSession(ctx, game.ID))

	return &model.UpdateGameSessionResponse{Session: model.ConvertGameSession(session)}, nil
}

func (d *gameSessionDomain) Delete(
	ctx context.Context, req *model.DeleteGameSessionRequest,
) (*model.DeleteGameSessionResponse, error) {
	session, err := d.loadSession(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	game, err := d.loadGame(ctx, session.GameID)
	if err != nil {
		return nil, err
	}

	if err := d.requireManager(ctx, game); err != nil {
		return nil, err
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.sessionRepo.Delete(ctx, session.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete the session: %v", err)
		return nil, errorx.Unknown
	}

	err = d.logEvent(ctx, entity.EventDeleteSession, game.ID,
		fmt.Sprintf("Session du %s au %s annulée.",
			session.Start.Format(humanTimeFormat), session.End.Format(humanTimeFormat)))
	if err != nil {
		return nil, err
	}

	xcontext.WithCommitDBTransaction(ctx)

	if game.ChannelID != "" {
		embed := buildDeleteSessionEmbed(game, session.Start, session.End)
		if _, err := d.discordEndpoint.SendMessage(ctx, game.ChannelID, "", embed); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot notify the session cancellation: %v", err)
		}
	}

	refreshAnnouncement(ctx, d.discordEndpoint, game, d.nextSession(ctx, game.ID))

	return &model.DeleteGameSessionResponse{}, nil
}

func (d *gameSessionDomain) loadGame(ctx context.Context, id string) (*entity.Game, error) {
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

func (d *gameSessionDomain) loadSession(ctx context.Context, id string) (*entity.GameSession, error) {
	if id == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty id")
	}

	session, err := d.sessionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found session")
		}

		xcontext.Logger(ctx).Errorf("Cannot get the session: %v", err)
		return nil, errorx.Unknown
	}

	return session, nil
}

func (d *gameSessionDomain) requireManager(ctx context.Context, game *entity.Game) error {
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

func (d *gameSessionDomain) logEvent(
	ctx context.Context, action entity.EventActionType, gameID, description string,
) error {
	err := d.eventRepo.Create(ctx, &entity.GameEvent{
		Base:        entity.Base{ID: uuid.NewString()},
		Action:      action,
		GameID:      gameID,
		UserID:      toNullString(xcontext.RequestUserID(ctx)),
		Description: description,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot log the game event: %v", err)
		return errorx.Unknown
	}

	return nil
}

func (d *gameSessionDomain) nextSession(ctx context.Context, gameID string) *entity.GameSession {
	sessions, err := d.sessionRepo.GetByGameID(ctx, gameID)
	if err != nil || len(sessions) == 0 {
		return nil
	}

	return &sessions[0]
}
