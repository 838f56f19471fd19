package domain

import (
	"context"

	"github.com/questmaster/backend/internal/entity"
	"github.com/questmaster/backend/internal/model"
	"github.com/questmaster/backend/internal/repository"
	"github.com/questmaster/backend/pkg/enum"
	"github.com/questmaster/backend/pkg/errorx"
	"github.com/questmaster/backend/pkg/xcontext"
)

type GameEventDomain interface {
	GetList(ctx context.Context, req *model.GetGameEventsRequest) (*model.GetGameEventsResponse, error)
}

type gameEventDomain struct {
	eventRepo repository.GameEventRepository
}

func NewGameEventDomain(eventRepo repository.GameEventRepository) *gameEventDomain {
	return &gameEventDomain{eventRepo: eventRepo}
}

func (d *gameEventDomain) GetList(
	ctx context.Context, req *model.GetGameEventsRequest,
) (*model.GetGameEventsResponse, error) {
	filter := repository.GameEventFilter{
		GameID: req.GameID,
		Offset: req.Offset,
		Limit:  req.Limit,
	}

	if req.Action != "" {
		action, err := enum.ToEnum[entity.EventActionType](req.Action)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid action %s", req.Action)
		}
		filter.Action = action
	}

	events, err := d.eventRepo.GetList(ctx, filter)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get list of events: %v", err)
		return nil, errorx.Unknown
	}

	converted := []model.GameEvent{}
	for i := range events {
		converted = append(converted, model.ConvertGameEvent(&events[i]))
	}

	return &model.GetGameEventsResponse{Events: converted}, nil
}
