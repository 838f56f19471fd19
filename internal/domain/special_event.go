package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/questmaster/backend/internal/entity"
	"github.com/questmaster/backend/internal/model"
	"github.com/questmaster/backend/internal/repository"
	"github.com/questmaster/backend/pkg/errorx"
	"github.com/questmaster/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type SpecialEventDomain interface {
	Create(ctx context.Context, req *model.CreateSpecialEventRequest) (*model.CreateSpecialEventResponse, error)
	GetList(ctx context.Context, req *model.GetSpecialEventsRequest) (*model.GetSpecialEventsResponse, error)
	Update(ctx context.Context, req *model.UpdateSpecialEventRequest) (*model.UpdateSpecialEventResponse, error)
	Delete(ctx context.Context, req *model.DeleteSpecialEventRequest) (*model.DeleteSpecialEventResponse, error)
}

type specialEventDomain struct {
	specialEventRepo repository.SpecialEventRepository
}

func NewSpecialEventDomain(specialEventRepo repository.SpecialEventRepository) *specialEventDomain {
	return &specialEventDomain{specialEventRepo: specialEventRepo}
}

func (d *specialEventDomain) Create(
	ctx context.Context, req *model.CreateSpecialEventRequest,
) (*model.CreateSpecialEventResponse, error) {
	if req.Name == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty name")
	}

	event := &entity.SpecialEvent{
		Base:   entity.Base{ID: uuid.NewString()},
		Name:   req.Name,
		Emoji:  req.Emoji,
		Color:  req.Color,
		Active: true,
	}

	if err := d.specialEventRepo.Create(ctx, event); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create the special event: %v", err)
		return nil, errorx.New(errorx.AlreadyExists, "The special event already exists")
	}

	return &model.CreateSpecialEventResponse{SpecialEvent: model.ConvertSpecialEvent(event)}, nil
}

func (d *specialEventDomain) GetList(
	ctx context.Context, req *model.GetSpecialEventsRequest,
) (*model.GetSpecialEventsResponse, error) {
	var events []entity.SpecialEvent
	var err error
	if req.ActiveOnly {
		events, err = d.specialEventRepo.GetActive(ctx)
	} else {
		events, err = d.specialEventRepo.GetAll(ctx)
	}

	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get list of special events: %v", err)
		return nil, errorx.Unknown
	}

	converted := []model.SpecialEvent{}
	for i := range events {
		converted = append(converted, model.ConvertSpecialEvent(&events[i]))
	}

	return &model.GetSpecialEventsResponse{SpecialEvents: converted}, nil
}

func (d *specialEventDomain) Update(
	ctx context.Context, req *model.UpdateSpecialEventRequest,
) (*model.UpdateSpecialEventResponse, error) {
	event, err := d.specialEventRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found special event")
		}

		xcontext.Logger(ctx).Errorf("Cannot get the special event: %v", err)
		return nil, errorx.Unknown
	}

	if req.Name != "" {
		event.Name = req.Name
	}

	event.Emoji = req.Emoji
	event.Color = req.Color
	event.Active = req.Active

	if err := d.specialEventRepo.Update(ctx, event); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update the special event: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateSpecialEventResponse{SpecialEvent: model.ConvertSpecialEvent(event)}, nil
}

func (d *specialEventDomain) Delete(
	ctx context.Context, req *model.DeleteSpecialEventRequest,
) (*model.DeleteSpecialEventResponse, error) {
	if req.ID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty id")
	}

	if err := d.specialEventRepo.Delete(ctx, req.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete the special event: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteSpecialEventResponse{}, nil
}
