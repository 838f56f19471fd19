package domain

import (
	"context"

	"github.com/gosimple/slug"
	"github.com/questmaster/backend/internal/entity"
	"github.com/questmaster/backend/internal/model"
	"github.com/questmaster/backend/internal/repository"
	"github.com/questmaster/backend/pkg/errorx"
	"github.com/questmaster/backend/pkg/xcontext"
)

type SystemDomain interface {
	Create(ctx context.Context, req *model.CreateSystemRequest) (*model.CreateSystemResponse, error)
	GetList(ctx context.Context, req *model.GetSystemsRequest) (*model.GetSystemsResponse, error)
	Delete(ctx context.Context, req *model.DeleteSystemRequest) (*model.DeleteSystemResponse, error)
}

type systemDomain struct {
	systemRepo repository.SystemRepository
}

func NewSystemDomain(systemRepo repository.SystemRepository) *systemDomain {
	return &systemDomain{systemRepo: systemRepo}
}

func (d *systemDomain) Create(
	ctx context.Context, req *model.CreateSystemRequest,
) (*model.CreateSystemResponse, error) {
	if req.Name == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty name")
	}

	system := &entity.System{
		Base: entity.Base{ID: slug.Make(req.Name)},
		Name: req.Name,
		Icon: req.Icon,
	}

	if err := d.systemRepo.Create(ctx, system); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create the system: %v", err)
		return nil, errorx.New(errorx.AlreadyExists, "The system already exists")
	}

	return &model.CreateSystemResponse{System: model.ConvertSystem(system)}, nil
}

func (d *systemDomain) GetList(
	ctx context.Context, req *model.GetSystemsRequest,
) (*model.GetSystemsResponse, error) {
	systems, err := d.systemRepo.GetAll(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get list of systems: %v", err)
		return nil, errorx.Unknown
	}

	converted := []model.System{}
	for i := range systems {
		converted = append(converted, model.ConvertSystem(&systems[i]))
	}

	return &model.GetSystemsResponse{Systems: converted}, nil
}

func (d *systemDomain) Delete(
	ctx context.Context, req *model.DeleteSystemRequest,
) (*model.DeleteSystemResponse, error) {
	if req.ID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty id")
	}

	if err := d.systemRepo.Delete(ctx, req.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete the system: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteSystemResponse{}, nil
}

type VttDomain interface {
	Create(ctx context.Context, req *model.CreateVttRequest) (*model.CreateVttResponse, error)
	GetList(ctx context.Context, req *model.GetVttsRequest) (*model.GetVttsResponse, error)
	Delete(ctx context.Context, req *model.DeleteVttRequest) (*model.DeleteVttResponse, error)
}

type vttDomain struct {
	vttRepo repository.VttRepository
}

func NewVttDomain(vttRepo repository.VttRepository) *vttDomain {
	return &vttDomain{vttRepo: vttRepo}
}

func (d *vttDomain) Create(
	ctx context.Context, req *model.CreateVttRequest,
) (*model.CreateVttResponse, error) {
	if req.Name == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty name")
	}

	vtt := &entity.Vtt{
		Base: entity.Base{ID: slug.Make(req.Name)},
		Name: req.Name,
		Icon: req.Icon,
	}

	if err := d.vttRepo.Create(ctx, vtt); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create the vtt: %v", err)
		return nil, errorx.New(errorx.AlreadyExists, "The vtt already exists")
	}

	return &model.CreateVttResponse{Vtt: model.ConvertVtt(vtt)}, nil
}

func (d *vttDomain) GetList(
	ctx context.Context, req *model.GetVttsRequest,
) (*model.GetVttsResponse, error) {
	vtts, err := d.vttRepo.GetAll(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get list of vtts: %v", err)
		return nil, errorx.Unknown
	}

	converted := []model.Vtt{}
	for i := range vtts {
		converted = append(converted, model.ConvertVtt(&vtts[i]))
	}

	return &model.GetVttsResponse{Vtts: converted}, nil
}

func (d *vttDomain) Delete(
	ctx context.Context, req *model.DeleteVttRequest,
) (*model.DeleteVttResponse, error) {
	if req.ID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty id")
	}

	if err := d.vttRepo.Delete(ctx, req.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete the vtt: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteVttResponse{}, nil
}
