package usecase

import (
	"context"

	"flowrpg/internal/modules/notify/dto"
	notifyin "flowrpg/internal/modules/notify/port/in"
	"flowrpg/internal/modules/notify/service"
)

type Interactor struct {
	svc *service.NotifyService
}

func NewInteractor(svc *service.NotifyService) notifyin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Deliver(ctx context.Context, input dto.DeliverInput) (dto.DeliverOutput, error) {
	return i.svc.Deliver(ctx, input)
}

func (i *Interactor) List(ctx context.Context) ([]dto.NotifierInfo, error) {
	return i.svc.List(ctx)
}

func (i *Interactor) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return i.svc.Doctor(ctx)
}

func (i *Interactor) Test(ctx context.Context, input dto.TestInput) (dto.DeliverOutput, error) {
	return i.svc.Test(ctx, input)
}
