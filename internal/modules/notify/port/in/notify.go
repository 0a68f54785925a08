package in

import (
	"context"

	"flowrpg/internal/modules/notify/dto"
)

type Usecase interface {
	Deliver(ctx context.Context, input dto.DeliverInput) (dto.DeliverOutput, error)
	List(ctx context.Context) ([]dto.NotifierInfo, error)
	Doctor(ctx context.Context) ([]dto.DoctorResult, error)
	Test(ctx context.Context, input dto.TestInput) (dto.DeliverOutput, error)
}
