package in

import (
	"context"

	"flowrpg/internal/modules/notify/dto"
	notifyin "flowrpg/internal/modules/notify/port/in"
)

type CLIHandler struct {
	usecase notifyin.Usecase
}

func NewCLIHandler(usecase notifyin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]dto.NotifierInfo, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return h.usecase.Doctor(ctx)
}

func (h CLIHandler) Test(ctx context.Context, name string) (dto.DeliverOutput, error) {
	return h.usecase.Test(ctx, dto.TestInput{Name: name})
}
