package in

import (
	"context"
	"time"

	progressdto "flowrpg/internal/modules/progress/dto"
	progressin "flowrpg/internal/modules/progress/port/in"
)

type CLIHandler struct {
	usecase progressin.Usecase
}

func NewCLIHandler(usecase progressin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Status(ctx context.Context) progressdto.Snapshot {
	return h.usecase.Snapshot(ctx)
}

func (h CLIHandler) Start(ctx context.Context) progressdto.ActionOutput {
	return h.usecase.Start(ctx)
}

func (h CLIHandler) Stop(ctx context.Context) progressdto.ActionOutput {
	return h.usecase.Stop(ctx)
}

func (h CLIHandler) Toggle(ctx context.Context) progressdto.ActionOutput {
	return h.usecase.Toggle(ctx)
}

func (h CLIHandler) Activate(ctx context.Context, mode string) (progressdto.ActionOutput, error) {
	return h.usecase.Activate(ctx, mode)
}

func (h CLIHandler) Tick(ctx context.Context, generation uint64) (progressdto.ActionOutput, bool) {
	return h.usecase.Tick(ctx, generation)
}

func (h CLIHandler) Ticks() <-chan time.Time {
	return h.usecase.Ticks()
}

func (h CLIHandler) Forget(ctx context.Context) progressdto.ActionOutput {
	return h.usecase.Forget(ctx)
}

func (h CLIHandler) Reset(ctx context.Context) progressdto.ActionOutput {
	return h.usecase.Reset(ctx)
}

func (h CLIHandler) Difficulty(ctx context.Context, difficulty string) (progressdto.ActionOutput, error) {
	return h.usecase.Difficulty(ctx, progressdto.DifficultyInput{Difficulty: difficulty})
}

func (h CLIHandler) NewBoss(ctx context.Context) progressdto.ActionOutput {
	return h.usecase.NewBoss(ctx)
}

func (h CLIHandler) SpendTokens(ctx context.Context, amount string) (progressdto.ActionOutput, error) {
	return h.usecase.SpendTokens(ctx, progressdto.SpendInput{Amount: amount})
}

func (h CLIHandler) ToggleZen(ctx context.Context) progressdto.ActionOutput {
	return h.usecase.ToggleZen(ctx)
}

func (h CLIHandler) SetAlarm(ctx context.Context, minutes int) (progressdto.ActionOutput, error) {
	return h.usecase.SetAlarm(ctx, minutes)
}

func (h CLIHandler) CancelAlarm(ctx context.Context) (progressdto.ActionOutput, error) {
	return h.usecase.CancelAlarm(ctx)
}

func (h CLIHandler) FireAlarm(ctx context.Context) progressdto.ActionOutput {
	return h.usecase.FireAlarm(ctx)
}

func (h CLIHandler) DismissTips(ctx context.Context) progressdto.ActionOutput {
	return h.usecase.DismissTips(ctx)
}

func (h CLIHandler) UpdateSettings(ctx context.Context, input progressdto.SettingsInput) progressdto.ActionOutput {
	return h.usecase.UpdateSettings(ctx, input)
}

func (h CLIHandler) Stats(ctx context.Context) progressdto.StatsOutput {
	return h.usecase.Stats(ctx)
}

func (h CLIHandler) Reindex(ctx context.Context) (int, error) {
	return h.usecase.Reindex(ctx)
}

func (h CLIHandler) Chronicle(ctx context.Context) progressdto.ChronicleOutput {
	return h.usecase.Chronicle(ctx)
}

func (h CLIHandler) ExportChronicle(ctx context.Context) (string, error) {
	return h.usecase.ExportChronicle(ctx)
}
