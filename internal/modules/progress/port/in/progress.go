package in

import (
	"context"
	"time"

	"flowrpg/internal/modules/progress/dto"
)

type Usecase interface {
	Snapshot(ctx context.Context) dto.Snapshot

	Start(ctx context.Context) dto.ActionOutput
	Stop(ctx context.Context) dto.ActionOutput
	Toggle(ctx context.Context) dto.ActionOutput
	Activate(ctx context.Context, mode string) (dto.ActionOutput, error)
	Tick(ctx context.Context, generation uint64) (dto.ActionOutput, bool)
	Ticks() <-chan time.Time

	Forget(ctx context.Context) dto.ActionOutput
	Reset(ctx context.Context) dto.ActionOutput
	Difficulty(ctx context.Context, input dto.DifficultyInput) (dto.ActionOutput, error)
	NewBoss(ctx context.Context) dto.ActionOutput
	SpendTokens(ctx context.Context, input dto.SpendInput) (dto.ActionOutput, error)
	ToggleZen(ctx context.Context) dto.ActionOutput
	SetAlarm(ctx context.Context, minutes int) (dto.ActionOutput, error)
	CancelAlarm(ctx context.Context) (dto.ActionOutput, error)
	FireAlarm(ctx context.Context) dto.ActionOutput
	DismissTips(ctx context.Context) dto.ActionOutput
	UpdateSettings(ctx context.Context, input dto.SettingsInput) dto.ActionOutput

	Stats(ctx context.Context) dto.StatsOutput
	Reindex(ctx context.Context) (int, error)
	Chronicle(ctx context.Context) dto.ChronicleOutput
	ExportChronicle(ctx context.Context) (string, error)
}
