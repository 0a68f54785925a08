package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	hclog "github.com/hashicorp/go-hclog"

	notifyinadapter "flowrpg/internal/modules/notify/adapter/in"
	notifyoutadapter "flowrpg/internal/modules/notify/adapter/out"
	notifyout "flowrpg/internal/modules/notify/port/out"
	notifyservice "flowrpg/internal/modules/notify/service"
	notifyusecase "flowrpg/internal/modules/notify/usecase"
	progressinadapter "flowrpg/internal/modules/progress/adapter/in"
	progressoutadapter "flowrpg/internal/modules/progress/adapter/out"
	"flowrpg/internal/modules/progress/domain"
	progressservice "flowrpg/internal/modules/progress/service"
	progressusecase "flowrpg/internal/modules/progress/usecase"
	"flowrpg/internal/platform/clock"
	"flowrpg/internal/platform/config"
	"flowrpg/internal/platform/id"
	"flowrpg/internal/platform/random"
	uiapp "flowrpg/internal/ui/app"
)

type App struct {
	ProgressCLI progressinadapter.CLIHandler
	NotifyCLI   notifyinadapter.CLIHandler
	Logger      hclog.Logger
	Tick        time.Duration

	closers []io.Closer
}

// New wires both modules and loads the saved progress. Callers must Close
// the app so queued notifications are flushed.
func New(ctx context.Context, cfg config.Config, logger hclog.Logger) (*App, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	clk := clock.SystemClock{}

	sinks := []notifyout.Sink{notifyoutadapter.NewLogSink(logger)}
	if cfg.Bell {
		sinks = append(sinks, notifyoutadapter.NewBellSink(os.Stderr))
	}
	var manifests notifyout.ManifestStore
	var host notifyout.Host
	if cfg.Plugins {
		manifests = notifyoutadapter.NewFileManifestStore(cfg.PluginsDir)
		host = notifyoutadapter.NewGRPCHost(logger)
	}
	notifyUC := notifyusecase.NewInteractor(notifyservice.NewNotifyService(manifests, host, sinks, clk, logger))

	index, err := progressoutadapter.NewSQLiteSessionIndex(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new session index: %w", err)
	}
	bridge := progressoutadapter.NewNotifyBridge(notifyUC, 0, logger)

	svc := progressservice.NewProgressService(progressservice.Deps{
		Clock:     clk,
		Random:    random.System{},
		IDs:       id.RandomHex{},
		Store:     progressoutadapter.NewFileStateStore(cfg.StatePath),
		Notifier:  bridge,
		Index:     index,
		Chronicle: progressoutadapter.NewVaultChronicleStore(cfg.ChroniclePath),
		Names:     domain.NameTables{Prefixes: cfg.BossPrefixes, Suffixes: cfg.BossSuffixes},
		Tick:      cfg.TickInterval,
		Logger:    logger,
	})
	progressUC := progressusecase.NewInteractor(svc)

	app := &App{
		ProgressCLI: progressinadapter.NewCLIHandler(progressUC),
		NotifyCLI:   notifyinadapter.NewCLIHandler(notifyUC),
		Logger:      logger,
		Tick:        cfg.TickInterval,
		closers:     []io.Closer{bridge, index},
	}
	svc.Load(ctx)
	return app, nil
}

// Close flushes pending notifications before releasing the index.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.ProgressCLI, app.NotifyCLI, app.Tick)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
