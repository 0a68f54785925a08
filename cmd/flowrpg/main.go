package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"flowrpg/internal/bootstrap"
	progressdto "flowrpg/internal/modules/progress/dto"
	"flowrpg/internal/platform/config"
	"flowrpg/internal/platform/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir string

	root := &cobra.Command{
		Use:           "flowrpg",
		Short:         "Flowmodoro RPG focus timer",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataDir, "data-dir", config.DefaultDataDir(), "directory holding state, index and chronicle")

	root.AddCommand(newTUICmd(&dataDir))
	root.AddCommand(newRunCmd(&dataDir))
	root.AddCommand(newStatusCmd(&dataDir))
	root.AddCommand(newClockCmds(&dataDir)...)
	root.AddCommand(newForgetCmd(&dataDir))
	root.AddCommand(newResetCmd(&dataDir))
	root.AddCommand(newDifficultyCmd(&dataDir))
	root.AddCommand(newBossCmd(&dataDir))
	root.AddCommand(newTokensCmd(&dataDir))
	root.AddCommand(newZenCmd(&dataDir))
	root.AddCommand(newAlarmCmd(&dataDir))
	root.AddCommand(newSettingsCmd(&dataDir))
	root.AddCommand(newStatsCmd(&dataDir))
	root.AddCommand(newReindexCmd(&dataDir))
	root.AddCommand(newChronicleCmd(&dataDir))
	root.AddCommand(newNotifierCmd(&dataDir))
	return root
}

// loadApp wires the application with a stderr logger. Callers must Close it.
func loadApp(ctx context.Context, dataDir string) (*bootstrap.App, error) {
	cfg, err := config.Load(dataDir)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(ctx, cfg, logging.New(cfg, os.Stderr))
}

// withApp runs fn against a freshly loaded app and closes it afterwards.
func withApp(dataDir string, fn func(ctx context.Context, app *bootstrap.App) error) error {
	ctx := context.Background()
	app, err := loadApp(ctx, dataDir)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()
	return fn(ctx, app)
}

func printEvents(w io.Writer, events []progressdto.Event) {
	for _, ev := range events {
		if ev.Body == "" {
			_, _ = fmt.Fprintf(w, "» %s\n", ev.Title)
			continue
		}
		_, _ = fmt.Fprintf(w, "» %s: %s\n", ev.Title, ev.Body)
	}
}

func printSnapshot(w io.Writer, s progressdto.Snapshot) {
	state := "stopped"
	if s.Running {
		state = "running"
	}
	_, _ = fmt.Fprintf(w, "mode: %s (%s) %s\n", s.Mode, state, s.Clock)
	_, _ = fmt.Fprintf(w, "level: %d (%d/%d exp, %d total)\n", s.Level, s.ExpInLevel, s.LevelSize, s.ExpTotal)
	boss := fmt.Sprintf("%s %d/%d HP", s.BossName, s.HPRemaining, s.HPTotal)
	if s.Defeated {
		boss += " (defeated)"
	}
	_, _ = fmt.Fprintf(w, "boss: %s\n", boss)
	_, _ = fmt.Fprintf(w, "balance: %s %s\n", s.BalanceClock, s.Feedback)
	if len(s.Buffs) > 0 {
		_, _ = fmt.Fprintf(w, "buffs: %s\n", strings.Join(s.Buffs, ", "))
	}
	_, _ = fmt.Fprintf(w, "difficulty: %s  tokens: %d\n", s.DifficultyLabel, s.Tokens)
	_, _ = fmt.Fprintf(w, "focus: session %ds total %ds  break: session %ds total %ds  auto: %s\n",
		s.SessionFocusSec, s.TotalFocusSec, s.SessionBreakSec, s.TotalBreakSec, s.AutoState)
	_, _ = fmt.Fprintf(w, "streak: %d (best %d)  today: %d  bosses defeated: %d\n",
		s.CurrentStreak, s.BestStreak, s.DailySessions, s.BossesDefeated)
	if s.AlarmEnabled {
		_, _ = fmt.Fprintf(w, "alarm: %d min, due %s\n", s.AlarmMinutes, s.AlarmDeadline.Format(time.Kitchen))
	}
	if s.ZenMode {
		_, _ = fmt.Fprintln(w, "zen: on")
	}
}

// printOutput prints the events raised by an action, then a one-line summary.
func printOutput(w io.Writer, out progressdto.ActionOutput) {
	printEvents(w, out.Events)
	s := out.Snapshot
	_, _ = fmt.Fprintf(w, "%s %s  level %d  %s %d/%d HP  balance %s\n",
		s.Mode, s.Clock, s.Level, s.BossName, s.HPRemaining, s.HPTotal, s.BalanceClock)
}

func newTUICmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the interactive dashboard",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load(*dataDir)
			if err != nil {
				return err
			}
			logger, logFile, err := logging.NewFile(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = logFile.Close() }()
			app, err := bootstrap.New(context.Background(), cfg, logger)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			return bootstrap.RunTUI(app)
		},
	}
}

func newRunCmd(dataDir *string) *cobra.Command {
	var mode string
	cmd := &cobra.Command{
		Use:     "run",
		Aliases: []string{"start"},
		Short:   "Run the clock headless until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			app, err := loadApp(ctx, *dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			return runClock(ctx, cmd.OutOrStdout(), app, mode)
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "", "mode to run: focus|break (default: resume the saved mode)")
	return cmd
}

// runClock is the headless event loop: clock ticks and the alarm are
// handled one at a time on this goroutine.
func runClock(ctx context.Context, w io.Writer, app *bootstrap.App, mode string) error {
	progress := app.ProgressCLI
	var out progressdto.ActionOutput
	if mode == "" {
		out = progress.Start(ctx)
	} else {
		var err error
		if out, err = progress.Activate(ctx, mode); err != nil {
			return err
		}
	}
	printOutput(w, out)

	var alarm <-chan time.Time
	if s := out.Snapshot; s.AlarmEnabled && !s.AlarmDeadline.IsZero() {
		timer := time.NewTimer(max(time.Until(s.AlarmDeadline), 0))
		defer timer.Stop()
		alarm = timer.C
	}

	gen := out.Snapshot.Generation
	for {
		select {
		case <-ctx.Done():
			printOutput(w, progress.Stop(context.Background()))
			return nil
		case <-progress.Ticks():
			tick, ok := progress.Tick(ctx, gen)
			if !ok {
				continue
			}
			printEvents(w, tick.Events)
			if s := tick.Snapshot; (s.SessionFocusSec+s.SessionBreakSec)%60 == 0 {
				_, _ = fmt.Fprintf(w, "%s %s  balance %s\n", s.Mode, s.Clock, s.BalanceClock)
			}
		case <-alarm:
			alarm = nil
			fired := progress.FireAlarm(ctx)
			printEvents(w, fired.Events)
			gen = fired.Snapshot.Generation
		}
	}
}

func newStatusCmd(dataDir *string) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show level, boss, balance and session clock",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(ctx context.Context, app *bootstrap.App) error {
				snap := app.ProgressCLI.Status(ctx)
				if asJSON {
					enc := json.NewEncoder(cmd.OutOrStdout())
					enc.SetIndent("", "  ")
					return enc.Encode(snap)
				}
				printSnapshot(cmd.OutOrStdout(), snap)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the snapshot as JSON")
	return cmd
}

// newClockCmds builds the one-shot clock commands. Outside `run` and `tui`
// nothing keeps ticking, so these only move the saved session state.
func newClockCmds(dataDir *string) []*cobra.Command {
	simple := func(use, short string, fn func(context.Context, *bootstrap.App) progressdto.ActionOutput) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withApp(*dataDir, func(ctx context.Context, app *bootstrap.App) error {
					printOutput(cmd.OutOrStdout(), fn(ctx, app))
					return nil
				})
			},
		}
	}
	return []*cobra.Command{
		simple("toggle", "Switch between focus and break", func(ctx context.Context, app *bootstrap.App) progressdto.ActionOutput {
			toggled := app.ProgressCLI.Toggle(ctx)
			stopped := app.ProgressCLI.Stop(ctx)
			stopped.Events = append(toggled.Events, stopped.Events...)
			return stopped
		}),
		simple("stop", "Stop the clock and save", func(ctx context.Context, app *bootstrap.App) progressdto.ActionOutput {
			return app.ProgressCLI.Stop(ctx)
		}),
	}
}

func newForgetCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "forget",
		Short: "Discard the current session times and print a summary",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(ctx context.Context, app *bootstrap.App) error {
				printOutput(cmd.OutOrStdout(), app.ProgressCLI.Forget(ctx))
				return nil
			})
		},
	}
}

func newResetCmd(dataDir *string) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset --yes",
		Short: "Erase all progress and summon a new boss",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return fmt.Errorf("reset erases all progress; pass --yes to confirm")
			}
			return withApp(*dataDir, func(ctx context.Context, app *bootstrap.App) error {
				printOutput(cmd.OutOrStdout(), app.ProgressCLI.Reset(ctx))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the reset")
	return cmd
}

func newDifficultyCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "difficulty [next|facil|normal|avanzado]",
		Short: "Cycle or set the focus:break ratio",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value := "next"
			if len(args) == 1 {
				value = args[0]
			}
			return withApp(*dataDir, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.ProgressCLI.Difficulty(ctx, value)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "difficulty: %s (balance %s)\n", out.Snapshot.DifficultyLabel, out.Snapshot.BalanceClock)
				return nil
			})
		},
	}
}

func newBossCmd(dataDir *string) *cobra.Command {
	boss := &cobra.Command{Use: "boss", Short: "Boss commands"}
	boss.AddCommand(&cobra.Command{
		Use:   "new",
		Short: "Summon a new boss scaled to your level",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(ctx context.Context, app *bootstrap.App) error {
				s := app.ProgressCLI.NewBoss(ctx).Snapshot
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "a new boss appears: %s (%d HP)\n", s.BossName, s.HPTotal)
				return nil
			})
		},
	})
	return boss
}

func newTokensCmd(dataDir *string) *cobra.Command {
	tokens := &cobra.Command{Use: "tokens", Short: "Spend tokens earned from experience"}
	tokens.AddCommand(&cobra.Command{
		Use:   "spend small|big",
		Short: "Spend 1 (small) or 3 (big) tokens",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*dataDir, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.ProgressCLI.SpendTokens(ctx, args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "spent %s reward, %d tokens left\n", args[0], out.Snapshot.Tokens)
				return nil
			})
		},
	})
	return tokens
}

func newZenCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "zen",
		Short: "Toggle zen mode",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(ctx context.Context, app *bootstrap.App) error {
				out := app.ProgressCLI.ToggleZen(ctx)
				printEvents(cmd.OutOrStdout(), out.Events)
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "zen: %t\n", out.Snapshot.ZenMode)
				return nil
			})
		},
	}
}

func newAlarmCmd(dataDir *string) *cobra.Command {
	alarm := &cobra.Command{Use: "alarm", Short: "One-shot break reminder"}
	alarm.AddCommand(&cobra.Command{
		Use:   "set <minutes>",
		Short: "Arm the alarm; `run` and `tui` fire it when due",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			minutes, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("minutes must be a number: %w", err)
			}
			return withApp(*dataDir, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.ProgressCLI.SetAlarm(ctx, minutes)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "alarm set for %d minutes (due %s)\n", minutes, out.Snapshot.AlarmDeadline.Format(time.Kitchen))
				return nil
			})
		},
	})
	alarm.AddCommand(&cobra.Command{
		Use:   "cancel",
		Short: "Disarm the alarm",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(ctx context.Context, app *bootstrap.App) error {
				if _, err := app.ProgressCLI.CancelAlarm(ctx); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "alarm cancelled")
				return nil
			})
		},
	})
	return alarm
}

func newSettingsCmd(dataDir *string) *cobra.Command {
	var sound, notificationSound, buttonSound, autoDark, tipsSeen bool
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change sound and theme settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			pick := func(name string, v bool) *bool {
				if !flags.Changed(name) {
					return nil
				}
				return &v
			}
			input := progressdto.SettingsInput{
				Sound:             pick("sound", sound),
				NotificationSound: pick("notification-sound", notificationSound),
				ButtonSound:       pick("button-sound", buttonSound),
				AutoDarkMode:      pick("auto-dark", autoDark),
			}
			return withApp(*dataDir, func(ctx context.Context, app *bootstrap.App) error {
				s := app.ProgressCLI.UpdateSettings(ctx, input).Snapshot
				if flags.Changed("tips-seen") && tipsSeen {
					s = app.ProgressCLI.DismissTips(ctx).Snapshot
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "sound=%t notification-sound=%t button-sound=%t auto-dark=%t tips-seen=%t\n",
					s.SoundEnabled, s.NotificationSound, s.ButtonSound, s.AutoDarkMode, s.HasSeenTips)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&sound, "sound", true, "master sound switch")
	cmd.Flags().BoolVar(&notificationSound, "notification-sound", true, "ring the bell on notifications")
	cmd.Flags().BoolVar(&buttonSound, "button-sound", true, "key feedback sounds")
	cmd.Flags().BoolVar(&autoDark, "auto-dark", true, "dark theme from 20:00 to 06:00")
	cmd.Flags().BoolVar(&tipsSeen, "tips-seen", false, "hide the onboarding tips")
	return cmd
}

func newStatsCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show session statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(ctx context.Context, app *bootstrap.App) error {
				st := app.ProgressCLI.Stats(ctx)
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(w, "completed today: %d\n", st.CompletedToday)
				_, _ = fmt.Fprintf(w, "average session: %d min\n", st.AverageFocusSec/60)
				_, _ = fmt.Fprintf(w, "focus last 7 days: %d min\n", st.WeekFocusSec/60)
				_, _ = fmt.Fprintf(w, "sessions: %d completed of %d\n", st.CompletedSessions, st.TotalSessions)
				_, _ = fmt.Fprintf(w, "streak: %d (best %d)\n", st.CurrentStreak, st.BestStreak)
				_, _ = fmt.Fprintf(w, "bosses defeated: %d\n", st.BossesDefeated)
				return nil
			})
		},
	}
}

func newReindexCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the sqlite session index from the saved log",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(ctx context.Context, app *bootstrap.App) error {
				n, err := app.ProgressCLI.Reindex(ctx)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "reindexed %d sessions\n", n)
				return nil
			})
		},
	}
}

func newChronicleCmd(dataDir *string) *cobra.Command {
	chronicle := &cobra.Command{Use: "chronicle", Short: "Level-up story and achievements"}
	chronicle.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the chronicle as markdown",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(ctx context.Context, app *bootstrap.App) error {
				_, _ = fmt.Fprint(cmd.OutOrStdout(), app.ProgressCLI.Chronicle(ctx).Markdown)
				return nil
			})
		},
	})
	chronicle.AddCommand(&cobra.Command{
		Use:   "export",
		Short: "Write the chronicle note into the data directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(ctx context.Context, app *bootstrap.App) error {
				path, err := app.ProgressCLI.ExportChronicle(ctx)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "chronicle written to %s\n", path)
				return nil
			})
		},
	})
	return chronicle
}

func newNotifierCmd(dataDir *string) *cobra.Command {
	notifier := &cobra.Command{Use: "notifier", Short: "Notifier plugins"}
	notifier.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List configured notifier plugins",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(ctx context.Context, app *bootstrap.App) error {
				items, err := app.NotifyCLI.List(ctx)
				if err != nil {
					return err
				}
				if len(items) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no notifiers")
					return nil
				}
				for _, item := range items {
					kinds := "*"
					if len(item.Kinds) > 0 {
						kinds = strings.Join(item.Kinds, ",")
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\tenabled=%t\tkinds=%s\t%s\n", item.Name, item.Version, item.Enabled, kinds, item.Binary)
				}
				return nil
			})
		},
	})
	notifier.AddCommand(&cobra.Command{
		Use:   "doctor",
		Short: "Check notifier binaries, checksums and handshake",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(ctx context.Context, app *bootstrap.App) error {
				results, err := app.NotifyCLI.Doctor(ctx)
				if err != nil {
					return err
				}
				failed := false
				for _, r := range results {
					marker := "OK"
					if r.Error != "" {
						marker = "FAIL"
						failed = true
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s binary=%t checksum=%t lifecycle=%t %s\n", marker, r.Name, r.BinaryReachable, r.ChecksumValid, r.LifecycleOK, r.Error)
				}
				if failed {
					return fmt.Errorf("notifier doctor found failing checks")
				}
				return nil
			})
		},
	})
	notifier.AddCommand(&cobra.Command{
		Use:   "test [name]",
		Short: "Send a test notification",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			return withApp(*dataDir, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.NotifyCLI.Test(ctx, name)
				if len(out.Delivered) > 0 {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "delivered to %s\n", strings.Join(out.Delivered, ", "))
				}
				return err
			})
		},
	})
	return notifier
}
