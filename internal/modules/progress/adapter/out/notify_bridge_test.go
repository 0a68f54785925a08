package out_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	notifydomain "flowrpg/internal/modules/notify/domain"
	notifydto "flowrpg/internal/modules/notify/dto"
	progressout "flowrpg/internal/modules/progress/adapter/out"
	"flowrpg/internal/modules/progress/domain"
)

type recordingNotify struct {
	mu      sync.Mutex
	got     []notifydto.DeliverInput
	release chan struct{}
}

func (r *recordingNotify) Deliver(_ context.Context, input notifydto.DeliverInput) (notifydto.DeliverOutput, error) {
	if r.release != nil {
		<-r.release
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, input)
	return notifydto.DeliverOutput{Delivered: []string{"log"}}, nil
}

func (r *recordingNotify) List(context.Context) ([]notifydto.NotifierInfo, error) { return nil, nil }

func (r *recordingNotify) Doctor(context.Context) ([]notifydto.DoctorResult, error) { return nil, nil }

func (r *recordingNotify) Test(context.Context, notifydto.TestInput) (notifydto.DeliverOutput, error) {
	return notifydto.DeliverOutput{}, nil
}

func TestNotifyBridgeDeliversInOrderAndDrainsOnClose(t *testing.T) {
	t.Parallel()
	target := &recordingNotify{}
	bridge := progressout.NewNotifyBridge(target, 8, nil)
	ctx := context.Background()

	if err := bridge.Notify(ctx, domain.LevelUpEvent(2), true); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if err := bridge.Notify(ctx, domain.BreakCompleteEvent(), false); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if err := bridge.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if len(target.got) != 2 {
		t.Fatalf("expected two deliveries, got %d", len(target.got))
	}
	if target.got[0].Kind != string(domain.EventLevelUp) || !target.got[0].Sound || target.got[1].Sound {
		t.Fatalf("unexpected deliveries: %+v", target.got)
	}
	if err := bridge.Notify(ctx, domain.BreakCompleteEvent(), false); err == nil {
		t.Fatalf("closed bridge must refuse events")
	}
}

func TestNotifyBridgeReportsFullQueue(t *testing.T) {
	t.Parallel()
	target := &recordingNotify{release: make(chan struct{})}
	bridge := progressout.NewNotifyBridge(target, 1, nil)
	ctx := context.Background()

	var full error
	for i := 0; i < 4 && full == nil; i++ {
		full = bridge.Notify(ctx, domain.BreakCompleteEvent(), false)
	}
	if !errors.Is(full, progressout.ErrNotifyQueueFull) {
		t.Fatalf("expected full queue, got %v", full)
	}
	close(target.release)
	if err := bridge.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestNotifyBridgeCueUsesNotifyCueKind(t *testing.T) {
	t.Parallel()
	target := &recordingNotify{}
	bridge := progressout.NewNotifyBridge(target, 4, nil)
	if err := bridge.Cue(context.Background()); err != nil {
		t.Fatalf("cue: %v", err)
	}
	if err := bridge.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if len(target.got) != 1 || target.got[0].Kind != notifydomain.KindCue || !target.got[0].Sound {
		t.Fatalf("unexpected cue delivery: %+v", target.got)
	}
	if err := (notifydomain.Notification{Kind: target.got[0].Kind}).Validate(); err != nil {
		t.Fatalf("cue must pass notify validation: %v", err)
	}
}

func TestProgressEventKindsAreSubscribable(t *testing.T) {
	t.Parallel()
	kinds := []domain.EventKind{
		domain.EventBossDefeated,
		domain.EventBreakComplete,
		domain.EventFocusMilestone,
		domain.EventAchievement,
		domain.EventAlarm,
		domain.EventLevelUp,
		domain.EventSessionSummary,
	}
	for _, kind := range kinds {
		if !notifydomain.IsKnownKind(string(kind)) {
			t.Fatalf("notifier manifests cannot subscribe to %q", kind)
		}
	}
}
