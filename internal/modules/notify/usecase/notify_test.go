package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	hclog "github.com/hashicorp/go-hclog"

	notifyadapter "flowrpg/internal/modules/notify/adapter/out"
	"flowrpg/internal/modules/notify/domain"
	"flowrpg/internal/modules/notify/dto"
	notifyout "flowrpg/internal/modules/notify/port/out"
	"flowrpg/internal/modules/notify/service"
	"flowrpg/internal/modules/notify/usecase"
)

func newSinkOnly(t *testing.T) (*bytes.Buffer, *bytes.Buffer, func() (dto.DeliverOutput, error)) {
	t.Helper()
	var logs, bell bytes.Buffer
	logger := hclog.New(&hclog.LoggerOptions{Output: &logs, JSONFormat: true, Level: hclog.Info})
	sinks := []notifyout.Sink{notifyadapter.NewLogSink(logger), notifyadapter.NewBellSink(&bell)}
	uc := usecase.NewInteractor(service.NewNotifyService(nil, nil, sinks, nil, logger))
	return &logs, &bell, func() (dto.DeliverOutput, error) {
		return uc.Deliver(context.Background(), dto.DeliverInput{Kind: "level_up", Title: "Level up", Body: "You reached level 2", Sound: true})
	}
}

func TestDeliverWithoutPluginsUsesSinks(t *testing.T) {
	t.Parallel()
	logs, bell, deliver := newSinkOnly(t)

	out, err := deliver()
	if err != nil {
		t.Fatalf("deliver: %v", err)
	}
	if strings.Join(out.Delivered, ",") != "log,bell" {
		t.Fatalf("unexpected targets: %v", out.Delivered)
	}
	if bell.String() != "\a" {
		t.Fatalf("expected one bell, got %q", bell.String())
	}
	if !strings.Contains(logs.String(), `"kind":"level_up"`) {
		t.Fatalf("expected log line with kind, got %s", logs.String())
	}
}

func TestListAndTestWithoutPlugins(t *testing.T) {
	t.Parallel()
	uc := usecase.NewInteractor(service.NewNotifyService(nil, nil, []notifyout.Sink{notifyadapter.NewLogSink(hclog.NewNullLogger())}, nil, nil))
	ctx := context.Background()

	list, err := uc.List(ctx)
	if err != nil || len(list) != 0 {
		t.Fatalf("expected empty list, got %v %v", list, err)
	}
	docs, err := uc.Doctor(ctx)
	if err != nil || len(docs) != 0 {
		t.Fatalf("expected empty doctor report, got %v %v", docs, err)
	}
	out, err := uc.Test(ctx, dto.TestInput{})
	if err != nil {
		t.Fatalf("test all: %v", err)
	}
	if len(out.Delivered) != 1 || out.Delivered[0] != "log" {
		t.Fatalf("unexpected targets: %v", out.Delivered)
	}
	if _, err := uc.Test(ctx, dto.TestInput{Name: "desktop"}); !errors.Is(err, domain.ErrNotifierNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeliverRejectsEmptyTitle(t *testing.T) {
	t.Parallel()
	uc := usecase.NewInteractor(service.NewNotifyService(nil, nil, nil, nil, nil))
	if _, err := uc.Deliver(context.Background(), dto.DeliverInput{Kind: "alarm"}); err == nil {
		t.Fatalf("expected validation error")
	}
}
