package out

import (
	"context"
	"fmt"
	"io"
	"sync"

	hclog "github.com/hashicorp/go-hclog"

	"flowrpg/internal/modules/notify/domain"
	notifyout "flowrpg/internal/modules/notify/port/out"
)

// LogSink records every notification in the application log.
type LogSink struct {
	logger hclog.Logger
}

func NewLogSink(logger hclog.Logger) notifyout.Sink {
	return &LogSink{logger: logger.Named("sink")}
}

func (s *LogSink) Name() string { return "log" }

func (s *LogSink) Deliver(_ context.Context, n domain.Notification) error {
	if n.Kind == domain.KindCue {
		s.logger.Trace("button cue")
		return nil
	}
	s.logger.Info(n.Title, "kind", n.Kind, "body", n.Body)
	return nil
}

// BellSink rings the terminal bell for notifications that ask for sound.
type BellSink struct {
	mu sync.Mutex
	w  io.Writer
}

func NewBellSink(w io.Writer) notifyout.Sink {
	return &BellSink{w: w}
}

func (s *BellSink) Name() string { return "bell" }

func (s *BellSink) Deliver(_ context.Context, n domain.Notification) error {
	if !n.Sound {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := io.WriteString(s.w, "\a"); err != nil {
		return fmt.Errorf("ring bell: %w", err)
	}
	return nil
}
