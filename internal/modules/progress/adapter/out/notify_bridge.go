package out

import (
	"context"
	"errors"
	"sync"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	notifydto "flowrpg/internal/modules/notify/dto"
	notifyin "flowrpg/internal/modules/notify/port/in"
	"flowrpg/internal/modules/progress/domain"
	progressout "flowrpg/internal/modules/progress/port/out"
)

var ErrNotifyQueueFull = errors.New("notification queue is full")

var errBridgeClosed = errors.New("notification bridge is closed")

const (
	defaultQueueSize     = 32
	defaultDeliveryLimit = 5 * time.Second
)

// NotifyBridge hands progress events to the notify module on a worker
// goroutine, so a slow plugin never holds up the clock.
type NotifyBridge struct {
	target  notifyin.Usecase
	logger  hclog.Logger
	timeout time.Duration

	queue chan notifydto.DeliverInput
	done  chan struct{}

	mu     sync.Mutex
	closed bool
}

func NewNotifyBridge(target notifyin.Usecase, queueSize int, logger hclog.Logger) *NotifyBridge {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	b := &NotifyBridge{
		target:  target,
		logger:  logger.Named("notify-bridge"),
		timeout: defaultDeliveryLimit,
		queue:   make(chan notifydto.DeliverInput, queueSize),
		done:    make(chan struct{}),
	}
	go b.run()
	return b
}

var _ progressout.Notifier = (*NotifyBridge)(nil)

// cueKind is the notify module's button-sound kind.
const cueKind = "cue"

// Notify enqueues without blocking.
func (b *NotifyBridge) Notify(_ context.Context, event domain.Event, sound bool) error {
	return b.enqueue(notifydto.DeliverInput{Kind: string(event.Kind), Title: event.Title, Body: event.Body, Sound: sound})
}

// Cue enqueues the button sound.
func (b *NotifyBridge) Cue(context.Context) error {
	return b.enqueue(notifydto.DeliverInput{Kind: cueKind, Sound: true})
}

func (b *NotifyBridge) enqueue(input notifydto.DeliverInput) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return errBridgeClosed
	}
	select {
	case b.queue <- input:
		return nil
	default:
		return ErrNotifyQueueFull
	}
}

// Close stops accepting events and waits until the queue is drained.
func (b *NotifyBridge) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		<-b.done
		return nil
	}
	b.closed = true
	close(b.queue)
	b.mu.Unlock()
	<-b.done
	return nil
}

func (b *NotifyBridge) run() {
	defer close(b.done)
	for input := range b.queue {
		ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
		out, err := b.target.Deliver(ctx, input)
		cancel()
		if err != nil {
			b.logger.Warn("notification delivery failed", "kind", input.Kind, "delivered", out.Delivered, "error", err)
			continue
		}
		b.logger.Debug("notification delivered", "kind", input.Kind, "targets", out.Delivered)
	}
}
