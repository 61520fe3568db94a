package notification

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DispatcherConfig sizes the worker pool.
type DispatcherConfig struct {
	Workers   int
	QueueSize int
	Timeout   time.Duration
}

// Dispatcher delivers events asynchronously through a Notifier. Publish never
// blocks the caller: events that do not fit in the queue, or arrive after
// Stop, are dropped and logged. Failed deliveries are logged and not retried.
type Dispatcher struct {
	notifier Notifier
	queue    chan Event
	timeout  time.Duration
	workers  int
	logger   zerolog.Logger

	mu      sync.RWMutex
	stopped bool
	wg      sync.WaitGroup
}

func NewDispatcher(notifier Notifier, cfg DispatcherConfig, logger zerolog.Logger) *Dispatcher {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.QueueSize < 1 {
		cfg.QueueSize = 1
	}
	return &Dispatcher{
		notifier: notifier,
		queue:    make(chan Event, cfg.QueueSize),
		timeout:  cfg.Timeout,
		workers:  cfg.Workers,
		logger:   logger.With().Str("component", "notification.dispatcher").Logger(),
	}
}

// Start launches the workers.
func (d *Dispatcher) Start() {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
}

// Publish enqueues event for delivery.
func (d *Dispatcher) Publish(event Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.stopped {
		d.logger.Warn().Str("event", event.Type).Msg("dispatcher stopped, dropping event")
		return
	}

	select {
	case d.queue <- event:
	default:
		d.logger.Warn().Str("event", event.Type).Msg("notification queue full, dropping event")
	}
}

// Stop closes intake and waits for queued deliveries to finish or ctx to end.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if !d.stopped {
		d.stopped = true
		close(d.queue)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for event := range d.queue {
		d.deliver(event)
	}
}

func (d *Dispatcher) deliver(event Event) {
	ctx := context.Background()
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			d.logger.Error().Interface("panic", r).Str("event", event.Type).Msg("notifier panicked")
		}
	}()

	start := time.Now()
	if err := d.notifier.Notify(ctx, event); err != nil {
		d.logger.Error().Err(err).Str("event", event.Type).Msg("notification failed")
		return
	}
	d.logger.Info().
		Str("event", event.Type).
		Dur("duration", time.Since(start)).
		Msg("notification sent")
}
