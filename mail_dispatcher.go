package authcore

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
)

// mailDispatcher moves email delivery off the request path. Signup and
// password-reset handlers enqueue and return; a single background goroutine
// drains the queue and calls the host's Mailer. Delivery failures are logged
// and counted, never propagated back to the request that queued the message.
type mailDispatcher struct {
	cfg       MailConfig
	mailer    Mailer
	logger    *slog.Logger
	ch        chan Message
	done      chan struct{}
	wg        sync.WaitGroup
	dropped   atomic.Uint64
	closed    atomic.Bool
	closeOnce sync.Once
}

func newMailDispatcher(cfg MailConfig, mailer Mailer, logger *slog.Logger) *mailDispatcher {
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 1
	}
	if mailer == nil {
		mailer = NoOpMailer{}
	}

	d := &mailDispatcher{
		cfg:    cfg,
		mailer: mailer,
		logger: logger,
		ch:     make(chan Message, cfg.BufferSize),
		done:   make(chan struct{}),
	}

	d.wg.Add(1)
	go d.run()

	return d
}

func (d *mailDispatcher) run() {
	defer d.wg.Done()

	for {
		select {
		case msg := <-d.ch:
			d.deliver(msg)
		case <-d.done:
			for {
				select {
				case msg := <-d.ch:
					d.deliver(msg)
				default:
					return
				}
			}
		}
	}
}

func (d *mailDispatcher) deliver(msg Message) {
	if err := d.mailer.Send(context.Background(), msg); err != nil {
		d.logger.Error("mail delivery failed",
			"subject", msg.Subject,
			"recipients", len(msg.Recipients),
			"error", err,
		)
	}
}

// Enqueue hands a message to the dispatcher. The request context only bounds
// the enqueue itself; delivery continues after the request ends.
func (d *mailDispatcher) Enqueue(ctx context.Context, msg Message) {
	if d == nil || d.closed.Load() {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	if d.cfg.DropIfFull {
		select {
		case d.ch <- msg:
		case <-d.done:
		default:
			d.dropped.Add(1)
			d.logger.Warn("mail queue full, message dropped", "subject", msg.Subject)
		}
		return
	}

	select {
	case d.ch <- msg:
	case <-ctx.Done():
	case <-d.done:
	}
}

// Close drains the queue and stops the delivery goroutine.
func (d *mailDispatcher) Close() {
	if d == nil {
		return
	}
	d.closeOnce.Do(func() {
		d.closed.Store(true)
		close(d.done)
		d.wg.Wait()
	})
}

// Dropped reports messages discarded due to backpressure.
func (d *mailDispatcher) Dropped() uint64 {
	if d == nil {
		return 0
	}
	return d.dropped.Load()
}
