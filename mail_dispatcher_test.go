package authcore

import (
	"context"
	"log/slog"
	"testing"
)

func newTestDispatcher(cfg MailConfig, mailer Mailer) *mailDispatcher {
	return newMailDispatcher(cfg, mailer, slog.Default())
}

func TestDispatcherDeliversAndDrainsOnClose(t *testing.T) {
	mailer := &captureMailer{}
	d := newTestDispatcher(MailConfig{BufferSize: 8}, mailer)

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		d.Enqueue(ctx, Message{Subject: "welcome", Recipients: []string{"a@x.com"}})
	}
	d.Close()

	if got := len(mailer.sent()); got != 5 {
		t.Fatalf("delivered %d messages, want 5", got)
	}
	if d.Dropped() != 0 {
		t.Fatalf("dropped = %d, want 0", d.Dropped())
	}
}

func TestDispatcherDropsWhenFull(t *testing.T) {
	// A mailer that never returns keeps the delivery goroutine busy so the
	// queue stays full.
	block := make(chan struct{})
	mailer := blockingMailer{unblock: block}

	d := newTestDispatcher(MailConfig{BufferSize: 1, DropIfFull: true}, mailer)
	t.Cleanup(func() {
		close(block)
		d.Close()
	})

	ctx := context.Background()
	// First message occupies the delivery goroutine, subsequent ones fill and
	// then overflow the single-slot buffer.
	for i := 0; i < 10; i++ {
		d.Enqueue(ctx, Message{Subject: "burst"})
	}

	if d.Dropped() == 0 {
		t.Fatal("no drops recorded for an overflowing queue")
	}
}

func TestDispatcherEnqueueAfterClose(t *testing.T) {
	mailer := &captureMailer{}
	d := newTestDispatcher(MailConfig{BufferSize: 4}, mailer)
	d.Close()

	d.Enqueue(context.Background(), Message{Subject: "late"}) // must not panic or block

	if got := len(mailer.sent()); got != 0 {
		t.Fatalf("delivered %d messages after close, want 0", got)
	}
}

func TestDispatcherCloseIdempotent(t *testing.T) {
	d := newTestDispatcher(MailConfig{BufferSize: 1}, &captureMailer{})
	d.Close()
	d.Close()
}

func TestDispatcherNilReceiver(t *testing.T) {
	var d *mailDispatcher
	d.Enqueue(context.Background(), Message{})
	d.Close()
	if d.Dropped() != 0 {
		t.Fatal("nil dispatcher reported drops")
	}
}

type blockingMailer struct {
	unblock <-chan struct{}
}

func (m blockingMailer) Send(_ context.Context, _ Message) error {
	<-m.unblock
	return nil
}
