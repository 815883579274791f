package kafka

import (
	"context"
	"testing"
	"time"
)

// Graceful shutdown closes every producer, cancels the shared context, and
// then waits. Close and cancellation can both reach the inbox close; the
// sequence must drain cleanly rather than panic on a double close.
func TestProducerShutdownSequence(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var producers []*Producer
	for _, topic := range []string{"a", "b", "c", "d"} {
		p := NewProducer([]string{"127.0.0.1:1"}, topic, 8)
		p.Start(ctx)
		producers = append(producers, p)
	}

	for _, p := range producers {
		p.Close()
	}
	cancel()

	done := make(chan struct{})
	go func() {
		for _, p := range producers {
			p.WaitClosed()
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("producers did not shut down")
	}
}

func TestProducerCloseIdempotent(t *testing.T) {
	p := NewProducer([]string{"127.0.0.1:1"}, "a", 1)
	p.Start(context.Background())

	p.Close()
	p.Close()
	p.WaitClosed()
}
