package notifier

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type stubEmailService struct {
	mu    sync.Mutex
	sent  []string
	fail  bool
	block time.Duration
	done  chan struct{}
}

func (s *stubEmailService) SendOTP(toEmail, otp string) error { return nil }

func (s *stubEmailService) SendAlert(toEmail, appName, alertLevel, message, endpoint string) error {
	if s.block > 0 {
		time.Sleep(s.block)
	}
	defer func() {
		if s.done != nil {
			s.done <- struct{}{}
		}
	}()
	if s.fail {
		return errors.New("smtp unavailable")
	}
	s.mu.Lock()
	s.sent = append(s.sent, toEmail)
	s.mu.Unlock()
	return nil
}

func (s *stubEmailService) sentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

type stubPush struct {
	mu       sync.Mutex
	payloads []interface{}
	done     chan struct{}
}

func (p *stubPush) Broadcast(messageType string, payload interface{}) {
	p.mu.Lock()
	p.payloads = append(p.payloads, payload)
	p.mu.Unlock()
	if p.done != nil {
		p.done <- struct{}{}
	}
}

func (p *stubPush) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.payloads)
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func sampleMessage() *AlertMessage {
	return &AlertMessage{
		AlertId:    "a-1",
		ErrorLogId: "e-1",
		AppName:    "Checkout",
		AlertLevel: "CRITICAL",
		Message:    "NullReferenceException",
		Recipients: []string{"ops@example.com", "oncall@example.com"},
	}
}

func TestDispatcherDeliversEmailAndPush(t *testing.T) {
	email := &stubEmailService{}
	push := &stubPush{done: make(chan struct{}, 1)}
	d := NewDispatcher(8, email, push, nopLogger{}, time.Second)
	defer d.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := d.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if err := d.Enqueue(ctx, sampleMessage()); err != nil {
		t.Fatalf("Enqueue() error = %v", err)
	}

	select {
	case <-push.done:
	case <-time.After(2 * time.Second):
		t.Fatal("push broadcast never happened")
	}

	if email.sentCount() != 2 {
		t.Errorf("emails sent = %d, want 2", email.sentCount())
	}
	if push.count() != 1 {
		t.Errorf("push broadcasts = %d, want 1", push.count())
	}
}

func TestDispatcherEmailFailureStillPushes(t *testing.T) {
	email := &stubEmailService{fail: true}
	push := &stubPush{done: make(chan struct{}, 1)}
	d := NewDispatcher(8, email, push, nopLogger{}, time.Second)
	defer d.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := d.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if err := d.Enqueue(ctx, sampleMessage()); err != nil {
		t.Fatalf("Enqueue() error = %v", err)
	}

	select {
	case <-push.done:
	case <-time.After(2 * time.Second):
		t.Fatal("push must happen even when every email fails")
	}

	if email.sentCount() != 0 {
		t.Errorf("emails sent = %d, want 0", email.sentCount())
	}
}

func TestDispatcherTimesOutSlowSmtp(t *testing.T) {
	email := &stubEmailService{block: 500 * time.Millisecond, done: make(chan struct{}, 4)}
	push := &stubPush{done: make(chan struct{}, 1)}
	d := NewDispatcher(8, email, push, nopLogger{}, 10*time.Millisecond)
	defer d.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := d.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	start := time.Now()
	if err := d.Enqueue(ctx, sampleMessage()); err != nil {
		t.Fatalf("Enqueue() error = %v", err)
	}

	select {
	case <-push.done:
	case <-time.After(2 * time.Second):
		t.Fatal("delivery never finished")
	}

	// Two recipients, each capped at 10ms, must finish well under the 1s the
	// SMTP stub would otherwise block for.
	if elapsed := time.Since(start); elapsed > 400*time.Millisecond {
		t.Errorf("delivery took %s, timeout did not engage", elapsed)
	}
}

func TestDispatcherEnqueueDoesNotBlockCaller(t *testing.T) {
	email := &stubEmailService{}
	push := &stubPush{}
	d := NewDispatcher(8, email, push, nopLogger{}, time.Second)
	defer d.Close()

	// No worker started: the queue simply buffers.
	ctx := context.Background()
	done := make(chan struct{})
	go func() {
		for i := 0; i < 4; i++ {
			if err := d.Enqueue(ctx, sampleMessage()); err != nil {
				t.Errorf("Enqueue() error = %v", err)
			}
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Enqueue blocked although the queue has capacity")
	}
}
