package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/clickpath/internal/config"

	"go.uber.org/zap"
)

type fakeService struct {
	name     string
	startErr error
	block    bool
	stopped  atomic.Bool
}

func (s *fakeService) Name() string { return s.name }

func (s *fakeService) Start(ctx context.Context) error {
	if s.block {
		<-ctx.Done()
		return nil
	}
	return s.startErr
}

func (s *fakeService) Stop(context.Context) error {
	s.stopped.Store(true)
	return nil
}

func TestRunnerStopsAllServicesOnFailure(t *testing.T) {
	failing := &fakeService{name: "worker", startErr: errors.New("redis unreachable")}
	blocking := &fakeService{name: "http", block: true}

	err := NewRunner(blocking, failing).Run(context.Background(), time.Second, zap.NewNop().Sugar())
	if err == nil || err.Error() != "redis unreachable" {
		t.Fatalf("expected start error to surface, got %v", err)
	}
	if !failing.stopped.Load() || !blocking.stopped.Load() {
		t.Fatalf("every service should be stopped after a failure")
	}
}

func TestRunnerReturnsNilOnCancel(t *testing.T) {
	blocking := &fakeService{name: "http", block: true}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := NewRunner(blocking).Run(ctx, time.Second, nil); err != nil {
		t.Fatalf("cancelled context should stop cleanly, got %v", err)
	}
	if !blocking.stopped.Load() {
		t.Fatalf("service should be stopped")
	}
}

func TestRunnerRequiresServices(t *testing.T) {
	if err := NewRunner().Run(context.Background(), time.Second, nil); err == nil {
		t.Fatalf("empty runner should fail")
	}
}

func TestNormalizeOptionsDefaults(t *testing.T) {
	opts := normalizeOptions(Options{})
	if opts.Mode != ModeAll || opts.ShutdownTimeout != 10*time.Second || opts.Logger == nil {
		t.Fatalf("unexpected defaults: %+v", opts)
	}
	if NewHTTPService(":0", nil).Addr() != ":0" {
		t.Fatalf("http service should keep its address")
	}
}

func TestModeValidation(t *testing.T) {
	cases := []struct {
		name    string
		mode    string
		wantErr bool
	}{
		{name: "default", mode: "", wantErr: false},
		{name: "upper api", mode: " API ", wantErr: false},
		{name: "worker", mode: "worker", wantErr: false},
		{name: "typo", mode: "wroker", wantErr: true},
	}
	for _, tc := range cases {
		mode := normalizeOptions(Options{Mode: tc.mode}).Mode
		err := validateMode(mode)
		if (err != nil) != tc.wantErr {
			t.Fatalf("%s: mode %q wantErr=%v got %v", tc.name, mode, tc.wantErr, err)
		}
	}
	if _, _, err := BuildRunner(&config.Config{}, "wroker"); err == nil {
		t.Fatalf("unknown mode should be rejected before building services")
	}
}
