package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/example/go-toolhub/internal/assist"
	"github.com/example/go-toolhub/internal/config"
)

type nopAsker struct{}

func (nopAsker) Ask(context.Context, assist.Request) (assist.Answer, error) {
	return assist.Answer{Text: "ok"}, nil
}

func freeAddr(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close() // free it for the server
	return addr
}

func TestStart_LifecycleHealthAndShutdown(t *testing.T) {
	addr := freeAddr(t)

	cfg := config.DefaultConfig()
	cfg.Server.ListenAddr = addr

	s := New(cfg, nil).WithShutdownTimeout(2 * time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)

	go func() {
		errCh <- s.Start(ctx)
	}()

	// Wait for the server to be ready.
	client := &http.Client{Timeout: 2 * time.Second}

	var (
		resp *http.Response
		err  error
	)

	for range 50 {
		resp, err = client.Get(fmt.Sprintf("http://%s/health", addr))
		if err == nil {
			break
		}

		time.Sleep(20 * time.Millisecond)
	}

	if err != nil {
		t.Fatalf("server never became ready: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/health status = %d; want 200", resp.StatusCode)
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode /health: %v", err)
	}

	if body["status"] != "ok" {
		t.Errorf("status = %q; want ok", body["status"])
	}

	if err := ProbeHTTP(addr); err != nil {
		t.Errorf("ProbeHTTP() error = %v", err)
	}

	// Graceful shutdown.
	cancel()

	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("Start() returned error on shutdown: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Start() did not return within 5s of context cancel")
	}
}

func TestStart_ListenErrorIsReturned(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.ListenAddr = "256.0.0.1:http"

	err := New(cfg, nil).Start(context.Background())
	if err == nil || !strings.Contains(err.Error(), "http listen") {
		t.Fatalf("Start() error = %v; want http listen error", err)
	}
}

func TestProbeHTTP_Unreachable(t *testing.T) {
	if err := ProbeHTTP(freeAddr(t)); err == nil {
		t.Error("ProbeHTTP() = nil; want error for closed port")
	}
}

// --- New & WithShutdownTimeout ---

func TestNew_ShutdownTimeoutFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.ShutdownTimeout = 7

	if s := New(cfg, nil); s.shutdownTimeout != 7*time.Second {
		t.Errorf("shutdownTimeout = %v; want 7s", s.shutdownTimeout)
	}

	cfg.Server.ShutdownTimeout = 0
	if s := New(cfg, nil); s.shutdownTimeout != 30*time.Second {
		t.Errorf("shutdownTimeout = %v; want 30s fallback", s.shutdownTimeout)
	}
}

func TestWithShutdownTimeout_Chaining(t *testing.T) {
	s := New(config.DefaultConfig(), nil)
	returned := s.WithShutdownTimeout(10 * time.Second)
	// Must return the same *Server for chaining.
	if returned != s {
		t.Error("WithShutdownTimeout should return the same *Server")
	}
	if s.shutdownTimeout != 10*time.Second {
		t.Errorf("shutdownTimeout = %v; want 10s", s.shutdownTimeout)
	}
}

// --- runtimeAssistant ---

func TestRuntimeAssistant(t *testing.T) {
	cfg := config.DefaultConfig()

	got, err := New(cfg, nil).runtimeAssistant(context.Background())
	if err != nil || got != nil {
		t.Fatalf("no key: got (%v, %v); want (nil, nil)", got, err)
	}

	injected := nopAsker{}
	got, err = New(cfg, injected).runtimeAssistant(context.Background())
	if err != nil || got != injected {
		t.Fatalf("injected: got (%v, %v); want injected asker", got, err)
	}

	cfg.Assist.APIKey = "test-key"
	got, err = New(cfg, nil).runtimeAssistant(context.Background())
	if err != nil {
		t.Fatalf("with key: error = %v", err)
	}
	if _, ok := got.(*assist.Client); !ok {
		t.Errorf("with key: got %T; want *assist.Client", got)
	}
}
