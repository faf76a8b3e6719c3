package main

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/napolitain/solver-slayer/internal/config"
)

func testConfig() config.Config {
	cfg := config.DefaultConfig()
	cfg.API.Port = 18080
	return cfg
}

func TestNewHTTPServerAddr(t *testing.T) {
	srv := newHTTPServer(testConfig(), slog.New(slog.DiscardHandler))
	if srv.Addr != "127.0.0.1:18080" {
		t.Errorf("expected addr 127.0.0.1:18080, got %s", srv.Addr)
	}
}

func TestNewHTTPServerRoutes(t *testing.T) {
	srv := newHTTPServer(testConfig(), slog.New(slog.DiscardHandler))

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from /health, got %d", rec.Code)
	}
}

func TestServeStopsOnCancel(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := lis.Addr().String()
	lis.Close()

	cfg := testConfig()
	srv := newHTTPServer(cfg, slog.New(slog.DiscardHandler))
	srv.Addr = addr

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, srv, slog.New(slog.DiscardHandler)) }()

	// Wait for the listener to come up.
	var resp *http.Response
	for i := 0; i < 50; i++ {
		resp, err = http.Get("http://" + addr + "/health")
		if err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("server never became ready: %v", err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop after cancel")
	}
}
