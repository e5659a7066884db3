package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"axisconv/internal/adapter/memory"
	"axisconv/internal/config"
)

type closeRecorder struct{ closed int }

func (c *closeRecorder) Close() error {
	c.closed++
	return nil
}

func quietLog(t *testing.T) {
	t.Helper()
	originalOutput := log.Writer()
	log.SetOutput(io.Discard)
	t.Cleanup(func() { log.SetOutput(originalOutput) })
}

func TestRun_ClosesStoreWhenOIDCDiscoveryFails(t *testing.T) {
	quietLog(t)
	issuer := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(issuer.Close)

	rec := &closeRecorder{}
	open := func(config.Config) (store, io.Closer, error) {
		return memory.New(), rec, nil
	}
	cfg := config.Config{
		Addr: "127.0.0.1:0",
		OIDC: config.OIDC{Issuer: issuer.URL, ClientID: "axisconv", RedirectURL: "http://localhost/cb"},
	}

	err := run(context.Background(), cfg, open)
	if err == nil || !strings.Contains(err.Error(), "oidc discovery") {
		t.Fatalf("expected oidc discovery error, got %v", err)
	}
	if rec.closed != 1 {
		t.Fatalf("expected store closed once, got %d", rec.closed)
	}
}

func TestRun_OpenError(t *testing.T) {
	quietLog(t)
	boom := errors.New("boom")
	open := func(config.Config) (store, io.Closer, error) {
		return nil, nil, boom
	}
	if err := run(context.Background(), config.Config{}, open); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped open error, got %v", err)
	}
}

func TestRun_ShutsDownOnCancel(t *testing.T) {
	quietLog(t)
	rec := &closeRecorder{}
	open := func(config.Config) (store, io.Closer, error) {
		return memory.New(), rec, nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := run(ctx, config.Config{Addr: "127.0.0.1:0", DisableAuth: true}, open); err != nil {
		t.Fatalf("expected clean shutdown, got %v", err)
	}
	if rec.closed != 1 {
		t.Fatalf("expected store closed once, got %d", rec.closed)
	}
}
