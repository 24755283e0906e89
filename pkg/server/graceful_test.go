package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"syscall"
	"testing"
	"time"

	"github.com/dd0wney/glsgraph/pkg/logging"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "ok")
	})
}

// startServer serves gs on a random local port and returns its URL plus a
// channel delivering Serve's result.
func startServer(t *testing.T, ctx context.Context, gs *GracefulServer) (string, <-chan error) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- gs.Serve(ctx, ln) }()
	return "http://" + ln.Addr().String(), done
}

// TestGracefulServer_ServeAndShutdown tests that cancelling the context drains the server
func TestGracefulServer_ServeAndShutdown(t *testing.T) {
	gs := NewGracefulServer("", okHandler(), Timeouts{Shutdown: time.Second}, logging.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	url, done := startServer(t, ctx, gs)

	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if string(body) != "ok" {
		t.Errorf("body = %q, want ok", body)
	}
	if gs.IsShuttingDown() {
		t.Error("Server should not be shutting down while serving")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve returned %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}

	if !gs.IsShuttingDown() {
		t.Error("Server should report shutdown")
	}
	select {
	case <-gs.ShutdownChannel():
	default:
		t.Error("ShutdownChannel should be closed")
	}
}

// TestGracefulServer_ConfigReload tests configuration reload via SIGHUP
func TestGracefulServer_ConfigReload(t *testing.T) {
	gs := NewGracefulServer("", okHandler(), Timeouts{}, nil)

	reloaded := make(chan struct{}, 1)
	gs.SetConfigReloadFunc(func() error {
		reloaded <- struct{}{}
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	url, done := startServer(t, ctx, gs)

	// Wait until the server answers so the SIGHUP handler is installed
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	resp.Body.Close()

	if err := syscall.Kill(syscall.Getpid(), syscall.SIGHUP); err != nil {
		t.Fatalf("Failed to send SIGHUP: %v", err)
	}

	select {
	case <-reloaded:
	case <-time.After(5 * time.Second):
		t.Fatal("Config reload function was not called")
	}
	if gs.IsShuttingDown() {
		t.Error("Server should not be shutting down after SIGHUP")
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Serve returned %v", err)
	}
}

// TestGracefulServer_ReloadConfig tests the ReloadConfig method
func TestGracefulServer_ReloadConfig(t *testing.T) {
	gs := NewGracefulServer(":0", okHandler(), Timeouts{}, nil)

	// No reload function configured is not an error
	if err := gs.ReloadConfig(); err != nil {
		t.Errorf("ReloadConfig() without function error = %v", err)
	}

	reloadCalled := false
	gs.SetConfigReloadFunc(func() error {
		reloadCalled = true
		return nil
	})

	if err := gs.ReloadConfig(); err != nil {
		t.Errorf("ReloadConfig() error = %v", err)
	}
	if !reloadCalled {
		t.Error("Config reload function was not called")
	}
}

// TestGracefulServer_ReloadConfigWithError tests error handling during reload
func TestGracefulServer_ReloadConfigWithError(t *testing.T) {
	gs := NewGracefulServer(":0", okHandler(), Timeouts{}, nil)
	gs.SetConfigReloadFunc(func() error {
		return http.ErrServerClosed
	})

	err := gs.ReloadConfig()
	if err != http.ErrServerClosed {
		t.Errorf("ReloadConfig() error = %v, want %v", err, http.ErrServerClosed)
	}
}

func TestGracefulServer_Timeouts(t *testing.T) {
	gs := NewGracefulServer(":0", okHandler(), Timeouts{Read: 5 * time.Second}, nil)

	if gs.server.ReadTimeout != 5*time.Second {
		t.Errorf("ReadTimeout = %v, want 5s", gs.server.ReadTimeout)
	}
	if gs.server.WriteTimeout != defaultWriteTimeout {
		t.Errorf("WriteTimeout = %v, want default", gs.server.WriteTimeout)
	}
	if gs.shutdownTimeout != defaultShutdownTimeout {
		t.Errorf("shutdownTimeout = %v, want default", gs.shutdownTimeout)
	}
}

func TestGracefulServer_RunBadAddr(t *testing.T) {
	gs := NewGracefulServer("not-an-address", okHandler(), Timeouts{}, nil)
	if err := gs.Run(context.Background()); err == nil {
		t.Error("Run with invalid address should fail")
	}
}
