package check

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/calebfornari/listerine/internal/monitor"
)

func TestResolve_FileRelative(t *testing.T) {
	dir := t.TempDir()
	writeExecutable(t, dir, "disk_ok", "#!/bin/sh\necho true\n")

	assert, err := Resolve("file://disk_ok", Opts{Monitor: "disk", ChecksDir: dir})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	ok, err := assert(context.Background())
	if err != nil {
		t.Fatalf("assert: %v", err)
	}
	if !ok {
		t.Error("verdict = false, want true")
	}
}

func TestResolve_FileAbsolute(t *testing.T) {
	path := tempScript(t, "#!/bin/sh\necho false\n")

	assert, err := Resolve("file://"+path, Opts{Monitor: "m"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	ok, err := assert(context.Background())
	if err != nil {
		t.Fatalf("assert: %v", err)
	}
	if ok {
		t.Error("verdict = true, want false")
	}
}

func TestResolve_FileMissing(t *testing.T) {
	_, err := Resolve("file://nonexistent", Opts{Monitor: "m", ChecksDir: t.TempDir()})
	if err == nil {
		t.Fatal("expected error for missing check")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("error = %q, want not-found message", err.Error())
	}
}

func TestResolve_UnsupportedScheme(t *testing.T) {
	_, err := Resolve("ftp://example.com/check", Opts{Monitor: "m"})
	if err == nil {
		t.Fatal("expected error for unsupported scheme")
	}
	if !monitor.IsConfigError(err) {
		t.Errorf("error = %v, want ConfigError", err)
	}
}

func TestResolve_HTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	assert, err := Resolve(srv.URL, Opts{Monitor: "web"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	ok, err := assert(context.Background())
	if err != nil {
		t.Fatalf("assert: %v", err)
	}
	if !ok {
		t.Error("verdict = false, want true for 200")
	}
}

func TestURL_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	ok, err := URL(srv.URL, 0)(context.Background())
	if ok {
		t.Error("verdict = true, want false for 503")
	}
	if err == nil || !strings.Contains(err.Error(), "503") {
		t.Errorf("error = %v, want to mention the 503 status", err)
	}
}

func TestURL_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // port now refuses connections

	ok, err := URL(srv.URL, 0)(context.Background())
	if ok {
		t.Error("verdict = true, want false")
	}
	if err == nil {
		t.Fatal("expected transport error")
	}
}
