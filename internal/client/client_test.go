package client

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmynk/billsplit/internal/auth"
	"github.com/mmynk/billsplit/internal/server"
	"github.com/mmynk/billsplit/internal/storage/sqlite"
	"github.com/mmynk/billsplit/internal/terminal"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "billsplit-client-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	srv := httptest.NewServer(server.NewHandler(server.Deps{
		Store:    store,
		JWT:      auth.NewJWTManager("test-secret", time.Hour),
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Registry: prometheus.NewRegistry(),
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantIs   error
		rejected string
	}{
		{"unauthenticated", connect.NewError(connect.CodeUnauthenticated, errors.New("missing token")), terminal.ErrUnauthenticated, ""},
		{"not found", connect.NewError(connect.CodeNotFound, errors.New("bill not found")), terminal.ErrNotFound, ""},
		{"unavailable", connect.NewError(connect.CodeUnavailable, errors.New("dial tcp")), terminal.ErrTransport, ""},
		{"plain error", errors.New("connection reset"), terminal.ErrTransport, ""},
		{"invalid argument", connect.NewError(connect.CodeInvalidArgument, errors.New("name is required")), nil, "name is required"},
		{"already exists", connect.NewError(connect.CodeAlreadyExists, errors.New("bill reference already in use")), nil, "bill reference already in use"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translate(tt.err)
			if tt.wantIs != nil && !errors.Is(got, tt.wantIs) {
				t.Errorf("translate(%v) = %v, want %v", tt.err, got, tt.wantIs)
			}
			if tt.rejected != "" {
				var rejected *terminal.RejectedError
				if !errors.As(got, &rejected) || rejected.Reason != tt.rejected {
					t.Errorf("translate(%v) = %v, want rejection %q", tt.err, got, tt.rejected)
				}
			}
		})
	}

	if translate(nil) != nil {
		t.Error("translate(nil) != nil")
	}
}

func TestAccount(t *testing.T) {
	srv := newServer(t)
	ctx := context.Background()
	c := New(http.DefaultClient, srv.URL+"/", "")

	if _, err := c.CurrentUser(ctx); !errors.Is(err, terminal.ErrUnauthenticated) {
		t.Fatalf("CurrentUser without session: %v", err)
	}

	user, err := c.Register(ctx, "alice@example.com", "Alice", "password123")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if c.Token() == "" {
		t.Fatal("Register did not keep a token")
	}

	got, err := c.CurrentUser(ctx)
	if err != nil {
		t.Fatalf("CurrentUser failed: %v", err)
	}
	if got.ID != user.ID || got.DisplayName != "Alice" {
		t.Errorf("CurrentUser = %+v, want %+v", got, user)
	}

	if err := c.Logout(ctx); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if c.Token() != "" {
		t.Error("Logout kept the token")
	}

	if _, err := c.Login(ctx, "alice@example.com", "wrong-password"); !errors.Is(err, terminal.ErrUnauthenticated) {
		t.Errorf("Login with wrong password: %v", err)
	}
	if _, err := c.Login(ctx, "alice@example.com", "password123"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	// A second client can reuse the saved token.
	again := New(http.DefaultClient, srv.URL, c.Token())
	if _, err := again.CurrentUser(ctx); err != nil {
		t.Errorf("CurrentUser with saved token: %v", err)
	}
}

func TestTerminalEndToEnd(t *testing.T) {
	srv := newServer(t)
	ctx := context.Background()
	c := New(http.DefaultClient, srv.URL, "")
	in := terminal.New(c, slog.New(slog.NewTextHandler(io.Discard, nil)))

	if msg := lastText(in.Execute(ctx, "list")); msg != "Failed to fetch bills. Please ensure you are signed in." {
		t.Errorf("list while signed out = %q", msg)
	}

	if _, err := c.Register(ctx, "alice@example.com", "Alice", "password123"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	out := in.Execute(ctx, `create "Dinner Bill" DB123456 RM; add DB123456 "Pizza" 25.50 2; add DB123456 "Soda" 4.50; tax DB123456 6; service DB123456 10; voucher DB123456 5`)
	if out.HasErrors() {
		t.Fatalf("batch failed: %+v", out.Messages)
	}
	if len(out.Messages) != 7 {
		t.Errorf("got %d messages, want 7: %+v", len(out.Messages), out.Messages)
	}

	out = in.Execute(ctx, "create Again DB123456")
	if msg := lastText(out); msg != "Reference DB123456 is already used by another bill" {
		t.Errorf("duplicate create = %q", msg)
	}

	show := lastText(in.Execute(ctx, "show DB123456"))
	for _, want := range []string{
		"  1. Pizza: 25.5 × 2 = 51\n",
		"  2. Soda: 4.5 × 1 = 4.5\n",
		"Subtotal: 55.50",
		"Service Charge (10%): 5.55",
		"Tax (6%): 3.66",
		"Total: 59.71",
	} {
		if !strings.Contains(show, want) {
			t.Errorf("show output missing %q:\n%s", want, show)
		}
	}

	if msg := lastText(in.Execute(ctx, "remove DB123456 3")); msg != "Invalid item index: 3. This bill has 2 items (valid range 1-2)." {
		t.Errorf("remove out of range = %q", msg)
	}
	if out := in.Execute(ctx, "remove DB123456 1"); out.HasErrors() {
		t.Fatalf("remove failed: %+v", out.Messages)
	}

	bills, err := c.ListBills(ctx)
	if err != nil {
		t.Fatalf("ListBills failed: %v", err)
	}
	var names []string
	for _, item := range bills[0].Items {
		names = append(names, item.Name)
	}
	if diff := cmp.Diff([]string{"Soda"}, names); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
	if got := bills[0].Summary.Subtotal; got != 4.5 {
		t.Errorf("subtotal = %v, want 4.5", got)
	}

	out = in.Execute(ctx, "edit DB123456 visibility read-only; list")
	if out.HasErrors() {
		t.Fatalf("edit failed: %+v", out.Messages)
	}
	if msg := lastText(out); msg != "Found 1 bill:\n• Dinner Bill (DB123456) - RM - READ_ONLY" {
		t.Errorf("list = %q", msg)
	}
}

func TestTerminalTransportError(t *testing.T) {
	srv := newServer(t)
	url := srv.URL
	srv.Close()

	c := New(http.DefaultClient, url, "token")
	msg := lastText(terminal.New(c, nil).Execute(context.Background(), "create Trip"))
	if msg != "Network error while creating bill." {
		t.Errorf("message = %q", msg)
	}
}

func lastText(out terminal.Output) string {
	if len(out.Messages) == 0 {
		return ""
	}
	return out.Messages[len(out.Messages)-1].Text
}
