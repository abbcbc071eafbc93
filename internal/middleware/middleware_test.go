package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mmynk/billsplit/internal/auth"
	"github.com/mmynk/billsplit/internal/models"
)

type empty struct{}

// captureUser is a terminal handler recording the identity it was called with.
func captureUser(got *string) connect.UnaryFunc {
	return func(ctx context.Context, _ connect.AnyRequest) (connect.AnyResponse, error) {
		*got = GetUserID(ctx)
		return connect.NewResponse(&empty{}), nil
	}
}

func TestRequireAuth(t *testing.T) {
	jwtManager := auth.NewJWTManager("secret", time.Hour)
	token, err := jwtManager.Generate(&models.User{ID: "user-1", Email: "a@example.com"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	tests := []struct {
		name     string
		header   map[string]string
		wantUser string
		wantCode connect.Code
	}{
		{"bearer header", map[string]string{"Authorization": "Bearer " + token}, "user-1", 0},
		{"cookie", map[string]string{"Cookie": auth.CookieName + "=" + token}, "user-1", 0},
		{"missing", nil, "", connect.CodeUnauthenticated},
		{"garbage token", map[string]string{"Authorization": "Bearer nope"}, "", connect.CodeUnauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := connect.NewRequest(&empty{})
			for k, v := range tt.header {
				req.Header().Set(k, v)
			}

			var gotUser string
			_, err := RequireAuth(jwtManager)(captureUser(&gotUser))(context.Background(), req)
			if tt.wantCode != 0 {
				if connect.CodeOf(err) != tt.wantCode {
					t.Fatalf("code = %v, want %v", connect.CodeOf(err), tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if gotUser != tt.wantUser {
				t.Errorf("user = %q, want %q", gotUser, tt.wantUser)
			}
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	jwtManager := auth.NewJWTManager("secret", time.Hour)

	req := connect.NewRequest(&empty{})
	req.Header().Set("Authorization", "Bearer invalid")

	var gotUser string
	if _, err := OptionalAuth(jwtManager)(captureUser(&gotUser))(context.Background(), req); err != nil {
		t.Fatalf("optional auth must not fail: %v", err)
	}
	if gotUser != "" {
		t.Errorf("user = %q, want empty", gotUser)
	}
}

func TestLoggingInterceptor(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	failing := func(context.Context, connect.AnyRequest) (connect.AnyResponse, error) {
		return nil, connect.NewError(connect.CodeNotFound, errors.New("bill not found"))
	}
	_, err := LoggingInterceptor(logger)(failing)(context.Background(), connect.NewRequest(&empty{}))
	if connect.CodeOf(err) != connect.CodeNotFound {
		t.Fatalf("error not passed through: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "code=not_found") {
		t.Errorf("unexpected log output: %s", out)
	}
}

func TestMetricsInterceptor(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	ok := func(context.Context, connect.AnyRequest) (connect.AnyResponse, error) {
		return connect.NewResponse(&empty{}), nil
	}
	failing := func(context.Context, connect.AnyRequest) (connect.AnyResponse, error) {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("bad"))
	}

	for i := 0; i < 2; i++ {
		m.Interceptor()(ok)(context.Background(), connect.NewRequest(&empty{}))
	}
	m.Interceptor()(failing)(context.Background(), connect.NewRequest(&empty{}))

	// Hand-built requests carry an empty procedure.
	if got := testutil.ToFloat64(m.requests.WithLabelValues("", "ok")); got != 2 {
		t.Errorf("ok count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.requests.WithLabelValues("", "invalid_argument")); got != 1 {
		t.Errorf("invalid_argument count = %v, want 1", got)
	}
}
