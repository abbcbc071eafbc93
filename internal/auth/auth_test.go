package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mmynk/billsplit/internal/models"
	"github.com/mmynk/billsplit/internal/storage"
)

type memUsers struct {
	byEmail map[string]*models.User
}

func (m *memUsers) CreateUser(_ context.Context, user *models.User) error {
	if _, ok := m.byEmail[user.Email]; ok {
		return fmt.Errorf("%w: %s", storage.ErrDuplicateEmail, user.Email)
	}
	m.byEmail[user.Email] = user
	return nil
}

func (m *memUsers) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	if u, ok := m.byEmail[email]; ok {
		return u, nil
	}
	return nil, storage.ErrNotFound
}

func (m *memUsers) GetUserByID(_ context.Context, id string) (*models.User, error) {
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, storage.ErrNotFound
}

func TestPasswordAuthenticator(t *testing.T) {
	ctx := context.Background()
	a := NewPasswordAuthenticator(&memUsers{byEmail: map[string]*models.User{}})

	user, err := a.Register(ctx, " Alice@Example.com ", "Alice", "correct-horse")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("email not normalized: %q", user.Email)
	}

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"valid", "alice@example.com", "correct-horse", nil},
		{"case-insensitive email", "ALICE@example.com", "correct-horse", nil},
		{"wrong password", "alice@example.com", "battery-staple", ErrInvalidCredentials},
		{"unknown user", "bob@example.com", "correct-horse", ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := a.Authenticate(ctx, tt.email, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Authenticate() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && got.ID != user.ID {
				t.Errorf("Authenticate() returned user %s, want %s", got.ID, user.ID)
			}
		})
	}

	t.Run("register rejects", func(t *testing.T) {
		if _, err := a.Register(ctx, "alice@example.com", "Again", "correct-horse"); !errors.Is(err, ErrEmailExists) {
			t.Errorf("duplicate: got %v, want ErrEmailExists", err)
		}
		if _, err := a.Register(ctx, "carol@example.com", "Carol", "short"); !errors.Is(err, ErrWeakPassword) {
			t.Errorf("weak: got %v, want ErrWeakPassword", err)
		}
		if _, err := a.Register(ctx, "not-an-email", "Dan", "long-enough"); !errors.Is(err, ErrInvalidEmail) {
			t.Errorf("email: got %v, want ErrInvalidEmail", err)
		}
	})
}

func TestJWTManager(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	user := &models.User{ID: "user-1", Email: "alice@example.com", DisplayName: "Alice"}

	token, err := m.Generate(user)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.UserID() != "user-1" || claims.Email != "alice@example.com" || claims.Name != "Alice" || claims.Issuer != Issuer {
		t.Errorf("unexpected claims: %+v", claims)
	}

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTManager("other-secret", time.Hour)
		if _, err := other.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("got %v, want ErrInvalidToken", err)
		}
	})

	t.Run("foreign issuer", func(t *testing.T) {
		foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "someone-else",
				Subject:   "user-1",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})
		tok, err := foreign.SignedString([]byte("test-secret"))
		if err != nil {
			t.Fatalf("SignedString failed: %v", err)
		}
		if _, err := m.Validate(tok); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("got %v, want ErrInvalidToken", err)
		}
	})

	t.Run("expired", func(t *testing.T) {
		expired := NewJWTManager("test-secret", -time.Minute)
		tok, err := expired.Generate(user)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if _, err := m.Validate(tok); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("got %v, want ErrInvalidToken", err)
		}
	})
}

func TestTokenFromHeader(t *testing.T) {
	tests := []struct {
		name    string
		header  http.Header
		want    string
		wantErr error
	}{
		{"bearer", http.Header{"Authorization": {"Bearer abc"}}, "abc", nil},
		{"cookie", http.Header{"Cookie": {"theme=dark; auth-token=xyz"}}, "xyz", nil},
		{"bearer wins over cookie", http.Header{"Authorization": {"Bearer abc"}, "Cookie": {"auth-token=xyz"}}, "abc", nil},
		{"malformed bearer", http.Header{"Authorization": {"Token abc"}}, "", ErrInvalidToken},
		{"missing", http.Header{}, "", ErrMissingToken},
		{"empty cookie", http.Header{"Cookie": {"auth-token="}}, "", ErrMissingToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TokenFromHeader(tt.header)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("TokenFromHeader() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("TokenFromHeader() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSessionCookie(t *testing.T) {
	c := SessionCookie("tok", 24*time.Hour, true)
	if c.Name != CookieName || c.Value != "tok" || !c.HttpOnly || !c.Secure || c.SameSite != http.SameSiteLaxMode {
		t.Errorf("unexpected cookie: %+v", c)
	}
	if c.MaxAge != 86400 {
		t.Errorf("MaxAge = %d, want 86400", c.MaxAge)
	}

	cleared := ClearedCookie(false)
	if cleared.MaxAge >= 0 || cleared.Value != "" {
		t.Errorf("cleared cookie still valid: %+v", cleared)
	}
}
