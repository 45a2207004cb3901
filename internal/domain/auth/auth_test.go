package auth

import (
	"errors"
	"testing"
	"time"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("super-secret")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}

	if err := CheckPassword(hash, "super-secret"); err != nil {
		t.Fatalf("expected password to match, got %v", err)
	}

	if err := CheckPassword(hash, "wrong"); err == nil {
		t.Fatal("expected mismatch error")
	}
}

func TestGenerateAndParseToken(t *testing.T) {
	secret := "test-secret"
	token, err := GenerateToken(secret, Claims{Email: "ops@company.com", Role: RoleOperator}, time.Hour, time.Now())
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	parsed, err := ParseToken(secret, token)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if parsed.Email != "ops@company.com" || parsed.Role != RoleOperator || parsed.Subject != "ops@company.com" {
		t.Fatalf("claims mismatch: %+v", parsed)
	}

	if _, err := ParseToken("other-secret", token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token for wrong secret, got %v", err)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	token, err := GenerateToken("s", Claims{Email: "ops@company.com", Role: RoleOperator}, time.Minute, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	if _, err := ParseToken("s", token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected expired token to be rejected, got %v", err)
	}
}

func TestServiceLogin(t *testing.T) {
	hash, err := HashPassword("letmein")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	svc := NewService("Ops@Company.com", hash, "secret", time.Hour)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "valid", email: "ops@company.com", password: "letmein"},
		{name: "wrong password", email: "ops@company.com", password: "nope", wantErr: ErrInvalidCredentials},
		{name: "wrong email", email: "someone@company.com", password: "letmein", wantErr: ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := svc.Login(tt.email, tt.password)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("login: %v", err)
			}
			user, err := svc.Authenticate(session.Token)
			if err != nil {
				t.Fatalf("authenticate: %v", err)
			}
			if user.Role != RoleOperator {
				t.Fatalf("unexpected role %q", user.Role)
			}
		})
	}
}

func TestServiceNotConfigured(t *testing.T) {
	svc := NewService("", "", "secret", time.Hour)
	if _, err := svc.Login("a@b.com", "x"); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	if NewService("", "", "", time.Hour).Enabled() {
		t.Fatal("service without secret should be disabled")
	}
}
