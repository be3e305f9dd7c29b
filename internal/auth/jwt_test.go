package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestManager(ttl time.Duration) *TokenManager {
	return NewTokenManager(
		"user-secret-user-secret-user-secret!",
		"admin-secret-admin-secret-admin-sec!",
		ttl,
	)
}

func TestRequireRole(t *testing.T) {
	tm := newTestManager(time.Hour)
	subject := uuid.NewString()

	userToken, err := tm.MintUser(subject, "Maria")
	if err != nil {
		t.Fatalf("mint user: %v", err)
	}
	adminToken, err := tm.MintAdmin(subject, "Admin")
	if err != nil {
		t.Fatalf("mint admin: %v", err)
	}

	tests := []struct {
		name    string
		token   string
		role    Role
		wantErr error
	}{
		{"user token on user route", userToken, RoleUser, nil},
		{"admin token on admin route", adminToken, RoleAdmin, nil},
		{"user token on admin route", userToken, RoleAdmin, ErrWrongRole},
		{"admin token on user route", adminToken, RoleUser, ErrWrongRole},
		{"missing token", "", RoleUser, ErrTokenMissing},
		{"garbage token", "not-a-jwt", RoleUser, ErrTokenInvalid},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			identity, err := tm.RequireRole(tc.token, tc.role)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v got %v", tc.wantErr, err)
			}
			if tc.wantErr == nil {
				if identity.Subject != subject {
					t.Fatalf("expected subject %s got %s", subject, identity.Subject)
				}
				if identity.Role != tc.role {
					t.Fatalf("expected role %s got %s", tc.role, identity.Role)
				}
			}
		})
	}
}

func TestRequireRoleExpired(t *testing.T) {
	tm := newTestManager(-time.Minute)

	token, err := tm.MintUser(uuid.NewString(), "Maria")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	if _, err := tm.RequireRole(token, RoleUser); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired got %v", err)
	}
	// Expirado no papel errado também reporta expiração, não papel.
	if _, err := tm.RequireRole(token, RoleAdmin); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired got %v", err)
	}

	// A classificação livre também distingue expiração de assinatura inválida.
	if _, err := tm.Classify(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired from Classify got %v", err)
	}

	adminToken, err := tm.MintAdmin(uuid.NewString(), "Admin")
	if err != nil {
		t.Fatalf("mint admin: %v", err)
	}
	if _, err := tm.Classify(adminToken); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired for expired admin token got %v", err)
	}
}

func TestRequireRoleForeignSignature(t *testing.T) {
	tm := newTestManager(time.Hour)
	foreign := NewTokenManager(
		"other-secret-other-secret-other-sec!",
		"fourth-secret-fourth-secret-fourth!!",
		time.Hour,
	)

	token, err := foreign.MintUser(uuid.NewString(), "Maria")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	if _, err := tm.RequireRole(token, RoleUser); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid got %v", err)
	}
}

func TestClassify(t *testing.T) {
	tm := newTestManager(time.Hour)

	userToken, _ := tm.MintUser(uuid.NewString(), "Maria")
	adminToken, _ := tm.MintAdmin(uuid.NewString(), "Admin")

	identity, err := tm.Classify(userToken)
	if err != nil {
		t.Fatalf("classify user: %v", err)
	}
	if identity.Role != RoleUser {
		t.Fatalf("expected role user got %s", identity.Role)
	}

	identity, err = tm.Classify(adminToken)
	if err != nil {
		t.Fatalf("classify admin: %v", err)
	}
	if identity.Role != RoleAdmin {
		t.Fatalf("expected role admin got %s", identity.Role)
	}

	if _, err := tm.Classify("bogus"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid got %v", err)
	}
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3nh4-forte")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	match, err := VerifyPassword("s3nh4-forte", hash)
	if err != nil || !match {
		t.Fatalf("expected match, got match=%v err=%v", match, err)
	}

	match, err = VerifyPassword("outra-senha", hash)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if match {
		t.Fatal("expected mismatch")
	}
}
