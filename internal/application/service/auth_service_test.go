package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/melvingadgets/EasybuytrackerBackend/internal/domain/entity"
	"github.com/melvingadgets/EasybuytrackerBackend/pkg/apperror"
	"github.com/melvingadgets/EasybuytrackerBackend/pkg/utils"
)

func newAuthFixture(t *testing.T, users ...*entity.User) (*AuthService, *fakeSessionRepo) {
	t.Helper()
	sessions := newFakeSessionRepo()
	jwtManager := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	svc := NewAuthService(newFakeUserRepo(users...), newFakeRoleRepo("user", "admin"), sessions, jwtManager, nil)
	return svc, sessions
}

func seededUser(t *testing.T, password string) *entity.User {
	t.Helper()
	hashed, err := utils.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	user := testCustomer()
	user.Password = hashed
	return user
}

func TestLoginRecordsSession(t *testing.T) {
	user := seededUser(t, "hunter22well")
	svc, sessions := newAuthFixture(t, user)

	output, err := svc.Login(context.Background(), &LoginInput{
		Email:    user.Email,
		Password: "hunter22well",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if output.AccessToken == "" || output.RefreshToken == "" {
		t.Error("expected both tokens to be minted")
	}
	if len(sessions.sessions) != 1 {
		t.Fatalf("sessions = %d, want 1", len(sessions.sessions))
	}
	for _, s := range sessions.sessions {
		if !s.Active {
			t.Error("session should start active")
		}
		if s.UserID != user.ID {
			t.Errorf("session user = %v, want %v", s.UserID, user.ID)
		}
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	user := seededUser(t, "hunter22well")
	svc, _ := newAuthFixture(t, user)

	tests := []struct {
		name  string
		input LoginInput
	}{
		{"wrong password", LoginInput{Email: user.Email, Password: "wrong"}},
		{"unknown email", LoginInput{Email: "ghost@example.com", Password: "hunter22well"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), &tt.input)
			if !errors.Is(err, apperror.ErrInvalidCredentials) {
				t.Errorf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestLogoutEndsSession(t *testing.T) {
	user := seededUser(t, "hunter22well")
	svc, sessions := newAuthFixture(t, user)

	if _, err := svc.Login(context.Background(), &LoginInput{Email: user.Email, Password: "hunter22well"}); err != nil {
		t.Fatalf("Login: %v", err)
	}

	var jti string
	for k := range sessions.sessions {
		jti = k
	}

	active, err := svc.IsSessionActive(context.Background(), jti)
	if err != nil || !active {
		t.Fatalf("IsSessionActive before logout = %v, %v", active, err)
	}

	if err := svc.Logout(context.Background(), jti); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	active, err = svc.IsSessionActive(context.Background(), jti)
	if err != nil {
		t.Fatalf("IsSessionActive: %v", err)
	}
	if active {
		t.Error("session still active after logout")
	}
}

func TestIsSessionActiveUntrackedToken(t *testing.T) {
	svc, _ := newAuthFixture(t)

	// Tokens minted before session tracking have no session row.
	active, err := svc.IsSessionActive(context.Background(), "unknown-jti")
	if err != nil {
		t.Fatalf("IsSessionActive: %v", err)
	}
	if !active {
		t.Error("untracked tokens must stay valid")
	}
}

func TestRegisterAssignsDefaultRole(t *testing.T) {
	svc, _ := newAuthFixture(t)

	user, err := svc.Register(context.Background(), &RegisterInput{
		FullName: "Chidi Eze",
		Email:    "chidi@example.com",
		Password: "longenoughpass",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Provider != "local" {
		t.Errorf("provider = %q, want local", user.Provider)
	}
	if len(user.Roles) != 1 {
		t.Errorf("roles = %d, want 1 (default user role)", len(user.Roles))
	}

	_, err = svc.Register(context.Background(), &RegisterInput{
		FullName: "Chidi Eze",
		Email:    "chidi@example.com",
		Password: "longenoughpass",
	})
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != 409 {
		t.Errorf("duplicate email: expected 409, got %v", err)
	}
}
