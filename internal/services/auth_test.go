package services

import (
	"context"
	"testing"
	"time"

	"github.com/Mikayuko/projectbingsu/internal/platform/ctxutil"
	"github.com/Mikayuko/projectbingsu/internal/repos"
	"github.com/Mikayuko/projectbingsu/internal/types"
)

func newAuthTestService(t *testing.T) AuthService {
	t.Helper()
	gdb := setupTestDB(t)
	log := mustTestLogger(t)
	userRepo := repos.NewUserRepo(gdb, log)
	tokenRepo := repos.NewUserTokenRepo(gdb, log)
	return NewAuthService(gdb, log, userRepo, tokenRepo, "test-secret", time.Hour, 24*time.Hour)
}

func registerTestUser(t *testing.T, auth AuthService, email string) {
	t.Helper()
	err := auth.RegisterUser(context.Background(), &types.User{
		Email:     email,
		FirstName: "Snow",
		LastName:  "Kim",
		Password:  "hunter2hunter2",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
}

func TestRegisterNeverGrantsAdmin(t *testing.T) {
	auth := newAuthTestService(t)
	ctx := context.Background()

	err := auth.RegisterUser(ctx, &types.User{
		Email:     "staff@example.com",
		FirstName: "Snow",
		LastName:  "Kim",
		Password:  "hunter2hunter2",
		IsAdmin:   true,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	access, _, err := auth.LoginUser(ctx, "staff@example.com", "hunter2hunter2")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	authedCtx, err := auth.SetContextFromToken(ctx, access)
	if err != nil {
		t.Fatalf("set context: %v", err)
	}
	rd := ctxutil.GetRequestData(authedCtx)
	if rd == nil || rd.IsAdmin {
		t.Fatalf("self-registered user must not be admin: %+v", rd)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	auth := newAuthTestService(t)
	registerTestUser(t, auth, "dup@example.com")

	err := auth.RegisterUser(context.Background(), &types.User{
		Email:     "DUP@example.com",
		FirstName: "Other",
		LastName:  "Person",
		Password:  "hunter2hunter2",
	})
	if err == nil {
		t.Fatalf("duplicate email should be rejected")
	}
}

func TestLoginRefreshLogoutFlow(t *testing.T) {
	auth := newAuthTestService(t)
	ctx := context.Background()
	registerTestUser(t, auth, "flow@example.com")

	if _, _, err := auth.LoginUser(ctx, "flow@example.com", "wrong"); err == nil {
		t.Fatalf("wrong password should fail")
	}

	access, refresh, err := auth.LoginUser(ctx, "flow@example.com", "hunter2hunter2")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	authedCtx, err := auth.SetContextFromToken(ctx, access)
	if err != nil {
		t.Fatalf("set context: %v", err)
	}
	rd := ctxutil.GetRequestData(authedCtx)
	if rd == nil || rd.RefreshToken != refresh {
		t.Fatalf("request data should carry the session refresh token")
	}

	newAccess, newRefresh, err := auth.RefreshUser(authedCtx)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if newAccess == access || newRefresh == refresh {
		t.Fatalf("refresh must rotate both tokens")
	}

	// Rotation revokes the old pair.
	if _, err := auth.SetContextFromToken(ctx, access); err == nil {
		t.Fatalf("old access token should be revoked after refresh")
	}

	rotatedCtx, err := auth.SetContextFromToken(ctx, newAccess)
	if err != nil {
		t.Fatalf("set context with rotated token: %v", err)
	}
	if err := auth.LogoutUser(rotatedCtx); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := auth.SetContextFromToken(ctx, newAccess); err == nil {
		t.Fatalf("access token should be revoked after logout")
	}
}

func TestEnsureAdminBootstrapAndPromotion(t *testing.T) {
	auth := newAuthTestService(t)
	ctx := context.Background()

	if err := auth.EnsureAdmin(ctx, "owner@example.com", "correcthorse"); err != nil {
		t.Fatalf("bootstrap admin: %v", err)
	}
	access, _, err := auth.LoginUser(ctx, "owner@example.com", "correcthorse")
	if err != nil {
		t.Fatalf("admin login: %v", err)
	}
	authedCtx, err := auth.SetContextFromToken(ctx, access)
	if err != nil {
		t.Fatalf("set context: %v", err)
	}
	if rd := ctxutil.GetRequestData(authedCtx); rd == nil || !rd.IsAdmin {
		t.Fatalf("bootstrapped account should be admin")
	}

	// Running it again is a no-op, and existing accounts get promoted.
	if err := auth.EnsureAdmin(ctx, "owner@example.com", "correcthorse"); err != nil {
		t.Fatalf("repeat bootstrap: %v", err)
	}

	registerTestUser(t, auth, "promoted@example.com")
	if err := auth.EnsureAdmin(ctx, "promoted@example.com", "irrelevant"); err != nil {
		t.Fatalf("promote existing: %v", err)
	}
	access, _, err = auth.LoginUser(ctx, "promoted@example.com", "hunter2hunter2")
	if err != nil {
		t.Fatalf("promoted login: %v", err)
	}
	authedCtx, err = auth.SetContextFromToken(ctx, access)
	if err != nil {
		t.Fatalf("set context: %v", err)
	}
	if rd := ctxutil.GetRequestData(authedCtx); rd == nil || !rd.IsAdmin {
		t.Fatalf("existing account should have been promoted to admin")
	}
}
