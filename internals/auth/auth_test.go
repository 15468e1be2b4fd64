package auth

import (
	"context"
	"testing"

	"github.com/footstocks/api-server/internals/store"
	"github.com/footstocks/api-server/pkg/kvstore"

	"github.com/shopspring/decimal"
)

func newAuthService() (*AuthService, *store.MemStore) {
	ms := store.NewMemStore()
	return New(kvstore.NewMemory(), ms, "test-secret", decimal.NewFromInt(1000)), ms
}

func TestSignUpCreditsStartingBalance(t *testing.T) {
	a, ms := newAuthService()
	ctx := context.Background()

	err := a.SignUp(ctx, SignUpRequestBody{Username: "tester", Email: "tester@example.com", Password: "pass"})
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	account, err := ms.GetAccountByEmail(ctx, "tester@example.com")
	if err != nil {
		t.Fatalf("account not created: %v", err)
	}
	if !account.Balance.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("starting balance = %s, want 1000", account.Balance)
	}
	if account.Username != "tester" {
		t.Errorf("username = %s, want tester", account.Username)
	}
}

func TestSignUpValidation(t *testing.T) {
	a, _ := newAuthService()
	ctx := context.Background()

	tests := []struct {
		name string
		body SignUpRequestBody
	}{
		{name: "missing email", body: SignUpRequestBody{Username: "u", Password: "p"}},
		{name: "missing password", body: SignUpRequestBody{Username: "u", Email: "u@example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := a.SignUp(ctx, tt.body); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestSignUpRejectsDuplicateEmail(t *testing.T) {
	a, _ := newAuthService()
	ctx := context.Background()

	body := SignUpRequestBody{Username: "tester", Email: "tester@example.com", Password: "pass"}
	if err := a.SignUp(ctx, body); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}
	if err := a.SignUp(ctx, body); err == nil {
		t.Error("duplicate signup should fail")
	}
}

func TestLoginAndTokenLifecycle(t *testing.T) {
	a, ms := newAuthService()
	ctx := context.Background()

	if err := a.SignUp(ctx, SignUpRequestBody{Username: "tester", Email: "tester@example.com", Password: "pass"}); err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	account, _ := ms.GetAccountByEmail(ctx, "tester@example.com")

	token, err := a.Login(ctx, LoginRequestBody{Email: "tester@example.com", Password: "pass"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	accountID, err := a.ValidateToken(token)
	if err != nil {
		t.Fatalf("token validation failed: %v", err)
	}
	if accountID != account.ID {
		t.Errorf("token claims account %s, want %s", accountID, account.ID)
	}
	if !a.CheckIfTokenIsWhiteListed(account.ID, token) {
		t.Error("fresh token should be whitelisted")
	}

	if err := a.Logout(account.ID, token); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if a.CheckIfTokenIsWhiteListed(account.ID, token) {
		t.Error("token should be off the whitelist after logout")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	a, _ := newAuthService()
	ctx := context.Background()

	if err := a.SignUp(ctx, SignUpRequestBody{Username: "tester", Email: "tester@example.com", Password: "pass"}); err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if _, err := a.Login(ctx, LoginRequestBody{Email: "tester@example.com", Password: "wrong"}); err == nil {
		t.Error("login with wrong password should fail")
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	a, _ := newAuthService()
	if _, err := a.Login(context.Background(), LoginRequestBody{Email: "nobody@example.com", Password: "pass"}); err != store.ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestValidateTokenRejectsForeignSignature(t *testing.T) {
	a, _ := newAuthService()
	other := New(kvstore.NewMemory(), store.NewMemStore(), "other-secret", decimal.NewFromInt(1000))

	token, err := other.GenerateToken("acct-1")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	if _, err := a.ValidateToken(token); err == nil {
		t.Error("token signed with a different secret should be rejected")
	}
}
