package service

import (
	"context"
	"testing"
	"time"

	"careernest/internal/apperr"
	"careernest/internal/config"
	"careernest/internal/models"

	"golang.org/x/crypto/bcrypt"
)

func testAuthService(sender *fakeSender) (*AuthService, *fakeSeekerStore, *fakeCompanyStore, *fakeShadowStore) {
	seekers := newFakeSeekerStore()
	companies := newFakeCompanyStore()
	shadows := newFakeShadowStore()
	cfg := &config.Config{
		JWTSecret:          "test-secret",
		JWTExpired:         1,
		ShadowTokenTTL:     3 * time.Minute,
		ShadowCleanupDelay: 5 * time.Minute,
		AdminEmail:         "admin@careernest.com",
	}
	hash, _ := bcrypt.GenerateFromPassword([]byte("admin-pass"), bcrypt.MinCost)
	cfg.AdminPasswordHash = string(hash)

	svc := NewAuthService(seekers, companies, shadows, nil, NewJWTService(cfg), sender, cfg)
	return svc, seekers, companies, shadows
}

func TestRegisterSeekerCreatesShadowOnly(t *testing.T) {
	sender := &fakeSender{}
	svc, seekers, _, shadows := testAuthService(sender)
	ctx := context.Background()

	if err := svc.RegisterSeeker(ctx, "Asha Rai", "asha@test.com", "s3curePass"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if len(seekers.seekers) != 0 {
		t.Error("registration must not create a durable seeker yet")
	}
	if len(shadows.shadows) != 1 {
		t.Fatalf("expected 1 shadow record, got %d", len(shadows.shadows))
	}
	if len(sender.sent) != 1 || sender.sent[0] != "asha@test.com" {
		t.Errorf("expected verification mail to asha@test.com, got %v", sender.sent)
	}
}

func TestRegisterSeekerEmailFailureRollsBack(t *testing.T) {
	sender := &fakeSender{fail: true}
	svc, _, _, shadows := testAuthService(sender)

	err := svc.RegisterSeeker(context.Background(), "Asha Rai", "asha@test.com", "s3curePass")
	if apperr.KindOf(err) != apperr.KindExternal {
		t.Fatalf("expected external error, got %v", err)
	}
	if len(shadows.shadows) != 0 {
		t.Error("shadow record must be rolled back when mail fails")
	}
}

func TestRegisterSeekerDuplicatePending(t *testing.T) {
	sender := &fakeSender{}
	svc, _, _, _ := testAuthService(sender)
	ctx := context.Background()

	if err := svc.RegisterSeeker(ctx, "Asha Rai", "asha@test.com", "s3curePass"); err != nil {
		t.Fatal(err)
	}
	err := svc.RegisterSeeker(ctx, "Asha Rai", "asha@test.com", "s3curePass")
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Errorf("expected conflict for pending email, got %v", err)
	}
}

func TestRegisterSeekerValidation(t *testing.T) {
	sender := &fakeSender{}
	svc, _, _, _ := testAuthService(sender)
	ctx := context.Background()

	tests := []struct {
		name                  string
		fullName, email, pass string
	}{
		{"missing name", "", "a@test.com", "s3curePass"},
		{"bad email", "Asha", "not-an-email", "s3curePass"},
		{"short password", "Asha", "a@test.com", "short"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.RegisterSeeker(ctx, tt.fullName, tt.email, tt.pass)
			if apperr.KindOf(err) != apperr.KindValidation {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestRegisterCompanyEmailFailureDeletesAccount(t *testing.T) {
	sender := &fakeSender{fail: true}
	svc, _, companies, _ := testAuthService(sender)

	_, err := svc.RegisterCompany(context.Background(), "Acme", "acme@test.com", "s3curePass")
	if apperr.KindOf(err) != apperr.KindExternal {
		t.Fatalf("expected external error, got %v", err)
	}
	if len(companies.companies) != 0 {
		t.Error("company must be deleted when the welcome mail fails")
	}
}

func TestRegisterCompanyStartsUnverified(t *testing.T) {
	sender := &fakeSender{}
	svc, _, _, _ := testAuthService(sender)

	company, err := svc.RegisterCompany(context.Background(), "Acme", "acme@test.com", "s3curePass")
	if err != nil {
		t.Fatalf("register company: %v", err)
	}
	if company.Status != models.StatusUnverified {
		t.Errorf("status = %s, want unverified", company.Status)
	}
}

func TestLoginSeeker(t *testing.T) {
	sender := &fakeSender{}
	svc, seekers, _, _ := testAuthService(sender)
	ctx := context.Background()

	hash, _ := bcrypt.GenerateFromPassword([]byte("s3curePass"), bcrypt.MinCost)
	if _, err := seekers.New(ctx, &models.Seeker{
		Email:        "asha@test.com",
		Phone:        "9800000001",
		PasswordHash: string(hash),
		IsVerified:   true,
	}); err != nil {
		t.Fatal(err)
	}

	token, seeker, err := svc.LoginSeeker(ctx, "asha@test.com", "s3curePass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" || seeker == nil {
		t.Fatal("expected token and seeker")
	}

	claims, err := svc.jwtService.VerifySessionToken(token)
	if err != nil {
		t.Fatalf("verify session: %v", err)
	}
	if claims.Role != models.RoleSeeker || claims.UserID != seeker.ID.Hex() {
		t.Errorf("claims = %+v", claims)
	}

	if _, _, err := svc.LoginSeeker(ctx, "asha@test.com", "wrong"); apperr.KindOf(err) != apperr.KindUnauthorized {
		t.Errorf("expected unauthorized for bad password, got %v", err)
	}
	if _, _, err := svc.LoginSeeker(ctx, "nobody@test.com", "whatever"); apperr.KindOf(err) != apperr.KindUnauthorized {
		t.Errorf("expected unauthorized for unknown email, got %v", err)
	}
}

func TestLoginAdmin(t *testing.T) {
	sender := &fakeSender{}
	svc, _, _, _ := testAuthService(sender)
	ctx := context.Background()

	token, err := svc.LoginAdmin(ctx, "admin@careernest.com", "admin-pass")
	if err != nil {
		t.Fatalf("admin login: %v", err)
	}
	claims, err := svc.jwtService.VerifySessionToken(token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.Role != models.RoleAdmin {
		t.Errorf("role = %s, want admin", claims.Role)
	}

	if _, err := svc.LoginAdmin(ctx, "admin@careernest.com", "nope"); apperr.KindOf(err) != apperr.KindUnauthorized {
		t.Errorf("expected unauthorized, got %v", err)
	}
}

func TestShadowTokenRoundTrip(t *testing.T) {
	jwtSvc := testJWTService()

	token, tokenID, err := jwtSvc.GenerateShadowToken("asha@test.com")
	if err != nil {
		t.Fatal(err)
	}
	claims, err := jwtSvc.VerifyShadowToken(token)
	if err != nil {
		t.Fatalf("verify shadow: %v", err)
	}
	if claims.TokenID != tokenID || claims.Email != "asha@test.com" {
		t.Errorf("claims = %+v", claims)
	}

	// a session token is not a registration token
	session, err := jwtSvc.GenerateSessionToken(models.RoleSeeker, "abc", "asha@test.com")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := jwtSvc.VerifyShadowToken(session); err == nil {
		t.Error("session token must not pass shadow verification")
	}
}
