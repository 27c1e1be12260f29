package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"agritradehub/internal/core/auth"
	"agritradehub/internal/domain"
)

type stubUserRepo struct {
	nextID  uint
	byEmail map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byEmail: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) error {
	if _, ok := r.byEmail[u.Email]; ok {
		return domain.ErrDuplicateEmail
	}
	r.nextID++
	u.ID = r.nextID
	u.CreatedAt = time.Now()
	clone := *u
	r.byEmail[u.Email] = &clone
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uint) (*domain.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) List(_ context.Context, offset, limit int) ([]domain.User, int64, error) {
	var out []domain.User
	for _, u := range r.byEmail {
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (r *stubUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.byEmail)), nil
}

type stubSessionRepo struct {
	rows map[string]domain.Session
}

func newStubSessionRepo() *stubSessionRepo {
	return &stubSessionRepo{rows: make(map[string]domain.Session)}
}

func (r *stubSessionRepo) Create(_ context.Context, s *domain.Session) error {
	r.rows[s.Token] = *s
	return nil
}

func (r *stubSessionRepo) FindByToken(_ context.Context, token string) (*domain.Session, error) {
	s, ok := r.rows[token]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *stubSessionRepo) Delete(_ context.Context, token string) error {
	delete(r.rows, token)
	return nil
}

func (r *stubSessionRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for tok, s := range r.rows {
		if s.Expired(now) {
			delete(r.rows, tok)
			n++
		}
	}
	return n, nil
}

func newTestAuthService() (*AuthService, *stubUserRepo, *stubSessionRepo) {
	users := newStubUserRepo()
	sessions := newStubSessionRepo()
	signer := &auth.Signer{Secret: []byte("test-secret"), Issuer: "agritradehub"}
	return NewAuthService(users, sessions, signer, 30*24*time.Hour), users, sessions
}

func TestRegister_Success(t *testing.T) {
	svc, users, _ := newTestAuthService()
	ctx := context.Background()

	p, token, err := svc.Register(ctx, "Asha", "Asha@Example.com", "Secret123", "")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if p.ID == 0 || p.Name != "Asha" || p.Email != "asha@example.com" || p.Role != domain.RoleUser {
		t.Fatalf("unexpected principal: %+v", p)
	}
	if token == "" {
		t.Fatalf("expected a session token")
	}

	stored := users.byEmail["asha@example.com"]
	if stored == nil {
		t.Fatalf("user not persisted")
	}
	if stored.PasswordHash == "Secret123" {
		t.Fatalf("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("Secret123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}

	// registering logs the user in
	got, err := svc.Authenticate(ctx, token)
	if err != nil {
		t.Fatalf("Authenticate after Register: %v", err)
	}
	if got.ID != p.ID {
		t.Fatalf("authenticated id %d, want %d", got.ID, p.ID)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "Asha", "asha@example.com", "Secret123", ""); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	_, _, err := svc.Register(ctx, "Different Name", "asha@example.com", "Other4567", "")
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestRegister_Validation(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	cases := []struct {
		name, email, password, role string
	}{
		{"", "a@example.com", "Secret123", ""},
		{"Asha", "", "Secret123", ""},
		{"Asha", "a@example.com", "", ""},
		{"Asha", "not-an-email", "Secret123", ""},
		{"Asha", "a@example.com", "short1", ""},
		{"Asha", "a@example.com", "nodigitshere", ""},
		{"Asha", "a@example.com", "Secret123", "admin"},
	}
	for _, tc := range cases {
		if _, _, err := svc.Register(ctx, tc.name, tc.email, tc.password, tc.role); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("Register(%q,%q,%q,%q): expected ErrValidation, got %v",
				tc.name, tc.email, tc.password, tc.role, err)
		}
	}
}

func TestRegister_FarmRole(t *testing.T) {
	svc, _, _ := newTestAuthService()

	p, _, err := svc.Register(context.Background(), "Kamau Farm", "farm@example.com", "Harvest42", domain.RoleFarm)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if p.Role != domain.RoleFarm {
		t.Fatalf("role = %q, want farm", p.Role)
	}
}

func TestLogin_AfterRegister(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	reg, _, err := svc.Register(ctx, "Asha", "asha@example.com", "Secret123", "")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	p, token, err := svc.Login(ctx, "asha@example.com", "Secret123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if p.ID != reg.ID {
		t.Fatalf("Login id %d, want %d", p.ID, reg.ID)
	}
	if token == "" {
		t.Fatalf("expected a session token")
	}
}

func TestLogin_UniformFailure(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "Asha", "asha@example.com", "Secret123", ""); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, _, wrongPw := svc.Login(ctx, "asha@example.com", "wrong")
	_, _, unknown := svc.Login(ctx, "nobody@example.com", "x")

	if !errors.Is(wrongPw, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPw)
	}
	if !errors.Is(unknown, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", unknown)
	}
	if wrongPw.Error() != unknown.Error() {
		t.Fatalf("failure modes differ: %q vs %q", wrongPw, unknown)
	}
}

func TestLogout_TokenNeverReauthenticates(t *testing.T) {
	svc, _, sessions := newTestAuthService()
	ctx := context.Background()

	_, token, err := svc.Register(ctx, "Asha", "asha@example.com", "Secret123", "")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := svc.Logout(ctx, token); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if len(sessions.rows) != 0 {
		t.Fatalf("session row not destroyed")
	}
	if _, err := svc.Authenticate(ctx, token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("destroyed token authenticated: %v", err)
	}
}

func TestAuthenticate_ExpiredSession(t *testing.T) {
	svc, _, sessions := newTestAuthService()
	ctx := context.Background()

	_, token, err := svc.Register(ctx, "Asha", "asha@example.com", "Secret123", "")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	// force expiry on the stored row
	for tok, s := range sessions.rows {
		s.ExpiresAt = time.Now().Add(-time.Minute)
		sessions.rows[tok] = s
	}
	if _, err := svc.Authenticate(ctx, token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expired session authenticated: %v", err)
	}
	if len(sessions.rows) != 0 {
		t.Fatalf("expired row should be purged on access")
	}
}

func TestAuthenticate_TamperedToken(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	_, token, err := svc.Register(ctx, "Asha", "asha@example.com", "Secret123", "")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.Authenticate(ctx, token+"x"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("tampered token accepted: %v", err)
	}
	if _, err := svc.Authenticate(ctx, "garbage"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("garbage token accepted: %v", err)
	}
}
