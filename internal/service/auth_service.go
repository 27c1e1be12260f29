package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"regexp"
	"strings"
	"time"

	"agritradehub/internal/core/auth"
	"agritradehub/internal/domain"
	"agritradehub/pkg/utils"
)

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// dummyHash keeps the unknown-email path doing the same bcrypt work as the
// wrong-password path, so the two failures are indistinguishable by timing.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

type AuthService struct {
	users    domain.UserRepository
	sessions domain.SessionRepository
	signer   *auth.Signer
	ttl      time.Duration
}

func NewAuthService(users domain.UserRepository, sessions domain.SessionRepository, signer *auth.Signer, ttl time.Duration) *AuthService {
	return &AuthService{users: users, sessions: sessions, signer: signer, ttl: ttl}
}

// Register creates the user and logs them straight in: the returned token
// is a live session.
func (s *AuthService) Register(ctx context.Context, name, email, password, role string) (domain.Principal, string, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" || email == "" || password == "" {
		return domain.Principal{}, "", domain.ErrValidation
	}
	if len(name) > 64 || !emailRe.MatchString(email) {
		return domain.Principal{}, "", domain.ErrValidation
	}
	if !validPassword(password) {
		return domain.Principal{}, "", domain.ErrValidation
	}
	switch role {
	case "":
		role = domain.RoleUser
	case domain.RoleUser, domain.RoleFarm:
	default:
		return domain.Principal{}, "", domain.ErrValidation
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return domain.Principal{}, "", err
	}
	u := &domain.User{Name: name, Email: email, PasswordHash: hash, Role: role}
	if err := s.users.Create(ctx, u); err != nil {
		return domain.Principal{}, "", err
	}

	token, err := s.openSession(ctx, u.ID)
	if err != nil {
		return domain.Principal{}, "", err
	}
	return u.Principal(), token, nil
}

// Login authenticates and opens a session. Unknown email and wrong
// password collapse into the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.Principal, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return domain.Principal{}, "", domain.ErrValidation
	}

	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return domain.Principal{}, "", err
	}
	if u == nil {
		utils.CheckPassword(password, dummyHash)
		return domain.Principal{}, "", domain.ErrInvalidCredentials
	}
	if !utils.CheckPassword(password, u.PasswordHash) {
		return domain.Principal{}, "", domain.ErrInvalidCredentials
	}

	token, err := s.openSession(ctx, u.ID)
	if err != nil {
		return domain.Principal{}, "", err
	}
	return u.Principal(), token, nil
}

// Logout destroys the session. The token never authenticates again.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	sid, err := s.signer.Verify(token)
	if err != nil {
		return domain.ErrUnauthorized
	}
	return s.sessions.Delete(ctx, sid)
}

// Authenticate resolves a client token to its Principal. Expired sessions
// are purged on sight and reported the same as missing ones.
func (s *AuthService) Authenticate(ctx context.Context, token string) (domain.Principal, error) {
	sid, err := s.signer.Verify(token)
	if err != nil {
		return domain.Principal{}, domain.ErrUnauthorized
	}
	sess, err := s.sessions.FindByToken(ctx, sid)
	if err != nil {
		return domain.Principal{}, err
	}
	if sess == nil {
		return domain.Principal{}, domain.ErrUnauthorized
	}
	if sess.Expired(time.Now()) {
		_ = s.sessions.Delete(ctx, sid)
		return domain.Principal{}, domain.ErrUnauthorized
	}
	u, err := s.users.FindByID(ctx, sess.UserID)
	if err != nil {
		return domain.Principal{}, err
	}
	if u == nil {
		return domain.Principal{}, domain.ErrUnauthorized
	}
	return u.Principal(), nil
}

// TTL reports the session lifetime, used for the cookie max-age.
func (s *AuthService) TTL() time.Duration { return s.ttl }

func (s *AuthService) openSession(ctx context.Context, userID uint) (string, error) {
	sid, err := newSessionID()
	if err != nil {
		return "", err
	}
	expires := time.Now().Add(s.ttl)
	if err := s.sessions.Create(ctx, &domain.Session{Token: sid, UserID: userID, ExpiresAt: expires}); err != nil {
		return "", err
	}
	return s.signer.Sign(sid, expires)
}

func newSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// validPassword: at least 8 characters with at least one digit.
func validPassword(pw string) bool {
	if len(pw) < 8 {
		return false
	}
	for _, c := range pw {
		if c >= '0' && c <= '9' {
			return true
		}
	}
	return false
}
