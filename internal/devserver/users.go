package devserver

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/genius-wizard-dev/storefront/internal/common"
	"github.com/genius-wizard-dev/storefront/internal/cryptox"
)

type RegisterRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=32"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"firstName" validate:"max=64"`
	LastName  string `json:"lastName" validate:"max=64"`
}

type ProfileUpdate struct {
	Email     string `json:"email" validate:"omitempty,email"`
	FirstName string `json:"firstName" validate:"max=64"`
	LastName  string `json:"lastName" validate:"max=64"`
}

type userRecord struct {
	Profile
	passwordHash string
}

// Identity keeps user accounts and hands out their tokens.
type Identity struct {
	tokens *TokenManager

	mu      sync.RWMutex
	users   map[string]*userRecord
	byName  map[string]string
	byEmail map[string]string
}

func NewIdentity(tokens *TokenManager) *Identity {
	return &Identity{
		tokens:  tokens,
		users:   make(map[string]*userRecord),
		byName:  make(map[string]string),
		byEmail: make(map[string]string),
	}
}

// Register creates an account. Usernames and emails are unique, ignoring case.
func (s *Identity) Register(r RegisterRequest) (Profile, error) {
	hash := cryptox.HashPassword([]byte(r.Password))

	s.mu.Lock()
	defer s.mu.Unlock()

	name := strings.ToLower(r.Username)
	email := strings.ToLower(r.Email)
	if _, ok := s.byName[name]; ok {
		return Profile{}, fmt.Errorf("username %q: %w", r.Username, common.ErrAlreadyExists)
	}
	if _, ok := s.byEmail[email]; ok {
		return Profile{}, fmt.Errorf("email %q: %w", r.Email, common.ErrAlreadyExists)
	}

	u := &userRecord{
		Profile: Profile{
			ID:        uuid.NewString(),
			Username:  r.Username,
			Email:     r.Email,
			FirstName: r.FirstName,
			LastName:  r.LastName,
		},
		passwordHash: hash,
	}
	s.users[u.ID] = u
	s.byName[name] = u.ID
	s.byEmail[email] = u.ID
	return u.Profile, nil
}

// Login checks the credentials and issues a token.
func (s *Identity) Login(username, password string) (string, error) {
	s.mu.RLock()
	u, ok := s.lookupByName(username)
	s.mu.RUnlock()
	if !ok {
		return "", common.ErrInvalidCredentials
	}

	match, err := cryptox.VerifyPassword(u.passwordHash, []byte(password))
	if err != nil {
		return "", fmt.Errorf("verify password: %w", err)
	}
	if !match {
		return "", common.ErrInvalidCredentials
	}
	return s.tokens.Issue(u.ID, u.Username)
}

// Refresh trades a token for a new one. The account must still exist.
func (s *Identity) Refresh(token string) (string, error) {
	fresh, claims, err := s.tokens.Refresh(token)
	if err != nil {
		return "", err
	}
	if _, err := s.Profile(claims.Subject); err != nil {
		return "", common.ErrInvalidToken
	}
	return fresh, nil
}

// Introspect reports whether token is currently usable.
func (s *Identity) Introspect(token string) bool {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return false
	}
	_, err = s.Profile(claims.Subject)
	return err == nil
}

func (s *Identity) Logout(token string) error {
	return s.tokens.Revoke(token)
}

func (s *Identity) Profile(userID string) (Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[userID]
	if !ok {
		return Profile{}, fmt.Errorf("user: %w", common.ErrNotFound)
	}
	return u.Profile, nil
}

// UpdateProfile changes the non-empty fields of upd.
func (s *Identity) UpdateProfile(userID string, upd ProfileUpdate) (Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return Profile{}, fmt.Errorf("user: %w", common.ErrNotFound)
	}

	if upd.Email != "" && !strings.EqualFold(upd.Email, u.Email) {
		email := strings.ToLower(upd.Email)
		if _, taken := s.byEmail[email]; taken {
			return Profile{}, fmt.Errorf("email %q: %w", upd.Email, common.ErrAlreadyExists)
		}
		delete(s.byEmail, strings.ToLower(u.Email))
		s.byEmail[email] = u.ID
		u.Email = upd.Email
	}
	if upd.FirstName != "" {
		u.FirstName = upd.FirstName
	}
	if upd.LastName != "" {
		u.LastName = upd.LastName
	}
	return u.Profile, nil
}

func (s *Identity) lookupByName(username string) (*userRecord, bool) {
	id, ok := s.byName[strings.ToLower(username)]
	if !ok {
		return nil, false
	}
	return s.users[id], true
}
