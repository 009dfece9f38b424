package devserver

import (
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/genius-wizard-dev/storefront/internal/common"
)

// Claims are the access token claims. Subject is the user id and ID the
// token id used for revocation.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// TokenManager issues, verifies, refreshes and revokes access tokens.
//
// A token is usable until it expires. After that it can still be traded
// for a new one, once, as long as it was issued no more than the refresh
// window ago.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	window time.Duration
	now    func() time.Time

	mu sync.Mutex
	// revoked maps token ids to the moment they can be forgotten.
	revoked map[string]time.Time
}

func NewTokenManager(secret []byte, ttl, window time.Duration, now func() time.Time) *TokenManager {
	if now == nil {
		now = time.Now
	}
	return &TokenManager{
		secret:  secret,
		ttl:     ttl,
		window:  window,
		now:     now,
		revoked: make(map[string]time.Time),
	}
}

// Issue signs a new token for the user.
func (m *TokenManager) Issue(userID, username string) (string, error) {
	now := m.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		Username: username,
	})
	return token.SignedString(m.secret)
}

// Verify returns the claims of a valid, unexpired and unrevoked token.
func (m *TokenManager) Verify(raw string) (*Claims, error) {
	claims, err := m.parse(raw, true)
	if err != nil {
		return nil, err
	}
	if m.isRevoked(claims.ID) {
		return nil, common.ErrTokenRevoked
	}
	return claims, nil
}

// Refresh trades raw for a new token and revokes raw. raw may be expired.
func (m *TokenManager) Refresh(raw string) (string, *Claims, error) {
	claims, err := m.parse(raw, false)
	if err != nil {
		return "", nil, err
	}
	if claims.IssuedAt == nil || m.now().After(claims.IssuedAt.Add(m.window)) {
		return "", nil, common.ErrRefreshWindowClosed
	}
	if !m.revoke(claims) {
		return "", nil, common.ErrTokenRevoked
	}

	token, err := m.Issue(claims.Subject, claims.Username)
	if err != nil {
		return "", nil, err
	}
	return token, claims, nil
}

// Revoke invalidates raw. Expired tokens can be revoked too, so a
// logged-out token cannot be refreshed later.
func (m *TokenManager) Revoke(raw string) error {
	claims, err := m.parse(raw, false)
	if err != nil {
		return err
	}
	m.revoke(claims)
	return nil
}

func (m *TokenManager) parse(raw string, checkExpiry bool) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	}
	if !checkExpiry {
		opts = append(opts, jwt.WithoutClaimsValidation())
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}
	if !token.Valid || claims.ID == "" || claims.Subject == "" {
		return nil, common.ErrInvalidToken
	}
	return claims, nil
}

// revoke records the token id and reports whether it was not revoked yet.
func (m *TokenManager) revoke(c *Claims) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for id, until := range m.revoked {
		if now.After(until) {
			delete(m.revoked, id)
		}
	}

	if _, ok := m.revoked[c.ID]; ok {
		return false
	}

	until := now.Add(m.window)
	if c.IssuedAt != nil {
		until = c.IssuedAt.Add(m.window)
	}
	if c.ExpiresAt != nil && c.ExpiresAt.After(until) {
		until = c.ExpiresAt.Time
	}
	m.revoked[c.ID] = until
	return true
}

func (m *TokenManager) isRevoked(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.revoked[id]
	return ok
}
