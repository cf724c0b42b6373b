package model

import (
	"fmt"
	"time"
)

// Credential is a bearer token together with its timing metadata.
// A Credential and the session User are always stored and cleared as a
// pair; neither exists without the other.
type Credential struct {
	Token     string        `json:"token"`
	IssuedAt  time.Time     `json:"issued_at"`
	ExpiresAt time.Time     `json:"expires_at"`
	TTL       time.Duration `json:"ttl"`
}

// IsExpired reports whether the credential's expiry time has passed.
func (c *Credential) IsExpired() bool {
	return !c.ExpiresAt.IsZero() && time.Now().After(c.ExpiresAt)
}

// Remaining returns the time until expiry, or zero if already expired.
func (c *Credential) Remaining() time.Duration {
	d := time.Until(c.ExpiresAt)
	if d < 0 {
		return 0
	}
	return d
}

// LoginRequest is the credential-exchange request body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is the payload returned by login, register, refresh, and
// token-check endpoints.
type AuthResponse struct {
	Message   string `json:"message"`
	User      *User  `json:"user"`
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
	ExpiresIn int64  `json:"expires_in"` // seconds
	Status    int    `json:"status"`
}

// expiry timestamp layouts accepted from the server, tried in order.
var expiryLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// Credential converts the auth payload into a Credential. The issue time
// is taken as now; the expiry comes from expires_at when parseable, else
// is derived from expires_in.
func (r *AuthResponse) Credential() (*Credential, error) {
	if r.Token == "" {
		return nil, fmt.Errorf("auth response carries no token")
	}

	now := time.Now()
	cred := &Credential{
		Token:    r.Token,
		IssuedAt: now,
		TTL:      time.Duration(r.ExpiresIn) * time.Second,
	}

	if r.ExpiresAt != "" {
		for _, layout := range expiryLayouts {
			if t, err := time.Parse(layout, r.ExpiresAt); err == nil {
				cred.ExpiresAt = t
				break
			}
		}
	}
	if cred.ExpiresAt.IsZero() {
		if r.ExpiresIn <= 0 {
			return nil, fmt.Errorf("auth response carries no usable expiry (expires_at %q)", r.ExpiresAt)
		}
		cred.ExpiresAt = now.Add(cred.TTL)
	}

	return cred, nil
}
