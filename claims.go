package medclient

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	goerrors "github.com/goliatone/go-errors"
)

// Claims is the decoded payload of a stored credential. Decoding never
// verifies the signature: the values are only trusted to pick the profile
// endpoint to call and, when the backend is unreachable, to synthesize a
// degraded session.
type Claims struct {
	Subject   string
	UID       string
	Email     string
	FirstName string
	LastName  string
	Role      Role
	IssuedAt  *time.Time
	ExpiresAt *time.Time
}

// credentialClaims is the wire shape of the credential's middle segment.
type credentialClaims struct {
	jwt.RegisteredClaims
	UID       string `json:"uid,omitempty"`
	UserID    string `json:"userId,omitempty"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Role      string `json:"role,omitempty"`
}

// DecodeClaims decodes a credential's claims without verifying its
// signature. A credential is either fully well formed (three segments,
// valid base64 JSON middle segment) or rejected; there is no partial
// result.
func DecodeClaims(raw string) (*Claims, error) {
	if strings.Count(raw, ".") != 2 {
		return nil, ErrMalformedCredential
	}

	wire := &credentialClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, wire); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryAuth, "unable to decode credential claims").
			WithTextCode("MALFORMED_CREDENTIAL")
	}

	claims := &Claims{
		Subject:   wire.RegisteredClaims.Subject,
		UID:       wire.UID,
		Email:     wire.Email,
		FirstName: wire.FirstName,
		LastName:  wire.LastName,
	}

	if role, ok := ParseRole(wire.Role); ok {
		claims.Role = role
	}

	if wire.UID == "" {
		claims.UID = wire.UserID
	}

	if wire.RegisteredClaims.IssuedAt != nil {
		at := wire.RegisteredClaims.IssuedAt.Time
		claims.IssuedAt = &at
	}

	if wire.RegisteredClaims.ExpiresAt != nil {
		at := wire.RegisteredClaims.ExpiresAt.Time
		claims.ExpiresAt = &at
	}

	return claims, nil
}

// UserID returns the best available identifier, preferring the uid claim
// over the registered subject.
func (c *Claims) UserID() string {
	if c.UID != "" {
		return c.UID
	}
	return c.Subject
}

// HasRole reports whether the claims carry a usable role. Without one no
// degraded session can be synthesized.
func (c *Claims) HasRole() bool {
	return c.Role.IsValid()
}

// IsExpired reports whether the exp claim, when present, is in the past.
func (c *Claims) IsExpired(now time.Time) bool {
	if c.ExpiresAt == nil {
		return false
	}
	return c.ExpiresAt.Before(now)
}
