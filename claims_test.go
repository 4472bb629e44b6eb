package medclient_test

import (
	"testing"
	"time"

	medclient "github.com/goliatone/go-medclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeClaims(t *testing.T) {
	token := makeToken(t, map[string]any{
		"sub":       "651a2f3c9d",
		"role":      "doctor",
		"email":     "greg@clinic.example",
		"firstName": "Greg",
		"lastName":  "House",
		"iat":       1700000000,
	})

	claims, err := medclient.DecodeClaims(token)
	require.NoError(t, err)

	assert.Equal(t, "651a2f3c9d", claims.UserID())
	assert.Equal(t, medclient.RoleDoctor, claims.Role)
	assert.True(t, claims.HasRole())
	assert.Equal(t, "greg@clinic.example", claims.Email)
	assert.Equal(t, "Greg", claims.FirstName)
	require.NotNil(t, claims.IssuedAt)
	assert.Equal(t, int64(1700000000), claims.IssuedAt.Unix())
}

func TestDecodeClaimsPrefersUIDOverSubject(t *testing.T) {
	token := makeToken(t, map[string]any{
		"sub":  "subject-id",
		"uid":  "uid-id",
		"role": "patient",
	})

	claims, err := medclient.DecodeClaims(token)
	require.NoError(t, err)
	assert.Equal(t, "uid-id", claims.UserID())
}

func TestDecodeClaimsAcceptsUserIdAlias(t *testing.T) {
	token := makeToken(t, map[string]any{
		"userId": "alias-id",
		"role":   "patient",
	})

	claims, err := medclient.DecodeClaims(token)
	require.NoError(t, err)
	assert.Equal(t, "alias-id", claims.UserID())
}

func TestDecodeClaimsRejectsWrongSegmentCount(t *testing.T) {
	_, err := medclient.DecodeClaims("just-one-segment")
	assert.ErrorIs(t, err, medclient.ErrMalformedCredential)

	_, err = medclient.DecodeClaims("two.segments")
	assert.ErrorIs(t, err, medclient.ErrMalformedCredential)

	_, err = medclient.DecodeClaims("four.whole.token.segments")
	assert.ErrorIs(t, err, medclient.ErrMalformedCredential)
}

func TestDecodeClaimsRejectsInvalidMiddleSegment(t *testing.T) {
	// Invalid base64 and invalid JSON both fail the same way: there is no
	// partially trusted credential.
	_, err := medclient.DecodeClaims("header.!!!not-base64!!!.sig")
	assert.Error(t, err)

	_, err = medclient.DecodeClaims("header.bm90LWpzb24.sig") // "not-json"
	assert.Error(t, err)
}

func TestDecodeClaimsUnknownRoleIsNotUsable(t *testing.T) {
	token := makeToken(t, map[string]any{
		"sub":  "user-1",
		"role": "superuser",
	})

	claims, err := medclient.DecodeClaims(token)
	require.NoError(t, err)
	assert.False(t, claims.HasRole())
}

func TestClaimsIsExpired(t *testing.T) {
	now := time.Now()

	token := makeToken(t, map[string]any{
		"role": "patient",
		"exp":  now.Add(-time.Hour).Unix(),
	})
	claims, err := medclient.DecodeClaims(token)
	require.NoError(t, err)
	assert.True(t, claims.IsExpired(now))

	token = makeToken(t, map[string]any{"role": "patient"})
	claims, err = medclient.DecodeClaims(token)
	require.NoError(t, err)
	assert.False(t, claims.IsExpired(now))
}
