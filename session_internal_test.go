package medclient

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionFromProfileDoctorWrapper(t *testing.T) {
	data := json.RawMessage(`{"doctor":{"userId":{"_id":"d-1","email":"d@c.example","firstName":"Greg","lastName":"House","role":"doctor"}}}`)

	session, err := sessionFromProfile(RoleDoctor, data)
	require.NoError(t, err)
	assert.Equal(t, "d-1", session.ID)
	assert.Equal(t, RoleDoctor, session.Role)
	assert.Equal(t, "Greg House", session.FullName())
}

func TestSessionFromProfileAdminAcceptsBothWrappers(t *testing.T) {
	under := json.RawMessage(`{"admin":{"id":"a-1","email":"a@c.example","role":"admin"}}`)
	session, err := sessionFromProfile(RoleAdmin, under)
	require.NoError(t, err)
	assert.Equal(t, "a-1", session.ID)
	assert.Equal(t, RoleAdmin, session.Role)

	asUser := json.RawMessage(`{"user":{"id":"a-2","email":"a2@c.example","role":"admin"}}`)
	session, err = sessionFromProfile(RoleAdmin, asUser)
	require.NoError(t, err)
	assert.Equal(t, "a-2", session.ID)
}

func TestSessionFromProfilePatientAcceptsBarePayload(t *testing.T) {
	bare := json.RawMessage(`{"id":"p-1","email":"p@c.example","firstName":"Ana","role":"patient"}`)
	session, err := sessionFromProfile(RolePatient, bare)
	require.NoError(t, err)
	assert.Equal(t, "p-1", session.ID)
	assert.Equal(t, RolePatient, session.Role)
}

func TestSessionFromProfileRejectsEmptyAndShapelessData(t *testing.T) {
	_, err := sessionFromProfile(RolePatient, nil)
	assert.ErrorIs(t, err, ErrNoData)

	_, err = sessionFromProfile(RoleDoctor, json.RawMessage(`{"doctor":{}}`))
	assert.Error(t, err)

	_, err = sessionFromProfile(RolePatient, json.RawMessage(`{"something":"else"}`))
	assert.Error(t, err)
}

func TestSessionFromUserInactiveFlagAndRoleFallback(t *testing.T) {
	inactive := false
	session := sessionFromUser(userPayload{ID: "u-1", Role: "unknown", IsActive: &inactive}, RolePatient)

	assert.Equal(t, RolePatient, session.Role, "unparseable role keeps the fallback")
	assert.False(t, session.IsActive)

	session = sessionFromUser(userPayload{ID: "u-2"}, "")
	assert.True(t, session.IsActive, "missing flag defaults to active")
}

func TestSessionFromClaimsFillsPlaceholders(t *testing.T) {
	session, err := sessionFromClaims(&Claims{Role: RolePatient, Email: "p@c.example"})
	require.NoError(t, err)
	assert.Equal(t, "unknown", session.ID)
	assert.Equal(t, "Account User", session.FullName())
	assert.True(t, session.IsActive)
}

func TestSessionFromClaimsRequiresARole(t *testing.T) {
	_, err := sessionFromClaims(nil)
	assert.ErrorIs(t, err, ErrNoRoleClaim)

	_, err = sessionFromClaims(&Claims{UID: "u-1"})
	assert.ErrorIs(t, err, ErrNoRoleClaim)
}
