package medclient_test

import (
	"testing"

	medclient "github.com/goliatone/go-medclient"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionFullName(t *testing.T) {
	session := &medclient.Session{FirstName: " Ana ", LastName: "Reyes"}
	assert.Equal(t, "Ana Reyes", session.FullName())

	session = &medclient.Session{FirstName: "Ana"}
	assert.Equal(t, "Ana", session.FullName())

	session = &medclient.Session{}
	assert.Equal(t, "", session.FullName())
}

func TestSessionUserUUID(t *testing.T) {
	id := uuid.New()
	session := &medclient.Session{ID: id.String(), Role: medclient.RolePatient}

	got, err := session.UserUUID()
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestSessionUserUUIDRejectsNonUUIDBackendIDs(t *testing.T) {
	// Document-store ids and the degraded-session placeholder are not UUIDs.
	for _, id := range []string{"651a2f3c9d", "unknown", ""} {
		session := &medclient.Session{ID: id}
		_, err := session.UserUUID()
		assert.Error(t, err, "id %q", id)
	}
}

func TestSessionHasRole(t *testing.T) {
	session := &medclient.Session{ID: uuid.NewString(), Role: medclient.RoleDoctor}
	assert.True(t, session.HasRole(medclient.RoleDoctor))
	assert.False(t, session.HasRole(medclient.RoleAdmin))
}
