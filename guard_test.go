package medclient_test

import (
	"testing"

	medclient "github.com/goliatone/go-medclient"
	"github.com/stretchr/testify/assert"
)

func TestGuardWaitsWhileSessionIsLoading(t *testing.T) {
	decision := medclient.EvaluateGuard(nil, true, medclient.RoleAdmin)
	assert.Equal(t, medclient.GuardWait, decision.Outcome)
	assert.Empty(t, decision.Target)
}

func TestGuardRedirectsAnonymousUsersToLogin(t *testing.T) {
	decision := medclient.EvaluateGuard(nil, false, "")
	assert.Equal(t, medclient.GuardRedirect, decision.Outcome)
	assert.Equal(t, medclient.LoginPath, decision.Target)
}

func TestGuardSendsWrongRoleToItsOwnHome(t *testing.T) {
	cases := []struct {
		name     string
		role     medclient.Role
		required medclient.Role
		target   string
	}{
		{"doctor hits admin route", medclient.RoleDoctor, medclient.RoleAdmin, "/doctor/dashboard"},
		{"patient hits doctor route", medclient.RolePatient, medclient.RoleDoctor, "/dashboard"},
		{"admin hits patient route", medclient.RoleAdmin, medclient.RolePatient, "/admin/dashboard"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			current := &medclient.Session{ID: "u-1", Role: tc.role}
			decision := medclient.EvaluateGuard(current, false, tc.required)
			assert.Equal(t, medclient.GuardRedirect, decision.Outcome)
			assert.Equal(t, tc.target, decision.Target, "mismatch redirects home, never to login")
		})
	}
}

func TestGuardAllowsMatchingRole(t *testing.T) {
	current := &medclient.Session{ID: "u-1", Role: medclient.RoleDoctor}
	decision := medclient.EvaluateGuard(current, false, medclient.RoleDoctor)
	assert.Equal(t, medclient.GuardAllow, decision.Outcome)
}

func TestGuardWithoutRequiredRoleOnlyNeedsASession(t *testing.T) {
	current := &medclient.Session{ID: "u-1", Role: medclient.RolePatient}
	decision := medclient.EvaluateGuard(current, false, "")
	assert.Equal(t, medclient.GuardAllow, decision.Outcome)
}
