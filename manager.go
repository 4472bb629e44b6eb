package medclient

import (
	"context"
	"sync"

	goerrors "github.com/goliatone/go-errors"
)

// SessionState tracks where the session lifecycle currently is. Every
// restore resolves to a determinate end state; there is no error state.
type SessionState string

const (
	StateUninitialized   SessionState = "uninitialized"
	StateRestoring       SessionState = "restoring"
	StateAuthenticated   SessionState = "authenticated"
	StateUnauthenticated SessionState = "unauthenticated"
)

// SessionManager owns the single live session. It orchestrates login,
// registration and logout, restores a session on startup from the stored
// credential, and handles the global forced logout when any request is
// classified unauthorized.
type SessionManager struct {
	client         *Client
	tokens         TokenStore
	logger         Logger
	notifier       Notifier
	claimsFallback bool

	mu      sync.RWMutex
	state   SessionState
	current *Session
}

// NewSessionManager wires a manager to the client and registers itself as
// the client's on-unauthorized handler. Construct it once, before issuing
// authenticated requests.
func NewSessionManager(client *Client, tokens TokenStore) *SessionManager {
	m := &SessionManager{
		client:         client,
		tokens:         tokens,
		logger:         defLogger{},
		notifier:       noopNotifier{},
		claimsFallback: true,
		state:          StateUninitialized,
	}

	client.OnUnauthorized(m.handleUnauthorized)

	return m
}

func (m *SessionManager) WithLogger(logger Logger) *SessionManager {
	m.logger = logger
	return m
}

func (m *SessionManager) WithNotifier(notifier Notifier) *SessionManager {
	if notifier != nil {
		m.notifier = notifier
	}
	return m
}

// WithClaimsFallback toggles the degraded-session path used when the
// profile fetch fails for non-auth reasons. Enabled by default; stricter
// deployments turn it off so an unverified credential is never trusted.
func (m *SessionManager) WithClaimsFallback(enabled bool) *SessionManager {
	m.claimsFallback = enabled
	return m
}

// CurrentUser returns the live session, or nil when unauthenticated.
func (m *SessionManager) CurrentUser() *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// IsAuthenticated reports whether a session is live.
func (m *SessionManager) IsAuthenticated() bool {
	return m.CurrentUser() != nil
}

// IsLoading reports whether the lifecycle has not yet resolved to a
// determinate state. Guards render a placeholder while this is true.
func (m *SessionManager) IsLoading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state == StateUninitialized || m.state == StateRestoring
}

// State returns the current lifecycle state.
func (m *SessionManager) State() SessionState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Guard evaluates route access for the current session.
func (m *SessionManager) Guard(required Role) GuardDecision {
	return EvaluateGuard(m.CurrentUser(), m.IsLoading(), required)
}

// Restore resolves the startup session. No stored credential means
// Unauthenticated with no network call. With one, the claims are decoded
// locally only to pick the role-specific profile endpoint; the session is
// populated from the server-verified profile. An auth rejection clears the
// credential. Any other failure keeps the credential and, when the fallback
// is enabled and the claims carry a usable role, synthesizes a degraded
// session from them. Restore never fails: every path lands in a
// determinate state.
func (m *SessionManager) Restore(ctx context.Context) {
	m.setState(StateRestoring, nil)

	raw, ok := m.tokens.Get()
	if !ok {
		m.setState(StateUnauthenticated, nil)
		return
	}

	claims, err := DecodeClaims(raw)
	if err != nil {
		m.logger.Warn("stored credential did not decode, deferring to the backend: %v", err)
	}

	role := RolePatient
	if claims != nil && claims.HasRole() {
		role = claims.Role
	}

	env, err := m.client.Get(ctx, role.ProfilePath(), nil)
	if err != nil {
		if isAuthRejection(err) {
			// The client already cleared the slot on the sentinel path, but
			// a message-based rejection may reach us with the credential
			// still stored.
			if rmErr := m.tokens.Remove(); rmErr != nil {
				m.logger.Warn("unable to clear rejected credential: %v", rmErr)
			}
			m.setState(StateUnauthenticated, nil)
			return
		}
		m.restoreFromClaims(claims, err)
		return
	}

	session, err := sessionFromProfile(role, env.Data)
	if err != nil {
		m.restoreFromClaims(claims, err)
		return
	}

	m.setState(StateAuthenticated, session)
}

// restoreFromClaims is the degraded path: the backend could not confirm the
// session for reasons unrelated to the credential, so the credential stays
// stored and the claims stand in until the next successful fetch.
func (m *SessionManager) restoreFromClaims(claims *Claims, cause error) {
	if !m.claimsFallback {
		m.logger.Error("unable to restore session and claims fallback is disabled: %v", cause)
		m.setState(StateUnauthenticated, nil)
		return
	}

	session, err := sessionFromClaims(claims)
	if err != nil {
		m.logger.Error("unable to restore session, credential has no usable claims: %v (cause: %v)", err, cause)
		m.setState(StateUnauthenticated, nil)
		return
	}

	m.logger.Warn("profile fetch failed, using credential claims until the backend is reachable: %v", cause)
	m.setState(StateAuthenticated, session)
}

type authPayload struct {
	Token string      `json:"token"`
	User  userPayload `json:"user"`
}

// Login exchanges credentials for a session. On success the returned token
// is persisted and the session built from the response user object; the
// caller handles navigation. On failure the session is untouched, the user
// is notified, and the error is returned so the form can stay open.
func (m *SessionManager) Login(ctx context.Context, email, password string) (*Session, error) {
	payload := LoginRequest{Email: email, Password: password}
	if err := payload.Validate(); err != nil {
		m.notifier.Error(userMessage(err, "Please check your login details"))
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid login details")
	}

	return m.authenticate(ctx, "/auth/login", payload, "Unable to sign in")
}

// Register creates an account and signs it in, mirroring Login.
func (m *SessionManager) Register(ctx context.Context, payload RegisterRequest) (*Session, error) {
	if err := payload.Validate(); err != nil {
		m.notifier.Error(userMessage(err, "Please check your registration details"))
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid registration details")
	}

	return m.authenticate(ctx, "/auth/register", payload, "Unable to create your account")
}

func (m *SessionManager) authenticate(ctx context.Context, path string, payload any, failureText string) (*Session, error) {
	env, err := m.client.Post(ctx, path, payload)
	if err != nil {
		m.logger.Error("authentication request failed: %v", err)
		m.notifier.Error(userMessage(err, failureText))
		return nil, err
	}

	out := authPayload{}
	if err := env.Decode(&out); err != nil {
		m.notifier.Error(failureText)
		return nil, err
	}

	if out.Token != "" {
		if err := m.tokens.Set(out.Token); err != nil {
			m.logger.Error("unable to persist credential: %v", err)
			m.notifier.Error(failureText)
			return nil, err
		}
	}

	session := sessionFromUser(out.User, "")
	m.setState(StateAuthenticated, session)

	if env.Message != "" {
		m.notifier.Success(env.Message)
	}

	return session, nil
}

// Logout tells the backend best-effort, then unconditionally clears the
// credential and the session. It never fails its caller.
func (m *SessionManager) Logout(ctx context.Context) {
	if _, err := m.client.Post(ctx, "/auth/logout", nil); err != nil && !IsUnauthorizedError(err) {
		m.logger.Warn("logout request failed: %v", err)
	}

	if err := m.tokens.Remove(); err != nil {
		m.logger.Warn("unable to clear credential on logout: %v", err)
	}

	m.setState(StateUnauthenticated, nil)
}

// UpdateProfile applies a patch and replaces the session with the server's
// returned representation. On failure the session is left untouched.
func (m *SessionManager) UpdateProfile(ctx context.Context, patch ProfilePatch) (*Session, error) {
	if err := patch.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid profile details")
	}

	env, err := m.client.Put(ctx, "/auth/profile", patch)
	if err != nil {
		return nil, err
	}

	out := struct {
		User userPayload `json:"user"`
	}{}
	if err := env.Decode(&out); err != nil {
		return nil, err
	}

	previousRole := Role("")
	if current := m.CurrentUser(); current != nil {
		previousRole = current.Role
	}

	session := sessionFromUser(out.User, previousRole)
	m.setState(StateAuthenticated, session)

	return session, nil
}

// ChangePassword rotates the password for the signed-in user.
func (m *SessionManager) ChangePassword(ctx context.Context, current, updated string) error {
	payload := ChangePasswordRequest{CurrentPassword: current, NewPassword: updated}
	if err := payload.Validate(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid password details")
	}

	_, err := m.client.Put(ctx, "/auth/change-password", payload)
	return err
}

// ForgotPassword starts the email reset flow. It needs no session.
func (m *SessionManager) ForgotPassword(ctx context.Context, email string) error {
	payload := ForgotPasswordRequest{Email: email}
	if err := payload.Validate(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid email address")
	}

	_, err := m.client.Post(ctx, "/auth/forgot-password", payload)
	return err
}

// ResetPassword finalizes a reset with the emailed token.
func (m *SessionManager) ResetPassword(ctx context.Context, token, password string) error {
	payload := ResetPasswordRequest{Password: password}
	if err := payload.Validate(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid password details")
	}

	_, err := m.client.Put(ctx, "/auth/reset-password/"+token, payload)
	return err
}

// handleUnauthorized is the single global logout point: any request the
// client classifies unauthorized lands here. Credential removal already
// happened in the client; this resets the session and tells the user.
// Idempotent, so concurrent 401s collapse into one visible logout.
func (m *SessionManager) handleUnauthorized() {
	m.mu.Lock()
	already := m.state == StateUnauthenticated && m.current == nil
	m.state = StateUnauthenticated
	m.current = nil
	m.mu.Unlock()

	if already {
		return
	}

	m.logger.Info("session rejected by the backend, re-authentication required")
	m.notifier.Error(ErrSessionExpired.Message)
}

func (m *SessionManager) setState(state SessionState, session *Session) {
	m.mu.Lock()
	m.state = state
	m.current = session
	m.mu.Unlock()
}
