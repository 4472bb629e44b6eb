// Package roleguard protects go-router routes with the session guard:
// unauthenticated visitors go to the login page, users with the wrong role
// go to their own dashboard, everyone else falls through to the handler
// with the session stored in request locals.
package roleguard

import (
	"net/http"

	"github.com/goliatone/go-router"

	medclient "github.com/goliatone/go-medclient"
)

// DefaultContextKey is where the session is stored in request locals.
const DefaultContextKey = "session"

type Config struct {
	// Manager is the session lifecycle the guard consults. Required.
	Manager *medclient.SessionManager
	// Required restricts the route to one role. Empty allows any
	// authenticated user.
	Required medclient.Role
	// ContextKey overrides where the session lands in locals.
	ContextKey string
	// LoginPath overrides the unauthenticated redirect target.
	LoginPath string
	// PendingHandler runs while the session lifecycle has not resolved.
	// The default retries the request with a redirect to itself, which in
	// practice only triggers when another request is mid-restore.
	PendingHandler router.HandlerFunc
}

// New builds the guard middleware. The manager restores the session on the
// first guarded request, so mounting this is enough to get
// restore-on-startup semantics in a server context.
func New(cfg Config) router.MiddlewareFunc {
	contextKey := cfg.ContextKey
	if contextKey == "" {
		contextKey = DefaultContextKey
	}

	loginPath := cfg.LoginPath
	if loginPath == "" {
		loginPath = medclient.LoginPath
	}

	pending := cfg.PendingHandler
	if pending == nil {
		pending = func(ctx router.Context) error {
			return ctx.Redirect(ctx.OriginalURL(), http.StatusFound)
		}
	}

	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(ctx router.Context) error {
			manager := cfg.Manager

			if manager.State() == medclient.StateUninitialized {
				manager.Restore(ctx.Context())
			}

			decision := manager.Guard(cfg.Required)

			switch decision.Outcome {
			case medclient.GuardWait:
				return pending(ctx)

			case medclient.GuardRedirect:
				target := decision.Target
				if target == medclient.LoginPath {
					target = loginPath
				}
				return ctx.Redirect(target, redirectStatus(ctx))

			default:
				ctx.Locals(contextKey, manager.CurrentUser())
				ctx.SetContext(medclient.WithContext(ctx.Context(), manager.CurrentUser()))
				return next(ctx)
			}
		}
	}
}

// redirectStatus preserves method semantics: GET navigations get a plain
// 302, everything else a 303 so the browser re-requests with GET.
func redirectStatus(ctx router.Context) int {
	if ctx.Method() == string(router.GET) {
		return http.StatusFound
	}
	return http.StatusSeeOther
}
