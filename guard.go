package medclient

// GuardOutcome is the verdict for a guarded route.
type GuardOutcome string

const (
	// GuardAllow renders the protected content.
	GuardAllow GuardOutcome = "allow"
	// GuardWait renders a loading placeholder; no redirect decision is made
	// until the session lifecycle resolves.
	GuardWait GuardOutcome = "wait"
	// GuardRedirect sends the user to Target.
	GuardRedirect GuardOutcome = "redirect"
)

// GuardDecision is the result of evaluating a guarded route. Target is set
// only when Outcome is GuardRedirect.
type GuardDecision struct {
	Outcome GuardOutcome
	Target  string
}

// EvaluateGuard decides access for a route. No session means the login
// entry point. A role mismatch redirects to the home the current user
// actually owns, never the login page, using the total role→home mapping.
// Decisions are computed fresh on every call; nothing is cached.
func EvaluateGuard(current *Session, loading bool, required Role) GuardDecision {
	if loading {
		return GuardDecision{Outcome: GuardWait}
	}

	if current == nil {
		return GuardDecision{Outcome: GuardRedirect, Target: LoginPath}
	}

	if required != "" && current.Role != required {
		return GuardDecision{Outcome: GuardRedirect, Target: current.Role.HomePath()}
	}

	return GuardDecision{Outcome: GuardAllow}
}
