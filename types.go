package medclient

import "fmt"

// Logger is the minimal logging surface the library needs. Implementations
// can bridge to any structured logger; see adapters/zlog for zerolog.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// TokenStore is the single persisted credential slot. Get reports absence
// with its second return value and never fails; an unreadable backing store
// reads as absent. Remove is idempotent.
type TokenStore interface {
	Get() (string, bool)
	Set(token string) error
	Remove() error
}

// Notifier surfaces user-facing messages (the toast equivalent). The
// SessionManager calls it on login/register outcomes and when a background
// unauthorized response forces a logout.
type Notifier interface {
	Success(message string)
	Error(message string)
}

type noopNotifier struct{}

func (noopNotifier) Success(string) {}
func (noopNotifier) Error(string)   {}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] MEDCLIENT "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] MEDCLIENT "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] MEDCLIENT "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] MEDCLIENT "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
