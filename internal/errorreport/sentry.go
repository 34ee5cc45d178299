// Package errorreport sends failures to Sentry; Capture itself never
// aborts the run. The run loop reports failed snapshot writes and
// carries on; main also reports an input file that fails to load,
// and then exits.
package errorreport

import (
	"fmt"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
)

// Init configures Sentry for the given release tag. It is a no-op if
// SENTRY_DSN is unset, so a run with no Sentry project configured
// behaves identically to one with error reporting disabled.
func Init(release string) error {
	dsn := os.Getenv("SENTRY_DSN")
	if dsn == "" {
		return nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Release:          release,
		AttachStacktrace: true,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize sentry: %w", err)
	}
	return nil
}

// Capture reports err with the given tags attached. A nil err is a
// no-op.
func Capture(err error, tags map[string]string) {
	if err == nil {
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		for k, v := range tags {
			scope.SetTag(k, v)
		}
		sentry.CaptureException(err)
	})
}

// Flush blocks until pending events are sent or timeout elapses.
func Flush(timeout time.Duration) bool {
	return sentry.Flush(timeout)
}

// Enabled reports whether Sentry is configured for this process.
func Enabled() bool {
	return os.Getenv("SENTRY_DSN") != ""
}
