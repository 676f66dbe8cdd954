package report

import (
	"sync"
	"time"
)

// reporter is responsible for reporting errors, warnings, and other kinds of
// messages to the user during compilation.  The reporter respects the set log
// level and is synchronized: its methods can safely be called from the many
// goroutines generating blocks concurrently.
type reporter struct {
	// The mutex used to synchronize different report method calls.
	m *sync.Mutex

	// The selected log level of the reporter.  This must be one of the
	// enumerated log levels below.
	logLevel int

	// The number of errors reported so far.
	errorCount int

	// The number of warnings reported so far.
	warningCount int

	// The time compilation started; used for the closing message.
	startTime time.Time
}

// Enumeration of the different possible log levels.
const (
	LogLevelSilent  = iota // Displays no output.
	LogLevelError          // Displays only errors to the user.
	LogLevelWarn           // Displays warnings and errors to the user.
	LogLevelVerbose        // Displays all compilation messages to the user (default).
)

// handleMsg processes a single compilation message.  Messages can come in
// concurrently from the per-block generation tasks, so display is guarded by
// the reporter's mutex.
func (r *reporter) handleMsg(msg message) {
	r.m.Lock()
	defer r.m.Unlock()

	if msg.isError() {
		r.errorCount++

		if r.logLevel > LogLevelSilent {
			msg.display()
		}
	} else {
		r.warningCount++

		if r.logLevel > LogLevelError {
			msg.display()
		}
	}
}
