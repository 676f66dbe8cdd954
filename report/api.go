package report

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// rep is a global reference to a shared reporter.
var rep = &reporter{
	m:         &sync.Mutex{},
	logLevel:  LogLevelVerbose,
	startTime: time.Now(),
}

// InitReporter initializes the global reporter with the provided log level.
func InitReporter(loglevel int) {
	rep = &reporter{
		m:         &sync.Mutex{},
		logLevel:  loglevel,
		startTime: time.Now(),
	}
}

// LogLevelFromName converts a named log level (as given on the command line or
// in the project file) into one of the enumerated log levels.  Unrecognized
// names default to verbose.
func LogLevelFromName(name string) int {
	switch name {
	case "silent":
		return LogLevelSilent
	case "error":
		return LogLevelError
	case "warn":
		return LogLevelWarn
	default:
		return LogLevelVerbose
	}
}

// ShouldProceed indicates whether or not there have been any errors so far.
func ShouldProceed() bool {
	rep.m.Lock()
	defer rep.m.Unlock()

	return rep.errorCount == 0
}

// -----------------------------------------------------------------------------
// NOTE: All report functions will only display if the appropriate log level is
// set.  Most report functions will simply fail silently if below their
// appropriate log level.

// ReportBlockError reports an error that is fatal for a single block
// declaration: its generation is abandoned, sibling blocks continue.
func ReportBlockError(blockName string, err error) {
	rep.handleMsg(&blockMessage{
		BlockName: blockName,
		Message:   err.Error(),
		IsError:   true,
	})
}

// ReportBlockWarning reports a non-fatal problem inside a single block (an
// unrecognized statement, a dropped attribute, a non-materialized instance).
func ReportBlockWarning(blockName, msg string, args ...interface{}) {
	rep.handleMsg(&blockMessage{
		BlockName: blockName,
		Message:   fmt.Sprintf(msg, args...),
		IsError:   false,
	})
}

// ReportFileError reports a metadata-collection error for one source file.
// The file's contribution is skipped; collection continues elsewhere.
func ReportFileError(path string, err error) {
	rep.handleMsg(&fileMessage{
		Path:    path,
		Message: err.Error(),
		IsError: true,
	})
}

// ReportFileWarning reports a non-fatal problem while collecting one file.
func ReportFileWarning(path, msg string, args ...interface{}) {
	rep.handleMsg(&fileMessage{
		Path:    path,
		Message: fmt.Sprintf(msg, args...),
		IsError: false,
	})
}

// ReportConfigError reports an error related to project configuration.
func ReportConfigError(kind string, err error) {
	rep.handleMsg(&configMessage{Kind: kind, Message: err.Error()})
}

// ReportFatal reports a fatal error and exits the program.  These are expected
// errors that generally result from invalid configuration of some form:
// missing project file, unwritable output directory, etc.
func ReportFatal(msg string, args ...interface{}) {
	rep.m.Lock()
	displayFatalError(fmt.Sprintf(msg, args...))
	rep.m.Unlock()

	os.Exit(1)
}

// -----------------------------------------------------------------------------
// Below are the "aesthetic" reporting functions that only run if the log level
// is verbose.  These provide additional information about the compilation
// process so as to make the compiler more friendly.

// ReportCompileHeader reports the pre-compilation header: information about
// the compiler's current configuration (project, target version).
func ReportCompileHeader(project, targetVersion string) {
	if rep.logLevel == LogLevelVerbose {
		displayCompileHeader(project, targetVersion)
	}
}

// ReportCompilationFinished reports the concluding message for compilation:
// artifact count, error count, warning count, and elapsed time.
func ReportCompilationFinished(artifactCount int) {
	if rep.logLevel == LogLevelVerbose {
		rep.m.Lock()
		defer rep.m.Unlock()

		displayCompilationFinished(
			rep.errorCount == 0,
			artifactCount,
			rep.errorCount,
			rep.warningCount,
			time.Since(rep.startTime),
		)
	}
}
