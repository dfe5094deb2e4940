package session

import "fmt"

// ErrType is the severity of the session's current report, mirroring enum
// dset_err_type. Severity only ever escalates within one report: a lower
// type is overwritten by a higher one, never the reverse (SPEC_FULL.md §7,
// "a lower-severity message in the report buffer is overwritten by a
// higher-severity one, but not vice versa").
type ErrType int

const (
	NoError ErrType = iota
	Warning
	Notice
	Error
)

// reportBufLen bounds the report message the same way DSET_ERRORBUFLEN
// bounds the original's fixed report buffer.
const reportBufLen = 1024

// report appends a severity-tagged message to the session's report
// buffer. A message of lower severity than what is already pending is
// dropped: the outgoing (more severe) message wins. In restore mode
// (lineno != 0) an Error message is prefixed with its input line number.
// A Error-severity report resets the data blob, matching the original's
// "poison the current command, not the session" contract.
func (s *Session) reportf(t ErrType, format string, args ...any) int {
	if s.errType > NoError && t < s.errType {
		return -1
	}
	msg := fmt.Sprintf(format, args...)
	prefix := ""
	if s.lineno != 0 && t == Error {
		prefix = fmt.Sprintf("Error in line %d: ", s.lineno)
	}
	full := prefix + msg
	if len(full) > reportBufLen-2 {
		full = full[:reportBufLen-2]
	}
	s.reportMsg = full + "\n"
	s.errType = t
	if t == Error {
		s.data.Reset()
	}
	return -1
}

// Err reports an Error-severity message and returns it as an error, for `return
// s.Err(...)` call sites mirroring the original's dset_err() idiom.
func (s *Session) Err(format string, args ...any) error {
	s.reportf(Error, format, args...)
	return fmt.Errorf("%s", s.reportMsg)
}

// Warn reports a Warning-severity message.
func (s *Session) Warn(format string, args ...any) {
	s.reportf(Warning, format, args...)
}

// Notice reports a Notice-severity message.
func (s *Session) Notice(format string, args ...any) {
	s.reportf(Notice, format, args...)
}

// ReportType returns the severity of the current report.
func (s *Session) ReportType() ErrType { return s.errType }

// Report returns the current report text (empty if none).
func (s *Session) Report() string { return s.reportMsg }

// ReportReset clears the current report, used after the protocol
// handshake's version warning is deliberately suppressed.
func (s *Session) ReportReset() {
	s.reportMsg = ""
	s.errType = NoError
}

// WarningAsError promotes whatever is currently pending (even nothing) to
// Error severity, resetting the data blob, the way a caller running with
// "treat warnings as errors" does after a command that only warned.
func (s *Session) WarningAsError() error {
	s.errType = Error
	s.data.Reset()
	return fmt.Errorf("%s", s.reportMsg)
}
