package dset

import (
	"bufio"
	"errors"
	"io"
)

// ParseStream implements parse-stream (spec.md §4.5): parse-line over
// every line of r, treating blank and "#"-prefixed lines as comments and
// a bare "COMMIT" line as an explicit flush of buffered restore-mode
// aggregation; EOF flushes implicitly. In interactive mode a line's error
// is reported and the stream keeps going (the supplemented "interactive
// error continuation" feature, SPEC_FULL.md §10); in batch mode the first
// error stops the stream and its ExitCode is returned.
func (d *Dset) ParseStream(r io.Reader, interactive bool) ExitCode {
	scanner := bufio.NewScanner(r)
	lastExit := ExitSuccess
	var lineno uint32

	for scanner.Scan() {
		lineno++
		line := scanner.Text()

		if isCommit, isComment := lineKind(line); isComment {
			continue
		} else if isCommit {
			if err := d.Session.Commit(); err != nil {
				d.reportErr(err)
				if !interactive {
					return ExitGeneric
				}
			}
			continue
		}

		exit, err := d.ParseLine(line, lineno)
		if err == nil {
			continue
		}
		if errors.Is(err, ErrQuit) {
			return ExitSuccess
		}
		if errors.Is(err, ErrInteractive) {
			continue
		}
		d.reportErr(err)
		if !interactive {
			return exit
		}
	}

	if err := d.Session.Commit(); err != nil {
		d.reportErr(err)
		lastExit = ExitGeneric
	}
	return lastExit
}

// reportErr surfaces err (and whatever the session's report buffer holds)
// to the driver's output, then clears the report so a continuing
// interactive session doesn't have a stale severity block the next line's
// own report (spec.md §7's escalation-only rule is scoped to one command).
func (d *Dset) reportErr(err error) {
	if msg := d.Session.Report(); msg != "" {
		d.Session.Print(msg)
	} else {
		d.Session.Print(err.Error() + "\n")
	}
	d.Session.ReportReset()
}
