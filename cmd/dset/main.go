// Command dset is the CLI front-end for the userspace control plane: a
// thin cobra shell (flag parsing disabled, per SPEC_FULL.md §4.4) that
// hands its whole argv to the command driver in pkg/dset.
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cbdog94/dset/pkg/dset"
	"github.com/cbdog94/dset/pkg/dset/transport/netlink"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:                "dset",
	Short:              "Manage kernel-resident domain sets",
	DisableFlagParsing: true,
	SilenceUsage:       true,
	SilenceErrors:      true,
	RunE: func(cmd *cobra.Command, args []string) error {
		os.Exit(int(run(args)))
		return nil
	},
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("dset %s\n  commit: %s\n  built: %s\n", version, commit, date))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(int(dset.ExitGeneric))
	}
}

// run wires one session to a real netlink transport and dispatches argv
// through the command driver, per spec.md §4.5.
func run(args []string) dset.ExitCode {
	t := netlink.New()
	d := dset.New(t)
	if err := d.Init(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return dset.ExitSession
	}
	defer d.Fini()

	exit, err := d.ParseArgv(args, 0)
	switch {
	case err == nil:
		return exit
	case err == dset.ErrQuit:
		return dset.ExitSuccess
	case err == dset.ErrInteractive:
		return runInteractive(d)
	case err == dset.ErrRestore:
		return runRestore(d)
	default:
		printErr(d, err)
		return exit
	}
}

// runInteractive implements the "-" token (spec.md §4.5 step 3): read
// further lines from standard input, one command per line, reporting and
// continuing past errors rather than aborting the whole session.
func runInteractive(d *dset.Dset) dset.ExitCode {
	return d.ParseStream(os.Stdin, true)
}

// runRestore implements the "restore" command: replay a save-format
// stream (spec.md §6's save/restore text format) from -file if given,
// otherwise standard input, as a batch (the first error aborts).
func runRestore(d *dset.Dset) dset.ExitCode {
	path := d.FilePath()
	if path == "" {
		return d.ParseStream(bufio.NewReader(os.Stdin), false)
	}
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return dset.ExitGeneric
	}
	defer f.Close()
	return d.ParseStream(bufio.NewReader(f), false)
}

func printErr(d *dset.Dset, err error) {
	if msg := d.Session.Report(); msg != "" {
		fmt.Fprint(os.Stderr, msg)
		return
	}
	fmt.Fprintln(os.Stderr, err)
}
