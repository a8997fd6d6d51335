// Command stature-replay plays recorded AR session scripts through the
// measurement session controller and prints what the UI would have shown.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/banshee-data/stature/internal/monitoring"
	"github.com/banshee-data/stature/internal/version"
)

type options struct {
	configPath string
	units      string
	verbose    bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "stature-replay",
		Short: "Replay AR measurement session scenarios",
		Long: `stature-replay feeds a YAML scenario of plane detections, taps, camera
frames and tracking changes through the session controller on a simulated
clock, and prints every message, measurement and alert it produces.`,
		Version:       fmt.Sprintf("%s (%s, built %s)", version.Version, version.GitSHA, version.BuildTime),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.verbose {
				logger := log.New(stderr, "", 0)
				monitoring.SetLogger(logger.Printf)
			} else {
				monitoring.SetLogger(func(string, ...interface{}) {})
			}
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log controller diagnostics to stderr")

	root.AddCommand(newRunCmd(opts), newValidateCmd())
	return root
}

func main() {
	root := newRootCmd(os.Stdout, os.Stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
