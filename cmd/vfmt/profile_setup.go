package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"vfmt/internal/prof"
)

// startProfiling starts the runtime profilers named by the profile flags.
// The returned stop function writes the remaining profiles.
func startProfiling(cmd *cobra.Command) (func(), error) {
	flags := cmd.Root().PersistentFlags()
	var opts prof.Options
	var err error
	if opts.CPU, err = flags.GetString("cpuprofile"); err != nil {
		return nil, err
	}
	if opts.Mem, err = flags.GetString("memprofile"); err != nil {
		return nil, err
	}
	if opts.Execution, err = flags.GetString("exectrace"); err != nil {
		return nil, err
	}
	if !opts.Enabled() {
		return func() {}, nil
	}
	session, err := prof.Start(opts)
	if err != nil {
		return nil, err
	}
	return func() {
		if err := session.Stop(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "profile: %v\n", err)
		}
	}, nil
}
