package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var flags rootFlags

	root := &cobra.Command{
		Use:   "ndview",
		Short: "Inspect zero-copy views, broadcasts, gathers and selects",
		Long: `ndview builds small arange arrays and runs indexing operations on them,
printing the resulting shape, byte strides, offset and values.

Settings are read from --config (YAML) and the NDVIEW_DEVICE,
NDVIEW_LOG_LEVEL and NDVIEW_NUM_WORKERS environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "path to a YAML config file")
	pf.StringVar(&flags.device, "device", "", `device to run on, e.g. "native" or "webgpu:0"`)
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "log every backend dispatch")
	pf.BoolVar(&flags.metrics, "metrics", false, "print dispatch metrics to stderr on exit")

	root.AddCommand(
		newViewCmd(&flags),
		newBroadcastCmd(),
		newTakeCmd(&flags),
		newWhereCmd(&flags),
		newVersionCmd(),
	)
	return root
}

// withApp builds the engine for cmd, runs f and tears the engine down.
func withApp(cmd *cobra.Command, flags *rootFlags, f func(a *app) error) (err error) {
	stderr := cmd.ErrOrStderr()

	a, err := newApp(*flags, stderr)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
		if flags.metrics {
			if merr := a.writeMetrics(stderr); merr != nil {
				err = errors.Join(err, merr)
			}
		}
	}()

	if err := f(a); err != nil {
		return fmt.Errorf("%s: %w", cmd.Name(), err)
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ndview %s\n", version)
		},
	}
}
