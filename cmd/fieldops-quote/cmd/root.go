// README: Root command, shared flags and output helpers for fieldops-quote.
package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fieldops/internal/logging"
	"fieldops/internal/modules/pricing"
)

type rootOptions struct {
	verbose bool
	log     *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{log: zap.NewNop()}

	root := &cobra.Command{
		Use:   "fieldops-quote",
		Short: "Price field-service jobs offline",
		Long: `fieldops-quote runs the pricing engine without the API server.

Examples:
  fieldops-quote job --rate 10000 --duration 180 --date 2026-10-16 --time 16:00
  fieldops-quote range --rates 8000,10000,12000 --duration 120
  fieldops-quote remote-fee --distance-km 75`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !opts.verbose {
				return nil
			}
			log, err := logging.New(logging.Config{Level: "debug", Format: "console", Output: "stderr"})
			if err != nil {
				return err
			}
			opts.log = log
			return nil
		},
	}
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log to stderr")

	root.AddCommand(
		newJobCmd(opts),
		newRangeCmd(opts),
		newOOHCmd(),
		newSplitCmd(),
		newRemoteFeeCmd(opts),
	)
	return root
}

// Execute runs the CLI
func Execute() error {
	return newRootCmd().Execute()
}

// jobFlags are the scheduling flags shared by job and range.
type jobFlags struct {
	duration   int
	ooh        bool
	start      string
	date       string
	clock      string
	distanceKm float64
}

func (f *jobFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.duration, "duration", "d", 120, "job duration in minutes (120-960)")
	cmd.Flags().BoolVar(&f.ooh, "ooh", false, "bill out of hours")
	cmd.Flags().StringVar(&f.start, "start", "", "start time HH:MM; with --ooh splits the job against business hours")
	cmd.Flags().StringVar(&f.date, "date", "", "scheduled date YYYY-MM-DD; detects OOH from the schedule")
	cmd.Flags().StringVar(&f.clock, "time", "", "scheduled start HH:MM, used with --date")
	cmd.Flags().Float64Var(&f.distanceKm, "distance-km", 0, "distance to the nearest major city; adds the remote site fee")
	cmd.MarkFlagsRequiredTogether("date", "time")
}

func (f *jobFlags) mode() (pricing.OOHMode, error) {
	if f.date != "" {
		sched, err := pricing.ParseSchedule(f.date, f.clock)
		if err != nil {
			return nil, err
		}
		return pricing.ModeFor(sched, pricing.DetectOOH(sched, f.duration, pricing.ServiceLevelStandard)), nil
	}
	if f.start == "" {
		return pricing.ModeFromFlags(f.ooh, nil, nil), nil
	}
	h, m, err := pricing.ParseClock(f.start)
	if err != nil {
		return nil, err
	}
	return pricing.ModeFromFlags(f.ooh, &h, &m), nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printLine(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format+"\n", args...)
}
