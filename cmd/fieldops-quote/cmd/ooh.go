// README: ooh and split subcommands; out-of-hours detection and hour splitting.
package cmd

import (
	"github.com/spf13/cobra"

	"fieldops/internal/modules/pricing"
)

func newOOHCmd() *cobra.Command {
	var (
		date, clock, level string
		duration           int
	)

	cmd := &cobra.Command{
		Use:   "ooh",
		Short: "Detect whether a booking is out of hours",
		RunE: func(cmd *cobra.Command, args []string) error {
			sched, err := pricing.ParseSchedule(date, clock)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), pricing.DetectOOH(sched, duration, pricing.ServiceLevel(level)))
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "scheduled date YYYY-MM-DD")
	cmd.Flags().StringVar(&clock, "time", "", "scheduled start HH:MM")
	cmd.Flags().IntVarP(&duration, "duration", "d", 120, "job duration in minutes")
	cmd.Flags().StringVar(&level, "level", string(pricing.ServiceLevelStandard), "service level")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("time")
	return cmd
}

func newSplitCmd() *cobra.Command {
	var (
		start    string
		duration int
	)

	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split a job into business and out-of-hours time",
		RunE: func(cmd *cobra.Command, args []string) error {
			h, m, err := pricing.ParseClock(start)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), pricing.CalculateOOHHours(h, m, duration))
		},
	}
	cmd.Flags().StringVar(&start, "start", "", "start time HH:MM")
	cmd.Flags().IntVarP(&duration, "duration", "d", 120, "job duration in minutes")
	_ = cmd.MarkFlagRequired("start")
	return cmd
}
