// README: range subcommand; min/avg/max customer price across supplier rates.
package cmd

import (
	"github.com/spf13/cobra"

	"fieldops/internal/modules/pricing"
	"fieldops/internal/types"
)

func newRangeCmd(opts *rootOptions) *cobra.Command {
	var (
		flags jobFlags
		rates []int64
	)

	cmd := &cobra.Command{
		Use:   "range",
		Short: "Price range across candidate supplier rates",
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := flags.mode()
			if err != nil {
				return err
			}
			in := pricing.PriceRangeInput{
				SupplierRatesCents: rates,
				DurationMinutes:    flags.duration,
				OOH:                mode,
			}
			if flags.distanceKm > 0 {
				in.RemoteSiteFee = feeContribution(flags.distanceKm)
			}

			res, err := pricing.NewService(nil, opts.log).Range(cmd.Context(), in)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if err := printJSON(out, res); err != nil {
				return err
			}
			printLine(out, "%d suppliers: %s to %s (avg %s)", res.SupplierCount,
				types.FormatPrice(res.MinPriceCents),
				types.FormatPrice(res.MaxPriceCents),
				types.FormatPrice(res.AvgPriceCents))
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().Int64SliceVar(&rates, "rates", nil, "comma-separated supplier hourly rates in cents")
	_ = cmd.MarkFlagRequired("rates")
	return cmd
}
