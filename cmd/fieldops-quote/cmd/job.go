// README: job subcommand; prices one job and prints an audience view.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"fieldops/internal/modules/pricing"
	"fieldops/internal/modules/remotesite"
	"fieldops/internal/types"
)

func newJobCmd(opts *rootOptions) *cobra.Command {
	var (
		flags jobFlags
		rate  int64
		view  string
	)

	cmd := &cobra.Command{
		Use:   "job",
		Short: "Price a single job",
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := flags.mode()
			if err != nil {
				return err
			}
			in := pricing.PricingInput{
				SupplierHourlyRateCents: rate,
				DurationMinutes:         flags.duration,
				OOH:                     mode,
			}
			if flags.distanceKm > 0 {
				in.RemoteSiteFee = feeContribution(flags.distanceKm)
			}

			res, err := pricing.NewService(nil, opts.log).Quote(cmd.Context(), in)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch view {
			case "customer":
				err = printJSON(out, pricing.CustomerViewOf(res))
			case "supplier":
				err = printJSON(out, pricing.SupplierViewOf(res))
			case "admin":
				err = printJSON(out, pricing.AdminViewOf(res))
			default:
				return fmt.Errorf("unknown view %q (customer, supplier, admin)", view)
			}
			if err != nil {
				return err
			}
			printLine(out, "customer pays %s, supplier receives %s, platform earns %s",
				types.FormatPrice(res.CustomerPriceCents),
				types.FormatPrice(res.SupplierPayoutCents),
				types.FormatPrice(res.PlatformRevenueCents))
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().Int64VarP(&rate, "rate", "r", 0, "supplier hourly rate in cents")
	cmd.Flags().StringVar(&view, "view", "admin", "output view: customer, supplier or admin")
	_ = cmd.MarkFlagRequired("rate")
	return cmd
}

// feeContribution prices a known distance without a city lookup.
func feeContribution(distanceKm float64) *pricing.RemoteSiteFeeContribution {
	fee := remotesite.FeeForDistance(distanceKm)
	if fee.CustomerFeeCents == 0 {
		return nil
	}
	return &pricing.RemoteSiteFeeContribution{
		CustomerFeeCents:   fee.CustomerFeeCents,
		SupplierFeeCents:   fee.SupplierFeeCents,
		PlatformFeeCents:   fee.PlatformFeeCents,
		DistanceKm:         distanceKm,
		BillableDistanceKm: fee.BillableDistanceKm,
	}
}
