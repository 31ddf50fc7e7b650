// README: remote-fee subcommand; remote site fee from a distance or from coordinates and a city file.
package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fieldops/internal/geo"
	"fieldops/internal/modules/remotesite"
	"fieldops/internal/types"
)

func newRemoteFeeCmd(opts *rootOptions) *cobra.Command {
	var (
		distanceKm float64
		lat, lng   float64
		citiesPath string
	)

	cmd := &cobra.Command{
		Use:   "remote-fee",
		Short: "Remote site fee for a job site",
		Long: `Prices the remote site fee either for a known distance (--distance-km)
or for coordinates against a JSON city catalog (--lat, --lng, --cities).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if cmd.Flags().Changed("distance-km") {
				fee := remotesite.FeeForDistance(distanceKm)
				if err := printJSON(out, fee); err != nil {
					return err
				}
				printLine(out, "customer %s, supplier %s, platform %s",
					types.FormatPrice(fee.CustomerFeeCents),
					types.FormatPrice(fee.SupplierFeeCents),
					types.FormatPrice(fee.PlatformFeeCents))
				return nil
			}

			if citiesPath == "" || !cmd.Flags().Changed("lat") || !cmd.Flags().Changed("lng") {
				return errors.New("either --distance-km or --lat, --lng and --cities are required")
			}
			cities, err := loadCities(citiesPath)
			if err != nil {
				return err
			}
			finder := geo.NewFinder(geo.NewMemoryIndex(cities), remotesite.SearchRadiusKm, remotesite.MajorCityPopulationThreshold)
			res, err := remotesite.NewService(finder, nil, opts.log).Calculate(cmd.Context(), lat, lng)
			if err != nil {
				return err
			}
			if err := printJSON(out, res); err != nil {
				return err
			}
			if !res.IsServiceable {
				printLine(out, "location is not serviceable")
				return nil
			}
			printLine(out, "%.1f km from %s, fee %s", res.DistanceKm, *res.NearestMajorCity, types.FormatPrice(res.CustomerFeeCents))
			return nil
		},
	}
	cmd.Flags().Float64Var(&distanceKm, "distance-km", 0, "distance to the nearest major city in km")
	cmd.Flags().Float64Var(&lat, "lat", 0, "site latitude")
	cmd.Flags().Float64Var(&lng, "lng", 0, "site longitude")
	cmd.Flags().StringVar(&citiesPath, "cities", "", "JSON file with an array of cities")
	return cmd
}

func loadCities(path string) ([]geo.City, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cities []geo.City
	if err := json.Unmarshal(raw, &cities); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cities, nil
}
