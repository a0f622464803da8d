package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/quickwritereader/structjson/usage"
)

func newWeatherCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weather",
		Short: "Fetch the hourly open-meteo forecast for a coordinate",
		Long: `Fetch the open-meteo hourly forecast, decode its "hourly" member into
parallel sequences and print one line per hour.

Example:
  structjson weather --lat 45.5017 --lon -73.5673`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := envFrom(cmd)
			if err != nil {
				return err
			}
			lat, _ := cmd.Flags().GetString("lat")
			lon, _ := cmd.Flags().GetString("lon")
			base, _ := cmd.Flags().GetString("base-url")
			timeout, _ := cmd.Flags().GetDuration("timeout")
			limit, _ := cmd.Flags().GetInt("hours")

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			url := usage.ForecastURL(base, lat, lon)
			e.log.Debug("fetching forecast", zap.String("url", url))
			wd, err := usage.FetchWeather(ctx, http.DefaultClient, url, e.options())
			if err != nil {
				return err
			}
			n := wd.Hours()
			if limit > 0 {
				n = min(n, limit)
			}
			for i := 0; i < n; i++ {
				fmt.Fprintln(cmd.OutOrStdout(), wd.Line(i))
			}
			return nil
		},
	}
	cmd.Flags().String("lat", "45.5017", "latitude")
	cmd.Flags().String("lon", "-73.5673", "longitude")
	cmd.Flags().String("base-url", usage.ForecastBase, "forecast endpoint")
	cmd.Flags().Duration("timeout", 10*time.Second, "request timeout")
	cmd.Flags().Int("hours", 0, "print at most this many hours (0 = all)")
	return cmd
}
