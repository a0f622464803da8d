package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quickwritereader/structjson/scalar"
)

func newEscapeScannerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "escape-scanner",
		Short: "Show which string escape scanner was selected",
		Long: `Print the escape scanner strategy picked at startup and the CPU
features it was based on. Set ` + scalar.ScannerEnv + `=portable|wide to force one.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			features := scalar.Features()
			if len(features) == 0 {
				features = []string{"none"}
			}
			fmt.Fprintf(out, "scanner: %s\n", scalar.Scanner().Name)
			fmt.Fprintf(out, "cpu: %s\n", strings.Join(features, ","))
			return nil
		},
	}
}
