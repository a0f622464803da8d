package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/quickwritereader/structjson/codecs"
	"github.com/quickwritereader/structjson/usage"
)

func newBenchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure decode throughput on a twitter-style document",
		Long: `Decode a twitter-style document repeatedly and print the throughput.
Without --file a synthetic document is generated.

Example:
  structjson bench --file twitter.json --iterations 500 --codec sonic`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := envFrom(cmd)
			if err != nil {
				return err
			}
			file, _ := cmd.Flags().GetString("file")
			statuses, _ := cmd.Flags().GetInt("statuses")

			var data []byte
			if file != "" {
				if data, err = os.ReadFile(file); err != nil {
					return fmt.Errorf("failed to read %s: %w", file, err)
				}
			} else if data, err = usage.SyntheticTwitter(statuses); err != nil {
				return err
			}

			c, err := benchCodec(e)
			if err != nil {
				return err
			}
			if _, err := c.Decode(data); err != nil {
				return fmt.Errorf("warmup parse: %w", err)
			}

			iterations := e.cfg.Iterations
			e.log.Debug("bench start",
				zap.String("codec", e.cfg.Codec),
				zap.Int("bytes", len(data)),
				zap.Int("iterations", iterations))

			start := time.Now()
			for i := 0; i < iterations; i++ {
				if _, err := c.Decode(data); err != nil {
					return fmt.Errorf("parse on iteration %d: %w", i, err)
				}
			}
			elapsed := time.Since(start)

			total := float64(len(data)) * float64(iterations)
			gb := total / 1e9
			seconds := elapsed.Seconds()
			fmt.Fprintf(cmd.OutOrStdout(), "%s: parsed %.4f GB in %.3f seconds (%.2f MB/s)\n",
				e.cfg.Codec, gb, seconds, total/1e6/seconds)
			return nil
		},
	}
	cmd.Flags().String("file", "", "JSON document to decode (default: synthetic)")
	cmd.Flags().Int("statuses", 1000, "statuses in the synthetic document")
	cmd.Flags().Int("iterations", 1000, "decode iterations")
	cmd.Flags().String("codec", "structjson", "codec name")
	return cmd
}

// benchCodec returns the configured codec; the structjson one carries the
// CLI options.
func benchCodec(e *env) (codecs.Codec[usage.TwitterData], error) {
	if e.cfg.Codec == "structjson" {
		return codecs.JSON[usage.TwitterData]{Options: e.options()}, nil
	}
	if !codecs.IsJSON(e.cfg.Codec) {
		return nil, fmt.Errorf("codec %q does not read JSON, pick one of %v", e.cfg.Codec, jsonCodecs())
	}
	return codecs.ByName[usage.TwitterData](e.cfg.Codec)
}

func jsonCodecs() []string {
	var out []string
	for _, n := range codecs.Names() {
		if codecs.IsJSON(n) {
			out = append(out, n)
		}
	}
	return out
}
