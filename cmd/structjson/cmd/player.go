package cmd

import (
	"fmt"
	"reflect"

	"github.com/spf13/cobra"

	"github.com/quickwritereader/structjson"
	"github.com/quickwritereader/structjson/usage"
)

func newPlayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Encode the sample player and decode it back",
		Long: `Encode the sample Player record, print the JSON, decode it back
and report whether the round trip kept every field.

Example:
  structjson player --indent`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := envFrom(cmd)
			if err != nil {
				return err
			}
			indent, _ := cmd.Flags().GetBool("indent")

			c, err := structjson.New[usage.Player](e.options())
			if err != nil {
				return err
			}
			in := usage.SamplePlayer()
			out, err := c.Encode(in)
			if err != nil {
				return err
			}
			shown := out
			if indent {
				if shown, err = structjson.Indent(out, "", "  "); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(shown))

			back, err := c.Decode(out)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "round trip equal: %t\n", reflect.DeepEqual(in, back))
			return nil
		},
	}
	cmd.Flags().Bool("indent", false, "indent the printed JSON")
	return cmd
}
