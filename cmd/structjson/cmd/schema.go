package cmd

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/spf13/cobra"

	"github.com/quickwritereader/structjson"
	"github.com/quickwritereader/structjson/schema"
	"github.com/quickwritereader/structjson/usage"
)

var sampleTypes = map[string]reflect.Type{
	"player":    reflect.TypeFor[usage.Player](),
	"character": reflect.TypeFor[usage.Character](),
	"twitter":   reflect.TypeFor[usage.TwitterData](),
	"weather":   reflect.TypeFor[usage.WeatherData](),
}

func sampleNames() []string {
	names := make([]string, 0, len(sampleTypes))
	for n := range sampleTypes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema <type>",
		Short: "Print the field layout discovered for a sample record",
		Long: fmt.Sprintf(`Print the schema of one of the bundled records as JSON.

Types: %v`, sampleNames()),
		Args:      cobra.ExactArgs(1),
		ValidArgs: sampleNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, ok := sampleTypes[args[0]]
			if !ok {
				return fmt.Errorf("unknown type %q, pick one of %v", args[0], sampleNames())
			}
			s, err := schema.SchemaOf(t)
			if err != nil {
				return err
			}
			out, err := structjson.MarshalIndent(s.Describe(), "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}
