package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aescanero/confpatch/pkg/adapters/sink"
)

func newDumpCommand(app *App) *cobra.Command {
	var (
		format  string
		sources bool
	)

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the resolved configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, _, err := app.resolve()
			if err != nil {
				return err
			}

			if !sources {
				return sink.Encode(app.Out, conf, format)
			}

			tw := tabwriter.NewWriter(app.Out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "KEY\tSOURCE\tFINAL")
			for _, e := range conf.Entries() {
				fmt.Fprintf(tw, "%s\t%s\t%t\n", e.Key, e.Source, e.Final)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", sink.FormatXML, "output format: xml, yaml or properties")
	cmd.Flags().BoolVar(&sources, "sources", false, "list each key with the resource that set it")
	return cmd
}
