package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGetCommand(app *App) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "get KEY",
		Short: "Print one resolved value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, _, err := app.resolve()
			if err != nil {
				return err
			}

			key := args[0]
			get := conf.Get
			if raw {
				get = conf.GetRaw
			}
			value, ok := get(key)
			if !ok {
				return fmt.Errorf("%s is not set", key)
			}

			_, err = fmt.Fprintln(app.Out, value)
			return err
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print the value without ${...} expansion")
	return cmd
}
