package cmd

import "github.com/spf13/cobra"

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.conf.Dump(cmd.OutOrStdout())
		},
	}
}
