package cmd

import (
	"github.com/spf13/cobra"

	"github.com/vvwxvv/Data-Schema-Json-App/internal/config"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/flags"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/presentation"
)

var flagsCmd = &cobra.Command{
	Use:   "flags",
	Short: "Show the feature flags and their values as JSON",
	Long: `Show every feature flag the editor reads, its default and the value in
effect after the config file's flags map is applied. Names in the config
that the editor does not read are listed with "known": false.`,
	Args: cobra.NoArgs,
	RunE: withConfig(runFlags),
}

func init() {
	rootCmd.AddCommand(flagsCmd)
}

func runFlags(cmd *cobra.Command, _ []string, c config.Config) error {
	return presentation.NewFormatter(cmd.OutOrStdout()).JSON(flags.New(c.Flags).States())
}
