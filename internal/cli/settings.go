package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Read or change settings in config.yaml",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "get <key>",
			Short: "Print the effective value of a setting",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if !configKeys[args[0]] {
					return userError(fmt.Errorf("unknown config key %q (valid: %s)", args[0], validConfigKeys()))
				}
				fmt.Fprintln(cmd.OutOrStdout(), a.cfg.Get(args[0]))
				return nil
			},
		},
		&cobra.Command{
			Use:   "set <key> <value>",
			Short: "Persist a setting",
			Example: `  unitto config set separator period
  unitto config set precision 10`,
			Args: cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := setConfigValue(a.configDir, args[0], args[1]); err != nil {
					return userError(err)
				}
				a.log.Info().Str("key", args[0]).Str("value", args[1]).Msg("setting saved")
				return nil
			},
		},
	)
	return cmd
}
