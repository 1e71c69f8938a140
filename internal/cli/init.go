package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the configuration and data directories",
		Long: `Create config.yaml with default settings if it does not exist, and
initialize the data directory that holds unit state and currency rates.`,
		Args: cobra.NoArgs,
		RunE: a.runInit,
	}
}

func (a *app) runInit(cmd *cobra.Command, args []string) error {
	written, err := writeDefaultConfig(a.configDir, a.dataDir)
	if err != nil {
		return sysError(err)
	}

	backend, err := a.attachBackend()
	if err != nil {
		return err
	}
	if err := backend.Detach(); err != nil {
		return sysError(fmt.Errorf("detach store: %w", err))
	}

	dataDir, err := a.resolveDataDir()
	if err != nil {
		return sysError(err)
	}
	a.log.Info().Bool("config_written", written).Msg("initialized")

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "unitto initialized")
	fmt.Fprintln(out, "  config:", a.configDir)
	fmt.Fprintln(out, "  data:  ", dataDir)
	return nil
}
