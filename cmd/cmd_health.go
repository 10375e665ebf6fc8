// cmd_health.go - Zustand des laufenden Servers
// Hauptfunktionen: HealthHandler
package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/qazasd2518995/ocrproject/api"
)

// HealthHandler - Zeigt ob das Modell geladen ist und auf GPU laeuft
func HealthHandler(cmd *cobra.Command, _ []string) error {
	client, err := api.ClientFromEnvironment()
	if err != nil {
		return err
	}

	health, err := client.Health(cmd.Context())
	if err != nil {
		return err
	}

	version, err := client.Version(cmd.Context())
	if err != nil {
		return err
	}

	renderTable(cmd.OutOrStdout(), []string{"STATUS", "ENGINE", "MODEL", "LOADED", "GPU", "VERSION"}, [][]string{{
		health.Status,
		health.Engine,
		health.Model,
		strconv.FormatBool(health.ModelLoaded),
		strconv.FormatBool(health.GPUAvailable),
		version,
	}})
	return nil
}

// newHealthCmd - Erstellt den health Command
func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Show the state of the running server",
		Args:  cobra.ExactArgs(0),
		RunE:  HealthHandler,
	}
}
