// cmd_serve.go - Server-Start und Version
// Hauptfunktionen: RunServer, versionHandler
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qazasd2518995/ocrproject/api"
	"github.com/qazasd2518995/ocrproject/envconfig"
	"github.com/qazasd2518995/ocrproject/server"
	"github.com/qazasd2518995/ocrproject/version"
)

// RunServer - Laedt das Modell und startet den OCR-Server
func RunServer(cmd *cobra.Command, _ []string) error {
	return server.Serve(cmd.Context(), envconfig.Host().Host)
}

// versionHandler - Zeigt die Version an
func versionHandler(cmd *cobra.Command, _ []string) {
	client, err := api.ClientFromEnvironment()
	if err != nil {
		return
	}

	serverVersion, err := client.Version(cmd.Context())
	if err != nil {
		fmt.Println("Warning: could not connect to a running ocrproject instance")
	}

	if serverVersion != "" {
		fmt.Printf("ocrproject version is %s\n", serverVersion)
	}

	if serverVersion != version.Version {
		fmt.Printf("Warning: client version is %s\n", version.Version)
	}
}

// newServeCmd - Erstellt den serve Command
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "serve",
		Aliases: []string{"start"},
		Short:   "Load the OCR model and start the server",
		Args:    cobra.ExactArgs(0),
		RunE:    RunServer,
	}
}
