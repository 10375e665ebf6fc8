// cmd.go - Haupt-CLI Setup und Root Command
// Hauptfunktionen: NewCLI, appendEnvDocs
package cmd

import (
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/containerd/console"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/qazasd2518995/ocrproject/envconfig"
)

// appendEnvDocs - Fuegt Umgebungsvariablen-Dokumentation zum Command hinzu
func appendEnvDocs(cmd *cobra.Command, envs []envconfig.EnvVar) {
	if len(envs) == 0 {
		return
	}

	envUsage := `
Environment Variables:
`
	for _, e := range envs {
		envUsage += fmt.Sprintf("      %-24s   %s\n", e.Name, e.Description)
	}

	cmd.SetUsageTemplate(cmd.UsageTemplate() + envUsage)
}

// NewCLI - Erstellt das Haupt-CLI mit allen Commands
func NewCLI() *cobra.Command {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	cobra.EnableCommandSorting = false

	if runtime.GOOS == "windows" && term.IsTerminal(int(os.Stdout.Fd())) {
		console.ConsoleFromFile(os.Stdin) //nolint:errcheck
	}

	rootCmd := &cobra.Command{
		Use:           "ocrproject",
		Short:         "OCR service around a pretrained vision model",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		Run: func(cmd *cobra.Command, args []string) {
			if version, _ := cmd.Flags().GetBool("version"); version {
				versionHandler(cmd, args)
				return
			}

			cmd.Print(cmd.UsageString())
		},
	}

	rootCmd.Flags().BoolP("version", "v", false, "Show version information")

	serveCmd := newServeCmd()
	ocrCmd := newOCRCmd()
	healthCmd := newHealthCmd()
	historyCmd := newHistoryCmd()

	// Environment-Dokumentation hinzufuegen
	envVars := envconfig.AsMap()
	envs := []envconfig.EnvVar{envVars["GOTOCR_HOST"]}

	for _, cmd := range []*cobra.Command{serveCmd, ocrCmd, healthCmd, historyCmd} {
		switch cmd {
		case serveCmd:
			appendEnvDocs(cmd, []envconfig.EnvVar{
				envVars["GOTOCR_DEBUG"],
				envVars["GOTOCR_HOST"],
				envVars["GOTOCR_ENGINE"],
				envVars["GOTOCR_MODEL"],
				envVars["OLLAMA_HOST"],
				envVars["GOTOCR_NOPULL"],
				envVars["GOTOCR_KEEP_ALIVE"],
				envVars["GOTOCR_LOAD_TIMEOUT"],
				envVars["GOTOCR_TMPDIR"],
				envVars["GOTOCR_MAX_BODY"],
				envVars["GOTOCR_CROP_PARALLEL"],
				envVars["GOTOCR_TESSERACT_LANGS"],
				envVars["GOTOCR_HISTORY_DB"],
				envVars["GOTOCR_HISTORY_LIMIT"],
				envVars["SENTRY_DSN"],
			})
		default:
			appendEnvDocs(cmd, envs)
		}
	}

	rootCmd.AddCommand(
		serveCmd,
		ocrCmd,
		healthCmd,
		historyCmd,
	)

	return rootCmd
}
