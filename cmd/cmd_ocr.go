// cmd_ocr.go - OCR eines lokalen Bildes ueber den laufenden Server
// Hauptfunktionen: OCRHandler, buildOCRCall
package cmd

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/qazasd2518995/ocrproject/api"
	"github.com/qazasd2518995/ocrproject/ocr"
)

type ocrFlags struct {
	ocrType string
	box     string
	color   string
	html    string
	user    string
}

type ocrResult struct {
	text string
	html string
	mode string
}

// runOCR waehlt /ocr oder /ocr/advanced je nach Flags
func runOCR(ctx context.Context, client *api.Client, data []byte, flags ocrFlags) (*ocrResult, error) {
	mode, err := ocr.ParseMode(flags.ocrType)
	if err != nil {
		return nil, err
	}

	image := base64.StdEncoding.EncodeToString(data)

	if flags.box != "" || flags.color != "" {
		if mode != ocr.ModeOCR && mode != ocr.ModeFormat {
			return nil, fmt.Errorf("--box and --color only work with --type ocr or format")
		}
		resp, err := client.AdvancedOCR(ctx, &api.AdvancedOCRRequest{
			Image:    image,
			OCRType:  mode.String(),
			OCRBox:   flags.box,
			OCRColor: flags.color,
		})
		if err != nil {
			return nil, err
		}
		return &ocrResult{text: resp.Text, mode: resp.OCRType}, nil
	}

	resp, err := client.OCR(ctx, &api.OCRRequest{Image: image, OCRType: mode.String()})
	if err != nil {
		return nil, err
	}
	return &ocrResult{text: resp.Text, html: resp.RenderHTML, mode: resp.OCRType}, nil
}

// OCRHandler - Erkennt den Text einer Bilddatei
func OCRHandler(cmd *cobra.Command, args []string) error {
	var flags ocrFlags
	flags.ocrType, _ = cmd.Flags().GetString("type")
	flags.box, _ = cmd.Flags().GetString("box")
	flags.color, _ = cmd.Flags().GetString("color")
	flags.html, _ = cmd.Flags().GetString("html")
	flags.user, _ = cmd.Flags().GetString("user")

	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	client, err := api.ClientFromEnvironment()
	if err != nil {
		return err
	}

	spin := startSpinner(os.Stderr, "recognizing "+filepath.Base(args[0]))
	result, err := runOCR(cmd.Context(), client, data, flags)
	spin.Stop()
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), result.text)

	if flags.html != "" {
		if result.html == "" {
			return errors.New("server returned no HTML, use --type format-render")
		}
		if err := os.WriteFile(flags.html, []byte(result.html), 0o644); err != nil {
			return err
		}
	}

	if flags.user != "" {
		_, err := client.AddHistory(cmd.Context(), flags.user, api.HistoryRecord{
			Text:     result.text,
			OCRType:  result.mode,
			Filename: filepath.Base(args[0]),
		})
		if err != nil {
			return fmt.Errorf("save history: %w", err)
		}
	}

	return nil
}

// newOCRCmd - Erstellt den ocr Command
func newOCRCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ocr IMAGE",
		Short:   "Recognize the text of an image",
		Args:    cobra.ExactArgs(1),
		PreRunE: checkServerHeartbeat,
		RunE:    OCRHandler,
	}

	cmd.Flags().String("type", "ocr", "OCR mode: ocr, format, multi-crop or format-render")
	cmd.Flags().String("box", "", "Only recognize a region, e.g. \"[10,10,400,120]\"")
	cmd.Flags().String("color", "", "Only recognize text of a color: red, green or blue")
	cmd.Flags().String("html", "", "Write the rendered HTML (format-render) to this file")
	cmd.Flags().String("user", "", "Save the result to this user's history")
	return cmd
}

// checkServerHeartbeat - Prueft ob der Server erreichbar ist
func checkServerHeartbeat(cmd *cobra.Command, _ []string) error {
	client, err := api.ClientFromEnvironment()
	if err != nil {
		return err
	}
	if err := client.Heartbeat(cmd.Context()); err != nil {
		return fmt.Errorf("ocrproject server not responding, start it with `ocrproject serve`: %w", err)
	}
	return nil
}
