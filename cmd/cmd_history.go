// cmd_history.go - OCR-Historie eines Benutzers anzeigen und verwalten
// Hauptfunktionen: HistoryListHandler, HistoryDeleteHandler, HistoryClearHandler
package cmd

import (
	"fmt"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/qazasd2518995/ocrproject/api"
)

// historyRows baut Tabellenzeilen; der Text fuellt die Restbreite
func historyRows(records []api.HistoryRecord, width int) [][]string {
	const padding = 4

	var data [][]string
	for _, r := range records {
		id := r.ID
		if len(id) > 8 {
			id = id[:8]
		}
		date := r.Date.Local().Format(time.DateTime)
		row := []string{id, date, r.OCRType, r.Filename}

		used := 0
		for _, col := range row {
			used += runewidth.StringWidth(col) + padding
		}
		data = append(data, append(row, truncateText(r.Text, max(width-used, 10))))
	}
	return data
}

// HistoryListHandler - Listet die Historie eines Benutzers, neueste zuerst
func HistoryListHandler(cmd *cobra.Command, args []string) error {
	client, err := api.ClientFromEnvironment()
	if err != nil {
		return err
	}

	records, err := client.History(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	renderTable(cmd.OutOrStdout(), []string{"ID", "DATE", "TYPE", "FILE", "TEXT"}, historyRows(records, terminalWidth()))
	return nil
}

// HistoryDeleteHandler - Loescht einen Eintrag
func HistoryDeleteHandler(cmd *cobra.Command, args []string) error {
	client, err := api.ClientFromEnvironment()
	if err != nil {
		return err
	}

	if err := client.DeleteHistory(cmd.Context(), args[0], args[1]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "deleted '%s'\n", args[1])
	return nil
}

// HistoryClearHandler - Loescht die gesamte Historie eines Benutzers
func HistoryClearHandler(cmd *cobra.Command, args []string) error {
	client, err := api.ClientFromEnvironment()
	if err != nil {
		return err
	}

	if err := client.ClearHistory(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "cleared history of '%s'\n", args[0])
	return nil
}

// newHistoryCmd - Erstellt den history Command mit Unterbefehlen
func newHistoryCmd() *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Manage a user's OCR history",
	}

	historyCmd.AddCommand(
		&cobra.Command{
			Use:     "list USER",
			Aliases: []string{"ls"},
			Short:   "List a user's history, newest first",
			Args:    cobra.ExactArgs(1),
			PreRunE: checkServerHeartbeat,
			RunE:    HistoryListHandler,
		},
		&cobra.Command{
			Use:     "delete USER ID",
			Aliases: []string{"rm"},
			Short:   "Delete one history record",
			Args:    cobra.ExactArgs(2),
			PreRunE: checkServerHeartbeat,
			RunE:    HistoryDeleteHandler,
		},
		&cobra.Command{
			Use:     "clear USER",
			Short:   "Delete a user's whole history",
			Args:    cobra.ExactArgs(1),
			PreRunE: checkServerHeartbeat,
			RunE:    HistoryClearHandler,
		},
	)

	return historyCmd
}
