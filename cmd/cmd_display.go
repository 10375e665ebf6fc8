// cmd_display.go - Terminal-Ausgabe: Spinner, Tabellen, Kuerzen auf Terminalbreite
// Hauptfunktionen: startSpinner, renderTable, truncateText, terminalWidth
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/term"
)

const defaultTermWidth = 80

var spinnerFrames = [...]string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧"}

// spinner zeigt auf einem TTY eine Animation, sonst nichts
type spinner struct {
	w     io.Writer
	msg   string
	done  chan struct{}
	wg    sync.WaitGroup
	isTTY bool
}

// startSpinner startet die Animation; Stop raeumt die Zeile wieder ab
func startSpinner(w io.Writer, msg string) *spinner {
	s := &spinner{w: w, msg: msg, done: make(chan struct{})}

	if f, ok := w.(*os.File); ok {
		s.isTTY = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	if !s.isTTY {
		return s
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()
		for i := 0; ; i++ {
			fmt.Fprintf(s.w, "\r%s %s", spinnerFrames[i%len(spinnerFrames)], s.msg)
			select {
			case <-s.done:
				fmt.Fprint(s.w, "\r\033[K")
				return
			case <-ticker.C:
			}
		}
	}()

	return s
}

func (s *spinner) Stop() {
	if !s.isTTY {
		return
	}
	close(s.done)
	s.wg.Wait()
}

// terminalWidth liefert die Breite von stdout oder 80
func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return defaultTermWidth
}

// truncateText macht Text einzeilig und kuerzt ihn auf width Spalten
func truncateText(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// renderTable schreibt eine randlose Tabelle wie `ollama list`
func renderTable(w io.Writer, header []string, data [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(data)
	table.Render()
}
