package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/qazasd2518995/ocrproject/cmd"
)

func main() {
	cobra.CheckErr(cmd.NewCLI().ExecuteContext(context.Background()))
}
