package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dora-roi/internal/cli"
)

func main() {
	root := &cobra.Command{
		Use:   "roi",
		Short: "DORA Register of Information tooling",
		Long: `Build, validate and compare xBRL-CSV Register of Information packages
from the organization's third-party risk records.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		cli.ExportCommand(),
		cli.ValidateCommand(),
		cli.CompareCommand(),
		cli.ConcentrationCommand(),
		cli.ScoreCommand(),
		cli.LookupLEICommand(),
		cli.InitDBCommand(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
