package main

import (
	"github.com/spf13/cobra"

	"github.com/CarlosRamz1/pdf-converter/internal/catalog"
)

var listCmd = &cobra.Command{
	Use:   "list [dir]",
	Short: "List the PDFs in a directory with their page counts",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		entries, err := catalog.List(dir)
		if err != nil {
			return err
		}
		return printer.Print(entries)
	},
}
