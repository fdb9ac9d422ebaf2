package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/CarlosRamz1/pdf-converter/internal/classify"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [file|-]",
	Short: "Classify the lines of a text file",
	Long: `Label each non-blank line of a text file as Title, Subtitle,
Paragraph or Text, the same way rows of the xlsx export are labeled.
Reads stdin when no file or "-" is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var r io.Reader = cmd.InOrStdin()
		if len(args) == 1 && args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer f.Close()
			r = f
		}

		data, err := io.ReadAll(r)
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		lines := classify.Lines(string(data))
		if lines == nil {
			lines = []classify.Line{}
		}
		return printer.Print(lines)
	},
}
