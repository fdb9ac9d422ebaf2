package main

import (
	"github.com/spf13/cobra"

	"github.com/CarlosRamz1/pdf-converter/internal/api"
	"github.com/CarlosRamz1/pdf-converter/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
	verbose      bool

	printer *api.Printer
)

var rootCmd = &cobra.Command{
	Use:   "pdfconv",
	Short: "Convert PDFs to editable Word and Excel documents",
	Long: `pdfconv extracts the text of PDF files and writes it out as an
editable .docx document and a classified .xlsx spreadsheet.

Text is read from the PDF's text layer when it has one. Scanned,
image-only PDFs are rendered with pdftoppm and run through OCR.
Each spreadsheet row labels a line as Title, Subtitle, Paragraph or Text.`,
	Version:      version.GitRelease,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.pdfconv/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "pdfconv home directory (default: ~/.pdfconv)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v", false, "enable debug logging",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		format, err := api.ParseOutputFormat(outputFormat)
		if err != nil {
			return err
		}
		printer = api.NewPrinter(cmd.OutOrStdout(), format)
		return nil
	}

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
