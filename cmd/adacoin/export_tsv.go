package adacoin

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/manifest-network/adacoin/internal/exporter"
)

var exportTSVCmd = &cobra.Command{
	Use:   "export-tsv [input] [output]",
	Short: "Export a JSON journal to TSV files",
	Long:  "Reads the JSON journal written by ingest --json-out from the input directory and writes events.tsv and rejections.tsv to the output directory.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputDir := args[0]
		outputDir := args[1]

		if _, err := os.Stat(inputDir); os.IsNotExist(err) {
			return fmt.Errorf("input directory '%s' does not exist", inputDir)
		}

		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory '%s': %w", outputDir, err)
		}

		if err := exporter.ExportEventsTSV(inputDir, filepath.Join(outputDir, "events.tsv")); err != nil {
			return fmt.Errorf("failed to export events: %w", err)
		}

		if err := exporter.ExportRejectionsTSV(inputDir, filepath.Join(outputDir, "rejections.tsv")); err != nil {
			return fmt.Errorf("failed to export rejections: %w", err)
		}

		fmt.Println("Export completed successfully.")
		return nil
	},
}
