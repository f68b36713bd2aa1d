package adacoin

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/manifest-network/adacoin/internal/exporter"
)

var exportXLSXCmd = &cobra.Command{
	Use:   "export-xlsx [input] [output]",
	Short: "Export the rejected blocks of a JSON journal to a spreadsheet",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(args[0]); os.IsNotExist(err) {
			return fmt.Errorf("input directory '%s' does not exist", args[0])
		}

		if err := exporter.ExportRejectionsXLSX(args[0], args[1]); err != nil {
			return fmt.Errorf("failed to export rejections: %w", err)
		}

		fmt.Println("Export completed successfully.")
		return nil
	},
}
