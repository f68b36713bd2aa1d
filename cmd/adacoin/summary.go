package adacoin

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/pterm/pterm"

	"github.com/manifest-network/adacoin/internal/wallet"
)

// printSummary renders the chain state as a table on stdout.
func printSummary(w *wallet.Wallet, rejected int) error {
	index, valid := w.Verify()
	if !valid {
		slog.Warn("Chain integrity check failed", "index", index)
	}

	data := pterm.TableData{
		{"Blocks", "Rejected", "Valid", "Balance"},
		{strconv.Itoa(w.Len()), strconv.Itoa(rejected), strconv.FormatBool(valid), w.Balance().String()},
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return fmt.Errorf("failed to render summary: %w", err)
	}
	fmt.Println(table)
	return nil
}
