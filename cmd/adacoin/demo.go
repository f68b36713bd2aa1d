package adacoin

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/manifest-network/adacoin/internal/ledger"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Args:  cobra.NoArgs,
	Short: "Build a small chain and print its balance",
	Long:  `Append three recent blocks to a fresh chain, then print its validity and balance.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := newWallet(ledger.SlogSink{})
		if err != nil {
			return err
		}

		today := time.Now()
		txs := []ledger.Transaction{
			ledger.NewCredit(uuid.NewString(), "25.50"),
			ledger.NewDebit(uuid.NewString(), "6.99"),
			ledger.NewCredit(uuid.NewString(), "5.45"),
		}

		rejected := 0
		for i, tx := range txs {
			ts := ledger.FormatDate(today.AddDate(0, 0, i-len(txs)))
			if err := w.Add(ts, tx); err != nil {
				slog.Warn("Block rejected", "ts", ts, "tid", tx.ID(), "error", err)
				rejected++
				continue
			}
			slog.Info("Block added", "ts", ts, "tid", tx.ID())
		}

		return printSummary(w, rejected)
	},
}
