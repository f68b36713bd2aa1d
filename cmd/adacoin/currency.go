package adacoin

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/manifest-network/adacoin/internal/ledger"
)

var currencyCmd = &cobra.Command{
	Use:   "currency [value]",
	Args:  cobra.ExactArgs(1),
	Short: "Check an amount against the n.nn currency format",
	Run: func(cmd *cobra.Command, args []string) {
		if ledger.IsValidCurrency(args[0]) {
			fmt.Printf("%s is a valid amount\n", args[0])
			return
		}
		fmt.Printf("%s is not a valid amount\n", args[0])
	},
}
