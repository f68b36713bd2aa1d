package adacoin

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/manifest-network/adacoin/internal/ledger"
)

var dateCmd = &cobra.Command{
	Use:   "date [value]",
	Args:  cobra.ExactArgs(1),
	Short: "Show how many days ago a date was and whether a block could carry it",
	RunE: func(cmd *cobra.Command, args []string) error {
		ts := ledger.NewTimestampService(time.Now, ledger.SlogSink{})
		if _, err := ts.IsDateValid(args[0]); err != nil {
			return err
		}

		days, err := ts.DaysSince(args[0])
		if err != nil {
			return err
		}

		maxAge := viper.GetUint("max-age-days")
		inWindow := days >= 0 && days <= float64(maxAge)
		fmt.Printf("%s: %.0f days ago, within %d-day window: %t\n", args[0], days, maxAge, inWindow)
		return nil
	},
}
