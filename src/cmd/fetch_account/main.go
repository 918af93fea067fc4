package main

import (
	"context"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jiaming2012/longport-trade/src/cmd/fetch_account/run"
	"github.com/jiaming2012/longport-trade/src/utils"
)

var runCmd = &cobra.Command{
	Use:   "go run src/cmd/fetch_account/main.go --currency HKD --output table",
	Short: "Fetch the account balance and stock positions",
	Run: func(cmd *cobra.Command, args []string) {
		currency, err := cmd.Flags().GetString("currency")
		if err != nil {
			log.Fatalf("error getting currency: %v", err)
		}

		symbols, err := cmd.Flags().GetStringSlice("symbol")
		if err != nil {
			log.Fatalf("error getting symbol: %v", err)
		}

		output, err := cmd.Flags().GetString("output")
		if err != nil {
			log.Fatalf("error getting output: %v", err)
		}

		ctx := context.Background()
		tradeCtx, shutdown, err := utils.SetupTradeContext(ctx, cmd, "fetch_account")
		if err != nil {
			log.Fatalf("%v", err)
		}

		_, runErr := run.Run(ctx, run.RunArgs{
			Currency: currency,
			Symbols:  symbols,
			Output:   output,
		}, tradeCtx, os.Stdout)

		utils.ShutdownTelemetry(ctx, shutdown)

		if runErr != nil {
			log.Fatalf("Error: %v", runErr)
		}
	},
}

func main() {
	utils.AddConfigFlags(runCmd)
	runCmd.PersistentFlags().String("currency", "", "Only the balance in this currency, e.g. HKD, USD or CNH.")
	runCmd.PersistentFlags().StringSlice("symbol", nil, "Only positions in these symbols.")
	runCmd.PersistentFlags().String("output", run.OutputText, "Output format: text, json or table.")

	if err := runCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
