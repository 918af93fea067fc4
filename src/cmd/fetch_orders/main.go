package main

import (
	"context"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jiaming2012/longport-trade/src/cmd/fetch_orders/run"
	"github.com/jiaming2012/longport-trade/src/models"
	"github.com/jiaming2012/longport-trade/src/utils"
)

var runCmd = &cobra.Command{
	Use:   "go run src/cmd/fetch_orders/main.go --symbol 700.HK --output table",
	Short: "Fetch today's orders, or history orders when --start-at or --end-at is given",
	Run: func(cmd *cobra.Command, args []string) {
		symbol, err := cmd.Flags().GetString("symbol")
		if err != nil {
			log.Fatalf("error getting symbol: %v", err)
		}

		statuses, err := cmd.Flags().GetStringSlice("status")
		if err != nil {
			log.Fatalf("error getting status: %v", err)
		}

		side, err := cmd.Flags().GetString("side")
		if err != nil {
			log.Fatalf("error getting side: %v", err)
		}

		market, err := cmd.Flags().GetString("market")
		if err != nil {
			log.Fatalf("error getting market: %v", err)
		}

		output, err := cmd.Flags().GetString("output")
		if err != nil {
			log.Fatalf("error getting output: %v", err)
		}

		outDir, err := cmd.Flags().GetString("out-dir")
		if err != nil {
			log.Fatalf("error getting out-dir: %v", err)
		}

		startAt, err := cmd.Flags().GetString("start-at")
		if err != nil {
			log.Fatalf("error getting start-at: %v", err)
		}

		endAt, err := cmd.Flags().GetString("end-at")
		if err != nil {
			log.Fatalf("error getting end-at: %v", err)
		}

		opts := &models.GetTodayOrdersOptions{
			Symbol: symbol,
			Status: run.ParseStatuses(statuses),
			Market: market,
		}

		if side != "" {
			if opts.Side, err = models.ParseOrderSide(side); err != nil {
				log.Fatalf("error parsing side: %v", err)
			}
		}

		history, err := run.NewHistoryOptions(opts, startAt, endAt)
		if err != nil {
			log.Fatalf("error parsing history range: %v", err)
		}

		ctx := context.Background()
		tradeCtx, shutdown, err := utils.SetupTradeContext(ctx, cmd, "fetch_orders")
		if err != nil {
			log.Fatalf("%v", err)
		}

		_, runErr := run.Run(ctx, run.RunArgs{
			Options: opts,
			History: history,
			Output:  output,
			OutDir:  outDir,
		}, tradeCtx, os.Stdout)

		utils.ShutdownTelemetry(ctx, shutdown)

		if runErr != nil {
			log.Fatalf("Error: %v", runErr)
		}
	},
}

func main() {
	utils.AddConfigFlags(runCmd)
	runCmd.PersistentFlags().String("symbol", "", "Only orders for this symbol.")
	runCmd.PersistentFlags().StringSlice("status", nil, "Only orders in these statuses, e.g. NewStatus,FilledStatus.")
	runCmd.PersistentFlags().String("side", "", "Only Buy or Sell orders.")
	runCmd.PersistentFlags().String("market", "", "Only orders in this market: US, HK, CN or SG.")
	runCmd.PersistentFlags().String("output", run.OutputText, "Output format: text, json, table or csv.")
	runCmd.PersistentFlags().String("start-at", "", "RFC3339 start of the history range, e.g. 2026-10-01T00:00:00Z.")
	runCmd.PersistentFlags().String("end-at", "", "RFC3339 end of the history range.")
	runCmd.PersistentFlags().String("out-dir", "", "Directory to write the csv file to. Writes to stdout when empty.")

	if err := runCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
