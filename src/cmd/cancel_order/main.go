package main

import (
	"context"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jiaming2012/longport-trade/src/cmd/cancel_order/run"
	"github.com/jiaming2012/longport-trade/src/utils"
)

var runCmd = &cobra.Command{
	Use:   "go run src/cmd/cancel_order/main.go --order-id 706388312699592704",
	Short: "Cancel one or more open orders",
	Run: func(cmd *cobra.Command, args []string) {
		orderIDs, err := cmd.Flags().GetStringSlice("order-id")
		if err != nil {
			log.Fatalf("error getting order-id: %v", err)
		}

		ctx := context.Background()
		tradeCtx, shutdown, err := utils.SetupTradeContext(ctx, cmd, "cancel_order")
		if err != nil {
			log.Fatalf("%v", err)
		}

		_, runErr := run.Run(ctx, run.RunArgs{OrderIDs: orderIDs}, tradeCtx, os.Stdout)

		utils.ShutdownTelemetry(ctx, shutdown)

		if runErr != nil {
			log.Fatalf("Error: %v", runErr)
		}
	},
}

func main() {
	utils.AddConfigFlags(runCmd)
	runCmd.PersistentFlags().StringSlice("order-id", nil, "Order id to cancel. May be repeated.")
	runCmd.MarkPersistentFlagRequired("order-id")

	if err := runCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
