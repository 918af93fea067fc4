package main

import (
	"context"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jiaming2012/longport-trade/src/cmd/fetch_order/run"
	"github.com/jiaming2012/longport-trade/src/utils"
)

var runCmd = &cobra.Command{
	Use:   "go run src/cmd/fetch_order/main.go --order-id 706388312699592704",
	Short: "Fetch the details of an order by order ID",
	Run: func(cmd *cobra.Command, args []string) {
		orderID, err := cmd.Flags().GetString("order-id")
		if err != nil {
			log.Fatalf("error getting order-id: %v", err)
		}

		ctx := context.Background()
		tradeCtx, shutdown, err := utils.SetupTradeContext(ctx, cmd, "fetch_order")
		if err != nil {
			log.Fatalf("%v", err)
		}

		_, runErr := run.Run(ctx, run.RunArgs{OrderID: orderID}, tradeCtx, os.Stdout)

		utils.ShutdownTelemetry(ctx, shutdown)

		if runErr != nil {
			log.Fatalf("Error: %v", runErr)
		}
	},
}

func main() {
	utils.AddConfigFlags(runCmd)
	runCmd.PersistentFlags().String("order-id", "", "The order id to fetch.")
	runCmd.MarkPersistentFlagRequired("order-id")

	if err := runCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
