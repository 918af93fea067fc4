package main

import (
	"context"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jiaming2012/longport-trade/src/cmd/replace_order/run"
	"github.com/jiaming2012/longport-trade/src/utils"
)

var flags run.Flags

var runCmd = &cobra.Command{
	Use:   "go run src/cmd/replace_order/main.go --order-id 706388312699592704 --quantity 100 --price 320.2",
	Short: "Modify the quantity or prices of an open order",
	Run: func(cmd *cobra.Command, args []string) {
		runArgs, err := flags.Parse()
		if err != nil {
			log.Fatalf("error parsing flags: %v", err)
		}

		ctx := context.Background()
		tradeCtx, shutdown, err := utils.SetupTradeContext(ctx, cmd, "replace_order")
		if err != nil {
			log.Fatalf("%v", err)
		}

		_, runErr := run.Run(ctx, runArgs, tradeCtx, os.Stdout)

		utils.ShutdownTelemetry(ctx, shutdown)

		if runErr != nil {
			log.Fatalf("Error: %v", runErr)
		}
	},
}

func main() {
	utils.AddConfigFlags(runCmd)
	runCmd.PersistentFlags().StringVar(&flags.OrderID, "order-id", "", "Order id to replace.")
	runCmd.PersistentFlags().StringVar(&flags.Quantity, "quantity", "", "New quantity.")
	runCmd.PersistentFlags().StringVar(&flags.Price, "price", "", "New limit price.")
	runCmd.PersistentFlags().StringVar(&flags.TriggerPrice, "trigger-price", "", "New trigger price.")
	runCmd.PersistentFlags().StringVar(&flags.LimitOffset, "limit-offset", "", "New limit offset for trailing orders.")
	runCmd.PersistentFlags().StringVar(&flags.TrailingAmount, "trailing-amount", "", "New trailing amount.")
	runCmd.PersistentFlags().StringVar(&flags.TrailingPercent, "trailing-percent", "", "New trailing percent.")
	runCmd.PersistentFlags().StringVar(&flags.Remark, "remark", "", "New remark.")
	runCmd.MarkPersistentFlagRequired("order-id")
	runCmd.MarkPersistentFlagRequired("quantity")

	if err := runCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
