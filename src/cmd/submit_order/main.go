package main

import (
	"context"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jiaming2012/longport-trade/src/cmd/submit_order/run"
	"github.com/jiaming2012/longport-trade/src/models"
	"github.com/jiaming2012/longport-trade/src/utils"
)

var flags = run.DefaultFlags()

var runCmd = &cobra.Command{
	Use:   "go run src/cmd/submit_order/main.go --symbol 700.HK --side Buy --order-type MO --quantity 200",
	Short: "Submit a single order and print the acknowledgment",
	Run: func(cmd *cobra.Command, args []string) {
		runArgs, err := flags.Parse()
		if err != nil {
			log.Fatalf("error parsing flags: %v", err)
		}

		ctx := context.Background()
		tradeCtx, shutdown, err := utils.SetupTradeContext(ctx, cmd, "submit_order")
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
	runCmd.PersistentFlags().StringVar(&flags.Symbol, "symbol", flags.Symbol, "Exchange qualified symbol, e.g. 700.HK or AAPL.US.")
	runCmd.PersistentFlags().StringVar(&flags.Side, "side", flags.Side, "Buy or Sell.")
	runCmd.PersistentFlags().StringVar(&flags.OrderType, "order-type", flags.OrderType, "Order type: LO, ELO, MO, AO, ALO, ODD, LIT, MIT, TSLPAMT, TSLPPCT, TSMAMT, TSMPCT, SLO.")
	runCmd.PersistentFlags().StringVar(&flags.Quantity, "quantity", flags.Quantity, "Submitted quantity, an exact decimal.")
	runCmd.PersistentFlags().StringVar(&flags.TimeInForce, "tif", flags.TimeInForce, "Time in force: Day, GTC or GTD.")
	runCmd.PersistentFlags().StringVar(&flags.OutsideRTH, "outside-rth", flags.OutsideRTH, "RTH_ONLY, ANY_TIME or OVERNIGHT.")
	runCmd.PersistentFlags().StringVar(&flags.Remark, "remark", flags.Remark, fmt.Sprintf("Free text remark, at most %d characters.", models.MaxRemarkLength))
	runCmd.PersistentFlags().StringVar(&flags.Price, "price", "", "Submitted price, required for limit orders.")
	runCmd.PersistentFlags().StringVar(&flags.TriggerPrice, "trigger-price", "", "Trigger price, required for LIT and MIT orders.")
	runCmd.PersistentFlags().StringVar(&flags.ExpireDate, "expire-date", "", "Expire date (YYYY-MM-DD), required for GTD orders.")
	runCmd.PersistentFlags().StringVar(&flags.Output, "output", flags.Output, "Output format: text, json or table.")

	if err := runCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
