package run

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jiaming2012/longport-trade/src/models"
	"github.com/jiaming2012/longport-trade/src/trade"
)

type RunArgs struct {
	OrderID string
}

type RunResult struct {
	Order *models.Order
}

// Run looks up a single order and pretty prints its wire form.
func Run(ctx context.Context, args RunArgs, tradeCtx trade.ITradeContext, out io.Writer) (RunResult, error) {
	order, err := tradeCtx.OrderDetail(ctx, args.OrderID)
	if err != nil {
		return RunResult{}, fmt.Errorf("error fetching order %s: %w", args.OrderID, err)
	}

	orderJSON, err := json.MarshalIndent(order.ToDTO(), "", "  ")
	if err != nil {
		return RunResult{}, fmt.Errorf("failed to marshal order: %w", err)
	}

	fmt.Fprintln(out, string(orderJSON))
	return RunResult{Order: order}, nil
}
