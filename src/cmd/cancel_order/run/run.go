package run

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jiaming2012/longport-trade/src/trade"
)

var ErrMissingOrderID = errors.New("missing order id")

type RunArgs struct {
	OrderIDs []string
}

type RunResult struct {
	Canceled []string
}

// Run cancels each order in turn and stops at the first failure.
func Run(ctx context.Context, args RunArgs, tradeCtx trade.ITradeContext, out io.Writer) (RunResult, error) {
	if len(args.OrderIDs) == 0 {
		return RunResult{}, ErrMissingOrderID
	}

	var result RunResult
	for _, orderID := range args.OrderIDs {
		orderID = strings.TrimSpace(orderID)
		if orderID == "" {
			return result, ErrMissingOrderID
		}

		if err := tradeCtx.CancelOrder(ctx, orderID); err != nil {
			return result, fmt.Errorf("error canceling order %s: %w", orderID, err)
		}

		result.Canceled = append(result.Canceled, orderID)
		fmt.Fprintf(out, "Canceled order %s\n", orderID)
	}

	return result, nil
}
