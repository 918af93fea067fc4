package run

import (
	"context"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/jiaming2012/longport-trade/src/models"
	"github.com/jiaming2012/longport-trade/src/trade"
)

type Flags struct {
	OrderID         string
	Quantity        string
	Price           string
	TriggerPrice    string
	LimitOffset     string
	TrailingAmount  string
	TrailingPercent string
	Remark          string
}

type RunArgs struct {
	Options *models.ReplaceOrderOptions
}

type RunResult struct{}

func parseOptional(name, value string, apply func(decimal.Decimal) *models.ReplaceOrderOptions) error {
	if value == "" {
		return nil
	}

	d, err := decimal.NewFromString(value)
	if err != nil {
		return fmt.Errorf("Parse: invalid %s %q: %w", name, value, err)
	}

	apply(d)
	return nil
}

func (f Flags) Parse() (RunArgs, error) {
	quantity, err := decimal.NewFromString(f.Quantity)
	if err != nil {
		return RunArgs{}, fmt.Errorf("Parse: invalid quantity %q: %w", f.Quantity, err)
	}

	opts := models.NewReplaceOrderOptions(f.OrderID, quantity).WithRemark(f.Remark)

	if err := parseOptional("price", f.Price, opts.WithPrice); err != nil {
		return RunArgs{}, err
	}

	if err := parseOptional("trigger price", f.TriggerPrice, opts.WithTriggerPrice); err != nil {
		return RunArgs{}, err
	}

	if err := parseOptional("limit offset", f.LimitOffset, opts.WithLimitOffset); err != nil {
		return RunArgs{}, err
	}

	if err := parseOptional("trailing amount", f.TrailingAmount, opts.WithTrailingAmount); err != nil {
		return RunArgs{}, err
	}

	if err := parseOptional("trailing percent", f.TrailingPercent, opts.WithTrailingPercent); err != nil {
		return RunArgs{}, err
	}

	return RunArgs{Options: opts}, nil
}

func Run(ctx context.Context, args RunArgs, tradeCtx trade.ITradeContext, out io.Writer) (RunResult, error) {
	if err := tradeCtx.ReplaceOrder(ctx, args.Options); err != nil {
		return RunResult{}, fmt.Errorf("error replacing order %s: %w", args.Options.OrderID, err)
	}

	fmt.Fprintf(out, "Replaced order %s: quantity %s\n", args.Options.OrderID, args.Options.Quantity.String())
	return RunResult{}, nil
}
