package run

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/longport-trade/src/models"
	"github.com/jiaming2012/longport-trade/src/trade"
	"github.com/jiaming2012/longport-trade/src/utils"
)

const (
	OutputText  = "text"
	OutputJSON  = "json"
	OutputTable = "table"
)

// Flags holds the raw command line values before parsing.
type Flags struct {
	Symbol       string
	Side         string
	OrderType    string
	Quantity     string
	TimeInForce  string
	OutsideRTH   string
	Remark       string
	Price        string
	TriggerPrice string
	ExpireDate   string
	Output       string
}

type RunArgs struct {
	Options *models.SubmitOrderOptions
	Output  string
}

type RunResult struct {
	Response *models.SubmitOrderResponse
}

func DefaultFlags() Flags {
	return Flags{
		Symbol:      "700.HK",
		Side:        string(models.OrderSideBuy),
		OrderType:   string(models.OrderTypeMO),
		Quantity:    "200",
		TimeInForce: string(models.TimeInForceDay),
		OutsideRTH:  string(models.OutsideRTHAnyTime),
		Remark:      "Hello from Go SDK",
		Output:      OutputText,
	}
}

func (f Flags) Parse() (RunArgs, error) {
	side, err := models.ParseOrderSide(f.Side)
	if err != nil {
		return RunArgs{}, fmt.Errorf("Parse: %w", err)
	}

	orderType, err := models.ParseOrderType(f.OrderType)
	if err != nil {
		return RunArgs{}, fmt.Errorf("Parse: %w", err)
	}

	quantity, err := decimal.NewFromString(f.Quantity)
	if err != nil {
		return RunArgs{}, fmt.Errorf("Parse: invalid quantity %q: %w", f.Quantity, err)
	}

	tif, err := models.ParseTimeInForceType(f.TimeInForce)
	if err != nil {
		return RunArgs{}, fmt.Errorf("Parse: %w", err)
	}

	opts := models.NewSubmitOrderOptions(f.Symbol, orderType, side, quantity, tif).WithRemark(f.Remark)

	if f.OutsideRTH != "" {
		outsideRTH, err := models.ParseOutsideRTH(f.OutsideRTH)
		if err != nil {
			return RunArgs{}, fmt.Errorf("Parse: %w", err)
		}

		opts.WithOutsideRTH(outsideRTH)
	}

	if f.Price != "" {
		price, err := decimal.NewFromString(f.Price)
		if err != nil {
			return RunArgs{}, fmt.Errorf("Parse: invalid price %q: %w", f.Price, err)
		}

		opts.WithPrice(price)
	}

	if f.TriggerPrice != "" {
		triggerPrice, err := decimal.NewFromString(f.TriggerPrice)
		if err != nil {
			return RunArgs{}, fmt.Errorf("Parse: invalid trigger price %q: %w", f.TriggerPrice, err)
		}

		opts.WithTriggerPrice(triggerPrice)
	}

	if f.ExpireDate != "" {
		expireDate, err := time.Parse(models.ExpireDateLayout, f.ExpireDate)
		if err != nil {
			return RunArgs{}, fmt.Errorf("Parse: invalid expire date %q: %w", f.ExpireDate, err)
		}

		opts.WithExpireDate(expireDate)
	}

	switch f.Output {
	case OutputText, OutputJSON, OutputTable:
	default:
		return RunArgs{}, fmt.Errorf("Parse: unknown output %q", f.Output)
	}

	return RunArgs{Options: opts, Output: f.Output}, nil
}

// Run submits exactly one order and prints the acknowledgment. Errors are
// returned unchanged to the caller.
func Run(ctx context.Context, args RunArgs, tradeCtx trade.ITradeContext, out io.Writer) (RunResult, error) {
	resp, err := tradeCtx.SubmitOrder(ctx, args.Options)
	if err != nil {
		return RunResult{}, fmt.Errorf("error submitting order: %w", err)
	}

	log.Debugf("Run: submitted %v as order %s", args.Options, resp.OrderID)

	switch args.Output {
	case OutputJSON:
		data, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return RunResult{}, fmt.Errorf("failed to marshal response: %w", err)
		}

		fmt.Fprintln(out, string(data))
	case OutputTable:
		utils.RenderSubmitOrderTable(out, args.Options, resp)
	default:
		fmt.Fprintln(out, resp)
	}

	return RunResult{Response: resp}, nil
}
