package run

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jiaming2012/longport-trade/src/models"
	"github.com/jiaming2012/longport-trade/src/trade"
	"github.com/jiaming2012/longport-trade/src/utils"
)

const (
	OutputText  = "text"
	OutputJSON  = "json"
	OutputTable = "table"
	OutputCsv   = "csv"
)

// RunArgs selects today's orders, or history orders when History is set.
type RunArgs struct {
	Options *models.GetTodayOrdersOptions
	History *models.GetHistoryOrdersOptions
	Output  string
	OutDir  string
}

type RunResult struct {
	Orders  []*models.Order
	CsvPath string
}

func ParseStatuses(statuses []string) []models.OrderStatus {
	out := make([]models.OrderStatus, 0, len(statuses))
	for _, s := range statuses {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, models.OrderStatus(s))
		}
	}

	return out
}

// NewHistoryOptions builds history filters from RFC3339 bounds. It returns nil
// when both bounds are blank.
func NewHistoryOptions(today *models.GetTodayOrdersOptions, startAt, endAt string) (*models.GetHistoryOrdersOptions, error) {
	if startAt == "" && endAt == "" {
		return nil, nil
	}

	opts := &models.GetHistoryOrdersOptions{}
	if today != nil {
		opts.Symbol = today.Symbol
		opts.Status = today.Status
		opts.Side = today.Side
		opts.Market = today.Market
	}

	var err error
	if startAt != "" {
		if opts.StartAt, err = time.Parse(time.RFC3339, startAt); err != nil {
			return nil, fmt.Errorf("invalid start-at %q: %w", startAt, err)
		}
	}

	if endAt != "" {
		if opts.EndAt, err = time.Parse(time.RFC3339, endAt); err != nil {
			return nil, fmt.Errorf("invalid end-at %q: %w", endAt, err)
		}
	}

	return opts, nil
}

func Run(ctx context.Context, args RunArgs, tradeCtx trade.ITradeContext, out io.Writer) (RunResult, error) {
	var orders []*models.Order
	var err error
	filePrefix := "today_orders"

	if args.History != nil {
		orders, err = tradeCtx.HistoryOrders(ctx, args.History)
		filePrefix = "history_orders"
	} else {
		orders, err = tradeCtx.TodayOrders(ctx, args.Options)
	}

	if err != nil {
		return RunResult{}, fmt.Errorf("error fetching orders: %w", err)
	}

	result := RunResult{Orders: orders}

	switch args.Output {
	case OutputJSON:
		dtos := make([]*models.OrderDTO, 0, len(orders))
		for _, o := range orders {
			dtos = append(dtos, o.ToDTO())
		}

		data, err := json.MarshalIndent(dtos, "", "  ")
		if err != nil {
			return RunResult{}, fmt.Errorf("failed to marshal orders: %w", err)
		}

		fmt.Fprintln(out, string(data))
	case OutputTable:
		utils.RenderOrdersTable(out, orders)
	case OutputCsv:
		if args.OutDir == "" {
			if err := WriteCsv(out, orders); err != nil {
				return RunResult{}, err
			}

			break
		}

		csvPath, err := ExportToCsv(args.OutDir, orders, filePrefix, time.Now())
		if err != nil {
			return RunResult{}, fmt.Errorf("failed to export to csv: %w", err)
		}

		result.CsvPath = csvPath
		fmt.Fprintln(out, "CSV file written to:", csvPath)
	case OutputText, "":
		for _, o := range orders {
			fmt.Fprintf(out, "%s %s %s %s x %s [%s]\n", o.OrderID, o.Side, o.OrderType, o.Symbol, o.Quantity.String(), o.Status)
		}
	default:
		return RunResult{}, fmt.Errorf("unknown output %q", args.Output)
	}

	return result, nil
}
