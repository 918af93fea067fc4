package run

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jiaming2012/longport-trade/src/models"
	"github.com/jiaming2012/longport-trade/src/trade"
	"github.com/jiaming2012/longport-trade/src/utils"
)

const (
	OutputText  = "text"
	OutputJSON  = "json"
	OutputTable = "table"
)

type RunArgs struct {
	Currency string
	Symbols  []string
	Output   string
}

type RunResult struct {
	Balances  []*models.AccountBalance
	Positions []*models.StockPositionChannel
}

type accountDTO struct {
	Balances  []*models.AccountBalanceDTO       `json:"balances"`
	Positions []*models.StockPositionChannelDTO `json:"positions"`
}

// Run prints the account balances followed by the stock positions.
func Run(ctx context.Context, args RunArgs, tradeCtx trade.ITradeContext, out io.Writer) (RunResult, error) {
	balances, err := tradeCtx.AccountBalance(ctx, args.Currency)
	if err != nil {
		return RunResult{}, fmt.Errorf("error fetching account balance: %w", err)
	}

	positions, err := tradeCtx.StockPositions(ctx, &models.GetStockPositionsOptions{Symbols: args.Symbols})
	if err != nil {
		return RunResult{}, fmt.Errorf("error fetching stock positions: %w", err)
	}

	switch args.Output {
	case OutputJSON:
		dto := accountDTO{
			Balances:  make([]*models.AccountBalanceDTO, 0, len(balances)),
			Positions: make([]*models.StockPositionChannelDTO, 0, len(positions)),
		}

		for _, b := range balances {
			dto.Balances = append(dto.Balances, b.ToDTO())
		}

		for _, p := range positions {
			dto.Positions = append(dto.Positions, p.ToDTO())
		}

		data, err := json.MarshalIndent(dto, "", "  ")
		if err != nil {
			return RunResult{}, fmt.Errorf("failed to marshal account: %w", err)
		}

		fmt.Fprintln(out, string(data))
	case OutputTable:
		utils.RenderAccountBalancesTable(out, balances)
		utils.RenderStockPositionsTable(out, positions)
	case OutputText, "":
		for _, b := range balances {
			fmt.Fprintf(out, "%s cash %s, net assets %s, buy power %s\n", b.Currency, b.TotalCash.String(), b.NetAssets.String(), b.BuyPower.String())
		}

		for _, c := range positions {
			for _, p := range c.Positions {
				fmt.Fprintf(out, "%s %s x %s @ %s %s\n", c.AccountChannel, p.Symbol, p.Quantity.String(), p.CostPrice.String(), p.Currency)
			}
		}
	default:
		return RunResult{}, fmt.Errorf("unknown output %q", args.Output)
	}

	return RunResult{Balances: balances, Positions: positions}, nil
}
