package utils

import (
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jiaming2012/longport-trade/src/models"
)

var printer = message.NewPrinter(language.English)

// FormatDecimal groups the integer part with thousands separators without
// going through float64.
func FormatDecimal(d decimal.Decimal) string {
	s := d.String()
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	intPart, fracPart, hasFrac := strings.Cut(s, ".")
	grouped := intPart
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		grouped = printer.Sprintf("%d", d.Abs().IntPart())
	}

	if hasFrac {
		return sign + grouped + "." + fracPart
	}

	return sign + grouped
}

func formatNullDecimal(d decimal.NullDecimal) string {
	if !d.Valid {
		return "-"
	}

	return FormatDecimal(d.Decimal)
}

func RenderSubmitOrderTable(w io.Writer, opts *models.SubmitOrderOptions, resp *models.SubmitOrderResponse) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Order ID", "Symbol", "Side", "Type", "Quantity", "TIF", "Outside RTH", "Remark"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.Append([]string{
		resp.OrderID,
		opts.Symbol,
		string(opts.Side),
		string(opts.OrderType),
		FormatDecimal(opts.SubmittedQuantity),
		string(opts.TimeInForce),
		string(opts.OutsideRTH),
		opts.Remark,
	})
	table.Render()
}

func RenderOrdersTable(w io.Writer, orders []*models.Order) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Order ID", "Symbol", "Side", "Type", "Status", "Quantity", "Executed", "Price", "Submitted At"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, o := range orders {
		submittedAt := "-"
		if !o.SubmittedAt.IsZero() {
			submittedAt = o.SubmittedAt.Format("2006-01-02 15:04:05")
		}

		table.Append([]string{
			o.OrderID,
			o.Symbol,
			string(o.Side),
			string(o.OrderType),
			string(o.Status),
			FormatDecimal(o.Quantity),
			FormatDecimal(o.ExecutedQuantity),
			formatNullDecimal(o.Price),
			submittedAt,
		})
	}

	table.Render()
}

func RenderAccountBalancesTable(w io.Writer, balances []*models.AccountBalance) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Currency", "Total Cash", "Net Assets", "Buy Power", "Init Margin", "Maintenance Margin", "Risk Level"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, b := range balances {
		table.Append([]string{
			b.Currency,
			FormatDecimal(b.TotalCash),
			FormatDecimal(b.NetAssets),
			FormatDecimal(b.BuyPower),
			FormatDecimal(b.InitMargin),
			FormatDecimal(b.MaintenanceMargin),
			strconv.Itoa(b.RiskLevel),
		})
	}

	table.Render()
}

func RenderStockPositionsTable(w io.Writer, channels []*models.StockPositionChannel) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Channel", "Symbol", "Name", "Quantity", "Available", "Cost Price", "Currency"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, c := range channels {
		for _, p := range c.Positions {
			table.Append([]string{
				c.AccountChannel,
				p.Symbol,
				p.SymbolName,
				FormatDecimal(p.Quantity),
				FormatDecimal(p.AvailableQuantity),
				FormatDecimal(p.CostPrice),
				p.Currency,
			})
		}
	}

	table.Render()
}
