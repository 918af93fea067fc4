package run

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/jiaming2012/longport-trade/src/models"
)

type OrderRow struct {
	OrderID          string `csv:"order_id"`
	Symbol           string `csv:"symbol"`
	StockName        string `csv:"stock_name"`
	Side             string `csv:"side"`
	OrderType        string `csv:"order_type"`
	Status           string `csv:"status"`
	Quantity         string `csv:"quantity"`
	ExecutedQuantity string `csv:"executed_quantity"`
	Price            string `csv:"price"`
	ExecutedPrice    string `csv:"executed_price"`
	TimeInForce      string `csv:"time_in_force"`
	OutsideRTH       string `csv:"outside_rth"`
	Currency         string `csv:"currency"`
	SubmittedAt      string `csv:"submitted_at"`
	Remark           string `csv:"remark"`
}

func NewOrderRow(o *models.Order) *OrderRow {
	dto := o.ToDTO()
	submittedAt := ""
	if !o.SubmittedAt.IsZero() {
		submittedAt = o.SubmittedAt.Format(time.RFC3339)
	}

	return &OrderRow{
		OrderID:          dto.OrderID,
		Symbol:           dto.Symbol,
		StockName:        dto.StockName,
		Side:             dto.Side,
		OrderType:        dto.OrderType,
		Status:           dto.Status,
		Quantity:         dto.Quantity,
		ExecutedQuantity: dto.ExecutedQuantity,
		Price:            dto.Price,
		ExecutedPrice:    dto.ExecutedPrice,
		TimeInForce:      dto.TimeInForce,
		OutsideRTH:       dto.OutsideRTH,
		Currency:         dto.Currency,
		SubmittedAt:      submittedAt,
		Remark:           dto.Remark,
	}
}

func WriteCsv(w io.Writer, orders []*models.Order) error {
	rows := make([]*OrderRow, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, NewOrderRow(o))
	}

	csvWriter := gocsv.NewSafeCSVWriter(csv.NewWriter(w))
	if err := gocsv.MarshalCSV(&rows, csvWriter); err != nil {
		return fmt.Errorf("WriteCsv: failed to write rows: %w", err)
	}

	return nil
}

func ExportToCsv(inDir string, orders []*models.Order, outFilePrefix string, now time.Time) (string, error) {
	outFilePath := path.Join(inDir, fmt.Sprintf("%s_%s.csv", outFilePrefix, now.Format("2006-01-02_15-04-05")))

	// Create directory if it doesn't exist
	if _, err := os.Stat(inDir); os.IsNotExist(err) {
		if err := os.MkdirAll(inDir, os.ModePerm); err != nil {
			return "", fmt.Errorf("ExportToCsv: failed to create directory: %w", err)
		}
	}

	file, err := os.Create(outFilePath)
	if err != nil {
		return "", fmt.Errorf("ExportToCsv: failed to create file: %w", err)
	}

	if err := WriteCsv(file, orders); err != nil {
		file.Close()
		return "", fmt.Errorf("ExportToCsv: %w", err)
	}

	if err := file.Close(); err != nil {
		return "", fmt.Errorf("ExportToCsv: failed to close file: %w", err)
	}

	return outFilePath, nil
}
