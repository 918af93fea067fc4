package models

import (
	"fmt"
	"net/url"

	"github.com/shopspring/decimal"
)

type StockPosition struct {
	Symbol            string
	SymbolName        string
	Quantity          decimal.Decimal
	AvailableQuantity decimal.Decimal
	Currency          string
	CostPrice         decimal.Decimal
	Market            string
	InitQuantity      decimal.NullDecimal
}

// StockPositionChannel groups positions by the account channel holding them.
type StockPositionChannel struct {
	AccountChannel string
	Positions      []*StockPosition
}

type StockPositionDTO struct {
	Symbol            string `json:"symbol"`
	SymbolName        string `json:"symbol_name"`
	Quantity          string `json:"quantity"`
	AvailableQuantity string `json:"available_quantity"`
	Currency          string `json:"currency"`
	CostPrice         string `json:"cost_price"`
	Market            string `json:"market"`
	InitQuantity      string `json:"init_quantity"`
}

type StockPositionChannelDTO struct {
	AccountChannel string              `json:"account_channel"`
	StockInfo      []*StockPositionDTO `json:"stock_info"`
}

type StockPositionsResponseDTO struct {
	List []*StockPositionChannelDTO `json:"list"`
}

type GetStockPositionsOptions struct {
	Symbols []string `schema:"symbol,omitempty"`
}

func (o *GetStockPositionsOptions) Query() (url.Values, error) {
	values := url.Values{}
	if o == nil {
		return values, nil
	}

	for _, symbol := range o.Symbols {
		if err := ValidateSymbol(symbol); err != nil {
			return nil, fmt.Errorf("GetStockPositionsOptions: %w", err)
		}
	}

	if err := queryEncoder.Encode(o, values); err != nil {
		return nil, fmt.Errorf("GetStockPositionsOptions: failed to encode query: %w", err)
	}

	return values, nil
}

func (dto *StockPositionDTO) ToStockPosition() (*StockPosition, error) {
	var err error
	p := &StockPosition{
		Symbol:     dto.Symbol,
		SymbolName: dto.SymbolName,
		Currency:   dto.Currency,
		Market:     dto.Market,
	}

	if p.Quantity, err = parseAmount("quantity", dto.Quantity); err != nil {
		return nil, fmt.Errorf("ToStockPosition: %w", err)
	}

	if p.AvailableQuantity, err = parseAmount("available quantity", dto.AvailableQuantity); err != nil {
		return nil, fmt.Errorf("ToStockPosition: %w", err)
	}

	if p.CostPrice, err = parseAmount("cost price", dto.CostPrice); err != nil {
		return nil, fmt.Errorf("ToStockPosition: %w", err)
	}

	if p.InitQuantity, err = parseOptionalDecimal(dto.InitQuantity); err != nil {
		return nil, fmt.Errorf("ToStockPosition: failed to parse init quantity %q: %w", dto.InitQuantity, err)
	}

	return p, nil
}

func (dto *StockPositionChannelDTO) ToStockPositionChannel() (*StockPositionChannel, error) {
	channel := &StockPositionChannel{
		AccountChannel: dto.AccountChannel,
		Positions:      make([]*StockPosition, 0, len(dto.StockInfo)),
	}

	for _, info := range dto.StockInfo {
		position, err := info.ToStockPosition()
		if err != nil {
			return nil, fmt.Errorf("ToStockPositionChannel: %w", err)
		}

		channel.Positions = append(channel.Positions, position)
	}

	return channel, nil
}

func (p *StockPosition) ToDTO() *StockPositionDTO {
	return &StockPositionDTO{
		Symbol:            p.Symbol,
		SymbolName:        p.SymbolName,
		Quantity:          p.Quantity.String(),
		AvailableQuantity: p.AvailableQuantity.String(),
		Currency:          p.Currency,
		CostPrice:         p.CostPrice.String(),
		Market:            p.Market,
		InitQuantity:      nullDecimalString(p.InitQuantity),
	}
}

func (c *StockPositionChannel) ToDTO() *StockPositionChannelDTO {
	dto := &StockPositionChannelDTO{
		AccountChannel: c.AccountChannel,
		StockInfo:      make([]*StockPositionDTO, 0, len(c.Positions)),
	}

	for _, p := range c.Positions {
		dto.StockInfo = append(dto.StockInfo, p.ToDTO())
	}

	return dto
}
