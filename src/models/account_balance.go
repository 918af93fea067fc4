package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type CashInfo struct {
	WithdrawCash  decimal.Decimal
	AvailableCash decimal.Decimal
	FrozenCash    decimal.Decimal
	SettlingCash  decimal.Decimal
	Currency      string
}

type AccountBalance struct {
	TotalCash              decimal.Decimal
	MaxFinanceAmount       decimal.Decimal
	RemainingFinanceAmount decimal.Decimal
	RiskLevel              int
	MarginCall             decimal.Decimal
	Currency               string
	CashInfos              []CashInfo
	NetAssets              decimal.Decimal
	InitMargin             decimal.Decimal
	MaintenanceMargin      decimal.Decimal
	BuyPower               decimal.Decimal
}

type CashInfoDTO struct {
	WithdrawCash  string `json:"withdraw_cash"`
	AvailableCash string `json:"available_cash"`
	FrozenCash    string `json:"frozen_cash"`
	SettlingCash  string `json:"settling_cash"`
	Currency      string `json:"currency"`
}

type AccountBalanceDTO struct {
	TotalCash              string         `json:"total_cash"`
	MaxFinanceAmount       string         `json:"max_finance_amount"`
	RemainingFinanceAmount string         `json:"remaining_finance_amount"`
	RiskLevel              int            `json:"risk_level"`
	MarginCall             string         `json:"margin_call"`
	Currency               string         `json:"currency"`
	CashInfos              []*CashInfoDTO `json:"cash_infos"`
	NetAssets              string         `json:"net_assets"`
	InitMargin             string         `json:"init_margin"`
	MaintenanceMargin      string         `json:"maintenance_margin"`
	BuyPower               string         `json:"buy_power"`
}

type AccountBalanceResponseDTO struct {
	List []*AccountBalanceDTO `json:"list"`
}

// parseAmount treats a blank amount as zero.
func parseAmount(name, s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse %s %q: %w", name, s, err)
	}

	return d, nil
}

func (dto *CashInfoDTO) ToCashInfo() (CashInfo, error) {
	var err error
	info := CashInfo{Currency: dto.Currency}

	if info.WithdrawCash, err = parseAmount("withdraw cash", dto.WithdrawCash); err != nil {
		return CashInfo{}, err
	}

	if info.AvailableCash, err = parseAmount("available cash", dto.AvailableCash); err != nil {
		return CashInfo{}, err
	}

	if info.FrozenCash, err = parseAmount("frozen cash", dto.FrozenCash); err != nil {
		return CashInfo{}, err
	}

	if info.SettlingCash, err = parseAmount("settling cash", dto.SettlingCash); err != nil {
		return CashInfo{}, err
	}

	return info, nil
}

func (dto *AccountBalanceDTO) ToAccountBalance() (*AccountBalance, error) {
	var err error
	b := &AccountBalance{
		RiskLevel: dto.RiskLevel,
		Currency:  dto.Currency,
		CashInfos: make([]CashInfo, 0, len(dto.CashInfos)),
	}

	for _, f := range []struct {
		name string
		in   string
		out  *decimal.Decimal
	}{
		{"total cash", dto.TotalCash, &b.TotalCash},
		{"max finance amount", dto.MaxFinanceAmount, &b.MaxFinanceAmount},
		{"remaining finance amount", dto.RemainingFinanceAmount, &b.RemainingFinanceAmount},
		{"margin call", dto.MarginCall, &b.MarginCall},
		{"net assets", dto.NetAssets, &b.NetAssets},
		{"init margin", dto.InitMargin, &b.InitMargin},
		{"maintenance margin", dto.MaintenanceMargin, &b.MaintenanceMargin},
		{"buy power", dto.BuyPower, &b.BuyPower},
	} {
		if *f.out, err = parseAmount(f.name, f.in); err != nil {
			return nil, fmt.Errorf("ToAccountBalance: %w", err)
		}
	}

	for _, infoDTO := range dto.CashInfos {
		info, err := infoDTO.ToCashInfo()
		if err != nil {
			return nil, fmt.Errorf("ToAccountBalance: %w", err)
		}

		b.CashInfos = append(b.CashInfos, info)
	}

	return b, nil
}

func (b *AccountBalance) ToDTO() *AccountBalanceDTO {
	dto := &AccountBalanceDTO{
		TotalCash:              b.TotalCash.String(),
		MaxFinanceAmount:       b.MaxFinanceAmount.String(),
		RemainingFinanceAmount: b.RemainingFinanceAmount.String(),
		RiskLevel:              b.RiskLevel,
		MarginCall:             b.MarginCall.String(),
		Currency:               b.Currency,
		CashInfos:              make([]*CashInfoDTO, 0, len(b.CashInfos)),
		NetAssets:              b.NetAssets.String(),
		InitMargin:             b.InitMargin.String(),
		MaintenanceMargin:      b.MaintenanceMargin.String(),
		BuyPower:               b.BuyPower.String(),
	}

	for _, info := range b.CashInfos {
		dto.CashInfos = append(dto.CashInfos, &CashInfoDTO{
			WithdrawCash:  info.WithdrawCash.String(),
			AvailableCash: info.AvailableCash.String(),
			FrozenCash:    info.FrozenCash.String(),
			SettlingCash:  info.SettlingCash.String(),
			Currency:      info.Currency,
		})
	}

	return dto
}
