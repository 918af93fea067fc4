package models

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"
)

// MaxRemarkLength is counted in characters, not bytes.
const MaxRemarkLength = 64

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), b)
}

// NormalizeRemark returns the NFC form of the remark and fails when it is
// longer than MaxRemarkLength characters.
func NormalizeRemark(remark string) (string, error) {
	normalized := norm.NFC.String(remark)
	if n := utf8.RuneCountInString(normalized); n > MaxRemarkLength {
		return "", fmt.Errorf("%w: %d characters, maximum is %d", ErrRemarkTooLong, n, MaxRemarkLength)
	}

	return normalized, nil
}

// ValidateSymbol checks for the exchange qualified form CODE.MARKET, e.g. 700.HK.
func ValidateSymbol(symbol string) error {
	idx := strings.LastIndex(symbol, ".")
	if idx <= 0 || idx == len(symbol)-1 {
		return fmt.Errorf("%w: %q must be in the form CODE.MARKET", ErrInvalidSymbol, symbol)
	}

	return nil
}

func validatePositive(name string, v *decimal.Decimal) error {
	if v == nil {
		return nil
	}

	if !v.IsPositive() {
		return fmt.Errorf("%s %s: %w", name, v.String(), ErrInvalidPrice)
	}

	return nil
}

func decimalString(v *decimal.Decimal) string {
	if v == nil {
		return ""
	}

	return v.String()
}

// parseOptionalDecimal treats an empty string as absent, which is how the API
// reports unset prices.
func parseOptionalDecimal(s string) (decimal.NullDecimal, error) {
	if s == "" {
		return decimal.NullDecimal{}, nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, err
	}

	return decimal.NewNullDecimal(d), nil
}
