package models

import "errors"

var (
	ErrInvalidEnum     = errors.New("invalid enum value")
	ErrInvalidSymbol   = errors.New("invalid symbol")
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrInvalidPrice    = errors.New("price must be positive")
	ErrMissingField    = errors.New("missing required field")
	ErrRemarkTooLong   = errors.New("remark is too long")
	ErrInvalidRange    = errors.New("end is before start")
)
