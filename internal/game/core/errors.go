package core

import "errors"

var (
	ErrUnitNotFound       = errors.New("unit not found")
	ErrSettlementNotFound = errors.New("settlement not found")
	ErrTribeNotFound      = errors.New("tribe not found")
	ErrTileNotFound       = errors.New("tile not found")
	ErrActionRejected     = errors.New("action rejected")
)
