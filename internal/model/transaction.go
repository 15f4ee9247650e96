package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one normalized statement row.
// Date, Description and Amount are always present on an emitted
// transaction; rows missing any of them are skipped upstream.
type Transaction struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal // negative = outflow, positive = inflow
	Category    string          // optional, "" when the source has none
	Balance     decimal.Decimal // running balance, valid only when HasBalance
	HasBalance  bool
}
