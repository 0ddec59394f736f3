package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

type DispenseRequest struct {
	EmployeeID int64
	GradeName  string
	Amount     decimal.Decimal
}

// Result describes one committed sale: the liters pumped and the price they
// were charged at. Amount is re-derived from the dispensed liters, so it
// never exceeds what the customer asked to pay.
type Result struct {
	TransactionID snowflake.ID    `json:"transaction_id"`
	EmployeeID    int64           `json:"employee_id"`
	EmployeeName  string          `json:"employee_name"`
	Grade         string          `json:"grade"`
	GradeLabel    string          `json:"grade_label"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Amount        decimal.Decimal `json:"amount"`
	Liters        decimal.Decimal `json:"liters"`
	Timestamp     time.Time       `json:"timestamp"`
}
