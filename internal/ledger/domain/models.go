package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// TransactionRecord is one committed sale. Records are append-only; nothing
// in the system updates or deletes a row once written.
type TransactionRecord struct {
	ID         snowflake.ID    `gorm:"primaryKey" json:"id"`
	EmployeeID int64           `gorm:"index" json:"employee_id"`
	GradeName  string          `gorm:"index;size:64" json:"grade_name"`
	Amount     decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount"`
	Liters     decimal.Decimal `gorm:"type:decimal(12,2)" json:"liters"`
	CreatedAt  time.Time       `json:"created_at"`
}

func (TransactionRecord) TableName() string {
	return "fuel_transactions"
}

type GroupBy string

const (
	GroupByGrade GroupBy = "grade"
	GroupByActor GroupBy = "actor"
)

// TotalsRow is one aggregate bucket of the transaction log. EmployeeID is
// only set when grouping by actor.
type TotalsRow struct {
	Key         string          `json:"key"`
	EmployeeID  int64           `json:"employee_id,omitempty"`
	Count       int64           `json:"count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	TotalLiters decimal.Decimal `json:"total_liters"`
	AvgAmount   decimal.Decimal `json:"avg_amount"`
	LastAt      time.Time       `json:"last_at"`
}
