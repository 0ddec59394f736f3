package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// FuelGrade is a sellable product with a unit price per liter and the
// remaining stock in the tank.
type FuelGrade struct {
	ID          snowflake.ID    `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"uniqueIndex;size:64" json:"name"`
	DisplayName string          `gorm:"size:128" json:"display_name"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2)" json:"unit_price"`
	StockLiters decimal.Decimal `gorm:"type:decimal(14,2)" json:"stock_liters"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (FuelGrade) TableName() string {
	return "fuel_grades"
}

// NormalizeName maps user input onto the canonical grade key, so
// "Diesel" and " diesel " address the same row.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
