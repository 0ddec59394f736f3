package invoice

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jetrefuels/fuelpos/internal/dispense/domain"
	"github.com/jetrefuels/fuelpos/internal/money"
)

const lineWidth = 38

// View is the render-ready projection of a committed sale. Building one
// never touches storage and never mutates the result it was built from.
type View struct {
	Company       string    `json:"company"`
	TransactionID string    `json:"transaction_id"`
	EmployeeID    int64     `json:"employee_id"`
	EmployeeName  string    `json:"employee_name"`
	Grade         string    `json:"grade"`
	UnitPrice     string    `json:"unit_price"`
	Liters        string    `json:"liters"`
	Amount        string    `json:"amount"`
	Timestamp     time.Time `json:"timestamp"`
}

// FromResult projects a sale into an invoice. A result that is missing its
// operator or carries non-positive figures indicates a bug upstream, not bad
// user input.
func FromResult(company string, res *domain.Result) (*View, error) {
	if res == nil {
		return nil, fmt.Errorf("%w: nil dispense result", domain.ErrInternalConsistency)
	}
	if strings.TrimSpace(res.EmployeeName) == "" {
		return nil, fmt.Errorf("%w: sale %s has no operator name", domain.ErrInternalConsistency, res.TransactionID)
	}
	if !res.Amount.IsPositive() || !res.Liters.IsPositive() || !res.UnitPrice.IsPositive() {
		return nil, fmt.Errorf("%w: sale %s has non-positive figures", domain.ErrInternalConsistency, res.TransactionID)
	}

	label := res.GradeLabel
	if label == "" {
		label = res.Grade
	}
	return &View{
		Company:       company,
		TransactionID: res.TransactionID.String(),
		EmployeeID:    res.EmployeeID,
		EmployeeName:  res.EmployeeName,
		Grade:         label,
		UnitPrice:     res.UnitPrice.StringFixed(money.CurrencyScale),
		Liters:        res.Liters.StringFixed(money.VolumeScale),
		Amount:        res.Amount.StringFixed(money.CurrencyScale),
		Timestamp:     res.Timestamp,
	}, nil
}

// Text renders the printable receipt.
func (v *View) Text() string {
	rule := strings.Repeat("=", lineWidth)
	thin := strings.Repeat("-", lineWidth)

	var b strings.Builder
	b.WriteString(rule + "\n")
	b.WriteString(center(v.Company) + "\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Receipt:    %s\n", v.TransactionID)
	fmt.Fprintf(&b, "Date:       %s\n", v.Timestamp.UTC().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Operator:   %s (%d)\n", v.EmployeeName, v.EmployeeID)
	b.WriteString(thin + "\n")
	fmt.Fprintf(&b, "Grade:      %s\n", v.Grade)
	fmt.Fprintf(&b, "Unit price: %s\n", v.UnitPrice)
	fmt.Fprintf(&b, "Liters:     %s\n", v.Liters)
	b.WriteString(thin + "\n")
	fmt.Fprintf(&b, "Total:      %s\n", v.Amount)
	b.WriteString(rule + "\n")
	return b.String()
}

func center(s string) string {
	// Width in runes, not bytes; station names are not always ASCII.
	width := utf8.RuneCountInString(s)
	if width >= lineWidth {
		return s
	}
	pad := (lineWidth - width) / 2
	return strings.Repeat(" ", pad) + s
}
