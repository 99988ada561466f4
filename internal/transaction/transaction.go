package transaction

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TypeIncome  = "Income"
	TypeExpense = "Expense"
)

// Transaction represents a single income or expense entry. The sign of
// Amount is the canonical type indicator: positive is income, negative is
// expense. There is no stored type column.
type Transaction struct {
	ID          int64
	Amount      decimal.Decimal
	Date        time.Time
	Category    string
	Description string
	UserID      int64
}

// Type derives the income/expense tag from the amount sign.
func (t *Transaction) Type() string {
	if t.Amount.IsNegative() {
		return TypeExpense
	}

	return TypeIncome
}

// ErrNotFound is returned by the store when no row matches.
var ErrNotFound = errors.New("transaction not found")

// NotFoundError reports a delete of a transaction that does not exist for
// the caller.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Transaction with ID %d not found", e.ID)
}

// ValidationError reports unusable caller input, such as an unparseable
// date on create.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
