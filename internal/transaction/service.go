package transaction

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	CreateTransaction(ctx context.Context, tx *Transaction) error
	ListTransactions(ctx context.Context, userID int64, q Query) ([]*Transaction, error)
	DeleteTransaction(ctx context.Context, userID, id int64) error

	SumAmount(ctx context.Context, userID int64) (decimal.Decimal, error)
	SumByCategory(ctx context.Context, userID int64, sign Sign) ([]CategorySum, error)
	SumByMonth(ctx context.Context, userID int64) ([]MonthSum, error)
}

// Sign restricts a query to one side of the amount axis.
type Sign int

const (
	SignAny      Sign = 0
	SignPositive Sign = 1
	SignNegative Sign = -1
)

// Query is the store-level predicate built by the service from caller
// filters. Zero values mean "no restriction".
type Query struct {
	Sign     Sign
	Category string
	Year     int
	Month    time.Month
}

// CategorySum is a raw per-category amount sum as produced by the store.
type CategorySum struct {
	Category string
	Total    decimal.Decimal
}

// MonthSum is a raw per-month rollup as produced by the store. Expenses
// keep their negative sign.
type MonthSum struct {
	Year     int
	Month    time.Month
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Total    decimal.Decimal
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Amount      decimal.Decimal
	Type        string
	Category    string
	Date        string
	Description string
}

// Filters are the caller-supplied list filters. Unrecognized type values
// and unparseable months are ignored rather than rejected; clients rely
// on that.
type Filters struct {
	Type     string
	Category string
	Month    string
}

// dateLayouts are the formats accepted on create, tried in order.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// parseDate parses a caller-supplied date string and reinterprets the
// wall-clock components in UTC, discarding any offset in the input.
func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}

		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC), nil
	}

	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// Create stores a transaction for userID. The caller supplies a magnitude
// and a type tag; the stored amount is positive only for the exact tag
// "Income", anything else gets expense semantics.
func (s *Service) Create(ctx context.Context, userID int64, params CreateParams) (*Transaction, error) {
	date, err := parseDate(params.Date)
	if err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}

	amount := params.Amount
	if params.Type != TypeIncome {
		amount = amount.Neg()
	}

	tx := &Transaction{
		Amount:      amount,
		Date:        date,
		Category:    params.Category,
		Description: params.Description,
		UserID:      userID,
	}
	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

// List returns the caller's transactions newest first, restricted by the
// given filters.
func (s *Service) List(ctx context.Context, userID int64, filters Filters) ([]*Transaction, error) {
	q := Query{Category: filters.Category}

	switch strings.ToLower(filters.Type) {
	case "income":
		q.Sign = SignPositive
	case "expense":
		q.Sign = SignNegative
	}

	if filters.Month != "" {
		if m, err := time.Parse("2006-01", filters.Month); err == nil {
			q.Year = m.Year()
			q.Month = m.Month()
		}
	}

	return s.repo.ListTransactions(ctx, userID, q)
}

// Delete removes one of the caller's transactions by id. Ids that do not
// exist and ids owned by someone else report the same NotFoundError.
func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	if err := s.repo.DeleteTransaction(ctx, userID, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return &NotFoundError{ID: id}
		}

		return err
	}

	return nil
}

// Balance returns the sum of all the caller's amounts; zero when there are
// none.
func (s *Service) Balance(ctx context.Context, userID int64) (decimal.Decimal, error) {
	return s.repo.SumAmount(ctx, userID)
}

// CategoryTotal is one category's aggregate, always non-negative.
type CategoryTotal struct {
	Category string
	Amount   decimal.Decimal
}

type Analytics struct {
	ExpensesByCategory []CategoryTotal
	IncomeByCategory   []CategoryTotal
}

// CategoryAnalytics partitions the caller's transactions by sign and sums
// each partition per category. Expense totals are reported as magnitudes.
func (s *Service) CategoryAnalytics(ctx context.Context, userID int64) (*Analytics, error) {
	expenses, err := s.repo.SumByCategory(ctx, userID, SignNegative)
	if err != nil {
		return nil, err
	}

	income, err := s.repo.SumByCategory(ctx, userID, SignPositive)
	if err != nil {
		return nil, err
	}

	analytics := &Analytics{
		ExpensesByCategory: make([]CategoryTotal, 0, len(expenses)),
		IncomeByCategory:   make([]CategoryTotal, 0, len(income)),
	}

	for _, e := range expenses {
		analytics.ExpensesByCategory = append(analytics.ExpensesByCategory, CategoryTotal{
			Category: e.Category,
			Amount:   e.Total.Neg(),
		})
	}

	for _, i := range income {
		analytics.IncomeByCategory = append(analytics.IncomeByCategory, CategoryTotal{
			Category: i.Category,
			Amount:   i.Total,
		})
	}

	return analytics, nil
}

// MonthlySummary is one calendar month's rollup. Expenses keep their
// negative sign, so Balance = Income + Expenses.
type MonthlySummary struct {
	Period   string
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Balance  decimal.Decimal
}

// MonthlyAnalytics returns per-month rollups of the caller's transactions,
// ascending by calendar month.
func (s *Service) MonthlyAnalytics(ctx context.Context, userID int64) ([]MonthlySummary, error) {
	sums, err := s.repo.SumByMonth(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]MonthlySummary, len(sums))
	for i, m := range sums {
		summaries[i] = MonthlySummary{
			Period:   fmt.Sprintf("%04d-%02d", m.Year, int(m.Month)),
			Income:   m.Income,
			Expenses: m.Expenses,
			Balance:  m.Total,
		}
	}

	return summaries, nil
}
