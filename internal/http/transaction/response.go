package transaction

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/EverythingThatLivesIsGoneToWaste/FinanceApp/internal/transaction"
)

// amounts serialize as raw JSON numbers, not quoted decimals
func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

type transactionResponse struct {
	ID          int64       `json:"id"`
	Amount      json.Number `json:"amount"`
	Type        string      `json:"type"`
	Date        time.Time   `json:"date"`
	Category    string      `json:"category"`
	Description string      `json:"description"`
	UserID      int64       `json:"userId"`
}

func toResponse(tx *transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:          tx.ID,
		Amount:      number(tx.Amount),
		Type:        tx.Type(),
		Date:        tx.Date,
		Category:    tx.Category,
		Description: tx.Description,
		UserID:      tx.UserID,
	}
}

func toResponseList(txs []*transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}

type categoryTotalResponse struct {
	Category string      `json:"category"`
	Amount   json.Number `json:"amount"`
}

type analyticsResponse struct {
	ExpensesByCategory []categoryTotalResponse `json:"expensesByCategory"`
	IncomeByCategory   []categoryTotalResponse `json:"incomeByCategory"`
}

func toAnalyticsResponse(a *transaction.Analytics) analyticsResponse {
	resp := analyticsResponse{
		ExpensesByCategory: make([]categoryTotalResponse, len(a.ExpensesByCategory)),
		IncomeByCategory:   make([]categoryTotalResponse, len(a.IncomeByCategory)),
	}

	for i, ct := range a.ExpensesByCategory {
		resp.ExpensesByCategory[i] = categoryTotalResponse{Category: ct.Category, Amount: number(ct.Amount)}
	}

	for i, ct := range a.IncomeByCategory {
		resp.IncomeByCategory[i] = categoryTotalResponse{Category: ct.Category, Amount: number(ct.Amount)}
	}

	return resp
}

type monthlySummaryResponse struct {
	Period   string      `json:"period"`
	Income   json.Number `json:"income"`
	Expenses json.Number `json:"expenses"`
	Balance  json.Number `json:"balance"`
}

func toMonthlyResponse(summaries []transaction.MonthlySummary) []monthlySummaryResponse {
	resp := make([]monthlySummaryResponse, len(summaries))
	for i, s := range summaries {
		resp[i] = monthlySummaryResponse{
			Period:   s.Period,
			Income:   number(s.Income),
			Expenses: number(s.Expenses),
			Balance:  number(s.Balance),
		}
	}

	return resp
}
