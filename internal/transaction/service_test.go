package transaction_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/EverythingThatLivesIsGoneToWaste/FinanceApp/internal/transaction"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name       string
		params     transaction.CreateParams
		setupMock  func(m *transaction.MockRepository)
		wantAmount decimal.Decimal
		wantDate   time.Time
		wantErr    bool
		wantValErr bool
	}

	tests := []testCase{
		{
			name: "IncomeStaysPositive",
			params: transaction.CreateParams{
				Amount:   decimal.RequireFromString("1000"),
				Type:     "Income",
				Category: "Salary",
				Date:     "2024-03-15T10:30:00Z",
			},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tx *transaction.Transaction) error {
						tx.ID = 1
						return nil
					})
			},
			wantAmount: decimal.RequireFromString("1000"),
			wantDate:   time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			name: "ExpenseNegated",
			params: transaction.CreateParams{
				Amount:   decimal.RequireFromString("250.50"),
				Type:     "Expense",
				Category: "Groceries",
				Date:     "2024-03-15",
			},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tx *transaction.Transaction) error {
						tx.ID = 2
						return nil
					})
			},
			wantAmount: decimal.RequireFromString("-250.50"),
			wantDate:   time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "UnknownTypeFallsThroughToExpense",
			params: transaction.CreateParams{
				Amount:   decimal.RequireFromString("42"),
				Type:     "Transfer",
				Category: "Misc",
				Date:     "2024-01-02",
			},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantAmount: decimal.RequireFromString("-42"),
			wantDate:   time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "OffsetDiscardedOnUTCNormalization",
			params: transaction.CreateParams{
				Amount:   decimal.RequireFromString("10"),
				Type:     "Income",
				Category: "Salary",
				Date:     "2024-03-15T23:30:00+05:00",
			},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantAmount: decimal.RequireFromString("10"),
			wantDate:   time.Date(2024, 3, 15, 23, 30, 0, 0, time.UTC),
		},
		{
			name: "BadDate",
			params: transaction.CreateParams{
				Amount: decimal.RequireFromString("10"),
				Type:   "Income",
				Date:   "not-a-date",
			},
			wantErr:    true,
			wantValErr: true,
		},
		{
			name: "RepoError",
			params: transaction.CreateParams{
				Amount: decimal.RequireFromString("10"),
				Type:   "Income",
				Date:   "2024-01-02",
			},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := transaction.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := transaction.NewService(repo)
			got, err := svc.Create(context.Background(), 7, tt.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				if tt.wantValErr {
					var valErr *transaction.ValidationError
					assert.ErrorAs(t, err, &valErr)
				}

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)

			assert.True(t, tt.wantAmount.Equal(got.Amount), "amount %s != %s", got.Amount, tt.wantAmount)
			assert.Equal(t, tt.wantDate, got.Date)
			assert.Equal(t, int64(7), got.UserID)
		})
	}
}

func TestService_List(t *testing.T) {
	type testCase struct {
		name      string
		filters   transaction.Filters
		wantQuery transaction.Query
	}

	tests := []testCase{
		{
			name:      "NoFilters",
			filters:   transaction.Filters{},
			wantQuery: transaction.Query{},
		},
		{
			name:      "IncomeCaseInsensitive",
			filters:   transaction.Filters{Type: "InCoMe"},
			wantQuery: transaction.Query{Sign: transaction.SignPositive},
		},
		{
			name:      "Expense",
			filters:   transaction.Filters{Type: "expense"},
			wantQuery: transaction.Query{Sign: transaction.SignNegative},
		},
		{
			name:      "UnknownTypeIgnored",
			filters:   transaction.Filters{Type: "transfer"},
			wantQuery: transaction.Query{},
		},
		{
			name:      "Category",
			filters:   transaction.Filters{Category: "Groceries"},
			wantQuery: transaction.Query{Category: "Groceries"},
		},
		{
			name:      "Month",
			filters:   transaction.Filters{Month: "2024-03"},
			wantQuery: transaction.Query{Year: 2024, Month: time.March},
		},
		{
			name:      "BadMonthIgnored",
			filters:   transaction.Filters{Month: "not-a-month"},
			wantQuery: transaction.Query{},
		},
		{
			name:    "Combined",
			filters: transaction.Filters{Type: "expense", Category: "Rent", Month: "2023-11"},
			wantQuery: transaction.Query{
				Sign:     transaction.SignNegative,
				Category: "Rent",
				Year:     2023,
				Month:    time.November,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			rows := []*transaction.Transaction{{ID: 1, UserID: 7}}

			repo := transaction.NewMockRepository(ctrl)
			repo.EXPECT().
				ListTransactions(gomock.Any(), int64(7), tt.wantQuery).
				Return(rows, nil)

			svc := transaction.NewService(repo)
			got, err := svc.List(context.Background(), 7, tt.filters)

			require.NoError(t, err)
			assert.Equal(t, rows, got)
		})
	}
}

func TestService_Delete(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := transaction.NewMockRepository(ctrl)
		repo.EXPECT().
			DeleteTransaction(gomock.Any(), int64(7), int64(42)).
			Return(nil)

		svc := transaction.NewService(repo)
		assert.NoError(t, svc.Delete(context.Background(), 7, 42))
	})

	t.Run("NotFoundCarriesID", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := transaction.NewMockRepository(ctrl)
		repo.EXPECT().
			DeleteTransaction(gomock.Any(), int64(7), int64(999)).
			Return(transaction.ErrNotFound)

		svc := transaction.NewService(repo)
		err := svc.Delete(context.Background(), 7, 999)

		var nfErr *transaction.NotFoundError
		require.ErrorAs(t, err, &nfErr)
		assert.Equal(t, int64(999), nfErr.ID)
		assert.Contains(t, err.Error(), "999")
	})

	t.Run("RepoError", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := transaction.NewMockRepository(ctrl)
		repo.EXPECT().
			DeleteTransaction(gomock.Any(), int64(7), int64(1)).
			Return(errors.New("db error"))

		svc := transaction.NewService(repo)
		err := svc.Delete(context.Background(), 7, 1)

		assert.Error(t, err)

		var nfErr *transaction.NotFoundError
		assert.False(t, errors.As(err, &nfErr))
	})
}

func TestService_Balance(t *testing.T) {
	t.Run("Sum", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := transaction.NewMockRepository(ctrl)
		repo.EXPECT().
			SumAmount(gomock.Any(), int64(7)).
			Return(decimal.RequireFromString("749.50"), nil)

		svc := transaction.NewService(repo)
		got, err := svc.Balance(context.Background(), 7)

		require.NoError(t, err)
		assert.True(t, got.Equal(decimal.RequireFromString("749.50")))
	})

	t.Run("EmptyIsZero", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := transaction.NewMockRepository(ctrl)
		repo.EXPECT().
			SumAmount(gomock.Any(), int64(7)).
			Return(decimal.Zero, nil)

		svc := transaction.NewService(repo)
		got, err := svc.Balance(context.Background(), 7)

		require.NoError(t, err)
		assert.True(t, got.IsZero())
	})
}

func TestService_CategoryAnalytics(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().
		SumByCategory(gomock.Any(), int64(7), transaction.SignNegative).
		Return([]transaction.CategorySum{
			{Category: "Groceries", Total: decimal.RequireFromString("-250.50")},
			{Category: "Rent", Total: decimal.RequireFromString("-900")},
		}, nil)
	repo.EXPECT().
		SumByCategory(gomock.Any(), int64(7), transaction.SignPositive).
		Return([]transaction.CategorySum{
			{Category: "Salary", Total: decimal.RequireFromString("1000")},
		}, nil)

	svc := transaction.NewService(repo)
	got, err := svc.CategoryAnalytics(context.Background(), 7)
	require.NoError(t, err)

	require.Len(t, got.ExpensesByCategory, 2)
	assert.Equal(t, "Groceries", got.ExpensesByCategory[0].Category)
	assert.True(t, got.ExpensesByCategory[0].Amount.Equal(decimal.RequireFromString("250.50")))
	assert.Equal(t, "Rent", got.ExpensesByCategory[1].Category)
	assert.True(t, got.ExpensesByCategory[1].Amount.Equal(decimal.RequireFromString("900")))

	require.Len(t, got.IncomeByCategory, 1)
	assert.Equal(t, "Salary", got.IncomeByCategory[0].Category)
	assert.True(t, got.IncomeByCategory[0].Amount.Equal(decimal.RequireFromString("1000")))

	for _, ct := range got.ExpensesByCategory {
		assert.False(t, ct.Amount.IsNegative())
	}
}

func TestService_CategoryAnalytics_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().
		SumByCategory(gomock.Any(), int64(7), transaction.SignNegative).
		Return(nil, nil)
	repo.EXPECT().
		SumByCategory(gomock.Any(), int64(7), transaction.SignPositive).
		Return(nil, nil)

	svc := transaction.NewService(repo)
	got, err := svc.CategoryAnalytics(context.Background(), 7)
	require.NoError(t, err)

	assert.Empty(t, got.ExpensesByCategory)
	assert.Empty(t, got.IncomeByCategory)
}

func TestService_MonthlyAnalytics(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().
		SumByMonth(gomock.Any(), int64(7)).
		Return([]transaction.MonthSum{
			{
				Year:     2023,
				Month:    time.December,
				Income:   decimal.RequireFromString("1000"),
				Expenses: decimal.RequireFromString("-400"),
				Total:    decimal.RequireFromString("600"),
			},
			{
				Year:     2024,
				Month:    time.March,
				Income:   decimal.Zero,
				Expenses: decimal.RequireFromString("-250.50"),
				Total:    decimal.RequireFromString("-250.50"),
			},
		}, nil)

	svc := transaction.NewService(repo)
	got, err := svc.MonthlyAnalytics(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "2023-12", got[0].Period)
	assert.Equal(t, "2024-03", got[1].Period)

	for _, summary := range got {
		// expenses keep their negative sign, so balance = income + expenses
		assert.True(t, summary.Balance.Equal(summary.Income.Add(summary.Expenses)))
		assert.False(t, summary.Expenses.IsPositive())
		assert.False(t, summary.Income.IsNegative())
	}
}
