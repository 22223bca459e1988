package api

import (
	"net/url"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var budgetColumns = []string{"categoryid", "categoryname", "type_", "budget_year", "budget_month", "budget_amount", "actual"}

func TestBudgetHandler_List(t *testing.T) {
	l, mock, cleanup := setupMockLedger(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("FROM budget b")).
		WithArgs("2024-05-01", "2024-06-01", 2024, 5).
		WillReturnRows(sqlmock.NewRows(budgetColumns).
			AddRow(2, "Food", "expense", 2024, 5, "300.00", "320.50").
			AddRow(5, "Travel", "expense", 2024, 5, "500.00", "0"))

	router, log, _ := newRouter(t)
	router.GET("/budgets", NewBudgetHandler(l, log).List)

	w := get(router, "/budgets?year=2024&month=5")
	assert.Equal(t, 200, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "May 2024")
	assert.Contains(t, body, "-20.50")
	assert.Contains(t, body, "500.00")
	assert.Contains(t, body, "479.50")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBudgetHandler_List_DefaultsToCurrentMonth(t *testing.T) {
	l, mock, cleanup := setupMockLedger(t)
	defer cleanup()

	mock.ExpectQuery("FROM budget b").
		WithArgs("2023-12-01", "2024-01-01", 2023, 12).
		WillReturnRows(sqlmock.NewRows(budgetColumns))

	router, log, _ := newRouter(t)
	h := NewBudgetHandler(l, log)
	h.now = func() time.Time { return time.Date(2023, 12, 15, 10, 0, 0, 0, time.Local) }
	router.GET("/budgets", h.List)

	w := get(router, "/budgets")
	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "No budgets for this month.")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBudgetHandler_List_InvalidMonth(t *testing.T) {
	l, mock, cleanup := setupMockLedger(t)
	defer cleanup()

	router, log, _ := newRouter(t)
	router.GET("/budgets", NewBudgetHandler(l, log).List)

	w := get(router, "/budgets?year=2024&month=13")
	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "month must be between 1 and 12")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBudgetHandler_Add_RedirectsToMonth(t *testing.T) {
	l, mock, cleanup := setupMockLedger(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("ON DUPLICATE KEY UPDATE budget_amount = ?")).
		WithArgs(3, 2024, 5, "350.5", "350.5").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	router, log, _ := newRouter(t)
	router.POST("/budgets/add", NewBudgetHandler(l, log).Add)

	w := postForm(router, "/budgets/add", url.Values{
		"categoryid":    {"3"},
		"budget_year":   {"2024"},
		"budget_month":  {"5"},
		"budget_amount": {"350.50"},
	})
	assert.Equal(t, 303, w.Code)
	assert.Equal(t, "/budgets?month=5&notice=budget_saved&year=2024", w.Header().Get("Location"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBudgetHandler_Add_NegativeAmount(t *testing.T) {
	l, mock, cleanup := setupMockLedger(t)
	defer cleanup()

	mock.ExpectQuery("FROM category ORDER BY").
		WillReturnRows(sqlmock.NewRows([]string{"categoryid", "categoryname", "type_"}).AddRow(3, "Rent", "expense"))

	router, log, _ := newRouter(t)
	router.POST("/budgets/add", NewBudgetHandler(l, log).Add)

	w := postForm(router, "/budgets/add", url.Values{
		"categoryid":    {"3"},
		"budget_year":   {"2024"},
		"budget_month":  {"5"},
		"budget_amount": {"-1"},
	})
	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "budget amount cannot be negative")
	require.NoError(t, mock.ExpectationsWereMet())
}
