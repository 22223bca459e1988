package api

import (
	"strconv"
	"strings"
	"time"

	"budgetbook/models"
)

// AccountForm 账户表单
type AccountForm struct {
	AccountID   uint   `form:"accountid"`
	AccountName string `form:"accountname"`
	AccountType string `form:"accounttype"`
}

func (f AccountForm) model() *models.Account {
	return &models.Account{AccountID: f.AccountID, AccountName: f.AccountName, AccountType: f.AccountType}
}

// CategoryForm 分类表单
type CategoryForm struct {
	CategoryID   uint   `form:"categoryid"`
	CategoryName string `form:"categoryname"`
	Type         string `form:"type_"`
}

func (f CategoryForm) model() *models.Category {
	return &models.Category{CategoryID: f.CategoryID, CategoryName: f.CategoryName, Type: f.Type}
}

// TransactionForm 交易表单，金额与日期保留原始输入以便回显
type TransactionForm struct {
	TransactionID uint   `form:"transactionid"`
	AccountID     uint   `form:"accountid"`
	CategoryID    uint   `form:"categoryid"`
	Amount        string `form:"amount"`
	Date          string `form:"transactiondate"`
	Description   string `form:"dscr"`
}

func (f TransactionForm) model() (*models.Transaction, error) {
	amount, err := models.ParseAmount("amount", f.Amount)
	if err != nil {
		return nil, err
	}
	date, err := models.ParseDate("transactiondate", f.Date)
	if err != nil {
		return nil, err
	}
	return &models.Transaction{
		TransactionID:   f.TransactionID,
		AccountID:       f.AccountID,
		CategoryID:      f.CategoryID,
		Amount:          amount,
		TransactionDate: date,
		Description:     f.Description,
	}, nil
}

func transactionForm(t *models.Transaction) TransactionForm {
	return TransactionForm{
		TransactionID: t.TransactionID,
		AccountID:     t.AccountID,
		CategoryID:    t.CategoryID,
		Amount:        t.Amount.StringFixed(2),
		Date:          t.TransactionDate.Format(models.DateLayout),
		Description:   t.Description,
	}
}

// BudgetForm 预算表单
type BudgetForm struct {
	CategoryID uint   `form:"categoryid"`
	Year       int    `form:"budget_year"`
	Month      int    `form:"budget_month"`
	Amount     string `form:"budget_amount"`
}

func (f BudgetForm) model() (*models.Budget, error) {
	amount, err := models.ParseAmount("budget_amount", f.Amount)
	if err != nil {
		return nil, err
	}
	return &models.Budget{
		CategoryID:   f.CategoryID,
		BudgetYear:   f.Year,
		BudgetMonth:  f.Month,
		BudgetAmount: amount,
	}, nil
}

// CashflowForm 现金流配对表单
type CashflowForm struct {
	Expense uint   `form:"expenseid"`
	Income  uint   `form:"incomeid"`
	Type    string `form:"type"`
}

func (f CashflowForm) model() *models.CashflowLink {
	return &models.CashflowLink{Expense: f.Expense, Income: f.Income, Type: f.Type}
}

// formError 表单字段无法解析（例如 ID 不是数字）
func formError(err error) error {
	return &models.ValidationError{Field: "form", Message: "invalid form input: " + err.Error()}
}

// parseID 解析 ?id= 参数
func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil || id == 0 {
		return 0, &models.ValidationError{Field: "id", Message: "invalid id"}
	}
	return uint(id), nil
}

// yearMonth 解析 year/month 查询参数，缺省为当前月份
func yearMonth(yearStr, monthStr string, now time.Time) (int, int, error) {
	year, month := now.Year(), int(now.Month())
	if yearStr != "" {
		y, err := strconv.Atoi(yearStr)
		if err != nil || y < 1900 || y > 9999 {
			return now.Year(), int(now.Month()), &models.ValidationError{Field: "year", Message: "year must be between 1900 and 9999"}
		}
		year = y
	}
	if monthStr != "" {
		m, err := strconv.Atoi(monthStr)
		if err != nil || m < 1 || m > 12 {
			return now.Year(), int(now.Month()), &models.ValidationError{Field: "month", Message: "month must be between 1 and 12"}
		}
		month = m
	}
	return year, month, nil
}
