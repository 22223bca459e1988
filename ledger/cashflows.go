package ledger

import (
	"context"
	"time"

	"budgetbook/database"
	"budgetbook/models"

	"github.com/shopspring/decimal"
)

// CashflowView 现金流配对的展开视图：支出一侧与收入一侧
type CashflowView struct {
	CashflowID uint   `gorm:"column:cashflowid"`
	Type       string `gorm:"column:type_"`

	ExpenseID          uint            `gorm:"column:expenseid"`
	ExpenseAccount     string          `gorm:"column:expenseacct"`
	ExpenseCategory    string          `gorm:"column:expensecat"`
	ExpenseDate        time.Time       `gorm:"column:expensedate"`
	ExpenseAmount      decimal.Decimal `gorm:"column:expenseamount"`
	ExpenseDescription string          `gorm:"column:expensedscr"`

	IncomeID          uint            `gorm:"column:incomeid"`
	IncomeAccount     string          `gorm:"column:incomeacct"`
	IncomeCategory    string          `gorm:"column:incomecat"`
	IncomeDate        time.Time       `gorm:"column:incomedate"`
	IncomeAmount      decimal.Decimal `gorm:"column:incomeamount"`
	IncomeDescription string          `gorm:"column:incomedscr"`
}

const cashflowsSQL = `SELECT r.cashflowid, r.type_,
t.transactionid AS expenseid, a.accountname AS expenseacct, c.categoryname AS expensecat,
t.transactiondate AS expensedate, t.amount AS expenseamount, t.dscr AS expensedscr,
t2.transactionid AS incomeid, a2.accountname AS incomeacct, c2.categoryname AS incomecat,
t2.transactiondate AS incomedate, t2.amount AS incomeamount, t2.dscr AS incomedscr
FROM cashflow r
JOIN transact t ON r.expense = t.transactionid
JOIN acct a ON t.accountid = a.accountid
JOIN category c ON t.categoryid = c.categoryid
JOIN transact t2 ON r.income = t2.transactionid
JOIN acct a2 ON t2.accountid = a2.accountid
JOIN category c2 ON t2.categoryid = c2.categoryid
ORDER BY t.transactiondate DESC, t.transactionid DESC`

// Cashflows 所有现金流配对，按支出日期倒序
func (l *Ledger) Cashflows(ctx context.Context) ([]CashflowView, error) {
	return database.FetchAll[CashflowView](ctx, l.gw, cashflowsSQL)
}

// AddCashflow 新增配对，两笔交易是否存在由外键保证
func (l *Ledger) AddCashflow(ctx context.Context, c *models.CashflowLink) error {
	if err := c.Validate(); err != nil {
		return err
	}
	return l.gw.Commit(ctx,
		"INSERT INTO cashflow (expense, income, type_) VALUES (?, ?, ?)", []any{c.Expense, c.Income, c.Type},
	)
}

// CashflowTypes 可选的配对类型
func (l *Ledger) CashflowTypes() []string {
	return models.CashflowTypes()
}
