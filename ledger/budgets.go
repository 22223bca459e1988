package ledger

import (
	"context"
	"time"

	"budgetbook/database"
	"budgetbook/models"

	"github.com/shopspring/decimal"
)

// BudgetLine 某分类当月的预算执行情况
type BudgetLine struct {
	CategoryID   uint            `gorm:"column:categoryid"`
	CategoryName string          `gorm:"column:categoryname"`
	CategoryType string          `gorm:"column:type_"`
	Year         int             `gorm:"column:budget_year"`
	Month        int             `gorm:"column:budget_month"`
	Amount       decimal.Decimal `gorm:"column:budget_amount"`
	Actual       decimal.Decimal `gorm:"column:actual"`
	Remaining    decimal.Decimal `gorm:"-"`
}

// Over 是否超支
func (b BudgetLine) Over() bool {
	return b.Remaining.IsNegative()
}

// 实际发生额取绝对值，只统计预算所在月份的交易
const budgetActualsSQL = `SELECT b.categoryid, c.categoryname, c.type_, b.budget_year, b.budget_month, b.budget_amount,
COALESCE(SUM(ABS(t.amount)), 0) AS actual
FROM budget b
JOIN category c ON b.categoryid = c.categoryid
LEFT JOIN transact t ON t.categoryid = b.categoryid AND t.transactiondate >= ? AND t.transactiondate < ?
WHERE b.budget_year = ? AND b.budget_month = ?
GROUP BY b.categoryid, c.categoryname, c.type_, b.budget_year, b.budget_month, b.budget_amount
ORDER BY c.categoryname`

const upsertBudgetSQL = `INSERT INTO budget (categoryid, budget_year, budget_month, budget_amount) VALUES (?, ?, ?, ?)
ON DUPLICATE KEY UPDATE budget_amount = ?`

// MonthRange 返回 [当月第一天, 下月第一天)
func MonthRange(year, month int) (time.Time, time.Time) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	return from, from.AddDate(0, 1, 0)
}

// BudgetActuals 指定月份各预算的实际发生额与剩余额度，没有预算的分类不返回
func (l *Ledger) BudgetActuals(ctx context.Context, year, month int) ([]BudgetLine, error) {
	if month < 1 || month > 12 {
		return nil, &models.ValidationError{Field: "month", Message: "month must be between 1 and 12"}
	}
	from, to := MonthRange(year, month)
	lines, err := database.Select[BudgetLine](ctx, l.gw, budgetActualsSQL,
		from.Format(models.DateLayout), to.Format(models.DateLayout), year, month)
	if err != nil {
		return nil, err
	}
	for i := range lines {
		lines[i].Remaining = lines[i].Amount.Sub(lines[i].Actual)
	}
	return lines, nil
}

// UpsertBudget 新增或覆盖某分类某月的预算
func (l *Ledger) UpsertBudget(ctx context.Context, b *models.Budget) error {
	if err := b.Validate(); err != nil {
		return err
	}
	return l.gw.Commit(ctx, upsertBudgetSQL,
		[]any{b.CategoryID, b.BudgetYear, b.BudgetMonth, b.BudgetAmount, b.BudgetAmount},
	)
}

// BudgetTotals 预算、实际与剩余的合计
type BudgetTotals struct {
	Amount    decimal.Decimal
	Actual    decimal.Decimal
	Remaining decimal.Decimal
}

func Totals(lines []BudgetLine) BudgetTotals {
	var t BudgetTotals
	for _, b := range lines {
		t.Amount = t.Amount.Add(b.Amount)
		t.Actual = t.Actual.Add(b.Actual)
		t.Remaining = t.Remaining.Add(b.Remaining)
	}
	return t
}
