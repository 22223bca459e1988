package ledger

import (
	"context"
	"time"

	"budgetbook/database"
	"budgetbook/models"

	"github.com/shopspring/decimal"
)

// TransactionRow 交易及其账户、分类名称
type TransactionRow struct {
	TransactionID   uint            `gorm:"column:transactionid"`
	AccountID       uint            `gorm:"column:accountid"`
	CategoryID      uint            `gorm:"column:categoryid"`
	Amount          decimal.Decimal `gorm:"column:amount"`
	TransactionDate time.Time       `gorm:"column:transactiondate"`
	Description     string          `gorm:"column:dscr"`
	AccountName     string          `gorm:"column:accountname"`
	CategoryName    string          `gorm:"column:categoryname"`
}

// TransactionPage 一页交易
type TransactionPage struct {
	Rows []TransactionRow
	Pagination
}

const transactionRowSelect = `SELECT t.transactionid, t.accountid, t.categoryid, t.amount, t.transactiondate, t.dscr, a.accountname, c.categoryname
FROM transact t
JOIN acct a ON t.accountid = a.accountid
JOIN category c ON t.categoryid = c.categoryid`

// 最新的在前，同一天按 ID 倒序
const transactionOrder = "ORDER BY t.transactiondate DESC, t.transactionid DESC"

// TransactionsPage 分页查询交易，页码从 1 开始
func (l *Ledger) TransactionsPage(ctx context.Context, page int) (*TransactionPage, error) {
	count, err := database.FetchOne[countRow](ctx, l.gw, "SELECT COUNT(*) AS total FROM transact")
	if err != nil {
		return nil, err
	}
	var total int64
	if count != nil {
		total = count.Total
	}

	p := Paginate(page, l.pageSize, total)
	rows, err := database.Select[TransactionRow](ctx, l.gw,
		transactionRowSelect+"\n"+transactionOrder+"\nLIMIT ? OFFSET ?", p.PageSize, p.Offset)
	if err != nil {
		return nil, err
	}
	return &TransactionPage{Rows: rows, Pagination: p}, nil
}

// RecentTransactions 最近的交易，limit < 1 时使用配置的条数
func (l *Ledger) RecentTransactions(ctx context.Context, limit int) ([]TransactionRow, error) {
	if limit < 1 {
		limit = l.recentLimit
	}
	return database.Select[TransactionRow](ctx, l.gw,
		transactionRowSelect+"\n"+transactionOrder+"\nLIMIT ?", limit)
}

// TransactionsBetween 日期区间内的交易，包含首尾两天
func (l *Ledger) TransactionsBetween(ctx context.Context, from, to time.Time) ([]TransactionRow, error) {
	if to.Before(from) {
		return nil, &models.ValidationError{Field: "end", Message: "end date must not be before start date"}
	}
	return database.Select[TransactionRow](ctx, l.gw,
		transactionRowSelect+"\nWHERE t.transactiondate >= ? AND t.transactiondate <= ?\n"+transactionOrder,
		from.Format(models.DateLayout), to.Format(models.DateLayout))
}

// AllTransactions 全部交易，用于现金流配对选择
func (l *Ledger) AllTransactions(ctx context.Context) ([]TransactionRow, error) {
	return database.FetchAll[TransactionRow](ctx, l.gw, transactionRowSelect+"\n"+transactionOrder)
}

// Transaction 按 ID 查询交易
func (l *Ledger) Transaction(ctx context.Context, id uint) (*models.Transaction, error) {
	t, err := database.FetchOne[models.Transaction](ctx, l.gw,
		"SELECT transactionid, accountid, categoryid, amount, transactiondate, dscr FROM transact WHERE transactionid = ?", id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrNotFound
	}
	return t, nil
}

func (l *Ledger) AddTransaction(ctx context.Context, t *models.Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}
	return l.gw.Commit(ctx,
		"INSERT INTO transact (accountid, categoryid, amount, transactiondate, dscr) VALUES (?, ?, ?, ?, ?)",
		[]any{t.AccountID, t.CategoryID, t.Amount, t.TransactionDate.Format(models.DateLayout), t.Description},
	)
}

// EditTransaction 整体替换交易的各个字段，交易不存在时返回 ErrNotFound
func (l *Ledger) EditTransaction(ctx context.Context, t *models.Transaction) error {
	if t.TransactionID == 0 {
		return &models.ValidationError{Field: "transactionid", Message: "transaction is required"}
	}
	if err := t.Validate(); err != nil {
		return err
	}
	if _, err := l.Transaction(ctx, t.TransactionID); err != nil {
		return err
	}
	return l.gw.Commit(ctx,
		"UPDATE transact SET accountid = ?, categoryid = ?, amount = ?, transactiondate = ?, dscr = ? WHERE transactionid = ?",
		[]any{t.AccountID, t.CategoryID, t.Amount, t.TransactionDate.Format(models.DateLayout), t.Description, t.TransactionID},
	)
}

// SumAmounts 交易金额合计
func SumAmounts(rows []TransactionRow) decimal.Decimal {
	amounts := make([]decimal.Decimal, len(rows))
	for i, r := range rows {
		amounts[i] = r.Amount
	}
	return Sum(amounts)
}
