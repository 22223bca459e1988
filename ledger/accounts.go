package ledger

import (
	"context"

	"budgetbook/database"
	"budgetbook/models"

	"github.com/shopspring/decimal"
)

// AccountBalance 账户及其当前余额
type AccountBalance struct {
	models.Account
	Balance decimal.Decimal `gorm:"column:balance"`
}

const accountsWithBalanceSQL = `SELECT a.accountid, a.accountname, a.accounttype, COALESCE(SUM(t.amount), 0) AS balance
FROM acct a
LEFT JOIN transact t ON t.accountid = a.accountid
GROUP BY a.accountid, a.accountname, a.accounttype
ORDER BY a.accountname`

// Balance 账户余额 = 该账户所有交易金额之和，无交易时为 0
func (l *Ledger) Balance(ctx context.Context, accountID uint) (decimal.Decimal, error) {
	row, err := database.FetchOne[balanceRow](ctx, l.gw,
		"SELECT COALESCE(SUM(amount), 0) AS balance FROM transact WHERE accountid = ?", accountID)
	if err != nil {
		return decimal.Zero, err
	}
	if row == nil {
		return decimal.Zero, nil
	}
	return row.Balance, nil
}

// Accounts 按名称排序的账户列表，附带余额
func (l *Ledger) Accounts(ctx context.Context) ([]AccountBalance, error) {
	return database.FetchAll[AccountBalance](ctx, l.gw, accountsWithBalanceSQL)
}

// AccountList 不带余额的账户列表，用于下拉选择
func (l *Ledger) AccountList(ctx context.Context) ([]models.Account, error) {
	return database.FetchAll[models.Account](ctx, l.gw, "SELECT * FROM acct ORDER BY accountname")
}

// Account 按 ID 查询账户
func (l *Ledger) Account(ctx context.Context, id uint) (*models.Account, error) {
	a, err := database.FetchOne[models.Account](ctx, l.gw, "SELECT * FROM acct WHERE accountid = ?", id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrNotFound
	}
	return a, nil
}

// AddAccount 新增账户
func (l *Ledger) AddAccount(ctx context.Context, a *models.Account) error {
	if err := a.Validate(); err != nil {
		return err
	}
	return l.gw.Commit(ctx,
		"INSERT INTO acct (accountname, accounttype) VALUES (?, ?)", []any{a.AccountName, a.AccountType},
	)
}

// EditAccount 修改账户名称与类型，ID 不可修改；账户不存在时返回 ErrNotFound
func (l *Ledger) EditAccount(ctx context.Context, a *models.Account) error {
	if a.AccountID == 0 {
		return &models.ValidationError{Field: "accountid", Message: "account is required"}
	}
	if err := a.Validate(); err != nil {
		return err
	}
	if _, err := l.Account(ctx, a.AccountID); err != nil {
		return err
	}
	return l.gw.Commit(ctx,
		"UPDATE acct SET accountname = ? WHERE accountid = ?", []any{a.AccountName, a.AccountID},
		"UPDATE acct SET accounttype = ? WHERE accountid = ?", []any{a.AccountType, a.AccountID},
	)
}
