// Package ledger 汇总计算：账户余额、预算执行、现金流配对与分页列表
package ledger

import (
	"errors"

	"budgetbook/config"
	"budgetbook/database"

	"github.com/shopspring/decimal"
)

// ErrNotFound 按主键查询的记录不存在
var ErrNotFound = errors.New("record not found")

const (
	defaultPageSize    = 20
	defaultRecentLimit = 10
)

// Ledger 账本服务，无内部可变状态，可被多个请求并发使用
type Ledger struct {
	gw          *database.Gateway
	pageSize    int
	recentLimit int
}

// New 创建账本服务
func New(gw *database.Gateway, cfg config.LedgerConfig) *Ledger {
	l := &Ledger{gw: gw, pageSize: cfg.PageSize, recentLimit: cfg.RecentLimit}
	if l.pageSize < 1 {
		l.pageSize = defaultPageSize
	}
	if l.recentLimit < 1 {
		l.recentLimit = defaultRecentLimit
	}
	return l
}

// PageSize 列表每页条数
func (l *Ledger) PageSize() int {
	return l.pageSize
}

// Sum 精确求和，空切片返回 0
func Sum(amounts []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

type countRow struct {
	Total int64 `gorm:"column:total"`
}

type balanceRow struct {
	Balance decimal.Decimal `gorm:"column:balance"`
}
