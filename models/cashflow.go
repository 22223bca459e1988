package models

import "slices"

// 现金流关联类型
const (
	CashflowBusiness = "Business"
	CashflowTransfer = "Transfer"
)

// CashflowTypes 可选的关联类型
func CashflowTypes() []string {
	return []string{CashflowBusiness, CashflowTransfer}
}

// CashflowLink 将一笔支出与一笔收入配对（内部转账、报销等）
type CashflowLink struct {
	CashflowID uint        `json:"cashflowid" gorm:"column:cashflowid;primaryKey"`
	Expense    uint        `json:"expense" gorm:"column:expense;not null;index"`
	Income     uint        `json:"income" gorm:"column:income;not null;index"`
	Type       string      `json:"type_" gorm:"column:type_;size:20;not null"`
	ExpenseTx  Transaction `json:"-" gorm:"foreignKey:Expense;references:TransactionID"`
	IncomeTx   Transaction `json:"-" gorm:"foreignKey:Income;references:TransactionID"`
}

func (CashflowLink) TableName() string {
	return "cashflow"
}

func (c *CashflowLink) Validate() error {
	if c.Expense == 0 {
		return invalid("expenseid", "expense transaction is required")
	}
	if c.Income == 0 {
		return invalid("incomeid", "income transaction is required")
	}
	if c.Expense == c.Income {
		return invalid("incomeid", "expense and income must be different transactions")
	}
	if !slices.Contains(CashflowTypes(), c.Type) {
		return invalid("type", "cashflow type must be Business or Transfer")
	}
	return nil
}
