package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction 交易记录，金额为带符号的精确小数：正数流入，负数流出
type Transaction struct {
	TransactionID   uint            `json:"transactionid" gorm:"column:transactionid;primaryKey"`
	AccountID       uint            `json:"accountid" gorm:"column:accountid;not null;index"`
	CategoryID      uint            `json:"categoryid" gorm:"column:categoryid;not null;index"`
	Amount          decimal.Decimal `json:"amount" gorm:"column:amount;type:decimal(12,2);not null"`
	TransactionDate time.Time       `json:"transactiondate" gorm:"column:transactiondate;type:date;not null;index"`
	Description     string          `json:"dscr" gorm:"column:dscr;size:255;not null;default:''"`
	Account         Account         `json:"-" gorm:"foreignKey:AccountID;references:AccountID"`
	Category        Category        `json:"-" gorm:"foreignKey:CategoryID;references:CategoryID"`
}

func (Transaction) TableName() string {
	return "transact"
}

// Validate 校验引用与字段，引用是否存在由数据库外键保证
func (t *Transaction) Validate() error {
	t.Description = strings.TrimSpace(t.Description)
	if t.AccountID == 0 {
		return invalid("accountid", "account is required")
	}
	if t.CategoryID == 0 {
		return invalid("categoryid", "category is required")
	}
	if t.TransactionDate.IsZero() {
		return invalid("transactiondate", "date is required")
	}
	if err := checkAmount("amount", t.Amount); err != nil {
		return err
	}
	if len(t.Description) > 255 {
		return invalid("dscr", "description is too long (max 255 characters)")
	}
	return nil
}
