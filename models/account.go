package models

import "strings"

// Account 账户（银行卡、钱包等）
type Account struct {
	AccountID   uint   `json:"accountid" gorm:"column:accountid;primaryKey"`
	AccountName string `json:"accountname" gorm:"column:accountname;size:100;not null"`
	AccountType string `json:"accounttype" gorm:"column:accounttype;size:50;not null;default:''"`
}

// TableName 设置表名
func (Account) TableName() string {
	return "acct"
}

// Validate 账户名不能为空
func (a *Account) Validate() error {
	a.AccountName = strings.TrimSpace(a.AccountName)
	a.AccountType = strings.TrimSpace(a.AccountType)
	if a.AccountName == "" {
		return invalid("accountname", "account name is required")
	}
	if len(a.AccountName) > 100 {
		return invalid("accountname", "account name is too long (max 100 characters)")
	}
	if len(a.AccountType) > 50 {
		return invalid("accounttype", "account type is too long (max 50 characters)")
	}
	return nil
}
