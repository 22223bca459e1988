package models

import "github.com/shopspring/decimal"

// Budget 分类月度预算，(categoryid, budget_year, budget_month) 唯一
type Budget struct {
	CategoryID   uint            `json:"categoryid" gorm:"column:categoryid;primaryKey;autoIncrement:false"`
	BudgetYear   int             `json:"budget_year" gorm:"column:budget_year;primaryKey;autoIncrement:false"`
	BudgetMonth  int             `json:"budget_month" gorm:"column:budget_month;primaryKey;autoIncrement:false"`
	BudgetAmount decimal.Decimal `json:"budget_amount" gorm:"column:budget_amount;type:decimal(12,2);not null"`
	Category     Category        `json:"-" gorm:"foreignKey:CategoryID;references:CategoryID"`
}

func (Budget) TableName() string {
	return "budget"
}

func (b *Budget) Validate() error {
	if b.CategoryID == 0 {
		return invalid("categoryid", "category is required")
	}
	if b.BudgetYear < 1900 || b.BudgetYear > 9999 {
		return invalid("budget_year", "year must be between 1900 and 9999")
	}
	if b.BudgetMonth < 1 || b.BudgetMonth > 12 {
		return invalid("budget_month", "month must be between 1 and 12")
	}
	if b.BudgetAmount.IsNegative() {
		return invalid("budget_amount", "budget amount cannot be negative")
	}
	return checkAmount("budget_amount", b.BudgetAmount)
}
