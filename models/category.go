package models

import "strings"

// Category 交易分类，Type 用于区分收入/支出
type Category struct {
	CategoryID   uint   `json:"categoryid" gorm:"column:categoryid;primaryKey"`
	CategoryName string `json:"categoryname" gorm:"column:categoryname;size:100;not null"`
	Type         string `json:"type_" gorm:"column:type_;size:50;not null;default:''"`
}

func (Category) TableName() string {
	return "category"
}

func (c *Category) Validate() error {
	c.CategoryName = strings.TrimSpace(c.CategoryName)
	c.Type = strings.TrimSpace(c.Type)
	if c.CategoryName == "" {
		return invalid("categoryname", "category name is required")
	}
	if len(c.CategoryName) > 100 {
		return invalid("categoryname", "category name is too long (max 100 characters)")
	}
	if len(c.Type) > 50 {
		return invalid("type_", "category type is too long (max 50 characters)")
	}
	return nil
}
