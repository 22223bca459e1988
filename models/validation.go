package models

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout 表单与存储使用的日期格式
const DateLayout = "2006-01-02"

// ValidationError 用户输入错误，消息可以直接展示给用户
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidationError 判断是否为输入校验错误
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// 金额列为 decimal(12,2)，绝对值必须小于 1e10
var amountLimit = decimal.New(1, 10)

// checkAmount 校验小数位数与取值范围
func checkAmount(field string, d decimal.Decimal) error {
	if !d.Equal(d.Round(2)) {
		return invalid(field, "amount can have at most two decimal places")
	}
	if d.Abs().GreaterThanOrEqual(amountLimit) {
		return invalid(field, "amount must be less than 10,000,000,000")
	}
	return nil
}

// ParseAmount 解析金额，保留符号，最多两位小数
func ParseAmount(field, s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, invalid(field, "amount is required")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, invalid(field, "amount must be a number")
	}
	if err := checkAmount(field, d); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}

// ParseDate 解析 YYYY-MM-DD 日期
func ParseDate(field, s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, invalid(field, "date must be in YYYY-MM-DD format")
	}
	return t, nil
}
