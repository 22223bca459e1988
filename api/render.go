package api

import (
	"errors"
	"net/http"
	"net/url"

	"budgetbook/database"
	"budgetbook/ledger"
	"budgetbook/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// 写操作成功后通过 ?notice= 传递的提示
var notices = map[string]string{
	"account_added":       "Account added successfully!",
	"account_updated":     "Account updated successfully!",
	"category_added":      "Category added successfully!",
	"category_updated":    "Category updated successfully!",
	"transaction_added":   "Transaction added successfully!",
	"transaction_updated": "Transaction updated successfully!",
	"budget_saved":        "Budget saved successfully!",
	"cashflow_saved":      "Cashflow saved successfully!",
}

// Notice 将错误转换为可以展示给用户的提示，内部错误只返回 fallback
func Notice(err error, fallback string) string {
	var ve *models.ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	if errors.Is(err, ledger.ErrNotFound) {
		return "Record not found"
	}
	return fallback
}

// statusFor 写操作失败时的状态码
func statusFor(err error) int {
	switch {
	case models.IsValidationError(err):
		return http.StatusBadRequest
	case errors.Is(err, ledger.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, database.ErrConnectivity):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// handler 各页面处理器共用的依赖
type handler struct {
	ledger *ledger.Ledger
	log    logrus.FieldLogger
}

// logError 记录非用户输入类错误
func (h *handler) logError(c *gin.Context, err error, msg string) {
	if models.IsValidationError(err) {
		return
	}
	h.log.WithFields(logrus.Fields{
		"route": c.FullPath(),
		"error": err.Error(),
	}).Error(msg)
}

func render(c *gin.Context, status int, page string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if _, ok := data["Notice"]; !ok {
		if msg, ok := notices[c.Query("notice")]; ok {
			data["Notice"] = msg
		}
	}
	c.HTML(status, page, data)
}

func redirectWithNotice(c *gin.Context, path string, query url.Values, notice string) {
	if query == nil {
		query = url.Values{}
	}
	query.Set("notice", notice)
	c.Redirect(http.StatusSeeOther, path+"?"+query.Encode())
}
