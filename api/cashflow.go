package api

import (
	"net/http"

	"budgetbook/ledger"
	"budgetbook/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CashflowHandler 现金流配对处理器
type CashflowHandler struct {
	handler
}

// NewCashflowHandler 创建现金流处理器
func NewCashflowHandler(l *ledger.Ledger, log logrus.FieldLogger) *CashflowHandler {
	return &CashflowHandler{handler{ledger: l, log: log}}
}

// List 配对视图
func (h *CashflowHandler) List(c *gin.Context) {
	rows, err := h.ledger.Cashflows(c.Request.Context())
	if err != nil {
		h.logError(c, err, "加载现金流失败")
		render(c, http.StatusOK, "cashflows.html", gin.H{"Title": "Cashflows", "Error": "Error loading cashflows"})
		return
	}
	render(c, http.StatusOK, "cashflows.html", gin.H{"Title": "Cashflows", "Cashflows": rows})
}

func (h *CashflowHandler) AddForm(c *gin.Context) {
	h.form(c, http.StatusOK, CashflowForm{Type: models.CashflowTransfer}, "")
}

// Add 新增配对
func (h *CashflowHandler) Add(c *gin.Context) {
	var form CashflowForm
	if err := c.ShouldBind(&form); err != nil {
		h.form(c, http.StatusBadRequest, form, Notice(formError(err), ""))
		return
	}
	if err := h.ledger.AddCashflow(c.Request.Context(), form.model()); err != nil {
		h.logError(c, err, "新增现金流失败")
		h.form(c, statusFor(err), form, Notice(err, "Error adding cashflow"))
		return
	}
	redirectWithNotice(c, "/cashflows", nil, "cashflow_saved")
}

// NotImplemented 修改配对与完整性校验尚未实现
func (h *CashflowHandler) NotImplemented(c *gin.Context) {
	render(c, http.StatusNotImplemented, "not_implemented.html", gin.H{
		"Title":   "Not implemented",
		"Message": "This feature is not available yet.",
	})
}

func (h *CashflowHandler) form(c *gin.Context, status int, form CashflowForm, errMsg string) {
	transactions, err := h.ledger.AllTransactions(c.Request.Context())
	if err != nil {
		h.logError(c, err, "加载交易失败")
		if errMsg == "" {
			errMsg = "Error loading transactions"
		}
	}
	render(c, status, "cashflow_form.html", gin.H{
		"Title":        "Link transactions",
		"Form":         form,
		"Transactions": transactions,
		"Types":        h.ledger.CashflowTypes(),
		"Error":        errMsg,
	})
}
