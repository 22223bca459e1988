package api

import (
	"net/http"

	"budgetbook/ledger"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AccountHandler 账户处理器
type AccountHandler struct {
	handler
}

// NewAccountHandler 创建账户处理器
func NewAccountHandler(l *ledger.Ledger, log logrus.FieldLogger) *AccountHandler {
	return &AccountHandler{handler{ledger: l, log: log}}
}

// List 账户列表及余额
func (h *AccountHandler) List(c *gin.Context) {
	accounts, err := h.ledger.Accounts(c.Request.Context())
	if err != nil {
		h.logError(c, err, "加载账户失败")
		render(c, http.StatusOK, "accounts.html", gin.H{"Title": "Accounts", "Error": "Error loading accounts"})
		return
	}
	render(c, http.StatusOK, "accounts.html", gin.H{"Title": "Accounts", "Accounts": accounts})
}

// AddForm 新增账户表单
func (h *AccountHandler) AddForm(c *gin.Context) {
	h.form(c, http.StatusOK, AccountForm{}, false, "")
}

// Add 新增账户
func (h *AccountHandler) Add(c *gin.Context) {
	var form AccountForm
	if err := c.ShouldBind(&form); err != nil {
		h.form(c, http.StatusBadRequest, form, false, Notice(formError(err), ""))
		return
	}
	if err := h.ledger.AddAccount(c.Request.Context(), form.model()); err != nil {
		h.logError(c, err, "新增账户失败")
		h.form(c, statusFor(err), form, false, Notice(err, "Error adding account"))
		return
	}
	redirectWithNotice(c, "/accounts", nil, "account_added")
}

// EditForm 修改账户表单
func (h *AccountHandler) EditForm(c *gin.Context) {
	id, err := parseID(c.Query("id"))
	if err != nil {
		h.form(c, http.StatusBadRequest, AccountForm{}, true, Notice(err, ""))
		return
	}
	a, err := h.ledger.Account(c.Request.Context(), id)
	if err != nil {
		h.logError(c, err, "加载账户失败")
		h.form(c, statusFor(err), AccountForm{AccountID: id}, true, Notice(err, "Error loading account"))
		return
	}
	h.form(c, http.StatusOK, AccountForm{AccountID: a.AccountID, AccountName: a.AccountName, AccountType: a.AccountType}, true, "")
}

// Edit 修改账户名称与类型
func (h *AccountHandler) Edit(c *gin.Context) {
	var form AccountForm
	if err := c.ShouldBind(&form); err != nil {
		h.form(c, http.StatusBadRequest, form, true, Notice(formError(err), ""))
		return
	}
	if err := h.ledger.EditAccount(c.Request.Context(), form.model()); err != nil {
		h.logError(c, err, "修改账户失败")
		h.form(c, statusFor(err), form, true, Notice(err, "Error updating account"))
		return
	}
	redirectWithNotice(c, "/accounts", nil, "account_updated")
}

func (h *AccountHandler) form(c *gin.Context, status int, form AccountForm, editing bool, errMsg string) {
	title, action := "Add account", "/accounts/add"
	if editing {
		title, action = "Edit account", "/accounts/edit"
	}
	render(c, status, "account_form.html", gin.H{
		"Title":   title,
		"Action":  action,
		"Editing": editing,
		"Account": form,
		"Error":   errMsg,
	})
}
