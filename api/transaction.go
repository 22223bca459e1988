package api

import (
	"context"
	"net/http"
	"strconv"

	"budgetbook/ledger"
	"budgetbook/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// TransactionHandler 交易处理器
type TransactionHandler struct {
	handler
}

// NewTransactionHandler 创建交易处理器
func NewTransactionHandler(l *ledger.Ledger, log logrus.FieldLogger) *TransactionHandler {
	return &TransactionHandler{handler{ledger: l, log: log}}
}

// List 分页列出交易，?page= 从 1 开始
func (h *TransactionHandler) List(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = 1
	}
	p, err := h.ledger.TransactionsPage(c.Request.Context(), page)
	if err != nil {
		h.logError(c, err, "加载交易失败")
		render(c, http.StatusOK, "transactions.html", gin.H{"Title": "Transactions", "Error": "Error loading transactions"})
		return
	}
	render(c, http.StatusOK, "transactions.html", gin.H{"Title": "Transactions", "Page": p})
}

func (h *TransactionHandler) AddForm(c *gin.Context) {
	h.form(c, http.StatusOK, TransactionForm{}, false, "")
}

// Add 新增交易
func (h *TransactionHandler) Add(c *gin.Context) {
	var form TransactionForm
	if err := c.ShouldBind(&form); err != nil {
		h.form(c, http.StatusBadRequest, form, false, Notice(formError(err), ""))
		return
	}
	t, err := form.model()
	if err == nil {
		err = h.ledger.AddTransaction(c.Request.Context(), t)
	}
	if err != nil {
		h.logError(c, err, "新增交易失败")
		h.form(c, statusFor(err), form, false, Notice(err, "Error adding transaction"))
		return
	}
	redirectWithNotice(c, "/transactions", nil, "transaction_added")
}

func (h *TransactionHandler) EditForm(c *gin.Context) {
	id, err := parseID(c.Query("id"))
	if err != nil {
		h.form(c, http.StatusBadRequest, TransactionForm{}, true, Notice(err, ""))
		return
	}
	t, err := h.ledger.Transaction(c.Request.Context(), id)
	if err != nil {
		h.logError(c, err, "加载交易失败")
		h.form(c, statusFor(err), TransactionForm{TransactionID: id}, true, Notice(err, "Error loading transaction"))
		return
	}
	h.form(c, http.StatusOK, transactionForm(t), true, "")
}

// Edit 修改交易的全部字段
func (h *TransactionHandler) Edit(c *gin.Context) {
	var form TransactionForm
	if err := c.ShouldBind(&form); err != nil {
		h.form(c, http.StatusBadRequest, form, true, Notice(formError(err), ""))
		return
	}
	t, err := form.model()
	if err == nil {
		err = h.ledger.EditTransaction(c.Request.Context(), t)
	}
	if err != nil {
		h.logError(c, err, "修改交易失败")
		h.form(c, statusFor(err), form, true, Notice(err, "Error updating transaction"))
		return
	}
	redirectWithNotice(c, "/transactions", nil, "transaction_updated")
}

// form 渲染交易表单，账户与分类加载失败时以空列表渲染
func (h *TransactionHandler) form(c *gin.Context, status int, form TransactionForm, editing bool, errMsg string) {
	title, action := "Add transaction", "/transactions/add"
	if editing {
		title, action = "Edit transaction", "/transactions/edit"
	}
	accounts, categories, err := h.choices(c.Request.Context())
	if err != nil {
		h.logError(c, err, "加载账户与分类失败")
		if errMsg == "" {
			errMsg = "Error loading accounts and categories"
		}
	}
	render(c, status, "transaction_form.html", gin.H{
		"Title":      title,
		"Action":     action,
		"Editing":    editing,
		"Form":       form,
		"Accounts":   accounts,
		"Categories": categories,
		"Error":      errMsg,
	})
}

func (h *TransactionHandler) choices(ctx context.Context) ([]models.Account, []models.Category, error) {
	accounts, err := h.ledger.AccountList(ctx)
	if err != nil {
		return nil, nil, err
	}
	categories, err := h.ledger.Categories(ctx)
	if err != nil {
		return nil, nil, err
	}
	return accounts, categories, nil
}
