package api

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"budgetbook/ledger"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// BudgetHandler 预算处理器
type BudgetHandler struct {
	handler
	now func() time.Time
}

// NewBudgetHandler 创建预算处理器
func NewBudgetHandler(l *ledger.Ledger, log logrus.FieldLogger) *BudgetHandler {
	return &BudgetHandler{handler: handler{ledger: l, log: log}, now: time.Now}
}

// List 指定月份的预算执行情况，默认当前月份
func (h *BudgetHandler) List(c *gin.Context) {
	now := h.now()
	year, month, err := yearMonth(c.Query("year"), c.Query("month"), now)
	if err != nil {
		render(c, http.StatusBadRequest, "budgets.html", gin.H{
			"Title": "Budgets", "Year": year, "Month": month, "Error": Notice(err, ""),
		})
		return
	}

	lines, err := h.ledger.BudgetActuals(c.Request.Context(), year, month)
	if err != nil {
		h.logError(c, err, "加载预算失败")
		render(c, http.StatusOK, "budgets.html", gin.H{
			"Title": "Budgets", "Year": now.Year(), "Month": int(now.Month()), "Error": "Error loading budgets",
		})
		return
	}
	render(c, http.StatusOK, "budgets.html", gin.H{
		"Title":  "Budgets",
		"Year":   year,
		"Month":  month,
		"Lines":  lines,
		"Totals": ledger.Totals(lines),
	})
}

// AddForm 预算表单，year/month 预填为查询参数或当前月份
func (h *BudgetHandler) AddForm(c *gin.Context) {
	year, month, _ := yearMonth(c.Query("year"), c.Query("month"), h.now())
	h.form(c, http.StatusOK, BudgetForm{Year: year, Month: month}, "")
}

// Add 新增或覆盖预算，成功后跳转到该月份
func (h *BudgetHandler) Add(c *gin.Context) {
	var form BudgetForm
	if err := c.ShouldBind(&form); err != nil {
		h.form(c, http.StatusBadRequest, form, Notice(formError(err), ""))
		return
	}
	b, err := form.model()
	if err == nil {
		err = h.ledger.UpsertBudget(c.Request.Context(), b)
	}
	if err != nil {
		h.logError(c, err, "保存预算失败")
		h.form(c, statusFor(err), form, Notice(err, "Error saving budget"))
		return
	}
	redirectWithNotice(c, "/budgets", url.Values{
		"year":  {strconv.Itoa(form.Year)},
		"month": {strconv.Itoa(form.Month)},
	}, "budget_saved")
}

func (h *BudgetHandler) form(c *gin.Context, status int, form BudgetForm, errMsg string) {
	categories, err := h.ledger.Categories(c.Request.Context())
	if err != nil {
		h.logError(c, err, "加载分类失败")
		if errMsg == "" {
			errMsg = "Error loading categories"
		}
	}
	render(c, status, "budget_form.html", gin.H{
		"Title":      "Add budget",
		"Form":       form,
		"Categories": categories,
		"Error":      errMsg,
	})
}
