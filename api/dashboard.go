package api

import (
	"net/http"

	"budgetbook/ledger"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// DashboardHandler 首页
type DashboardHandler struct {
	handler
}

// NewDashboardHandler 创建首页处理器
func NewDashboardHandler(l *ledger.Ledger, log logrus.FieldLogger) *DashboardHandler {
	return &DashboardHandler{handler{ledger: l, log: log}}
}

// Show 账户余额与最近交易
func (h *DashboardHandler) Show(c *gin.Context) {
	ctx := c.Request.Context()

	accounts, err := h.ledger.Accounts(ctx)
	if err != nil {
		h.logError(c, err, "加载账户失败")
		render(c, http.StatusOK, "dashboard.html", gin.H{"Title": "Dashboard", "Error": "Error loading dashboard"})
		return
	}
	recent, err := h.ledger.RecentTransactions(ctx, 0)
	if err != nil {
		h.logError(c, err, "加载最近交易失败")
		render(c, http.StatusOK, "dashboard.html", gin.H{"Title": "Dashboard", "Error": "Error loading dashboard"})
		return
	}

	render(c, http.StatusOK, "dashboard.html", gin.H{
		"Title":    "Dashboard",
		"Accounts": accounts,
		"Recent":   recent,
	})
}
