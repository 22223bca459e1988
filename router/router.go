package router

import (
	"context"
	"fmt"

	"budgetbook/api"
	"budgetbook/config"
	"budgetbook/ledger"
	"budgetbook/middleware"
	"budgetbook/web"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Deps 路由依赖
type Deps struct {
	Ledger *ledger.Ledger
	DB     api.Pinger
	Log    logrus.FieldLogger
}

// SetupRouter 设置路由，ctx 结束时停止中间件的后台任务
func SetupRouter(ctx context.Context, cfg *config.Config, deps Deps) (*gin.Engine, error) {
	// 设置运行模式
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(deps.Log))

	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("加载模板失败: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	// 表单提交限流
	if cfg.RateLimit.WriteMax > 0 {
		r.Use(middleware.WriteRateLimit(ctx, cfg.RateLimit.WriteMax, cfg.RateLimit.WriteWindow))
	}

	r.GET("/health", api.NewHealthHandler(deps.DB, deps.Log).Check)

	r.GET("/", api.NewDashboardHandler(deps.Ledger, deps.Log).Show)

	accountHandler := api.NewAccountHandler(deps.Ledger, deps.Log)
	accounts := r.Group("/accounts")
	{
		accounts.GET("", accountHandler.List)
		accounts.GET("/add", accountHandler.AddForm)
		accounts.POST("/add", accountHandler.Add)
		accounts.GET("/edit", accountHandler.EditForm)
		accounts.POST("/edit", accountHandler.Edit)
	}

	categoryHandler := api.NewCategoryHandler(deps.Ledger, deps.Log)
	categories := r.Group("/categories")
	{
		categories.GET("", categoryHandler.List)
		categories.GET("/add", categoryHandler.AddForm)
		categories.POST("/add", categoryHandler.Add)
		categories.GET("/edit", categoryHandler.EditForm)
		categories.POST("/edit", categoryHandler.Edit)
	}

	transactionHandler := api.NewTransactionHandler(deps.Ledger, deps.Log)
	transactions := r.Group("/transactions")
	{
		transactions.GET("", transactionHandler.List)
		transactions.GET("/add", transactionHandler.AddForm)
		transactions.POST("/add", transactionHandler.Add)
		transactions.GET("/edit", transactionHandler.EditForm)
		transactions.POST("/edit", transactionHandler.Edit)
	}

	budgetHandler := api.NewBudgetHandler(deps.Ledger, deps.Log)
	budgets := r.Group("/budgets")
	{
		budgets.GET("", budgetHandler.List)
		budgets.GET("/add", budgetHandler.AddForm)
		budgets.POST("/add", budgetHandler.Add)
	}

	cashflowHandler := api.NewCashflowHandler(deps.Ledger, deps.Log)
	cashflows := r.Group("/cashflows")
	{
		cashflows.GET("", cashflowHandler.List)
		cashflows.GET("/add", cashflowHandler.AddForm)
		cashflows.POST("/add", cashflowHandler.Add)
		cashflows.GET("/edit", cashflowHandler.NotImplemented)
		cashflows.POST("/edit", cashflowHandler.NotImplemented)
	}
	r.GET("/verify", cashflowHandler.NotImplemented)

	exportHandler := api.NewExportHandler(deps.Ledger, deps.Log)
	export := r.Group("/export")
	{
		export.GET("/csv", exportHandler.ExportCSV)
		export.GET("/excel", exportHandler.ExportExcel)
	}

	return r, nil
}
