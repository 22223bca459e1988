package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"budgetbook/config"
	"budgetbook/database"
	"budgetbook/ledger"
	"budgetbook/logger"
	"budgetbook/router"
	"budgetbook/service"

	"github.com/joho/godotenv"
)

const version = "1.0.0"

var (
	configFile  string
	port        string
	showVersion bool
	sendReport  bool
)

func init() {
	flag.StringVar(&configFile, "config", "", "外部配置文件路径（可选）")
	flag.StringVar(&configFile, "c", "", "外部配置文件路径（简写）")
	flag.StringVar(&port, "port", "", "监听端口，如: 5000 或 :5000")
	flag.StringVar(&port, "p", "", "监听端口（简写）")
	flag.BoolVar(&showVersion, "version", false, "显示版本信息")
	flag.BoolVar(&showVersion, "v", false, "显示版本信息（简写）")
	flag.BoolVar(&sendReport, "report", false, "发送上月预算报告后退出")
}

func main() {
	flag.Parse()

	if showVersion {
		log.Printf("budgetbook v%s", version)
		return
	}

	// .env 不存在时忽略
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("警告: 读取 .env 失败: %v", err)
	}

	// 加载配置（内置配置 + 可选的外部配置覆盖 + 环境变量）
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 命令行参数覆盖端口配置
	if port != "" {
		if !strings.HasPrefix(port, ":") {
			port = ":" + port
		}
		cfg.Server.Port = port
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	cfg.PrintConfig()

	appLog := logger.New(cfg)

	db, err := database.Open(&cfg.Database, logger.Gorm(appLog, cfg.Debug()))
	if err != nil {
		appLog.WithError(err).Fatal("数据库初始化失败")
	}
	gw := database.NewGateway(db)
	books := ledger.New(gw, cfg.Ledger)

	var report *service.ReportService
	if cfg.Report.Enabled || sendReport {
		report = service.NewReportService(books, service.NewEmailService(&cfg.Email), cfg.Report.Recipients, appLog)
	}

	if sendReport {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if err := report.SendPreviousMonth(ctx); err != nil {
			appLog.WithError(err).Fatal("发送预算报告失败")
		}
		return
	}

	scheduler := service.NewScheduler(appLog)
	if cfg.Report.Enabled {
		if err := scheduler.Add("budget-report", cfg.Report.Schedule, report.SendPreviousMonth); err != nil {
			appLog.WithError(err).Fatal("注册预算报告任务失败")
		}
	}
	scheduler.Start()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r, err := router.SetupRouter(ctx, cfg, router.Deps{Ledger: books, DB: gw, Log: appLog})
	if err != nil {
		appLog.WithError(err).Fatal("初始化路由失败")
	}

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		appLog.Infof("budgetbook 已启动: http://localhost%s/", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.WithError(err).Fatal("服务器启动失败")
		}
	}()

	<-ctx.Done()
	appLog.Info("正在关闭服务器")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLog.WithError(err).Error("关闭服务器失败")
	}
	scheduler.Stop(shutdownCtx)
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
