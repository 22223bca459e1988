package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"budgetbook/ledger"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// BudgetSource 月度预算执行数据
type BudgetSource interface {
	BudgetActuals(ctx context.Context, year, month int) ([]ledger.BudgetLine, error)
}

// ReportService 月度预算报告
type ReportService struct {
	budgets    BudgetSource
	mailer     Mailer
	recipients []string
	log        logrus.FieldLogger
	now        func() time.Time
}

// NewReportService 创建报告服务
func NewReportService(budgets BudgetSource, mailer Mailer, recipients []string, log logrus.FieldLogger) *ReportService {
	return &ReportService{
		budgets:    budgets,
		mailer:     mailer,
		recipients: recipients,
		log:        log,
		now:        time.Now,
	}
}

// PreviousMonth 上一个自然月
func PreviousMonth(now time.Time) (int, int) {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	prev := first.AddDate(0, -1, 0)
	return prev.Year(), int(prev.Month())
}

// SendPreviousMonth 发送上个月的报告，供定时任务调用
func (s *ReportService) SendPreviousMonth(ctx context.Context) error {
	year, month := PreviousMonth(s.now())
	return s.SendMonthly(ctx, year, month)
}

// SendMonthly 发送指定月份的预算报告
func (s *ReportService) SendMonthly(ctx context.Context, year, month int) error {
	lines, err := s.budgets.BudgetActuals(ctx, year, month)
	if err != nil {
		return fmt.Errorf("加载预算失败: %w", err)
	}
	body, err := RenderBudgetReport(year, month, lines)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("Budget report %s %d", time.Month(month), year)
	if err := s.mailer.Send(s.recipients, subject, body); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{
		"year":       year,
		"month":      month,
		"budgets":    len(lines),
		"recipients": len(s.recipients),
	}).Info("预算报告已发送")
	return nil
}

var reportTmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
}).Parse(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; padding: 20px;">
<h2>Budget report · {{.Period}}</h2>
{{if .Lines}}
<table cellpadding="6" style="border-collapse: collapse;">
<tr style="background: #4F81BD; color: #fff;"><th align="left">Category</th><th align="right">Budget</th><th align="right">Actual</th><th align="right">Remaining</th></tr>
{{range .Lines}}<tr>
<td>{{.CategoryName}}</td>
<td align="right">{{money .Amount}}</td>
<td align="right">{{money .Actual}}</td>
<td align="right"{{if .Over}} style="color: #b00020;"{{end}}>{{money .Remaining}}</td>
</tr>
{{end}}<tr style="font-weight: bold; background: #FFC000;">
<td>Total</td>
<td align="right">{{money .Totals.Amount}}</td>
<td align="right">{{money .Totals.Actual}}</td>
<td align="right">{{money .Totals.Remaining}}</td>
</tr>
</table>
{{if .Over}}<p style="color: #b00020;">Over budget: {{range $i, $c := .Over}}{{if $i}}, {{end}}{{$c}}{{end}}</p>{{end}}
{{else}}
<p>No budgets were set for this month.</p>
{{end}}
<p style="color: #666;">Sent by Budget Book</p>
</body>
</html>
`))

// RenderBudgetReport 生成报告邮件正文
func RenderBudgetReport(year, month int, lines []ledger.BudgetLine) (string, error) {
	var over []string
	for _, b := range lines {
		if b.Over() {
			over = append(over, b.CategoryName)
		}
	}
	var buf bytes.Buffer
	err := reportTmpl.Execute(&buf, map[string]any{
		"Period": fmt.Sprintf("%s %d", time.Month(month), year),
		"Lines":  lines,
		"Totals": ledger.Totals(lines),
		"Over":   over,
	})
	if err != nil {
		return "", fmt.Errorf("生成报告失败: %w", err)
	}
	return buf.String(), nil
}
