package api

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"budgetbook/ledger"
	"budgetbook/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// ExportHandler 导出处理器
type ExportHandler struct {
	handler
}

// NewExportHandler 创建导出处理器
func NewExportHandler(l *ledger.Ledger, log logrus.FieldLogger) *ExportHandler {
	return &ExportHandler{handler{ledger: l, log: log}}
}

// exportRange 解析 ?start=&end=，两端都包含
func exportRange(c *gin.Context) (time.Time, time.Time, bool) {
	startStr, endStr := c.Query("start"), c.Query("end")
	if startStr == "" || endStr == "" {
		BadRequest(c, "start and end dates are required")
		return time.Time{}, time.Time{}, false
	}
	start, err := models.ParseDate("start", startStr)
	if err != nil {
		BadRequest(c, "start date must be in YYYY-MM-DD format")
		return time.Time{}, time.Time{}, false
	}
	end, err := models.ParseDate("end", endStr)
	if err != nil {
		BadRequest(c, "end date must be in YYYY-MM-DD format")
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

func (h *ExportHandler) rows(c *gin.Context) ([]ledger.TransactionRow, string, bool) {
	start, end, ok := exportRange(c)
	if !ok {
		return nil, "", false
	}
	rows, err := h.ledger.TransactionsBetween(c.Request.Context(), start, end)
	if err != nil {
		h.logError(c, err, "导出查询失败")
		Error(c, statusFor(err), Notice(err, "Error loading transactions"))
		return nil, "", false
	}
	name := fmt.Sprintf("transactions_%s_%s", start.Format(models.DateLayout), end.Format(models.DateLayout))
	return rows, name, true
}

// ExportCSV 导出交易为 CSV
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	rows, name, ok := h.rows(c)
	if !ok {
		return
	}

	buf := new(bytes.Buffer)
	// 添加 BOM 以支持 Excel 中文显示
	buf.WriteString("\xEF\xBB\xBF")
	writer := csv.NewWriter(buf)

	headers := []string{"ID", "Date", "Account", "Category", "Description", "Amount"}
	if err := writer.Write(headers); err != nil {
		InternalError(c, "Error generating CSV")
		return
	}
	for _, r := range rows {
		record := []string{
			strconv.FormatUint(uint64(r.TransactionID), 10),
			r.TransactionDate.Format(models.DateLayout),
			r.AccountName,
			r.CategoryName,
			r.Description,
			r.Amount.StringFixed(2),
		}
		if err := writer.Write(record); err != nil {
			InternalError(c, "Error generating CSV")
			return
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		InternalError(c, "Error generating CSV")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", name))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportExcel 导出交易为 XLSX，末行为金额合计
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	rows, name, ok := h.rows(c)
	if !ok {
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Transactions"
	f.SetSheetName("Sheet1", sheetName)

	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
	}
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})
	dataStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "center"},
		Border:    border,
	})
	// 4 = #,##0.00
	amountStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "right", Vertical: "center"},
		Border:    border,
		NumFmt:    4,
	})
	summaryStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"FFC000"}, Pattern: 1},
		Alignment: &excelize.Alignment{Vertical: "center"},
		Border:    border,
		NumFmt:    4,
	})

	f.SetColWidth(sheetName, "A", "A", 10)
	f.SetColWidth(sheetName, "B", "B", 12)
	f.SetColWidth(sheetName, "C", "D", 18)
	f.SetColWidth(sheetName, "E", "E", 36)
	f.SetColWidth(sheetName, "F", "F", 14)

	headers := []string{"ID", "Date", "Account", "Category", "Description", "Amount"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for i, r := range rows {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), r.TransactionID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), r.TransactionDate.Format(models.DateLayout))
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), r.AccountName)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), r.CategoryName)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), r.Description)
		f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("E%d", row), dataStyle)
		// 单元格只能存储浮点数，合计仍按精确小数计算
		f.SetCellFloat(sheetName, fmt.Sprintf("F%d", row), r.Amount.InexactFloat64(), 2, 64)
		f.SetCellStyle(sheetName, fmt.Sprintf("F%d", row), fmt.Sprintf("F%d", row), amountStyle)
	}

	summaryRow := len(rows) + 2
	total := ledger.SumAmounts(rows)
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryRow), "Total")
	f.MergeCell(sheetName, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("B%d", summaryRow))
	f.SetCellValue(sheetName, fmt.Sprintf("C%d", summaryRow), fmt.Sprintf("%d transactions", len(rows)))
	f.MergeCell(sheetName, fmt.Sprintf("C%d", summaryRow), fmt.Sprintf("E%d", summaryRow))
	f.SetCellFloat(sheetName, fmt.Sprintf("F%d", summaryRow), total.InexactFloat64(), 2, 64)
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("F%d", summaryRow), summaryStyle)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.xlsx", name))

	if err := f.Write(c.Writer); err != nil {
		h.logError(c, err, "生成 Excel 失败")
		InternalError(c, "Error generating Excel file")
		return
	}
}
