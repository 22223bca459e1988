package api

import (
	"bytes"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func expectExportRows(mock sqlmock.Sqlmock) {
	mock.ExpectQuery(regexp.QuoteMeta("WHERE t.transactiondate >= ? AND t.transactiondate <= ?")).
		WithArgs("2024-01-01", "2024-01-31").
		WillReturnRows(sqlmock.NewRows(transactionColumns).
			AddRow(7, 1, 2, "-20.00", time.Date(2024, 1, 20, 0, 0, 0, 0, time.Local), "dinner, with friends", "Checking", "Food").
			AddRow(6, 1, 4, "1000.00", time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local), "pay", "Checking", "Salary"))
}

func TestExportHandler_ExportCSV(t *testing.T) {
	l, mock, cleanup := setupMockLedger(t)
	defer cleanup()
	expectExportRows(mock)

	router, log, _ := newRouter(t)
	router.GET("/export/csv", NewExportHandler(l, log).ExportCSV)

	w := get(router, "/export/csv?start=2024-01-01&end=2024-01-31")
	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "transactions_2024-01-01_2024-01-31.csv")

	body := w.Body.String()
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("\xEF\xBB\xBF")))
	assert.Contains(t, body, "ID,Date,Account,Category,Description,Amount")
	assert.Contains(t, body, `7,2024-01-20,Checking,Food,"dinner, with friends",-20.00`)
	assert.Contains(t, body, "6,2024-01-15,Checking,Salary,pay,1000.00")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExportHandler_ExportCSV_MissingParams(t *testing.T) {
	l, _, cleanup := setupMockLedger(t)
	defer cleanup()

	router, log, _ := newRouter(t)
	router.GET("/export/csv", NewExportHandler(l, log).ExportCSV)

	w := get(router, "/export/csv")
	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "start and end dates are required")

	w = get(router, "/export/csv?start=2024-01-01&end=31/01/2024")
	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "end date must be in YYYY-MM-DD format")
	// 结束日期早于开始日期
	assert.Equal(t, 400, get(router, "/export/csv?start=2024-02-01&end=2024-01-01").Code)
}

func TestExportHandler_ExportExcel(t *testing.T) {
	l, mock, cleanup := setupMockLedger(t)
	defer cleanup()
	expectExportRows(mock)

	router, log, _ := newRouter(t)
	router.GET("/export/excel", NewExportHandler(l, log).ExportExcel)

	w := get(router, "/export/excel?start=2024-01-01&end=2024-01-31")
	assert.Equal(t, 200, w.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Transactions", "F1")
	require.NoError(t, err)
	assert.Equal(t, "Amount", header)

	label, err := f.GetCellValue("Transactions", "A4")
	require.NoError(t, err)
	assert.Equal(t, "Total", label)

	raw, err := f.GetCellValue("Transactions", "F4", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	total, err := decimal.NewFromString(raw)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(980)))
	require.NoError(t, mock.ExpectationsWereMet())
}
