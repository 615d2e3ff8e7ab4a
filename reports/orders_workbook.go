// Package reports renders admin spreadsheets.
package reports

import (
	"bytes"
	"fmt"
	"time"

	"github.com/tealeg/xlsx"

	"github.com/Lari-oliv/olive-beauty/models"
)

const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var orderHeaders = []string{
	"Order ID", "Created At", "Status", "Customer", "Email",
	"Ship To", "Items", "Total",
}

var dailyHeaders = []string{"Date", "Orders", "Revenue"}

// OrdersWorkbook builds a workbook with one row per order on the "Orders"
// sheet and the per-day series on the "Daily" sheet. counts and revenue must
// cover the same dates in the same order.
func OrdersWorkbook(rows []models.OrderExportRow, counts []models.DailyCount, revenue []models.DailyRevenue, loc *time.Location) ([]byte, error) {
	if len(counts) != len(revenue) {
		return nil, fmt.Errorf("daily series length mismatch: %d counts, %d revenue", len(counts), len(revenue))
	}
	if loc == nil {
		loc = time.UTC
	}

	file := xlsx.NewFile()

	orders, err := file.AddSheet("Orders")
	if err != nil {
		return nil, fmt.Errorf("add orders sheet: %w", err)
	}
	addHeader(orders, orderHeaders)
	for _, r := range rows {
		row := orders.AddRow()
		row.AddCell().SetString(r.ID.String())
		row.AddCell().SetString(r.CreatedAt.In(loc).Format("2006-01-02 15:04:05"))
		row.AddCell().SetString(string(r.Status))
		row.AddCell().SetString(r.CustomerName)
		row.AddCell().SetString(r.CustomerEmail)
		row.AddCell().SetString(r.ShippingName)
		row.AddCell().SetInt64(r.ItemCount)
		total, _ := r.Total.Float64()
		row.AddCell().SetFloatWithFormat(total, "0.00")
	}

	daily, err := file.AddSheet("Daily")
	if err != nil {
		return nil, fmt.Errorf("add daily sheet: %w", err)
	}
	addHeader(daily, dailyHeaders)
	for i := range counts {
		row := daily.AddRow()
		row.AddCell().SetString(counts[i].Date)
		row.AddCell().SetInt64(counts[i].Count)
		amount, _ := revenue[i].Revenue.Float64()
		row.AddCell().SetFloatWithFormat(amount, "0.00")
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func addHeader(sheet *xlsx.Sheet, headers []string) {
	row := sheet.AddRow()
	for _, h := range headers {
		row.AddCell().SetString(h)
	}
}
