package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/safawala/backoffice/internal/models"
)

// ExportService renders spreadsheet exports of the document registers.
type ExportService struct{}

func NewExportService() *ExportService { return &ExportService{} }

// QuotesXLSX writes one row per quote with the stored pricing snapshot.
func (s *ExportService) QuotesXLSX(quotes []models.Quote) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	const sheet = "Quotes"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Number", "Status", "Customer", "Booking", "Event Date", "Subtotal", "Discount", "Tax", "Total", "Deposit", "Created"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	for r, q := range quotes {
		row := r + 2
		values := []interface{}{
			q.Number, q.Status, q.Customer.Name, q.BookingType,
			dateString(q.EventDate),
			q.Subtotal, q.DiscountAmount + q.CouponDiscount, q.TaxAmount,
			q.TotalAmount, q.SecurityDeposit,
			q.CreatedAt.Format("2006-01-02"),
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, row)
			f.SetCellValue(sheet, cell, v)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("xlsx export: %w", err)
	}
	return buf.Bytes(), nil
}

// InvoicesXLSX writes one row per invoice including the payment state.
func (s *ExportService) InvoicesXLSX(invoices []models.Invoice) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	const sheet = "Invoices"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Number", "Status", "Customer", "Booking", "Subtotal", "Tax", "Total", "Paid", "Pending", "Created"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	for r, inv := range invoices {
		row := r + 2
		values := []interface{}{
			inv.Number, inv.Status, inv.Customer.Name, inv.BookingType,
			inv.Subtotal, inv.TaxAmount, inv.TotalAmount,
			inv.PaidAmount, inv.PendingAmount,
			inv.CreatedAt.Format("2006-01-02"),
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, row)
			f.SetCellValue(sheet, cell, v)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("xlsx export: %w", err)
	}
	return buf.Bytes(), nil
}
