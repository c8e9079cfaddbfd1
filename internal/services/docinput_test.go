package services

import (
	"bytes"
	"testing"
	"time"

	"github.com/safawala/backoffice/internal/models"
	"github.com/safawala/backoffice/internal/pdf"
)

func TestBuildQuoteInput(t *testing.T) {
	eventDate := time.Date(2026, 5, 14, 0, 0, 0, 0, time.UTC)
	q := models.Quote{
		Number:      "QT-1001",
		Status:      "sent",
		BookingType: "rental",
		EventType:   "wedding",
		EventDate:   &eventDate,
		EventTime:   "18:00",
		GroomName:   "Aman",
		Subtotal:    1000,
		TaxAmount:   50,
		TotalAmount: 1050,
		Customer:    models.Customer{Name: "Baapu boy", Phone: "9876543210"},
		Items: []models.QuoteItem{
			{
				Quantity:  2,
				UnitPrice: 500,
				Total:     1000,
				Deposit:   200,
				Product: models.Product{
					Name:     "Sherwani Classic",
					Category: models.ProductCategory{Name: "Sherwani"},
				},
			},
		},
	}
	in := BuildQuoteInput(q)
	if in.Kind != pdf.KindQuotation || in.Number != "QT-1001" {
		t.Fatalf("header = %s %s", in.Kind, in.Number)
	}
	if in.Event.Date != "2026-05-14" || in.Event.Time != "18:00" {
		t.Fatalf("event = %+v", in.Event)
	}
	if in.Event.Groom.Name != "Aman" {
		t.Fatalf("groom = %+v", in.Event.Groom)
	}
	if len(in.Items) != 1 || in.Items[0].Name != "Sherwani Classic" || in.Items[0].SecurityDeposit != 200 {
		t.Fatalf("items = %+v", in.Items)
	}
	if in.Pricing.TotalAmount != 1050 {
		t.Fatalf("pricing = %+v", in.Pricing)
	}
	// Nil dates map to empty strings so the renderer skips the rows.
	if in.Event.DeliveryDate != "" {
		t.Fatalf("delivery date = %q, want empty", in.Event.DeliveryDate)
	}
}

func TestBuildInvoiceInputPaymentState(t *testing.T) {
	inv := models.Invoice{
		Number:        "INV-2001",
		Status:        "final",
		BookingType:   "rental",
		TotalAmount:   1050,
		PaidAmount:    500,
		PendingAmount: 550,
	}
	in := BuildInvoiceInput(inv)
	if in.Kind != pdf.KindInvoice {
		t.Fatalf("kind = %s", in.Kind)
	}
	if in.Pricing.PaidAmount != 500 || in.Pricing.PendingAmount != 550 {
		t.Fatalf("payment state = %+v", in.Pricing)
	}
}

func TestLoadLogoMissing(t *testing.T) {
	if got := LoadLogo(""); got != nil {
		t.Fatalf("empty ref: %v", got)
	}
	if got := LoadLogo("/nonexistent/logo.png"); got != nil {
		t.Fatalf("missing file: %v", got)
	}
}

func TestResolveCompany(t *testing.T) {
	fr := models.Franchise{
		Name:           "Safawala Mumbai",
		Phone:          "022-12345678",
		Address:        "12 MG Road",
		City:           "Mumbai",
		State:          "Maharashtra",
		Pincode:        "400001",
		PrimaryColor:   "#112233",
		SecondaryColor: "#445566",
	}
	co := ResolveCompany(fr)
	if co.Name != "Safawala Mumbai" || co.PrimaryColor != "#112233" {
		t.Fatalf("company = %+v", co)
	}
	if co.Address != "12 MG Road, Mumbai, Maharashtra, 400001" {
		t.Fatalf("address = %q", co.Address)
	}
}

func TestQuotesXLSX(t *testing.T) {
	s := NewExportService()
	data, err := s.QuotesXLSX([]models.Quote{
		{Number: "QT-1", Status: "sent", TotalAmount: 1050, Customer: models.Customer{Name: "Baapu boy"}},
	})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Fatal("not an xlsx archive")
	}
}
