package pdf

import (
	"bytes"
	"fmt"
	"testing"
	"time"
)

// sampleInput is a complete rental quotation: one item at 500 x 2, 5% GST,
// an advance of 500 already collected.
func sampleInput() DocumentInput {
	return DocumentInput{
		Kind:        KindQuotation,
		Number:      "QT-1001",
		Status:      "sent",
		BookingType: "rental",
		IssuedAt:    time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC),
		Customer: CustomerInfo{
			Name:    "Baapu boy",
			Phone:   "9876543210",
			Address: "12 MG Road",
			City:    "Mumbai",
			State:   "Maharashtra",
			Pincode: "400001",
		},
		Event: EventInfo{
			Type:      "wedding",
			Date:      "2026-05-14",
			Time:      "18:00",
			VenueName: "Grand Palace",
		},
		Items: []LineItem{
			{Name: "Sherwani Classic", Category: "sherwani", Quantity: 2, UnitPrice: 500, Total: 1000, SecurityDeposit: 200},
		},
		Pricing: Pricing{
			Subtotal:      1000,
			TaxAmount:     50,
			TaxPercent:    5,
			TotalAmount:   1050,
			PaidAmount:    500,
			PendingAmount: 550,
		},
	}
}

func mustContain(t *testing.T, blob []byte, wants ...string) {
	t.Helper()
	for _, w := range wants {
		if !bytes.Contains(blob, []byte(w)) {
			t.Fatalf("document does not contain %q", w)
		}
	}
}

func TestGenerateQuotePDFScenario(t *testing.T) {
	blob, err := GenerateQuotePDF(sampleInput())
	if err != nil {
		t.Fatalf("GenerateQuotePDF: %v", err)
	}
	if len(blob) == 0 || !bytes.HasPrefix(blob, []byte("%PDF")) {
		t.Fatalf("not a PDF document (%d bytes)", len(blob))
	}
	// Compression is off, so the content streams are inspectable directly.
	mustContain(t, blob,
		"QUOTATION",
		"Baapu boy",
		"Subtotal:",
		"1,000.00",
		"GST",
		"Total Amount:",
		"1,050.00",
		"Amount Paid:",
		"500.00",
		"Amount Pending:",
		"550.00",
	)
}

func TestGenerateQuotePDFDeterministic(t *testing.T) {
	in := sampleInput()
	a, err := GenerateQuotePDF(in)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	b, err := GenerateQuotePDF(in)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Fatal("identical inputs produced different documents")
	}
}

func TestGenerateQuotePDFBadLogoIsNonFatal(t *testing.T) {
	in := sampleInput()
	in.Company.Logo = []byte("definitely not an image")
	blob, err := GenerateQuotePDF(in)
	if err != nil {
		t.Fatalf("bad logo failed the document: %v", err)
	}
	if !bytes.HasPrefix(blob, []byte("%PDF")) {
		t.Fatal("output is not a PDF")
	}
}

func TestGenerateQuotePDFLongItemList(t *testing.T) {
	in := sampleInput()
	in.Items = nil
	for i := 0; i < 120; i++ {
		in.Items = append(in.Items, LineItem{
			Name:      fmt.Sprintf("Sherwani %03d", i),
			Category:  "sherwani",
			Quantity:  1,
			UnitPrice: 500,
			Total:     500,
		})
	}
	blob, err := GenerateQuotePDF(in)
	if err != nil {
		t.Fatalf("GenerateQuotePDF: %v", err)
	}
	// 120 rows cannot fit one page; the column header must repeat on the
	// continuation page.
	if n := bytes.Count(blob, []byte("(Item)")); n < 2 {
		t.Fatalf("header row rendered %d time(s), want repeat after page break", n)
	}
	if n := bytes.Count(blob, []byte("/Page\n")); n < 2 {
		t.Fatalf("expected multiple pages, found %d", n)
	}
}

func TestGenerateProfessionalPDF(t *testing.T) {
	co := CompanyInfo{
		Name:           "Safawala Mumbai",
		Phone:          "022-12345678",
		Email:          "mumbai@safawala.in",
		PrimaryColor:   "#1b5e20",
		SecondaryColor: "#4caf50",
	}
	in := sampleInput()
	in.Customer.Email = "" // grid still prints the row
	blob, err := GenerateProfessionalPDF(in, co)
	if err != nil {
		t.Fatalf("GenerateProfessionalPDF: %v", err)
	}
	mustContain(t, blob,
		"Safawala Mumbai",
		"Quote # QT-1001",
		"Email: N/A",
		"Delivery: N/A",
		"1,050.00",
	)
}

func TestGenerateProfessionalPDFInvoiceLabel(t *testing.T) {
	in := sampleInput()
	in.Kind = KindInvoice
	in.Number = "INV-2001"
	blob, err := GenerateProfessionalPDF(in, CompanyInfo{})
	if err != nil {
		t.Fatalf("GenerateProfessionalPDF: %v", err)
	}
	mustContain(t, blob, "Invoice # INV-2001")
}

func TestGenerateProfessionalPDFSaleHidesRentalRows(t *testing.T) {
	in := sampleInput()
	in.BookingType = "sale"
	blob, err := GenerateProfessionalPDF(in, CompanyInfo{})
	if err != nil {
		t.Fatalf("GenerateProfessionalPDF: %v", err)
	}
	if bytes.Contains(blob, []byte("Delivery:")) {
		t.Fatal("sale document printed rental delivery row")
	}
}

func TestEnsureSpacePageBreak(t *testing.T) {
	d := newDoc(DefaultConfig())
	d.addPage()

	y := d.bottom() - 5
	got := d.ensureSpace(y, 40)
	if got != d.cfg.Margin {
		t.Fatalf("cursor after break = %v, want top margin %v", got, d.cfg.Margin)
	}
	if d.f.PageNo() != 2 {
		t.Fatalf("page count = %d, want 2", d.f.PageNo())
	}

	// Enough room left: no break, cursor untouched.
	if got := d.ensureSpace(d.cfg.Margin, 40); got != d.cfg.Margin {
		t.Fatalf("cursor moved without a break: %v", got)
	}
	if d.f.PageNo() != 2 {
		t.Fatalf("spurious page break, page count = %d", d.f.PageNo())
	}
}

func TestRenderContactSkipsUnnamed(t *testing.T) {
	d := newDoc(DefaultConfig())
	d.addPage()

	y := 100.0
	if got := renderContact(d, y, "Groom", Contact{WhatsApp: "9999999999"}); got != y {
		t.Fatalf("unnamed contact moved the cursor: %v -> %v", y, got)
	}
	if got := renderContact(d, y, "Groom", Contact{Name: "Aman"}); got <= y {
		t.Fatalf("named contact did not advance the cursor: %v -> %v", y, got)
	}
}

func TestRenderEventDetailsSkipsAbsentFields(t *testing.T) {
	full := EventInfo{Type: "wedding", Date: "2026-05-14", VenueName: "Grand Palace"}
	sparse := EventInfo{Type: "wedding"}

	d1 := newDoc(DefaultConfig())
	d1.addPage()
	d2 := newDoc(DefaultConfig())
	d2.addPage()

	yFull := renderEventDetails(d1, 50, full)
	ySparse := renderEventDetails(d2, 50, sparse)
	if ySparse >= yFull {
		t.Fatalf("sparse block not shorter: sparse=%v full=%v", ySparse, yFull)
	}
	// Exactly two optional lines fewer.
	if diff := yFull - ySparse; diff != 2*d1.cfg.LineHeight {
		t.Fatalf("cursor delta = %v, want %v", diff, 2*d1.cfg.LineHeight)
	}
}

func TestSanitizeDefaults(t *testing.T) {
	in := DocumentInput{}
	in.Sanitize()
	if in.Kind != KindQuotation {
		t.Fatalf("Kind = %q", in.Kind)
	}
	if in.BookingType != "rental" {
		t.Fatalf("BookingType = %q", in.BookingType)
	}
	if in.Customer.Name != "Customer" || in.Customer.Phone != "N/A" {
		t.Fatalf("customer defaults = %+v", in.Customer)
	}
	if in.Customer.Address != "Address not provided" {
		t.Fatalf("address default = %q", in.Customer.Address)
	}
	if in.Company.Name != "SAFAWALA" || in.Company.PrimaryColor != "#1b5e20" {
		t.Fatalf("company defaults = %+v", in.Company)
	}
}

func TestHexToRGB(t *testing.T) {
	if got := HexToRGB("#ffffff"); got != (RGB{255, 255, 255}) {
		t.Fatalf("white: %+v", got)
	}
	if got := HexToRGB("1b5e20"); got != (RGB{27, 94, 32}) {
		t.Fatalf("no hash: %+v", got)
	}
	// Malformed input falls back to the default green.
	if got := HexToRGB("nope"); got != (RGB{27, 94, 32}) {
		t.Fatalf("malformed: %+v", got)
	}
}
