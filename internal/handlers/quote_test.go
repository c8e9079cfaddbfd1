package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/safawala/backoffice/internal/models"
	"github.com/safawala/backoffice/internal/services"
)

func newQuoteHandler(t *testing.T) (*QuoteHandler, *InvoiceHandler, models.User, models.Franchise, models.Customer, models.Product) {
	t.Helper()
	conn := setupTestDB(t)
	user, fr := seedTenant(t, conn)
	cu := seedCustomer(t, conn, fr.ID)
	p := seedProduct(t, conn, fr.ID)
	numbers, err := services.NewNumberService()
	if err != nil {
		t.Fatalf("numbers: %v", err)
	}
	pricing := services.NewPricingService()
	export := services.NewExportService()
	qh := NewQuoteHandler(conn, pricing, numbers, export)
	ih := NewInvoiceHandler(conn, pricing, export)
	return qh, ih, user, fr, cu, p
}

func createQuote(t *testing.T, qh *QuoteHandler, user models.User, cu models.Customer, p models.Product) uint {
	t.Helper()
	body := fmt.Sprintf(`{
		"customer_id": %d,
		"booking_type": "rental",
		"tax_percent": 5,
		"event_type": "wedding",
		"event_date": "2026-05-14",
		"items": [{"product_id": %d, "quantity": 2}]
	}`, cu.ID, p.ID)
	req := asUser(httptest.NewRequest(http.MethodPost, "/quotes", strings.NewReader(body)), user.ID)
	w := httptest.NewRecorder()
	qh.Create(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("create quote: expected 201 got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		ID       uint    `json:"id"`
		Subtotal float64 `json:"subtotal"`
		Tax      float64 `json:"tax"`
		Total    float64 `json:"total"`
		Deposit  float64 `json:"security_deposit"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Subtotal != 1000 || resp.Tax != 50 || resp.Total != 1050 {
		t.Fatalf("totals = %+v, want 1000/50/1050", resp)
	}
	if resp.Deposit != 400 {
		t.Fatalf("deposit = %v, want 400", resp.Deposit)
	}
	return resp.ID
}

func postAction(t *testing.T, h http.HandlerFunc, path string, id uint, userID uint) *httptest.ResponseRecorder {
	t.Helper()
	req := asUser(httptest.NewRequest(http.MethodPost, fmt.Sprintf("%s?id=%d", path, id), nil), userID)
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func TestQuoteLifecycle(t *testing.T) {
	qh, ih, user, _, cu, p := newQuoteHandler(t)
	quoteID := createQuote(t, qh, user, cu, p)

	// Converting a draft must fail.
	if w := postAction(t, qh.Convert, "/quotes/convert", quoteID, user.ID); w.Code != http.StatusConflict {
		t.Fatalf("convert draft: expected 409 got %d", w.Code)
	}
	if w := postAction(t, qh.Send, "/quotes/send", quoteID, user.ID); w.Code != http.StatusOK {
		t.Fatalf("send: expected 200 got %d: %s", w.Code, w.Body.String())
	}
	// Re-sending is rejected.
	if w := postAction(t, qh.Send, "/quotes/send", quoteID, user.ID); w.Code != http.StatusConflict {
		t.Fatalf("resend: expected 409 got %d", w.Code)
	}
	if w := postAction(t, qh.Accept, "/quotes/accept", quoteID, user.ID); w.Code != http.StatusOK {
		t.Fatalf("accept: expected 200 got %d", w.Code)
	}

	w := postAction(t, qh.Convert, "/quotes/convert", quoteID, user.ID)
	if w.Code != http.StatusCreated {
		t.Fatalf("convert: expected 201 got %d: %s", w.Code, w.Body.String())
	}
	var conv struct {
		InvoiceID uint    `json:"invoice_id"`
		Pending   float64 `json:"pending"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &conv); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if conv.Pending != 1050 {
		t.Fatalf("pending after convert = %v, want 1050", conv.Pending)
	}

	// Quote is now converted; converting again must fail.
	if w := postAction(t, qh.Convert, "/quotes/convert", quoteID, user.ID); w.Code != http.StatusConflict {
		t.Fatalf("double convert: expected 409 got %d", w.Code)
	}

	var q models.Quote
	if err := qh.DB.First(&q, quoteID).Error; err != nil {
		t.Fatalf("reload quote: %v", err)
	}
	if q.Status != "converted" || q.ConvertedToInvoiceID != conv.InvoiceID {
		t.Fatalf("quote after convert: status=%s invoice=%d", q.Status, q.ConvertedToInvoiceID)
	}

	// Record an advance, then check overpayment rejection.
	payBody := `{"amount": 500, "method": "upi", "type": "advance"}`
	req := asUser(httptest.NewRequest(http.MethodPost, fmt.Sprintf("/invoices/payments?id=%d", conv.InvoiceID), strings.NewReader(payBody)), user.ID)
	wp := httptest.NewRecorder()
	ih.Payments(wp, req)
	if wp.Code != http.StatusCreated {
		t.Fatalf("payment: expected 201 got %d: %s", wp.Code, wp.Body.String())
	}
	var pay struct {
		Paid    float64 `json:"paid"`
		Pending float64 `json:"pending"`
	}
	if err := json.Unmarshal(wp.Body.Bytes(), &pay); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if pay.Paid != 500 || pay.Pending != 550 {
		t.Fatalf("payment state = %+v, want paid 500 pending 550", pay)
	}

	overBody := `{"amount": 600, "method": "cash"}`
	req = asUser(httptest.NewRequest(http.MethodPost, fmt.Sprintf("/invoices/payments?id=%d", conv.InvoiceID), strings.NewReader(overBody)), user.ID)
	wo := httptest.NewRecorder()
	ih.Payments(wo, req)
	if wo.Code != http.StatusBadRequest {
		t.Fatalf("overpayment: expected 400 got %d: %s", wo.Code, wo.Body.String())
	}

	// Settle the rest; invoice flips to paid.
	settleBody := `{"amount": 550, "method": "card", "type": "settlement"}`
	req = asUser(httptest.NewRequest(http.MethodPost, fmt.Sprintf("/invoices/payments?id=%d", conv.InvoiceID), strings.NewReader(settleBody)), user.ID)
	ws := httptest.NewRecorder()
	ih.Payments(ws, req)
	if ws.Code != http.StatusCreated {
		t.Fatalf("settlement: expected 201 got %d: %s", ws.Code, ws.Body.String())
	}
	var inv models.Invoice
	if err := ih.DB.First(&inv, conv.InvoiceID).Error; err != nil {
		t.Fatalf("reload invoice: %v", err)
	}
	if inv.Status != "paid" || inv.PendingAmount != 0 {
		t.Fatalf("invoice after settlement: status=%s pending=%v", inv.Status, inv.PendingAmount)
	}
}

func TestQuotePDFLayouts(t *testing.T) {
	qh, _, user, _, cu, p := newQuoteHandler(t)
	quoteID := createQuote(t, qh, user, cu, p)

	for _, layout := range []string{"", "quote", "professional"} {
		url := fmt.Sprintf("/quotes/pdf?id=%d", quoteID)
		if layout != "" {
			url += "&layout=" + layout
		}
		req := asUser(httptest.NewRequest(http.MethodGet, url, nil), user.ID)
		w := httptest.NewRecorder()
		qh.PDF(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("layout %q: expected 200 got %d: %s", layout, w.Code, w.Body.String())
		}
		if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
			t.Fatalf("layout %q: content type %q", layout, ct)
		}
		if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")) {
			t.Fatalf("layout %q: body is not a PDF", layout)
		}
		if !bytes.Contains(w.Body.Bytes(), []byte("Baapu boy")) {
			t.Fatalf("layout %q: customer name missing", layout)
		}
	}

	req := asUser(httptest.NewRequest(http.MethodGet, fmt.Sprintf("/quotes/pdf?id=%d&layout=fancy", quoteID), nil), user.ID)
	w := httptest.NewRecorder()
	qh.PDF(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unknown layout: expected 400 got %d", w.Code)
	}

	// A Document row is recorded per generated PDF.
	var docs int64
	qh.DB.Model(&models.Document{}).Where("owner_type = ?", "Quote").Count(&docs)
	if docs != 3 {
		t.Fatalf("document records = %d, want 3", docs)
	}
}

func TestQuoteListScopedToFranchise(t *testing.T) {
	qh, _, user, _, cu, p := newQuoteHandler(t)
	createQuote(t, qh, user, cu, p)

	// A second tenant must not see the first tenant's quotes.
	other := models.User{Email: "other@test", Password: "x"}
	if err := qh.DB.Create(&other).Error; err != nil {
		t.Fatalf("other user: %v", err)
	}
	otherFr := models.Franchise{Name: "Safawala Pune", Code: "PUN01", OwnerUserID: other.ID}
	if err := qh.DB.Create(&otherFr).Error; err != nil {
		t.Fatalf("other franchise: %v", err)
	}

	req := asUser(httptest.NewRequest(http.MethodGet, "/quotes", nil), user.ID)
	w := httptest.NewRecorder()
	qh.List(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("list: expected 200 got %d", w.Code)
	}
	var payload struct {
		Total int64 `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Total != 1 {
		t.Fatalf("own tenant total = %d, want 1", payload.Total)
	}

	req = asUser(httptest.NewRequest(http.MethodGet, "/quotes", nil), other.ID)
	w = httptest.NewRecorder()
	qh.List(w, req)
	var otherPayload struct {
		Total int64 `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &otherPayload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if otherPayload.Total != 0 {
		t.Fatalf("other tenant total = %d, want 0", otherPayload.Total)
	}
}

func TestQuoteTransitionsNotifySalesStaff(t *testing.T) {
	qh, _, user, _, cu, p := newQuoteHandler(t)
	quoteID := createQuote(t, qh, user, cu, p)

	if w := postAction(t, qh.Send, "/quotes/send", quoteID, user.ID); w.Code != http.StatusOK {
		t.Fatalf("send: expected 200 got %d", w.Code)
	}
	var count int64
	qh.DB.Model(&models.Notification{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 1 {
		t.Fatalf("notifications after send = %d, want 1", count)
	}
	var n models.Notification
	if err := qh.DB.Where("user_id = ?", user.ID).First(&n).Error; err != nil {
		t.Fatalf("load notification: %v", err)
	}
	if n.Title != "Quote sent" || n.Type != "dashboard" {
		t.Fatalf("notification = %+v", n)
	}

	if w := postAction(t, qh.Accept, "/quotes/accept", quoteID, user.ID); w.Code != http.StatusOK {
		t.Fatalf("accept: expected 200 got %d", w.Code)
	}
	if w := postAction(t, qh.Convert, "/quotes/convert", quoteID, user.ID); w.Code != http.StatusCreated {
		t.Fatalf("convert: expected 201 got %d", w.Code)
	}
	qh.DB.Model(&models.Notification{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 3 {
		t.Fatalf("notifications after convert = %d, want 3", count)
	}
}

func TestInvoicePDFRecordsDocumentWithUser(t *testing.T) {
	qh, ih, user, _, cu, p := newQuoteHandler(t)
	quoteID := createQuote(t, qh, user, cu, p)

	postAction(t, qh.Send, "/quotes/send", quoteID, user.ID)
	postAction(t, qh.Accept, "/quotes/accept", quoteID, user.ID)
	w := postAction(t, qh.Convert, "/quotes/convert", quoteID, user.ID)
	if w.Code != http.StatusCreated {
		t.Fatalf("convert: expected 201 got %d: %s", w.Code, w.Body.String())
	}
	var conv struct {
		InvoiceID uint `json:"invoice_id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &conv); err != nil {
		t.Fatalf("decode: %v", err)
	}

	req := asUser(httptest.NewRequest(http.MethodGet, fmt.Sprintf("/invoices/pdf?id=%d", conv.InvoiceID), nil), user.ID)
	wp := httptest.NewRecorder()
	ih.PDF(wp, req)
	if wp.Code != http.StatusOK {
		t.Fatalf("pdf: expected 200 got %d: %s", wp.Code, wp.Body.String())
	}
	if !bytes.HasPrefix(wp.Body.Bytes(), []byte("%PDF")) {
		t.Fatal("body is not a PDF")
	}

	var doc models.Document
	err := ih.DB.Where("owner_type = ? AND owner_id = ?", "Invoice", conv.InvoiceID).First(&doc).Error
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	if doc.GeneratedBy != user.ID {
		t.Fatalf("document generated_by = %d, want %d", doc.GeneratedBy, user.ID)
	}
}

func TestQuoteExportXLSX(t *testing.T) {
	qh, _, user, _, cu, p := newQuoteHandler(t)
	createQuote(t, qh, user, cu, p)

	req := asUser(httptest.NewRequest(http.MethodGet, "/quotes/export", nil), user.ID)
	w := httptest.NewRecorder()
	qh.ExportXLSX(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("export: expected 200 got %d: %s", w.Code, w.Body.String())
	}
	// xlsx is a zip container.
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("PK")) {
		t.Fatal("export body is not an xlsx archive")
	}
}
