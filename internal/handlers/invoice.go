package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/safawala/backoffice/internal/auth"
	"github.com/safawala/backoffice/internal/httpx"
	"github.com/safawala/backoffice/internal/models"
	"github.com/safawala/backoffice/internal/pdf"
	"github.com/safawala/backoffice/internal/services"
)

type InvoiceHandler struct {
	DB      *gorm.DB
	Pricing *services.PricingService
	Export  *services.ExportService
}

func NewInvoiceHandler(db *gorm.DB, pricing *services.PricingService, export *services.ExportService) *InvoiceHandler {
	return &InvoiceHandler{DB: db, Pricing: pricing, Export: export}
}

// List: GET /invoices
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	fr, ok := currentFranchise(h.DB, r)
	if !ok {
		httpx.JSONError(w, http.StatusForbidden, "no_franchise", nil)
		return
	}
	limit, offset := pagination(r)
	dbq := h.DB.Where("franchise_id = ?", fr.ID)
	if s := r.URL.Query().Get("status"); s != "" {
		dbq = dbq.Where("status = ?", s)
	}
	if like := searchTerm(r); like != "" {
		dbq = dbq.Joins("JOIN customers ON customers.id = invoices.customer_id").
			Where("lower(customers.name) LIKE ? OR lower(invoices.number) LIKE ?", like, like)
	}
	var total int64
	dbq.Model(&models.Invoice{}).Count(&total)
	var invoices []models.Invoice
	if err := dbq.Preload("Customer").Preload("Items.Product.Category").
		Order("invoices.id desc").Limit(limit).Offset(offset).Find(&invoices).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_invoices", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": invoices, "total": total, "limit": limit, "offset": offset})
}

// PDF: GET /invoices/pdf?id=... Invoices always use the compact
// professional layout.
func (h *InvoiceHandler) PDF(w http.ResponseWriter, r *http.Request) {
	fr, ok := currentFranchise(h.DB, r)
	if !ok {
		httpx.JSONError(w, http.StatusForbidden, "no_franchise", nil)
		return
	}
	inv, ok := h.loadInvoice(w, fr.ID, queryID(r))
	if !ok {
		return
	}
	in := services.BuildInvoiceInput(inv)
	data, err := pdf.GenerateProfessionalPDF(in, services.ResolveCompany(fr))
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "pdf_generation_failed", nil)
		return
	}
	h.recordDocument(r, fr.ID, inv.ID, inv.Number+".pdf", "application/pdf", len(data))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\""+inv.Number+".pdf\"")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// Payments: GET lists recorded payments, POST records one. Overpayment is
// rejected; pending is always total minus the sum of payments.
func (h *InvoiceHandler) Payments(w http.ResponseWriter, r *http.Request) {
	fr, ok := currentFranchise(h.DB, r)
	if !ok {
		httpx.JSONError(w, http.StatusForbidden, "no_franchise", nil)
		return
	}
	inv, ok := h.loadInvoice(w, fr.ID, queryID(r))
	if !ok {
		return
	}
	switch r.Method {
	case http.MethodGet:
		var payments []models.Payment
		if err := h.DB.Where("invoice_id = ?", inv.ID).Order("date asc").Find(&payments).Error; err != nil {
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_payments", nil)
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]any{"items": payments, "paid": inv.PaidAmount, "pending": inv.PendingAmount})
	case http.MethodPost:
		h.recordPayment(w, r, fr.ID, inv)
	default:
		w.Header().Set("Allow", "GET,POST")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
	}
}

func (h *InvoiceHandler) recordPayment(w http.ResponseWriter, r *http.Request, franchiseID uint, inv models.Invoice) {
	var req struct {
		Amount    float64 `json:"amount"`
		Method    string  `json:"method"`
		Type      string  `json:"type"`
		Reference string  `json:"reference"`
		Date      string  `json:"date"` // 2006-01-02, defaults to today
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if req.Amount <= 0 {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"amount": "must_be_positive"})
		return
	}
	if req.Type == "" {
		req.Type = "settlement"
	}
	if req.Type != "deposit_refund" && req.Amount > inv.PendingAmount {
		httpx.JSONError(w, http.StatusBadRequest, "overpayment", map[string]any{"pending": inv.PendingAmount})
		return
	}
	switch req.Method {
	case "upi", "card", "cash", "bank_transfer":
	default:
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"method": "upi_card_cash_or_bank_transfer"})
		return
	}
	date := time.Now()
	if req.Date != "" {
		if t, err := time.Parse("2006-01-02", req.Date); err == nil {
			date = t
		}
	}
	payment := models.Payment{
		InvoiceID: inv.ID,
		Date:      date,
		Amount:    req.Amount,
		Method:    req.Method,
		Type:      req.Type,
		Reference: req.Reference,
	}
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}
		var payments []models.Payment
		if err := tx.Where("invoice_id = ?", inv.ID).Find(&payments).Error; err != nil {
			return err
		}
		h.Pricing.RecomputePaymentState(&inv, payments)
		return tx.Model(&models.Invoice{}).Where("id = ?", inv.ID).Updates(map[string]any{
			"paid_amount":    inv.PaidAmount,
			"pending_amount": inv.PendingAmount,
			"status":         inv.Status,
		}).Error
	})
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_record_payment", nil)
		return
	}
	audit(h.DB, r, franchiseID, "Payment", payment.ID, "create")
	httpx.JSON(w, http.StatusCreated, map[string]any{
		"id": payment.ID, "paid": inv.PaidAmount, "pending": inv.PendingAmount, "status": inv.Status,
	})
}

// ExportXLSX: GET /invoices/export
func (h *InvoiceHandler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	fr, ok := currentFranchise(h.DB, r)
	if !ok {
		httpx.JSONError(w, http.StatusForbidden, "no_franchise", nil)
		return
	}
	var invoices []models.Invoice
	if err := h.DB.Where("franchise_id = ?", fr.ID).Preload("Customer").Order("id desc").Find(&invoices).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_invoices", nil)
		return
	}
	data, err := h.Export.InvoicesXLSX(invoices)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "export_failed", nil)
		return
	}
	name := "invoices-" + time.Now().Format("20060102") + ".xlsx"
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=\""+name+"\"")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *InvoiceHandler) loadInvoice(w http.ResponseWriter, franchiseID, id uint) (models.Invoice, bool) {
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return models.Invoice{}, false
	}
	var inv models.Invoice
	err := h.DB.Where("id = ? AND franchise_id = ?", id, franchiseID).
		Preload("Customer").Preload("Items.Product.Category").First(&inv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return models.Invoice{}, false
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_invoice", nil)
		return models.Invoice{}, false
	}
	return inv, true
}

func (h *InvoiceHandler) recordDocument(r *http.Request, franchiseID, ownerID uint, name, mime string, size int) {
	uid, _ := auth.UserIDFromContext(r.Context())
	doc := models.Document{
		FranchiseID: franchiseID,
		OwnerType:   "Invoice",
		OwnerID:     ownerID,
		Type:        docType(mime),
		Name:        name,
		MimeType:    mime,
		SizeBytes:   int64(size),
		GeneratedBy: uid,
	}
	_ = h.DB.Create(&doc).Error
}
