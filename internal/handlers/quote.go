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

type QuoteHandler struct {
	DB      *gorm.DB
	Pricing *services.PricingService
	Numbers *services.NumberService
	Export  *services.ExportService
}

func NewQuoteHandler(db *gorm.DB, pricing *services.PricingService, numbers *services.NumberService, export *services.ExportService) *QuoteHandler {
	return &QuoteHandler{DB: db, Pricing: pricing, Numbers: numbers, Export: export}
}

// List: GET /quotes
func (h *QuoteHandler) List(w http.ResponseWriter, r *http.Request) {
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
		dbq = dbq.Joins("JOIN customers ON customers.id = quotes.customer_id").
			Where("lower(customers.name) LIKE ? OR lower(quotes.number) LIKE ?", like, like)
	}
	var total int64
	dbq.Model(&models.Quote{}).Count(&total)
	var quotes []models.Quote
	if err := dbq.Preload("Customer").Preload("Items.Product.Category").
		Order("quotes.id desc").Limit(limit).Offset(offset).Find(&quotes).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_quotes", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": quotes, "total": total, "limit": limit, "offset": offset})
}

type quoteItemReq struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type quoteCreateReq struct {
	CustomerID     uint           `json:"customer_id"`
	BookingType    string         `json:"booking_type"`
	Items          []quoteItemReq `json:"items"`
	DiscountAmount float64        `json:"discount_amount"`
	CouponCode     string         `json:"coupon_code"`
	CouponDiscount float64        `json:"coupon_discount"`
	TaxPercent     float64        `json:"tax_percent"`
	PaymentType    string         `json:"payment_type"`
	Notes          string         `json:"notes"`

	EventType    string `json:"event_type"`
	EventDate    string `json:"event_date"` // 2006-01-02
	EventTime    string `json:"event_time"`
	DeliveryDate string `json:"delivery_date"`
	DeliveryTime string `json:"delivery_time"`
	ReturnDate   string `json:"return_date"`
	ReturnTime   string `json:"return_time"`
	VenueName    string `json:"venue_name"`
	VenueAddress string `json:"venue_address"`

	GroomName     string `json:"groom_name"`
	GroomWhatsApp string `json:"groom_whatsapp"`
	GroomAddress  string `json:"groom_address"`
	BrideName     string `json:"bride_name"`
	BrideWhatsApp string `json:"bride_whatsapp"`
	BrideAddress  string `json:"bride_address"`
}

// Create: POST /quotes. Snapshots unit prices and deposits at creation time.
func (h *QuoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	fr, ok := currentFranchise(h.DB, r)
	if !ok {
		httpx.JSONError(w, http.StatusForbidden, "no_franchise", nil)
		return
	}
	var req quoteCreateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if req.CustomerID == 0 || len(req.Items) == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"customer_id": "required", "items": "required"})
		return
	}
	if req.BookingType == "" {
		req.BookingType = "rental"
	}
	if req.BookingType != "rental" && req.BookingType != "sale" {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"booking_type": "rental_or_sale"})
		return
	}
	var customer models.Customer
	if err := h.DB.Where("id = ? AND franchise_id = ?", req.CustomerID, fr.ID).First(&customer).Error; err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_customer", nil)
		return
	}
	productIDs := make([]uint, 0, len(req.Items))
	for _, it := range req.Items {
		if it.ProductID == 0 || it.Quantity <= 0 {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"items": "invalid_product_or_quantity"})
			return
		}
		productIDs = append(productIDs, it.ProductID)
	}
	var products []models.Product
	if err := h.DB.Where("id IN ? AND franchise_id = ?", productIDs, fr.ID).Find(&products).Error; err != nil || len(products) != len(productIDs) {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_products", nil)
		return
	}
	prodByID := map[uint]models.Product{}
	for _, p := range products {
		prodByID[p.ID] = p
	}

	uid, _ := auth.UserIDFromContext(r.Context())
	q := models.Quote{
		Number:         h.Numbers.QuoteNumber(),
		Status:         "draft",
		FranchiseID:    fr.ID,
		CustomerID:     customer.ID,
		BookingType:    req.BookingType,
		DiscountAmount: req.DiscountAmount,
		CouponCode:     req.CouponCode,
		CouponDiscount: req.CouponDiscount,
		PaymentType:    req.PaymentType,
		Notes:          req.Notes,
		EventType:      req.EventType,
		EventTime:      req.EventTime,
		DeliveryTime:   req.DeliveryTime,
		ReturnTime:     req.ReturnTime,
		VenueName:      req.VenueName,
		VenueAddress:   req.VenueAddress,
		GroomName:      req.GroomName,
		GroomWhatsApp:  req.GroomWhatsApp,
		GroomAddress:   req.GroomAddress,
		BrideName:      req.BrideName,
		BrideWhatsApp:  req.BrideWhatsApp,
		BrideAddress:   req.BrideAddress,
		SalesStaffID:   uid,
	}
	q.EventDate = parseDate(req.EventDate)
	q.DeliveryDate = parseDate(req.DeliveryDate)
	q.ReturnDate = parseDate(req.ReturnDate)

	for _, it := range req.Items {
		p := prodByID[it.ProductID]
		unit := p.RentalPrice
		if req.BookingType == "sale" {
			unit = p.SalePrice
		}
		q.Items = append(q.Items, models.QuoteItem{
			ProductID: p.ID,
			Quantity:  it.Quantity,
			UnitPrice: unit,
			Deposit:   p.SecurityDeposit,
		})
	}
	h.Pricing.ComputeQuoteTotals(&q, req.TaxPercent)

	if err := h.DB.Create(&q).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_quote", nil)
		return
	}
	audit(h.DB, r, fr.ID, "Quote", q.ID, "create")
	httpx.JSON(w, http.StatusCreated, map[string]any{
		"id": q.ID, "number": q.Number, "status": q.Status,
		"subtotal": q.Subtotal, "tax": q.TaxAmount, "total": q.TotalAmount,
		"security_deposit": q.SecurityDeposit,
	})
}

// Send: POST /quotes/send?id=... (draft -> sent)
func (h *QuoteHandler) Send(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "send", []string{"draft"}, "sent")
}

// Accept: POST /quotes/accept?id=... (sent -> accepted)
func (h *QuoteHandler) Accept(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "accept", []string{"sent"}, "accepted")
}

// Reject: POST /quotes/reject?id=... (sent -> rejected)
func (h *QuoteHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "reject", []string{"sent"}, "rejected")
}

func (h *QuoteHandler) transition(w http.ResponseWriter, r *http.Request, action string, from []string, to string) {
	fr, ok := currentFranchise(h.DB, r)
	if !ok {
		httpx.JSONError(w, http.StatusForbidden, "no_franchise", nil)
		return
	}
	q, ok := h.loadQuote(w, fr.ID, queryID(r))
	if !ok {
		return
	}
	allowed := false
	for _, s := range from {
		if q.Status == s {
			allowed = true
			break
		}
	}
	if !allowed {
		httpx.JSONError(w, http.StatusConflict, "invalid_status_transition", map[string]string{"current": q.Status})
		return
	}
	if err := h.DB.Model(&q).Update("status", to).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_quote", nil)
		return
	}
	audit(h.DB, r, fr.ID, "Quote", q.ID, action)
	notify(h.DB, q.SalesStaffID, "Quote "+to, q.Number+" for "+q.Customer.Name+" is now "+to)
	httpx.JSON(w, http.StatusOK, map[string]string{"status": to})
}

// Convert: POST /quotes/convert?id=... Accepted quotes only. Copies the
// pricing snapshot onto a new invoice and marks the quote converted.
func (h *QuoteHandler) Convert(w http.ResponseWriter, r *http.Request) {
	fr, ok := currentFranchise(h.DB, r)
	if !ok {
		httpx.JSONError(w, http.StatusForbidden, "no_franchise", nil)
		return
	}
	q, ok := h.loadQuote(w, fr.ID, queryID(r))
	if !ok {
		return
	}
	if q.Status != "accepted" {
		httpx.JSONError(w, http.StatusConflict, "quote_not_accepted", map[string]string{"current": q.Status})
		return
	}
	inv := models.Invoice{
		Number:          h.Numbers.InvoiceNumber(),
		Status:          "final",
		FranchiseID:     fr.ID,
		CustomerID:      q.CustomerID,
		QuoteID:         q.ID,
		BookingType:     q.BookingType,
		Subtotal:        q.Subtotal,
		DiscountAmount:  q.DiscountAmount,
		CouponDiscount:  q.CouponDiscount,
		TaxAmount:       q.TaxAmount,
		TotalAmount:     q.TotalAmount,
		SecurityDeposit: q.SecurityDeposit,
		PendingAmount:   q.TotalAmount,
		PaymentType:     q.PaymentType,
	}
	for _, it := range q.Items {
		inv.Items = append(inv.Items, models.InvoiceItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Total:     it.Total,
			Deposit:   it.Deposit,
		})
	}
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&inv).Error; err != nil {
			return err
		}
		return tx.Model(&q).Updates(map[string]any{
			"status":                  "converted",
			"converted_to_invoice_id": inv.ID,
		}).Error
	})
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_convert_quote", nil)
		return
	}
	audit(h.DB, r, fr.ID, "Quote", q.ID, "convert")
	audit(h.DB, r, fr.ID, "Invoice", inv.ID, "create")
	notify(h.DB, q.SalesStaffID, "Quote converted", q.Number+" became invoice "+inv.Number)
	httpx.JSON(w, http.StatusCreated, map[string]any{"invoice_id": inv.ID, "number": inv.Number, "pending": inv.PendingAmount})
}

// PDF: GET /quotes/pdf?id=...&layout=quote|professional
func (h *QuoteHandler) PDF(w http.ResponseWriter, r *http.Request) {
	fr, ok := currentFranchise(h.DB, r)
	if !ok {
		httpx.JSONError(w, http.StatusForbidden, "no_franchise", nil)
		return
	}
	q, ok := h.loadQuote(w, fr.ID, queryID(r))
	if !ok {
		return
	}
	in := services.BuildQuoteInput(q)
	co := services.ResolveCompany(fr)

	var data []byte
	var err error
	switch r.URL.Query().Get("layout") {
	case "", "quote":
		in.Company = co
		data, err = pdf.GenerateQuotePDF(in)
	case "professional":
		data, err = pdf.GenerateProfessionalPDF(in, co)
	default:
		httpx.JSONError(w, http.StatusBadRequest, "invalid_layout", map[string]string{"layout": "quote_or_professional"})
		return
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "pdf_generation_failed", nil)
		return
	}
	h.recordDocument(r, fr.ID, "Quote", q.ID, q.Number+".pdf", "application/pdf", len(data))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\""+q.Number+".pdf\"")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// ExportXLSX: GET /quotes/export
func (h *QuoteHandler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	fr, ok := currentFranchise(h.DB, r)
	if !ok {
		httpx.JSONError(w, http.StatusForbidden, "no_franchise", nil)
		return
	}
	var quotes []models.Quote
	if err := h.DB.Where("franchise_id = ?", fr.ID).Preload("Customer").Order("id desc").Find(&quotes).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_quotes", nil)
		return
	}
	data, err := h.Export.QuotesXLSX(quotes)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "export_failed", nil)
		return
	}
	name := "quotes-" + time.Now().Format("20060102") + ".xlsx"
	h.recordDocument(r, fr.ID, "Quote", 0, name, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", len(data))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=\""+name+"\"")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *QuoteHandler) loadQuote(w http.ResponseWriter, franchiseID, id uint) (models.Quote, bool) {
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return models.Quote{}, false
	}
	var q models.Quote
	err := h.DB.Where("id = ? AND franchise_id = ?", id, franchiseID).
		Preload("Customer").Preload("Items.Product.Category").First(&q).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return models.Quote{}, false
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_quote", nil)
		return models.Quote{}, false
	}
	return q, true
}

func (h *QuoteHandler) recordDocument(r *http.Request, franchiseID uint, ownerType string, ownerID uint, name, mime string, size int) {
	uid, _ := auth.UserIDFromContext(r.Context())
	doc := models.Document{
		FranchiseID: franchiseID,
		OwnerType:   ownerType,
		OwnerID:     ownerID,
		Type:        docType(mime),
		Name:        name,
		MimeType:    mime,
		SizeBytes:   int64(size),
		GeneratedBy: uid,
	}
	_ = h.DB.Create(&doc).Error
}

func docType(mime string) string {
	switch mime {
	case "application/pdf":
		return "pdf"
	case "image/png":
		return "barcode"
	default:
		return "xlsx"
	}
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}
