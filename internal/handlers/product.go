package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/safawala/backoffice/internal/barcode"
	"github.com/safawala/backoffice/internal/httpx"
	"github.com/safawala/backoffice/internal/models"
)

type ProductHandler struct{ DB *gorm.DB }

func NewProductHandler(db *gorm.DB) *ProductHandler { return &ProductHandler{DB: db} }

type productReq struct {
	Code            string  `json:"code"`
	Name            string  `json:"name"`
	CategoryID      uint    `json:"category_id"`
	RentalPrice     float64 `json:"rental_price"`
	SalePrice       float64 `json:"sale_price"`
	SecurityDeposit float64 `json:"security_deposit"`
	StockQuantity   int     `json:"stock_quantity"`
	Description     string  `json:"description"`
}

// List: GET /products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	fr, ok := currentFranchise(h.DB, r)
	if !ok {
		httpx.JSONError(w, http.StatusForbidden, "no_franchise", nil)
		return
	}
	limit, offset := pagination(r)
	dbq := h.DB.Where("franchise_id = ?", fr.ID)
	if like := searchTerm(r); like != "" {
		dbq = dbq.Where("lower(name) LIKE ? OR lower(code) LIKE ?", like, like)
	}
	if v := r.URL.Query().Get("category_id"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			dbq = dbq.Where("category_id = ?", n)
		}
	}
	var total int64
	dbq.Model(&models.Product{}).Count(&total)
	var products []models.Product
	if err := dbq.Preload("Category").Order("id desc").Limit(limit).Offset(offset).Find(&products).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_products", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": products, "total": total, "limit": limit, "offset": offset})
}

// Create: POST /products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	fr, ok := currentFranchise(h.DB, r)
	if !ok {
		httpx.JSONError(w, http.StatusForbidden, "no_franchise", nil)
		return
	}
	var req productReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"name": "required"})
		return
	}
	if req.RentalPrice < 0 || req.SalePrice < 0 || req.SecurityDeposit < 0 {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"prices": "must_be_non_negative"})
		return
	}
	p := models.Product{
		FranchiseID:     fr.ID,
		Code:            strings.TrimSpace(req.Code),
		Name:            req.Name,
		CategoryID:      req.CategoryID,
		RentalPrice:     req.RentalPrice,
		SalePrice:       req.SalePrice,
		SecurityDeposit: req.SecurityDeposit,
		StockQuantity:   req.StockQuantity,
		Description:     req.Description,
	}
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&p).Error; err != nil {
			return err
		}
		if p.Code == "" {
			p.Code = fmt.Sprintf("PRD-%05d", p.ID)
			return tx.Model(&p).Update("code", p.Code).Error
		}
		return nil
	})
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_product", nil)
		return
	}
	audit(h.DB, r, fr.ID, "Product", p.ID, "create")
	httpx.JSON(w, http.StatusCreated, p)
}

// Update: POST /products/update?id=... Only fields present in the body
// change; omitted fields keep their stored values.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	fr, ok := currentFranchise(h.DB, r)
	if !ok {
		httpx.JSONError(w, http.StatusForbidden, "no_franchise", nil)
		return
	}
	id := queryID(r)
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var p models.Product
	if err := h.DB.Where("id = ? AND franchise_id = ?", id, fr.ID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_product", nil)
		return
	}
	var req struct {
		Code            *string  `json:"code"`
		Name            *string  `json:"name"`
		CategoryID      *uint    `json:"category_id"`
		RentalPrice     *float64 `json:"rental_price"`
		SalePrice       *float64 `json:"sale_price"`
		SecurityDeposit *float64 `json:"security_deposit"`
		StockQuantity   *int     `json:"stock_quantity"`
		Description     *string  `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if (req.RentalPrice != nil && *req.RentalPrice < 0) ||
		(req.SalePrice != nil && *req.SalePrice < 0) ||
		(req.SecurityDeposit != nil && *req.SecurityDeposit < 0) {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"prices": "must_be_non_negative"})
		return
	}
	if req.Name != nil {
		v := strings.TrimSpace(*req.Name)
		if v == "" {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"name": "required"})
			return
		}
		p.Name = v
	}
	if req.Code != nil && strings.TrimSpace(*req.Code) != "" {
		p.Code = strings.TrimSpace(*req.Code)
	}
	if req.CategoryID != nil && *req.CategoryID != 0 {
		p.CategoryID = *req.CategoryID
	}
	if req.RentalPrice != nil {
		p.RentalPrice = *req.RentalPrice
	}
	if req.SalePrice != nil {
		p.SalePrice = *req.SalePrice
	}
	if req.SecurityDeposit != nil {
		p.SecurityDeposit = *req.SecurityDeposit
	}
	if req.StockQuantity != nil {
		p.StockQuantity = *req.StockQuantity
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if err := h.DB.Save(&p).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_product", nil)
		return
	}
	audit(h.DB, r, fr.ID, "Product", p.ID, "update")
	httpx.JSON(w, http.StatusOK, p)
}

// Delete: POST /products/delete?id=... (soft delete; existing documents keep
// their snapshots)
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	fr, ok := currentFranchise(h.DB, r)
	if !ok {
		httpx.JSONError(w, http.StatusForbidden, "no_franchise", nil)
		return
	}
	id := queryID(r)
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	res := h.DB.Where("id = ? AND franchise_id = ?", id, fr.ID).Delete(&models.Product{})
	if res.Error != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_product", nil)
		return
	}
	if res.RowsAffected == 0 {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	audit(h.DB, r, fr.ID, "Product", id, "delete")
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Barcode: GET /products/barcode?id=... renders a Code 128 PNG of the
// product code for label printing.
func (h *ProductHandler) Barcode(w http.ResponseWriter, r *http.Request) {
	fr, ok := currentFranchise(h.DB, r)
	if !ok {
		httpx.JSONError(w, http.StatusForbidden, "no_franchise", nil)
		return
	}
	id := queryID(r)
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var p models.Product
	if err := h.DB.Where("id = ? AND franchise_id = ?", id, fr.ID).First(&p).Error; err != nil {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	data, err := barcode.PNG(p.Code, 300, 80)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "barcode_generation_failed", nil)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", "inline; filename=\""+p.Code+".png\"")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
