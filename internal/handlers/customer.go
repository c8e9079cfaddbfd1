package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/safawala/backoffice/internal/httpx"
	"github.com/safawala/backoffice/internal/models"
)

type CustomerHandler struct{ DB *gorm.DB }

func NewCustomerHandler(db *gorm.DB) *CustomerHandler { return &CustomerHandler{DB: db} }

type customerReq struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	WhatsApp string `json:"whatsapp"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	Pincode  string `json:"pincode"`
	Notes    string `json:"notes"`
}

// List: GET /customers
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	fr, ok := currentFranchise(h.DB, r)
	if !ok {
		httpx.JSONError(w, http.StatusForbidden, "no_franchise", nil)
		return
	}
	limit, offset := pagination(r)
	dbq := h.DB.Where("franchise_id = ?", fr.ID)
	if like := searchTerm(r); like != "" {
		dbq = dbq.Where("lower(name) LIKE ? OR phone LIKE ?", like, like)
	}
	var total int64
	dbq.Model(&models.Customer{}).Count(&total)
	var customers []models.Customer
	if err := dbq.Order("id desc").Limit(limit).Offset(offset).Find(&customers).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_customers", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": customers, "total": total, "limit": limit, "offset": offset})
}

// Create: POST /customers
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	fr, ok := currentFranchise(h.DB, r)
	if !ok {
		httpx.JSONError(w, http.StatusForbidden, "no_franchise", nil)
		return
	}
	var req customerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	if req.Name == "" || req.Phone == "" {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"name": "required", "phone": "required"})
		return
	}
	cu := models.Customer{
		FranchiseID: fr.ID,
		Name:        req.Name,
		Phone:       req.Phone,
		WhatsApp:    req.WhatsApp,
		Email:       req.Email,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		Pincode:     req.Pincode,
		Notes:       req.Notes,
	}
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&cu).Error; err != nil {
			return err
		}
		cu.Code = fmt.Sprintf("CUST-%05d", cu.ID)
		return tx.Model(&cu).Update("code", cu.Code).Error
	})
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_customer", nil)
		return
	}
	audit(h.DB, r, fr.ID, "Customer", cu.ID, "create")
	httpx.JSON(w, http.StatusCreated, cu)
}

// Update: POST /customers/update?id=... Only fields present in the body
// change; omitted fields keep their stored values.
func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
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
	var cu models.Customer
	if err := h.DB.Where("id = ? AND franchise_id = ?", id, fr.ID).First(&cu).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_customer", nil)
		return
	}
	var req struct {
		Name     *string `json:"name"`
		Phone    *string `json:"phone"`
		WhatsApp *string `json:"whatsapp"`
		Email    *string `json:"email"`
		Address  *string `json:"address"`
		City     *string `json:"city"`
		State    *string `json:"state"`
		Pincode  *string `json:"pincode"`
		Notes    *string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if req.Name != nil {
		v := strings.TrimSpace(*req.Name)
		if v == "" {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"name": "required"})
			return
		}
		cu.Name = v
	}
	if req.Phone != nil {
		v := strings.TrimSpace(*req.Phone)
		if v == "" {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"phone": "required"})
			return
		}
		cu.Phone = v
	}
	if req.WhatsApp != nil {
		cu.WhatsApp = *req.WhatsApp
	}
	if req.Email != nil {
		cu.Email = *req.Email
	}
	if req.Address != nil {
		cu.Address = *req.Address
	}
	if req.City != nil {
		cu.City = *req.City
	}
	if req.State != nil {
		cu.State = *req.State
	}
	if req.Pincode != nil {
		cu.Pincode = *req.Pincode
	}
	if req.Notes != nil {
		cu.Notes = *req.Notes
	}
	if err := h.DB.Save(&cu).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_customer", nil)
		return
	}
	audit(h.DB, r, fr.ID, "Customer", cu.ID, "update")
	httpx.JSON(w, http.StatusOK, cu)
}

// Delete: POST /customers/delete?id=...
func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
	// Refuse when documents reference the customer; history must stay intact.
	var refs int64
	h.DB.Model(&models.Quote{}).Where("customer_id = ? AND franchise_id = ?", id, fr.ID).Count(&refs)
	if refs == 0 {
		h.DB.Model(&models.Invoice{}).Where("customer_id = ? AND franchise_id = ?", id, fr.ID).Count(&refs)
	}
	if refs > 0 {
		httpx.JSONError(w, http.StatusConflict, "customer_has_documents", nil)
		return
	}
	res := h.DB.Where("id = ? AND franchise_id = ?", id, fr.ID).Delete(&models.Customer{})
	if res.Error != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_customer", nil)
		return
	}
	if res.RowsAffected == 0 {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	audit(h.DB, r, fr.ID, "Customer", id, "delete")
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
