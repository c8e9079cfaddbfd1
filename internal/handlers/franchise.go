package handlers

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"github.com/safawala/backoffice/internal/httpx"
	"github.com/safawala/backoffice/internal/models"
)

type FranchiseHandler struct{ DB *gorm.DB }

func NewFranchiseHandler(db *gorm.DB) *FranchiseHandler { return &FranchiseHandler{DB: db} }

var hexColor = regexp.MustCompile(`^#[a-fA-F0-9]{6}$`)

// Settings: GET returns the current franchise settings, POST updates the
// branding and contact block used on generated documents.
func (h *FranchiseHandler) Settings(w http.ResponseWriter, r *http.Request) {
	fr, ok := currentFranchise(h.DB, r)
	if !ok {
		httpx.JSONError(w, http.StatusForbidden, "no_franchise", nil)
		return
	}
	switch r.Method {
	case http.MethodGet:
		httpx.JSON(w, http.StatusOK, fr)
	case http.MethodPost:
		h.update(w, r, fr)
	default:
		w.Header().Set("Allow", "GET,POST")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
	}
}

// update applies the fields present in the body; omitted fields keep their
// stored values.
func (h *FranchiseHandler) update(w http.ResponseWriter, r *http.Request, fr models.Franchise) {
	var req struct {
		Name           *string `json:"name"`
		Tagline        *string `json:"tagline"`
		Phone          *string `json:"phone"`
		Email          *string `json:"email"`
		Website        *string `json:"website"`
		Address        *string `json:"address"`
		City           *string `json:"city"`
		State          *string `json:"state"`
		Pincode        *string `json:"pincode"`
		GSTNumber      *string `json:"gst_number"`
		LogoURL        *string `json:"logo_url"`
		TermsText      *string `json:"terms_text"`
		PrimaryColor   *string `json:"primary_color"`
		SecondaryColor *string `json:"secondary_color"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if req.PrimaryColor != nil && !hexColor.MatchString(*req.PrimaryColor) {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"primary_color": "hex_rrggbb"})
		return
	}
	if req.SecondaryColor != nil && !hexColor.MatchString(*req.SecondaryColor) {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"secondary_color": "hex_rrggbb"})
		return
	}
	if req.Name != nil {
		v := strings.TrimSpace(*req.Name)
		if v == "" {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"name": "required"})
			return
		}
		fr.Name = v
	}
	if req.Tagline != nil {
		fr.Tagline = *req.Tagline
	}
	if req.Phone != nil {
		fr.Phone = *req.Phone
	}
	if req.Email != nil {
		fr.Email = *req.Email
	}
	if req.Website != nil {
		fr.Website = *req.Website
	}
	if req.Address != nil {
		fr.Address = *req.Address
	}
	if req.City != nil {
		fr.City = *req.City
	}
	if req.State != nil {
		fr.State = *req.State
	}
	if req.Pincode != nil {
		fr.Pincode = *req.Pincode
	}
	if req.GSTNumber != nil {
		fr.GSTNumber = *req.GSTNumber
	}
	if req.LogoURL != nil {
		fr.LogoURL = *req.LogoURL
	}
	if req.TermsText != nil {
		fr.TermsText = *req.TermsText
	}
	if req.PrimaryColor != nil {
		fr.PrimaryColor = *req.PrimaryColor
	}
	if req.SecondaryColor != nil {
		fr.SecondaryColor = *req.SecondaryColor
	}
	if err := h.DB.Save(&fr).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_franchise", nil)
		return
	}
	audit(h.DB, r, fr.ID, "Franchise", fr.ID, "update")
	httpx.JSON(w, http.StatusOK, fr)
}
