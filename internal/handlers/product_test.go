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
)

func TestProductCreateListAndBarcode(t *testing.T) {
	conn := setupTestDB(t)
	user, _ := seedTenant(t, conn)
	h := NewProductHandler(conn)

	body := `{"code":"SHW-001","name":"Sherwani Royal","rental_price":750,"security_deposit":300,"stock_quantity":5}`
	req := asUser(httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body)), user.ID)
	w := httptest.NewRecorder()
	h.Create(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201 got %d: %s", w.Code, w.Body.String())
	}
	var created models.Product
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.Code != "SHW-001" || created.RentalPrice != 750 {
		t.Fatalf("created product = %+v", created)
	}

	req = asUser(httptest.NewRequest(http.MethodGet, "/products?q=royal", nil), user.ID)
	w = httptest.NewRecorder()
	h.List(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("list: expected 200 got %d", w.Code)
	}
	var payload struct {
		Items []models.Product `json:"items"`
		Total int64            `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Total != 1 || len(payload.Items) != 1 {
		t.Fatalf("search result = %+v", payload)
	}

	req = asUser(httptest.NewRequest(http.MethodGet, fmt.Sprintf("/products/barcode?id=%d", created.ID), nil), user.ID)
	w = httptest.NewRecorder()
	h.Barcode(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("barcode: expected 200 got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Fatalf("barcode content type %q", ct)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG")) {
		t.Fatal("barcode body is not a PNG")
	}
}

func TestProductNegativePriceRejected(t *testing.T) {
	conn := setupTestDB(t)
	user, _ := seedTenant(t, conn)
	h := NewProductHandler(conn)

	body := `{"name":"Broken","rental_price":-10}`
	req := asUser(httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body)), user.ID)
	w := httptest.NewRecorder()
	h.Create(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
}

func TestProductRenameKeepsStoredValues(t *testing.T) {
	conn := setupTestDB(t)
	user, fr := seedTenant(t, conn)
	p := seedProduct(t, conn, fr.ID)
	h := NewProductHandler(conn)

	body := `{"name":"Sherwani Premium"}`
	req := asUser(httptest.NewRequest(http.MethodPost, fmt.Sprintf("/products/update?id=%d", p.ID), strings.NewReader(body)), user.ID)
	w := httptest.NewRecorder()
	h.Update(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("update: expected 200 got %d: %s", w.Code, w.Body.String())
	}

	var got models.Product
	if err := conn.First(&got, p.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Name != "Sherwani Premium" {
		t.Fatalf("name = %q", got.Name)
	}
	if got.RentalPrice != 500 || got.SalePrice != 2500 || got.SecurityDeposit != 200 || got.StockQuantity != 10 {
		t.Fatalf("rename wiped stored values: rental=%v sale=%v deposit=%v stock=%d",
			got.RentalPrice, got.SalePrice, got.SecurityDeposit, got.StockQuantity)
	}
	if got.Code != p.Code || got.CategoryID != p.CategoryID {
		t.Fatalf("rename changed code or category: %+v", got)
	}
}

func TestProductUpdateRejectsNegativePrice(t *testing.T) {
	conn := setupTestDB(t)
	user, fr := seedTenant(t, conn)
	p := seedProduct(t, conn, fr.ID)
	h := NewProductHandler(conn)

	body := `{"rental_price":-5}`
	req := asUser(httptest.NewRequest(http.MethodPost, fmt.Sprintf("/products/update?id=%d", p.ID), strings.NewReader(body)), user.ID)
	w := httptest.NewRecorder()
	h.Update(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}

	var got models.Product
	if err := conn.First(&got, p.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.RentalPrice != 500 {
		t.Fatalf("rejected update still changed rental price: %v", got.RentalPrice)
	}
}

func TestProductSoftDeleteKeepsSnapshots(t *testing.T) {
	conn := setupTestDB(t)
	user, fr := seedTenant(t, conn)
	p := seedProduct(t, conn, fr.ID)
	h := NewProductHandler(conn)

	req := asUser(httptest.NewRequest(http.MethodPost, fmt.Sprintf("/products/delete?id=%d", p.ID), nil), user.ID)
	w := httptest.NewRecorder()
	h.Delete(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: expected 200 got %d", w.Code)
	}

	// Gone from the live listing but still loadable unscoped.
	var live int64
	conn.Model(&models.Product{}).Where("franchise_id = ?", fr.ID).Count(&live)
	if live != 0 {
		t.Fatalf("live products = %d, want 0", live)
	}
	var all int64
	conn.Unscoped().Model(&models.Product{}).Where("franchise_id = ?", fr.ID).Count(&all)
	if all != 1 {
		t.Fatalf("unscoped products = %d, want 1", all)
	}
}
