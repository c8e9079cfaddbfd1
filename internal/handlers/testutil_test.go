package handlers

import (
	"net/http"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/safawala/backoffice/internal/auth"
	"github.com/safawala/backoffice/internal/db"
	"github.com/safawala/backoffice/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Use a unique in-memory database per test to avoid cross-test collisions.
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrateAll(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

// seedTenant creates a user attached to a fresh franchise and returns both.
func seedTenant(t *testing.T, conn *gorm.DB) (models.User, models.Franchise) {
	t.Helper()
	role := models.Role{Name: "franchise_owner"}
	if err := conn.Create(&role).Error; err != nil {
		t.Fatalf("role: %v", err)
	}
	user := models.User{Email: t.Name() + "@test", Password: "x", Name: "Tester", RoleID: role.ID}
	if err := conn.Create(&user).Error; err != nil {
		t.Fatalf("user: %v", err)
	}
	fr := models.Franchise{
		Name:           "Safawala Mumbai",
		Code:           "MUM01",
		OwnerUserID:    user.ID,
		Phone:          "022-12345678",
		Email:          "mumbai@safawala.in",
		PrimaryColor:   "#1b5e20",
		SecondaryColor: "#4caf50",
	}
	if err := conn.Create(&fr).Error; err != nil {
		t.Fatalf("franchise: %v", err)
	}
	if err := conn.Create(&models.UserFranchise{UserID: user.ID, FranchiseID: fr.ID}).Error; err != nil {
		t.Fatalf("user franchise: %v", err)
	}
	return user, fr
}

// asUser injects the session user into the request context.
func asUser(r *http.Request, userID uint) *http.Request {
	return r.WithContext(auth.WithUserID(r.Context(), userID))
}

func seedCustomer(t *testing.T, conn *gorm.DB, franchiseID uint) models.Customer {
	t.Helper()
	cu := models.Customer{
		FranchiseID: franchiseID,
		Code:        "CUST-00001",
		Name:        "Baapu boy",
		Phone:       "9876543210",
		Address:     "12 MG Road",
		City:        "Mumbai",
	}
	if err := conn.Create(&cu).Error; err != nil {
		t.Fatalf("customer: %v", err)
	}
	return cu
}

func seedProduct(t *testing.T, conn *gorm.DB, franchiseID uint) models.Product {
	t.Helper()
	cat := models.ProductCategory{Name: "Sherwani-" + t.Name(), Code: "SHW"}
	if err := conn.Create(&cat).Error; err != nil {
		t.Fatalf("category: %v", err)
	}
	p := models.Product{
		FranchiseID:     franchiseID,
		Code:            "PRD-00001",
		Name:            "Sherwani Classic",
		CategoryID:      cat.ID,
		RentalPrice:     500,
		SalePrice:       2500,
		SecurityDeposit: 200,
		StockQuantity:   10,
	}
	if err := conn.Create(&p).Error; err != nil {
		t.Fatalf("product: %v", err)
	}
	return p
}
