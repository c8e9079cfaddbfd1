package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/safawala/backoffice/internal/auth"
	"github.com/safawala/backoffice/internal/models"
)

// Shared request helpers used across the handler set.

// currentFranchise resolves the tenant scope of the authenticated user.
// Users map to franchises via UserFranchise; franchise owners match on
// OwnerUserID directly.
func currentFranchise(db *gorm.DB, r *http.Request) (models.Franchise, bool) {
	uid, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		return models.Franchise{}, false
	}
	var fr models.Franchise
	var link models.UserFranchise
	if err := db.Where("user_id = ?", uid).First(&link).Error; err == nil {
		if err := db.First(&fr, link.FranchiseID).Error; err == nil {
			return fr, true
		}
	}
	if err := db.Where("owner_user_id = ?", uid).First(&fr).Error; err == nil {
		return fr, true
	}
	return models.Franchise{}, false
}

// queryID parses the id query parameter; 0 means absent or invalid.
func queryID(r *http.Request) uint {
	v := r.URL.Query().Get("id")
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0
	}
	return uint(n)
}

// pagination reads limit/page query parameters with the shared bounds.
func pagination(r *http.Request) (limit, offset int) {
	limit = 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 1 {
			offset = (n - 1) * limit
		}
	}
	return limit, offset
}

// searchTerm sanitizes the q query parameter into a LIKE pattern.
func searchTerm(r *http.Request) string {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		return ""
	}
	var b strings.Builder
	for _, c := range q {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9',
			c == ' ', c == '-', c == '_':
			b.WriteRune(c)
		}
	}
	s := strings.TrimSpace(b.String())
	if s == "" {
		return ""
	}
	return "%" + strings.ToLower(s) + "%"
}

// audit records an entity change; audit failures are logged, never surfaced.
func audit(db *gorm.DB, r *http.Request, franchiseID uint, entityType string, entityID uint, action string) {
	uid, _ := auth.UserIDFromContext(r.Context())
	entry := models.AuditLog{
		UserID:      uid,
		FranchiseID: franchiseID,
		EntityType:  entityType,
		EntityID:    entityID,
		Action:      action,
	}
	if err := db.Create(&entry).Error; err != nil {
		logrus.WithError(err).WithField("entity", entityType).Warn("audit write failed")
	}
}

// notify queues a dashboard notification for a user; failures are logged,
// never surfaced.
func notify(db *gorm.DB, userID uint, title, message string) {
	if userID == 0 {
		return
	}
	n := models.Notification{
		UserID:  userID,
		Type:    "dashboard",
		Title:   title,
		Message: message,
		SentAt:  time.Now(),
	}
	if err := db.Create(&n).Error; err != nil {
		logrus.WithError(err).WithField("user_id", userID).Warn("notification write failed")
	}
}
