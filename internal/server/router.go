package server

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/safawala/backoffice/internal/auth"
	"github.com/safawala/backoffice/internal/handlers"
	"github.com/safawala/backoffice/internal/httpx"
	"github.com/safawala/backoffice/internal/models"
	"github.com/safawala/backoffice/internal/services"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(db *gorm.DB, numbers *services.NumberService) http.Handler {
	mux := http.NewServeMux()

	// Configure a user verifier so RequireAuth can ensure the user still exists.
	auth.SetUserVerifier(func(_ context.Context, uid uint) bool {
		var count int64
		if err := db.Model(&models.User{}).Where("id = ?", uid).Limit(1).Count(&count).Error; err != nil {
			return false
		}
		return count > 0
	})

	// --- Health endpoints ---
	//revive:disable:unused-parameter simple handlers intentionally ignore *http.Request
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	//revive:enable:unused-parameter

	// Auth endpoints (public)
	handlers.NewAuthHandler(db).Register(mux)

	pricing := services.NewPricingService()
	export := services.NewExportService()

	protect := func(h http.HandlerFunc) http.Handler {
		return auth.Middleware(auth.RequireAuth(h))
	}
	listCreate := func(list, create http.HandlerFunc) http.Handler {
		return protect(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				list(w, r)
			case http.MethodPost:
				create(w, r)
			default:
				w.Header().Set("Allow", "GET,POST")
				httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
			}
		})
	}

	ch := handlers.NewCustomerHandler(db)
	mux.Handle("/customers", listCreate(ch.List, ch.Create))
	mux.Handle("/customers/update", protect(ch.Update))
	mux.Handle("/customers/delete", protect(ch.Delete))

	ph := handlers.NewProductHandler(db)
	mux.Handle("/products", listCreate(ph.List, ph.Create))
	mux.Handle("/products/update", protect(ph.Update))
	mux.Handle("/products/delete", protect(ph.Delete))
	mux.Handle("/products/barcode", protect(ph.Barcode))

	qh := handlers.NewQuoteHandler(db, pricing, numbers, export)
	mux.Handle("/quotes", listCreate(qh.List, qh.Create))
	mux.Handle("/quotes/send", protect(qh.Send))
	mux.Handle("/quotes/accept", protect(qh.Accept))
	mux.Handle("/quotes/reject", protect(qh.Reject))
	mux.Handle("/quotes/convert", protect(qh.Convert))
	mux.Handle("/quotes/pdf", protect(qh.PDF))
	mux.Handle("/quotes/export", protect(qh.ExportXLSX))

	ih := handlers.NewInvoiceHandler(db, pricing, export)
	mux.Handle("/invoices", protect(ih.List))
	mux.Handle("/invoices/pdf", protect(ih.PDF))
	mux.Handle("/invoices/payments", protect(ih.Payments))
	mux.Handle("/invoices/export", protect(ih.ExportXLSX))

	fh := handlers.NewFranchiseHandler(db)
	mux.Handle("/franchise", protect(fh.Settings))

	return withRecover(withLogging(mux))
}

// statusRecorder captures the response status for the access log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logrus.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start).String(),
		}).Info("request")
	})
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logrus.WithField("panic", rec).Error("handler panic")
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
