package services

import (
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/safawala/backoffice/internal/models"
	"github.com/safawala/backoffice/internal/pdf"
)

// Glue between the persistence models and the document pipeline. The
// handlers resolve everything here and pass a self-contained input to the
// generators, which do no lookups of their own.

const logoFetchTimeout = 5 * time.Second
const logoMaxBytes = 2 << 20

// ResolveCompany builds the branding block from franchise settings. The
// logo is loaded best-effort: a missing or broken asset logs a warning and
// the document renders without it.
func ResolveCompany(fr models.Franchise) pdf.CompanyInfo {
	return pdf.CompanyInfo{
		Name:           fr.Name,
		Tagline:        fr.Tagline,
		Phone:          fr.Phone,
		Email:          fr.Email,
		Website:        fr.Website,
		Address:        joinAddress(fr.Address, fr.City, fr.State, fr.Pincode),
		GSTNumber:      fr.GSTNumber,
		TermsText:      fr.TermsText,
		PrimaryColor:   fr.PrimaryColor,
		SecondaryColor: fr.SecondaryColor,
		Logo:           LoadLogo(fr.LogoURL),
	}
}

// LoadLogo reads the logo asset from a local path or an http(s) URL.
// Failures are non-fatal and return nil.
func LoadLogo(ref string) []byte {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		client := &http.Client{Timeout: logoFetchTimeout}
		resp, err := client.Get(ref)
		if err != nil {
			logrus.WithError(err).WithField("url", ref).Warn("logo fetch failed")
			return nil
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			logrus.WithField("url", ref).WithField("status", resp.StatusCode).Warn("logo fetch failed")
			return nil
		}
		data, err := io.ReadAll(io.LimitReader(resp.Body, logoMaxBytes))
		if err != nil {
			logrus.WithError(err).WithField("url", ref).Warn("logo read failed")
			return nil
		}
		return data
	}
	data, err := os.ReadFile(ref)
	if err != nil {
		logrus.WithError(err).WithField("path", ref).Warn("logo read failed")
		return nil
	}
	return data
}

// BuildQuoteInput assembles the document input for a quote. Items must be
// preloaded with their products.
func BuildQuoteInput(q models.Quote) pdf.DocumentInput {
	in := pdf.DocumentInput{
		Kind:        pdf.KindQuotation,
		Number:      q.Number,
		Status:      q.Status,
		BookingType: q.BookingType,
		IssuedAt:    q.CreatedAt,
		Notes:       q.Notes,
		Customer:    customerInfo(q.Customer),
		Event: pdf.EventInfo{
			Type:         q.EventType,
			Date:         dateString(q.EventDate),
			Time:         q.EventTime,
			DeliveryDate: dateString(q.DeliveryDate),
			DeliveryTime: q.DeliveryTime,
			ReturnDate:   dateString(q.ReturnDate),
			ReturnTime:   q.ReturnTime,
			VenueName:    q.VenueName,
			VenueAddress: q.VenueAddress,
			Groom:        pdf.Contact{Name: q.GroomName, WhatsApp: q.GroomWhatsApp, Address: q.GroomAddress},
			Bride:        pdf.Contact{Name: q.BrideName, WhatsApp: q.BrideWhatsApp, Address: q.BrideAddress},
		},
		Pricing: pdf.Pricing{
			Subtotal:        q.Subtotal,
			DiscountAmount:  q.DiscountAmount,
			CouponCode:      q.CouponCode,
			CouponDiscount:  q.CouponDiscount,
			TaxAmount:       q.TaxAmount,
			TotalAmount:     q.TotalAmount,
			SecurityDeposit: q.SecurityDeposit,
			PaymentType:     q.PaymentType,
		},
	}
	for _, it := range q.Items {
		in.Items = append(in.Items, pdf.LineItem{
			Name:            it.Product.Name,
			Category:        it.Product.Category.Name,
			Quantity:        it.Quantity,
			UnitPrice:       it.UnitPrice,
			Total:           it.Total,
			SecurityDeposit: it.Deposit,
		})
	}
	return in
}

// BuildInvoiceInput assembles the document input for an invoice, including
// the payment state block.
func BuildInvoiceInput(inv models.Invoice) pdf.DocumentInput {
	in := pdf.DocumentInput{
		Kind:        pdf.KindInvoice,
		Number:      inv.Number,
		Status:      inv.Status,
		BookingType: inv.BookingType,
		IssuedAt:    inv.CreatedAt,
		Customer:    customerInfo(inv.Customer),
		Pricing: pdf.Pricing{
			Subtotal:        inv.Subtotal,
			DiscountAmount:  inv.DiscountAmount,
			CouponDiscount:  inv.CouponDiscount,
			TaxAmount:       inv.TaxAmount,
			TotalAmount:     inv.TotalAmount,
			SecurityDeposit: inv.SecurityDeposit,
			PaidAmount:      inv.PaidAmount,
			PendingAmount:   inv.PendingAmount,
			PaymentType:     inv.PaymentType,
		},
	}
	for _, it := range inv.Items {
		in.Items = append(in.Items, pdf.LineItem{
			Name:            it.Product.Name,
			Category:        it.Product.Category.Name,
			Quantity:        it.Quantity,
			UnitPrice:       it.UnitPrice,
			Total:           it.Total,
			SecurityDeposit: it.Deposit,
		})
	}
	return in
}

func customerInfo(c models.Customer) pdf.CustomerInfo {
	return pdf.CustomerInfo{
		Name:     c.Name,
		Code:     c.Code,
		Phone:    c.Phone,
		WhatsApp: c.WhatsApp,
		Email:    c.Email,
		Address:  c.Address,
		City:     c.City,
		State:    c.State,
		Pincode:  c.Pincode,
	}
}

func dateString(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func joinAddress(parts ...string) string {
	out := ""
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			continue
		}
		if out != "" {
			out += ", "
		}
		out += p
	}
	return out
}
