package services

import (
	"github.com/safawala/backoffice/internal/models"
)

// PricingService encapsulates the money math shared by quotes and invoices.
// Totals are computed once and stored on the row; documents render the
// stored snapshot and never recompute.
type PricingService struct{}

func NewPricingService() *PricingService { return &PricingService{} }

// ComputeQuoteTotals fills the pricing snapshot of a quote from its items.
// Item Total and Deposit must already be set (Quantity * unit snapshot).
// Discounts are absolute amounts capped at the running net; tax applies to
// the net after discounts. The security deposit is tracked separately and
// never enters the total.
func (s *PricingService) ComputeQuoteTotals(q *models.Quote, taxPercent float64) {
	if q == nil {
		return
	}
	var subtotal, deposit float64
	for i := range q.Items {
		it := &q.Items[i]
		if it.Quantity < 0 {
			it.Quantity = 0
		}
		it.Total = float64(it.Quantity) * it.UnitPrice
		subtotal += it.Total
		if q.BookingType == "rental" {
			deposit += it.Deposit * float64(it.Quantity)
		}
	}
	net := subtotal
	if q.DiscountAmount > 0 && q.DiscountAmount < net {
		net -= q.DiscountAmount
	} else if q.DiscountAmount >= net {
		q.DiscountAmount = net
		net = 0
	}
	if q.CouponDiscount > 0 && q.CouponDiscount < net {
		net -= q.CouponDiscount
	} else if q.CouponDiscount >= net && net > 0 {
		q.CouponDiscount = net
		net = 0
	}
	if taxPercent < 0 {
		taxPercent = 0
	}
	q.Subtotal = subtotal
	q.TaxAmount = net * taxPercent / 100
	q.TotalAmount = net + q.TaxAmount
	q.SecurityDeposit = deposit
}

// RecomputePaymentState refreshes PaidAmount/PendingAmount of an invoice
// from its recorded payments. Deposit refunds do not count toward the
// invoice total.
func (s *PricingService) RecomputePaymentState(inv *models.Invoice, payments []models.Payment) {
	if inv == nil {
		return
	}
	var paid float64
	for _, p := range payments {
		if p.Type == "deposit_refund" {
			continue
		}
		paid += p.Amount
	}
	inv.PaidAmount = paid
	inv.PendingAmount = inv.TotalAmount - paid
	if inv.PendingAmount < 0 {
		inv.PendingAmount = 0
	}
	if inv.PendingAmount == 0 && inv.Status == "final" {
		inv.Status = "paid"
	}
}
