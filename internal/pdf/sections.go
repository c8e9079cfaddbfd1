package pdf

import (
	"fmt"
	"strings"
)

// Section renderers. Each takes the drawing surface, the current cursor and
// its slice of the document data, draws one labeled block and returns the
// advanced cursor. Absent optional fields are skipped outright; no blank
// line is left behind. The cursor never moves up within a page.

// renderHeader draws the branding band: accent bars, logo, company name and
// the contact block.
func renderHeader(d *doc, y float64, co CompanyInfo) float64 {
	c := d.cfg.Colors
	m := d.cfg.Margin

	d.fillColor(c.Primary)
	d.rect(0, 0, d.cfg.PageWidth, 4, "F")
	d.fillColor(c.Accent)
	d.rect(0, 4, d.cfg.PageWidth, 1, "F")

	nameX := m
	if d.image("logo", co.Logo, m, y, 25, 15) {
		nameX = m + 30
	}

	d.setFont("B", 20)
	d.textColor(c.Primary)
	d.text(nameX, y+7, strings.ToUpper(co.Name))

	d.setFont("I", 9)
	d.textColor(c.LightText)
	d.text(nameX, y+13, co.Tagline)

	y += 18

	d.setFont("", 8)
	d.textColor(c.LightText)
	d.text(m, y, "Ph: "+co.Phone)
	d.text(m+60, y, "Email: "+co.Email)
	y += d.cfg.LineHeight
	if co.GSTNumber != "" {
		d.text(m, y, "GST: "+co.GSTNumber)
		y += d.cfg.LineHeight
	}
	if co.Website != "" {
		d.text(m, y, co.Website)
		y += d.cfg.LineHeight
	}
	if co.Address != "" {
		for _, ln := range d.wrap(co.Address, d.cfg.ContentWidth()) {
			d.text(m, y, ln)
			y += d.cfg.LineHeight
		}
	}
	return y + 4
}

// renderTitleBlock draws the document kind, number, reference and date, plus
// a colored status badge when a status is present.
func renderTitleBlock(d *doc, y float64, in *DocumentInput) float64 {
	c := d.cfg.Colors
	m := d.cfg.Margin

	d.setFont("B", 24)
	d.textColor(c.Primary)
	d.text(m, y+8, in.Kind)
	titleWidth := d.f.GetStringWidth(in.Kind)
	d.drawColor(c.Accent)
	d.f.SetLineWidth(1.2)
	d.line(m, y+10, m+titleWidth, y+10)

	if in.Status != "" {
		badge := strings.ToUpper(in.Status)
		d.setFont("B", 9)
		bw := d.f.GetStringWidth(badge) + 8
		bx := d.cfg.PageWidth - m - bw
		d.fillColor(statusColor(in.Status, c))
		d.roundedRect(bx, y, bw, 8, 2, "F")
		d.textColor(RGB{255, 255, 255})
		d.text(bx+4, y+5.5, badge)
	}

	y += 16
	d.setFont("", 9)
	d.textColor(c.Text)
	d.text(m, y, fmt.Sprintf("%s # %s", Capitalize(strings.ToLower(in.Kind)), in.Number))
	d.textRight(d.cfg.PageWidth-m, y, "Date: "+FormatTimestamp(in.IssuedAt))
	y += d.cfg.LineHeight
	if in.ReferenceID != "" {
		d.text(m, y, "Ref: "+in.ReferenceID)
		y += d.cfg.LineHeight
	}
	if in.BookingType != "" {
		d.text(m, y, "Mode: "+Capitalize(in.BookingType))
		y += d.cfg.LineHeight
	}
	return y + 4
}

func statusColor(status string, c Palette) RGB {
	s := strings.ToLower(status)
	switch {
	case strings.Contains(s, "confirm"), strings.Contains(s, "paid"),
		strings.Contains(s, "accept"), strings.Contains(s, "complete"):
		return c.Success
	case strings.Contains(s, "pending"), strings.Contains(s, "sent"):
		return RGB{251, 191, 36}
	case strings.Contains(s, "cancel"), strings.Contains(s, "reject"):
		return c.Warning
	default:
		return RGB{148, 163, 184}
	}
}

// renderCustomerDetails draws the bill-to block.
func renderCustomerDetails(d *doc, y float64, cu CustomerInfo) float64 {
	c := d.cfg.Colors
	m := d.cfg.Margin

	y = sectionTitle(d, y, "CUSTOMER DETAILS")

	d.setFont("B", 10)
	d.textColor(c.Text)
	d.text(m, y, cu.Name)
	y += d.cfg.LineHeight + 1

	d.setFont("", 9)
	if cu.Code != "" {
		d.textColor(c.LightText)
		d.text(m, y, "Customer ID: "+cu.Code)
		y += d.cfg.LineHeight
	}
	d.textColor(c.Text)
	d.text(m, y, "Phone: "+cu.Phone)
	y += d.cfg.LineHeight
	if cu.WhatsApp != "" && cu.WhatsApp != cu.Phone {
		d.text(m, y, "WhatsApp: "+cu.WhatsApp)
		y += d.cfg.LineHeight
	}
	if cu.Email != "" {
		d.text(m, y, "Email: "+cu.Email)
		y += d.cfg.LineHeight
	}

	addr := cu.Address
	if cu.City != "" {
		addr += ", " + cu.City
	}
	if cu.State != "" {
		addr += ", " + cu.State
	}
	if cu.Pincode != "" {
		addr += " - " + cu.Pincode
	}
	d.textColor(c.LightText)
	for _, ln := range d.wrap("Address: "+addr, d.cfg.ContentWidth()) {
		d.text(m, y, ln)
		y += d.cfg.LineHeight
	}
	return y + 4
}

// renderPackageDetails draws the booked-package block. Callers skip the
// section entirely when no package name is set.
func renderPackageDetails(d *doc, y float64, p PackageInfo) float64 {
	if p.Name == "" {
		return y
	}
	m := d.cfg.Margin
	y = sectionTitle(d, y, "PACKAGE DETAILS")

	d.setFont("", 9)
	d.textColor(d.cfg.Colors.Text)
	d.text(m, y, "Package: "+p.Name)
	y += d.cfg.LineHeight
	if p.Variant != "" {
		d.text(m, y, "Variant: "+p.Variant)
		y += d.cfg.LineHeight
	}
	if p.Category != "" {
		d.text(m, y, "Category: "+p.Category)
		y += d.cfg.LineHeight
	}
	if p.ExtraQuantity > 0 {
		d.text(m, y, fmt.Sprintf("Extra Quantity: %d", p.ExtraQuantity))
		y += d.cfg.LineHeight
	}
	if p.Description != "" {
		for _, ln := range d.wrap("Description: "+p.Description, d.cfg.ContentWidth()) {
			d.text(m, y, ln)
			y += d.cfg.LineHeight
		}
	}
	return y + 4
}

// renderEventDetails draws the event block, including the optional
// groom/bride contact sub-blocks.
func renderEventDetails(d *doc, y float64, e EventInfo) float64 {
	m := d.cfg.Margin
	lh := d.cfg.LineHeight
	y = sectionTitle(d, y, "EVENT DETAILS")

	d.setFont("", 9)
	d.textColor(d.cfg.Colors.Text)
	if e.Type != "" {
		d.text(m, y, "Event Type: "+Capitalize(e.Type))
		y += lh
	}
	if e.Participant != "" {
		d.text(m, y, "Participant: "+e.Participant)
		y += lh
	}
	if e.Date != "" {
		d.text(m, y, "Event: "+dateWithTime(e.Date, e.Time))
		y += lh
	}
	if e.DeliveryDate != "" {
		d.text(m, y, "Delivery: "+dateWithTime(e.DeliveryDate, e.DeliveryTime))
		y += lh
	}
	if e.ReturnDate != "" {
		d.text(m, y, "Return: "+dateWithTime(e.ReturnDate, e.ReturnTime))
		y += lh
	}
	if e.VenueName != "" {
		d.text(m, y, "Venue: "+e.VenueName)
		y += lh
	}
	if e.VenueAddress != "" {
		for _, ln := range d.wrap("Venue Address: "+e.VenueAddress, d.cfg.ContentWidth()) {
			d.text(m, y, ln)
			y += lh
		}
	}
	y = renderContact(d, y, "Groom", e.Groom)
	y = renderContact(d, y, "Bride", e.Bride)
	return y + 4
}

// renderContact draws one secondary-contact sub-block; a contact without a
// name is omitted with zero cursor movement.
func renderContact(d *doc, y float64, label string, ct Contact) float64 {
	if ct.Name == "" {
		return y
	}
	m := d.cfg.Margin
	lh := d.cfg.LineHeight

	d.setFont("B", 9)
	d.textColor(d.cfg.Colors.Primary)
	d.text(m, y, label+": "+ct.Name)
	y += lh
	d.setFont("", 8)
	d.textColor(d.cfg.Colors.Text)
	if ct.WhatsApp != "" {
		d.text(m, y, "WhatsApp: "+ct.WhatsApp)
		y += lh
	}
	if ct.Address != "" {
		for _, ln := range d.wrap("Address: "+ct.Address, d.cfg.ContentWidth()) {
			d.text(m, y, ln)
			y += lh
		}
	}
	return y
}

// renderItemsTable draws the line items. Row overflow breaks the page and
// continues at the top margin; the header row is repeated on the new page.
func renderItemsTable(d *doc, y float64, items []LineItem, rental bool) float64 {
	y = sectionTitle(d, y, "ITEMS")
	y = itemsHeaderRow(d, y, rental)

	d.setFont("", 8)
	for _, it := range items {
		if y+6 > d.bottom() {
			d.addPage()
			y = d.cfg.Margin
			y = itemsHeaderRow(d, y, rental)
			d.setFont("", 8)
		}
		d.textColor(d.cfg.Colors.Text)
		m := d.cfg.Margin
		d.text(m, y, truncate(it.Name, 40))
		d.text(m+75, y, Capitalize(it.Category))
		d.textCenter(m+112, y, fmt.Sprintf("%d", it.Quantity))
		d.textRight(m+145, y, FormatCurrency(it.UnitPrice))
		if rental {
			d.textRight(m+165, y, FormatCurrency(it.Total))
			d.textRight(d.cfg.PageWidth-m, y, FormatCurrency(it.SecurityDeposit*float64(it.Quantity)))
		} else {
			d.textRight(d.cfg.PageWidth-m, y, FormatCurrency(it.Total))
		}
		y += 6
	}
	return y + 4
}

func itemsHeaderRow(d *doc, y float64, rental bool) float64 {
	c := d.cfg.Colors
	m := d.cfg.Margin

	d.fillColor(c.Primary)
	d.rect(m, y-4.5, d.cfg.ContentWidth(), 7, "F")
	d.setFont("B", 8)
	d.textColor(RGB{255, 255, 255})
	d.text(m+1, y, "Item")
	d.text(m+75, y, "Category")
	d.textCenter(m+112, y, "Qty")
	d.textRight(m+145, y, "Rate")
	if rental {
		d.textRight(m+165, y, "Amount")
		d.textRight(d.cfg.PageWidth-m, y, "Deposit")
	} else {
		d.textRight(d.cfg.PageWidth-m, y, "Amount")
	}
	return y + 7
}

// renderFinancialSummary draws the right-aligned totals box. Discount lines
// use the secondary accent color; the total line is emphasized.
func renderFinancialSummary(d *doc, y float64, p Pricing) float64 {
	c := d.cfg.Colors
	labelX := d.cfg.PageWidth - d.cfg.Margin - 80
	valueX := d.cfg.PageWidth - d.cfg.Margin

	d.setFont("", 9)
	d.textColor(c.Text)
	d.text(labelX, y, "Subtotal:")
	d.textRight(valueX, y, FormatCurrency(p.Subtotal))
	y += 5

	if p.DiscountAmount > 0 {
		label := "Discount:"
		if p.DiscountPercent > 0 {
			label = fmt.Sprintf("Discount (%.0f%%):", p.DiscountPercent)
		}
		d.textColor(c.Secondary)
		d.text(labelX, y, label)
		d.textRight(valueX, y, "-"+FormatCurrency(p.DiscountAmount))
		d.textColor(c.Text)
		y += 5
	}
	if p.CouponDiscount > 0 {
		label := "Coupon:"
		if p.CouponCode != "" {
			label = fmt.Sprintf("Coupon (%s):", p.CouponCode)
		}
		d.textColor(c.Secondary)
		d.text(labelX, y, label)
		d.textRight(valueX, y, "-"+FormatCurrency(p.CouponDiscount))
		d.textColor(c.Text)
		y += 5
	}
	if p.DistanceCharge > 0 {
		d.text(labelX, y, "Distance Charges:")
		d.textRight(valueX, y, FormatCurrency(p.DistanceCharge))
		y += 5
	}
	if p.CustomCharge != 0 {
		label := "Additional Charges:"
		if p.CustomCharge < 0 {
			label = "Adjustment:"
		}
		d.text(labelX, y, label)
		d.textRight(valueX, y, FormatCurrency(p.CustomCharge))
		y += 5
	}
	if p.TaxAmount > 0 {
		label := "GST:"
		if p.TaxPercent > 0 {
			label = fmt.Sprintf("GST (%.0f%%):", p.TaxPercent)
		}
		d.text(labelX, y, label)
		d.textRight(valueX, y, FormatCurrency(p.TaxAmount))
		y += 5
	}

	d.drawColor(c.Border)
	d.f.SetLineWidth(0.3)
	d.line(labelX, y, valueX, y)
	y += 5

	d.setFont("B", 11)
	d.textColor(c.Primary)
	d.text(labelX, y, "Total Amount:")
	d.textRight(valueX, y, FormatCurrency(p.TotalAmount))
	y += 5

	if p.SecurityDeposit > 0 {
		d.setFont("", 9)
		d.textColor(c.Accent)
		d.text(labelX, y, "Security Deposit:")
		d.textRight(valueX, y, FormatCurrency(p.SecurityDeposit))
		y += 5
	}
	return y + 4
}

// renderPaymentStatus draws paid/pending amounts and the payment terms.
func renderPaymentStatus(d *doc, y float64, p Pricing) float64 {
	c := d.cfg.Colors
	labelX := d.cfg.PageWidth - d.cfg.Margin - 80
	valueX := d.cfg.PageWidth - d.cfg.Margin

	d.setFont("B", 10)
	d.textColor(c.Text)
	d.text(labelX, y, "PAYMENT SUMMARY")
	y += 6

	d.setFont("", 9)
	d.textColor(c.Success)
	d.text(labelX, y, "Amount Paid:")
	d.textRight(valueX, y, FormatCurrency(p.PaidAmount))
	y += 5

	if p.PendingAmount > 0 {
		d.textColor(c.Warning)
		d.text(labelX, y, "Amount Pending:")
		d.textRight(valueX, y, FormatCurrency(p.PendingAmount))
		y += 5
	}

	d.setFont("", 8)
	d.textColor(c.LightText)
	if p.PaymentMethod != "" {
		d.text(labelX, y, "Method: "+Capitalize(p.PaymentMethod))
		y += d.cfg.LineHeight
	}
	if p.PaymentType != "" {
		d.text(labelX, y, "Type: "+Capitalize(p.PaymentType))
		y += d.cfg.LineHeight
	}
	return y + 4
}

// renderFooter draws the terms paragraph, the optional signature image and
// the bottom accent bar. The block is pinned to the lower part of the page.
func renderFooter(d *doc, y float64, co CompanyInfo) float64 {
	c := d.cfg.Colors
	m := d.cfg.Margin

	if co.TermsText != "" {
		d.setFont("B", 9)
		d.textColor(c.Text)
		d.text(m, y, "Terms & Conditions:")
		y += 5
		d.setFont("", 7)
		d.textColor(c.LightText)
		for _, ln := range d.wrap(co.TermsText, d.cfg.ContentWidth()-10) {
			if y+d.cfg.LineHeight > d.bottom() {
				d.addPage()
				y = d.cfg.Margin
			}
			d.text(m, y, ln)
			y += d.cfg.LineHeight
		}
		y += 4
	}

	if len(co.Signature) > 0 {
		sx := d.cfg.PageWidth - m - 40
		if y+26 > d.bottom() {
			d.addPage()
			y = d.cfg.Margin
		}
		if d.image("signature", co.Signature, sx, y, 40, 20) {
			d.setFont("", 8)
			d.textColor(c.Text)
			d.text(sx, y+24, "Authorized Signature")
			y += 28
		}
	}

	footerY := d.cfg.PageHeight - 10
	d.fillColor(c.Primary)
	d.rect(0, footerY, d.cfg.PageWidth, 1, "F")
	d.fillColor(c.Accent)
	d.rect(0, footerY+1, d.cfg.PageWidth, 4, "F")

	d.setFont("", 7)
	d.textColor(c.LightText)
	d.textCenter(d.cfg.PageWidth/2, footerY-2, "Thank you for choosing "+co.Name+"!")
	return y
}

// sectionTitle draws the shared accent-bar + bold title pattern and returns
// the cursor below it.
func sectionTitle(d *doc, y float64, title string) float64 {
	c := d.cfg.Colors
	m := d.cfg.Margin

	d.drawColor(c.Border)
	d.f.SetLineWidth(0.3)
	d.line(m, y-3, d.cfg.PageWidth-m, y-3)

	d.fillColor(c.Primary)
	d.rect(m, y, 3, 6, "F")
	d.setFont("B", 11)
	d.textColor(c.Primary)
	d.text(m+5, y+4.5, title)
	return y + 10
}

func dateWithTime(date, hhmm string) string {
	s := FormatDate(date)
	if hhmm != "" {
		s += " at " + hhmm
	}
	return s
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "..."
}
