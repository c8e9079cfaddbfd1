package pdf

import "strings"

// Conservative per-section height estimates used for page-break decisions.
// They are fixed bounds, not measured heights; a section that fits the
// estimate always fits the page.
const (
	estHeader   = 45
	estTitle    = 32
	estCustomer = 40
	estPackage  = 30
	estEvent    = 60
	estTableMin = 20
	estSummary  = 60
	estPayment  = 32
	estFooter   = 55
)

// decorativePalette is the fixed navy/gold scheme of the quotation layout;
// franchise branding colors are not applied here.
func decorativePalette() Palette {
	return Palette{
		Primary:   RGB{25, 42, 86},   // deep navy
		Secondary: RGB{16, 185, 129}, // modern green
		Accent:    RGB{212, 175, 55}, // elegant gold
		Text:      RGB{33, 33, 33},
		LightText: RGB{100, 100, 100},
		Border:    RGB{200, 200, 200},
		Success:   RGB{16, 185, 129},
		Warning:   RGB{239, 68, 68},
	}
}

// GenerateQuotePDF renders the decorative quotation layout and returns the
// finished document bytes. The input is sanitized once at this boundary;
// generation either completes fully or fails with an error, never partially.
func GenerateQuotePDF(in DocumentInput) ([]byte, error) {
	in.Sanitize()

	cfg := DefaultConfig()
	cfg.Colors = decorativePalette()

	d := newDoc(cfg)
	d.f.SetTitle(in.Kind+" "+in.Number, true)
	if !in.IssuedAt.IsZero() {
		d.f.SetCreationDate(in.IssuedAt)
	}
	d.addPage()

	y := cfg.Margin
	y = renderHeader(d, y, in.Company)

	y = d.ensureSpace(y, estTitle)
	y = renderTitleBlock(d, y, &in)

	y = d.ensureSpace(y, estCustomer)
	y = renderCustomerDetails(d, y, in.Customer)

	if in.Package.Name != "" {
		y = d.ensureSpace(y, estPackage)
		y = renderPackageDetails(d, y, in.Package)
	}

	y = d.ensureSpace(y, estEvent)
	y = renderEventDetails(d, y, in.Event)

	if len(in.Items) > 0 {
		y = d.ensureSpace(y, estTableMin)
		y = renderItemsTable(d, y, in.Items, in.BookingType == "rental")
	}

	y = d.ensureSpace(y, estSummary)
	y = renderFinancialSummary(d, y, in.Pricing)

	y = d.ensureSpace(y, estPayment)
	y = renderPaymentStatus(d, y, in.Pricing)

	if in.Notes != "" {
		y = d.ensureSpace(y, 20)
		y = renderNotes(d, y, in.Notes)
	}

	y = d.ensureSpace(y, estFooter)
	renderFooter(d, y, in.Company)

	// Diagonal stamp on the first page only.
	d.f.SetPage(1)
	d.watermark(in.Kind)

	return d.output()
}

// renderNotes draws the free-text notes block.
func renderNotes(d *doc, y float64, notes string) float64 {
	if strings.TrimSpace(notes) == "" {
		return y
	}
	m := d.cfg.Margin
	y = sectionTitle(d, y, "NOTES")
	d.setFont("", 8)
	d.textColor(d.cfg.Colors.Text)
	for _, ln := range d.wrap(notes, d.cfg.ContentWidth()) {
		if y+d.cfg.LineHeight > d.bottom() {
			d.addPage()
			y = d.cfg.Margin
		}
		d.text(m, y, ln)
		y += d.cfg.LineHeight
	}
	return y + 4
}
