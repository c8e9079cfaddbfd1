package pdf

import "fmt"

// GenerateProfessionalPDF renders the compact professional layout. The
// resolved CompanyInfo is passed in by the caller (franchise settings with
// built-in defaults); the assembler itself performs no lookups, so it stays
// a pure function of its inputs.
func GenerateProfessionalPDF(in DocumentInput, co CompanyInfo) ([]byte, error) {
	in.Company = co
	in.Sanitize()

	cfg := DefaultConfig()
	cfg.Colors.Primary = HexToRGB(in.Company.PrimaryColor)
	cfg.Colors.Secondary = HexToRGB(in.Company.SecondaryColor)

	d := newDoc(cfg)
	d.f.SetTitle(in.Kind+" "+in.Number, true)
	if !in.IssuedAt.IsZero() {
		d.f.SetCreationDate(in.IssuedAt)
	}
	d.addPage()

	y := cfg.Margin
	y = renderCompactHeader(d, y, &in)

	y = d.ensureSpace(y, estCustomer)
	y = renderCompactParties(d, y, &in)

	if in.Event.Groom.Name != "" || in.Event.Bride.Name != "" {
		y = d.ensureSpace(y, 30)
		y = renderContact(d, y, "Groom", in.Event.Groom)
		y = renderContact(d, y, "Bride", in.Event.Bride)
		y += 4
	}

	if in.Package.Name != "" {
		y = d.ensureSpace(y, estPackage)
		y = renderPackageDetails(d, y, in.Package)
	}

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

	return d.output()
}

// renderCompactHeader draws the single-band header of the professional
// layout: logo + company + contact on the left, document number, date and
// booking mode on the right.
func renderCompactHeader(d *doc, y float64, in *DocumentInput) float64 {
	c := d.cfg.Colors
	m := d.cfg.Margin
	right := d.cfg.PageWidth - m

	nameX := m
	if d.image("logo", in.Company.Logo, m, y, 25, 15) {
		nameX = m + 30
	}

	d.setFont("B", 20)
	d.textColor(c.Primary)
	d.text(nameX, y+6, in.Company.Name)

	d.setFont("", 9)
	d.textColor(c.LightText)
	d.text(nameX, y+11, "Ph: "+in.Company.Phone)
	d.text(nameX, y+15, "Email: "+in.Company.Email)

	d.setFont("B", 13)
	d.textColor(c.Primary)
	d.textRight(right, y+6, fmt.Sprintf("%s # %s", Capitalize(kindLabel(in.Kind)), in.Number))

	d.setFont("", 9)
	d.textColor(c.LightText)
	d.textRight(right, y+11, "Date: "+FormatTimestamp(in.IssuedAt))

	d.setFont("B", 9)
	d.textColor(c.Primary)
	d.textRight(right, y+15, Capitalize(in.BookingType))

	y += 20
	d.drawColor(c.Border)
	d.f.SetLineWidth(0.5)
	d.line(m, y, right, y)
	return y + 5
}

// renderCompactParties draws the fixed two-column customer/event grid.
// Unlike the section renderers, this grid always prints every row; missing
// values show as "N/A", matching the compact layout's tabular look.
func renderCompactParties(d *doc, y float64, in *DocumentInput) float64 {
	c := d.cfg.Colors
	m := d.cfg.Margin
	lh := d.cfg.LineHeight
	colX := m + 95

	d.setFont("B", 10)
	d.textColor(c.Primary)
	d.text(m, y, "Customer Details:")
	d.text(colX, y, "Event Information:")
	y += 5

	d.setFont("", 9)
	d.textColor(c.Text)

	cu := in.Customer
	left := []string{
		"Name: " + SafeString(cu.Name, "N/A"),
		"Phone: " + SafeString(cu.Phone, "N/A"),
		"WhatsApp: " + SafeString(cu.WhatsApp, "N/A"),
		"Email: " + SafeString(cu.Email, "N/A"),
		"Address: " + SafeString(cu.Address, "N/A"),
	}
	cityLine := joinNonEmpty(", ", cu.City, cu.State)
	if cu.Pincode != "" {
		cityLine = joinNonEmpty(" ", cityLine, cu.Pincode)
	}
	left = append(left, SafeString(cityLine, "N/A"))

	e := in.Event
	right := []string{
		"Type: " + SafeString(e.Type, "N/A"),
		"Event: " + dateOrNA(e.Date, e.Time),
	}
	if in.BookingType == "rental" {
		right = append(right,
			"Delivery: "+dateOrNA(e.DeliveryDate, e.DeliveryTime),
			"Return: "+dateOrNA(e.ReturnDate, e.ReturnTime),
		)
	}
	right = append(right, "Venue: "+SafeString(joinNonEmpty(", ", e.VenueName, e.VenueAddress), "N/A"))

	leftY, rightY := y, y
	for _, row := range left {
		for _, ln := range d.wrap(row, 88) {
			d.text(m, leftY, ln)
			leftY += lh
		}
	}
	for _, row := range right {
		for _, ln := range d.wrap(row, right2ColWidth(d)) {
			d.text(colX, rightY, ln)
			rightY += lh
		}
	}
	if rightY > leftY {
		leftY = rightY
	}
	return leftY + 5
}

func right2ColWidth(d *doc) float64 {
	return d.cfg.PageWidth - d.cfg.Margin - (d.cfg.Margin + 95)
}

func dateOrNA(date, hhmm string) string {
	if date == "" {
		return "N/A"
	}
	return dateWithTime(date, hhmm)
}

func kindLabel(kind string) string {
	if kind == KindInvoice {
		return "invoice"
	}
	return "quote"
}

func joinNonEmpty(sep string, parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += sep
		}
		out += p
	}
	return out
}
