package pdf

import "time"

// Document kinds rendered by the assemblers.
const (
	KindQuotation = "QUOTATION"
	KindInvoice   = "INVOICE"
)

// LineItem is one row of the items table. Total is trusted as
// Quantity * UnitPrice; the pipeline renders, it does not recompute.
type LineItem struct {
	Name            string
	Category        string
	Quantity        int
	UnitPrice       float64
	Total           float64
	SecurityDeposit float64 // per unit, rentals only
}

// Contact is an optional secondary party (groom/bride) printed on wedding
// documents. A Contact with an empty Name is omitted entirely.
type Contact struct {
	Name     string
	WhatsApp string
	Address  string
}

// EventInfo carries the event block of a booking document.
type EventInfo struct {
	Type         string
	Participant  string
	Date         string
	Time         string
	DeliveryDate string
	DeliveryTime string
	ReturnDate   string
	ReturnTime   string
	VenueName    string
	VenueAddress string
	Groom        Contact
	Bride        Contact
}

// PackageInfo describes a booked package; the section is only rendered when
// Name is non-empty.
type PackageInfo struct {
	Name          string
	Variant       string
	Category      string
	ExtraQuantity int
	Description   string
}

// CustomerInfo is the bill-to block.
type CustomerInfo struct {
	Name     string
	Code     string
	Phone    string
	WhatsApp string
	Email    string
	Address  string
	City     string
	State    string
	Pincode  string
}

// Pricing carries the money totals of the document. All values are
// pre-computed by the caller.
type Pricing struct {
	Subtotal        float64
	DiscountAmount  float64
	DiscountPercent float64
	CouponCode      string
	CouponDiscount  float64
	DistanceCharge  float64
	CustomCharge    float64
	TaxAmount       float64
	TaxPercent      float64
	TotalAmount     float64
	SecurityDeposit float64
	PaidAmount      float64
	PendingAmount   float64
	PaymentMethod   string
	PaymentType     string
}

// CompanyInfo is the resolved branding/settings block. Callers fetch it once
// (franchise settings with built-in defaults) and pass it in; the assemblers
// perform no lookups of their own.
type CompanyInfo struct {
	Name           string
	Tagline        string
	Phone          string
	Email          string
	Website        string
	Address        string
	GSTNumber      string
	TermsText      string
	PrimaryColor   string // hex, ex: #1b5e20
	SecondaryColor string
	Logo           []byte // PNG or JPEG; decode failures are non-fatal
	Signature      []byte
}

// DocumentInput aggregates everything one document generation call needs.
// It is created fresh per call and never reused.
type DocumentInput struct {
	Kind        string // KindQuotation or KindInvoice
	Number      string
	ReferenceID string
	Status      string
	BookingType string // rental or sale
	IssuedAt    time.Time

	Customer CustomerInfo
	Event    EventInfo
	Package  PackageInfo
	Items    []LineItem
	Pricing  Pricing
	Company  CompanyInfo
	Notes    string
}

// Sanitize applies the boundary defaults once, before the input enters the
// renderer pipeline. Required display fields get placeholder fallbacks;
// optional fields stay empty so section renderers can skip them.
func (in *DocumentInput) Sanitize() {
	in.Kind = SafeString(in.Kind, KindQuotation)
	in.Number = SafeString(in.Number, "N/A")
	in.Status = SafeString(in.Status, "")
	in.BookingType = SafeString(in.BookingType, "rental")

	in.Customer.Name = SafeString(in.Customer.Name, "Customer")
	in.Customer.Phone = SafeString(in.Customer.Phone, "N/A")
	in.Customer.Address = SafeString(in.Customer.Address, "Address not provided")

	for i := range in.Items {
		in.Items[i].Name = SafeString(in.Items[i].Name, "Product")
		in.Items[i].Category = SafeString(in.Items[i].Category, "general")
		if in.Items[i].Quantity < 0 {
			in.Items[i].Quantity = 0
		}
		in.Items[i].UnitPrice = SafeNumber(in.Items[i].UnitPrice, 0)
		in.Items[i].Total = SafeNumber(in.Items[i].Total, 0)
		in.Items[i].SecurityDeposit = SafeNumber(in.Items[i].SecurityDeposit, 0)
	}

	p := &in.Pricing
	p.Subtotal = SafeNumber(p.Subtotal, 0)
	p.DiscountAmount = SafeNumber(p.DiscountAmount, 0)
	p.CouponDiscount = SafeNumber(p.CouponDiscount, 0)
	p.DistanceCharge = SafeNumber(p.DistanceCharge, 0)
	p.CustomCharge = SafeNumber(p.CustomCharge, 0)
	p.TaxAmount = SafeNumber(p.TaxAmount, 0)
	p.TotalAmount = SafeNumber(p.TotalAmount, 0)
	p.SecurityDeposit = SafeNumber(p.SecurityDeposit, 0)
	p.PaidAmount = SafeNumber(p.PaidAmount, 0)
	p.PendingAmount = SafeNumber(p.PendingAmount, 0)

	in.Company = in.Company.withDefaults()
}

// withDefaults fills the built-in branding used when franchise settings are
// missing or the settings lookup failed.
func (c CompanyInfo) withDefaults() CompanyInfo {
	c.Name = SafeString(c.Name, "SAFAWALA")
	c.Tagline = SafeString(c.Tagline, "Making Your Special Moments Memorable")
	c.Phone = SafeString(c.Phone, "N/A")
	c.Email = SafeString(c.Email, "N/A")
	c.PrimaryColor = SafeString(c.PrimaryColor, "#1b5e20")
	c.SecondaryColor = SafeString(c.SecondaryColor, "#4caf50")
	return c
}
