package pdf

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/go-pdf/fpdf"
	"github.com/sirupsen/logrus"
)

// doc wraps the fpdf surface with the layout helpers the section renderers
// share. One doc is allocated per generation call; nothing is reused across
// calls, so concurrent generation needs no coordination.
type doc struct {
	f   *fpdf.Fpdf
	cfg RenderConfig
	tr  func(string) string
}

func newDoc(cfg RenderConfig) *doc {
	f := fpdf.New("P", "mm", "A4", "")
	f.SetMargins(cfg.Margin, cfg.Margin, cfg.Margin)
	// Pagination is the assembler's job; fpdf must never break pages itself.
	f.SetAutoPageBreak(false, 0)
	f.SetCompression(false)
	// Stable object ordering so identical inputs produce identical bytes.
	f.SetCatalogSort(true)
	d := &doc{f: f, cfg: cfg, tr: f.UnicodeTranslatorFromDescriptor("")}
	return d
}

func (d *doc) addPage() { d.f.AddPage() }

// bottom is the lowest usable Y on a page.
func (d *doc) bottom() float64 { return d.cfg.PageHeight - d.cfg.Margin }

// ensureSpace starts a new page when the estimated section height does not
// fit below the cursor, returning the (possibly reset) cursor. The returned
// cursor is the top margin immediately after a break.
func (d *doc) ensureSpace(y, needed float64) float64 {
	if y+needed > d.bottom() {
		d.addPage()
		return d.cfg.Margin
	}
	return y
}

func (d *doc) setFont(style string, size float64) {
	d.f.SetFont("Helvetica", style, size)
}

func (d *doc) textColor(c RGB) { d.f.SetTextColor(c.R, c.G, c.B) }
func (d *doc) fillColor(c RGB) { d.f.SetFillColor(c.R, c.G, c.B) }
func (d *doc) drawColor(c RGB) { d.f.SetDrawColor(c.R, c.G, c.B) }

func (d *doc) text(x, y float64, s string) {
	d.f.Text(x, y, d.tr(s))
}

func (d *doc) textRight(right, y float64, s string) {
	t := d.tr(s)
	d.f.Text(right-d.f.GetStringWidth(t), y, t)
}

func (d *doc) textCenter(center, y float64, s string) {
	t := d.tr(s)
	d.f.Text(center-d.f.GetStringWidth(t)/2, y, t)
}

// wrap splits s to fit within width, for multi-line fields (addresses,
// descriptions, terms).
func (d *doc) wrap(s string, width float64) []string {
	return d.f.SplitText(d.tr(s), width)
}

func (d *doc) line(x1, y1, x2, y2 float64) { d.f.Line(x1, y1, x2, y2) }

func (d *doc) rect(x, y, w, h float64, style string) { d.f.Rect(x, y, w, h, style) }

func (d *doc) roundedRect(x, y, w, h, r float64, style string) {
	d.f.RoundedRect(x, y, w, h, r, "1234", style)
}

// image embeds raw PNG/JPEG bytes. Undecodable images are logged and
// skipped; an asset defect never fails the document.
func (d *doc) image(name string, data []byte, x, y, w, h float64) bool {
	if len(data) == 0 {
		return false
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		logrus.WithError(err).WithField("asset", name).Warn("pdf: skipping undecodable image")
		return false
	}
	var imgType string
	switch format {
	case "png":
		imgType = "PNG"
	case "jpeg":
		imgType = "JPG"
	default:
		logrus.WithField("asset", name).WithField("format", format).Warn("pdf: unsupported image format")
		return false
	}
	opts := fpdf.ImageOptions{ImageType: imgType}
	d.f.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	d.f.ImageOptions(name, x, y, w, h, false, opts, 0, "")
	return true
}

// watermark stamps a diagonal gray label across the current page.
func (d *doc) watermark(label string) {
	d.setFont("B", 60)
	d.textColor(RGB{200, 200, 200})
	cx := d.cfg.PageWidth / 2
	cy := d.cfg.PageHeight / 2
	d.f.TransformBegin()
	d.f.TransformRotate(45, cx, cy)
	d.textCenter(cx, cy, label)
	d.f.TransformEnd()
}

// output serializes the finished document. Either a complete document is
// returned or the call fails; no partial output.
func (d *doc) output() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.f.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf generation failed: %w", err)
	}
	return buf.Bytes(), nil
}
