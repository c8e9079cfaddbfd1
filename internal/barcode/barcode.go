package barcode

import (
	"bytes"
	"fmt"
	"image/png"

	bc "github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
)

// PNG encodes payload as a Code 128 barcode scaled to the given pixel size.
// Product labels use the product code as payload so a scan resolves the row
// directly.
func PNG(payload string, width, height int) ([]byte, error) {
	if payload == "" {
		return nil, fmt.Errorf("empty barcode payload")
	}
	if width <= 0 {
		width = 300
	}
	if height <= 0 {
		height = 80
	}
	code, err := code128.Encode(payload)
	if err != nil {
		return nil, fmt.Errorf("encode barcode: %w", err)
	}
	scaled, err := bc.Scale(code, width, height)
	if err != nil {
		return nil, fmt.Errorf("scale barcode: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, fmt.Errorf("render barcode: %w", err)
	}
	return buf.Bytes(), nil
}
