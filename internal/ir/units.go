package ir

import "fmt"

// HwpUnit is the HWP length unit: 1/7200 inch.
type HwpUnit int32

// PointValue is a length or size in typographic points.
type PointValue float64

// ColorRef is a COLORREF value laid out as 0x00BBGGRR.
type ColorRef uint32

const (
	hwpUnitsPerInch  = 7200
	hwpUnitsPerPoint = 100
	mmPerInch        = 25.4
)

// ToPoint converts an HWP length to points.
func ToPoint(u HwpUnit) PointValue {
	return PointValue(float64(u) / hwpUnitsPerPoint)
}

// ToInch converts an HWP length to inches.
func ToInch(u HwpUnit) float64 {
	return float64(u) / hwpUnitsPerInch
}

// ToMillimeter converts an HWP length to millimetres.
func ToMillimeter(u HwpUnit) float64 {
	return ToInch(u) * mmPerInch
}

// ToPixel converts an HWP length to device pixels at the given DPI.
func ToPixel(u HwpUnit, dpi float64) float64 {
	return ToInch(u) * dpi
}

// FromPoint converts points back to HWP units, rounding to the nearest unit.
func FromPoint(p PointValue) HwpUnit {
	v := float64(p) * hwpUnitsPerPoint
	if v < 0 {
		return HwpUnit(v - 0.5)
	}
	return HwpUnit(v + 0.5)
}

// CharSizeToPoint converts a CharShape base size (1/100 pt) to points.
func CharSizeToPoint(size int32) PointValue {
	return PointValue(float64(size) / 100)
}

// RGB splits the colour into its red, green and blue components.
func (c ColorRef) RGB() (r, g, b uint8) {
	return uint8(c), uint8(c >> 8), uint8(c >> 16)
}

// Hex formats the colour as #rrggbb.
func (c ColorRef) Hex() string {
	r, g, b := c.RGB()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// CSS formats the colour as rgb(r,g,b).
func (c ColorRef) CSS() string {
	r, g, b := c.RGB()
	return fmt.Sprintf("rgb(%d,%d,%d)", r, g, b)
}

// MarshalText renders the colour as #rrggbb in JSON output.
func (c ColorRef) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText parses a #rrggbb colour.
func (c *ColorRef) UnmarshalText(text []byte) error {
	var r, g, b uint8
	if _, err := fmt.Sscanf(string(text), "#%02x%02x%02x", &r, &g, &b); err != nil {
		return fmt.Errorf("invalid colour %q: %w", text, err)
	}
	*c = ColorRef(uint32(r) | uint32(g)<<8 | uint32(b)<<16)
	return nil
}
