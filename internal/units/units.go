// Package units converts between physical label dimensions (mm,
// inches) and printer dots, per spec §6: dots = mm*dpi/25.4 and
// dots = inches*dpi. Arithmetic runs through shopspring/decimal rather
// than raw float64 so repeated conversions at odd DPI values don't
// accumulate binary-floating-point drift.
package units

import "github.com/shopspring/decimal"

var mmPerInch = decimal.NewFromInt(254).Div(decimal.NewFromInt(10))

// DotsFromMM converts a millimeter dimension to dots at the given DPI,
// rounding to the nearest whole dot.
func DotsFromMM(mm float64, dpi int) int {
	d := decimal.NewFromFloat(mm).
		Mul(decimal.NewFromInt(int64(dpi))).
		Div(mmPerInch)
	return int(d.Round(0).IntPart())
}

// DotsFromInches converts an inch dimension to dots at the given DPI.
func DotsFromInches(inches float64, dpi int) int {
	d := decimal.NewFromFloat(inches).Mul(decimal.NewFromInt(int64(dpi)))
	return int(d.Round(0).IntPart())
}
