package styles

import "math"

// Unit-conversion contract shared by the docx writer and the HTML preview.
// Both renderers must derive every length from these constants so that
// spacing, indentation, and font sizing agree to within rounding.
const (
	// PxPerPt converts points to CSS pixels (1pt = 4/3 px at 96 DPI).
	PxPerPt = 4.0 / 3.0

	// CmPerInch is the metric base for every centimeter conversion.
	CmPerInch = 2.54

	// PxPerCm converts centimeters to CSS pixels (96 / 2.54 ≈ 37.8).
	PxPerCm = 96.0 / CmPerInch

	// TwipsPerPt converts points to twentieths of a point (OOXML lengths).
	TwipsPerPt = 20

	// TwipsPerInch follows from 72 points per inch.
	TwipsPerInch = 72 * TwipsPerPt

	// EMUPerInch and EMUPerPixel size embedded drawings.
	EMUPerInch  = 914400
	EMUPerPixel = 9525

	// LineUnitsPerSpacing converts a line-spacing ratio to OOXML w:line
	// units (240ths of a line).
	LineUnitsPerSpacing = 240
)

// Layout constants both renderers consume verbatim. Changing one of these
// changes the exported document and the preview together.
const (
	// ListIndentStepPt is the left indent added per nesting depth.
	ListIndentStepPt = 18.0

	// ListHangingIndentPt pulls a list marker back out of the text block.
	ListHangingIndentPt = 18.0

	// CodeBlockWidthIn fixes the shaded code container width.
	CodeBlockWidthIn = 6.0

	// RuleBorderSize is the horizontal-rule border width in eighths of a
	// point (OOXML w:sz units; 6 renders as a hairline).
	RuleBorderSize = 6

	// RuleSpacingPt pads a horizontal rule above and below.
	RuleSpacingPt = 6.0
)

// PtToPx converts points to CSS pixels.
func PtToPx(pt float64) float64 { return pt * PxPerPt }

// CmToPx converts centimeters to CSS pixels.
func CmToPx(cm float64) float64 { return cm * PxPerCm }

// CmToPt converts centimeters to points.
func CmToPt(cm float64) float64 { return cm / CmPerInch * 72 }

// PtToTwips converts points to twips, rounding to the nearest unit.
func PtToTwips(pt float64) int { return int(math.Round(pt * TwipsPerPt)) }

// CmToTwips converts centimeters to twips, rounding to the nearest unit.
func CmToTwips(cm float64) int { return PtToTwips(CmToPt(cm)) }

// InchToTwips converts inches to twips.
func InchToTwips(in float64) int { return int(math.Round(in * TwipsPerInch)) }

// InchToEMU converts inches to English Metric Units.
func InchToEMU(in float64) int64 { return int64(math.Round(in * EMUPerInch)) }

// PxToEMU converts pixels (96 DPI) to English Metric Units.
func PxToEMU(px int) int64 { return int64(px) * EMUPerPixel }

// PtToHalfPoints converts points to OOXML half-point font sizes. Rounding
// happens here and only here; the document model keeps exact point values.
func PtToHalfPoints(pt float64) int { return int(math.Round(pt * 2)) }

// SpacingToLineUnits converts a line-spacing ratio to OOXML w:line units.
func SpacingToLineUnits(ratio float64) int {
	return int(math.Round(ratio * LineUnitsPerSpacing))
}
