package format

import "github.com/xuri/nfp"

// BuiltinNumFmts maps the fixed, documented set of built-in number-format
// ids (ECMA-376 §18.8.30) to their canonical format strings. Ids not
// present are either "General"-equivalent or locale-dependent built-ins
// with no static string representation.
var BuiltinNumFmts = map[int]string{
	0:  "General",
	1:  "0",
	2:  "0.00",
	3:  "#,##0",
	4:  "#,##0.00",
	9:  "0%",
	10: "0.00%",
	11: "0.00E+00",
	12: "# ?/?",
	13: "# ??/??",
	14: "mm-dd-yy",
	15: "d-mmm-yy",
	16: "d-mmm",
	17: "mmm-yy",
	18: "h:mm AM/PM",
	19: "h:mm:ss AM/PM",
	20: "h:mm",
	21: "h:mm:ss",
	22: "m/d/yy h:mm",
	37: "#,##0 ;(#,##0)",
	38: "#,##0 ;[Red](#,##0)",
	39: "#,##0.00;(#,##0.00)",
	40: "#,##0.00;[Red](#,##0.00)",
	45: "mm:ss",
	46: "[h]:mm:ss",
	47: "mmss.0",
	48: "##0.0E+0",
	49: "@",
}

// IsDateFormat reports whether a number format (built-in id plus optional
// custom string) renders a date/time/elapsed value, by tokenizing the
// effective format string with github.com/xuri/nfp and checking for any
// date/elapsed token. This is a classification helper only: fastxl never
// renders a cell's display string, but the styles serializer and the
// package reader both need to know whether a numFmt is date-shaped.
func IsDateFormat(nf NumberFormat) bool {
	effective := nf.Custom
	if effective == "" {
		effective = BuiltinNumFmts[nf.BuiltinID]
	}
	if effective == "" || effective == "General" || effective == "@" {
		return false
	}
	// The built-in date/time ids are a fixed, known set; check those first
	// without invoking the parser.
	if nf.Custom == "" {
		switch nf.BuiltinID {
		case 14, 15, 16, 17, 18, 19, 20, 21, 22, 45, 46, 47:
			return true
		default:
			return false
		}
	}

	parser := nfp.NumberFormatParser()
	sections := parser.Parse(effective)
	for _, sec := range sections {
		for _, tok := range sec.Items {
			if tok.TType == nfp.TokenTypeDateTimes || tok.TType == nfp.TokenTypeElapsedDateTimes {
				return true
			}
		}
	}
	return false
}

// CanonicalBuiltinID reports the builtin id whose format string exactly
// matches nf.Custom, so a custom numFmt that merely re-declares a builtin
// collapses onto that builtin's id instead of occupying its own slot in
// xl/styles.xml's numFmts table. Date/time formats are excluded from this
// collapse: Excel substitutes the viewer's locale for a builtin date id at
// display time, so folding two textually different date formats onto one
// id would silently change what the cell displays. Used by both the
// sub-value interner (on save) and the styles parser (on open), so the
// same custom-vs-builtin decision is made symmetrically in both
// directions.
func CanonicalBuiltinID(nf NumberFormat) (int, bool) {
	if nf.Custom == "" || IsDateFormat(nf) {
		return 0, false
	}
	for id, s := range BuiltinNumFmts {
		if s == nf.Custom {
			return id, true
		}
	}
	return 0, false
}
