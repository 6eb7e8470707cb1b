package reader

import (
	"encoding/xml"

	"github.com/adnsv/fastxl/xl"
)

// themeDoc extracts just the minor/major Latin font names from
// xl/theme/theme1.xml; everything else in the theme (color scheme, format
// scheme) is kept only as raw passthrough bytes, matching oxml.WriteTheme's
// "never re-derive the XML" approach.
type themeDoc struct {
	ThemeElements struct {
		FontScheme struct {
			MinorFont struct {
				Latin struct {
					Typeface string `xml:"typeface,attr"`
				} `xml:"latin"`
			} `xml:"minorFont"`
			MajorFont struct {
				Latin struct {
					Typeface string `xml:"typeface,attr"`
				} `xml:"latin"`
			} `xml:"majorFont"`
		} `xml:"fontScheme"`
	} `xml:"themeElements"`
}

// parseTheme parses xl/theme/theme1.xml into an *xl.Theme carrying both the
// raw bytes (for passthrough) and the minor/major Latin font names.
func parseTheme(data []byte) *xl.Theme {
	var doc themeDoc
	_ = xml.Unmarshal(data, &doc) // malformed theme is tolerated: raw bytes still round-trip

	return &xl.Theme{
		Raw:       data,
		MinorFont: doc.ThemeElements.FontScheme.MinorFont.Latin.Typeface,
		MajorFont: doc.ThemeElements.FontScheme.MajorFont.Latin.Typeface,
	}
}
