package reader

import (
	"encoding/xml"
	"strconv"

	"github.com/adnsv/fastxl/xl"
)

// coreDoc mirrors docProps/core.xml's Dublin Core + package-specific
// elements. Struct-tag unmarshaling, grounded on rels.go's approach of
// letting encoding/xml do the structural work and keeping a thin semantic
// layer on top.
type coreDoc struct {
	Title          string `xml:"title"`
	Subject        string `xml:"subject"`
	Creator        string `xml:"creator"`
	Keywords       string `xml:"keywords"`
	Description    string `xml:"description"`
	Category       string `xml:"category"`
	LastModifiedBy string `xml:"lastModifiedBy"`
}

func parseCoreProperties(data []byte, wb *xl.Workbook) error {
	var doc coreDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return err
	}
	wb.Properties.Title = doc.Title
	wb.Properties.Subject = doc.Subject
	wb.Properties.Creator = doc.Creator
	wb.Properties.Keywords = doc.Keywords
	wb.Properties.Description = doc.Description
	wb.Properties.Category = doc.Category
	wb.Properties.LastModifiedBy = doc.LastModifiedBy
	return nil
}

type appDoc struct {
	Company string `xml:"Company"`
	Manager string `xml:"Manager"`
}

func parseAppProperties(data []byte, wb *xl.Workbook) error {
	var doc appDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return err
	}
	wb.Properties.Company = doc.Company
	wb.Properties.Manager = doc.Manager
	return nil
}

// customPropertiesDoc mirrors docProps/custom.xml: one <property> per
// entry, each wrapping a single typed VT_* child element.
type customPropertiesDoc struct {
	Properties []customPropertyEl `xml:"property"`
}

type customPropertyEl struct {
	Name    string `xml:"name,attr"`
	LPWSTR  *string `xml:"lpwstr"`
	Bool    *string `xml:"bool"`
	I4      *string `xml:"i4"`
	R8      *string `xml:"r8"`
	Filetime *string `xml:"filetime"`
}

func parseCustomProperties(data []byte, wb *xl.Workbook) error {
	var doc customPropertiesDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return err
	}
	if len(doc.Properties) == 0 {
		return nil
	}
	if wb.Properties.Custom == nil {
		wb.Properties.Custom = map[string]any{}
	}
	for _, p := range doc.Properties {
		switch {
		case p.LPWSTR != nil:
			wb.Properties.Custom[p.Name] = *p.LPWSTR
		case p.Bool != nil:
			wb.Properties.Custom[p.Name] = *p.Bool == "true" || *p.Bool == "1"
		case p.I4 != nil:
			if n, err := strconv.Atoi(*p.I4); err == nil {
				wb.Properties.Custom[p.Name] = n
			}
		case p.R8 != nil:
			if f, err := strconv.ParseFloat(*p.R8, 64); err == nil {
				wb.Properties.Custom[p.Name] = f
			}
		case p.Filetime != nil:
			wb.Properties.Custom[p.Name] = *p.Filetime
		}
	}
	return nil
}
