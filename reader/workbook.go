package reader

import (
	"encoding/xml"

	"github.com/adnsv/fastxl/xl"
)

// workbookDoc mirrors xl/workbook.xml as written by oxml.WriteWorkbook.
type workbookDoc struct {
	BookViews struct {
		WorkbookView []struct {
			ActiveTab int `xml:"activeTab,attr"`
		} `xml:"workbookView"`
	} `xml:"bookViews"`
	Sheets struct {
		Sheet []struct {
			Name    string `xml:"name,attr"`
			SheetID int32  `xml:"sheetId,attr"`
			RID     string `xml:"id,attr"` // r:id, local-name match ignores the "r" prefix
		} `xml:"sheet"`
	} `xml:"sheets"`
	DefinedNames struct {
		DefinedName []struct {
			Name         string `xml:"name,attr"`
			LocalSheetID *int32 `xml:"localSheetId,attr"`
			Hidden       bool   `xml:"hidden,attr"`
			RefersTo     string `xml:",chardata"`
		} `xml:"definedName"`
	} `xml:"definedNames"`
}

type sheetListing struct {
	name string
	rID  string
}

// parseWorkbook parses xl/workbook.xml, appending each listed sheet to wb
// (as an empty, not-yet-populated Sheet via AddSheetRaw) and returns the
// ordered rId list the caller resolves against workbook.xml.rels to find
// each sheet's actual data part. Active-tab and defined names are applied
// directly to wb.
func parseWorkbook(data []byte, wb *xl.Workbook) ([]sheetListing, error) {
	var doc workbookDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	listings := make([]sheetListing, 0, len(doc.Sheets.Sheet))
	for _, s := range doc.Sheets.Sheet {
		sh := wb.AddSheetRaw(s.Name)
		listings = append(listings, sheetListing{name: s.Name, rID: s.RID})
		_ = sh
	}

	if len(doc.BookViews.WorkbookView) > 0 {
		active := doc.BookViews.WorkbookView[0].ActiveTab
		if active >= 0 && active < len(wb.Sheets()) {
			wb.Sheets()[active].SetActiveRaw()
		}
	}

	for _, dn := range doc.DefinedNames.DefinedName {
		sheetID := int32(-1)
		if dn.LocalSheetID != nil {
			sheetID = *dn.LocalSheetID
		}
		wb.DefinedNames = append(wb.DefinedNames, xl.DefinedName{
			Name:     dn.Name,
			RefersTo: dn.RefersTo,
			SheetID:  sheetID,
			Hidden:   dn.Hidden,
		})
	}

	return listings, nil
}
