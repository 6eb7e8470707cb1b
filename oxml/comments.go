package oxml

import (
	"github.com/adnsv/fastxl/block"
	"github.com/adnsv/fastxl/filewriter"
	"github.com/adnsv/fastxl/xl"
)

// WriteComments emits xl/comments<N>.xml for a sheet's cell comments. It
// writes the classic "comments" part schema without an accompanying VML
// drawing: modern Excel renders these as plain comment bubbles, just
// without the legacy author-box chrome a vmlDrawing part would add.
func WriteComments(fw filewriter.FileWriter, sh *xl.Sheet) error {
	entries := sortedEntries(sh)
	var withComments []block.Entry
	authors := map[string]int{}
	var authorList []string
	for _, e := range entries {
		if author, text, ok := e.Cell.Comment(); ok && text != "" {
			withComments = append(withComments, e)
			if _, seen := authors[author]; !seen {
				authors[author] = len(authorList)
				authorList = append(authorList, author)
			}
		}
	}
	if len(withComments) == 0 {
		return nil
	}

	return writePart(fw, sh.CommentsPartPath(), func(w *Writer) {
		w.StartRoot("comments").WriteAttribute("xmlns", nsSpreadsheetML)

		w.StartElement("authors")
		for _, a := range authorList {
			w.StartElement("author").WriteText(a).EndElement()
		}
		w.EndElement()

		w.StartElement("commentList")
		for _, e := range withComments {
			author, text, _ := e.Cell.Comment()
			w.StartElement("comment").
				WriteAttribute("ref", xl.CellRef(e.Row, e.Col)).
				WriteAttribute("authorId", authors[author])
			w.StartElement("text")
			w.StartElement("t").WriteAttribute("xml:space", "preserve").WriteText(text).EndElement()
			w.EndElement()
			w.EndElement()
		}
		w.EndElement()

		w.EndElement()
	})
}
