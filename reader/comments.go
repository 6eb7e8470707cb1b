package reader

import (
	"encoding/xml"

	"github.com/adnsv/fastxl/xl"
)

// commentsDoc mirrors xl/comments<N>.xml as written by oxml.WriteComments.
type commentsDoc struct {
	Authors struct {
		Author []string `xml:"author"`
	} `xml:"authors"`
	CommentList struct {
		Comment []struct {
			Ref      string `xml:"ref,attr"`
			AuthorID int    `xml:"authorId,attr"`
			Text     struct {
				T string `xml:"t"`
			} `xml:"text"`
		} `xml:"comment"`
	} `xml:"commentList"`
}

// parseComments applies a sheet's comments part onto its already-populated
// cell matrix, by cell reference.
func parseComments(data []byte, sh *xl.Sheet) error {
	var doc commentsDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return err
	}
	for _, c := range doc.CommentList.Comment {
		row, col, err := xl.ParseCellRef(c.Ref)
		if err != nil {
			continue
		}
		author := ""
		if c.AuthorID >= 0 && c.AuthorID < len(doc.Authors.Author) {
			author = doc.Authors.Author[c.AuthorID]
		}
		cell := sh.RawCell(row, col)
		cell.SetComment(author, c.Text.T)
		sh.MarkWritten(row, col)
	}
	return nil
}
