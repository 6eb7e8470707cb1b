package oxml

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/adnsv/fastxl/filewriter"
	"github.com/adnsv/fastxl/xl"
)

// WriteMedia writes every newly embedded picture blob (added this session
// via xl.Workbook.AddMedia) to its own xl/media part, named by its
// content-hash id. A picture that already existed in the source package and
// was never touched is not in wb.MediaIDs at all: it is carried forward by
// the orchestrator's passthrough phase under its original part name, so any
// passed-through drawing's r:embed relationship still resolves. Only a
// picture this library itself adds gets the content-hash name; nothing
// references it by any other name yet, since this library does not author
// drawing anchors.
func WriteMedia(fw filewriter.FileWriter, wb *xl.Workbook) error {
	ids := wb.MediaIDs()
	sort.Strings(ids)
	for _, id := range ids {
		blob, ok := wb.MediaBlob(id)
		if !ok {
			continue
		}
		path := fmt.Sprintf("xl/media/image_%s.%s", id, sniffImageExt(blob))
		if err := fw.WriteWholeFile(path, blob); err != nil {
			return err
		}
	}
	return nil
}

// sniffImageExt identifies PNG/JPEG/GIF by magic bytes; anything else falls
// back to "bin" rather than guessing wrong.
func sniffImageExt(blob []byte) string {
	switch {
	case bytes.HasPrefix(blob, []byte("\x89PNG\r\n\x1a\n")):
		return "png"
	case bytes.HasPrefix(blob, []byte("\xff\xd8\xff")):
		return "jpeg"
	case bytes.HasPrefix(blob, []byte("GIF8")):
		return "gif"
	default:
		return "bin"
	}
}
