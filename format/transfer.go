package format

// StyleTransferContext maps every id of a source Repository to an id in a
// destination Repository, built eagerly at construction by interning each
// source descriptor into the destination. This supports cross-workbook
// style transfer.
type StyleTransferContext struct {
	mapping []uint32
}

// NewStyleTransferContext interns every descriptor of src into dst and
// records the id mapping.
func NewStyleTransferContext(src, dst *Repository) *StyleTransferContext {
	all := src.All()
	ctx := &StyleTransferContext{mapping: make([]uint32, len(all))}
	for i, d := range all {
		ctx.mapping[i] = dst.Intern(d)
	}
	return ctx
}

// Map translates a source-repository id to the corresponding
// destination-repository id.
func (c *StyleTransferContext) Map(srcID uint32) uint32 {
	if int(srcID) >= len(c.mapping) {
		return 0
	}
	return c.mapping[srcID]
}
