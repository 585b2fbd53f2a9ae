package ops

import "github.com/mkfw/hexcraft/memimage"

// FillOptions configures Fill and FillRanges. Pattern is tiled across the
// target range; an empty Pattern defaults to a single 0xFF byte. Overwrite
// controls whether bytes already present in the range are cleared before
// the pattern is laid down (true) or merely backfilled into gaps (false,
// the default: the fill segment is always the lowest-priority write).
type FillOptions struct {
	Pattern   []byte
	Overwrite bool
}

func (o FillOptions) pattern() []byte {
	if len(o.Pattern) == 0 {
		return []byte{0xFF}
	}
	return o.Pattern
}

// Fill lays a tiled copy of options.Pattern across r. When options.Overwrite
// is set, any bytes already in r are cut away first so the pattern is fully
// visible; otherwise the pattern is added as the lowest-priority segment and
// only shows through existing gaps.
func Fill(img *memimage.Image, r memimage.Range, options FillOptions) {
	if options.Overwrite {
		Cut(img, r)
	}
	pattern := options.pattern()
	data := make([]byte, r.Length())
	for i := range data {
		data[i] = pattern[i%len(pattern)]
	}
	img.PrependSegment(memimage.NewSegment(r.Start(), data))
}

// FillRanges applies Fill to each range in turn, in list order.
func FillRanges(img *memimage.Image, ranges []memimage.Range, options FillOptions) {
	for _, r := range ranges {
		Fill(img, r, options)
	}
}
