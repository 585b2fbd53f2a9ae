package codec

import "github.com/mkfw/hexcraft/memimage"

// BinaryWriteOptions configures WriteBinary. FillGaps, if non-nil, fills
// the gaps between the minimum and maximum address with that byte and
// emits a single contiguous blob; otherwise segments are concatenated in
// insertion order with no gap filling.
type BinaryWriteOptions struct {
	FillGaps *byte
}

// ParseBinary wraps a raw byte blob as a single segment at baseAddress.
func ParseBinary(data []byte, baseAddress uint32) (*memimage.Image, error) {
	if len(data) == 0 {
		return memimage.New(), nil
	}

	length := uint64(len(data))
	end := uint64(baseAddress) + length - 1
	if end > 0xFFFFFFFF {
		return nil, &AddressOverflowError{Context: "binary base address plus length exceeds 32 bits"}
	}

	return memimage.WithSegments([]memimage.Segment{memimage.NewSegment(baseAddress, data)}), nil
}

// WriteBinary flattens img to a raw byte blob.
func WriteBinary(img *memimage.Image, options BinaryWriteOptions) []byte {
	segments := img.Segments()
	if len(segments) == 0 {
		return nil
	}

	if options.FillGaps != nil {
		filled := img.NormalizedLossy()
		filled.FillGaps(*options.FillGaps)
		if segs := filled.Segments(); len(segs) > 0 {
			return append([]byte(nil), segs[0].Data...)
		}
		return nil
	}

	total := 0
	for _, s := range segments {
		total += s.Len()
	}
	out := make([]byte, 0, total)
	for _, s := range segments {
		out = append(out, s.Data...)
	}
	return out
}
