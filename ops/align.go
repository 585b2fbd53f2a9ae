package ops

import "github.com/mkfw/hexcraft/memimage"

// AlignOptions configures Align. Alignment need not be a power of two.
type AlignOptions struct {
	Alignment   uint32
	FillByte    byte
	AlignLength bool
}

// Align pads each segment of the image's normalized snapshot out to
// Alignment boundaries: its start is rounded down, and, when AlignLength is
// set, its length is rounded up so the padded span's length is itself a
// multiple of Alignment. Padding is added as the lowest-priority segment,
// so it only ever fills addresses the original segment did not already
// cover; the result is then lossily normalized.
func Align(img *memimage.Image, options AlignOptions) error {
	if options.Alignment == 0 {
		return &InvalidAlignmentError{Value: options.Alignment}
	}

	norm := img.NormalizedLossy()
	var pads, originals []memimage.Segment
	for _, s := range norm.Segments() {
		if s.IsEmpty() {
			continue
		}
		start := s.StartAddress
		end := s.EndAddress()

		alignedStart := start - start%options.Alignment
		if alignedStart < start {
			pads = append(pads, memimage.NewSegment(alignedStart, filled(start-alignedStart, options.FillByte)))
		}

		if options.AlignLength {
			gapStart := uint64(end) + 1
			alignedEndExclusive := ceilToMultiple(gapStart, uint64(options.Alignment))
			if alignedEndExclusive > 0x100000000 {
				alignedEndExclusive = 0x100000000
			}
			if alignedEndExclusive > gapStart {
				pads = append(pads, memimage.NewSegment(uint32(gapStart), filled(uint32(alignedEndExclusive-gapStart), options.FillByte)))
			}
		}

		originals = append(originals, s)
	}

	img.SetSegments(append(pads, originals...))
	collapsed := img.NormalizedLossy()
	img.SetSegments(collapsed.Segments())
	return nil
}

func filled(length uint32, value byte) []byte {
	b := make([]byte, length)
	for i := range b {
		b[i] = value
	}
	return b
}

func ceilToMultiple(value, multiple uint64) uint64 {
	return ((value + multiple - 1) / multiple) * multiple
}
