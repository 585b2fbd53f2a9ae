package ops

import "github.com/mkfw/hexcraft/memimage"

// MergeMode selects how other's bytes compete with img's existing bytes.
type MergeMode int

const (
	// MergeOverwrite appends other's segments at the tail (highest
	// priority): other's bytes win wherever the two images overlap.
	MergeOverwrite MergeMode = iota
	// MergePreserve prepends other's segments at the head (lowest
	// priority): img's existing bytes win wherever the two overlap.
	MergePreserve
)

// MergeOptions configures Merge. Offset is added to every address of other
// before it is written into img, saturating at the 32-bit address bounds.
// Range, if non-nil, restricts other to that window before the offset is
// applied.
type MergeOptions struct {
	Mode   MergeMode
	Offset int64
	Range  *memimage.Range
}

// Merge writes a clone of other into img according to options, without
// mutating other.
func Merge(img *memimage.Image, other *memimage.Image, options MergeOptions) {
	src := other.Clone()
	if options.Range != nil {
		FilterRanges(src, []memimage.Range{*options.Range})
	}
	if options.Offset != 0 {
		OffsetAddresses(src, options.Offset)
	}

	segments := src.Segments()
	switch options.Mode {
	case MergePreserve:
		for i := len(segments) - 1; i >= 0; i-- {
			img.PrependSegment(segments[i])
		}
	default:
		for _, s := range segments {
			img.AppendSegment(s)
		}
	}
}

// OffsetAddresses shifts every segment's start address by offset, clamping
// the result to [0, 0xFFFFFFFF] rather than wrapping.
func OffsetAddresses(img *memimage.Image, offset int64) {
	segments := img.Segments()
	out := make([]memimage.Segment, len(segments))
	for i, s := range segments {
		out[i] = memimage.NewSegment(clampedAddress(s.StartAddress, offset), s.Data)
	}
	img.SetSegments(out)
}

func clampedAddress(start uint32, offset int64) uint32 {
	v := int64(start) + offset
	if v < 0 {
		return 0
	}
	if v > 0xFFFFFFFF {
		return 0xFFFFFFFF
	}
	return uint32(v)
}
