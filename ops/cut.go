package ops

import "github.com/mkfw/hexcraft/memimage"

// Cut removes every byte in r from the image, keeping each overlapping
// segment's prefix (before r) and suffix (after r) as separate segments in
// the same list position, preserving insertion-order priority.
func Cut(img *memimage.Image, r memimage.Range) {
	segments := img.Segments()
	out := make([]memimage.Segment, 0, len(segments))
	for _, s := range segments {
		out = append(out, cutSegment(s, r)...)
	}
	img.SetSegments(out)
}

// CutRanges applies Cut to each range in turn, in list order.
func CutRanges(img *memimage.Image, ranges []memimage.Range) {
	for _, r := range ranges {
		Cut(img, r)
	}
}

func cutSegment(s memimage.Segment, r memimage.Range) []memimage.Segment {
	sRange, err := s.Range()
	if err != nil || !sRange.Overlaps(r) {
		return []memimage.Segment{s}
	}

	var out []memimage.Segment
	if sRange.Start() < r.Start() {
		prefixLen := r.Start() - sRange.Start()
		out = append(out, memimage.NewSegment(sRange.Start(), s.Data[:prefixLen]))
	}
	if sRange.End() > r.End() {
		suffixStart := r.End() + 1
		offset := suffixStart - sRange.Start()
		out = append(out, memimage.NewSegment(suffixStart, s.Data[offset:]))
	}
	return out
}
