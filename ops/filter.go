package ops

import "github.com/mkfw/hexcraft/memimage"

// FilterRanges keeps only the bytes of img that fall inside ranges,
// discarding everything else. An empty ranges list clears the image
// entirely. Each surviving segment is the intersection of one original
// segment with one range, in segment order then range order, so priority
// and relative position are preserved.
func FilterRanges(img *memimage.Image, ranges []memimage.Range) {
	if len(ranges) == 0 {
		img.SetSegments(nil)
		return
	}

	segments := img.Segments()
	var out []memimage.Segment
	for _, s := range segments {
		sRange, err := s.Range()
		if err != nil {
			continue
		}
		for _, r := range ranges {
			inter, ok := sRange.Intersection(r)
			if !ok {
				continue
			}
			offset := inter.Start() - sRange.Start()
			length := inter.Length()
			out = append(out, memimage.NewSegment(inter.Start(), s.Data[offset:offset+length]))
		}
	}
	img.SetSegments(out)
}
