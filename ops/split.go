package ops

import "github.com/mkfw/hexcraft/memimage"

// Split breaks every segment longer than maxSize into consecutive chunks of
// at most maxSize bytes, preserving each segment's relative priority
// position. maxSize of zero is a no-op.
func Split(img *memimage.Image, maxSize uint32) {
	if maxSize == 0 {
		return
	}
	segments := img.Segments()
	var out []memimage.Segment
	for _, s := range segments {
		out = append(out, splitSegment(s, maxSize)...)
	}
	img.SetSegments(out)
}

func splitSegment(s memimage.Segment, maxSize uint32) []memimage.Segment {
	if uint32(s.Len()) <= maxSize {
		return []memimage.Segment{s}
	}
	var out []memimage.Segment
	addr := s.StartAddress
	data := s.Data
	for len(data) > 0 {
		n := int(maxSize)
		if n > len(data) {
			n = len(data)
		}
		out = append(out, memimage.NewSegment(addr, data[:n]))
		addr += uint32(n)
		data = data[n:]
	}
	return out
}
