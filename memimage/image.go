package memimage

import "sort"

// Image is an insertion-ordered collection of Segments. Overlap between
// segments is resolved by priority, not by rejecting the write: the most
// recently appended segment wins wherever it overlaps an older one.
// AppendSegment pushes to the tail (high priority); PrependSegment pushes
// to the head (low priority). The zero value is an empty image.
type Image struct {
	segments []Segment
}

// New returns an empty Image.
func New() *Image {
	return &Image{}
}

// WithSegments builds an Image from a pre-existing segment list, in the
// order given (first = lowest priority). Empty segments are dropped.
func WithSegments(segments []Segment) *Image {
	img := &Image{}
	for _, s := range segments {
		if !s.IsEmpty() {
			img.segments = append(img.segments, cloneSegment(s))
		}
	}
	return img
}

// Segments returns the image's segments in insertion order. The returned
// slice must not be mutated by the caller.
func (img *Image) Segments() []Segment {
	return img.segments
}

// SetSegments replaces the image's segment list wholesale, in the order
// given.
func (img *Image) SetSegments(segments []Segment) {
	img.segments = nil
	for _, s := range segments {
		if !s.IsEmpty() {
			img.segments = append(img.segments, cloneSegment(s))
		}
	}
}

// IsEmpty reports whether the image holds no non-empty segments.
func (img *Image) IsEmpty() bool {
	return len(img.segments) == 0
}

// AppendSegment adds s as the highest-priority segment. Empty segments are
// ignored.
func (img *Image) AppendSegment(s Segment) {
	if s.IsEmpty() {
		return
	}
	img.segments = append(img.segments, cloneSegment(s))
}

// PrependSegment adds s as the lowest-priority segment. Empty segments are
// ignored.
func (img *Image) PrependSegment(s Segment) {
	if s.IsEmpty() {
		return
	}
	img.segments = append([]Segment{cloneSegment(s)}, img.segments...)
}

// MinAddress returns the lowest start address among non-empty segments.
func (img *Image) MinAddress() (uint32, bool) {
	ok := false
	var min uint32
	for _, s := range img.segments {
		if s.IsEmpty() {
			continue
		}
		if !ok || s.StartAddress < min {
			min = s.StartAddress
			ok = true
		}
	}
	return min, ok
}

// MaxAddress returns the highest end address among non-empty segments.
func (img *Image) MaxAddress() (uint32, bool) {
	ok := false
	var max uint32
	for _, s := range img.segments {
		if s.IsEmpty() {
			continue
		}
		if end := s.EndAddress(); !ok || end > max {
			max = end
			ok = true
		}
	}
	return max, ok
}

// TotalBytes returns the sum of every segment's length, including bytes
// that are later shadowed by a higher-priority overlapping segment.
func (img *Image) TotalBytes() int {
	total := 0
	for _, s := range img.segments {
		total += s.Len()
	}
	return total
}

// truncateToU32 clips a segment so that no byte's address exceeds
// 0xFFFFFFFF, dropping it entirely if its start is already past the limit.
func truncateToU32(s Segment) (Segment, bool) {
	if s.IsEmpty() {
		return Segment{}, false
	}
	maxLen := uint64(0xFFFFFFFF) - uint64(s.StartAddress) + 1
	if maxLen <= 0 {
		return Segment{}, false
	}
	if uint64(len(s.Data)) > maxLen {
		return Segment{StartAddress: s.StartAddress, Data: s.Data[:maxLen]}, true
	}
	return s, true
}

// overlay merges newSeg into placed (a disjoint, sorted-by-insertion set of
// fragments), where newSeg has higher priority than everything already in
// placed: any existing fragment's bytes that fall inside newSeg's range are
// discarded and replaced by newSeg.
func overlay(placed []Segment, newSeg Segment) []Segment {
	newRange, err := newSeg.Range()
	if err != nil {
		return placed
	}
	out := make([]Segment, 0, len(placed)+1)
	for _, p := range placed {
		pRange, err := p.Range()
		if err != nil {
			continue
		}
		if !pRange.Overlaps(newRange) {
			out = append(out, p)
			continue
		}
		// left remainder: [p.start, newSeg.start)
		if pRange.Start() < newRange.Start() {
			hi := newRange.Start() - 1
			out = append(out, Segment{
				StartAddress: pRange.Start(),
				Data:         append([]byte(nil), p.Data[:hi-pRange.Start()+1]...),
			})
		}
		// right remainder: (newSeg.end, p.end]
		if pRange.End() > newRange.End() {
			lo := newRange.End() + 1
			offset := lo - pRange.Start()
			out = append(out, Segment{
				StartAddress: lo,
				Data:         append([]byte(nil), p.Data[offset:]...),
			})
		}
	}
	out = append(out, newSeg)
	return out
}

// sortAndMergeAdjacent sorts fragments by start address and concatenates
// any that are exactly contiguous.
func sortAndMergeAdjacent(fragments []Segment) []Segment {
	sort.Slice(fragments, func(i, j int) bool {
		return fragments[i].StartAddress < fragments[j].StartAddress
	})
	if len(fragments) == 0 {
		return nil
	}
	out := []Segment{fragments[0]}
	for _, s := range fragments[1:] {
		last := &out[len(out)-1]
		if last.contiguousWith(s) {
			last.Data = append(last.Data, s.Data...)
			continue
		}
		out = append(out, s)
	}
	return out
}

// NormalizedLossy returns a sorted, non-overlapping copy of the image under
// the tail-wins priority rule. Bytes that would land beyond address
// 0xFFFFFFFF are truncated silently.
func (img *Image) NormalizedLossy() *Image {
	var placed []Segment
	for _, s := range img.segments {
		trunc, ok := truncateToU32(s)
		if !ok {
			continue
		}
		placed = overlay(placed, trunc)
	}
	return &Image{segments: sortAndMergeAdjacent(placed)}
}

// Normalized returns a sorted, non-overlapping, contiguity-merged copy of
// the image, failing if any two segments overlap.
func (img *Image) Normalized() (*Image, error) {
	sorted := make([]Segment, len(img.segments))
	copy(sorted, img.segments)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].StartAddress < sorted[j].StartAddress })

	for i := 1; i < len(sorted); i++ {
		prev, _ := sorted[i-1].Range()
		cur, _ := sorted[i].Range()
		if prev.Overlaps(cur) {
			return nil, &OverlappingSegmentsError{A: prev, B: cur}
		}
	}
	return &Image{segments: sortAndMergeAdjacent(sorted)}, nil
}

// ReadByte scans from the most to the least recently appended segment and
// returns the first one covering addr.
func (img *Image) ReadByte(addr uint32) (byte, bool) {
	for i := len(img.segments) - 1; i >= 0; i-- {
		s := img.segments[i]
		if s.IsEmpty() {
			continue
		}
		if addr >= s.StartAddress && addr <= s.EndAddress() {
			return s.Data[addr-s.StartAddress], true
		}
	}
	return 0, false
}

// ReadBytes returns n per-byte results starting at addr, each true iff some
// segment covers that address (tail-wins, as ReadByte).
func (img *Image) ReadBytes(addr uint32, n int) ([]byte, []bool) {
	values := make([]byte, n)
	present := make([]bool, n)
	for i := 0; i < n; i++ {
		a := addr + uint32(i)
		if v, ok := img.ReadByte(a); ok {
			values[i] = v
			present[i] = true
		}
	}
	return values, present
}

// ReadBytesContiguous returns the n bytes starting at addr iff a single
// segment of the lossily-normalized image covers the entire window.
func (img *Image) ReadBytesContiguous(addr uint32, n int) ([]byte, bool) {
	if n <= 0 {
		return nil, false
	}
	end := uint64(addr) + uint64(n) - 1
	if end > 0xFFFFFFFF {
		return nil, false
	}
	norm := img.NormalizedLossy()
	for _, s := range norm.segments {
		if s.IsEmpty() {
			continue
		}
		if addr >= s.StartAddress && end <= uint64(s.EndAddress()) {
			offset := addr - s.StartAddress
			return append([]byte(nil), s.Data[offset:offset+uint32(n)]...), true
		}
	}
	return nil, false
}

// WriteBytes appends a new high-priority segment at addr. It never mutates
// an existing segment in place.
func (img *Image) WriteBytes(addr uint32, data []byte) {
	img.AppendSegment(NewSegment(addr, data))
}

// FillGaps collapses the image into a single segment spanning
// [min, max] with any uncovered address filled with fillByte.
func (img *Image) FillGaps(fillByte byte) {
	filled, ok := img.AsContiguous(fillByte)
	if !ok {
		img.segments = nil
		return
	}
	img.segments = []Segment{filled}
}

// AsContiguous returns a single filled segment spanning [min, max] with
// gaps filled by fillByte, or ok=false if the image is empty.
func (img *Image) AsContiguous(fillByte byte) (Segment, bool) {
	min, ok := img.MinAddress()
	if !ok {
		return Segment{}, false
	}
	max, _ := img.MaxAddress()

	length := uint64(max) - uint64(min) + 1
	data := make([]byte, length)
	for i := range data {
		data[i] = fillByte
	}

	norm := img.NormalizedLossy()
	for _, s := range norm.segments {
		if s.IsEmpty() {
			continue
		}
		offset := uint64(s.StartAddress) - uint64(min)
		copy(data[offset:], s.Data)
	}
	return Segment{StartAddress: min, Data: data}, true
}

// GapCount returns the number of gaps between consecutive segments of the
// lossily-normalized image.
func (img *Image) GapCount() int {
	norm := img.NormalizedLossy()
	if len(norm.segments) <= 1 {
		return 0
	}
	return len(norm.segments) - 1
}

// Clone returns a deep copy of the image.
func (img *Image) Clone() *Image {
	out := &Image{segments: make([]Segment, len(img.segments))}
	for i, s := range img.segments {
		out.segments[i] = cloneSegment(s)
	}
	return out
}
