package memimage

// Segment is a contiguous run of bytes at a base address. end_address =
// StartAddress + len(Data) - 1, saturating at 0xFFFFFFFF for the purposes
// of reasoning about coverage (lossy views truncate data that would cross
// that boundary; see Image.NormalizedLossy).
type Segment struct {
	StartAddress uint32
	Data         []byte
}

// NewSegment builds a Segment, copying data so the caller's backing array
// cannot alias mutable state inside the image.
func NewSegment(start uint32, data []byte) Segment {
	cp := make([]byte, len(data))
	copy(cp, data)
	return Segment{StartAddress: start, Data: cp}
}

// Len returns the number of bytes in the segment.
func (s Segment) Len() int { return len(s.Data) }

// IsEmpty reports whether the segment holds no bytes.
func (s Segment) IsEmpty() bool { return len(s.Data) == 0 }

// EndAddress returns the address of the segment's last byte, saturating at
// 0xFFFFFFFF. Only meaningful for non-empty segments.
func (s Segment) EndAddress() uint32 {
	if len(s.Data) == 0 {
		return s.StartAddress
	}
	end := uint64(s.StartAddress) + uint64(len(s.Data)) - 1
	if end > 0xFFFFFFFF {
		return 0xFFFFFFFF
	}
	return uint32(end)
}

// Range returns the segment's address span as a Range. Only meaningful for
// non-empty segments whose span fits in a Range (ie. does not overflow).
func (s Segment) Range() (Range, error) {
	return RangeFromStartLength(s.StartAddress, uint32(len(s.Data)))
}

// contiguousWith reports whether s immediately precedes other: s.end + 1 ==
// other.start.
func (s Segment) contiguousWith(other Segment) bool {
	if s.IsEmpty() || other.IsEmpty() {
		return false
	}
	end := uint64(s.StartAddress) + uint64(len(s.Data)) - 1
	return end+1 == uint64(other.StartAddress)
}

func cloneSegment(s Segment) Segment {
	return NewSegment(s.StartAddress, s.Data)
}
