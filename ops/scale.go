package ops

import "github.com/mkfw/hexcraft/memimage"

// ScaleAddresses multiplies every segment's start address by factor. Used
// to turn a word-addressed import (eg. 16-bit-addressed Intel-HEX) into
// byte addresses. It is transactional: every segment's scaled address must
// fit in 32 bits or no segment is modified.
func ScaleAddresses(img *memimage.Image, factor uint32) error {
	segments := img.Segments()
	out := make([]memimage.Segment, len(segments))
	for i, s := range segments {
		product := uint64(s.StartAddress) * uint64(factor)
		if product > 0xFFFFFFFF {
			return &AddressOverflowError{Context: "scale factor overflows 32-bit address space"}
		}
		out[i] = memimage.NewSegment(uint32(product), s.Data)
	}
	img.SetSegments(out)
	return nil
}

// UnscaleAddresses divides every segment's start address by divisor. It is
// transactional: every segment's address must be evenly divisible by
// divisor or no segment is modified.
func UnscaleAddresses(img *memimage.Image, divisor uint32) error {
	if divisor == 0 {
		return &InvalidRemapParamsError{Reason: "unscale divisor must not be zero"}
	}
	segments := img.Segments()
	out := make([]memimage.Segment, len(segments))
	for i, s := range segments {
		if s.StartAddress%divisor != 0 {
			return &AddressNotDivisibleError{Address: s.StartAddress, Divisor: divisor}
		}
		out[i] = memimage.NewSegment(s.StartAddress/divisor, s.Data)
	}
	img.SetSegments(out)
	return nil
}
