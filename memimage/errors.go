package memimage

import "fmt"

// ZeroLengthError is returned when a range of zero length is requested.
type ZeroLengthError struct {
	Start uint32
}

func (e *ZeroLengthError) Error() string {
	return fmt.Sprintf("zero length range at %#x", e.Start)
}

// StartExceedsEndError is returned when a range's start address is greater
// than its end address.
type StartExceedsEndError struct {
	Start, End uint32
}

func (e *StartExceedsEndError) Error() string {
	return fmt.Sprintf("range start (%#x) exceeds end (%#x)", e.Start, e.End)
}

// AddressOverflowError is returned whenever 32-bit address arithmetic would
// overflow.
type AddressOverflowError struct {
	Context string
}

func (e *AddressOverflowError) Error() string {
	return fmt.Sprintf("address overflow: %s", e.Context)
}

// InvalidNumberError is returned when a numeric token cannot be parsed.
type InvalidNumberError struct {
	Text string
}

func (e *InvalidNumberError) Error() string {
	return fmt.Sprintf("invalid number: %q", e.Text)
}

// InvalidRangeFormatError is returned when a range string is neither
// "start,length" nor "start-end".
type InvalidRangeFormatError struct {
	Text string
}

func (e *InvalidRangeFormatError) Error() string {
	return fmt.Sprintf("invalid range format: expected 'start,length' or 'start-end', got %q", e.Text)
}

// OverlappingSegmentsError is returned by Normalized when two segments in
// the image cover at least one common address.
type OverlappingSegmentsError struct {
	A, B Range
}

func (e *OverlappingSegmentsError) Error() string {
	return fmt.Sprintf("overlapping segments: %s and %s", e.A, e.B)
}
