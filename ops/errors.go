// Package ops implements the memory-image transformation stages: fill, cut,
// filter, merge, align, split, byte-swap, address scaling, banked-memory
// remapping and dsPIC byte packing. Each stage operates on a *memimage.Image
// in place and returns a typed error on failure; the pipeline package wraps
// these with curated.Context using the CLI option name that would have
// produced them.
package ops

import "fmt"

// AddressOverflowError is returned when an operation's address arithmetic
// would cross the 32-bit address ceiling.
type AddressOverflowError struct {
	Context string
}

func (e *AddressOverflowError) Error() string {
	return fmt.Sprintf("address overflow: %s", e.Context)
}

// AddressNotDivisibleError is returned by UnscaleAddresses when a segment's
// start address is not evenly divisible by the unscale divisor.
type AddressNotDivisibleError struct {
	Address uint32
	Divisor uint32
}

func (e *AddressNotDivisibleError) Error() string {
	return fmt.Sprintf("address %#x is not divisible by %d", e.Address, e.Divisor)
}

// LengthNotMultipleError is returned when a segment's length does not
// divide evenly by an operation's required chunk size.
type LengthNotMultipleError struct {
	Length    int
	Expected  int
	Operation string
}

func (e *LengthNotMultipleError) Error() string {
	return fmt.Sprintf("%s: length %d is not a multiple of %d", e.Operation, e.Length, e.Expected)
}

// InvalidAlignmentError is returned when an alignment value is zero.
type InvalidAlignmentError struct {
	Value uint32
}

func (e *InvalidAlignmentError) Error() string {
	return fmt.Sprintf("invalid alignment %d: must be non-zero", e.Value)
}

// InvalidRemapParamsError is returned when a remap configuration is
// internally inconsistent (eg. a zero window size, or end before start).
type InvalidRemapParamsError struct {
	Reason string
}

func (e *InvalidRemapParamsError) Error() string {
	return fmt.Sprintf("invalid remap parameters: %s", e.Reason)
}

// RangeNotCoveredError is returned when an operation requires its target
// range to be fully covered by the image and it is not.
type RangeNotCoveredError struct {
	Start  uint32
	Length uint32
}

func (e *RangeNotCoveredError) Error() string {
	return fmt.Sprintf("range %#x,%#x is not fully covered by the image", e.Start, e.Length)
}
