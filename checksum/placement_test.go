package checksum_test

import (
	"testing"

	"github.com/mkfw/hexcraft/checksum"
	"github.com/mkfw/hexcraft/internal/test"
	"github.com/mkfw/hexcraft/memimage"
)

func TestPlaceAddressOverwritesInPlace(t *testing.T) {
	img := memimage.New()
	img.AppendSegment(memimage.NewSegment(0x1000, []byte{0xAA, 0xBB, 0xCC}))

	_, err := checksum.Run(img, checksum.Spec{
		Algorithm: checksum.ByteSumBE,
		Target:    checksum.Target{Kind: checksum.TargetAddress, Address: 0x1001},
	})
	test.ExpectSuccess(t, err)

	data, ok := img.ReadBytesContiguous(0x1000, 3)
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, data[0], byte(0xAA))
}

func TestPlacePrependShiftsBeforeStart(t *testing.T) {
	img := memimage.New()
	img.AppendSegment(memimage.NewSegment(0x1000, []byte{0x01, 0x02}))

	_, err := checksum.Run(img, checksum.Spec{
		Algorithm: checksum.ByteSumBE,
		Target:    checksum.Target{Kind: checksum.TargetPrepend},
	})
	test.ExpectSuccess(t, err)

	min, ok := img.MinAddress()
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, min, uint32(0x0FFE))
}

func TestPlacePrependUnderflowErrors(t *testing.T) {
	img := memimage.New()
	img.AppendSegment(memimage.NewSegment(0x0000, []byte{0x01, 0x02}))

	_, err := checksum.Run(img, checksum.Spec{
		Algorithm: checksum.ByteSumBE,
		Target:    checksum.Target{Kind: checksum.TargetPrepend},
	})
	test.ExpectFailure(t, err)
}

func TestPlaceOverwriteEndWritesTrailingBytes(t *testing.T) {
	img := memimage.New()
	img.AppendSegment(memimage.NewSegment(0x1000, []byte{0x01, 0x02, 0x03, 0x04}))

	_, err := checksum.Run(img, checksum.Spec{
		Algorithm: checksum.ByteSumBE,
		Target:    checksum.Target{Kind: checksum.TargetOverwriteEnd},
	})
	test.ExpectSuccess(t, err)

	data, ok := img.ReadBytesContiguous(0x1000, 4)
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, data[0], byte(0x01))
	test.ExpectEquality(t, data[1], byte(0x02))
}

func TestPlaceOverwriteEndOnEmptyImageErrors(t *testing.T) {
	img := memimage.New()
	_, err := checksum.Run(img, checksum.Spec{
		Algorithm: checksum.ByteSumBE,
		Target:    checksum.Target{Kind: checksum.TargetOverwriteEnd},
	})
	test.ExpectFailure(t, err)
}

func TestPlaceBeginFallsBackToAppendNoOpOnEmptyImage(t *testing.T) {
	img := memimage.New()
	r := rangeOf(t, 0x2000, 4)

	result, err := checksum.Run(img, checksum.Spec{
		Algorithm: checksum.ByteSumBE,
		Options:   checksum.Options{Range: &r},
		Target:    checksum.Target{Kind: checksum.TargetBegin},
	})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, result, []byte{0x00, 0x00})

	_, ok := img.MinAddress()
	test.ExpectEquality(t, ok, false)
}

func TestPlaceAppendOnEmptyImageIsNoOp(t *testing.T) {
	img := memimage.New()
	r := rangeOf(t, 0x1000, 2)

	result, err := checksum.Run(img, checksum.Spec{
		Algorithm: checksum.ByteSumBE,
		Options:   checksum.Options{Range: &r, ExcludeRanges: nil},
		Target:    checksum.Target{Kind: checksum.TargetAppend},
	})
	// no bytes are present in the range, and no forced range fills it, so this
	// is a zero-length payload: a valid checksum of nothing
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, result, []byte{0x00, 0x00})

	_, ok := img.MinAddress()
	test.ExpectEquality(t, ok, false)
}

func TestPlacePrependOnEmptyImageIsNoOp(t *testing.T) {
	img := memimage.New()
	r := rangeOf(t, 0x1000, 2)

	result, err := checksum.Run(img, checksum.Spec{
		Algorithm: checksum.ByteSumBE,
		Options:   checksum.Options{Range: &r},
		Target:    checksum.Target{Kind: checksum.TargetPrepend},
	})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, result, []byte{0x00, 0x00})

	_, ok := img.MinAddress()
	test.ExpectEquality(t, ok, false)
}

func rangeOf(t *testing.T, start, length uint32) memimage.Range {
	t.Helper()
	r, err := memimage.RangeFromStartLength(start, length)
	test.ExpectSuccess(t, err)
	return r
}

func rangePtr(t *testing.T, start, length uint32) *memimage.Range {
	t.Helper()
	r := rangeOf(t, start, length)
	return &r
}
