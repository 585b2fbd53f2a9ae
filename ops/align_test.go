package ops_test

import (
	"testing"

	"github.com/mkfw/hexcraft/internal/test"
	"github.com/mkfw/hexcraft/memimage"
	"github.com/mkfw/hexcraft/ops"
)

func TestAlignWithLength(t *testing.T) {
	img := memimage.New()
	img.AppendSegment(memimage.NewSegment(0x1001, []byte{0xAA, 0xBB}))

	err := ops.Align(img, ops.AlignOptions{Alignment: 4, FillByte: 0xFF, AlignLength: true})
	test.ExpectSuccess(t, err)

	segs := img.Segments()
	test.ExpectEquality(t, len(segs), 1)
	test.ExpectEquality(t, segs[0], memimage.NewSegment(0x1000, []byte{0xFF, 0xAA, 0xBB, 0xFF}))
}

func TestAlignWithoutLengthOnlyPadsStart(t *testing.T) {
	img := memimage.New()
	img.AppendSegment(memimage.NewSegment(0x1002, []byte{0xAA}))

	err := ops.Align(img, ops.AlignOptions{Alignment: 4, FillByte: 0x00})
	test.ExpectSuccess(t, err)

	data, ok := img.ReadBytesContiguous(0x1000, 3)
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, data, []byte{0x00, 0x00, 0xAA})
}

func TestAlignZeroRejected(t *testing.T) {
	img := memimage.New()
	err := ops.Align(img, ops.AlignOptions{Alignment: 0})
	test.ExpectFailure(t, err)
}

func TestAlignPreservesOriginalBytesOnOverlap(t *testing.T) {
	img := memimage.New()
	img.AppendSegment(memimage.NewSegment(0x1000, []byte{0xAA, 0xBB, 0xCC, 0xDD}))

	err := ops.Align(img, ops.AlignOptions{Alignment: 4, FillByte: 0xFF, AlignLength: true})
	test.ExpectSuccess(t, err)

	data, ok := img.ReadBytesContiguous(0x1000, 4)
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, data, []byte{0xAA, 0xBB, 0xCC, 0xDD})
}
