package ops_test

import (
	"testing"

	"github.com/mkfw/hexcraft/internal/test"
	"github.com/mkfw/hexcraft/memimage"
	"github.com/mkfw/hexcraft/ops"
)

func TestDspicExpandDefaultTarget(t *testing.T) {
	img := memimage.New()
	img.AppendSegment(memimage.NewSegment(0x1000, []byte{0xAA, 0xBB, 0xCC, 0xDD}))

	r := mustRange(t, 0x1000, 4)
	err := ops.DspicExpand(img, r, nil)
	test.ExpectSuccess(t, err)

	data, ok := img.ReadBytesContiguous(0x2000, 8)
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, data, []byte{0xAA, 0xBB, 0x00, 0x00, 0xCC, 0xDD, 0x00, 0x00})
}

func TestDspicExpandRejectsOddLength(t *testing.T) {
	img := memimage.New()
	img.AppendSegment(memimage.NewSegment(0x1000, []byte{0xAA, 0xBB, 0xCC}))

	r := mustRange(t, 0x1000, 3)
	err := ops.DspicExpand(img, r, nil)
	test.ExpectFailure(t, err)
}

func TestDspicShrinkDefaultTarget(t *testing.T) {
	img := memimage.New()
	img.AppendSegment(memimage.NewSegment(0x2000, []byte{0xAA, 0xBB, 0x00, 0x00, 0xCC, 0xDD, 0x00, 0x00}))

	r := mustRange(t, 0x2000, 8)
	err := ops.DspicShrink(img, r, nil)
	test.ExpectSuccess(t, err)

	data, ok := img.ReadBytesContiguous(0x1000, 4)
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, data, []byte{0xAA, 0xBB, 0xCC, 0xDD})
}

func TestDspicShrinkRejectsOddDefaultStart(t *testing.T) {
	img := memimage.New()
	img.AppendSegment(memimage.NewSegment(0x2001, []byte{0xAA, 0xBB, 0x00, 0x00}))

	r := mustRange(t, 0x2001, 4)
	err := ops.DspicShrink(img, r, nil)
	test.ExpectFailure(t, err)
}

func TestDspicShrinkExplicitTarget(t *testing.T) {
	img := memimage.New()
	img.AppendSegment(memimage.NewSegment(0x2001, []byte{0xAA, 0xBB, 0x00, 0x00}))

	target := uint32(0x3000)
	r := mustRange(t, 0x2001, 4)
	err := ops.DspicShrink(img, r, &target)
	test.ExpectSuccess(t, err)

	data, ok := img.ReadBytesContiguous(0x3000, 2)
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, data, []byte{0xAA, 0xBB})
}

func TestDspicClearGhost(t *testing.T) {
	img := memimage.New()
	img.AppendSegment(memimage.NewSegment(0x1000, []byte{0xAA, 0xBB, 0xCC, 0xFF}))

	r := mustRange(t, 0x1000, 4)
	err := ops.DspicClearGhost(img, r)
	test.ExpectSuccess(t, err)

	data, ok := img.ReadBytesContiguous(0x1000, 4)
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, data, []byte{0xAA, 0xBB, 0xCC, 0x00})
}

func TestDspicRangeNotCovered(t *testing.T) {
	img := memimage.New()
	r := mustRange(t, 0x1000, 4)
	err := ops.DspicClearGhost(img, r)
	test.ExpectFailure(t, err)
}
