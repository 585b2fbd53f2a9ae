package memimage_test

import (
	"testing"

	"github.com/mkfw/hexcraft/internal/test"
	"github.com/mkfw/hexcraft/memimage"
)

func TestAppendPriority(t *testing.T) {
	img := memimage.New()
	img.AppendSegment(memimage.NewSegment(0x1000, []byte{0x01, 0x02, 0x03, 0x04}))
	img.AppendSegment(memimage.NewSegment(0x1002, []byte{0xAA, 0xBB}))

	v, ok := img.ReadByte(0x1000)
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, v, byte(0x01))

	v, ok = img.ReadByte(0x1002)
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, v, byte(0xAA))

	v, ok = img.ReadByte(0x1003)
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, v, byte(0xBB))
}

func TestPrependIsLowPriority(t *testing.T) {
	img := memimage.New()
	img.AppendSegment(memimage.NewSegment(0x1000, []byte{0xAA}))
	img.PrependSegment(memimage.NewSegment(0x1000, []byte{0xFF}))

	v, _ := img.ReadByte(0x1000)
	test.ExpectEquality(t, v, byte(0xAA))
}

func TestNormalizedLossyIdempotence(t *testing.T) {
	img := memimage.New()
	img.AppendSegment(memimage.NewSegment(0x1000, []byte{0x01, 0x02, 0x03, 0x04}))
	img.AppendSegment(memimage.NewSegment(0x1002, []byte{0xAA, 0xBB}))

	once := img.NormalizedLossy()
	twice := once.NormalizedLossy()

	test.ExpectEquality(t, once.Segments(), twice.Segments())
}

func TestNormalizedLossySplitsOverlap(t *testing.T) {
	img := memimage.New()
	img.AppendSegment(memimage.NewSegment(0x1000, []byte{0x01, 0x02, 0x03, 0x04}))
	img.AppendSegment(memimage.NewSegment(0x1001, []byte{0xAA}))

	norm := img.NormalizedLossy()
	segs := norm.Segments()
	test.ExpectEquality(t, len(segs), 1)
	test.ExpectEquality(t, segs[0].Data, []byte{0x01, 0xAA, 0x03, 0x04})
}

func TestNormalizedErrorsOnOverlap(t *testing.T) {
	img := memimage.New()
	img.AppendSegment(memimage.NewSegment(0x1000, []byte{0x01, 0x02}))
	img.AppendSegment(memimage.NewSegment(0x1001, []byte{0xAA, 0xBB}))

	_, err := img.Normalized()
	test.ExpectFailure(t, err)
}

func TestReadBytesContiguous(t *testing.T) {
	img := memimage.New()
	img.AppendSegment(memimage.NewSegment(0x1000, []byte{0x01, 0x02, 0x03, 0x04}))

	data, ok := img.ReadBytesContiguous(0x1001, 2)
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, data, []byte{0x02, 0x03})

	_, ok = img.ReadBytesContiguous(0x1003, 2)
	test.ExpectEquality(t, ok, false)
}

func TestWriteBytesAppendsHighPriority(t *testing.T) {
	img := memimage.New()
	img.AppendSegment(memimage.NewSegment(0x1000, []byte{0x00, 0x00}))
	img.WriteBytes(0x1000, []byte{0xFF})

	v, _ := img.ReadByte(0x1000)
	test.ExpectEquality(t, v, byte(0xFF))
	v, _ = img.ReadByte(0x1001)
	test.ExpectEquality(t, v, byte(0x00))
}

func TestFillGapsAndAsContiguous(t *testing.T) {
	img := memimage.New()
	img.AppendSegment(memimage.NewSegment(0x1000, []byte{0xAA}))
	img.AppendSegment(memimage.NewSegment(0x1002, []byte{0xBB}))

	seg, ok := img.AsContiguous(0x00)
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, seg.Data, []byte{0xAA, 0x00, 0xBB})

	img.FillGaps(0x00)
	test.ExpectEquality(t, len(img.Segments()), 1)
	test.ExpectEquality(t, img.Segments()[0].Data, []byte{0xAA, 0x00, 0xBB})
}

func TestGapCount(t *testing.T) {
	img := memimage.New()
	test.ExpectEquality(t, img.GapCount(), 0)

	img.AppendSegment(memimage.NewSegment(0x1000, []byte{0xAA}))
	test.ExpectEquality(t, img.GapCount(), 0)

	img.AppendSegment(memimage.NewSegment(0x2000, []byte{0xBB}))
	test.ExpectEquality(t, img.GapCount(), 1)
}

func TestMinMaxAddress(t *testing.T) {
	img := memimage.New()
	_, ok := img.MinAddress()
	test.ExpectEquality(t, ok, false)

	img.AppendSegment(memimage.NewSegment(0x2000, []byte{0x01}))
	img.AppendSegment(memimage.NewSegment(0x1000, []byte{0x01, 0x02}))

	min, _ := img.MinAddress()
	max, _ := img.MaxAddress()
	test.ExpectEquality(t, min, uint32(0x1000))
	test.ExpectEquality(t, max, uint32(0x2000))
}
