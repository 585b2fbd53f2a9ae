package ops_test

import (
	"testing"

	"github.com/mkfw/hexcraft/internal/test"
	"github.com/mkfw/hexcraft/memimage"
	"github.com/mkfw/hexcraft/ops"
)

func mustRange(t *testing.T, start, length uint32) memimage.Range {
	t.Helper()
	r, err := memimage.RangeFromStartLength(start, length)
	test.ExpectSuccess(t, err)
	return r
}

func TestFillBackfillsGapsOnly(t *testing.T) {
	img := memimage.New()
	img.AppendSegment(memimage.NewSegment(0x1001, []byte{0xAA}))

	r := mustRange(t, 0x1000, 3)
	ops.Fill(img, r, ops.FillOptions{Pattern: []byte{0x00}})

	data, ok := img.ReadBytesContiguous(0x1000, 3)
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, data, []byte{0x00, 0xAA, 0x00})
}

func TestFillOverwriteClearsFirst(t *testing.T) {
	img := memimage.New()
	img.AppendSegment(memimage.NewSegment(0x1000, []byte{0xAA, 0xBB, 0xCC}))

	r := mustRange(t, 0x1000, 3)
	ops.Fill(img, r, ops.FillOptions{Pattern: []byte{0xFF}, Overwrite: true})

	data, ok := img.ReadBytesContiguous(0x1000, 3)
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, data, []byte{0xFF, 0xFF, 0xFF})
}

func TestFillTilesPattern(t *testing.T) {
	img := memimage.New()
	r := mustRange(t, 0x1000, 5)
	ops.Fill(img, r, ops.FillOptions{Pattern: []byte{0x01, 0x02}})

	data, ok := img.ReadBytesContiguous(0x1000, 5)
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, data, []byte{0x01, 0x02, 0x01, 0x02, 0x01})
}
