package ops_test

import (
	"testing"

	"github.com/mkfw/hexcraft/internal/test"
	"github.com/mkfw/hexcraft/memimage"
	"github.com/mkfw/hexcraft/ops"
)

func TestCutSplitsSegment(t *testing.T) {
	img := memimage.New()
	img.AppendSegment(memimage.NewSegment(0x1000, []byte{0x01, 0x02, 0x03, 0x04, 0x05}))

	r := mustRange(t, 0x1002, 2)
	ops.Cut(img, r)

	segs := img.Segments()
	test.ExpectEquality(t, len(segs), 2)
	test.ExpectEquality(t, segs[0], memimage.NewSegment(0x1000, []byte{0x01, 0x02}))
	test.ExpectEquality(t, segs[1], memimage.NewSegment(0x1004, []byte{0x05}))
}

func TestCutWholeSegment(t *testing.T) {
	img := memimage.New()
	img.AppendSegment(memimage.NewSegment(0x1000, []byte{0x01, 0x02}))

	r := mustRange(t, 0x1000, 2)
	ops.Cut(img, r)

	test.ExpectEquality(t, img.IsEmpty(), true)
}

func TestCutRangesSequential(t *testing.T) {
	img := memimage.New()
	img.AppendSegment(memimage.NewSegment(0x1000, []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06}))

	ops.CutRanges(img, []memimage.Range{mustRange(t, 0x1001, 1), mustRange(t, 0x1004, 1)})

	data, ok := img.ReadBytesContiguous(0x1000, 1)
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, data, []byte{0x01})
}
