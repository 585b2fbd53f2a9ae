package ops_test

import (
	"testing"

	"github.com/mkfw/hexcraft/internal/test"
	"github.com/mkfw/hexcraft/memimage"
	"github.com/mkfw/hexcraft/ops"
)

func TestFilterRangesClipsSegment(t *testing.T) {
	img := memimage.New()
	img.AppendSegment(memimage.NewSegment(0x1000, []byte{0x01, 0x02, 0x03, 0x04}))

	ops.FilterRanges(img, []memimage.Range{mustRange(t, 0x1001, 2)})

	segs := img.Segments()
	test.ExpectEquality(t, len(segs), 1)
	test.ExpectEquality(t, segs[0], memimage.NewSegment(0x1001, []byte{0x02, 0x03}))
}

func TestFilterRangesEmptyListClears(t *testing.T) {
	img := memimage.New()
	img.AppendSegment(memimage.NewSegment(0x1000, []byte{0x01}))

	ops.FilterRanges(img, nil)

	test.ExpectEquality(t, img.IsEmpty(), true)
}
