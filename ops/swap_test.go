package ops_test

import (
	"testing"

	"github.com/mkfw/hexcraft/internal/test"
	"github.com/mkfw/hexcraft/memimage"
	"github.com/mkfw/hexcraft/ops"
)

func TestSwapWord(t *testing.T) {
	img := memimage.New()
	img.AppendSegment(memimage.NewSegment(0x1000, []byte{0x01, 0x02, 0x03, 0x04, 0x05}))

	ops.SwapWord(img)

	test.ExpectEquality(t, img.Segments()[0].Data, []byte{0x02, 0x01, 0x04, 0x03, 0x05})
}

func TestSwapDWord(t *testing.T) {
	img := memimage.New()
	img.AppendSegment(memimage.NewSegment(0x1000, []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06}))

	ops.SwapDWord(img)

	test.ExpectEquality(t, img.Segments()[0].Data, []byte{0x04, 0x03, 0x02, 0x01, 0x05, 0x06})
}

func TestSwapWordIsInvolution(t *testing.T) {
	img := memimage.New()
	img.AppendSegment(memimage.NewSegment(0x1000, []byte{0x01, 0x02, 0x03, 0x04}))

	ops.SwapWord(img)
	ops.SwapWord(img)

	test.ExpectEquality(t, img.Segments()[0].Data, []byte{0x01, 0x02, 0x03, 0x04})
}
