package ops

import "github.com/mkfw/hexcraft/memimage"

// SwapWord reverses the byte order of every complete 2-byte chunk in each
// segment, in place. A trailing single byte, if present, is left untouched
// rather than rejected.
func SwapWord(img *memimage.Image) {
	swapChunks(img, 2, swapReverse)
}

// SwapDWord reverses the byte order of every complete 4-byte chunk in each
// segment, in place. Trailing bytes (1 to 3 of them), if present, are left
// untouched rather than rejected.
func SwapDWord(img *memimage.Image) {
	swapChunks(img, 4, swapReverse)
}

func swapReverse(chunk []byte) {
	for i, j := 0, len(chunk)-1; i < j; i, j = i+1, j-1 {
		chunk[i], chunk[j] = chunk[j], chunk[i]
	}
}

func swapChunks(img *memimage.Image, size int, swap func([]byte)) {
	segments := img.Segments()
	out := make([]memimage.Segment, len(segments))
	for i, s := range segments {
		data := make([]byte, len(s.Data))
		copy(data, s.Data)
		whole := (len(data) / size) * size
		for off := 0; off < whole; off += size {
			swap(data[off : off+size])
		}
		out[i] = memimage.NewSegment(s.StartAddress, data)
	}
	img.SetSegments(out)
}
