package codec_test

import "github.com/mkfw/hexcraft/memimage"

func segmentAt(addr uint32, data []byte) memimage.Segment {
	return memimage.NewSegment(addr, data)
}

func memimageWithSegment(addr uint32, data []byte) *memimage.Image {
	img := memimage.New()
	img.AppendSegment(segmentAt(addr, data))
	return img
}
