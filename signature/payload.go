package signature

import (
	"encoding/binary"

	"github.com/mkfw/hexcraft/memimage"
)

// Payload concatenates the normalized-lossy image's segment data in
// address order. When withMetadata is set it is prefixed with an 8-byte
// header: the image's minimum address followed by the payload length, both
// big-endian uint32.
func Payload(img *memimage.Image, m Method) []byte {
	normalized := img.NormalizedLossy()
	var data []byte
	for _, seg := range normalized.Segments() {
		data = append(data, seg.Data...)
	}
	if !m.withMetadata() {
		return data
	}

	start, _ := normalized.MinAddress()
	out := make([]byte, 8, 8+len(data))
	binary.BigEndian.PutUint32(out[0:4], start)
	binary.BigEndian.PutUint32(out[4:8], uint32(len(data)))
	return append(out, data...)
}
