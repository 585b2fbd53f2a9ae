package codec

import (
	"sort"

	"github.com/mkfw/hexcraft/memimage"
)

const hexDigits = "0123456789ABCDEF"

func pushHexByte(out []byte, b byte) []byte {
	return append(out, hexDigits[b>>4], hexDigits[b&0x0F])
}

func pushCRLF(out []byte) []byte {
	return append(out, '\r', '\n')
}

// normalizedSortedSegments returns the image's lossily-normalized segments,
// which are already sorted by NormalizedLossy; kept as a named helper to
// mirror the shape of the original codec entry points.
func normalizedSortedSegments(img *memimage.Image) []memimage.Segment {
	norm := img.NormalizedLossy()
	segs := append([]memimage.Segment(nil), norm.Segments()...)
	sort.Slice(segs, func(i, j int) bool { return segs[i].StartAddress < segs[j].StartAddress })
	return segs
}

func hexDigitValue(b byte, line int) (byte, error) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', nil
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, nil
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, nil
	default:
		return 0, &InvalidHexDigitError{Line: line, Char: rune(b)}
	}
}

func parseHexBytes(s []byte, line int) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, &InvalidRecordError{Line: line, Message: "odd number of hex digits"}
	}
	out := make([]byte, len(s)/2)
	for i := 0; i < len(out); i++ {
		hi, err := hexDigitValue(s[i*2], line)
		if err != nil {
			return nil, err
		}
		lo, err := hexDigitValue(s[i*2+1], line)
		if err != nil {
			return nil, err
		}
		out[i] = hi<<4 | lo
	}
	return out, nil
}
