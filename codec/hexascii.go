package codec

import (
	"github.com/mkfw/hexcraft/memimage"
)

// HexAsciiWriteOptions configures WriteHexAscii.
type HexAsciiWriteOptions struct {
	LineLength int
	Separator  string
}

// DefaultHexAsciiWriteOptions matches the reference writer: 16 bytes per
// line, no separator.
func DefaultHexAsciiWriteOptions() HexAsciiWriteOptions {
	return HexAsciiWriteOptions{LineLength: 16}
}

// ParseHexAscii decodes a free-form hex-digit stream into a single segment
// at baseAddress. Runs of hex digits are tokens; anything else (including
// a "0x"/"0X" prefix) is a separator. A lone digit token is one nibble, not
// a zero-padded byte. CLI: /IA.
func ParseHexAscii(data []byte, baseAddress uint32) (*memimage.Image, error) {
	var out []byte
	var token []byte
	lineNo := 1

	flush := func() error {
		if len(token) == 0 {
			return nil
		}
		b, err := hexTokenToBytes(token, lineNo)
		if err != nil {
			return err
		}
		out = append(out, b...)
		token = nil
		return nil
	}

	for i := 0; i < len(data); i++ {
		b := data[i]
		switch {
		case b == '\r':
			continue
		case b == '\n':
			if err := flush(); err != nil {
				return nil, err
			}
			lineNo++
			continue
		case b == '0' && len(token) == 0 && i+1 < len(data) && (data[i+1] == 'x' || data[i+1] == 'X'):
			i++
			continue
		case isHexDigit(b):
			token = append(token, b)
			continue
		default:
			if err := flush(); err != nil {
				return nil, err
			}
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}

	if len(out) == 0 {
		return memimage.New(), nil
	}

	length := uint64(len(out))
	end := uint64(baseAddress) + length - 1
	if end > 0xFFFFFFFF {
		return nil, &AddressOverflowError{Context: "hex-ascii base address plus length exceeds 32 bits"}
	}

	return memimage.WithSegments([]memimage.Segment{memimage.NewSegment(baseAddress, out)}), nil
}

// WriteHexAscii encodes img as a hex-digit stream, CRLF-terminated lines.
func WriteHexAscii(img *memimage.Image, options HexAsciiWriteOptions) []byte {
	segments := normalizedSortedSegments(img)

	lineLen := options.LineLength
	if lineLen == 0 {
		lineLen = int(^uint(0) >> 1)
	}

	var out []byte
	count := 0

	for _, segment := range segments {
		for _, b := range segment.Data {
			if count == lineLen {
				out = pushCRLF(out)
				count = 0
			} else if count > 0 && options.Separator != "" {
				out = append(out, options.Separator...)
			}
			out = pushHexByte(out, b)
			count++
		}
	}

	if len(out) > 0 {
		out = pushCRLF(out)
	}

	return out
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func hexTokenToBytes(digits []byte, line int) ([]byte, error) {
	if len(digits) == 1 {
		v, err := hexDigitValue(digits[0], line)
		if err != nil {
			return nil, err
		}
		return []byte{v}, nil
	}
	if len(digits)%2 != 0 {
		return nil, &InvalidRecordError{Line: line, Message: "odd number of hex digits"}
	}
	out := make([]byte, 0, len(digits)/2)
	for i := 0; i < len(digits); i += 2 {
		hi, err := hexDigitValue(digits[i], line)
		if err != nil {
			return nil, err
		}
		lo, err := hexDigitValue(digits[i+1], line)
		if err != nil {
			return nil, err
		}
		out = append(out, hi<<4|lo)
	}
	return out, nil
}
