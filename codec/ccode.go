package codec

import (
	"fmt"
	"strings"

	"github.com/mkfw/hexcraft/memimage"
)

// CCodeWordType selects the byte order used to pack each output word.
type CCodeWordType int

const (
	CCodeWordIntel CCodeWordType = iota
	CCodeWordMotorola
)

// CCodeWriteOptions configures WriteCCode. WordSize is 0 for byte, 1 for
// 16-bit word, 2 for 32-bit word.
type CCodeWriteOptions struct {
	Prefix       string
	HeaderName   string
	WordSize     byte
	WordType     CCodeWordType
	Decrypt      bool
	DecryptValue uint32
}

// CCodeOutput holds the emitted .c and .h source text.
type CCodeOutput struct {
	C []byte
	H []byte
}

// WriteCCode renders img as a pair of C source and header fragments, one
// block per normalized segment, with address/length #defines in the
// header and the packed data in the source.
func WriteCCode(img *memimage.Image, options CCodeWriteOptions) (CCodeOutput, error) {
	elemBytes, cType, err := ccodeElemLayout(options.WordSize)
	if err != nil {
		return CCodeOutput{}, err
	}

	segments := normalizedSortedSegments(img)

	prefix := strings.TrimSpace(options.Prefix)
	if prefix == "" {
		return CCodeOutput{}, fmt.Errorf("prefix must not be empty")
	}
	headerName := strings.TrimSpace(options.HeaderName)
	if headerName == "" {
		return CCodeOutput{}, fmt.Errorf("header name must not be empty")
	}

	upper := sanitizeDefine(prefix)

	var header strings.Builder
	header.WriteString("#pragma once\n#include <stdint.h>\n\n")
	fmt.Fprintf(&header, "#define %s_BLOCK_COUNT %d\n\n", upper, len(segments))

	var source strings.Builder
	fmt.Fprintf(&source, "#include \"%s.h\"\n\n", headerName)

	for idx, segment := range segments {
		if segment.Len()%elemBytes != 0 {
			return CCodeOutput{}, fmt.Errorf("segment %d length %d not multiple of %d", idx, segment.Len(), elemBytes)
		}

		elemCount := segment.Len() / elemBytes
		fmt.Fprintf(&header, "#define %s_BLOCK%d_ADDRESS 0x%08Xu\n", upper, idx, segment.StartAddress)
		fmt.Fprintf(&header, "#define %s_BLOCK%d_LENGTH_BYTES 0x%Xu\n", upper, idx, segment.Len())
		fmt.Fprintf(&header, "#define %s_BLOCK%d_LENGTH_ELEMENTS 0x%Xu\n", upper, idx, elemCount)
		fmt.Fprintf(&header, "extern const %s %sBlk%d[];\n\n", cType, prefix, idx)

		fmt.Fprintf(&source, "const %s %sBlk%d[] = {\n", cType, prefix, idx)
		values, err := ccodeSegmentValues(segment, elemBytes, options)
		if err != nil {
			return CCodeOutput{}, err
		}
		writeCCodeValues(&source, values, elemBytes)
		source.WriteString("};\n\n")
	}

	return CCodeOutput{C: []byte(source.String()), H: []byte(header.String())}, nil
}

func ccodeElemLayout(wordSize byte) (int, string, error) {
	switch wordSize {
	case 0:
		return 1, "uint8_t", nil
	case 1:
		return 2, "uint16_t", nil
	case 2:
		return 4, "uint32_t", nil
	default:
		return 0, "", fmt.Errorf("unsupported word size %d", wordSize)
	}
}

func ccodeSegmentValues(segment memimage.Segment, elemBytes int, options CCodeWriteOptions) ([]uint32, error) {
	values := make([]uint32, 0, segment.Len()/elemBytes)
	for offset := 0; offset < segment.Len(); offset += elemBytes {
		chunk := segment.Data[offset : offset+elemBytes]
		var val uint32
		switch {
		case elemBytes == 1:
			val = uint32(chunk[0])
		case elemBytes == 2 && options.WordType == CCodeWordIntel:
			val = uint32(chunk[0]) | uint32(chunk[1])<<8
		case elemBytes == 2 && options.WordType == CCodeWordMotorola:
			val = uint32(chunk[0])<<8 | uint32(chunk[1])
		case elemBytes == 4 && options.WordType == CCodeWordIntel:
			val = uint32(chunk[0]) | uint32(chunk[1])<<8 | uint32(chunk[2])<<16 | uint32(chunk[3])<<24
		case elemBytes == 4 && options.WordType == CCodeWordMotorola:
			val = uint32(chunk[0])<<24 | uint32(chunk[1])<<16 | uint32(chunk[2])<<8 | uint32(chunk[3])
		default:
			return nil, fmt.Errorf("unsupported word size")
		}

		if options.Decrypt {
			var mask uint32
			switch elemBytes {
			case 1:
				mask = options.DecryptValue & 0xFF
			case 2:
				mask = options.DecryptValue & 0xFFFF
			case 4:
				mask = options.DecryptValue
			}
			val ^= mask
		}

		values = append(values, val)
	}
	return values, nil
}

func writeCCodeValues(out *strings.Builder, values []uint32, elemBytes int) {
	const perLine = 12
	width := elemBytes * 2
	for idx, value := range values {
		if idx%perLine == 0 {
			out.WriteString("    ")
		}
		fmt.Fprintf(out, "0x%0*X", width, value)
		if idx+1 != len(values) {
			out.WriteString(", ")
		}
		if (idx+1)%perLine == 0 || idx+1 == len(values) {
			out.WriteString("\n")
		}
	}
}

func sanitizeDefine(prefix string) string {
	var b strings.Builder
	for _, c := range prefix {
		switch {
		case c >= 'a' && c <= 'z':
			b.WriteRune(c - 'a' + 'A')
		case c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			b.WriteRune(c)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
